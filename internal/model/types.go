// Package model defines shared data structures.
package model

import "time"

// Config defines presentation settings.
type Config struct {
	DragDistance    float64
	DragVelocity    float64
	CellWidth       float64
	CounterDuration time.Duration
	Transitions     bool
	ExportDir       string
	Share           bool
}

// WrappedDataset is the analysis payload consumed by the deck.
// It is read-only for the lifetime of a presentation.
type WrappedDataset struct {
	Slide1  Overview      `json:"slide1" yaml:"slide1"`
	Slide2  Rhythm        `json:"slide2" yaml:"slide2"`
	Slide3  Personalities `json:"slide3" yaml:"slide3"`
	Slide4  Contributions `json:"slide4" yaml:"slide4"`
	Slide5  EmojiStats    `json:"slide5" yaml:"slide5"`
	Slide6  MediaStats    `json:"slide6" yaml:"slide6"`
	Slide7  CodeStats     `json:"slide7" yaml:"slide7"`
	Slide8  Sentiment     `json:"slide8" yaml:"slide8"`
	Slide9  Topics        `json:"slide9" yaml:"slide9"`
	Slide10 Summary       `json:"slide10" yaml:"slide10"`
}

// DatasetFields lists the required top-level dataset keys in order.
var DatasetFields = []string{
	"slide1", "slide2", "slide3", "slide4", "slide5",
	"slide6", "slide7", "slide8", "slide9", "slide10",
}

// DateRange is a pair of ISO-8601 dates.
type DateRange struct {
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
}

// Overview holds chat-wide totals.
type Overview struct {
	TotalMessages     int       `json:"total_messages" yaml:"total_messages"`
	TotalWords        int       `json:"total_words" yaml:"total_words"`
	ActiveDays        int       `json:"active_days" yaml:"active_days"`
	MediaShared       int       `json:"media_shared" yaml:"media_shared"`
	DateRange         DateRange `json:"date_range" yaml:"date_range"`
	ParticipantsCount int       `json:"participants_count" yaml:"participants_count"`
}

// HourlyActivity is the message count for one hour of the day.
type HourlyActivity struct {
	Hour  int `json:"hour" yaml:"hour"`
	Count int `json:"count" yaml:"count"`
}

// Rhythm describes when the chat was active.
type Rhythm struct {
	MostActiveHour      int              `json:"most_active_hour" yaml:"most_active_hour"`
	MostActiveHourLabel string           `json:"most_active_hour_label" yaml:"most_active_hour_label"`
	MostActiveDay       string           `json:"most_active_day" yaml:"most_active_day"`
	MessagesByHour      map[string]int   `json:"messages_by_hour" yaml:"messages_by_hour"`
	MessagesByDay       map[string]int   `json:"messages_by_day" yaml:"messages_by_day"`
	ActivityByHour      []HourlyActivity `json:"activity_by_hour" yaml:"activity_by_hour"`
	Chronotype          string           `json:"chronotype" yaml:"chronotype"`
	ChronotypeEmoji     string           `json:"chronotype_emoji" yaml:"chronotype_emoji"`
}

// PersonalityProfile is one member's classified chat personality.
type PersonalityProfile struct {
	Name             string   `json:"name" yaml:"name"`
	PersonalityType  string   `json:"personality_type" yaml:"personality_type"`
	PersonalityEmoji string   `json:"personality_emoji" yaml:"personality_emoji"`
	Traits           []string `json:"traits" yaml:"traits"`
	Score            float64  `json:"score" yaml:"score"`
}

// Personalities holds per-member profiles, strongest first.
type Personalities struct {
	Personalities    []PersonalityProfile `json:"personalities" yaml:"personalities"`
	GroupPersonality string               `json:"group_personality" yaml:"group_personality"`
	Methodology      string               `json:"methodology" yaml:"methodology"`
}

// ContributorStats is one member's share of the conversation.
type ContributorStats struct {
	Name             string  `json:"name" yaml:"name"`
	Messages         int     `json:"messages" yaml:"messages"`
	Percentage       float64 `json:"percentage" yaml:"percentage"`
	Words            int     `json:"words" yaml:"words"`
	AvgMessageLength float64 `json:"avg_message_length" yaml:"avg_message_length"`
}

// Contributions ranks members by message volume.
type Contributions struct {
	Contributors       []ContributorStats `json:"contributors" yaml:"contributors"`
	TopContributor     string             `json:"top_contributor" yaml:"top_contributor"`
	SilentMembers      []string           `json:"silent_members" yaml:"silent_members"`
	ParticipationRatio float64            `json:"participation_ratio" yaml:"participation_ratio"`
}

// EmojiStat is the usage of one emoji.
type EmojiStat struct {
	Emoji      string  `json:"emoji" yaml:"emoji"`
	Count      int     `json:"count" yaml:"count"`
	Percentage float64 `json:"percentage" yaml:"percentage"`
}

// EmojiStats summarizes emoji and sticker usage. MoodBreakdown holds
// percentages rounded to one decimal.
type EmojiStats struct {
	TopEmojis       []EmojiStat        `json:"top_emojis" yaml:"top_emojis"`
	TotalEmojis     int                `json:"total_emojis" yaml:"total_emojis"`
	StickerCount    int                `json:"sticker_count" yaml:"sticker_count"`
	EmojiPerMessage float64            `json:"emoji_per_message" yaml:"emoji_per_message"`
	MoodBreakdown   map[string]float64 `json:"mood_breakdown" yaml:"mood_breakdown"`
	TopEmojiUsers   map[string]string  `json:"top_emoji_users" yaml:"top_emoji_users"`
}

// MediaStats summarizes shared media.
type MediaStats struct {
	ImageCount        int     `json:"image_count" yaml:"image_count"`
	VideoCount        int     `json:"video_count" yaml:"video_count"`
	StickerCount      int     `json:"sticker_count" yaml:"sticker_count"`
	GifCount          int     `json:"gif_count" yaml:"gif_count"`
	DocumentCount     int     `json:"document_count" yaml:"document_count"`
	TotalMedia        int     `json:"total_media" yaml:"total_media"`
	MediaToTextRatio  float64 `json:"media_to_text_ratio" yaml:"media_to_text_ratio"`
	PeakChaosDay      string  `json:"peak_chaos_day" yaml:"peak_chaos_day"`
	PeakChaosMessages int     `json:"peak_chaos_messages" yaml:"peak_chaos_messages"`
	ChaosIndex        float64 `json:"chaos_index" yaml:"chaos_index"`
	TopMediaSharer    *string `json:"top_media_sharer" yaml:"top_media_sharer"`
}

// CoderStats is one member's code sharing activity.
type CoderStats struct {
	Name         string   `json:"name" yaml:"name"`
	CodeSnippets int      `json:"code_snippets" yaml:"code_snippets"`
	Languages    []string `json:"languages" yaml:"languages"`
}

// CodeStats summarizes code snippets shared in the chat.
type CodeStats struct {
	TotalCodeSnippets int          `json:"total_code_snippets" yaml:"total_code_snippets"`
	Coders            []CoderStats `json:"coders" yaml:"coders"`
	DominantLanguage  string       `json:"dominant_language" yaml:"dominant_language"`
	CommonKeywords    []string     `json:"common_keywords" yaml:"common_keywords"`
	GeekEnergyScore   float64      `json:"geek_energy_score" yaml:"geek_energy_score"`
	TopCoder          *string      `json:"top_coder" yaml:"top_coder"`
}

// MonthlySentiment is the sentiment score for one month, roughly in [-1, 1].
type MonthlySentiment struct {
	Month        string  `json:"month" yaml:"month"`
	Score        float64 `json:"score" yaml:"score"`
	Label        string  `json:"label" yaml:"label"`
	MessageCount int     `json:"message_count" yaml:"message_count"`
}

// Sentiment is the emotional timeline of the chat.
type Sentiment struct {
	MonthlySentiment []MonthlySentiment `json:"monthly_sentiment" yaml:"monthly_sentiment"`
	HappiestMonth    string             `json:"happiest_month" yaml:"happiest_month"`
	MostIntenseMonth string             `json:"most_intense_month" yaml:"most_intense_month"`
	AverageSentiment float64            `json:"average_sentiment" yaml:"average_sentiment"`
	Disclaimer       string             `json:"disclaimer" yaml:"disclaimer"`
}

// Topic is one detected conversation theme.
type Topic struct {
	TopicID  int      `json:"topic_id" yaml:"topic_id"`
	Label    string   `json:"label" yaml:"label"`
	Keywords []string `json:"keywords" yaml:"keywords"`
	Weight   float64  `json:"weight" yaml:"weight"`
}

// Topics lists detected themes, heaviest first.
type Topics struct {
	Topics      []Topic `json:"topics" yaml:"topics"`
	Methodology string  `json:"methodology" yaml:"methodology"`
}

// Summary is the shareable recap.
type Summary struct {
	SummaryText     string   `json:"summary_text" yaml:"summary_text"`
	TotalMessages   int      `json:"total_messages" yaml:"total_messages"`
	PersonalityType string   `json:"personality_type" yaml:"personality_type"`
	PeakTime        string   `json:"peak_time" yaml:"peak_time"`
	GroupRole       string   `json:"group_role" yaml:"group_role"`
	TopEmoji        string   `json:"top_emoji" yaml:"top_emoji"`
	ChatName        string   `json:"chat_name" yaml:"chat_name"`
	Year            int      `json:"year" yaml:"year"`
	ShareableStats  []string `json:"shareable_stats" yaml:"shareable_stats"`
}

// PresentationRecord captures one played deck.
type PresentationRecord struct {
	ID           string
	DatasetPath  string
	ChatName     string
	StartedAt    time.Time
	EndedAt      time.Time
	SlidesViewed int
	Completed    bool
}

// ExportRecord captures one exported card.
type ExportRecord struct {
	ID             string
	PresentationID string
	Path           string
	Shared         bool
	Bytes          int64
	CreatedAt      time.Time
}
