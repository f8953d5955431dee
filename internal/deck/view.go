package deck

import (
	"github.com/verte-zerg/wrapdeck/internal/model"
)

// View is the data a single slide renders.
type View interface {
	Kind() Kind
}

// Label is a short headline with a description.
type Label struct {
	Title string
	Desc  string
}

// IntroView is the title slide.
type IntroView struct{}

// OverviewView shows chat-wide totals.
type OverviewView struct {
	model.Overview
	MessagesPerDay int
}

// RhythmView shows when the chat was active.
type RhythmView struct {
	model.Rhythm
	Chronotype Label
}

// ContributionsView ranks members and surfaces the top contributor's profile.
type ContributionsView struct {
	Ranking    model.Contributions
	MVP        *model.ContributorStats
	Runners    []model.ContributorStats
	TopProfile *model.PersonalityProfile
	MVPLine    string
}

// TopicsView lists the heaviest topics.
type TopicsView struct {
	Topics      []model.Topic
	Methodology string
}

// MediaCount is one labelled media counter.
type MediaCount struct {
	Label string
	Value int
}

// MediaView shows media totals and the chaos level.
type MediaView struct {
	model.MediaStats
	Breakdown  []MediaCount
	Chaos      Label
	SharerLine string
}

// CodeView shows code sharing and the geek level.
type CodeView struct {
	model.CodeStats
	TopCoders []model.CoderStats
	Geek      Label
}

// SentimentView shows the emotional timeline.
type SentimentView struct {
	model.Sentiment
	Vibe Label
}

// PersonalityView lists the strongest personalities.
type PersonalityView struct {
	Profiles         []model.PersonalityProfile
	GroupPersonality string
}

// EmojiView shows the favourite emoji and the runners-up.
type EmojiView struct {
	model.EmojiStats
	Top  model.EmojiStat
	Rest []model.EmojiStat
}

// Totals aggregates headline numbers across the whole dataset.
type Totals struct {
	Messages     int
	Words        int
	Participants int
	ActiveDays   int
	Emojis       int
	Media        int
	CodeSnippets int
	Topics       int
}

// ClosingView is the shareable recap.
type ClosingView struct {
	model.Summary
	Title      string
	Totals     Totals
	Highlights []string
	Quote      string
}

func (IntroView) Kind() Kind         { return KindIntro }
func (OverviewView) Kind() Kind      { return KindOverview }
func (RhythmView) Kind() Kind        { return KindRhythm }
func (ContributionsView) Kind() Kind { return KindContributions }
func (TopicsView) Kind() Kind        { return KindTopics }
func (MediaView) Kind() Kind         { return KindMedia }
func (CodeView) Kind() Kind          { return KindCode }
func (SentimentView) Kind() Kind     { return KindSentiment }
func (PersonalityView) Kind() Kind   { return KindPersonality }
func (EmojiView) Kind() Kind         { return KindEmoji }
func (ClosingView) Kind() Kind       { return KindClosing }

func selectOverview(ds *model.WrappedDataset) View {
	o := ds.Slide1
	days := o.ActiveDays
	if days < 1 {
		days = 1
	}
	return OverviewView{
		Overview:       o,
		MessagesPerDay: int(float64(o.TotalMessages)/float64(days) + 0.5),
	}
}

func selectRhythm(ds *model.WrappedDataset) View {
	return RhythmView{Rhythm: ds.Slide2, Chronotype: chronotypeLabel(ds.Slide2.Chronotype)}
}

func selectContributions(ds *model.WrappedDataset) View {
	c := ds.Slide4
	v := ContributionsView{Ranking: c, MVPLine: pickLine(mvpLines, c.TopContributor)}
	if len(c.Contributors) > 0 {
		mvp := c.Contributors[0]
		v.MVP = &mvp
		v.Runners = head(c.Contributors[1:], 4)
	}
	v.TopProfile = profileFor(ds.Slide3.Personalities, c.TopContributor)
	return v
}

func selectTopics(ds *model.WrappedDataset) View {
	return TopicsView{Topics: head(ds.Slide9.Topics, 4), Methodology: ds.Slide9.Methodology}
}

func selectMedia(ds *model.WrappedDataset) View {
	m := ds.Slide6
	v := MediaView{
		MediaStats: m,
		Breakdown: []MediaCount{
			{Label: "Images", Value: m.ImageCount},
			{Label: "Videos", Value: m.VideoCount},
			{Label: "GIFs", Value: m.GifCount},
			{Label: "Stickers", Value: m.StickerCount},
			{Label: "Docs", Value: m.DocumentCount},
		},
		Chaos: chaosLabel(m.ChaosIndex),
	}
	if m.TopMediaSharer != nil {
		v.SharerLine = pickLine(mediaSharerLines, *m.TopMediaSharer)
	}
	return v
}

func selectCode(ds *model.WrappedDataset) View {
	c := ds.Slide7
	return CodeView{CodeStats: c, TopCoders: head(c.Coders, 3), Geek: geekLabel(c.GeekEnergyScore)}
}

func selectSentiment(ds *model.WrappedDataset) View {
	return SentimentView{Sentiment: ds.Slide8, Vibe: vibeLabel(ds.Slide8.AverageSentiment)}
}

func selectPersonality(ds *model.WrappedDataset) View {
	return PersonalityView{
		Profiles:         head(ds.Slide3.Personalities, 4),
		GroupPersonality: ds.Slide3.GroupPersonality,
	}
}

func selectEmoji(ds *model.WrappedDataset) View {
	e := ds.Slide5
	v := EmojiView{EmojiStats: e, Top: model.EmojiStat{Emoji: "😊"}}
	if len(e.TopEmojis) > 0 {
		v.Top = e.TopEmojis[0]
		v.Rest = head(e.TopEmojis[1:], 5)
	}
	return v
}

func selectClosing(ds *model.WrappedDataset) View {
	s := ds.Slide10
	title := s.ChatName
	if title == "" {
		title = "WhatsApp Group"
	}
	return ClosingView{
		Summary:    s,
		Title:      title,
		Totals:     totalsOf(ds),
		Highlights: head(s.ShareableStats, 2),
		Quote:      closingLines[len(s.ChatName)%len(closingLines)],
	}
}

func totalsOf(ds *model.WrappedDataset) Totals {
	t := Totals{
		Messages:     ds.Slide1.TotalMessages,
		Words:        ds.Slide1.TotalWords,
		Participants: ds.Slide1.ParticipantsCount,
		ActiveDays:   ds.Slide1.ActiveDays,
		Emojis:       ds.Slide5.TotalEmojis,
		Media:        ds.Slide6.TotalMedia,
		CodeSnippets: ds.Slide7.TotalCodeSnippets,
		Topics:       len(ds.Slide9.Topics),
	}
	if t.Messages == 0 {
		t.Messages = ds.Slide10.TotalMessages
	}
	return t
}

func profileFor(profiles []model.PersonalityProfile, name string) *model.PersonalityProfile {
	for i := range profiles {
		if profiles[i].Name == name {
			p := profiles[i]
			return &p
		}
	}
	if len(profiles) > 0 {
		p := profiles[0]
		return &p
	}
	return nil
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		items = items[:n]
	}
	out := make([]T, len(items))
	copy(out, items)
	return out
}
