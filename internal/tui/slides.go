package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/wrapdeck/internal/counter"
	"github.com/verte-zerg/wrapdeck/internal/deck"
	"github.com/verte-zerg/wrapdeck/internal/stats"
)

const blocks = "▁▂▃▄▅▆▇█"

// slideRenderer draws one slide view inside a fixed width.
type slideRenderer struct {
	counters *counter.Group
	width    int
}

func (r slideRenderer) render(v deck.View) string {
	var lines []string
	switch v := v.(type) {
	case deck.IntroView:
		lines = r.intro()
	case deck.OverviewView:
		lines = r.overview(v)
	case deck.RhythmView:
		lines = r.rhythm(v)
	case deck.ContributionsView:
		lines = r.contributions(v)
	case deck.TopicsView:
		lines = r.topics(v)
	case deck.MediaView:
		lines = r.media(v)
	case deck.CodeView:
		lines = r.code(v)
	case deck.SentimentView:
		lines = r.sentiment(v)
	case deck.PersonalityView:
		lines = r.personality(v)
	case deck.EmojiView:
		lines = r.emoji(v)
	case deck.ClosingView:
		lines = r.closing(v)
	default:
		panic(fmt.Sprintf("no renderer for %T", v))
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func (r slideRenderer) num(name string, fallback int) string {
	return r.counters.Display(name, float64(fallback))
}

func (r slideRenderer) para(s string, style lipgloss.Style) []string {
	out := wrapText(s, r.width)
	for i := range out {
		out[i] = style.Render(out[i])
	}
	return out
}

func (r slideRenderer) intro() []string {
	return []string{
		accentStyle.Render("✨"),
		"",
		titleStyle.Render("WhatsApp Wrapped"),
		textStyle.Render("Your group chat's year in review"),
		"",
		mutedStyle.Render("All processing happens locally"),
	}
}

func (r slideRenderer) overview(v deck.OverviewView) []string {
	lines := []string{
		titleStyle.Render("Your WhatsApp Year"),
		"",
		bigNumberStyle.Render(r.num(cntMessages, v.TotalMessages)),
		mutedStyle.Render("messages sent"),
		"",
		statGrid([][2]string{
			{r.num(cntWords, v.TotalWords), "words"},
			{r.num(cntDays, v.ActiveDays), "active days"},
			{r.num(cntParticipants, v.ParticipantsCount), "people"},
		}),
		"",
		textStyle.Render("That's about " + r.num(cntPerDay, v.MessagesPerDay) + " messages a day"),
	}
	if v.DateRange.Start != "" || v.DateRange.End != "" {
		lines = append(lines, mutedStyle.Render(v.DateRange.Start+" → "+v.DateRange.End))
	}
	return lines
}

func (r slideRenderer) rhythm(v deck.RhythmView) []string {
	lines := []string{
		titleStyle.Render("When You Were Most Alive"),
		"",
		headlineStyle.Render(v.ChronotypeEmoji + " " + v.Chronotype.Title),
	}
	lines = append(lines, r.para(v.Chronotype.Desc, mutedStyle)...)
	lines = append(lines,
		"",
		barStyle.Render(hourChart(stats.HourlyCounts(v.Rhythm))),
		mutedStyle.Render(hourAxis()),
		"",
		textStyle.Render(fmt.Sprintf("Peak hour %s · Busiest day %s", v.MostActiveHourLabel, v.MostActiveDay)),
	)
	return lines
}

func (r slideRenderer) contributions(v deck.ContributionsView) []string {
	lines := []string{titleStyle.Render("Who Carried the Group"), ""}
	if v.MVP == nil {
		return append(lines, mutedStyle.Render("Nobody said a word."))
	}
	lines = append(lines,
		accentStyle.Render("👑 MVP"),
		headlineStyle.Render(v.MVP.Name),
		bigNumberStyle.Render(r.num(cntMVP, v.MVP.Messages))+mutedStyle.Render(" messages · "+percent(v.MVP.Percentage)),
	)
	lines = append(lines, r.para(v.MVPLine, mutedStyle)...)
	if v.TopProfile != nil {
		lines = append(lines, textStyle.Render(v.TopProfile.PersonalityEmoji+" "+v.TopProfile.PersonalityType))
	}
	if len(v.Runners) > 0 {
		lines = append(lines, "")
		barWidth := r.width / 3
		for i, c := range v.Runners {
			lines = append(lines, fmt.Sprintf("%s %s %s %s",
				mutedStyle.Render(fmt.Sprintf("%d.", i+2)),
				textStyle.Render(padRight(truncate(c.Name, 14), 14)),
				bar(c.Percentage/100, barWidth),
				mutedStyle.Render(percent(c.Percentage))))
		}
	}
	return lines
}

func (r slideRenderer) topics(v deck.TopicsView) []string {
	lines := []string{titleStyle.Render("What You Talked About"), ""}
	if len(v.Topics) == 0 {
		return append(lines, mutedStyle.Render("No clear topics this year."))
	}
	for i, t := range v.Topics {
		lines = append(lines,
			headlineStyle.Render(fmt.Sprintf("#%d %s", i+1, t.Label)),
			bar(t.Weight, r.width/2),
		)
		if len(t.Keywords) > 0 {
			lines = append(lines, r.para(strings.Join(t.Keywords, " · "), mutedStyle)...)
		}
		lines = append(lines, "")
	}
	if v.Methodology != "" {
		lines = append(lines, r.para(v.Methodology, footerStyle)...)
	}
	return lines
}

func (r slideRenderer) media(v deck.MediaView) []string {
	lines := []string{
		titleStyle.Render("Media & Chaos"),
		"",
		bigNumberStyle.Render(r.num(cntMedia, v.TotalMedia)),
		mutedStyle.Render("things shared"),
		"",
	}
	cells := make([][2]string, 0, len(v.Breakdown))
	for _, c := range v.Breakdown {
		cells = append(cells, [2]string{r.num(mediaCounter(c.Label), c.Value), strings.ToLower(c.Label)})
	}
	lines = append(lines, statGrid(cells), "")
	lines = append(lines,
		headlineStyle.Render(v.Chaos.Title),
		bar(v.ChaosIndex, r.width/2),
	)
	lines = append(lines, r.para(v.Chaos.Desc, mutedStyle)...)
	if v.PeakChaosDay != "" {
		lines = append(lines, textStyle.Render(fmt.Sprintf("Peak chaos: %s (%s messages)", v.PeakChaosDay, counter.FormatNumber(float64(v.PeakChaosMessages)))))
	}
	if v.TopMediaSharer != nil {
		lines = append(lines, "", accentStyle.Render("📸 "+*v.TopMediaSharer))
		lines = append(lines, r.para(v.SharerLine, mutedStyle)...)
	}
	return lines
}

func (r slideRenderer) code(v deck.CodeView) []string {
	lines := []string{titleStyle.Render("Code & Geek Energy"), ""}
	if v.TotalCodeSnippets == 0 {
		return append(lines,
			headlineStyle.Render("No code here"),
			mutedStyle.Render("Just pure human conversation."))
	}
	lines = append(lines,
		bigNumberStyle.Render(r.num(cntSnippets, v.TotalCodeSnippets)),
		mutedStyle.Render("code snippets"),
	)
	if v.DominantLanguage != "" {
		lines = append(lines, textStyle.Render("Mostly "+v.DominantLanguage))
	}
	lines = append(lines, "", headlineStyle.Render(v.Geek.Title), bar(v.GeekEnergyScore, r.width/2))
	lines = append(lines, r.para(v.Geek.Desc, mutedStyle)...)
	if len(v.TopCoders) > 0 {
		lines = append(lines, "")
		for _, c := range v.TopCoders {
			langs := ""
			if len(c.Languages) > 0 {
				langs = " · " + strings.Join(c.Languages, ", ")
			}
			lines = append(lines, textStyle.Render(c.Name)+mutedStyle.Render(fmt.Sprintf(" %d snippets%s", c.CodeSnippets, langs)))
		}
	}
	return lines
}

func (r slideRenderer) sentiment(v deck.SentimentView) []string {
	lines := []string{
		titleStyle.Render("The Vibe Check"),
		"",
		headlineStyle.Render(v.Vibe.Title),
	}
	lines = append(lines, r.para(v.Vibe.Desc, mutedStyle)...)
	if scores := stats.SentimentScores(v.Sentiment); len(scores) > 0 {
		lines = append(lines, "", barStyle.Render(sentimentChart(scores)))
	}
	lines = append(lines, "")
	if v.HappiestMonth != "" {
		lines = append(lines, textStyle.Render("Happiest month: "+v.HappiestMonth))
	}
	if v.MostIntenseMonth != "" {
		lines = append(lines, textStyle.Render("Most intense: "+v.MostIntenseMonth))
	}
	if v.Disclaimer != "" {
		lines = append(lines, "")
		lines = append(lines, r.para(v.Disclaimer, footerStyle)...)
	}
	return lines
}

func (r slideRenderer) personality(v deck.PersonalityView) []string {
	lines := []string{titleStyle.Render("Chat Personalities"), ""}
	if len(v.Profiles) == 0 {
		return append(lines, mutedStyle.Render("Too quiet to tell."))
	}
	for _, p := range v.Profiles {
		lines = append(lines, headlineStyle.Render(p.PersonalityEmoji+" "+p.Name)+textStyle.Render(" · "+p.PersonalityType))
		if len(p.Traits) > 0 {
			lines = append(lines, r.para(strings.Join(p.Traits, " · "), mutedStyle)...)
		}
		lines = append(lines, "")
	}
	if v.GroupPersonality != "" {
		lines = append(lines, accentStyle.Render("The group: "+v.GroupPersonality))
	}
	return lines
}

func (r slideRenderer) emoji(v deck.EmojiView) []string {
	lines := []string{
		titleStyle.Render("Emoji Wrapped"),
		"",
		headlineStyle.Render(v.Top.Emoji + "  " + v.Top.Emoji + "  " + v.Top.Emoji),
		bigNumberStyle.Render(r.num(cntTopEmoji, v.Top.Count)) + mutedStyle.Render(" times"),
	}
	if len(v.Rest) > 0 {
		parts := make([]string, len(v.Rest))
		for i, e := range v.Rest {
			parts[i] = fmt.Sprintf("%s %s", e.Emoji, counter.FormatNumber(float64(e.Count)))
		}
		lines = append(lines, "", textStyle.Render(strings.Join(parts, "   ")))
	}
	lines = append(lines,
		"",
		textStyle.Render(r.num(cntEmojis, v.TotalEmojis)+" emojis in total"),
		mutedStyle.Render(fmt.Sprintf("%.2f per message", v.EmojiPerMessage)),
	)
	if v.StickerCount > 0 {
		lines = append(lines, mutedStyle.Render(counter.FormatNumber(float64(v.StickerCount))+" stickers"))
	}
	return lines
}

func (r slideRenderer) closing(v deck.ClosingView) []string {
	lines := []string{
		titleStyle.Render(v.Title),
		accentStyle.Render(fmt.Sprintf("WRAPPED %d", v.Year)),
		"",
		statGrid([][2]string{
			{r.num(cntMessages, v.Totals.Messages), "messages"},
			{r.num(cntParticipants, v.Totals.Participants), "people"},
			{r.num(cntDays, v.Totals.ActiveDays), "days"},
		}),
		"",
	}
	for _, h := range v.Highlights {
		lines = append(lines, r.para("• "+h, textStyle)...)
	}
	if v.GroupRole != "" {
		lines = append(lines, "", headlineStyle.Render("Your role: "+v.GroupRole))
	}
	lines = append(lines, "")
	lines = append(lines, r.para(v.Quote, mutedStyle)...)
	return lines
}

func placeholder(width int) string {
	lines := []string{
		errorStyle.Render("This slide could not be shown."),
		mutedStyle.Render("Swipe on to keep going."),
	}
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(strings.Join(lines, "\n"))
}

func statGrid(cells [][2]string) string {
	cols := make([]string, len(cells))
	for i, c := range cells {
		cols[i] = lipgloss.NewStyle().Padding(0, 2).Render(
			lipgloss.JoinVertical(lipgloss.Center,
				headlineStyle.Render(c[0]),
				mutedStyle.Render(c[1])))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func bar(frac float64, width int) string {
	if width < 4 {
		width = 4
	}
	if math.IsNaN(frac) || frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	filled := int(math.Round(frac * float64(width)))
	return barStyle.Render(strings.Repeat("█", filled)) + barTrackStyle.Render(strings.Repeat("░", width-filled))
}

// hourChart draws one block per hour scaled to the busiest hour.
func hourChart(counts []float64) string {
	return blockChart(counts, 0)
}

func hourAxis() string {
	return fmt.Sprintf("%-6s%-6s%-6s%-5s%s", "0", "6", "12", "18", "23")
}

// sentimentChart draws monthly scores from -1 to 1.
func sentimentChart(scores []float64) string {
	shifted := make([]float64, len(scores))
	for i, s := range scores {
		shifted[i] = s + 1
	}
	return blockChart(shifted, 2)
}

func blockChart(values []float64, top float64) string {
	for _, v := range values {
		if v > top {
			top = v
		}
	}
	levels := []rune(blocks)
	var b strings.Builder
	for _, v := range values {
		idx := 0
		if top > 0 && v > 0 {
			idx = int(math.Round(v / top * float64(len(levels)-1)))
		}
		if idx >= len(levels) {
			idx = len(levels) - 1
		}
		b.WriteRune(levels[idx])
	}
	return b.String()
}

func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
