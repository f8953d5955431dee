package stats

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/dustin/go-humanize"

	"github.com/verte-zerg/wrapdeck/internal/model"
)

const (
	fallbackTitle   = "WhatsApp Group"
	sentimentWindow = 3
)

// Markdown renders the dataset as a markdown recap.
func Markdown(ds *model.WrappedDataset) string {
	var b strings.Builder
	sum := ds.Slide10
	title := sum.ChatName
	if title == "" {
		title = fallbackTitle
	}
	fmt.Fprintf(&b, "# %s Wrapped %d\n\n", title, sum.Year)
	if sum.SummaryText != "" {
		fmt.Fprintf(&b, "> %s\n\n", sum.SummaryText)
	}

	ov := ds.Slide1
	b.WriteString("## The year in numbers\n\n")
	writeTable(&b, []string{"Stat", "Value"}, [][]string{
		{"Messages", humanize.Comma(int64(ov.TotalMessages))},
		{"Words", humanize.Comma(int64(ov.TotalWords))},
		{"Active days", humanize.Comma(int64(ov.ActiveDays))},
		{"Participants", humanize.Comma(int64(ov.ParticipantsCount))},
		{"Media shared", humanize.Comma(int64(ov.MediaShared))},
	})
	if ov.DateRange.Start != "" || ov.DateRange.End != "" {
		fmt.Fprintf(&b, "From %s to %s.\n\n", ov.DateRange.Start, ov.DateRange.End)
	}

	r := ds.Slide2
	b.WriteString("## Rhythm\n\n")
	fmt.Fprintf(&b, "Peak hour **%s**, busiest day **%s**. Chronotype: %s %s.\n\n",
		r.MostActiveHourLabel, r.MostActiveDay, r.Chronotype, r.ChronotypeEmoji)
	b.WriteString("```\n")
	b.WriteString("|" + Sparkline(HourlyCounts(r)) + "|\n")
	b.WriteString(" 0     6     12    18   23\n")
	b.WriteString("```\n\n")
	if days := TopCounts(r.MessagesByDay, 3); len(days) > 0 {
		parts := make([]string, len(days))
		for i, d := range days {
			parts[i] = fmt.Sprintf("%s (%s)", d.Key, humanize.Comma(int64(d.Count)))
		}
		fmt.Fprintf(&b, "Busiest days: %s.\n\n", strings.Join(parts, ", "))
	}

	c := ds.Slide4
	if len(c.Contributors) > 0 {
		b.WriteString("## Who carried the group\n\n")
		rows := make([][]string, 0, len(c.Contributors))
		for i, cs := range c.Contributors {
			rows = append(rows, []string{
				fmt.Sprintf("%d", i+1),
				cs.Name,
				humanize.Comma(int64(cs.Messages)),
				fmt.Sprintf("%.1f%%", cs.Percentage),
			})
		}
		writeTable(&b, []string{"#", "Name", "Messages", "Share"}, rows)
		if len(c.SilentMembers) > 0 {
			fmt.Fprintf(&b, "Lurkers: %s.\n\n", strings.Join(c.SilentMembers, ", "))
		}
	}

	if ps := ds.Slide3.Personalities; len(ps) > 0 {
		b.WriteString("## Personalities\n\n")
		for _, p := range ps {
			fmt.Fprintf(&b, "- %s **%s**: %s", p.PersonalityEmoji, p.Name, p.PersonalityType)
			if len(p.Traits) > 0 {
				fmt.Fprintf(&b, " (%s)", strings.Join(p.Traits, ", "))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	e := ds.Slide5
	b.WriteString("## Emoji\n\n")
	fmt.Fprintf(&b, "%s emojis, %.2f per message.", humanize.Comma(int64(e.TotalEmojis)), e.EmojiPerMessage)
	if len(e.TopEmojis) > 0 {
		parts := make([]string, len(e.TopEmojis))
		for i, em := range e.TopEmojis {
			parts[i] = fmt.Sprintf("%s %s", em.Emoji, humanize.Comma(int64(em.Count)))
		}
		fmt.Fprintf(&b, " Top: %s.", strings.Join(parts, ", "))
	}
	b.WriteString("\n\n")
	if moods := TopCounts(e.MoodBreakdown, 3); len(moods) > 0 {
		parts := make([]string, len(moods))
		for i, m := range moods {
			parts[i] = fmt.Sprintf("%s %s%%", m.Key, humanize.FtoaWithDigits(m.Count, 1))
		}
		fmt.Fprintf(&b, "Moods: %s.\n\n", strings.Join(parts, ", "))
	}

	m := ds.Slide6
	b.WriteString("## Media and chaos\n\n")
	writeTable(&b, []string{"Kind", "Count"}, [][]string{
		{"Images", humanize.Comma(int64(m.ImageCount))},
		{"Videos", humanize.Comma(int64(m.VideoCount))},
		{"Stickers", humanize.Comma(int64(m.StickerCount))},
		{"GIFs", humanize.Comma(int64(m.GifCount))},
		{"Documents", humanize.Comma(int64(m.DocumentCount))},
	})
	fmt.Fprintf(&b, "Chaos index %.2f, peak on %s with %s messages.",
		m.ChaosIndex, m.PeakChaosDay, humanize.Comma(int64(m.PeakChaosMessages)))
	if m.TopMediaSharer != nil && *m.TopMediaSharer != "" {
		fmt.Fprintf(&b, " Top sharer: %s.", *m.TopMediaSharer)
	}
	b.WriteString("\n\n")

	code := ds.Slide7
	if code.TotalCodeSnippets > 0 {
		b.WriteString("## Code\n\n")
		fmt.Fprintf(&b, "%s snippets, mostly %s. Geek energy %.0f%%.\n\n",
			humanize.Comma(int64(code.TotalCodeSnippets)), code.DominantLanguage, code.GeekEnergyScore*100)
	}

	s := ds.Slide8
	if scores := SentimentScores(s); len(scores) > 0 {
		b.WriteString("## Mood over the year\n\n")
		b.WriteString("```\n")
		b.WriteString("monthly |" + Sparkline(scores) + "|\n")
		b.WriteString("trend   |" + Sparkline(MovingAverage(scores, sentimentWindow)) + "|\n")
		b.WriteString("```\n\n")
		fmt.Fprintf(&b, "Happiest month %s, most intense %s.\n\n", s.HappiestMonth, s.MostIntenseMonth)
	}

	if topics := ds.Slide9.Topics; len(topics) > 0 {
		b.WriteString("## What you talked about\n\n")
		for _, t := range topics {
			fmt.Fprintf(&b, "- **%s** (%.0f%%)", t.Label, t.Weight*100)
			if len(t.Keywords) > 0 {
				fmt.Fprintf(&b, ": %s", strings.Join(t.Keywords, ", "))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(sum.ShareableStats) > 0 {
		b.WriteString("## Share\n\n")
		for _, st := range sum.ShareableStats {
			fmt.Fprintf(&b, "- %s\n", st)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Render renders the dataset recap for a terminal of the given width.
func Render(ds *model.WrappedDataset, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create renderer: %w", err)
	}
	out, err := renderer.Render(Markdown(ds))
	if err != nil {
		return "", fmt.Errorf("failed to render summary: %w", err)
	}
	return out, nil
}

func writeTable(b *strings.Builder, headers []string, rows [][]string) {
	b.WriteString("| " + strings.Join(escapeCells(headers), " | ") + " |\n")
	b.WriteString("|" + strings.Repeat(" --- |", len(headers)) + "\n")
	for _, row := range rows {
		b.WriteString("| " + strings.Join(escapeCells(row), " | ") + " |\n")
	}
	b.WriteString("\n")
}

func escapeCells(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = strings.ReplaceAll(c, "|", `\|`)
	}
	return out
}
