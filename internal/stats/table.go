package stats

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

type align int

const (
	alignLeft align = iota
	alignRight
)

// column describes one column of a plain history table. Cells wider than
// limit are cut with an ellipsis; a zero limit keeps them whole.
type column struct {
	title string
	align align
	limit int
}

var (
	presentationColumns = []column{
		{title: "Started"},
		{title: "Chat", limit: 24},
		{title: "Slides", align: alignRight},
		{title: "Finished"},
	}
	exportColumns = []column{
		{title: "Created"},
		{title: "Size", align: alignRight},
		{title: "Shared"},
		{title: "Path"},
	}
)

// formatTable lays rows out under cols. Missing cells render empty and extra
// cells are dropped.
func formatTable(cols []column, rows [][]string) []string {
	if len(cols) == 0 {
		return nil
	}
	cells := make([][]string, 0, len(rows)+1)
	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.title
	}
	cells = append(cells, header)
	for _, row := range rows {
		fitted := make([]string, len(cols))
		for i, c := range cols {
			if i < len(row) {
				fitted[i] = clip(row[i], c.limit)
			}
		}
		cells = append(cells, fitted)
	}

	widths := make([]int, len(cols))
	for _, row := range cells {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	lines := make([]string, len(cells))
	for n, row := range cells {
		var b strings.Builder
		for i, cell := range row {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(pad(cell, widths[i], cols[i].align))
		}
		lines[n] = strings.TrimRight(b.String(), " ")
	}
	return lines
}

func clip(cell string, limit int) string {
	if limit <= 0 || runewidth.StringWidth(cell) <= limit {
		return cell
	}
	return runewidth.Truncate(cell, limit, "…")
}

func pad(cell string, width int, a align) string {
	gap := width - runewidth.StringWidth(cell)
	if gap <= 0 {
		return cell
	}
	if a == alignRight {
		return strings.Repeat(" ", gap) + cell
	}
	return cell + strings.Repeat(" ", gap)
}
