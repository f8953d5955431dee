package stats

import (
	"context"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/verte-zerg/wrapdeck/internal/model"
)

// HistorySource lists stored presentations and exports.
type HistorySource interface {
	ListPresentations(ctx context.Context, limit int) ([]model.PresentationRecord, error)
	ListExports(ctx context.Context, limit int) ([]model.ExportRecord, error)
}

// History contains recent presentation and export records.
type History struct {
	Presentations []model.PresentationRecord
	Exports       []model.ExportRecord
}

const historyTimeLayout = "2006-01-02 15:04"

// BuildHistory loads the most recent records from src.
func BuildHistory(ctx context.Context, src HistorySource, limit int) (History, error) {
	presentations, err := src.ListPresentations(ctx, limit)
	if err != nil {
		return History{}, err
	}
	exports, err := src.ListExports(ctx, limit)
	if err != nil {
		return History{}, err
	}
	return History{Presentations: presentations, Exports: exports}, nil
}

// HistoryTotals aggregates a History.
type HistoryTotals struct {
	Presentations int
	Completed     int
	AvgSlides     float64
	Exports       int
	Shared        int
	Bytes         int64
}

// Totals sums the records in h.
func (h History) Totals() HistoryTotals {
	t := HistoryTotals{Presentations: len(h.Presentations), Exports: len(h.Exports)}
	slides := 0
	for _, p := range h.Presentations {
		slides += p.SlidesViewed
		if p.Completed {
			t.Completed++
		}
	}
	if t.Presentations > 0 {
		t.AvgSlides = float64(slides) / float64(t.Presentations)
	}
	for _, e := range h.Exports {
		t.Bytes += e.Bytes
		if e.Shared {
			t.Shared++
		}
	}
	return t
}

// SlidesTrend returns slides viewed per presentation, oldest first.
func (h History) SlidesTrend() []float64 {
	out := make([]float64, len(h.Presentations))
	for i, p := range h.Presentations {
		out[len(out)-1-i] = float64(p.SlidesViewed)
	}
	return out
}

// RenderHistory prints presentation and export tables.
func RenderHistory(w io.Writer, h History) error {
	if len(h.Presentations) == 0 && len(h.Exports) == 0 {
		_, err := fmt.Fprintln(w, "No history found.")
		return err
	}
	if len(h.Presentations) > 0 {
		rows := make([][]string, 0, len(h.Presentations))
		for _, p := range h.Presentations {
			done := "no"
			if p.Completed {
				done = "yes"
			}
			rows = append(rows, []string{
				p.StartedAt.Local().Format(historyTimeLayout),
				p.ChatName,
				fmt.Sprintf("%d", p.SlidesViewed),
				done,
			})
		}
		if err := writeLines(w, "Presentations", formatTable(presentationColumns, rows)); err != nil {
			return err
		}
	}
	if len(h.Exports) > 0 {
		rows := make([][]string, 0, len(h.Exports))
		for _, e := range h.Exports {
			shared := "no"
			if e.Shared {
				shared = "yes"
			}
			rows = append(rows, []string{
				e.CreatedAt.Local().Format(historyTimeLayout),
				humanize.Bytes(uint64(e.Bytes)),
				shared,
				e.Path,
			})
		}
		if err := writeLines(w, "Exports", formatTable(exportColumns, rows)); err != nil {
			return err
		}
	}
	return nil
}

func writeLines(w io.Writer, title string, lines []string) error {
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}
