package stats

import (
	"strings"
	"testing"

	"github.com/verte-zerg/wrapdeck/internal/dataset"
	"github.com/verte-zerg/wrapdeck/internal/model"
)

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{1, 2, 3, 4}, 2)
	want := []float64{1, 1.5, 2.5, 3.5}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{0, 9}); got != " @" {
		t.Fatalf("unexpected sparkline: %q", got)
	}
	if got := Sparkline([]float64{2, 2, 2}); got != "+++" {
		t.Fatalf("unexpected flat sparkline: %q", got)
	}
	if Sparkline(nil) != "" {
		t.Fatalf("expected empty sparkline")
	}
}

func TestHourlyCountsPrefersActivity(t *testing.T) {
	r := model.Rhythm{
		ActivityByHour: []model.HourlyActivity{{Hour: 21, Count: 40}, {Hour: 30, Count: 9}},
		MessagesByHour: map[string]int{"3": 100},
	}
	got := HourlyCounts(r)
	if len(got) != 24 || got[21] != 40 || got[3] != 0 {
		t.Fatalf("unexpected counts: %v", got)
	}

	r.ActivityByHour = nil
	got = HourlyCounts(r)
	if got[3] != 100 {
		t.Fatalf("expected fallback to messages_by_hour, got %v", got)
	}
}

func TestSentimentScoresSorted(t *testing.T) {
	s := model.Sentiment{MonthlySentiment: []model.MonthlySentiment{
		{Month: "2024-03", Score: 0.3},
		{Month: "2024-01", Score: 0.1},
	}}
	got := SentimentScores(s)
	if got[0] != 0.1 || got[1] != 0.3 {
		t.Fatalf("unexpected order: %v", got)
	}
}

func TestMarkdownSample(t *testing.T) {
	ds, err := dataset.Sample()
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	md := Markdown(ds)
	for _, want := range []string{
		"# Beach Crew Wrapped 2024",
		"| Messages | 48,213 |",
		"## Who carried the group",
		"Maya",
		"Top sharer: Priya.",
		"Moods: joy 61.1%, love 22.2%, surprise 16.7%.",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("expected %q in markdown:\n%s", want, md)
		}
	}
}

func TestMarkdownEmptyDataset(t *testing.T) {
	md := Markdown(&model.WrappedDataset{})
	if !strings.Contains(md, "# WhatsApp Group Wrapped 0") {
		t.Fatalf("expected fallback title:\n%s", md)
	}
	if strings.Contains(md, "## Who carried the group") {
		t.Fatalf("expected contributors section to be skipped")
	}
}
