// Package stats derives text summaries and history reports from wrapped datasets.
package stats

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/verte-zerg/wrapdeck/internal/model"
)

const sparkChars = " .:-=+*#%@"

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// HourlyCounts returns 24 message counts indexed by hour of day.
// activity_by_hour wins over messages_by_hour when both are present.
func HourlyCounts(r model.Rhythm) []float64 {
	out := make([]float64, 24)
	if len(r.ActivityByHour) > 0 {
		for _, a := range r.ActivityByHour {
			if a.Hour >= 0 && a.Hour < 24 {
				out[a.Hour] += float64(a.Count)
			}
		}
		return out
	}
	for k, v := range r.MessagesByHour {
		h, err := strconv.Atoi(strings.TrimSpace(k))
		if err != nil || h < 0 || h >= 24 {
			continue
		}
		out[h] += float64(v)
	}
	return out
}

// SentimentScores returns monthly sentiment scores in chronological order.
func SentimentScores(s model.Sentiment) []float64 {
	months := make([]model.MonthlySentiment, len(s.MonthlySentiment))
	copy(months, s.MonthlySentiment)
	sort.SliceStable(months, func(i, j int) bool {
		return months[i].Month < months[j].Month
	})
	out := make([]float64, len(months))
	for i, m := range months {
		out[i] = m.Score
	}
	return out
}
