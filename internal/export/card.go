// Package export renders the closing card to PNG and hands it to the
// platform: clipboard share when available, file download otherwise.
package export

import (
	"fmt"

	"github.com/verte-zerg/wrapdeck/internal/counter"
	"github.com/verte-zerg/wrapdeck/internal/deck"
)

// Stat is one headline number on the card.
type Stat struct {
	Value string
	Label string
}

// Card is the content of the shareable image.
type Card struct {
	Title      string
	Subtitle   string
	Stats      []Stat
	Highlights []string
	Role       string
	Quote      string
}

// CardFromView builds the card for the closing slide.
func CardFromView(v deck.ClosingView) Card {
	return Card{
		Title:    v.Title,
		Subtitle: fmt.Sprintf("WRAPPED %d", v.Year),
		Stats: []Stat{
			{Value: counter.FormatNumber(float64(v.Totals.Messages)), Label: "messages"},
			{Value: counter.FormatNumber(float64(v.Totals.Participants)), Label: "people"},
			{Value: counter.FormatNumber(float64(v.Totals.ActiveDays)), Label: "days"},
		},
		Highlights: v.Highlights,
		Role:       v.GroupRole,
		Quote:      v.Quote,
	}
}
