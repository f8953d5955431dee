package tui

import (
	"fmt"
	"time"

	"github.com/verte-zerg/wrapdeck/internal/counter"
	"github.com/verte-zerg/wrapdeck/internal/deck"
)

// Counter names shared by registerCounters and the slide renderers.
const (
	cntMessages     = "messages"
	cntWords        = "words"
	cntDays         = "days"
	cntParticipants = "participants"
	cntPerDay       = "per-day"
	cntMedia        = "media"
	cntMVP          = "mvp"
	cntSnippets     = "snippets"
	cntEmojis       = "emojis"
	cntTopEmoji     = "top-emoji"
)

func mediaCounter(label string) string {
	return "media-" + label
}

func staggered(base counter.Options, i int) counter.Options {
	base.Delay = time.Duration(200+150*i) * time.Millisecond
	return base
}

// registerCounters mounts the count-up animations a slide shows.
func registerCounters(g *counter.Group, v deck.View, base counter.Options) {
	switch v := v.(type) {
	case deck.OverviewView:
		g.Add(cntMessages, float64(v.TotalMessages), staggered(base, 0))
		g.Add(cntWords, float64(v.TotalWords), staggered(base, 1))
		g.Add(cntDays, float64(v.ActiveDays), staggered(base, 2))
		g.Add(cntParticipants, float64(v.ParticipantsCount), staggered(base, 3))
		g.Add(cntPerDay, float64(v.MessagesPerDay), staggered(base, 4))
	case deck.ContributionsView:
		if v.MVP != nil {
			g.Add(cntMVP, float64(v.MVP.Messages), staggered(base, 1))
		}
	case deck.MediaView:
		g.Add(cntMedia, float64(v.TotalMedia), staggered(base, 0))
		for i, c := range v.Breakdown {
			g.Add(mediaCounter(c.Label), float64(c.Value), staggered(base, i+1))
		}
	case deck.CodeView:
		g.Add(cntSnippets, float64(v.TotalCodeSnippets), staggered(base, 0))
	case deck.EmojiView:
		g.Add(cntTopEmoji, float64(v.Top.Count), staggered(base, 1))
		g.Add(cntEmojis, float64(v.TotalEmojis), staggered(base, 2))
	case deck.ClosingView:
		g.Add(cntMessages, float64(v.Totals.Messages), staggered(base, 0))
		g.Add(cntParticipants, float64(v.Totals.Participants), staggered(base, 1))
		g.Add(cntDays, float64(v.Totals.ActiveDays), staggered(base, 2))
	}
}

func percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}
