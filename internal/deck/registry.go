package deck

import (
	"errors"
	"fmt"

	"github.com/verte-zerg/wrapdeck/internal/model"
)

// ErrNoSlide reports a position without a registry entry.
var ErrNoSlide = errors.New("no slide registered")

// Kind identifies a slide layout.
type Kind int

// Slide kinds in presentation order.
const (
	KindIntro Kind = iota
	KindOverview
	KindRhythm
	KindContributions
	KindTopics
	KindMedia
	KindCode
	KindSentiment
	KindPersonality
	KindEmoji
	KindClosing
)

var kindNames = map[Kind]string{
	KindIntro:         "intro",
	KindOverview:      "overview",
	KindRhythm:        "rhythm",
	KindContributions: "contributions",
	KindTopics:        "topics",
	KindMedia:         "media",
	KindCode:          "code",
	KindSentiment:     "sentiment",
	KindPersonality:   "personality",
	KindEmoji:         "emoji",
	KindClosing:       "closing",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Entry binds a position to the data it shows.
type Entry struct {
	Kind Kind
	// Fields names the dataset fields the slide reads.
	Fields []string
	Select func(*model.WrappedDataset) View
}

// Registry is the ordered position table.
type Registry struct {
	entries map[int]Entry
}

// NewRegistry builds a registry from entries in position order.
func NewRegistry(entries ...Entry) *Registry {
	r := &Registry{entries: make(map[int]Entry, len(entries))}
	for i, e := range entries {
		r.entries[i] = e
	}
	return r
}

// DefaultRegistry returns the stock slide order.
func DefaultRegistry() *Registry {
	return NewRegistry(
		Entry{Kind: KindIntro, Select: func(*model.WrappedDataset) View { return IntroView{} }},
		Entry{Kind: KindOverview, Fields: []string{"slide1"}, Select: selectOverview},
		Entry{Kind: KindRhythm, Fields: []string{"slide2"}, Select: selectRhythm},
		Entry{Kind: KindContributions, Fields: []string{"slide4", "slide3"}, Select: selectContributions},
		Entry{Kind: KindTopics, Fields: []string{"slide9"}, Select: selectTopics},
		Entry{Kind: KindMedia, Fields: []string{"slide6"}, Select: selectMedia},
		Entry{Kind: KindCode, Fields: []string{"slide7"}, Select: selectCode},
		Entry{Kind: KindSentiment, Fields: []string{"slide8"}, Select: selectSentiment},
		Entry{Kind: KindPersonality, Fields: []string{"slide3"}, Select: selectPersonality},
		Entry{Kind: KindEmoji, Fields: []string{"slide5"}, Select: selectEmoji},
		Entry{Kind: KindClosing, Fields: model.DatasetFields, Select: selectClosing},
	)
}

// Lookup returns the entry for pos.
func (r *Registry) Lookup(pos int) (Entry, error) {
	e, ok := r.entries[pos]
	if !ok || e.Select == nil {
		return Entry{}, fmt.Errorf("%w at position %d", ErrNoSlide, pos)
	}
	return e, nil
}

// Validate checks that every position of the deck is registered.
func (r *Registry) Validate() error {
	for pos := FirstSlide; pos <= LastSlide; pos++ {
		if _, err := r.Lookup(pos); err != nil {
			return fmt.Errorf("invalid slide registry: %w", err)
		}
	}
	return nil
}
