package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/wrapdeck/internal/deck"
)

type keyMap struct {
	Next    key.Binding
	Prev    key.Binding
	Start   key.Binding
	Share   key.Binding
	Restart key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Next: key.NewBinding(
			key.WithKeys("right", "down", " "),
			key.WithHelp("→/space", "next"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "up"),
			key.WithHelp("←", "back"),
		),
		Start: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start"),
		),
		Share: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "share"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Start},
		{k.Share, k.Restart},
		{k.Help, k.Quit},
	}
}

// slideKeys enables the bindings that apply on the given slide.
func (k *keyMap) slideKeys(position int) {
	k.Start.SetEnabled(position == deck.FirstSlide)
	k.Share.SetEnabled(position == deck.LastSlide)
	k.Restart.SetEnabled(position == deck.LastSlide)
	k.Prev.SetEnabled(position > deck.FirstSlide)
	k.Next.SetEnabled(position < deck.LastSlide)
}

// navKey translates a terminal key into a navigation key name.
func navKey(msg tea.KeyMsg) (deck.Key, bool) {
	switch msg.Type {
	case tea.KeyRight:
		return deck.KeyArrowRight, true
	case tea.KeyLeft:
		return deck.KeyArrowLeft, true
	case tea.KeyUp:
		return deck.KeyArrowUp, true
	case tea.KeyDown:
		return deck.KeyArrowDown, true
	case tea.KeySpace:
		return deck.KeySpace, true
	default:
		return "", false
	}
}
