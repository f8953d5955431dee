package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/wrapdeck/internal/deck"
)

type control int

const (
	ctrlNone control = iota
	ctrlPrev
	ctrlNext
	ctrlStart
	ctrlShare
	ctrlRestart
)

const (
	gutterWidth = 3
	footerRows  = 3
	buttonGap   = 3
)

// zone is an inclusive rectangle of cells owned by a control.
type zone struct {
	ctrl           control
	x0, y0, x1, y1 int
}

func (z zone) contains(x, y int) bool {
	return x >= z.x0 && x <= z.x1 && y >= z.y0 && y <= z.y1
}

type button struct {
	ctrl  control
	label string
}

func (m *Model) bodyHeight() int {
	h := m.height - footerRows + 1 - lipgloss.Height(m.help.View(m.keys))
	if h < 1 {
		h = 1
	}
	return h
}

func showPrev(position int) bool {
	return position > deck.FirstSlide
}

func showNext(position int) bool {
	return position > deck.FirstSlide && position < deck.LastSlide
}

func (m *Model) buttons() []button {
	switch m.engine.Position() {
	case deck.FirstSlide:
		return []button{{ctrl: ctrlStart, label: "[ Start ]"}}
	case deck.LastSlide:
		share := "[ Share ]"
		if m.exporting {
			share = "[ " + m.spinner.View() + " Sharing ]"
		}
		return []button{
			{ctrl: ctrlShare, label: share},
			{ctrl: ctrlRestart, label: "[ Restart ]"},
		}
	default:
		return nil
	}
}

// zones returns the hit areas of the visible controls.
func (m *Model) zones() []zone {
	var out []zone
	pos := m.engine.Position()
	mid := m.bodyHeight() / 2
	if showPrev(pos) {
		out = append(out, zone{ctrl: ctrlPrev, x0: 0, y0: mid - 1, x1: gutterWidth - 1, y1: mid + 1})
	}
	if showNext(pos) {
		out = append(out, zone{ctrl: ctrlNext, x0: m.width - gutterWidth, y0: mid - 1, x1: m.width - 1, y1: mid + 1})
	}
	buttons := m.buttons()
	if len(buttons) == 0 {
		return out
	}
	row := m.bodyHeight()
	x := (m.width - buttonsWidth(buttons)) / 2
	if x < 0 {
		x = 0
	}
	for _, b := range buttons {
		w := lipgloss.Width(b.label)
		out = append(out, zone{ctrl: b.ctrl, x0: x, y0: row, x1: x + w - 1, y1: row})
		x += w + buttonGap
	}
	return out
}

// hit returns the control under the cell, or ctrlNone for the surface.
func (m *Model) hit(x, y int) control {
	for _, z := range m.zones() {
		if z.contains(x, y) {
			return z.ctrl
		}
	}
	return ctrlNone
}

func buttonsWidth(buttons []button) int {
	total := 0
	for i, b := range buttons {
		if i > 0 {
			total += buttonGap
		}
		total += lipgloss.Width(b.label)
	}
	return total
}

func (m *Model) renderButtons() string {
	buttons := m.buttons()
	parts := make([]string, len(buttons))
	for i, b := range buttons {
		style := buttonStyle
		if b.ctrl == ctrlRestart {
			style = secondaryButtonStyle
		}
		parts[i] = style.Render(b.label)
	}
	return strings.Join(parts, strings.Repeat(" ", buttonGap))
}

func (m *Model) renderGutter(arrow string, visible bool) string {
	h := m.bodyHeight()
	lines := make([]string, h)
	blank := strings.Repeat(" ", gutterWidth)
	for i := range lines {
		lines[i] = blank
	}
	if visible {
		lines[h/2] = lipgloss.PlaceHorizontal(gutterWidth, lipgloss.Center, arrowStyle.Render(arrow))
	}
	return strings.Join(lines, "\n")
}
