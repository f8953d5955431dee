// Package historyui implements the interactive history browser.
package historyui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/verte-zerg/wrapdeck/internal/model"
	"github.com/verte-zerg/wrapdeck/internal/stats"
)

const (
	tabOverview = iota
	tabDecks
	tabExports
)

const timeLayout = "2006-01-02 15:04"

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#FF4D8D"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// Model implements the Bubble Tea history browser.
type Model struct {
	src   stats.HistorySource
	limit int

	history stats.History
	errMsg  string

	tabs      []string
	activeTab int
	overview  viewport.Model
	decks     table.Model
	exports   table.Model

	width  int
	height int

	filterMode bool
	filter     textinput.Model
	query      string
}

// NewModel constructs a browser over src showing at most limit rows per table.
func NewModel(src stats.HistorySource, limit int) *Model {
	m := &Model{
		src:      src,
		limit:    limit,
		tabs:     []string{"Overview", "Decks", "Exports"},
		overview: viewport.New(0, 0),
		decks:    newTable(deckColumns(80)),
		exports:  newTable(exportColumns(80)),
		filter:   newFilterInput("Chat: "),
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.filterMode {
			return m.updateFilter(msg)
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l", "tab":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "/":
			m.filterMode = true
			m.filter.SetValue(m.query)
			return m, m.filter.Focus()
		case "r":
			m.refresh()
			return m, nil
		case "g", "home":
			m.gotoTop()
			return m, nil
		case "G", "end":
			m.gotoBottom()
			return m, nil
		}
		return m, m.updateActive(msg)
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

// ActiveTab reports the selected tab index.
func (m *Model) ActiveTab() int {
	return m.activeTab
}

// Visible returns the records that pass the current chat filter.
func (m *Model) Visible() stats.History {
	if m.query == "" {
		return m.history
	}
	q := strings.ToLower(m.query)
	var out stats.History
	keep := make(map[string]bool)
	for _, p := range m.history.Presentations {
		if strings.Contains(strings.ToLower(p.ChatName), q) {
			out.Presentations = append(out.Presentations, p)
			keep[p.ID] = true
		}
	}
	for _, e := range m.history.Exports {
		if keep[e.PresentationID] {
			out.Exports = append(out.Exports, e)
		}
	}
	return out
}

func (m *Model) refresh() {
	h, err := stats.BuildHistory(context.Background(), m.src, m.limit)
	if err != nil {
		m.errMsg = err.Error()
		m.history = stats.History{}
	} else {
		m.errMsg = ""
		m.history = h
	}
	m.renderContents()
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filterMode = false
		m.filter.Blur()
		return m, nil
	case tea.KeyEnter:
		m.filterMode = false
		m.filter.Blur()
		m.query = strings.TrimSpace(m.filter.Value())
		m.renderContents()
		return m, nil
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	return m, cmd
}

func (m *Model) updateActive(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch m.activeTab {
	case tabDecks:
		m.decks, cmd = m.decks.Update(msg)
	case tabExports:
		m.exports, cmd = m.exports.Update(msg)
	default:
		m.overview, cmd = m.overview.Update(msg)
	}
	return cmd
}

func (m *Model) gotoTop() {
	switch m.activeTab {
	case tabDecks:
		m.decks.GotoTop()
	case tabExports:
		m.exports.GotoTop()
	default:
		m.overview.GotoTop()
	}
}

func (m *Model) gotoBottom() {
	switch m.activeTab {
	case tabDecks:
		m.decks.GotoBottom()
	case tabExports:
		m.exports.GotoBottom()
	default:
		m.overview.GotoBottom()
	}
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	next := (m.activeTab + delta + count) % count
	m.activeTab = next
	m.decks.Blur()
	m.exports.Blur()
	switch m.activeTab {
	case tabDecks:
		m.decks.Focus()
	case tabExports:
		m.exports.Focus()
	}
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if !m.filterMode && m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.overview.Width = m.width
	m.overview.Height = bodyHeight
	for _, t := range []*table.Model{&m.decks, &m.exports} {
		t.SetWidth(m.width)
		t.SetHeight(max(1, bodyHeight-1))
	}
	m.decks.SetColumns(deckColumns(m.width))
	m.exports.SetColumns(exportColumns(m.width))
	m.filter.Width = max(10, m.width-lipgloss.Width(m.filter.Prompt)-2)
}

func (m *Model) renderContents() {
	visible := m.Visible()
	width := m.width
	if width <= 0 {
		width = 80
	}
	if m.errMsg != "" {
		m.overview.SetContent("Failed to load history.")
	} else {
		m.overview.SetContent(renderOverview(visible, width))
	}
	m.decks.SetRows(deckRows(visible.Presentations))
	m.exports.SetRows(exportRows(visible.Exports))
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	summary := headerStyle.Render("Filter: none")
	switch {
	case m.filterMode:
		summary = m.filter.View()
	case m.query != "":
		summary = headerStyle.Render(truncateLine("Filter: chat~"+m.query, m.width))
	}
	return padLines(m.renderTabs(), m.width) + "\n" + padLine(summary, m.width)
}

func (m *Model) renderBody() string {
	v := m.Visible()
	switch m.activeTab {
	case tabDecks:
		if len(v.Presentations) == 0 {
			return "No decks found."
		}
		return tableMutedStyle.Render(m.decks.View())
	case tabExports:
		if len(v.Exports) == 0 {
			return "No exports found."
		}
		return tableMutedStyle.Render(m.exports.View())
	default:
		return m.overview.View()
	}
}

func (m *Model) renderFooter() string {
	if m.filterMode {
		return headerStyle.Render("enter: apply  esc: cancel  ctrl+c: quit")
	}
	help := headerStyle.Render("Nav: left/right  Scroll: up/down/pgup/pgdn  Filter: /  Reload: r  Quit: q")
	if m.errMsg != "" {
		return help + "\n" + errorStyle.Render(m.errMsg)
	}
	return help
}

func renderOverview(h stats.History, width int) string {
	if len(h.Presentations) == 0 && len(h.Exports) == 0 {
		return "No history found."
	}
	t := h.Totals()
	cards := []string{
		metricCard("Decks", fmt.Sprintf("%d", t.Presentations)),
		metricCard("Finished", fmt.Sprintf("%d", t.Completed)),
		metricCard("Avg slides", fmt.Sprintf("%.1f", t.AvgSlides)),
		metricCard("Exports", fmt.Sprintf("%d", t.Exports)),
		metricCard("Shared", fmt.Sprintf("%d", t.Shared)),
		metricCard("Exported", humanize.Bytes(uint64(t.Bytes))),
	}
	var grid string
	if width < 80 {
		grid = strings.Join(cards, "\n")
	} else {
		row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1], cards[2])
		row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[3], cards[4], cards[5])
		grid = lipgloss.JoinVertical(lipgloss.Left, row1, row2)
	}
	trend := h.SlidesTrend()
	if len(trend) < 2 {
		return grid
	}
	line := stats.Sparkline(trend)
	return grid + "\n\n" + cardTitleStyle.Render("Slides per deck") + "\n" + truncateLine(line, width)
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func newTable(cols []table.Column) table.Model {
	t := table.New(
		table.WithColumns(cols),
		table.WithHeight(1),
	)
	t.SetStyles(tableStyles())
	return t
}

func deckColumns(width int) []table.Column {
	cols := []table.Column{
		{Title: "Started", Width: 16},
		{Title: "Chat", Width: 20},
		{Title: "Slides", Width: 6},
		{Title: "Finished", Width: 8},
	}
	return append(cols, table.Column{Title: "Dataset", Width: restWidth(width, cols)})
}

func exportColumns(width int) []table.Column {
	cols := []table.Column{
		{Title: "Created", Width: 16},
		{Title: "Size", Width: 9},
		{Title: "Shared", Width: 6},
	}
	return append(cols, table.Column{Title: "Path", Width: restWidth(width, cols)})
}

// restWidth leaves the last column whatever the fixed ones do not use.
func restWidth(width int, cols []table.Column) int {
	used := 0
	for _, c := range cols {
		used += c.Width + 1
	}
	return max(10, width-used-1)
}

func deckRows(recs []model.PresentationRecord) []table.Row {
	rows := make([]table.Row, 0, len(recs))
	for _, p := range recs {
		rows = append(rows, table.Row{
			p.StartedAt.Local().Format(timeLayout),
			p.ChatName,
			fmt.Sprintf("%d", p.SlidesViewed),
			yesNo(p.Completed),
			p.DatasetPath,
		})
	}
	return rows
}

func exportRows(recs []model.ExportRecord) []table.Row {
	rows := make([]table.Row, 0, len(recs))
	for _, e := range recs {
		rows = append(rows, table.Row{
			e.CreatedAt.Local().Format(timeLayout),
			humanize.Bytes(uint64(e.Bytes)),
			yesNo(e.Shared),
			e.Path,
		})
	}
	return rows
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func newFilterInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.Placeholder = "chat name"
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
