// Package tui provides the Bubble Tea presentation interface.
package tui

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/verte-zerg/wrapdeck/internal/counter"
	"github.com/verte-zerg/wrapdeck/internal/deck"
	"github.com/verte-zerg/wrapdeck/internal/export"
)

const (
	// DefaultCellWidth converts terminal columns into drag units.
	DefaultCellWidth = 8.0

	maxContentWidth   = 64
	flagDuration      = 2 * time.Second
	transitionFPS     = 60
	transitionOmega   = 18.7
	transitionDamping = 0.94
	settleEpsilon     = 0.005
)

// Options configure a presentation Model.
type Options struct {
	Thresholds      deck.Thresholds
	CellWidth       float64
	CounterDuration time.Duration
	Transitions     bool
	// Registry is used when the deck restarts. Nil means the default order.
	Registry *deck.Registry
	Bridge   *export.Bridge
	Logger   *zap.Logger
	Now      func() time.Time
}

type frameMsg struct {
	gen int
	at  time.Time
}

type exportDoneMsg struct {
	gen int
	res export.Result
	err error
}

type flagExpiredMsg struct {
	gen int
	id  int
}

// Model implements the Bubble Tea presentation UI.
type Model struct {
	engine *deck.Engine
	opts   Options
	logger *zap.Logger

	keys    keyMap
	help    help.Model
	dots    paginator.Model
	spinner spinner.Model
	gesture *deck.Gesture

	width  int
	height int

	ctx         context.Context
	slideCtx    context.Context
	cancelSlide context.CancelFunc
	gen         int
	initCmd     tea.Cmd

	view      deck.View
	viewErr   error
	counters  *counter.Group
	lastFrame time.Time
	failedGen int

	spring   harmonica.Spring
	offset   float64
	velocity float64

	exporting bool
	flag      string
	flagOK    bool
	flagID    int

	maxSeen  int
	restarts int
}

// NewModel constructs a presentation model for engine. Cancelling ctx stops
// every pending animation.
func NewModel(ctx context.Context, engine *deck.Engine, opts Options) *Model {
	if opts.Thresholds == (deck.Thresholds{}) {
		opts.Thresholds = deck.DefaultThresholds()
	}
	if opts.CellWidth <= 0 {
		opts.CellWidth = DefaultCellWidth
	}
	if opts.CounterDuration <= 0 {
		opts.CounterDuration = counter.DefaultDuration
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	dots := paginator.New()
	dots.Type = paginator.Dots
	dots.ActiveDot = headlineStyle.Render("• ")
	dots.InactiveDot = footerStyle.Render("• ")

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &Model{
		engine:  engine,
		opts:    opts,
		logger:  logger,
		keys:    newKeyMap(),
		help:    help.New(),
		dots:    dots,
		spinner: sp,
		gesture: deck.NewGesture(),
		ctx:     ctx,
		spring:  harmonica.NewSpring(harmonica.FPS(transitionFPS), transitionOmega, transitionDamping),
	}
	m.initCmd = m.mountSlide()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.initCmd
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	case frameMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		return m, m.advanceFrame(msg.at)
	case exportDoneMsg:
		return m, m.finishExport(msg)
	case flagExpiredMsg:
		if msg.gen == m.gen && msg.id == m.flagID {
			m.flag = ""
		}
		return m, nil
	case spinner.TickMsg:
		if !m.exporting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return m.renderSlide(maxContentWidth)
	}
	pos := m.engine.Position()
	bodyH := m.bodyHeight()
	slideW := m.width - 2*gutterWidth
	if slideW < 1 {
		slideW = 1
	}
	contentW := slideW - 2
	if contentW > maxContentWidth {
		contentW = maxContentWidth
	}
	if contentW < 1 {
		contentW = 1
	}
	content := cropLines(m.renderSlide(contentW), bodyH)
	hpos := lipgloss.Position(math.Max(0, math.Min(1, 0.5+0.5*m.offset)))
	body := lipgloss.Place(slideW, bodyH, hpos, lipgloss.Center, content)
	row := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderGutter("‹", showPrev(pos)),
		body,
		m.renderGutter("›", showNext(pos)),
	)
	action := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, m.renderAction())
	status := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, m.renderStatus())
	helpView := lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.help.View(m.keys))
	return row + "\n" + action + "\n" + status + "\n" + helpView
}

// Progress reports how far the deck was played.
func (m *Model) Progress() (slidesViewed int, completed bool) {
	return m.maxSeen + 1, m.maxSeen == deck.LastSlide
}

// Restarts returns how many times the deck was restarted from the closing slide.
func (m *Model) Restarts() int {
	return m.restarts
}

// Position returns the current slide position.
func (m *Model) Position() int {
	return m.engine.Position()
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.shutdown()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	if k, ok := navKey(msg); ok {
		if intent, handled := deck.KeyIntent(k); handled {
			return m, m.apply(intent)
		}
	}
	switch {
	case key.Matches(msg, m.keys.Start):
		return m, m.activate(ctrlStart)
	case key.Matches(msg, m.keys.Share):
		return m, m.activate(ctrlShare)
	case key.Matches(msg, m.keys.Restart):
		return m, m.activate(ctrlRestart)
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	x := float64(msg.X) * m.opts.CellWidth
	// Terminal cells are roughly twice as tall as they are wide.
	y := float64(msg.Y) * m.opts.CellWidth * 2
	now := m.opts.Now()
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		m.gesture.Press(x, y, now)
	case tea.MouseActionMotion:
		m.gesture.Move(x, y, now)
	case tea.MouseActionRelease:
		rel, ok := m.gesture.End(x, y, now)
		if !ok {
			return nil
		}
		if !rel.Tap {
			return m.apply(deck.DragIntent(rel.DX, rel.VX, m.opts.Thresholds))
		}
		ctrl := m.hit(msg.X, msg.Y)
		if ctrl != ctrlNone {
			return m.activate(ctrl)
		}
		return m.apply(deck.TapIntent(deck.Surface, m.engine.Position()))
	}
	return nil
}

func (m *Model) activate(c control) tea.Cmd {
	pos := m.engine.Position()
	switch c {
	case ctrlPrev:
		return m.apply(deck.Retreat)
	case ctrlNext:
		return m.apply(deck.Advance)
	case ctrlStart:
		if pos == deck.FirstSlide {
			return m.apply(deck.Advance)
		}
	case ctrlShare:
		if pos == deck.LastSlide {
			return m.startExport()
		}
	case ctrlRestart:
		if pos == deck.LastSlide {
			return m.restart()
		}
	}
	return nil
}

func (m *Model) apply(intent deck.Intent) tea.Cmd {
	if intent == deck.None {
		return nil
	}
	if !m.engine.Apply(intent) {
		return nil
	}
	return m.mountSlide()
}

// mountSlide tears down the previous slide and starts the current one.
func (m *Model) mountSlide() tea.Cmd {
	if m.cancelSlide != nil {
		m.cancelSlide()
	}
	m.gen++
	m.slideCtx, m.cancelSlide = context.WithCancel(m.ctx)
	m.counters = counter.NewGroup()
	m.exporting = false
	m.flag = ""
	m.gesture.Cancel()

	state := m.engine.State()
	if state.Position > m.maxSeen {
		m.maxSeen = state.Position
	}
	m.keys.slideKeys(state.Position)
	if cur, total, ok := deck.Indicator(state.Position); ok {
		m.dots.TotalPages = total
		m.dots.Page = cur
	}

	m.view, m.viewErr = m.engine.View()
	if m.viewErr != nil {
		m.logger.Error("failed to select slide", zap.Int("position", state.Position), zap.Error(m.viewErr))
	} else {
		registerCounters(m.counters, m.view, counter.Options{Duration: m.opts.CounterDuration})
	}

	m.offset, m.velocity = 0, 0
	if m.opts.Transitions {
		m.offset = float64(state.Direction.Sign())
	}
	m.lastFrame = m.opts.Now()
	m.logger.Debug("slide mounted",
		zap.Int("position", state.Position),
		zap.Stringer("direction", state.Direction),
		zap.Int("seq", state.Seq))

	if !m.animating() {
		return nil
	}
	return m.nextFrame()
}

func (m *Model) animating() bool {
	return m.offset != 0 || !m.counters.Done()
}

func (m *Model) nextFrame() tea.Cmd {
	ctx, gen := m.slideCtx, m.gen
	return func() tea.Msg {
		at, ok := counter.Wait(ctx, counter.Frame(transitionFPS))
		if !ok {
			return nil
		}
		return frameMsg{gen: gen, at: at}
	}
}

func (m *Model) advanceFrame(at time.Time) tea.Cmd {
	dt := at.Sub(m.lastFrame)
	if dt < 0 {
		dt = 0
	}
	m.lastFrame = at
	m.counters.Step(dt)
	if m.offset != 0 {
		m.offset, m.velocity = m.spring.Update(m.offset, m.velocity, 0)
		if math.Abs(m.offset) < settleEpsilon && math.Abs(m.velocity) < settleEpsilon {
			m.offset, m.velocity = 0, 0
		}
	}
	if !m.animating() {
		return nil
	}
	return m.nextFrame()
}

func (m *Model) startExport() tea.Cmd {
	if m.exporting {
		return nil
	}
	if m.opts.Bridge == nil {
		return m.showFlag("Export is not available", false)
	}
	closing, ok := m.view.(deck.ClosingView)
	if !ok {
		return nil
	}
	m.exporting = true
	m.flag = ""
	card := export.CardFromView(closing)
	ctx, gen, bridge := m.slideCtx, m.gen, m.opts.Bridge
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		res, err := bridge.Export(ctx, card)
		return exportDoneMsg{gen: gen, res: res, err: err}
	})
}

func (m *Model) finishExport(msg exportDoneMsg) tea.Cmd {
	if msg.gen != m.gen {
		m.logger.Debug("dropping export result for unmounted slide")
		return nil
	}
	m.exporting = false
	if msg.err != nil {
		m.logger.Warn("export failed", zap.Error(msg.err))
		return m.showFlag("Export failed, press s to retry", false)
	}
	if msg.res.Shared {
		return m.showFlag("Saved! Path copied to clipboard", true)
	}
	return m.showFlag("Saved! "+msg.res.Path, true)
}

func (m *Model) showFlag(text string, ok bool) tea.Cmd {
	m.flag = text
	m.flagOK = ok
	m.flagID++
	ctx, gen, id := m.slideCtx, m.gen, m.flagID
	return func() tea.Msg {
		if _, ok := counter.Wait(ctx, flagDuration); !ok {
			return nil
		}
		return flagExpiredMsg{gen: gen, id: id}
	}
}

func (m *Model) restart() tea.Cmd {
	engine, err := deck.NewEngine(m.engine.Dataset(), m.opts.Registry)
	if err != nil {
		m.logger.Error("failed to restart deck", zap.Error(err))
		return nil
	}
	m.engine = engine
	m.restarts++
	m.logger.Info("deck restarted", zap.Int("restarts", m.restarts))
	return m.mountSlide()
}

func (m *Model) shutdown() {
	if m.cancelSlide != nil {
		m.cancelSlide()
	}
}

func (m *Model) renderSlide(width int) (out string) {
	if m.viewErr != nil {
		return placeholder(width)
	}
	defer func() {
		if r := recover(); r != nil {
			if m.failedGen != m.gen {
				m.failedGen = m.gen
				m.logger.Error("slide render failed",
					zap.Int("position", m.engine.Position()),
					zap.Any("panic", r))
			}
			out = placeholder(width)
		}
	}()
	return slideRenderer{counters: m.counters, width: width}.render(m.view)
}

func (m *Model) renderAction() string {
	if len(m.buttons()) > 0 {
		return m.renderButtons()
	}
	return footerStyle.Render("swipe, tap or → to continue")
}

func (m *Model) renderStatus() string {
	if m.flag != "" {
		if m.flagOK {
			return okStyle.Render(m.flag)
		}
		return errorStyle.Render(m.flag)
	}
	if _, _, ok := deck.Indicator(m.engine.Position()); ok {
		return m.dots.View()
	}
	return ""
}

func cropLines(s string, height int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= height {
		return s
	}
	return strings.Join(lines[:height], "\n")
}
