// Package tui renders the focus and countdown timers in the terminal.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"roseboard/backend/internal/clock"
	"roseboard/backend/internal/timer"
)

const (
	tickInterval = 100 * time.Millisecond
	adjustStep   = time.Minute
)

// Notifier is told when a session finishes.
type Notifier interface {
	NotifyFocusComplete(focus time.Duration) error
	NotifyBreakComplete() error
	NotifyCountdownComplete(d time.Duration) error
}

type Options struct {
	Timer         timer.Config
	HeaderTitle   string
	HeaderInitial string
	Reporter      timer.Reporter
	Notifier      Notifier
	// Immersive opens the view full screen from the start.
	Immersive bool
}

// tickMsg carries the generation it was scheduled for. A tick from an older
// generation belongs to a run that has since stopped and is dropped.
type tickMsg struct {
	gen int
}

type Model struct {
	timer     *timer.Timer
	immersive *timer.Immersive
	screen    *altScreen
	effects   *effects
	notifier  Notifier
	pomodoro  bool

	headerTitle   string
	headerInitial string

	keys     keyMap
	help     help.Model
	progress progress.Model
	width    int
	height   int

	tickGen  int
	ticking  bool
	quitting bool
}

func NewModel(opts Options, c clock.Clock) Model {
	fx := &effects{}
	var timerOpts []timer.Option
	if report := opts.Reporter; report != nil {
		timerOpts = append(timerOpts, timer.WithReporter(func(minutes int) {
			fx.add(func() { report(minutes) })
		}))
	}

	pomodoro := opts.Timer.OnZero == timer.FlipMode
	screen := newAltScreen()
	m := Model{
		timer:         timer.New(opts.Timer, c, timerOpts...),
		immersive:     timer.NewImmersive(screen),
		screen:        screen,
		effects:       fx,
		notifier:      opts.Notifier,
		pomodoro:      pomodoro,
		headerTitle:   opts.HeaderTitle,
		headerInitial: opts.HeaderInitial,
		keys:          newKeyMap(pomodoro),
		help:          help.New(),
		progress:      progress.New(progress.WithGradient(string(colorBlush), string(colorRose)), progress.WithoutPercentage()),
	}
	if opts.Immersive {
		m.immersive.Enter()
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return m.screen.drain()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.progress.Width = min(max(msg.Width-8, 10), 60)
		return m, nil

	case tickMsg:
		if msg.gen != m.tickGen {
			return m, nil
		}
		m.ticking = false
		if !m.timer.Running() || m.quitting {
			return m, nil
		}
		m.onTick()
		tick := m.scheduleTick()
		return m, tea.Batch(m.effects.cmd(), tick)

	case tea.KeyMsg:
		next, cmd := m.handleKey(msg)
		return next, tea.Batch(next.effects.cmd(), cmd)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.timer.Pause()
		m.cancelTick()
		m.immersive.Exit()
		// pending reports must land before the program exits
		quit := m.effects.then(tea.Quit)
		if restore := m.screen.drain(); restore != nil {
			return m, tea.Sequence(restore, quit)
		}
		return m, quit

	case key.Matches(msg, m.keys.Toggle):
		if m.timer.Running() {
			m.timer.Pause()
			m.cancelTick()
			return m, nil
		}
		if m.timer.Remaining() <= 0 {
			m.timer.Reset(m.timer.Mode())
		}
		m.timer.Start()
		return m, m.scheduleTick()

	case key.Matches(msg, m.keys.Reset):
		m.timer.Reset()
		m.cancelTick()
		return m, nil

	case key.Matches(msg, m.keys.Switch):
		next := timer.ModeBreak
		if m.timer.Mode() == timer.ModeBreak {
			next = timer.ModeFocus
		}
		m.timer.Reset(next)
		m.cancelTick()
		return m, nil

	case key.Matches(msg, m.keys.Add):
		m.timer.AdjustBy(adjustStep)
		return m, nil

	case key.Matches(msg, m.keys.Subtract):
		m.timer.AdjustBy(-adjustStep)
		return m, nil

	case key.Matches(msg, m.keys.Immersive):
		m.immersive.Toggle()
		return m, m.screen.drain()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	return m, nil
}

// onTick advances the timer and notifies about any session it finished.
func (m *Model) onTick() {
	mode := m.timer.Mode()
	m.timer.Tick()

	switch {
	case m.pomodoro && m.timer.Mode() != mode:
		if mode == timer.ModeFocus {
			focus := m.timer.Duration(timer.ModeFocus)
			m.notify(func(n Notifier) error { return n.NotifyFocusComplete(focus) })
		} else {
			m.notify(Notifier.NotifyBreakComplete)
		}
	case !m.timer.Running():
		m.cancelTick()
		d := m.timer.Duration(mode)
		m.notify(func(n Notifier) error { return n.NotifyCountdownComplete(d) })
	}
}

func (m *Model) notify(send func(Notifier) error) {
	n := m.notifier
	if n == nil {
		return
	}
	m.effects.add(func() { _ = send(n) })
}

// scheduleTick starts a tick chain for the current run unless one is
// already pending.
func (m *Model) scheduleTick() tea.Cmd {
	if !m.timer.Running() || m.ticking {
		return nil
	}
	m.ticking = true
	gen := m.tickGen
	return tea.Tick(tickInterval, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

func (m *Model) cancelTick() {
	m.tickGen++
	m.ticking = false
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	header := lipgloss.JoinHorizontal(lipgloss.Center,
		badgeStyle.Render(m.headerInitial),
		" ",
		titleStyle.Render(m.headerTitle),
	)

	clockText := clockStyle.
		Foreground(timeColor(m.timer.Running(), m.timer.Mode() == timer.ModeBreak)).
		Render(formatClock(m.timer.RemainingSeconds()))

	status := "paused"
	if m.timer.Running() {
		status = "running"
	}
	if m.immersive.Open() && !m.immersive.Acquired() {
		status += " · full screen unavailable"
	}

	body := lipgloss.JoinVertical(lipgloss.Center,
		header,
		"",
		modeStyle.Render(modeLabel(m.timer.Mode())),
		clockText,
		m.progress.ViewAs(m.fraction()),
		"",
		statusStyle.Render(status),
		"",
		m.help.View(m.keys),
	)

	if m.immersive.Open() && m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
	}
	return body + "\n"
}

// fraction is the elapsed share of the current session.
func (m Model) fraction() float64 {
	total := m.timer.Duration(m.timer.Mode())
	if total <= 0 {
		return 0
	}
	elapsed := 1 - float64(m.timer.Remaining())/float64(total)
	return min(max(elapsed, 0), 1)
}

// Timer exposes the underlying timer once the program has exited.
func (m Model) Timer() *timer.Timer {
	return m.timer
}

func modeLabel(mode timer.Mode) string {
	switch mode {
	case timer.ModeFocus:
		return "Focus"
	case timer.ModeBreak:
		return "Break"
	default:
		return "Countdown"
	}
}

func formatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	mins := (seconds % 3600) / 60
	secs := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, mins, secs)
	}
	return fmt.Sprintf("%02d:%02d", mins, secs)
}
