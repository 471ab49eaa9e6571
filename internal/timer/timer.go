// Package timer implements the focus/countdown timer used by every Roseboard
// view. Remaining time is always derived from the wall clock
// (snapshot - (now - sessionStart)), never from counting ticks, so late or
// skipped ticks do not lose time.
package timer

import (
	"math"
	"time"

	"roseboard/backend/internal/clock"
)

// Mode names the session the timer is counting down.
type Mode string

const (
	ModeFocus     Mode = "focus"
	ModeBreak     Mode = "break"
	ModeCountdown Mode = "countdown"
)

// CompletionPolicy decides what happens when remaining time reaches zero.
type CompletionPolicy int

const (
	// FlipMode switches focus<->break and keeps running.
	FlipMode CompletionPolicy = iota
	// StopAtZero stops the timer.
	StopAtZero
)

// ReportingPolicy decides which quantity is handed to the reporter.
type ReportingPolicy int

const (
	// ReportNominal reports the configured focus length once per completed
	// focus session.
	ReportNominal ReportingPolicy = iota
	// ReportMeasured reports the measured run time whenever the timer stops.
	ReportMeasured
)

const (
	DefaultFocusDuration = 25 * time.Minute
	DefaultBreakDuration = 5 * time.Minute
)

// Config holds the length of each mode and the policies applied at zero.
type Config struct {
	Durations map[Mode]time.Duration
	Initial   Mode
	OnZero    CompletionPolicy
	Reporting ReportingPolicy
}

// Pomodoro alternates focus and break sessions and reports the configured
// focus length on every completed focus session.
func Pomodoro(focus, brk time.Duration) Config {
	return Config{
		Durations: map[Mode]time.Duration{
			ModeFocus: focus,
			ModeBreak: brk,
		},
		Initial:   ModeFocus,
		OnZero:    FlipMode,
		Reporting: ReportNominal,
	}
}

// Countdown runs once to zero and reports how long it actually ran.
func Countdown(d time.Duration) Config {
	return Config{
		Durations: map[Mode]time.Duration{ModeCountdown: d},
		Initial:   ModeCountdown,
		OnZero:    StopAtZero,
		Reporting: ReportMeasured,
	}
}

// Reporter receives focus minutes for the statistics store.
type Reporter func(minutes int)

// Option customises a Timer built by New.
type Option func(*Timer)

func WithReporter(r Reporter) Option {
	return func(t *Timer) {
		t.report = r
	}
}

// Timer is owned by a single view and is not safe for concurrent use.
type Timer struct {
	cfg    Config
	clock  clock.Clock
	report Reporter

	mode         Mode
	remaining    time.Duration
	running      bool
	sessionStart *time.Time
	snapshot     time.Duration
	runStartedAt time.Time
}

// New returns a paused timer loaded with the full duration of cfg.Initial.
// A nil clock means the system clock.
func New(cfg Config, c clock.Clock, opts ...Option) *Timer {
	if c == nil {
		c = clock.System{}
	}
	t := &Timer{
		cfg:   cfg,
		clock: c,
		mode:  cfg.Initial,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.remaining = t.durationFor(t.mode)
	return t
}

func (t *Timer) Mode() Mode {
	return t.mode
}

func (t *Timer) Running() bool {
	return t.running
}

// Remaining is the value computed by the last Start, Pause, Tick or AdjustBy.
func (t *Timer) Remaining() time.Duration {
	return t.remaining
}

// RemainingSeconds is Remaining rounded down to whole seconds.
func (t *Timer) RemainingSeconds() int {
	return int(t.remaining / time.Second)
}

// Duration is the configured full length of mode.
func (t *Timer) Duration(mode Mode) time.Duration {
	return t.durationFor(mode)
}

func (t *Timer) Start() {
	if t.running {
		return
	}
	now := t.clock.Now()
	t.running = true
	t.runStartedAt = now
	t.arm(now)
}

// Pause folds the time elapsed since the session started into remaining and
// freezes it there.
func (t *Timer) Pause() {
	if !t.running {
		return
	}
	now := t.clock.Now()
	if t.sessionStart != nil {
		t.remaining = t.currentRemaining(now)
	}
	t.stop(now)
}

// Reset stops the timer and loads the full duration of mode, or of the
// current mode when none is given.
func (t *Timer) Reset(mode ...Mode) {
	if t.running {
		t.stop(t.clock.Now())
	}
	if len(mode) > 0 {
		t.mode = mode[0]
	}
	t.remaining = t.durationFor(t.mode)
}

// Tick recomputes remaining from the wall clock. It does nothing while paused.
func (t *Timer) Tick() {
	if !t.running {
		return
	}
	now := t.clock.Now()
	if t.sessionStart == nil {
		t.arm(now)
		return
	}

	t.remaining = t.currentRemaining(now)
	if t.remaining > 0 {
		return
	}

	switch t.cfg.OnZero {
	case StopAtZero:
		t.stop(now)
	default:
		t.flip()
	}
}

// AdjustBy adds delta (which may be negative) to remaining, flooring at zero.
// While running, the session snapshot is rebased so the next Tick continues
// from the adjusted value.
func (t *Timer) AdjustBy(delta time.Duration) {
	if !t.running || t.sessionStart == nil {
		t.remaining = clampZero(t.remaining + delta)
		return
	}
	now := t.clock.Now()
	elapsed := now.Sub(*t.sessionStart)
	t.remaining = clampZero(t.currentRemaining(now) + delta)
	t.snapshot = t.remaining + elapsed
}

func (t *Timer) arm(now time.Time) {
	start := now
	t.sessionStart = &start
	t.snapshot = t.remaining
}

func (t *Timer) currentRemaining(now time.Time) time.Duration {
	return clampZero(t.snapshot - now.Sub(*t.sessionStart))
}

func (t *Timer) stop(now time.Time) {
	t.running = false
	t.sessionStart = nil
	if t.cfg.Reporting == ReportMeasured {
		t.emit(roundMinutes(now.Sub(t.runStartedAt)))
	}
}

func (t *Timer) flip() {
	completed := t.mode
	if completed == ModeFocus {
		t.mode = ModeBreak
		if t.cfg.Reporting == ReportNominal {
			t.emit(roundMinutes(t.durationFor(ModeFocus)))
		}
	} else {
		t.mode = ModeFocus
	}
	t.remaining = t.durationFor(t.mode)
	t.sessionStart = nil
}

func (t *Timer) emit(minutes int) {
	if minutes <= 0 || t.report == nil {
		return
	}
	t.report(minutes)
}

func (t *Timer) durationFor(mode Mode) time.Duration {
	return clampZero(t.cfg.Durations[mode])
}

func clampZero(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}

func roundMinutes(d time.Duration) int {
	return int(math.Round(d.Minutes()))
}
