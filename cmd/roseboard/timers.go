package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"roseboard/backend/internal/client"
	"roseboard/backend/internal/notification"
	"roseboard/backend/internal/timer"
	"roseboard/backend/internal/tui"
)

type viewFlags struct {
	immersive bool
	noNotify  bool
}

func (f *viewFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&f.immersive, "immersive", "f", false, "Start in full screen")
	cmd.Flags().BoolVar(&f.noNotify, "no-notify", false, "Disable desktop notifications")
}

func newFocusCmd(a *app) *cobra.Command {
	var focus, brk time.Duration
	var flags viewFlags

	cmd := &cobra.Command{
		Use:   "focus",
		Short: "Run a focus/break timer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if focus <= 0 || brk <= 0 {
				return fmt.Errorf("--focus and --break must be positive")
			}
			return a.runTimer(cmd, timer.Pomodoro(focus, brk), flags)
		},
	}
	cmd.Flags().DurationVar(&focus, "focus", timer.DefaultFocusDuration, "Focus session length")
	cmd.Flags().DurationVar(&brk, "break", timer.DefaultBreakDuration, "Break length")
	flags.register(cmd)
	return cmd
}

func newCountdownCmd(a *app) *cobra.Command {
	var duration time.Duration
	var flags viewFlags

	cmd := &cobra.Command{
		Use:   "countdown",
		Short: "Run a single countdown",
		Long: `Run a single countdown. Use + and - to add or remove a minute while it
runs and f to switch full screen on or off. The time you actually spent is
recorded as focus time when the countdown stops.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if duration <= 0 {
				return fmt.Errorf("--duration must be positive")
			}
			return a.runTimer(cmd, timer.Countdown(duration), flags)
		},
	}
	cmd.Flags().DurationVarP(&duration, "duration", "d", 10*time.Minute, "Countdown length")
	flags.register(cmd)
	return cmd
}

func (a *app) runTimer(cmd *cobra.Command, cfg timer.Config, flags viewFlags) error {
	if a.api.SignedIn() {
		a.logger.Debug("reporting focus time to backend", "url", a.cfg.APIURL)
	} else {
		a.logger.Debug("guest mode, focus time stays local", "path", a.store.Path())
	}

	return tui.Run(cmd.Context(), tui.Options{
		Timer:         cfg,
		HeaderTitle:   a.store.HeaderTitle(),
		HeaderInitial: a.store.HeaderInitial(),
		Reporter:      client.FocusReporter(a.api, a.store, a.logger),
		Notifier:      notification.New(!flags.noNotify),
		Immersive:     flags.immersive,
	})
}
