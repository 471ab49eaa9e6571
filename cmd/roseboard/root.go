package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"roseboard/backend/internal/client"
	"roseboard/backend/internal/config"
	"roseboard/backend/internal/localstore"
)

// app holds what every subcommand needs. It is filled in before any
// subcommand runs.
type app struct {
	cfg    config.ClientConfig
	logger *log.Logger
	store  *localstore.Store
	api    *client.Client
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var verbose bool

	root := &cobra.Command{
		Use:   "roseboard",
		Short: "Roseboard - focus timer and end-of-day affirmations",
		Long: `Roseboard keeps a gentle focus timer in your terminal and greets you
with a new affirmation every day.

Set ROSEBOARD_TOKEN to record focus time on your account; without it
focus time is kept locally.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := log.WarnLevel
			if verbose {
				level = log.DebugLevel
			}
			return a.init(level)
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")

	root.AddCommand(
		newMessageCmd(a),
		newFocusCmd(a),
		newCountdownCmd(a),
	)
	return root
}

func (a *app) init(level log.Level) error {
	cfg, err := config.LoadClient()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	store, err := localstore.Open(cfg.Home)
	if err != nil {
		return fmt.Errorf("open local store: %w", err)
	}

	a.cfg = cfg
	a.store = store
	a.api = client.New(cfg.APIURL, cfg.Token)
	a.logger = log.NewWithOptions(os.Stderr, log.Options{Level: level, Prefix: "roseboard"})
	return nil
}
