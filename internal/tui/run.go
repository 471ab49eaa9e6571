package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"roseboard/backend/internal/clock"
)

// Run shows the timer until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	program := tea.NewProgram(NewModel(opts, clock.System{}), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
