package tui

import (
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
)

var errNotTerminal = errors.New("stdout is not a terminal")

// altScreen grants full-screen display by switching bubbletea to the
// alternate screen. Bubbletea applies that through commands, so the
// presenter queues them and the model returns them from Update.
type altScreen struct {
	isTerminal func() bool
	pending    []tea.Cmd
}

func newAltScreen() *altScreen {
	return &altScreen{
		isTerminal: func() bool {
			return term.IsTerminal(os.Stdout.Fd())
		},
	}
}

func (a *altScreen) EnterFullscreen() error {
	if !a.isTerminal() {
		return errNotTerminal
	}
	a.pending = append(a.pending, tea.EnterAltScreen)
	return nil
}

func (a *altScreen) ExitFullscreen() error {
	a.pending = append(a.pending, tea.ExitAltScreen)
	return nil
}

func (a *altScreen) drain() tea.Cmd {
	if len(a.pending) == 0 {
		return nil
	}
	cmds := a.pending
	a.pending = nil
	return tea.Sequence(cmds...)
}
