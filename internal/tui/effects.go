package tui

import tea "github.com/charmbracelet/bubbletea"

// effects collects the reports and notifications raised while a message is
// handled. They leave Update as a command so a slow store or notification
// daemon never holds up the event loop.
type effects struct {
	jobs []func()
}

func (e *effects) add(job func()) {
	e.jobs = append(e.jobs, job)
}

// cmd runs the collected jobs in order on bubbletea's command goroutine.
func (e *effects) cmd() tea.Cmd {
	return e.then(nil)
}

// then runs the collected jobs and afterwards next, so next only happens
// once every job has finished.
func (e *effects) then(next tea.Cmd) tea.Cmd {
	jobs := e.jobs
	e.jobs = nil
	if len(jobs) == 0 {
		return next
	}
	return func() tea.Msg {
		for _, job := range jobs {
			job()
		}
		if next == nil {
			return nil
		}
		return next()
	}
}
