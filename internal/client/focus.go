package client

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

const reportTimeout = 5 * time.Second

type GuestStats interface {
	AddGuestFocusMinutes(minutes int) (int, error)
}

// FocusReporter returns the callback the timer uses to record focus minutes.
// Signed-in users report to the backend; guests accumulate locally. Failures
// are logged and never interrupt the timer. The call blocks on the network,
// so the terminal UI runs it as a command.
func FocusReporter(remote *Client, guest GuestStats, logger *log.Logger) func(minutes int) {
	return func(minutes int) {
		if remote != nil && remote.SignedIn() {
			ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
			defer cancel()
			if err := remote.AddFocusMinutes(ctx, minutes); err != nil {
				logger.Error("failed to report focus time", "minutes", minutes, "err", err)
			}
			return
		}

		total, err := guest.AddGuestFocusMinutes(minutes)
		if err != nil {
			logger.Error("failed to store guest focus time", "minutes", minutes, "err", err)
			return
		}
		logger.Debug("guest focus time stored", "minutes", minutes, "total", total)
	}
}
