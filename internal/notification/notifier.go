// Package notification sends desktop notifications when a timer completes.
package notification

import (
	"fmt"
	"time"

	"github.com/gen2brain/beeep"
)

// Notifier sends best-effort desktop notifications.
type Notifier struct {
	enabled bool
	send    func(title, message string) error
}

func New(enabled bool) *Notifier {
	return &Notifier{enabled: enabled, send: desktopNotify}
}

func (n *Notifier) IsEnabled() bool {
	return n != nil && n.enabled
}

func (n *Notifier) Notify(title, message string) error {
	if !n.IsEnabled() {
		return nil
	}
	return n.send(title, message)
}

func (n *Notifier) NotifyFocusComplete(focus time.Duration) error {
	return n.Notify("Focus complete", fmt.Sprintf("You focused for %s. Take a breath.", formatMinutes(focus)))
}

func (n *Notifier) NotifyBreakComplete() error {
	return n.Notify("Break over", "Ready for the next round?")
}

func (n *Notifier) NotifyCountdownComplete(d time.Duration) error {
	return n.Notify("Time's up", fmt.Sprintf("Your %s countdown has finished.", formatMinutes(d)))
}

func formatMinutes(d time.Duration) string {
	minutes := int(d.Round(time.Minute) / time.Minute)
	if minutes == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", minutes)
}

func desktopNotify(title, message string) error {
	return beeep.Notify(title, message, "")
}
