// Package notify provides cross-platform desktop notifications for the
// Vimix launcher. It uses github.com/gen2brain/beeep for cross-platform
// notification support.
package notify

import (
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/gen2brain/beeep"

	"github.com/vimix/vimix-desktop/internal/logging"
)

// Notifier handles desktop notifications.
type Notifier struct {
	logger  *logging.Logger
	enabled bool
	mu      sync.RWMutex
}

// NewNotifier creates a new notifier.
func NewNotifier(enabled bool, logger *logging.Logger) *Notifier {
	return &Notifier{
		logger:  logger,
		enabled: enabled,
	}
}

// SetEnabled enables or disables notifications.
func (n *Notifier) SetEnabled(enabled bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.enabled = enabled
}

// IsEnabled returns whether notifications are enabled.
func (n *Notifier) IsEnabled() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.enabled
}

// WorkerStopped sends a notification when the backend worker exits
// while the application is still running.
func (n *Notifier) WorkerStopped(exitCode int) {
	if !n.IsEnabled() {
		return
	}

	title := "Vimix"
	message := fmt.Sprintf("The processing backend stopped unexpectedly (exit code %d).\nRestart Vimix to continue.", exitCode)

	if err := n.send(title, message); err != nil {
		n.logger.Warn().Err(err).Msg("Failed to send worker stopped notification")
	}
}

// StartupFailed sends an alert when the application cannot start its
// backend at all.
func (n *Notifier) StartupFailed(reason string) {
	if !n.IsEnabled() {
		return
	}

	title := "Vimix failed to start"
	message := truncate(reason, 200)

	// beeep.Alert shows a more prominent notification on some platforms
	if err := beeep.Alert(title, message, ""); err != nil {
		if err := n.send(title, message); err != nil {
			n.logger.Warn().Err(err).Msg("Failed to send startup failure notification")
		}
	}
}

// send is the internal method that actually sends the notification.
func (n *Notifier) send(title, message string) error {
	// beeep.Notify is cross-platform:
	// - Windows: Uses toast notifications
	// - macOS: Uses NSUserNotificationCenter
	// - Linux: Uses D-Bus notifications
	return beeep.Notify(title, message, "")
}

// truncate shortens a string to at most maxLen bytes, adding "..." if
// truncated. The cut never splits a multi-byte rune.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
