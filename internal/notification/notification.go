// Package notification provides cross-platform desktop notifications.
// It uses the beeep library to send notifications on macOS, Linux, and Windows.
package notification

import (
	"github.com/gen2brain/beeep"

	"github.com/attt/sohbet/internal/chat"
	"github.com/attt/sohbet/internal/logger"
)

// AppName is the notification title.
const AppName = "ATTT Assistant"

// bodyWidth bounds the reply excerpt shown in a notification.
const bodyWidth = 80

var notifier = beeep.Notify

// SetNotifier replaces the function used to deliver notifications (tests).
func SetNotifier(fn func(title, message string, icon any) error) {
	notifier = fn
}

// ResetNotifier restores beeep as the notifier.
func ResetNotifier() {
	notifier = beeep.Notify
}

// Send sends a desktop notification with the given title and message.
func Send(title, message string) error {
	log := logger.WithComponent("notification")
	log.Debug("sending", "title", title)
	// Empty icon lets beeep pick the platform default.
	err := notifier(title, message, "")
	if err != nil {
		log.Warn("send failed", "error", err)
	}
	return err
}

// ReplyReceived announces an assistant reply in the named session.
func ReplyReceived(sessionTitle, reply string) error {
	title := AppName
	if sessionTitle != "" {
		title = AppName + " · " + sessionTitle
	}
	return Send(title, chat.Truncate(reply, bodyWidth))
}
