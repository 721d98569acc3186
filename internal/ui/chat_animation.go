package ui

import (
	"fmt"
	"math/rand/v2"
	"time"

	"charm.land/bubbles/v2/spinner"
	"charm.land/lipgloss/v2"
)

// typingVerbs cycle while a reply is pending
var typingVerbs = []string{
	"Yazıyor",
	"Düşünüyor",
	"Yanıt hazırlıyor",
	"İnceliyor",
	"Değerlendiriyor",
}

// randomTypingVerb returns a random verb from the list
func randomTypingVerb() string {
	return typingVerbs[rand.IntN(len(typingVerbs))]
}

// typingSpinner is the frame set used by the typing indicator
var typingSpinner = spinner.Spinner{
	Frames: []string{"·", "✺", "✹", "✸", "✷", "✶", "✵", "✴", "✳", "✲", "✱", "✧", "✦", "·"},
	FPS:    StopwatchInterval,
}

func newTypingSpinner() spinner.Model {
	return spinner.New(
		spinner.WithSpinner(typingSpinner),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(ColorBot).Bold(true)),
	)
}

// renderTypingIndicator renders the bot marker, spinner frame, verb and
// elapsed stopwatch shown while a reply is pending.
func renderTypingIndicator(frame, verb string, elapsed time.Duration) string {
	verbStyle := lipgloss.NewStyle().Foreground(ColorPrimary).Italic(true)
	metaStyle := lipgloss.NewStyle().Foreground(ColorTextMuted)

	return ChatBotStyle.Render(botMarker) + " " + frame + " " +
		verbStyle.Render(verb+"...") + " " + metaStyle.Render("("+formatElapsed(elapsed)+")")
}

// formatElapsed formats a duration as a stopwatch string (e.g., "1.2s", "1:23")
func formatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	mins := int(d.Minutes())
	secs := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", mins, secs)
}
