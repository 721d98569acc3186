package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"
)

// AppTitle is shown at the left of the header.
const AppTitle = "ATTT Assistant"

// BackendStatus is the result of the last health check.
type BackendStatus int

const (
	StatusUnknown BackendStatus = iota
	StatusOnline
	StatusOffline
)

// Label returns the text shown next to the status dot.
func (s BackendStatus) Label() string {
	switch s {
	case StatusOnline:
		return "Çevrimiçi"
	case StatusOffline:
		return "Çevrimdışı"
	default:
		return "Bağlanıyor"
	}
}

// Header represents the top header bar
type Header struct {
	width        int
	sessionTitle string
	status       BackendStatus
}

// NewHeader creates a new header
func NewHeader() *Header {
	return &Header{}
}

// SetWidth sets the header width
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetSessionTitle sets the active session title to display
func (h *Header) SetSessionTitle(title string) {
	h.sessionTitle = title
}

// SetStatus sets the backend status indicator
func (h *Header) SetStatus(status BackendStatus) {
	h.status = status
}

// Status returns the backend status indicator
func (h *Header) Status() BackendStatus {
	return h.status
}

// View renders the header
func (h *Header) View() string {
	left := " " + AppTitle + "  ● " + h.status.Label()
	right := ""
	if h.sessionTitle != "" {
		right = h.sessionTitle + " "
	}

	pad := h.width - runewidth.StringWidth(left) - runewidth.StringWidth(right)
	if pad < 1 && right != "" {
		// Shorten the session title before dropping it
		avail := h.width - runewidth.StringWidth(left) - 2
		if avail > 4 {
			right = runewidth.Truncate(h.sessionTitle, avail, "…") + " "
		} else {
			right = ""
		}
		pad = h.width - runewidth.StringWidth(left) - runewidth.StringWidth(right)
	}
	if pad < 0 {
		pad = 0
	}

	return h.renderGradient(left + strings.Repeat(" ", pad) + right)
}

// parseHexColor parses a hex color string (e.g., "#2563EB") into RGB components
func parseHexColor(hex string) (r, g, b int) {
	if len(hex) == 7 && hex[0] == '#' {
		fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b)
	}
	return
}

// renderGradient renders content over a background fading from the primary
// color into the terminal background. The title is bold and the status dot
// takes the status color.
func (h *Header) renderGradient(content string) string {
	if content == "" {
		return ""
	}

	startR, startG, startB := parseHexColor(hexPrimary)
	endR, endG, endB := parseHexColor(hexBg)

	titleEnd := len([]rune(" " + AppTitle))
	dotIndex := titleEnd + 2

	var dotColor = ColorMuted
	switch h.status {
	case StatusOnline:
		dotColor = ColorSuccess
	case StatusOffline:
		dotColor = ColorError
	}

	runes := []rune(content)
	width := len(runes)
	var sb strings.Builder

	for i, r := range runes {
		t := float64(i) / float64(width)
		cr := int(float64(startR)*(1-t) + float64(endR)*t)
		cg := int(float64(startG)*(1-t) + float64(endG)*t)
		cb := int(float64(startB)*(1-t) + float64(endB)*t)

		style := lipgloss.NewStyle().
			Background(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", cr, cg, cb))).
			Foreground(ColorText).
			Bold(i < titleEnd)
		if i == dotIndex {
			style = style.Foreground(dotColor)
		}
		sb.WriteString(style.Render(string(r)))
	}

	return sb.String()
}
