package ui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// FlashType selects the color of a flash message.
type FlashType int

const (
	FlashInfo FlashType = iota
	FlashSuccess
	FlashWarning
	FlashError
)

// FlashTickMsg asks the footer to drop an expired flash message.
type FlashTickMsg time.Time

// FlashTick returns a command that fires once the flash duration has passed.
func FlashTick() tea.Cmd {
	return tea.Tick(FlashDuration, func(t time.Time) tea.Msg {
		return FlashTickMsg(t)
	})
}

// FooterContext is the app state that decides which bindings are shown.
type FooterContext struct {
	SidebarFocused bool
	HasSession     bool
	Loading        bool
	HasSelection   bool // A message row is selected in the chat
	Narrow         bool
	Searching      bool
}

// Footer represents the bottom footer bar with keybindings
type Footer struct {
	width   int
	context FooterContext

	flashText  string
	flashType  FlashType
	flashUntil time.Time
	now        func() time.Time
}

// NewFooter creates a new footer
func NewFooter() *Footer {
	return &Footer{now: time.Now}
}

// SetContext updates the footer's context for conditional bindings
func (f *Footer) SetContext(c FooterContext) {
	f.context = c
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// SetFlash shows text in place of the bindings until FlashDuration passes.
func (f *Footer) SetFlash(text string, flashType FlashType) {
	f.flashText = text
	f.flashType = flashType
	f.flashUntil = f.now().Add(FlashDuration)
}

// ClearFlash removes the flash message.
func (f *Footer) ClearFlash() {
	f.flashText = ""
}

// HasFlash reports whether a flash message is showing.
func (f *Footer) HasFlash() bool {
	return f.flashText != ""
}

// FlashText returns the current flash message.
func (f *Footer) FlashText() string {
	return f.flashText
}

// ClearIfExpired drops the flash once its time is up. It reports whether
// the flash was cleared.
func (f *Footer) ClearIfExpired(now time.Time) bool {
	if f.flashText == "" || now.Before(f.flashUntil) {
		return false
	}
	f.flashText = ""
	return true
}

// Bindings returns the shortcuts for the current context.
func (f *Footer) Bindings() []KeyBinding {
	c := f.context
	switch {
	case c.Searching:
		return []KeyBinding{
			{Key: "enter", Desc: "uygula"},
			{Key: "esc", Desc: "temizle"},
		}
	case c.SidebarFocused:
		b := []KeyBinding{
			{Key: "↑/↓", Desc: "gezin"},
			{Key: "enter", Desc: "aç"},
			{Key: "f", Desc: "favori"},
			{Key: "r", Desc: "adlandır"},
			{Key: "d", Desc: "sil"},
			{Key: "/", Desc: "ara"},
			{Key: "n", Desc: "yeni"},
		}
		if c.Narrow {
			b = append(b, KeyBinding{Key: "ctrl+b", Desc: "kapat"})
		} else {
			b = append(b, KeyBinding{Key: "tab", Desc: "sohbet"})
		}
		return b
	case c.HasSelection:
		return []KeyBinding{
			{Key: "ctrl+y", Desc: "kopyala"},
			{Key: "ctrl+e", Desc: "tepki"},
			{Key: "ctrl+f", Desc: "favori"},
			{Key: "ctrl+r", Desc: "yeniden üret"},
			{Key: "esc", Desc: "seçimi bırak"},
		}
	default:
		b := []KeyBinding{}
		if c.Loading {
			b = append(b, KeyBinding{Key: "…", Desc: "yanıt bekleniyor"})
		} else {
			b = append(b, KeyBinding{Key: "enter", Desc: "gönder"})
		}
		b = append(b,
			KeyBinding{Key: "shift+enter", Desc: "yeni satır"},
			KeyBinding{Key: "ctrl+↑/↓", Desc: "mesaj seç"},
			KeyBinding{Key: "ctrl+n", Desc: "yeni sohbet"},
		)
		if c.Narrow {
			b = append(b, KeyBinding{Key: "ctrl+b", Desc: "geçmiş"})
		} else {
			b = append(b, KeyBinding{Key: "tab", Desc: "geçmiş"})
		}
		return append(b, KeyBinding{Key: "f1", Desc: "yardım"})
	}
}

// View renders the footer
func (f *Footer) View() string {
	inner := max(f.width-2, 0)

	if f.flashText != "" {
		style := flashStyles[f.flashType]
		return FooterStyle.Width(f.width).Render(style.Render(ansi.Truncate(f.flashText, inner, "…")))
	}

	var parts []string
	for _, b := range f.Bindings() {
		parts = append(parts, FooterKeyStyle.Render(b.Key)+FooterDescStyle.Render(": "+b.Desc))
	}
	sep := "  " + lipgloss.NewStyle().Foreground(ColorBorder).Render("|") + "  "
	content := strings.Join(parts, sep)

	return FooterStyle.Width(f.width).Render(ansi.Truncate(content, inner, "…"))
}
