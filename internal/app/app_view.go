package app

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/attt/sohbet/internal/ui"
)

// View renders the app. This is the core Bubble Tea view function.
func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.ReportFocus = true
	v.MouseMode = tea.MouseModeCellMotion
	v.SetContent(m.RenderToString())
	return v
}

// RenderToString renders the current view as a string.
// This is useful for the CLI preview and testing.
func (m *Model) RenderToString() string {
	if m.width == 0 || m.height == 0 {
		return "Yükleniyor..."
	}

	// Update footer context for conditional bindings
	m.updateFooterContext()

	// The dialog replaces the screen while open
	if m.modal.IsVisible() {
		return lipgloss.Place(
			m.width, m.height,
			lipgloss.Center, lipgloss.Center,
			m.modal.View(m.width, m.height),
		)
	}

	var panels string
	switch {
	case m.sidebarDocked():
		panels = lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar.View(), m.chat.View())
	case m.sidebarVisible():
		panels = overlay(m.sidebar.View(), m.chat.View())
	default:
		panels = m.chat.View()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.header.View(),
		panels,
		m.footer.View(),
	)
}

// overlay draws top over the left edge of base, line by line.
func overlay(top, base string) string {
	topLines := strings.Split(top, "\n")
	baseLines := strings.Split(base, "\n")
	topW := lipgloss.Width(top)

	out := make([]string, max(len(topLines), len(baseLines)))
	for i := range out {
		var t, b string
		if i < len(topLines) {
			t = topLines[i]
		}
		if i < len(baseLines) {
			b = baseLines[i]
		}
		if pad := topW - ansi.StringWidth(t); pad > 0 {
			t += strings.Repeat(" ", pad)
		}
		out[i] = t + ansi.Cut(b, topW, ansi.StringWidth(b))
	}
	return strings.Join(out, "\n")
}

// updateFooterContext updates the footer with current context for conditional bindings
func (m *Model) updateFooterContext() {
	m.footer.SetContext(ui.FooterContext{
		SidebarFocused: m.focus == FocusSidebar,
		HasSession:     m.activeID != "",
		Loading:        m.loading,
		HasSelection:   m.chat.HasSelection(),
		Narrow:         ui.GetViewContext().Narrow,
		Searching:      m.sidebar.IsSearchMode(),
	})
}

// updateSizes updates component sizes based on terminal dimensions
func (m *Model) updateSizes() {
	if m.width == 0 || m.height == 0 {
		return
	}
	ctx := ui.GetViewContext()
	ctx.UpdateTerminalSize(m.width, m.height)

	m.header.SetWidth(ctx.TerminalWidth)
	m.footer.SetWidth(ctx.TerminalWidth)
	m.sidebar.SetSize(ctx.SidebarWidth, ctx.ContentHeight)
	m.chat.SetSize(ctx.ChatWidthFor(m.sidebarDocked()), ctx.ContentHeight)
}
