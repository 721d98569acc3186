package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/attt/sohbet/internal/keys"
	"github.com/attt/sohbet/internal/ui/modals"
)

// HelpShortcutTriggeredMsg runs a shortcut picked in the help dialog.
type HelpShortcutTriggeredMsg struct {
	Key  string
	Desc string
}

// handleHelpModal handles key events for the Help modal.
func (m *Model) handleHelpModal(key string, msg tea.KeyPressMsg, state *modals.HelpState) (tea.Model, tea.Cmd) {
	// While filtering, forward all keys to the list (Esc cancels filter, Enter applies)
	if state.IsFiltering() {
		return m.forwardToModal(msg)
	}

	switch key {
	case keys.Escape, "?", "q", keys.F1:
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		shortcut := state.GetSelectedShortcut()
		m.modal.Hide()
		if shortcut == nil {
			return m, nil
		}
		return m, func() tea.Msg {
			return HelpShortcutTriggeredMsg{Key: shortcut.Key, Desc: shortcut.Desc}
		}
	}
	return m.forwardToModal(msg)
}

// handleHelpShortcutTrigger runs a shortcut chosen from the help dialog.
// Guards that depend on focus are skipped; the rest still apply.
func (m *Model) handleHelpShortcutTrigger(msg HelpShortcutTriggeredMsg) (tea.Model, tea.Cmd) {
	s := findShortcutByDisplay(msg.Key, msg.Desc)
	if s == nil || s.Handler == nil {
		return m, nil
	}
	if s.RequiresSession && m.targetSessionID() == "" {
		return m, nil
	}
	if s.Condition != nil && !s.Condition(m) {
		return m, nil
	}
	return s.Handler(m)
}
