package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/attt/sohbet/internal/ui/modals"
)

// handleModalKey routes modal key events to the handler for the open dialog.
//
// Handlers are organized by domain:
//   - modal_handlers_session.go: rename and delete confirmation
//   - modal_handlers_config.go: settings
//   - modal_handlers_navigation.go: keyboard shortcut help
func (m *Model) handleModalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch s := m.modal.State.(type) {
	case *modals.RenameSessionState:
		return m.handleRenameSessionModal(key, msg, s)
	case *modals.ConfirmDeleteState:
		return m.handleConfirmDeleteModal(key, msg, s)
	case *modals.SettingsState:
		return m.handleSettingsModal(key, msg, s)
	case *modals.HelpState:
		return m.handleHelpModal(key, msg, s)
	}

	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}

// forwardToModal passes a key to the open dialog's form.
func (m *Model) forwardToModal(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}
