package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/attt/sohbet/internal/keys"
	"github.com/attt/sohbet/internal/logger"
	"github.com/attt/sohbet/internal/ui/modals"
)

// handleRenameSessionModal handles key events for the rename dialog.
func (m *Model) handleRenameSessionModal(key string, msg tea.KeyPressMsg, state *modals.RenameSessionState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		if err := state.Validate(); err != nil {
			m.modal.SetError(err.Error())
			return m, nil
		}
		title := state.GetNewTitle()
		m.modal.Hide()
		if title == state.CurrentTitle {
			return m, nil
		}
		logger.WithSession(state.SessionID).Info("renaming session", "title", title)
		return m, tea.Batch(m.renameSession(state.SessionID, title), m.ShowFlashSuccess("Sohbet yeniden adlandırıldı"))
	}
	return m.forwardToModal(msg)
}

// handleConfirmDeleteModal handles key events for the delete confirmation.
func (m *Model) handleConfirmDeleteModal(key string, msg tea.KeyPressMsg, state *modals.ConfirmDeleteState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		m.modal.Hide()
		if !state.Confirmed() {
			return m, nil
		}
		return m, tea.Batch(m.deleteSession(state.SessionID), m.ShowFlashInfo("Sohbet silindi"))
	}
	return m.forwardToModal(msg)
}
