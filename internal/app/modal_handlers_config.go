package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/attt/sohbet/internal/keys"
	"github.com/attt/sohbet/internal/logger"
	"github.com/attt/sohbet/internal/ui/modals"
)

// handleSettingsModal handles key events for the settings dialog. Enter
// saves the preferences, Esc discards them.
func (m *Model) handleSettingsModal(key string, msg tea.KeyPressMsg, state *modals.SettingsState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		m.config.SetNotificationsEnabled(state.NotificationsEnabled)
		m.config.SetSidebarHidden(state.SidebarHidden)
		if err := m.config.Save(); err != nil {
			logger.WithComponent("app").Warn("failed to save settings", "error", err)
			m.modal.SetError("Ayarlar kaydedilemedi")
			return m, nil
		}
		m.modal.Hide()
		if state.SidebarHidden && m.focus == FocusSidebar {
			m.setFocus(FocusChat)
		}
		m.sidebarOpen = false
		m.updateSizes()
		return m, m.ShowFlashSuccess("Ayarlar kaydedildi")
	}
	return m.forwardToModal(msg)
}
