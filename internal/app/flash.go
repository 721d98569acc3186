package app

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/attt/sohbet/internal/logger"
	"github.com/attt/sohbet/internal/ui"
)

// Footer flash messages report the outcome of a shell action (copy, rename,
// an offline reply) for a few seconds and then clear themselves.

// ShowFlash shows text in the footer and starts its expiry timer.
func (m *Model) ShowFlash(text string, flashType ui.FlashType) tea.Cmd {
	m.footer.SetFlash(text, flashType)
	return ui.FlashTick()
}

func (m *Model) ShowFlashError(text string) tea.Cmd   { return m.ShowFlash(text, ui.FlashError) }
func (m *Model) ShowFlashWarning(text string) tea.Cmd { return m.ShowFlash(text, ui.FlashWarning) }
func (m *Model) ShowFlashInfo(text string) tea.Cmd    { return m.ShowFlash(text, ui.FlashInfo) }
func (m *Model) ShowFlashSuccess(text string) tea.Cmd { return m.ShowFlash(text, ui.FlashSuccess) }

// flashResult reports an action that either worked (ok) or failed with err.
// Failures are logged under action.
func (m *Model) flashResult(action string, err error, ok, failed string) tea.Cmd {
	if err != nil {
		logger.WithComponent("app").Warn(action+" failed", "error", err)
		return m.ShowFlashError(failed)
	}
	return m.ShowFlashSuccess(ok)
}

// handleFlashTick drops an expired flash message, or waits again when a
// newer one replaced it.
func (m *Model) handleFlashTick(now time.Time) tea.Cmd {
	if !m.footer.HasFlash() {
		return nil
	}
	if m.footer.ClearIfExpired(now) {
		return nil
	}
	return ui.FlashTick()
}
