package app

import (
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/attt/sohbet/internal/keys"
	"github.com/attt/sohbet/internal/logger"
	"github.com/attt/sohbet/internal/ui"
)

// Update handles messages. This is the core Bubble Tea update function that routes
// all messages to appropriate handlers.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()
		return m, nil

	case tea.FocusMsg:
		m.windowFocused = true
		logger.WithComponent("app").Debug("window focused")
		return m, nil

	case tea.BlurMsg:
		m.windowFocused = false
		logger.WithComponent("app").Debug("window blurred")
		return m, nil

	case tea.KeyPressMsg:
		if result, cmd := m.handleKeyPress(msg); result != nil {
			return result, cmd
		}
		// Key not handled by handleKeyPress, let it fall through to focused panel

	case SessionsLoadedMsg:
		return m.handleSessionsLoaded(msg)

	case HealthCheckedMsg:
		return m.handleHealthChecked(msg)

	case SessionReadyMsg:
		return m.handleSessionReady(msg)

	case ReplyMsg:
		return m.handleReply(msg)

	case RegeneratedMsg:
		return m.handleRegenerated(msg)

	case SessionFetchedMsg:
		return m.handleSessionFetched(msg)

	case SessionSyncedMsg:
		return m.handleSessionSynced(msg)

	case HelpShortcutTriggeredMsg:
		return m.handleHelpShortcutTrigger(msg)

	case ui.FlashTickMsg:
		return m, m.handleFlashTick(time.Time(msg))

	case spinner.TickMsg:
		// The typing indicator animates regardless of focus
		chat, cmd := m.chat.Update(msg)
		m.chat = chat
		return m, cmd
	}

	if m.modal.IsVisible() {
		modal, cmd := m.modal.Update(msg)
		m.modal = modal
		return m, cmd
	}

	// Update focused panel for other messages
	var cmd tea.Cmd
	if m.focus == FocusSidebar {
		m.sidebar, cmd = m.sidebar.Update(msg)
	} else {
		m.chat, cmd = m.chat.Update(msg)
	}
	return m, cmd
}

// handleKeyPress handles all keyboard input.
// Returns (model, cmd) if the key was handled, or (nil, nil) if it should fall through
// to the focused panel for handling.
func (m *Model) handleKeyPress(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	logger.WithComponent("app").Debug("key pressed",
		"key", key,
		"focus", m.focus.String(),
		"modalVisible", m.modal.IsVisible(),
	)

	// Handle modal first if visible
	if m.modal.IsVisible() {
		return m.handleModalKey(msg)
	}

	// Handle ctrl+c specially - always quits
	if key == keys.CtrlC {
		return m, tea.Quit
	}

	// Search typing belongs to the sidebar's input
	if m.focus == FocusSidebar && m.sidebar.IsSearchMode() {
		return nil, nil
	}

	// Try executing from shortcut registry
	if result, cmd, handled := m.ExecuteShortcut(key); handled {
		return result, cmd
	}

	// Key not handled - return nil to signal it should fall through to focused panel
	return nil, nil
}
