package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/attt/sohbet/internal/keys"
	"github.com/attt/sohbet/internal/logger"
	"github.com/attt/sohbet/internal/ui"
	"github.com/attt/sohbet/internal/ui/modals"
)

// Scope limits where a shortcut fires.
type Scope int

const (
	ScopeGlobal Scope = iota
	ScopeSidebar
	ScopeChat
)

// Shortcut represents a keyboard shortcut with its metadata and handler.
// This is the single source of truth for all shortcuts in the application.
type Shortcut struct {
	Key             string                              // The key binding (e.g., "n", "ctrl+f")
	DisplayKey      string                              // Display name in help; defaults to Key
	Description     string                              // Human-readable description
	Category        string                              // Section for help modal grouping
	Scope           Scope                               // Panel that must be focused
	RequiresSession bool                                // Needs a selected or active session
	Handler         func(m *Model) (tea.Model, tea.Cmd) // Action to perform
	Condition       func(m *Model) bool                 // Optional extra condition
}

// Categories for organizing shortcuts in the help modal
const (
	CategoryNavigation = "Gezinme"
	CategorySessions   = "Sohbetler"
	CategoryMessages   = "Mesajlar"
	CategoryGeneral    = "Genel"
)

// categoryOrder defines the display order of categories in the help modal
var categoryOrder = []string{
	CategoryNavigation,
	CategorySessions,
	CategoryMessages,
	CategoryGeneral,
}

// ShortcutRegistry is the central registry of keyboard shortcuts. Entries
// appear in the help modal and can be run from it.
var ShortcutRegistry = []Shortcut{
	// Navigation
	{
		Key:         keys.Tab,
		Description: "Panel değiştir",
		Category:    CategoryNavigation,
		Handler:     shortcutToggleFocus,
	},
	{
		Key:         keys.CtrlB,
		Description: "Sohbet geçmişini aç/kapat",
		Category:    CategoryNavigation,
		Handler:     shortcutToggleSidebar,
	},
	{
		Key:         "/",
		Description: "Başlıkta ara",
		Category:    CategoryNavigation,
		Scope:       ScopeSidebar,
		Handler:     shortcutSearch,
		Condition:   func(m *Model) bool { return !m.sidebar.IsSearchMode() },
	},
	{
		Key:         keys.Escape,
		Description: "Geçmişi kapat",
		Category:    CategoryNavigation,
		Scope:       ScopeSidebar,
		Handler:     shortcutCloseOverlay,
		Condition: func(m *Model) bool {
			return m.sidebarOpen && m.sidebar.SearchQuery() == ""
		},
	},

	// Sessions
	{
		Key:             keys.Enter,
		Description:     "Sohbeti aç",
		Category:        CategorySessions,
		Scope:           ScopeSidebar,
		RequiresSession: true,
		Handler:         shortcutOpenSession,
	},
	{
		Key:         keys.CtrlN,
		Description: "Yeni sohbet",
		Category:    CategorySessions,
		Handler:     shortcutNewChat,
	},
	{
		Key:         "n",
		Description: "Yeni sohbet",
		Category:    CategorySessions,
		Scope:       ScopeSidebar,
		Handler:     shortcutNewChat,
	},
	{
		Key:             "f",
		Description:     "Favorilere ekle/çıkar",
		Category:        CategorySessions,
		Scope:           ScopeSidebar,
		RequiresSession: true,
		Handler:         shortcutToggleFavorite,
	},
	{
		Key:             "r",
		Description:     "Yeniden adlandır",
		Category:        CategorySessions,
		Scope:           ScopeSidebar,
		RequiresSession: true,
		Handler:         shortcutRenameSession,
	},
	{
		Key:             "d",
		Description:     "Sohbeti sil",
		Category:        CategorySessions,
		Scope:           ScopeSidebar,
		RequiresSession: true,
		Handler:         shortcutDeleteSession,
	},

	// Messages
	{
		Key:         keys.Enter,
		Description: "Mesaj gönder",
		Category:    CategoryMessages,
		Scope:       ScopeChat,
		Handler:     shortcutSend,
	},
	{
		Key:         keys.CtrlUp,
		DisplayKey:  "ctrl+↑",
		Description: "Önceki mesajı seç",
		Category:    CategoryMessages,
		Scope:       ScopeChat,
		Handler:     shortcutSelectPrev,
	},
	{
		Key:         keys.CtrlDown,
		DisplayKey:  "ctrl+↓",
		Description: "Sonraki mesajı seç",
		Category:    CategoryMessages,
		Scope:       ScopeChat,
		Handler:     shortcutSelectNext,
	},
	{
		Key:         keys.Escape,
		Description: "Seçimi bırak",
		Category:    CategoryMessages,
		Scope:       ScopeChat,
		Handler:     shortcutClearSelection,
		Condition:   func(m *Model) bool { return m.chat.HasSelection() },
	},
	{
		Key:         keys.CtrlY,
		Description: "Mesajı kopyala",
		Category:    CategoryMessages,
		Scope:       ScopeChat,
		Handler:     shortcutCopyMessage,
	},
	{
		Key:         keys.CtrlE,
		Description: "Tepki ekle",
		Category:    CategoryMessages,
		Scope:       ScopeChat,
		Handler:     shortcutReact,
	},
	{
		Key:         keys.CtrlF,
		Description: "Mesajı favorile",
		Category:    CategoryMessages,
		Scope:       ScopeChat,
		Handler:     shortcutFavoriteMessage,
	},
	{
		Key:         keys.CtrlR,
		Description: "Yanıtı yeniden oluştur",
		Category:    CategoryMessages,
		Scope:       ScopeChat,
		Handler:     shortcutRegenerate,
		Condition:   func(m *Model) bool { return m.activeID != "" && !m.loading },
	},

	// General
	{
		Key:         keys.CtrlL,
		Description: "Hata mesajını temizle",
		Category:    CategoryGeneral,
		Handler:     shortcutClearError,
	},
	{
		Key:         "s",
		Description: "Ayarlar",
		Category:    CategoryGeneral,
		Scope:       ScopeSidebar,
		Handler:     shortcutSettings,
	},
	{
		Key:         "q",
		Description: "Çıkış",
		Category:    CategoryGeneral,
		Scope:       ScopeSidebar,
		Handler:     shortcutQuit,
	},
}

// helpShortcuts open the help modal. They live outside the registry because
// shortcutHelp reads the registry.
var helpShortcuts = []Shortcut{
	{
		Key:         keys.F1,
		Description: "Klavye kısayolları",
		Category:    CategoryGeneral,
	},
	{
		Key:         "?",
		Description: "Klavye kısayolları",
		Category:    CategoryGeneral,
		Scope:       ScopeSidebar,
	},
}

// DisplayOnlyShortcuts are listed in help but handled elsewhere.
var DisplayOnlyShortcuts = []Shortcut{
	{Key: "↑/↓", Description: "Sohbetler arasında gezin", Category: CategoryNavigation, Scope: ScopeSidebar},
	{Key: keys.ShiftEnter, Description: "Yeni satır", Category: CategoryMessages, Scope: ScopeChat},
	{Key: "pgup/pgdown", Description: "Mesajları kaydır", Category: CategoryMessages, Scope: ScopeChat},
	{Key: keys.CtrlC, Description: "Çıkış", Category: CategoryGeneral},
}

// inScope reports whether s can fire with the current focus.
func (m *Model) inScope(s Shortcut) bool {
	switch s.Scope {
	case ScopeSidebar:
		return m.focus == FocusSidebar
	case ScopeChat:
		return m.focus == FocusChat
	}
	return true
}

// targetSessionID is the session that session shortcuts act on: the
// highlighted row when the sidebar is focused, otherwise the open session.
func (m *Model) targetSessionID() string {
	if m.focus == FocusSidebar {
		if s := m.sidebar.SelectedSession(); s != nil {
			return s.ID
		}
		return ""
	}
	if m.activeID != "" {
		return m.activeID
	}
	if s := m.sidebar.SelectedSession(); s != nil {
		return s.ID
	}
	return ""
}

// ExecuteShortcut finds and executes a shortcut by key.
// It checks all guards (Scope, RequiresSession, Condition) before executing.
// Returns (model, cmd, true) if the shortcut was found and executed.
// Returns (model, nil, false) if the shortcut was not found or guards failed.
func (m *Model) ExecuteShortcut(key string) (tea.Model, tea.Cmd, bool) {
	// Search typing goes to the sidebar's input
	if m.sidebar.IsSearchMode() && m.focus == FocusSidebar {
		return m, nil, false
	}

	for _, s := range helpShortcuts {
		if s.Key == key && m.inScope(s) {
			result, cmd := shortcutHelp(m)
			return result, cmd, true
		}
	}

	log := logger.WithComponent("shortcuts")
	for _, s := range ShortcutRegistry {
		if s.Key != key || !m.inScope(s) {
			continue
		}
		if s.RequiresSession && m.targetSessionID() == "" {
			log.Debug("guard failed: no session", "key", key)
			continue
		}
		if s.Condition != nil && !s.Condition(m) {
			log.Debug("guard failed: condition", "key", key)
			continue
		}
		log.Debug("executing shortcut", "key", key, "focus", m.focus.String())
		result, cmd := s.Handler(m)
		return result, cmd, true
	}
	return m, nil, false
}

// findShortcutByDisplay finds a registry entry by the key and description
// shown in help. Several entries share a key in different panels.
func findShortcutByDisplay(display, desc string) *Shortcut {
	for i := range ShortcutRegistry {
		s := &ShortcutRegistry[i]
		if s.Description != desc {
			continue
		}
		if s.DisplayKey == display || (s.DisplayKey == "" && s.Key == display) {
			return s
		}
	}
	return nil
}

// getHelpSections groups every shortcut by category for the help modal.
func (m *Model) getHelpSections() []modals.HelpSection {
	categories := make(map[string][]modals.HelpShortcut)
	add := func(s Shortcut) {
		display := s.DisplayKey
		if display == "" {
			display = s.Key
		}
		categories[s.Category] = append(categories[s.Category], modals.HelpShortcut{
			Key:  display,
			Desc: s.Description,
		})
	}

	for _, s := range ShortcutRegistry {
		add(s)
	}
	for _, s := range DisplayOnlyShortcuts {
		add(s)
	}
	add(helpShortcuts[0])

	var sections []modals.HelpSection
	for _, cat := range categoryOrder {
		if shortcuts, ok := categories[cat]; ok && len(shortcuts) > 0 {
			sections = append(sections, modals.HelpSection{
				Title:     cat,
				Shortcuts: shortcuts,
			})
		}
	}
	return sections
}

// =============================================================================
// Shortcut Handlers
// =============================================================================

func shortcutToggleFocus(m *Model) (tea.Model, tea.Cmd) {
	m.toggleFocus()
	return m, nil
}

func shortcutToggleSidebar(m *Model) (tea.Model, tea.Cmd) {
	if ui.GetViewContext().Narrow || m.config == nil {
		if m.sidebarOpen {
			m.sidebarOpen = false
			m.setFocus(FocusChat)
		} else {
			m.setFocus(FocusSidebar)
		}
		m.updateSizes()
		return m, nil
	}

	hidden := !m.config.GetSidebarHidden()
	m.config.SetSidebarHidden(hidden)
	if err := m.config.Save(); err != nil {
		logger.WithComponent("app").Warn("failed to save config", "error", err)
	}
	m.sidebarOpen = false
	if hidden && m.focus == FocusSidebar {
		m.setFocus(FocusChat)
	}
	m.updateSizes()
	return m, nil
}

func shortcutCloseOverlay(m *Model) (tea.Model, tea.Cmd) {
	m.sidebarOpen = false
	m.setFocus(FocusChat)
	m.updateSizes()
	return m, nil
}

func shortcutSearch(m *Model) (tea.Model, tea.Cmd) {
	return m, m.sidebar.EnterSearchMode()
}

func shortcutOpenSession(m *Model) (tea.Model, tea.Cmd) {
	return m, m.selectSession(m.targetSessionID())
}

func shortcutNewChat(m *Model) (tea.Model, tea.Cmd) {
	if m.sidebarOpen {
		m.sidebarOpen = false
		m.updateSizes()
	}
	m.newChat()
	return m, nil
}

func shortcutToggleFavorite(m *Model) (tea.Model, tea.Cmd) {
	return m, m.toggleFavorite(m.targetSessionID())
}

func shortcutRenameSession(m *Model) (tea.Model, tea.Cmd) {
	id := m.targetSessionID()
	s, ok := m.findSession(id)
	if !ok {
		return m, nil
	}
	m.modal.Show(modals.NewRenameSessionState(s.ID, s.Title))
	return m, nil
}

func shortcutDeleteSession(m *Model) (tea.Model, tea.Cmd) {
	id := m.targetSessionID()
	s, ok := m.findSession(id)
	if !ok {
		return m, nil
	}
	m.modal.Show(modals.NewConfirmDeleteState(s.ID, s.Title))
	return m, nil
}

func shortcutSend(m *Model) (tea.Model, tea.Cmd) {
	return m, m.sendUserMessage(m.chat.GetInput())
}

func shortcutSelectPrev(m *Model) (tea.Model, tea.Cmd) {
	m.chat.SelectPrev()
	return m, nil
}

func shortcutSelectNext(m *Model) (tea.Model, tea.Cmd) {
	m.chat.SelectNext()
	return m, nil
}

func shortcutClearSelection(m *Model) (tea.Model, tea.Cmd) {
	m.chat.ClearSelection()
	return m, nil
}

func shortcutCopyMessage(m *Model) (tea.Model, tea.Cmd) {
	return m, m.copyMessage()
}

func shortcutReact(m *Model) (tea.Model, tea.Cmd) {
	return m, m.cycleReaction()
}

func shortcutFavoriteMessage(m *Model) (tea.Model, tea.Cmd) {
	return m, m.toggleMessageFavorite()
}

func shortcutRegenerate(m *Model) (tea.Model, tea.Cmd) {
	return m, m.regenerateTarget()
}

func shortcutClearError(m *Model) (tea.Model, tea.Cmd) {
	m.setError("")
	return m, nil
}

func shortcutSettings(m *Model) (tea.Model, tea.Cmd) {
	if m.config == nil {
		return m, nil
	}
	apiURL := ""
	if m.env != nil {
		apiURL = m.env.APIURL
	}
	m.modal.Show(modals.NewSettingsState(apiURL, m.config.GetNotificationsEnabled(), m.config.GetSidebarHidden()))
	return m, nil
}

func shortcutHelp(m *Model) (tea.Model, tea.Cmd) {
	m.modal.Show(modals.NewHelpStateFromSections(m.getHelpSections()))
	return m, nil
}

func shortcutQuit(m *Model) (tea.Model, tea.Cmd) {
	return m, tea.Quit
}
