package modals

import (
	"slices"

	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"
)

// =============================================================================
// SettingsState - State for the Settings modal
// =============================================================================

type SettingsState struct {
	NotificationsEnabled bool
	SidebarHidden        bool
	APIURL               string

	// MultiSelect binding
	options []string

	form *huh.Form
}

const (
	optionNotifications = "notifications"
	optionSidebarHidden = "sidebar-hidden"
)

func (*SettingsState) modalState() {}

func (s *SettingsState) Title() string { return "Ayarlar" }

func (s *SettingsState) Help() string {
	return "Space: değiştir  Enter: kaydet  Esc: vazgeç"
}

func (s *SettingsState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	api := lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		MarginBottom(1).
		Render("Sunucu: " + s.APIURL)

	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, api, s.form.View(), help)
}

func (s *SettingsState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = huhFormUpdate(s.form, msg)
	s.syncFromMultiSelect()
	return s, cmd
}

// syncFromMultiSelect updates boolean fields from the MultiSelect binding.
func (s *SettingsState) syncFromMultiSelect() {
	s.NotificationsEnabled = slices.Contains(s.options, optionNotifications)
	s.SidebarHidden = slices.Contains(s.options, optionSidebarHidden)
}

// NewSettingsState creates a SettingsState with the current preference values.
func NewSettingsState(apiURL string, notificationsEnabled, sidebarHidden bool) *SettingsState {
	s := &SettingsState{
		NotificationsEnabled: notificationsEnabled,
		SidebarHidden:        sidebarHidden,
		APIURL:               apiURL,
	}

	opts := []huh.Option[string]{
		huh.NewOption("Masaüstü bildirimleri", optionNotifications).
			Selected(notificationsEnabled),
		huh.NewOption("Sohbet geçmişini gizle", optionSidebarHidden).
			Selected(sidebarHidden),
	}
	if notificationsEnabled {
		s.options = append(s.options, optionNotifications)
	}
	if sidebarHidden {
		s.options = append(s.options, optionSidebarHidden)
	}

	s.form = newModalForm(huh.NewGroup(
		huh.NewMultiSelect[string]().
			Title("Seçenekler").
			Options(opts...).
			Height(len(opts)).
			Value(&s.options),
	))
	return s
}
