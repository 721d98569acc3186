package modals

import (
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"
)

// ErrEmptyTitle is reported when a session is renamed to blank text.
var ErrEmptyTitle = errors.New("Sohbet adı boş olamaz")

// ValidateTitle rejects titles that are empty after trimming.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}
	return nil
}

// =============================================================================
// RenameSessionState - State for the Rename Session modal
// =============================================================================

type RenameSessionState struct {
	SessionID    string
	CurrentTitle string

	title string
	form  *huh.Form
}

func (*RenameSessionState) modalState() {}

func (s *RenameSessionState) Title() string { return "Sohbeti yeniden adlandır" }

func (s *RenameSessionState) Help() string {
	return "Enter: kaydet  Esc: vazgeç"
}

func (s *RenameSessionState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	current := lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		MarginBottom(1).
		Render("Mevcut ad: " + s.CurrentTitle)

	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, current, s.form.View(), help)
}

func (s *RenameSessionState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = huhFormUpdate(s.form, msg)
	return s, cmd
}

// GetNewTitle returns the trimmed title entered by the user.
func (s *RenameSessionState) GetNewTitle() string {
	return strings.TrimSpace(s.title)
}

// Validate reports whether the entered title can be saved.
func (s *RenameSessionState) Validate() error {
	return ValidateTitle(s.title)
}

// NewRenameSessionState creates a rename modal prefilled with the current title.
func NewRenameSessionState(sessionID, currentTitle string) *RenameSessionState {
	s := &RenameSessionState{
		SessionID:    sessionID,
		CurrentTitle: currentTitle,
		title:        currentTitle,
	}

	s.form = newModalForm(huh.NewGroup(
		huh.NewInput().
			Title("Yeni ad").
			Placeholder("Sohbet adı").
			CharLimit(ModalInputCharLimit).
			Validate(ValidateTitle).
			Value(&s.title),
	))
	return s
}

// =============================================================================
// ConfirmDeleteState - State for the Confirm Delete modal
// =============================================================================

type ConfirmDeleteState struct {
	SessionID    string
	SessionTitle string

	confirmed bool
	form      *huh.Form
}

func (*ConfirmDeleteState) modalState() {}

func (s *ConfirmDeleteState) Title() string { return "Sohbet silinsin mi?" }

func (s *ConfirmDeleteState) Help() string {
	return "←/→: seç  Enter: onayla  Esc: vazgeç"
}

func (s *ConfirmDeleteState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	name := lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true).
		Render(s.SessionTitle)

	message := lipgloss.NewStyle().
		Foreground(ColorText).
		MarginBottom(1).
		Render("Bu sohbet ve tüm mesajları geçmişten kaldırılacak.")

	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, name, message, s.form.View(), help)
}

func (s *ConfirmDeleteState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = huhFormUpdate(s.form, msg)
	return s, cmd
}

// Confirmed reports whether "Sil" is currently chosen.
func (s *ConfirmDeleteState) Confirmed() bool {
	return s.confirmed
}

// NewConfirmDeleteState creates a delete confirmation that defaults to "Vazgeç".
func NewConfirmDeleteState(sessionID, sessionTitle string) *ConfirmDeleteState {
	s := &ConfirmDeleteState{
		SessionID:    sessionID,
		SessionTitle: sessionTitle,
	}

	s.form = newModalForm(huh.NewGroup(
		huh.NewConfirm().
			Affirmative("Sil").
			Negative("Vazgeç").
			Value(&s.confirmed),
	))
	return s
}
