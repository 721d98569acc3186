// Package modals holds the dialogs the chat shell opens over the
// conversation: session rename and delete confirmation, settings, and the
// keyboard help list. Each dialog keeps its own state struct so the shell's
// submit handlers read typed fields (the target session id, the new title)
// instead of digging through a form.
package modals

import (
	tea "charm.land/bubbletea/v2"
)

// ModalState is implemented by every dialog. The unexported marker keeps
// the set closed to this package.
type ModalState interface {
	modalState()
	Title() string
	Help() string
	Render() string
	Update(msg tea.Msg) (ModalState, tea.Cmd)
}

// ModalWithSize is implemented by dialogs that lay out a list and need the
// space left on screen, like the help list.
type ModalWithSize interface {
	ModalState
	SetSize(width, height int)
}

// HelpShortcut is one row of the help list: the key as shown and what it does.
type HelpShortcut struct {
	Key  string
	Desc string
}

// HelpSection groups shortcuts under a heading such as "Sohbetler".
type HelpSection struct {
	Title     string
	Shortcuts []HelpShortcut
}
