package modals

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Theme is the part of the chat palette the rename, delete, settings and
// help dialogs draw with. The ui package owns the values.
type Theme struct {
	Title, Help lipgloss.Style

	Primary, Secondary, Text, Muted, Inverse, Warning color.Color

	InputWidth     int
	InputCharLimit int
	Width          int
	HelpVisible    int
}

// Current theme values, read by the dialogs at render time.
var (
	ModalTitleStyle lipgloss.Style
	ModalHelpStyle  lipgloss.Style

	ColorPrimary     color.Color
	ColorSecondary   color.Color
	ColorText        color.Color
	ColorTextMuted   color.Color
	ColorTextInverse color.Color
	ColorWarning     color.Color

	ModalInputWidth     int
	ModalInputCharLimit int
	ModalWidth          int
	HelpModalMaxVisible int
)

// Apply installs t. The ui package calls it from init, before any dialog
// is built.
func (t Theme) Apply() {
	ModalTitleStyle, ModalHelpStyle = t.Title, t.Help

	ColorPrimary, ColorSecondary = t.Primary, t.Secondary
	ColorText, ColorTextMuted, ColorTextInverse = t.Text, t.Muted, t.Inverse
	ColorWarning = t.Warning

	ModalInputWidth, ModalInputCharLimit = t.InputWidth, t.InputCharLimit
	ModalWidth, HelpModalMaxVisible = t.Width, t.HelpVisible
}
