package modals

import (
	"image/color"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestThemeApply(t *testing.T) {
	t.Cleanup(initTestStyles)

	warning := color.RGBA{R: 200, A: 255}
	Theme{
		Title:          lipgloss.NewStyle().Underline(true),
		Warning:        warning,
		InputWidth:     40,
		InputCharLimit: 100,
		Width:          70,
		HelpVisible:    8,
	}.Apply()

	if !ModalTitleStyle.GetUnderline() {
		t.Error("title style not applied")
	}
	if ColorWarning != warning {
		t.Errorf("ColorWarning = %v, want %v", ColorWarning, warning)
	}
	if ModalInputWidth != 40 || ModalInputCharLimit != 100 || ModalWidth != 70 || HelpModalMaxVisible != 8 {
		t.Errorf("sizes not applied: %d %d %d %d", ModalInputWidth, ModalInputCharLimit, ModalWidth, HelpModalMaxVisible)
	}
}
