package ui

import (
	"charm.land/lipgloss/v2"

	"github.com/attt/sohbet/internal/ui/modals"
)

// Hex values the header gradient interpolates between.
const (
	hexPrimary = "#2563EB"
	hexBg      = "#111827"
)

// Color palette - Blue + Teal
var (
	ColorPrimary     = lipgloss.Color(hexPrimary) // Blue
	ColorSecondary   = lipgloss.Color("#14B8A6")  // Teal
	ColorMuted       = lipgloss.Color("#6B7280")  // Gray
	ColorBorder      = lipgloss.Color("#374151")  // Dark gray
	ColorBorderFocus = lipgloss.Color(hexPrimary) // Blue when focused
	ColorBg          = lipgloss.Color(hexBg)      // Dark background
	ColorBgSelected  = lipgloss.Color("#1E3A8A")  // Selected row
	ColorText        = lipgloss.Color("#F9FAFB")  // Light text
	ColorTextMuted   = lipgloss.Color("#9CA3AF")  // Muted text
	ColorTextInverse = lipgloss.Color("#111827")  // Dark text for light backgrounds
	ColorUser        = lipgloss.Color("#93C5FD")  // Light blue for user messages
	ColorBot         = lipgloss.Color("#5EEAD4")  // Teal for assistant messages
	ColorWarning     = lipgloss.Color("#F59E0B")  // Amber
	ColorError       = lipgloss.Color("#EF4444")  // Red
	ColorSuccess     = lipgloss.Color("#10B981")  // Green
	ColorFavorite    = lipgloss.Color("#FACC15")  // Yellow star
)

// Header styles
var (
	HeaderTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorText)

	HeaderOnlineStyle = lipgloss.NewStyle().
				Foreground(ColorSuccess)

	HeaderOfflineStyle = lipgloss.NewStyle().
				Foreground(ColorError)
)

// Footer styles
var (
	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	FooterKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	FooterDescStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)
)

// Flash message styles, keyed by FlashType
var flashStyles = map[FlashType]lipgloss.Style{
	FlashInfo:    lipgloss.NewStyle().Foreground(ColorSecondary),
	FlashSuccess: lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true),
	FlashWarning: lipgloss.NewStyle().Foreground(ColorWarning).Bold(true),
	FlashError:   lipgloss.NewStyle().Foreground(ColorError).Bold(true),
}

// Panel styles
var (
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	PanelFocusedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderFocus)

	PanelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(0, 1)
)

// Sidebar styles
var (
	SidebarItemStyle = lipgloss.NewStyle().
				Padding(0, 1)

	SidebarSelectedStyle = lipgloss.NewStyle().
				Background(ColorBgSelected).
				Foreground(ColorText).
				Bold(true).
				Padding(0, 1)

	SidebarMetaStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Italic(true)

	SidebarFavoriteStyle = lipgloss.NewStyle().
				Foreground(ColorFavorite)
)

// Chat styles
var (
	ChatUserStyle = lipgloss.NewStyle().
			Foreground(ColorUser).
			Bold(true)

	ChatBotStyle = lipgloss.NewStyle().
			Foreground(ColorBot).
			Bold(true)

	ChatTimestampStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	ChatUserBubbleStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorUser).
				Padding(0, 1)

	ChatBotBubbleStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorder).
				Padding(0, 1)

	ChatSelectedBubbleStyle = lipgloss.NewStyle().
				Border(lipgloss.ThickBorder()).
				BorderForeground(ColorPrimary).
				Padding(0, 1)

	ChatReactionStyle = lipgloss.NewStyle().
				Foreground(ColorText)

	ChatMarkerStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	ChatLinkBoxStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder()).
				BorderLeft(true).
				BorderTop(false).
				BorderRight(false).
				BorderBottom(false).
				BorderForeground(ColorSecondary).
				PaddingLeft(1)

	ChatLinkTitleStyle = lipgloss.NewStyle().
				Foreground(ColorText).
				Bold(true)

	ChatChipStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Foreground(ColorTextMuted).
			Padding(0, 1)

	ChatInputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	ChatInputFocusedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderFocus).
				Padding(0, 1)

	ChatErrorBannerStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorError).
				Foreground(ColorError).
				Padding(0, 1)
)

// Modal styles
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(1, 2).
			Width(ModalWidth)

	ModalTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	ModalHelpStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			MarginTop(1)
)

// Status styles
var (
	StatusLoadingStyle = lipgloss.NewStyle().
				Foreground(ColorSecondary).
				Italic(true)

	StatusErrorStyle = lipgloss.NewStyle().
				Foreground(ColorError).
				Bold(true)
)

func init() {
	modals.Theme{
		Title:          ModalTitleStyle,
		Help:           ModalHelpStyle,
		Primary:        ColorPrimary,
		Secondary:      ColorSecondary,
		Text:           ColorText,
		Muted:          ColorTextMuted,
		Inverse:        ColorTextInverse,
		Warning:        ColorWarning,
		InputWidth:     ModalInputWidth,
		InputCharLimit: ModalInputCharLimit,
		Width:          ModalWidth,
		HelpVisible:    HelpModalMaxVisible,
	}.Apply()
}
