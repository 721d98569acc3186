// Package ui provides constants for layout calculations and configuration.
package ui

import "time"

// Layout constants for panel sizing
const (
	// HeaderHeight is the height of the header in lines
	HeaderHeight = 1

	// FooterHeight is the height of the footer in lines
	FooterHeight = 1

	// BorderSize is the total border width (1 on each side)
	BorderSize = 2

	// SidebarWidthRatio is the denominator for sidebar width (1/3 of total width)
	SidebarWidthRatio = 3

	// SidebarMinWidth keeps titles readable on mid-sized terminals
	SidebarMinWidth = 28

	// SidebarOverlayMaxWidth caps the history overlay in the narrow layout
	SidebarOverlayMaxWidth = 40

	// NarrowWidth is the terminal width below which the history panel
	// becomes an overlay toggled with ctrl+b
	NarrowWidth = 80

	// InputMinLines and InputMaxLines bound the auto-growing input
	InputMinLines = 1
	InputMaxLines = 5

	// InputBorderHeight is the border size around the input textarea
	InputBorderHeight = 2

	// InputPaddingWidth is the horizontal padding inside the input area (Padding(0, 1) = 1 left + 1 right)
	InputPaddingWidth = 2

	// DefaultWrapWidth is the default width for text wrapping when viewport width is unknown
	DefaultWrapWidth = 80

	// MinTerminalWidth and MinTerminalHeight are the smallest sizes laid out
	MinTerminalWidth  = 30
	MinTerminalHeight = 10
)

// Message row limits
const (
	// BubbleWidthPercent is the share of the chat width a message may use
	BubbleWidthPercent = 80

	// LinkPreviewMaxWidth caps the link preview box
	LinkPreviewMaxWidth = 60
)

// Modal dimensions
const (
	// ModalWidth is the default width of modals
	ModalWidth = 60

	// ModalInputCharLimit is the character limit for modal text inputs
	ModalInputCharLimit = 256

	// ModalInputWidth is the width of modal text inputs
	ModalInputWidth = 50

	// HelpModalMaxVisible is the number of help rows shown at once
	HelpModalMaxVisible = 16
)

// Timers
const (
	// StopwatchInterval is how often the typing indicator redraws
	StopwatchInterval = 100 * time.Millisecond

	// FlashDuration is how long a footer flash message stays visible
	FlashDuration = 3 * time.Second
)
