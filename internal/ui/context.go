package ui

import (
	"sync"

	"github.com/attt/sohbet/internal/logger"
)

// ViewContext holds centralized layout calculations.
// All size calculations should go through this to avoid duplication.
type ViewContext struct {
	// Terminal dimensions
	TerminalWidth  int
	TerminalHeight int

	// Calculated dimensions
	HeaderHeight  int
	FooterHeight  int
	ContentHeight int
	SidebarWidth  int
	ChatWidth     int

	// Narrow is set below NarrowWidth columns. The history panel is then
	// drawn as an overlay and the chat takes the full width.
	Narrow bool

	mu sync.Mutex
}

// Global view context instance
var ctx *ViewContext
var ctxOnce sync.Once

// GetViewContext returns the singleton ViewContext instance
func GetViewContext() *ViewContext {
	ctxOnce.Do(func() {
		ctx = &ViewContext{
			HeaderHeight: HeaderHeight,
			FooterHeight: FooterHeight,
		}
	})
	return ctx
}

// UpdateTerminalSize recalculates all dimensions when terminal size changes.
func (v *ViewContext) UpdateTerminalSize(width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}
	if height < MinTerminalHeight {
		height = MinTerminalHeight
	}

	v.TerminalWidth = width
	v.TerminalHeight = height
	v.HeaderHeight = HeaderHeight
	v.FooterHeight = FooterHeight
	v.ContentHeight = height - v.HeaderHeight - v.FooterHeight
	v.Narrow = width < NarrowWidth

	if v.Narrow {
		v.SidebarWidth = min(width, SidebarOverlayMaxWidth)
		v.ChatWidth = width
	} else {
		v.SidebarWidth = max(width/SidebarWidthRatio, SidebarMinWidth)
		v.ChatWidth = width - v.SidebarWidth
	}

	logger.WithComponent("ui").Debug("terminal size updated",
		"width", width,
		"height", height,
		"contentHeight", v.ContentHeight,
		"sidebarWidth", v.SidebarWidth,
		"chatWidth", v.ChatWidth,
		"narrow", v.Narrow,
	)
}

// ChatWidthFor returns the chat panel width when the docked history panel
// is shown or hidden.
func (v *ViewContext) ChatWidthFor(sidebarDocked bool) int {
	v.mu.Lock()
	defer v.mu.Unlock()
	if sidebarDocked && !v.Narrow {
		return v.ChatWidth
	}
	return v.TerminalWidth
}

// InnerWidth returns the usable width inside a panel with borders
func (v *ViewContext) InnerWidth(panelWidth int) int {
	return max(panelWidth-BorderSize, 0)
}

// InnerHeight returns the usable height inside a panel with borders
func (v *ViewContext) InnerHeight(panelHeight int) int {
	return max(panelHeight-BorderSize, 0)
}
