// Package ui provides the terminal components of the ATTT Assistant chat
// client, built on Bubble Tea and Lipgloss.
//
// # Layout
//
//	┌─────────────────────────────────────────────────────┐
//	│ Header: title, backend status, session title        │
//	├─────────────────┬───────────────────────────────────┤
//	│                 │                                   │
//	│ Sohbet Geçmişi  │   Conversation view               │
//	│ (1/3 width)     │                                   │
//	│                 ├───────────────────────────────────┤
//	│                 │   Input (1-5 lines)               │
//	├─────────────────┴───────────────────────────────────┤
//	│ Footer: shortcuts or flash message                  │
//	└─────────────────────────────────────────────────────┘
//
// Below NarrowWidth columns the history panel is hidden and opens as an
// overlay on top of the conversation.
//
// # Components
//
// ViewContext holds the layout arithmetic. Header shows the application
// title and backend status. Footer shows context-aware shortcuts and flash
// messages. Sidebar lists sessions with search. Chat renders message rows,
// the typing indicator, the error banner and the input. Modal wraps the
// dialog states defined in the modals subpackage.
package ui
