package app

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/attt/sohbet/internal/backend"
	"github.com/attt/sohbet/internal/chat"
	"github.com/attt/sohbet/internal/clipboard"
	"github.com/attt/sohbet/internal/config"
	"github.com/attt/sohbet/internal/logger"
	"github.com/attt/sohbet/internal/notification"
	"github.com/attt/sohbet/internal/session"
	"github.com/attt/sohbet/internal/ui"
)

// Focus represents which panel is focused
type Focus int

const (
	FocusChat Focus = iota
	FocusSidebar
)

func (f Focus) String() string {
	if f == FocusSidebar {
		return "sidebar"
	}
	return "chat"
}

// Backend is everything the shell asks of the chat server.
type Backend interface {
	backend.Sender
	RegenerateMessage(ctx context.Context, messageID, sessionID string) (chat.Message, error)
	GetMessages(ctx context.Context, sessionID string) ([]chat.Message, error)
	ListSessions(ctx context.Context) ([]chat.ChatSession, error)
	CreateSession(ctx context.Context, title string) (chat.ChatSession, error)
	GetSession(ctx context.Context, id string) (chat.ChatSession, error)
	UpdateSession(ctx context.Context, id string, upd backend.SessionUpdate) (chat.ChatSession, error)
	DeleteSession(ctx context.Context, id string) error
	ToggleFavorite(ctx context.Context, id string) (chat.ChatSession, error)
	HealthCheck(ctx context.Context) bool
}

// Options configures a Model. Backend and Config are required.
type Options struct {
	Backend Backend
	// Replier substitutes for the backend when a send fails. Nil disables
	// the fallback.
	Replier backend.Replier
	Config  *config.Config
	Env     *config.Env
	// Cache defaults to an empty cache.
	Cache   *session.Cache
	Version string

	Context  context.Context
	Now      func() time.Time
	CopyText func(text string) error
	Notify   func(sessionTitle, reply string) error
}

// pendingKind says what the in-flight request will produce.
type pendingKind int

const (
	pendingCreate pendingKind = iota
	pendingSend
	pendingRegenerate
)

func (k pendingKind) String() string {
	switch k {
	case pendingCreate:
		return "create"
	case pendingSend:
		return "send"
	default:
		return "regenerate"
	}
}

// pendingRequest describes the request the typing indicator is waiting on.
type pendingRequest struct {
	kind      pendingKind
	sessionID string
	started   time.Time
}

// Model is the main Bubble Tea model
type Model struct {
	ctx     context.Context
	backend Backend
	replier backend.Replier
	config  *config.Config
	env     *config.Env
	version string

	now      func() time.Time
	copyText func(string) error
	notify   func(string, string) error

	header  *ui.Header
	footer  *ui.Footer
	sidebar *ui.Sidebar
	chat    *ui.Chat
	modal   *ui.Modal

	width         int
	height        int
	focus         Focus
	windowFocused bool
	sidebarOpen   bool // history overlay in the narrow layout

	cache    *session.Cache
	sessions []chat.ChatSession
	messages []chat.Message
	activeID string
	loading  bool
	errText  string
	pending  *pendingRequest

	// selecting is the session a GetSession is in flight for
	selecting string
	// restored is set once the initial catalog load has run
	restored bool

	// deleted holds sessions removed here; listings never bring them back
	deleted map[string]bool
	// overrides are local favorite and title edits listings must not undo
	overrides map[string]*sessionOverride
}

// New creates a new app model
func New(opts Options) *Model {
	m := &Model{
		ctx:           opts.Context,
		backend:       opts.Backend,
		replier:       opts.Replier,
		config:        opts.Config,
		env:           opts.Env,
		version:       opts.Version,
		now:           opts.Now,
		copyText:      opts.CopyText,
		notify:        opts.Notify,
		cache:         opts.Cache,
		header:        ui.NewHeader(),
		footer:        ui.NewFooter(),
		sidebar:       ui.NewSidebar(),
		chat:          ui.NewChat(),
		modal:         ui.NewModal(),
		focus:         FocusChat,
		windowFocused: true,
		deleted:       make(map[string]bool),
		overrides:     make(map[string]*sessionOverride),
	}
	if m.ctx == nil {
		m.ctx = context.Background()
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.copyText == nil {
		m.copyText = clipboard.WriteText
	}
	if m.notify == nil {
		m.notify = notification.ReplyReceived
	}
	if m.cache == nil {
		m.cache = session.NewCache()
	}
	if m.env == nil {
		m.env = &config.Env{UserID: "local-user"}
	}

	m.chat.SetFocused(true)
	return m
}

// Init issues the initial catalog load and the health check.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.listSessionsCmd(true), m.healthCheckCmd())
}

// ActiveSessionID returns the id of the open session, or "".
func (m *Model) ActiveSessionID() string {
	return m.activeID
}

// Messages returns the active message list.
func (m *Model) Messages() []chat.Message {
	return m.messages
}

// Sessions returns the session catalog as rendered.
func (m *Model) Sessions() []chat.ChatSession {
	return m.sessions
}

// IsLoading reports whether a reply is pending.
func (m *Model) IsLoading() bool {
	return m.loading
}

// ErrorText returns the error banner text.
func (m *Model) ErrorText() string {
	return m.errText
}

// Cache returns the session cache.
func (m *Model) Cache() *session.Cache {
	return m.cache
}

// activeSession returns the catalog record of the open session.
func (m *Model) activeSession() (chat.ChatSession, bool) {
	if m.activeID == "" {
		return chat.ChatSession{}, false
	}
	return m.findSession(m.activeID)
}

func (m *Model) findSession(id string) (chat.ChatSession, bool) {
	for _, s := range m.sessions {
		if s.ID == id {
			return s, true
		}
	}
	return chat.ChatSession{}, false
}

// setError sets the error banner; empty hides it.
func (m *Model) setError(text string) {
	m.errText = text
	m.chat.SetError(text)
}

// syncMessages pushes the active message list to the chat view.
func (m *Model) syncMessages() {
	m.chat.SetMessages(m.messages)
}

// syncSessions pushes the catalog to the sidebar.
func (m *Model) syncSessions() {
	m.sidebar.SetSessions(m.sessions)
	m.sidebar.SetActive(m.activeID)
	if s, ok := m.activeSession(); ok {
		m.header.SetSessionTitle(s.Title)
	}
}

// rememberActive stores the open session for the next start.
func (m *Model) rememberActive() {
	if m.config == nil {
		return
	}
	if m.config.GetLastSessionID() == m.activeID {
		return
	}
	m.config.SetLastSessionID(m.activeID)
	if err := m.config.Save(); err != nil {
		logger.WithComponent("app").Warn("failed to save config", "error", err)
	}
}

// setFocus moves keyboard focus, opening the overlay when the history panel
// is not otherwise shown.
func (m *Model) setFocus(f Focus) {
	m.focus = f
	if f == FocusSidebar && !m.sidebarVisible() {
		m.sidebarOpen = true
		m.updateSizes()
	}
	m.sidebar.SetFocused(f == FocusSidebar)
	m.chat.SetFocused(f == FocusChat)
}

// toggleFocus switches between the sidebar and the chat
func (m *Model) toggleFocus() {
	if m.focus == FocusSidebar {
		if ui.GetViewContext().Narrow {
			m.sidebarOpen = false
		}
		m.setFocus(FocusChat)
		return
	}
	m.setFocus(FocusSidebar)
}

// sidebarVisible reports whether the history panel is drawn.
func (m *Model) sidebarVisible() bool {
	if ui.GetViewContext().Narrow {
		return m.sidebarOpen
	}
	return m.sidebarOpen || m.config == nil || !m.config.GetSidebarHidden()
}

// sidebarDocked reports whether the history panel takes a column of its own.
func (m *Model) sidebarDocked() bool {
	return !ui.GetViewContext().Narrow && m.sidebarVisible()
}
