package app

import (
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/attt/sohbet/internal/backend"
	"github.com/attt/sohbet/internal/chat"
	"github.com/attt/sohbet/internal/errors"
	"github.com/attt/sohbet/internal/logger"
)

// sendUserMessage submits text in the active session, starting a session
// first when none is open. Blank text and sends while a reply is pending
// are ignored.
func (m *Model) sendUserMessage(text string) tea.Cmd {
	text = strings.TrimSpace(text)
	if text == "" || m.loading {
		return nil
	}
	m.chat.ClearInput()
	m.chat.ClearSelection()
	m.setError("")

	if m.activeID == "" {
		return m.startSession(text)
	}
	return m.appendAndSend(text)
}

// startSession opens a local session for the first message at once, shows
// the message, and asks the backend for a real session. The send goes out
// once the backend answers; see handleSessionReady.
func (m *Model) startSession(text string) tea.Cmd {
	s := chat.NewLocalSession(chat.TitleFromText(text), m.now())
	m.sessions = append([]chat.ChatSession{s}, m.sessions...)
	m.cache.Put(s)
	m.activate(s)
	m.appendUserMessage(s.ID, text)

	m.loading = true
	m.pending = &pendingRequest{kind: pendingCreate, sessionID: s.ID, started: m.now()}
	logger.WithSession(s.ID).Debug("creating session for first message")
	return tea.Batch(m.chat.SetLoading(true), m.createSessionCmd(text, s.ID))
}

// appendAndSend appends the user message to the active session and issues
// the send.
func (m *Model) appendAndSend(text string) tea.Cmd {
	sid := m.activeID
	m.appendUserMessage(sid, text)

	m.loading = true
	m.pending = &pendingRequest{kind: pendingSend, sessionID: sid, started: m.now()}

	logger.WithSession(sid).Info("sending message", "chars", len(text))
	return tea.Batch(m.chat.SetLoading(true), m.sendCmd(text, sid))
}

// appendUserMessage shows text as a user message in session sid. It is
// never rolled back.
func (m *Model) appendUserMessage(sid, text string) {
	userMsg := chat.NewUserMessage(text, sid, m.now())

	m.messages = append(m.messages, userMsg)
	if !m.cache.AppendMessage(sid, userMsg) {
		logger.WithSession(sid).Warn("active session missing from cache")
	}
	m.appendToCatalog(sid, userMsg)
	m.syncMessages()
	m.syncSessions()
}

// creating reports whether id is the local session whose backend
// counterpart is still being created. Any id matches when id is "".
func (m *Model) creating(id string) bool {
	if m.pending == nil || m.pending.kind != pendingCreate {
		return false
	}
	return id == "" || id == m.pending.sessionID
}

// adoptSession moves the local session localID to the session the backend
// created for it, keeping its messages and its place in the catalog.
func (m *Model) adoptSession(localID string, s chat.ChatSession) {
	local, _ := m.cache.Get(localID)
	s.Messages = local.Messages
	for i := range s.Messages {
		s.Messages[i].SessionID = s.ID
	}
	if s.Title == "" {
		s.Title = local.Title
	}
	m.cache.Replace(localID, s)

	for i := range m.sessions {
		if m.sessions[i].ID == localID {
			m.sessions[i] = s.Clone()
		}
	}
	if m.activeID == localID {
		m.activeID = s.ID
		for i := range m.messages {
			m.messages[i].SessionID = s.ID
		}
		m.syncMessages()
		m.sidebar.SelectSession(s.ID)
		m.rememberActive()
	}
	m.syncSessions()
	logger.WithSession(s.ID).Debug("local session adopted", "localID", localID)
}

// finishPending clears the loading state. Every result of a pending request
// passes through here.
func (m *Model) finishPending() {
	if m.pending != nil {
		logger.WithComponent("app").Debug("request finished",
			"kind", m.pending.kind.String(),
			"sessionID", m.pending.sessionID,
			"elapsed", m.now().Sub(m.pending.started),
		)
	}
	m.pending = nil
	m.loading = false
	m.chat.SetLoading(false)
}

// appendReply stores an assistant message in its session. It is rendered
// only when that session is still the open one.
func (m *Model) appendReply(sessionID string, reply chat.Message) {
	if reply.SessionID == "" {
		reply.SessionID = sessionID
	}
	m.cache.AppendMessage(sessionID, reply)
	m.appendToCatalog(sessionID, reply)

	if sessionID != m.activeID {
		logger.WithSession(sessionID).Info("reply for inactive session cached", "activeID", m.activeID)
		m.syncSessions()
		return
	}
	m.messages = append(m.messages, reply)
	m.syncMessages()
	m.syncSessions()
}

// appendToCatalog keeps the catalog record's preview and date current.
func (m *Model) appendToCatalog(sessionID string, msg chat.Message) {
	for i := range m.sessions {
		if m.sessions[i].ID != sessionID {
			continue
		}
		m.sessions[i].Messages = append(slices.Clone(m.sessions[i].Messages), msg)
		if msg.Timestamp.After(m.sessions[i].UpdatedAt) {
			m.sessions[i].UpdatedAt = msg.Timestamp
		}
		return
	}
}

// activate makes s the open session, replacing the message list in one step.
func (m *Model) activate(s chat.ChatSession) {
	if !m.cache.Loaded(s.ID) {
		m.cache.Put(s)
	}
	m.activeID = s.ID
	m.messages = slices.Clone(s.Messages)
	m.chat.ClearSelection()
	m.syncMessages()
	m.header.SetSessionTitle(s.Title)
	m.syncSessions()
	m.sidebar.SelectSession(s.ID)
	m.rememberActive()
	logger.WithSession(s.ID).Debug("session activated", "messages", len(s.Messages))
}

// selectSession opens the session with id. A cached session opens at once;
// otherwise it is fetched, falling back to the catalog record.
func (m *Model) selectSession(id string) tea.Cmd {
	if id == "" || m.creating("") {
		return nil
	}
	if m.sidebarOpen {
		m.sidebarOpen = false
		m.updateSizes()
	}
	m.setFocus(FocusChat)

	if s, ok := m.cache.Get(id); ok && m.cache.Loaded(id) {
		m.selecting = ""
		m.activate(s)
		return nil
	}
	m.selecting = id
	return m.fetchSessionCmd(id)
}

// newChat closes the open session; the next send creates a new one.
func (m *Model) newChat() {
	if m.creating("") {
		return
	}
	m.activeID = ""
	m.messages = nil
	m.selecting = ""
	m.chat.ClearSelection()
	m.chat.ClearInput()
	m.syncMessages()
	m.header.SetSessionTitle("")
	m.sidebar.SetActive("")
	m.setError("")
	m.rememberActive()
	m.setFocus(FocusChat)
}

// deleteSession removes id locally, then asks the backend to delete it.
// A backend failure is shown but does not restore the session.
func (m *Model) deleteSession(id string) tea.Cmd {
	if m.creating(id) {
		return nil
	}
	if _, ok := m.findSession(id); !ok && !m.cache.Has(id) {
		return nil
	}

	m.deleted[id] = true
	delete(m.overrides, id)
	if m.selecting == id {
		m.selecting = ""
	}
	m.sessions = slices.DeleteFunc(m.sessions, func(s chat.ChatSession) bool { return s.ID == id })
	m.cache.Delete(id)
	if m.activeID == id {
		m.activeID = ""
		m.messages = nil
		m.chat.ClearSelection()
		m.syncMessages()
		m.header.SetSessionTitle("")
		m.rememberActive()
	}
	m.syncSessions()

	logger.WithSession(id).Info("session deleted locally")
	if strings.HasPrefix(id, chat.LocalSessionPrefix) {
		return nil
	}
	return m.syncSessionCmd(opDelete, id, func() error {
		return m.backend.DeleteSession(m.ctx, id)
	})
}

// toggleFavorite flips the favorite flag locally, then on the backend.
func (m *Model) toggleFavorite(id string) tea.Cmd {
	if m.creating(id) {
		return nil
	}
	var flag *bool
	local := strings.HasPrefix(id, chat.LocalSessionPrefix)
	for i := range m.sessions {
		if m.sessions[i].ID == id {
			m.sessions[i].IsFavorite = !m.sessions[i].IsFavorite
			v := m.sessions[i].IsFavorite
			flag = &v
			break
		}
	}
	cached := m.cache.Update(id, func(s *chat.ChatSession) {
		if flag != nil {
			s.IsFavorite = *flag
		} else {
			s.IsFavorite = !s.IsFavorite
		}
	})
	if flag == nil && !cached {
		return nil
	}
	if flag == nil {
		s, _ := m.cache.Get(id)
		flag = &s.IsFavorite
	}
	m.syncSessions()

	if local {
		return nil
	}
	ov := m.override(id)
	ov.favorite = flag
	ov.inFlight[opFavorite]++
	return m.syncSessionCmd(opFavorite, id, func() error {
		_, err := m.backend.ToggleFavorite(m.ctx, id)
		return err
	})
}

// renameSession sets the title locally, then on the backend.
func (m *Model) renameSession(id, title string) tea.Cmd {
	title = strings.TrimSpace(title)
	if title == "" || m.creating(id) {
		return nil
	}

	local := strings.HasPrefix(id, chat.LocalSessionPrefix)
	for i := range m.sessions {
		if m.sessions[i].ID == id {
			m.sessions[i].Title = title
		}
	}
	m.cache.Update(id, func(s *chat.ChatSession) { s.Title = title })
	if id == m.activeID {
		m.header.SetSessionTitle(title)
	}
	m.syncSessions()

	if local {
		return nil
	}
	ov := m.override(id)
	ov.title = &title
	ov.inFlight[opRename]++
	return m.syncSessionCmd(opRename, id, func() error {
		_, err := m.backend.UpdateSession(m.ctx, id, backend.SessionUpdate{Title: &title})
		return err
	})
}

// regenerate asks the backend for a new version of the assistant reply with
// messageID. There is no mock fallback for this path.
func (m *Model) regenerate(messageID string) tea.Cmd {
	if m.activeID == "" || m.loading {
		return nil
	}
	idx := slices.IndexFunc(m.messages, func(msg chat.Message) bool { return msg.ID == messageID })
	if idx < 0 || m.messages[idx].IsUser() {
		return nil
	}

	sid := m.activeID
	m.setError("")
	m.loading = true
	m.pending = &pendingRequest{kind: pendingRegenerate, sessionID: sid, started: m.now()}

	logger.WithSession(sid).Info("regenerating reply", "messageID", messageID)
	return tea.Batch(m.chat.SetLoading(true), m.regenerateCmd(messageID, sid))
}

// sessionOverride holds local edits of a session the backend has not
// confirmed yet. A failed sync keeps the edit.
type sessionOverride struct {
	favorite *bool
	title    *string
	inFlight map[sessionOp]int
}

func (m *Model) override(id string) *sessionOverride {
	ov, ok := m.overrides[id]
	if !ok {
		ov = &sessionOverride{inFlight: make(map[sessionOp]int)}
		m.overrides[id] = ov
	}
	return ov
}

// applyOverrides lays unconfirmed local edits over a backend record.
func (m *Model) applyOverrides(s *chat.ChatSession) {
	ov, ok := m.overrides[s.ID]
	if !ok {
		return
	}
	if ov.favorite != nil {
		s.IsFavorite = *ov.favorite
	}
	if ov.title != nil {
		s.Title = *ov.title
	}
}

// settleOverride records the end of one backend sync. The edit is dropped
// once every sync for it has succeeded and none is in flight.
func (m *Model) settleOverride(op sessionOp, id string, err error) {
	ov, ok := m.overrides[id]
	if !ok {
		return
	}
	if ov.inFlight[op] > 0 {
		ov.inFlight[op]--
	}
	if err != nil || ov.inFlight[op] > 0 {
		return
	}
	switch op {
	case opFavorite:
		ov.favorite = nil
	case opRename:
		ov.title = nil
	}
	if ov.favorite == nil && ov.title == nil {
		delete(m.overrides, id)
	}
}

// mergeCatalog replaces the catalog with a fresh listing. Sessions deleted
// here stay out and unconfirmed local edits win over listed values. Every
// listed session is cached; cached messages are kept when the listing
// carries none. Local sessions the backend does not know stay at the top.
func (m *Model) mergeCatalog(list []chat.ChatSession) {
	listed := make(map[string]bool, len(list))
	merged := make([]chat.ChatSession, 0, len(list)+len(m.sessions))

	for _, s := range m.sessions {
		if s.IsLocal() {
			merged = append(merged, s)
		}
	}
	for _, s := range list {
		if m.deleted[s.ID] || listed[s.ID] {
			continue
		}
		listed[s.ID] = true
		m.applyOverrides(&s)
		if len(s.Messages) > 0 {
			m.cache.Put(s)
		} else {
			m.cache.PutSummary(s)
			if cached, ok := m.cache.Get(s.ID); ok {
				s.Messages = cached.Messages
			}
		}
		merged = append(merged, s)
	}
	// Sessions created here but not listed yet (eventual consistency)
	for _, s := range m.sessions {
		if !s.IsLocal() && !listed[s.ID] && s.ID == m.activeID {
			merged = append([]chat.ChatSession{s}, merged...)
		}
	}
	m.sessions = merged
	m.syncSessions()
}

// errorText is the banner text for err.
func errorText(err error) string {
	return errors.UserMessage(err)
}
