package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/attt/sohbet/internal/backend"
	"github.com/attt/sohbet/internal/chat"
	"github.com/attt/sohbet/internal/logger"
	"github.com/attt/sohbet/internal/ui"
)

// SessionsLoadedMsg carries the result of ListSessions.
type SessionsLoadedMsg struct {
	Sessions []chat.ChatSession
	Err      error
	Initial  bool
}

// HealthCheckedMsg carries the result of the backend health probe.
type HealthCheckedMsg struct {
	Online bool
}

// SessionReadyMsg carries the result of creating a backend session for the
// local session LocalID. On Err the local session is kept.
type SessionReadyMsg struct {
	LocalID string
	Session chat.ChatSession
	Text    string
	Err     error
}

// ReplyMsg carries the assistant reply for a send, tagged with the session
// the message was sent in.
type ReplyMsg struct {
	SessionID string
	Message   chat.Message
	UsedMock  bool
	Err       error
}

// RegeneratedMsg carries the result of a regenerate request.
type RegeneratedMsg struct {
	SessionID  string
	OriginalID string
	Message    chat.Message
	Err        error
}

// SessionFetchedMsg carries the result of GetSession during selection.
type SessionFetchedMsg struct {
	ID      string
	Session chat.ChatSession
	Err     error
}

// sessionOp names the backend half of a two-phase session update.
type sessionOp string

const (
	opDelete   sessionOp = "delete"
	opFavorite sessionOp = "favorite"
	opRename   sessionOp = "rename"
)

// SessionSyncedMsg reports the backend half of a delete, favorite or rename.
type SessionSyncedMsg struct {
	Op        sessionOp
	SessionID string
	Err       error
}

// =============================================================================
// Commands
// =============================================================================

func (m *Model) listSessionsCmd(initial bool) tea.Cmd {
	b, ctx := m.backend, m.ctx
	return func() tea.Msg {
		list, err := b.ListSessions(ctx)
		return SessionsLoadedMsg{Sessions: list, Err: err, Initial: initial}
	}
}

func (m *Model) healthCheckCmd() tea.Cmd {
	b, ctx := m.backend, m.ctx
	return func() tea.Msg {
		return HealthCheckedMsg{Online: b.HealthCheck(ctx)}
	}
}

func (m *Model) createSessionCmd(text, localID string) tea.Cmd {
	b, ctx := m.backend, m.ctx
	return func() tea.Msg {
		s, err := b.CreateSession(ctx, chat.TitleFromText(text))
		return SessionReadyMsg{LocalID: localID, Session: s, Text: text, Err: err}
	}
}

func (m *Model) sendCmd(text, sessionID string) tea.Cmd {
	b, r, ctx := m.backend, m.replier, m.ctx
	return func() tea.Msg {
		res, usedMock, err := backend.SendWithFallback(ctx, b, r, text, sessionID)
		if err != nil {
			return ReplyMsg{SessionID: sessionID, Err: err}
		}
		if res.SessionID != "" && res.SessionID != sessionID {
			logger.WithSession(sessionID).Warn("backend answered for another session", "replySessionID", res.SessionID)
		}
		return ReplyMsg{SessionID: sessionID, Message: res.Message, UsedMock: usedMock}
	}
}

func (m *Model) regenerateCmd(messageID, sessionID string) tea.Cmd {
	b, ctx := m.backend, m.ctx
	return func() tea.Msg {
		msg, err := b.RegenerateMessage(ctx, messageID, sessionID)
		return RegeneratedMsg{SessionID: sessionID, OriginalID: messageID, Message: msg, Err: err}
	}
}

func (m *Model) fetchSessionCmd(id string) tea.Cmd {
	b, ctx := m.backend, m.ctx
	return func() tea.Msg {
		s, err := b.GetSession(ctx, id)
		return SessionFetchedMsg{ID: id, Session: s, Err: err}
	}
}

func (m *Model) syncSessionCmd(op sessionOp, id string, call func() error) tea.Cmd {
	return func() tea.Msg {
		return SessionSyncedMsg{Op: op, SessionID: id, Err: call()}
	}
}

func (m *Model) notifyCmd(sessionTitle, reply string) tea.Cmd {
	notify := m.notify
	return func() tea.Msg {
		_ = notify(sessionTitle, reply)
		return nil
	}
}

// =============================================================================
// Handlers
// =============================================================================

// handleSessionsLoaded merges a catalog listing. When the listing fails the
// catalog keeps its contents, or shows the cache when it is empty.
func (m *Model) handleSessionsLoaded(msg SessionsLoadedMsg) (tea.Model, tea.Cmd) {
	log := logger.WithComponent("app")
	if msg.Err != nil {
		log.Warn("list sessions failed", "error", msg.Err, "initial", msg.Initial)
		if len(m.sessions) == 0 {
			m.sessions = m.cache.Values()
			m.syncSessions()
		}
	} else {
		log.Debug("sessions loaded", "count", len(msg.Sessions))
		m.mergeCatalog(msg.Sessions)
	}

	if !msg.Initial || m.restored {
		return m, nil
	}
	m.restored = true
	if m.activeID != "" || m.config == nil {
		return m, nil
	}
	last := m.config.GetLastSessionID()
	if last == "" {
		return m, nil
	}
	if _, ok := m.findSession(last); !ok {
		log.Debug("last session no longer listed", "sessionID", last)
		return m, nil
	}
	return m, m.selectSession(last)
}

func (m *Model) handleHealthChecked(msg HealthCheckedMsg) (tea.Model, tea.Cmd) {
	if msg.Online {
		m.header.SetStatus(ui.StatusOnline)
	} else {
		m.header.SetStatus(ui.StatusOffline)
	}
	return m, nil
}

// handleSessionReady swaps the local session of the first message for the
// backend's and sends the message. When creation failed the local session
// stays and the send goes out under its id.
func (m *Model) handleSessionReady(msg SessionReadyMsg) (tea.Model, tea.Cmd) {
	sid := msg.LocalID
	var flash tea.Cmd
	if msg.Err != nil {
		logger.WithSession(sid).Warn("create session failed, keeping local session", "error", msg.Err)
		flash = m.ShowFlashWarning("Sunucuda sohbet açılamadı, yerel sohbet kullanılıyor")
	} else {
		m.adoptSession(sid, msg.Session)
		sid = msg.Session.ID
	}

	started := m.now()
	if m.pending != nil {
		started = m.pending.started
	}
	m.pending = &pendingRequest{kind: pendingSend, sessionID: sid, started: started}
	logger.WithSession(sid).Info("sending message", "chars", len(msg.Text))
	return m, tea.Batch(flash, m.sendCmd(msg.Text, sid))
}

func (m *Model) handleReply(msg ReplyMsg) (tea.Model, tea.Cmd) {
	m.finishPending()
	log := logger.WithSession(msg.SessionID)

	if msg.Err != nil {
		log.Error("send failed", "error", msg.Err)
		m.header.SetStatus(ui.StatusOffline)
		if msg.SessionID == m.activeID {
			m.setError(errorText(msg.Err))
		}
		return m, nil
	}

	m.appendReply(msg.SessionID, msg.Message)

	var cmds []tea.Cmd
	if msg.UsedMock {
		m.header.SetStatus(ui.StatusOffline)
		cmds = append(cmds, m.ShowFlashWarning("Sunucuya ulaşılamadı, çevrimdışı yanıt gösteriliyor"))
	} else {
		m.header.SetStatus(ui.StatusOnline)
		cmds = append(cmds, m.listSessionsCmd(false))
	}

	if !m.windowFocused && m.config != nil && m.config.GetNotificationsEnabled() {
		title := ""
		if s, ok := m.findSession(msg.SessionID); ok {
			title = s.Title
		}
		cmds = append(cmds, m.notifyCmd(title, msg.Message.Content))
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleRegenerated(msg RegeneratedMsg) (tea.Model, tea.Cmd) {
	m.finishPending()
	if msg.Err != nil {
		logger.WithSession(msg.SessionID).Error("regenerate failed", "error", msg.Err)
		if msg.SessionID == m.activeID {
			m.setError(errorText(msg.Err))
		}
		return m, nil
	}

	reply := msg.Message
	reply.IsRegenerated = true
	if reply.OriginalMessageID == "" {
		reply.OriginalMessageID = msg.OriginalID
	}
	m.appendReply(msg.SessionID, reply)
	return m, nil
}

// handleSessionFetched finishes a selection that missed the cache. A stale
// result for a session no longer being selected is dropped.
func (m *Model) handleSessionFetched(msg SessionFetchedMsg) (tea.Model, tea.Cmd) {
	if msg.ID != m.selecting || m.deleted[msg.ID] {
		return m, nil
	}
	m.selecting = ""

	if msg.Err == nil {
		m.applyOverrides(&msg.Session)
		m.cache.Put(msg.Session)
		for i := range m.sessions {
			if m.sessions[i].ID == msg.ID {
				m.sessions[i] = msg.Session.Clone()
			}
		}
		m.activate(msg.Session)
		return m, nil
	}

	logger.WithSession(msg.ID).Warn("get session failed", "error", msg.Err)
	if rec, ok := m.findSession(msg.ID); ok {
		m.activate(rec)
		return m, nil
	}
	m.setError(errorText(msg.Err))
	return m, nil
}

func (m *Model) handleSessionSynced(msg SessionSyncedMsg) (tea.Model, tea.Cmd) {
	m.settleOverride(msg.Op, msg.SessionID, msg.Err)
	if msg.Err == nil {
		logger.WithSession(msg.SessionID).Debug("session synced", "op", string(msg.Op))
		return m, nil
	}
	logger.WithSession(msg.SessionID).Warn("session sync failed", "op", string(msg.Op), "error", msg.Err)
	m.setError(errorText(msg.Err))
	return m, nil
}
