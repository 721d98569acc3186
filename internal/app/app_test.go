package app

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/attt/sohbet/internal/backend"
	"github.com/attt/sohbet/internal/chat"
	"github.com/attt/sohbet/internal/errors"
	"github.com/attt/sohbet/internal/session"
	"github.com/attt/sohbet/internal/ui"
)

func TestStartupLoadsCatalog(t *testing.T) {
	b := newFakeBackend(storedSession("s1", "Birinci", 2), storedSession("s2", "İkinci", 4))
	m := startModel(t, b)

	if got := len(m.Sessions()); got != 2 {
		t.Fatalf("expected 2 sessions, got %d", got)
	}
	if m.ActiveSessionID() != "" {
		t.Errorf("expected no active session, got %q", m.ActiveSessionID())
	}
	if m.header.Status() != ui.StatusOnline {
		t.Errorf("expected online status, got %v", m.header.Status())
	}
}

func TestStartupBackendDown(t *testing.T) {
	b := newFakeBackend()
	b.setDown(true)
	m := startModel(t, b)

	if len(m.Sessions()) != 0 {
		t.Errorf("expected empty catalog, got %d sessions", len(m.Sessions()))
	}
	if m.header.Status() != ui.StatusOffline {
		t.Errorf("expected offline status, got %v", m.header.Status())
	}
	if m.ErrorText() != "" {
		t.Errorf("listing failure should not show a banner, got %q", m.ErrorText())
	}
}

func TestListFailureFallsBackToCacheOrder(t *testing.T) {
	cache := session.NewCache()
	cache.PutAll([]chat.ChatSession{
		storedSession("c2", "Sonra", 1),
		storedSession("c1", "Önce", 1),
	})
	b := newFakeBackend()
	b.setDown(true)
	m := startModel(t, b, func(o *Options) { o.Cache = cache })

	got := m.Sessions()
	if len(got) != 2 {
		t.Fatalf("expected 2 sessions from cache, got %d", len(got))
	}
	if got[0].ID != "c2" || got[1].ID != "c1" {
		t.Errorf("expected cache insertion order [c2 c1], got [%s %s]", got[0].ID, got[1].ID)
	}
}

func TestSendMessageSuccess(t *testing.T) {
	b := newFakeBackend(storedSession("s1", "Birinci", 2))
	m := startModel(t, b)
	m = runCmd(m, m.selectSession("s1"))

	before := len(m.Messages())
	m = send(m, "Nasılsın?")

	if got := len(m.Messages()); got != before+2 {
		t.Fatalf("expected %d messages, got %d", before+2, got)
	}
	if m.IsLoading() {
		t.Error("expected loading to be cleared")
	}
	if m.ErrorText() != "" {
		t.Errorf("expected no error, got %q", m.ErrorText())
	}
	msgs := m.Messages()
	if user := msgs[len(msgs)-2]; !user.IsUser() || user.Content != "Nasılsın?" {
		t.Errorf("unexpected user message %+v", user)
	}
	if bot := msgs[len(msgs)-1]; bot.IsUser() || bot.Content != b.reply {
		t.Errorf("unexpected reply %+v", bot)
	}
	if m.chat.GetInput() != "" {
		t.Errorf("expected input cleared, got %q", m.chat.GetInput())
	}
	cached, ok := m.Cache().Get("s1")
	if !ok || len(cached.Messages) != before+2 {
		t.Errorf("expected cache to hold %d messages", before+2)
	}
}

func TestSendMessageMockFallback(t *testing.T) {
	b := newFakeBackend(storedSession("s1", "Birinci", 2))
	m := startModel(t, b)
	m = runCmd(m, m.selectSession("s1"))
	b.setDown(true)

	before := len(m.Messages())
	m = send(m, "Orada mısın?")

	if got := len(m.Messages()); got != before+2 {
		t.Fatalf("expected %d messages, got %d", before+2, got)
	}
	if m.ErrorText() != "" {
		t.Errorf("mock reply should not show an error, got %q", m.ErrorText())
	}
	reply := m.Messages()[len(m.Messages())-1]
	if reply.Content != backend.MockPhrases[0] {
		t.Errorf("expected mock phrase %q, got %q", backend.MockPhrases[0], reply.Content)
	}
	if m.header.Status() != ui.StatusOffline {
		t.Errorf("expected offline status after mock reply, got %v", m.header.Status())
	}
	if !m.footer.HasFlash() {
		t.Error("expected a flash warning about the offline reply")
	}
}

func TestSendMessageBothFail(t *testing.T) {
	b := newFakeBackend(storedSession("s1", "Birinci", 2))
	m := startModel(t, b, func(o *Options) { o.Replier = failingReplier{} })
	m = runCmd(m, m.selectSession("s1"))
	b.setDown(true)

	before := len(m.Messages())
	m = send(m, "Orada mısın?")

	if got := len(m.Messages()); got != before+1 {
		t.Fatalf("expected the user message to stay (%d), got %d", before+1, got)
	}
	if m.ErrorText() != errors.MsgConnection {
		t.Errorf("expected connection error, got %q", m.ErrorText())
	}
	if m.IsLoading() {
		t.Error("expected loading to be cleared")
	}
}

func TestSendWithoutSessionCreatesOne(t *testing.T) {
	b := newFakeBackend()
	m := startModel(t, b)

	m = send(m, "Merhaba")

	if m.ActiveSessionID() == "" {
		t.Fatal("expected a session to be created")
	}
	if len(m.Messages()) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(m.Messages()))
	}
	s, ok := m.activeSession()
	if !ok {
		t.Fatal("expected active session in catalog")
	}
	if s.Title != "Merhaba" {
		t.Errorf("expected title %q, got %q", "Merhaba", s.Title)
	}
	if s.IsLocal() {
		t.Error("expected a backend session")
	}
}

func TestSendWithoutSessionOffline(t *testing.T) {
	b := newFakeBackend()
	b.setDown(true)
	m := startModel(t, b)

	m = send(m, "Merhaba")

	s, ok := m.activeSession()
	if !ok {
		t.Fatal("expected a local session")
	}
	if !s.IsLocal() {
		t.Errorf("expected local session id, got %q", s.ID)
	}
	msgs := m.Messages()
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Content != "Merhaba" || msgs[1].Content != backend.MockPhrases[0] {
		t.Errorf("unexpected conversation %q / %q", msgs[0].Content, msgs[1].Content)
	}
	if msgs[1].SessionID != s.ID {
		t.Errorf("expected reply tagged %q, got %q", s.ID, msgs[1].SessionID)
	}
}

func TestSendIgnoresBlankAndBusy(t *testing.T) {
	b := newFakeBackend(storedSession("s1", "Birinci", 2))
	m := startModel(t, b)
	m = runCmd(m, m.selectSession("s1"))

	tests := []struct {
		name    string
		text    string
		loading bool
	}{
		{name: "empty", text: ""},
		{name: "whitespace", text: "  \n\t "},
		{name: "while loading", text: "Merhaba", loading: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m.loading = tt.loading
			before := len(m.Messages())
			if cmd := m.sendUserMessage(tt.text); cmd != nil {
				t.Error("expected no command")
			}
			if len(m.Messages()) != before {
				t.Errorf("expected %d messages, got %d", before, len(m.Messages()))
			}
		})
	}
	m.loading = false
}

func TestReplyForInactiveSessionIsNotRendered(t *testing.T) {
	b := newFakeBackend(storedSession("a", "A", 2), storedSession("b", "B", 4))
	m := startModel(t, b)
	m = runCmd(m, m.selectSession("a"))
	m = runCmd(m, m.selectSession("b"))
	m = runCmd(m, m.selectSession("a"))

	// Send in A but switch to B before the reply is delivered
	cmd := m.sendUserMessage("Soru")
	m = runCmd(m, m.selectSession("b"))
	m = runCmd(m, cmd)

	if m.ActiveSessionID() != "b" {
		t.Fatalf("expected b active, got %q", m.ActiveSessionID())
	}
	if got := len(m.Messages()); got != 4 {
		t.Errorf("expected B to keep 4 messages, got %d", got)
	}
	for _, msg := range m.Messages() {
		if msg.SessionID != "b" {
			t.Errorf("message %s from session %s leaked into b", msg.ID, msg.SessionID)
		}
	}
	a, _ := m.Cache().Get("a")
	if len(a.Messages) != 4 {
		t.Errorf("expected the reply cached in a (4 messages), got %d", len(a.Messages))
	}
	if m.IsLoading() {
		t.Error("expected loading cleared")
	}
}

func TestSelectSessionIsIdempotent(t *testing.T) {
	b := newFakeBackend(storedSession("s1", "Birinci", 3))
	m := startModel(t, b)

	m = runCmd(m, m.selectSession("s1"))
	first := append([]chat.Message(nil), m.Messages()...)
	m = runCmd(m, m.selectSession("s1"))

	if len(first) != 3 || len(m.Messages()) != len(first) {
		t.Fatalf("expected 3 messages both times, got %d and %d", len(first), len(m.Messages()))
	}
	for i := range first {
		if first[i].ID != m.Messages()[i].ID {
			t.Errorf("message %d differs: %s vs %s", i, first[i].ID, m.Messages()[i].ID)
		}
	}
	if b.getCalls != 1 {
		t.Errorf("expected the second select to hit the cache, got %d fetches", b.getCalls)
	}
}

func TestSelectSessionFetchFailsUsesCatalog(t *testing.T) {
	b := newFakeBackend(storedSession("s1", "Birinci", 3))
	m := startModel(t, b)
	b.getErr = errors.HTTPStatus(errors.Op("backend.GetSession"), 500, "")

	m = runCmd(m, m.selectSession("s1"))

	if m.ActiveSessionID() != "s1" {
		t.Fatalf("expected s1 active, got %q", m.ActiveSessionID())
	}
	if len(m.Messages()) != 0 {
		t.Errorf("catalog record has no messages, got %d", len(m.Messages()))
	}
}

func TestStaleFetchIsDropped(t *testing.T) {
	b := newFakeBackend(storedSession("s1", "Birinci", 3), storedSession("s2", "İkinci", 1))
	m := startModel(t, b)

	slow := m.selectSession("s1")
	m = runCmd(m, m.selectSession("s2"))
	m = runCmd(m, slow)

	if m.ActiveSessionID() != "s2" {
		t.Errorf("expected s2 to stay active, got %q", m.ActiveSessionID())
	}
}

func TestDeleteActiveSession(t *testing.T) {
	b := newFakeBackend(storedSession("s1", "Birinci", 2), storedSession("s2", "İkinci", 2))
	m := startModel(t, b)
	m = runCmd(m, m.selectSession("s1"))

	m = runCmd(m, m.deleteSession("s1"))

	if _, ok := m.findSession("s1"); ok {
		t.Error("expected s1 removed from catalog")
	}
	if m.Cache().Has("s1") {
		t.Error("expected s1 removed from cache")
	}
	if m.ActiveSessionID() != "" {
		t.Errorf("expected no active session, got %q", m.ActiveSessionID())
	}
	if len(m.Messages()) != 0 {
		t.Errorf("expected empty conversation, got %d", len(m.Messages()))
	}
	if len(b.deleted) != 1 || b.deleted[0] != "s1" {
		t.Errorf("expected backend delete of s1, got %v", b.deleted)
	}
}

func TestDeleteBackendFailureKeepsLocalRemoval(t *testing.T) {
	b := newFakeBackend(storedSession("s1", "Birinci", 2))
	m := startModel(t, b)
	b.deleteErr = errors.HTTPStatus(errors.Op("backend.DeleteSession"), 500, "")

	m = runCmd(m, m.deleteSession("s1"))

	if _, ok := m.findSession("s1"); ok {
		t.Error("expected s1 to stay removed")
	}
	if m.ErrorText() != errors.MsgServer {
		t.Errorf("expected server error banner, got %q", m.ErrorText())
	}
}

func TestDeleteLocalSessionSkipsBackend(t *testing.T) {
	b := newFakeBackend()
	b.setDown(true)
	m := startModel(t, b)
	m = send(m, "Merhaba")
	id := m.ActiveSessionID()

	m = runCmd(m, m.deleteSession(id))

	if len(b.deleted) != 0 {
		t.Errorf("expected no backend delete for a local session, got %v", b.deleted)
	}
	if len(m.Sessions()) != 0 {
		t.Errorf("expected empty catalog, got %d", len(m.Sessions()))
	}
}

func TestToggleFavoriteTwiceRestores(t *testing.T) {
	b := newFakeBackend(storedSession("s1", "Birinci", 2))
	m := startModel(t, b)

	m = runCmd(m, m.toggleFavorite("s1"))
	s, _ := m.findSession("s1")
	if !s.IsFavorite {
		t.Fatal("expected favorite after first toggle")
	}
	m = runCmd(m, m.toggleFavorite("s1"))
	s, _ = m.findSession("s1")
	if s.IsFavorite {
		t.Error("expected favorite cleared after second toggle")
	}
	if len(b.favorited) != 2 {
		t.Errorf("expected 2 backend calls, got %d", len(b.favorited))
	}
}

func TestRenameSession(t *testing.T) {
	b := newFakeBackend(storedSession("s1", "Birinci", 2))
	m := startModel(t, b)
	m = runCmd(m, m.selectSession("s1"))

	m = runCmd(m, m.renameSession("s1", "  Yeni başlık "))

	s, _ := m.findSession("s1")
	if s.Title != "Yeni başlık" {
		t.Errorf("expected trimmed title, got %q", s.Title)
	}
	if b.renamed["s1"] != "Yeni başlık" {
		t.Errorf("expected backend rename, got %q", b.renamed["s1"])
	}
	if !strings.Contains(ansi.Strip(m.header.View()), "Yeni başlık") {
		t.Error("expected header to show the new title")
	}
}

func TestRegenerateAppendsMarkedReply(t *testing.T) {
	b := newFakeBackend(storedSession("s1", "Birinci", 2))
	m := startModel(t, b)
	m = runCmd(m, m.selectSession("s1"))
	bot := m.Messages()[1]

	m = runCmd(m, m.regenerate(bot.ID))

	msgs := m.Messages()
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}
	last := msgs[2]
	if !last.IsRegenerated || last.OriginalMessageID != bot.ID {
		t.Errorf("expected regenerated reply of %s, got %+v", bot.ID, last)
	}
}

func TestRegenerateIgnoresUserMessages(t *testing.T) {
	b := newFakeBackend(storedSession("s1", "Birinci", 2))
	m := startModel(t, b)
	m = runCmd(m, m.selectSession("s1"))

	if cmd := m.regenerate(m.Messages()[0].ID); cmd != nil {
		t.Error("expected no command for a user message")
	}
	if len(b.regenerated) != 0 {
		t.Errorf("expected no backend call, got %v", b.regenerated)
	}
}

func TestRegenerateFailureShowsError(t *testing.T) {
	b := newFakeBackend(storedSession("s1", "Birinci", 2))
	m := startModel(t, b)
	m = runCmd(m, m.selectSession("s1"))
	b.setDown(true)

	m = runCmd(m, m.regenerate(m.Messages()[1].ID))

	if len(m.Messages()) != 2 {
		t.Errorf("expected no new message, got %d", len(m.Messages()))
	}
	if m.ErrorText() != errors.MsgConnection {
		t.Errorf("expected connection error, got %q", m.ErrorText())
	}
}

func TestRestoresLastSession(t *testing.T) {
	b := newFakeBackend(storedSession("s1", "Birinci", 2), storedSession("s2", "İkinci", 2))
	cfg := testConfig(t)
	cfg.SetLastSessionID("s2")

	m := startModel(t, b, func(o *Options) { o.Config = cfg })

	if m.ActiveSessionID() != "s2" {
		t.Errorf("expected s2 restored, got %q", m.ActiveSessionID())
	}
}

func TestNewChatClearsActive(t *testing.T) {
	b := newFakeBackend(storedSession("s1", "Birinci", 2))
	m := startModel(t, b)
	m = runCmd(m, m.selectSession("s1"))

	m = press(m, "ctrl+n")

	if m.ActiveSessionID() != "" || len(m.Messages()) != 0 {
		t.Errorf("expected empty state, got %q with %d messages", m.ActiveSessionID(), len(m.Messages()))
	}
	if m.config.GetLastSessionID() != "" {
		t.Errorf("expected last session cleared, got %q", m.config.GetLastSessionID())
	}
}

func TestNotifyWhenWindowBlurred(t *testing.T) {
	var notified []string
	b := newFakeBackend(storedSession("s1", "Birinci", 2))
	m := startModel(t, b, func(o *Options) {
		o.Notify = func(title, reply string) error {
			notified = append(notified, title+": "+reply)
			return nil
		}
	})
	m.config.SetNotificationsEnabled(true)
	m = runCmd(m, m.selectSession("s1"))

	m = send(m, "Odakta")
	if len(notified) != 0 {
		t.Fatalf("expected no notification while focused, got %v", notified)
	}

	result, _ := m.Update(tea.BlurMsg{})
	m = result.(*Model)
	m = send(m, "Arka planda")
	if len(notified) != 1 || notified[0] != "Birinci: "+b.reply {
		t.Errorf("expected one notification, got %v", notified)
	}
}

func TestMockReplierContextCancelled(t *testing.T) {
	r := backend.NewMockReplier(0, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := r.Reply(ctx, "x", "s1"); err == nil {
		t.Error("expected error from a cancelled context")
	}
}

func TestDeletedSessionStaysGoneAfterRefresh(t *testing.T) {
	tests := []struct {
		name string
		// run deletes s1 and returns the model after a catalog refresh
		run func(m *Model, b *fakeBackend) *Model
	}{
		{
			name: "backend delete failed",
			run: func(m *Model, b *fakeBackend) *Model {
				b.deleteErr = errors.HTTPStatus(errors.Op("backend.DeleteSession"), 500, "")
				m = runCmd(m, m.deleteSession("s1"))
				return send(m, "Merhaba")
			},
		},
		{
			name: "listing in flight during delete",
			run: func(m *Model, b *fakeBackend) *Model {
				listed := m.listSessionsCmd(false)()
				m = runCmd(m, m.deleteSession("s1"))
				result, _ := m.Update(listed)
				return result.(*Model)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newFakeBackend(storedSession("s1", "Birinci", 2), storedSession("s2", "İkinci", 2))
			m := startModel(t, b)
			m = runCmd(m, m.selectSession("s2"))

			m = tt.run(m, b)

			if _, ok := m.findSession("s1"); ok {
				t.Error("deleted s1 is back in the catalog")
			}
			if m.Cache().Has("s1") {
				t.Error("deleted s1 is back in the cache")
			}
			if _, ok := m.findSession("s2"); !ok {
				t.Error("expected s2 to stay listed")
			}
		})
	}
}

func TestLocalEditsSurviveRefreshAfterFailedSync(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(m *Model) tea.Cmd
		check func(s chat.ChatSession) bool
	}{
		{
			name:  "favorite",
			edit:  func(m *Model) tea.Cmd { return m.toggleFavorite("s1") },
			check: func(s chat.ChatSession) bool { return s.IsFavorite },
		},
		{
			name:  "rename",
			edit:  func(m *Model) tea.Cmd { return m.renameSession("s1", "Yeni başlık") },
			check: func(s chat.ChatSession) bool { return s.Title == "Yeni başlık" },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newFakeBackend(storedSession("s1", "Birinci", 2), storedSession("s2", "İkinci", 2))
			m := startModel(t, b)
			m = runCmd(m, m.selectSession("s2"))

			b.setDown(true)
			m = runCmd(m, tt.edit(m))
			if m.ErrorText() == "" {
				t.Fatal("expected the failed sync to show an error")
			}
			b.setDown(false)
			m = send(m, "Merhaba")
			if b.listCalls < 2 {
				t.Fatalf("expected a catalog refresh, got %d listings", b.listCalls)
			}

			s, ok := m.findSession("s1")
			if !ok || !tt.check(s) {
				t.Errorf("catalog lost the local edit: %+v", s)
			}
			cached, ok := m.Cache().Get("s1")
			if !ok || !tt.check(cached) {
				t.Errorf("cache lost the local edit: %+v", cached)
			}
		})
	}
}

func TestConfirmedEditIsReleased(t *testing.T) {
	b := newFakeBackend(storedSession("s1", "Birinci", 2))
	m := startModel(t, b)

	m = runCmd(m, m.toggleFavorite("s1"))
	m = runCmd(m, m.renameSession("s1", "Yeni"))

	if len(m.overrides) != 0 {
		t.Errorf("expected no pending edits after successful syncs, got %d", len(m.overrides))
	}
	m = runCmd(m, m.listSessionsCmd(false))
	if s, _ := m.findSession("s1"); !s.IsFavorite || s.Title != "Yeni" {
		t.Errorf("expected backend values after refresh, got %+v", s)
	}
}

func TestFirstMessageShownBeforeSessionExists(t *testing.T) {
	b := newFakeBackend(storedSession("s1", "Birinci", 2))
	m := startModel(t, b)

	cmd := m.sendUserMessage("Merhaba")

	if got := len(m.Messages()); got != 1 {
		t.Fatalf("expected the user message at once, got %d messages", got)
	}
	localID := m.ActiveSessionID()
	if !strings.HasPrefix(localID, chat.LocalSessionPrefix) {
		t.Fatalf("expected a local session while creating, got %q", localID)
	}
	if !m.IsLoading() {
		t.Error("expected loading while the session is created")
	}

	// Switching away is refused until the session exists
	m = runCmd(m, m.selectSession("s1"))
	m.newChat()
	if m.ActiveSessionID() != localID {
		t.Fatalf("expected %q to stay active, got %q", localID, m.ActiveSessionID())
	}
	if cmd := m.deleteSession(localID); cmd != nil || len(m.Sessions()) != 2 {
		t.Error("expected the session being created not to be deletable")
	}

	m = runCmd(m, cmd)

	id := m.ActiveSessionID()
	if id == localID || strings.HasPrefix(id, chat.LocalSessionPrefix) {
		t.Fatalf("expected the backend session to take over, got %q", id)
	}
	msgs := m.Messages()
	if len(msgs) != 2 || msgs[0].Content != "Merhaba" {
		t.Fatalf("unexpected conversation %+v", msgs)
	}
	for _, msg := range msgs {
		if msg.SessionID != id {
			t.Errorf("message %s tagged %q, want %q", msg.ID, msg.SessionID, id)
		}
	}
	if m.Cache().Has(localID) {
		t.Error("local session left in the cache")
	}
	if _, ok := m.findSession(localID); ok {
		t.Error("local session left in the catalog")
	}
	if len(b.sent) != 1 {
		t.Errorf("expected one send, got %v", b.sent)
	}
}

func TestListingPopulatesCache(t *testing.T) {
	b := newFakeBackend(storedSession("s1", "Birinci", 3), storedSession("s2", "İkinci", 1))
	m := startModel(t, b)

	for _, id := range []string{"s1", "s2"} {
		if !m.Cache().Has(id) {
			t.Errorf("expected listed %s cached", id)
		}
		if m.Cache().Loaded(id) {
			t.Errorf("listed %s should not count as loaded", id)
		}
	}

	m = runCmd(m, m.selectSession("s1"))
	if b.getCalls != 1 || len(m.Messages()) != 3 {
		t.Errorf("expected s1 fetched with 3 messages, got %d fetches and %d messages", b.getCalls, len(m.Messages()))
	}

	// A failed refresh with an empty catalog shows the cache
	m.sessions = nil
	b.setDown(true)
	m = runCmd(m, m.listSessionsCmd(false))
	if got := len(m.Sessions()); got != 2 {
		t.Errorf("expected 2 cached sessions, got %d", got)
	}
}
