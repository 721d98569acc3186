package app

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"sync"
	"testing"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/attt/sohbet/internal/backend"
	"github.com/attt/sohbet/internal/chat"
	"github.com/attt/sohbet/internal/config"
	"github.com/attt/sohbet/internal/errors"
	"github.com/attt/sohbet/internal/keys"
	"github.com/attt/sohbet/internal/ui"
)

// testNow is the fixed clock used by test models.
var testNow = time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

// errUnreachable is what the fake backend returns when it is "down".
var errUnreachable = errors.Unreachable(errors.Op("backend.test"), fmt.Errorf("connection refused"))

// =============================================================================
// Fake backend
// =============================================================================

// fakeBackend is an in-memory chat server. Setting down makes every call
// fail like a refused connection.
type fakeBackend struct {
	mu       sync.Mutex
	down     bool
	sessions []chat.ChatSession
	reply    string
	nextID   int

	listErr   error
	createErr error
	getErr    error
	deleteErr error

	sent        []string
	deleted     []string
	favorited   []string
	renamed     map[string]string
	regenerated []string
	listCalls   int
	getCalls    int
}

func newFakeBackend(sessions ...chat.ChatSession) *fakeBackend {
	return &fakeBackend{
		sessions: sessions,
		reply:    "Elbette, yardımcı olayım.",
		renamed:  make(map[string]string),
	}
}

func (f *fakeBackend) setDown(down bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.down = down
}

func (f *fakeBackend) SendMessage(_ context.Context, text, sessionID string) (backend.SendResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, text)
	if f.down {
		return backend.SendResult{}, errUnreachable
	}
	f.nextID++
	msg := chat.Message{
		ID:        fmt.Sprintf("srv-msg-%d", f.nextID),
		Content:   f.reply,
		Sender:    chat.SenderBot,
		Timestamp: testNow,
		Type:      chat.TypeText,
		SessionID: sessionID,
	}
	return backend.SendResult{Message: msg, SessionID: sessionID}, nil
}

func (f *fakeBackend) RegenerateMessage(_ context.Context, messageID, sessionID string) (chat.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.regenerated = append(f.regenerated, messageID)
	if f.down {
		return chat.Message{}, errUnreachable
	}
	f.nextID++
	return chat.Message{
		ID:        fmt.Sprintf("srv-regen-%d", f.nextID),
		Content:   "Yeniden: " + f.reply,
		Sender:    chat.SenderBot,
		Timestamp: testNow,
		Type:      chat.TypeText,
		SessionID: sessionID,
	}, nil
}

func (f *fakeBackend) GetMessages(_ context.Context, sessionID string) ([]chat.Message, error) {
	s, err := f.GetSession(context.Background(), sessionID)
	if err != nil {
		return nil, err
	}
	return s.Messages, nil
}

func (f *fakeBackend) ListSessions(_ context.Context) ([]chat.ChatSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.down {
		return nil, errUnreachable
	}
	if f.listErr != nil {
		return nil, f.listErr
	}
	// Listings carry metadata only
	out := make([]chat.ChatSession, len(f.sessions))
	for i, s := range f.sessions {
		s.Messages = nil
		out[i] = s
	}
	return out, nil
}

func (f *fakeBackend) CreateSession(_ context.Context, title string) (chat.ChatSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return chat.ChatSession{}, errUnreachable
	}
	if f.createErr != nil {
		return chat.ChatSession{}, f.createErr
	}
	f.nextID++
	s := chat.ChatSession{
		ID:        fmt.Sprintf("srv-session-%d", f.nextID),
		Title:     title,
		Messages:  []chat.Message{},
		CreatedAt: testNow,
		UpdatedAt: testNow,
	}
	f.sessions = append([]chat.ChatSession{s}, f.sessions...)
	return s, nil
}

func (f *fakeBackend) GetSession(_ context.Context, id string) (chat.ChatSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	if f.down {
		return chat.ChatSession{}, errUnreachable
	}
	if f.getErr != nil {
		return chat.ChatSession{}, f.getErr
	}
	for _, s := range f.sessions {
		if s.ID == id {
			return s.Clone(), nil
		}
	}
	return chat.ChatSession{}, errors.SessionNotFound(id)
}

func (f *fakeBackend) UpdateSession(_ context.Context, id string, upd backend.SessionUpdate) (chat.ChatSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		return chat.ChatSession{}, errUnreachable
	}
	for i := range f.sessions {
		if f.sessions[i].ID != id {
			continue
		}
		if upd.Title != nil {
			f.sessions[i].Title = *upd.Title
			f.renamed[id] = *upd.Title
		}
		if upd.IsFavorite != nil {
			f.sessions[i].IsFavorite = *upd.IsFavorite
		}
		return f.sessions[i].Clone(), nil
	}
	return chat.ChatSession{}, errors.SessionNotFound(id)
}

func (f *fakeBackend) DeleteSession(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	if f.down {
		return errUnreachable
	}
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.sessions = slices.DeleteFunc(f.sessions, func(s chat.ChatSession) bool { return s.ID == id })
	return nil
}

func (f *fakeBackend) ToggleFavorite(_ context.Context, id string) (chat.ChatSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.favorited = append(f.favorited, id)
	if f.down {
		return chat.ChatSession{}, errUnreachable
	}
	for i := range f.sessions {
		if f.sessions[i].ID == id {
			f.sessions[i].IsFavorite = !f.sessions[i].IsFavorite
			return f.sessions[i].Clone(), nil
		}
	}
	return chat.ChatSession{}, errors.SessionNotFound(id)
}

func (f *fakeBackend) HealthCheck(_ context.Context) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.down
}

// =============================================================================
// Model helpers
// =============================================================================

// fixedReplier is a mock replier with no delay and a fixed phrase.
func fixedReplier(idx int) *backend.MockReplier {
	r := backend.NewMockReplier(0, 0)
	r.Pick = func(int) int { return idx }
	r.Now = func() time.Time { return testNow }
	return r
}

// failingReplier always fails, like a mock whose context was cancelled.
type failingReplier struct{}

func (failingReplier) Reply(context.Context, string, string) (chat.Message, string, error) {
	return chat.Message{}, "", context.Canceled
}

// testConfig loads an empty config backed by a temp file.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadFrom(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	return cfg
}

// testModel creates a test Model wired to b and sized for the wide layout.
func testModel(t *testing.T, b *fakeBackend, opts ...func(*Options)) *Model {
	t.Helper()
	o := Options{
		Backend:  b,
		Replier:  fixedReplier(0),
		Config:   testConfig(t),
		Env:      &config.Env{APIURL: "http://localhost:8080", UserID: "user-1"},
		Version:  "0.0.0-test",
		Now:      func() time.Time { return testNow },
		CopyText: func(string) error { return nil },
		Notify:   func(string, string) error { return nil },
	}
	for _, fn := range opts {
		fn(&o)
	}
	m := New(o)
	return setSize(m, 120, 40)
}

// startModel runs Init so the catalog is loaded.
func startModel(t *testing.T, b *fakeBackend, opts ...func(*Options)) *Model {
	t.Helper()
	m := testModel(t, b, opts...)
	return runCmd(m, m.Init())
}

// cmdTimeout bounds how long runCmd waits on one command. Timer commands
// (flash expiry, spinner frames) never finish in time and are dropped.
const cmdTimeout = 200 * time.Millisecond

// runCmd executes cmd and every command it produces, feeding each message
// back into the model, until nothing is left.
func runCmd(m *Model, cmd tea.Cmd) *Model {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}

		done := make(chan tea.Msg, 1)
		go func() { done <- next() }()
		var msg tea.Msg
		select {
		case msg = <-done:
		case <-time.After(cmdTimeout):
			continue
		}

		switch msg := msg.(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case spinner.TickMsg, ui.FlashTickMsg, tea.QuitMsg:
		default:
			result, c := m.Update(msg)
			m = result.(*Model)
			queue = append(queue, c)
		}
	}
	return m
}

// send types text into the chat and submits it, running the resulting
// requests to completion.
func send(m *Model, text string) *Model {
	m.chat.SetInput(text)
	return press(m, keys.Enter)
}

// press delivers a key and runs whatever it starts.
func press(m *Model, key string) *Model {
	result, cmd := m.Update(keyPress(key))
	return runCmd(result.(*Model), cmd)
}

// keyPress creates a tea.KeyPressMsg for the given key string.
// Examples: "a", "enter", "tab", "esc", "ctrl+c", "up", "down"
func keyPress(key string) tea.KeyPressMsg {
	switch key {
	case keys.Enter:
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case keys.Tab:
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case keys.Escape:
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case keys.Up:
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case keys.Down:
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case keys.F1:
		return tea.KeyPressMsg{Code: tea.KeyF1}
	case keys.CtrlUp:
		return tea.KeyPressMsg{Code: tea.KeyUp, Mod: tea.ModCtrl}
	case keys.CtrlDown:
		return tea.KeyPressMsg{Code: tea.KeyDown, Mod: tea.ModCtrl}
	case keys.CtrlC, keys.CtrlB, keys.CtrlN, keys.CtrlR, keys.CtrlY, keys.CtrlE, keys.CtrlF, keys.CtrlL:
		return tea.KeyPressMsg{Code: rune(key[len(key)-1]), Mod: tea.ModCtrl}
	default:
		// Regular character - for single characters, set both Code and Text
		if len(key) == 1 {
			return tea.KeyPressMsg{Code: rune(key[0]), Text: key}
		}
		// Fallback for unknown keys
		return tea.KeyPressMsg{Text: key}
	}
}

// setSize sends a window size message to the model.
func setSize(m *Model, width, height int) *Model {
	result, _ := m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	return result.(*Model)
}

// storedSession builds a backend session with n alternating messages.
func storedSession(id, title string, n int) chat.ChatSession {
	s := chat.ChatSession{
		ID:        id,
		Title:     title,
		CreatedAt: testNow.Add(-time.Hour),
		UpdatedAt: testNow.Add(-time.Hour),
	}
	for i := range n {
		sender := chat.SenderUser
		if i%2 == 1 {
			sender = chat.SenderBot
		}
		s.Messages = append(s.Messages, chat.Message{
			ID:        fmt.Sprintf("%s-msg-%d", id, i),
			Content:   fmt.Sprintf("%s mesaj %d", title, i),
			Sender:    sender,
			Timestamp: testNow.Add(-time.Hour + time.Duration(i)*time.Minute),
			Type:      chat.TypeText,
			SessionID: id,
		})
	}
	return s
}
