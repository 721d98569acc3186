package backend

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/attt/sohbet/internal/chat"
	"github.com/attt/sohbet/internal/logger"
)

// Replier produces an assistant reply for text in sessionID. It returns the
// reply and the session it belongs to.
type Replier interface {
	Reply(ctx context.Context, text, sessionID string) (chat.Message, string, error)
}

// MockPhrases are the canned replies used while the backend is unreachable.
var MockPhrases = []string{
	"Merhaba! Size nasıl yardımcı olabilirim?",
	"Bu konuda size yardımcı olmaktan mutluluk duyarım.",
	"İlginç bir soru! Biraz daha detay verebilir misiniz?",
	"Anladım. Bu durumda şunları önerebilirim...",
	"Teşekkürler! Başka bir konuda yardıma ihtiyacınız var mı?",
	"Bu konuda size daha fazla bilgi verebilirim.",
	"Harika bir soru! Size detaylı bir açıklama yapayım.",
	"Bu konuda deneyimim var. Size yardımcı olabilirim.",
}

// MockReplier answers with a random canned phrase after a simulated delay.
// It only fails when ctx is done.
type MockReplier struct {
	MinDelay time.Duration
	MaxDelay time.Duration

	// Pick returns an index in [0, n). Defaults to math/rand.
	Pick func(n int) int
	// Delay returns the simulated latency. Defaults to uniform in
	// [MinDelay, MaxDelay].
	Delay func() time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
}

// NewMockReplier returns a replier with the given delay range.
func NewMockReplier(minDelay, maxDelay time.Duration) *MockReplier {
	if maxDelay < minDelay {
		maxDelay = minDelay
	}
	return &MockReplier{MinDelay: minDelay, MaxDelay: maxDelay}
}

func (m *MockReplier) delay() time.Duration {
	if m.Delay != nil {
		return m.Delay()
	}
	span := m.MaxDelay - m.MinDelay
	if span <= 0 {
		return m.MinDelay
	}
	return m.MinDelay + time.Duration(rand.Int64N(int64(span)+1))
}

func (m *MockReplier) pick(n int) int {
	if m.Pick != nil {
		return m.Pick(n)
	}
	return rand.IntN(n)
}

func (m *MockReplier) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

// Reply waits out the simulated delay and returns a canned phrase. When
// sessionID is empty a new "session_<unix-millis>" id is minted.
func (m *MockReplier) Reply(ctx context.Context, text, sessionID string) (chat.Message, string, error) {
	if d := m.delay(); d > 0 {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return chat.Message{}, "", ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return chat.Message{}, "", err
	}

	now := m.now()
	if sessionID == "" {
		sessionID = fmt.Sprintf("session_%d", now.UnixMilli())
	}
	idx := m.pick(len(MockPhrases))
	if idx < 0 || idx >= len(MockPhrases) {
		idx = 0
	}
	msg := chat.NewBotMessage(MockPhrases[idx], sessionID, now)

	logger.WithSession(sessionID).Debug("mock reply", "chars", len(text), "phrase", idx)
	return msg, sessionID, nil
}

// Sender is the part of the backend needed to send a message.
type Sender interface {
	SendMessage(ctx context.Context, text, sessionID string) (SendResult, error)
}

// SendWithFallback sends text through s. If that fails and r is non-nil, r
// supplies the reply instead. The returned bool reports whether the fallback
// was used. When both fail, the error from s is returned.
func SendWithFallback(ctx context.Context, s Sender, r Replier, text, sessionID string) (SendResult, bool, error) {
	res, err := s.SendMessage(ctx, text, sessionID)
	if err == nil {
		return res, false, nil
	}
	if r == nil {
		return SendResult{}, false, err
	}

	logger.WithComponent("backend").Info("send failed, using mock reply", "sessionID", sessionID, "error", err)
	msg, sid, mockErr := r.Reply(ctx, text, sessionID)
	if mockErr != nil {
		logger.WithComponent("backend").Warn("mock reply failed", "error", mockErr)
		return SendResult{}, false, err
	}
	return SendResult{Message: msg, SessionID: sid}, true, nil
}
