package chat

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-runewidth"
)

const (
	// PreviewWidth is how many display columns of the last message a
	// history row shows.
	PreviewWidth = 50
	// TitleWidth bounds titles derived from the first message.
	TitleWidth = 40

	// EmptyPreview is shown for sessions without messages.
	EmptyPreview = "Yeni sohbet"
	// DefaultTitle is used when no text is available to derive one.
	DefaultTitle = "Yeni sohbet"

	// LocalSessionPrefix marks sessions created client-side when the
	// backend could not create one.
	LocalSessionPrefix = "local-"
)

// ChatSession is a named conversation.
type ChatSession struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Messages   []Message `json:"messages"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	IsFavorite bool      `json:"isFavorite"`
}

// NewLocalSession builds a session that exists only on this client.
func NewLocalSession(title string, now time.Time) ChatSession {
	if title == "" {
		title = DefaultTitle
	}
	return ChatSession{
		ID:        LocalSessionPrefix + uuid.NewString(),
		Title:     title,
		Messages:  []Message{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsLocal reports whether the session was synthesized client-side.
func (s ChatSession) IsLocal() bool {
	return strings.HasPrefix(s.ID, LocalSessionPrefix)
}

// Clone returns a deep copy of s.
func (s ChatSession) Clone() ChatSession {
	c := s
	if s.Messages != nil {
		c.Messages = make([]Message, len(s.Messages))
		for i, m := range s.Messages {
			c.Messages[i] = m.Clone()
		}
	}
	return c
}

// LastMessage returns the newest message, if any.
func (s ChatSession) LastMessage() (Message, bool) {
	if len(s.Messages) == 0 {
		return Message{}, false
	}
	return s.Messages[len(s.Messages)-1], true
}

// PreviewText is the single-line summary shown under a session title.
func (s ChatSession) PreviewText() string {
	last, ok := s.LastMessage()
	if !ok {
		return EmptyPreview
	}
	return Truncate(flatten(last.Content), PreviewWidth)
}

// TitleFromText derives a session title from the first message.
func TitleFromText(text string) string {
	line := strings.TrimSpace(text)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = strings.TrimSpace(line[:i])
	}
	if line == "" {
		return DefaultTitle
	}
	return Truncate(line, TitleWidth)
}

// Truncate shortens s to width display columns and appends "..." when
// anything was cut.
func Truncate(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "") + "..."
}

func flatten(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

var trMonths = [...]string{"Oca", "Şub", "Mar", "Nis", "May", "Haz", "Tem", "Ağu", "Eyl", "Eki", "Kas", "Ara"}

// RelativeDate labels t relative to now for the history panel.
func RelativeDate(t, now time.Time) string {
	if t.IsZero() {
		return "Bilinmeyen tarih"
	}
	t = t.In(now.Location())
	ty, tm, td := t.Date()
	ny, nm, nd := now.Date()
	day := time.Date(ty, tm, td, 0, 0, 0, 0, now.Location())
	today := time.Date(ny, nm, nd, 0, 0, 0, 0, now.Location())

	days := int(math.Round(today.Sub(day).Hours() / 24))
	switch {
	case days <= 0:
		return t.Format("15:04")
	case days == 1:
		return "Dün"
	case days < 7:
		return fmt.Sprintf("%d gün önce", days)
	default:
		return fmt.Sprintf("%d %s", td, trMonths[tm-1])
	}
}
