// Package chat defines the records exchanged with the chat backend: messages,
// their reactions and link previews, and sessions.
package chat

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rivo/uniseg"
)

// Sender identifies who wrote a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// MessageType selects how a message row is rendered.
type MessageType string

const (
	TypeText  MessageType = "text"
	TypeCode  MessageType = "code"
	TypeImage MessageType = "image"
	TypeLink  MessageType = "link"
)

// LinkPreview describes a URL found in a message.
type LinkPreview struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
	URL         string `json:"url"`
	Domain      string `json:"domain"`
}

// Metadata carries type-specific rendering hints.
type Metadata struct {
	Language    string       `json:"language,omitempty"`
	CodeBlock   bool         `json:"codeBlock,omitempty"`
	LinkPreview *LinkPreview `json:"linkPreview,omitempty"`
}

// MessageReaction is one emoji on a message and the users who chose it.
type MessageReaction struct {
	ID        string   `json:"id"`
	Emoji     string   `json:"emoji"`
	Count     int      `json:"count"`
	Users     []string `json:"users"`
	MessageID string   `json:"messageId"`
}

// Message is a single entry in a conversation.
type Message struct {
	ID                string            `json:"id"`
	Content           string            `json:"content"`
	Sender            Sender            `json:"sender"`
	Timestamp         time.Time         `json:"timestamp"`
	IsTyping          bool              `json:"isTyping,omitempty"`
	Reactions         []MessageReaction `json:"reactions,omitempty"`
	IsFavorite        bool              `json:"isFavorite,omitempty"`
	IsRegenerated     bool              `json:"isRegenerated,omitempty"`
	OriginalMessageID string            `json:"originalMessageId,omitempty"`
	Type              MessageType       `json:"messageType,omitempty"`
	SessionID         string            `json:"sessionId,omitempty"`
	Metadata          *Metadata         `json:"metadata,omitempty"`
}

// NewUserMessage builds a message typed by the local user.
func NewUserMessage(content, sessionID string, now time.Time) Message {
	return newMessage("user", SenderUser, content, sessionID, now)
}

// NewBotMessage builds an assistant message produced locally.
func NewBotMessage(content, sessionID string, now time.Time) Message {
	return newMessage("bot", SenderBot, content, sessionID, now)
}

func newMessage(prefix string, sender Sender, content, sessionID string, now time.Time) Message {
	m := Message{
		ID:        fmt.Sprintf("%s_%s", prefix, uuid.NewString()),
		Content:   content,
		Sender:    sender,
		Timestamp: now,
		SessionID: sessionID,
	}
	m.Type, m.Metadata = DetectType(content)
	return m
}

// IsUser reports whether the local user wrote m.
func (m Message) IsUser() bool {
	return m.Sender == SenderUser
}

// Kind returns the message type, detecting it from content when the backend
// left it unset.
func (m Message) Kind() MessageType {
	if m.Type != "" {
		return m.Type
	}
	t, _ := DetectType(m.Content)
	return t
}

// Clone returns a deep copy of m.
func (m Message) Clone() Message {
	c := m
	if m.Reactions != nil {
		c.Reactions = make([]MessageReaction, len(m.Reactions))
		for i, r := range m.Reactions {
			r.Users = slices.Clone(r.Users)
			c.Reactions[i] = r
		}
	}
	if m.Metadata != nil {
		md := *m.Metadata
		if md.LinkPreview != nil {
			lp := *md.LinkPreview
			md.LinkPreview = &lp
		}
		c.Metadata = &md
	}
	return c
}

// ValidEmoji reports whether s is exactly one grapheme cluster.
func ValidEmoji(s string) bool {
	s = strings.TrimSpace(s)
	return s != "" && uniseg.GraphemeClusterCount(s) == 1
}

// ToggleReaction applies userID's reaction with emoji to m and returns the
// updated message. A repeat of the same emoji by the same user withdraws it;
// reactions reaching zero are dropped.
func ToggleReaction(m Message, emoji, userID string) (Message, error) {
	emoji = strings.TrimSpace(emoji)
	if !ValidEmoji(emoji) {
		return m, fmt.Errorf("reaction must be a single emoji, got %q", emoji)
	}
	if userID == "" {
		return m, fmt.Errorf("reaction requires a user id")
	}

	out := m.Clone()
	for i := range out.Reactions {
		r := &out.Reactions[i]
		if r.Emoji != emoji {
			continue
		}
		slices.Sort(r.Users)
		idx, found := slices.BinarySearch(r.Users, userID)
		if !found {
			r.Users = slices.Insert(r.Users, idx, userID)
			r.Count++
			return out, nil
		}
		r.Users = slices.Delete(r.Users, idx, idx+1)
		r.Count--
		if r.Count <= 0 {
			out.Reactions = slices.Delete(out.Reactions, i, i+1)
		}
		return out, nil
	}

	out.Reactions = append(out.Reactions, MessageReaction{
		ID:        fmt.Sprintf("reaction_%s", uuid.NewString()),
		Emoji:     emoji,
		Count:     1,
		Users:     []string{userID},
		MessageID: m.ID,
	})
	return out, nil
}

// HasReacted reports whether userID has reacted to m with emoji.
func HasReacted(m Message, emoji, userID string) bool {
	for _, r := range m.Reactions {
		if r.Emoji == emoji {
			return slices.Contains(r.Users, userID)
		}
	}
	return false
}
