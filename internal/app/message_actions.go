package app

import (
	"slices"

	tea "charm.land/bubbletea/v2"

	"github.com/attt/sohbet/internal/chat"
	"github.com/attt/sohbet/internal/logger"
)

// QuickReactions is the set ctrl+e cycles through.
var QuickReactions = []string{"👍", "❤️", "😂", "😮", "😢"}

// targetMessage is the selected message, or the newest one.
func (m *Model) targetMessage() (chat.Message, bool) {
	if msg, ok := m.chat.SelectedMessage(); ok {
		return msg, true
	}
	if len(m.messages) == 0 {
		return chat.Message{}, false
	}
	return m.messages[len(m.messages)-1], true
}

// updateMessage applies fn to the active message with id and mirrors the
// result into the cache.
func (m *Model) updateMessage(id string, fn func(chat.Message) chat.Message) bool {
	idx := slices.IndexFunc(m.messages, func(msg chat.Message) bool { return msg.ID == id })
	if idx < 0 {
		return false
	}
	updated := fn(m.messages[idx])
	m.messages[idx] = updated

	m.cache.Update(m.activeID, func(s *chat.ChatSession) {
		for i := range s.Messages {
			if s.Messages[i].ID == id {
				s.Messages[i] = updated.Clone()
			}
		}
	})
	m.syncMessages()
	return true
}

// copyMessage puts the target message on the clipboard.
func (m *Model) copyMessage() tea.Cmd {
	msg, ok := m.targetMessage()
	if !ok {
		return nil
	}
	err := m.copyText(msg.Content)
	return m.flashResult("copy", err, "Mesaj panoya kopyalandı", "Panoya kopyalanamadı")
}

// nextReaction returns the reaction the local user moves to on msg: the one
// after their current quick reaction, or the first. Empty means the cycle
// ends with no reaction.
func nextReaction(msg chat.Message, userID string) (current, next string) {
	for i, emoji := range QuickReactions {
		if chat.HasReacted(msg, emoji, userID) {
			if i+1 < len(QuickReactions) {
				return emoji, QuickReactions[i+1]
			}
			return emoji, ""
		}
	}
	return "", QuickReactions[0]
}

// cycleReaction moves the local user's reaction on the target message one
// step through QuickReactions.
func (m *Model) cycleReaction() tea.Cmd {
	msg, ok := m.targetMessage()
	if !ok {
		return nil
	}
	userID := m.env.UserID
	current, next := nextReaction(msg, userID)

	var failed error
	m.updateMessage(msg.ID, func(mm chat.Message) chat.Message {
		if current != "" {
			out, err := chat.ToggleReaction(mm, current, userID)
			if err != nil {
				failed = err
				return mm
			}
			mm = out
		}
		if next != "" {
			out, err := chat.ToggleReaction(mm, next, userID)
			if err != nil {
				failed = err
				return mm
			}
			mm = out
		}
		return mm
	})
	if failed != nil {
		logger.WithComponent("app").Warn("reaction failed", "error", failed)
		return m.ShowFlashError("Tepki eklenemedi")
	}
	return nil
}

// toggleMessageFavorite flips the favorite flag of the target message.
func (m *Model) toggleMessageFavorite() tea.Cmd {
	msg, ok := m.targetMessage()
	if !ok {
		return nil
	}
	m.updateMessage(msg.ID, func(mm chat.Message) chat.Message {
		mm.IsFavorite = !mm.IsFavorite
		return mm
	})
	return nil
}

// regenerateTarget regenerates the selected bot reply, or the newest one.
func (m *Model) regenerateTarget() tea.Cmd {
	if msg, ok := m.chat.SelectedMessage(); ok {
		if msg.IsUser() {
			return m.ShowFlashWarning("Yalnızca asistan yanıtları yeniden oluşturulabilir")
		}
		return m.regenerate(msg.ID)
	}
	for i := len(m.messages) - 1; i >= 0; i-- {
		if !m.messages[i].IsUser() {
			return m.regenerate(m.messages[i].ID)
		}
	}
	return nil
}
