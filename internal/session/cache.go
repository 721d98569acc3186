package session

import (
	"slices"

	"github.com/attt/sohbet/internal/chat"
)

// Cache maps session id to the last-known session, in insertion order.
// Entries stored from a listing are summaries until a full record with its
// messages is Put.
type Cache struct {
	order     []string
	byID      map[string]chat.ChatSession
	summaries map[string]bool
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{
		byID:      make(map[string]chat.ChatSession),
		summaries: make(map[string]bool),
	}
}

// Put stores a copy of s, overwriting any previous entry for s.ID.
func (c *Cache) Put(s chat.ChatSession) {
	if s.ID == "" {
		return
	}
	if _, ok := c.byID[s.ID]; !ok {
		c.order = append(c.order, s.ID)
	}
	c.byID[s.ID] = s.Clone()
	delete(c.summaries, s.ID)
}

// PutSummary stores listing metadata for s. Messages already cached are kept
// when s carries none. A session seen for the first time stays a summary
// until Put.
func (c *Cache) PutSummary(s chat.ChatSession) {
	if s.ID == "" {
		return
	}
	if old, ok := c.byID[s.ID]; ok {
		if len(s.Messages) == 0 {
			s.Messages = old.Messages
		}
	} else {
		c.order = append(c.order, s.ID)
		c.summaries[s.ID] = true
	}
	c.byID[s.ID] = s.Clone()
}

// Replace moves the entry for oldID to s.ID at the same position and stores s.
func (c *Cache) Replace(oldID string, s chat.ChatSession) {
	i := slices.Index(c.order, oldID)
	if i < 0 || s.ID == "" {
		c.Put(s)
		return
	}
	if oldID != s.ID {
		if j := slices.Index(c.order, s.ID); j >= 0 {
			c.order = slices.Delete(c.order, j, j+1)
			if j < i {
				i--
			}
		}
		c.order[i] = s.ID
		delete(c.byID, oldID)
		delete(c.summaries, oldID)
	}
	c.byID[s.ID] = s.Clone()
	delete(c.summaries, s.ID)
}

// PutAll stores every session in list order.
func (c *Cache) PutAll(list []chat.ChatSession) {
	for _, s := range list {
		c.Put(s)
	}
}

// Get returns a copy of the cached session.
func (c *Cache) Get(id string) (chat.ChatSession, bool) {
	s, ok := c.byID[id]
	if !ok {
		return chat.ChatSession{}, false
	}
	return s.Clone(), true
}

// Has reports whether id is cached.
func (c *Cache) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Loaded reports whether id is cached with its messages.
func (c *Cache) Loaded(id string) bool {
	return c.Has(id) && !c.summaries[id]
}

// Update applies fn to the cached session, if present, and stores the result.
// It reports whether the entry existed.
func (c *Cache) Update(id string, fn func(*chat.ChatSession)) bool {
	s, ok := c.byID[id]
	if !ok {
		return false
	}
	s = s.Clone()
	fn(&s)
	s.ID = id
	c.byID[id] = s
	return true
}

// AppendMessage adds msg to the cached session, creating nothing if the
// session is unknown.
func (c *Cache) AppendMessage(id string, msg chat.Message) bool {
	return c.Update(id, func(s *chat.ChatSession) {
		s.Messages = append(s.Messages, msg.Clone())
		if msg.Timestamp.After(s.UpdatedAt) {
			s.UpdatedAt = msg.Timestamp
		}
	})
}

// Delete removes id from the cache.
func (c *Cache) Delete(id string) {
	if _, ok := c.byID[id]; !ok {
		return
	}
	delete(c.byID, id)
	delete(c.summaries, id)
	if i := slices.Index(c.order, id); i >= 0 {
		c.order = slices.Delete(c.order, i, i+1)
	}
}

// Values returns copies of every cached session in insertion order.
func (c *Cache) Values() []chat.ChatSession {
	out := make([]chat.ChatSession, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id].Clone())
	}
	return out
}

// Len returns the number of cached sessions.
func (c *Cache) Len() int {
	return len(c.order)
}
