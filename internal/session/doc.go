// Package session keeps the last-known copy of every chat session the client
// has seen.
//
// # Overview
//
// The backend is the source of truth for sessions, but the client must keep
// working when it is unreachable. Cache holds a snapshot of each session the
// app fetched, created or changed locally, so that:
//   - selecting a session never waits on the network when it was seen before
//   - the history panel can be rebuilt from the cache when listing fails
//   - replies that land after the user switched away are not lost
//
// # Ordering
//
// Values returns sessions in first-insertion order. Overwriting an entry with
// Put keeps its original position; deleting and re-adding moves it to the end.
//
// # Lifetime
//
// Entries never expire. The cache lives as long as the application model and
// is only touched from the Bubble Tea update loop, so it does no locking.
package session
