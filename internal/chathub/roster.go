package chathub

import (
	"chatrelay/backend/internal/models"
	"slices"
	"sync"

	"github.com/samber/lo"
)

// Roster tracks which connections are alive and which identity each represents.
// Entries are kept in insertion order; every accessor returns a copy.
type Roster struct {
	mu      sync.RWMutex
	entries []models.PresenceEntry
}

func NewRoster() *Roster {
	return &Roster{}
}

// AddConnection makes the entry visible to all subsequent lookups.
// Re-adding a live connection id replaces its metadata in place.
func (r *Roster) AddConnection(entry models.PresenceEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i := r.indexOf(entry.ConnectionID); i >= 0 {
		r.entries[i] = entry
		return
	}
	r.entries = append(r.entries, entry)
}

// RemoveConnection drops the entry for connectionID. Unknown ids are ignored.
func (r *Roster) RemoveConnection(connectionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i := r.indexOf(connectionID); i >= 0 {
		r.entries = slices.Delete(r.entries, i, i+1)
	}
}

// ConnectionsForIdentity returns every entry joined under identity, in join order.
func (r *Roster) ConnectionsForIdentity(identity string) []models.PresenceEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return lo.Filter(r.entries, func(e models.PresenceEntry, _ int) bool {
		return e.Identity == identity
	})
}

// AllEntries returns one entry per identity; the first connection seen wins.
func (r *Roster) AllEntries() []models.PresenceEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return lo.UniqBy(r.entries, func(e models.PresenceEntry) string {
		return e.Identity
	})
}

// Contains reports whether connectionID has joined.
func (r *Roster) Contains(connectionID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.indexOf(connectionID) >= 0
}

// Len is the number of live entries, duplicates included.
func (r *Roster) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

func (r *Roster) indexOf(connectionID string) int {
	return slices.IndexFunc(r.entries, func(e models.PresenceEntry) bool {
		return e.ConnectionID == connectionID
	})
}
