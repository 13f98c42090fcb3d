// Package leaderboard consumes ranking-relevant events and maintains an
// in-memory top-N ranking rebuilt wholesale from the durable store.
package leaderboard

import "sync"

// Entry is one ranked user.
type Entry struct {
	UserID         string `json:"userId"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	TotalPoints    int    `json:"totalPoints"`
	Level          int    `json:"level"`
	TasksCompleted int    `json:"tasksCompleted"`
	Streak         int    `json:"streak"`
}

// Cache holds the current ranking. It is replaced wholesale on each
// refresh; readers always observe either the previous or the new
// ranking, never a partial update. Never persisted.
type Cache struct {
	mu      sync.RWMutex
	entries []Entry
}

func NewCache() *Cache {
	return &Cache{}
}

// Replace swaps in a new ranking.
func (c *Cache) Replace(entries []Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = entries
}

// Snapshot returns a copy of the current ranking. It never queries the
// store; staleness is bounded by the refresh interval.
func (c *Cache) Snapshot() []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}
