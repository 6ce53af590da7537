// Package scoreboard keeps the best scores of every session on a server.
package scoreboard

import (
	"slices"
	"sync"
	"time"
	"unicode/utf8"
)

// MaxNameLength is the maximum display length for player names.
const MaxNameLength = 16

// Entry is one submitted score.
type Entry struct {
	Name  string
	Score int
	At    time.Time
}

// Board is a bounded high-score table, safe for concurrent use.
type Board struct {
	mu      sync.RWMutex
	entries []Entry // Sorted by score, highest first; ties keep submission order
	limit   int
	now     func() time.Time
}

// New creates a board that keeps the best limit scores.
func New(limit int) *Board {
	if limit < 1 {
		limit = 1
	}
	return &Board{limit: limit, now: time.Now}
}

// Submit records a score and returns its 1-based rank, or 0 when it did
// not make the table.
func (b *Board) Submit(name string, score int) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	pos := slices.IndexFunc(b.entries, func(e Entry) bool { return e.Score < score })
	if pos < 0 {
		pos = len(b.entries)
	}
	if pos >= b.limit {
		return 0
	}

	b.entries = slices.Insert(b.entries, pos, Entry{Name: displayName(name), Score: score, At: b.now()})
	if len(b.entries) > b.limit {
		b.entries = b.entries[:b.limit]
	}
	return pos + 1
}

// Top returns up to n best entries.
func (b *Board) Top(n int) []Entry {
	b.mu.RLock()
	defer b.mu.RUnlock()
	n = min(max(n, 0), len(b.entries))
	return slices.Clone(b.entries[:n])
}

// Best returns the highest entry.
func (b *Board) Best() (Entry, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if len(b.entries) == 0 {
		return Entry{}, false
	}
	return b.entries[0], true
}

// Len returns the number of recorded entries.
func (b *Board) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.entries)
}

func displayName(name string) string {
	if name == "" {
		return "anonymous"
	}
	if utf8.RuneCountInString(name) <= MaxNameLength {
		return name
	}
	return string([]rune(name)[:MaxNameLength])
}
