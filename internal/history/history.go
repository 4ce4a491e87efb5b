// Package history keeps a bounded, most-recent-first list of analyses
// for the current session. Nothing is persisted.
package history

import (
	"sync"
	"time"

	"github.com/farcloser/mimesis"
	"github.com/farcloser/mimesis/internal/types"
)

// DefaultCap bounds the session history length.
const DefaultCap = 10

// Entry pairs a result with the descriptor that produced it.
type Entry struct {
	Descriptor types.FileDescriptor `json:"descriptor"`
	Result     *mimesis.Result      `json:"result"`
	At         time.Time            `json:"at"`
}

// Log is a bounded most-recent-first list. Safe for concurrent use.
type Log struct {
	mu      sync.Mutex
	max     int
	entries []Entry
}

// New creates a log holding at most max entries. Non-positive max uses
// DefaultCap.
func New(max int) *Log {
	if max <= 0 {
		max = DefaultCap
	}

	return &Log{max: max}
}

// Add prepends an entry, evicting the oldest when full.
func (l *Log) Add(entry Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append([]Entry{entry}, l.entries...)
	if len(l.entries) > l.max {
		l.entries = l.entries[:l.max]
	}
}

// Entries returns a snapshot, most recent first.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Entry, len(l.entries))
	copy(out, l.entries)

	return out
}

// Len returns the current entry count.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.entries)
}
