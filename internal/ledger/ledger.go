// Package ledger holds the process-wide record of business names already
// written to the persisted store.
//
// The ledger is an in-memory mirror of the store's name column. It is
// seeded once before any concurrent fetch work begins, grows monotonically
// during a run, and is discarded at process exit; the persisted store is
// the durable copy of record.
package ledger

import (
	"strings"
	"sync"

	"github.com/tnt-robotics/sponsorscout/internal/domain"
)

// Ledger is the deduplication set shared by all concurrent producers.
//
// Membership alone is not enough to uphold the single-write-per-name
// invariant: two producers could both observe "not present" and both
// proceed to write. Reserve claims a name atomically with the membership
// test, so the check-then-write sequence is the atomic unit. A reserved
// name moves to recorded on Commit (after a confirmed durable write) or
// back to absent on Release (write retries exhausted).
type Ledger struct {
	mu       sync.Mutex
	recorded map[string]struct{}
	pending  map[string]struct{}
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{
		recorded: make(map[string]struct{}),
		pending:  make(map[string]struct{}),
	}
}

// Seed bulk-initializes the membership set from the persisted store's
// current contents. Must complete before any concurrent work begins.
func (l *Ledger) Seed(entries []domain.Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range entries {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			continue
		}
		l.recorded[name] = struct{}{}
	}
}

// Contains reports whether name is already recorded.
func (l *Ledger) Contains(name string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.recorded[name]
	return ok
}

// Reserve claims name for writing. It returns false if the name is
// already recorded or claimed by another producer; exactly one caller
// wins for any given name.
func (l *Ledger) Reserve(name string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.recorded[name]; ok {
		return false
	}
	if _, ok := l.pending[name]; ok {
		return false
	}
	l.pending[name] = struct{}{}
	return true
}

// Commit records a reserved name after its durable write succeeded.
func (l *Ledger) Commit(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.pending, name)
	l.recorded[name] = struct{}{}
}

// Release returns a reserved name to the absent state after its write
// failed. The name may be re-attempted on a future run.
func (l *Ledger) Release(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.pending, name)
}

// Len returns the number of recorded names.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.recorded)
}
