package ventas

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"
)

// ErrConcurrentModification is returned by stores that track revisions
// when a replace-all would silently discard another writer's changes.
var ErrConcurrentModification = errors.New("ledger modified concurrently")

// LedgerStore is the external table the ledger lives in. The store has no
// transaction concept: every mutation is a whole-table overwrite, so the
// last writer wins unless the implementation checks revisions.
type LedgerStore interface {
	// ReadAll reads the whole table.
	ReadAll(ctx context.Context) (*Ledger, error)
	// ReplaceAll overwrites the whole table.
	ReplaceAll(ctx context.Context, l *Ledger) error
}

const (
	// DefaultReadAttempts is how many times a read is tried before degrading.
	DefaultReadAttempts = 3
	// DefaultRetryDelay is the pause between read attempts.
	DefaultRetryDelay = time.Second
)

// ReadAllRetry reads the table, retrying transient failures a fixed number
// of times with a fixed delay. When every attempt fails it degrades to an
// empty ledger: a read failure shows as "no data", never as a crash.
func ReadAllRetry(ctx context.Context, store LedgerStore, attempts int, delay time.Duration) *Ledger {
	if attempts <= 0 {
		attempts = DefaultReadAttempts
	}
	for i := 0; i < attempts; i++ {
		l, err := store.ReadAll(ctx)
		if err == nil {
			return l
		}
		log.Printf("ledger read attempt %d/%d failed: %v", i+1, attempts, err)
		if i < attempts-1 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return NewLedger()
			}
		}
	}
	return NewLedger()
}

// MemStore is an in-memory LedgerStore. It tracks revisions and can be
// told to fail, which the tests use to exercise retry and degradation.
type MemStore struct {
	mu       sync.Mutex
	records  []Record
	revision uint64

	// FailReads makes the next n ReadAll calls fail.
	FailReads int
	// FailWrites makes the next n ReplaceAll calls fail.
	FailWrites int
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore { return &MemStore{} }

var errUnavailable = errors.New("store unavailable")

// ReadAll implements LedgerStore.
func (s *MemStore) ReadAll(ctx context.Context) (*Ledger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailReads > 0 {
		s.FailReads--
		return nil, errUnavailable
	}
	l := NewLedger()
	l.Append(s.records...)
	l.SetRevision(s.revision)
	return l, nil
}

// ReplaceAll implements LedgerStore. A ledger read at a stale revision is
// rejected with ErrConcurrentModification.
func (s *MemStore) ReplaceAll(ctx context.Context, l *Ledger) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites > 0 {
		s.FailWrites--
		return errUnavailable
	}
	if l.Revision() != s.revision {
		return ErrConcurrentModification
	}
	s.records = s.records[:0]
	for _, r := range l.Records() {
		s.records = append(s.records, r)
	}
	s.revision++
	l.SetRevision(s.revision)
	return nil
}
