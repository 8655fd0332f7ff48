package ventas

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Book drives every mutation of the ledger as a read-modify-write cycle
// against the store: read the current table, compute the new one, replace
// it wholesale. Reads degrade gracefully; writes are at-most-once and
// their failures propagate so the caller never believes a lost write
// succeeded.
type Book struct {
	store    LedgerStore
	attempts int
	delay    time.Duration
	// settle is an optional cosmetic pause after a successful write, for
	// user-facing feedback only. Correctness never depends on it.
	settle time.Duration
}

// NewBook creates a book over a store with the default retry policy.
func NewBook(store LedgerStore) *Book {
	return &Book{store: store, attempts: DefaultReadAttempts, delay: DefaultRetryDelay}
}

// WithRetry overrides the read retry policy.
func (b *Book) WithRetry(attempts int, delay time.Duration) *Book {
	b.attempts, b.delay = attempts, delay
	return b
}

// WithSettle sets the cosmetic post-write pause.
func (b *Book) WithSettle(d time.Duration) *Book {
	b.settle = d
	return b
}

// Load reads the current table, degrading to an empty ledger when the
// store stays unavailable.
func (b *Book) Load(ctx context.Context) *Ledger {
	return ReadAllRetry(ctx, b.store, b.attempts, b.delay)
}

func (b *Book) replace(ctx context.Context, l *Ledger) error {
	if err := b.store.ReplaceAll(ctx, l); err != nil {
		return fmt.Errorf("could not write ledger: %w", err)
	}
	if b.settle > 0 {
		time.Sleep(b.settle)
	}
	return nil
}

// Replace swaps in a whole new table, as the import path does. The
// ledger must carry the revision of the current store content.
func (b *Book) Replace(ctx context.Context, l *Ledger) error {
	return b.replace(ctx, l)
}

// Save appends a new record to the table.
func (b *Book) Save(ctx context.Context, rec Record) error {
	l := b.Load(ctx)
	l.Append(rec)
	return b.replace(ctx, l)
}

// Delete removes the record with the given ID. The table is re-read
// inside the call, so the ID cannot go stale the way a row position can.
func (b *Book) Delete(ctx context.Context, id string) error {
	l := b.Load(ctx)
	if !l.Remove(id) {
		return fmt.Errorf("no record with id %q", id)
	}
	return b.replace(ctx, l)
}

// PaymentEdit is one user edit of a record's payment fields.
type PaymentEdit struct {
	ID       string
	Status   PaymentStatus
	Received decimal.Decimal
}

// Reconcile applies payment edits, normalizes the table (Paid forces the
// received amount to the sale price), and persists it.
func (b *Book) Reconcile(ctx context.Context, edits ...PaymentEdit) error {
	l := b.Load(ctx)
	for _, e := range edits {
		if err := l.SetPayment(e.ID, e.Status, e.Received); err != nil {
			return err
		}
	}
	l.Reconcile()
	return b.replace(ctx, l)
}

// Normalize reconciles the whole table without edits and persists it only
// when something actually changed.
func (b *Book) Normalize(ctx context.Context) (changed int, err error) {
	l := b.Load(ctx)
	changed = l.Reconcile()
	if changed == 0 {
		return 0, nil
	}
	return changed, b.replace(ctx, l)
}
