package ventas

import (
	"fmt"
	"iter"

	"github.com/shopspring/decimal"
)

// Ledger is the ordered table of resale records, as read from the store.
//
// Order is the order of registration and is preserved across mutations;
// records are addressed by their ID, never by their position.
type Ledger struct {
	records  []Record
	revision uint64 // store revision this ledger was read at, zero when unknown
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{records: make([]Record, 0)}
}

// Len returns the number of records in the ledger.
func (l *Ledger) Len() int { return len(l.records) }

// Revision returns the store revision this ledger was read at.
func (l *Ledger) Revision() uint64 { return l.revision }

// SetRevision stamps the store revision the ledger was read at. Stores
// call it on read and check it on replace to detect lost updates.
func (l *Ledger) SetRevision(rev uint64) { l.revision = rev }

// Append adds records at the end of the table.
func (l *Ledger) Append(recs ...Record) { l.records = append(l.records, recs...) }

// Find returns the record with the given ID.
func (l *Ledger) Find(id string) (Record, bool) {
	for _, r := range l.records {
		if r.ID == id {
			return r, true
		}
	}
	return Record{}, false
}

// Remove deletes the record with the given ID, compacting the table. It
// reports whether a record was removed.
func (l *Ledger) Remove(id string) bool {
	for i, r := range l.records {
		if r.ID == id {
			l.records = append(l.records[:i], l.records[i+1:]...)
			return true
		}
	}
	return false
}

// Records returns an iterator over records in table order. With filters,
// a record is yielded when any filter accepts it; without, all are.
func (l *Ledger) Records(filters ...func(Record) bool) iter.Seq2[int, Record] {
	return func(yield func(int, Record) bool) {
		for i, r := range l.records {
			accept := len(filters) == 0
			for _, filter := range filters {
				if filter(r) {
					accept = true
					break
				}
			}
			if !accept {
				continue
			}
			if !yield(i, r) {
				return
			}
		}
	}
}

// ByWeek returns a predicate matching records stamped with the given week
// label. The match is exact string equality: historical records keep the
// label they were stamped with even if week-boundary logic later changes.
func ByWeek(label string) func(Record) bool {
	return func(r Record) bool { return r.Week == label }
}

// BySeller returns a predicate matching records of one seller.
func BySeller(name string) func(Record) bool {
	return func(r Record) bool { return r.Seller == name }
}

// Weeks returns the distinct week labels in table order, oldest first.
func (l *Ledger) Weeks() []string {
	var weeks []string
	seen := make(map[string]struct{})
	for _, r := range l.records {
		if _, ok := seen[r.Week]; ok {
			continue
		}
		seen[r.Week] = struct{}{}
		weeks = append(weeks, r.Week)
	}
	return weeks
}

// Sellers returns the distinct seller names in table order.
func (l *Ledger) Sellers() []string {
	var sellers []string
	seen := make(map[string]struct{})
	for _, r := range l.records {
		if _, ok := seen[r.Seller]; ok {
			continue
		}
		seen[r.Seller] = struct{}{}
		sellers = append(sellers, r.Seller)
	}
	return sellers
}

// SetPayment updates the payment fields of one record. The amount is
// stored as typed; consistency with the status is enforced by Reconcile
// before the ledger is persisted, not here.
func (l *Ledger) SetPayment(id string, status PaymentStatus, received decimal.Decimal) error {
	for i, r := range l.records {
		if r.ID == id {
			l.records[i].Status = status
			l.records[i].Received = MXN(received)
			return nil
		}
	}
	return fmt.Errorf("no record with id %q", id)
}

// Reconcile enforces payment consistency before a write: every record
// marked Paid gets its received amount forced to the sale price,
// overwriting whatever was typed. The normalization is one-way, marking a
// record Unpaid or PartiallyPaid never adjusts the amount. Reconcile is
// idempotent and returns the number of records it changed.
func (l *Ledger) Reconcile() (changed int) {
	for i, r := range l.records {
		if r.Status == Paid && !r.Received.Equal(r.SalePriceMXN) {
			l.records[i].Received = r.SalePriceMXN
			changed++
		}
	}
	return changed
}
