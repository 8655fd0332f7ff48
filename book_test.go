package ventas

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func testBook(store LedgerStore) *Book {
	// no sleeping in tests.
	return NewBook(store).WithRetry(3, 0)
}

func TestBook_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	book := testBook(NewMemStore())

	rec := sale(t, "2025-11-17", "Tenis", "Fer", "24", "1500")
	if err := book.Save(ctx, rec); err != nil {
		t.Fatalf("Save: %v", err)
	}

	l := book.Load(ctx)
	if l.Len() != 1 {
		t.Fatalf("Len = %d, want 1", l.Len())
	}
	got, ok := l.Find(rec.ID)
	if !ok {
		t.Fatalf("saved record not found")
	}
	if got.Product != "Tenis" || !got.TotalCostMXN.Equal(MXN(d("657.6"))) {
		t.Errorf("round-tripped record = %+v", got)
	}
}

func TestReadAllRetry_RecoversAfterTransientFailures(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()
	if err := store.ReplaceAll(ctx, mustLedger(t, store)); err != nil {
		t.Fatal(err)
	}

	store.FailReads = 2
	l := ReadAllRetry(ctx, store, 3, 0)
	if l == nil {
		t.Fatalf("ReadAllRetry returned nil")
	}
	if store.FailReads != 0 {
		t.Errorf("retry did not consume the injected failures")
	}
}

func TestReadAllRetry_DegradesToEmpty(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()
	seedStore(t, store, sale(t, "2025-11-17", "Tenis", "Fer", "24", "1500"))

	store.FailReads = 3
	l := ReadAllRetry(ctx, store, 3, 0)
	if l.Len() != 0 {
		t.Errorf("exhausted retries yielded %d records, want an empty ledger", l.Len())
	}
}

func TestBook_WriteFailurePropagates(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()
	book := testBook(store)

	store.FailWrites = 1
	err := book.Save(ctx, sale(t, "2025-11-17", "Tenis", "Fer", "24", "1500"))
	if err == nil {
		t.Fatalf("Save swallowed a write failure")
	}

	// nothing was written.
	if l := book.Load(ctx); l.Len() != 0 {
		t.Errorf("failed write left %d records behind", l.Len())
	}
}

func TestBook_Delete(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()
	book := testBook(store)

	rec := sale(t, "2025-11-17", "Tenis", "Fer", "24", "1500")
	seedStore(t, store, rec)

	if err := book.Delete(ctx, rec.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if l := book.Load(ctx); l.Len() != 0 {
		t.Errorf("record survived deletion")
	}
	if err := book.Delete(ctx, rec.ID); err == nil {
		t.Errorf("deleting a missing record did not error")
	}
}

func TestDeleteSession_TwoPhase(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()
	book := testBook(store)
	rec := sale(t, "2025-11-17", "Tenis", "Fer", "24", "1500")
	seedStore(t, store, rec)

	session := NewDeleteSession(book)

	// cancelling disarms without touching the table.
	session.Request(rec.ID)
	if err := session.Cancel(); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if l := book.Load(ctx); l.Len() != 1 {
		t.Fatalf("Cancel deleted the record")
	}
	if err := session.Confirm(ctx); !errors.Is(err, ErrNoPendingDelete) {
		t.Errorf("Confirm after Cancel = %v, want ErrNoPendingDelete", err)
	}

	// the armed record goes away on confirm.
	session.Request(rec.ID)
	if got := session.Pending(); got != rec.ID {
		t.Errorf("Pending = %q", got)
	}
	if err := session.Confirm(ctx); err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if l := book.Load(ctx); l.Len() != 0 {
		t.Errorf("record survived confirmed deletion")
	}
}

func TestBook_Reconcile_EndToEnd(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()
	book := testBook(store)

	// create record(product="X", cost=24, rate fixed 27.40, price=1500)
	rec, err := NewRecord(time.Now(), NewFixedRate(), decimal.Zero, RecordInput{
		Product: "X", Seller: "Fer", CostUSD: d("24"), Price: d("1500"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := book.Save(ctx, rec); err != nil {
		t.Fatal(err)
	}

	got, _ := book.Load(ctx).Find(rec.ID)
	if !got.TotalCostMXN.Equal(MXN(d("657.6"))) ||
		!got.CommissionMXN.Equal(MXN(d("177.6"))) ||
		!got.ProfitMXN.Equal(MXN(d("842.4"))) ||
		got.Status != Unpaid {
		t.Fatalf("created record = %+v", got)
	}

	// mark paid and reconcile: the received amount snaps to the price.
	if err := book.Reconcile(ctx, PaymentEdit{ID: rec.ID, Status: Paid}); err != nil {
		t.Fatal(err)
	}
	got, _ = book.Load(ctx).Find(rec.ID)
	if got.Status != Paid || !got.Received.Equal(MXN(1500)) {
		t.Errorf("after reconciliation: status %v, received %s", got.Status, got.Received.Decimal())
	}

	// reconciling again changes nothing.
	changed, err := book.Normalize(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if changed != 0 {
		t.Errorf("Normalize changed %d records on an already consistent table", changed)
	}
}

func TestMemStore_ConcurrentModification(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()

	// two sessions read the same revision.
	first, err := store.ReadAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	second, err := store.ReadAll(ctx)
	if err != nil {
		t.Fatal(err)
	}

	first.Append(sale(t, "2025-11-17", "Tenis", "Fer", "24", "1500"))
	if err := store.ReplaceAll(ctx, first); err != nil {
		t.Fatalf("first write: %v", err)
	}

	second.Append(sale(t, "2025-11-17", "Bolsa", "Dany", "10", "500"))
	if err := store.ReplaceAll(ctx, second); !errors.Is(err, ErrConcurrentModification) {
		t.Errorf("stale write = %v, want ErrConcurrentModification", err)
	}
}

// seedStore writes records into a fresh store through the public protocol.
func seedStore(t *testing.T, store LedgerStore, recs ...Record) {
	t.Helper()
	ctx := context.Background()
	l, err := store.ReadAll(ctx)
	if err != nil {
		t.Fatalf("seed read: %v", err)
	}
	l.Append(recs...)
	if err := store.ReplaceAll(ctx, l); err != nil {
		t.Fatalf("seed write: %v", err)
	}
}

func mustLedger(t *testing.T, store LedgerStore) *Ledger {
	t.Helper()
	l, err := store.ReadAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	return l
}
