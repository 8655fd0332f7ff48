// Package sqlstore provides a SQLite-backed LedgerStore. Unlike the sheet
// and the plain file store, it tracks a table revision and refuses a
// replace-all computed from a stale read, so concurrent writers surface
// as ventas.ErrConcurrentModification instead of silently losing updates.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	ventas "github.com/ArmandoRuiz13/RegistroMom"
)

// Store persists the ledger table in a SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database and runs migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// replace-all rewrites the whole table; a single connection avoids
	// SQLITE_BUSY between our own reads and writes.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS records (
			position        INTEGER PRIMARY KEY,
			id              TEXT NOT NULL UNIQUE,
			registered_at   TEXT NOT NULL,
			product         TEXT NOT NULL,
			seller          TEXT NOT NULL,
			buyer           TEXT,
			store           TEXT,
			cost_usd        TEXT NOT NULL,
			cost_usd_taxed  TEXT NOT NULL,
			rate_used       TEXT NOT NULL,
			commission_mxn  TEXT NOT NULL,
			total_cost_mxn  TEXT NOT NULL,
			sale_price_mxn  TEXT NOT NULL,
			profit_mxn      TEXT NOT NULL,
			usd_equivalent  TEXT NOT NULL,
			week            TEXT NOT NULL,
			status          TEXT NOT NULL,
			received_mxn    TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_week ON records(week)`,
		`CREATE TABLE IF NOT EXISTS meta (
			key      TEXT PRIMARY KEY,
			revision INTEGER NOT NULL
		)`,
		`INSERT OR IGNORE INTO meta (key, revision) VALUES ('ledger', 0)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// ReadAll implements ventas.LedgerStore.
func (s *Store) ReadAll(ctx context.Context) (*ventas.Ledger, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("begin read: %w", err)
	}
	defer tx.Rollback()

	var revision uint64
	if err := tx.QueryRowContext(ctx, `SELECT revision FROM meta WHERE key = 'ledger'`).Scan(&revision); err != nil {
		return nil, fmt.Errorf("read revision: %w", err)
	}

	rows, err := tx.QueryContext(ctx, `
		SELECT id, registered_at, product, seller, buyer, store,
		       cost_usd, cost_usd_taxed, rate_used,
		       commission_mxn, total_cost_mxn, sale_price_mxn, profit_mxn,
		       usd_equivalent, week, status, received_mxn
		FROM records ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}
	defer rows.Close()

	ledger := ventas.NewLedger()
	for rows.Next() {
		var row recordRow
		if err := rows.Scan(
			&row.id, &row.registeredAt, &row.product, &row.seller, &row.buyer, &row.store,
			&row.costUSD, &row.costUSDTaxed, &row.rateUsed,
			&row.commissionMXN, &row.totalCostMXN, &row.salePriceMXN, &row.profitMXN,
			&row.usdEquivalent, &row.week, &row.status, &row.receivedMXN,
		); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		rec, err := row.record()
		if err != nil {
			return nil, err
		}
		ledger.Append(rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}
	ledger.SetRevision(revision)
	return ledger, nil
}

// ReplaceAll implements ventas.LedgerStore. The whole swap happens in one
// transaction; a ledger read at a stale revision is rejected.
func (s *Store) ReplaceAll(ctx context.Context, l *ventas.Ledger) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin write: %w", err)
	}
	defer tx.Rollback()

	var revision uint64
	if err := tx.QueryRowContext(ctx, `SELECT revision FROM meta WHERE key = 'ledger'`).Scan(&revision); err != nil {
		return fmt.Errorf("read revision: %w", err)
	}
	if l.Revision() != revision {
		return ventas.ErrConcurrentModification
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return fmt.Errorf("clear records: %w", err)
	}

	insert, err := tx.PrepareContext(ctx, `
		INSERT INTO records (
			position, id, registered_at, product, seller, buyer, store,
			cost_usd, cost_usd_taxed, rate_used,
			commission_mxn, total_cost_mxn, sale_price_mxn, profit_mxn,
			usd_equivalent, week, status, received_mxn
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer insert.Close()

	for i, r := range l.Records() {
		if _, err := insert.ExecContext(ctx,
			i, r.ID, r.RegisteredAt.UTC().Format(time.RFC3339), r.Product, r.Seller, r.Buyer, r.Store,
			r.CostUSD.Decimal().String(), r.CostUSDTaxed.Decimal().String(), r.RateUsed.String(),
			r.CommissionMXN.Decimal().String(), r.TotalCostMXN.Decimal().String(),
			r.SalePriceMXN.Decimal().String(), r.ProfitMXN.Decimal().String(),
			r.USDEquivalent.Decimal().String(), r.Week, r.Status.String(), r.Received.Decimal().String(),
		); err != nil {
			return fmt.Errorf("insert record %q: %w", r.ID, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `UPDATE meta SET revision = revision + 1 WHERE key = 'ledger'`); err != nil {
		return fmt.Errorf("bump revision: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	l.SetRevision(revision + 1)
	return nil
}

var _ ventas.LedgerStore = (*Store)(nil)

// recordRow is the flat TEXT shape of a record as stored. Decimals are
// stored as their exact string form, never as REAL.
type recordRow struct {
	id, registeredAt, product, seller, buyer, store      string
	costUSD, costUSDTaxed, rateUsed                      string
	commissionMXN, totalCostMXN, salePriceMXN, profitMXN string
	usdEquivalent, week, status, receivedMXN             string
}

func (row recordRow) record() (ventas.Record, error) {
	at, err := time.Parse(time.RFC3339, row.registeredAt)
	if err != nil {
		return ventas.Record{}, fmt.Errorf("record %q: bad timestamp %q: %w", row.id, row.registeredAt, err)
	}
	status, err := ventas.ParsePaymentStatus(row.status)
	if err != nil {
		return ventas.Record{}, fmt.Errorf("record %q: %w", row.id, err)
	}

	var decErr error
	dec := func(column, s string) decimal.Decimal {
		d, err := decimal.NewFromString(s)
		if err != nil && decErr == nil {
			decErr = fmt.Errorf("record %q: bad %s %q: %w", row.id, column, s, err)
		}
		return d
	}
	rec := ventas.Record{
		ID:            row.id,
		RegisteredAt:  at,
		Product:       row.product,
		Seller:        row.seller,
		Buyer:         row.buyer,
		Store:         row.store,
		CostUSD:       ventas.USD(dec("cost_usd", row.costUSD)),
		CostUSDTaxed:  ventas.USD(dec("cost_usd_taxed", row.costUSDTaxed)),
		RateUsed:      dec("rate_used", row.rateUsed),
		CommissionMXN: ventas.MXN(dec("commission_mxn", row.commissionMXN)),
		TotalCostMXN:  ventas.MXN(dec("total_cost_mxn", row.totalCostMXN)),
		SalePriceMXN:  ventas.MXN(dec("sale_price_mxn", row.salePriceMXN)),
		ProfitMXN:     ventas.MXN(dec("profit_mxn", row.profitMXN)),
		USDEquivalent: ventas.USD(dec("usd_equivalent", row.usdEquivalent)),
		Week:          row.week,
		Status:        status,
		Received:      ventas.MXN(dec("received_mxn", row.receivedMXN)),
	}
	if decErr != nil {
		return ventas.Record{}, decErr
	}
	return rec, nil
}
