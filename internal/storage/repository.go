// Package storage is the SQLite backing store. Purchases are append-only
// rows carrying their snapshotted installment plan plus sync-tracking
// columns for the export worker; the ledger is one row per month, updated
// by upsert so concurrent increments cannot lose updates.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"rate/internal/core"

	_ "modernc.org/sqlite"
)

// Sync states for the export pipeline.
const (
	SyncPending = "pending"
	SyncDone    = "synced"
	SyncError   = "error"
)

var ErrPurchaseNotFound = errors.New("purchase not found")

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// AppendPurchase implements store.PurchaseStore.
func (r *SQLiteRepository) AppendPurchase(ctx context.Context, p core.Purchase) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO purchases (id, name, amount_cents, purchase_date, installments, monthly_payment_cents)
		VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Amount.Cents, p.Date.String(), p.Installments, p.MonthlyPayment.Cents,
	)
	if err != nil {
		return fmt.Errorf("insert purchase: %w", err)
	}

	slog.InfoContext(ctx, "Purchase saved to SQLite",
		"id", p.ID,
		"name", p.Name,
		"amount_cents", p.Amount.Cents,
		"installments", p.Installments)
	return nil
}

// ListPurchases implements store.PurchaseStore.
func (r *SQLiteRepository) ListPurchases(ctx context.Context) ([]core.Purchase, error) {
	return listPurchases(ctx, r.db)
}

// ReadLedger implements store.LedgerStore.
func (r *SQLiteRepository) ReadLedger(ctx context.Context) (core.Ledger, error) {
	return readLedger(ctx, r.db)
}

// IncrementMonth implements store.LedgerStore. The upsert runs as one
// statement, so concurrent increments serialize inside SQLite.
func (r *SQLiteRepository) IncrementMonth(ctx context.Context, m core.Month, amount core.Money) (core.Money, error) {
	var total int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO ledger (month, amount_cents) VALUES (?, ?)
		ON CONFLICT(month) DO UPDATE SET amount_cents = amount_cents + excluded.amount_cents
		RETURNING amount_cents`,
		m.String(), amount.Cents,
	).Scan(&total)
	if err != nil {
		return core.Money{}, fmt.Errorf("increment ledger month: %w", err)
	}
	return core.Money{Cents: total}, nil
}

// ReplaceMonth implements store.LedgerStore.
func (r *SQLiteRepository) ReplaceMonth(ctx context.Context, m core.Month, amount core.Money) (core.Money, error) {
	if amount.IsNegative() {
		amount = core.Money{}
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO ledger (month, amount_cents) VALUES (?, ?)
		ON CONFLICT(month) DO UPDATE SET amount_cents = excluded.amount_cents`,
		m.String(), amount.Cents,
	)
	if err != nil {
		return core.Money{}, fmt.Errorf("replace ledger month: %w", err)
	}
	return amount, nil
}

// Snapshot implements store.SnapshotReader. Both records are read inside a
// single read transaction so the computation observes one consistent state.
func (r *SQLiteRepository) Snapshot(ctx context.Context) ([]core.Purchase, core.Ledger, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, nil, fmt.Errorf("begin snapshot tx: %w", err)
	}
	defer tx.Rollback()

	purchases, err := listPurchases(ctx, tx)
	if err != nil {
		return nil, nil, err
	}
	ledger, err := readLedger(ctx, tx)
	if err != nil {
		return nil, nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("commit snapshot tx: %w", err)
	}
	return purchases, ledger, nil
}

// GetPurchase retrieves a single purchase by ID for the export worker.
func (r *SQLiteRepository) GetPurchase(ctx context.Context, id string) (core.Purchase, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, amount_cents, purchase_date, installments, monthly_payment_cents
		FROM purchases WHERE id = ?`, id)

	p, err := scanPurchase(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Purchase{}, ErrPurchaseNotFound
	}
	if err != nil {
		return core.Purchase{}, fmt.Errorf("get purchase: %w", err)
	}
	return p, nil
}

// ListPendingSync returns purchases not yet exported, oldest first.
func (r *SQLiteRepository) ListPendingSync(ctx context.Context, limit int) ([]core.Purchase, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, amount_cents, purchase_date, installments, monthly_payment_cents
		FROM purchases
		WHERE sync_status = ?
		ORDER BY created_at, id
		LIMIT ?`, SyncPending, limit)
	if err != nil {
		return nil, fmt.Errorf("list pending sync: %w", err)
	}
	defer rows.Close()
	return collectPurchases(rows)
}

// MarkSynced marks a purchase as successfully exported.
func (r *SQLiteRepository) MarkSynced(ctx context.Context, id string) error {
	if err := r.setSyncStatus(ctx, id, SyncDone); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Purchase marked as synced", "id", id)
	return nil
}

// MarkSyncError marks a purchase as having failed export.
func (r *SQLiteRepository) MarkSyncError(ctx context.Context, id string) error {
	if err := r.setSyncStatus(ctx, id, SyncError); err != nil {
		return err
	}
	slog.WarnContext(ctx, "Purchase marked with sync error", "id", id)
	return nil
}

func (r *SQLiteRepository) setSyncStatus(ctx context.Context, id, status string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE purchases SET sync_status = ?, synced_at = ? WHERE id = ?`,
		status, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update sync status: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrPurchaseNotFound
	}
	return nil
}

// querier lets the read helpers run against either the DB or a transaction.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func listPurchases(ctx context.Context, q querier) ([]core.Purchase, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, name, amount_cents, purchase_date, installments, monthly_payment_cents
		FROM purchases
		ORDER BY purchase_date, created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()
	return collectPurchases(rows)
}

func readLedger(ctx context.Context, q querier) (core.Ledger, error) {
	rows, err := q.QueryContext(ctx, `SELECT month, amount_cents FROM ledger`)
	if err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}
	defer rows.Close()

	ledger := core.Ledger{}
	for rows.Next() {
		var monthStr string
		var amountCents int64
		if err := rows.Scan(&monthStr, &amountCents); err != nil {
			return nil, fmt.Errorf("scan ledger row: %w", err)
		}
		month, err := core.ParseMonth(monthStr)
		if err != nil {
			return nil, fmt.Errorf("stored ledger month %q: %w", monthStr, err)
		}
		ledger[month] = core.Money{Cents: amountCents}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger rows: %w", err)
	}
	// Schema CHECKs should make this unreachable; reject hand-edited rows.
	if err := ledger.Validate(); err != nil {
		return nil, fmt.Errorf("stored ledger: %w", err)
	}
	return ledger, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPurchase(row rowScanner) (core.Purchase, error) {
	var p core.Purchase
	var dateStr string
	if err := row.Scan(&p.ID, &p.Name, &p.Amount.Cents, &dateStr, &p.Installments, &p.MonthlyPayment.Cents); err != nil {
		return core.Purchase{}, err
	}
	date, err := core.ParseDate(dateStr)
	if err != nil {
		return core.Purchase{}, fmt.Errorf("stored purchase date %q: %w", dateStr, err)
	}
	p.Date = date
	return p, nil
}

func collectPurchases(rows *sql.Rows) ([]core.Purchase, error) {
	var purchases []core.Purchase
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase row: %w", err)
		}
		purchases = append(purchases, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate purchase rows: %w", err)
	}
	return purchases, nil
}
