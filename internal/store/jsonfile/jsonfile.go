// Package jsonfile is the file-backed store: purchases.json and
// payments.json under a data directory, the layout the original deployment
// used. A missing or corrupt file reads as empty state rather than an error,
// so a fresh or damaged data directory never blocks startup.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"rate/internal/core"
)

const (
	purchasesFile = "purchases.json"
	paymentsFile  = "payments.json"
)

// Store guards both records with one mutex, which makes Snapshot trivially
// consistent and serializes ledger increments.
type Store struct {
	mu  sync.Mutex
	dir string
}

func New(dir string) *Store {
	return &Store{dir: dir}
}

// AppendPurchase implements store.PurchaseStore.
func (s *Store) AppendPurchase(ctx context.Context, p core.Purchase) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	purchases := s.readPurchases(ctx)
	purchases = append(purchases, p)
	if err := s.writeJSON(purchasesFile, purchases); err != nil {
		return fmt.Errorf("write purchases: %w", err)
	}
	return nil
}

// ListPurchases implements store.PurchaseStore.
func (s *Store) ListPurchases(ctx context.Context) ([]core.Purchase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readPurchases(ctx), nil
}

// ReadLedger implements store.LedgerStore.
func (s *Store) ReadLedger(ctx context.Context) (core.Ledger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readLedger(ctx), nil
}

// IncrementMonth implements store.LedgerStore.
func (s *Store) IncrementMonth(ctx context.Context, m core.Month, amount core.Money) (core.Money, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ledger := s.readLedger(ctx)
	next := ledger[m].Add(amount)
	ledger[m] = next
	if err := s.writeJSON(paymentsFile, ledger); err != nil {
		return core.Money{}, fmt.Errorf("write ledger: %w", err)
	}
	return next, nil
}

// ReplaceMonth implements store.LedgerStore.
func (s *Store) ReplaceMonth(ctx context.Context, m core.Month, amount core.Money) (core.Money, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if amount.IsNegative() {
		amount = core.Money{}
	}
	ledger := s.readLedger(ctx)
	ledger[m] = amount
	if err := s.writeJSON(paymentsFile, ledger); err != nil {
		return core.Money{}, fmt.Errorf("write ledger: %w", err)
	}
	return amount, nil
}

// Snapshot implements store.SnapshotReader.
func (s *Store) Snapshot(ctx context.Context) ([]core.Purchase, core.Ledger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readPurchases(ctx), s.readLedger(ctx), nil
}

// readPurchases must be called with the lock held.
func (s *Store) readPurchases(ctx context.Context) []core.Purchase {
	var purchases []core.Purchase
	if !s.readJSON(ctx, purchasesFile, &purchases) {
		return nil
	}
	return purchases
}

// readLedger must be called with the lock held.
func (s *Store) readLedger(ctx context.Context) core.Ledger {
	ledger := core.Ledger{}
	if !s.readJSON(ctx, paymentsFile, &ledger) {
		return core.Ledger{}
	}
	if ledger == nil {
		ledger = core.Ledger{}
	}
	// Same tolerant-read policy as a corrupt file: a ledger that violates
	// its own invariants never reaches a computation.
	if err := ledger.Validate(); err != nil {
		slog.WarnContext(ctx, "Invalid record file, treating as empty", "file", paymentsFile, "error", err)
		return core.Ledger{}
	}
	return ledger
}

// readJSON loads a record file into out. Tolerant-read policy: a missing or
// unparseable file reports false and the caller falls back to empty state.
func (s *Store) readJSON(ctx context.Context, name string, out any) bool {
	raw, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if !os.IsNotExist(err) {
			slog.WarnContext(ctx, "Unreadable record file, treating as empty", "file", name, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		slog.WarnContext(ctx, "Corrupt record file, treating as empty", "file", name, "error", err)
		return false
	}
	return true
}

// writeJSON persists a record atomically: temp file in the same directory,
// then rename, so a crash mid-write never leaves a half-written record.
func (s *Store) writeJSON(name string, v any) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}

	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}
