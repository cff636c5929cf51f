// Package store defines the ports the core's callers use to persist the two
// stateful records: the purchase list and the monthly ledger.
package store

import (
	"context"

	"rate/internal/core"
)

type (
	// PurchaseStore persists the append-only purchase list.
	PurchaseStore interface {
		AppendPurchase(ctx context.Context, p core.Purchase) error
		ListPurchases(ctx context.Context) ([]core.Purchase, error)
	}

	// LedgerStore persists the month -> amount ledger. Implementations must
	// serialize IncrementMonth calls against each other: the read-increment-
	// write cycle must not lose updates.
	LedgerStore interface {
		ReadLedger(ctx context.Context) (core.Ledger, error)
		// IncrementMonth adds amount to the month's total and returns the
		// new value.
		IncrementMonth(ctx context.Context, m core.Month, amount core.Money) (core.Money, error)
		// ReplaceMonth sets the month's total to max(0, amount) and returns
		// the stored value.
		ReplaceMonth(ctx context.Context, m core.Month, amount core.Money) (core.Money, error)
	}

	// SnapshotReader returns both records from a single consistent point in
	// time; a schedule computation must never observe a half-applied write.
	SnapshotReader interface {
		Snapshot(ctx context.Context) ([]core.Purchase, core.Ledger, error)
	}

	// Store is the full backing-store surface the service layer runs on.
	Store interface {
		PurchaseStore
		LedgerStore
		SnapshotReader
	}
)
