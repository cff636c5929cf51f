package services

import (
	"context"
	"fmt"

	"rate/internal/core"
	"rate/internal/store"
)

// LedgerService maintains the month -> cash-paid ledger.
type LedgerService struct {
	store store.LedgerStore
}

func NewLedgerService(store store.LedgerStore) *LedgerService {
	return &LedgerService{store: store}
}

// ReadLedger returns the full ledger.
func (s *LedgerService) ReadLedger(ctx context.Context) (core.Ledger, error) {
	return s.store.ReadLedger(ctx)
}

// RecordPayment adds amount to the month's running total and returns the new
// total. Negative amounts are rejected; recording is additive only.
func (s *LedgerService) RecordPayment(ctx context.Context, m core.Month, amount core.Money) (core.Money, error) {
	if err := m.Validate(); err != nil {
		return core.Money{}, err
	}
	if amount.IsNegative() {
		return core.Money{}, core.ErrNegativeAmount
	}

	total, err := s.store.IncrementMonth(ctx, m, amount)
	if err != nil {
		return core.Money{}, fmt.Errorf("record payment: %w", err)
	}
	return total, nil
}

// CorrectMonth overwrites the month's total outright. Negative corrections
// clamp to zero rather than erroring, so an over-correction empties the month.
func (s *LedgerService) CorrectMonth(ctx context.Context, m core.Month, amount core.Money) (core.Money, error) {
	if err := m.Validate(); err != nil {
		return core.Money{}, err
	}

	total, err := s.store.ReplaceMonth(ctx, m, amount)
	if err != nil {
		return core.Money{}, fmt.Errorf("correct month: %w", err)
	}
	return total, nil
}
