package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"rate/internal/core"
	applog "rate/internal/log"
	"rate/internal/store"
)

// SyncPublisher publishes a message asking the export worker to pick up a
// newly stored purchase. Nil-able: the service degrades to local-only storage.
type SyncPublisher interface {
	PublishPurchaseSync(ctx context.Context, purchaseID string) error
}

// PurchaseService registers purchases: classifies the amount into its
// installment plan, persists the record, and notifies the sync pipeline.
type PurchaseService struct {
	store     store.PurchaseStore
	publisher SyncPublisher
}

func NewPurchaseService(store store.PurchaseStore, publisher SyncPublisher) *PurchaseService {
	return &PurchaseService{
		store:     store,
		publisher: publisher,
	}
}

// CreatePurchase validates the input, derives the installment plan, and
// appends the purchase. The plan is computed once here and never recomputed.
// A failed sync publish is logged but does not fail the request; the worker's
// startup check picks up anything that was missed.
func (s *PurchaseService) CreatePurchase(ctx context.Context, name string, amount core.Money, date core.Date) (core.Purchase, error) {
	installments, monthlyPayment := core.NewPurchasePlan(amount)

	p := core.Purchase{
		ID:             uuid.NewString(),
		Name:           name,
		Amount:         amount,
		Date:           date,
		Installments:   installments,
		MonthlyPayment: monthlyPayment,
	}

	if err := p.Validate(); err != nil {
		return core.Purchase{}, err
	}

	if err := s.store.AppendPurchase(ctx, p); err != nil {
		return core.Purchase{}, fmt.Errorf("save purchase: %w", err)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishPurchaseSync(ctx, p.ID); err != nil {
			slog.ErrorContext(ctx, "Failed to publish sync message",
				applog.FieldPurchaseID, p.ID, applog.FieldError, err)
			// Purchase is saved locally; the worker reconciles later.
		}
	}

	return p, nil
}

// ListPurchases returns all stored purchases.
func (s *PurchaseService) ListPurchases(ctx context.Context) ([]core.Purchase, error) {
	return s.store.ListPurchases(ctx)
}
