package worker

import (
	"context"
	"fmt"
	"log/slog"

	"rate/internal/amqp"
	"rate/internal/core"
	"rate/internal/export"
	applog "rate/internal/log"
)

// SyncStorage is the slice of the SQLite repository the worker needs.
type SyncStorage interface {
	GetPurchase(ctx context.Context, id string) (core.Purchase, error)
	ListPendingSync(ctx context.Context, limit int) ([]core.Purchase, error)
	MarkSynced(ctx context.Context, id string) error
	MarkSyncError(ctx context.Context, id string) error
}

// SyncWorker pushes purchases from SQLite to the spreadsheet exporter.
// AMQP messages drive the fast path; ProcessPending sweeps up anything a lost
// message left behind.
type SyncWorker struct {
	storage   SyncStorage
	exporter  export.PurchaseExporter
	batchSize int
}

func NewSyncWorker(storage SyncStorage, exporter export.PurchaseExporter, batchSize int) *SyncWorker {
	return &SyncWorker{
		storage:   storage,
		exporter:  exporter,
		batchSize: batchSize,
	}
}

// HandlePurchaseSync processes a single purchase sync message from AMQP.
// Returning an error requeues the delivery.
func (w *SyncWorker) HandlePurchaseSync(ctx context.Context, msg *amqp.PurchaseSyncMessage) error {
	slog.InfoContext(ctx, "Processing sync message", applog.FieldPurchaseID, msg.PurchaseID)

	return w.syncPurchase(ctx, msg.PurchaseID)
}

// ProcessPending exports purchases still marked pending. Backup mechanism for
// lost AMQP messages; failures mark the row and move on.
func (w *SyncWorker) ProcessPending(ctx context.Context) error {
	pending, err := w.storage.ListPendingSync(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("list pending purchases: %w", err)
	}

	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending purchases", "count", len(pending))

	for _, p := range pending {
		// syncPurchase marks the row on failure; just log and keep going.
		if err := w.syncPurchase(ctx, p.ID); err != nil {
			slog.ErrorContext(ctx, "Failed to sync pending purchase",
				applog.FieldPurchaseID, p.ID, applog.FieldError, err)
		}
	}

	return nil
}

// StartupSyncCheck runs one pending sweep at boot, catching anything that was
// in flight when the worker last stopped.
func (w *SyncWorker) StartupSyncCheck(ctx context.Context) error {
	slog.InfoContext(ctx, "Running startup sync check")
	return w.ProcessPending(ctx)
}

func (w *SyncWorker) syncPurchase(ctx context.Context, id string) error {
	p, err := w.storage.GetPurchase(ctx, id)
	if err != nil {
		return fmt.Errorf("get purchase from storage: %w", err)
	}

	ref, err := w.exporter.ExportPurchase(ctx, p)
	if err != nil {
		if markErr := w.storage.MarkSyncError(ctx, id); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark sync error",
				applog.FieldPurchaseID, id, applog.FieldError, markErr)
		}
		return fmt.Errorf("export purchase: %w", err)
	}

	if err := w.storage.MarkSynced(ctx, id); err != nil {
		return fmt.Errorf("mark purchase synced: %w", err)
	}

	slog.InfoContext(ctx, "Purchase synced", applog.FieldPurchaseID, id, applog.FieldExportRef, ref)
	return nil
}
