package export

import (
	"context"

	"rate/internal/core"
)

// PurchaseExporter pushes one purchase to an external destination and
// returns a reference to where it landed (e.g. a spreadsheet row range).
type PurchaseExporter interface {
	ExportPurchase(ctx context.Context, p core.Purchase) (ref string, err error)
}
