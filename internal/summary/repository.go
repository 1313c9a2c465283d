package summary

import (
	"context"

	"github.com/fekuna/omnipos-ledger/internal/model"
)

// Repository reads the raw transaction logs.
type Repository interface {
	ListPurchases(ctx context.Context) ([]model.Purchase, error)
	ListSales(ctx context.Context) ([]model.Sale, error)
}
