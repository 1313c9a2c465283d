package inventory

import (
	"context"

	"github.com/fekuna/omnipos-ledger/internal/model"
)

type Repository interface {
	// AdjustStockWithMovement sets the absolute stock and logs the movement
	// in one transaction.
	AdjustStockWithMovement(ctx context.Context, productID, stock int64, movement *model.StockMovement) error
	ListMovements(ctx context.Context, productID int64) ([]model.StockMovement, error)
	ListLowStock(ctx context.Context, threshold int64) ([]model.Product, error)
}
