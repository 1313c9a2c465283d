package inventory

import (
	"context"

	"github.com/fekuna/omnipos-ledger/internal/inventory/dto"
	"github.com/fekuna/omnipos-ledger/internal/model"
)

type UseCase interface {
	AdjustStock(ctx context.Context, input *dto.AdjustStockInput) (*model.Product, error)
	ListLowStock(ctx context.Context, threshold int64) ([]model.Product, error)
	ListMovements(ctx context.Context, productID int64) ([]model.StockMovement, error)
}
