package transaction

import (
	"context"

	"github.com/fekuna/omnipos-ledger/internal/model"
)

type Repository interface {
	// CreatePurchase inserts the purchase, sets the product stock and logs
	// the movement as one unit. The movement references the new purchase.
	CreatePurchase(ctx context.Context, purchase *model.Purchase, stock int64, movement *model.StockMovement) error
	CreateSale(ctx context.Context, sale *model.Sale, stock int64, movement *model.StockMovement) error

	ListPurchases(ctx context.Context) ([]model.PurchaseEntry, error)
	ListSales(ctx context.Context) ([]model.SaleEntry, error)
}
