package product

import (
	"context"

	"github.com/fekuna/omnipos-ledger/internal/model"
	"github.com/fekuna/omnipos-ledger/internal/product/dto"
)

type Repository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id int64) (*model.Product, error)
	FindAll(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, error)
	// Update replaces every field. A non-nil movement is logged in the same
	// transaction.
	Update(ctx context.Context, product *model.Product, movement *model.StockMovement) error
	Delete(ctx context.Context, id int64) error

	IsCodeUnique(ctx context.Context, code string, excludeID int64) (bool, error)
	// CountTransactions counts purchases plus sales referencing the product.
	CountTransactions(ctx context.Context, id int64) (int64, error)
}
