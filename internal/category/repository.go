package category

import (
	"context"

	"github.com/fekuna/omnipos-ledger/internal/model"
)

type Repository interface {
	Create(ctx context.Context, category *model.Category) error
	FindByID(ctx context.Context, id int64) (*model.Category, error)
	FindAll(ctx context.Context) ([]model.Category, error)
	Update(ctx context.Context, category *model.Category) error
	Delete(ctx context.Context, id int64) error

	IsNameUnique(ctx context.Context, name string, excludeID int64) (bool, error)
	// CountProducts counts products whose category field equals name.
	CountProducts(ctx context.Context, name string) (int64, error)
}
