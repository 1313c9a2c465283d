package product

import (
	"context"

	"github.com/fekuna/omnipos-ledger/internal/model"
	"github.com/fekuna/omnipos-ledger/internal/product/dto"
)

type UseCase interface {
	AddProduct(ctx context.Context, input *dto.AddProductInput) (*model.Product, error)
	GetProduct(ctx context.Context, id int64) (*model.Product, error)
	ListProducts(ctx context.Context) ([]model.Product, error)
	SearchProducts(ctx context.Context, query string) ([]model.Product, error)
	EditProduct(ctx context.Context, input *dto.EditProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}
