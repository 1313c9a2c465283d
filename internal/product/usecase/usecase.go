package usecase

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/fekuna/omnipos-ledger/internal/apperror"
	"github.com/fekuna/omnipos-ledger/internal/events"
	"github.com/fekuna/omnipos-ledger/internal/form"
	"github.com/fekuna/omnipos-ledger/internal/logger"
	"github.com/fekuna/omnipos-ledger/internal/model"
	"github.com/fekuna/omnipos-ledger/internal/product"
	"github.com/fekuna/omnipos-ledger/internal/product/dto"
	"github.com/fekuna/omnipos-ledger/internal/store"
	"go.uber.org/zap"
)

const DefaultSearchLimit = 5

type productUseCase struct {
	repo        product.Repository
	writer      store.Writer
	publisher   events.Publisher
	logger      logger.ZapLogger
	searchLimit int
}

func NewProductUseCase(repo product.Repository, writer store.Writer, publisher events.Publisher, log logger.ZapLogger, searchLimit int) product.UseCase {
	if searchLimit <= 0 {
		searchLimit = DefaultSearchLimit
	}
	return &productUseCase{
		repo:        repo,
		writer:      writer,
		publisher:   publisher,
		logger:      log,
		searchLimit: searchLimit,
	}
}

type productFields struct {
	code          string
	name          string
	category      string
	purchasePrice any
	salePrice     any
	stock         any
}

func (f productFields) parse() (*model.Product, error) {
	code, err := form.RequiredText("code", f.code)
	if err != nil {
		return nil, err
	}
	name, err := form.RequiredText("name", f.name)
	if err != nil {
		return nil, err
	}
	category, err := form.RequiredText("category", f.category)
	if err != nil {
		return nil, err
	}
	purchasePrice, err := form.NonNegativeDecimal("purchase_price", f.purchasePrice)
	if err != nil {
		return nil, err
	}
	salePrice, err := form.NonNegativeDecimal("sale_price", f.salePrice)
	if err != nil {
		return nil, err
	}
	stock, err := form.NonNegativeInt("stock", f.stock)
	if err != nil {
		return nil, err
	}

	return &model.Product{
		Code:          code,
		Name:          name,
		Category:      category,
		PurchasePrice: purchasePrice,
		SalePrice:     salePrice,
		Stock:         stock,
	}, nil
}

func (uc *productUseCase) AddProduct(ctx context.Context, input *dto.AddProductInput) (*model.Product, error) {
	p, err := productFields{
		code:          input.Code,
		name:          input.Name,
		category:      input.Category,
		purchasePrice: input.PurchasePrice,
		salePrice:     input.SalePrice,
		stock:         input.Stock,
	}.parse()
	if err != nil {
		return nil, err
	}

	err = uc.writer.Exclusive(ctx, func(ctx context.Context) error {
		unique, err := uc.repo.IsCodeUnique(ctx, p.Code, 0)
		if err != nil {
			return err
		}
		if !unique {
			return apperror.DuplicateKey("product", "code", p.Code)
		}
		return uc.repo.Create(ctx, p)
	})
	if err != nil {
		uc.logger.Error("failed to add product", zap.String("code", p.Code), zap.Error(err))
		return nil, err
	}

	uc.logger.Info("product added", zap.Int64("product_id", p.ID), zap.String("code", p.Code))
	return p, nil
}

func (uc *productUseCase) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.NotFound("product", id)
	}
	return p, nil
}

func (uc *productUseCase) ListProducts(ctx context.Context) ([]model.Product, error) {
	return uc.repo.FindAll(ctx, &dto.ProductFilters{})
}

// SearchProducts is a quick-pick lookup: code and name match the query as
// given, case-sensitive substrings. The id matches only when the query,
// ignoring surrounding blanks, is an integer literal.
func (uc *productUseCase) SearchProducts(ctx context.Context, query string) ([]model.Product, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return []model.Product{}, nil
	}

	filters := &dto.ProductFilters{
		SearchQuery: query,
		Limit:       uc.searchLimit,
	}
	if id, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		filters.ID = &id
	}

	products, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, err
	}
	uc.logger.Debug("products searched", zap.String("query", query), zap.Int("hits", len(products)))
	return products, nil
}

// EditProduct replaces every field, stock included. A stock change is
// logged as an adjustment movement.
func (uc *productUseCase) EditProduct(ctx context.Context, input *dto.EditProductInput) (*model.Product, error) {
	updated, err := productFields{
		code:          input.Code,
		name:          input.Name,
		category:      input.Category,
		purchasePrice: input.PurchasePrice,
		salePrice:     input.SalePrice,
		stock:         input.Stock,
	}.parse()
	if err != nil {
		return nil, err
	}
	updated.ID = input.ID

	var before int64
	err = uc.writer.Exclusive(ctx, func(ctx context.Context) error {
		p, err := uc.repo.FindByID(ctx, input.ID)
		if err != nil {
			return err
		}
		if p == nil {
			return apperror.NotFound("product", input.ID)
		}

		if p.Code != updated.Code {
			unique, err := uc.repo.IsCodeUnique(ctx, updated.Code, p.ID)
			if err != nil {
				return err
			}
			if !unique {
				return apperror.DuplicateKey("product", "code", updated.Code)
			}
		}

		before = p.Stock
		var movement *model.StockMovement
		if before != updated.Stock {
			movement = model.NewStockMovement(p.ID, model.MovementAdjustment, before, updated.Stock, "product edit", time.Now())
		}
		return uc.repo.Update(ctx, updated, movement)
	})
	if err != nil {
		uc.logger.Error("failed to edit product", zap.Int64("product_id", input.ID), zap.Error(err))
		return nil, err
	}

	uc.logger.Info("product edited", zap.Int64("product_id", updated.ID), zap.String("code", updated.Code))
	if before != updated.Stock {
		uc.publisher.PublishStockChanged(events.StockChanged{
			ProductID:    updated.ID,
			ProductCode:  updated.Code,
			MovementType: model.MovementAdjustment,
			Before:       before,
			After:        updated.Stock,
		})
	}
	return updated, nil
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, id int64) error {
	err := uc.writer.Exclusive(ctx, func(ctx context.Context) error {
		p, err := uc.repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return apperror.NotFound("product", id)
		}

		count, err := uc.repo.CountTransactions(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return apperror.InUse("product", count, "transaction(s)")
		}
		return uc.repo.Delete(ctx, id)
	})
	if err != nil {
		uc.logger.Error("failed to delete product", zap.Int64("product_id", id), zap.Error(err))
		return err
	}

	uc.logger.Info("product deleted", zap.Int64("product_id", id))
	return nil
}
