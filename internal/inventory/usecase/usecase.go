package usecase

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-ledger/internal/apperror"
	"github.com/fekuna/omnipos-ledger/internal/events"
	"github.com/fekuna/omnipos-ledger/internal/form"
	"github.com/fekuna/omnipos-ledger/internal/inventory"
	"github.com/fekuna/omnipos-ledger/internal/inventory/dto"
	"github.com/fekuna/omnipos-ledger/internal/logger"
	"github.com/fekuna/omnipos-ledger/internal/model"
	"github.com/fekuna/omnipos-ledger/internal/product"
	"github.com/fekuna/omnipos-ledger/internal/store"
	"go.uber.org/zap"
)

type inventoryUseCase struct {
	repo      inventory.Repository
	products  product.Repository
	writer    store.Writer
	publisher events.Publisher
	logger    logger.ZapLogger
}

func NewInventoryUseCase(repo inventory.Repository, products product.Repository, writer store.Writer, publisher events.Publisher, log logger.ZapLogger) inventory.UseCase {
	return &inventoryUseCase{
		repo:      repo,
		products:  products,
		writer:    writer,
		publisher: publisher,
		logger:    log,
	}
}

// AdjustStock sets a product's stock to an exact value and logs the
// difference as an adjustment movement.
func (uc *inventoryUseCase) AdjustStock(ctx context.Context, input *dto.AdjustStockInput) (*model.Product, error) {
	stock, err := form.NonNegativeInt("stock", input.Stock)
	if err != nil {
		return nil, err
	}
	notes, err := form.Text("notes", input.Notes)
	if err != nil {
		return nil, err
	}

	var (
		p      *model.Product
		before int64
	)
	err = uc.writer.Exclusive(ctx, func(ctx context.Context) error {
		p, err = uc.products.FindByID(ctx, input.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return apperror.NotFound("product", input.ProductID)
		}

		before = p.Stock
		movement := model.NewStockMovement(p.ID, model.MovementAdjustment, before, stock, notes, time.Now())
		if err := uc.repo.AdjustStockWithMovement(ctx, p.ID, stock, movement); err != nil {
			return err
		}
		p.Stock = stock
		return nil
	})
	if err != nil {
		uc.logger.Error("failed to adjust stock", zap.Int64("product_id", input.ProductID), zap.Error(err))
		return nil, err
	}

	uc.logger.Info("stock adjusted",
		zap.Int64("product_id", p.ID),
		zap.Int64("quantity_before", before),
		zap.Int64("quantity_after", p.Stock),
	)
	uc.publisher.PublishStockChanged(events.StockChanged{
		ProductID:    p.ID,
		ProductCode:  p.Code,
		MovementType: model.MovementAdjustment,
		Before:       before,
		After:        p.Stock,
	})
	return p, nil
}

func (uc *inventoryUseCase) ListLowStock(ctx context.Context, threshold int64) ([]model.Product, error) {
	if threshold < 0 {
		return nil, apperror.Validation("threshold", "must not be negative")
	}
	return uc.repo.ListLowStock(ctx, threshold)
}

func (uc *inventoryUseCase) ListMovements(ctx context.Context, productID int64) ([]model.StockMovement, error) {
	p, err := uc.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.NotFound("product", productID)
	}
	return uc.repo.ListMovements(ctx, productID)
}
