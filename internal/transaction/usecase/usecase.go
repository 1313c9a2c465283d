package usecase

import (
	"context"
	"math"
	"time"

	"github.com/fekuna/omnipos-ledger/internal/apperror"
	"github.com/fekuna/omnipos-ledger/internal/events"
	"github.com/fekuna/omnipos-ledger/internal/form"
	"github.com/fekuna/omnipos-ledger/internal/logger"
	"github.com/fekuna/omnipos-ledger/internal/model"
	"github.com/fekuna/omnipos-ledger/internal/product"
	"github.com/fekuna/omnipos-ledger/internal/store"
	"github.com/fekuna/omnipos-ledger/internal/transaction"
	"github.com/fekuna/omnipos-ledger/internal/transaction/dto"
	"go.uber.org/zap"
)

type transactionUseCase struct {
	repo      transaction.Repository
	products  product.Repository
	writer    store.Writer
	publisher events.Publisher
	logger    logger.ZapLogger
	now       func() time.Time
}

func NewTransactionUseCase(repo transaction.Repository, products product.Repository, writer store.Writer, publisher events.Publisher, log logger.ZapLogger) transaction.UseCase {
	return &transactionUseCase{
		repo:      repo,
		products:  products,
		writer:    writer,
		publisher: publisher,
		logger:    log,
		now:       time.Now,
	}
}

// RecordTransaction applies a purchase or a sale to the product stock. The
// stock read, the check and the write happen under the store writer, so two
// sales can never both pass against the same units.
func (uc *transactionUseCase) RecordTransaction(ctx context.Context, input *dto.RecordTransactionInput) (*model.TransactionRecord, error) {
	var (
		record *model.TransactionRecord
		code   string
		before int64
	)
	err := uc.writer.Exclusive(ctx, func(ctx context.Context) error {
		p, err := uc.products.FindByID(ctx, input.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return apperror.NotFound("product", input.ProductID)
		}

		quantity, err := form.PositiveInt("quantity", input.Quantity)
		if err != nil {
			return err
		}
		unitPrice, err := form.NonNegativeDecimal("unit_price", input.UnitPrice)
		if err != nil {
			return err
		}
		note, err := form.Text("note", input.Note)
		if err != nil {
			return err
		}
		kind, err := model.ParseTransactionKind(input.Kind)
		if err != nil {
			return apperror.InvalidTransactionType(input.Kind)
		}

		ts := model.NewTimestamp(uc.now())
		code = p.Code
		before = p.Stock
		record = &model.TransactionRecord{
			Kind:      kind,
			ProductID: p.ID,
			Quantity:  quantity,
			UnitPrice: unitPrice,
			Note:      note,
			Timestamp: ts,
		}

		switch kind {
		case model.KindPurchase:
			if quantity > math.MaxInt64-before {
				return apperror.Validation("quantity", "would overflow stock")
			}
			record.StockAfter = before + quantity
			purchase := &model.Purchase{
				ProductID: p.ID,
				Quantity:  quantity,
				UnitPrice: unitPrice,
				Supplier:  note,
				Timestamp: ts,
			}
			movement := model.NewStockMovement(p.ID, model.MovementPurchase, before, record.StockAfter, note, ts.Time)
			if err := uc.repo.CreatePurchase(ctx, purchase, record.StockAfter, movement); err != nil {
				return err
			}
			record.ID = purchase.ID
		case model.KindSale:
			if before < quantity {
				return apperror.InsufficientStock(before)
			}
			record.StockAfter = before - quantity
			sale := &model.Sale{
				ProductID: p.ID,
				Quantity:  quantity,
				UnitPrice: unitPrice,
				Customer:  note,
				Timestamp: ts,
			}
			movement := model.NewStockMovement(p.ID, model.MovementSale, before, record.StockAfter, note, ts.Time)
			if err := uc.repo.CreateSale(ctx, sale, record.StockAfter, movement); err != nil {
				return err
			}
			record.ID = sale.ID
		}
		return nil
	})
	if err != nil {
		uc.logger.Error("failed to record transaction",
			zap.String("kind", input.Kind),
			zap.Int64("product_id", input.ProductID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.logger.Info("transaction recorded",
		zap.String("kind", string(record.Kind)),
		zap.Int64("transaction_id", record.ID),
		zap.Int64("product_id", record.ProductID),
		zap.Int64("quantity", record.Quantity),
		zap.Int64("stock_after", record.StockAfter),
	)

	movementType := model.MovementPurchase
	if record.Kind == model.KindSale {
		movementType = model.MovementSale
	}
	uc.publisher.PublishStockChanged(events.StockChanged{
		ProductID:    record.ProductID,
		ProductCode:  code,
		MovementType: movementType,
		Before:       before,
		After:        record.StockAfter,
	})
	return record, nil
}

func (uc *transactionUseCase) ListPurchases(ctx context.Context) ([]model.PurchaseEntry, error) {
	return uc.repo.ListPurchases(ctx)
}

func (uc *transactionUseCase) ListSales(ctx context.Context) ([]model.SaleEntry, error) {
	return uc.repo.ListSales(ctx)
}
