// Package ledger is the engine the application shell talks to. It owns one
// store and wires every registry, catalog and summary use case over it.
package ledger

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-ledger/config"
	"github.com/fekuna/omnipos-ledger/internal/apperror"
	"github.com/fekuna/omnipos-ledger/internal/category"
	catDTO "github.com/fekuna/omnipos-ledger/internal/category/dto"
	catRepoPkg "github.com/fekuna/omnipos-ledger/internal/category/repository"
	catUCPkg "github.com/fekuna/omnipos-ledger/internal/category/usecase"
	"github.com/fekuna/omnipos-ledger/internal/events"
	"github.com/fekuna/omnipos-ledger/internal/inventory"
	invDTO "github.com/fekuna/omnipos-ledger/internal/inventory/dto"
	invListenerPkg "github.com/fekuna/omnipos-ledger/internal/inventory/listener"
	invRepoPkg "github.com/fekuna/omnipos-ledger/internal/inventory/repository"
	invUCPkg "github.com/fekuna/omnipos-ledger/internal/inventory/usecase"
	"github.com/fekuna/omnipos-ledger/internal/logger"
	"github.com/fekuna/omnipos-ledger/internal/model"
	"github.com/fekuna/omnipos-ledger/internal/product"
	prodDTO "github.com/fekuna/omnipos-ledger/internal/product/dto"
	prodRepoPkg "github.com/fekuna/omnipos-ledger/internal/product/repository"
	prodUCPkg "github.com/fekuna/omnipos-ledger/internal/product/usecase"
	"github.com/fekuna/omnipos-ledger/internal/store"
	"github.com/fekuna/omnipos-ledger/internal/summary"
	sumRepoPkg "github.com/fekuna/omnipos-ledger/internal/summary/repository"
	sumUCPkg "github.com/fekuna/omnipos-ledger/internal/summary/usecase"
	"github.com/fekuna/omnipos-ledger/internal/transaction"
	txDTO "github.com/fekuna/omnipos-ledger/internal/transaction/dto"
	txRepoPkg "github.com/fekuna/omnipos-ledger/internal/transaction/repository"
	txUCPkg "github.com/fekuna/omnipos-ledger/internal/transaction/usecase"
	"go.uber.org/zap"
)

type Engine struct {
	store    *store.Store
	bus      *events.Bus
	lowStock *invListenerPkg.LowStockListener
	logger   logger.ZapLogger

	categories   category.UseCase
	products     product.UseCase
	inventory    inventory.UseCase
	transactions transaction.UseCase
	summary      summary.UseCase

	lowStockThreshold int64
}

// Open opens the store named by cfg, creating the file and schema when
// missing. Errors are fatal StoreIO errors.
func Open(ctx context.Context, cfg *config.Config, log logger.ZapLogger) (*Engine, error) {
	loc, err := time.LoadLocation(cfg.Ledger.SummaryLocation)
	if err != nil {
		return nil, apperror.Validation("summary_location", err.Error())
	}

	s, err := store.Open(ctx, &store.Config{
		Path:          cfg.Store.Path,
		BusyTimeoutMS: cfg.Store.BusyTimeoutMS,
		MaxOpenConns:  cfg.Store.MaxOpenConns,
		RetryAttempts: cfg.Store.RetryAttempts,
		RetryBackoff:  time.Duration(cfg.Store.RetryBackoffMS) * time.Millisecond,
	}, log)
	if err != nil {
		return nil, err
	}

	bus := events.NewBus()

	catRepo := catRepoPkg.NewSQLiteRepository(s.DB)
	prodRepo := prodRepoPkg.NewSQLiteRepository(s.DB)
	invRepo := invRepoPkg.NewSQLiteRepository(s.DB)
	txRepo := txRepoPkg.NewSQLiteRepository(s.DB)
	sumRepo := sumRepoPkg.NewSQLiteRepository(s.DB)

	e := &Engine{
		store:             s,
		bus:               bus,
		logger:            log,
		categories:        catUCPkg.NewCategoryUseCase(catRepo, s, log),
		products:          prodUCPkg.NewProductUseCase(prodRepo, s, bus, log, cfg.Ledger.SearchLimit),
		inventory:         invUCPkg.NewInventoryUseCase(invRepo, prodRepo, s, bus, log),
		transactions:      txUCPkg.NewTransactionUseCase(txRepo, prodRepo, s, bus, log),
		summary:           sumUCPkg.NewSummaryUseCase(sumRepo, loc, log),
		lowStockThreshold: cfg.Ledger.LowStockThreshold,
	}

	e.lowStock = invListenerPkg.NewLowStockListener(bus, cfg.Ledger.LowStockThreshold, log)
	if err := e.lowStock.Start(); err != nil {
		log.Warn("low stock listener not started", zap.Error(err))
		e.lowStock = nil
	}

	return e, nil
}

// Initialize ensures the schema exists. Open already does this; calling it
// again is harmless.
func (e *Engine) Initialize(ctx context.Context) error {
	return e.store.Initialize(ctx)
}

// ResetAll deletes every row. The shell must confirm with the operator first.
func (e *Engine) ResetAll(ctx context.Context) error {
	return e.store.ResetAll(ctx)
}

// Close drains pending events and closes the store.
func (e *Engine) Close() error {
	if e.lowStock != nil {
		if err := e.lowStock.Stop(); err != nil {
			e.logger.Warn("failed to stop low stock listener", zap.Error(err))
		}
	}
	e.bus.Wait()
	return e.store.Close()
}

// Events exposes the bus so the shell can observe stock changes.
func (e *Engine) Events() *events.Bus { return e.bus }

func (e *Engine) StorePath() string { return e.store.Path() }

func (e *Engine) LowStockThreshold() int64 { return e.lowStockThreshold }

func (e *Engine) AddCategory(ctx context.Context, name string) (*model.Category, error) {
	return e.categories.CreateCategory(ctx, &catDTO.CreateCategoryInput{Name: name})
}

func (e *Engine) GetCategory(ctx context.Context, id int64) (*model.Category, error) {
	return e.categories.GetCategory(ctx, id)
}

func (e *Engine) ListCategories(ctx context.Context) ([]model.Category, error) {
	return e.categories.ListCategories(ctx)
}

func (e *Engine) RenameCategory(ctx context.Context, id int64, newName string) (*model.Category, error) {
	return e.categories.RenameCategory(ctx, &catDTO.RenameCategoryInput{ID: id, NewName: newName})
}

func (e *Engine) DeleteCategory(ctx context.Context, id int64) error {
	return e.categories.DeleteCategory(ctx, id)
}

func (e *Engine) AddProduct(ctx context.Context, input *prodDTO.AddProductInput) (*model.Product, error) {
	return e.products.AddProduct(ctx, input)
}

func (e *Engine) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	return e.products.GetProduct(ctx, id)
}

// ListProducts is the full inventory listing, id ascending.
func (e *Engine) ListProducts(ctx context.Context) ([]model.Product, error) {
	return e.products.ListProducts(ctx)
}

func (e *Engine) SearchProducts(ctx context.Context, query string) ([]model.Product, error) {
	return e.products.SearchProducts(ctx, query)
}

func (e *Engine) EditProduct(ctx context.Context, input *prodDTO.EditProductInput) (*model.Product, error) {
	return e.products.EditProduct(ctx, input)
}

func (e *Engine) DeleteProduct(ctx context.Context, id int64) error {
	return e.products.DeleteProduct(ctx, id)
}

// AdjustStock sets a product's stock to an absolute value.
func (e *Engine) AdjustStock(ctx context.Context, productID int64, stock any, notes string) (*model.Product, error) {
	return e.inventory.AdjustStock(ctx, &invDTO.AdjustStockInput{ProductID: productID, Stock: stock, Notes: notes})
}

func (e *Engine) ListLowStock(ctx context.Context, threshold int64) ([]model.Product, error) {
	return e.inventory.ListLowStock(ctx, threshold)
}

func (e *Engine) ListMovements(ctx context.Context, productID int64) ([]model.StockMovement, error) {
	return e.inventory.ListMovements(ctx, productID)
}

func (e *Engine) RecordTransaction(ctx context.Context, input *txDTO.RecordTransactionInput) (*model.TransactionRecord, error) {
	return e.transactions.RecordTransaction(ctx, input)
}

func (e *Engine) ListPurchases(ctx context.Context) ([]model.PurchaseEntry, error) {
	return e.transactions.ListPurchases(ctx)
}

func (e *Engine) ListSales(ctx context.Context) ([]model.SaleEntry, error) {
	return e.transactions.ListSales(ctx)
}

func (e *Engine) DailySummary(ctx context.Context) ([]model.DailySummary, error) {
	return e.summary.DailySummary(ctx)
}

func (e *Engine) Totals(ctx context.Context) (*model.Totals, error) {
	return e.summary.Totals(ctx)
}
