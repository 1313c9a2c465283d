package repository

import (
	"context"

	"github.com/fekuna/omnipos-ledger/internal/apperror"
	inventoryrepo "github.com/fekuna/omnipos-ledger/internal/inventory/repository"
	"github.com/fekuna/omnipos-ledger/internal/model"
	"github.com/jmoiron/sqlx"
)

type SQLiteRepository struct {
	DB *sqlx.DB
}

func NewSQLiteRepository(db *sqlx.DB) *SQLiteRepository {
	return &SQLiteRepository{DB: db}
}

func (r *SQLiteRepository) CreatePurchase(ctx context.Context, p *model.Purchase, stock int64, movement *model.StockMovement) error {
	query := `
        INSERT INTO purchases (product_id, quantity, purchase_price, supplier, timestamp)
        VALUES (:product_id, :quantity, :purchase_price, :supplier, :timestamp)
    `
	id, err := r.applyWithStock(ctx, "purchase", query, p, p.ProductID, stock, movement)
	if err != nil {
		return err
	}
	p.ID = id
	return nil
}

func (r *SQLiteRepository) CreateSale(ctx context.Context, s *model.Sale, stock int64, movement *model.StockMovement) error {
	query := `
        INSERT INTO sales (product_id, quantity, sale_price, customer, timestamp)
        VALUES (:product_id, :quantity, :sale_price, :customer, :timestamp)
    `
	id, err := r.applyWithStock(ctx, "sale", query, s, s.ProductID, stock, movement)
	if err != nil {
		return err
	}
	s.ID = id
	return nil
}

// applyWithStock runs insert, stock update and movement log in one
// transaction. Nothing is written unless all three succeed.
func (r *SQLiteRepository) applyWithStock(ctx context.Context, entity, insertQuery string, row interface{}, productID, stock int64, movement *model.StockMovement) (int64, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return 0, apperror.StoreIO("begin "+entity, err)
	}
	defer tx.Rollback()

	res, err := tx.NamedExecContext(ctx, insertQuery, row)
	if err != nil {
		return 0, apperror.StoreIO("insert "+entity, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, apperror.StoreIO("insert "+entity, err)
	}

	if err := inventoryrepo.SetStock(ctx, tx, productID, stock); err != nil {
		return 0, err
	}

	if movement != nil {
		movement.ReferenceID = &id
		if err := inventoryrepo.InsertMovement(ctx, tx, movement); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, apperror.StoreIO("commit "+entity, err)
	}
	return id, nil
}

func (r *SQLiteRepository) ListPurchases(ctx context.Context) ([]model.PurchaseEntry, error) {
	items := []model.PurchaseEntry{}
	query := `
        SELECT p.id, p.product_id, p.quantity, p.purchase_price,
               COALESCE(p.supplier, '') AS supplier, p.timestamp,
               pr.name AS product_name, pr.code AS product_code
        FROM purchases p
        JOIN products pr ON pr.id = p.product_id
        ORDER BY p.timestamp DESC, p.id DESC
    `
	if err := r.DB.SelectContext(ctx, &items, query); err != nil {
		return nil, apperror.StoreIO("select purchases", err)
	}
	return items, nil
}

func (r *SQLiteRepository) ListSales(ctx context.Context) ([]model.SaleEntry, error) {
	items := []model.SaleEntry{}
	query := `
        SELECT s.id, s.product_id, s.quantity, s.sale_price,
               COALESCE(s.customer, '') AS customer, s.timestamp,
               pr.name AS product_name, pr.code AS product_code
        FROM sales s
        JOIN products pr ON pr.id = s.product_id
        ORDER BY s.timestamp DESC, s.id DESC
    `
	if err := r.DB.SelectContext(ctx, &items, query); err != nil {
		return nil, apperror.StoreIO("select sales", err)
	}
	return items, nil
}
