package repository

import (
	"context"

	"github.com/fekuna/omnipos-ledger/internal/apperror"
	"github.com/fekuna/omnipos-ledger/internal/model"
	"github.com/jmoiron/sqlx"
)

const insertMovementQuery = `
    INSERT INTO stock_movements (
        id, product_id, movement_type, quantity_change,
        quantity_before, quantity_after, reference_id, notes, created_at
    )
    VALUES (
        :id, :product_id, :movement_type, :quantity_change,
        :quantity_before, :quantity_after, :reference_id, :notes, :created_at
    )
`

// InsertMovement logs m through e, which is usually an open transaction.
func InsertMovement(ctx context.Context, e sqlx.ExtContext, m *model.StockMovement) error {
	if _, err := sqlx.NamedExecContext(ctx, e, insertMovementQuery, m); err != nil {
		return apperror.StoreIO("insert stock movement", err)
	}
	return nil
}

// SetStock overwrites the stock of one product.
func SetStock(ctx context.Context, e sqlx.ExecerContext, productID, stock int64) error {
	res, err := e.ExecContext(ctx, `UPDATE products SET stock = ? WHERE id = ?`, stock, productID)
	if err != nil {
		return apperror.StoreIO("update stock", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperror.StoreIO("update stock", err)
	}
	if n == 0 {
		return apperror.NotFound("product", productID)
	}
	return nil
}

type SQLiteRepository struct {
	DB *sqlx.DB
}

func NewSQLiteRepository(db *sqlx.DB) *SQLiteRepository {
	return &SQLiteRepository{DB: db}
}

func (r *SQLiteRepository) AdjustStockWithMovement(ctx context.Context, productID, stock int64, movement *model.StockMovement) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return apperror.StoreIO("begin adjust stock", err)
	}
	defer tx.Rollback()

	if err := SetStock(ctx, tx, productID, stock); err != nil {
		return err
	}
	if movement != nil {
		if err := InsertMovement(ctx, tx, movement); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return apperror.StoreIO("commit adjust stock", err)
	}
	return nil
}

func (r *SQLiteRepository) ListMovements(ctx context.Context, productID int64) ([]model.StockMovement, error) {
	items := []model.StockMovement{}
	query := `
        SELECT id, product_id, movement_type, quantity_change, quantity_before,
               quantity_after, reference_id, notes, created_at
        FROM stock_movements
        WHERE product_id = ?
        ORDER BY created_at DESC, rowid DESC
    `
	if err := r.DB.SelectContext(ctx, &items, query, productID); err != nil {
		return nil, apperror.StoreIO("select stock movements", err)
	}
	return items, nil
}

func (r *SQLiteRepository) ListLowStock(ctx context.Context, threshold int64) ([]model.Product, error) {
	items := []model.Product{}
	query := `
        SELECT id, code, name, category, purchase_price, sale_price, stock
        FROM products
        WHERE stock <= ?
        ORDER BY id ASC
    `
	if err := r.DB.SelectContext(ctx, &items, query, threshold); err != nil {
		return nil, apperror.StoreIO("select low stock", err)
	}
	return items, nil
}
