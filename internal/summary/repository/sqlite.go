package repository

import (
	"context"

	"github.com/fekuna/omnipos-ledger/internal/apperror"
	"github.com/fekuna/omnipos-ledger/internal/model"
	"github.com/jmoiron/sqlx"
)

type SQLiteRepository struct {
	DB *sqlx.DB
}

func NewSQLiteRepository(db *sqlx.DB) *SQLiteRepository {
	return &SQLiteRepository{DB: db}
}

func (r *SQLiteRepository) ListPurchases(ctx context.Context) ([]model.Purchase, error) {
	items := []model.Purchase{}
	query := `
        SELECT id, product_id, quantity, purchase_price,
               COALESCE(supplier, '') AS supplier, timestamp
        FROM purchases
        ORDER BY timestamp ASC, id ASC
    `
	if err := r.DB.SelectContext(ctx, &items, query); err != nil {
		return nil, apperror.StoreIO("select purchases", err)
	}
	return items, nil
}

func (r *SQLiteRepository) ListSales(ctx context.Context) ([]model.Sale, error) {
	items := []model.Sale{}
	query := `
        SELECT id, product_id, quantity, sale_price,
               COALESCE(customer, '') AS customer, timestamp
        FROM sales
        ORDER BY timestamp ASC, id ASC
    `
	if err := r.DB.SelectContext(ctx, &items, query); err != nil {
		return nil, apperror.StoreIO("select sales", err)
	}
	return items, nil
}
