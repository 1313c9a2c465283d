package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-ledger/internal/apperror"
	inventoryrepo "github.com/fekuna/omnipos-ledger/internal/inventory/repository"
	"github.com/fekuna/omnipos-ledger/internal/model"
	"github.com/fekuna/omnipos-ledger/internal/product/dto"
	"github.com/fekuna/omnipos-ledger/internal/store"
	"github.com/jmoiron/sqlx"
)

const productColumns = `id, code, name, category, purchase_price, sale_price, stock`

type SQLiteRepository struct {
	DB *sqlx.DB
}

func NewSQLiteRepository(db *sqlx.DB) *SQLiteRepository {
	return &SQLiteRepository{DB: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
        INSERT INTO products (code, name, category, purchase_price, sale_price, stock)
        VALUES (:code, :name, :category, :purchase_price, :sale_price, :stock)
    `
	res, err := r.DB.NamedExecContext(ctx, query, p)
	if err != nil {
		if store.IsUniqueViolation(err) {
			return apperror.DuplicateKey("product", "code", p.Code)
		}
		return apperror.StoreIO("insert product", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return apperror.StoreIO("insert product", err)
	}
	p.ID = id
	return nil
}

func (r *SQLiteRepository) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	var p model.Product
	err := r.DB.GetContext(ctx, &p, `SELECT `+productColumns+` FROM products WHERE id = ? LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.StoreIO("select product", err)
	}
	return &p, nil
}

func (r *SQLiteRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, error) {
	products := []model.Product{}

	conditions := []string{}
	args := map[string]interface{}{}

	if f.SearchQuery != "" {
		// instr is case-sensitive, unlike LIKE.
		conditions = append(conditions, "instr(code, :search) > 0", "instr(name, :search) > 0")
		args["search"] = f.SearchQuery
	}
	if f.ID != nil {
		conditions = append(conditions, "id = :id")
		args["id"] = *f.ID
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " OR ")
	}

	query := "SELECT " + productColumns + " FROM products" + whereClause + " ORDER BY id ASC"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", f.Limit)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, apperror.StoreIO("select products", err)
	}
	defer nstmt.Close()

	if err := nstmt.SelectContext(ctx, &products, args); err != nil {
		return nil, apperror.StoreIO("select products", err)
	}
	return products, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, p *model.Product, movement *model.StockMovement) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return apperror.StoreIO("begin update product", err)
	}
	defer tx.Rollback()

	query := `
        UPDATE products SET
            code = :code,
            name = :name,
            category = :category,
            purchase_price = :purchase_price,
            sale_price = :sale_price,
            stock = :stock
        WHERE id = :id
    `
	res, err := tx.NamedExecContext(ctx, query, p)
	if err != nil {
		if store.IsUniqueViolation(err) {
			return apperror.DuplicateKey("product", "code", p.Code)
		}
		return apperror.StoreIO("update product", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return apperror.StoreIO("update product", err)
	} else if n == 0 {
		return apperror.NotFound("product", p.ID)
	}

	if movement != nil {
		if err := inventoryrepo.InsertMovement(ctx, tx, movement); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return apperror.StoreIO("commit update product", err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id); err != nil {
		return apperror.StoreIO("delete product", err)
	}
	return nil
}

func (r *SQLiteRepository) IsCodeUnique(ctx context.Context, code string, excludeID int64) (bool, error) {
	var count int
	query := `SELECT count(*) FROM products WHERE code = ?`
	args := []interface{}{code}
	if excludeID != 0 {
		query += ` AND id != ?`
		args = append(args, excludeID)
	}

	if err := r.DB.GetContext(ctx, &count, query, args...); err != nil {
		return false, apperror.StoreIO("check product code", err)
	}
	return count == 0, nil
}

func (r *SQLiteRepository) CountTransactions(ctx context.Context, id int64) (int64, error) {
	var count int64
	query := `
        SELECT (SELECT count(*) FROM purchases WHERE product_id = ?)
             + (SELECT count(*) FROM sales WHERE product_id = ?)
    `
	if err := r.DB.GetContext(ctx, &count, query, id, id); err != nil {
		return 0, apperror.StoreIO("count product transactions", err)
	}
	return count, nil
}
