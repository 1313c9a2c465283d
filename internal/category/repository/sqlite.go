package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fekuna/omnipos-ledger/internal/apperror"
	"github.com/fekuna/omnipos-ledger/internal/model"
	"github.com/fekuna/omnipos-ledger/internal/store"
	"github.com/jmoiron/sqlx"
)

type SQLiteRepository struct {
	DB *sqlx.DB
}

func NewSQLiteRepository(db *sqlx.DB) *SQLiteRepository {
	return &SQLiteRepository{DB: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, c *model.Category) error {
	res, err := r.DB.NamedExecContext(ctx, `INSERT INTO categories (name) VALUES (:name)`, c)
	if err != nil {
		if store.IsUniqueViolation(err) {
			return apperror.DuplicateKey("category", "name", c.Name)
		}
		return apperror.StoreIO("insert category", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return apperror.StoreIO("insert category", err)
	}
	c.ID = id
	return nil
}

func (r *SQLiteRepository) FindByID(ctx context.Context, id int64) (*model.Category, error) {
	var category model.Category
	err := r.DB.GetContext(ctx, &category, `SELECT id, name FROM categories WHERE id = ? LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.StoreIO("select category", err)
	}
	return &category, nil
}

func (r *SQLiteRepository) FindAll(ctx context.Context) ([]model.Category, error) {
	categories := []model.Category{}
	if err := r.DB.SelectContext(ctx, &categories, `SELECT id, name FROM categories ORDER BY id ASC`); err != nil {
		return nil, apperror.StoreIO("select categories", err)
	}
	return categories, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, c *model.Category) error {
	_, err := r.DB.NamedExecContext(ctx, `UPDATE categories SET name = :name WHERE id = :id`, c)
	if err != nil {
		if store.IsUniqueViolation(err) {
			return apperror.DuplicateKey("category", "name", c.Name)
		}
		return apperror.StoreIO("update category", err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id); err != nil {
		return apperror.StoreIO("delete category", err)
	}
	return nil
}

func (r *SQLiteRepository) IsNameUnique(ctx context.Context, name string, excludeID int64) (bool, error) {
	var count int
	query := `SELECT count(*) FROM categories WHERE name = ?`
	args := []interface{}{name}
	if excludeID != 0 {
		query += ` AND id != ?`
		args = append(args, excludeID)
	}

	if err := r.DB.GetContext(ctx, &count, query, args...); err != nil {
		return false, apperror.StoreIO("check category name", err)
	}
	return count == 0, nil
}

func (r *SQLiteRepository) CountProducts(ctx context.Context, name string) (int64, error) {
	var count int64
	if err := r.DB.GetContext(ctx, &count, `SELECT count(*) FROM products WHERE category = ?`, name); err != nil {
		return 0, apperror.StoreIO("count category products", err)
	}
	return count, nil
}
