package model

import "github.com/shopspring/decimal"

type Product struct {
	ID   int64  `db:"id" json:"id"`
	Code string `db:"code" json:"code"`
	Name string `db:"name" json:"name"`
	// Category holds the category name, not its id.
	Category      string          `db:"category" json:"category"`
	PurchasePrice decimal.Decimal `db:"purchase_price" json:"purchase_price"`
	SalePrice     decimal.Decimal `db:"sale_price" json:"sale_price"`
	Stock         int64           `db:"stock" json:"stock"`
}
