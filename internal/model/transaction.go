package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type TransactionKind string

const (
	KindPurchase TransactionKind = "purchase"
	KindSale     TransactionKind = "sale"
)

// ParseTransactionKind accepts the kind names case-insensitively, with
// "compra" and "venta" as aliases.
func ParseTransactionKind(s string) (TransactionKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "purchase", "compra":
		return KindPurchase, nil
	case "sale", "venta":
		return KindSale, nil
	default:
		return "", fmt.Errorf("unknown transaction kind %q", s)
	}
}

type Purchase struct {
	ID        int64           `db:"id" json:"id"`
	ProductID int64           `db:"product_id" json:"product_id"`
	Quantity  int64           `db:"quantity" json:"quantity"`
	UnitPrice decimal.Decimal `db:"purchase_price" json:"unit_price"`
	Supplier  string          `db:"supplier" json:"supplier"`
	Timestamp Timestamp       `db:"timestamp" json:"timestamp"`
}

type Sale struct {
	ID        int64           `db:"id" json:"id"`
	ProductID int64           `db:"product_id" json:"product_id"`
	Quantity  int64           `db:"quantity" json:"quantity"`
	UnitPrice decimal.Decimal `db:"sale_price" json:"unit_price"`
	Customer  string          `db:"customer" json:"customer"`
	Timestamp Timestamp       `db:"timestamp" json:"timestamp"`
}

// PurchaseEntry is a purchase joined with its product's current name and code.
type PurchaseEntry struct {
	Purchase
	ProductName string `db:"product_name" json:"product_name"`
	ProductCode string `db:"product_code" json:"product_code"`
}

// SaleEntry is a sale joined with its product's current name and code.
type SaleEntry struct {
	Sale
	ProductName string `db:"product_name" json:"product_name"`
	ProductCode string `db:"product_code" json:"product_code"`
}

// Amount is quantity times unit price.
func (p Purchase) Amount() decimal.Decimal {
	return p.UnitPrice.Mul(decimal.NewFromInt(p.Quantity))
}

func (s Sale) Amount() decimal.Decimal {
	return s.UnitPrice.Mul(decimal.NewFromInt(s.Quantity))
}

// TransactionRecord is the outcome of recording a purchase or a sale.
type TransactionRecord struct {
	ID        int64           `json:"id"`
	Kind      TransactionKind `json:"kind"`
	ProductID int64           `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Note      string          `json:"note,omitempty"`
	Timestamp Timestamp       `json:"timestamp"`
	// StockAfter is the product stock once the transaction is applied.
	StockAfter int64 `json:"stock_after"`
}
