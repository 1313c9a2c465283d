package model

import "github.com/shopspring/decimal"

// DailySummary aggregates both logs for one calendar date (YYYY-MM-DD).
type DailySummary struct {
	Date           string          `json:"date"`
	TotalSales     decimal.Decimal `json:"total_sales"`
	TotalPurchases decimal.Decimal `json:"total_purchases"`
	Profit         decimal.Decimal `json:"profit"`
}

type Totals struct {
	TotalSales     decimal.Decimal `json:"total_sales"`
	TotalPurchases decimal.Decimal `json:"total_purchases"`
	Profit         decimal.Decimal `json:"profit"`
}
