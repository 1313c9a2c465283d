package dto

type AdjustStockInput struct {
	ProductID int64
	// Stock is the new absolute value, not a delta.
	Stock any
	Notes string
}
