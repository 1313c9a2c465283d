package dto

// Numeric fields accept raw operator text or typed numbers.
type AddProductInput struct {
	Code          string
	Name          string
	Category      string
	PurchasePrice any
	SalePrice     any
	Stock         any
}

type EditProductInput struct {
	ID            int64
	Code          string
	Name          string
	Category      string
	PurchasePrice any
	SalePrice     any
	Stock         any
}
