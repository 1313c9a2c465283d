package dto

type ProductFilters struct {
	// SearchQuery matches code or name as a case-sensitive substring.
	SearchQuery string
	// ID additionally matches one product by identity when set.
	ID    *int64
	Limit int
}
