package dto

type RecordTransactionInput struct {
	// Kind is "purchase" or "sale".
	Kind      string
	ProductID int64
	Quantity  any
	UnitPrice any
	// Note is stored as the supplier of a purchase or the customer of a sale.
	Note string
}
