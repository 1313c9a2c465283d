package model

import (
	"time"

	"github.com/google/uuid"
)

type MovementType string

const (
	MovementPurchase   MovementType = "purchase"
	MovementSale       MovementType = "sale"
	MovementAdjustment MovementType = "adjustment"
)

// StockMovement is one audited change of a product's stock.
type StockMovement struct {
	ID             string       `db:"id" json:"id"`
	ProductID      int64        `db:"product_id" json:"product_id"`
	MovementType   MovementType `db:"movement_type" json:"movement_type"`
	QuantityChange int64        `db:"quantity_change" json:"quantity_change"`
	QuantityBefore int64        `db:"quantity_before" json:"quantity_before"`
	QuantityAfter  int64        `db:"quantity_after" json:"quantity_after"`
	ReferenceID    *int64       `db:"reference_id" json:"reference_id,omitempty"`
	Notes          string       `db:"notes" json:"notes"`
	CreatedAt      Timestamp    `db:"created_at" json:"created_at"`
}

func NewStockMovement(productID int64, typ MovementType, before, after int64, notes string, at time.Time) *StockMovement {
	return &StockMovement{
		ID:             uuid.New().String(),
		ProductID:      productID,
		MovementType:   typ,
		QuantityChange: after - before,
		QuantityBefore: before,
		QuantityAfter:  after,
		Notes:          notes,
		CreatedAt:      NewTimestamp(at),
	}
}
