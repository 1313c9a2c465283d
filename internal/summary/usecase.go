package summary

import (
	"context"

	"github.com/fekuna/omnipos-ledger/internal/model"
)

type UseCase interface {
	DailySummary(ctx context.Context) ([]model.DailySummary, error)
	Totals(ctx context.Context) (*model.Totals, error)
}
