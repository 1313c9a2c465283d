package transaction

import (
	"context"

	"github.com/fekuna/omnipos-ledger/internal/model"
	"github.com/fekuna/omnipos-ledger/internal/transaction/dto"
)

type UseCase interface {
	RecordTransaction(ctx context.Context, input *dto.RecordTransactionInput) (*model.TransactionRecord, error)
	ListPurchases(ctx context.Context) ([]model.PurchaseEntry, error)
	ListSales(ctx context.Context) ([]model.SaleEntry, error)
}
