package usecase

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fekuna/omnipos-ledger/internal/events"
	"github.com/fekuna/omnipos-ledger/internal/logger"
	"github.com/fekuna/omnipos-ledger/internal/model"
	"github.com/fekuna/omnipos-ledger/internal/product"
	"github.com/fekuna/omnipos-ledger/internal/product/dto"
	"github.com/fekuna/omnipos-ledger/internal/product/repository"
	"github.com/fekuna/omnipos-ledger/internal/store"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.StockChanged
}

func (p *recordingPublisher) PublishStockChanged(ev events.StockChanged) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
}

func newTestUseCase(t *testing.T) (product.UseCase, *store.Store, *recordingPublisher) {
	t.Helper()
	s, err := store.Open(context.Background(), &store.Config{
		Path:          filepath.Join(t.TempDir(), "ledger.db"),
		BusyTimeoutMS: 1000,
		MaxOpenConns:  1,
		RetryAttempts: 3,
		RetryBackoff:  time.Millisecond,
	}, logger.NewNop())
	if err != nil {
		t.Fatalf("store.Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })

	pub := &recordingPublisher{}
	uc := NewProductUseCase(repository.NewSQLiteRepository(s.DB), s, pub, logger.NewNop(), 0)
	return uc, s, pub
}

func mustAddProduct(t *testing.T, uc product.UseCase, code, name string, stock int64) *model.Product {
	t.Helper()
	p, err := uc.AddProduct(context.Background(), &dto.AddProductInput{
		Code:          code,
		Name:          name,
		Category:      "Electronics",
		PurchasePrice: "10.00",
		SalePrice:     "15.00",
		Stock:         stock,
	})
	if err != nil {
		t.Fatalf("AddProduct(%s) error = %v", code, err)
	}
	return p
}
