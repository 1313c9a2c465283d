package usecase

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/fekuna/omnipos-ledger/internal/events"
	"github.com/fekuna/omnipos-ledger/internal/inventory"
	"github.com/fekuna/omnipos-ledger/internal/inventory/repository"
	"github.com/fekuna/omnipos-ledger/internal/logger"
	prodRepoPkg "github.com/fekuna/omnipos-ledger/internal/product/repository"
	"github.com/fekuna/omnipos-ledger/internal/store"
)

type recordingPublisher struct {
	events []events.StockChanged
}

func (p *recordingPublisher) PublishStockChanged(ev events.StockChanged) {
	p.events = append(p.events, ev)
}

func newTestUseCase(t *testing.T) (inventory.UseCase, *store.Store, *recordingPublisher) {
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
	uc := NewInventoryUseCase(
		repository.NewSQLiteRepository(s.DB),
		prodRepoPkg.NewSQLiteRepository(s.DB),
		s,
		pub,
		logger.NewNop(),
	)
	return uc, s, pub
}

func seedProducts(t *testing.T, s *store.Store, stocks ...int64) {
	t.Helper()
	for i, stock := range stocks {
		_, err := s.DB.Exec(
			`INSERT INTO products (code, name, category, purchase_price, sale_price, stock) VALUES (?, ?, 'General', '1.00', '2.00', ?)`,
			"P"+string(rune('A'+i)), "Item", stock,
		)
		if err != nil {
			t.Fatal(err)
		}
	}
}
