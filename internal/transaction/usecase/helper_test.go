package usecase

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fekuna/omnipos-ledger/internal/events"
	"github.com/fekuna/omnipos-ledger/internal/logger"
	prodRepoPkg "github.com/fekuna/omnipos-ledger/internal/product/repository"
	"github.com/fekuna/omnipos-ledger/internal/store"
	"github.com/fekuna/omnipos-ledger/internal/transaction/repository"
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

func newTestUseCase(t *testing.T) (*transactionUseCase, *store.Store, *recordingPublisher) {
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
	uc := NewTransactionUseCase(
		repository.NewSQLiteRepository(s.DB),
		prodRepoPkg.NewSQLiteRepository(s.DB),
		s,
		pub,
		logger.NewNop(),
	).(*transactionUseCase)
	return uc, s, pub
}

func seedProduct(t *testing.T, s *store.Store, code string, stock int64) int64 {
	t.Helper()
	res, err := s.DB.Exec(
		`INSERT INTO products (code, name, category, purchase_price, sale_price, stock) VALUES (?, 'Widget', 'Electronics', '10.00', '15.00', ?)`,
		code, stock,
	)
	if err != nil {
		t.Fatal(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatal(err)
	}
	return id
}

func stockOf(t *testing.T, s *store.Store, id int64) int64 {
	t.Helper()
	var stock int64
	if err := s.DB.Get(&stock, `SELECT stock FROM products WHERE id = ?`, id); err != nil {
		t.Fatal(err)
	}
	return stock
}
