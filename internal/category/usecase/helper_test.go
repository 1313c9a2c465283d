package usecase

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/fekuna/omnipos-ledger/internal/category"
	"github.com/fekuna/omnipos-ledger/internal/category/repository"
	"github.com/fekuna/omnipos-ledger/internal/logger"
	"github.com/fekuna/omnipos-ledger/internal/store"
)

func newTestUseCase(t *testing.T) (category.UseCase, *store.Store) {
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

	return NewCategoryUseCase(repository.NewSQLiteRepository(s.DB), s, logger.NewNop()), s
}
