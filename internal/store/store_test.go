package store

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fekuna/omnipos-ledger/internal/apperror"
	"github.com/fekuna/omnipos-ledger/internal/logger"
)

func openTestStore(t *testing.T, path string) *Store {
	t.Helper()
	s, err := Open(context.Background(), &Config{
		Path:          path,
		BusyTimeoutMS: 1000,
		MaxOpenConns:  1,
		RetryAttempts: 3,
		RetryBackoff:  time.Millisecond,
	}, logger.NewNop())
	if err != nil {
		t.Fatalf("Open(%s) error = %v", path, err)
	}
	return s
}

func countRows(t *testing.T, s *Store, table string) int {
	t.Helper()
	var n int
	if err := s.DB.Get(&n, "SELECT count(*) FROM "+table); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

func TestInitialize_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")
	s := openTestStore(t, path)

	if _, err := s.DB.Exec(`INSERT INTO categories (name) VALUES ('Electronics')`); err != nil {
		t.Fatal(err)
	}
	if err := s.Initialize(context.Background()); err != nil {
		t.Fatalf("second Initialize() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	// Reopening runs Initialize once more against the populated file.
	s = openTestStore(t, path)
	defer s.Close()

	if got := countRows(t, s, "categories"); got != 1 {
		t.Errorf("categories = %d after re-initialize, want 1", got)
	}

	var tables int
	err := s.DB.Get(&tables, `SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name IN ('categories','products','purchases','sales','stock_movements')`)
	if err != nil {
		t.Fatal(err)
	}
	if tables != len(Tables) {
		t.Errorf("found %d ledger tables, want %d", tables, len(Tables))
	}
}

func TestResetAll(t *testing.T) {
	s := openTestStore(t, filepath.Join(t.TempDir(), "ledger.db"))
	defer s.Close()

	stmts := []string{
		`INSERT INTO categories (name) VALUES ('Electronics')`,
		`INSERT INTO products (code, name, category, purchase_price, sale_price, stock) VALUES ('P1', 'Widget', 'Electronics', '10', '15', 5)`,
		`INSERT INTO purchases (product_id, quantity, purchase_price, supplier, timestamp) VALUES (1, 5, '10', '', '2026-01-01T00:00:00.000Z')`,
		`INSERT INTO sales (product_id, quantity, sale_price, customer, timestamp) VALUES (1, 1, '15', '', '2026-01-01T00:00:00.000Z')`,
		`INSERT INTO stock_movements (id, product_id, movement_type, quantity_change, quantity_before, quantity_after, created_at) VALUES ('m1', 1, 'purchase', 5, 0, 5, '2026-01-01T00:00:00.000Z')`,
	}
	for _, stmt := range stmts {
		if _, err := s.DB.Exec(stmt); err != nil {
			t.Fatalf("%s: %v", stmt, err)
		}
	}

	if err := s.ResetAll(context.Background()); err != nil {
		t.Fatalf("ResetAll() error = %v", err)
	}
	for _, table := range Tables {
		if got := countRows(t, s, table); got != 0 {
			t.Errorf("%s has %d rows after reset", table, got)
		}
	}
}

func TestForeignKeysEnforced(t *testing.T) {
	s := openTestStore(t, filepath.Join(t.TempDir(), "ledger.db"))
	defer s.Close()

	_, err := s.DB.Exec(`INSERT INTO sales (product_id, quantity, sale_price, customer, timestamp) VALUES (42, 1, '1', '', '2026-01-01T00:00:00.000Z')`)
	if !IsForeignKeyViolation(err) {
		t.Fatalf("insert with dangling product_id: err = %v, want foreign key violation", err)
	}
}

func TestUniqueViolationDetected(t *testing.T) {
	s := openTestStore(t, filepath.Join(t.TempDir(), "ledger.db"))
	defer s.Close()

	if _, err := s.DB.Exec(`INSERT INTO categories (name) VALUES ('Tools')`); err != nil {
		t.Fatal(err)
	}
	_, err := s.DB.Exec(`INSERT INTO categories (name) VALUES ('Tools')`)
	if !IsUniqueViolation(err) {
		t.Fatalf("err = %v, want unique violation", err)
	}
}

func TestExclusive_CancelledBeforeStart(t *testing.T) {
	s := openTestStore(t, filepath.Join(t.TempDir(), "ledger.db"))
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ran := false
	err := s.Exclusive(ctx, func(context.Context) error {
		ran = true
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if apperror.KindOf(err) != apperror.KindCancelled {
		t.Errorf("KindOf(err) = %v, want cancelled", apperror.KindOf(err))
	}
	if ran {
		t.Error("fn ran although the context was cancelled before start")
	}
}

func TestInitialize_CancelledIsNotFatal(t *testing.T) {
	s := openTestStore(t, filepath.Join(t.TempDir(), "ledger.db"))
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Initialize(ctx)
	if !errors.Is(err, apperror.ErrCancelled) {
		t.Fatalf("err = %v, want cancelled", err)
	}
	if apperror.IsFatal(err) {
		t.Error("a cancelled initialize must not be fatal")
	}
}

func TestExclusive_DetachedOnceStarted(t *testing.T) {
	s := openTestStore(t, filepath.Join(t.TempDir(), "ledger.db"))
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	err := s.Exclusive(ctx, func(ctx context.Context) error {
		cancel()
		_, err := s.DB.ExecContext(ctx, `INSERT INTO categories (name) VALUES ('Late')`)
		return err
	})
	if err != nil {
		t.Fatalf("Exclusive() error = %v", err)
	}
	if got := countRows(t, s, "categories"); got != 1 {
		t.Errorf("categories = %d, want 1", got)
	}
}

func TestExclusive_Serializes(t *testing.T) {
	s := openTestStore(t, filepath.Join(t.TempDir(), "ledger.db"))
	defer s.Close()

	var inFlight, maxInFlight int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Exclusive(context.Background(), func(context.Context) error {
				n := atomic.AddInt32(&inFlight, 1)
				for {
					m := atomic.LoadInt32(&maxInFlight)
					if n <= m || atomic.CompareAndSwapInt32(&maxInFlight, m, n) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				atomic.AddInt32(&inFlight, -1)
				return nil
			})
		}()
	}
	wg.Wait()

	if maxInFlight != 1 {
		t.Errorf("max concurrent mutations = %d, want 1", maxInFlight)
	}
}

func TestClose(t *testing.T) {
	s := openTestStore(t, filepath.Join(t.TempDir(), "ledger.db"))
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	err := s.Exclusive(context.Background(), func(context.Context) error { return nil })
	if !errors.Is(err, apperror.ErrStoreIO) {
		t.Errorf("Exclusive after Close: err = %v, want store io error", err)
	}
}
