// Package store owns the embedded database file: schema, lifecycle and the
// single logical writer through which every mutation is serialized.
package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/fekuna/omnipos-ledger/internal/apperror"
	"github.com/fekuna/omnipos-ledger/internal/database/sqlite"
	"github.com/fekuna/omnipos-ledger/internal/logger"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

var ErrClosed = errors.New("store is closed")

// Writer runs mutations one at a time.
type Writer interface {
	Exclusive(ctx context.Context, fn func(ctx context.Context) error) error
}

type Config struct {
	Path          string
	BusyTimeoutMS int
	MaxOpenConns  int
	RetryAttempts int
	RetryBackoff  time.Duration
}

type Store struct {
	DB     *sqlx.DB
	path   string
	cfg    Config
	writer sync.Mutex
	logger logger.ZapLogger
	closed bool
}

var _ Writer = (*Store)(nil)

// Open opens or creates the store file and ensures the schema exists.
// Failures are StoreIO errors tagged as fatal.
func Open(ctx context.Context, cfg *Config, log logger.ZapLogger) (*Store, error) {
	db, err := sqlite.NewSQLite(&sqlite.Config{
		Path:          cfg.Path,
		BusyTimeoutMS: cfg.BusyTimeoutMS,
		MaxOpenConns:  cfg.MaxOpenConns,
	})
	if err != nil {
		return nil, apperror.StoreIO(apperror.OpInitialize, err)
	}

	s := &Store{
		DB:     db,
		path:   cfg.Path,
		cfg:    *cfg,
		logger: log.With(zap.String("store", cfg.Path)),
	}
	if s.cfg.RetryAttempts <= 0 {
		s.cfg.RetryAttempts = 1
	}

	if err := s.Initialize(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Path returns the store file location.
func (s *Store) Path() string { return s.path }

// Initialize creates any missing table or index. Safe on a populated store.
func (s *Store) Initialize(ctx context.Context) error {
	err := s.Exclusive(ctx, func(ctx context.Context) error {
		tx, err := s.DB.BeginTxx(ctx, nil)
		if err != nil {
			return err
		}
		defer tx.Rollback()

		for _, stmt := range schemaDDL {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return err
			}
		}
		return tx.Commit()
	})
	if err != nil {
		s.logger.Error("failed to initialize store", zap.Error(err))
		return apperror.StoreIO(apperror.OpInitialize, err)
	}
	s.logger.Info("store initialized", zap.Strings("tables", Tables))
	return nil
}

// ResetAll deletes every row of every table in dependency order. The
// caller is responsible for obtaining operator confirmation first.
func (s *Store) ResetAll(ctx context.Context) error {
	err := s.Exclusive(ctx, func(ctx context.Context) error {
		tx, err := s.DB.BeginTxx(ctx, nil)
		if err != nil {
			return err
		}
		defer tx.Rollback()

		for _, table := range resetOrder {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				return err
			}
		}
		return tx.Commit()
	})
	if err != nil {
		s.logger.Error("failed to reset store", zap.Error(err))
		return apperror.StoreIO("reset", err)
	}
	s.logger.Warn("store reset, all rows deleted")
	return nil
}

// Close waits for an in-flight mutation, folds the WAL into the main file
// and releases the handle. Calling Close twice is a no-op.
func (s *Store) Close() error {
	s.writer.Lock()
	defer s.writer.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	if _, err := s.DB.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		s.logger.Warn("wal checkpoint failed", zap.Error(err))
	}
	if err := s.DB.Close(); err != nil {
		s.logger.Error("failed to close store", zap.Error(err))
		return apperror.StoreIO(apperror.OpClose, err)
	}
	s.logger.Info("store closed")
	return nil
}

// Exclusive runs fn as the only mutation in flight. A context cancelled
// before fn starts aborts with the context error; once fn starts it runs
// to completion detached from cancellation. Lock contention inside fn is
// retried as a whole.
func (s *Store) Exclusive(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return apperror.Cancelled(err)
	}

	s.writer.Lock()
	defer s.writer.Unlock()

	if err := ctx.Err(); err != nil {
		return apperror.Cancelled(err)
	}
	if s.closed {
		return apperror.StoreIO("exclusive", ErrClosed)
	}

	return s.retry(context.WithoutCancel(ctx), fn)
}

func (s *Store) retry(ctx context.Context, fn func(ctx context.Context) error) error {
	var err error
	for attempt := 1; attempt <= s.cfg.RetryAttempts; attempt++ {
		err = fn(ctx)
		if err == nil || !isTransient(err) {
			return err
		}
		s.logger.Warn("store busy, retrying",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", s.cfg.RetryAttempts),
			zap.Error(err),
		)
		if attempt < s.cfg.RetryAttempts {
			time.Sleep(s.cfg.RetryBackoff)
		}
	}
	return err
}
