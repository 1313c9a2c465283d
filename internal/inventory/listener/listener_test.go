package listener

import (
	"testing"

	"github.com/fekuna/omnipos-ledger/internal/events"
	"github.com/fekuna/omnipos-ledger/internal/logger"
	"github.com/fekuna/omnipos-ledger/internal/model"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLowStockListener(t *testing.T) {
	testCases := []struct {
		name     string
		before   int64
		after    int64
		wantWarn bool
	}{
		{"stays above", 20, 10, false},
		{"crosses threshold", 8, 5, true},
		{"falls further", 4, 2, true},
		{"restocked but still low", 1, 3, false},
		{"already low unchanged", 3, 3, false},
		{"restocked above", 2, 30, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.InfoLevel)
			bus := events.NewBus()
			l := NewLowStockListener(bus, 5, logger.Wrap(zap.New(core)))
			if err := l.Start(); err != nil {
				t.Fatal(err)
			}

			bus.PublishStockChanged(events.StockChanged{
				ProductID:    1,
				ProductCode:  "P1",
				MovementType: model.MovementSale,
				Before:       tc.before,
				After:        tc.after,
			})
			bus.Wait()

			warned := logs.FilterLevelExact(zapcore.WarnLevel).Len() == 1
			if warned != tc.wantWarn {
				t.Errorf("warned = %v, want %v", warned, tc.wantWarn)
			}
			if err := l.Stop(); err != nil {
				t.Errorf("Stop() error = %v", err)
			}
		})
	}
}

func TestLowStockListener_StopDetaches(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	bus := events.NewBus()
	l := NewLowStockListener(bus, 5, logger.Wrap(zap.New(core)))
	if err := l.Start(); err != nil {
		t.Fatal(err)
	}
	if err := l.Stop(); err != nil {
		t.Fatal(err)
	}

	bus.PublishStockChanged(events.StockChanged{ProductID: 1, Before: 10, After: 0})
	bus.Wait()

	if logs.Len() != 0 {
		t.Errorf("listener logged %d entries after Stop", logs.Len())
	}
}
