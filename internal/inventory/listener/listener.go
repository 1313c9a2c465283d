package listener

import (
	"github.com/fekuna/omnipos-ledger/internal/events"
	"github.com/fekuna/omnipos-ledger/internal/logger"
	"go.uber.org/zap"
)

// Subscriber is the side of the event bus the listener needs.
type Subscriber interface {
	SubscribeStockChanged(fn func(ev events.StockChanged)) error
	UnsubscribeStockChanged(fn func(ev events.StockChanged)) error
}

// LowStockListener warns when a stock change leaves a product at or below
// the threshold.
type LowStockListener struct {
	bus       Subscriber
	threshold int64
	logger    logger.ZapLogger
}

func NewLowStockListener(bus Subscriber, threshold int64, logger logger.ZapLogger) *LowStockListener {
	return &LowStockListener{
		bus:       bus,
		threshold: threshold,
		logger:    logger,
	}
}

func (l *LowStockListener) Start() error {
	l.logger.Info("Starting low stock listener", zap.Int64("threshold", l.threshold))
	return l.bus.SubscribeStockChanged(l.handle)
}

func (l *LowStockListener) Stop() error {
	l.logger.Info("Stopping low stock listener")
	return l.bus.UnsubscribeStockChanged(l.handle)
}

func (l *LowStockListener) handle(ev events.StockChanged) {
	if ev.After > l.threshold {
		return
	}
	// Only warn when crossing into low stock or falling further.
	if ev.Before <= l.threshold && ev.After >= ev.Before {
		return
	}
	l.logger.Warn("Product stock is low",
		zap.Int64("product_id", ev.ProductID),
		zap.String("code", ev.ProductCode),
		zap.String("movement_type", string(ev.MovementType)),
		zap.Int64("stock", ev.After),
		zap.Int64("threshold", l.threshold),
	)
}
