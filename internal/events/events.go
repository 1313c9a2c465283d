// Package events carries in-process ledger notifications.
package events

import (
	"github.com/asaskevich/EventBus"
	"github.com/fekuna/omnipos-ledger/internal/model"
)

const TopicStockChanged = "stock.changed"

// StockChanged is published after a stock change has been committed.
type StockChanged struct {
	ProductID    int64
	ProductCode  string
	MovementType model.MovementType
	Before       int64
	After        int64
}

// Publisher is the side of the bus the use cases see.
type Publisher interface {
	PublishStockChanged(ev StockChanged)
}

type Bus struct {
	bus EventBus.Bus
}

var _ Publisher = (*Bus)(nil)

func NewBus() *Bus {
	return &Bus{bus: EventBus.New()}
}

func (b *Bus) PublishStockChanged(ev StockChanged) {
	b.bus.Publish(TopicStockChanged, ev)
}

// SubscribeStockChanged registers fn to run asynchronously, one event at a time.
func (b *Bus) SubscribeStockChanged(fn func(ev StockChanged)) error {
	return b.bus.SubscribeAsync(TopicStockChanged, fn, true)
}

func (b *Bus) UnsubscribeStockChanged(fn func(ev StockChanged)) error {
	return b.bus.Unsubscribe(TopicStockChanged, fn)
}

// Wait blocks until every asynchronous handler has returned.
func (b *Bus) Wait() {
	b.bus.WaitAsync()
}

type nopPublisher struct{}

func (nopPublisher) PublishStockChanged(StockChanged) {}

// Nop discards every event.
func Nop() Publisher { return nopPublisher{} }
