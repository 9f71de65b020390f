package worker

import (
	"context"
	"log"

	"github.com/iamblessed-asd/order-api/internal/broker"
	"github.com/iamblessed-asd/order-api/internal/models"
	"github.com/iamblessed-asd/order-api/internal/util"

	"go.uber.org/zap"
)

// StockAlertWorker consumes ItemAdded events and flags items whose
// remaining stock has fallen to or below the configured threshold.
type StockAlertWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
	threshold    int
	logger       *zap.Logger
}

// NewStockAlertWorker creates a new stock alert worker
func NewStockAlertWorker(consumer *broker.Consumer, threshold int) *StockAlertWorker {
	w := &StockAlertWorker{
		consumer:  consumer,
		threshold: threshold,
		logger:    util.GetLogger(),
	}

	eventHandler := broker.NewEventHandler()
	eventHandler.OnItemAdded(w.handleItemAdded)
	w.eventHandler = eventHandler

	return w
}

// Start starts the worker
func (w *StockAlertWorker) Start(ctx context.Context) error {
	log.Println("Starting stock alert worker...")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *StockAlertWorker) Stop() error {
	log.Println("Stopping stock alert worker...")
	return w.consumer.Close()
}

// handleItemAdded raises an alert when an addition leaves an item low on stock
func (w *StockAlertWorker) handleItemAdded(ctx context.Context, event *models.ItemAddedEvent) error {
	if event.RemainingStock > w.threshold {
		return nil
	}

	util.StockAlertsTotal.Inc()
	w.logger.Warn("Item low on stock",
		zap.Int64("item_id", event.ItemID),
		zap.Int64("order_id", event.OrderID),
		zap.Int("remaining_stock", event.RemainingStock),
		zap.Int("threshold", w.threshold))
	return nil
}
