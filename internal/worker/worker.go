package worker

import (
	"context"
	"log"

	"storefront-service/internal/broker"
	"storefront-service/internal/service"
)

// FulfillmentWorker re-attempts order fulfillments that failed during
// webhook handling, consuming the retry topic.
type FulfillmentWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
}

// NewFulfillmentWorker creates a new fulfillment retry worker
func NewFulfillmentWorker(consumer *broker.Consumer, fulfillment *service.FulfillmentService) *FulfillmentWorker {
	eventHandler := broker.NewEventHandler()
	eventHandler.OnFulfillmentRequested(fulfillment.HandleRetry)

	return &FulfillmentWorker{
		consumer:     consumer,
		eventHandler: eventHandler,
	}
}

// Start starts the worker
func (w *FulfillmentWorker) Start(ctx context.Context) error {
	log.Println("Starting fulfillment retry worker...")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *FulfillmentWorker) Stop() error {
	log.Println("Stopping fulfillment retry worker...")
	return w.consumer.Close()
}
