package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/iamblessed-asd/order-api/internal/models"

	"github.com/segmentio/kafka-go"
)

// EventPublisher handles publishing domain events
type EventPublisher struct {
	producer *Producer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// PublishItemAdded publishes an ItemAdded event, keyed by order so events
// for one order stay in partition order
func (ep *EventPublisher) PublishItemAdded(ctx context.Context, event *models.ItemAddedEvent) error {
	key := fmt.Sprintf("order-%d", event.OrderID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// EventHandler routes incoming events to registered handlers
type EventHandler struct {
	onItemAdded func(context.Context, *models.ItemAddedEvent) error
}

// NewEventHandler creates a new event handler
func NewEventHandler() *EventHandler {
	return &EventHandler{}
}

// OnItemAdded registers a handler for ItemAdded events
func (eh *EventHandler) OnItemAdded(handler func(context.Context, *models.ItemAddedEvent) error) {
	eh.onItemAdded = handler
}

// HandleMessage routes messages to appropriate handlers
func (eh *EventHandler) HandleMessage(ctx context.Context, msg kafka.Message) error {
	var baseEvent models.BaseEvent
	if err := json.Unmarshal(msg.Value, &baseEvent); err != nil {
		return fmt.Errorf("failed to unmarshal base event: %w", err)
	}

	switch baseEvent.EventType {
	case models.EventTypeItemAdded:
		if eh.onItemAdded != nil {
			var event models.ItemAddedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal ItemAdded event: %w", err)
			}
			return eh.onItemAdded(ctx, &event)
		}

	default:
		log.Printf("Unhandled event type: %s", baseEvent.EventType)
	}

	return nil
}
