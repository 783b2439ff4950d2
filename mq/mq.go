package mq

import (
	"context"
	"encoding/json"
	"log"

	"zwmart/models"
	"zwmart/rdx"
)

// OrderEventsChannel carries order status change notifications.
const OrderEventsChannel = "order-events"

// EmitOrderEvent publishes a status change to Redis. Emission is best-effort:
// a failed publish is logged and never blocks the transition that caused it.
func EmitOrderEvent(ctx context.Context, ev models.OrderEvent) {
	if rdx.Conn == nil {
		return
	}

	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("[mq] failed to marshal order event: %v", err)
		return
	}

	if err := rdx.Conn.Publish(ctx, OrderEventsChannel, data).Err(); err != nil {
		log.Printf("[mq] failed to publish order event: %v", err)
	}
}

// StartNotificationWorker consumes order events and dispatches user-facing
// notifications. Runs until the subscription channel closes.
func StartNotificationWorker() {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, OrderEventsChannel)
	ch := sub.Channel()

	log.Println("[NotificationWorker] Listening for order events...")

	for msg := range ch {
		var ev models.OrderEvent
		if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
			log.Printf("[NotificationWorker] Failed to parse event: %v", err)
			continue
		}
		// TODO: hook up the email dispatcher once the template set lands.
		log.Printf("[NotificationWorker] order %s for %s: %s -> %s", ev.OrderID, ev.BuyerID, ev.From, ev.To)
	}
}
