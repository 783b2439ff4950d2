package orders

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"zwmart/models"

	"github.com/redis/go-redis/v9"
)

type fakeEventWriter struct {
	written []models.OrderEvent
	err     error
}

func (f *fakeEventWriter) WriteJSON(v interface{}) error {
	if f.err != nil {
		return f.err
	}
	f.written = append(f.written, v.(models.OrderEvent))
	return nil
}

func eventMessage(t *testing.T, ev models.OrderEvent) *redis.Message {
	t.Helper()
	data, err := json.Marshal(ev)
	if err != nil {
		t.Fatal(err)
	}
	return &redis.Message{Payload: string(data)}
}

func runForward(ctx context.Context, conn eventWriter, events <-chan *redis.Message, buyerID string) chan struct{} {
	done := make(chan struct{})
	go func() {
		forwardEvents(ctx, conn, events, buyerID)
		close(done)
	}()
	return done
}

func waitDone(t *testing.T, done chan struct{}, why string) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("forwardEvents did not return after %s", why)
	}
}

func TestForwardEventsFiltersByBuyer(t *testing.T) {
	events := make(chan *redis.Message, 2)
	events <- eventMessage(t, models.OrderEvent{OrderID: "ord-1", BuyerID: "someone-else", To: "processing"})
	events <- eventMessage(t, models.OrderEvent{OrderID: "ord-2", BuyerID: "u1", To: "shipped"})
	close(events)

	w := &fakeEventWriter{}
	done := runForward(context.Background(), w, events, "u1")
	waitDone(t, done, "event source closed")

	if len(w.written) != 1 {
		t.Fatalf("expected 1 forwarded event, got %d", len(w.written))
	}
	if w.written[0].OrderID != "ord-2" || w.written[0].To != "shipped" {
		t.Fatalf("wrong event forwarded: %+v", w.written[0])
	}
}

func TestForwardEventsExitsOnCancel(t *testing.T) {
	// A cancelled context must unblock the loop even when no event for this
	// buyer ever arrives — this is the disconnect path fed by the reader
	// pump in OrderUpdates.
	ctx, cancel := context.WithCancel(context.Background())
	events := make(chan *redis.Message)

	done := runForward(ctx, &fakeEventWriter{}, events, "u1")
	cancel()
	waitDone(t, done, "context cancellation")
}

func TestForwardEventsExitsOnWriteError(t *testing.T) {
	events := make(chan *redis.Message, 1)
	events <- eventMessage(t, models.OrderEvent{OrderID: "ord-1", BuyerID: "u1", To: "processing"})

	w := &fakeEventWriter{err: errors.New("connection reset")}
	done := runForward(context.Background(), w, events, "u1")
	waitDone(t, done, "write failure")
}

func TestForwardEventsSkipsMalformedPayload(t *testing.T) {
	events := make(chan *redis.Message, 2)
	events <- &redis.Message{Payload: "{not json"}
	events <- eventMessage(t, models.OrderEvent{OrderID: "ord-1", BuyerID: "u1", To: "processing"})
	close(events)

	w := &fakeEventWriter{}
	done := runForward(context.Background(), w, events, "u1")
	waitDone(t, done, "event source closed")

	if len(w.written) != 1 || w.written[0].OrderID != "ord-1" {
		t.Fatalf("expected the valid event only, got %+v", w.written)
	}
}
