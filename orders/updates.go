package orders

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"zwmart/middleware"
	"zwmart/models"
	"zwmart/mq"
	"zwmart/rdx"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/redis/go-redis/v9"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true }, // CORS is handled upstream
}

// eventWriter is the slice of *websocket.Conn the forwarding loop needs.
type eventWriter interface {
	WriteJSON(v interface{}) error
}

// OrderUpdates streams the caller's order status changes over a websocket,
// fed by the Redis notification channel. The client authenticates with
// ?token= since websocket upgrades cannot set headers.
func OrderUpdates(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	claims, err := middleware.ValidateRawToken(r.URL.Query().Get("token"))
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("OrderUpdates upgrade error:", err)
		return
	}
	defer conn.Close()

	// The request context does not fire on disconnect once the connection
	// is hijacked, so a reader pump is the only way to notice a gone
	// client: clients send no data frames, but reading is what surfaces
	// close frames and dead TCP connections.
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	sub := rdx.Conn.Subscribe(ctx, mq.OrderEventsChannel)
	defer sub.Close()

	forwardEvents(ctx, conn, sub.Channel(), claims.UserID)
}

// forwardEvents relays this buyer's order events to the client until the
// context is cancelled, the event source closes, or a write fails.
func forwardEvents(ctx context.Context, conn eventWriter, events <-chan *redis.Message, buyerID string) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-events:
			if !ok {
				return
			}
			var ev models.OrderEvent
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				log.Println("OrderUpdates parse error:", err)
				continue
			}
			if ev.BuyerID != buyerID {
				continue
			}
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		}
	}
}
