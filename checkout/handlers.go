package checkout

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"zwmart/cart"
	"zwmart/db"
	"zwmart/models"
	"zwmart/mq"
	"zwmart/utils"

	"github.com/julienschmidt/httprouter"
)

// InitiateCheckout validates the cart and returns the pre-order summary
// with the delivery fee applied.
func InitiateCheckout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var payload struct {
		Address string `json:"address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Println("InitiateCheckout decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	session, err := BuildSession(userID, payload.Address, cart.Default.StoreFor(userID).Items())
	if err != nil {
		if errors.Is(err, ErrEmptyCart) {
			utils.RespondWithError(w, http.StatusBadRequest, "Cart is empty")
			return
		}
		http.Error(w, "Checkout failed", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, session)
}

// PlaceOrder converts the cart into persisted orders (one per seller) and
// clears the cart on success.
func PlaceOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	var payload struct {
		Address string `json:"address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Println("PlaceOrder decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if payload.Address == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Shipping address is required")
		return
	}

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	store := cart.Default.StoreFor(userID)
	placed, err := OrdersFromCart(userID, payload.Address, store.Items(), time.Now())
	if err != nil {
		if errors.Is(err, ErrEmptyCart) {
			utils.RespondWithError(w, http.StatusBadRequest, "Cart is empty")
			return
		}
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	docs := make([]interface{}, 0, len(placed))
	for _, o := range placed {
		docs = append(docs, o)
	}
	if _, err := db.OrderCollection.InsertMany(ctx, docs); err != nil {
		log.Println("PlaceOrder InsertMany error:", err)
		http.Error(w, "Order creation failed", http.StatusInternalServerError)
		return
	}

	store.Clear()

	for _, o := range placed {
		mq.EmitOrderEvent(ctx, models.OrderEvent{
			OrderID: o.OrderID,
			BuyerID: o.BuyerID,
			From:    "",
			To:      string(o.Status),
			At:      o.CreatedAt,
		})
	}

	utils.RespondWithJSON(w, http.StatusCreated, placed)
}
