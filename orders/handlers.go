package orders

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"zwmart/db"
	"zwmart/models"
	"zwmart/mq"
	"zwmart/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// GetOrders lists the caller's orders, buyer side by default, seller side
// with ?role=seller.
func GetOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	filter := bson.M{"buyerId": userID}
	if r.URL.Query().Get("role") == "seller" {
		filter = bson.M{"sellerId": userID}
	}

	cursor, err := db.OrderCollection.Find(ctx, filter)
	if err != nil {
		log.Println("GetOrders Find error:", err)
		http.Error(w, "Could not retrieve orders", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var list []models.Order
	if err := cursor.All(ctx, &list); err != nil {
		log.Println("GetOrders cursor.All error:", err)
		http.Error(w, "Error reading order data", http.StatusInternalServerError)
		return
	}
	if len(list) == 0 {
		list = []models.Order{}
	}

	utils.RespondWithJSON(w, http.StatusOK, list)
}

// GetOrder returns one order; only its buyer or seller may read it.
func GetOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	order, ok := fetchOwned(w, r, ps.ByName("orderid"), userID)
	if !ok {
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, order)
}

// UpdateOrderStatus applies one state machine transition and notifies the
// buyer. Illegal transitions are rejected without mutating the order.
func UpdateOrderStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()

	var payload struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Println("UpdateOrderStatus decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	order, ok := fetchOwned(w, r, ps.ByName("orderid"), userID)
	if !ok {
		return
	}

	from := order.Status
	if err := Transition(&order, payload.Status, time.Now()); err != nil {
		var te *TransitionError
		if errors.As(err, &te) {
			utils.RespondWithError(w, http.StatusConflict, te.Error())
			return
		}
		http.Error(w, "Failed to update status", http.StatusInternalServerError)
		return
	}

	update := bson.M{"$set": bson.M{"status": order.Status, "updatedAt": order.UpdatedAt}}
	if _, err := db.OrderCollection.UpdateOne(ctx, bson.M{"orderId": order.OrderID}, update); err != nil {
		log.Println("UpdateOrderStatus UpdateOne error:", err)
		http.Error(w, "Failed to update status", http.StatusInternalServerError)
		return
	}

	mq.EmitOrderEvent(ctx, models.OrderEvent{
		OrderID: order.OrderID,
		BuyerID: order.BuyerID,
		From:    string(from),
		To:      string(order.Status),
		At:      order.UpdatedAt,
	})

	utils.RespondWithJSON(w, http.StatusOK, order)
}

// UpdatePaymentStatus records the payment processor's stored result.
func UpdatePaymentStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()

	var payload struct {
		PaymentStatus models.PaymentStatus `json:"paymentStatus"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Println("UpdatePaymentStatus decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	order, ok := fetchOwned(w, r, ps.ByName("orderid"), userID)
	if !ok {
		return
	}

	if err := SetPaymentStatus(&order, payload.PaymentStatus, time.Now()); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	update := bson.M{"$set": bson.M{"paymentStatus": order.PaymentStatus, "updatedAt": order.UpdatedAt}}
	if _, err := db.OrderCollection.UpdateOne(ctx, bson.M{"orderId": order.OrderID}, update); err != nil {
		log.Println("UpdatePaymentStatus UpdateOne error:", err)
		http.Error(w, "Failed to update payment status", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, order)
}

// CancelOrder moves the order to cancelled via the same transition table.
func CancelOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx := r.Context()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	order, ok := fetchOwned(w, r, ps.ByName("orderid"), userID)
	if !ok {
		return
	}

	from := order.Status
	if err := Transition(&order, models.OrderCancelled, time.Now()); err != nil {
		var te *TransitionError
		if errors.As(err, &te) {
			utils.RespondWithError(w, http.StatusConflict, te.Error())
			return
		}
		http.Error(w, "Failed to cancel order", http.StatusInternalServerError)
		return
	}

	update := bson.M{"$set": bson.M{"status": order.Status, "updatedAt": order.UpdatedAt}}
	if _, err := db.OrderCollection.UpdateOne(ctx, bson.M{"orderId": order.OrderID}, update); err != nil {
		log.Println("CancelOrder UpdateOne error:", err)
		http.Error(w, "Failed to cancel order", http.StatusInternalServerError)
		return
	}

	mq.EmitOrderEvent(ctx, models.OrderEvent{
		OrderID: order.OrderID,
		BuyerID: order.BuyerID,
		From:    string(from),
		To:      string(order.Status),
		At:      order.UpdatedAt,
	})

	utils.RespondWithJSON(w, http.StatusOK, order)
}

// fetchOwned loads an order and enforces buyer/seller read ownership,
// writing the error response itself on failure.
func fetchOwned(w http.ResponseWriter, r *http.Request, orderID, userID string) (models.Order, bool) {
	var order models.Order
	err := db.OrderCollection.FindOne(r.Context(), bson.M{"orderId": orderID}).Decode(&order)
	if err != nil {
		http.Error(w, "Order not found", http.StatusNotFound)
		return models.Order{}, false
	}
	if order.BuyerID != userID && order.SellerID != userID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return models.Order{}, false
	}
	return order, true
}
