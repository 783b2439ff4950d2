package cart

import (
	"encoding/json"
	"log"
	"net/http"

	"zwmart/models"
	"zwmart/products"
	"zwmart/utils"

	"github.com/julienschmidt/httprouter"
)

// AddToCart increments quantity if the product is already carted, or inserts
// a new CartItem snapshotted from the catalog. An unknown product identity
// falls back to a synthesized placeholder entry rather than an error.
func AddToCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var payload struct {
		ProductID string  `json:"productId"`
		Quantity  int     `json:"quantity"`
		Name      string  `json:"name"`
		Price     float64 `json:"price"`
		Image     string  `json:"image"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Println("AddToCart decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	item := models.CartItem{
		ProductID: payload.ProductID,
		Name:      payload.Name,
		Price:     payload.Price,
		Image:     payload.Image,
	}

	// Freeze the catalog's name/price/image at add-time. A lookup miss is
	// not fatal: the caller-supplied fields (or a placeholder) are used.
	if payload.ProductID != "" {
		if p, err := products.GetByID(r.Context(), payload.ProductID); err == nil {
			item.Name = p.Name
			item.Price = p.Price
			item.Image = p.Image
			item.SellerID = p.SellerID
			item.ExpiryDate = p.ExpiryDate
		} else {
			log.Println("AddToCart product lookup miss:", payload.ProductID, err)
		}
	}

	stored := Default.StoreFor(userID).AddItem(item, payload.Quantity)
	utils.RespondWithJSON(w, http.StatusCreated, stored)
}

// GetCart returns the cart contents plus derived totals.
func GetCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	store := Default.StoreFor(userID)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"items": store.Items(),
		"count": store.Count(),
		"total": store.Total(),
	})
}

// UpdateCartItem sets a line's quantity; zero or negative removes the line.
func UpdateCartItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var payload struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Println("UpdateCartItem decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	Default.StoreFor(userID).UpdateQuantity(ps.ByName("itemid"), payload.Quantity)
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// RemoveCartItem deletes a line. Unknown ids are a no-op.
func RemoveCartItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	Default.StoreFor(userID).RemoveItem(ps.ByName("itemid"))
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

// ClearCart empties the user's cart.
func ClearCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	Default.StoreFor(userID).Clear()
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
