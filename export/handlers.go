package export

import (
	"context"
	"log"
	"net/http"
	"time"

	"zwmart/db"
	"zwmart/models"
	"zwmart/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

func sendCSV(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.Write(data)
}

// ExportProducts downloads the caller's listings as CSV.
func ExportProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	cursor, err := db.ProductCollection.Find(ctx, bson.M{"sellerId": userID})
	if err != nil {
		log.Println("ExportProducts Find error:", err)
		http.Error(w, "Could not retrieve products", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var items []models.Product
	if err := cursor.All(ctx, &items); err != nil {
		log.Println("ExportProducts cursor.All error:", err)
		http.Error(w, "Error reading product data", http.StatusInternalServerError)
		return
	}

	data, err := ProductsCSV(items)
	if err != nil {
		log.Println("ExportProducts serialize error:", err)
		http.Error(w, "Export failed", http.StatusInternalServerError)
		return
	}

	sendCSV(w, "products.csv", data)
}

// ExportOrders downloads the caller's orders as CSV; ?role=seller switches
// to the seller's side of the ledger.
func ExportOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

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
		log.Println("ExportOrders Find error:", err)
		http.Error(w, "Could not retrieve orders", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	var list []models.Order
	if err := cursor.All(ctx, &list); err != nil {
		log.Println("ExportOrders cursor.All error:", err)
		http.Error(w, "Error reading order data", http.StatusInternalServerError)
		return
	}

	data, err := OrdersCSV(list)
	if err != nil {
		log.Println("ExportOrders serialize error:", err)
		http.Error(w, "Export failed", http.StatusInternalServerError)
		return
	}

	sendCSV(w, "orders.csv", data)
}
