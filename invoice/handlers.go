package invoice

import (
	"log"
	"net/http"

	"zwmart/db"
	"zwmart/models"
	"zwmart/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// DownloadInvoice renders the order's invoice and streams it back as a
// PDF attachment. Only the order's buyer or seller may fetch it.
func DownloadInvoice(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orderID := ps.ByName("orderid")

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var order models.Order
	if err := db.OrderCollection.FindOne(r.Context(), bson.M{"orderId": orderID}).Decode(&order); err != nil {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}
	if order.BuyerID != userID && order.SellerID != userID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	pdfBytes, err := Build(order)
	if err != nil {
		log.Println("DownloadInvoice build error:", err)
		http.Error(w, "Failed to generate invoice", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=invoice-"+orderID+".pdf")
	w.Write(pdfBytes)
}
