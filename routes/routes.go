package routes

import (
	"zwmart/cart"
	"zwmart/checkout"
	"zwmart/export"
	"zwmart/invoice"
	"zwmart/middleware"
	"zwmart/orders"
	"zwmart/products"
	"zwmart/ratelim"
	"zwmart/utils"

	"github.com/julienschmidt/httprouter"
)

func AddUtilityRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/csrf", rl.Limit(utils.CSRF))
}

func AddCartRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/cart", rl.Limit(middleware.Authenticate(cart.AddToCart)))
	router.GET("/api/cart", middleware.Authenticate(cart.GetCart))
	router.PUT("/api/cart/:itemid", middleware.Authenticate(cart.UpdateCartItem))
	router.DELETE("/api/cart/:itemid", middleware.Authenticate(cart.RemoveCartItem))
	router.DELETE("/api/cart", middleware.Authenticate(cart.ClearCart))
}

func AddCheckoutRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/checkout/initiate", rl.Limit(middleware.Authenticate(checkout.InitiateCheckout)))
	router.POST("/api/checkout/order", rl.Limit(middleware.Authenticate(checkout.PlaceOrder)))
}

func AddOrderRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/orders", middleware.Authenticate(orders.GetOrders))
	router.GET("/api/orders/:orderid", middleware.Authenticate(orders.GetOrder))
	router.PATCH("/api/orders/:orderid/status", rl.Limit(middleware.Authenticate(orders.UpdateOrderStatus)))
	router.PATCH("/api/orders/:orderid/payment", rl.Limit(middleware.Authenticate(orders.UpdatePaymentStatus)))
	router.POST("/api/orders/:orderid/cancel", rl.Limit(middleware.Authenticate(orders.CancelOrder)))
	router.GET("/api/orders/:orderid/invoice", middleware.Authenticate(invoice.DownloadInvoice))
	router.GET("/api/orders-updates", middleware.Authenticate(orders.OrderUpdates))
}

func AddProductRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/products", middleware.OptionalAuth(products.GetProducts))
	router.GET("/api/products/:productid", middleware.OptionalAuth(products.GetProduct))
	router.POST("/api/products", rl.Limit(middleware.Authenticate(products.CreateProduct)))
	router.DELETE("/api/products/:productid", middleware.Authenticate(products.DeleteProduct))
}

func AddExportRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/export/products", rl.Limit(middleware.Authenticate(export.ExportProducts)))
	router.GET("/api/export/orders", rl.Limit(middleware.Authenticate(export.ExportOrders)))
}

func RoutesWrapper(router *httprouter.Router, rl *ratelim.RateLimiter) {
	AddCartRoutes(router, rl)
	AddCheckoutRoutes(router, rl)
	AddOrderRoutes(router, rl)
	AddProductRoutes(router, rl)
	AddExportRoutes(router, rl)
	AddUtilityRoutes(router, rl)
}
