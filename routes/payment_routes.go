package routes

import (
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"cupidwave/controllers"
)

// RegisterPaymentRoutes sets up the catalog, checkout and webhook under /api/payments
func RegisterPaymentRoutes(r *mux.Router, service controllers.PaymentService, log *zap.SugaredLogger) {
	controller := controllers.NewPaymentController(service, log)

	paymentRouter := r.PathPrefix("/api/payments").Subrouter()
	paymentRouter.HandleFunc("/products", controller.GetProducts).Methods("GET")
	paymentRouter.HandleFunc("/checkout", controller.CreateCheckoutSession).Methods("POST")
	paymentRouter.HandleFunc("/webhook", controller.HandleWebhook).Methods("POST")
	paymentRouter.HandleFunc("/sessions/{id}", controller.GetSession).Methods("GET")
}
