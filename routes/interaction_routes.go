package routes

import (
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"cupidwave/controllers"
)

// RegisterInteractionRoutes sets up Tornado mode under /api/tornado
func RegisterInteractionRoutes(r *mux.Router, service controllers.TornadoService, log *zap.SugaredLogger) {
	controller := controllers.NewInteractionController(service, log)

	tornadoRouter := r.PathPrefix("/api/tornado").Subrouter()
	tornadoRouter.HandleFunc("/deck", controller.GetDeck).Methods("GET")
	tornadoRouter.HandleFunc("/swipe", controller.Swipe).Methods("POST")
	tornadoRouter.HandleFunc("/remaining", controller.GetRemaining).Methods("GET")
	tornadoRouter.HandleFunc("/likes", controller.GetLikesReceived).Methods("GET")
}
