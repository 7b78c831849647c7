package routes

import (
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"cupidwave/controllers"
)

// RegisterActionRoutes sets up blocks and reports
func RegisterActionRoutes(r *mux.Router, service controllers.ModerationService, log *zap.SugaredLogger) {
	controller := controllers.NewActionController(service, log)

	r.HandleFunc("/api/blocks", controller.BlockUser).Methods("POST")
	r.HandleFunc("/api/blocks", controller.GetBlocks).Methods("GET")
	r.HandleFunc("/api/blocks/{userId}", controller.UnblockUser).Methods("DELETE")
	r.HandleFunc("/api/reports", controller.ReportUser).Methods("POST")
}
