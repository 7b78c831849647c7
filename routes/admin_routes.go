package routes

import (
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"cupidwave/controllers"
	"cupidwave/middleware"
)

// RegisterAdminRoutes sets up the moderation views under /api/admin, admins only
func RegisterAdminRoutes(r *mux.Router, service controllers.AdminService, log *zap.SugaredLogger) {
	controller := controllers.NewAdminController(service, log)

	adminRouter := r.PathPrefix("/api/admin").Subrouter()
	adminRouter.Use(middleware.RequireAdmin)
	adminRouter.HandleFunc("/reports", controller.GetReports).Methods("GET")
	adminRouter.HandleFunc("/reports/{id}/resolve", controller.ResolveReport).Methods("POST")
	adminRouter.HandleFunc("/profiles/{userId}/suspend", controller.SuspendProfile).Methods("POST")
	adminRouter.HandleFunc("/stats", controller.GetStats).Methods("GET")
}
