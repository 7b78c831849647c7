package routes

import (
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"cupidwave/controllers"
)

// RegisterGroupRoutes sets up group proposals under /api/groups
func RegisterGroupRoutes(r *mux.Router, service controllers.GroupService, log *zap.SugaredLogger) {
	controller := controllers.NewGroupController(service, log)

	groupRouter := r.PathPrefix("/api/groups").Subrouter()
	groupRouter.HandleFunc("", controller.CreateGroup).Methods("POST")
	groupRouter.HandleFunc("", controller.GetGroups).Methods("GET")
	groupRouter.HandleFunc("/{id}/respond", controller.RespondToGroup).Methods("POST")
}
