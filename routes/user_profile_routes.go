package routes

import (
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"cupidwave/controllers"
)

// RegisterUserProfileRoutes sets up routes for user profile operations under /api/profiles
func RegisterUserProfileRoutes(r *mux.Router, service controllers.ProfileService, log *zap.SugaredLogger) {
	controller := controllers.NewUserProfileController(service, log)

	profileRouter := r.PathPrefix("/api/profiles").Subrouter()

	// /me routes must be registered before /{userId}
	profileRouter.HandleFunc("", controller.CreateUserProfile).Methods("POST")
	profileRouter.HandleFunc("", controller.BrowseProfiles).Methods("GET")
	profileRouter.HandleFunc("/me", controller.GetOwnProfile).Methods("GET")
	profileRouter.HandleFunc("/me", controller.UpdateUserProfile).Methods("PATCH")
	profileRouter.HandleFunc("/me", controller.DeleteUserProfile).Methods("DELETE")
	profileRouter.HandleFunc("/me/location", controller.SetLocation).Methods("PUT")
	profileRouter.HandleFunc("/{userId}", controller.GetUserProfileByID).Methods("GET")
}
