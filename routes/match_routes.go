package routes

import (
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"cupidwave/controllers"
)

// RegisterMatchRoutes sets up the matchmaking questionnaire routes under /api/matchmaking
func RegisterMatchRoutes(r *mux.Router, service controllers.MatchmakingService, log *zap.SugaredLogger) {
	controller := controllers.NewMatchController(service, log)

	matchRouter := r.PathPrefix("/api/matchmaking").Subrouter()
	matchRouter.HandleFunc("/answers", controller.GetAnswers).Methods("GET")
	matchRouter.HandleFunc("/answers", controller.SaveAnswers).Methods("PUT")
	matchRouter.HandleFunc("/suggestions", controller.GetSuggestions).Methods("GET")
	matchRouter.HandleFunc("/compatibility/{userId}", controller.GetCompatibility).Methods("GET")
}
