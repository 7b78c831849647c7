package routes

import (
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"cupidwave/controllers"
)

// RegisterChatRoutes sets up conversations and messages
func RegisterChatRoutes(r *mux.Router, service controllers.ChatService, log *zap.SugaredLogger) {
	controller := controllers.NewChatController(service, log)

	chatRouter := r.PathPrefix("/api/conversations").Subrouter()
	chatRouter.HandleFunc("", controller.GetConversations).Methods("GET")
	chatRouter.HandleFunc("/{id}/messages", controller.GetMessages).Methods("GET")
	chatRouter.HandleFunc("/{id}/messages", controller.CreateMessage).Methods("POST")
	chatRouter.HandleFunc("/{id}/read", controller.MarkMessagesAsRead).Methods("POST")
	chatRouter.HandleFunc("/{id}/messages/{messageId}/reactions", controller.ReactToMessage).Methods("POST")

	r.HandleFunc("/api/unread", controller.GetUnread).Methods("GET")
}
