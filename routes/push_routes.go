package routes

import (
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"cupidwave/controllers"
)

func RegisterPushRoutes(r *mux.Router, service controllers.PushService, log *zap.SugaredLogger) {
	controller := controllers.NewPushController(service, log)
	r.HandleFunc("/api/push", controller.SendPush).Methods("POST")
}

func RegisterNotificationRoutes(r *mux.Router, service controllers.NotificationService, log *zap.SugaredLogger) {
	controller := controllers.NewNotificationController(service, log)
	r.HandleFunc("/api/notifications", controller.GetNotifications).Methods("GET")
	r.HandleFunc("/api/notifications/unread", controller.GetUnreadCount).Methods("GET")
	r.HandleFunc("/api/notifications/read", controller.MarkAllRead).Methods("POST")
}
