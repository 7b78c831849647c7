package controllers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"cupidwave/models"
	"cupidwave/utils"
)

// NotificationService is implemented by *services.NotificationService.
type NotificationService interface {
	List(ctx context.Context, userID string, limit int) ([]models.Notification, error)
	MarkAllRead(ctx context.Context, userID string) (int, error)
	CountUnread(ctx context.Context, userID string) (int, error)
}

type NotificationController struct {
	Service NotificationService
	Log     *zap.SugaredLogger
}

func NewNotificationController(service NotificationService, log *zap.SugaredLogger) *NotificationController {
	return &NotificationController{Service: service, Log: log}
}

func (c *NotificationController) GetNotifications(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		utils.WriteError(w, c.Log, err)
		return
	}
	list, err := c.Service.List(r.Context(), callerID(r), limit)
	if err != nil {
		utils.WriteError(w, c.Log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, list)
}

func (c *NotificationController) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	n, err := c.Service.MarkAllRead(r.Context(), callerID(r))
	if err != nil {
		utils.WriteError(w, c.Log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, map[string]int{"updated": n})
}

func (c *NotificationController) GetUnreadCount(w http.ResponseWriter, r *http.Request) {
	n, err := c.Service.CountUnread(r.Context(), callerID(r))
	if err != nil {
		utils.WriteError(w, c.Log, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, map[string]int{"unread": n})
}
