package services

import (
	"context"

	"go.uber.org/zap"

	"cupidwave/models"
)

type NotificationService struct {
	Notifications NotificationStore
	Log           *zap.SugaredLogger
}

func (ns *NotificationService) List(ctx context.Context, userID string, limit int) ([]models.Notification, error) {
	list, err := ns.Notifications.List(ctx, userID, clampLimit(limit, 50, 100))
	if err != nil {
		return nil, dbError("load notifications", err)
	}
	return list, nil
}

// MarkAllRead returns how many notifications were flagged.
func (ns *NotificationService) MarkAllRead(ctx context.Context, userID string) (int, error) {
	n, err := ns.Notifications.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, dbError("mark notifications read", err)
	}
	return n, nil
}

func (ns *NotificationService) CountUnread(ctx context.Context, userID string) (int, error) {
	n, err := ns.Notifications.CountUnread(ctx, userID)
	if err != nil {
		return 0, dbError("count notifications", err)
	}
	return n, nil
}

// LiveNotifications stores notifications and forwards each one to the
// recipient's personal realtime room.
type LiveNotifications struct {
	NotificationStore
	Publisher Publisher
	Room      func(userID string) string
}

func (l *LiveNotifications) Put(ctx context.Context, n *models.Notification) error {
	if err := l.NotificationStore.Put(ctx, n); err != nil {
		return err
	}
	if l.Publisher != nil {
		l.Publisher.Publish(l.Room(n.UserID), EventNotification, n)
	}
	return nil
}
