package store

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"cupidwave/models"
)

// NotificationStore persists per-user notifications.
type NotificationStore struct {
	ds *DynamoService
}

func NewNotificationStore(ds *DynamoService) *NotificationStore {
	return &NotificationStore{ds: ds}
}

func (s *NotificationStore) Put(ctx context.Context, n *models.Notification) error {
	return s.ds.PutItem(ctx, models.NotificationsTable, n)
}

// List returns the latest notifications, newest first.
func (s *NotificationStore) List(ctx context.Context, userID string, limit int) ([]models.Notification, error) {
	items, err := s.ds.QueryItems(ctx, models.NotificationsTable, &dynamodb.QueryInput{
		KeyConditionExpression:    aws.String("userId = :u"),
		ExpressionAttributeValues: map[string]types.AttributeValue{":u": S(userID)},
		ScanIndexForward:          aws.Bool(false),
	}, limit)
	if err != nil {
		return nil, err
	}
	return unmarshalList[models.Notification](items)
}

func (s *NotificationStore) unreadQuery(userID string) *dynamodb.QueryInput {
	return &dynamodb.QueryInput{
		KeyConditionExpression:   aws.String("userId = :u"),
		FilterExpression:         aws.String("#read = :false"),
		ExpressionAttributeNames: map[string]string{"#read": "read"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":u":     S(userID),
			":false": B(false),
		},
	}
}

func (s *NotificationStore) CountUnread(ctx context.Context, userID string) (int, error) {
	return s.ds.CountItems(ctx, models.NotificationsTable, s.unreadQuery(userID))
}

// MarkAllRead flags every unread notification and returns how many changed.
func (s *NotificationStore) MarkAllRead(ctx context.Context, userID string) (int, error) {
	items, err := s.ds.QueryItems(ctx, models.NotificationsTable, s.unreadQuery(userID), 0)
	if err != nil {
		return 0, err
	}
	unread, err := unmarshalList[models.Notification](items)
	if err != nil {
		return 0, err
	}
	for _, n := range unread {
		_, err := s.ds.UpdateItem(ctx, models.NotificationsTable, &dynamodb.UpdateItemInput{
			Key:                       map[string]types.AttributeValue{"userId": S(n.UserID), "SK": S(n.SK)},
			UpdateExpression:          aws.String("SET #read = :true"),
			ExpressionAttributeNames:  map[string]string{"#read": "read"},
			ExpressionAttributeValues: map[string]types.AttributeValue{":true": B(true)},
			ReturnValues:              types.ReturnValueNone,
		})
		if err != nil {
			return 0, err
		}
	}
	return len(unread), nil
}
