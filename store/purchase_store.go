package store

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"cupidwave/models"
)

// PurchaseStore persists checkout sessions and settles them.
type PurchaseStore struct {
	ds *DynamoService
}

func NewPurchaseStore(ds *DynamoService) *PurchaseStore {
	return &PurchaseStore{ds: ds}
}

func purchaseKey(sessionID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{"sessionId": S(sessionID)}
}

func (s *PurchaseStore) Create(ctx context.Context, p *models.Purchase) error {
	return s.ds.PutItemWithCondition(ctx, models.PurchasesTable, p, "attribute_not_exists(sessionId)", nil, nil)
}

func (s *PurchaseStore) Get(ctx context.Context, sessionID string) (*models.Purchase, error) {
	var p models.Purchase
	found, err := s.ds.GetItem(ctx, models.PurchasesTable, purchaseKey(sessionID), &p)
	if err != nil || !found {
		return nil, err
	}
	return &p, nil
}

func (s *PurchaseStore) transitionUpdate(sessionID, from, to, at string) *types.Update {
	return &types.Update{
		TableName:                aws.String(s.ds.Table(models.PurchasesTable)),
		Key:                      purchaseKey(sessionID),
		UpdateExpression:         aws.String("SET #status = :to, updatedAt = :at"),
		ConditionExpression:      aws.String("#status = :from"),
		ExpressionAttributeNames: map[string]string{"#status": "status"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":from": S(from),
			":to":   S(to),
			":at":   S(at),
		},
	}
}

// Transition moves a purchase between statuses. ErrConditionFailed means it was not in from.
func (s *PurchaseStore) Transition(ctx context.Context, sessionID, from, to, at string) error {
	u := s.transitionUpdate(sessionID, from, to, at)
	_, err := s.ds.UpdateItem(ctx, models.PurchasesTable, &dynamodb.UpdateItemInput{
		Key:                       u.Key,
		UpdateExpression:          u.UpdateExpression,
		ConditionExpression:       u.ConditionExpression,
		ExpressionAttributeNames:  u.ExpressionAttributeNames,
		ExpressionAttributeValues: u.ExpressionAttributeValues,
		ReturnValues:              types.ReturnValueNone,
	})
	return err
}

// Complete marks a pending purchase paid and applies its effects in one transaction:
// push credits go to the buyer, the notification (if any) is delivered.
// ErrConditionFailed means the purchase was already settled.
func (s *PurchaseStore) Complete(ctx context.Context, p *models.Purchase, n *models.Notification, at string) error {
	items := []types.TransactWriteItem{
		{Update: s.transitionUpdate(p.SessionID, models.StatusPending, models.StatusPaid, at)},
	}
	if p.Credits > 0 {
		items = append(items, addCreditsItem(s.ds.Table(models.ProfilesTable), p.UserID, p.Credits))
	}
	if n != nil {
		put, err := putRequest(s.ds.Table(models.NotificationsTable), n)
		if err != nil {
			return err
		}
		items = append(items, put)
	}
	return s.ds.TransactWrite(ctx, items)
}
