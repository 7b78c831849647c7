package store

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"cupidwave/models"
)

const (
	swipePrefix = "SWIPE#"
	quotaPrefix = "QUOTA#"
)

// SwipeStore persists Tornado swipes and the per-day quota counters.
type SwipeStore struct {
	ds *DynamoService
}

func NewSwipeStore(ds *DynamoService) *SwipeStore {
	return &SwipeStore{ds: ds}
}

type quotaItem struct {
	PK    string `dynamodbav:"PK"`
	SK    string `dynamodbav:"SK"`
	Count int    `dynamodbav:"count"`
}

func userPK(userID string) string { return "USER#" + userID }

func swipeKey(swiperID, targetID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": S(userPK(swiperID)),
		"SK": S(swipePrefix + targetID),
	}
}

// Put records a swipe, replacing an earlier decision on the same target.
func (s *SwipeStore) Put(ctx context.Context, swipe *models.Swipe) error {
	swipe.PK = userPK(swipe.SwiperID)
	swipe.SK = swipePrefix + swipe.TargetID
	return s.ds.PutItem(ctx, models.SwipesTable, swipe)
}

// Get returns the swiper's decision on target, or nil.
func (s *SwipeStore) Get(ctx context.Context, swiperID, targetID string) (*models.Swipe, error) {
	var swipe models.Swipe
	found, err := s.ds.GetItem(ctx, models.SwipesTable, swipeKey(swiperID, targetID), &swipe)
	if err != nil || !found {
		return nil, err
	}
	return &swipe, nil
}

// ListBySwiper returns every decision made by swiperID.
func (s *SwipeStore) ListBySwiper(ctx context.Context, swiperID string) ([]models.Swipe, error) {
	items, err := s.ds.QueryItems(ctx, models.SwipesTable, &dynamodb.QueryInput{
		KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :prefix)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk":     S(userPK(swiperID)),
			":prefix": S(swipePrefix),
		},
	}, 0)
	if err != nil {
		return nil, err
	}
	return unmarshalList[models.Swipe](items)
}

// ListLikesReceived returns the likes targeting userID.
func (s *SwipeStore) ListLikesReceived(ctx context.Context, userID string) ([]models.Swipe, error) {
	items, err := s.ds.QueryItems(ctx, models.SwipesTable, &dynamodb.QueryInput{
		IndexName:              aws.String(models.SwipeTargetIndex),
		KeyConditionExpression: aws.String("targetId = :target"),
		FilterExpression:       aws.String("direction = :like"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":target": S(userID),
			":like":   S(models.SwipeLike),
		},
	}, 0)
	if err != nil {
		return nil, err
	}
	return unmarshalList[models.Swipe](items)
}

// IncrementQuota consumes one swipe for day. ErrConditionFailed means limit was already reached.
func (s *SwipeStore) IncrementQuota(ctx context.Context, userID, day string, limit int) (int, error) {
	attrs, err := s.ds.UpdateItem(ctx, models.SwipesTable, &dynamodb.UpdateItemInput{
		Key: map[string]types.AttributeValue{
			"PK": S(userPK(userID)),
			"SK": S(quotaPrefix + day),
		},
		UpdateExpression:         aws.String("ADD #count :one"),
		ConditionExpression:      aws.String("attribute_not_exists(#count) OR #count < :limit"),
		ExpressionAttributeNames: map[string]string{"#count": "count"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one":   N(1),
			":limit": N(limit),
		},
	})
	if err != nil {
		return 0, err
	}
	var q quotaItem
	if err := unmarshalInto(attrs, &q); err != nil {
		return 0, err
	}
	return q.Count, nil
}

// QuotaUsed returns how many swipes userID made on day.
func (s *SwipeStore) QuotaUsed(ctx context.Context, userID, day string) (int, error) {
	var q quotaItem
	_, err := s.ds.GetItem(ctx, models.SwipesTable, map[string]types.AttributeValue{
		"PK": S(userPK(userID)),
		"SK": S(quotaPrefix + day),
	}, &q)
	if err != nil {
		return 0, err
	}
	return q.Count, nil
}
