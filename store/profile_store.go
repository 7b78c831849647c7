package store

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"cupidwave/models"
)

// ProfileStore persists profiles.
type ProfileStore struct {
	ds *DynamoService
}

func NewProfileStore(ds *DynamoService) *ProfileStore {
	return &ProfileStore{ds: ds}
}

func profileKey(userID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{"userId": S(userID)}
}

// Get returns nil when the profile does not exist.
func (s *ProfileStore) Get(ctx context.Context, userID string) (*models.Profile, error) {
	var profile models.Profile
	found, err := s.ds.GetItem(ctx, models.ProfilesTable, profileKey(userID), &profile)
	if err != nil || !found {
		return nil, err
	}
	return &profile, nil
}

// Create stores a new profile and fails with ErrConditionFailed if one exists.
func (s *ProfileStore) Create(ctx context.Context, profile *models.Profile) error {
	return s.ds.PutItemWithCondition(ctx, models.ProfilesTable, profile, "attribute_not_exists(userId)", nil, nil)
}

// UpdateFields sets the given attributes on an existing profile and returns the result.
func (s *ProfileStore) UpdateFields(ctx context.Context, userID string, fields map[string]interface{}) (*models.Profile, error) {
	if len(fields) == 0 {
		return s.Get(ctx, userID)
	}

	names := make([]string, 0, len(fields))
	for k := range fields {
		names = append(names, k)
	}
	sort.Strings(names)

	assignments := make([]string, 0, len(names))
	expressionNames := map[string]string{"#pk": "userId"}
	expressionValues := map[string]types.AttributeValue{}
	for i, name := range names {
		av, err := attributevalue.Marshal(fields[name])
		if err != nil {
			return nil, fmt.Errorf("failed to marshal field %s: %w", name, err)
		}
		placeholder := fmt.Sprintf(":v%d", i)
		attr := fmt.Sprintf("#f%d", i)
		assignments = append(assignments, attr+" = "+placeholder)
		expressionNames[attr] = name
		expressionValues[placeholder] = av
	}

	attrs, err := s.ds.UpdateItem(ctx, models.ProfilesTable, &dynamodb.UpdateItemInput{
		Key:                       profileKey(userID),
		UpdateExpression:          aws.String("SET " + strings.Join(assignments, ", ")),
		ConditionExpression:       aws.String("attribute_exists(#pk)"),
		ExpressionAttributeNames:  expressionNames,
		ExpressionAttributeValues: expressionValues,
	})
	if err != nil {
		return nil, err
	}
	var profile models.Profile
	if err := attributevalue.UnmarshalMap(attrs, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return &profile, nil
}

func (s *ProfileStore) Delete(ctx context.Context, userID string) error {
	return s.ds.DeleteItem(ctx, models.ProfilesTable, profileKey(userID))
}

// ListActive returns every profile that is not suspended.
func (s *ProfileStore) ListActive(ctx context.Context) ([]models.Profile, error) {
	items, err := s.ds.ScanItems(ctx, models.ProfilesTable, &dynamodb.ScanInput{
		FilterExpression:          aws.String("attribute_not_exists(suspended) OR suspended = :false"),
		ExpressionAttributeValues: map[string]types.AttributeValue{":false": B(false)},
	})
	if err != nil {
		return nil, err
	}
	return unmarshalList[models.Profile](items)
}

// AddPushCredits atomically adds n credits and returns the new balance.
func (s *ProfileStore) AddPushCredits(ctx context.Context, userID string, n int) (int, error) {
	attrs, err := s.ds.UpdateItem(ctx, models.ProfilesTable, &dynamodb.UpdateItemInput{
		Key:                       profileKey(userID),
		UpdateExpression:          aws.String("ADD pushCredits :n"),
		ConditionExpression:       aws.String("attribute_exists(userId)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{":n": N(n)},
	})
	if err != nil {
		return 0, err
	}
	return balanceOf(attrs)
}

// ConsumePushCredit takes one credit. ErrConditionFailed means the balance was empty.
func (s *ProfileStore) ConsumePushCredit(ctx context.Context, userID string) (int, error) {
	attrs, err := s.ds.UpdateItem(ctx, models.ProfilesTable, &dynamodb.UpdateItemInput{
		Key:                       profileKey(userID),
		UpdateExpression:          aws.String("SET pushCredits = pushCredits - :one"),
		ConditionExpression:       aws.String("pushCredits >= :one"),
		ExpressionAttributeValues: map[string]types.AttributeValue{":one": N(1)},
	})
	if err != nil {
		return 0, err
	}
	return balanceOf(attrs)
}

// addCreditsItem is the transactional form of AddPushCredits.
func addCreditsItem(table, userID string, n int) types.TransactWriteItem {
	return types.TransactWriteItem{Update: &types.Update{
		TableName:                 aws.String(table),
		Key:                       profileKey(userID),
		UpdateExpression:          aws.String("ADD pushCredits :n"),
		ConditionExpression:       aws.String("attribute_exists(userId)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{":n": N(n)},
	}}
}

func balanceOf(attrs map[string]types.AttributeValue) (int, error) {
	var out struct {
		PushCredits int `dynamodbav:"pushCredits"`
	}
	if err := attributevalue.UnmarshalMap(attrs, &out); err != nil {
		return 0, fmt.Errorf("failed to read push credits: %w", err)
	}
	return out.PushCredits, nil
}
