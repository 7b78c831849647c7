package store

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"cupidwave/models"
)

// MessageStore persists conversation messages.
type MessageStore struct {
	ds *DynamoService
}

func NewMessageStore(ds *DynamoService) *MessageStore {
	return &MessageStore{ds: ds}
}

func (s *MessageStore) Put(ctx context.Context, msg *models.Message) error {
	return s.ds.PutItem(ctx, models.MessagesTable, msg)
}

func (s *MessageStore) Get(ctx context.Context, conversationID, messageID string) (*models.Message, error) {
	var msg models.Message
	found, err := s.ds.GetItem(ctx, models.MessagesTable, map[string]types.AttributeValue{
		"conversationId": S(conversationID),
		"messageId":      S(messageID),
	}, &msg)
	if err != nil || !found {
		return nil, err
	}
	return &msg, nil
}

// Latest returns up to limit messages, newest first.
func (s *MessageStore) Latest(ctx context.Context, conversationID string, limit int) ([]models.Message, error) {
	items, err := s.ds.QueryItems(ctx, models.MessagesTable, &dynamodb.QueryInput{
		KeyConditionExpression:    aws.String("conversationId = :c"),
		ExpressionAttributeValues: map[string]types.AttributeValue{":c": S(conversationID)},
		ScanIndexForward:          aws.Bool(false),
	}, limit)
	if err != nil {
		return nil, err
	}
	return unmarshalList[models.Message](items)
}

// CountUnread counts messages not sent by userID and newer than since.
func (s *MessageStore) CountUnread(ctx context.Context, conversationID, userID, since string) (int, error) {
	filter := "senderId <> :u"
	values := map[string]types.AttributeValue{
		":c": S(conversationID),
		":u": S(userID),
	}
	if since != "" {
		filter += " AND createdAt > :since"
		values[":since"] = S(since)
	}
	return s.ds.CountItems(ctx, models.MessagesTable, &dynamodb.QueryInput{
		KeyConditionExpression:    aws.String("conversationId = :c"),
		FilterExpression:          aws.String(filter),
		ExpressionAttributeValues: values,
	})
}

// ReactionStore persists message reactions, partitioned by conversation.
type ReactionStore struct {
	ds *DynamoService
}

func NewReactionStore(ds *DynamoService) *ReactionStore {
	return &ReactionStore{ds: ds}
}

func reactionSK(messageID, userID string) string { return messageID + "#" + userID }

// Put sets userID's reaction on a message, replacing the previous one.
func (s *ReactionStore) Put(ctx context.Context, r *models.Reaction) error {
	r.SK = reactionSK(r.MessageID, r.UserID)
	return s.ds.PutItem(ctx, models.ReactionsTable, r)
}

func (s *ReactionStore) Delete(ctx context.Context, conversationID, messageID, userID string) error {
	return s.ds.DeleteItem(ctx, models.ReactionsTable, map[string]types.AttributeValue{
		"conversationId": S(conversationID),
		"SK":             S(reactionSK(messageID, userID)),
	})
}

// ListByConversation returns every reaction in a conversation.
func (s *ReactionStore) ListByConversation(ctx context.Context, conversationID string) ([]models.Reaction, error) {
	items, err := s.ds.QueryItems(ctx, models.ReactionsTable, &dynamodb.QueryInput{
		KeyConditionExpression:    aws.String("conversationId = :c"),
		ExpressionAttributeValues: map[string]types.AttributeValue{":c": S(conversationID)},
	}, 0)
	if err != nil {
		return nil, err
	}
	return unmarshalList[models.Reaction](items)
}
