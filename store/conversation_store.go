package store

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"cupidwave/models"
)

// ConversationStore persists conversations and their participant rows.
type ConversationStore struct {
	ds *DynamoService
}

func NewConversationStore(ds *DynamoService) *ConversationStore {
	return &ConversationStore{ds: ds}
}

func conversationKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{"conversationId": S(id)}
}

func participantKey(userID, conversationID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{"userId": S(userID), "conversationId": S(conversationID)}
}

func (s *ConversationStore) Get(ctx context.Context, conversationID string) (*models.Conversation, error) {
	var conv models.Conversation
	found, err := s.ds.GetItem(ctx, models.ConversationsTable, conversationKey(conversationID), &conv)
	if err != nil || !found {
		return nil, err
	}
	return &conv, nil
}

// Create writes the conversation, its participants and an optional opening message in
// one transaction. ErrConditionFailed means the conversation already exists.
func (s *ConversationStore) Create(ctx context.Context, conv *models.Conversation, participants []models.Participant, opening *models.Message) error {
	convPut, err := putRequest(s.ds.Table(models.ConversationsTable), conv)
	if err != nil {
		return err
	}
	convPut.Put.ConditionExpression = aws.String("attribute_not_exists(conversationId)")

	items := []types.TransactWriteItem{convPut}
	for i := range participants {
		put, err := putRequest(s.ds.Table(models.ParticipantsTable), &participants[i])
		if err != nil {
			return err
		}
		items = append(items, put)
	}
	if opening != nil {
		put, err := putRequest(s.ds.Table(models.MessagesTable), opening)
		if err != nil {
			return err
		}
		items = append(items, put)
	}
	return s.ds.TransactWrite(ctx, items)
}

// ListParticipations returns the conversations userID belongs to.
func (s *ConversationStore) ListParticipations(ctx context.Context, userID string) ([]models.Participant, error) {
	items, err := s.ds.QueryItems(ctx, models.ParticipantsTable, &dynamodb.QueryInput{
		KeyConditionExpression:    aws.String("userId = :u"),
		ExpressionAttributeValues: map[string]types.AttributeValue{":u": S(userID)},
	}, 0)
	if err != nil {
		return nil, err
	}
	return unmarshalList[models.Participant](items)
}

// GetParticipant returns nil when userID is not part of the conversation.
func (s *ConversationStore) GetParticipant(ctx context.Context, userID, conversationID string) (*models.Participant, error) {
	var p models.Participant
	found, err := s.ds.GetItem(ctx, models.ParticipantsTable, participantKey(userID, conversationID), &p)
	if err != nil || !found {
		return nil, err
	}
	return &p, nil
}

// MarkRead moves the participant's read marker to at.
func (s *ConversationStore) MarkRead(ctx context.Context, userID, conversationID, at string) error {
	_, err := s.ds.UpdateItem(ctx, models.ParticipantsTable, &dynamodb.UpdateItemInput{
		Key:                       participantKey(userID, conversationID),
		UpdateExpression:          aws.String("SET lastReadAt = :at"),
		ConditionExpression:       aws.String("attribute_exists(userId)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{":at": S(at)},
		ReturnValues:              types.ReturnValueNone,
	})
	return err
}

// Touch records the latest activity shown in the inbox.
func (s *ConversationStore) Touch(ctx context.Context, conversationID, at, preview string) error {
	_, err := s.ds.UpdateItem(ctx, models.ConversationsTable, &dynamodb.UpdateItemInput{
		Key:                       conversationKey(conversationID),
		UpdateExpression:          aws.String("SET lastMessageAt = :at, lastMessagePreview = :preview"),
		ConditionExpression:       aws.String("attribute_exists(conversationId)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{":at": S(at), ":preview": S(preview)},
		ReturnValues:              types.ReturnValueNone,
	})
	return err
}
