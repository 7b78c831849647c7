package store

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"cupidwave/models"
)

// AnswerStore persists matchmaking questionnaire answers.
type AnswerStore struct {
	ds *DynamoService
}

func NewAnswerStore(ds *DynamoService) *AnswerStore {
	return &AnswerStore{ds: ds}
}

func (s *AnswerStore) Get(ctx context.Context, userID string) (*models.MatchmakingAnswers, error) {
	var answers models.MatchmakingAnswers
	found, err := s.ds.GetItem(ctx, models.MatchmakingAnswersTable, map[string]types.AttributeValue{"userId": S(userID)}, &answers)
	if err != nil || !found {
		return nil, err
	}
	return &answers, nil
}

func (s *AnswerStore) Put(ctx context.Context, answers *models.MatchmakingAnswers) error {
	return s.ds.PutItem(ctx, models.MatchmakingAnswersTable, answers)
}

// All returns every user's answers keyed by user id.
func (s *AnswerStore) All(ctx context.Context) (map[string]map[string]string, error) {
	items, err := s.ds.ScanItems(ctx, models.MatchmakingAnswersTable, nil)
	if err != nil {
		return nil, err
	}
	rows, err := unmarshalList[models.MatchmakingAnswers](items)
	if err != nil {
		return nil, err
	}
	out := make(map[string]map[string]string, len(rows))
	for _, row := range rows {
		out[row.UserID] = row.Answers
	}
	return out, nil
}
