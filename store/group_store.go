package store

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"cupidwave/models"
)

// GroupProposalStore persists group proposals with optimistic versioning.
type GroupProposalStore struct {
	ds *DynamoService
}

func NewGroupProposalStore(ds *DynamoService) *GroupProposalStore {
	return &GroupProposalStore{ds: ds}
}

func (s *GroupProposalStore) Create(ctx context.Context, p *models.GroupProposal) error {
	p.Version = 1
	return s.ds.PutItemWithCondition(ctx, models.GroupProposalsTable, p, "attribute_not_exists(proposalId)", nil, nil)
}

func (s *GroupProposalStore) Get(ctx context.Context, proposalID string) (*models.GroupProposal, error) {
	var p models.GroupProposal
	found, err := s.ds.GetItem(ctx, models.GroupProposalsTable, map[string]types.AttributeValue{"proposalId": S(proposalID)}, &p)
	if err != nil || !found {
		return nil, err
	}
	return &p, nil
}

// Save writes p if nobody changed it since it was read. ErrConditionFailed reports a lost race.
func (s *GroupProposalStore) Save(ctx context.Context, p *models.GroupProposal) error {
	expected := p.Version
	p.Version = expected + 1
	err := s.ds.PutItemWithCondition(ctx, models.GroupProposalsTable, p,
		"#version = :expected",
		map[string]string{"#version": "version"},
		map[string]types.AttributeValue{":expected": N(expected)},
	)
	if err != nil {
		p.Version = expected
	}
	return err
}

// ListForUser returns every proposal userID is a member of.
func (s *GroupProposalStore) ListForUser(ctx context.Context, userID string) ([]models.GroupProposal, error) {
	items, err := s.ds.ScanItems(ctx, models.GroupProposalsTable, &dynamodb.ScanInput{
		FilterExpression:          aws.String("contains(memberIds, :u)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{":u": S(userID)},
	})
	if err != nil {
		return nil, err
	}
	return unmarshalList[models.GroupProposal](items)
}
