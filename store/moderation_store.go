package store

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"cupidwave/models"
)

// BlockStore persists blocks.
type BlockStore struct {
	ds *DynamoService
}

func NewBlockStore(ds *DynamoService) *BlockStore {
	return &BlockStore{ds: ds}
}

func blockKey(blockerID, blockedID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{"blockerId": S(blockerID), "blockedId": S(blockedID)}
}

func (s *BlockStore) Put(ctx context.Context, b *models.Block) error {
	return s.ds.PutItem(ctx, models.BlocksTable, b)
}

func (s *BlockStore) Delete(ctx context.Context, blockerID, blockedID string) error {
	return s.ds.DeleteItem(ctx, models.BlocksTable, blockKey(blockerID, blockedID))
}

// Exists reports whether blockerID blocked blockedID.
func (s *BlockStore) Exists(ctx context.Context, blockerID, blockedID string) (bool, error) {
	var b models.Block
	return s.ds.GetItem(ctx, models.BlocksTable, blockKey(blockerID, blockedID), &b)
}

// ListByBlocker returns the users blockerID blocked.
func (s *BlockStore) ListByBlocker(ctx context.Context, blockerID string) ([]models.Block, error) {
	items, err := s.ds.QueryItems(ctx, models.BlocksTable, &dynamodb.QueryInput{
		KeyConditionExpression:    aws.String("blockerId = :b"),
		ExpressionAttributeValues: map[string]types.AttributeValue{":b": S(blockerID)},
	}, 0)
	if err != nil {
		return nil, err
	}
	return unmarshalList[models.Block](items)
}

// ListByBlocked returns the blocks targeting blockedID.
func (s *BlockStore) ListByBlocked(ctx context.Context, blockedID string) ([]models.Block, error) {
	items, err := s.ds.QueryItems(ctx, models.BlocksTable, &dynamodb.QueryInput{
		IndexName:                 aws.String(models.BlockedIndex),
		KeyConditionExpression:    aws.String("blockedId = :b"),
		ExpressionAttributeValues: map[string]types.AttributeValue{":b": S(blockedID)},
	}, 0)
	if err != nil {
		return nil, err
	}
	return unmarshalList[models.Block](items)
}

// ReportStore persists reports.
type ReportStore struct {
	ds *DynamoService
}

func NewReportStore(ds *DynamoService) *ReportStore {
	return &ReportStore{ds: ds}
}

func (s *ReportStore) Put(ctx context.Context, r *models.Report) error {
	return s.ds.PutItem(ctx, models.ReportsTable, r)
}

func (s *ReportStore) Get(ctx context.Context, reportID string) (*models.Report, error) {
	var r models.Report
	found, err := s.ds.GetItem(ctx, models.ReportsTable, map[string]types.AttributeValue{"reportId": S(reportID)}, &r)
	if err != nil || !found {
		return nil, err
	}
	return &r, nil
}

// ListByStatus returns reports with status, newest first.
func (s *ReportStore) ListByStatus(ctx context.Context, status string) ([]models.Report, error) {
	items, err := s.ds.QueryItems(ctx, models.ReportsTable, &dynamodb.QueryInput{
		IndexName:                 aws.String(models.ReportStatusIndex),
		KeyConditionExpression:    aws.String("#status = :s"),
		ExpressionAttributeNames:  map[string]string{"#status": "status"},
		ExpressionAttributeValues: map[string]types.AttributeValue{":s": S(status)},
		ScanIndexForward:          aws.Bool(false),
	}, 0)
	if err != nil {
		return nil, err
	}
	return unmarshalList[models.Report](items)
}

// Resolve closes an open report. ErrConditionFailed means it was not open anymore.
func (s *ReportStore) Resolve(ctx context.Context, reportID, status, note, adminID, at string) (*models.Report, error) {
	attrs, err := s.ds.UpdateItem(ctx, models.ReportsTable, &dynamodb.UpdateItemInput{
		Key:                      map[string]types.AttributeValue{"reportId": S(reportID)},
		UpdateExpression:         aws.String("SET #status = :s, adminNote = :note, resolvedBy = :by, updatedAt = :at"),
		ConditionExpression:      aws.String("#status = :open"),
		ExpressionAttributeNames: map[string]string{"#status": "status"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":s":    S(status),
			":note": S(note),
			":by":   S(adminID),
			":at":   S(at),
			":open": S(models.StatusOpen),
		},
	})
	if err != nil {
		return nil, err
	}
	var r models.Report
	if err := attributevalue.UnmarshalMap(attrs, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
