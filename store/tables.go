package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"cupidwave/models"
)

type tableSpec struct {
	hashKey  string
	rangeKey string
	indexes  []indexSpec
}

type indexSpec struct {
	name     string
	hashKey  string
	rangeKey string
}

var tableSpecs = map[string]tableSpec{
	models.ProfilesTable:           {hashKey: "userId"},
	models.MatchmakingAnswersTable: {hashKey: "userId"},
	models.SwipesTable: {hashKey: "PK", rangeKey: "SK", indexes: []indexSpec{
		{name: models.SwipeTargetIndex, hashKey: "targetId", rangeKey: "swiperId"},
	}},
	models.ConversationsTable: {hashKey: "conversationId"},
	models.ParticipantsTable:  {hashKey: "userId", rangeKey: "conversationId"},
	models.MessagesTable:      {hashKey: "conversationId", rangeKey: "messageId"},
	models.ReactionsTable:     {hashKey: "conversationId", rangeKey: "SK"},
	models.BlocksTable: {hashKey: "blockerId", rangeKey: "blockedId", indexes: []indexSpec{
		{name: models.BlockedIndex, hashKey: "blockedId", rangeKey: "blockerId"},
	}},
	models.ReportsTable: {hashKey: "reportId", indexes: []indexSpec{
		{name: models.ReportStatusIndex, hashKey: "status", rangeKey: "createdAt"},
	}},
	models.GroupProposalsTable: {hashKey: "proposalId"},
	models.PurchasesTable:      {hashKey: "sessionId"},
	models.NotificationsTable:  {hashKey: "userId", rangeKey: "SK"},
}

// TableDefinitions returns the CreateTable input of every table, on-demand billing.
func TableDefinitions(prefix string) []*dynamodb.CreateTableInput {
	out := make([]*dynamodb.CreateTableInput, 0, len(models.AllTables))
	for _, name := range models.AllTables {
		spec := tableSpecs[name]
		attrs := map[string]bool{}
		var definitions []types.AttributeDefinition
		define := func(attr string) {
			if attr == "" || attrs[attr] {
				return
			}
			attrs[attr] = true
			definitions = append(definitions, types.AttributeDefinition{
				AttributeName: aws.String(attr),
				AttributeType: types.ScalarAttributeTypeS,
			})
		}

		define(spec.hashKey)
		define(spec.rangeKey)
		input := &dynamodb.CreateTableInput{
			TableName:   aws.String(prefix + name),
			BillingMode: types.BillingModePayPerRequest,
			KeySchema:   keySchema(spec.hashKey, spec.rangeKey),
		}
		for _, idx := range spec.indexes {
			define(idx.hashKey)
			define(idx.rangeKey)
			input.GlobalSecondaryIndexes = append(input.GlobalSecondaryIndexes, types.GlobalSecondaryIndex{
				IndexName:  aws.String(idx.name),
				KeySchema:  keySchema(idx.hashKey, idx.rangeKey),
				Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
			})
		}
		input.AttributeDefinitions = definitions
		out = append(out, input)
	}
	return out
}

func keySchema(hash, rng string) []types.KeySchemaElement {
	schema := []types.KeySchemaElement{{AttributeName: aws.String(hash), KeyType: types.KeyTypeHash}}
	if rng != "" {
		schema = append(schema, types.KeySchemaElement{AttributeName: aws.String(rng), KeyType: types.KeyTypeRange})
	}
	return schema
}

// CreateTables creates every missing table. Existing tables are left untouched.
func CreateTables(ctx context.Context, ds *DynamoService) ([]string, error) {
	var created []string
	for _, input := range TableDefinitions(ds.Prefix) {
		_, err := ds.Client.CreateTable(ctx, input)
		if err != nil {
			var inUse *types.ResourceInUseException
			if errors.As(err, &inUse) {
				ds.Log.Infow("table already exists", "table", aws.ToString(input.TableName))
				continue
			}
			return created, fmt.Errorf("failed to create table '%s': %w", aws.ToString(input.TableName), err)
		}
		ds.Log.Infow("table created", "table", aws.ToString(input.TableName))
		created = append(created, aws.ToString(input.TableName))
	}
	return created, nil
}
