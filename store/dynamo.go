package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"cupidwave/config"
)

// ErrConditionFailed is returned when a conditional write lost against the stored state.
var ErrConditionFailed = errors.New("condition check failed")

// DynamoAPI is the subset of *dynamodb.Client the stores use.
type DynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

// DynamoService wraps the client with table naming and the common item helpers.
type DynamoService struct {
	Client DynamoAPI
	Prefix string
	Log    *zap.SugaredLogger
}

// LoadAWSConfig resolves credentials the standard AWS way for the configured region.
func LoadAWSConfig(ctx context.Context, cfg config.AWSConfig) (aws.Config, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return awsCfg, nil
}

// NewDynamoClient builds a DynamoDB client, pointing it at a local endpoint when one is set.
func NewDynamoClient(awsCfg aws.Config, cfg config.AWSConfig) *dynamodb.Client {
	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.DynamoEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.DynamoEndpoint)
		}
	})
}

// NewDynamoService builds the helper around a client.
func NewDynamoService(client DynamoAPI, prefix string, log *zap.SugaredLogger) *DynamoService {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &DynamoService{Client: client, Prefix: prefix, Log: log}
}

// Table returns the physical name of a table.
func (ds *DynamoService) Table(name string) string {
	return ds.Prefix + name
}

// GetItem fetches one item into out. It returns false when the item does not exist.
func (ds *DynamoService) GetItem(ctx context.Context, table string, key map[string]types.AttributeValue, out interface{}) (bool, error) {
	output, err := ds.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(ds.Table(table)),
		Key:            key,
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return false, fmt.Errorf("failed to get item from table '%s': %w", table, err)
	}
	if len(output.Item) == 0 {
		return false, nil
	}
	if err := attributevalue.UnmarshalMap(output.Item, out); err != nil {
		return false, fmt.Errorf("failed to unmarshal item from table '%s': %w", table, err)
	}
	return true, nil
}

// PutItem marshals and stores item, overwriting any previous version.
func (ds *DynamoService) PutItem(ctx context.Context, table string, item interface{}) error {
	return ds.PutItemWithCondition(ctx, table, item, "", nil, nil)
}

// PutItemWithCondition stores item only when condition holds. A failed condition returns ErrConditionFailed.
func (ds *DynamoService) PutItemWithCondition(
	ctx context.Context,
	table string,
	item interface{},
	condition string,
	names map[string]string,
	values map[string]types.AttributeValue,
) error {
	marshaledItem, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}
	input := &dynamodb.PutItemInput{
		TableName: aws.String(ds.Table(table)),
		Item:      marshaledItem,
	}
	if condition != "" {
		input.ConditionExpression = aws.String(condition)
		if len(names) > 0 {
			input.ExpressionAttributeNames = names
		}
		if len(values) > 0 {
			input.ExpressionAttributeValues = values
		}
	}
	if _, err := ds.Client.PutItem(ctx, input); err != nil {
		if isConditionalCheckFailed(err) {
			return ErrConditionFailed
		}
		return fmt.Errorf("failed to put item in table '%s': %w", table, err)
	}
	return nil
}

// UpdateItem runs an update expression and returns the new attributes.
func (ds *DynamoService) UpdateItem(ctx context.Context, table string, input *dynamodb.UpdateItemInput) (map[string]types.AttributeValue, error) {
	if len(input.Key) == 0 {
		return nil, errors.New("update failed: key cannot be empty")
	}
	if input.UpdateExpression == nil || *input.UpdateExpression == "" {
		return nil, errors.New("update failed: updateExpression cannot be empty")
	}
	input.TableName = aws.String(ds.Table(table))
	if input.ReturnValues == "" {
		input.ReturnValues = types.ReturnValueAllNew
	}
	output, err := ds.Client.UpdateItem(ctx, input)
	if err != nil {
		if isConditionalCheckFailed(err) {
			return nil, ErrConditionFailed
		}
		return nil, fmt.Errorf("failed to update item in table '%s': %w", table, err)
	}
	if output.Attributes == nil {
		return map[string]types.AttributeValue{}, nil
	}
	return output.Attributes, nil
}

// DeleteItem removes an item. Deleting a missing item is not an error.
func (ds *DynamoService) DeleteItem(ctx context.Context, table string, key map[string]types.AttributeValue) error {
	_, err := ds.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(ds.Table(table)),
		Key:       key,
	})
	if err != nil {
		return fmt.Errorf("failed to delete item from table '%s': %w", table, err)
	}
	return nil
}

// QueryItems follows LastEvaluatedKey until limit items are read (limit <= 0 reads everything).
func (ds *DynamoService) QueryItems(ctx context.Context, table string, input *dynamodb.QueryInput, limit int) ([]map[string]types.AttributeValue, error) {
	input.TableName = aws.String(ds.Table(table))
	var items []map[string]types.AttributeValue
	for {
		if limit > 0 {
			input.Limit = aws.Int32(int32(limit - len(items)))
		}
		output, err := ds.Client.Query(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to query table '%s': %w", table, err)
		}
		items = append(items, output.Items...)
		if len(output.LastEvaluatedKey) == 0 || (limit > 0 && len(items) >= limit) {
			return items, nil
		}
		input.ExclusiveStartKey = output.LastEvaluatedKey
	}
}

// CountItems runs a COUNT query and sums the pages.
func (ds *DynamoService) CountItems(ctx context.Context, table string, input *dynamodb.QueryInput) (int, error) {
	input.TableName = aws.String(ds.Table(table))
	input.Select = types.SelectCount
	total := 0
	for {
		output, err := ds.Client.Query(ctx, input)
		if err != nil {
			return 0, fmt.Errorf("failed to count items in table '%s': %w", table, err)
		}
		total += int(output.Count)
		if len(output.LastEvaluatedKey) == 0 {
			return total, nil
		}
		input.ExclusiveStartKey = output.LastEvaluatedKey
	}
}

// ScanItems reads a whole table, optionally filtered server side.
func (ds *DynamoService) ScanItems(ctx context.Context, table string, input *dynamodb.ScanInput) ([]map[string]types.AttributeValue, error) {
	if input == nil {
		input = &dynamodb.ScanInput{}
	}
	input.TableName = aws.String(ds.Table(table))
	var items []map[string]types.AttributeValue
	for {
		output, err := ds.Client.Scan(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to scan table '%s': %w", table, err)
		}
		items = append(items, output.Items...)
		if len(output.LastEvaluatedKey) == 0 {
			return items, nil
		}
		input.ExclusiveStartKey = output.LastEvaluatedKey
	}
}

// TransactWrite applies items atomically. A failed condition on any item returns ErrConditionFailed.
func (ds *DynamoService) TransactWrite(ctx context.Context, items []types.TransactWriteItem) error {
	_, err := ds.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err == nil {
		return nil
	}
	var canceled *types.TransactionCanceledException
	if errors.As(err, &canceled) {
		for _, reason := range canceled.CancellationReasons {
			if aws.ToString(reason.Code) == "ConditionalCheckFailed" {
				return ErrConditionFailed
			}
		}
	}
	return fmt.Errorf("failed to write transaction: %w", err)
}

// ItemCount returns the approximate item count DynamoDB reports for a table.
func (ds *DynamoService) ItemCount(ctx context.Context, table string) (int64, error) {
	output, err := ds.Client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(ds.Table(table))})
	if err != nil {
		return 0, fmt.Errorf("failed to describe table '%s': %w", table, err)
	}
	return aws.ToInt64(output.Table.ItemCount), nil
}

func isConditionalCheckFailed(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	return errors.As(err, &ccf)
}

// S returns a string attribute value.
func S(v string) types.AttributeValue {
	return &types.AttributeValueMemberS{Value: v}
}

// N returns a number attribute value.
func N(v int) types.AttributeValue {
	return &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", v)}
}

// B returns a boolean attribute value.
func B(v bool) types.AttributeValue {
	return &types.AttributeValueMemberBOOL{Value: v}
}

func unmarshalList[T any](items []map[string]types.AttributeValue) ([]T, error) {
	out := make([]T, 0, len(items))
	if err := attributevalue.UnmarshalListOfMaps(items, &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal items: %w", err)
	}
	return out, nil
}

func putRequest(table string, item interface{}) (types.TransactWriteItem, error) {
	marshaled, err := attributevalue.MarshalMap(item)
	if err != nil {
		return types.TransactWriteItem{}, fmt.Errorf("failed to marshal item: %w", err)
	}
	return types.TransactWriteItem{Put: &types.Put{TableName: aws.String(table), Item: marshaled}}, nil
}

func unmarshalInto(attrs map[string]types.AttributeValue, out interface{}) error {
	if err := attributevalue.UnmarshalMap(attrs, out); err != nil {
		return fmt.Errorf("failed to unmarshal item: %w", err)
	}
	return nil
}
