package store

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/ivantsev/liftlog"
)

// maxBatchWriteItems is the DynamoDB BatchWriteItem request ceiling
const maxBatchWriteItems = 25

// batchWriteRetries bounds the UnprocessedItems retry loop; the backoff
// doubles from batchWriteBackoff on each attempt.
const (
	batchWriteRetries = 3
	batchWriteBackoff = 50 * time.Millisecond
)

// DynamoDBStore implements liftlog.EntryStore using AWS DynamoDB
type DynamoDBStore struct {
	client    DynamoDBClient
	tableName string
}

// NewDynamoDBStore creates a new DynamoDB-backed entry store
func NewDynamoDBStore(client DynamoDBClient, tableName string) liftlog.EntryStore {
	return &DynamoDBStore{
		client:    client,
		tableName: tableName,
	}
}

func (s *DynamoDBStore) PutEntry(ctx context.Context, entry *liftlog.WorkoutEntry) error {
	// Marshal the entry
	item, err := attributevalue.MarshalMap(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal workout entry: %w", err)
	}

	// Add keys
	item[AttrPK] = &types.AttributeValueMemberS{Value: tenantPK(entry.TenantID)}
	item[AttrSK] = &types.AttributeValueMemberS{Value: entrySK(entry.EntryID)}
	item[AttrEntityType] = &types.AttributeValueMemberS{Value: EntityTypeWorkoutEntry}

	// Put item
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to put workout entry: %w", err)
	}

	return nil
}

func (s *DynamoDBStore) ListEntries(ctx context.Context, tenantID string) ([]*liftlog.WorkoutEntry, error) {
	entries := []*liftlog.WorkoutEntry{}
	var lastEvaluatedKey map[string]types.AttributeValue

	// Paginate through the tenant's full history
	for {
		queryInput := &dynamodb.QueryInput{
			TableName:              aws.String(s.tableName),
			KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :sk)"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":pk": &types.AttributeValueMemberS{Value: tenantPK(tenantID)},
				":sk": &types.AttributeValueMemberS{Value: entryPrefix()},
			},
		}

		if lastEvaluatedKey != nil {
			queryInput.ExclusiveStartKey = lastEvaluatedKey
		}

		result, err := s.client.Query(ctx, queryInput)
		if err != nil {
			return nil, fmt.Errorf("failed to list workout entries: %w", err)
		}

		for _, item := range result.Items {
			var entry liftlog.WorkoutEntry
			if err := attributevalue.UnmarshalMap(item, &entry); err != nil {
				return nil, fmt.Errorf("failed to unmarshal workout entry: %w", err)
			}
			entries = append(entries, &entry)
		}

		// Check if there are more results
		if result.LastEvaluatedKey == nil {
			break
		}
		lastEvaluatedKey = result.LastEvaluatedKey
	}

	return entries, nil
}

func (s *DynamoDBStore) ListRecent(ctx context.Context, tenantID string, limit int) ([]*liftlog.WorkoutEntry, error) {
	// ScanIndexForward=false walks the sort key range newest-first, so a
	// single limited query is enough.
	result, err := s.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.tableName),
		KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :sk)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: tenantPK(tenantID)},
			":sk": &types.AttributeValueMemberS{Value: entryPrefix()},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(int32(limit)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list recent workout entries: %w", err)
	}

	entries := make([]*liftlog.WorkoutEntry, 0, len(result.Items))
	for _, item := range result.Items {
		var entry liftlog.WorkoutEntry
		if err := attributevalue.UnmarshalMap(item, &entry); err != nil {
			return nil, fmt.Errorf("failed to unmarshal workout entry: %w", err)
		}
		entries = append(entries, &entry)
	}

	return entries, nil
}

func (s *DynamoDBStore) DeleteEntries(ctx context.Context, tenantID string) error {
	entries, err := s.ListEntries(ctx, tenantID)
	if err != nil {
		return err
	}

	// Delete in BatchWriteItem-sized chunks
	for start := 0; start < len(entries); start += maxBatchWriteItems {
		end := start + maxBatchWriteItems
		if end > len(entries) {
			end = len(entries)
		}

		requests := make([]types.WriteRequest, 0, end-start)
		for _, entry := range entries[start:end] {
			requests = append(requests, types.WriteRequest{
				DeleteRequest: &types.DeleteRequest{
					Key: map[string]types.AttributeValue{
						AttrPK: &types.AttributeValueMemberS{Value: tenantPK(tenantID)},
						AttrSK: &types.AttributeValueMemberS{Value: entrySK(entry.EntryID)},
					},
				},
			})
		}

		if err := s.batchDelete(ctx, requests); err != nil {
			return err
		}
	}

	return nil
}

// batchDelete issues one BatchWriteItem and retries whatever DynamoDB hands
// back in UnprocessedItems. A throttled batch reports success with the failed
// requests in that field, so ignoring it would drop deletions silently.
func (s *DynamoDBStore) batchDelete(ctx context.Context, requests []types.WriteRequest) error {
	requestItems := map[string][]types.WriteRequest{
		s.tableName: requests,
	}

	for attempt := 0; ; attempt++ {
		result, err := s.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: requestItems,
		})
		if err != nil {
			return fmt.Errorf("failed to delete workout entries: %w", err)
		}

		remaining := len(result.UnprocessedItems[s.tableName])
		if remaining == 0 {
			return nil
		}
		if attempt >= batchWriteRetries {
			return fmt.Errorf("failed to delete workout entries: %d requests still unprocessed after %d retries", remaining, batchWriteRetries)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(batchWriteBackoff << attempt):
		}

		requestItems = result.UnprocessedItems
	}
}
