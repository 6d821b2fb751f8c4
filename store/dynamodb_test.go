package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/ivantsev/liftlog"
)

// mockDynamoDBClient implements DynamoDBClient interface for testing
type mockDynamoDBClient struct {
	putItemFunc        func(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	queryFunc          func(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	batchWriteItemFunc func(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
}

func (m *mockDynamoDBClient) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if m.putItemFunc != nil {
		return m.putItemFunc(ctx, params, optFns...)
	}
	return &dynamodb.PutItemOutput{}, nil
}

func (m *mockDynamoDBClient) Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	if m.queryFunc != nil {
		return m.queryFunc(ctx, params, optFns...)
	}
	return &dynamodb.QueryOutput{}, nil
}

func (m *mockDynamoDBClient) BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error) {
	if m.batchWriteItemFunc != nil {
		return m.batchWriteItemFunc(ctx, params, optFns...)
	}
	return &dynamodb.BatchWriteItemOutput{}, nil
}

func testEntry(tenantID, entryID string) *liftlog.WorkoutEntry {
	return &liftlog.WorkoutEntry{
		TenantID:    tenantID,
		EntryID:     entryID,
		WorkoutType: liftlog.WorkoutPush,
		Exercise:    "Bench Press",
		Repetitions: 10,
		Timestamp:   time.Now().UTC(),
	}
}

func TestNewDynamoDBStore(t *testing.T) {
	client := &mockDynamoDBClient{}
	store := NewDynamoDBStore(client, "test-table")

	if store == nil {
		t.Fatal("NewDynamoDBStore() returned nil")
	}

	// Verify it implements the interface
	var _ liftlog.EntryStore = store
}

func TestDynamoDBStore_PutEntry(t *testing.T) {
	var capturedInput *dynamodb.PutItemInput

	client := &mockDynamoDBClient{
		putItemFunc: func(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
			capturedInput = params
			return &dynamodb.PutItemOutput{}, nil
		},
	}

	store := NewDynamoDBStore(client, "test-table").(*DynamoDBStore)
	ctx := context.Background()

	entry := testEntry("42", "0001700000000000#aaaa1111")
	if err := store.PutEntry(ctx, entry); err != nil {
		t.Fatalf("PutEntry() failed: %v", err)
	}

	if capturedInput == nil {
		t.Fatal("PutItem was not called")
	}

	if *capturedInput.TableName != "test-table" {
		t.Errorf("TableName = %s, want test-table", *capturedInput.TableName)
	}

	// Check PK
	pk, ok := capturedInput.Item[AttrPK]
	if !ok {
		t.Fatal("PK not set")
	}
	pkValue := pk.(*types.AttributeValueMemberS).Value
	expectedPK := tenantPK(entry.TenantID)
	if pkValue != expectedPK {
		t.Errorf("PK = %s, want %s", pkValue, expectedPK)
	}

	// Check SK
	sk, ok := capturedInput.Item[AttrSK]
	if !ok {
		t.Fatal("SK not set")
	}
	skValue := sk.(*types.AttributeValueMemberS).Value
	expectedSK := entrySK(entry.EntryID)
	if skValue != expectedSK {
		t.Errorf("SK = %s, want %s", skValue, expectedSK)
	}

	// Check entity type
	et, ok := capturedInput.Item[AttrEntityType]
	if !ok {
		t.Fatal("entity_type not set")
	}
	if et.(*types.AttributeValueMemberS).Value != EntityTypeWorkoutEntry {
		t.Errorf("entity_type = %s, want %s", et.(*types.AttributeValueMemberS).Value, EntityTypeWorkoutEntry)
	}
}

func TestDynamoDBStore_PutEntry_ClientError(t *testing.T) {
	client := &mockDynamoDBClient{
		putItemFunc: func(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
			return nil, errors.New("throttled")
		},
	}

	store := NewDynamoDBStore(client, "test-table")
	err := store.PutEntry(context.Background(), testEntry("42", "e1"))
	if err == nil {
		t.Fatal("PutEntry() should have failed")
	}
}

func TestDynamoDBStore_ListRecent(t *testing.T) {
	var capturedInput *dynamodb.QueryInput

	client := &mockDynamoDBClient{
		queryFunc: func(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
			capturedInput = params
			return &dynamodb.QueryOutput{}, nil
		},
	}

	store := NewDynamoDBStore(client, "test-table")
	entries, err := store.ListRecent(context.Background(), "42", 3)
	if err != nil {
		t.Fatalf("ListRecent() failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("ListRecent() returned %d entries, want 0", len(entries))
	}

	if capturedInput == nil {
		t.Fatal("Query was not called")
	}
	if capturedInput.ScanIndexForward == nil || *capturedInput.ScanIndexForward {
		t.Error("ListRecent() should query with ScanIndexForward=false")
	}
	if capturedInput.Limit == nil || *capturedInput.Limit != 3 {
		t.Error("ListRecent() should pass the limit through to the query")
	}

	pk := capturedInput.ExpressionAttributeValues[":pk"].(*types.AttributeValueMemberS).Value
	if pk != tenantPK("42") {
		t.Errorf("query PK = %s, want %s", pk, tenantPK("42"))
	}
}

func TestDynamoDBStore_ListEntries_Paginates(t *testing.T) {
	calls := 0

	client := &mockDynamoDBClient{
		queryFunc: func(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
			calls++
			if calls == 1 {
				return &dynamodb.QueryOutput{
					Items: []map[string]types.AttributeValue{
						{
							"tenant_id":    &types.AttributeValueMemberS{Value: "42"},
							"entry_id":     &types.AttributeValueMemberS{Value: "e1"},
							"workout_type": &types.AttributeValueMemberS{Value: "Push"},
							"exercise":     &types.AttributeValueMemberS{Value: "Bench Press"},
							"repetitions":  &types.AttributeValueMemberN{Value: "10"},
						},
					},
					LastEvaluatedKey: map[string]types.AttributeValue{
						AttrPK: &types.AttributeValueMemberS{Value: tenantPK("42")},
					},
				}, nil
			}
			return &dynamodb.QueryOutput{
				Items: []map[string]types.AttributeValue{
					{
						"tenant_id":    &types.AttributeValueMemberS{Value: "42"},
						"entry_id":     &types.AttributeValueMemberS{Value: "e2"},
						"workout_type": &types.AttributeValueMemberS{Value: "Pull"},
						"exercise":     &types.AttributeValueMemberS{Value: "Deadlift"},
						"repetitions":  &types.AttributeValueMemberN{Value: "5"},
					},
				},
			}, nil
		},
	}

	store := NewDynamoDBStore(client, "test-table")
	entries, err := store.ListEntries(context.Background(), "42")
	if err != nil {
		t.Fatalf("ListEntries() failed: %v", err)
	}

	if calls != 2 {
		t.Errorf("ListEntries() made %d queries, want 2", calls)
	}
	if len(entries) != 2 {
		t.Fatalf("ListEntries() returned %d entries, want 2", len(entries))
	}
	if entries[0].EntryID != "e1" || entries[1].EntryID != "e2" {
		t.Errorf("ListEntries() order = [%s %s], want [e1 e2]", entries[0].EntryID, entries[1].EntryID)
	}
}

func TestDynamoDBStore_DeleteEntries(t *testing.T) {
	var capturedBatch *dynamodb.BatchWriteItemInput

	client := &mockDynamoDBClient{
		queryFunc: func(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
			return &dynamodb.QueryOutput{
				Items: []map[string]types.AttributeValue{
					{
						"tenant_id": &types.AttributeValueMemberS{Value: "42"},
						"entry_id":  &types.AttributeValueMemberS{Value: "e1"},
					},
					{
						"tenant_id": &types.AttributeValueMemberS{Value: "42"},
						"entry_id":  &types.AttributeValueMemberS{Value: "e2"},
					},
				},
			}, nil
		},
		batchWriteItemFunc: func(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error) {
			capturedBatch = params
			return &dynamodb.BatchWriteItemOutput{}, nil
		},
	}

	store := NewDynamoDBStore(client, "test-table")
	if err := store.DeleteEntries(context.Background(), "42"); err != nil {
		t.Fatalf("DeleteEntries() failed: %v", err)
	}

	if capturedBatch == nil {
		t.Fatal("BatchWriteItem was not called")
	}

	requests := capturedBatch.RequestItems["test-table"]
	if len(requests) != 2 {
		t.Fatalf("BatchWriteItem got %d delete requests, want 2", len(requests))
	}

	key := requests[0].DeleteRequest.Key
	if key[AttrPK].(*types.AttributeValueMemberS).Value != tenantPK("42") {
		t.Error("delete request PK does not match the purging tenant")
	}
	if key[AttrSK].(*types.AttributeValueMemberS).Value != entrySK("e1") {
		t.Error("delete request SK does not match the entry")
	}
}

func TestDynamoDBStore_DeleteEntries_RetriesUnprocessed(t *testing.T) {
	queryFunc := func(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
		return &dynamodb.QueryOutput{
			Items: []map[string]types.AttributeValue{
				{
					"tenant_id": &types.AttributeValueMemberS{Value: "42"},
					"entry_id":  &types.AttributeValueMemberS{Value: "e1"},
				},
				{
					"tenant_id": &types.AttributeValueMemberS{Value: "42"},
					"entry_id":  &types.AttributeValueMemberS{Value: "e2"},
				},
			},
		}, nil
	}

	// A throttled BatchWriteItem succeeds but hands the failed requests back
	// in UnprocessedItems. First call processes one of two requests; the
	// retry must carry exactly the leftover request.
	calls := 0
	var retriedBatch *dynamodb.BatchWriteItemInput

	client := &mockDynamoDBClient{
		queryFunc: queryFunc,
		batchWriteItemFunc: func(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error) {
			calls++
			if calls == 1 {
				return &dynamodb.BatchWriteItemOutput{
					UnprocessedItems: map[string][]types.WriteRequest{
						"test-table": params.RequestItems["test-table"][1:],
					},
				}, nil
			}
			retriedBatch = params
			return &dynamodb.BatchWriteItemOutput{}, nil
		},
	}

	store := NewDynamoDBStore(client, "test-table")
	if err := store.DeleteEntries(context.Background(), "42"); err != nil {
		t.Fatalf("DeleteEntries() failed: %v", err)
	}

	if calls != 2 {
		t.Fatalf("BatchWriteItem was called %d times, want 2", calls)
	}

	requests := retriedBatch.RequestItems["test-table"]
	if len(requests) != 1 {
		t.Fatalf("retry carried %d requests, want 1", len(requests))
	}
	if requests[0].DeleteRequest.Key[AttrSK].(*types.AttributeValueMemberS).Value != entrySK("e2") {
		t.Error("retry should carry the unprocessed request, not the whole batch")
	}

	// Everything acknowledged: all retries exhausted with no progress must
	// surface as an error, never a silent partial purge.
	client = &mockDynamoDBClient{
		queryFunc: queryFunc,
		batchWriteItemFunc: func(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error) {
			return &dynamodb.BatchWriteItemOutput{
				UnprocessedItems: params.RequestItems,
			}, nil
		},
	}

	store = NewDynamoDBStore(client, "test-table")
	if err := store.DeleteEntries(context.Background(), "42"); err == nil {
		t.Fatal("DeleteEntries() should fail when requests stay unprocessed")
	}
}

func TestDynamoDBStore_DeleteEntries_Empty(t *testing.T) {
	batchCalled := false

	client := &mockDynamoDBClient{
		batchWriteItemFunc: func(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error) {
			batchCalled = true
			return &dynamodb.BatchWriteItemOutput{}, nil
		},
	}

	store := NewDynamoDBStore(client, "test-table")
	if err := store.DeleteEntries(context.Background(), "42"); err != nil {
		t.Fatalf("DeleteEntries() failed: %v", err)
	}

	if batchCalled {
		t.Error("BatchWriteItem should not be called for an empty history")
	}
}
