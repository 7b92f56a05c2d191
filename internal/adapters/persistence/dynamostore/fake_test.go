package dynamostore

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type item = map[string]types.AttributeValue

// fakeDynamo is an in-memory API that understands the handful of
// expressions the repositories send.
type fakeDynamo struct {
	mu       sync.Mutex
	hashKey  map[string]string
	tables   map[string]map[string]item
	pageSize int
	failWith error
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{
		hashKey: map[string]string{"posts": keyAttr, "submissions": "id"},
		tables: map[string]map[string]item{
			"posts":       {},
			"submissions": {},
		},
		pageSize: 2,
	}
}

func (f *fakeDynamo) keyOf(table string, key item) string {
	return key[f.hashKey[table]].(*types.AttributeValueMemberS).Value
}

func (f *fakeDynamo) conditionHolds(table string, key string, cond *string) bool {
	if cond == nil {
		return true
	}

	_, exists := f.tables[table][key]

	switch {
	case strings.HasPrefix(*cond, "attribute_not_exists"):
		return !exists
	case strings.HasPrefix(*cond, "attribute_exists"):
		return exists
	default:
		panic("fake: unsupported condition " + *cond)
	}
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failWith != nil {
		return nil, f.failWith
	}

	table := aws.ToString(in.TableName)

	return &dynamodb.GetItemOutput{Item: f.tables[table][f.keyOf(table, in.Key)]}, nil
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failWith != nil {
		return nil, f.failWith
	}

	table := aws.ToString(in.TableName)
	key := f.keyOf(table, in.Item)

	if !f.conditionHolds(table, key, in.ConditionExpression) {
		return nil, &types.ConditionalCheckFailedException{Message: aws.String("condition failed")}
	}

	f.tables[table][key] = in.Item

	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) TransactWriteItems(_ context.Context, in *dynamodb.TransactWriteItemsInput, _ ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failWith != nil {
		return nil, f.failWith
	}

	reasons := make([]types.CancellationReason, len(in.TransactItems))
	failed := false

	for i, ti := range in.TransactItems {
		reasons[i].Code = aws.String("None")

		var table, key string

		var cond *string

		switch {
		case ti.Put != nil:
			table = aws.ToString(ti.Put.TableName)
			key = f.keyOf(table, ti.Put.Item)
			cond = ti.Put.ConditionExpression
		case ti.Delete != nil:
			table = aws.ToString(ti.Delete.TableName)
			key = f.keyOf(table, ti.Delete.Key)
			cond = ti.Delete.ConditionExpression
		}

		if !f.conditionHolds(table, key, cond) {
			reasons[i].Code = aws.String(codeConditionalCheckFailed)
			failed = true
		}
	}

	if failed {
		return nil, &types.TransactionCanceledException{
			Message:             aws.String("Transaction cancelled"),
			CancellationReasons: reasons,
		}
	}

	for _, ti := range in.TransactItems {
		switch {
		case ti.Put != nil:
			table := aws.ToString(ti.Put.TableName)
			f.tables[table][f.keyOf(table, ti.Put.Item)] = ti.Put.Item
		case ti.Delete != nil:
			table := aws.ToString(ti.Delete.TableName)
			delete(f.tables[table], f.keyOf(table, ti.Delete.Key))
		}
	}

	return &dynamodb.TransactWriteItemsOutput{}, nil
}

// Scan pages through items in key order and applies the type and published
// filters by their placeholder values.
func (f *fakeDynamo) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failWith != nil {
		return nil, f.failWith
	}

	table := aws.ToString(in.TableName)

	keys := make([]string, 0, len(f.tables[table]))
	for k := range f.tables[table] {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	start := 0
	if in.ExclusiveStartKey != nil {
		last := f.keyOf(table, in.ExclusiveStartKey)
		start, _ = slices.BinarySearch(keys, last)
		start++
	}

	end := min(start+f.pageSize, len(keys))

	out := &dynamodb.ScanOutput{}

	for _, k := range keys[start:end] {
		it := f.tables[table][k]
		if matchesFilter(it, in.ExpressionAttributeValues) {
			out.Items = append(out.Items, it)
		}
	}

	if end < len(keys) {
		out.LastEvaluatedKey = item{f.hashKey[table]: &types.AttributeValueMemberS{Value: keys[end-1]}}
	}

	return out, nil
}

func matchesFilter(it item, values map[string]types.AttributeValue) bool {
	if want, ok := values[":post"].(*types.AttributeValueMemberS); ok {
		got, _ := it["type"].(*types.AttributeValueMemberS)
		if got == nil || got.Value != want.Value {
			return false
		}
	}

	if want, ok := values[":published"].(*types.AttributeValueMemberBOOL); ok {
		got, _ := it["published"].(*types.AttributeValueMemberBOOL)
		if got == nil || got.Value != want.Value {
			return false
		}
	}

	return true
}

func (f *fakeDynamo) DescribeTable(_ context.Context, in *dynamodb.DescribeTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}

	if _, ok := f.tables[aws.ToString(in.TableName)]; !ok {
		return nil, &types.ResourceNotFoundException{Message: aws.String("no such table")}
	}

	return &dynamodb.DescribeTableOutput{Table: &types.TableDescription{
		TableName:   in.TableName,
		TableStatus: types.TableStatusActive,
	}}, nil
}

var errThrottled = errors.New("ProvisionedThroughputExceededException")
