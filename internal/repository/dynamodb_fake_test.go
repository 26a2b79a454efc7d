package repository

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}

// fakeDynamo is an in-memory stand-in for the DynamoDbAPI interface. It keys
// items by pk/sk and understands the one filter expression the repositories
// use ("sk = :sk").
type fakeDynamo struct {
	items map[string]map[string]types.AttributeValue
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{items: map[string]map[string]types.AttributeValue{}}
}

func itemKey(attrs map[string]types.AttributeValue) string {
	pk, _ := attrs["pk"].(*types.AttributeValueMemberS)
	sk, _ := attrs["sk"].(*types.AttributeValueMemberS)
	if pk == nil || sk == nil {
		return ""
	}
	return fmt.Sprintf("%s|%s", pk.Value, sk.Value)
}

func (f *fakeDynamo) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	item, ok := f.items[itemKey(params.Key)]
	if !ok {
		return &dynamodb.GetItemOutput{}, nil
	}
	return &dynamodb.GetItemOutput{Item: item}, nil
}

func (f *fakeDynamo) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.items[itemKey(params.Item)] = params.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	var wantSK string
	if params.FilterExpression != nil {
		if v, ok := params.ExpressionAttributeValues[":sk"].(*types.AttributeValueMemberS); ok {
			wantSK = v.Value
		}
	}

	var items []map[string]types.AttributeValue
	for _, item := range f.items {
		if wantSK != "" {
			sk, _ := item["sk"].(*types.AttributeValueMemberS)
			if sk == nil || sk.Value != wantSK {
				continue
			}
		}
		items = append(items, item)
	}
	return &dynamodb.ScanOutput{Items: items}, nil
}

func (f *fakeDynamo) Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	return &dynamodb.QueryOutput{}, nil
}
