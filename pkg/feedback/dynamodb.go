package feedback

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/gomcpgo/cloud_ai/pkg/types"
)

// PutItemAPI is the subset of the DynamoDB client used by DynamoRecorder
type PutItemAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// DynamoRecorder writes feedback records to a table keyed by UserID and Timestamp
type DynamoRecorder struct {
	api   PutItemAPI
	table string
}

// NewDynamoRecorder creates a recorder for the table
func NewDynamoRecorder(cfg aws.Config, table string) *DynamoRecorder {
	return NewDynamoRecorderWithAPI(dynamodb.NewFromConfig(cfg), table)
}

// NewDynamoRecorderWithAPI creates a recorder over an explicit API implementation
func NewDynamoRecorderWithAPI(api PutItemAPI, table string) *DynamoRecorder {
	return &DynamoRecorder{api: api, table: table}
}

// PutFeedback writes the record. An existing item with the same key is never overwritten.
func (r *DynamoRecorder) PutFeedback(ctx context.Context, record types.FeedbackRecord) error {
	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return fmt.Errorf("failed to marshal feedback record: %w", err)
	}

	_, err = r.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(UserID)"),
	})
	if err != nil {
		return fmt.Errorf("failed to put feedback record: %w", err)
	}
	return nil
}
