package repository

import (
	"context"
	"encoding/json"
	"time"

	"paystack_bridge/internal/domain/entities"
	"paystack_bridge/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	DefaultTransactionsTableName = "transactions"
	transactionsReferenceIndex   = "reference-index"
)

// DynamoDBAPI is the subset of the DynamoDB client the repository uses.
type DynamoDBAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// Payloads are stored as raw JSON strings: provider payloads carry mixed
// numeric types that should come back exactly as they went in.
type transactionItem struct {
	ID           string `dynamodbav:"id"`
	Reference    string `dynamodbav:"reference"`
	Operation    string `dynamodbav:"operation"`
	Provider     string `dynamodbav:"provider"`
	Status       string `dynamodbav:"status"`
	Response     string `dynamodbav:"response,omitempty"`
	ErrorMessage string `dynamodbav:"error_message,omitempty"`
	ErrorDetails string `dynamodbav:"error_details,omitempty"`
	CreatedAt    string `dynamodbav:"created_at"`
}

// TransactionDynamoRepository persists bridge outcomes in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: reference-index (PK: reference)
type TransactionDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
}

var _ interfaces.ITransactionRepository = (*TransactionDynamoRepository)(nil)

func NewTransactionDynamoRepository(ddb DynamoDBAPI, tableName string) *TransactionDynamoRepository {
	if tableName == "" {
		tableName = DefaultTransactionsTableName
	}
	return &TransactionDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *TransactionDynamoRepository) Create(ctx context.Context, t entities.Transaction) (entities.Transaction, error) {
	it, err := toTransactionItem(t)
	if err != nil {
		return entities.Transaction{}, err
	}
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Transaction{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Transaction{}, err
	}
	return t, nil
}

// ListByReference follows LastEvaluatedKey until the index is exhausted.
func (r *TransactionDynamoRepository) ListByReference(ctx context.Context, reference string) ([]entities.Transaction, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(transactionsReferenceIndex),
		KeyConditionExpression: aws.String("#ref = :ref"),
		ExpressionAttributeNames: map[string]string{
			"#ref": "reference",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":ref": &types.AttributeValueMemberS{Value: reference},
		},
	}

	var items []entities.Transaction
	for {
		out, err := r.ddb.Query(ctx, input)
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			var it transactionItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			items = append(items, fromTransactionItem(it))
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
	return items, nil
}

func toTransactionItem(t entities.Transaction) (transactionItem, error) {
	resp, err := marshalOptional(t.Response)
	if err != nil {
		return transactionItem{}, err
	}
	details, err := marshalOptional(t.ErrorDetails)
	if err != nil {
		return transactionItem{}, err
	}
	return transactionItem{
		ID:           t.ID,
		Reference:    t.Reference,
		Operation:    string(t.Operation),
		Provider:     t.Provider,
		Status:       string(t.Status),
		Response:     resp,
		ErrorMessage: t.ErrorMessage,
		ErrorDetails: details,
		CreatedAt:    t.CreatedAt.UTC().Format(time.RFC3339Nano),
	}, nil
}

func fromTransactionItem(it transactionItem) entities.Transaction {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	return entities.Transaction{
		ID:           it.ID,
		Reference:    it.Reference,
		Operation:    entities.Operation(it.Operation),
		Provider:     it.Provider,
		Status:       entities.TransactionStatus(it.Status),
		Response:     unmarshalOptional(it.Response),
		ErrorMessage: it.ErrorMessage,
		ErrorDetails: unmarshalOptional(it.ErrorDetails),
		CreatedAt:    createdAt,
	}
}

func marshalOptional(m map[string]any) (string, error) {
	if len(m) == 0 {
		return "", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func unmarshalOptional(raw string) map[string]any {
	if raw == "" {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return map[string]any{"raw": raw}
	}
	return m
}
