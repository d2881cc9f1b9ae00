package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/LuWes17/infomatik-api/internal/domain"
)

// SolicitationRepo provides typed DynamoDB operations for the solicitations table.
type SolicitationRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewSolicitationRepo(client *dynamodb.Client, tableName string) *SolicitationRepo {
	return &SolicitationRepo{client: client, tableName: tableName}
}

func (r *SolicitationRepo) Put(ctx context.Context, s *domain.Solicitation) error {
	item, err := attributevalue.MarshalMap(s)
	if err != nil {
		return fmt.Errorf("marshal solicitation: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *SolicitationRepo) Get(ctx context.Context, solicitationID string) (*domain.Solicitation, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("solicitation_id", solicitationID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("solicitation not found: %w", domain.ErrNotFound)
	}
	var s domain.Solicitation
	if err := attributevalue.UnmarshalMap(out.Item, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// ListByRequester returns a citizen's own requests via the requester_id GSI.
func (r *SolicitationRepo) ListByRequester(ctx context.Context, requesterID string) ([]domain.Solicitation, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String("requester_id-index"),
		KeyConditionExpression:    aws.String("requester_id = :v"),
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: requesterID}},
	})
	if err != nil {
		return nil, err
	}
	var items []domain.Solicitation
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// List returns all requests, optionally filtered by status.
func (r *SolicitationRepo) List(ctx context.Context, status string) ([]domain.Solicitation, error) {
	input := &dynamodb.ScanInput{TableName: aws.String(r.tableName)}
	if status != "" {
		input.FilterExpression = aws.String("#s = :s")
		input.ExpressionAttributeNames = map[string]string{"#s": "status"}
		input.ExpressionAttributeValues = map[string]types.AttributeValue{
			":s": &types.AttributeValueMemberS{Value: status},
		}
	}
	out, err := r.client.Scan(ctx, input)
	if err != nil {
		return nil, err
	}
	var items []domain.Solicitation
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *SolicitationRepo) Update(ctx context.Context, solicitationID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("solicitation_id", solicitationID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

func (r *SolicitationRepo) CountByStatus(ctx context.Context, status string) (int, error) {
	return scanCount(ctx, r.client, r.tableName,
		"#s = :s",
		map[string]string{"#s": "status"},
		map[string]types.AttributeValue{":s": &types.AttributeValueMemberS{Value: status}},
	)
}
