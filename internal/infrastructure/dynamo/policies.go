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

// PolicyRepo provides typed DynamoDB operations for the policies table.
type PolicyRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewPolicyRepo(client *dynamodb.Client, tableName string) *PolicyRepo {
	return &PolicyRepo{client: client, tableName: tableName}
}

func (r *PolicyRepo) Put(ctx context.Context, p *domain.Policy) error {
	item, err := attributevalue.MarshalMap(p)
	if err != nil {
		return fmt.Errorf("marshal policy: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *PolicyRepo) Get(ctx context.Context, policyID string) (*domain.Policy, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("policy_id", policyID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("policy not found: %w", domain.ErrNotFound)
	}
	var p domain.Policy
	if err := attributevalue.UnmarshalMap(out.Item, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns policies, optionally restricted to one type
// ("ordinance"/"resolution").
func (r *PolicyRepo) List(ctx context.Context, policyType string) ([]domain.Policy, error) {
	input := &dynamodb.ScanInput{TableName: aws.String(r.tableName)}
	if policyType != "" {
		input.FilterExpression = aws.String("#t = :t")
		input.ExpressionAttributeNames = map[string]string{"#t": "type"}
		input.ExpressionAttributeValues = map[string]types.AttributeValue{
			":t": &types.AttributeValueMemberS{Value: policyType},
		}
	}
	out, err := r.client.Scan(ctx, input)
	if err != nil {
		return nil, err
	}
	var items []domain.Policy
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PolicyRepo) Update(ctx context.Context, policyID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("policy_id", policyID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

func (r *PolicyRepo) Delete(ctx context.Context, policyID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("policy_id", policyID),
	})
	return err
}
