package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/LuWes17/infomatik-api/internal/domain"
)

// AccomplishmentRepo provides typed DynamoDB operations for the accomplishments table.
type AccomplishmentRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewAccomplishmentRepo(client *dynamodb.Client, tableName string) *AccomplishmentRepo {
	return &AccomplishmentRepo{client: client, tableName: tableName}
}

func (r *AccomplishmentRepo) Put(ctx context.Context, a *domain.Accomplishment) error {
	item, err := attributevalue.MarshalMap(a)
	if err != nil {
		return fmt.Errorf("marshal accomplishment: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *AccomplishmentRepo) Get(ctx context.Context, accomplishmentID string) (*domain.Accomplishment, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("accomplishment_id", accomplishmentID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("accomplishment not found: %w", domain.ErrNotFound)
	}
	var a domain.Accomplishment
	if err := attributevalue.UnmarshalMap(out.Item, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AccomplishmentRepo) List(ctx context.Context) ([]domain.Accomplishment, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{TableName: aws.String(r.tableName)})
	if err != nil {
		return nil, err
	}
	var items []domain.Accomplishment
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *AccomplishmentRepo) Update(ctx context.Context, accomplishmentID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("accomplishment_id", accomplishmentID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

func (r *AccomplishmentRepo) Delete(ctx context.Context, accomplishmentID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("accomplishment_id", accomplishmentID),
	})
	return err
}
