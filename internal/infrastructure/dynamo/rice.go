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

// RiceScheduleRepo provides typed DynamoDB operations for the rice_schedules table.
type RiceScheduleRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewRiceScheduleRepo(client *dynamodb.Client, tableName string) *RiceScheduleRepo {
	return &RiceScheduleRepo{client: client, tableName: tableName}
}

func (r *RiceScheduleRepo) Put(ctx context.Context, s *domain.RiceSchedule) error {
	item, err := attributevalue.MarshalMap(s)
	if err != nil {
		return fmt.Errorf("marshal rice schedule: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *RiceScheduleRepo) Get(ctx context.Context, scheduleID string) (*domain.RiceSchedule, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("schedule_id", scheduleID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("schedule not found: %w", domain.ErrNotFound)
	}
	var s domain.RiceSchedule
	if err := attributevalue.UnmarshalMap(out.Item, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// List returns schedules, optionally restricted to one barangay.
func (r *RiceScheduleRepo) List(ctx context.Context, barangay string) ([]domain.RiceSchedule, error) {
	input := &dynamodb.ScanInput{TableName: aws.String(r.tableName)}
	if barangay != "" {
		input.FilterExpression = aws.String("barangay = :b")
		input.ExpressionAttributeValues = map[string]types.AttributeValue{
			":b": &types.AttributeValueMemberS{Value: barangay},
		}
	}
	out, err := r.client.Scan(ctx, input)
	if err != nil {
		return nil, err
	}
	var items []domain.RiceSchedule
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *RiceScheduleRepo) Update(ctx context.Context, scheduleID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("schedule_id", scheduleID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

func (r *RiceScheduleRepo) Delete(ctx context.Context, scheduleID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("schedule_id", scheduleID),
	})
	return err
}

// RiceClaimRepo provides typed DynamoDB operations for the rice_claims table.
// GSI schedule_id-index lists a run's claims.
type RiceClaimRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewRiceClaimRepo(client *dynamodb.Client, tableName string) *RiceClaimRepo {
	return &RiceClaimRepo{client: client, tableName: tableName}
}

func (r *RiceClaimRepo) Put(ctx context.Context, c *domain.RiceClaim) error {
	item, err := attributevalue.MarshalMap(c)
	if err != nil {
		return fmt.Errorf("marshal rice claim: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *RiceClaimRepo) ListBySchedule(ctx context.Context, scheduleID string) ([]domain.RiceClaim, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String("schedule_id-index"),
		KeyConditionExpression:    aws.String("schedule_id = :v"),
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: scheduleID}},
	})
	if err != nil {
		return nil, err
	}
	var claims []domain.RiceClaim
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &claims); err != nil {
		return nil, err
	}
	return claims, nil
}
