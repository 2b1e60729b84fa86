package storage

import (
	"context"
	"errors"
	"time"

	"github.com/arturoCrisanto/tabulator/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

type JudgeStorage interface {
	Get(ctx context.Context, id string) (*Judge, error)
	GetAll(ctx context.Context) ([]*Judge, error)
	ListByEvent(ctx context.Context, eventID string) ([]*Judge, error)
	Create(ctx context.Context, judge *Judge) error
	Update(ctx context.Context, judge *Judge) error
	Delete(ctx context.Context, id string) error
}

type DynamoJudgeStorage struct {
	Client    *dynamodb.Client
	TableName string
}

func (s *DynamoJudgeStorage) Get(ctx context.Context, id string) (*Judge, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"PK": id})
	if err != nil {
		logging.Log.Errorf("JUDGE: failed to marshal key for ID %s: %v", id, err)
		return nil, err
	}

	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.TableName,
		Key:       key,
	})
	if err != nil {
		logging.Log.Errorf("JUDGE: GetItem for ID %s failed: %v", id, err)
		return nil, err
	}
	if out.Item == nil {
		logging.Log.Warnf("JUDGE: no judge found with ID %s", id)
		return nil, nil
	}

	var judge Judge
	if err := attributevalue.UnmarshalMap(out.Item, &judge); err != nil {
		logging.Log.Errorf("JUDGE: failed to unmarshal judge: %v", err)
		return nil, err
	}
	return &judge, nil
}

func (s *DynamoJudgeStorage) GetAll(ctx context.Context) ([]*Judge, error) {
	out, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
		TableName: &s.TableName,
	})
	if err != nil {
		logging.Log.Errorf("JUDGE: scan failed: %v", err)
		return nil, err
	}

	var judges []*Judge
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &judges); err != nil {
		logging.Log.Errorf("JUDGE: failed to unmarshal list: %v", err)
		return nil, err
	}
	return judges, nil
}

func (s *DynamoJudgeStorage) ListByEvent(ctx context.Context, eventID string) ([]*Judge, error) {
	out, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
		TableName:        &s.TableName,
		FilterExpression: aws.String("EventID = :event"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":event": &types.AttributeValueMemberS{Value: eventID},
		},
	})
	if err != nil {
		logging.Log.Errorf("JUDGE: scan by event %s failed: %v", eventID, err)
		return nil, err
	}

	var judges []*Judge
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &judges); err != nil {
		logging.Log.Errorf("JUDGE: failed to unmarshal list: %v", err)
		return nil, err
	}
	return judges, nil
}

func (s *DynamoJudgeStorage) Create(ctx context.Context, judge *Judge) error {
	if judge.ID == "" {
		judge.ID = uuid.NewString()
	}
	if judge.CreatedAt.IsZero() {
		judge.CreatedAt = time.Now().UTC()
	}

	item, err := attributevalue.MarshalMap(judge)
	if err != nil {
		logging.Log.Errorf("JUDGE: failed to marshal judge: %v", err)
		return err
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &s.TableName,
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})
	if err != nil {
		var cce *types.ConditionalCheckFailedException
		if errors.As(err, &cce) {
			logging.Log.Warnf("JUDGE: item with ID %s already exists", judge.ID)
			return ErrItemWithIDAlreadyExists
		}
		logging.Log.Errorf("JUDGE: failed to create judge: %v", err)
		return err
	}
	return nil
}

func (s *DynamoJudgeStorage) Update(ctx context.Context, judge *Judge) error {
	item, err := attributevalue.MarshalMap(judge)
	if err != nil {
		logging.Log.Errorf("JUDGE: failed to marshal updated judge: %v", err)
		return err
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &s.TableName,
		Item:      item,
	})
	if err != nil {
		logging.Log.Errorf("JUDGE: failed to update judge: %v", err)
		return err
	}
	return nil
}

func (s *DynamoJudgeStorage) Delete(ctx context.Context, id string) error {
	key, err := attributevalue.MarshalMap(map[string]string{"PK": id})
	if err != nil {
		logging.Log.Errorf("JUDGE: failed to marshal delete key for ID %s: %v", id, err)
		return err
	}

	_, err = s.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: &s.TableName,
		Key:       key,
	})
	if err != nil {
		logging.Log.Errorf("JUDGE: failed to delete judge with ID %s: %v", id, err)
		return err
	}
	logging.Log.Infof("JUDGE: deleted judge with ID %s", id)
	return nil
}
