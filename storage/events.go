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

type EventStorage interface {
	Get(ctx context.Context, id string) (*Event, error)
	GetAll(ctx context.Context) ([]*Event, error)
	Create(ctx context.Context, event *Event) error
	Update(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id string) error
}

type DynamoEventStorage struct {
	Client    *dynamodb.Client
	TableName string
}

func (s *DynamoEventStorage) Get(ctx context.Context, id string) (*Event, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"PK": id})
	if err != nil {
		logging.Log.Errorf("EVENT: failed to marshal key for ID %s: %v", id, err)
		return nil, err
	}

	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.TableName,
		Key:       key,
	})
	if err != nil {
		logging.Log.Errorf("EVENT: GetItem for ID %s failed: %v", id, err)
		return nil, err
	}
	if out.Item == nil {
		logging.Log.Warnf("EVENT: no event found with ID %s", id)
		return nil, nil
	}

	var event Event
	if err := attributevalue.UnmarshalMap(out.Item, &event); err != nil {
		logging.Log.Errorf("EVENT: failed to unmarshal event: %v", err)
		return nil, err
	}
	return &event, nil
}

func (s *DynamoEventStorage) GetAll(ctx context.Context) ([]*Event, error) {
	out, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
		TableName: &s.TableName,
	})
	if err != nil {
		logging.Log.Errorf("EVENT: scan failed: %v", err)
		return nil, err
	}

	var events []*Event
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &events); err != nil {
		logging.Log.Errorf("EVENT: failed to unmarshal event list: %v", err)
		return nil, err
	}
	return events, nil
}

func (s *DynamoEventStorage) Create(ctx context.Context, event *Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	item, err := attributevalue.MarshalMap(event)
	if err != nil {
		logging.Log.Errorf("EVENT: failed to marshal event: %v", err)
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
			logging.Log.Warnf("EVENT: item with ID %s already exists", event.ID)
			return ErrItemWithIDAlreadyExists
		}
		logging.Log.Errorf("EVENT: failed to create event: %v", err)
		return err
	}
	return nil
}

func (s *DynamoEventStorage) Update(ctx context.Context, event *Event) error {
	item, err := attributevalue.MarshalMap(event)
	if err != nil {
		logging.Log.Errorf("EVENT: failed to marshal updated event: %v", err)
		return err
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &s.TableName,
		Item:      item,
	})
	if err != nil {
		logging.Log.Errorf("EVENT: failed to update event: %v", err)
		return err
	}
	return nil
}

func (s *DynamoEventStorage) Delete(ctx context.Context, id string) error {
	key, err := attributevalue.MarshalMap(map[string]string{"PK": id})
	if err != nil {
		logging.Log.Errorf("EVENT: failed to marshal delete key for ID %s: %v", id, err)
		return err
	}

	_, err = s.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: &s.TableName,
		Key:       key,
	})
	if err != nil {
		logging.Log.Errorf("EVENT: failed to delete event with ID %s: %v", id, err)
		return err
	}
	logging.Log.Infof("EVENT: deleted event with ID %s", id)
	return nil
}
