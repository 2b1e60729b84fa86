package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/arturoCrisanto/tabulator/logging"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

type VoteStorage interface {
	Create(ctx context.Context, vote *Vote) (*Vote, error)
	GetByTuple(ctx context.Context, eventID, categoryID, judgeID, candidateID string) (*Vote, error)
	GetByID(ctx context.Context, id string) (*Vote, error)
	List(ctx context.Context, filter VoteFilter) ([]*Vote, error)
	UpdateScore(ctx context.Context, id string, score int) (*Vote, error)
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, filter VoteFilter) error
}

// DynamoVoteStorage keeps the vote ledger in a DynamoDB table keyed by
// (event, category#judge#candidate). The id-index GSI serves lookups by
// vote id for update and delete.
type DynamoVoteStorage struct {
	Client    *dynamodb.Client
	TableName string
}

const voteIDIndex = "id-index"

// Create persists a new vote. The conditional put on the tuple key is the
// final authority on uniqueness: two concurrent submissions for the same
// tuple cannot both succeed, whatever pre-checks the callers ran.
func (s *DynamoVoteStorage) Create(ctx context.Context, vote *Vote) (*Vote, error) {
	if err := ValidateScore(vote.Score); err != nil {
		return nil, err
	}

	if vote.ID == "" {
		vote.ID = uuid.NewString()
	}
	if vote.CreatedAt.IsZero() {
		vote.CreatedAt = time.Now().UTC()
	}
	vote.SortKey = VoteSortKey(vote.CategoryID, vote.JudgeID, vote.CandidateID)

	item, err := attributevalue.MarshalMap(vote)
	if err != nil {
		logging.Log.Errorf("VOTE: failed to marshal vote: %v", err)
		return nil, err
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &s.TableName,
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK) AND attribute_not_exists(SK)"),
	})
	if err != nil {
		var cce *types.ConditionalCheckFailedException
		if errors.As(err, &cce) {
			logging.Log.Warnf("VOTE: duplicate vote for tuple %s/%s", vote.EventID, vote.SortKey)
			return nil, &DuplicateVoteError{
				EventID:     vote.EventID,
				CategoryID:  vote.CategoryID,
				JudgeID:     vote.JudgeID,
				CandidateID: vote.CandidateID,
			}
		}
		logging.Log.Errorf("VOTE: failed to create vote: %v", err)
		return nil, err
	}
	return vote, nil
}

// GetByTuple returns the vote for the exact tuple, or nil when none exists.
func (s *DynamoVoteStorage) GetByTuple(ctx context.Context, eventID, categoryID, judgeID, candidateID string) (*Vote, error) {
	key, err := attributevalue.MarshalMap(map[string]string{
		"PK": eventID,
		"SK": VoteSortKey(categoryID, judgeID, candidateID),
	})
	if err != nil {
		logging.Log.Errorf("VOTE: failed to marshal tuple key: %v", err)
		return nil, err
	}

	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.TableName,
		Key:       key,
	})
	if err != nil {
		logging.Log.Errorf("VOTE: GetItem for tuple failed: %v", err)
		return nil, err
	}
	if out.Item == nil {
		return nil, nil
	}

	var vote Vote
	if err := attributevalue.UnmarshalMap(out.Item, &vote); err != nil {
		logging.Log.Errorf("VOTE: failed to unmarshal vote: %v", err)
		return nil, err
	}
	return &vote, nil
}

func (s *DynamoVoteStorage) GetByID(ctx context.Context, id string) (*Vote, error) {
	out, err := s.Client.Query(ctx, &dynamodb.QueryInput{
		TableName:              &s.TableName,
		IndexName:              aws.String(voteIDIndex),
		KeyConditionExpression: aws.String("ID = :id"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":id": &types.AttributeValueMemberS{Value: id},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		logging.Log.Errorf("VOTE: query by id %s failed: %v", id, err)
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, ErrVoteNotFound
	}

	var vote Vote
	if err := attributevalue.UnmarshalMap(out.Items[0], &vote); err != nil {
		logging.Log.Errorf("VOTE: failed to unmarshal vote %s: %v", id, err)
		return nil, err
	}
	return &vote, nil
}

// List returns all votes matching the filter, in no promised order. With an
// event id it queries the table key, narrowing by sort-key prefix where the
// filter allows; without one it falls back to a filtered scan.
func (s *DynamoVoteStorage) List(ctx context.Context, filter VoteFilter) ([]*Vote, error) {
	if filter.EventID == "" {
		return s.scanVotes(ctx, filter)
	}

	keyCond := "PK = :event"
	values := map[string]types.AttributeValue{
		":event": &types.AttributeValueMemberS{Value: filter.EventID},
	}

	if filter.CategoryID != "" {
		prefix := fmt.Sprintf("cat#%s#", filter.CategoryID)
		if filter.JudgeID != "" {
			prefix = fmt.Sprintf("cat#%s#judge#%s#", filter.CategoryID, filter.JudgeID)
		}
		keyCond += " AND begins_with(SK, :prefix)"
		values[":prefix"] = &types.AttributeValueMemberS{Value: prefix}
	}

	var filterParts []string
	if filter.JudgeID != "" && filter.CategoryID == "" {
		filterParts = append(filterParts, "JudgeID = :judge")
		values[":judge"] = &types.AttributeValueMemberS{Value: filter.JudgeID}
	}
	if filter.CandidateID != "" {
		filterParts = append(filterParts, "CandidateID = :candidate")
		values[":candidate"] = &types.AttributeValueMemberS{Value: filter.CandidateID}
	}

	input := &dynamodb.QueryInput{
		TableName:                 &s.TableName,
		KeyConditionExpression:    aws.String(keyCond),
		ExpressionAttributeValues: values,
	}
	if len(filterParts) > 0 {
		input.FilterExpression = aws.String(strings.Join(filterParts, " AND "))
	}

	out, err := s.Client.Query(ctx, input)
	if err != nil {
		logging.Log.Errorf("VOTE: query failed: %v", err)
		return nil, err
	}

	var votes []*Vote
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &votes); err != nil {
		logging.Log.Errorf("VOTE: failed to unmarshal vote list: %v", err)
		return nil, err
	}
	return votes, nil
}

func (s *DynamoVoteStorage) scanVotes(ctx context.Context, filter VoteFilter) ([]*Vote, error) {
	var filterParts []string
	values := map[string]types.AttributeValue{}

	if filter.CategoryID != "" {
		filterParts = append(filterParts, "CategoryID = :category")
		values[":category"] = &types.AttributeValueMemberS{Value: filter.CategoryID}
	}
	if filter.JudgeID != "" {
		filterParts = append(filterParts, "JudgeID = :judge")
		values[":judge"] = &types.AttributeValueMemberS{Value: filter.JudgeID}
	}
	if filter.CandidateID != "" {
		filterParts = append(filterParts, "CandidateID = :candidate")
		values[":candidate"] = &types.AttributeValueMemberS{Value: filter.CandidateID}
	}

	input := &dynamodb.ScanInput{TableName: &s.TableName}
	if len(filterParts) > 0 {
		input.FilterExpression = aws.String(strings.Join(filterParts, " AND "))
		input.ExpressionAttributeValues = values
	}

	out, err := s.Client.Scan(ctx, input)
	if err != nil {
		logging.Log.Errorf("VOTE: scan failed: %v", err)
		return nil, err
	}

	var votes []*Vote
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &votes); err != nil {
		logging.Log.Errorf("VOTE: failed to unmarshal vote list: %v", err)
		return nil, err
	}
	return votes, nil
}

// UpdateScore replaces the score of an existing vote. The identifying tuple
// is immutable so no uniqueness check is needed.
func (s *DynamoVoteStorage) UpdateScore(ctx context.Context, id string, score int) (*Vote, error) {
	if err := ValidateScore(score); err != nil {
		return nil, err
	}

	vote, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	key, err := attributevalue.MarshalMap(map[string]string{"PK": vote.EventID, "SK": vote.SortKey})
	if err != nil {
		logging.Log.Errorf("VOTE: failed to marshal key for id %s: %v", id, err)
		return nil, err
	}

	out, err := s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           &s.TableName,
		Key:                 key,
		UpdateExpression:    aws.String("SET Score = :score"),
		ConditionExpression: aws.String("attribute_exists(PK)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":score": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", score)},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		var cce *types.ConditionalCheckFailedException
		if errors.As(err, &cce) {
			return nil, ErrVoteNotFound
		}
		logging.Log.Errorf("VOTE: failed to update vote %s: %v", id, err)
		return nil, err
	}

	var updated Vote
	if err := attributevalue.UnmarshalMap(out.Attributes, &updated); err != nil {
		logging.Log.Errorf("VOTE: failed to unmarshal updated vote %s: %v", id, err)
		return nil, err
	}
	return &updated, nil
}

func (s *DynamoVoteStorage) Delete(ctx context.Context, id string) error {
	vote, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	key, err := attributevalue.MarshalMap(map[string]string{"PK": vote.EventID, "SK": vote.SortKey})
	if err != nil {
		logging.Log.Errorf("VOTE: failed to marshal delete key for id %s: %v", id, err)
		return err
	}

	_, err = s.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           &s.TableName,
		Key:                 key,
		ConditionExpression: aws.String("attribute_exists(PK)"),
	})
	if err != nil {
		var cce *types.ConditionalCheckFailedException
		if errors.As(err, &cce) {
			return ErrVoteNotFound
		}
		logging.Log.Errorf("VOTE: failed to delete vote %s: %v", id, err)
		return err
	}
	return nil
}

// DeleteMany removes every vote matching the filter. Deleting zero matches
// is not an error; external entity deletion relies on this for cascades.
func (s *DynamoVoteStorage) DeleteMany(ctx context.Context, filter VoteFilter) error {
	votes, err := s.List(ctx, filter)
	if err != nil {
		return err
	}
	if len(votes) == 0 {
		return nil
	}

	var writeRequests []types.WriteRequest
	for _, v := range votes {
		writeRequests = append(writeRequests, types.WriteRequest{
			DeleteRequest: &types.DeleteRequest{
				Key: map[string]types.AttributeValue{
					"PK": &types.AttributeValueMemberS{Value: v.EventID},
					"SK": &types.AttributeValueMemberS{Value: v.SortKey},
				},
			},
		})
	}

	for i := 0; i < len(writeRequests); i += 25 {
		end := i + 25
		if end > len(writeRequests) {
			end = len(writeRequests)
		}
		_, err := s.Client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{
				s.TableName: writeRequests[i:end],
			},
		})
		if err != nil {
			logging.Log.Errorf("VOTE: batch delete failed: %v", err)
			return err
		}
		logging.Log.Infof("VOTE: deleted batch of %d votes", end-i)
	}
	return nil
}
