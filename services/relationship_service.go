package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/rsastri21/status-application/models"
)

// RelationshipService maintains the two-sided friendship edge. Every
// mutation writes both mirror records, (A,B) and (B,A), in a single
// DynamoDB transaction so no reader ever observes a half-updated edge.
type RelationshipService struct {
	Dynamo DynamoAPI
	Table  string
}

// NewRelationshipService creates a RelationshipService over the given store.
func NewRelationshipService(dynamo DynamoAPI, table string) *RelationshipService {
	return &RelationshipService{Dynamo: dynamo, Table: table}
}

func relationshipKey(username, friend string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"username": &types.AttributeValueMemberS{Value: username},
		"friend":   &types.AttributeValueMemberS{Value: friend},
	}
}

// queryFriends fetches the user's relationship records filtered by pending
// state and, optionally, by whether this user was the requester.
func (s *RelationshipService) queryFriends(ctx context.Context, username string, isPending bool, requesterCondition string) ([]models.Relationship, error) {
	filter := "isPending = :isPendingVal"
	values := map[string]types.AttributeValue{
		":pkval":        &types.AttributeValueMemberS{Value: username},
		":isPendingVal": &types.AttributeValueMemberBOOL{Value: isPending},
	}
	if requesterCondition != "" {
		filter = fmt.Sprintf("isPending = :isPendingVal AND requester %s :requesterVal", requesterCondition)
		values[":requesterVal"] = &types.AttributeValueMemberS{Value: username}
	}

	items, err := s.Dynamo.QueryItems(ctx, s.Table, "username = :pkval", values, nil, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query relationships for '%s': %w", username, err)
	}

	var relationships []models.Relationship
	if err := attributevalue.UnmarshalListOfMaps(items, &relationships); err != nil {
		return nil, fmt.Errorf("failed to unmarshal relationships: %w", err)
	}
	return relationships, nil
}

// GetFriends returns all confirmed friendships for the user.
func (s *RelationshipService) GetFriends(ctx context.Context, username string) ([]models.Relationship, error) {
	return s.queryFriends(ctx, username, false, "")
}

// GetSentRequests returns pending requests this user initiated.
func (s *RelationshipService) GetSentRequests(ctx context.Context, username string) ([]models.Relationship, error) {
	return s.queryFriends(ctx, username, true, "=")
}

// GetReceivedRequests returns pending requests initiated by other users.
func (s *RelationshipService) GetReceivedRequests(ctx context.Context, username string) ([]models.Relationship, error) {
	return s.queryFriends(ctx, username, true, "<>")
}

// GetRelationship fetches the (username, friend) record.
func (s *RelationshipService) GetRelationship(ctx context.Context, username, friend string) (*models.Relationship, error) {
	item, err := s.Dynamo.GetItem(ctx, s.Table, relationshipKey(username, friend))
	if err != nil {
		return nil, err
	}

	var relationship models.Relationship
	if err := attributevalue.UnmarshalMap(item, &relationship); err != nil {
		return nil, fmt.Errorf("failed to unmarshal relationship: %w", err)
	}
	return &relationship, nil
}

// CreateRequest writes both sides of a new pending friendship edge in one
// transaction. If either record already exists (already friends, request
// already pending, or the friend already requested this user) the
// transaction fails with ErrAlreadyExists. The caller is responsible for
// having verified that the target user exists.
func (s *RelationshipService) CreateRequest(ctx context.Context, username, friend string) error {
	createdAt := time.Now().UnixMilli()
	requester := models.Relationship{
		Username:  username,
		Friend:    friend,
		IsPending: true,
		Requester: username,
		CreatedAt: createdAt,
	}
	target := models.Relationship{
		Username:  friend,
		Friend:    username,
		IsPending: true,
		Requester: username,
		CreatedAt: createdAt,
	}

	requesterItem, err := attributevalue.MarshalMap(requester)
	if err != nil {
		return fmt.Errorf("failed to marshal relationship: %w", err)
	}
	targetItem, err := attributevalue.MarshalMap(target)
	if err != nil {
		return fmt.Errorf("failed to marshal relationship: %w", err)
	}

	condition := "attribute_not_exists(username) AND attribute_not_exists(friend)"
	items := []types.TransactWriteItem{
		{Put: &types.Put{
			TableName:           aws.String(s.Table),
			Item:                requesterItem,
			ConditionExpression: aws.String(condition),
		}},
		{Put: &types.Put{
			TableName:           aws.String(s.Table),
			Item:                targetItem,
			ConditionExpression: aws.String(condition),
		}},
	}
	return s.Dynamo.TransactWriteItems(ctx, items)
}

// Engage resolves a pending friend request. Accepting flips isPending on
// both sides; rejecting deletes both sides. A user may reject their own
// outgoing request (cancellation) but cannot accept it; only the other
// side can, which Engage enforces with ErrForbidden.
func (s *RelationshipService) Engage(ctx context.Context, username, friend, action string) error {
	relationship, err := s.GetRelationship(ctx, username, friend)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fmt.Errorf("no pending request between '%s' and '%s': %w", username, friend, ErrNotFound)
		}
		return err
	}

	if action == models.EngageActionAccept && relationship.Requester == username {
		return fmt.Errorf("cannot accept own friend request: %w", ErrForbidden)
	}

	var items []types.TransactWriteItem
	if action == models.EngageActionAccept {
		update := func(username, friend string) types.TransactWriteItem {
			return types.TransactWriteItem{Update: &types.Update{
				TableName:        aws.String(s.Table),
				Key:              relationshipKey(username, friend),
				UpdateExpression: aws.String("SET isPending = :isPendingVal"),
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":isPendingVal": &types.AttributeValueMemberBOOL{Value: false},
				},
			}}
		}
		items = []types.TransactWriteItem{update(username, friend), update(friend, username)}
	} else {
		items = deleteEdgeItems(s.Table, username, friend)
	}
	return s.Dynamo.TransactWriteItems(ctx, items)
}

// Remove deletes both sides of the edge regardless of pending state.
// Unfriending and request cancellation share this path; removing an absent
// edge succeeds.
func (s *RelationshipService) Remove(ctx context.Context, username, friend string) error {
	return s.Dynamo.TransactWriteItems(ctx, deleteEdgeItems(s.Table, username, friend))
}

func deleteEdgeItems(table, username, friend string) []types.TransactWriteItem {
	return []types.TransactWriteItem{
		{Delete: &types.Delete{
			TableName: aws.String(table),
			Key:       relationshipKey(username, friend),
		}},
		{Delete: &types.Delete{
			TableName: aws.String(table),
			Key:       relationshipKey(friend, username),
		}},
	}
}
