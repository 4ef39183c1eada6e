package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/rsastri21/status-application/models"
	"github.com/rsastri21/status-application/utils"
)

// SessionService owns session issuance, validation, sliding-window refresh
// and revocation. Sessions are keyed by (username, sessionId) where the
// sessionId is the hash of the bearer token; the token itself is never
// stored.
type SessionService struct {
	Dynamo DynamoAPI
	Table  string
	TTL    time.Duration

	// Now is the clock; tests override it. Defaults to time.Now.
	Now func() time.Time
}

// NewSessionService creates a SessionService over the given store.
func NewSessionService(dynamo DynamoAPI, table string, ttl time.Duration) *SessionService {
	return &SessionService{Dynamo: dynamo, Table: table, TTL: ttl, Now: time.Now}
}

func (s *SessionService) nowMillis() int64 {
	return s.Now().UnixMilli()
}

func sessionKey(username, sessionID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"username":  &types.AttributeValueMemberS{Value: username},
		"sessionId": &types.AttributeValueMemberS{Value: sessionID},
	}
}

// Issue generates a fresh bearer token for the user and persists the
// corresponding session record. The raw token is returned to the caller
// exactly once; only its hash is stored.
func (s *SessionService) Issue(ctx context.Context, username string) (string, error) {
	token, err := utils.GenerateSessionToken()
	if err != nil {
		return "", err
	}

	now := s.nowMillis()
	session := models.Session{
		Username:  username,
		SessionID: utils.SessionIDFromToken(token),
		CreatedAt: now,
		ExpiresAt: now + s.TTL.Milliseconds(),
	}

	if err := s.Dynamo.PutItem(ctx, s.Table, session, ""); err != nil {
		return "", fmt.Errorf("failed to create session for '%s': %w", username, err)
	}
	return token, nil
}

// Validate checks the session for the claimed username and token. A
// missing or expired session reports unauthenticated; an expired record is
// deleted best-effort on the way out. A live session inside the back half
// of the TTL has its expiry extended to now + TTL before returning, so
// active users never observe a logout.
//
// Store failures are returned as errors so the caller can fail closed.
func (s *SessionService) Validate(ctx context.Context, username, token string) (bool, error) {
	sessionID := utils.SessionIDFromToken(token)

	item, err := s.Dynamo.GetItem(ctx, s.Table, sessionKey(username, sessionID))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to look up session: %w", err)
	}

	var session models.Session
	if err := attributevalue.UnmarshalMap(item, &session); err != nil {
		return false, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	now := s.nowMillis()
	if session.ExpiresAt <= now {
		if err := s.Dynamo.DeleteItem(ctx, s.Table, sessionKey(username, sessionID)); err != nil {
			log.Printf("Failed to delete expired session for '%s': %v", username, err)
		}
		return false, nil
	}

	if now >= session.ExpiresAt-s.TTL.Milliseconds()/2 {
		expiresAt := now + s.TTL.Milliseconds()
		_, err := s.Dynamo.UpdateItem(ctx, s.Table, sessionKey(username, sessionID),
			"SET expiresAt = :expiresAt",
			map[string]types.AttributeValue{
				":expiresAt": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", expiresAt)},
			}, nil)
		if err != nil {
			return false, fmt.Errorf("failed to refresh session: %w", err)
		}
	}
	return true, nil
}

// Revoke deletes the session derived from the token. Revoking a session
// that does not exist is not an error.
func (s *SessionService) Revoke(ctx context.Context, username, token string) error {
	sessionID := utils.SessionIDFromToken(token)
	if err := s.Dynamo.DeleteItem(ctx, s.Table, sessionKey(username, sessionID)); err != nil {
		return fmt.Errorf("failed to revoke session for '%s': %w", username, err)
	}
	return nil
}
