package services

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/rsastri21/status-application/models"
	"github.com/rsastri21/status-application/utils"
)

// UserService owns account records: registration, credential verification,
// lookup and profile edits.
type UserService struct {
	Dynamo DynamoAPI
	Table  string
}

// NewUserService creates a UserService over the given store.
func NewUserService(dynamo DynamoAPI, table string) *UserService {
	return &UserService{Dynamo: dynamo, Table: table}
}

func userKey(username string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"username": &types.AttributeValueMemberS{Value: username},
	}
}

// GetUser fetches a user by username. Missing users return ErrNotFound.
func (s *UserService) GetUser(ctx context.Context, username string) (*models.User, error) {
	item, err := s.Dynamo.GetItem(ctx, s.Table, userKey(username))
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := attributevalue.UnmarshalMap(item, &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user '%s': %w", username, err)
	}
	return &user, nil
}

// Register creates a new account with a salted PBKDF2 password hash and a
// generated-initials placeholder avatar. Registration of an existing
// username fails with ErrAlreadyExists.
func (s *UserService) Register(ctx context.Context, username, name, email, password string) error {
	salt, err := utils.GetSalt()
	if err != nil {
		return err
	}

	user := models.User{
		Username: username,
		Name:     name,
		Email:    email,
		Profile: models.Image{
			Image:  "https://api.dicebear.com/9.x/initials/svg?seed=" + url.QueryEscape(name),
			Width:  250,
			Height: 250,
		},
		Password:  utils.HashPassword(password, salt),
		Salt:      salt,
		CreatedAt: time.Now().UnixMilli(),
	}

	return s.Dynamo.PutItem(ctx, s.Table, user, "attribute_not_exists(username)")
}

// VerifyCredentials checks a username/password pair and returns the user on
// success. Unknown usernames and wrong passwords both return ErrNotFound so
// callers cannot distinguish them.
func (s *UserService) VerifyCredentials(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.GetUser(ctx, username)
	if err != nil {
		return nil, err
	}
	if !utils.VerifyPassword(password, user.Salt, user.Password) {
		return nil, ErrNotFound
	}
	return user, nil
}

// UpdateUser applies a typed partial update to the user's editable fields.
// Fields left nil in the update are untouched; credential fields cannot be
// reached through this path.
func (s *UserService) UpdateUser(ctx context.Context, username string, update models.UserUpdate) (*models.User, error) {
	user, err := s.GetUser(ctx, username)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.Profile != nil {
		user.Profile = *update.Profile
	}

	if err := s.Dynamo.PutItem(ctx, s.Table, user, ""); err != nil {
		return nil, fmt.Errorf("failed to update user '%s': %w", username, err)
	}
	return user, nil
}

// UpdateProfileImage sets the user's profile image. Used by the upload
// notification path once a profile picture lands in S3.
func (s *UserService) UpdateProfileImage(ctx context.Context, username string, image models.Image) error {
	_, err := s.UpdateUser(ctx, username, models.UserUpdate{Profile: &image})
	return err
}
