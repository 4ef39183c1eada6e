package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/rsastri21/status-application/models"
	"github.com/rsastri21/status-application/utils"
)

// LikeTypes accepted by LikePost.
const (
	LikeTypeLike    = "like"
	LikeTypeDislike = "dislike"
)

// CreatedPost is the result of creating a post: the new id plus presigned
// upload URLs for the two image slots.
type CreatedPost struct {
	PostID       string `json:"postId"`
	PrimaryURL   string `json:"primary"`
	SecondaryURL string `json:"secondary"`
}

// PostService owns post records and their image attachments. Posts are
// created empty and become feed-eligible once both image uploads complete.
type PostService struct {
	Dynamo     DynamoAPI
	S3         ObjectStore
	Table      string
	DailyLimit int

	// Now is the clock; tests override it. Defaults to time.Now.
	Now func() time.Time
}

// NewPostService creates a PostService over the given stores.
func NewPostService(dynamo DynamoAPI, s3 ObjectStore, table string, dailyLimit int) *PostService {
	return &PostService{Dynamo: dynamo, S3: s3, Table: table, DailyLimit: dailyLimit, Now: time.Now}
}

func postKey(username, postID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"username": &types.AttributeValueMemberS{Value: username},
		"postId":   &types.AttributeValueMemberS{Value: postID},
	}
}

// PostImageKey builds the S3 object key for one of a post's image slots.
func PostImageKey(username, postID, slot string) string {
	return fmt.Sprintf("images/%s/posts/%s/%s", username, postID, slot)
}

// GetPost fetches a single post. Missing posts return ErrNotFound.
func (s *PostService) GetPost(ctx context.Context, username, postID string) (*models.Post, error) {
	item, err := s.Dynamo.GetItem(ctx, s.Table, postKey(username, postID))
	if err != nil {
		return nil, err
	}

	var post models.Post
	if err := attributevalue.UnmarshalMap(item, &post); err != nil {
		return nil, fmt.Errorf("failed to unmarshal post: %w", err)
	}
	return &post, nil
}

// GetPostsWithinRange returns the user's posts with createdAt in
// [from, to]. The result carries no guaranteed order.
func (s *PostService) GetPostsWithinRange(ctx context.Context, username string, from, to int64) ([]models.Post, error) {
	items, err := s.Dynamo.QueryItems(ctx, s.Table,
		"username = :pkVal",
		map[string]types.AttributeValue{
			":pkVal":        &types.AttributeValueMemberS{Value: username},
			":startTimeVal": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", from)},
			":endTimeVal":   &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", to)},
		}, nil,
		"createdAt BETWEEN :startTimeVal AND :endTimeVal")
	if err != nil {
		return nil, fmt.Errorf("failed to query posts for '%s': %w", username, err)
	}

	var posts []models.Post
	if err := attributevalue.UnmarshalListOfMaps(items, &posts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal posts: %w", err)
	}
	return posts, nil
}

// CreatePost creates a new empty post and returns presigned upload URLs
// for its two image slots. Creation is rejected with ErrRateLimited once
// the user has reached the daily post limit. The count-then-create is not
// transactional; concurrent creations near the limit may slip past it.
func (s *PostService) CreatePost(ctx context.Context, username string, width, height int) (*CreatedPost, error) {
	now := s.Now()
	todays, err := s.GetPostsWithinRange(ctx, username, utils.MidnightEpoch(now), now.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("failed to validate post history: %w", err)
	}
	if len(todays) >= s.DailyLimit {
		return nil, fmt.Errorf("user '%s' reached the daily post limit: %w", username, ErrRateLimited)
	}

	post := models.Post{
		Username:  username,
		PostID:    uuid.New().String(),
		Caption:   "",
		Likes:     0,
		Reactions: []models.Reaction{},
		Comments:  []models.Comment{},
		CreatedAt: now.UnixMilli(),
	}
	if err := s.Dynamo.PutItem(ctx, s.Table, post, ""); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	primaryURL, err := s.S3.GenerateUploadURL(ctx, PostImageKey(username, post.PostID, models.ImageSlotPrimary), width, height)
	if err != nil {
		return nil, err
	}
	secondaryURL, err := s.S3.GenerateUploadURL(ctx, PostImageKey(username, post.PostID, models.ImageSlotSecondary), width, height)
	if err != nil {
		return nil, err
	}

	return &CreatedPost{PostID: post.PostID, PrimaryURL: primaryURL, SecondaryURL: secondaryURL}, nil
}

// setPostField writes a single attribute of a post and returns the updated
// record.
func (s *PostService) setPostField(ctx context.Context, username, postID, field string, value interface{}) (*models.Post, error) {
	marshaled, err := attributevalue.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", field, err)
	}

	attributes, err := s.Dynamo.UpdateItem(ctx, s.Table, postKey(username, postID),
		fmt.Sprintf("SET %s = :val", field),
		map[string]types.AttributeValue{":val": marshaled}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to update post %s: %w", field, err)
	}

	var post models.Post
	if err := attributevalue.UnmarshalMap(attributes, &post); err != nil {
		return nil, fmt.Errorf("failed to unmarshal updated post: %w", err)
	}
	return &post, nil
}

// CaptionPost sets the caption on a post.
func (s *PostService) CaptionPost(ctx context.Context, username, postID, caption string) (*models.Post, error) {
	return s.setPostField(ctx, username, postID, "caption", caption)
}

// AttachImage fills one of the post's image slots. Invoked from the upload
// notification path once the object lands in S3.
func (s *PostService) AttachImage(ctx context.Context, username, postID string, image models.Image, slot string) error {
	field := "primaryImage"
	if slot == models.ImageSlotSecondary {
		field = "secondaryImage"
	}
	_, err := s.setPostField(ctx, username, postID, field, image)
	return err
}

/// LikePost adjusts the like counter: +1 for a like, -1 for a dislike,
// never below zero.
func (s *PostService) LikePost(ctx context.Context, username, postID, likeType string) (*models.Post, error) {
	post, err := s.GetPost(ctx, username, postID)
	if err != nil {
		return nil, err
	}

	likes := post.Likes
	if likeType == LikeTypeDislike {
		if likes > 0 {
			likes--
		}
	} else {
		likes++
	}
	return s.setPostField(ctx, username, postID, "likes", likes)
}

// CommentPost appends a comment to the post. Comment ids are assigned as
// previousCount + 1, unique within the post.
func (s *PostService) CommentPost(ctx context.Context, username, postID, author, content string) (*models.Post, error) {
	post, err := s.GetPost(ctx, username, postID)
	if err != nil {
		return nil, err
	}

	comments := append(post.Comments, models.Comment{
		ID:      len(post.Comments) + 1,
		Author:  author,
		Content: content,
	})
	return s.setPostField(ctx, username, postID, "comments", comments)
}

// ReplyToComment appends a reply to the identified comment. Reply ids are
// assigned as previousCount + 1, unique within the comment.
func (s *PostService) ReplyToComment(ctx context.Context, username, postID, author string, commentID int, content string) (*models.Post, error) {
	post, err := s.GetPost(ctx, username, postID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range post.Comments {
		if post.Comments[i].ID == commentID {
			post.Comments[i].Replies = append(post.Comments[i].Replies, models.Reply{
				ID:     len(post.Comments[i].Replies) + 1,
				Author: author,
				Reply:  content,
			})
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("comment %d not found on post '%s': %w", commentID, postID, ErrNotFound)
	}
	return s.setPostField(ctx, username, postID, "comments", post.Comments)
}

// ReactToPost appends an emoji reaction to the post.
func (s *PostService) ReactToPost(ctx context.Context, username, postID, author, emoji string) (*models.Post, error) {
	post, err := s.GetPost(ctx, username, postID)
	if err != nil {
		return nil, err
	}

	reactions := append(post.Reactions, models.Reaction{Emoji: emoji, Author: author})
	return s.setPostField(ctx, username, postID, "reactions", reactions)
}

// DeletePost removes the post record and, best-effort, its stored images.
// An S3 cleanup failure does not fail the deletion.
func (s *PostService) DeletePost(ctx context.Context, username, postID string) error {
	if err := s.Dynamo.DeleteItem(ctx, s.Table, postKey(username, postID)); err != nil {
		return fmt.Errorf("failed to delete post '%s': %w", postID, err)
	}

	for _, slot := range []string{models.ImageSlotPrimary, models.ImageSlotSecondary} {
		if err := s.S3.DeleteObject(ctx, PostImageKey(username, postID, slot)); err != nil {
			log.Printf("Failed to delete image for post '%s' (%s): %v", postID, slot, err)
		}
	}
	return nil
}
