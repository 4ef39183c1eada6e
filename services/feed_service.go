package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rsastri21/status-application/models"
	"github.com/rsastri21/status-application/utils"
)

// Feed is an assembled feed response. Visible and Posts are independent:
// visible=false with no posts means "post something before viewing today's
// feed", while visible=true with no posts means "nothing in range".
type Feed struct {
	Visible bool          `json:"visible"`
	Posts   []models.Post `json:"posts"`
}

// FeedService assembles time-windowed feeds from a user's own posts and
// from their confirmed friends' posts.
type FeedService struct {
	Posts         *PostService
	Relationships *RelationshipService

	// Now is the clock; tests override it. Defaults to time.Now.
	Now func() time.Time
}

// NewFeedService creates a FeedService over the post and relationship
// services.
func NewFeedService(posts *PostService, relationships *RelationshipService) *FeedService {
	return &FeedService{Posts: posts, Relationships: relationships, Now: time.Now}
}

// filterAndOrderPosts drops posts that are missing either image slot and
// sorts the remainder by createdAt ascending.
func filterAndOrderPosts(posts []models.Post) []models.Post {
	valid := make([]models.Post, 0, len(posts))
	for _, post := range posts {
		if post.IsComplete() {
			valid = append(valid, post)
		}
	}
	sort.Slice(valid, func(i, j int) bool {
		return valid[i].CreatedAt < valid[j].CreatedAt
	})
	return valid
}

// UserFeed returns the user's own image-complete posts in [from, to],
// ordered by createdAt ascending. A user's own feed is always visible.
func (s *FeedService) UserFeed(ctx context.Context, username string, from, to int64) (*Feed, error) {
	if to == 0 {
		to = s.Now().UnixMilli()
	}

	posts, err := s.Posts.GetPostsWithinRange(ctx, username, from, to)
	if err != nil {
		return nil, err
	}
	return &Feed{Visible: true, Posts: filterAndOrderPosts(posts)}, nil
}

// shouldHidePosts implements the same-day reciprocity gate: a feed request
// starting within the current calendar day is hidden until the requesting
// user has posted today. Requests reaching back before today are always
// visible.
func (s *FeedService) shouldHidePosts(ctx context.Context, username string, from int64) (bool, error) {
	now := s.Now()
	midnight := utils.MidnightEpoch(now)
	if from < midnight {
		return false, nil
	}

	posts, err := s.Posts.GetPostsWithinRange(ctx, username, midnight, now.UnixMilli())
	if err != nil {
		return false, fmt.Errorf("failed to check today's posts for '%s': %w", username, err)
	}
	return len(posts) == 0, nil
}

// FriendsFeed aggregates image-complete posts from the user's confirmed
// friends within [from, to], ordered by createdAt ascending, gated by the
// same-day visibility rule. An empty friend list yields an empty, visible
// feed.
func (s *FeedService) FriendsFeed(ctx context.Context, username string, from, to int64) (*Feed, error) {
	if to == 0 {
		to = s.Now().UnixMilli()
	}

	hidden, err := s.shouldHidePosts(ctx, username, from)
	if err != nil {
		return nil, err
	}
	if hidden {
		return &Feed{Visible: false, Posts: []models.Post{}}, nil
	}

	friends, err := s.Relationships.GetFriends(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve friends for '%s': %w", username, err)
	}

	var posts []models.Post
	for _, friend := range friends {
		friendPosts, err := s.Posts.GetPostsWithinRange(ctx, friend.Friend, from, to)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch posts for friend '%s': %w", friend.Friend, err)
		}
		posts = append(posts, friendPosts...)
	}
	return &Feed{Visible: true, Posts: filterAndOrderPosts(posts)}, nil
}
