package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rsastri21/status-application/models"
)

func newTestPostService(fake *fakeDynamo, objects *fakeObjectStore, dailyLimit int, now time.Time) *PostService {
	svc := NewPostService(fake, objects, "Posts", dailyLimit)
	svc.Now = func() time.Time { return now }
	return svc
}

func TestCreatePost_ReturnsUploadURLs(t *testing.T) {
	t.Parallel()

	svc := newTestPostService(newFakeStore(), newFakeObjectStore(), 3, time.Now())

	created, err := svc.CreatePost(context.Background(), "alice", 800, 600)
	require.NoError(t, err)
	require.NotEmpty(t, created.PostID)
	require.Equal(t, "https://uploads.test/"+PostImageKey("alice", created.PostID, "primary"), created.PrimaryURL)
	require.Equal(t, "https://uploads.test/"+PostImageKey("alice", created.PostID, "secondary"), created.SecondaryURL)

	post, err := svc.GetPost(context.Background(), "alice", created.PostID)
	require.NoError(t, err)
	require.Empty(t, post.Caption)
	require.Zero(t, post.Likes)
	require.False(t, post.IsComplete())
}

func TestCreatePost_DailyRateLimit(t *testing.T) {
	t.Parallel()

	now := time.Now()
	svc := newTestPostService(newFakeStore(), newFakeObjectStore(), 2, now)
	ctx := context.Background()

	_, err := svc.CreatePost(ctx, "alice", 1, 1)
	require.NoError(t, err)
	_, err = svc.CreatePost(ctx, "alice", 1, 1)
	require.NoError(t, err)

	_, err = svc.CreatePost(ctx, "alice", 1, 1)
	require.ErrorIs(t, err, ErrRateLimited)

	// Other users are unaffected.
	_, err = svc.CreatePost(ctx, "bob", 1, 1)
	require.NoError(t, err)
}

func TestCreatePost_LimitResetsNextDay(t *testing.T) {
	t.Parallel()

	fake := newFakeStore()
	objects := newFakeObjectStore()
	now := time.Now()
	svc := newTestPostService(fake, objects, 1, now)
	ctx := context.Background()

	_, err := svc.CreatePost(ctx, "alice", 1, 1)
	require.NoError(t, err)
	_, err = svc.CreatePost(ctx, "alice", 1, 1)
	require.ErrorIs(t, err, ErrRateLimited)

	svc.Now = func() time.Time { return now.AddDate(0, 0, 1) }
	_, err = svc.CreatePost(ctx, "alice", 1, 1)
	require.NoError(t, err)
}

func TestCaptionPost(t *testing.T) {
	t.Parallel()

	svc := newTestPostService(newFakeStore(), newFakeObjectStore(), 3, time.Now())
	ctx := context.Background()

	created, err := svc.CreatePost(ctx, "alice", 1, 1)
	require.NoError(t, err)

	post, err := svc.CaptionPost(ctx, "alice", created.PostID, "sunny day")
	require.NoError(t, err)
	require.Equal(t, "sunny day", post.Caption)
}

func TestLikePost_IncrementAndClamp(t *testing.T) {
	t.Parallel()

	svc := newTestPostService(newFakeStore(), newFakeObjectStore(), 3, time.Now())
	ctx := context.Background()

	created, err := svc.CreatePost(ctx, "alice", 1, 1)
	require.NoError(t, err)

	post, err := svc.LikePost(ctx, "alice", created.PostID, LikeTypeLike)
	require.NoError(t, err)
	require.Equal(t, 1, post.Likes)

	post, err = svc.LikePost(ctx, "alice", created.PostID, LikeTypeDislike)
	require.NoError(t, err)
	require.Equal(t, 0, post.Likes)

	// A dislike at zero stays at zero.
	post, err = svc.LikePost(ctx, "alice", created.PostID, LikeTypeDislike)
	require.NoError(t, err)
	require.Equal(t, 0, post.Likes)
}

func TestCommentAndReplyIDAssignment(t *testing.T) {
	t.Parallel()

	svc := newTestPostService(newFakeStore(), newFakeObjectStore(), 3, time.Now())
	ctx := context.Background()

	created, err := svc.CreatePost(ctx, "alice", 1, 1)
	require.NoError(t, err)

	_, err = svc.CommentPost(ctx, "alice", created.PostID, "bob", "first")
	require.NoError(t, err)
	_, err = svc.CommentPost(ctx, "alice", created.PostID, "carol", "second")
	require.NoError(t, err)

	// Commenting with two existing comments assigns id 3.
	post, err := svc.CommentPost(ctx, "alice", created.PostID, "dave", "third")
	require.NoError(t, err)
	require.Len(t, post.Comments, 3)
	require.Equal(t, 3, post.Comments[2].ID)

	_, err = svc.ReplyToComment(ctx, "alice", created.PostID, "alice", 2, "thanks")
	require.NoError(t, err)

	// Replying with one existing reply assigns reply id 2.
	post, err = svc.ReplyToComment(ctx, "alice", created.PostID, "carol", 2, "welcome")
	require.NoError(t, err)
	require.Len(t, post.Comments[1].Replies, 2)
	require.Equal(t, 2, post.Comments[1].Replies[1].ID)
}

func TestReplyToComment_MissingComment(t *testing.T) {
	t.Parallel()

	svc := newTestPostService(newFakeStore(), newFakeObjectStore(), 3, time.Now())
	ctx := context.Background()

	created, err := svc.CreatePost(ctx, "alice", 1, 1)
	require.NoError(t, err)

	_, err = svc.ReplyToComment(ctx, "alice", created.PostID, "bob", 7, "hello?")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestReactToPost(t *testing.T) {
	t.Parallel()

	svc := newTestPostService(newFakeStore(), newFakeObjectStore(), 3, time.Now())
	ctx := context.Background()

	created, err := svc.CreatePost(ctx, "alice", 1, 1)
	require.NoError(t, err)

	post, err := svc.ReactToPost(ctx, "alice", created.PostID, "bob", "🔥")
	require.NoError(t, err)
	require.Len(t, post.Reactions, 1)
	require.Equal(t, "bob", post.Reactions[0].Author)
}

func TestAttachImage(t *testing.T) {
	t.Parallel()

	svc := newTestPostService(newFakeStore(), newFakeObjectStore(), 3, time.Now())
	ctx := context.Background()

	created, err := svc.CreatePost(ctx, "alice", 1, 1)
	require.NoError(t, err)

	image := models.Image{Image: "https://images.test/a", Width: 800, Height: 600}
	require.NoError(t, svc.AttachImage(ctx, "alice", created.PostID, image, models.ImageSlotPrimary))
	require.NoError(t, svc.AttachImage(ctx, "alice", created.PostID, image, models.ImageSlotSecondary))

	post, err := svc.GetPost(ctx, "alice", created.PostID)
	require.NoError(t, err)
	require.True(t, post.IsComplete())
	require.Equal(t, 800, post.PrimaryImage.Width)
}

func TestDeletePost_RemovesImages(t *testing.T) {
	t.Parallel()

	objects := newFakeObjectStore()
	svc := newTestPostService(newFakeStore(), objects, 3, time.Now())
	ctx := context.Background()

	created, err := svc.CreatePost(ctx, "alice", 1, 1)
	require.NoError(t, err)

	require.NoError(t, svc.DeletePost(ctx, "alice", created.PostID))

	_, err = svc.GetPost(ctx, "alice", created.PostID)
	require.ErrorIs(t, err, ErrNotFound)
	require.Contains(t, objects.deleted, PostImageKey("alice", created.PostID, "primary"))
	require.Contains(t, objects.deleted, PostImageKey("alice", created.PostID, "secondary"))
}
