package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/rsastri21/status-application/models"
	"github.com/rsastri21/status-application/services"
	"github.com/rsastri21/status-application/ws"
)

// PostController handles post creation and mutation.
type PostController struct {
	Posts *services.PostService
	Hub   *ws.Hub
}

// NewPostController creates a PostController. The hub may be nil.
func NewPostController(posts *services.PostService, hub *ws.Hub) *PostController {
	return &PostController{Posts: posts, Hub: hub}
}

func (c *PostController) notify(username string, event ws.Event) {
	if c.Hub != nil {
		c.Hub.Notify(username, event)
	}
}

type newPostRequest struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type captionRequest struct {
	PostID  string `json:"postId"`
	Caption string `json:"caption"`
}

type likeRequest struct {
	Username string `json:"username"`
	PostID   string `json:"postId"`
	Type     string `json:"type"`
}

type commentRequest struct {
	Username string `json:"username"`
	PostID   string `json:"postId"`
	Content  string `json:"content"`
}

type replyRequest struct {
	Username  string `json:"username"`
	PostID    string `json:"postId"`
	Content   string `json:"content"`
	CommentID int    `json:"commentId"`
}

type reactionRequest struct {
	Username string `json:"username"`
	PostID   string `json:"postId"`
	Emoji    string `json:"emoji"`
}

// CreatePost creates an empty post for the current user and returns
// presigned upload URLs for its two image slots.
func (c *PostController) CreatePost(w http.ResponseWriter, r *http.Request) {
	username := UsernameFromContext(r.Context())

	var params newPostRequest
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil || params.Width < 0 || params.Height < 0 {
		WriteErrorResponse(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	created, err := c.Posts.CreatePost(r.Context(), username, params.Width, params.Height)
	if err != nil {
		if errors.Is(err, services.ErrRateLimited) {
			WriteErrorResponse(w, http.StatusTooManyRequests, "User has posted too many times today.")
			return
		}
		log.Printf("Failed to create post for '%s': %v", username, err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Failed to create post.")
		return
	}
	WriteJSONResponse(w, http.StatusOK, created)
}

// CaptionPost sets the caption on one of the current user's posts.
func (c *PostController) CaptionPost(w http.ResponseWriter, r *http.Request) {
	username := UsernameFromContext(r.Context())

	var params captionRequest
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil || params.PostID == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if len(params.Caption) > models.CaptionMaxLength {
		WriteErrorResponse(w, http.StatusBadRequest, "Caption is too long.")
		return
	}

	post, err := c.Posts.CaptionPost(r.Context(), username, params.PostID, params.Caption)
	if err != nil {
		log.Printf("Failed to caption post '%s': %v", params.PostID, err)
		WriteErrorResponse(w, statusFromError(err), "Failed to caption post.")
		return
	}
	WriteJSONResponse(w, http.StatusOK, map[string]interface{}{
		"message": "Post captioned successfully.",
		"post":    post,
	})
}

// LikePost adjusts the like counter on the identified post.
func (c *PostController) LikePost(w http.ResponseWriter, r *http.Request) {
	liker := UsernameFromContext(r.Context())

	var params likeRequest
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil || params.Username == "" || params.PostID == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if params.Type != services.LikeTypeLike && params.Type != services.LikeTypeDislike {
		WriteErrorResponse(w, http.StatusBadRequest, "Type must be like or dislike.")
		return
	}

	post, err := c.Posts.LikePost(r.Context(), params.Username, params.PostID, params.Type)
	if err != nil {
		log.Printf("Failed to like post '%s': %v", params.PostID, err)
		WriteErrorResponse(w, statusFromError(err), "Failed to like post.")
		return
	}

	if params.Type == services.LikeTypeLike && params.Username != liker {
		c.notify(params.Username, ws.Event{Type: ws.EventPostLiked, From: liker, Payload: params.PostID})
	}
	WriteJSONResponse(w, http.StatusOK, map[string]interface{}{
		"message": "Successfully liked post.",
		"post":    post,
	})
}

// CommentPost appends a comment to the identified post.
func (c *PostController) CommentPost(w http.ResponseWriter, r *http.Request) {
	author := UsernameFromContext(r.Context())

	var params commentRequest
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil || params.Username == "" || params.PostID == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if params.Content == "" || len(params.Content) > models.CaptionMaxLength {
		WriteErrorResponse(w, http.StatusBadRequest, "Comment must be between 1 and 140 characters.")
		return
	}

	post, err := c.Posts.CommentPost(r.Context(), params.Username, params.PostID, author, params.Content)
	if err != nil {
		log.Printf("Failed to comment on post '%s': %v", params.PostID, err)
		WriteErrorResponse(w, statusFromError(err), "Failed to comment on post.")
		return
	}

	if params.Username != author {
		c.notify(params.Username, ws.Event{Type: ws.EventPostCommented, From: author, Payload: params.PostID})
	}
	WriteJSONResponse(w, http.StatusOK, map[string]interface{}{
		"message": "Successfully commented on post.",
		"post":    post,
	})
}

// ReplyToComment appends a reply to a comment on the identified post.
func (c *PostController) ReplyToComment(w http.ResponseWriter, r *http.Request) {
	author := UsernameFromContext(r.Context())

	var params replyRequest
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil || params.Username == "" || params.PostID == "" || params.CommentID < 1 {
		WriteErrorResponse(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if params.Content == "" || len(params.Content) > models.CaptionMaxLength {
		WriteErrorResponse(w, http.StatusBadRequest, "Reply must be between 1 and 140 characters.")
		return
	}

	post, err := c.Posts.ReplyToComment(r.Context(), params.Username, params.PostID, author, params.CommentID, params.Content)
	if err != nil {
		log.Printf("Failed to reply on post '%s': %v", params.PostID, err)
		WriteErrorResponse(w, statusFromError(err), "Failed to reply on post.")
		return
	}
	WriteJSONResponse(w, http.StatusOK, map[string]interface{}{
		"message": "Successfully replied on post.",
		"post":    post,
	})
}

// ReactToPost appends an emoji reaction to the identified post.
func (c *PostController) ReactToPost(w http.ResponseWriter, r *http.Request) {
	author := UsernameFromContext(r.Context())

	var params reactionRequest
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil || params.Username == "" || params.PostID == "" || params.Emoji == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	post, err := c.Posts.ReactToPost(r.Context(), params.Username, params.PostID, author, params.Emoji)
	if err != nil {
		log.Printf("Failed to react to post '%s': %v", params.PostID, err)
		WriteErrorResponse(w, statusFromError(err), "Failed to react to post.")
		return
	}
	WriteJSONResponse(w, http.StatusOK, map[string]interface{}{
		"message": "Successfully reacted to post.",
		"post":    post,
	})
}

// DeletePost removes one of the current user's posts and its images.
func (c *PostController) DeletePost(w http.ResponseWriter, r *http.Request) {
	username := UsernameFromContext(r.Context())
	postID := mux.Vars(r)["postId"]

	if err := c.Posts.DeletePost(r.Context(), username, postID); err != nil {
		log.Printf("Failed to delete post '%s': %v", postID, err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Could not delete post.")
		return
	}
	WriteJSONResponse(w, http.StatusOK, map[string]string{"message": "Post deleted."})
}
