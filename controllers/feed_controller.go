package controllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/rsastri21/status-application/services"
)

// FeedController handles feed reads.
type FeedController struct {
	Feed *services.FeedService
}

// NewFeedController creates a FeedController.
func NewFeedController(feed *services.FeedService) *FeedController {
	return &FeedController{Feed: feed}
}

// parseRange extracts the from/to query parameters. from is required; a
// missing to means "now" and is left zero for the service to fill.
func parseRange(r *http.Request) (from, to int64, ok bool) {
	fromParam := r.URL.Query().Get("from")
	if fromParam == "" {
		return 0, 0, false
	}
	from, err := strconv.ParseInt(fromParam, 10, 64)
	if err != nil {
		return 0, 0, false
	}

	if toParam := r.URL.Query().Get("to"); toParam != "" {
		to, err = strconv.ParseInt(toParam, 10, 64)
		if err != nil {
			return 0, 0, false
		}
	}
	return from, to, true
}

// FriendsFeed returns the aggregated friends feed for the current user.
func (c *FeedController) FriendsFeed(w http.ResponseWriter, r *http.Request) {
	username := UsernameFromContext(r.Context())

	from, to, ok := parseRange(r)
	if !ok {
		WriteErrorResponse(w, http.StatusBadRequest, "Start date is required.")
		return
	}

	feed, err := c.Feed.FriendsFeed(r.Context(), username, from, to)
	if err != nil {
		log.Printf("Failed to generate friends feed for '%s': %v", username, err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Could not generate friends feed.")
		return
	}
	WriteJSONResponse(w, http.StatusOK, feed)
}

// UserFeed returns the current user's own feed.
func (c *FeedController) UserFeed(w http.ResponseWriter, r *http.Request) {
	username := UsernameFromContext(r.Context())

	from, to, ok := parseRange(r)
	if !ok {
		WriteErrorResponse(w, http.StatusBadRequest, "Start date is required.")
		return
	}

	feed, err := c.Feed.UserFeed(r.Context(), username, from, to)
	if err != nil {
		log.Printf("Failed to generate user feed for '%s': %v", username, err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Could not generate user feed.")
		return
	}
	WriteJSONResponse(w, http.StatusOK, feed)
}
