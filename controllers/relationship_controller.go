package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/rsastri21/status-application/models"
	"github.com/rsastri21/status-application/services"
	"github.com/rsastri21/status-application/ws"
)

// RelationshipController handles friendship queries and the friend-request
// state machine.
type RelationshipController struct {
	Relationships *services.RelationshipService
	Users         *services.UserService
	Hub           *ws.Hub
}

// NewRelationshipController creates a RelationshipController. The hub may
// be nil, in which case no notifications are emitted.
func NewRelationshipController(relationships *services.RelationshipService, users *services.UserService, hub *ws.Hub) *RelationshipController {
	return &RelationshipController{Relationships: relationships, Users: users, Hub: hub}
}

func (c *RelationshipController) notify(username string, event ws.Event) {
	if c.Hub != nil {
		c.Hub.Notify(username, event)
	}
}

type friendRequest struct {
	Friend string `json:"friend"`
}

type engageRequest struct {
	Friend string `json:"friend"`
	Action string `json:"action"`
}

// listHandler runs a relationship query for the current user and writes
// the records. Query results are returned as-is; an empty partition is an
// empty list, not an error.
func (c *RelationshipController) listHandler(w http.ResponseWriter, r *http.Request, query func(context.Context, string) ([]models.Relationship, error)) {
	username := UsernameFromContext(r.Context())

	relationships, err := query(r.Context(), username)
	if err != nil {
		log.Printf("Failed to query relationships for '%s': %v", username, err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Error retrieving information.")
		return
	}
	if relationships == nil {
		relationships = []models.Relationship{}
	}
	WriteJSONResponse(w, http.StatusOK, relationships)
}

// GetFriends returns all confirmed friends for the current user.
func (c *RelationshipController) GetFriends(w http.ResponseWriter, r *http.Request) {
	c.listHandler(w, r, c.Relationships.GetFriends)
}

// GetSentRequests returns pending requests the current user initiated.
func (c *RelationshipController) GetSentRequests(w http.ResponseWriter, r *http.Request) {
	c.listHandler(w, r, c.Relationships.GetSentRequests)
}

// GetReceivedRequests returns pending requests awaiting the current user.
func (c *RelationshipController) GetReceivedRequests(w http.ResponseWriter, r *http.Request) {
	c.listHandler(w, r, c.Relationships.GetReceivedRequests)
}

// CreateRequest opens a friend request toward an existing user.
func (c *RelationshipController) CreateRequest(w http.ResponseWriter, r *http.Request) {
	username := UsernameFromContext(r.Context())

	var params friendRequest
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil || params.Friend == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	// The target must exist before an edge can be created toward it.
	if _, err := c.Users.GetUser(r.Context(), params.Friend); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			WriteErrorResponse(w, http.StatusNotFound, "Target user does not exist.")
			return
		}
		log.Printf("Failed to validate target user '%s': %v", params.Friend, err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Error validating target user.")
		return
	}

	if err := c.Relationships.CreateRequest(r.Context(), username, params.Friend); err != nil {
		if errors.Is(err, services.ErrAlreadyExists) {
			WriteErrorResponse(w, http.StatusConflict, "A relationship already exists.")
			return
		}
		log.Printf("Failed to create friend request '%s' -> '%s': %v", username, params.Friend, err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Failed to create friend request.")
		return
	}

	c.notify(params.Friend, ws.Event{Type: ws.EventFriendRequest, From: username})
	WriteJSONResponse(w, http.StatusOK, map[string]string{"message": "Request created successfully."})
}

// EngageRequest accepts or rejects a pending friend request.
func (c *RelationshipController) EngageRequest(w http.ResponseWriter, r *http.Request) {
	username := UsernameFromContext(r.Context())

	var params engageRequest
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil || params.Friend == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if params.Action != models.EngageActionAccept && params.Action != models.EngageActionReject {
		WriteErrorResponse(w, http.StatusBadRequest, "Action must be accept or reject.")
		return
	}

	if err := c.Relationships.Engage(r.Context(), username, params.Friend, params.Action); err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			WriteErrorResponse(w, http.StatusNotFound, "Could not validate request.")
		case errors.Is(err, services.ErrForbidden):
			WriteErrorResponse(w, http.StatusForbidden, "Cannot accept own request.")
		default:
			log.Printf("Failed to engage request '%s' -> '%s': %v", username, params.Friend, err)
			WriteErrorResponse(w, http.StatusInternalServerError, "Failed to engage request.")
		}
		return
	}

	if params.Action == models.EngageActionAccept {
		c.notify(params.Friend, ws.Event{Type: ws.EventFriendAccepted, From: username})
	}
	WriteJSONResponse(w, http.StatusOK, map[string]string{"message": "Request " + params.Action + "ed successfully."})
}

// RemoveFriend deletes the friendship edge in both directions.
func (c *RelationshipController) RemoveFriend(w http.ResponseWriter, r *http.Request) {
	username := UsernameFromContext(r.Context())

	var params friendRequest
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil || params.Friend == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := c.Relationships.Remove(r.Context(), username, params.Friend); err != nil {
		log.Printf("Failed to remove friend '%s' -> '%s': %v", username, params.Friend, err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Failed to remove friend.")
		return
	}
	WriteJSONResponse(w, http.StatusOK, map[string]string{"message": "Friend successfully removed."})
}
