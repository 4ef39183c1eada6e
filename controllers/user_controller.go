package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/rsastri21/status-application/models"
	"github.com/rsastri21/status-application/services"
)

// UserController handles profile reads and edits.
type UserController struct {
	Users *services.UserService
}

// NewUserController creates a UserController.
func NewUserController(users *services.UserService) *UserController {
	return &UserController{Users: users}
}

// GetProfile returns the current user's profile, or another user's if a
// username query parameter is given.
func (c *UserController) GetProfile(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" {
		username = UsernameFromContext(r.Context())
	}

	user, err := c.Users.GetUser(r.Context(), username)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			WriteErrorResponse(w, http.StatusNotFound, "User not found.")
			return
		}
		log.Printf("Failed to fetch user '%s': %v", username, err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Error retrieving user.")
		return
	}
	WriteJSONResponse(w, http.StatusOK, user)
}

// EditProfile applies a typed partial update to the current user.
func (c *UserController) EditProfile(w http.ResponseWriter, r *http.Request) {
	username := UsernameFromContext(r.Context())

	var update models.UserUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if _, err := c.Users.UpdateUser(r.Context(), username, update); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			WriteErrorResponse(w, http.StatusNotFound, "User not found.")
			return
		}
		log.Printf("Failed to update user '%s': %v", username, err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Unsuccessful update.")
		return
	}
	WriteJSONResponse(w, http.StatusOK, map[string]string{"message": "User updated."})
}
