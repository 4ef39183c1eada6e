package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/rsastri21/status-application/services"
)

// AuthController handles registration, sign-in and sign-out.
type AuthController struct {
	Users    *services.UserService
	Sessions *services.SessionService
}

// NewAuthController creates an AuthController.
func NewAuthController(users *services.UserService, sessions *services.SessionService) *AuthController {
	return &AuthController{Users: users, Sessions: sessions}
}

type registerRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *registerRequest) validate() string {
	switch {
	case r.Username == "" || r.Name == "":
		return "Username and name are required."
	case !strings.Contains(r.Email, "@"):
		return "A valid email is required."
	case len(r.Password) < 8:
		return "Enter at least 8 characters"
	default:
		return ""
	}
}

// Register creates a new user if not already present.
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var params registerRequest
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if msg := params.validate(); msg != "" {
		WriteErrorResponse(w, http.StatusBadRequest, msg)
		return
	}

	if err := c.Users.Register(r.Context(), params.Username, params.Name, params.Email, params.Password); err != nil {
		log.Printf("Failed to register '%s': %v", params.Username, err)
		WriteErrorResponse(w, statusFromError(err), "Unsuccessful registration.")
		return
	}
	WriteJSONResponse(w, http.StatusCreated, map[string]string{"message": "User created."})
}

// SignIn verifies credentials and issues a session token. Unknown users
// and wrong passwords produce an identical response so the endpoint does
// not leak which usernames exist.
func (c *AuthController) SignIn(w http.ResponseWriter, r *http.Request) {
	var params signInRequest
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if params.Username == "" || params.Password == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "Username and password are required.")
		return
	}

	user, err := c.Users.VerifyCredentials(r.Context(), params.Username, params.Password)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			WriteErrorResponse(w, http.StatusUnauthorized, "Incorrect login information.")
			return
		}
		log.Printf("Sign-in failed for '%s': %v", params.Username, err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Sign-in unsuccessful.")
		return
	}

	token, err := c.Sessions.Issue(r.Context(), user.Username)
	if err != nil {
		log.Printf("Failed to create session for '%s': %v", user.Username, err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Could not create session.")
		return
	}

	// The advertised expiry is half the real TTL so clients come back
	// inside the refresh window and keep the same token alive.
	WriteJSONResponse(w, http.StatusOK, map[string]interface{}{
		"message":   "Sign-in successful.",
		"authToken": token,
		"expiresAt": time.Now().UnixMilli() + c.Sessions.TTL.Milliseconds()/2,
	})
}

// SignOut revokes the presented session.
func (c *AuthController) SignOut(w http.ResponseWriter, r *http.Request) {
	username := r.Header.Get(UserHeader)
	token := r.Header.Get(AuthTokenHeader)
	if username == "" || token == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "User or token not provided.")
		return
	}

	if err := c.Sessions.Revoke(r.Context(), username, token); err != nil {
		log.Printf("Sign-out failed for '%s': %v", username, err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Sign-out failed.")
		return
	}
	WriteJSONResponse(w, http.StatusOK, map[string]string{"message": "Signed-out successfully."})
}
