package controllers

import (
	"context"
	"log"
	"net/http"

	"github.com/rsastri21/status-application/services"
)

// Request identity sources: the claimed username and the bearer token.
const (
	UserHeader      = "user"
	AuthTokenHeader = "auth-token"
)

type contextKey string

const usernameContextKey contextKey = "username"

// UsernameFromContext returns the authenticated username placed in the
// request context by the Authorizer.
func UsernameFromContext(ctx context.Context) string {
	username, _ := ctx.Value(usernameContextKey).(string)
	return username
}

// Authorizer guards protected routes. It delegates to the session service
// and fails closed: a store failure during validation denies the request
// rather than letting it through.
type Authorizer struct {
	Sessions *services.SessionService
}

// NewAuthorizer creates an Authorizer over the session service.
func NewAuthorizer(sessions *services.SessionService) *Authorizer {
	return &Authorizer{Sessions: sessions}
}

// Middleware validates the request's session before passing it on. A
// missing username or token is a malformed request, not an authentication
// failure.
func (a *Authorizer) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username := r.Header.Get(UserHeader)
		token := r.Header.Get(AuthTokenHeader)

		if username == "" || token == "" {
			WriteErrorResponse(w, http.StatusBadRequest, "User or token not provided.")
			return
		}

		authenticated, err := a.Sessions.Validate(r.Context(), username, token)
		if err != nil {
			log.Printf("Session validation failed for '%s': %v", username, err)
			WriteErrorResponse(w, http.StatusUnauthorized, "Request authorization failed.")
			return
		}
		if !authenticated {
			WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		ctx := context.WithValue(r.Context(), usernameContextKey, username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
