package controllers

import (
	"net/http"

	"github.com/rsastri21/status-application/ws"
)

// WSController upgrades authorized requests to notification websockets.
type WSController struct {
	Hub *ws.Hub
}

// NewWSController creates a WSController.
func NewWSController(hub *ws.Hub) *WSController {
	return &WSController{Hub: hub}
}

// Connect registers the current user's websocket with the hub. The route
// sits behind the authorizer, so the username in context is trusted.
func (c *WSController) Connect(w http.ResponseWriter, r *http.Request) {
	username := UsernameFromContext(r.Context())
	if username == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "User not provided.")
		return
	}
	ws.ServeWS(c.Hub, username, w, r)
}
