package routes

import (
	"github.com/gorilla/mux"

	"github.com/rsastri21/status-application/controllers"
)

// RegisterWSRoutes sets up the notification websocket endpoint.
func RegisterWSRoutes(r *mux.Router, controller *controllers.WSController, authorizer *controllers.Authorizer) {
	wsRouter := r.PathPrefix("/ws").Subrouter()
	wsRouter.Use(authorizer.Middleware)

	wsRouter.HandleFunc("", controller.Connect).Methods("GET")
}
