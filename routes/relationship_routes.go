package routes

import (
	"github.com/gorilla/mux"

	"github.com/rsastri21/status-application/controllers"
)

// RegisterRelationshipRoutes sets up friendship routes under
// /api/relationships.
func RegisterRelationshipRoutes(r *mux.Router, controller *controllers.RelationshipController, authorizer *controllers.Authorizer) {
	relationshipRouter := r.PathPrefix("/api/relationships").Subrouter()
	relationshipRouter.Use(authorizer.Middleware)

	relationshipRouter.HandleFunc("/friends", controller.GetFriends).Methods("GET")
	relationshipRouter.HandleFunc("/friends/remove", controller.RemoveFriend).Methods("POST")
	relationshipRouter.HandleFunc("/friend-requests/sent", controller.GetSentRequests).Methods("GET")
	relationshipRouter.HandleFunc("/friend-requests/received", controller.GetReceivedRequests).Methods("GET")
	relationshipRouter.HandleFunc("/friend-requests/new", controller.CreateRequest).Methods("POST")
	relationshipRouter.HandleFunc("/friend-requests/engage", controller.EngageRequest).Methods("POST")
}
