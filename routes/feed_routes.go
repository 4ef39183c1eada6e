package routes

import (
	"github.com/gorilla/mux"

	"github.com/rsastri21/status-application/controllers"
)

// RegisterFeedRoutes sets up feed routes under /api/feed.
func RegisterFeedRoutes(r *mux.Router, controller *controllers.FeedController, authorizer *controllers.Authorizer) {
	feedRouter := r.PathPrefix("/api/feed").Subrouter()
	feedRouter.Use(authorizer.Middleware)

	feedRouter.HandleFunc("/friends", controller.FriendsFeed).Methods("GET")
	feedRouter.HandleFunc("/user", controller.UserFeed).Methods("GET")
}
