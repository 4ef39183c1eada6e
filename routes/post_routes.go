package routes

import (
	"github.com/gorilla/mux"

	"github.com/rsastri21/status-application/controllers"
)

// RegisterPostRoutes sets up post routes under /api/posts.
func RegisterPostRoutes(r *mux.Router, controller *controllers.PostController, authorizer *controllers.Authorizer) {
	postRouter := r.PathPrefix("/api/posts").Subrouter()
	postRouter.Use(authorizer.Middleware)

	postRouter.HandleFunc("/new", controller.CreatePost).Methods("POST")
	postRouter.HandleFunc("/caption", controller.CaptionPost).Methods("POST")
	postRouter.HandleFunc("/like", controller.LikePost).Methods("POST")
	postRouter.HandleFunc("/comment", controller.CommentPost).Methods("POST")
	postRouter.HandleFunc("/comment/reply", controller.ReplyToComment).Methods("POST")
	postRouter.HandleFunc("/react", controller.ReactToPost).Methods("POST")
	postRouter.HandleFunc("/delete/{postId}", controller.DeletePost).Methods("DELETE")
}
