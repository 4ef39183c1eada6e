package routes

import (
	"github.com/gorilla/mux"

	"github.com/rsastri21/status-application/controllers"
)

// RegisterUserRoutes sets up profile routes under /api/user.
func RegisterUserRoutes(r *mux.Router, controller *controllers.UserController, authorizer *controllers.Authorizer) {
	userRouter := r.PathPrefix("/api/user").Subrouter()
	userRouter.Use(authorizer.Middleware)

	userRouter.HandleFunc("/profile", controller.GetProfile).Methods("GET")
	userRouter.HandleFunc("/profile/edit", controller.EditProfile).Methods("POST")
}
