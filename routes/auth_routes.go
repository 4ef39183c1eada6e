package routes

import (
	"github.com/gorilla/mux"

	"github.com/rsastri21/status-application/controllers"
)

// RegisterAuthRoutes sets up the unprotected authentication surface under
// /api/auth. Sign-out validates its own headers rather than the session,
// so revoking an already-dead session stays idempotent.
func RegisterAuthRoutes(r *mux.Router, controller *controllers.AuthController) {
	authRouter := r.PathPrefix("/api/auth").Subrouter()

	authRouter.HandleFunc("/register", controller.Register).Methods("PUT")
	authRouter.HandleFunc("/sign-in", controller.SignIn).Methods("POST")
	authRouter.HandleFunc("/sign-out", controller.SignOut).Methods("POST")
}
