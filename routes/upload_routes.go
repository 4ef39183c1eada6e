package routes

import (
	"github.com/gorilla/mux"

	"github.com/rsastri21/status-application/controllers"
)

// RegisterUploadRoutes sets up the S3 notification webhook. The bucket is
// the caller here, not a user, so the route sits outside the authorizer.
func RegisterUploadRoutes(r *mux.Router, controller *controllers.UploadController) {
	r.HandleFunc("/api/uploads/notify", controller.HandleNotification).Methods("POST")
}
