package main

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/rsastri21/status-application/config"
	"github.com/rsastri21/status-application/controllers"
	"github.com/rsastri21/status-application/routes"
	"github.com/rsastri21/status-application/services"
	"github.com/rsastri21/status-application/ws"
)

func main() {
	cfg := config.Load()

	// Initialize AWS clients and the store adapters.
	log.Println("Initializing DynamoDB client...")
	dynamoService := &services.DynamoService{Client: services.InitializeDynamoDBClient(cfg.AWSRegion)}
	s3Service := services.NewS3Service(services.InitializeS3Client(cfg.AWSRegion), cfg.S3Bucket)
	log.Println("AWS clients initialized.")

	// Initialize services.
	userService := services.NewUserService(dynamoService, cfg.UserTable)
	sessionService := services.NewSessionService(dynamoService, cfg.SessionTable, cfg.SessionTTL)
	relationshipService := services.NewRelationshipService(dynamoService, cfg.RelationshipTable)
	postService := services.NewPostService(dynamoService, s3Service, cfg.PostTable, cfg.DailyPostLimit)
	feedService := services.NewFeedService(postService, relationshipService)

	// Start the notification hub.
	hub := ws.NewHub()
	go hub.Run()

	authorizer := controllers.NewAuthorizer(sessionService)

	// Initialize the router.
	r := mux.NewRouter()

	// Register a health check endpoint.
	r.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		controllers.WriteJSONResponse(w, http.StatusOK, map[string]string{"status": "healthy"})
	}).Methods("GET")

	// Register routes.
	routes.RegisterAuthRoutes(r, controllers.NewAuthController(userService, sessionService))
	routes.RegisterUserRoutes(r, controllers.NewUserController(userService), authorizer)
	routes.RegisterRelationshipRoutes(r, controllers.NewRelationshipController(relationshipService, userService, hub), authorizer)
	routes.RegisterPostRoutes(r, controllers.NewPostController(postService, hub), authorizer)
	routes.RegisterFeedRoutes(r, controllers.NewFeedController(feedService), authorizer)
	routes.RegisterUploadRoutes(r, controllers.NewUploadController(userService, postService, s3Service, cfg.ImageBaseURL))
	routes.RegisterWSRoutes(r, controllers.NewWSController(hub), authorizer)

	// Add CORS middleware.
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", controllers.UserHeader, controllers.AuthTokenHeader},
		AllowCredentials: true,
	}).Handler(r)

	// Start the HTTP server.
	log.Printf("Starting server on port %s...", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, corsHandler))
}
