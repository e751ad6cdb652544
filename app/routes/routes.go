package routes

import (
	"log/slog"
	"net/http"

	"pressroom/app/controllers"
	"pressroom/app/metrics"
	"pressroom/app/middleware"
	"pressroom/app/services"

	"github.com/gorilla/mux"
)

// Dependencies are the services the HTTP surface is built on.
type Dependencies struct {
	Posts          *services.PostService
	Comments       *services.CommentService
	Shares         *services.ShareService
	BaseURL        string
	AdminTokenHash string
	Logger         *slog.Logger
}

// SetupRoutes defines the application's routes and returns a router.
func SetupRoutes(deps Dependencies) *mux.Router {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(controllers.NotFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(controllers.MethodNotAllowed)

	// Apply global middleware
	router.Use(middleware.RequestID(deps.Logger))
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Metrics)
	router.Use(middleware.ContentTypeJSON)

	postController := controllers.NewPostController(deps.Posts)
	commentController := controllers.NewCommentController(deps.Comments)
	shareController := controllers.NewShareController(deps.Shares)
	sitemapController := controllers.NewSitemapController(deps.Posts, deps.BaseURL)
	adminController := controllers.NewAdminController(deps.Posts, deps.Comments)

	router.HandleFunc("/sitemap.xml", sitemapController.Sitemap).Methods("GET")
	router.Handle("/metrics", metrics.Handler()).Methods("GET")

	// API routes
	api := router.PathPrefix("/api").Subrouter()

	// Posts API endpoints
	api.HandleFunc("/posts", postController.Index).Methods("GET")
	api.HandleFunc("/tags/{tag}/posts", postController.Index).Methods("GET")
	api.HandleFunc("/posts/{year:[0-9]{4}}/{month:[0-9]{1,2}}/{day:[0-9]{1,2}}/{slug}", postController.Show).Methods("GET")
	api.HandleFunc("/search", postController.Search).Methods("GET")
	api.HandleFunc("/stats", postController.Stats).Methods("GET")

	// Mutation endpoints
	api.HandleFunc("/posts/{id:[0-9]+}/comments", commentController.Create).Methods("POST")
	api.HandleFunc("/posts/{id:[0-9]+}/share", shareController.Share).Methods("POST")

	// Admin endpoints
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireAdmin(deps.AdminTokenHash))
	admin.HandleFunc("/config", adminController.Config).Methods("GET")
	admin.HandleFunc("/tags", adminController.ListTags).Methods("GET")
	admin.HandleFunc("/posts", adminController.ListPosts).Methods("GET")
	admin.HandleFunc("/posts", adminController.CreatePost).Methods("POST")
	admin.HandleFunc("/posts/{id:[0-9]+}", adminController.GetPost).Methods("GET")
	admin.HandleFunc("/posts/{id:[0-9]+}", adminController.UpdatePost).Methods("PUT")
	admin.HandleFunc("/posts/{id:[0-9]+}", adminController.DeletePost).Methods("DELETE")
	admin.HandleFunc("/comments", adminController.ListComments).Methods("GET")
	admin.HandleFunc("/comments/{id:[0-9]+}", adminController.PatchComment).Methods("PATCH")
	admin.HandleFunc("/comments/{id:[0-9]+}", adminController.DeleteComment).Methods("DELETE")

	return router
}
