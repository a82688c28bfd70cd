package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes wires the post and media endpoints onto the router
func setupRoutes(r chi.Router, handlers *routeHandlers) {
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		// Post endpoints
		r.Get("/api/posts", handlers.postHandler.listPosts())
		r.Get("/api/posts/{postID}", handlers.postHandler.getPost())
		r.Post("/api/posts", handlers.postHandler.createPost())
		r.Put("/api/posts/{postID}", handlers.postHandler.updatePost())
		r.Delete("/api/posts/{postID}", handlers.postHandler.deletePost())

		// Media endpoints
		r.Post("/api/upload", handlers.mediaHandler.uploadMedia())
		r.Get("/api/media/{mediaID}", handlers.mediaHandler.getMedia())
		r.Delete("/api/media/{mediaID}", handlers.mediaHandler.deleteMedia())
		r.Post("/api/media/cleanup", handlers.mediaHandler.cleanupMedia())
	})
}
