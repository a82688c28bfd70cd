package api

import (
	"blogpress-backend/database"
	"blogpress-backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database) *routeHandlers {
	return &routeHandlers{
		postHandler:  newPostHandler(services.NewPostService(database.PostRepo())),
		mediaHandler: newMediaHandler(services.NewMediaService(database.MediaRepo())),
	}
}
