package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	postHandler  postHandler
	mediaHandler mediaHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"Internal Server Error"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"title"`
	Details string `json:"details,omitempty" example:"Additional error details"`
}

// CleanupRequest is the bulk-delete body issued by the editing client when
// embedded media stops being referenced.
type CleanupRequest struct {
	MediaIDs []string `json:"mediaIds"`
}

// CleanupResponse reports how many ids the cleanup request covered. The
// count is the requested count, not a verified row count.
type CleanupResponse struct {
	Deleted int `json:"deleted"`
}
