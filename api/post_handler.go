package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"blogpress-backend/errs"
	"blogpress-backend/models"
	"blogpress-backend/services"
)

type postHandler struct {
	responder Responder
	logger    zerolog.Logger
	posts     *services.PostService
}

func newPostHandler(posts *services.PostService) postHandler {
	logger := log.With().Str("handlerName", "postHandler").Logger()

	return postHandler{
		responder: NewResponder(logger),
		logger:    logger,
		posts:     posts,
	}
}

// listPosts retrieves all posts, newest first
// @Summary List posts
// @Description Retrieves all blog posts ordered by creation time descending
// @Tags Posts
// @Produce json
// @Success 200 {array} models.Post "List of posts"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching posts"
// @Router /api/posts [get]
func (h postHandler) listPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		posts, err := h.posts.List()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if posts == nil {
			posts = []*models.Post{}
		}
		h.responder.WriteJSON(w, posts)
	}
}

// getPost retrieves a specific post by ID
// @Summary Get post
// @Description Retrieves a single blog post by ID
// @Tags Posts
// @Produce json
// @Param postID path string true "Post ID" format(uuid)
// @Success 200 {object} models.Post "Post details"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid postID"
// @Failure 404 {object} ErrorResponse "Not Found - Post not found"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching post"
// @Router /api/posts/{postID} [get]
func (h postHandler) getPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, err := h.posts.Get(chi.URLParam(r, "postID"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, post)
	}
}

// createPost creates a new post
// @Summary Create post
// @Description Creates a new blog post from the editor payload
// @Tags Posts
// @Accept json
// @Produce json
// @Param post body services.InsertPost true "Post data"
// @Success 201 {object} models.Post "Created post"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid post data"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error creating post"
// @Router /api/posts [post]
func (h postHandler) createPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to read request body")
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read request body"))
			return
		}

		var input services.InsertPost
		if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&input); err != nil {
			h.logger.Error().Err(err).Str("body", string(bodyBytes)).Msg("Failed to decode post request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("post", err))
			return
		}

		post, err := h.posts.Create(input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, post)
	}
}

// updatePost applies a partial update to an existing post
// @Summary Update post
// @Description Updates any subset of a post's fields; updated_at is always refreshed server-side
// @Tags Posts
// @Accept json
// @Produce json
// @Param postID path string true "Post ID" format(uuid)
// @Param post body services.UpdatePost true "Partial post data"
// @Success 200 {object} models.Post "Updated post"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid postID or post data"
// @Failure 404 {object} ErrorResponse "Not Found - Post not found"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error updating post"
// @Router /api/posts/{postID} [put]
func (h postHandler) updatePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to read request body")
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read request body"))
			return
		}

		var input services.UpdatePost
		if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&input); err != nil {
			h.logger.Error().Err(err).Str("body", string(bodyBytes)).Msg("Failed to decode post request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("post", err))
			return
		}

		post, err := h.posts.Update(chi.URLParam(r, "postID"), input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, post)
	}
}

// deletePost deletes a post by ID
// @Summary Delete post
// @Description Deletes a post unconditionally; deleting an already-gone id still succeeds
// @Tags Posts
// @Param postID path string true "Post ID" format(uuid)
// @Success 204 "Deleted"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid postID"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error deleting post"
// @Router /api/posts/{postID} [delete]
func (h postHandler) deletePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.posts.Delete(chi.URLParam(r, "postID")); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
