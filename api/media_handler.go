package api

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"blogpress-backend/errs"
	"blogpress-backend/services"
)

// multipartMemoryLimit is how much of an upload is buffered in memory before
// spilling to a temp file. The hard size cap lives in the media service.
const multipartMemoryLimit = 32 << 20

type mediaHandler struct {
	responder Responder
	logger    zerolog.Logger
	media     *services.MediaService
}

func newMediaHandler(media *services.MediaService) mediaHandler {
	logger := log.With().Str("handlerName", "mediaHandler").Logger()

	return mediaHandler{
		responder: NewResponder(logger),
		logger:    logger,
		media:     media,
	}
}

// uploadMedia stores an uploaded file as a new media row
// @Summary Upload media
// @Description Accepts a multipart upload in field `file`, validates type and size, stores it base64-encoded
// @Tags Media
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image or video file"
// @Success 200 {object} services.UploadResult "Upload result with servable URL"
// @Failure 400 {object} ErrorResponse "Bad Request - Missing file, disallowed type, or oversized payload"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error storing media"
// @Router /api/upload [post]
func (h mediaHandler) uploadMedia() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
			h.logger.Error().Err(err).Msg("Failed to parse multipart form")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("multipart", err))
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("no file provided"))
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			h.logger.Error().Err(err).Str("filename", header.Filename).Msg("Failed to read uploaded file")
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read uploaded file"))
			return
		}

		result, err := h.media.Upload(data, header.Filename, header.Header.Get("Content-Type"), header.Size)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, result)
	}
}

// getMedia serves a stored media payload back as binary
// @Summary Get media
// @Description Decodes the stored base64 payload and serves it with its original content type
// @Tags Media
// @Param mediaID path string true "Media ID" format(uuid)
// @Success 200 {file} binary "Media content"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid mediaID"
// @Failure 404 {object} ErrorResponse "Not Found - Media not found"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching media"
// @Router /api/media/{mediaID} [get]
func (h mediaHandler) getMedia() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		media, err := h.media.Get(chi.URLParam(r, "mediaID"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		buffer, err := base64.StdEncoding.DecodeString(media.Data)
		if err != nil {
			h.logger.Error().Err(err).Str("mediaID", media.ID.String()).Msg("Failed to decode stored media data")
			h.responder.WriteError(w, errs.NewInternalError("failed to decode media"))
			return
		}

		// Content is immutable once uploaded, so clients may cache hard
		w.Header().Set("Content-Type", media.MimeType)
		w.Header().Set("Content-Length", strconv.Itoa(len(buffer)))
		w.Header().Set("Cache-Control", "public, max-age=31536000")
		if _, err := w.Write(buffer); err != nil {
			h.logger.Error().Err(err).Msg("error writing media response")
		}
	}
}

// deleteMedia deletes a media row by ID
// @Summary Delete media
// @Description Deletes a media row unconditionally; deleting an already-gone id still succeeds
// @Tags Media
// @Param mediaID path string true "Media ID" format(uuid)
// @Success 204 "Deleted"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid mediaID"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error deleting media"
// @Router /api/media/{mediaID} [delete]
func (h mediaHandler) deleteMedia() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.media.Delete(chi.URLParam(r, "mediaID")); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// cleanupMedia bulk-deletes media rows no longer referenced by a post
// @Summary Cleanup media
// @Description Deletes all media rows matching the given id list in one batch call
// @Tags Media
// @Accept json
// @Produce json
// @Param request body CleanupRequest true "Ids to delete"
// @Success 200 {object} CleanupResponse "Requested deletion count"
// @Failure 400 {object} ErrorResponse "Bad Request - Empty or invalid id list"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error deleting media"
// @Router /api/media/cleanup [post]
func (h mediaHandler) cleanupMedia() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var request CleanupRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode cleanup request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("cleanup", err))
			return
		}

		deleted, err := h.media.Cleanup(request.MediaIDs)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, CleanupResponse{Deleted: deleted})
	}
}
