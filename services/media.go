package services

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"blogpress-backend/errs"
	"blogpress-backend/models"
)

// MaxUploadSize caps uploaded payloads at 10 MiB, checked before any store
// interaction.
const MaxUploadSize int64 = 10 * 1024 * 1024

// AllowedMimeTypes is the fixed upload allow-list.
var AllowedMimeTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
	"video/mp4",
	"video/webm",
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// SanitizeFilename builds the stored display name: unsafe characters are
// replaced and an ingestion timestamp is prefixed to avoid collisions.
func SanitizeFilename(originalName string) string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), unsafeFilenameChars.ReplaceAllString(originalName, "_"))
}

// MediaStore is the slice of the database layer the media service depends
// on. *database.MediaRepo satisfies it.
type MediaStore interface {
	FindByID(id uuid.UUID) (*models.Media, error)
	Add(media *models.Media) error
	Delete(id uuid.UUID) error
	DeleteByIDs(ids []uuid.UUID) error
}

// UploadResult is what the editor gets back after an upload: a servable URL
// plus the stored name and id.
type UploadResult struct {
	URL      string `json:"url"`
	FileName string `json:"fileName"`
	ID       string `json:"id"`
}

type MediaService struct {
	store  MediaStore
	logger zerolog.Logger
}

func NewMediaService(store MediaStore) *MediaService {
	logger := log.With().Str("serviceName", "mediaService").Logger()
	return &MediaService{store: store, logger: logger}
}

// Upload validates type and size, then stores the payload base64-encoded in
// a single new row. Rejections happen before the store is touched.
func (s *MediaService) Upload(data []byte, originalName, mimeType string, size int64) (*UploadResult, error) {
	allowed := false
	for _, t := range AllowedMimeTypes {
		if t == mimeType {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, errs.NewUnsupportedMediaTypeError(mimeType, AllowedMimeTypes)
	}
	if size > MaxUploadSize {
		return nil, errs.NewMaxBodySizeExceededError(MaxUploadSize)
	}

	media := &models.Media{
		Filename: SanitizeFilename(originalName),
		MimeType: mimeType,
		Data:     base64.StdEncoding.EncodeToString(data),
		Size:     size,
	}
	if err := s.store.Add(media); err != nil {
		s.logger.Error().Err(err).Str("filename", media.Filename).Msg("Failed to upload media")
		return nil, errs.NewDatabaseError("create", "media", err)
	}

	return &UploadResult{
		URL:      "/api/media/" + media.ID.String(),
		FileName: media.Filename,
		ID:       media.ID.String(),
	}, nil
}

// Get returns a media row by id. Callers decode the stored base64 back to
// binary before serving it.
func (s *MediaService) Get(id string) (*models.Media, error) {
	mediaID, err := uuid.Parse(id)
	if err != nil {
		return nil, errs.NewInvalidIDError("mediaID")
	}

	media, err := s.store.FindByID(mediaID)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "media", err)
	}
	return media, nil
}

// Delete removes a media row unconditionally; a missing row is not an error.
func (s *MediaService) Delete(id string) error {
	mediaID, err := uuid.Parse(id)
	if err != nil {
		return errs.NewInvalidIDError("mediaID")
	}

	if err := s.store.Delete(mediaID); err != nil {
		s.logger.Error().Err(err).Str("mediaID", id).Msg("Failed to delete media")
		return errs.NewDatabaseError("delete", "media", err)
	}
	return nil
}

// Cleanup bulk-deletes the given ids. The returned count is the number of
// ids requested, not the number of rows actually removed; the batch delete
// does not report partial matches, so this is an upper bound.
func (s *MediaService) Cleanup(ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, errs.NewBadRequestError("invalid media IDs")
	}

	mediaIDs := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		mediaID, err := uuid.Parse(id)
		if err != nil {
			return 0, errs.NewInvalidIDError("mediaIds")
		}
		mediaIDs = append(mediaIDs, mediaID)
	}

	if err := s.store.DeleteByIDs(mediaIDs); err != nil {
		s.logger.Error().Err(err).Int("count", len(mediaIDs)).Msg("Failed to cleanup media")
		return 0, errs.NewDatabaseError("cleanup", "media", err)
	}
	return len(ids), nil
}
