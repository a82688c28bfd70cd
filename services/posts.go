package services

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"blogpress-backend/errs"
	"blogpress-backend/models"
)

// PostStore is the slice of the database layer the post service depends on.
// *database.PostRepo satisfies it.
type PostStore interface {
	FindAll() ([]*models.Post, error)
	FindByID(id uuid.UUID) (*models.Post, error)
	Add(post *models.Post) error
	UpdateFields(id uuid.UUID, fields map[string]any) error
	Delete(id uuid.UUID) error
}

// InsertPost is the request body for creating a post: the Post shape minus
// the store-assigned id and timestamps.
type InsertPost struct {
	Title    string `json:"title"`
	Markdown string `json:"markdown"`
	HTML     string `json:"html"`
	Excerpt  string `json:"excerpt"`
}

func (p InsertPost) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.Required.Error("title is required")),
	)
}

// UpdatePost is the partial-update body: any subset of the InsertPost fields.
// Nil fields are left untouched by the store's partial-update semantics.
type UpdatePost struct {
	Title    *string `json:"title"`
	Markdown *string `json:"markdown"`
	HTML     *string `json:"html"`
	Excerpt  *string `json:"excerpt"`
}

func (p UpdatePost) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.NilOrNotEmpty.Error("title cannot be empty")),
	)
}

// Fields maps the populated members onto their column names.
func (p UpdatePost) Fields() map[string]any {
	fields := make(map[string]any)
	if p.Title != nil {
		fields["title"] = *p.Title
	}
	if p.Markdown != nil {
		fields["markdown"] = *p.Markdown
	}
	if p.HTML != nil {
		fields["html"] = *p.HTML
	}
	if p.Excerpt != nil {
		fields["excerpt"] = *p.Excerpt
	}
	return fields
}

type PostService struct {
	store  PostStore
	logger zerolog.Logger
}

func NewPostService(store PostStore) *PostService {
	logger := log.With().Str("serviceName", "postService").Logger()
	return &PostService{store: store, logger: logger}
}

// List returns all posts ordered by creation time, newest first.
func (s *PostService) List() ([]*models.Post, error) {
	posts, err := s.store.FindAll()
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to fetch posts")
		return nil, errs.NewDatabaseError("find", "posts", err)
	}
	return posts, nil
}

// Get returns a single post. The id must parse as a UUID before the store is
// touched; a missing row maps to 404.
func (s *PostService) Get(id string) (*models.Post, error) {
	postID, err := uuid.Parse(id)
	if err != nil {
		return nil, errs.NewInvalidIDError("postID")
	}

	post, err := s.store.FindByID(postID)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "post", err)
	}
	return post, nil
}

// Create validates the input and stores a new post. created_at and
// updated_at start out equal.
func (s *PostService) Create(input InsertPost) (*models.Post, error) {
	if err := input.Validate(); err != nil {
		return nil, errs.NewValidationError("invalid post data", err)
	}

	post := &models.Post{
		Title:    input.Title,
		Markdown: input.Markdown,
		HTML:     input.HTML,
		Excerpt:  input.Excerpt,
	}
	if err := s.store.Add(post); err != nil {
		s.logger.Error().Err(err).Msg("Failed to create post")
		return nil, errs.NewDatabaseError("create", "post", err)
	}
	return post, nil
}

// Update applies a partial update. updated_at is always refreshed
// server-side, regardless of what the caller supplied.
func (s *PostService) Update(id string, input UpdatePost) (*models.Post, error) {
	postID, err := uuid.Parse(id)
	if err != nil {
		return nil, errs.NewInvalidIDError("postID")
	}

	if err := input.Validate(); err != nil {
		return nil, errs.NewValidationError("invalid post data", err)
	}

	fields := input.Fields()
	fields["updated_at"] = time.Now().UTC()

	if err := s.store.UpdateFields(postID, fields); err != nil {
		return nil, errs.NewDatabaseError("update", "post", err)
	}

	post, err := s.store.FindByID(postID)
	if err != nil {
		return nil, errs.NewDatabaseError("find updated", "post", err)
	}
	return post, nil
}

// Delete removes a post unconditionally. Deleting an id with no matching row
// is indistinguishable from success; cascading media cleanup is the editing
// client's job.
func (s *PostService) Delete(id string) error {
	postID, err := uuid.Parse(id)
	if err != nil {
		return errs.NewInvalidIDError("postID")
	}

	if err := s.store.Delete(postID); err != nil {
		s.logger.Error().Err(err).Str("postID", id).Msg("Failed to delete post")
		return errs.NewDatabaseError("delete", "post", err)
	}
	return nil
}
