package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"blogpress-backend/models"
)

type MediaRepo struct {
	db *gorm.DB
}

func NewMediaRepo(db *gorm.DB) *MediaRepo {
	return &MediaRepo{db}
}

// FindByID returns a media row by its ID. A missing row surfaces as
// gorm.ErrRecordNotFound.
func (r *MediaRepo) FindByID(id uuid.UUID) (*models.Media, error) {
	var media models.Media
	err := r.db.First(&media, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &media, nil
}

// Add inserts a new media row into the database
func (r *MediaRepo) Add(media *models.Media) error {
	if media.ID == uuid.Nil {
		media.ID = uuid.New()
	}
	return r.db.Create(media).Error
}

// Delete removes a media row by id. Deleting a missing row is not an error.
func (r *MediaRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Media{}, "id = ?", id).Error
}

// DeleteByIDs removes all rows matching the given ids in one batch. The
// result does not report which ids actually matched.
func (r *MediaRepo) DeleteByIDs(ids []uuid.UUID) error {
	return r.db.Delete(&models.Media{}, "id IN ?", ids).Error
}
