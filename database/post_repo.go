package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"blogpress-backend/models"
)

type PostRepo struct {
	db *gorm.DB
}

func NewPostRepo(db *gorm.DB) *PostRepo {
	return &PostRepo{db}
}

// FindAll returns all posts, newest first
func (r *PostRepo) FindAll() ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.Order("created_at DESC").Find(&posts).Error
	return posts, err
}

// FindByID returns a post by its ID. A missing row surfaces as
// gorm.ErrRecordNotFound; callers map it to a 404.
func (r *PostRepo) FindByID(id uuid.UUID) (*models.Post, error) {
	var post models.Post
	err := r.db.First(&post, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Add inserts a new post into the database
func (r *PostRepo) Add(post *models.Post) error {
	if post.ID == uuid.Nil {
		post.ID = uuid.New()
	}
	return r.db.Create(post).Error
}

// UpdateFields applies a partial column update to an existing post. The
// caller decides which columns change; absent columns are left untouched.
func (r *PostRepo) UpdateFields(id uuid.UUID, fields map[string]any) error {
	result := r.db.Model(&models.Post{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a post by id. Deleting a missing row is not an error.
func (r *PostRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Post{}, "id = ?", id).Error
}
