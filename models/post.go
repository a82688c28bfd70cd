package models

import (
	"time"

	"github.com/google/uuid"
)

// Post represents a blog post authored in the markdown editor. The html
// column holds the editor-rendered markup verbatim; it is never re-derived
// server-side.
type Post struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title     string    `json:"title" db:"title" gorm:"type:text;not null"`
	Markdown  string    `json:"markdown" db:"markdown" gorm:"type:text;not null"`
	HTML      string    `json:"html" db:"html" gorm:"column:html;type:text;not null"`
	Excerpt   string    `json:"excerpt" db:"excerpt" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}
