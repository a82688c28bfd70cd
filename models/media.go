package models

import (
	"time"

	"github.com/google/uuid"
)

// Media is an uploaded binary asset (image or video) stored inline in the
// database as base64-encoded text. Content is immutable once uploaded: the
// same id always maps to the same bytes.
type Media struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Filename  string    `json:"filename" db:"filename" gorm:"type:text;not null"`
	MimeType  string    `json:"mime_type" db:"mime_type" gorm:"type:text;not null"`
	Data      string    `json:"data" db:"data" gorm:"type:text;not null"`
	Size      int64     `json:"size" db:"size" gorm:"type:bigint;not null"`
	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}
