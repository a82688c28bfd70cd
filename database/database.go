package database

import (
	"gorm.io/gorm"
)

type Database struct {
	postRepo  *PostRepo
	mediaRepo *MediaRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		postRepo:  NewPostRepo(db),
		mediaRepo: NewMediaRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) PostRepo() *PostRepo {
	return d.postRepo
}

func (d Database) MediaRepo() *MediaRepo {
	return d.mediaRepo
}
