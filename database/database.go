package database

import (
	"gorm.io/gorm"
)

type Database struct {
	profileRepo *ProfileRepo
	blogRepo    *BlogRepo
	projectRepo *ProjectRepo
	messageRepo *MessageRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		profileRepo: NewProfileRepo(db),
		blogRepo:    NewBlogRepo(db),
		projectRepo: NewProjectRepo(db),
		messageRepo: NewMessageRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) ProfileRepo() *ProfileRepo {
	return d.profileRepo
}

func (d Database) BlogRepo() *BlogRepo {
	return d.blogRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) MessageRepo() *MessageRepo {
	return d.messageRepo
}
