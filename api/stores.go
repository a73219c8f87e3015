package api

import (
	"context"

	"github.com/google/uuid"
	"github.com/jahua/prism-portfolio/database"
	"github.com/jahua/prism-portfolio/models"
)

// Lookups return gorm.ErrRecordNotFound for missing rows; writes return gorm.ErrDuplicatedKey
// on a unique violation.

type ProfileStore interface {
	Get(ctx context.Context) (*models.Profile, error)
	Put(ctx context.Context, profile *models.Profile) error
}

type BlogStore interface {
	ListPublished(ctx context.Context, tag string, offset, limit int) ([]models.Blog, int64, error)
	ListAll(ctx context.Context) ([]models.Blog, error)
	FindPublishedBySlug(ctx context.Context, slug string) (*models.Blog, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Blog, error)
	Add(ctx context.Context, blog *models.Blog) error
	Update(ctx context.Context, blog *models.Blog) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ProjectStore interface {
	FindAll(ctx context.Context) ([]models.Project, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	Add(ctx context.Context, project *models.Project) error
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type MessageStore interface {
	Add(ctx context.Context, message *models.Message) error
	ListAll(ctx context.Context) ([]models.Message, error)
}

type Stores struct {
	Profiles ProfileStore
	Blogs    BlogStore
	Projects ProjectStore
	Messages MessageStore
}

// StoresFrom exposes the gorm repositories as the stores the handlers use.
func StoresFrom(db database.Database) Stores {
	return Stores{
		Profiles: db.ProfileRepo(),
		Blogs:    db.BlogRepo(),
		Projects: db.ProjectRepo(),
		Messages: db.MessageRepo(),
	}
}
