package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Blog is a post. Only published posts are visible on the public endpoints.
type Blog struct {
	ID         uuid.UUID      `json:"id" yaml:"-" gorm:"type:uuid;primaryKey"`
	Title      string         `json:"title" yaml:"title" gorm:"type:text;not null"`
	Slug       string         `json:"slug" yaml:"slug" gorm:"type:text;not null;uniqueIndex:idx_blogs_slug"`
	Summary    string         `json:"summary" yaml:"summary" gorm:"type:text;not null"`
	Content    string         `json:"content,omitempty" yaml:"content" gorm:"type:text;not null"`
	CoverImage string         `json:"coverImage" yaml:"coverImage" gorm:"type:text;not null;default:''"`
	Tags       pq.StringArray `json:"tags" yaml:"tags" gorm:"type:text[];not null;default:'{}'"`
	Published  bool           `json:"published" yaml:"published" gorm:"not null;default:false;index:idx_blogs_published_created,priority:1"`
	CreatedAt  time.Time      `json:"createdAt" yaml:"createdAt" gorm:"index:idx_blogs_published_created,priority:2,sort:desc"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

func (b *Blog) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

func (b *Blog) BeforeSave(tx *gorm.DB) error {
	b.Normalize()
	return nil
}

// Normalize replaces nil lists so they serialize as empty arrays.
func (b *Blog) Normalize() {
	if b.Tags == nil {
		b.Tags = pq.StringArray{}
	}
}

// HasTag reports whether tag is one of the post's tags.
func (b Blog) HasTag(tag string) bool {
	for _, t := range b.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
