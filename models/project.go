package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type LinkIcon string

const (
	LinkIconGitHub   LinkIcon = "github"
	LinkIconExternal LinkIcon = "external"
)

func (i LinkIcon) Valid() bool {
	return i == LinkIconGitHub || i == LinkIconExternal
}

type ProjectLink struct {
	Label string   `json:"label" yaml:"label"`
	URL   string   `json:"url" yaml:"url"`
	Icon  LinkIcon `json:"icon" yaml:"icon"`
}

// Canonical project sections. Section is open vocabulary; these get dedicated labels on the client.
const (
	SectionResearch     = "Research & Thesis"
	SectionProfessional = "Professional"
	SectionOpenSource   = "Open Source"
	SectionPersonal     = "Personal"
)

// Project is a portfolio entry. Projects have no draft state.
type Project struct {
	ID          uuid.UUID                        `json:"id" yaml:"-" gorm:"type:uuid;primaryKey"`
	Title       string                           `json:"title" yaml:"title" gorm:"type:text;not null"`
	Repo        string                           `json:"repo" yaml:"repo" gorm:"type:text;not null;default:''"`
	Period      string                           `json:"period" yaml:"period" gorm:"type:text;not null"`
	Category    string                           `json:"category" yaml:"category" gorm:"type:text;not null"`
	Section     string                           `json:"section" yaml:"section" gorm:"type:text;not null;index:idx_projects_section_order,priority:1"`
	Description string                           `json:"description" yaml:"description" gorm:"type:text;not null"`
	Highlights  pq.StringArray                   `json:"highlights" yaml:"highlights" gorm:"type:text[];not null;default:'{}'"`
	Stack       pq.StringArray                   `json:"stack" yaml:"stack" gorm:"type:text[];not null;default:'{}'"`
	Stars       *int                             `json:"stars,omitempty" yaml:"stars" gorm:"type:integer"`
	License     *string                          `json:"license,omitempty" yaml:"license" gorm:"type:text"`
	Language    *string                          `json:"language,omitempty" yaml:"language" gorm:"type:text"`
	Links       datatypes.JSONSlice[ProjectLink] `json:"links" yaml:"links" gorm:"type:jsonb;not null"`
	Order       int                              `json:"order" yaml:"order" gorm:"column:sort_order;not null;default:0;index:idx_projects_section_order,priority:2"`
	CreatedAt   time.Time                        `json:"createdAt"`
	UpdatedAt   time.Time                        `json:"updatedAt"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (p *Project) BeforeSave(tx *gorm.DB) error {
	p.Normalize()
	return nil
}

// Normalize replaces nil lists and fills the default link icon.
func (p *Project) Normalize() {
	if p.Highlights == nil {
		p.Highlights = pq.StringArray{}
	}
	if p.Stack == nil {
		p.Stack = pq.StringArray{}
	}
	if p.Links == nil {
		p.Links = datatypes.JSONSlice[ProjectLink]{}
	}
	for i := range p.Links {
		if p.Links[i].Icon == "" {
			p.Links[i].Icon = LinkIconGitHub
		}
	}
}
