package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProfileSlot is the primary key of the only profile row.
const ProfileSlot = 1

type SocialLinks struct {
	GitHub    string `json:"github,omitempty" yaml:"github" gorm:"column:github;type:text"`
	LinkedIn  string `json:"linkedin,omitempty" yaml:"linkedin" gorm:"column:linkedin;type:text"`
	Twitter   string `json:"twitter,omitempty" yaml:"twitter" gorm:"column:twitter;type:text"`
	Email     string `json:"email,omitempty" yaml:"email" gorm:"column:email;type:text"`
	Instagram string `json:"instagram,omitempty" yaml:"instagram" gorm:"column:instagram;type:text"`
}

type AcademicProfiles struct {
	GoogleScholar string `json:"googleScholar,omitempty" yaml:"googleScholar" gorm:"column:google_scholar;type:text"`
	ResearchGate  string `json:"researchGate,omitempty" yaml:"researchGate" gorm:"column:research_gate;type:text"`
	DBLP          string `json:"dblp,omitempty" yaml:"dblp" gorm:"column:dblp;type:text"`
	ORCID         string `json:"orcid,omitempty" yaml:"orcid" gorm:"column:orcid;type:text"`
}

type Education struct {
	Degree     string `json:"degree" yaml:"degree"`
	Meta       string `json:"meta" yaml:"meta"`
	Thesis     string `json:"thesis,omitempty" yaml:"thesis"`
	Supervisor string `json:"supervisor,omitempty" yaml:"supervisor"`
}

type Publication struct {
	Badge string `json:"badge" yaml:"badge"`
	Title string `json:"title" yaml:"title"`
	Meta  string `json:"meta" yaml:"meta"`
}

type Experience struct {
	Role             string   `json:"role" yaml:"role"`
	Meta             string   `json:"meta" yaml:"meta"`
	Responsibilities []string `json:"responsibilities" yaml:"responsibilities"`
}

type SkillGroup struct {
	Category string   `json:"category" yaml:"category"`
	Items    []string `json:"items" yaml:"items"`
}

type Certification struct {
	Title string `json:"title" yaml:"title"`
	Meta  string `json:"meta" yaml:"meta"`
}

type Language struct {
	Name        string `json:"name" yaml:"name"`
	Proficiency string `json:"proficiency" yaml:"proficiency"`
}

// Profile is the site owner's singleton profile and CV.
type Profile struct {
	ID                int                                `json:"-" yaml:"-" gorm:"primaryKey;autoIncrement:false;check:chk_profiles_singleton,id = 1"`
	Name              string                             `json:"name" yaml:"name" gorm:"type:text;not null"`
	Title             string                             `json:"title" yaml:"title" gorm:"type:text;not null"`
	Bio               string                             `json:"bio" yaml:"bio" gorm:"type:text;not null"`
	Avatar            string                             `json:"avatar" yaml:"avatar" gorm:"type:text;not null;default:''"`
	Motto             string                             `json:"motto" yaml:"motto" gorm:"type:text;not null;default:''"`
	CVURL             string                             `json:"cvUrl,omitempty" yaml:"cvUrl" gorm:"column:cv_url;type:text"`
	SocialLinks       SocialLinks                        `json:"socialLinks" yaml:"socialLinks" gorm:"embedded;embeddedPrefix:social_"`
	AcademicProfiles  AcademicProfiles                   `json:"academicProfiles" yaml:"academicProfiles" gorm:"embedded;embeddedPrefix:academic_"`
	ResearchProfile   string                             `json:"researchProfile,omitempty" yaml:"researchProfile" gorm:"type:text"`
	ResearchInterests pq.StringArray                     `json:"researchInterests" yaml:"researchInterests" gorm:"type:text[];not null"`
	Education         datatypes.JSONSlice[Education]     `json:"education" yaml:"education" gorm:"type:jsonb;not null"`
	Publications      datatypes.JSONSlice[Publication]   `json:"publications" yaml:"publications" gorm:"type:jsonb;not null"`
	Experience        datatypes.JSONSlice[Experience]    `json:"experience" yaml:"experience" gorm:"type:jsonb;not null"`
	Skills            datatypes.JSONSlice[SkillGroup]    `json:"skills" yaml:"skills" gorm:"type:jsonb;not null"`
	Certifications    datatypes.JSONSlice[Certification] `json:"certifications" yaml:"certifications" gorm:"type:jsonb;not null"`
	Languages         datatypes.JSONSlice[Language]      `json:"languages" yaml:"languages" gorm:"type:jsonb;not null"`
	CreatedAt         time.Time                          `json:"createdAt" yaml:"-"`
	UpdatedAt         time.Time                          `json:"updatedAt" yaml:"-"`
}

func (p *Profile) BeforeSave(tx *gorm.DB) error {
	p.ID = ProfileSlot
	p.Normalize()
	return nil
}

// Normalize replaces nil CV lists so they serialize as empty arrays.
func (p *Profile) Normalize() {
	if p.ResearchInterests == nil {
		p.ResearchInterests = pq.StringArray{}
	}
	if p.Education == nil {
		p.Education = datatypes.JSONSlice[Education]{}
	}
	if p.Publications == nil {
		p.Publications = datatypes.JSONSlice[Publication]{}
	}
	if p.Experience == nil {
		p.Experience = datatypes.JSONSlice[Experience]{}
	}
	if p.Skills == nil {
		p.Skills = datatypes.JSONSlice[SkillGroup]{}
	}
	if p.Certifications == nil {
		p.Certifications = datatypes.JSONSlice[Certification]{}
	}
	if p.Languages == nil {
		p.Languages = datatypes.JSONSlice[Language]{}
	}
}
