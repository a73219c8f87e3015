// Package seed loads initial site content from a YAML file and a directory of Markdown posts.
package seed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/jahua/prism-portfolio/models"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// Document is the layout of a seed file.
type Document struct {
	Profile  *models.Profile  `yaml:"profile"`
	Blogs    []models.Blog    `yaml:"blogs"`
	Projects []models.Project `yaml:"projects"`
}

// LoadFile decodes a seed file. Unknown keys are an error.
func LoadFile(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing seed file %s: %w", path, err)
	}
	for i := range doc.Blogs {
		if err := fillSlug(&doc.Blogs[i]); err != nil {
			return nil, fmt.Errorf("%s: blog %d: %w", path, i, err)
		}
	}
	return &doc, nil
}

type postMatter struct {
	Title      string    `yaml:"title"`
	Slug       string    `yaml:"slug"`
	Summary    string    `yaml:"summary"`
	CoverImage string    `yaml:"coverImage"`
	Tags       []string  `yaml:"tags"`
	Published  bool      `yaml:"published"`
	Date       time.Time `yaml:"date"`
}

// LoadPosts reads every *.md file in dir in name order. Front matter supplies the metadata and
// the remaining body becomes the post content.
func LoadPosts(dir string) ([]models.Blog, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.md"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	blogs := make([]models.Blog, 0, len(paths))
	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}

		var matter postMatter
		body, err := frontmatter.Parse(bytes.NewReader(raw), &matter)
		if err != nil {
			return nil, fmt.Errorf("parsing front matter of %s: %w", path, err)
		}

		blog := models.Blog{
			Title:      matter.Title,
			Slug:       matter.Slug,
			Summary:    matter.Summary,
			Content:    strings.TrimSpace(string(body)),
			CoverImage: matter.CoverImage,
			Tags:       matter.Tags,
			Published:  matter.Published,
			CreatedAt:  matter.Date,
		}
		if blog.Slug == "" && blog.Title == "" {
			blog.Slug = models.Slugify(strings.TrimSuffix(filepath.Base(path), ".md"))
		}
		if err := fillSlug(&blog); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		blog.Normalize()
		blogs = append(blogs, blog)
	}
	return blogs, nil
}

func fillSlug(b *models.Blog) error {
	if b.Slug == "" {
		b.Slug = models.Slugify(b.Title)
	}
	if !models.IsURLSafeSlug(b.Slug) {
		return fmt.Errorf("cannot derive a slug from title %q", b.Title)
	}
	return nil
}

type ProfileWriter interface {
	Put(ctx context.Context, profile *models.Profile) error
	Delete(ctx context.Context) error
}

type BlogWriter interface {
	FindBySlug(ctx context.Context, slug string) (*models.Blog, error)
	Add(ctx context.Context, blog *models.Blog) error
	DeleteAll(ctx context.Context) error
}

type ProjectWriter interface {
	FindAll(ctx context.Context) ([]models.Project, error)
	Add(ctx context.Context, project *models.Project) error
	DeleteAll(ctx context.Context) error
}

type Target struct {
	Profiles ProfileWriter
	Blogs    BlogWriter
	Projects ProjectWriter
}

type Options struct {
	// Reset removes the existing profile, blogs and projects first.
	Reset bool
}

type Result struct {
	Profile         bool
	BlogsCreated    int
	BlogsSkipped    int
	ProjectsCreated int
	ProjectsSkipped int
}

// Run writes doc into the target. Without Reset, blogs whose slug exists and projects with an
// existing section and title are left alone.
func Run(ctx context.Context, target Target, doc *Document, opts Options) (Result, error) {
	var result Result

	if opts.Reset {
		if err := errors.Join(
			target.Profiles.Delete(ctx),
			target.Blogs.DeleteAll(ctx),
			target.Projects.DeleteAll(ctx),
		); err != nil {
			return result, fmt.Errorf("resetting content: %w", err)
		}
		log.Info().Msg("Existing profile, blogs and projects deleted")
	}

	if doc.Profile != nil {
		if err := target.Profiles.Put(ctx, doc.Profile); err != nil {
			return result, fmt.Errorf("writing profile: %w", err)
		}
		result.Profile = true
	}

	for i := range doc.Blogs {
		blog := doc.Blogs[i]
		_, err := target.Blogs.FindBySlug(ctx, blog.Slug)
		switch {
		case err == nil:
			log.Debug().Str("slug", blog.Slug).Msg("Blog exists, skipping")
			result.BlogsSkipped++
			continue
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return result, fmt.Errorf("looking up blog %s: %w", blog.Slug, err)
		}
		if err := target.Blogs.Add(ctx, &blog); err != nil {
			return result, fmt.Errorf("creating blog %s: %w", blog.Slug, err)
		}
		result.BlogsCreated++
	}

	existing := map[string]bool{}
	if !opts.Reset && len(doc.Projects) > 0 {
		projects, err := target.Projects.FindAll(ctx)
		if err != nil {
			return result, fmt.Errorf("listing projects: %w", err)
		}
		for _, p := range projects {
			existing[projectKey(p)] = true
		}
	}
	for i := range doc.Projects {
		project := doc.Projects[i]
		if existing[projectKey(project)] {
			result.ProjectsSkipped++
			continue
		}
		if err := target.Projects.Add(ctx, &project); err != nil {
			return result, fmt.Errorf("creating project %s: %w", project.Title, err)
		}
		existing[projectKey(project)] = true
		result.ProjectsCreated++
	}

	return result, nil
}

func projectKey(p models.Project) string {
	return p.Section + "\x00" + p.Title
}
