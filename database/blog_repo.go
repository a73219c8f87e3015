package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/jahua/prism-portfolio/models"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const newestFirst = "created_at DESC"

type BlogRepo struct {
	db *gorm.DB
}

func NewBlogRepo(db *gorm.DB) *BlogRepo {
	return &BlogRepo{db}
}

// ListPublished returns one page of published posts without their content, newest first,
// together with the total number of matching posts. An empty tag matches every post.
func (r *BlogRepo) ListPublished(ctx context.Context, tag string, offset, limit int) ([]models.Blog, int64, error) {
	scope := func(tx *gorm.DB) *gorm.DB {
		tx = tx.Model(&models.Blog{}).Where("published = ?", true)
		if tag != "" {
			tx = tx.Where("? = ANY(tags)", tag)
		}
		return tx
	}

	var (
		blogs []models.Blog
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.db.WithContext(gctx).Scopes(scope).Count(&total).Error
	})
	g.Go(func() error {
		return r.db.WithContext(gctx).Scopes(scope).
			Omit("content").
			Order(newestFirst).
			Offset(offset).
			Limit(limit).
			Find(&blogs).Error
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return blogs, total, nil
}

// ListAll returns every post, drafts included, without content.
func (r *BlogRepo) ListAll(ctx context.Context) ([]models.Blog, error) {
	var blogs []models.Blog
	err := r.db.WithContext(ctx).Omit("content").Order(newestFirst).Find(&blogs).Error
	return blogs, err
}

// FindPublishedBySlug returns gorm.ErrRecordNotFound for drafts.
func (r *BlogRepo) FindPublishedBySlug(ctx context.Context, slug string) (*models.Blog, error) {
	var blog models.Blog
	err := r.db.WithContext(ctx).Where("slug = ? AND published = ?", slug, true).First(&blog).Error
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

func (r *BlogRepo) FindBySlug(ctx context.Context, slug string) (*models.Blog, error) {
	var blog models.Blog
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&blog).Error
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

func (r *BlogRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Blog, error) {
	var blog models.Blog
	err := r.db.WithContext(ctx).First(&blog, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

func (r *BlogRepo) Add(ctx context.Context, blog *models.Blog) error {
	return r.db.WithContext(ctx).Create(blog).Error
}

// Update overwrites every column of an existing row. It returns gorm.ErrRecordNotFound when the
// row is gone, so a concurrent delete is never undone.
func (r *BlogRepo) Update(ctx context.Context, blog *models.Blog) error {
	result := r.db.WithContext(ctx).Model(blog).Select("*").Updates(blog)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete returns gorm.ErrRecordNotFound when no row matched.
func (r *BlogRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Blog{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteAll removes every post. Used by the seed command.
func (r *BlogRepo) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Blog{}).Error
}
