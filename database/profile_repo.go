package database

import (
	"context"

	"github.com/jahua/prism-portfolio/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileRepo reads and writes the single profile row.
type ProfileRepo struct {
	db *gorm.DB
}

func NewProfileRepo(db *gorm.DB) *ProfileRepo {
	return &ProfileRepo{db}
}

// Get returns gorm.ErrRecordNotFound until a profile has been written.
func (r *ProfileRepo) Get(ctx context.Context) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.WithContext(ctx).First(&profile, "id = ?", models.ProfileSlot).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Put upserts the profile into its slot in a single statement.
func (r *ProfileRepo) Put(ctx context.Context, profile *models.Profile) error {
	profile.ID = models.ProfileSlot
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(profile).Error
}

func (r *ProfileRepo) Delete(ctx context.Context) error {
	return r.db.WithContext(ctx).Delete(&models.Profile{}, "id = ?", models.ProfileSlot).Error
}
