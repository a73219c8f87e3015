package database

import (
	"context"

	"github.com/jahua/prism-portfolio/models"
	"gorm.io/gorm"
)

type MessageRepo struct {
	db *gorm.DB
}

func NewMessageRepo(db *gorm.DB) *MessageRepo {
	return &MessageRepo{db}
}

func (r *MessageRepo) Add(ctx context.Context, message *models.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

// ListAll returns the inbox, newest first.
func (r *MessageRepo) ListAll(ctx context.Context) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.WithContext(ctx).Order(newestFirst).Find(&messages).Error
	return messages, err
}
