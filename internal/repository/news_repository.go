package repository

import (
	"context"

	"gorm.io/gorm"

	"newsroom/internal/model"
)

// newsOrder sorts newest first; the id tie-break keeps equal timestamps in
// insertion order so repeated queries split the feed identically.
const newsOrder = "created_at DESC, id ASC"

// NewsRepository defines persistence operations for news items.
type NewsRepository interface {
	Create(ctx context.Context, news *model.News) error
	ListRecent(ctx context.Context, limit int) ([]model.News, error)
	ListExcluding(ctx context.Context, ids []uint) ([]model.News, error)
	ListByCategory(ctx context.Context, name string) ([]model.News, error)
}

type newsRepository struct {
	db *gorm.DB
}

// NewNewsRepository builds a GORM-backed repository.
func NewNewsRepository(db *gorm.DB) NewsRepository {
	return &newsRepository{db: db}
}

func (r *newsRepository) Create(ctx context.Context, news *model.News) error {
	return r.db.WithContext(ctx).Create(news).Error
}

func (r *newsRepository) ListRecent(ctx context.Context, limit int) ([]model.News, error) {
	var news []model.News
	if err := r.db.WithContext(ctx).Order(newsOrder).Limit(limit).Find(&news).Error; err != nil {
		return nil, err
	}
	return news, nil
}

func (r *newsRepository) ListExcluding(ctx context.Context, ids []uint) ([]model.News, error) {
	var news []model.News
	q := r.db.WithContext(ctx).Order(newsOrder)
	if len(ids) > 0 {
		q = q.Where("id NOT IN ?", ids)
	}
	if err := q.Find(&news).Error; err != nil {
		return nil, err
	}
	return news, nil
}

func (r *newsRepository) ListByCategory(ctx context.Context, name string) ([]model.News, error) {
	var news []model.News
	err := r.db.WithContext(ctx).
		Where("LOWER(category) = LOWER(?)", name).
		Order(newsOrder).
		Find(&news).Error
	if err != nil {
		return nil, err
	}
	return news, nil
}
