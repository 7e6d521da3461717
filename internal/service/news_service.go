package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "newsroom/internal/errors"
	"newsroom/internal/model"
	"newsroom/internal/repository"
)

// TrendingLimit caps how many of the newest items form the trending set.
const TrendingLimit = 5

// NewsService handles content queries and admin publishing.
type NewsService interface {
	// Home returns the trending set and the remaining main feed.
	// The two never overlap and together cover every news item.
	Home(ctx context.Context) (trending, feed []model.News, err error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	// CategoryDetail returns the category, its news (an empty list is
	// valid) and the global trending set for the sidebar.
	CategoryDetail(ctx context.Context, name string) (*model.Category, []model.News, []model.News, error)
	AddNews(ctx context.Context, title, categoryName, content string) (*model.News, error)
}

type newsService struct {
	categoryRepo repository.CategoryRepository
	newsRepo     repository.NewsRepository
}

// NewNewsService creates a new content service.
func NewNewsService(categoryRepo repository.CategoryRepository, newsRepo repository.NewsRepository) NewsService {
	return &newsService{
		categoryRepo: categoryRepo,
		newsRepo:     newsRepo,
	}
}

func (s *newsService) Home(ctx context.Context) ([]model.News, []model.News, error) {
	trending, err := s.newsRepo.ListRecent(ctx, TrendingLimit)
	if err != nil {
		return nil, nil, fmt.Errorf("list trending: %w", err)
	}

	ids := make([]uint, 0, len(trending))
	for _, n := range trending {
		ids = append(ids, n.ID)
	}

	feed, err := s.newsRepo.ListExcluding(ctx, ids)
	if err != nil {
		return nil, nil, fmt.Errorf("list feed: %w", err)
	}

	return trending, feed, nil
}

func (s *newsService) ListCategories(ctx context.Context) ([]model.Category, error) {
	return s.categoryRepo.List(ctx)
}

func (s *newsService) CategoryDetail(ctx context.Context, name string) (*model.Category, []model.News, []model.News, error) {
	category, err := s.categoryRepo.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil, apperrors.ErrCategoryNotFound
		}
		return nil, nil, nil, fmt.Errorf("find category: %w", err)
	}

	news, err := s.newsRepo.ListByCategory(ctx, category.Name)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("list category news: %w", err)
	}

	trending, err := s.newsRepo.ListRecent(ctx, TrendingLimit)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("list trending: %w", err)
	}

	return category, news, trending, nil
}

// AddNews publishes a news item, creating its category on first use. The
// stored item always carries the category's canonical casing, not the raw
// submission.
func (s *newsService) AddNews(ctx context.Context, title, categoryName, content string) (*model.News, error) {
	if title == "" || categoryName == "" || content == "" {
		return nil, apperrors.ErrMissingFields
	}

	category, err := s.categoryRepo.FindByName(ctx, categoryName)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("find category: %w", err)
		}
		category = &model.Category{Name: categoryName}
		if err := s.categoryRepo.Create(ctx, category); err != nil {
			return nil, fmt.Errorf("create category: %w", err)
		}
	}

	news := &model.News{
		Title:    title,
		Content:  content,
		Category: category.Name,
	}
	if err := s.newsRepo.Create(ctx, news); err != nil {
		return nil, fmt.Errorf("create news: %w", err)
	}

	return news, nil
}
