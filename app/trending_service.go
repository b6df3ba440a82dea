package app

import (
	"context"
	"fmt"
	"time"

	"poemnames/internal"
	"poemnames/models"
	"poemnames/ports"
)

const (
	defaultTrendingWindow = 30 * 24 * time.Hour
	defaultTrendingLimit  = 20
)

// TrendingService surfaces the most-favorited names over a recent window.
type TrendingService struct {
	history ports.HistoryRepository
	cache   ports.CachePort
	log     *internal.Logger
	now     func() time.Time
}

func NewTrendingService(history ports.HistoryRepository, cache ports.CachePort, log *internal.Logger) *TrendingService {
	return &TrendingService{history: history, cache: cache, log: log, now: time.Now}
}

// Trending returns the top names favorited within the window. Results come
// from the popular_names cache when fresh.
func (s *TrendingService) Trending(ctx context.Context, window time.Duration, limit int) ([]models.PopularName, error) {
	if window <= 0 {
		window = defaultTrendingWindow
	}
	if limit <= 0 {
		limit = defaultTrendingLimit
	}

	key := fmt.Sprintf("%s:%d", window, limit)
	if cached, ok := s.cache.Get("popular_names", key); ok {
		if rows, ok := cached.([]models.PopularName); ok {
			return rows, nil
		}
	}

	rows, err := s.history.PopularNames(ctx, s.now().Add(-window), limit)
	if err != nil {
		return nil, fmt.Errorf("load popular names: %w", err)
	}
	s.cache.Set("popular_names", key, rows)
	return rows, nil
}
