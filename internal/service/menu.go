package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/masspath/masspath/backend/internal/logger"
	"github.com/masspath/masspath/backend/internal/menu"
)

// MenuQuery narrows a hall menu. Zero fields match everything.
type MenuQuery struct {
	Period   menu.MealPeriod
	Category string
	Term     string
}

// MenuService fetches, normalizes and caches dining hall menus
type MenuService struct {
	source   MenuSource
	cache    MenuCache
	guard    *menu.SequenceGuard
	flights  singleflight.Group
	halls    []string
	cacheTTL time.Duration
	now      func() time.Time
}

var _ IMenuService = (*MenuService)(nil)

// NewMenuService creates a MenuService. cache may be nil.
func NewMenuService(source MenuSource, cache MenuCache, halls []string, cacheTTL time.Duration) *MenuService {
	return &MenuService{
		source:   source,
		cache:    cache,
		guard:    menu.NewSequenceGuard(),
		halls:    append([]string(nil), halls...),
		cacheTTL: cacheTTL,
		now:      time.Now,
	}
}

// Halls returns the configured dining halls in display order
func (s *MenuService) Halls() []string {
	return append([]string(nil), s.halls...)
}

// ResolveHall maps a case-insensitive hall name onto its configured spelling
func (s *MenuService) ResolveHall(name string) (string, error) {
	for _, h := range s.halls {
		if strings.EqualFold(h, strings.TrimSpace(name)) {
			return h, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownHall, name)
}

// GetMenu returns the normalized menu of hall for today. A failed upstream
// fetch is logged and yields an empty menu. Concurrent misses for the same
// hall and date share one upstream fetch.
func (s *MenuService) GetMenu(ctx context.Context, hall string) ([]menu.FoodRecord, error) {
	canonical, err := s.ResolveHall(hall)
	if err != nil {
		return nil, err
	}
	now := s.now()
	date := now.Format("2006-01-02")

	v, _, _ := s.flights.Do(canonical+"|"+date, func() (any, error) {
		return s.load(ctx, canonical, date, now), nil
	})
	return slices.Clone(v.([]menu.FoodRecord)), nil
}

func (s *MenuService) load(ctx context.Context, hall, date string, now time.Time) []menu.FoodRecord {
	if s.cache != nil {
		records, ok, err := s.cache.GetMenu(ctx, hall, date)
		if err != nil {
			logger.Warn("menu cache read failed", "hall", hall, "error", err)
		} else if ok {
			return records
		}
	}

	seq := s.guard.Begin(hall)
	envelope, err := s.source.FetchHall(ctx, hall, now)
	if err != nil {
		logger.Warn("menu fetch failed", "hall", hall, "error", err)
		return []menu.FoodRecord{}
	}
	records := menu.NormalizeResponse(envelope, hall)

	if !s.guard.Commit(hall, seq) {
		logger.Debug("discarding stale menu response", "hall", hall, "seq", seq, "latest", s.guard.Latest(hall))
		return records
	}
	if s.cache != nil {
		if err := s.cache.SetMenu(ctx, hall, date, records, s.cacheTTL); err != nil {
			logger.Warn("menu cache write failed", "hall", hall, "error", err)
		}
	}
	return records
}

// GetAllMenus fetches every hall concurrently. Records are grouped by hall in
// configured order; halls that fail contribute nothing.
func (s *MenuService) GetAllMenus(ctx context.Context) ([]menu.FoodRecord, error) {
	results := make([][]menu.FoodRecord, len(s.halls))

	g, gctx := errgroup.WithContext(ctx)
	for i, hall := range s.halls {
		i, hall := i, hall
		g.Go(func() error {
			records, err := s.GetMenu(gctx, hall)
			if err != nil {
				logger.Warn("skipping hall", "hall", hall, "error", err)
				return nil
			}
			results[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	all := []menu.FoodRecord{}
	for _, r := range results {
		all = append(all, r...)
	}
	return all, nil
}

// Query returns the menu of hall narrowed by q
func (s *MenuService) Query(ctx context.Context, hall string, q MenuQuery) ([]menu.FoodRecord, error) {
	records, err := s.GetMenu(ctx, hall)
	if err != nil {
		return nil, err
	}
	if q.Period != "" {
		records = menu.ByMealPeriod(records, q.Period)
	}
	if q.Category != "" {
		records = menu.ByCategory(records, q.Category)
	}
	if q.Term != "" {
		records = menu.Search(records, q.Term)
	}
	return records, nil
}
