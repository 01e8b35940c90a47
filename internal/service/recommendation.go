package service

import (
	"context"

	"github.com/masspath/masspath/backend/internal/menu"
	"github.com/masspath/masspath/backend/internal/recommend"
)

// Recommendations is the scored shortlist of one hall, or of every hall when
// Hall is empty.
type Recommendations struct {
	Hall    string            `json:"hall,omitempty"`
	Filter  recommend.Filter  `json:"filter"`
	Top     []recommend.Entry `json:"top"`
	Entries []recommend.Entry `json:"entries"`
}

// RecommendationService scores menus fetched through a MenuService
type RecommendationService struct {
	menus IMenuService
}

var _ IRecommendationService = (*RecommendationService)(nil)

// NewRecommendationService creates a RecommendationService
func NewRecommendationService(menus IMenuService) *RecommendationService {
	return &RecommendationService{menus: menus}
}

// Recommend scores the menu of hall (all halls when hall is empty) and
// returns the top entries plus the filter view of every scored entry.
func (s *RecommendationService) Recommend(ctx context.Context, hall string, filter recommend.Filter) (*Recommendations, error) {
	var (
		records []menu.FoodRecord
		err     error
	)
	if hall == "" {
		records, err = s.menus.GetAllMenus(ctx)
	} else {
		hall, err = s.menus.ResolveHall(hall)
		if err == nil {
			records, err = s.menus.GetMenu(ctx, hall)
		}
	}
	if err != nil {
		return nil, err
	}

	res := recommend.Score(records)
	return &Recommendations{
		Hall:    hall,
		Filter:  filter,
		Top:     res.Top,
		Entries: filter.Apply(res),
	}, nil
}
