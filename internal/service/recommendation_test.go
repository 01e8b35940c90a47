package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masspath/masspath/backend/internal/recommend"
)

func recommendationMenu() map[string]any {
	return map[string]any{"lunch": map[string]any{"Grill": []any{
		map[string]any{"name": "Grilled Chicken", "calories": 520.0, "protein": 35.0, "clean_diet": "Antibiotic Free"},
		map[string]any{"name": "Veggie Burger", "calories": 450.0, "protein": 22.0, "clean_diet": "Vegetarian"},
		map[string]any{"name": "Side Salad", "calories": 120.0, "protein": 3.0},
		map[string]any{"name": "Steak Tips", "calories": 700.0, "protein": 45.0},
	}}}
}

func TestRecommendationServiceHall(t *testing.T) {
	source := newStubSource()
	source.menus["Worcester"] = recommendationMenu()
	svc := NewRecommendationService(newTestMenuService(source, nil))

	recs, err := svc.Recommend(context.Background(), "worcester", recommend.FilterAll)
	require.NoError(t, err)
	assert.Equal(t, "Worcester", recs.Hall)
	require.Len(t, recs.Top, 3)
	assert.Equal(t, "Grilled Chicken", recs.Top[0].Name)
	assert.Equal(t, 99, recs.Top[0].MatchScore)
	// Side Salad is outside the admission band
	assert.Len(t, recs.Entries, 3)
}

func TestRecommendationServiceFilter(t *testing.T) {
	source := newStubSource()
	source.menus["Worcester"] = recommendationMenu()
	svc := NewRecommendationService(newTestMenuService(source, nil))

	recs, err := svc.Recommend(context.Background(), "Worcester", recommend.FilterVegetarian)
	require.NoError(t, err)
	require.Len(t, recs.Entries, 1)
	assert.Equal(t, "Veggie Burger", recs.Entries[0].Name)
}

func TestRecommendationServiceAllHalls(t *testing.T) {
	source := newStubSource()
	source.menus["Franklin"] = recommendationMenu()
	source.menus["Worcester"] = recommendationMenu()
	svc := NewRecommendationService(newTestMenuService(source, nil))

	recs, err := svc.Recommend(context.Background(), "", recommend.FilterAll)
	require.NoError(t, err)
	assert.Empty(t, recs.Hall)
	assert.Len(t, recs.Entries, 6)
	assert.Len(t, recs.Top, 3)
}

func TestRecommendationServiceUnknownHall(t *testing.T) {
	svc := NewRecommendationService(newTestMenuService(newStubSource(), nil))
	_, err := svc.Recommend(context.Background(), "Hogwarts", recommend.FilterAll)
	assert.ErrorIs(t, err, ErrUnknownHall)
}
