package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masspath/masspath/backend/internal/types"
)

func newTestMealLog(t *testing.T, cache ProfileCache, profiles IProfileService) *MealLogService {
	t.Helper()
	svc := NewMealLogService(setupTestDB(t), cache, profiles)
	svc.now = fixedClock
	return svc
}

func TestParseDay(t *testing.T) {
	now := fixedClock()

	d, err := ParseDay("", now)
	require.NoError(t, err)
	assert.Equal(t, "2026-10-14", d.Format(dateLayout))
	assert.Zero(t, d.Hour())

	d, err = ParseDay("2026-01-02", now)
	require.NoError(t, err)
	assert.Equal(t, time.January, d.Month())

	_, err = ParseDay("01/02/2026", now)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestMealLogLogAndList(t *testing.T) {
	cache := newMemoryCache()
	svc := newTestMealLog(t, cache, nil)
	ctx := context.Background()

	first, err := svc.LogMeal(ctx, "user-1", &types.LogMealRequest{Name: " Oatmeal ", Calories: 300, Protein: 10, Carbs: 50, Fat: 5})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, first.ID)
	assert.Equal(t, "Oatmeal", first.Name)
	assert.Equal(t, "2026-10-14", first.MealDate)

	_, err = svc.LogMeal(ctx, "user-1", &types.LogMealRequest{Name: "Burrito", Calories: 700.5})
	require.NoError(t, err)
	_, err = svc.LogMeal(ctx, "user-2", &types.LogMealRequest{Name: "Pizza", Calories: 900})
	require.NoError(t, err)

	meals, err := svc.ListMeals(ctx, "user-1", fixedClock())
	require.NoError(t, err)
	require.Len(t, meals, 2)
	assert.Equal(t, "Oatmeal", meals[0].Name)
	assert.Equal(t, "Burrito", meals[1].Name)

	assert.Equal(t, 1000.5, cache.consumed[ConsumedCaloriesKey("user-1", "2026-10-14")])
	assert.Equal(t, 900.0, cache.consumed[ConsumedCaloriesKey("user-2", "2026-10-14")])
}

func TestMealLogStampsLoggingTime(t *testing.T) {
	svc := newTestMealLog(t, nil, nil)
	ctx := context.Background()

	clock := fixedClock()
	svc.now = func() time.Time { return clock }

	late, err := svc.LogMeal(ctx, "user-1", &types.LogMealRequest{Name: "Late Snack", Date: "2026-10-14"})
	require.NoError(t, err)
	assert.True(t, late.LoggedAt.Equal(clock))

	clock = clock.Add(time.Hour)
	_, err = svc.LogMeal(ctx, "user-1", &types.LogMealRequest{Name: "Dinner", Date: "2026-10-14"})
	require.NoError(t, err)

	meals, err := svc.ListMeals(ctx, "user-1", fixedClock())
	require.NoError(t, err)
	require.Len(t, meals, 2)
	assert.Equal(t, "Late Snack", meals[0].Name)
	assert.Equal(t, "Dinner", meals[1].Name)
	assert.True(t, meals[1].LoggedAt.Equal(clock))
}

func TestMealLogInvalid(t *testing.T) {
	svc := newTestMealLog(t, nil, nil)

	_, err := svc.LogMeal(context.Background(), "user-1", &types.LogMealRequest{Name: "  "})
	assert.ErrorIs(t, err, ErrInvalidMeal)

	_, err = svc.LogMeal(context.Background(), "user-1", &types.LogMealRequest{Name: "x", Date: "yesterday"})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestMealLogDeleteRestoresTotal(t *testing.T) {
	cache := newMemoryCache()
	svc := newTestMealLog(t, cache, nil)
	ctx := context.Background()
	key := ConsumedCaloriesKey("user-1", "2026-10-14")

	_, err := svc.LogMeal(ctx, "user-1", &types.LogMealRequest{Name: "Oatmeal", Calories: 300})
	require.NoError(t, err)
	before := cache.consumed[key]

	meal, err := svc.LogMeal(ctx, "user-1", &types.LogMealRequest{Name: "Cookie", Calories: 210.3})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteMeal(ctx, "user-1", meal.ID))

	assert.Equal(t, before, cache.consumed[key])

	_, err = svc.GetMeal(ctx, "user-1", meal.ID)
	assert.ErrorIs(t, err, ErrMealNotFound)
}

func TestMealLogScopedToUser(t *testing.T) {
	svc := newTestMealLog(t, nil, nil)
	ctx := context.Background()

	meal, err := svc.LogMeal(ctx, "user-1", &types.LogMealRequest{Name: "Oatmeal", Calories: 300})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteMeal(ctx, "user-2", meal.ID), ErrMealNotFound)
	assert.ErrorIs(t, svc.AttachPhoto(ctx, "user-2", meal.ID, "k"), ErrMealNotFound)

	require.NoError(t, svc.AttachPhoto(ctx, "user-1", meal.ID, "meals/user-1/x.jpg"))
	got, err := svc.GetMeal(ctx, "user-1", meal.ID)
	require.NoError(t, err)
	assert.Equal(t, "meals/user-1/x.jpg", got.PhotoKey)
}

func TestMealLogRecommendation(t *testing.T) {
	svc := newTestMealLog(t, nil, nil)

	meal, err := svc.LogRecommendation(context.Background(), "user-1", &types.SelectRecommendationRequest{
		Name: "Grilled Chicken", Location: "Worcester", Calories: 520, Protein: 35, MatchScore: 99,
	})
	require.NoError(t, err)
	assert.Equal(t, "Grilled Chicken", meal.SourceName)
	require.NotNil(t, meal.SourceScore)
	assert.Equal(t, 99, *meal.SourceScore)
	assert.Equal(t, 520.0, meal.Calories)
}

func TestMealLogDailySummary(t *testing.T) {
	db := setupTestDB(t)
	profiles := NewProfileService(db, nil)
	svc := NewMealLogService(db, nil, profiles)
	svc.now = fixedClock
	ctx := context.Background()

	summary, err := svc.DailySummary(ctx, "user-1", fixedClock())
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Meals)
	assert.Equal(t, float64(DefaultDailyCalories), summary.Target)
	assert.Equal(t, float64(DefaultDailyCalories), summary.Remaining)

	_, err = svc.LogMeal(ctx, "user-1", &types.LogMealRequest{Name: "Burrito", Calories: 1100, Protein: 40, Carbs: 120, Fat: 35})
	require.NoError(t, err)

	summary, err = svc.DailySummary(ctx, "user-1", fixedClock())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Meals)
	assert.Equal(t, 1100.0, summary.Total)
	assert.Equal(t, 1100.0, summary.Remaining)
	assert.Equal(t, 50.0, summary.Percent)
	assert.Equal(t, 40.0, summary.Protein)
	assert.Equal(t, "2026-10-14", summary.Date)
}

func TestMealLogDailySummaryUsesProfileTarget(t *testing.T) {
	db := setupTestDB(t)
	profiles := NewProfileService(db, nil)
	_, err := profiles.CalculateCalories(context.Background(), "user-1", profileRequest())
	require.NoError(t, err)

	svc := NewMealLogService(db, nil, profiles)
	svc.now = fixedClock

	summary, err := svc.DailySummary(context.Background(), "user-1", fixedClock())
	require.NoError(t, err)
	assert.Equal(t, 2630.0, summary.Target)
}
