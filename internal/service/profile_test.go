package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masspath/masspath/backend/internal/models"
	"github.com/masspath/masspath/backend/internal/types"
)

func TestCalculateCalorieIntake(t *testing.T) {
	tests := []struct {
		name     string
		height   float64
		weight   float64
		gender   string
		age      int
		activity string
		want     int
	}{
		// 10*68.0388 + 6.25*177.8 - 100 + 5 = 1696.638; * 1.55
		{"male moderately active", 70, 150, "male", 20, "moderately active", 2630},
		// 10*56.699 + 6.25*162.56 - 125 - 161 = 1296.99; * 1.2
		{"female sedentary", 64, 125, "female", 25, "sedentary", 1556},
		{"case and underscores", 64, 125, "Female", 25, "Sedentary", 1556},
		{"snake case activity", 70, 150, "male", 20, "moderately_active", 2630},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculateCalorieIntake(tt.height, tt.weight, tt.gender, tt.age, tt.activity)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCalculateCalorieIntakeInvalid(t *testing.T) {
	_, err := CalculateCalorieIntake(70, 150, "other", 20, "active")
	assert.ErrorIs(t, err, ErrInvalidProfile)

	_, err = CalculateCalorieIntake(70, 150, "male", 20, "couch")
	assert.ErrorIs(t, err, ErrInvalidProfile)

	_, err = CalculateCalorieIntake(0, 150, "male", 20, "active")
	assert.ErrorIs(t, err, ErrInvalidProfile)
}

func TestActivityMultiplierOrdering(t *testing.T) {
	levels := []string{"sedentary", "lightly active", "moderately active", "active", "very active"}
	prev := 0
	for _, l := range levels {
		got, err := CalculateCalorieIntake(70, 170, "male", 30, l)
		require.NoError(t, err)
		assert.Greater(t, got, prev, l)
		prev = got
	}
}

func TestMacroTargets(t *testing.T) {
	p, c, f := MacroTargets(2000)
	assert.Equal(t, 150, p)
	assert.Equal(t, 200, c)
	assert.Equal(t, 67, f)
}

func profileRequest() *types.CalculateCaloriesRequest {
	return &types.CalculateCaloriesRequest{
		HeightIn:            70,
		WeightLb:            150,
		Gender:              "male",
		Age:                 20,
		ActivityLevel:       "moderately active",
		DietaryRestrictions: []string{"vegetarian"},
		Allergens:           []string{"peanuts"},
	}
}

func TestProfileServiceCalculateCaloriesSaves(t *testing.T) {
	db := setupTestDB(t)
	cache := newMemoryCache()
	svc := NewProfileService(db, cache)
	ctx := context.Background()

	resp, err := svc.CalculateCalories(ctx, "user-1", profileRequest())
	require.NoError(t, err)
	assert.Equal(t, 2630, resp.DailyCalories)

	assert.Equal(t, 2630, cache.targets["user-1"])
	require.Contains(t, cache.profiles, "user-1")
	assert.Equal(t, []string{"peanuts"}, cache.profiles["user-1"].Allergens)

	// database path without the cache
	fromDB, err := NewProfileService(db, nil).GetProfile(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 2630, fromDB.DailyCalories)
	assert.Equal(t, []string{"vegetarian"}, fromDB.DietaryRestrictions)
}

func TestProfileServiceUpsert(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProfileService(db, nil)
	ctx := context.Background()

	_, err := svc.CalculateCalories(ctx, "user-1", profileRequest())
	require.NoError(t, err)

	req := profileRequest()
	req.WeightLb = 180
	resp, err := svc.CalculateCalories(ctx, "user-1", req)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Table("user_profiles").Where("user_id = ?", "user-1").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	target, err := svc.DailyCalories(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, resp.DailyCalories, target)
}

func TestProfileServiceUpsertKeepsStoredID(t *testing.T) {
	db := setupTestDB(t)
	cache := newMemoryCache()
	svc := NewProfileService(db, cache)
	ctx := context.Background()

	_, err := svc.CalculateCalories(ctx, "user-1", profileRequest())
	require.NoError(t, err)
	req := profileRequest()
	req.WeightLb = 180
	_, err = svc.CalculateCalories(ctx, "user-1", req)
	require.NoError(t, err)

	var stored models.UserProfile
	require.NoError(t, db.Where("user_id = ?", "user-1").First(&stored).Error)

	cached, ok := cache.profiles["user-1"]
	require.True(t, ok)
	assert.Equal(t, stored.ID, cached.ID)
	assert.Equal(t, 180.0, cached.WeightLb)
	assert.WithinDuration(t, stored.CreatedAt, cached.CreatedAt, time.Second)

	got, err := svc.GetProfile(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, stored.ID, got.ID)
}

func TestProfileServiceAnonymousDoesNotSave(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProfileService(db, nil)

	_, err := svc.CalculateCalories(context.Background(), "", profileRequest())
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Table("user_profiles").Count(&count).Error)
	assert.Zero(t, count)
}

func TestProfileServiceGetProfileNotFound(t *testing.T) {
	svc := NewProfileService(setupTestDB(t), nil)
	_, err := svc.GetProfile(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestProfileServiceDailyCaloriesDefault(t *testing.T) {
	svc := NewProfileService(setupTestDB(t), newMemoryCache())
	got, err := svc.DailyCalories(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Equal(t, DefaultDailyCalories, got)
}

func TestProfileServiceDailyCaloriesPrefersCache(t *testing.T) {
	cache := newMemoryCache()
	cache.targets["user-1"] = 1800
	svc := NewProfileService(setupTestDB(t), cache)

	got, err := svc.DailyCalories(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1800, got)
}
