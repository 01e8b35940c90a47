package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/masspath/masspath/backend/internal/logger"
	"github.com/masspath/masspath/backend/internal/models"
	"github.com/masspath/masspath/backend/internal/types"
)

// ActivityMultipliers scale the basal metabolic rate by activity level
var ActivityMultipliers = map[string]float64{
	"sedentary":         1.2,
	"lightly active":    1.375,
	"moderately active": 1.55,
	"active":            1.725,
	"very active":       1.9,
}

// Macro split of the daily calorie target
const (
	proteinShare = 0.30
	carbsShare   = 0.40
	fatShare     = 0.30
)

// CalculateCalorieIntake estimates daily calories with the Mifflin-St Jeor
// equation. Height is in inches and weight in pounds.
func CalculateCalorieIntake(heightIn, weightLb float64, gender string, age int, activityLevel string) (int, error) {
	if heightIn <= 0 || weightLb <= 0 || age <= 0 {
		return 0, fmt.Errorf("%w: height, weight and age must be positive", ErrInvalidProfile)
	}

	weightKg := weightLb * 0.453592
	heightCm := heightIn * 2.54
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)

	switch strings.ToLower(strings.TrimSpace(gender)) {
	case "female":
		bmr -= 161
	case "male":
		bmr += 5
	default:
		return 0, fmt.Errorf("%w: gender must be 'male' or 'female'", ErrInvalidProfile)
	}

	multiplier, ok := ActivityMultipliers[normalizeActivity(activityLevel)]
	if !ok {
		return 0, fmt.Errorf("%w: invalid activity level %q", ErrInvalidProfile, activityLevel)
	}

	return int(math.Round(bmr * multiplier)), nil
}

// accepts "lightly_active" and "Lightly Active" alike
func normalizeActivity(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// MacroTargets splits daily calories into gram targets
func MacroTargets(calories int) (protein, carbs, fat int) {
	c := float64(calories)
	return int(math.Round(c * proteinShare / 4)),
		int(math.Round(c * carbsShare / 4)),
		int(math.Round(c * fatShare / 9))
}

// ProfileService stores user profiles and their calorie targets
type ProfileService struct {
	db    *gorm.DB
	cache ProfileCache
}

var _ IProfileService = (*ProfileService)(nil)

// NewProfileService creates a ProfileService. cache may be nil.
func NewProfileService(db *gorm.DB, cache ProfileCache) *ProfileService {
	return &ProfileService{db: db, cache: cache}
}

// CalculateCalories computes the calorie target for the request and, when
// userID is set, saves it as the user's profile.
func (s *ProfileService) CalculateCalories(ctx context.Context, userID string, req *types.CalculateCaloriesRequest) (*types.CalorieResponse, error) {
	calories, err := CalculateCalorieIntake(req.HeightIn, req.WeightLb, req.Gender, req.Age, req.ActivityLevel)
	if err != nil {
		return nil, err
	}
	protein, carbs, fat := MacroTargets(calories)
	resp := &types.CalorieResponse{
		DailyCalories: calories,
		ProteinTarget: protein,
		CarbsTarget:   carbs,
		FatTarget:     fat,
	}
	if userID == "" {
		return resp, nil
	}

	profile := &models.UserProfile{
		UserID:              userID,
		HeightIn:            req.HeightIn,
		WeightLb:            req.WeightLb,
		Gender:              strings.ToLower(req.Gender),
		Age:                 req.Age,
		ActivityLevel:       normalizeActivity(req.ActivityLevel),
		DailyCalories:       calories,
		ProteinTarget:       protein,
		CarbsTarget:         carbs,
		FatTarget:           fat,
		DietaryRestrictions: req.DietaryRestrictions,
		Allergens:           req.Allergens,
	}
	if err := s.SaveProfile(ctx, profile); err != nil {
		return nil, err
	}
	return resp, nil
}

// SaveProfile upserts profile by user id and refreshes the cached snapshot
func (s *ProfileService) SaveProfile(ctx context.Context, profile *models.UserProfile) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"height_in", "weight_lb", "gender", "age", "activity_level",
			"daily_calories", "protein_target", "carbs_target", "fat_target",
			"dietary_restrictions", "allergens", "updated_at",
		}),
	}).Create(profile).Error
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	// an update keeps the stored id and created_at
	var stored models.UserProfile
	if err := s.db.WithContext(ctx).Where("user_id = ?", profile.UserID).First(&stored).Error; err != nil {
		return fmt.Errorf("failed to reload profile: %w", err)
	}
	*profile = stored

	if s.cache != nil {
		if err := s.cache.SetProfile(ctx, profile); err != nil {
			logger.Warn("failed to cache profile", "user_id", profile.UserID, "error", err)
		}
		if err := s.cache.SetDailyCalories(ctx, profile.UserID, profile.DailyCalories); err != nil {
			logger.Warn("failed to cache daily calories", "user_id", profile.UserID, "error", err)
		}
	}
	return nil
}

// GetProfile returns userID's profile, preferring the cached snapshot
func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	if s.cache != nil {
		if p, ok, err := s.cache.GetProfile(ctx, userID); err == nil && ok {
			return p, nil
		}
	}

	var profile models.UserProfile
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &profile, nil
}

// DailyCalories returns userID's calorie target from the cache, then the
// database, then DefaultDailyCalories.
func (s *ProfileService) DailyCalories(ctx context.Context, userID string) (int, error) {
	if s.cache != nil {
		v, ok, err := s.cache.GetDailyCalories(ctx, userID)
		if err != nil {
			logger.Warn("calorie cache read failed", "user_id", userID, "error", err)
		} else if ok && v > 0 {
			return v, nil
		}
	}

	profile, err := s.GetProfile(ctx, userID)
	if errors.Is(err, ErrProfileNotFound) {
		return DefaultDailyCalories, nil
	}
	if err != nil {
		return 0, err
	}
	if profile.DailyCalories <= 0 {
		return DefaultDailyCalories, nil
	}
	return profile.DailyCalories, nil
}
