package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"gorm.io/gorm"

	"github.com/masspath/masspath/backend/internal/logger"
	"github.com/masspath/masspath/backend/internal/models"
	"github.com/masspath/masspath/backend/internal/types"
)

const (
	// FavoriteRewardThreshold is the reward above which a meal counts as a favorite
	FavoriteRewardThreshold = 0.3
	// MaxFavorites caps each favorites list
	MaxFavorites = 5

	recentMealWindow = 7
)

// CalculateReward scores feedback on a recommended meal in [-1, 1]
func CalculateReward(req *types.FeedbackRequest) float64 {
	meal := req.Meal
	state := req.State
	reward := 0.0

	if req.AteMeal {
		reward += 0.4
		if req.Liked != nil {
			if *req.Liked {
				reward += 0.3
			} else {
				reward -= 0.5
			}
		}
		if req.Rating != nil && *req.Rating != 0 {
			reward += float64(*req.Rating-3) * 0.1
		}
	} else {
		reward -= 0.3
	}

	budget := state.CalorieBudget
	if budget == 0 {
		budget = DefaultDailyCalories
	}
	ideal := (budget - state.CaloriesToday) / 3
	switch diff := math.Abs(meal.Calories - ideal); {
	case diff < 100:
		reward += 0.2
	case diff > 300:
		reward -= 0.2
	}

	if state.HighProteinGoal && meal.Protein/math.Max(meal.Calories, 1) > 0.25 {
		reward += 0.1
	}

	if recentlyEaten(meal.Name, state.RecentMeals) {
		reward -= 0.15
	}

	mealAllergens := strings.ToLower(meal.Allergens)
	for _, a := range state.Allergens {
		a = strings.ToLower(strings.TrimSpace(a))
		if a != "" && strings.Contains(mealAllergens, a) {
			reward -= 1.0
			break
		}
	}

	if containsFold(state.DietaryRestrictions, "vegetarian") {
		diet := strings.ToLower(strings.Join(meal.DietaryTags, " "))
		if strings.Contains(diet, "vegetarian") || strings.Contains(diet, "plant") {
			reward += 0.1
		}
	}

	return math.Max(-1, math.Min(1, reward))
}

// recentlyEaten reports whether name overlaps one of the last seven recent meals
func recentlyEaten(name string, recent []string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	if len(recent) > recentMealWindow {
		recent = recent[len(recent)-recentMealWindow:]
	}
	for _, r := range recent {
		r = strings.ToLower(strings.TrimSpace(r))
		if r == "" {
			continue
		}
		if strings.Contains(name, r) || (name != "" && strings.Contains(r, name)) {
			return true
		}
	}
	return false
}

func containsFold(list []string, want string) bool {
	for _, v := range list {
		if strings.EqualFold(strings.TrimSpace(v), want) {
			return true
		}
	}
	return false
}

// FeedbackService stores meal feedback and derives learned preferences
type FeedbackService struct {
	db *gorm.DB
}

var _ IFeedbackService = (*FeedbackService)(nil)

// NewFeedbackService creates a FeedbackService
func NewFeedbackService(db *gorm.DB) *FeedbackService {
	return &FeedbackService{db: db}
}

// SubmitFeedback scores and stores feedback from userID
func (s *FeedbackService) SubmitFeedback(ctx context.Context, userID string, req *types.FeedbackRequest) (*types.FeedbackResponse, error) {
	if strings.TrimSpace(req.Meal.Name) == "" {
		return nil, fmt.Errorf("%w: meal name is required", ErrInvalidFeedback)
	}
	if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 5) {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalidFeedback)
	}

	reward := CalculateReward(req)
	fb := &models.MealFeedback{
		UserID:   userID,
		MealName: strings.TrimSpace(req.Meal.Name),
		Location: req.Meal.Location,
		Category: req.Meal.Category,
		Calories: req.Meal.Calories,
		Protein:  req.Meal.Protein,
		AteMeal:  req.AteMeal,
		Liked:    req.Liked,
		Rating:   req.Rating,
		Reward:   reward,
		Meal: map[string]any{
			"name":         req.Meal.Name,
			"location":     req.Meal.Location,
			"category":     req.Meal.Category,
			"calories":     req.Meal.Calories,
			"protein":      req.Meal.Protein,
			"carbs":        req.Meal.Carbs,
			"fat":          req.Meal.Fat,
			"allergens":    req.Meal.Allergens,
			"dietary_tags": req.Meal.DietaryTags,
		},
		State: map[string]any{
			"time_of_day":          req.State.TimeOfDay,
			"calories_today":       req.State.CaloriesToday,
			"macros_today":         req.State.MacrosToday,
			"calorie_budget":       req.State.CalorieBudget,
			"goals":                req.State.Goals,
			"recent_meals":         req.State.RecentMeals,
			"allergens":            req.State.Allergens,
			"dietary_restrictions": req.State.DietaryRestrictions,
			"high_protein_goal":    req.State.HighProteinGoal,
		},
	}

	if err := s.db.WithContext(ctx).Create(fb).Error; err != nil {
		return nil, fmt.Errorf("failed to save feedback: %w", err)
	}
	logger.Info("feedback recorded", "user_id", userID, "meal", fb.MealName, "reward", reward)

	return &types.FeedbackResponse{
		Status:     "success",
		FeedbackID: fb.ID,
		Reward:     reward,
	}, nil
}

// LearnedPreferences lists the halls and stations of userID's well received
// meals, first seen first.
func (s *FeedbackService) LearnedPreferences(ctx context.Context, userID string) (*types.LearnedPreferences, error) {
	var rows []models.MealFeedback
	err := s.db.WithContext(ctx).
		Select("location", "category", "created_at").
		Where("user_id = ? AND reward > ?", userID, FavoriteRewardThreshold).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load feedback: %w", err)
	}

	prefs := &types.LearnedPreferences{
		FavoriteHalls:    []string{},
		FavoriteStations: []string{},
		Samples:          len(rows),
	}
	for _, r := range rows {
		prefs.FavoriteHalls = appendUnique(prefs.FavoriteHalls, r.Location)
		prefs.FavoriteStations = appendUnique(prefs.FavoriteStations, r.Category)
	}
	if len(prefs.FavoriteHalls) > MaxFavorites {
		prefs.FavoriteHalls = prefs.FavoriteHalls[:MaxFavorites]
	}
	if len(prefs.FavoriteStations) > MaxFavorites {
		prefs.FavoriteStations = prefs.FavoriteStations[:MaxFavorites]
	}
	return prefs, nil
}

func appendUnique(list []string, v string) []string {
	if v == "" {
		return list
	}
	for _, x := range list {
		if x == v {
			return list
		}
	}
	return append(list, v)
}
