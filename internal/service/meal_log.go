package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/masspath/masspath/backend/internal/logger"
	"github.com/masspath/masspath/backend/internal/mealog"
	"github.com/masspath/masspath/backend/internal/models"
	"github.com/masspath/masspath/backend/internal/types"
)

const dateLayout = "2006-01-02"

// DefaultDailyCalories is the calorie target of users without a profile
const DefaultDailyCalories = 2200

// ParseDay parses YYYY-MM-DD; an empty string means today.
func ParseDay(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
	}
	d, err := time.ParseInLocation(dateLayout, s, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}

// MealLogService persists logged meals and keeps the daily totals current
type MealLogService struct {
	db       *gorm.DB
	cache    ProfileCache
	profiles IProfileService
	now      func() time.Time
}

var _ IMealLogService = (*MealLogService)(nil)

// NewMealLogService creates a MealLogService. cache and profiles may be nil.
func NewMealLogService(db *gorm.DB, cache ProfileCache, profiles IProfileService) *MealLogService {
	return &MealLogService{db: db, cache: cache, profiles: profiles, now: time.Now}
}

// LogMeal stores a meal for userID
func (s *MealLogService) LogMeal(ctx context.Context, userID string, req *types.LogMealRequest) (*models.LoggedMeal, error) {
	now := s.now()
	day, err := ParseDay(req.Date, now)
	if err != nil {
		return nil, err
	}

	meal := &models.LoggedMeal{
		UserID:     userID,
		MealDate:   day.Format(dateLayout),
		Name:       strings.TrimSpace(req.Name),
		Calories:   req.Calories,
		Protein:    req.Protein,
		Carbs:      req.Carbs,
		Fat:        req.Fat,
		Location:   req.Location,
		Category:   req.Category,
		MealPeriod: req.MealPeriod,
		LoggedAt:   now,
	}
	return s.create(ctx, meal)
}

// LogRecommendation stores a selected recommendation entry as a meal
func (s *MealLogService) LogRecommendation(ctx context.Context, userID string, req *types.SelectRecommendationRequest) (*models.LoggedMeal, error) {
	now := s.now()
	day, err := ParseDay(req.Date, now)
	if err != nil {
		return nil, err
	}
	score := req.MatchScore

	meal := &models.LoggedMeal{
		UserID:      userID,
		MealDate:    day.Format(dateLayout),
		Name:        strings.TrimSpace(req.Name),
		Calories:    float64(req.Calories),
		Protein:     float64(req.Protein),
		Carbs:       float64(req.Carbs),
		Fat:         float64(req.Fat),
		Location:    req.Location,
		Category:    req.Category,
		MealPeriod:  req.MealPeriod,
		LoggedAt:    now,
		SourceName:  strings.TrimSpace(req.Name),
		SourceScore: &score,
	}
	return s.create(ctx, meal)
}

func (s *MealLogService) create(ctx context.Context, meal *models.LoggedMeal) (*models.LoggedMeal, error) {
	if meal.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidMeal)
	}
	if err := s.db.WithContext(ctx).Create(meal).Error; err != nil {
		return nil, fmt.Errorf("failed to log meal: %w", err)
	}
	s.refreshTotal(ctx, meal.UserID, meal.MealDate)
	return meal, nil
}

// GetMeal loads one of userID's meals
func (s *MealLogService) GetMeal(ctx context.Context, userID string, mealID uuid.UUID) (*models.LoggedMeal, error) {
	var meal models.LoggedMeal
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", mealID, userID).First(&meal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMealNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get meal: %w", err)
	}
	return &meal, nil
}

// DeleteMeal removes one of userID's meals and takes it out of the cached
// daily total
func (s *MealLogService) DeleteMeal(ctx context.Context, userID string, mealID uuid.UUID) error {
	meal, err := s.GetMeal(ctx, userID, mealID)
	if err != nil {
		return err
	}

	var d *mealog.Day
	if s.cache != nil {
		if day, err := time.ParseInLocation(dateLayout, meal.MealDate, s.now().Location()); err == nil {
			if d, err = s.Day(ctx, userID, day); err != nil {
				logger.Warn("failed to load daily log", "user_id", userID, "date", meal.MealDate, "error", err)
			}
		}
	}

	if err := s.db.WithContext(ctx).Delete(&models.LoggedMeal{}, "id = ?", meal.ID).Error; err != nil {
		return fmt.Errorf("failed to delete meal: %w", err)
	}

	if d == nil {
		return nil
	}
	if _, err := d.Remove(meal.ID.String()); err != nil {
		logger.Warn("deleted meal missing from daily log", "meal_id", meal.ID, "error", err)
	}
	if err := s.cache.SetConsumedCalories(ctx, userID, meal.MealDate, d.Total()); err != nil {
		logger.Warn("failed to cache daily total", "user_id", userID, "date", meal.MealDate, "error", err)
	}
	return nil
}

// AttachPhoto records the storage key of a meal photo
func (s *MealLogService) AttachPhoto(ctx context.Context, userID string, mealID uuid.UUID, key string) error {
	res := s.db.WithContext(ctx).Model(&models.LoggedMeal{}).
		Where("id = ? AND user_id = ?", mealID, userID).
		Update("photo_key", key)
	if res.Error != nil {
		return fmt.Errorf("failed to attach photo: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrMealNotFound
	}
	return nil
}

// ListMeals returns userID's meals of day in logging order
func (s *MealLogService) ListMeals(ctx context.Context, userID string, day time.Time) ([]*models.LoggedMeal, error) {
	var meals []*models.LoggedMeal
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND meal_date = ?", userID, day.Format(dateLayout)).
		Order("logged_at ASC").Order("created_at ASC").
		Find(&meals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list meals: %w", err)
	}
	return meals, nil
}

// Day loads userID's meals of day into a running-total log
func (s *MealLogService) Day(ctx context.Context, userID string, day time.Time) (*mealog.Day, error) {
	meals, err := s.ListMeals(ctx, userID, day)
	if err != nil {
		return nil, err
	}
	d := mealog.NewDay(day)
	for _, m := range meals {
		d.Add(mealog.Entry{
			ID:       m.ID.String(),
			Name:     m.Name,
			Calories: m.Calories,
			Protein:  m.Protein,
			Carbs:    m.Carbs,
			Fat:      m.Fat,
			LoggedAt: m.LoggedAt,
		})
	}
	return d, nil
}

// DailySummary reports userID's totals of day against their calorie target
func (s *MealLogService) DailySummary(ctx context.Context, userID string, day time.Time) (*types.MealSummary, error) {
	d, err := s.Day(ctx, userID, day)
	if err != nil {
		return nil, err
	}

	target := DefaultDailyCalories
	if s.profiles != nil {
		if t, err := s.profiles.DailyCalories(ctx, userID); err == nil && t > 0 {
			target = t
		}
	}

	progress := d.Progress(float64(target))
	macros := d.Macros()
	return &types.MealSummary{
		Date:      day.Format(dateLayout),
		Meals:     d.Len(),
		Total:     progress.Total,
		Protein:   macros.Protein,
		Carbs:     macros.Carbs,
		Fat:       macros.Fat,
		Target:    progress.Target,
		Remaining: progress.Remaining,
		Percent:   progress.Percent,
	}, nil
}

func (s *MealLogService) refreshTotal(ctx context.Context, userID, date string) {
	if s.cache == nil {
		return
	}
	day, err := time.ParseInLocation(dateLayout, date, s.now().Location())
	if err != nil {
		return
	}
	d, err := s.Day(ctx, userID, day)
	if err != nil {
		logger.Warn("failed to recompute daily total", "user_id", userID, "date", date, "error", err)
		return
	}
	if err := s.cache.SetConsumedCalories(ctx, userID, date, d.Total()); err != nil {
		logger.Warn("failed to cache daily total", "user_id", userID, "date", date, "error", err)
	}
}
