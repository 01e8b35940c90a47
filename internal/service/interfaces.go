package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/masspath/masspath/backend/internal/menu"
	"github.com/masspath/masspath/backend/internal/models"
	"github.com/masspath/masspath/backend/internal/recommend"
	"github.com/masspath/masspath/backend/internal/types"
)

// IMenuService defines the interface for menu operations
type IMenuService interface {
	Halls() []string
	ResolveHall(name string) (string, error)
	GetMenu(ctx context.Context, hall string) ([]menu.FoodRecord, error)
	GetAllMenus(ctx context.Context) ([]menu.FoodRecord, error)
	Query(ctx context.Context, hall string, q MenuQuery) ([]menu.FoodRecord, error)
}

// IRecommendationService defines the interface for recommendation operations
type IRecommendationService interface {
	Recommend(ctx context.Context, hall string, filter recommend.Filter) (*Recommendations, error)
}

// IMealLogService defines the interface for meal log operations
type IMealLogService interface {
	LogMeal(ctx context.Context, userID string, req *types.LogMealRequest) (*models.LoggedMeal, error)
	LogRecommendation(ctx context.Context, userID string, req *types.SelectRecommendationRequest) (*models.LoggedMeal, error)
	DeleteMeal(ctx context.Context, userID string, mealID uuid.UUID) error
	GetMeal(ctx context.Context, userID string, mealID uuid.UUID) (*models.LoggedMeal, error)
	ListMeals(ctx context.Context, userID string, day time.Time) ([]*models.LoggedMeal, error)
	DailySummary(ctx context.Context, userID string, day time.Time) (*types.MealSummary, error)
	AttachPhoto(ctx context.Context, userID string, mealID uuid.UUID, key string) error
}

// IFeedbackService defines the interface for feedback operations
type IFeedbackService interface {
	SubmitFeedback(ctx context.Context, userID string, req *types.FeedbackRequest) (*types.FeedbackResponse, error)
	LearnedPreferences(ctx context.Context, userID string) (*types.LearnedPreferences, error)
}

// IPreferenceInferrer infers taste preferences from recent meals
type IPreferenceInferrer interface {
	Infer(ctx context.Context, meals []string) (*types.PreferenceResult, error)
}

// IProfileService defines the interface for user profile operations
type IProfileService interface {
	CalculateCalories(ctx context.Context, userID string, req *types.CalculateCaloriesRequest) (*types.CalorieResponse, error)
	GetProfile(ctx context.Context, userID string) (*models.UserProfile, error)
	DailyCalories(ctx context.Context, userID string) (int, error)
}

// IPhotoStore defines the interface for meal photo storage
type IPhotoStore interface {
	PresignUpload(ctx context.Context, userID string, mealID uuid.UUID) (*types.PhotoUploadResponse, error)
	PresignDownload(ctx context.Context, key string) (string, error)
}
