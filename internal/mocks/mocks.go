// Package mocks provides testify mocks of the service interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/masspath/masspath/backend/internal/menu"
	"github.com/masspath/masspath/backend/internal/models"
	"github.com/masspath/masspath/backend/internal/recommend"
	"github.com/masspath/masspath/backend/internal/service"
	"github.com/masspath/masspath/backend/internal/types"
)

var (
	_ service.IMenuService           = (*MockMenuService)(nil)
	_ service.IRecommendationService = (*MockRecommendationService)(nil)
	_ service.IMealLogService        = (*MockMealLogService)(nil)
	_ service.IFeedbackService       = (*MockFeedbackService)(nil)
	_ service.IPreferenceInferrer    = (*MockPreferenceInferrer)(nil)
	_ service.IProfileService        = (*MockProfileService)(nil)
	_ service.IPhotoStore            = (*MockPhotoStore)(nil)
)

// MockMenuService is a mock implementation of service.IMenuService
type MockMenuService struct {
	mock.Mock
}

func (m *MockMenuService) Halls() []string {
	args := m.Called()
	return args.Get(0).([]string)
}

func (m *MockMenuService) ResolveHall(name string) (string, error) {
	args := m.Called(name)
	return args.String(0), args.Error(1)
}

func (m *MockMenuService) GetMenu(ctx context.Context, hall string) ([]menu.FoodRecord, error) {
	args := m.Called(ctx, hall)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]menu.FoodRecord), args.Error(1)
}

func (m *MockMenuService) GetAllMenus(ctx context.Context) ([]menu.FoodRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]menu.FoodRecord), args.Error(1)
}

func (m *MockMenuService) Query(ctx context.Context, hall string, q service.MenuQuery) ([]menu.FoodRecord, error) {
	args := m.Called(ctx, hall, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]menu.FoodRecord), args.Error(1)
}

// MockRecommendationService is a mock implementation of service.IRecommendationService
type MockRecommendationService struct {
	mock.Mock
}

func (m *MockRecommendationService) Recommend(ctx context.Context, hall string, filter recommend.Filter) (*service.Recommendations, error) {
	args := m.Called(ctx, hall, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Recommendations), args.Error(1)
}

// MockMealLogService is a mock implementation of service.IMealLogService
type MockMealLogService struct {
	mock.Mock
}

func (m *MockMealLogService) LogMeal(ctx context.Context, userID string, req *types.LogMealRequest) (*models.LoggedMeal, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LoggedMeal), args.Error(1)
}

func (m *MockMealLogService) LogRecommendation(ctx context.Context, userID string, req *types.SelectRecommendationRequest) (*models.LoggedMeal, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LoggedMeal), args.Error(1)
}

func (m *MockMealLogService) DeleteMeal(ctx context.Context, userID string, mealID uuid.UUID) error {
	return m.Called(ctx, userID, mealID).Error(0)
}

func (m *MockMealLogService) GetMeal(ctx context.Context, userID string, mealID uuid.UUID) (*models.LoggedMeal, error) {
	args := m.Called(ctx, userID, mealID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LoggedMeal), args.Error(1)
}

func (m *MockMealLogService) ListMeals(ctx context.Context, userID string, day time.Time) ([]*models.LoggedMeal, error) {
	args := m.Called(ctx, userID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.LoggedMeal), args.Error(1)
}

func (m *MockMealLogService) DailySummary(ctx context.Context, userID string, day time.Time) (*types.MealSummary, error) {
	args := m.Called(ctx, userID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.MealSummary), args.Error(1)
}

func (m *MockMealLogService) AttachPhoto(ctx context.Context, userID string, mealID uuid.UUID, key string) error {
	return m.Called(ctx, userID, mealID, key).Error(0)
}

// MockFeedbackService is a mock implementation of service.IFeedbackService
type MockFeedbackService struct {
	mock.Mock
}

func (m *MockFeedbackService) SubmitFeedback(ctx context.Context, userID string, req *types.FeedbackRequest) (*types.FeedbackResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.FeedbackResponse), args.Error(1)
}

func (m *MockFeedbackService) LearnedPreferences(ctx context.Context, userID string) (*types.LearnedPreferences, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.LearnedPreferences), args.Error(1)
}

// MockPreferenceInferrer is a mock implementation of service.IPreferenceInferrer
type MockPreferenceInferrer struct {
	mock.Mock
}

func (m *MockPreferenceInferrer) Infer(ctx context.Context, meals []string) (*types.PreferenceResult, error) {
	args := m.Called(ctx, meals)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.PreferenceResult), args.Error(1)
}

// MockProfileService is a mock implementation of service.IProfileService
type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) CalculateCalories(ctx context.Context, userID string, req *types.CalculateCaloriesRequest) (*types.CalorieResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.CalorieResponse), args.Error(1)
}

func (m *MockProfileService) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProfile), args.Error(1)
}

func (m *MockProfileService) DailyCalories(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

// MockPhotoStore is a mock implementation of service.IPhotoStore
type MockPhotoStore struct {
	mock.Mock
}

func (m *MockPhotoStore) PresignUpload(ctx context.Context, userID string, mealID uuid.UUID) (*types.PhotoUploadResponse, error) {
	args := m.Called(ctx, userID, mealID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.PhotoUploadResponse), args.Error(1)
}

func (m *MockPhotoStore) PresignDownload(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}
