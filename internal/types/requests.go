package types

import "github.com/google/uuid"

// LogMealRequest represents the request body for logging a meal
type LogMealRequest struct {
	Name       string  `json:"name" binding:"required,max=255"`
	Calories   float64 `json:"calories" binding:"gte=0"`
	Protein    float64 `json:"protein" binding:"gte=0"`
	Carbs      float64 `json:"carbs" binding:"gte=0"`
	Fat        float64 `json:"fat" binding:"gte=0"`
	Location   string  `json:"location"`
	Category   string  `json:"category"`
	MealPeriod string  `json:"meal_period"`
	Date       string  `json:"date"` // YYYY-MM-DD, defaults to today
}

// SelectRecommendationRequest logs a recommendation entry the user picked
type SelectRecommendationRequest struct {
	Name       string `json:"name" binding:"required"`
	Location   string `json:"location"`
	Category   string `json:"category"`
	MealPeriod string `json:"meal_period"`
	Calories   int    `json:"calories" binding:"gte=0"`
	Protein    int    `json:"protein" binding:"gte=0"`
	Carbs      int    `json:"carbs" binding:"gte=0"`
	Fat        int    `json:"fat" binding:"gte=0"`
	MatchScore int    `json:"match_score" binding:"gte=0,lte=99"`
	Date       string `json:"date"`
}

// MealSummary is the per-day view of the meal log
type MealSummary struct {
	Date      string  `json:"date"`
	Meals     int     `json:"meals"`
	Total     float64 `json:"total_calories"`
	Protein   float64 `json:"protein"`
	Carbs     float64 `json:"carbs"`
	Fat       float64 `json:"fat"`
	Target    float64 `json:"target_calories"`
	Remaining float64 `json:"remaining_calories"`
	Percent   float64 `json:"progress_percent"`
}

// FeedbackMeal is the meal snapshot sent with feedback
type FeedbackMeal struct {
	Name        string   `json:"name" binding:"required"`
	Location    string   `json:"location"`
	Category    string   `json:"category"`
	Calories    float64  `json:"calories"`
	Protein     float64  `json:"protein"`
	Carbs       float64  `json:"carbs"`
	Fat         float64  `json:"fat"`
	Allergens   string   `json:"allergens"`
	DietaryTags []string `json:"dietary_tags"`
}

// UserState is the user's context at the time of feedback
type UserState struct {
	TimeOfDay           string             `json:"time_of_day"`
	CaloriesToday       float64            `json:"calories_today"`
	MacrosToday         map[string]float64 `json:"macros_today"`
	CalorieBudget       float64            `json:"calorie_budget"`
	Goals               []string           `json:"goals"`
	RecentMeals         []string           `json:"recent_meals"`
	Allergens           []string           `json:"allergens"`
	DietaryRestrictions []string           `json:"dietary_restrictions"`
	HighProteinGoal     bool               `json:"high_protein_goal"`
}

// FeedbackRequest represents the request body for meal feedback
type FeedbackRequest struct {
	Meal    FeedbackMeal `json:"meal" binding:"required"`
	State   UserState    `json:"state"`
	AteMeal bool         `json:"ate_meal"`
	Liked   *bool        `json:"liked"`
	Rating  *int         `json:"rating" binding:"omitempty,min=1,max=5"`
}

// FeedbackResponse acknowledges stored feedback
type FeedbackResponse struct {
	Status     string    `json:"status"`
	FeedbackID uuid.UUID `json:"feedback_id"`
	Reward     float64   `json:"reward"`
}

// InferPreferencesRequest carries recently logged meal names
type InferPreferencesRequest struct {
	Meals []string `json:"meals" binding:"required"`
}

// PreferenceResult is the inferred preference weights and a suggestion
type PreferenceResult struct {
	Preferences map[string]float64 `json:"preferences"`
	Suggestion  string             `json:"suggestion"`
	Source      string             `json:"source"`
}

// LearnedPreferences summarizes well received meals
type LearnedPreferences struct {
	FavoriteHalls    []string `json:"favorite_halls"`
	FavoriteStations []string `json:"favorite_stations"`
	Samples          int      `json:"samples"`
}

// CalculateCaloriesRequest represents the body of the calorie calculator
type CalculateCaloriesRequest struct {
	HeightIn            float64  `json:"height" binding:"required,gt=0"`
	WeightLb            float64  `json:"weight" binding:"required,gt=0"`
	Gender              string   `json:"gender" binding:"required"`
	Age                 int      `json:"age" binding:"required,gt=0,lt=130"`
	ActivityLevel       string   `json:"activity_level" binding:"required"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
	Allergens           []string `json:"allergens"`
}

// CalorieResponse is the computed daily calorie target
type CalorieResponse struct {
	DailyCalories int `json:"daily_calories"`
	ProteinTarget int `json:"protein_target"`
	CarbsTarget   int `json:"carbs_target"`
	FatTarget     int `json:"fat_target"`
}

// PhotoUploadResponse carries a presigned upload URL
type PhotoUploadResponse struct {
	UploadURL string `json:"upload_url"`
	Key       string `json:"key"`
	ExpiresIn int    `json:"expires_in"`
}
