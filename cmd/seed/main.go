// Command seed fills a development database with demo profiles, a day of
// logged meals and some feedback so the API has data to show.
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/masspath/masspath/backend/config"
	"github.com/masspath/masspath/backend/internal/database"
	"github.com/masspath/masspath/backend/internal/logger"
	"github.com/masspath/masspath/backend/internal/service"
	"github.com/masspath/masspath/backend/internal/types"
)

type demoUser struct {
	id      string
	profile types.CalculateCaloriesRequest
	meals   []types.LogMealRequest
}

var demoUsers = []demoUser{
	{
		id: "demo-lifter",
		profile: types.CalculateCaloriesRequest{
			HeightIn: 70, WeightLb: 170, Gender: "male", Age: 21, ActivityLevel: "very active",
		},
		meals: []types.LogMealRequest{
			{Name: "Scrambled Eggs", Calories: 320, Protein: 22, Carbs: 4, Fat: 24, Location: "Worcester", Category: "Breakfast Entrees", MealPeriod: "breakfast"},
			{Name: "Grilled Chicken Breast", Calories: 520, Protein: 48, Carbs: 6, Fat: 14, Location: "Franklin", Category: "Grill", MealPeriod: "lunch"},
		},
	},
	{
		id: "demo-vegetarian",
		profile: types.CalculateCaloriesRequest{
			HeightIn: 64, WeightLb: 125, Gender: "female", Age: 20, ActivityLevel: "lightly active",
			DietaryRestrictions: []string{"vegetarian"},
		},
		meals: []types.LogMealRequest{
			{Name: "Greek Yogurt Parfait", Calories: 280, Protein: 15, Carbs: 40, Fat: 6, Location: "Hampshire", Category: "Breakfast", MealPeriod: "breakfast"},
			{Name: "Tofu Stir Fry", Calories: 450, Protein: 24, Carbs: 48, Fat: 16, Location: "Berkshire", Category: "Wok", MealPeriod: "lunch"},
		},
	},
	{
		id: "demo-newcomer",
		profile: types.CalculateCaloriesRequest{
			HeightIn: 67, WeightLb: 150, Gender: "female", Age: 18, ActivityLevel: "sedentary",
		},
	},
}

func main() {
	force := flag.Bool("force", false, "Reseed users that already have a profile")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger.Init(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	db, err := database.Open(cfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := database.RunMigrations(db, "migrations"); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	profiles := service.NewProfileService(db, nil)
	meals := service.NewMealLogService(db, nil, profiles)
	feedback := service.NewFeedbackService(db)
	today := time.Now().Format("2006-01-02")

	logger.Info("seeding demo users", "count", len(demoUsers))
	for _, u := range demoUsers {
		_, err := profiles.GetProfile(ctx, u.id)
		switch {
		case err == nil && !*force:
			logger.Info("user already seeded, skipping", "user_id", u.id)
			continue
		case err != nil && !errors.Is(err, service.ErrProfileNotFound):
			logger.Error("failed to check profile", "user_id", u.id, "error", err)
			os.Exit(1)
		}

		target, err := profiles.CalculateCalories(ctx, u.id, &u.profile)
		if err != nil {
			logger.Error("failed to seed profile", "user_id", u.id, "error", err)
			os.Exit(1)
		}

		for _, m := range u.meals {
			m.Date = today
			if _, err := meals.LogMeal(ctx, u.id, &m); err != nil {
				logger.Error("failed to seed meal", "user_id", u.id, "meal", m.Name, "error", err)
				os.Exit(1)
			}

			liked := true
			rating := 4
			if _, err := feedback.SubmitFeedback(ctx, u.id, &types.FeedbackRequest{
				Meal: types.FeedbackMeal{
					Name: m.Name, Location: m.Location, Category: m.Category,
					Calories: m.Calories, Protein: m.Protein, Carbs: m.Carbs, Fat: m.Fat,
				},
				State:   types.UserState{CalorieBudget: float64(target.DailyCalories)},
				AteMeal: true,
				Liked:   &liked,
				Rating:  &rating,
			}); err != nil {
				logger.Error("failed to seed feedback", "user_id", u.id, "meal", m.Name, "error", err)
				os.Exit(1)
			}
		}
		logger.Info("seeded user", "user_id", u.id, "daily_calories", target.DailyCalories, "meals", len(u.meals))
	}
	logger.Info("seeding complete")
}
