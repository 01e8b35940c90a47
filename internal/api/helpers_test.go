package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/masspath/masspath/backend/config"
	"github.com/masspath/masspath/backend/internal/database"
	"github.com/masspath/masspath/backend/internal/middleware"
	"github.com/masspath/masspath/backend/internal/service"
)

const testSecret = "test-secret"

var testHalls = []string{"Berkshire", "Franklin", "Hampshire", "Worcester"}

// staticSource serves the same lunch menu for every hall
type staticSource struct{}

func (staticSource) FetchHall(_ context.Context, hall string, _ time.Time) (map[string]any, error) {
	return map[string]any{"menu": map[string]any{
		"lunch": map[string]any{"Grill": []any{
			map[string]any{"name": hall + " Grilled Chicken", "calories": 520.0, "protein": 35.0, "clean_diet": "Antibiotic Free"},
			map[string]any{"name": hall + " Veggie Burger", "calories": 450.0, "protein": 22.0, "clean_diet": "Vegetarian"},
		}},
		"dinner": map[string]any{"Salad": []any{
			map[string]any{"name": hall + " Side Salad", "calories": 120.0, "protein": 3.0},
		}},
	}}, nil
}

type testEnv struct {
	router *gin.Engine
	tokens *service.TokenService
}

// setupTestEnv wires the real services over an in-memory sqlite database
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	tokens := service.NewTokenService(testSecret, "")
	menus := service.NewMenuService(staticSource{}, nil, testHalls, time.Minute)
	profiles := service.NewProfileService(db, nil)
	meals := service.NewMealLogService(db, nil, profiles)
	feedback := service.NewFeedbackService(db)

	router := gin.New()
	router.Use(middleware.ErrorHandler())
	RegisterRoutes(router, Services{
		DB:              db,
		Tokens:          tokens,
		Menus:           menus,
		Recommendations: service.NewRecommendationService(menus),
		Meals:           meals,
		Feedback:        feedback,
		Inferrer:        service.HeuristicInferrer{},
		Profiles:        profiles,
		Photos:          service.NewPhotoStore(config.NewStaticS3Config("us-east-1", "meal-photos", "AKIDEXAMPLE", "secret")),
	})
	return &testEnv{router: router, tokens: tokens}
}

func (e *testEnv) token(t *testing.T, userID string) string {
	t.Helper()
	tok, err := e.tokens.GenerateToken(userID, time.Hour)
	require.NoError(t, err)
	return tok
}

// PerformRequest sends body as JSON with an optional bearer token
func PerformRequest(router http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		req = httptest.NewRequest(method, path, bytes.NewBuffer(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}
