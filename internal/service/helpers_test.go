package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/masspath/masspath/backend/internal/database"
	"github.com/masspath/masspath/backend/internal/menu"
	"github.com/masspath/masspath/backend/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// memoryCache is an in-process MenuCache and ProfileCache
type memoryCache struct {
	mu       sync.Mutex
	menus    map[string][]menu.FoodRecord
	profiles map[string]*models.UserProfile
	targets  map[string]int
	consumed map[string]float64
	menuSets int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{
		menus:    map[string][]menu.FoodRecord{},
		profiles: map[string]*models.UserProfile{},
		targets:  map[string]int{},
		consumed: map[string]float64{},
	}
}

func (c *memoryCache) GetMenu(_ context.Context, hall, date string) ([]menu.FoodRecord, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.menus[MenuCacheKey(hall, date)]
	return r, ok, nil
}

func (c *memoryCache) SetMenu(_ context.Context, hall, date string, records []menu.FoodRecord, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.menus[MenuCacheKey(hall, date)] = records
	c.menuSets++
	return nil
}

func (c *memoryCache) GetProfile(_ context.Context, userID string) (*models.UserProfile, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.profiles[userID]
	return p, ok, nil
}

func (c *memoryCache) SetProfile(_ context.Context, profile *models.UserProfile) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := *profile
	c.profiles[profile.UserID] = &cp
	return nil
}

func (c *memoryCache) GetDailyCalories(_ context.Context, userID string) (int, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.targets[userID]
	return v, ok, nil
}

func (c *memoryCache) SetDailyCalories(_ context.Context, userID string, calories int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.targets[userID] = calories
	return nil
}

func (c *memoryCache) SetConsumedCalories(_ context.Context, userID, date string, total float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.consumed[ConsumedCaloriesKey(userID, date)] = total
	return nil
}
