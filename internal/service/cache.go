package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/masspath/masspath/backend/internal/menu"
	"github.com/masspath/masspath/backend/internal/models"
)

// Cache key layout
const (
	menuKeyPrefix          = "menu"
	profileKeyPrefix       = "mp_user_profile"
	dailyCaloriesPrefix    = "mp_daily_calories"
	consumedCaloriesPrefix = "mp_calories_consumed"
)

// MenuCacheKey is the cache key of a hall's normalized menu on date
func MenuCacheKey(hall, date string) string {
	return fmt.Sprintf("%s:%s:%s", menuKeyPrefix, hall, date)
}

// ProfileCacheKey is the cache key of a user's profile snapshot
func ProfileCacheKey(userID string) string {
	return profileKeyPrefix + ":" + userID
}

// DailyCaloriesKey is the cache key of a user's daily calorie target
func DailyCaloriesKey(userID string) string {
	return dailyCaloriesPrefix + ":" + userID
}

// ConsumedCaloriesKey is the cache key of the calories a user logged on date
func ConsumedCaloriesKey(userID, date string) string {
	return fmt.Sprintf("%s:%s:%s", consumedCaloriesPrefix, userID, date)
}

// MenuCache stores normalized menus
type MenuCache interface {
	GetMenu(ctx context.Context, hall, date string) ([]menu.FoodRecord, bool, error)
	SetMenu(ctx context.Context, hall, date string, records []menu.FoodRecord, ttl time.Duration) error
}

// ProfileCache stores per-user profile snapshots and calorie figures
type ProfileCache interface {
	GetProfile(ctx context.Context, userID string) (*models.UserProfile, bool, error)
	SetProfile(ctx context.Context, profile *models.UserProfile) error
	GetDailyCalories(ctx context.Context, userID string) (int, bool, error)
	SetDailyCalories(ctx context.Context, userID string, calories int) error
	SetConsumedCalories(ctx context.Context, userID, date string, total float64) error
}

// RedisCache implements MenuCache and ProfileCache on Redis
type RedisCache struct {
	client     *redis.Client
	profileTTL time.Duration
}

var (
	_ MenuCache    = (*RedisCache)(nil)
	_ ProfileCache = (*RedisCache)(nil)
)

// NewRedisCache creates a cache backed by client
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client, profileTTL: 30 * 24 * time.Hour}
}

// GetMenu implements MenuCache
func (c *RedisCache) GetMenu(ctx context.Context, hall, date string) ([]menu.FoodRecord, bool, error) {
	data, err := c.client.Get(ctx, MenuCacheKey(hall, date)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read menu cache: %w", err)
	}
	var records []menu.FoodRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached menu: %w", err)
	}
	return records, true, nil
}

// SetMenu implements MenuCache
func (c *RedisCache) SetMenu(ctx context.Context, hall, date string, records []menu.FoodRecord, ttl time.Duration) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode menu: %w", err)
	}
	if err := c.client.Set(ctx, MenuCacheKey(hall, date), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write menu cache: %w", err)
	}
	return nil
}

// GetProfile implements ProfileCache
func (c *RedisCache) GetProfile(ctx context.Context, userID string) (*models.UserProfile, bool, error) {
	data, err := c.client.Get(ctx, ProfileCacheKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read profile cache: %w", err)
	}
	var profile models.UserProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached profile: %w", err)
	}
	return &profile, true, nil
}

// SetProfile implements ProfileCache
func (c *RedisCache) SetProfile(ctx context.Context, profile *models.UserProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	return c.client.Set(ctx, ProfileCacheKey(profile.UserID), data, c.profileTTL).Err()
}

// GetDailyCalories implements ProfileCache
func (c *RedisCache) GetDailyCalories(ctx context.Context, userID string) (int, bool, error) {
	v, err := c.client.Get(ctx, DailyCaloriesKey(userID)).Int()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to read calorie cache: %w", err)
	}
	return v, true, nil
}

// SetDailyCalories implements ProfileCache
func (c *RedisCache) SetDailyCalories(ctx context.Context, userID string, calories int) error {
	return c.client.Set(ctx, DailyCaloriesKey(userID), strconv.Itoa(calories), c.profileTTL).Err()
}

// SetConsumedCalories implements ProfileCache
func (c *RedisCache) SetConsumedCalories(ctx context.Context, userID, date string, total float64) error {
	return c.client.Set(ctx, ConsumedCaloriesKey(userID, date), strconv.FormatFloat(total, 'f', -1, 64), 48*time.Hour).Err()
}
