package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserProfile holds the body metrics and targets of a user. UserID is the
// subject of the identity provider token.
type UserProfile struct {
	ID                  uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID              string         `gorm:"size:128;not null;uniqueIndex" json:"user_id"`
	HeightIn            float64        `json:"height_in"`
	WeightLb            float64        `json:"weight_lb"`
	Gender              string         `gorm:"size:16" json:"gender"`
	Age                 int            `json:"age"`
	ActivityLevel       string         `gorm:"size:32" json:"activity_level"`
	DailyCalories       int            `json:"daily_calories"`
	ProteinTarget       int            `json:"protein_target"`
	CarbsTarget         int            `json:"carbs_target"`
	FatTarget           int            `json:"fat_target"`
	DietaryRestrictions []string       `gorm:"serializer:json" json:"dietary_restrictions"`
	Allergens           []string       `gorm:"serializer:json" json:"allergens"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName returns the table name for the UserProfile model
func (UserProfile) TableName() string {
	return "user_profiles"
}

// BeforeCreate assigns an id when none was set
func (p *UserProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
