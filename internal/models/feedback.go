package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MealFeedback records how a user reacted to a meal and the reward derived from it
type MealFeedback struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	UserID    string         `gorm:"size:128;not null;index" json:"user_id"`
	MealName  string         `gorm:"size:255;not null" json:"meal_name"`
	Location  string         `gorm:"size:100" json:"location"`
	Category  string         `gorm:"size:100" json:"category"`
	Calories  float64        `json:"calories"`
	Protein   float64        `json:"protein"`
	AteMeal   bool           `json:"ate_meal"`
	Liked     *bool          `json:"liked,omitempty"`
	Rating    *int           `json:"rating,omitempty"`
	Reward    float64        `gorm:"not null;default:0" json:"reward"`
	Meal      map[string]any `gorm:"serializer:json" json:"meal"`
	State     map[string]any `gorm:"serializer:json" json:"state"`
}

// TableName returns the table name for the MealFeedback model
func (MealFeedback) TableName() string {
	return "meal_feedback"
}

// BeforeCreate assigns an id when none was set
func (f *MealFeedback) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
