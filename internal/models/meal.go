package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LoggedMeal is one meal a user logged. MealDate is the calendar day
// (YYYY-MM-DD) the meal counts toward.
type LoggedMeal struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      string         `gorm:"size:128;not null;index:idx_logged_meals_user_date" json:"user_id"`
	MealDate    string         `gorm:"size:10;not null;index:idx_logged_meals_user_date" json:"meal_date"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Calories    float64        `gorm:"not null;default:0" json:"calories"`
	Protein     float64        `gorm:"not null;default:0" json:"protein"`
	Carbs       float64        `gorm:"not null;default:0" json:"carbs"`
	Fat         float64        `gorm:"not null;default:0" json:"fat"`
	Location    string         `gorm:"size:100" json:"location"`
	Category    string         `gorm:"size:100" json:"category"`
	MealPeriod  string         `gorm:"size:20" json:"meal_period"`
	LoggedAt    time.Time      `gorm:"not null" json:"logged_at"`
	SourceName  string         `gorm:"size:255" json:"source_name,omitempty"`
	SourceScore *int           `json:"source_score,omitempty"`
	PhotoKey    string         `gorm:"size:255" json:"photo_key,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName returns the table name for the LoggedMeal model
func (LoggedMeal) TableName() string {
	return "logged_meals"
}

// BeforeCreate assigns an id when none was set
func (m *LoggedMeal) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
