package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Menu struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string         `gorm:"size:255;not null" json:"name"`
	Description   string         `gorm:"type:text" json:"description"`
	MenuType      string         `gorm:"size:20;not null;default:'weekly'" json:"menu_type"`
	StartDate     time.Time      `gorm:"type:date;not null;index" json:"start_date"`
	EndDate       time.Time      `gorm:"type:date;not null;index" json:"end_date"`
	Status        string         `gorm:"size:20;not null;default:'draft';index" json:"status"`
	FamilyGroupID uuid.UUID      `gorm:"type:uuid;not null;index" json:"family_group_id"`
	CreatedBy     uuid.UUID      `gorm:"type:uuid;not null" json:"created_by"`
	Tags          datatypes.JSON `json:"tags"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	Items         []MenuItem     `gorm:"foreignKey:MenuID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	Shares        []MenuShare    `gorm:"foreignKey:MenuID;constraint:OnDelete:CASCADE" json:"-"`
}

type MenuItem struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	MenuID     uuid.UUID `gorm:"type:uuid;not null;index" json:"menu_id"`
	RecipeID   uuid.UUID `gorm:"type:uuid;not null;index" json:"recipe_id"`
	Date       time.Time `gorm:"type:date;not null;index" json:"date"`
	MealTime   string    `gorm:"size:20;not null" json:"meal_time"`
	Servings   *int      `json:"servings"`
	Note       string    `gorm:"type:text" json:"note"`
	OrderIndex int       `gorm:"default:0" json:"order_index"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Recipe     Recipe    `gorm:"foreignKey:RecipeID" json:"-"`
	Menu       *Menu     `gorm:"foreignKey:MenuID" json:"-"`
}

type MenuShare struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	MenuID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"menu_id"`
	ShareType string     `gorm:"size:10;not null" json:"share_type"`
	Token     *string    `gorm:"size:64;index" json:"token,omitempty"`
	ExpiresAt *time.Time `json:"expires_at"`
	CreatedBy uuid.UUID  `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt time.Time  `json:"created_at"`
	Menu      Menu       `gorm:"foreignKey:MenuID" json:"-"`
}

var MenuTypes = []string{"weekly", "daily", "custom"}
var MenuStatuses = []string{"draft", "published", "archived"}
var MealTimes = []string{"breakfast", "lunch", "dinner", "snack"}
var ShareTypes = []string{"link", "token"}
