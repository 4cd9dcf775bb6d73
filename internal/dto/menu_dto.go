package dto

import (
	"github.com/google/uuid"
	"github.com/menubook/menubook-backend/internal/models"
)

// Dates travel as "2006-01-02" strings on the wire.
type CreateMenuRequest struct {
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	MenuType      string    `json:"menu_type"`
	StartDate     string    `json:"start_date"`
	EndDate       string    `json:"end_date"`
	Status        string    `json:"status"`
	FamilyGroupID uuid.UUID `json:"family_group_id"`
	Tags          []string  `json:"tags"`
}

type UpdateMenuRequest struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	MenuType    *string   `json:"menu_type"`
	StartDate   *string   `json:"start_date"`
	EndDate     *string   `json:"end_date"`
	Status      *string   `json:"status"`
	Tags        *[]string `json:"tags"`
}

type MenuListQuery struct {
	FamilyGroupID uuid.UUID
	Status        string
	StartDate     string
	EndDate       string
	Page          int
	Limit         int
}

type MenuListResponse struct {
	Items []models.Menu `json:"items"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

type MenuResponse struct {
	models.Menu
	Items []MenuItemResponse `json:"items"`
}

type CreateMenuItemRequest struct {
	RecipeID   uuid.UUID `json:"recipe_id"`
	Date       string    `json:"date"`
	MealTime   string    `json:"meal_time"`
	Servings   *int      `json:"servings"`
	Note       string    `json:"note"`
	OrderIndex int       `json:"order_index"`
}

type UpdateMenuItemRequest struct {
	Date       *string `json:"date"`
	MealTime   *string `json:"meal_time"`
	Servings   *int    `json:"servings"`
	Note       *string `json:"note"`
	OrderIndex *int    `json:"order_index"`
}

type MenuItemResponse struct {
	models.MenuItem
	Recipe RecipeSummary `json:"recipe"`
}
