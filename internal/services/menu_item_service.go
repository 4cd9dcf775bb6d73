package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/menubook/menubook-backend/internal/dto"
	"github.com/menubook/menubook-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrMenuItemNotFound = errors.New("menu item not found")
	ErrDateOutOfRange   = errors.New("item date is outside the menu date range")
	ErrInvalidMealTime  = errors.New("invalid meal time")
)

type MenuItemService struct {
	db       *gorm.DB
	families *FamilyService
}

func NewMenuItemService(db *gorm.DB, families *FamilyService) *MenuItemService {
	return &MenuItemService{db: db, families: families}
}

// Add inserts a recipe into a menu slot. The recipe must belong to the same
// family group as the menu; a recipe from another group (or none) reads as
// not found rather than leaking its existence.
//
// There is no unique constraint on (menu_id, date, meal_time): two clients
// racing on the same slot can both insert. Clients de-duplicate optimistically.
func (s *MenuItemService) Add(menuID, userID uuid.UUID, req dto.CreateMenuItemRequest) (*dto.MenuItemResponse, error) {
	var menu models.Menu
	if err := s.db.First(&menu, "id = ?", menuID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMenuNotFound
		}
		return nil, err
	}
	if err := s.families.AssertMember(menu.FamilyGroupID, userID); err != nil {
		return nil, err
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	if !withinRange(date, menu.StartDate, menu.EndDate) {
		return nil, ErrDateOutOfRange
	}
	if !oneOf(models.MealTimes, req.MealTime) {
		return nil, ErrInvalidMealTime
	}

	var recipe models.Recipe
	if err := s.db.First(&recipe, "id = ?", req.RecipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	if recipe.FamilyGroupID == nil || *recipe.FamilyGroupID != menu.FamilyGroupID {
		return nil, ErrRecipeNotFound
	}

	item := models.MenuItem{
		ID:         uuid.New(),
		MenuID:     menu.ID,
		RecipeID:   recipe.ID,
		Date:       date,
		MealTime:   req.MealTime,
		Servings:   req.Servings,
		Note:       req.Note,
		OrderIndex: req.OrderIndex,
	}

	if err := s.db.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("failed to create menu item: %w", err)
	}

	return &dto.MenuItemResponse{MenuItem: item, Recipe: dto.SummarizeRecipe(&recipe)}, nil
}

func (s *MenuItemService) Update(menuID, itemID, userID uuid.UUID, req dto.UpdateMenuItemRequest) (*dto.MenuItemResponse, error) {
	item, err := s.load(menuID, itemID, userID)
	if err != nil {
		return nil, err
	}

	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			return nil, err
		}
		if !withinRange(date, item.Menu.StartDate, item.Menu.EndDate) {
			return nil, ErrDateOutOfRange
		}
		item.Date = date
	}
	if req.MealTime != nil {
		if !oneOf(models.MealTimes, *req.MealTime) {
			return nil, ErrInvalidMealTime
		}
		item.MealTime = *req.MealTime
	}
	if req.Servings != nil {
		item.Servings = req.Servings
	}
	if req.Note != nil {
		item.Note = *req.Note
	}
	if req.OrderIndex != nil {
		item.OrderIndex = *req.OrderIndex
	}

	if err := s.db.Save(item).Error; err != nil {
		return nil, err
	}

	return &dto.MenuItemResponse{MenuItem: *item, Recipe: dto.SummarizeRecipe(&item.Recipe)}, nil
}

func (s *MenuItemService) Delete(menuID, itemID, userID uuid.UUID) error {
	item, err := s.load(menuID, itemID, userID)
	if err != nil {
		return err
	}
	return s.db.Delete(item).Error
}

// load fetches an item by composite (id, menu id) with its parent menu and
// recipe, and authorizes the caller via the parent menu's family group.
func (s *MenuItemService) load(menuID, itemID, userID uuid.UUID) (*models.MenuItem, error) {
	var item models.MenuItem
	err := s.db.Preload("Recipe").
		Joins("Menu").
		Where("menu_items.id = ? AND menu_items.menu_id = ?", itemID, menuID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMenuItemNotFound
		}
		return nil, err
	}

	if err := s.families.AssertMember(item.Menu.FamilyGroupID, userID); err != nil {
		return nil, err
	}
	return &item, nil
}

func withinRange(date, start, end time.Time) bool {
	return !date.Before(start) && !date.After(end)
}
