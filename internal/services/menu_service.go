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
	ErrMenuNotFound     = errors.New("menu not found")
	ErrNotMenuCreator   = errors.New("only the menu creator can modify it")
	ErrInvalidDateRange = errors.New("start date must not be after end date")
	ErrInvalidMenuType  = errors.New("invalid menu type")
	ErrInvalidStatus    = errors.New("invalid menu status")
)

type MenuService struct {
	db       *gorm.DB
	families *FamilyService
}

func NewMenuService(db *gorm.DB, families *FamilyService) *MenuService {
	return &MenuService{db: db, families: families}
}

func (s *MenuService) Create(userID uuid.UUID, req dto.CreateMenuRequest) (*models.Menu, error) {
	if req.Name == "" {
		return nil, errors.New("menu name is required")
	}
	if err := s.families.AssertMember(req.FamilyGroupID, userID); err != nil {
		return nil, err
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return nil, err
	}
	if start.After(end) {
		return nil, ErrInvalidDateRange
	}

	menuType := req.MenuType
	if menuType == "" {
		menuType = "weekly"
	}
	if !oneOf(models.MenuTypes, menuType) {
		return nil, ErrInvalidMenuType
	}

	status := req.Status
	if status == "" {
		status = "draft"
	}
	if !oneOf(models.MenuStatuses, status) {
		return nil, ErrInvalidStatus
	}

	tags, err := toJSON(req.Tags)
	if err != nil {
		return nil, err
	}

	menu := models.Menu{
		ID:            uuid.New(),
		Name:          req.Name,
		Description:   req.Description,
		MenuType:      menuType,
		StartDate:     start,
		EndDate:       end,
		Status:        status,
		FamilyGroupID: req.FamilyGroupID,
		CreatedBy:     userID,
		Tags:          tags,
	}

	if err := s.db.Create(&menu).Error; err != nil {
		return nil, fmt.Errorf("failed to create menu: %w", err)
	}

	return &menu, nil
}

func (s *MenuService) Update(menuID, userID uuid.UUID, req dto.UpdateMenuRequest) (*models.Menu, error) {
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
	if menu.CreatedBy != userID {
		return nil, ErrNotMenuCreator
	}

	// Date ordering is validated against the merged values, so narrowing
	// one end cannot slip past the invariant.
	start, end := menu.StartDate, menu.EndDate
	if req.StartDate != nil {
		parsed, err := parseDate(*req.StartDate)
		if err != nil {
			return nil, err
		}
		start = parsed
	}
	if req.EndDate != nil {
		parsed, err := parseDate(*req.EndDate)
		if err != nil {
			return nil, err
		}
		end = parsed
	}
	if start.After(end) {
		return nil, ErrInvalidDateRange
	}
	menu.StartDate, menu.EndDate = start, end

	if req.Name != nil {
		if *req.Name == "" {
			return nil, errors.New("menu name is required")
		}
		menu.Name = *req.Name
	}
	if req.Description != nil {
		menu.Description = *req.Description
	}
	if req.MenuType != nil {
		if !oneOf(models.MenuTypes, *req.MenuType) {
			return nil, ErrInvalidMenuType
		}
		menu.MenuType = *req.MenuType
	}
	if req.Status != nil {
		if !oneOf(models.MenuStatuses, *req.Status) {
			return nil, ErrInvalidStatus
		}
		menu.Status = *req.Status
	}
	if req.Tags != nil {
		tags, err := toJSON(*req.Tags)
		if err != nil {
			return nil, err
		}
		menu.Tags = tags
	}

	if err := s.db.Save(&menu).Error; err != nil {
		return nil, err
	}
	return &menu, nil
}

// Get returns the full menu tree: items ordered by date and position, each
// carrying its recipe summary.
func (s *MenuService) Get(menuID, userID uuid.UUID) (*dto.MenuResponse, error) {
	menu, err := s.loadTree(menuID)
	if err != nil {
		return nil, err
	}
	if err := s.families.AssertMember(menu.FamilyGroupID, userID); err != nil {
		return nil, err
	}
	return buildMenuResponse(menu), nil
}

func (s *MenuService) List(userID uuid.UUID, query dto.MenuListQuery) (*dto.MenuListResponse, error) {
	if err := s.families.AssertMember(query.FamilyGroupID, userID); err != nil {
		return nil, err
	}

	scope, err := menuFilters(query)
	if err != nil {
		return nil, err
	}

	// Count and fetch share one filter scope so the two stay consistent.
	var total int64
	if err := s.db.Model(&models.Menu{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, err
	}

	var menus []models.Menu
	err = s.db.Scopes(scope).
		Order("start_date DESC, created_at DESC").
		Limit(query.Limit).
		Offset((query.Page - 1) * query.Limit).
		Find(&menus).Error
	if err != nil {
		return nil, err
	}

	return &dto.MenuListResponse{Items: menus, Total: total, Page: query.Page, Limit: query.Limit}, nil
}

func (s *MenuService) Delete(menuID, userID uuid.UUID) error {
	var menu models.Menu
	if err := s.db.First(&menu, "id = ?", menuID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMenuNotFound
		}
		return err
	}
	if err := s.families.AssertMember(menu.FamilyGroupID, userID); err != nil {
		return err
	}
	if menu.CreatedBy != userID {
		return ErrNotMenuCreator
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("menu_id = ?", menu.ID).Delete(&models.MenuItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("menu_id = ?", menu.ID).Delete(&models.MenuShare{}).Error; err != nil {
			return err
		}
		return tx.Delete(&menu).Error
	})
}

func (s *MenuService) loadTree(menuID uuid.UUID) (*models.Menu, error) {
	var menu models.Menu
	err := s.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("date ASC, order_index ASC, created_at ASC")
		}).
		Preload("Items.Recipe").
		First(&menu, "id = ?", menuID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMenuNotFound
		}
		return nil, err
	}
	return &menu, nil
}

func menuFilters(query dto.MenuListQuery) (func(db *gorm.DB) *gorm.DB, error) {
	var start, end time.Time
	var err error
	if query.StartDate != "" {
		if start, err = parseDate(query.StartDate); err != nil {
			return nil, err
		}
	}
	if query.EndDate != "" {
		if end, err = parseDate(query.EndDate); err != nil {
			return nil, err
		}
	}

	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("family_group_id = ?", query.FamilyGroupID)
		if query.Status != "" {
			db = db.Where("status = ?", query.Status)
		}
		// Date filters select menus whose range overlaps the queried window.
		if query.StartDate != "" {
			db = db.Where("end_date >= ?", start)
		}
		if query.EndDate != "" {
			db = db.Where("start_date <= ?", end)
		}
		return db
	}, nil
}

func buildMenuResponse(menu *models.Menu) *dto.MenuResponse {
	items := make([]dto.MenuItemResponse, 0, len(menu.Items))
	for _, item := range menu.Items {
		items = append(items, dto.MenuItemResponse{
			MenuItem: item,
			Recipe:   dto.SummarizeRecipe(&item.Recipe),
		})
	}
	return &dto.MenuResponse{Menu: *menu, Items: items}
}
