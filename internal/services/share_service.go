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
	ErrShareNotFound     = errors.New("share not found")
	ErrShareExpired      = errors.New("this share link has expired")
	ErrShareTokenInvalid = errors.New("invalid share token")
	ErrInvalidShareType  = errors.New("invalid share type")
)

type ShareService struct {
	db       *gorm.DB
	families *FamilyService
	menus    *MenuService
}

func NewShareService(db *gorm.DB, families *FamilyService, menus *MenuService) *ShareService {
	return &ShareService{db: db, families: families, menus: menus}
}

func (s *ShareService) Create(menuID, userID uuid.UUID, req dto.CreateShareRequest) (*models.MenuShare, error) {
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

	if !oneOf(models.ShareTypes, req.ShareType) {
		return nil, ErrInvalidShareType
	}
	if req.ExpiresAt != nil && req.ExpiresAt.Before(time.Now()) {
		return nil, errors.New("expiry must be in the future")
	}

	share := models.MenuShare{
		ID:        uuid.New(),
		MenuID:    menu.ID,
		ShareType: req.ShareType,
		ExpiresAt: req.ExpiresAt,
		CreatedBy: userID,
	}

	// Tokens are stored in the clear: members listing a menu's shares need
	// the redeemable value back, and the token itself is the capability.
	if req.ShareType == "token" {
		token, err := randomToken(24)
		if err != nil {
			return nil, err
		}
		share.Token = &token
	}

	if err := s.db.Create(&share).Error; err != nil {
		return nil, fmt.Errorf("failed to create share: %w", err)
	}

	return &share, nil
}

// Redeem validates a share and returns the menu tree without any membership
// check: the share itself is the authorization.
func (s *ShareService) Redeem(shareID uuid.UUID, token string) (*dto.SharedMenuResponse, error) {
	var share models.MenuShare
	if err := s.db.First(&share, "id = ?", shareID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShareNotFound
		}
		return nil, err
	}

	// Expiry is checked before the token so an expired share never
	// validates, token or not.
	if share.ExpiresAt != nil && share.ExpiresAt.Before(time.Now()) {
		return nil, ErrShareExpired
	}

	if share.ShareType == "token" {
		if share.Token == nil || token == "" || token != *share.Token {
			return nil, ErrShareTokenInvalid
		}
	}

	menu, err := s.menus.loadTree(share.MenuID)
	if err != nil {
		return nil, err
	}

	return &dto.SharedMenuResponse{
		ShareID:   share.ID.String(),
		ShareType: share.ShareType,
		ExpiresAt: share.ExpiresAt,
		Menu:      *buildMenuResponse(menu),
	}, nil
}

func (s *ShareService) List(menuID, userID uuid.UUID) ([]models.MenuShare, error) {
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

	var shares []models.MenuShare
	err := s.db.Where("menu_id = ?", menuID).Order("created_at DESC").Find(&shares).Error
	return shares, err
}

func (s *ShareService) Delete(shareID, userID uuid.UUID) error {
	var share models.MenuShare
	err := s.db.Joins("Menu").Where("menu_shares.id = ?", shareID).First(&share).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrShareNotFound
		}
		return err
	}

	if err := s.families.AssertMember(share.Menu.FamilyGroupID, userID); err != nil {
		return err
	}
	return s.db.Delete(&share).Error
}
