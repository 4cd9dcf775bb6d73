package services

import (
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/menubook/menubook-backend/internal/dto"
	"github.com/menubook/menubook-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrNotMember         = errors.New("you are not a member of this family group")
	ErrFamilyNotFound    = errors.New("family group not found")
	ErrInvalidInviteCode = errors.New("invalid invite code")
	ErrAlreadyMember     = errors.New("you already belong to this family group")
)

const inviteCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

type FamilyService struct {
	db *gorm.DB
}

func NewFamilyService(db *gorm.DB) *FamilyService {
	return &FamilyService{db: db}
}

// AssertMember is the authorization primitive for every family-scoped
// operation: it fails unless a membership row matches both ids.
func (s *FamilyService) AssertMember(familyGroupID, userID uuid.UUID) error {
	var member models.FamilyMember
	err := s.db.Where("family_group_id = ? AND user_id = ?", familyGroupID, userID).First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotMember
	}
	return err
}

func (s *FamilyService) CreateGroup(userID uuid.UUID, req dto.CreateFamilyRequest) (*models.FamilyGroup, error) {
	if req.Name == "" {
		return nil, errors.New("family group name is required")
	}

	code, err := s.generateInviteCode()
	if err != nil {
		return nil, err
	}

	group := models.FamilyGroup{
		ID:         uuid.New(),
		Name:       req.Name,
		InviteCode: code,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&group).Error; err != nil {
			return err
		}
		member := models.FamilyMember{
			ID:            uuid.New(),
			UserID:        userID,
			FamilyGroupID: group.ID,
			Role:          models.RoleAdmin,
		}
		return tx.Create(&member).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create family group: %w", err)
	}

	return &group, nil
}

func (s *FamilyService) JoinGroup(userID uuid.UUID, req dto.JoinFamilyRequest) (*models.FamilyGroup, error) {
	var group models.FamilyGroup
	if err := s.db.Where("invite_code = ?", req.InviteCode).First(&group).Error; err != nil {
		return nil, ErrInvalidInviteCode
	}

	var existing models.FamilyMember
	err := s.db.Where("family_group_id = ? AND user_id = ?", group.ID, userID).First(&existing).Error
	if err == nil {
		return nil, ErrAlreadyMember
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	member := models.FamilyMember{
		ID:            uuid.New(),
		UserID:        userID,
		FamilyGroupID: group.ID,
		Role:          models.RoleMember,
	}
	if err := s.db.Create(&member).Error; err != nil {
		return nil, fmt.Errorf("failed to join family group: %w", err)
	}

	return &group, nil
}

func (s *FamilyService) GetGroups(userID uuid.UUID) ([]models.FamilyGroup, error) {
	var groups []models.FamilyGroup
	err := s.db.
		Joins("JOIN family_members ON family_members.family_group_id = family_groups.id").
		Where("family_members.user_id = ?", userID).
		Order("family_groups.created_at ASC").
		Find(&groups).Error
	return groups, err
}

func (s *FamilyService) GetMembers(familyGroupID, userID uuid.UUID) ([]dto.FamilyMemberResponse, error) {
	if err := s.AssertMember(familyGroupID, userID); err != nil {
		return nil, err
	}

	var members []models.FamilyMember
	err := s.db.Preload("User").
		Where("family_group_id = ?", familyGroupID).
		Order("created_at ASC").
		Find(&members).Error
	if err != nil {
		return nil, err
	}

	out := make([]dto.FamilyMemberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, dto.FamilyMemberResponse{
			UserID:   m.UserID,
			Username: m.User.Username,
			Name:     m.User.Name,
			Role:     m.Role,
			JoinedAt: m.CreatedAt,
		})
	}
	return out, nil
}

func (s *FamilyService) generateInviteCode() (string, error) {
	// Retry on the (unlikely) unique-index collision.
	for attempt := 0; attempt < 5; attempt++ {
		b := make([]byte, 8)
		if _, err := rand.Read(b); err != nil {
			return "", fmt.Errorf("failed to generate invite code: %w", err)
		}
		for i := range b {
			b[i] = inviteCodeAlphabet[int(b[i])%len(inviteCodeAlphabet)]
		}
		code := string(b)

		var existing models.FamilyGroup
		err := s.db.Where("invite_code = ?", code).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", errors.New("could not generate a unique invite code")
}
