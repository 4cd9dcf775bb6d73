package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateFamilyRequest struct {
	Name string `json:"name"`
}

type JoinFamilyRequest struct {
	InviteCode string `json:"invite_code"`
}

type FamilyMemberResponse struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	Name     string    `json:"name"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}
