package dto

import (
	"time"

	"github.com/menubook/menubook-backend/internal/models"
)

type CreateShareRequest struct {
	ShareType string     `json:"share_type"`
	ExpiresAt *time.Time `json:"expires_at"`
}

type ShareListResponse struct {
	Items []models.MenuShare `json:"items"`
}

// SharedMenuResponse is what a redeemed share link returns: the share
// metadata plus the full menu tree.
type SharedMenuResponse struct {
	ShareID   string       `json:"share_id"`
	ShareType string       `json:"share_type"`
	ExpiresAt *time.Time   `json:"expires_at,omitempty"`
	Menu      MenuResponse `json:"menu"`
}
