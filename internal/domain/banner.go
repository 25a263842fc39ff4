package domain

import (
	"time"

	"github.com/google/uuid"
)

// Banner is a promotional image shown on the storefront. Position orders
// the carousel; only active banners are served publicly.
type Banner struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	ImageURL    string    `json:"image_url" db:"image_url"`
	Position    int       `json:"position" db:"position"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	Description string    `json:"description" db:"description"`
	ButtonText  string    `json:"button_text" db:"button_text"`
	ButtonLink  string    `json:"button_link" db:"button_link"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
