package domain

import (
	"time"

	"github.com/google/uuid"
)

// Variation is a priced, separately-stocked option of a product
// (e.g. a storage capacity). Names are unique within a product.
type Variation struct {
	Name  string `json:"name" db:"name"`
	Price int64  `json:"price" db:"price"`
	Stock int    `json:"stock" db:"stock"`
}

// Product represents a product in the catalog. Prices are whole CFA francs.
// When Variations is non-empty, the matching variation is authoritative for
// a cart line's price and stock, not the base fields.
type Product struct {
	ID            uuid.UUID   `json:"id" db:"id"`
	Name          string      `json:"name" db:"name"`
	Description   string      `json:"description" db:"description"`
	Price         int64       `json:"price" db:"price"`
	OriginalPrice *int64      `json:"original_price,omitempty" db:"original_price"`
	ImageURL      string      `json:"image_url" db:"image_url"`
	Category      string      `json:"category" db:"category"`
	Rating        float64     `json:"rating" db:"rating"`
	ReviewCount   int         `json:"review_count" db:"review_count"`
	Colors        []string    `json:"colors" db:"colors"`
	Stock         int         `json:"stock" db:"stock"`
	Variations    []Variation `json:"variations,omitempty"`
	IsNew         bool        `json:"is_new" db:"is_new"`
	CreatedAt     time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at" db:"updated_at"`
}

// FindVariation returns the variation with the given name, or nil.
func (p *Product) FindVariation(name string) *Variation {
	for i := range p.Variations {
		if p.Variations[i].Name == name {
			return &p.Variations[i]
		}
	}
	return nil
}

// Category represents a storefront category with its navigation and
// banner imagery. Order controls display position.
type Category struct {
	ID             uuid.UUID `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	NavImageURL    string    `json:"nav_image_url" db:"nav_image_url"`
	BannerImageURL string    `json:"banner_image_url" db:"banner_image_url"`
	Order          int       `json:"order" db:"display_order"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
