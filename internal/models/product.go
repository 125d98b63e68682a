package models

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Product represents a catalog item. Only name and price are required;
// everything else is independently optional.
type Product struct {
	ID               int             `db:"id" json:"id"`
	Name             string          `db:"name" json:"name"`
	ShortDescription string          `db:"short_description" json:"shortDescription"`
	Description      string          `db:"description" json:"description"`
	Price            decimal.Decimal `db:"price" json:"price"`
	Category         string          `db:"category" json:"category"`
	ImageURL         string          `db:"image_url" json:"imageUrl"`
	AdditionalImages pq.StringArray  `db:"additional_images" json:"additionalImages"`
	InStock          bool            `db:"in_stock" json:"inStock"`
	IsFeatured       bool            `db:"is_featured" json:"isFeatured"`
	CreatedAt        time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time       `db:"updated_at" json:"updatedAt"`
}
