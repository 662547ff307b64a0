package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	BaseModel
	Name        string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"name" validate:"required,max=255"`
	Description string     `gorm:"type:text" json:"description"`
	BrandID     *uuid.UUID `gorm:"type:uuid;index" json:"brand_id,omitempty"`
	Brand       *Brand     `json:"brand,omitempty" validate:"-"`
	Categories  []Category `gorm:"many2many:product_categories;" json:"categories,omitempty" validate:"-"`
	Variants    []Variant  `gorm:"constraint:OnDelete:CASCADE" json:"variants,omitempty" validate:"-"`
}

// Variant is a purchasable SKU of a product.
type Variant struct {
	BaseModel
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	SKU       string          `gorm:"type:varchar(64);uniqueIndex;not null" json:"sku" validate:"required,max=64"`
	Size      string          `gorm:"type:varchar(32)" json:"size"`
	ColorID   *uuid.UUID      `gorm:"type:uuid" json:"color_id,omitempty"`
	Color     *Color          `json:"color,omitempty" validate:"-"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"price" validate:"gte=0"`
	Stock     int             `gorm:"not null;default:0" json:"stock" validate:"gte=0"`
	Images    []Image         `gorm:"constraint:OnDelete:CASCADE" json:"images,omitempty" validate:"-"`
}

// Image belongs to a variant; the color reference is weak (set null on color delete).
type Image struct {
	BaseModel
	VariantID uuid.UUID  `gorm:"type:uuid;not null;index" json:"variant_id" validate:"uuid_required"`
	ColorID   *uuid.UUID `gorm:"type:uuid" json:"color_id,omitempty"`
	Color     *Color     `gorm:"constraint:OnDelete:SET NULL" json:"color,omitempty" validate:"-"`
	URL       string     `gorm:"type:varchar(512);not null" json:"url" validate:"required,url"`
	AltText   string     `gorm:"type:varchar(255)" json:"alt_text"`
	Position  int        `gorm:"default:0" json:"position" validate:"gte=0"`
}
