package model

import (
	"time"

	"go-commerce-api/internal/rule"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Promo is a discount on exactly one variant, category or product. The three nullable
// references are the storage form of rule.PromoTarget.
type Promo struct {
	BaseModel
	Name          string            `gorm:"type:varchar(255);not null" json:"name"`
	VariantID     *uuid.UUID        `gorm:"type:uuid;index" json:"variant_id,omitempty"`
	CategoryID    *uuid.UUID        `gorm:"type:uuid;index" json:"category_id,omitempty"`
	ProductID     *uuid.UUID        `gorm:"type:uuid;index" json:"product_id,omitempty"`
	DiscountType  rule.DiscountType `gorm:"type:varchar(20);not null" json:"discount_type"`
	DiscountValue decimal.Decimal   `gorm:"type:decimal(12,2);not null" json:"discount_value"`
	StartsAt      time.Time         `gorm:"not null" json:"starts_at"`
	EndsAt        time.Time         `gorm:"not null" json:"ends_at"`
	IsActive      bool              `gorm:"not null" json:"is_active"`
}

// Target reads the tagged target back from the columns.
func (p *Promo) Target() (rule.PromoTarget, error) {
	return rule.NewPromoTarget(p.VariantID, p.CategoryID, p.ProductID)
}

func (p *Promo) SetTarget(t rule.PromoTarget) {
	p.VariantID, p.CategoryID, p.ProductID = t.Columns()
}

func (p *Promo) Window() rule.PromoWindow {
	return rule.PromoWindow{Start: p.StartsAt, End: p.EndsAt}
}

// Validate is the full pre-save gate: target exclusivity, discount range and window order.
func (p *Promo) Validate() error {
	if _, err := p.Target(); err != nil {
		return err
	}
	if err := rule.ValidateDiscount(p.DiscountType, p.DiscountValue); err != nil {
		return err
	}
	if p.EndsAt.Before(p.StartsAt) {
		return &rule.ValidationError{Kind: rule.InvalidDiscount, Field: "ends_at", Message: "promo cannot end before it starts"}
	}
	return nil
}

// BeforeSave makes Validate mandatory on every save path.
func (p *Promo) BeforeSave(tx *gorm.DB) error {
	return p.Validate()
}

// PriceFor applies the promo discount to price.
func (p *Promo) PriceFor(price decimal.Decimal) decimal.Decimal {
	return rule.ApplyDiscount(price, p.DiscountType, p.DiscountValue)
}
