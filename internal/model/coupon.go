package model

import (
	"strings"
	"time"

	"go-commerce-api/internal/rule"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Coupon struct {
	BaseModel
	Code          string            `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	DiscountType  rule.DiscountType `gorm:"type:varchar(20);not null" json:"discount_type"`
	DiscountValue decimal.Decimal   `gorm:"type:decimal(12,2);not null" json:"discount_value"`
	UsageLimit    int               `gorm:"not null;default:0" json:"usage_limit"` // 0 = unlimited
	UsedCount     int               `gorm:"not null;default:0" json:"used_count"`
	IsActive      bool              `gorm:"not null" json:"is_active"` // no default: GORM would skip an explicit false
	ExpiryDate    *time.Time        `json:"expiry_date,omitempty"`
}

func (c *Coupon) State() rule.CouponState {
	return rule.CouponState{
		IsActive:   c.IsActive,
		ExpiresAt:  c.ExpiryDate,
		UsageLimit: c.UsageLimit,
		UsedCount:  c.UsedCount,
	}
}

// IsValid reports whether the coupon is currently redeemable, ignoring the usage limit.
func (c *Coupon) IsValid(now time.Time) bool {
	return c.State().IsValid(now)
}

func (c *Coupon) BeforeSave(tx *gorm.DB) error {
	c.Code = strings.TrimSpace(c.Code)
	return rule.ValidateDiscount(c.DiscountType, c.DiscountValue)
}
