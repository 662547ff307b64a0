package rule

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const promoTargetMessage = "Only one of 'variant', 'category', or 'product' must be set."

type PromoTargetKind string

const (
	TargetVariant  PromoTargetKind = "variant"
	TargetCategory PromoTargetKind = "category"
	TargetProduct  PromoTargetKind = "product"
)

// PromoTarget is the single entity a promotion applies to.
type PromoTarget struct {
	Kind PromoTargetKind `json:"kind"`
	ID   uuid.UUID       `json:"id"`
}

// NewPromoTarget builds the target from the three optional references. Exactly one must be set.
func NewPromoTarget(variantID, categoryID, productID *uuid.UUID) (PromoTarget, error) {
	var target PromoTarget
	set := 0
	for _, ref := range []struct {
		kind PromoTargetKind
		id   *uuid.UUID
	}{
		{TargetVariant, variantID},
		{TargetCategory, categoryID},
		{TargetProduct, productID},
	} {
		if ref.id == nil || *ref.id == uuid.Nil {
			continue
		}
		set++
		target = PromoTarget{Kind: ref.kind, ID: *ref.id}
	}
	if set != 1 {
		return PromoTarget{}, newError(ExclusivityViolation, "target", promoTargetMessage)
	}
	return target, nil
}

// Validate rejects a target with an unknown kind or a nil id.
func (t PromoTarget) Validate() error {
	switch t.Kind {
	case TargetVariant, TargetCategory, TargetProduct:
	default:
		return newError(ExclusivityViolation, "target", promoTargetMessage)
	}
	if t.ID == uuid.Nil {
		return newError(ExclusivityViolation, "target", promoTargetMessage)
	}
	return nil
}

// Columns splits the target back into the three nullable references.
func (t PromoTarget) Columns() (variantID, categoryID, productID *uuid.UUID) {
	id := t.ID
	switch t.Kind {
	case TargetVariant:
		variantID = &id
	case TargetCategory:
		categoryID = &id
	case TargetProduct:
		productID = &id
	}
	return
}

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

var hundred = decimal.NewFromInt(100)

// ValidateDiscount checks the type and the value range (percentages are capped at 100).
func ValidateDiscount(kind DiscountType, value decimal.Decimal) error {
	if value.IsNegative() {
		return newError(InvalidDiscount, "discount_value", "discount value cannot be negative")
	}
	switch kind {
	case DiscountPercentage:
		if value.GreaterThan(hundred) {
			return newError(InvalidDiscount, "discount_value", "percentage discount cannot exceed 100")
		}
	case DiscountFixed:
	default:
		return newError(InvalidDiscount, "discount_type", "discount type must be 'percentage' or 'fixed'")
	}
	return nil
}

// ApplyDiscount returns price after the discount, never below zero, rounded to cents.
func ApplyDiscount(price decimal.Decimal, kind DiscountType, value decimal.Decimal) decimal.Decimal {
	var discounted decimal.Decimal
	switch kind {
	case DiscountPercentage:
		discounted = price.Sub(price.Mul(value).Div(hundred))
	case DiscountFixed:
		discounted = price.Sub(value)
	default:
		return price
	}
	if discounted.IsNegative() {
		return decimal.Zero
	}
	return discounted.Round(2)
}

// PromoWindow is the validity window of a promotion, inclusive on both ends.
type PromoWindow struct {
	Start time.Time
	End   time.Time
}

func (w PromoWindow) Contains(now time.Time) bool {
	return !now.Before(w.Start) && !now.After(w.End)
}
