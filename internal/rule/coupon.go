package rule

import "time"

// CouponState is the part of a coupon the redemption rules look at.
type CouponState struct {
	IsActive   bool
	ExpiresAt  *time.Time
	UsageLimit int // 0 means unlimited
	UsedCount  int
}

// IsValid reports whether the coupon is active and not yet expired. now == expiry is expired.
func (c CouponState) IsValid(now time.Time) bool {
	return c.IsActive && (c.ExpiresAt == nil || now.Before(*c.ExpiresAt))
}

// Exhausted reports whether the usage limit has been reached.
func (c CouponState) Exhausted() bool {
	return c.UsageLimit > 0 && c.UsedCount >= c.UsageLimit
}

// CanRedeem is IsValid plus the usage limit.
func (c CouponState) CanRedeem(now time.Time) error {
	if !c.IsActive {
		return newError(CouponUnavailable, "code", "coupon is not active")
	}
	if !c.IsValid(now) {
		return newError(CouponUnavailable, "code", "coupon has expired")
	}
	if c.Exhausted() {
		return newError(CouponUnavailable, "code", "coupon usage limit reached")
	}
	return nil
}
