package service

import (
	"context"
	"strings"
	"time"

	"go-commerce-api/internal/model"
	"go-commerce-api/internal/repository"
	"go-commerce-api/internal/rule"
	"go-commerce-api/pkg/validator"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type CouponService interface {
	CreateCoupon(ctx context.Context, actor Actor, req *CouponRequest) (*model.Coupon, error)
	Validity(ctx context.Context, code string, now time.Time) (*CouponValidity, error)
	// Redeem consumes one use of the coupon. Concurrent calls never exceed the usage limit.
	Redeem(ctx context.Context, actor Actor, code string, now time.Time) (*model.Coupon, error)
}

type CouponRequest struct {
	Code          string            `json:"code" validate:"required,max=50"`
	DiscountType  rule.DiscountType `json:"discount_type" validate:"required,oneof=percentage fixed"`
	DiscountValue decimal.Decimal   `json:"discount_value" validate:"gte=0"`
	UsageLimit    int               `json:"usage_limit" validate:"gte=0"`
	ExpiryDate    *time.Time        `json:"expiry_date"`
	IsActive      *bool             `json:"is_active"`
}

type CouponValidity struct {
	Code string `json:"code"`
	// Valid is the active-and-unexpired check; Redeemable also honours the usage limit.
	Valid      bool   `json:"valid"`
	Redeemable bool   `json:"redeemable"`
	Reason     string `json:"reason,omitempty"`
	Remaining  *int   `json:"remaining,omitempty"`
}

type couponService struct {
	couponRepo repository.CouponRepository
}

func NewCouponService(couponRepo repository.CouponRepository) CouponService {
	return &couponService{couponRepo: couponRepo}
}

func (s *couponService) CreateCoupon(ctx context.Context, actor Actor, req *CouponRequest) (*model.Coupon, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}
	if err := rule.ValidateDiscount(req.DiscountType, req.DiscountValue); err != nil {
		return nil, err
	}

	coupon := &model.Coupon{
		Code:          strings.TrimSpace(req.Code),
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		UsageLimit:    req.UsageLimit,
		IsActive:      req.IsActive == nil || *req.IsActive,
		ExpiryDate:    req.ExpiryDate,
	}
	coupon.Stamp(actor.AuditID())

	if err := s.couponRepo.Create(ctx, coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

func (s *couponService) Validity(ctx context.Context, code string, now time.Time) (*CouponValidity, error) {
	coupon, err := s.couponRepo.FindByCode(ctx, strings.TrimSpace(code))
	if err != nil {
		return nil, notFound(err, ErrCouponNotFound)
	}

	state := coupon.State()
	v := &CouponValidity{Code: coupon.Code, Valid: state.IsValid(now)}
	if err := state.CanRedeem(now); err != nil {
		v.Reason = err.Error()
	} else {
		v.Redeemable = true
	}
	if state.UsageLimit > 0 {
		remaining := max(state.UsageLimit-state.UsedCount, 0)
		v.Remaining = &remaining
	}
	return v, nil
}

func (s *couponService) Redeem(ctx context.Context, actor Actor, code string, now time.Time) (*model.Coupon, error) {
	code = strings.TrimSpace(code)
	coupon, err := s.couponRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, notFound(err, ErrCouponNotFound)
	}
	if err := coupon.State().CanRedeem(now); err != nil {
		return nil, err
	}

	ok, err := s.couponRepo.Redeem(ctx, code, now)
	if err != nil {
		return nil, err
	}

	// Re-read either way: on a lost race the fresh row says why.
	fresh, err := s.couponRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if !ok {
		if err := fresh.State().CanRedeem(now); err != nil {
			return nil, err
		}
		return nil, &rule.ValidationError{Kind: rule.CouponUnavailable, Field: "code", Message: "coupon could not be redeemed"}
	}

	log.Ctx(ctx).Info().
		Str("code", fresh.Code).
		Str("actor_id", actor.AuditID()).
		Int("used_count", fresh.UsedCount).
		Msg("coupon redeemed")
	return fresh, nil
}
