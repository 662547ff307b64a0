package repository

import (
	"context"
	"time"

	"go-commerce-api/internal/model"

	"gorm.io/gorm"
)

type CouponRepository interface {
	Create(ctx context.Context, coupon *model.Coupon) error
	FindByCode(ctx context.Context, code string) (*model.Coupon, error)
	// Redeem bumps used_count only while the coupon is still redeemable at now. It reports
	// false when no row qualified.
	Redeem(ctx context.Context, code string, now time.Time) (bool, error)
}

type couponRepo struct {
	db *gorm.DB
}

func NewCouponRepo(db *gorm.DB) CouponRepository {
	return &couponRepo{db}
}

func (r *couponRepo) Create(ctx context.Context, coupon *model.Coupon) error {
	return uniqueOr(r.db.WithContext(ctx).Create(coupon).Error, "code")
}

func (r *couponRepo) FindByCode(ctx context.Context, code string) (*model.Coupon, error) {
	var coupon model.Coupon
	if err := r.db.WithContext(ctx).First(&coupon, "code = ?", code).Error; err != nil {
		return nil, err
	}
	return &coupon, nil
}

func (r *couponRepo) Redeem(ctx context.Context, code string, now time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Coupon{}).
		Where("code = ? AND is_active = ?", code, true).
		Where("expiry_date IS NULL OR expiry_date > ?", now).
		Where("usage_limit = 0 OR used_count < usage_limit").
		UpdateColumn("used_count", gorm.Expr("used_count + 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
