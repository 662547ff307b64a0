package repository

import (
	"context"
	"time"

	"go-commerce-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PromoRepository interface {
	Create(ctx context.Context, promo *model.Promo) error
	FindAll(ctx context.Context, page Pagination) ([]model.Promo, error)
	// FindActiveFor returns promos running at now that target the variant, its product or
	// any of its categories.
	FindActiveFor(ctx context.Context, variantID, productID uuid.UUID, categoryIDs []uuid.UUID, now time.Time) ([]model.Promo, error)
}

type promoRepo struct {
	db *gorm.DB
}

func NewPromoRepo(db *gorm.DB) PromoRepository {
	return &promoRepo{db}
}

func (r *promoRepo) Create(ctx context.Context, promo *model.Promo) error {
	return r.db.WithContext(ctx).Create(promo).Error
}

func (r *promoRepo) FindAll(ctx context.Context, page Pagination) ([]model.Promo, error) {
	var promos []model.Promo
	err := page.apply(r.db.WithContext(ctx)).Order("starts_at DESC").Find(&promos).Error
	return promos, err
}

func (r *promoRepo) FindActiveFor(ctx context.Context, variantID, productID uuid.UUID, categoryIDs []uuid.UUID, now time.Time) ([]model.Promo, error) {
	var promos []model.Promo
	db := r.db.WithContext(ctx)

	target := db.Where("variant_id = ?", variantID).Or("product_id = ?", productID)
	if len(categoryIDs) > 0 {
		target = target.Or("category_id IN ?", categoryIDs)
	}

	err := db.Where("is_active = ?", true).
		Where("starts_at <= ? AND ends_at >= ?", now, now).
		Where(target).
		Find(&promos).Error
	return promos, err
}
