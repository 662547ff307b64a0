package repository

import (
	"context"

	"go-commerce-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	FindAll(ctx context.Context, page Pagination) ([]model.Product, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	FindByName(ctx context.Context, name string) (*model.Product, error)

	CreateVariant(ctx context.Context, variant *model.Variant) error
	FindVariantByID(ctx context.Context, id uuid.UUID) (*model.Variant, error)
	CreateImage(ctx context.Context, image *model.Image) error

	// CategoryIDs lists the categories a product belongs to.
	CategoryIDs(ctx context.Context, productID uuid.UUID) ([]uuid.UUID, error)
	CountLowStockVariants(ctx context.Context, threshold int) (int64, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(ctx context.Context, product *model.Product) error {
	return uniqueOr(r.db.WithContext(ctx).Create(product).Error, "name")
}

func (r *productRepo) FindAll(ctx context.Context, page Pagination) ([]model.Product, int64, error) {
	var (
		products []model.Product
		total    int64
	)
	db := r.db.WithContext(ctx)
	if err := db.Model(&model.Product{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := page.apply(db).Preload("Brand").Preload("Categories").Preload("Variants").
		Order("created_at DESC").Find(&products).Error
	return products, total, err
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).Preload("Brand").Preload("Categories").
		Preload("Variants.Images").Preload("Variants.Color").
		First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindByName(ctx context.Context, name string) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).First(&product, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) CreateVariant(ctx context.Context, variant *model.Variant) error {
	return uniqueOr(r.db.WithContext(ctx).Create(variant).Error, "sku")
}

func (r *productRepo) FindVariantByID(ctx context.Context, id uuid.UUID) (*model.Variant, error) {
	var variant model.Variant
	if err := r.db.WithContext(ctx).Preload("Images").First(&variant, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &variant, nil
}

func (r *productRepo) CreateImage(ctx context.Context, image *model.Image) error {
	return r.db.WithContext(ctx).Create(image).Error
}

func (r *productRepo) CategoryIDs(ctx context.Context, productID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Table("product_categories").
		Where("product_id = ?", productID).
		Pluck("category_id", &ids).Error
	return ids, err
}

func (r *productRepo) CountLowStockVariants(ctx context.Context, threshold int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Variant{}).Where("stock < ?", threshold).Count(&count).Error
	return count, err
}
