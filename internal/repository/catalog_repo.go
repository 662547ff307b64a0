package repository

import (
	"context"

	"go-commerce-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogRepository stores the slugged taxonomy records (categories, brands) and colors.
type CatalogRepository interface {
	CreateCategory(ctx context.Context, category *model.Category) error
	FindCategories(ctx context.Context, page Pagination) ([]model.Category, int64, error)
	FindCategoriesByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Category, error)

	CreateBrand(ctx context.Context, brand *model.Brand) error
	FindBrands(ctx context.Context, page Pagination) ([]model.Brand, int64, error)
	FindBrandByID(ctx context.Context, id uuid.UUID) (*model.Brand, error)

	CreateColor(ctx context.Context, color *model.Color) error
	FindColors(ctx context.Context) ([]model.Color, error)
}

type catalogRepo struct {
	db *gorm.DB
}

func NewCatalogRepo(db *gorm.DB) CatalogRepository {
	return &catalogRepo{db}
}

func (r *catalogRepo) CreateCategory(ctx context.Context, category *model.Category) error {
	return uniqueOr(r.db.WithContext(ctx).Create(category).Error, "slug")
}

func (r *catalogRepo) FindCategories(ctx context.Context, page Pagination) ([]model.Category, int64, error) {
	var (
		items []model.Category
		total int64
	)
	db := r.db.WithContext(ctx)
	if err := db.Model(&model.Category{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := page.apply(db).Order("name ASC").Find(&items).Error
	return items, total, err
}

func (r *catalogRepo) FindCategoriesByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Category, error) {
	var items []model.Category
	if len(ids) == 0 {
		return items, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error
	return items, err
}

func (r *catalogRepo) CreateBrand(ctx context.Context, brand *model.Brand) error {
	return uniqueOr(r.db.WithContext(ctx).Create(brand).Error, "slug")
}

func (r *catalogRepo) FindBrands(ctx context.Context, page Pagination) ([]model.Brand, int64, error) {
	var (
		items []model.Brand
		total int64
	)
	db := r.db.WithContext(ctx)
	if err := db.Model(&model.Brand{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := page.apply(db).Order("name ASC").Find(&items).Error
	return items, total, err
}

func (r *catalogRepo) FindBrandByID(ctx context.Context, id uuid.UUID) (*model.Brand, error) {
	var brand model.Brand
	if err := r.db.WithContext(ctx).First(&brand, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}

func (r *catalogRepo) CreateColor(ctx context.Context, color *model.Color) error {
	return uniqueOr(r.db.WithContext(ctx).Create(color).Error, "name")
}

func (r *catalogRepo) FindColors(ctx context.Context) ([]model.Color, error) {
	var colors []model.Color
	err := r.db.WithContext(ctx).Order("name ASC").Find(&colors).Error
	return colors, err
}
