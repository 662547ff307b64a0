package service

import (
	"context"
	"errors"
	"strings"

	"go-commerce-api/internal/model"
	"go-commerce-api/internal/repository"
	"go-commerce-api/internal/rule"
	"go-commerce-api/internal/ws"
	"go-commerce-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrVariantNotFound  = errors.New("variant not found")
	ErrBrandNotFound    = errors.New("brand not found")
	ErrCategoryNotFound = errors.New("category not found")
)

type CatalogService interface {
	CreateCategory(ctx context.Context, actor Actor, req *CategoryRequest) (*model.Category, error)
	ListCategories(ctx context.Context, page repository.Pagination) (*Page[model.Category], error)
	CreateBrand(ctx context.Context, actor Actor, req *BrandRequest) (*model.Brand, error)
	ListBrands(ctx context.Context, page repository.Pagination) (*Page[model.Brand], error)
	CreateColor(ctx context.Context, actor Actor, req *ColorRequest) (*model.Color, error)
	ListColors(ctx context.Context) ([]model.Color, error)

	CreateProduct(ctx context.Context, actor Actor, req *ProductRequest) (*model.Product, error)
	ListProducts(ctx context.Context, page repository.Pagination) (*Page[model.Product], error)
	GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error)
	AddVariant(ctx context.Context, actor Actor, productID uuid.UUID, req *VariantRequest) (*model.Variant, error)
	AddImage(ctx context.Context, actor Actor, variantID uuid.UUID, req *ImageRequest) (*model.Image, error)
}

// CategoryRequest leaves Slug empty to have it derived from Name.
type CategoryRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Slug        string `json:"slug" validate:"omitempty,max=255"`
	Description string `json:"description"`
}

type BrandRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Slug        string `json:"slug" validate:"omitempty,max=255"`
	Description string `json:"description"`
	LogoURL     string `json:"logo_url" validate:"omitempty,url"`
}

type ColorRequest struct {
	Name    string `json:"name" validate:"required,max=50"`
	HexCode string `json:"hex_code" validate:"omitempty,hexcolor"`
}

type ProductRequest struct {
	Name        string      `json:"name" validate:"required,max=255"`
	Description string      `json:"description"`
	BrandID     *uuid.UUID  `json:"brand_id"`
	CategoryIDs []uuid.UUID `json:"category_ids"`
}

type VariantRequest struct {
	SKU     string          `json:"sku" validate:"required,max=64"`
	Size    string          `json:"size" validate:"omitempty,max=32"`
	ColorID *uuid.UUID      `json:"color_id"`
	Price   decimal.Decimal `json:"price" validate:"gte=0"`
	Stock   int             `json:"stock" validate:"gte=0"`
}

type ImageRequest struct {
	URL      string     `json:"url" validate:"required,url"`
	AltText  string     `json:"alt_text" validate:"omitempty,max=255"`
	ColorID  *uuid.UUID `json:"color_id"`
	Position int        `json:"position" validate:"gte=0"`
}

type catalogService struct {
	catalogRepo repository.CatalogRepository
	productRepo repository.ProductRepository
	events      Publisher
}

func NewCatalogService(catalogRepo repository.CatalogRepository, productRepo repository.ProductRepository, events Publisher) CatalogService {
	return &catalogService{
		catalogRepo: catalogRepo,
		productRepo: productRepo,
		events:      publisherOr(events),
	}
}

func (s *catalogService) CreateCategory(ctx context.Context, actor Actor, req *CategoryRequest) (*model.Category, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	category := &model.Category{
		Name:        strings.TrimSpace(req.Name),
		Slug:        strings.TrimSpace(req.Slug),
		Description: req.Description,
	}
	category.Stamp(actor.AuditID())

	if err := s.catalogRepo.CreateCategory(ctx, category); err != nil {
		return nil, err
	}

	s.events.Publish(ws.EventCatalogUpdate, "category_created", actor.AuditID(), category)
	return category, nil
}

func (s *catalogService) ListCategories(ctx context.Context, page repository.Pagination) (*Page[model.Category], error) {
	items, total, err := s.catalogRepo.FindCategories(ctx, page)
	if err != nil {
		return nil, err
	}
	return &Page[model.Category]{Items: items, Total: total, Limit: page.Limit, Offset: page.Offset}, nil
}

func (s *catalogService) CreateBrand(ctx context.Context, actor Actor, req *BrandRequest) (*model.Brand, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	brand := &model.Brand{
		Name:        strings.TrimSpace(req.Name),
		Slug:        strings.TrimSpace(req.Slug),
		Description: req.Description,
		LogoURL:     req.LogoURL,
	}
	brand.Stamp(actor.AuditID())

	if err := s.catalogRepo.CreateBrand(ctx, brand); err != nil {
		return nil, err
	}

	s.events.Publish(ws.EventCatalogUpdate, "brand_created", actor.AuditID(), brand)
	return brand, nil
}

func (s *catalogService) ListBrands(ctx context.Context, page repository.Pagination) (*Page[model.Brand], error) {
	items, total, err := s.catalogRepo.FindBrands(ctx, page)
	if err != nil {
		return nil, err
	}
	return &Page[model.Brand]{Items: items, Total: total, Limit: page.Limit, Offset: page.Offset}, nil
}

func (s *catalogService) CreateColor(ctx context.Context, actor Actor, req *ColorRequest) (*model.Color, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	color := &model.Color{Name: strings.TrimSpace(req.Name), HexCode: req.HexCode}
	color.Stamp(actor.AuditID())

	if err := s.catalogRepo.CreateColor(ctx, color); err != nil {
		return nil, err
	}
	return color, nil
}

func (s *catalogService) ListColors(ctx context.Context) ([]model.Color, error) {
	return s.catalogRepo.FindColors(ctx)
}

func (s *catalogService) CreateProduct(ctx context.Context, actor Actor, req *ProductRequest) (*model.Product, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if existing, _ := s.productRepo.FindByName(ctx, name); existing != nil {
		return nil, rule.Duplicate("name")
	}

	if req.BrandID != nil {
		if _, err := s.catalogRepo.FindBrandByID(ctx, *req.BrandID); err != nil {
			return nil, notFound(err, ErrBrandNotFound)
		}
	}

	categories, err := s.catalogRepo.FindCategoriesByIDs(ctx, req.CategoryIDs)
	if err != nil {
		return nil, err
	}
	if len(categories) != len(uniqueIDs(req.CategoryIDs)) {
		return nil, ErrCategoryNotFound
	}

	product := &model.Product{
		Name:        name,
		Description: req.Description,
		BrandID:     req.BrandID,
		Categories:  categories,
	}
	product.Stamp(actor.AuditID())

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.events.Publish(ws.EventCatalogUpdate, "product_created", actor.AuditID(), product)
	return product, nil
}

func (s *catalogService) ListProducts(ctx context.Context, page repository.Pagination) (*Page[model.Product], error) {
	items, total, err := s.productRepo.FindAll(ctx, page)
	if err != nil {
		return nil, err
	}
	return &Page[model.Product]{Items: items, Total: total, Limit: page.Limit, Offset: page.Offset}, nil
}

func (s *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrProductNotFound)
	}
	return product, nil
}

func (s *catalogService) AddVariant(ctx context.Context, actor Actor, productID uuid.UUID, req *VariantRequest) (*model.Variant, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, notFound(err, ErrProductNotFound)
	}

	variant := &model.Variant{
		ProductID: productID,
		SKU:       strings.TrimSpace(req.SKU),
		Size:      req.Size,
		ColorID:   req.ColorID,
		Price:     req.Price.Round(2),
		Stock:     req.Stock,
	}
	variant.Stamp(actor.AuditID())

	if err := validator.Check(variant); err != nil {
		return nil, err
	}
	if err := s.productRepo.CreateVariant(ctx, variant); err != nil {
		return nil, err
	}

	s.events.Publish(ws.EventCatalogUpdate, "variant_created", actor.AuditID(), variant)
	return variant, nil
}

func (s *catalogService) AddImage(ctx context.Context, actor Actor, variantID uuid.UUID, req *ImageRequest) (*model.Image, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	if _, err := s.productRepo.FindVariantByID(ctx, variantID); err != nil {
		return nil, notFound(err, ErrVariantNotFound)
	}

	image := &model.Image{
		VariantID: variantID,
		ColorID:   req.ColorID,
		URL:       req.URL,
		AltText:   req.AltText,
		Position:  req.Position,
	}
	image.Stamp(actor.AuditID())

	if err := s.productRepo.CreateImage(ctx, image); err != nil {
		return nil, err
	}
	return image, nil
}

func uniqueIDs(ids []uuid.UUID) map[uuid.UUID]struct{} {
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
