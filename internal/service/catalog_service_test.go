package service

import (
	"context"
	"testing"

	"go-commerce-api/internal/repository"
	"go-commerce-api/internal/rule"
	"go-commerce-api/internal/ws"
	"go-commerce-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type CatalogServiceSuite struct {
	suite.Suite
	catalog  *fakeCatalogRepo
	products *fakeProductRepo
	events   *recordingPublisher
	svc      CatalogService
	actor    Actor
	ctx      context.Context
}

func (s *CatalogServiceSuite) SetupTest() {
	s.catalog = &fakeCatalogRepo{}
	s.products = newFakeProductRepo()
	s.events = &recordingPublisher{}
	s.svc = NewCatalogService(s.catalog, s.products, s.events)
	s.actor = Actor{ID: uuid.New(), Username: "admin"}
	s.ctx = context.Background()
}

func TestCatalogServiceSuite(t *testing.T) {
	suite.Run(t, new(CatalogServiceSuite))
}

func (s *CatalogServiceSuite) TestCategorySlugsDoNotCollide() {
	first, err := s.svc.CreateCategory(s.ctx, s.actor, &CategoryRequest{Name: "Men's Shoes"})
	s.Require().NoError(err)
	second, err := s.svc.CreateCategory(s.ctx, s.actor, &CategoryRequest{Name: "Men's Shoes"})
	s.Require().NoError(err)

	s.Equal("mens-shoes", first.Slug)
	s.Equal("mens-shoes-1", second.Slug)
	s.Equal(s.actor.ID.String(), first.CreatedBy)
	s.Equal([]string{"category_created", "category_created"}, s.events.actions())
	s.Equal(ws.EventCatalogUpdate, s.events.events[0].eventType)
}

func (s *CatalogServiceSuite) TestExplicitBrandSlugKept() {
	brand, err := s.svc.CreateBrand(s.ctx, s.actor, &BrandRequest{Name: "Nike", Slug: "just-do-it"})
	s.Require().NoError(err)
	s.Equal("just-do-it", brand.Slug)

	_, err = s.svc.CreateBrand(s.ctx, s.actor, &BrandRequest{Name: "Other", Slug: "just-do-it"})
	s.True(rule.IsKind(err, rule.UniquenessViolation))
}

func (s *CatalogServiceSuite) TestColorValidation() {
	_, err := s.svc.CreateColor(s.ctx, s.actor, &ColorRequest{Name: "Red", HexCode: "red"})
	var fe *validator.FieldError
	s.Require().ErrorAs(err, &fe)
	s.Equal("hexcolor", fe.Tag)

	color, err := s.svc.CreateColor(s.ctx, s.actor, &ColorRequest{Name: "Red", HexCode: "#ff0000"})
	s.Require().NoError(err)
	s.Equal("Red", color.Name)
}

func (s *CatalogServiceSuite) TestCreateProduct() {
	category, err := s.svc.CreateCategory(s.ctx, s.actor, &CategoryRequest{Name: "Tops"})
	s.Require().NoError(err)
	brand, err := s.svc.CreateBrand(s.ctx, s.actor, &BrandRequest{Name: "Acme"})
	s.Require().NoError(err)

	product, err := s.svc.CreateProduct(s.ctx, s.actor, &ProductRequest{
		Name:        "Basic Tee",
		BrandID:     &brand.ID,
		CategoryIDs: []uuid.UUID{category.ID, category.ID},
	})
	s.Require().NoError(err)
	s.Len(product.Categories, 1)

	ids, err := s.products.CategoryIDs(s.ctx, product.ID)
	s.Require().NoError(err)
	s.Equal([]uuid.UUID{category.ID}, ids)

	_, err = s.svc.CreateProduct(s.ctx, s.actor, &ProductRequest{Name: "Basic Tee"})
	ve, ok := rule.AsValidation(err)
	s.Require().True(ok)
	s.Equal("name", ve.Field)
}

func (s *CatalogServiceSuite) TestCreateProductUnknownReferences() {
	missing := uuid.New()

	_, err := s.svc.CreateProduct(s.ctx, s.actor, &ProductRequest{Name: "Tee", BrandID: &missing})
	s.ErrorIs(err, ErrBrandNotFound)

	_, err = s.svc.CreateProduct(s.ctx, s.actor, &ProductRequest{Name: "Tee", CategoryIDs: []uuid.UUID{missing}})
	s.ErrorIs(err, ErrCategoryNotFound)
}

func (s *CatalogServiceSuite) TestAddVariantAndImage() {
	product, err := s.svc.CreateProduct(s.ctx, s.actor, &ProductRequest{Name: "Hoodie"})
	s.Require().NoError(err)

	variant, err := s.svc.AddVariant(s.ctx, s.actor, product.ID, &VariantRequest{
		SKU:   "HOOD-BLK-L",
		Size:  "L",
		Price: decimal.RequireFromString("49.999"),
		Stock: 3,
	})
	s.Require().NoError(err)
	s.Equal(product.ID, variant.ProductID)
	s.True(variant.Price.Equal(decimal.RequireFromString("50.00")), variant.Price.String())

	_, err = s.svc.AddVariant(s.ctx, s.actor, product.ID, &VariantRequest{SKU: "HOOD-BLK-L"})
	s.True(rule.IsKind(err, rule.UniquenessViolation))

	image, err := s.svc.AddImage(s.ctx, s.actor, variant.ID, &ImageRequest{URL: "https://cdn.example.com/hood.jpg"})
	s.Require().NoError(err)
	s.Equal(variant.ID, image.VariantID)

	_, err = s.svc.AddImage(s.ctx, s.actor, uuid.New(), &ImageRequest{URL: "https://cdn.example.com/x.jpg"})
	s.ErrorIs(err, ErrVariantNotFound)
}

func (s *CatalogServiceSuite) TestAddVariantRejects() {
	_, err := s.svc.AddVariant(s.ctx, s.actor, uuid.New(), &VariantRequest{SKU: "X"})
	s.ErrorIs(err, ErrProductNotFound)

	product, err := s.svc.CreateProduct(s.ctx, s.actor, &ProductRequest{Name: "Cap"})
	s.Require().NoError(err)
	_, err = s.svc.AddVariant(s.ctx, s.actor, product.ID, &VariantRequest{SKU: "CAP", Price: decimal.NewFromInt(-1)})
	var fe *validator.FieldError
	s.Require().ErrorAs(err, &fe)
	s.Equal("gte", fe.Tag)
}

func TestCatalogService_GetProductNotFound(t *testing.T) {
	svc := NewCatalogService(&fakeCatalogRepo{}, newFakeProductRepo(), nil)

	_, err := svc.GetProduct(context.Background(), uuid.New())
	require.ErrorIs(t, err, ErrProductNotFound)

	page, err := svc.ListProducts(context.Background(), repository.Pagination{Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, page.Total)
}
