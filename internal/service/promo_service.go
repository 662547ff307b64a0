package service

import (
	"context"
	"strings"
	"time"

	"go-commerce-api/internal/model"
	"go-commerce-api/internal/repository"
	"go-commerce-api/internal/rule"
	"go-commerce-api/internal/ws"
	"go-commerce-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PromoService interface {
	CreatePromo(ctx context.Context, actor Actor, req *PromoRequest) (*model.Promo, error)
	ListPromos(ctx context.Context, page repository.Pagination) ([]model.Promo, error)
	// Quote prices a variant with the best promo running at now.
	Quote(ctx context.Context, variantID uuid.UUID, now time.Time) (*Quote, error)
}

// PromoRequest must set exactly one of VariantID, CategoryID and ProductID.
type PromoRequest struct {
	Name          string            `json:"name" validate:"required,max=255"`
	VariantID     *uuid.UUID        `json:"variant_id"`
	CategoryID    *uuid.UUID        `json:"category_id"`
	ProductID     *uuid.UUID        `json:"product_id"`
	DiscountType  rule.DiscountType `json:"discount_type" validate:"required,oneof=percentage fixed"`
	DiscountValue decimal.Decimal   `json:"discount_value" validate:"gte=0"`
	StartsAt      time.Time         `json:"starts_at" validate:"required"`
	EndsAt        time.Time         `json:"ends_at" validate:"required"`
	IsActive      *bool             `json:"is_active"`
}

type Quote struct {
	VariantID uuid.UUID       `json:"variant_id"`
	BasePrice decimal.Decimal `json:"base_price"`
	Price     decimal.Decimal `json:"price"`
	Promo     *model.Promo    `json:"promo,omitempty"`
}

type promoService struct {
	promoRepo   repository.PromoRepository
	productRepo repository.ProductRepository
	events      Publisher
}

func NewPromoService(promoRepo repository.PromoRepository, productRepo repository.ProductRepository, events Publisher) PromoService {
	return &promoService{
		promoRepo:   promoRepo,
		productRepo: productRepo,
		events:      publisherOr(events),
	}
}

func (s *promoService) CreatePromo(ctx context.Context, actor Actor, req *PromoRequest) (*model.Promo, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	target, err := rule.NewPromoTarget(req.VariantID, req.CategoryID, req.ProductID)
	if err != nil {
		return nil, err
	}

	promo := &model.Promo{
		Name:          strings.TrimSpace(req.Name),
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		StartsAt:      req.StartsAt,
		EndsAt:        req.EndsAt,
		IsActive:      req.IsActive == nil || *req.IsActive,
	}
	promo.SetTarget(target)
	promo.Stamp(actor.AuditID())

	if err := promo.Validate(); err != nil {
		return nil, err
	}
	if err := s.promoRepo.Create(ctx, promo); err != nil {
		return nil, err
	}

	s.events.Publish(ws.EventCatalogUpdate, "promo_created", actor.AuditID(), promo)
	return promo, nil
}

func (s *promoService) ListPromos(ctx context.Context, page repository.Pagination) ([]model.Promo, error) {
	return s.promoRepo.FindAll(ctx, page)
}

func (s *promoService) Quote(ctx context.Context, variantID uuid.UUID, now time.Time) (*Quote, error) {
	variant, err := s.productRepo.FindVariantByID(ctx, variantID)
	if err != nil {
		return nil, notFound(err, ErrVariantNotFound)
	}

	categoryIDs, err := s.productRepo.CategoryIDs(ctx, variant.ProductID)
	if err != nil {
		return nil, err
	}

	promos, err := s.promoRepo.FindActiveFor(ctx, variant.ID, variant.ProductID, categoryIDs, now)
	if err != nil {
		return nil, err
	}

	quote := &Quote{VariantID: variant.ID, BasePrice: variant.Price, Price: variant.Price}
	for i := range promos {
		p := &promos[i]
		if !p.IsActive || !p.Window().Contains(now) {
			continue
		}
		if price := p.PriceFor(variant.Price); price.LessThan(quote.Price) {
			quote.Price = price
			quote.Promo = p
		}
	}
	return quote, nil
}
