package service

import (
	"context"
	"errors"
	"fmt"
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

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrOrderNotPending = errors.New("order is no longer pending")
	ErrCouponNotFound  = errors.New("coupon not found")
)

type OrderService interface {
	CreateOrder(ctx context.Context, actor Actor, req *CreateOrderRequest) (*model.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*model.Order, error)
	// AddItem prices the line from the variant; the order total is left as is.
	AddItem(ctx context.Context, actor Actor, orderID uuid.UUID, req *OrderItemRequest) (*model.OrderItem, error)
	// RecalculateTotal sums the stored line totals and persists the result.
	RecalculateTotal(ctx context.Context, actor Actor, orderID uuid.UUID) (*model.Order, error)
	CreatePayment(ctx context.Context, actor Actor, orderID uuid.UUID, req *PaymentRequest) (*model.Payment, error)
	// DeleteOrder removes a pending order with its items and payment.
	DeleteOrder(ctx context.Context, actor Actor, orderID uuid.UUID) error
}

type OrderItemRequest struct {
	VariantID uuid.UUID `json:"variant_id" validate:"uuid_required"`
	Quantity  int       `json:"quantity"`
}

type CreateOrderRequest struct {
	Items      []OrderItemRequest `json:"items" validate:"dive"`
	CouponCode string             `json:"coupon_code" validate:"omitempty,max=50"`
}

type PaymentRequest struct {
	Amount    decimal.Decimal     `json:"amount" validate:"gte=0"`
	Method    string              `json:"method" validate:"required,max=20"`
	Status    model.PaymentStatus `json:"status" validate:"omitempty,oneof=pending completed failed"`
	Reference string              `json:"reference" validate:"omitempty,max=255"`
}

type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	couponRepo  repository.CouponRepository
	policy      rule.QuantityPolicy
	events      Publisher
	now         func() time.Time
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	couponRepo repository.CouponRepository,
	policy rule.QuantityPolicy,
	events Publisher,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		couponRepo:  couponRepo,
		policy:      policy,
		events:      publisherOr(events),
		now:         time.Now,
	}
}

func (s *orderService) CreateOrder(ctx context.Context, actor Actor, req *CreateOrderRequest) (*model.Order, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	order := &model.Order{
		UserID:      actor.ID,
		Status:      model.OrderPending,
		TotalAmount: decimal.Zero,
	}
	order.Stamp(actor.AuditID())

	if code := strings.TrimSpace(req.CouponCode); code != "" {
		coupon, err := s.couponRepo.FindByCode(ctx, code)
		if err != nil {
			return nil, notFound(err, ErrCouponNotFound)
		}
		if err := coupon.State().CanRedeem(s.now()); err != nil {
			return nil, err
		}
		order.CouponID = &coupon.ID
	}

	err := s.orderRepo.Transaction(ctx, func(repo repository.OrderRepository) error {
		if err := repo.Create(ctx, order); err != nil {
			return err
		}
		for i := range req.Items {
			item, err := s.buildItem(ctx, actor, order.ID, &req.Items[i])
			if err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
			if err := repo.AddItem(ctx, item); err != nil {
				return err
			}
			order.Items = append(order.Items, *item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.events.Publish(ws.EventOrderUpdate, "order_created", actor.AuditID(), order)
	return order, nil
}

func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrOrderNotFound)
	}
	return order, nil
}

func (s *orderService) AddItem(ctx context.Context, actor Actor, orderID uuid.UUID, req *OrderItemRequest) (*model.OrderItem, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	var item *model.OrderItem
	err := s.orderRepo.Transaction(ctx, func(repo repository.OrderRepository) error {
		order, err := repo.LockByID(ctx, orderID)
		if err != nil {
			return notFound(err, ErrOrderNotFound)
		}
		if order.Status != model.OrderPending {
			return ErrOrderNotPending
		}

		item, err = s.buildItem(ctx, actor, orderID, req)
		if err != nil {
			return err
		}
		return repo.AddItem(ctx, item)
	})
	if err != nil {
		return nil, err
	}

	s.events.Publish(ws.EventOrderUpdate, "item_added", actor.AuditID(), item)
	return item, nil
}

// buildItem checks the quantity against the policy and copies the variant's current price.
func (s *orderService) buildItem(ctx context.Context, actor Actor, orderID uuid.UUID, req *OrderItemRequest) (*model.OrderItem, error) {
	if err := rule.CheckQuantity(req.Quantity, s.policy); err != nil {
		return nil, err
	}

	variant, err := s.productRepo.FindVariantByID(ctx, req.VariantID)
	if err != nil {
		return nil, notFound(err, ErrVariantNotFound)
	}

	item := &model.OrderItem{
		OrderID:   orderID,
		VariantID: variant.ID,
		UnitPrice: variant.Price,
		Quantity:  req.Quantity,
	}
	item.Stamp(actor.AuditID())
	return item, nil
}

func (s *orderService) RecalculateTotal(ctx context.Context, actor Actor, orderID uuid.UUID) (*model.Order, error) {
	err := s.orderRepo.Transaction(ctx, func(repo repository.OrderRepository) error {
		if _, err := repo.LockByID(ctx, orderID); err != nil {
			return notFound(err, ErrOrderNotFound)
		}

		items, err := repo.FindItems(ctx, orderID)
		if err != nil {
			return err
		}
		order := model.Order{Items: items}
		return repo.UpdateTotal(ctx, orderID, rule.OrderTotal(order.LineTotals()))
	})
	if err != nil {
		return nil, err
	}

	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	s.events.Publish(ws.EventOrderUpdate, "total_recalculated", actor.AuditID(), totalEvent(order))
	return order, nil
}

func (s *orderService) CreatePayment(ctx context.Context, actor Actor, orderID uuid.UUID, req *PaymentRequest) (*model.Payment, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = model.PaymentCompleted
	}

	payment := &model.Payment{
		OrderID:   orderID,
		Amount:    req.Amount,
		Method:    strings.TrimSpace(req.Method),
		Status:    status,
		Reference: req.Reference,
	}
	payment.Stamp(actor.AuditID())

	err := s.orderRepo.Transaction(ctx, func(repo repository.OrderRepository) error {
		order, err := repo.LockByID(ctx, orderID)
		if err != nil {
			return notFound(err, ErrOrderNotFound)
		}
		if order.Status != model.OrderPending {
			return ErrOrderNotPending
		}

		// The payment hook compares the amount with the stored order total.
		if err := repo.SavePayment(ctx, payment); err != nil {
			return err
		}
		if status == model.PaymentCompleted {
			return repo.UpdateStatus(ctx, orderID, model.OrderPaid)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.events.Publish(ws.EventOrderUpdate, "payment_recorded", actor.AuditID(), payment)
	return payment, nil
}

func (s *orderService) DeleteOrder(ctx context.Context, actor Actor, orderID uuid.UUID) error {
	err := s.orderRepo.Transaction(ctx, func(repo repository.OrderRepository) error {
		order, err := repo.LockByID(ctx, orderID)
		if err != nil {
			return notFound(err, ErrOrderNotFound)
		}
		if order.Status != model.OrderPending {
			return ErrOrderNotPending
		}
		return repo.Delete(ctx, orderID)
	})
	if err != nil {
		return err
	}

	s.events.Publish(ws.EventOrderUpdate, "order_deleted", actor.AuditID(), map[string]any{"id": orderID})
	return nil
}

func totalEvent(o *model.Order) map[string]any {
	return map[string]any{"id": o.ID, "total_amount": o.TotalAmount}
}
