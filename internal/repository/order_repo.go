package repository

import (
	"context"

	"go-commerce-api/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	// LockByID loads the order row FOR UPDATE; only meaningful inside Transaction.
	LockByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	AddItem(ctx context.Context, item *model.OrderItem) error
	FindItems(ctx context.Context, orderID uuid.UUID) ([]model.OrderItem, error)
	UpdateTotal(ctx context.Context, orderID uuid.UUID, total decimal.Decimal) error
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status model.OrderStatus) error
	SavePayment(ctx context.Context, payment *model.Payment) error
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*OrderStats, error)
	// Transaction runs fn with a repository bound to one database transaction.
	Transaction(ctx context.Context, fn func(repo OrderRepository) error) error
}

// OrderStats for overview stats
type OrderStats struct {
	TotalOrders int64           `json:"total_orders"`
	PaidOrders  int64           `json:"paid_orders"`
	Revenue     decimal.Decimal `json:"revenue"`
}

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepo(db *gorm.DB) OrderRepository {
	return &orderRepo{db}
}

func (r *orderRepo) Create(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).Preload("Items").Preload("Payment").First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) LockByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) AddItem(ctx context.Context, item *model.OrderItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *orderRepo) FindItems(ctx context.Context, orderID uuid.UUID) ([]model.OrderItem, error) {
	var items []model.OrderItem
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Order("created_at ASC").Find(&items).Error
	return items, err
}

func (r *orderRepo) UpdateTotal(ctx context.Context, orderID uuid.UUID, total decimal.Decimal) error {
	return r.db.WithContext(ctx).Model(&model.Order{}).Where("id = ?", orderID).Update("total_amount", total).Error
}

func (r *orderRepo) UpdateStatus(ctx context.Context, orderID uuid.UUID, status model.OrderStatus) error {
	return r.db.WithContext(ctx).Model(&model.Order{}).Where("id = ?", orderID).Update("status", status).Error
}

// SavePayment inserts or updates; the Payment hook checks the amount against the order.
func (r *orderRepo) SavePayment(ctx context.Context, payment *model.Payment) error {
	return uniqueOr(r.db.WithContext(ctx).Save(payment).Error, "order_id")
}

// Delete removes the order together with its items and payment.
func (r *orderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Select(clause.Associations).Delete(&model.Order{BaseModel: model.BaseModel{ID: id}}).Error
}

func (r *orderRepo) Stats(ctx context.Context) (*OrderStats, error) {
	var stats OrderStats
	db := r.db.WithContext(ctx)

	if err := db.Model(&model.Order{}).Count(&stats.TotalOrders).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Order{}).Where("status = ?", model.OrderPaid).Count(&stats.PaidOrders).Error; err != nil {
		return nil, err
	}
	// A bare decimal.Decimal destination is a struct to GORM and would be left unset.
	var revenue struct{ Revenue decimal.Decimal }
	if err := db.Model(&model.Order{}).Where("status = ?", model.OrderPaid).
		Select("COALESCE(SUM(total_amount), 0) AS revenue").Scan(&revenue).Error; err != nil {
		return nil, err
	}
	stats.Revenue = revenue.Revenue
	return &stats, nil
}

func (r *orderRepo) Transaction(ctx context.Context, fn func(repo OrderRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&orderRepo{db: tx})
	})
}
