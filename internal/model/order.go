package model

import (
	"fmt"

	"go-commerce-api/internal/rule"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderCancelled OrderStatus = "cancelled"
)

// Order owns its items and payment. TotalAmount is only refreshed by an explicit
// recalculation; it goes stale when items change.
type Order struct {
	BaseModel
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	User        *User           `json:"user,omitempty"`
	Status      OrderStatus     `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"total_amount"`
	CouponID    *uuid.UUID      `gorm:"type:uuid" json:"coupon_id,omitempty"`
	Items       []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	Payment     *Payment        `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"payment,omitempty"`
}

// LineTotals returns the stored total of each loaded item.
func (o *Order) LineTotals() []decimal.Decimal {
	totals := make([]decimal.Decimal, len(o.Items))
	for i, item := range o.Items {
		totals[i] = item.TotalPrice
	}
	return totals
}

type OrderItem struct {
	BaseModel
	OrderID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	VariantID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"variant_id"`
	Variant    *Variant        `json:"variant,omitempty"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	Quantity   int             `gorm:"not null" json:"quantity"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_price"`
}

// BeforeSave always recomputes TotalPrice; a caller-supplied value is discarded.
func (i *OrderItem) BeforeSave(tx *gorm.DB) error {
	i.applyTotal()
	return nil
}

func (i *OrderItem) applyTotal() {
	i.TotalPrice = rule.LineTotal(i.UnitPrice, i.Quantity)
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

type Payment struct {
	BaseModel
	OrderID   uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null" json:"order_id"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Method    string          `gorm:"type:varchar(20);not null" json:"method"`
	Status    PaymentStatus   `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Reference string          `gorm:"type:varchar(255)" json:"reference,omitempty"`
}

// BeforeSave rejects the write unless Amount equals the order's current total. This runs on
// updates too, so a payment must be adjusted whenever its order total changes.
func (p *Payment) BeforeSave(tx *gorm.DB) error {
	var order Order
	err := hookDB(tx.Statement.Context, tx).Model(&Order{}).
		Select("id", "total_amount").First(&order, "id = ?", p.OrderID).Error
	if err != nil {
		return fmt.Errorf("load order %s for payment: %w", p.OrderID, err)
	}
	return p.checkAmount(order.TotalAmount)
}

func (p *Payment) checkAmount(orderTotal decimal.Decimal) error {
	return rule.CheckPaymentAmount(p.Amount, orderTotal)
}
