package model

// Privilege represents a permission that can be assigned to users
type Privilege struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // e.g., "catalog:write"
	Name string `gorm:"type:varchar(100)" json:"name"`
}

const (
	PrivUserView      = "user:view"
	PrivCatalogWrite  = "catalog:write"
	PrivOrderCreate   = "order:create"
	PrivOrderView     = "order:view"
	PrivPaymentCreate = "payment:create"
	PrivPromoWrite    = "promo:write"
	PrivCouponWrite   = "coupon:write"
	PrivCouponRedeem  = "coupon:redeem"
	PrivDashboardView = "dashboard:view"
)

var DefaultPrivileges = []Privilege{
	{Code: PrivUserView, Name: "View Users"},
	{Code: PrivCatalogWrite, Name: "Manage Catalog"},
	{Code: PrivOrderCreate, Name: "Place Orders"},
	{Code: PrivOrderView, Name: "View Orders"},
	{Code: PrivPaymentCreate, Name: "Record Payments"},
	{Code: PrivPromoWrite, Name: "Manage Promotions"},
	{Code: PrivCouponWrite, Name: "Manage Coupons"},
	{Code: PrivCouponRedeem, Name: "Redeem Coupons"},
	{Code: PrivDashboardView, Name: "View Dashboard"},
}

// CustomerPrivileges is the subset granted to the CUSTOMER role.
var CustomerPrivileges = []string{PrivOrderCreate, PrivOrderView, PrivPaymentCreate, PrivCouponRedeem}
