package model

import (
	"context"
	"testing"
	"time"

	"go-commerce-api/internal/rule"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignSlug_CategoryCollisions(t *testing.T) {
	taken := map[string]bool{}
	exists := func(_ context.Context, slug string) (bool, error) { return taken[slug], nil }
	ctx := context.Background()

	first := Category{Name: "Men's Shoes"}
	require.NoError(t, assignSlug(ctx, &first.Slug, first.Name, exists))
	taken[first.Slug] = true

	second := Category{Name: "Men's Shoes"}
	require.NoError(t, assignSlug(ctx, &second.Slug, second.Name, exists))

	assert.Equal(t, "mens-shoes", first.Slug)
	assert.Equal(t, "mens-shoes-1", second.Slug)
}

func TestAssignSlug_KeepsExplicitSlug(t *testing.T) {
	b := Brand{Name: "Nike", Slug: "just-do-it"}
	err := assignSlug(context.Background(), &b.Slug, b.Name, func(context.Context, string) (bool, error) {
		t.Fatal("explicit slug must not be checked")
		return false, nil
	})
	require.NoError(t, err)
	require.Equal(t, "just-do-it", b.Slug)
}

func TestOrderItem_TotalOverridesCaller(t *testing.T) {
	item := OrderItem{
		UnitPrice:  decimal.RequireFromString("19.99"),
		Quantity:   3,
		TotalPrice: decimal.NewFromInt(1),
	}
	require.NoError(t, item.BeforeSave(nil))
	require.True(t, item.TotalPrice.Equal(decimal.RequireFromString("59.97")), item.TotalPrice.String())

	item.Quantity = 4
	item.applyTotal()
	require.True(t, item.TotalPrice.Equal(decimal.RequireFromString("79.96")), item.TotalPrice.String())
}

func TestOrder_LineTotals(t *testing.T) {
	o := Order{Items: []OrderItem{
		{TotalPrice: decimal.RequireFromString("59.97")},
		{TotalPrice: decimal.RequireFromString("8.02")},
	}}
	require.True(t, rule.OrderTotal(o.LineTotals()).Equal(decimal.RequireFromString("67.99")))
}

func TestPayment_CheckAmount(t *testing.T) {
	p := Payment{OrderID: uuid.New(), Amount: decimal.RequireFromString("59.97")}

	require.NoError(t, p.checkAmount(decimal.RequireFromString("59.97")))
	require.True(t, rule.IsKind(p.checkAmount(decimal.RequireFromString("60.00")), rule.AmountMismatch))
}

func TestUser_CheckIdentity(t *testing.T) {
	existing := User{BaseModel: BaseModel{ID: uuid.New()}, Email: "a@example.com", Username: "alice"}
	taken := func(_ context.Context, field, value string, excludeID uuid.UUID) (bool, error) {
		if excludeID == existing.ID {
			return false, nil
		}
		switch field {
		case "email":
			return value == existing.Email, nil
		case "username":
			return value == existing.Username, nil
		}
		return false, nil
	}
	ctx := context.Background()

	dupEmail := User{Email: "a@example.com", Username: "bob"}
	err := dupEmail.checkIdentity(ctx, taken)
	ve, ok := rule.AsValidation(err)
	require.True(t, ok)
	require.Equal(t, "email", ve.Field)

	dupName := User{Email: "b@example.com", Username: "alice"}
	ve, ok = rule.AsValidation(dupName.checkIdentity(ctx, taken))
	require.True(t, ok)
	require.Equal(t, "username", ve.Field)

	require.NoError(t, existing.checkIdentity(ctx, taken), "re-saving self passes")
}

func TestUser_Password(t *testing.T) {
	u := User{}
	require.NoError(t, u.SetPassword("s3cret!"))
	require.NotEqual(t, "s3cret!", u.Password)
	require.True(t, u.CheckPassword("s3cret!"))
	require.False(t, u.CheckPassword("wrong"))
}

func TestPromo_Validate(t *testing.T) {
	start := time.Now()
	variant, category := uuid.New(), uuid.New()

	valid := Promo{
		VariantID:     &variant,
		DiscountType:  rule.DiscountPercentage,
		DiscountValue: decimal.NewFromInt(10),
		StartsAt:      start,
		EndsAt:        start.Add(time.Hour),
	}
	require.NoError(t, valid.BeforeSave(nil))

	both := valid
	both.CategoryID = &category
	err := both.BeforeSave(nil)
	require.True(t, rule.IsKind(err, rule.ExclusivityViolation))

	none := valid
	none.VariantID = nil
	require.True(t, rule.IsKind(none.Validate(), rule.ExclusivityViolation))

	backwards := valid
	backwards.EndsAt = start.Add(-time.Hour)
	require.True(t, rule.IsKind(backwards.Validate(), rule.InvalidDiscount))
}

func TestPromo_SetTarget(t *testing.T) {
	id := uuid.New()
	p := Promo{}
	p.SetTarget(rule.PromoTarget{Kind: rule.TargetProduct, ID: id})

	target, err := p.Target()
	require.NoError(t, err)
	require.Equal(t, rule.TargetProduct, target.Kind)
	require.Nil(t, p.VariantID)
	require.Nil(t, p.CategoryID)
}

func TestCoupon_IsValid(t *testing.T) {
	now := time.Now()
	c := Coupon{IsActive: true, ExpiryDate: &now}
	require.False(t, c.IsValid(now))

	later := now.Add(time.Hour)
	c.ExpiryDate = &later
	require.True(t, c.IsValid(now))
}
