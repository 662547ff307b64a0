package rule

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func idPtr() *uuid.UUID {
	id := uuid.New()
	return &id
}

func TestNewPromoTarget_ExactlyOne(t *testing.T) {
	v, c, p := idPtr(), idPtr(), idPtr()

	for _, tc := range []struct {
		name    string
		v, c, p *uuid.UUID
		kind    PromoTargetKind
	}{
		{"variant", v, nil, nil, TargetVariant},
		{"category", nil, c, nil, TargetCategory},
		{"product", nil, nil, p, TargetProduct},
	} {
		t.Run(tc.name, func(t *testing.T) {
			target, err := NewPromoTarget(tc.v, tc.c, tc.p)
			require.NoError(t, err)
			require.Equal(t, tc.kind, target.Kind)
			require.NoError(t, target.Validate())
		})
	}
}

func TestNewPromoTarget_Rejected(t *testing.T) {
	v, c, p := idPtr(), idPtr(), idPtr()
	nilID := uuid.Nil

	for _, tc := range []struct {
		name    string
		v, c, p *uuid.UUID
	}{
		{"none", nil, nil, nil},
		{"variant and category", v, c, nil},
		{"category and product", nil, c, p},
		{"all three", v, c, p},
		{"nil uuid only", &nilID, nil, nil},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewPromoTarget(tc.v, tc.c, tc.p)
			require.True(t, IsKind(err, ExclusivityViolation))
			require.EqualError(t, err, "Only one of 'variant', 'category', or 'product' must be set.")
		})
	}
}

func TestPromoTarget_Columns(t *testing.T) {
	id := uuid.New()
	v, c, p := PromoTarget{Kind: TargetCategory, ID: id}.Columns()
	assert.Nil(t, v)
	assert.Nil(t, p)
	require.NotNil(t, c)
	assert.Equal(t, id, *c)

	back, err := NewPromoTarget(v, c, p)
	require.NoError(t, err)
	assert.Equal(t, PromoTarget{Kind: TargetCategory, ID: id}, back)
}

func TestPromoTarget_ValidateUnknownKind(t *testing.T) {
	err := PromoTarget{Kind: "brand", ID: uuid.New()}.Validate()
	require.True(t, IsKind(err, ExclusivityViolation))
}

func TestApplyDiscount(t *testing.T) {
	price := decimal.RequireFromString("80.00")

	got := ApplyDiscount(price, DiscountPercentage, decimal.NewFromInt(25))
	assert.True(t, got.Equal(decimal.RequireFromString("60.00")), got.String())

	got = ApplyDiscount(price, DiscountFixed, decimal.RequireFromString("15.50"))
	assert.True(t, got.Equal(decimal.RequireFromString("64.50")), got.String())

	got = ApplyDiscount(price, DiscountFixed, decimal.NewFromInt(100))
	assert.True(t, got.IsZero(), got.String())

	got = ApplyDiscount(decimal.RequireFromString("19.99"), DiscountPercentage, decimal.NewFromInt(15))
	assert.True(t, got.Equal(decimal.RequireFromString("16.99")), got.String())
}

func TestValidateDiscount(t *testing.T) {
	require.NoError(t, ValidateDiscount(DiscountPercentage, decimal.NewFromInt(100)))
	require.NoError(t, ValidateDiscount(DiscountFixed, decimal.NewFromInt(500)))
	require.True(t, IsKind(ValidateDiscount(DiscountPercentage, decimal.NewFromInt(101)), InvalidDiscount))
	require.True(t, IsKind(ValidateDiscount(DiscountFixed, decimal.NewFromInt(-1)), InvalidDiscount))
	require.True(t, IsKind(ValidateDiscount("bogo", decimal.NewFromInt(1)), InvalidDiscount))
}

func TestPromoWindow_Contains(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(72 * time.Hour)
	w := PromoWindow{Start: start, End: end}

	assert.True(t, w.Contains(start))
	assert.True(t, w.Contains(end))
	assert.True(t, w.Contains(start.Add(time.Hour)))
	assert.False(t, w.Contains(start.Add(-time.Second)))
	assert.False(t, w.Contains(end.Add(time.Second)))
}
