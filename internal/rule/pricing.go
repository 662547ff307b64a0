package rule

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// QuantityPolicy decides which order item quantities are accepted.
type QuantityPolicy string

const (
	QuantityPositive    QuantityPolicy = "positive"
	QuantityNonNegative QuantityPolicy = "non_negative"
	QuantityAny         QuantityPolicy = "any"
)

// ParseQuantityPolicy maps a config value to a policy. Empty means QuantityPositive.
func ParseQuantityPolicy(s string) (QuantityPolicy, error) {
	switch QuantityPolicy(s) {
	case "", QuantityPositive:
		return QuantityPositive, nil
	case QuantityNonNegative, QuantityAny:
		return QuantityPolicy(s), nil
	}
	return "", fmt.Errorf("unknown quantity policy %q", s)
}

// CheckQuantity rejects quantities the policy does not allow.
func CheckQuantity(quantity int, policy QuantityPolicy) error {
	switch policy {
	case QuantityAny:
		return nil
	case QuantityNonNegative:
		if quantity < 0 {
			return newError(InvalidQuantity, "quantity", "quantity cannot be negative")
		}
		return nil
	default:
		if quantity < 1 {
			return newError(InvalidQuantity, "quantity", "quantity must be at least 1")
		}
		return nil
	}
}

// LineTotal is unitPrice × quantity.
func LineTotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// OrderTotal sums the given line totals.
func OrderTotal(lineTotals []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, t := range lineTotals {
		total = total.Add(t)
	}
	return total
}
