package rule

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CheckPaymentAmount rejects a payment whose amount differs from the order total.
func CheckPaymentAmount(amount, orderTotal decimal.Decimal) error {
	if !amount.Equal(orderTotal) {
		return newError(AmountMismatch, "amount",
			fmt.Sprintf("payment amount %s does not match order total %s", amount.StringFixed(2), orderTotal.StringFixed(2)))
	}
	return nil
}
