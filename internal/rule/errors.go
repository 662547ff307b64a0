package rule

import "errors"

// Kind classifies a rejected write.
type Kind string

const (
	UniquenessViolation  Kind = "uniqueness_violation"
	ExclusivityViolation Kind = "exclusivity_violation"
	AmountMismatch       Kind = "amount_mismatch"
	InvalidQuantity      Kind = "invalid_quantity"
	InvalidDiscount      Kind = "invalid_discount"
	CouponUnavailable    Kind = "coupon_unavailable"
)

// ValidationError aborts the write it was raised for. Message is safe to show to API clients.
type ValidationError struct {
	Kind    Kind
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newError(kind Kind, field, msg string) *ValidationError {
	return &ValidationError{Kind: kind, Field: field, Message: msg}
}

// AsValidation unwraps err into a *ValidationError if it carries one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// IsKind reports whether err carries a ValidationError of the given kind.
func IsKind(err error, kind Kind) bool {
	ve, ok := AsValidation(err)
	return ok && ve.Kind == kind
}
