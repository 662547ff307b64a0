package rule

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// TakenFunc reports whether any row other than excludeID already holds value in field.
type TakenFunc func(ctx context.Context, field, value string, excludeID uuid.UUID) (bool, error)

// EnsureUnique fails with UniquenessViolation when another record holds value.
// Comparison is whatever the store does; for users that is case-sensitive equality.
func EnsureUnique(ctx context.Context, field, value string, selfID uuid.UUID, taken TakenFunc) error {
	if value == "" {
		return nil
	}
	exists, err := taken(ctx, field, value, selfID)
	if err != nil {
		return fmt.Errorf("check %s uniqueness: %w", field, err)
	}
	if exists {
		return Duplicate(field)
	}
	return nil
}

// Duplicate is the UniquenessViolation raised for field, shared by the app-level check and
// the translated database constraint error.
func Duplicate(field string) *ValidationError {
	return newError(UniquenessViolation, field, fmt.Sprintf("%s already exists", field))
}
