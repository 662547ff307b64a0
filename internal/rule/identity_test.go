package rule

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type row struct {
	id    uuid.UUID
	email string
}

func takenIn(rows []row) TakenFunc {
	return func(_ context.Context, field, value string, excludeID uuid.UUID) (bool, error) {
		if field != "email" {
			return false, fmt.Errorf("unexpected field %s", field)
		}
		for _, r := range rows {
			if r.id != excludeID && r.email == value {
				return true, nil
			}
		}
		return false, nil
	}
}

func TestEnsureUnique(t *testing.T) {
	alice := row{id: uuid.New(), email: "alice@example.com"}
	taken := takenIn([]row{alice})
	ctx := context.Background()

	err := EnsureUnique(ctx, "email", "alice@example.com", uuid.New(), taken)
	require.True(t, IsKind(err, UniquenessViolation))
	require.EqualError(t, err, "email already exists")

	require.NoError(t, EnsureUnique(ctx, "email", "alice@example.com", alice.id, taken), "self is excluded")
	require.NoError(t, EnsureUnique(ctx, "email", "Alice@example.com", uuid.New(), taken), "comparison is case-sensitive")
	require.NoError(t, EnsureUnique(ctx, "email", "bob@example.com", uuid.New(), taken))
}

func TestCheckPaymentAmount(t *testing.T) {
	total := decimal.RequireFromString("59.97")

	require.NoError(t, CheckPaymentAmount(decimal.RequireFromString("59.970"), total))

	err := CheckPaymentAmount(decimal.RequireFromString("59.96"), total)
	require.True(t, IsKind(err, AmountMismatch))
	require.EqualError(t, err, "payment amount 59.96 does not match order total 59.97")
}

func TestAsValidation_Wrapped(t *testing.T) {
	err := fmt.Errorf("save user: %w", Duplicate("username"))
	ve, ok := AsValidation(err)
	require.True(t, ok)
	require.Equal(t, "username", ve.Field)
	require.Equal(t, UniquenessViolation, ve.Kind)

	_, ok = AsValidation(fmt.Errorf("plain"))
	require.False(t, ok)
}
