package repository

import (
	"errors"

	"go-commerce-api/internal/rule"

	"gorm.io/gorm"
)

// Pagination is a limit/offset window for list queries.
type Pagination struct {
	Limit  int
	Offset int
}

func (p Pagination) apply(db *gorm.DB) *gorm.DB {
	if p.Limit > 0 {
		db = db.Limit(p.Limit)
	}
	if p.Offset > 0 {
		db = db.Offset(p.Offset)
	}
	return db
}

// uniqueOr maps a unique index violation to the application-level uniqueness error for
// field, so both enforcement layers look the same to callers.
func uniqueOr(err error, field string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return rule.Duplicate(field)
	}
	return err
}
