package model

import (
	"context"
	"time"

	"go-commerce-api/internal/rule"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BaseModel handles ID (UUID) and standard Audit Trails
type BaseModel struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key;" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CreatedBy string `json:"created_by,omitempty"`
	UpdatedBy string `json:"updated_by,omitempty"`
	DeletedBy string `json:"-"`
}

// BeforeCreate generates the UUID unless the caller already set one.
func (base *BaseModel) BeforeCreate(tx *gorm.DB) (err error) {
	if base.ID == uuid.Nil {
		base.ID = uuid.New()
	}
	return
}

// Stamp sets the audit columns for a write made by actorID.
func (base *BaseModel) Stamp(actorID string) {
	if base.CreatedBy == "" {
		base.CreatedBy = actorID
	}
	base.UpdatedBy = actorID
}

// hookDB returns a fresh session on the hook's connection (and transaction) so lookups made
// inside a hook do not inherit the statement being saved. NewDB and Context must be set in
// one Session call: a chained WithContext clones the saved statement back in.
func hookDB(ctx context.Context, tx *gorm.DB) *gorm.DB {
	return tx.Session(&gorm.Session{NewDB: true, Context: ctx})
}

// columnTaken builds a uniqueness lookup on table. Soft-deleted rows count: they still hold
// the unique index.
func columnTaken(tx *gorm.DB, table any) rule.TakenFunc {
	return func(ctx context.Context, field, value string, excludeID uuid.UUID) (bool, error) {
		var count int64
		q := hookDB(ctx, tx).Unscoped().Model(table).
			Where(clause.Eq{Column: clause.Column{Name: field}, Value: value})
		if excludeID != uuid.Nil {
			q = q.Where("id <> ?", excludeID)
		}
		if err := q.Count(&count).Error; err != nil {
			return false, err
		}
		return count > 0, nil
	}
}

func slugTaken(tx *gorm.DB, table any, selfID uuid.UUID) rule.SlugExistsFunc {
	taken := columnTaken(tx, table)
	return func(ctx context.Context, slug string) (bool, error) {
		return taken(ctx, "slug", slug, selfID)
	}
}

// assignSlug fills an empty slug from name. An explicit slug is left untouched.
func assignSlug(ctx context.Context, slug *string, name string, exists rule.SlugExistsFunc) error {
	if *slug != "" {
		return nil
	}
	s, err := rule.UniqueSlug(ctx, name, exists)
	if err != nil {
		return err
	}
	*slug = s
	return nil
}

// All lists every persisted model in migration order.
func All() []any {
	return []any{
		&Privilege{}, &Role{}, &User{},
		&Category{}, &Brand{}, &Color{},
		&Product{}, &Variant{}, &Image{},
		&Promo{}, &Coupon{},
		&Order{}, &OrderItem{}, &Payment{},
	}
}
