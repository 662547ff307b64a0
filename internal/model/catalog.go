package model

import (
	"gorm.io/gorm"
)

type Category struct {
	BaseModel
	Name        string    `gorm:"type:varchar(255);not null" json:"name" validate:"required,max=255"`
	Slug        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug" validate:"omitempty,max=255"`
	Description string    `gorm:"type:text" json:"description"`
	Products    []Product `gorm:"many2many:product_categories;" json:"products,omitempty" validate:"-"`
}

// BeforeSave derives the slug from the name when none was given.
func (c *Category) BeforeSave(tx *gorm.DB) error {
	return assignSlug(tx.Statement.Context, &c.Slug, c.Name, slugTaken(tx, &Category{}, c.ID))
}

type Brand struct {
	BaseModel
	Name        string    `gorm:"type:varchar(255);not null" json:"name" validate:"required,max=255"`
	Slug        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug" validate:"omitempty,max=255"`
	Description string    `gorm:"type:text" json:"description"`
	LogoURL     string    `gorm:"type:varchar(512)" json:"logo_url" validate:"omitempty,url"`
	Products    []Product `json:"products,omitempty" validate:"-"`
}

func (b *Brand) BeforeSave(tx *gorm.DB) error {
	return assignSlug(tx.Statement.Context, &b.Slug, b.Name, slugTaken(tx, &Brand{}, b.ID))
}

type Color struct {
	BaseModel
	Name    string `gorm:"type:varchar(50);uniqueIndex;not null" json:"name" validate:"required,max=50"`
	HexCode string `gorm:"type:varchar(7)" json:"hex_code" validate:"omitempty,hexcolor"`
}
