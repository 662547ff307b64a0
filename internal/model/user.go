package model

import (
	"context"

	"go-commerce-api/internal/rule"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User logs in with email. Email, username and phone are unique.
type User struct {
	BaseModel
	Email        string      `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Username     string      `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	Password     string      `gorm:"type:varchar(255);not null" json:"-"`
	FirstName    string      `gorm:"type:varchar(100)" json:"first_name,omitempty"`
	LastName     string      `gorm:"type:varchar(100)" json:"last_name,omitempty"`
	Phone        *string     `gorm:"type:varchar(14);uniqueIndex" json:"phone,omitempty"`
	Address      string      `gorm:"type:varchar(100)" json:"address,omitempty"`
	RoleID       *uint       `gorm:"index" json:"role_id,omitempty"`
	Role         *Role       `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	IsActive     bool        `gorm:"not null" json:"is_active"`
	Privileges   []Privilege `gorm:"many2many:user_privileges;" json:"privileges,omitempty"`
	TokenVersion string      `gorm:"type:varchar(255);default:''" json:"-"` // For single session enforcement
}

// BeforeSave rejects a duplicate email or username before the unique index does.
func (u *User) BeforeSave(tx *gorm.DB) error {
	return u.checkIdentity(tx.Statement.Context, columnTaken(tx, &User{}))
}

func (u *User) checkIdentity(ctx context.Context, taken rule.TakenFunc) error {
	if err := rule.EnsureUnique(ctx, "email", u.Email, u.ID, taken); err != nil {
		return err
	}
	return rule.EnsureUnique(ctx, "username", u.Username, u.ID, taken)
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

func (u *User) HasPrivilege(code string) bool {
	for _, p := range u.Privileges {
		if p.Code == code {
			return true
		}
	}
	return false
}

func (u *User) GetPrivilegeCodes() []string {
	codes := make([]string, len(u.Privileges))
	for i, p := range u.Privileges {
		codes[i] = p.Code
	}
	return codes
}

// UserResponse is the public representation of a user; it never carries the password.
type UserResponse struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Username string    `json:"username"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:       u.ID,
		Email:    u.Email,
		Username: u.Username,
	}
}
