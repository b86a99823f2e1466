package model

import (
	"strings"
	"time"
)

// Role is the access level of an account.
type Role string

const (
	RoleAdmin          Role = "admin"
	RoleRepresentative Role = "representative"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleRepresentative
}

// User is an account able to sign in. Representatives own one team; admins run tournaments.
type User struct {
	ID             string    `gorm:"primaryKey;column:id;type:varchar(36)"                  json:"id"`
	Email          string    `gorm:"column:email;type:varchar(255);not null;uniqueIndex"     json:"email"`
	PasswordHash   string    `gorm:"column:password_hash;type:varchar(255);not null"         json:"-"`
	Role           Role      `gorm:"column:role;type:varchar(32);not null"                   json:"role"`
	Country        string    `gorm:"column:country;type:varchar(255)"                        json:"country,omitempty"`
	Manager        string    `gorm:"column:manager;type:varchar(255)"                        json:"manager,omitempty"`
	FederationName string    `gorm:"column:federation_name;type:varchar(255)"                json:"federation_name,omitempty"`
	CreatedAt      time.Time `gorm:"column:created_at;not null"                              json:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at;not null"                              json:"-"`
}

// TableName specifies the table name for GORM.
func (User) TableName() string {
	return "users"
}

// NormalizeEmail lowercases and trims an address so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Claims identifies the caller behind a verified token.
type Claims struct {
	UserID string
	Role   Role
}
