package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// OperatorRole scopes what an operator account may do.
type OperatorRole string

const (
	RoleAdmin   OperatorRole = "ADMIN"
	RoleTeacher OperatorRole = "TEACHER"
)

// Operator is a staff account allowed to edit schedules and toggle overrides.
type Operator struct {
	ID           string       `db:"id" json:"id"`
	Email        string       `db:"email" json:"email"`
	PasswordHash string       `db:"password_hash" json:"-"`
	FullName     string       `db:"full_name" json:"full_name"`
	Role         OperatorRole `db:"role" json:"role"`
	Active       bool         `db:"active" json:"active"`
	LastLogin    *time.Time   `db:"last_login" json:"last_login,omitempty"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at" json:"updated_at"`
}

// JWTClaims carries operator identity inside access tokens.
type JWTClaims struct {
	UserID string       `json:"uid"`
	Email  string       `json:"email"`
	Role   OperatorRole `json:"role"`
	jwt.RegisteredClaims
}
