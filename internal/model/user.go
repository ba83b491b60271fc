package model

import (
	"time"
)

// Member represents a storefront account that owns a cart and a loyalty
// profile.
type Member struct {
	ID        int64     `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	Password  string    `json:"-" db:"password"` // Never expose password
	Email     *string   `json:"email,omitempty" db:"email"`
	FullName  string    `json:"full_name" db:"full_name"`
	Role      string    `json:"role" db:"role"` // member, admin
	Status    string    `json:"status" db:"status"` // active, suspended
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// MemberStatus constants
const (
	MemberStatusActive    = "active"
	MemberStatusSuspended = "suspended"
)

// MemberRole constants
const (
	MemberRoleMember = "member"
	MemberRoleAdmin  = "admin"
)

// LoginRequest is the request body for member login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// MemberResponse is the member shape exposed to the frontend
type MemberResponse struct {
	ID       int64   `json:"id"`
	Username string  `json:"username"`
	Email    *string `json:"email,omitempty"`
	FullName string  `json:"full_name"`
	Role     string  `json:"role"`
}

// ToResponse converts Member to MemberResponse
func (m *Member) ToResponse() MemberResponse {
	return MemberResponse{
		ID:       m.ID,
		Username: m.Username,
		Email:    m.Email,
		FullName: m.FullName,
		Role:     m.Role,
	}
}
