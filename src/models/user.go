package models

import "time"

// User บัญชีเจ้าของฟอร์ม
type User struct {
	ID        string    `bson:"_id" json:"id"`
	Email     string    `bson:"email" json:"email"`
	Password  string    `bson:"password,omitempty" json:"-"` // bcrypt hash, never sent back
	Name      string    `bson:"name" json:"name"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// Principal is the authenticated caller of an owner-scoped operation.
// Handlers build it from the verified JWT and pass it down explicitly.
type Principal struct {
	UserID string
	Email  string
}

func (p Principal) Authenticated() bool {
	return p.UserID != ""
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"max=120"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
