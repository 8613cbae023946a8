// internal/auth/models.go

package auth

import "time"

// User is an account row. PasswordHash never leaves this package;
// profile-facing reads go through internal/profile.
type User struct {
	UserID       int64      `json:"user_id" db:"user_id"`
	Username     string     `json:"username" db:"username"`
	Email        *string    `json:"email,omitempty" db:"email"`
	Phone        *string    `json:"phone,omitempty" db:"phone"`
	PasswordHash string     `json:"-" db:"password_hash"`
	Nickname     string     `json:"nickname" db:"nickname"`
	Gender       *string    `json:"gender,omitempty" db:"gender"`
	Birthday     *time.Time `json:"birthday,omitempty" db:"birthday"`
	Region       *string    `json:"region,omitempty" db:"region"`
	AvatarURL    *string    `json:"avatar_url,omitempty" db:"avatar_url"`
	Bio          *string    `json:"bio,omitempty" db:"bio"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
}

// RegisterRequest creates an account with either email or phone plus a
// verification code previously delivered to that address.
type RegisterRequest struct {
	Username string  `json:"username" validate:"required,min=3,max=30,alphanum"`
	Email    *string `json:"email,omitempty" validate:"required_without=Phone,omitempty,email"`
	Phone    *string `json:"phone,omitempty" validate:"required_without=Email,omitempty,e164"`
	Password string  `json:"password" validate:"required,min=8,max=100"`
	Code     string  `json:"code" validate:"required,len=6,numeric"`
	Nickname string  `json:"nickname" validate:"required,min=1,max=50"`
}

// LoginRequest accepts either the email or the phone as identifier.
type LoginRequest struct {
	EmailOrPhone string `json:"email_or_phone" validate:"required"`
	Password     string `json:"password" validate:"required"`
}

// AuthResponse is returned on successful register/login.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      *User     `json:"user"`
}
