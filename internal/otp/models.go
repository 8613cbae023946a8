// internal/otp/models.go

package otp

import "time"

// Purpose is what the verification code authorizes.
type Purpose string

const (
	PurposeRegister      Purpose = "register"
	PurposeResetPassword Purpose = "reset_password"
)

// DeliveryMethod is how the code reaches the user.
type DeliveryMethod string

const (
	DeliveryEmail DeliveryMethod = "email"
	DeliverySMS   DeliveryMethod = "sms"
)

// SendCodeRequest asks for a code to be delivered to an email or phone.
type SendCodeRequest struct {
	Email   string  `json:"email,omitempty" validate:"required_without=Phone,omitempty,email"`
	Phone   string  `json:"phone,omitempty" validate:"required_without=Email,omitempty,e164"`
	Purpose Purpose `json:"purpose" validate:"required,oneof=register reset_password"`
}

// SendCodeResponse reports delivery and when the code lapses.
type SendCodeResponse struct {
	Sent      bool      `json:"sent"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Config tunes code generation.
type Config struct {
	Length      int
	Expiry      time.Duration
	MaxAttempts int
}

// DefaultConfig mirrors the product defaults: 6 digits, 10 minutes,
// 5 attempts.
func DefaultConfig() *Config {
	return &Config{Length: 6, Expiry: 10 * time.Minute, MaxAttempts: 5}
}
