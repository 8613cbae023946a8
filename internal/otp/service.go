// internal/otp/service.go

package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"
)

var (
	ErrCodeExpired = errors.New("verification code expired or not requested")
	ErrCodeInvalid = errors.New("invalid verification code")
)

type Service interface {
	Send(ctx context.Context, req *SendCodeRequest) (*SendCodeResponse, error)
	Verify(ctx context.Context, recipient string, purpose Purpose, code string) error
}

type service struct {
	store  Store
	email  EmailProvider
	sms    SMSProvider
	config *Config
}

func NewService(store Store, email EmailProvider, sms SMSProvider, config *Config) Service {
	if config == nil {
		config = DefaultConfig()
	}
	return &service{store: store, email: email, sms: sms, config: config}
}

func (s *service) Send(ctx context.Context, req *SendCodeRequest) (*SendCodeResponse, error) {
	code, err := generateCode(s.config.Length)
	if err != nil {
		return nil, fmt.Errorf("generate code: %w", err)
	}

	recipient := req.Email
	method := DeliveryEmail
	if recipient == "" {
		recipient = req.Phone
		method = DeliverySMS
	}

	if err := s.store.Save(ctx, recipient, req.Purpose, code, s.config.Expiry); err != nil {
		return nil, err
	}

	switch method {
	case DeliveryEmail:
		err = s.email.SendCode(ctx, recipient, code, req.Purpose)
	case DeliverySMS:
		err = s.sms.SendCode(ctx, recipient, code, req.Purpose)
	}
	if err != nil {
		return nil, fmt.Errorf("deliver code: %w", err)
	}

	return &SendCodeResponse{Sent: true, ExpiresAt: time.Now().Add(s.config.Expiry)}, nil
}

func (s *service) Verify(ctx context.Context, recipient string, purpose Purpose, code string) error {
	return s.store.Consume(ctx, recipient, purpose, code)
}

// generateCode builds an n-digit numeric code from crypto/rand.
func generateCode(length int) (string, error) {
	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}
