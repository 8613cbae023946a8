// internal/auth/service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/linkme-app/linkme-backend/internal/common/utils"
	"github.com/linkme-app/linkme-backend/internal/otp"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCode        = errors.New("invalid or expired verification code")
	ErrUserNotFound       = errors.New("user not found")
)

type Service interface {
	Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	ValidateToken(ctx context.Context, token string) (*utils.JWTClaims, error)
	GetUserByID(ctx context.Context, userID int64) (*User, error)
}

type service struct {
	repo        Repository
	codes       otp.Service
	jwtSecret   string
	tokenExpiry time.Duration
	bcryptCost  int
}

func NewService(repo Repository, codes otp.Service, jwtSecret string, tokenExpiry time.Duration, bcryptCost int) Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &service{
		repo:        repo,
		codes:       codes,
		jwtSecret:   jwtSecret,
		tokenExpiry: tokenExpiry,
		bcryptCost:  bcryptCost,
	}
}

func (s *service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	// The verification code must have been delivered to the address being
	// registered.
	recipient := ""
	if req.Email != nil {
		recipient = *req.Email
	} else if req.Phone != nil {
		recipient = *req.Phone
	}
	if err := s.codes.Verify(ctx, recipient, otp.PurposeRegister, req.Code); err != nil {
		if errors.Is(err, otp.ErrCodeInvalid) || errors.Is(err, otp.ErrCodeExpired) {
			return nil, ErrInvalidCode
		}
		return nil, fmt.Errorf("verify code: %w", err)
	}

	if existing, err := s.repo.GetUserByUsername(ctx, req.Username); err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	} else if existing != nil {
		return nil, ErrUserExists
	}
	if req.Email != nil {
		if existing, err := s.repo.GetUserByEmail(ctx, *req.Email); err != nil {
			return nil, fmt.Errorf("check email: %w", err)
		} else if existing != nil {
			return nil, ErrUserExists
		}
	}
	if req.Phone != nil {
		if existing, err := s.repo.GetUserByPhone(ctx, *req.Phone); err != nil {
			return nil, fmt.Errorf("check phone: %w", err)
		} else if existing != nil {
			return nil, ErrUserExists
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &User{
		Username:     req.Username,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		Nickname:     req.Nickname,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.issueToken(user)
}

func (s *service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	user, err := s.repo.GetUserByEmail(ctx, req.EmailOrPhone)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		user, err = s.repo.GetUserByPhone(ctx, req.EmailOrPhone)
		if err != nil {
			return nil, fmt.Errorf("lookup user: %w", err)
		}
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueToken(user)
}

func (s *service) issueToken(user *User) (*AuthResponse, error) {
	now := time.Now()
	expiresAt := now.Add(s.tokenExpiry)

	token, err := utils.GenerateJWT(&utils.JWTClaims{
		UserID:    user.UserID,
		Username:  user.Username,
		ExpiresAt: expiresAt.Unix(),
		IssuedAt:  now.Unix(),
	}, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &AuthResponse{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

func (s *service) ValidateToken(ctx context.Context, token string) (*utils.JWTClaims, error) {
	return utils.ValidateJWT(token, s.jwtSecret)
}

func (s *service) GetUserByID(ctx context.Context, userID int64) (*User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
