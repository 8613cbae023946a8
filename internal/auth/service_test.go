// internal/auth/service_test.go

package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/linkme-app/linkme-backend/internal/otp"
)

type fakeUserRepo struct {
	users  map[int64]*User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*User), nextID: 1}
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user *User) error {
	user.UserID = f.nextID
	user.CreatedAt = time.Now()
	f.nextID++
	f.users[user.UserID] = user
	return nil
}

func (f *fakeUserRepo) GetUserByID(ctx context.Context, userID int64) (*User, error) {
	return f.users[userID], nil
}

func (f *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	for _, u := range f.users {
		if u.Email != nil && *u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetUserByPhone(ctx context.Context, phone string) (*User, error) {
	for _, u := range f.users {
		if u.Phone != nil && *u.Phone == phone {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

// acceptAllCodes treats one fixed code as valid for any recipient.
type acceptAllCodes struct{}

func (acceptAllCodes) Send(ctx context.Context, req *otp.SendCodeRequest) (*otp.SendCodeResponse, error) {
	return &otp.SendCodeResponse{Sent: true}, nil
}

func (acceptAllCodes) Verify(ctx context.Context, recipient string, purpose otp.Purpose, code string) error {
	if code != "123456" {
		return otp.ErrCodeInvalid
	}
	return nil
}

func newTestService(repo Repository) Service {
	return NewService(repo, acceptAllCodes{}, "test-secret", time.Hour, bcrypt.MinCost)
}

func registerRequest() *RegisterRequest {
	email := "alice@example.com"
	return &RegisterRequest{
		Username: "alice",
		Email:    &email,
		Password: "s3cret-pass",
		Code:     "123456",
		Nickname: "Alice",
	}
}

func TestRegister(t *testing.T) {
	t.Run("creates user and issues token", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := newTestService(repo)

		resp, err := svc.Register(context.Background(), registerRequest())
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.True(t, resp.ExpiresAt.After(time.Now()))
		require.NotNil(t, resp.User)
		assert.Equal(t, "alice", resp.User.Username)

		stored := repo.users[resp.User.UserID]
		require.NotNil(t, stored)
		assert.NotEqual(t, "s3cret-pass", stored.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret-pass")))
	})

	t.Run("rejects a bad verification code", func(t *testing.T) {
		svc := newTestService(newFakeUserRepo())
		req := registerRequest()
		req.Code = "999999"

		_, err := svc.Register(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidCode)
	})

	t.Run("rejects duplicate username", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := newTestService(repo)

		_, err := svc.Register(context.Background(), registerRequest())
		require.NoError(t, err)

		dup := registerRequest()
		other := "alice2@example.com"
		dup.Email = &other
		_, err = svc.Register(context.Background(), dup)
		assert.ErrorIs(t, err, ErrUserExists)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := newTestService(repo)

		_, err := svc.Register(context.Background(), registerRequest())
		require.NoError(t, err)

		dup := registerRequest()
		dup.Username = "bob"
		_, err = svc.Register(context.Background(), dup)
		assert.ErrorIs(t, err, ErrUserExists)
	})
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)
	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	t.Run("by email", func(t *testing.T) {
		resp, err := svc.Login(context.Background(), &LoginRequest{
			EmailOrPhone: "alice@example.com",
			Password:     "s3cret-pass",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &LoginRequest{
			EmailOrPhone: "alice@example.com",
			Password:     "nope",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown account", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &LoginRequest{
			EmailOrPhone: "nobody@example.com",
			Password:     "s3cret-pass",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestValidateToken(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)
	resp, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		claims, err := svc.ValidateToken(context.Background(), resp.Token)
		require.NoError(t, err)
		assert.Equal(t, resp.User.UserID, claims.UserID)
		assert.Equal(t, "alice", claims.Username)
	})

	t.Run("tampered token", func(t *testing.T) {
		_, err := svc.ValidateToken(context.Background(), resp.Token+"x")
		assert.Error(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewService(repo, acceptAllCodes{}, "other-secret", time.Hour, bcrypt.MinCost)
		_, err := other.ValidateToken(context.Background(), resp.Token)
		assert.Error(t, err)
	})
}
