// internal/otp/service_test.go

package otp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	saved map[string]string // key -> code
}

func newFakeStore() *fakeStore {
	return &fakeStore{saved: make(map[string]string)}
}

func (f *fakeStore) key(recipient string, purpose Purpose) string {
	return string(purpose) + ":" + recipient
}

func (f *fakeStore) Save(ctx context.Context, recipient string, purpose Purpose, code string, ttl time.Duration) error {
	f.saved[f.key(recipient, purpose)] = code
	return nil
}

func (f *fakeStore) Consume(ctx context.Context, recipient string, purpose Purpose, code string) error {
	stored, ok := f.saved[f.key(recipient, purpose)]
	if !ok {
		return ErrCodeExpired
	}
	if stored != code {
		return ErrCodeInvalid
	}
	delete(f.saved, f.key(recipient, purpose))
	return nil
}

type recordingProvider struct {
	to   string
	code string
}

func (r *recordingProvider) SendCode(ctx context.Context, to, code string, purpose Purpose) error {
	r.to = to
	r.code = code
	return nil
}

func TestSendCodeByEmail(t *testing.T) {
	store := newFakeStore()
	email := &recordingProvider{}
	sms := &recordingProvider{}
	svc := NewService(store, email, sms, nil)

	resp, err := svc.Send(context.Background(), &SendCodeRequest{
		Email:   "a@example.com",
		Purpose: PurposeRegister,
	})
	require.NoError(t, err)
	assert.True(t, resp.Sent)
	assert.True(t, resp.ExpiresAt.After(time.Now()))

	assert.Equal(t, "a@example.com", email.to)
	assert.Len(t, email.code, 6)
	assert.Empty(t, sms.to)
	assert.Equal(t, email.code, store.saved["register:a@example.com"])
}

func TestSendCodeBySMS(t *testing.T) {
	store := newFakeStore()
	email := &recordingProvider{}
	sms := &recordingProvider{}
	svc := NewService(store, email, sms, &Config{Length: 4, Expiry: time.Minute, MaxAttempts: 3})

	_, err := svc.Send(context.Background(), &SendCodeRequest{
		Phone:   "+14155550100",
		Purpose: PurposeResetPassword,
	})
	require.NoError(t, err)

	assert.Equal(t, "+14155550100", sms.to)
	assert.Len(t, sms.code, 4)
	assert.Empty(t, email.to)
}

func TestVerifyConsumesCode(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, &recordingProvider{}, &recordingProvider{}, nil)
	ctx := context.Background()

	email := &recordingProvider{}
	full := NewService(store, email, &recordingProvider{}, nil)
	_, err := full.Send(ctx, &SendCodeRequest{Email: "a@example.com", Purpose: PurposeRegister})
	require.NoError(t, err)

	t.Run("wrong code", func(t *testing.T) {
		err := svc.Verify(ctx, "a@example.com", PurposeRegister, "000000x")
		assert.ErrorIs(t, err, ErrCodeInvalid)
	})

	t.Run("right code succeeds once", func(t *testing.T) {
		require.NoError(t, svc.Verify(ctx, "a@example.com", PurposeRegister, email.code))
		assert.ErrorIs(t, svc.Verify(ctx, "a@example.com", PurposeRegister, email.code), ErrCodeExpired)
	})

	t.Run("never requested", func(t *testing.T) {
		assert.ErrorIs(t, svc.Verify(ctx, "nobody@example.com", PurposeRegister, "123456"), ErrCodeExpired)
	})
}

func TestGenerateCode(t *testing.T) {
	for i := 0; i < 20; i++ {
		code, err := generateCode(6)
		require.NoError(t, err)
		require.Len(t, code, 6)
		for _, c := range code {
			assert.True(t, c >= '0' && c <= '9')
		}
	}
}
