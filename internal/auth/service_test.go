package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/meridian-pos/meridian-pos/internal/auth"
	_ "github.com/meridian-pos/meridian-pos/testing"
)

func newTestService(t *testing.T) (*auth.Service, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)

	tokens := auth.NewTokenManager(client, "signing-secret", time.Hour)
	svc := auth.NewService(auth.Credential{
		Username:     "operator",
		PasswordHash: string(hash),
	}, tokens)
	return svc, mr
}

func TestLoginRoundTrip(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	token, err := svc.Login(ctx, "operator", "correct-horse")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	principal, err := svc.Validate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "operator", principal.Username)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, "operator", "wrong")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody", "correct-horse")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestValidateRejectsTamperedToken(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	token, err := svc.Login(ctx, "operator", "correct-horse")
	require.NoError(t, err)

	tampered := token + "x"
	_, err = svc.Validate(ctx, tampered)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = svc.Validate(ctx, "not-a-token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	svc, mr := newTestService(t)
	ctx := context.Background()

	token, err := svc.Login(ctx, "operator", "correct-horse")
	require.NoError(t, err)

	mr.FastForward(2 * time.Hour)

	_, err = svc.Validate(ctx, token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	token, err := svc.Login(ctx, "operator", "correct-horse")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, token))

	_, err = svc.Validate(ctx, token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
