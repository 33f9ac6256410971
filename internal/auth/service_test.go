package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zkpulse/zkpulse/internal/config"
	"github.com/zkpulse/zkpulse/internal/credential"
)

func newTestService(t *testing.T) (*Service, *credential.Service) {
	t.Helper()
	cfg := config.Config{JWTSecret: "test-secret", TokenTTL: time.Hour}
	creds := credential.NewService(credential.NewMemoryStore())
	return NewService(cfg, creds), creds
}

func TestLoginIssuesTokenBoundToCustomer(t *testing.T) {
	svc, creds := newTestService(t)
	ctx := context.Background()

	require.NoError(t, creds.Register(ctx, "alice", "hash-1", "salt-1"))

	token, err := svc.Login(ctx, "alice", "hash-1")
	require.NoError(t, err)
	require.Equal(t, "alice", token.CustomerID)
	require.Equal(t, int64(3600), token.ExpiresIn)

	sub, err := Subject(token.AccessToken, []byte("test-secret"))
	require.NoError(t, err)
	require.Equal(t, "alice", sub)
}

func TestLoginWrongHash(t *testing.T) {
	svc, creds := newTestService(t)
	ctx := context.Background()

	require.NoError(t, creds.Register(ctx, "alice", "hash-1", "salt-1"))

	_, err := svc.Login(ctx, "alice", "wrong-hash")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnregistered(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login(context.Background(), "nobody", "hash-1")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSubjectRejectsTamperedToken(t *testing.T) {
	signed, err := Sign("alice", []byte("test-secret"), time.Hour)
	require.NoError(t, err)

	_, err = Subject(signed, []byte("other-secret"))
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = Subject(signed+"x", []byte("test-secret"))
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = Subject("not-a-token", []byte("test-secret"))
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestSubjectRejectsExpiredToken(t *testing.T) {
	signed, err := Sign("alice", []byte("test-secret"), -time.Minute)
	require.NoError(t, err)

	_, err = Subject(signed, []byte("test-secret"))
	require.ErrorIs(t, err, ErrInvalidToken)
}
