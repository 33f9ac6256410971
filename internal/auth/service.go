package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/zkpulse/zkpulse/internal/config"
	"github.com/zkpulse/zkpulse/internal/credential"
)

// ErrInvalidCredentials covers both the unregistered-customer and
// mismatched-hash cases. Callers log the distinction; the response body never
// reveals which one occurred.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInvalidToken signals a malformed, forged, or expired token.
var ErrInvalidToken = errors.New("invalid token")

// Service issues and verifies access tokens backed by the credential store.
type Service struct {
	cfg   config.Config
	creds *credential.Service
}

// NewService builds the auth service.
func NewService(cfg config.Config, creds *credential.Service) *Service {
	return &Service{cfg: cfg, creds: creds}
}

// Token is the outcome of a successful login.
type Token struct {
	AccessToken string `json:"token"`
	CustomerID  string `json:"customerId"`
	ExpiresIn   int64  `json:"expiresIn"`
}

// Login verifies the presented PIN hash against the credential store and, on
// success, issues a signed token bound to customerID.
func (s *Service) Login(ctx context.Context, customerID, pinHash string) (Token, error) {
	ok, err := s.creds.Verify(ctx, customerID, pinHash)
	if err != nil {
		return Token{}, err
	}
	if !ok {
		return Token{}, ErrInvalidCredentials
	}

	signed, err := Sign(customerID, []byte(s.cfg.JWTSecret), s.cfg.TokenTTL)
	if err != nil {
		return Token{}, err
	}
	return Token{AccessToken: signed, CustomerID: customerID, ExpiresIn: int64(s.cfg.TokenTTL.Seconds())}, nil
}

// Sign creates an HS256 token whose subject is the customer identifier.
func Sign(customerID string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   customerID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})
	return token.SignedString(secret)
}

// Subject verifies the token signature and expiry and returns the embedded
// customer identifier.
func Subject(tokenString string, secret []byte) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", ErrInvalidToken
	}
	if !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
