package credential

import (
	"context"
	"crypto/sha256"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Service manages credential lifecycle and verification.
type Service struct {
	store Store
}

// NewService creates a credential service over the given store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Register inserts or overwrites the credential for customerID. The stored
// digest is a bcrypt stretch of the salted client hash, so the raw hash never
// sits in the store and an offline sweep of the PIN space stays expensive.
// Authorization is the caller's responsibility.
func (s *Service) Register(ctx context.Context, customerID, pinHash, salt string) error {
	digest, err := stretch(pinHash, salt)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	rec := Record{
		CustomerID: customerID,
		PINDigest:  string(digest),
		Salt:       salt,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return s.store.Put(ctx, rec)
}

// Verify reports whether candidateHash matches the stored credential for
// customerID. An unregistered customer verifies false, not an error.
func (s *Service) Verify(ctx context.Context, customerID, candidateHash string) (bool, error) {
	rec, err := s.store.Get(ctx, customerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	sum := presum(candidateHash, rec.Salt)
	if err := bcrypt.CompareHashAndPassword([]byte(rec.PINDigest), sum); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Registered reports whether a credential exists for customerID.
func (s *Service) Registered(ctx context.Context, customerID string) (bool, error) {
	_, err := s.store.Get(ctx, customerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func stretch(pinHash, salt string) ([]byte, error) {
	return bcrypt.GenerateFromPassword(presum(pinHash, salt), bcrypt.DefaultCost)
}

// presum folds the salted client hash to a fixed 32 bytes: bcrypt caps its
// input at 72 bytes and client hashes plus salt can exceed that.
func presum(pinHash, salt string) []byte {
	sum := sha256.Sum256([]byte(pinHash + salt))
	return sum[:]
}
