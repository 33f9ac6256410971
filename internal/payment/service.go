package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/zkpulse/zkpulse/internal/metrics"
)

// placeholderProof stands in for a real verification payload until a prover
// exists.
var placeholderProof = []string{"0x1a2b", "0x3c4d", "0x5e6f"}

// Service records and queries verified payments. Ownership checks happen in
// the middleware chain before these methods run.
type Service struct {
	repo Repository
}

// NewService constructs a payment service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// RecordInput captures a payment submission.
type RecordInput struct {
	CustomerID string
	Amount     int64
	Currency   string
	Reference  string
}

// Record stores a verified payment for the customer and returns the stored
// record.
func (s *Service) Record(ctx context.Context, input RecordInput) (Payment, error) {
	if input.Amount <= 0 {
		return Payment{}, fmt.Errorf("amount must be positive")
	}
	if input.Currency == "" {
		input.Currency = "USD"
	}

	p := Payment{
		ID:         ulid.Make().String(),
		CustomerID: input.CustomerID,
		Amount:     input.Amount,
		Currency:   input.Currency,
		Reference:  input.Reference,
		Proof:      placeholderProof,
		VerifiedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Payment{}, err
	}

	metrics.PaymentsRecorded.Inc()
	return p, nil
}

// ListByCustomer returns the customer's payments, most recent first.
func (s *Service) ListByCustomer(ctx context.Context, customerID string) ([]Payment, error) {
	return s.repo.ListByCustomer(ctx, customerID)
}
