package payment

import "time"

// Payment is a mock "verified" payment record scoped to one customer. Proof
// is a placeholder payload standing in for a real proof object; no circuit
// backs it.
type Payment struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customerId"`
	Amount     int64     `json:"amount"`
	Currency   string    `json:"currency"`
	Reference  string    `json:"reference,omitempty"`
	Proof      []string  `json:"proof"`
	VerifiedAt time.Time `json:"verifiedAt"`
}
