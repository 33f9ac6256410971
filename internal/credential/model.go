package credential

import "time"

// Record is the stored credential for one customer. PINDigest is a bcrypt
// digest derived from the client-submitted PIN hash and the stored salt; the
// raw client hash is never persisted.
type Record struct {
	CustomerID string
	PINDigest  string
	Salt       string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
