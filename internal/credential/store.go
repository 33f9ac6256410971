package credential

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound signals an unregistered customer. Absence is a normal outcome
// for lookups, not a server fault.
var ErrNotFound = errors.New("credential not found")

// Store persists credential records keyed by customer identifier.
type Store interface {
	Put(ctx context.Context, rec Record) error
	Get(ctx context.Context, customerID string) (Record, error)
}

// PostgresStore implements Store using PostgreSQL.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore builds a Postgres-backed credential store.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// Put inserts or overwrites the record for rec.CustomerID.
func (s *PostgresStore) Put(ctx context.Context, rec Record) error {
	_, err := s.db.Exec(ctx, `INSERT INTO credentials (customer_id, pin_digest, salt, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (customer_id) DO UPDATE SET pin_digest = $2, salt = $3, updated_at = $5`,
		rec.CustomerID, rec.PINDigest, rec.Salt, rec.CreatedAt.UTC(), rec.UpdatedAt.UTC())
	return err
}

// Get fetches the record for a customer, or ErrNotFound.
func (s *PostgresStore) Get(ctx context.Context, customerID string) (Record, error) {
	row := s.db.QueryRow(ctx, `SELECT customer_id, pin_digest, salt, created_at, updated_at
        FROM credentials WHERE customer_id = $1`, customerID)
	var (
		rec       Record
		createdAt time.Time
		updatedAt time.Time
	)
	if err := row.Scan(&rec.CustomerID, &rec.PINDigest, &rec.Salt, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	rec.CreatedAt = createdAt.UTC()
	rec.UpdatedAt = updatedAt.UTC()
	return rec, nil
}
