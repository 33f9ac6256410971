package payment

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists payment records.
type Repository interface {
	Create(ctx context.Context, p Payment) error
	ListByCustomer(ctx context.Context, customerID string) ([]Payment, error)
}

// PostgresRepository stores payments in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a payment record.
func (r *PostgresRepository) Create(ctx context.Context, p Payment) error {
	_, err := r.db.Exec(ctx, `INSERT INTO payments (id, customer_id, amount, currency, reference, proof, verified_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.CustomerID, p.Amount, p.Currency, p.Reference, p.Proof, p.VerifiedAt.UTC())
	return err
}

// ListByCustomer fetches the customer's payments, most recent first.
func (r *PostgresRepository) ListByCustomer(ctx context.Context, customerID string) ([]Payment, error) {
	rows, err := r.db.Query(ctx, `SELECT id, customer_id, amount, currency, reference, proof, verified_at
        FROM payments WHERE customer_id = $1 ORDER BY id DESC`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []Payment
	for rows.Next() {
		var (
			p          Payment
			verifiedAt time.Time
		)
		if err := rows.Scan(&p.ID, &p.CustomerID, &p.Amount, &p.Currency, &p.Reference, &p.Proof, &verifiedAt); err != nil {
			return nil, err
		}
		p.VerifiedAt = verifiedAt.UTC()
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
