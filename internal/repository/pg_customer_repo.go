package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"user-billing/internal/domain"
)

// PgCustomerRepository implementa CustomerRepository usando pgxpool.
type PgCustomerRepository struct {
	pool *pgxpool.Pool
}

func NewPgCustomerRepository(pool *pgxpool.Pool) *PgCustomerRepository {
	return &PgCustomerRepository{pool: pool}
}

func (r *PgCustomerRepository) ExistsByID(ctx context.Context, customerID string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM customers WHERE customer_id = $1
		)
	`
	var exists bool
	err := r.pool.QueryRow(ctx, query, customerID).Scan(&exists)
	return exists, err
}

func (r *PgCustomerRepository) FindByStripeID(ctx context.Context, stripeCustomerID string) (*domain.Customer, error) {
	const query = `
		SELECT customer_id, email, display_name, stripe_customer_id
		FROM customers
		WHERE stripe_customer_id = $1
	`
	var c domain.Customer
	err := r.pool.QueryRow(ctx, query, stripeCustomerID).Scan(
		&c.CustomerID,
		&c.Email,
		&c.DisplayName,
		&c.StripeCustomerID,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PgCustomerRepository) Save(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	const query = `
		INSERT INTO customers (customer_id, email, display_name, stripe_customer_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (customer_id) DO NOTHING
	`
	_, err := r.pool.Exec(ctx, query,
		customer.CustomerID,
		customer.Email,
		customer.DisplayName,
		customer.StripeCustomerID,
	)
	if err != nil {
		return domain.Customer{}, err
	}
	return customer, nil
}
