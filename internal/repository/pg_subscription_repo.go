package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"user-billing/internal/domain"
)

// PgSubscriptionRepository implementa SubscriptionRepository usando pgxpool.
type PgSubscriptionRepository struct {
	pool *pgxpool.Pool
}

func NewPgSubscriptionRepository(pool *pgxpool.Pool) *PgSubscriptionRepository {
	return &PgSubscriptionRepository{pool: pool}
}

func (r *PgSubscriptionRepository) FindByCustomerID(ctx context.Context, customerID string) (*domain.Subscription, error) {
	const query = `
		SELECT id, customer_id, status, plan_id, expires_at
		FROM subscriptions
		WHERE customer_id = $1
	`
	var s domain.Subscription
	err := r.pool.QueryRow(ctx, query, customerID).Scan(
		&s.ID,
		&s.CustomerID,
		&s.Status,
		&s.PlanID,
		&s.ExpiresAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Save inserta o reemplaza la suscripción vigente del cliente.
func (r *PgSubscriptionRepository) Save(ctx context.Context, sub domain.Subscription) (domain.Subscription, error) {
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	const query = `
		INSERT INTO subscriptions (id, customer_id, status, plan_id, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (customer_id) DO UPDATE
		SET id = EXCLUDED.id,
		    status = EXCLUDED.status,
		    plan_id = EXCLUDED.plan_id,
		    expires_at = EXCLUDED.expires_at
	`
	_, err := r.pool.Exec(ctx, query,
		sub.ID,
		sub.CustomerID,
		sub.Status,
		sub.PlanID,
		sub.ExpiresAt,
	)
	if err != nil {
		return domain.Subscription{}, err
	}
	return sub, nil
}
