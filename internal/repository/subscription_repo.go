package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"user-billing/internal/domain"
)

// SubscriptionRepository define el contrato de persistencia para suscripciones.
// Save reemplaza la suscripción vigente del cliente: un cliente mantiene a lo
// sumo una suscripción actual, sin importar cuántos webhooks lleguen.
type SubscriptionRepository interface {
	FindByCustomerID(ctx context.Context, customerID string) (*domain.Subscription, error)
	Save(ctx context.Context, sub domain.Subscription) (domain.Subscription, error)
}

// MemorySubscriptionRepository implementa SubscriptionRepository sobre mapas en memoria.
type MemorySubscriptionRepository struct {
	mu         sync.RWMutex
	subs       map[string]domain.Subscription
	byCustomer map[string]string
}

func NewMemorySubscriptionRepository() *MemorySubscriptionRepository {
	return &MemorySubscriptionRepository{
		subs:       make(map[string]domain.Subscription),
		byCustomer: make(map[string]string),
	}
}

func (r *MemorySubscriptionRepository) FindByCustomerID(_ context.Context, customerID string) (*domain.Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byCustomer[customerID]
	if !ok {
		return nil, nil
	}
	sub := r.subs[id]
	return &sub, nil
}

func (r *MemorySubscriptionRepository) Save(_ context.Context, sub domain.Subscription) (domain.Subscription, error) {
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.byCustomer[sub.CustomerID]; ok && prev != sub.ID {
		delete(r.subs, prev)
	}
	r.subs[sub.ID] = sub
	r.byCustomer[sub.CustomerID] = sub.ID
	return sub, nil
}
