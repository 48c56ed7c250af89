package repository

import (
	"context"
	"sync"

	"user-billing/internal/domain"
)

// CustomerRepository define el contrato de persistencia para clientes de facturación.
type CustomerRepository interface {
	ExistsByID(ctx context.Context, customerID string) (bool, error)
	FindByStripeID(ctx context.Context, stripeCustomerID string) (*domain.Customer, error)
	Save(ctx context.Context, customer domain.Customer) (domain.Customer, error)
}

// MemoryCustomerRepository implementa CustomerRepository sobre un mapa en memoria.
type MemoryCustomerRepository struct {
	mu        sync.RWMutex
	customers map[string]domain.Customer
}

func NewMemoryCustomerRepository() *MemoryCustomerRepository {
	return &MemoryCustomerRepository{customers: make(map[string]domain.Customer)}
}

func (r *MemoryCustomerRepository) ExistsByID(_ context.Context, customerID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.customers[customerID]
	return ok, nil
}

// FindByStripeID recorre todos los valores; nil cuando no hay coincidencia.
func (r *MemoryCustomerRepository) FindByStripeID(_ context.Context, stripeCustomerID string) (*domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.customers {
		if c.StripeCustomerID == stripeCustomerID {
			out := c
			return &out, nil
		}
	}
	return nil, nil
}

func (r *MemoryCustomerRepository) Save(_ context.Context, customer domain.Customer) (domain.Customer, error) {
	r.mu.Lock()
	r.customers[customer.CustomerID] = customer
	r.mu.Unlock()
	return customer, nil
}
