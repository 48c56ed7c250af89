package repository

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"user-billing/internal/domain"
)

// UserRepository define el contrato de persistencia para usuarios.
// La ausencia nunca se reporta como error; Save asigna id si falta.
type UserRepository interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Save(ctx context.Context, user domain.User) (domain.User, error)
}

// MemoryUserRepository implementa UserRepository sobre un mapa en memoria.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]domain.User)}
}

// ExistsByEmail recorre todos los valores; la comparación ignora mayúsculas.
func (r *MemoryUserRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	needle := strings.ToLower(email)
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if strings.ToLower(u.Email) == needle {
			return true, nil
		}
	}
	return false, nil
}

// Save guarda una copia del valor y la devuelve con id asignado.
func (r *MemoryUserRepository) Save(_ context.Context, user domain.User) (domain.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	r.mu.Lock()
	r.users[user.ID] = user
	r.mu.Unlock()
	return user, nil
}
