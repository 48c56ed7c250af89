package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"user-billing/internal/domain"
	"user-billing/internal/events"
	"user-billing/internal/gateway"
	"user-billing/internal/repository"
)

// Resultados del consumo de user.created.
const (
	StatusCreated = "created"
	StatusIgnored = "ignored"
)

const minUserIDLength = 8

// BillingService consume eventos user.created y mantiene los clientes de
// facturación. El consumo es idempotente: entregas repetidas del mismo
// evento dejan un único cliente almacenado.
type BillingService struct {
	logger    *zap.Logger
	customers repository.CustomerRepository
	gateway   gateway.PaymentGateway
	bus       *events.Bus
}

func NewBillingService(logger *zap.Logger, customers repository.CustomerRepository, gw gateway.PaymentGateway, bus *events.Bus) *BillingService {
	return &BillingService{
		logger:    logger,
		customers: customers,
		gateway:   gw,
		bus:       bus,
	}
}

type UserCreatedInput struct {
	UserID      string
	Email       string
	DisplayName string
}

// HandleUserCreated registra un cliente a partir de un evento user.created.
// Un payload malformado o duplicado se ignora en silencio: el upstream
// entrega al menos una vez y este lado no debe reportar fallas por eso.
func (s *BillingService) HandleUserCreated(ctx context.Context, input UserCreatedInput) (string, error) {
	userID := strings.TrimSpace(input.UserID)
	email := strings.TrimSpace(input.Email)

	if len(userID) < minUserIDLength || !strings.Contains(email, "@") {
		return StatusIgnored, nil
	}

	exists, err := s.customers.ExistsByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if exists {
		return StatusIgnored, nil
	}

	external, err := s.gateway.CreateCustomer(email, input.DisplayName)
	if err != nil {
		return "", err
	}

	customer := domain.Customer{
		CustomerID:       userID,
		Email:            email,
		DisplayName:      input.DisplayName,
		StripeCustomerID: external.ID,
	}

	saved, err := s.customers.Save(ctx, customer)
	if err != nil {
		return "", err
	}

	s.bus.Publish(ctx, events.CustomerCreated, events.CustomerCreatedEvent{
		CustomerID:       saved.CustomerID,
		Email:            saved.Email,
		DisplayName:      saved.DisplayName,
		StripeCustomerID: saved.StripeCustomerID,
	})

	return StatusCreated, nil
}
