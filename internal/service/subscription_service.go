package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"user-billing/internal/domain"
	"user-billing/internal/repository"
)

var ErrSubscriptionNotFound = errors.New("subscription not found for user")

const (
	webhookInvoicePaid = "invoice.payment_succeeded"
	defaultPlanID      = "basic"
	subscriptionTTL    = 30 * 24 * time.Hour
)

// WebhookEvent es el payload mínimo que se espera del proveedor de pagos.
type WebhookEvent struct {
	Type string      `json:"type"`
	Data WebhookData `json:"data"`
}

type WebhookData struct {
	Customer string `json:"customer"`
	PlanID   string `json:"planId"`
}

// SubscriptionView es el DTO de respuesta para consultas de suscripción.
type SubscriptionView struct {
	CustomerID string    `json:"customerId"`
	Status     string    `json:"status"`
	PlanID     string    `json:"planId"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

// SubscriptionService resuelve consultas de suscripción y procesa webhooks
// de pago del proveedor externo.
type SubscriptionService struct {
	logger    *zap.Logger
	subs      repository.SubscriptionRepository
	customers repository.CustomerRepository
	now       func() time.Time
}

func NewSubscriptionService(logger *zap.Logger, subs repository.SubscriptionRepository, customers repository.CustomerRepository) *SubscriptionService {
	return &SubscriptionService{
		logger:    logger,
		subs:      subs,
		customers: customers,
		now:       time.Now,
	}
}

// GetSubscriptionByUserID busca la suscripción vigente del cliente.
func (s *SubscriptionService) GetSubscriptionByUserID(ctx context.Context, userID string) (SubscriptionView, error) {
	sub, err := s.subs.FindByCustomerID(ctx, userID)
	if err != nil {
		return SubscriptionView{}, err
	}
	if sub == nil {
		return SubscriptionView{}, ErrSubscriptionNotFound
	}
	return SubscriptionView{
		CustomerID: sub.CustomerID,
		Status:     sub.Status,
		PlanID:     sub.PlanID,
		ExpiresAt:  sub.ExpiresAt,
	}, nil
}

// HandlePaymentWebhook procesa invoice.payment_succeeded creando o
// reemplazando la suscripción del cliente por 30 días. Cualquier otro tipo,
// o un cliente desconocido, se ignora: el webhook siempre se reconoce.
func (s *SubscriptionService) HandlePaymentWebhook(ctx context.Context, evt WebhookEvent) error {
	if evt.Type != webhookInvoicePaid {
		return nil
	}
	if evt.Data.Customer == "" {
		return nil
	}

	customer, err := s.customers.FindByStripeID(ctx, evt.Data.Customer)
	if err != nil {
		return err
	}
	if customer == nil {
		return nil
	}

	planID := evt.Data.PlanID
	if planID == "" {
		planID = defaultPlanID
	}

	sub := domain.Subscription{
		CustomerID: customer.CustomerID,
		Status:     domain.SubscriptionActive,
		PlanID:     planID,
		ExpiresAt:  s.now().UTC().Add(subscriptionTTL),
	}

	if _, err := s.subs.Save(ctx, sub); err != nil {
		return err
	}

	s.logger.Info("subscription activated",
		zap.String("customer_id", sub.CustomerID),
		zap.String("plan_id", sub.PlanID),
	)
	return nil
}
