package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"user-billing/internal/domain"
	"user-billing/internal/repository"
)

func newSubscriptionService(now time.Time) (*SubscriptionService, *repository.MemoryCustomerRepository, *repository.MemorySubscriptionRepository) {
	customers := repository.NewMemoryCustomerRepository()
	subs := repository.NewMemorySubscriptionRepository()
	svc := NewSubscriptionService(zap.NewNop(), subs, customers)
	svc.now = func() time.Time { return now }
	return svc, customers, subs
}

func storeCustomer(t *testing.T, customers *repository.MemoryCustomerRepository) domain.Customer {
	t.Helper()
	customer := domain.Customer{
		CustomerID:       "11111111",
		Email:            "a@x.com",
		DisplayName:      "A",
		StripeCustomerID: "cus_abc123def456",
	}
	if _, err := customers.Save(context.Background(), customer); err != nil {
		t.Fatalf("expected customer save to succeed, got %v", err)
	}
	return customer
}

func TestSubscriptionServiceGetByUserID_NotFound(t *testing.T) {
	svc, _, _ := newSubscriptionService(time.Now())

	_, err := svc.GetSubscriptionByUserID(context.Background(), "11111111")
	if !errors.Is(err, ErrSubscriptionNotFound) {
		t.Fatalf("expected ErrSubscriptionNotFound, got %v", err)
	}
}

func TestSubscriptionServiceWebhook_ActivatesFor30Days(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	svc, customers, _ := newSubscriptionService(now)
	customer := storeCustomer(t, customers)

	err := svc.HandlePaymentWebhook(context.Background(), WebhookEvent{
		Type: "invoice.payment_succeeded",
		Data: WebhookData{Customer: customer.StripeCustomerID, PlanID: "pro"},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	view, err := svc.GetSubscriptionByUserID(context.Background(), customer.CustomerID)
	if err != nil {
		t.Fatalf("expected subscription after webhook, got %v", err)
	}
	if view.Status != domain.SubscriptionActive {
		t.Fatalf("expected active status, got %s", view.Status)
	}
	if view.PlanID != "pro" {
		t.Fatalf("expected plan pro, got %s", view.PlanID)
	}
	if !view.ExpiresAt.Equal(now.Add(30 * 24 * time.Hour)) {
		t.Fatalf("expected expiry exactly 30 days ahead, got %v", view.ExpiresAt)
	}
	if view.CustomerID != customer.CustomerID {
		t.Fatalf("expected customer id %s, got %s", customer.CustomerID, view.CustomerID)
	}
}

func TestSubscriptionServiceWebhook_DefaultPlan(t *testing.T) {
	svc, customers, _ := newSubscriptionService(time.Now())
	customer := storeCustomer(t, customers)

	err := svc.HandlePaymentWebhook(context.Background(), WebhookEvent{
		Type: "invoice.payment_succeeded",
		Data: WebhookData{Customer: customer.StripeCustomerID},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	view, err := svc.GetSubscriptionByUserID(context.Background(), customer.CustomerID)
	if err != nil {
		t.Fatalf("expected subscription after webhook, got %v", err)
	}
	if view.PlanID != "basic" {
		t.Fatalf("expected default plan basic, got %s", view.PlanID)
	}
}

func TestSubscriptionServiceWebhook_UnknownTypeIsNoop(t *testing.T) {
	svc, customers, _ := newSubscriptionService(time.Now())
	customer := storeCustomer(t, customers)

	err := svc.HandlePaymentWebhook(context.Background(), WebhookEvent{
		Type: "invoice.payment_failed",
		Data: WebhookData{Customer: customer.StripeCustomerID},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, err := svc.GetSubscriptionByUserID(context.Background(), customer.CustomerID); !errors.Is(err, ErrSubscriptionNotFound) {
		t.Fatalf("expected no subscription created, got %v", err)
	}
}

func TestSubscriptionServiceWebhook_UnknownCustomerIsNoop(t *testing.T) {
	svc, _, _ := newSubscriptionService(time.Now())

	err := svc.HandlePaymentWebhook(context.Background(), WebhookEvent{
		Type: "invoice.payment_succeeded",
		Data: WebhookData{Customer: "cus_unknown00000"},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestSubscriptionServiceWebhook_RepeatedReplacesSubscription(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	svc, customers, subs := newSubscriptionService(now)
	customer := storeCustomer(t, customers)

	evt := WebhookEvent{
		Type: "invoice.payment_succeeded",
		Data: WebhookData{Customer: customer.StripeCustomerID, PlanID: "pro"},
	}
	if err := svc.HandlePaymentWebhook(context.Background(), evt); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := svc.HandlePaymentWebhook(context.Background(), evt); err != nil {
		t.Fatalf("expected no error on redelivery, got %v", err)
	}

	current, err := subs.FindByCustomerID(context.Background(), customer.CustomerID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if current == nil {
		t.Fatalf("expected a current subscription")
	}
}
