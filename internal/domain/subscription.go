package domain

import "time"

// SubscriptionActive es el único estado soportado por el modelo actual.
const SubscriptionActive = "active"

type Subscription struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customerId"`
	Status     string    `json:"status"`
	PlanID     string    `json:"planId"`
	ExpiresAt  time.Time `json:"expiresAt"`
}
