package domain

// Customer refleja un usuario externo dentro del contexto de facturación.
// CustomerID replica el id del usuario que originó la cuenta.
type Customer struct {
	CustomerID       string `json:"customerId"`
	Email            string `json:"email"`
	DisplayName      string `json:"displayName"`
	StripeCustomerID string `json:"stripeCustomerId"`
}
