package events

// Nombres de eventos publicados en el bus.
const (
	UserCreated     = "user.created"
	CustomerCreated = "customer.created"
)

// Nombre del stream usado por el relay de Redis.
const UserEventsStream = "user.events"

// UserCreatedEvent se publica cuando el alta de un usuario fue persistida.
type UserCreatedEvent struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// CustomerCreatedEvent se publica cuando facturación registra un cliente nuevo.
type CustomerCreatedEvent struct {
	CustomerID       string `json:"customerId"`
	Email            string `json:"email"`
	DisplayName      string `json:"displayName"`
	StripeCustomerID string `json:"stripeCustomerId"`
}
