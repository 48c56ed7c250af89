package gateway

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Customer es la referencia mínima que devuelve el proveedor de pagos.
type Customer struct {
	ID string
}

// PaymentGateway abstrae el alta de clientes en el proveedor externo.
type PaymentGateway interface {
	CreateCustomer(email, displayName string) (Customer, error)
}

// StripeStub deriva ids de cliente de forma determinista a partir de
// email y displayName, para que las pruebas sean reproducibles sin llamar
// a un proveedor real.
type StripeStub struct{}

func NewStripeStub() *StripeStub {
	return &StripeStub{}
}

func (s *StripeStub) CreateCustomer(email, displayName string) (Customer, error) {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s", email, displayName)))
	return Customer{ID: "cus_" + hex.EncodeToString(sum[:])[:12]}, nil
}
