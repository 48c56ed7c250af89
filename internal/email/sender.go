package email

import "context"

// Sender define la interfaz para envío de correos de bienvenida.
type Sender interface {
	SendWelcome(ctx context.Context, toEmail string, displayName string) error
}

// disabledSender descarta los envíos sin reportar error: sin SMTP
// configurado, el alta de usuarios no debe generar fallas de entrega.
type disabledSender struct{}

func NewDisabledSender() Sender {
	return &disabledSender{}
}

func (s *disabledSender) SendWelcome(_ context.Context, _ string, _ string) error {
	return nil
}
