package events

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// Handler procesa un payload entregado por el bus.
type Handler func(ctx context.Context, payload any) error

// DeadLetter registra una entrega que el handler no pudo procesar.
type DeadLetter struct {
	EventName string
	Payload   any
	Err       error
}

type subscription struct {
	id      int
	handler Handler
}

// Bus es un pub/sub síncrono en proceso. Publish entrega a cada handler en
// orden de registro; un handler que falla no corta la entrega al resto ni
// propaga el error al publicador: la falla se registra y queda disponible en
// el canal de dead letters.
type Bus struct {
	logger *zap.Logger

	mu       sync.RWMutex
	nextID   int
	handlers map[string][]subscription

	deadLetters chan DeadLetter
	dropped     atomic.Int64
}

const deadLetterBuffer = 64

func NewBus(logger *zap.Logger) *Bus {
	return &Bus{
		logger:      logger,
		handlers:    make(map[string][]subscription),
		deadLetters: make(chan DeadLetter, deadLetterBuffer),
	}
}

// Subscribe registra un handler y devuelve la función que lo elimina.
func (b *Bus) Subscribe(eventName string, handler Handler) func() {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.handlers[eventName] = append(b.handlers[eventName], subscription{id: id, handler: handler})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		subs := b.handlers[eventName]
		for i, s := range subs {
			if s.id == id {
				b.handlers[eventName] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Publish entrega el payload de forma síncrona a los handlers registrados.
func (b *Bus) Publish(ctx context.Context, eventName string, payload any) {
	b.mu.RLock()
	subs := b.handlers[eventName]
	b.mu.RUnlock()

	for _, s := range subs {
		if err := s.handler(ctx, payload); err != nil {
			b.logger.Warn("event handler failed",
				zap.String("event", eventName),
				zap.Error(err),
			)
			select {
			case b.deadLetters <- DeadLetter{EventName: eventName, Payload: payload, Err: err}:
			default:
				b.dropped.Add(1)
				b.logger.Warn("dead letter dropped, buffer full",
					zap.String("event", eventName),
					zap.Int64("dropped_total", b.dropped.Load()),
				)
			}
		}
	}
}

// DeadLetters expone las entregas fallidas para observabilidad.
func (b *Bus) DeadLetters() <-chan DeadLetter {
	return b.deadLetters
}

// DroppedDeadLetters devuelve cuántas entregas fallidas se descartaron
// porque nadie drenaba el canal y el buffer se llenó.
func (b *Bus) DroppedDeadLetters() int64 {
	return b.dropped.Load()
}
