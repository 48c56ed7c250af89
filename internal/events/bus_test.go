package events

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

func TestBusPublish_DeliversInRegistrationOrder(t *testing.T) {
	bus := NewBus(zap.NewNop())

	var got []string
	bus.Subscribe("thing.happened", func(_ context.Context, _ any) error {
		got = append(got, "first")
		return nil
	})
	bus.Subscribe("thing.happened", func(_ context.Context, _ any) error {
		got = append(got, "second")
		return nil
	})

	bus.Publish(context.Background(), "thing.happened", nil)

	if len(got) != 2 || got[0] != "first" || got[1] != "second" {
		t.Fatalf("expected handlers in registration order, got %v", got)
	}
}

func TestBusPublish_FailingHandlerDoesNotStopDelivery(t *testing.T) {
	bus := NewBus(zap.NewNop())

	handlerErr := errors.New("boom")
	bus.Subscribe("thing.happened", func(_ context.Context, _ any) error {
		return handlerErr
	})

	delivered := false
	bus.Subscribe("thing.happened", func(_ context.Context, _ any) error {
		delivered = true
		return nil
	})

	bus.Publish(context.Background(), "thing.happened", "payload")

	if !delivered {
		t.Fatalf("expected delivery to continue past failing handler")
	}

	select {
	case dl := <-bus.DeadLetters():
		if dl.EventName != "thing.happened" || !errors.Is(dl.Err, handlerErr) {
			t.Fatalf("unexpected dead letter %+v", dl)
		}
	default:
		t.Fatalf("expected failed delivery in dead letter channel")
	}
}

func TestBusSubscribe_UnsubscribeStopsDelivery(t *testing.T) {
	bus := NewBus(zap.NewNop())

	calls := 0
	unsubscribe := bus.Subscribe("thing.happened", func(_ context.Context, _ any) error {
		calls++
		return nil
	})

	bus.Publish(context.Background(), "thing.happened", nil)
	unsubscribe()
	bus.Publish(context.Background(), "thing.happened", nil)

	if calls != 1 {
		t.Fatalf("expected exactly one delivery, got %d", calls)
	}
}

func TestBusPublish_DeadLetterOverflowIsCountedNotBlocking(t *testing.T) {
	bus := NewBus(zap.NewNop())

	bus.Subscribe("thing.happened", func(_ context.Context, _ any) error {
		return errors.New("boom")
	})

	// Nadie drena el canal: más allá del buffer, el bus descarta sin
	// bloquear y deja constancia en el contador.
	total := deadLetterBuffer + 6
	for i := 0; i < total; i++ {
		bus.Publish(context.Background(), "thing.happened", i)
	}

	if got := len(bus.DeadLetters()); got != deadLetterBuffer {
		t.Fatalf("expected %d buffered dead letters, got %d", deadLetterBuffer, got)
	}
	if got := bus.DroppedDeadLetters(); got != 6 {
		t.Fatalf("expected 6 dropped dead letters, got %d", got)
	}
}

func TestBusPublish_NoSubscribersIsNoop(t *testing.T) {
	bus := NewBus(zap.NewNop())
	bus.Publish(context.Background(), "nobody.listens", 42)
}
