package events

import (
	"errors"
	"testing"
	"time"
)

func TestEventBus_PublishSubscribe(t *testing.T) {
	bus := NewEventBus(10)
	defer bus.Close()

	ch := bus.Subscribe(EventStateChange)

	bus.PublishStateChange("Uninitialized", "PortAllocated", 53211)

	select {
	case received := <-ch:
		change, ok := received.(*StateChangeEvent)
		if !ok {
			t.Fatal("Expected StateChangeEvent")
		}
		if change.NewState != "PortAllocated" {
			t.Errorf("Expected new state 'PortAllocated', got '%s'", change.NewState)
		}
		if change.Port != 53211 {
			t.Errorf("Expected port 53211, got %d", change.Port)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Timeout waiting for event")
	}
}

func TestEventBus_MultipleSubscribers(t *testing.T) {
	bus := NewEventBus(10)
	defer bus.Close()

	ch1 := bus.Subscribe(EventSidecarLog)
	ch2 := bus.Subscribe(EventSidecarLog)

	bus.PublishSidecarLog(InfoLevel, "stdout", "worker listening", 1234)

	for i, ch := range []<-chan Event{ch1, ch2} {
		select {
		case received := <-ch:
			logEvent, ok := received.(*SidecarLogEvent)
			if !ok {
				t.Fatal("Expected SidecarLogEvent")
			}
			if logEvent.Line != "worker listening" {
				t.Errorf("Subscriber %d: unexpected line %q", i, logEvent.Line)
			}
		case <-time.After(100 * time.Millisecond):
			t.Fatalf("Subscriber %d did not receive event", i)
		}
	}
}

func TestEventBus_SubscribeAll(t *testing.T) {
	bus := NewEventBus(10)
	defer bus.Close()

	ch := bus.SubscribeAll()

	bus.PublishError("spawn", errors.New("executable not found"))
	bus.PublishSidecarExit(1234, 1, nil)

	var types []EventType
	for i := 0; i < 2; i++ {
		select {
		case received := <-ch:
			types = append(types, received.Type())
		case <-time.After(100 * time.Millisecond):
			t.Fatal("Timeout waiting for events")
		}
	}

	if types[0] != EventError || types[1] != EventSidecarExit {
		t.Errorf("Unexpected event order: %v", types)
	}
}

func TestEventBus_PublishAfterClose(t *testing.T) {
	bus := NewEventBus(10)
	ch := bus.Subscribe(EventError)
	bus.Close()

	// Must not panic
	bus.PublishError("allocate", errors.New("no free port"))

	// Channel should be closed
	if _, ok := <-ch; ok {
		t.Error("Expected closed channel after Close()")
	}
}

func TestEventBus_DroppedEvents(t *testing.T) {
	bus := NewEventBus(1)
	defer bus.Close()

	bus.Subscribe(EventSidecarLog)

	// First fills the buffer, second is dropped
	bus.PublishSidecarLog(InfoLevel, "stdout", "one", 1)
	bus.PublishSidecarLog(InfoLevel, "stdout", "two", 1)

	if got := bus.DroppedEvents(); got != 1 {
		t.Errorf("Expected 1 dropped event, got %d", got)
	}
}

func TestEventBus_Unsubscribe(t *testing.T) {
	bus := NewEventBus(10)
	defer bus.Close()

	ch := bus.Subscribe(EventStateChange)
	bus.Unsubscribe(EventStateChange, ch)

	if _, ok := <-ch; ok {
		t.Error("Expected channel to be closed after Unsubscribe")
	}

	// Publishing after unsubscribe must not panic
	bus.PublishStateChange("BackendSpawned", "Ready", 53211)
}
