package events

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/vimix/vimix-desktop/internal/constants"
)

// EventType defines the types of events that can be emitted
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventError       EventType = "error"

	// Sidecar process events
	EventSidecarLog  EventType = "sidecar_log"  // Line captured from worker stdout/stderr
	EventSidecarExit EventType = "sidecar_exit" // Worker process exited
)

// LogLevel defines log severity levels
type LogLevel int

const (
	DebugLevel LogLevel = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

func (l LogLevel) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Event is the base interface for all events
type Event interface {
	Type() EventType
	Timestamp() time.Time
}

// BaseEvent provides common event fields
type BaseEvent struct {
	EventType EventType
	Time      time.Time
}

func (e BaseEvent) Type() EventType      { return e.EventType }
func (e BaseEvent) Timestamp() time.Time { return e.Time }

// StateChangeEvent represents launcher startup state transitions
type StateChangeEvent struct {
	BaseEvent
	OldState string
	NewState string
	Port     uint16 // Allocated API port, once known
}

// ErrorEvent represents error conditions
type ErrorEvent struct {
	BaseEvent
	Stage string // "allocate", "resolve", "spawn", "ready"
	Error error
}

// SidecarLogEvent represents a line of worker output
type SidecarLogEvent struct {
	BaseEvent
	Level  LogLevel // InfoLevel for stdout, ErrorLevel for stderr
	Stream string   // "stdout" or "stderr"
	Line   string
	PID    int
}

// SidecarExitEvent represents the worker process exiting.
// The launcher has no restart policy; subscribers decide how to react.
type SidecarExitEvent struct {
	BaseEvent
	PID      int
	ExitCode int
	Err      error
}

// EventBus manages event subscriptions and publishing
type EventBus struct {
	subscribers   map[EventType][]chan Event
	all           []chan Event // Subscribers to all events
	mu            sync.RWMutex
	bufferSize    int
	closed        bool
	droppedEvents atomic.Int64 // Count of dropped events due to full buffers
}

// NewEventBus creates a new event bus with specified buffer size
func NewEventBus(bufferSize int) *EventBus {
	if bufferSize <= 0 {
		bufferSize = constants.EventBusDefaultBuffer
	}
	if bufferSize > constants.EventBusMaxBuffer {
		bufferSize = constants.EventBusMaxBuffer
	}
	return &EventBus{
		subscribers: make(map[EventType][]chan Event),
		all:         make([]chan Event, 0),
		bufferSize:  bufferSize,
	}
}

// Subscribe creates a subscription to a specific event type
func (eb *EventBus) Subscribe(eventType EventType) <-chan Event {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if eb.closed {
		ch := make(chan Event)
		close(ch)
		return ch
	}

	ch := make(chan Event, eb.bufferSize)
	eb.subscribers[eventType] = append(eb.subscribers[eventType], ch)
	return ch
}

// SubscribeAll creates a subscription to all events
func (eb *EventBus) SubscribeAll() <-chan Event {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if eb.closed {
		ch := make(chan Event)
		close(ch)
		return ch
	}

	ch := make(chan Event, eb.bufferSize)
	eb.all = append(eb.all, ch)
	return ch
}

// Publish sends an event to all subscribers (non-blocking)
func (eb *EventBus) Publish(event Event) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	if eb.closed {
		return
	}

	// Send to specific type subscribers
	for _, ch := range eb.subscribers[event.Type()] {
		select {
		case ch <- event:
		default:
			// Channel full - event dropped
			eb.droppedEvents.Add(1)
		}
	}

	// Send to all-events subscribers
	for _, ch := range eb.all {
		select {
		case ch <- event:
		default:
			eb.droppedEvents.Add(1)
		}
	}
}

// Close shuts down the event bus and closes all channels
func (eb *EventBus) Close() {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if eb.closed {
		return
	}

	eb.closed = true

	for _, channels := range eb.subscribers {
		for _, ch := range channels {
			close(ch)
		}
	}

	for _, ch := range eb.all {
		close(ch)
	}
}

// DroppedEvents returns the number of events dropped due to full buffers.
func (eb *EventBus) DroppedEvents() int64 {
	return eb.droppedEvents.Load()
}

// PublishStateChange is a convenience method for publishing state change events
func (eb *EventBus) PublishStateChange(oldState, newState string, port uint16) {
	eb.Publish(&StateChangeEvent{
		BaseEvent: BaseEvent{
			EventType: EventStateChange,
			Time:      time.Now(),
		},
		OldState: oldState,
		NewState: newState,
		Port:     port,
	})
}

// PublishError is a convenience method for publishing error events
func (eb *EventBus) PublishError(stage string, err error) {
	eb.Publish(&ErrorEvent{
		BaseEvent: BaseEvent{
			EventType: EventError,
			Time:      time.Now(),
		},
		Stage: stage,
		Error: err,
	})
}

// PublishSidecarLog is a convenience method for publishing worker output lines
func (eb *EventBus) PublishSidecarLog(level LogLevel, stream, line string, pid int) {
	eb.Publish(&SidecarLogEvent{
		BaseEvent: BaseEvent{
			EventType: EventSidecarLog,
			Time:      time.Now(),
		},
		Level:  level,
		Stream: stream,
		Line:   line,
		PID:    pid,
	})
}

// PublishSidecarExit is a convenience method for publishing worker exit events
func (eb *EventBus) PublishSidecarExit(pid, exitCode int, err error) {
	eb.Publish(&SidecarExitEvent{
		BaseEvent: BaseEvent{
			EventType: EventSidecarExit,
			Time:      time.Now(),
		},
		PID:      pid,
		ExitCode: exitCode,
		Err:      err,
	})
}

// Unsubscribe removes a subscription channel from a specific event type
// This prevents memory leaks from abandoned subscriptions
func (eb *EventBus) Unsubscribe(eventType EventType, ch <-chan Event) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if eb.closed {
		return
	}

	channels := eb.subscribers[eventType]
	for i, sub := range channels {
		if sub == ch {
			eb.subscribers[eventType] = append(channels[:i], channels[i+1:]...)
			close(sub)
			return
		}
	}
}
