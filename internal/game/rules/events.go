package rules

import (
	"time"
)

// EventType indicates the category of a rules event.
type EventType string

const (
	EventBeginTurn EventType = "BEGIN_TURN"

	// Casting
	EventConvoked        EventType = "CONVOKED"
	EventImprovised      EventType = "IMPROVISED"
	EventPaymentAborted  EventType = "PAYMENT_ABORTED"
	EventCopiedStackItem EventType = "COPIED_STACKOBJECT"

	// AI decisions
	EventAIDecision EventType = "AI_DECISION"
)

// IsTurnBoundary reports whether per-turn state should be dropped on this event.
func (et EventType) IsTurnBoundary() bool {
	return et == EventBeginTurn
}

// Event represents a state change that other subsystems may react to.
type Event struct {
	Type        EventType
	TargetID    string            // ID of the target (card, player, stack object)
	SourceID    string            // ID of the source ability/object
	Controller  string            // Player ID of the controller
	PlayerID    string            // Player ID (often same as Controller, but can differ)
	Amount      int               // Numeric value (turn number, shards paid, ...)
	Flag        bool              // Boolean flag (accepted, mandatory, ...)
	Data        string            // Additional string data
	Timestamp   time.Time         // When the event occurred
	Metadata    map[string]string // Additional metadata
	Description string            // Human-readable description
}

// Listener defines a callback that reacts to incoming events.
type Listener func(Event)

// TypedListener defines a callback that reacts to a specific event type.
type TypedListener struct {
	Handle    int
	EventType EventType
	Callback  func(Event)
}

// EventBus provides a synchronous publish/subscribe implementation with type filtering.
// It is driven from the game loop and is not safe for concurrent use.
type EventBus struct {
	listeners      map[int]Listener              // All listeners
	typedListeners map[EventType][]TypedListener // Listeners filtered by event type
	nextHandle     int
}

// NewEventBus constructs a fresh event bus instance.
func NewEventBus() *EventBus {
	return &EventBus{
		listeners:      make(map[int]Listener),
		typedListeners: make(map[EventType][]TypedListener),
	}
}

// Subscribe registers a listener for all events and returns a handle.
func (bus *EventBus) Subscribe(listener Listener) int {
	if listener == nil {
		return -1
	}
	handle := bus.nextHandle
	bus.nextHandle++
	bus.listeners[handle] = listener
	return handle
}

// SubscribeTyped registers a listener for a specific event type.
func (bus *EventBus) SubscribeTyped(eventType EventType, callback func(Event)) int {
	if callback == nil {
		return -1
	}
	handle := bus.nextHandle
	bus.nextHandle++
	bus.typedListeners[eventType] = append(bus.typedListeners[eventType], TypedListener{
		Handle:    handle,
		EventType: eventType,
		Callback:  callback,
	})
	return handle
}

// Unsubscribe removes the listener identified by the provided handle.
func (bus *EventBus) Unsubscribe(handle int) {
	delete(bus.listeners, handle)
	for eventType, listeners := range bus.typedListeners {
		for i := len(listeners) - 1; i >= 0; i-- {
			if listeners[i].Handle == handle {
				bus.typedListeners[eventType] = append(listeners[:i], listeners[i+1:]...)
				break
			}
		}
	}
}

// Publish delivers the event to all registered listeners synchronously.
// Catch-all listeners run in handle order, then typed listeners in subscription order.
func (bus *EventBus) Publish(event Event) {
	for handle := 0; handle < bus.nextHandle; handle++ {
		if listener, ok := bus.listeners[handle]; ok {
			listener(event)
		}
	}
	for _, listener := range bus.typedListeners[event.Type] {
		listener.Callback(event)
	}
}

// NewEvent creates a new event with common fields populated.
func NewEvent(eventType EventType, targetID, sourceID, controllerID string) Event {
	return Event{
		Type:       eventType,
		TargetID:   targetID,
		SourceID:   sourceID,
		Controller: controllerID,
		PlayerID:   controllerID,
		Timestamp:  time.Now(),
		Metadata:   make(map[string]string),
	}
}

// NewEventWithAmount creates a new event with an amount value.
func NewEventWithAmount(eventType EventType, targetID, sourceID, controllerID string, amount int) Event {
	evt := NewEvent(eventType, targetID, sourceID, controllerID)
	evt.Amount = amount
	return evt
}

// NewEventWithFlag creates a new event with a flag value.
func NewEventWithFlag(eventType EventType, targetID, sourceID, controllerID string, flag bool) Event {
	evt := NewEvent(eventType, targetID, sourceID, controllerID)
	evt.Flag = flag
	return evt
}

// NewTurnEvent signals the start of a turn for activePlayer.
func NewTurnEvent(turn int, activePlayer string) Event {
	return NewEventWithAmount(EventBeginTurn, "", "", activePlayer, turn)
}
