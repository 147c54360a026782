package rules

import (
	"testing"
	"time"
)

func TestEventBusSubscribeTyped(t *testing.T) {
	bus := NewEventBus()

	spellCastCount := 0
	turnCount := 0

	handle1 := bus.SubscribeTyped(EventConvoked, func(e Event) {
		spellCastCount++
	})

	handle2 := bus.SubscribeTyped(EventBeginTurn, func(e Event) {
		turnCount++
	})

	bus.Publish(NewEvent(EventConvoked, "card1", "card1", "player1"))
	if spellCastCount != 1 {
		t.Fatalf("expected spell cast count 1, got %d", spellCastCount)
	}
	if turnCount != 0 {
		t.Fatalf("expected turn count 0, got %d", turnCount)
	}

	bus.Publish(NewTurnEvent(2, "player2"))
	if spellCastCount != 1 {
		t.Fatalf("expected spell cast count still 1, got %d", spellCastCount)
	}
	if turnCount != 1 {
		t.Fatalf("expected turn count 1, got %d", turnCount)
	}

	bus.Unsubscribe(handle1)

	bus.Publish(NewEvent(EventConvoked, "card2", "card2", "player1"))
	if spellCastCount != 1 {
		t.Fatalf("expected spell cast count still 1 after unsubscribe, got %d", spellCastCount)
	}

	bus.Unsubscribe(handle2)

	bus.Publish(NewTurnEvent(3, "player1"))
	if turnCount != 1 {
		t.Fatalf("expected turn count still 1 after unsubscribe, got %d", turnCount)
	}
}

func TestEventBusSubscribeAll(t *testing.T) {
	bus := NewEventBus()

	var seen []EventType
	handle := bus.Subscribe(func(e Event) {
		seen = append(seen, e.Type)
	})

	bus.Publish(NewEvent(EventAIDecision, "card1", "card1", "player1"))
	bus.Publish(NewEvent(EventConvoked, "card1", "creature1", "player1"))
	bus.Publish(NewTurnEvent(2, "player2"))

	if len(seen) != 3 {
		t.Fatalf("expected all event count 3, got %d", len(seen))
	}
	if seen[0] != EventAIDecision || seen[1] != EventConvoked || seen[2] != EventBeginTurn {
		t.Fatalf("expected events in publish order, got %v", seen)
	}

	bus.Unsubscribe(handle)

	bus.Publish(NewEvent(EventConvoked, "card3", "card3", "player1"))
	if len(seen) != 3 {
		t.Fatalf("expected all event count still 3 after unsubscribe, got %d", len(seen))
	}
}

func TestEventBusNilListener(t *testing.T) {
	bus := NewEventBus()
	if h := bus.Subscribe(nil); h != -1 {
		t.Fatalf("expected -1 handle for nil listener, got %d", h)
	}
	if h := bus.SubscribeTyped(EventBeginTurn, nil); h != -1 {
		t.Fatalf("expected -1 handle for nil typed listener, got %d", h)
	}
	bus.Publish(NewTurnEvent(1, "player1"))
}

func TestEventTurnBoundary(t *testing.T) {
	if !EventBeginTurn.IsTurnBoundary() {
		t.Fatal("EventBeginTurn should be a turn boundary")
	}
	if EventAIDecision.IsTurnBoundary() {
		t.Fatal("EventAIDecision should not be a turn boundary")
	}
	evt := NewTurnEvent(4, "player1")
	if evt.Amount != 4 || evt.PlayerID != "player1" {
		t.Fatalf("unexpected turn event fields: %+v", evt)
	}
}

func TestEventFields(t *testing.T) {
	evt := NewEventWithFlag(EventAIDecision, "spell1", "twincast", "player1", true)
	evt.Data = "GATE_CHECK"
	evt.Metadata["reason"] = "opponent spell"
	evt.Description = "AI copies opponent spell"

	if evt.Type != EventAIDecision {
		t.Fatalf("expected type EventAIDecision, got %s", evt.Type)
	}
	if !evt.Flag {
		t.Fatal("expected flag true")
	}
	if evt.Metadata["reason"] != "opponent spell" {
		t.Fatalf("expected metadata reason, got %v", evt.Metadata)
	}
}

func TestEventTimestamp(t *testing.T) {
	before := time.Now()
	evt := NewEvent(EventConvoked, "card1", "card1", "player1")
	after := time.Now()

	if evt.Timestamp.Before(before) || evt.Timestamp.After(after) {
		t.Fatal("event timestamp should be between before and after")
	}
}
