package ai

import (
	"github.com/magefree/mage-casting/internal/game/rules"
)

// MemorySet groups remembered cards by purpose.
type MemorySet string

// MemoryActivatedThisTurn holds host cards whose copy ability was already used this turn.
const MemoryActivatedThisTurn MemorySet = "ACTIVATED_THIS_TURN"

// AbilityMemory remembers which cards already drove an AI decision this turn.
// It is cleared wholesale at the turn boundary.
type AbilityMemory struct {
	entries map[string]map[MemorySet]map[string]struct{}
	bus     *rules.EventBus
	handle  int
}

// NewAbilityMemory creates an empty memory.
func NewAbilityMemory() *AbilityMemory {
	return &AbilityMemory{
		entries: make(map[string]map[MemorySet]map[string]struct{}),
		handle:  -1,
	}
}

// Remember records cardID in set for player. It returns false if it was already there.
func (m *AbilityMemory) Remember(player, cardID string, set MemorySet) bool {
	if cardID == "" {
		return false
	}
	sets, ok := m.entries[player]
	if !ok {
		sets = make(map[MemorySet]map[string]struct{})
		m.entries[player] = sets
	}
	cards, ok := sets[set]
	if !ok {
		cards = make(map[string]struct{})
		sets[set] = cards
	}
	if _, seen := cards[cardID]; seen {
		return false
	}
	cards[cardID] = struct{}{}
	return true
}

// Contains reports whether cardID is remembered in set for player.
func (m *AbilityMemory) Contains(player, cardID string, set MemorySet) bool {
	_, ok := m.entries[player][set][cardID]
	return ok
}

// Forget removes one entry. It returns false if there was nothing to remove.
func (m *AbilityMemory) Forget(player, cardID string, set MemorySet) bool {
	cards := m.entries[player][set]
	if _, ok := cards[cardID]; !ok {
		return false
	}
	delete(cards, cardID)
	return true
}

// ClearSet empties one set for player.
func (m *AbilityMemory) ClearSet(player string, set MemorySet) {
	delete(m.entries[player], set)
}

// Clear forgets everything.
func (m *AbilityMemory) Clear() {
	m.entries = make(map[string]map[MemorySet]map[string]struct{})
}

// Len returns the number of remembered entries across all players and sets.
func (m *AbilityMemory) Len() int {
	n := 0
	for _, sets := range m.entries {
		for _, cards := range sets {
			n += len(cards)
		}
	}
	return n
}

// Attach clears the memory whenever bus announces a turn boundary.
// Attaching again moves the subscription to the new bus.
func (m *AbilityMemory) Attach(bus *rules.EventBus) {
	m.Detach()
	m.bus = bus
	m.handle = bus.Subscribe(func(e rules.Event) {
		if e.Type.IsTurnBoundary() {
			m.Clear()
		}
	})
}

// Detach stops listening for turn boundaries.
func (m *AbilityMemory) Detach() {
	if m.bus != nil && m.handle >= 0 {
		m.bus.Unsubscribe(m.handle)
	}
	m.bus = nil
	m.handle = -1
}
