package rules

import (
	"errors"
)

// ErrStackEmpty is returned when popping an empty stack.
var ErrStackEmpty = errors.New("stack empty")

// StackItem represents a single object on the stack.
type StackItem struct {
	Ability     Ability
	Description string
	Metadata    map[string]string
}

// ID returns the stack object's ID.
func (si StackItem) ID() string {
	return si.Ability.ID
}

// StackManager manages the game stack. Access is serialized by the game loop.
type StackManager struct {
	items []StackItem
}

// NewStackManager creates a new stack manager.
func NewStackManager() *StackManager {
	return &StackManager{
		items: make([]StackItem, 0, 16),
	}
}

// Push adds an item to the top of the stack.
func (sm *StackManager) Push(item StackItem) {
	sm.items = append(sm.items, item)
}

// PushAbility wraps ability in a stack item and pushes it.
func (sm *StackManager) PushAbility(ability Ability) {
	sm.Push(StackItem{Ability: ability, Description: ability.HostName})
}

// Pop removes the top item from the stack.
func (sm *StackManager) Pop() (StackItem, error) {
	if len(sm.items) == 0 {
		return StackItem{}, ErrStackEmpty
	}

	idx := len(sm.items) - 1
	item := sm.items[idx]
	sm.items = sm.items[:idx]
	return item, nil
}

// Peek returns the top item without removing it.
func (sm *StackManager) Peek() (StackItem, bool) {
	if len(sm.items) == 0 {
		return StackItem{}, false
	}
	return sm.items[len(sm.items)-1], true
}

// PeekAbility returns a deep-copied snapshot of the top ability. Changes to the
// snapshot never reach the stack.
func (sm *StackManager) PeekAbility() (Ability, bool) {
	item, ok := sm.Peek()
	if !ok {
		return Ability{}, false
	}
	return item.Ability.Clone(), true
}

// Len returns the number of items on the stack.
func (sm *StackManager) Len() int {
	return len(sm.items)
}
