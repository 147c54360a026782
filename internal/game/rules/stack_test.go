package rules

import (
	"testing"

	"github.com/magefree/mage-casting/internal/game/mana"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStackManagerPushPop(t *testing.T) {
	sm := NewStackManager()

	sm.PushAbility(Ability{ID: "first", Controller: "Alice", Kind: AbilityKindSpell, HostName: "First"})
	sm.Push(StackItem{
		Ability:     Ability{ID: "second", Controller: "Bob", Kind: AbilityKindTriggered},
		Description: "Second Trigger",
	})
	assert.Equal(t, 2, sm.Len())

	item, err := sm.Pop()
	require.NoError(t, err)
	assert.Equal(t, "second", item.ID(), "expected LIFO order")

	item, err = sm.Pop()
	require.NoError(t, err)
	assert.Equal(t, "first", item.ID())
	assert.Equal(t, "First", item.Description)

	_, err = sm.Pop()
	assert.ErrorIs(t, err, ErrStackEmpty)
	assert.Zero(t, sm.Len())
}

func TestStackManagerPeekAbilityIsSnapshot(t *testing.T) {
	sm := NewStackManager()
	sm.PushAbility(Ability{
		ID:      "bolt",
		Cost:    mana.MustParseCost("{R}"),
		Params:  map[string]string{"Damage": "3"},
		Targets: []string{"player-2"},
	})

	snapshot, ok := sm.PeekAbility()
	require.True(t, ok)
	snapshot.Params["Damage"] = "99"
	snapshot.Targets[0] = "player-1"
	snapshot.Cost.Red = 5

	top, _ := sm.Peek()
	assert.Equal(t, "3", top.Ability.Params["Damage"])
	assert.Equal(t, []string{"player-2"}, top.Ability.Targets)
	assert.Equal(t, 1, top.Ability.Cost.Red)

	_, ok = NewStackManager().PeekAbility()
	assert.False(t, ok)
}
