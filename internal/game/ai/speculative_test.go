package ai

import (
	"testing"

	"github.com/magefree/mage-casting/internal/game/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestSpeculativeEvaluator_RejectsUnsupportedShapes(t *testing.T) {
	called := false
	play := PlayEvaluatorFunc(func(rules.Ability, bool, bool) PlayDecision {
		called = true
		return PlayWillPlay
	})
	eval := NewSpeculativeEvaluator(play, NewCardDenylist("Mindslaver"), zaptest.NewLogger(t))
	candidate := testCopyAbility("ai", "")

	tests := []struct {
		name   string
		mutate func(a *rules.Ability)
	}{
		{"wrapper", func(a *rules.Ability) { a.Kind = rules.AbilityKindWrapper }},
		{"triggered", func(a *rules.Ability) { a.Kind = rules.AbilityKindTriggered }},
		{"copy ability", func(a *rules.Ability) { a.API = rules.APICopySpellAbility }},
		{"mana spent condition", func(a *rules.Ability) { a.Params[rules.ParamConditionManaSpent] = "R" }},
		{"denylisted card", func(a *rules.Ability) { a.HostName = "Mindslaver" }},
		{"untargetable", func(a *rules.Ability) { a.Params[rules.ParamCantBeTargeted] = "True" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			top := testSpell("bolt", "opponent", "{R}")
			tt.mutate(&top)

			verdict := eval.Evaluate(top, candidate, "ai", LogicNone)
			assert.Equal(t, DecisionReject, verdict.Decision)
			assert.NotEmpty(t, verdict.Reason)
		})
	}
	assert.False(t, called, "rejected shapes never reach the play evaluator")
}

func TestSpeculativeEvaluator_SpellAsksPlayEvaluatorWithCopy(t *testing.T) {
	var seen rules.Ability
	var mana, targets bool
	play := PlayEvaluatorFunc(func(spell rules.Ability, simulateMana, simulateTargets bool) PlayDecision {
		seen, mana, targets = spell, simulateMana, simulateTargets
		return PlayWillPlay
	})
	eval := NewSpeculativeEvaluator(play, nil, nil)
	top := testSpell("bolt", "opponent", "{R}")

	verdict := eval.Evaluate(top, testCopyAbility("ai", ""), "ai", LogicNone)

	assert.Equal(t, DecisionWillAct, verdict.Decision)
	assert.True(t, mana)
	assert.True(t, targets)
	assert.NotEqual(t, top.ID, seen.ID)
	assert.Equal(t, "ai", seen.Controller)
	assert.True(t, seen.Copied)
	assert.Empty(t, seen.Targets)
}

func TestSpeculativeEvaluator_Isolation(t *testing.T) {
	play := PlayEvaluatorFunc(func(spell rules.Ability, _, _ bool) PlayDecision {
		spell.AddTarget("ai-creature")
		spell.Params["Mutated"] = "yes"
		spell.Cost.Red = 5
		return PlayWillPlay
	})
	eval := NewSpeculativeEvaluator(play, nil, nil)

	stack := stackWith(testSpell("bolt", "opponent", "{R}"))
	before, ok := stack.Peek()
	require.True(t, ok)
	top, _ := stack.PeekAbility()

	eval.Evaluate(top, testCopyAbility("ai", ""), "ai", LogicNone)

	after, ok := stack.Peek()
	require.True(t, ok)
	assert.Equal(t, before.Ability.ID, after.Ability.ID)
	assert.Equal(t, []string{"opponent"}, after.Ability.Targets)
	assert.NotContains(t, after.Ability.Params, "Mutated")
	assert.Equal(t, "{R}", after.Ability.Cost.String())
	assert.Equal(t, 1, stack.Len())

	assert.Equal(t, []string{"opponent"}, top.Targets, "the snapshot passed in is untouched too")
	assert.NotContains(t, top.Params, "Mutated")
}

func TestSpeculativeEvaluator_ActivatedAbilities(t *testing.T) {
	eval := NewSpeculativeEvaluator(willPlay(), nil, nil)
	activated := testSpell("pump", "ai", "{1}{G}")
	activated.Kind = rules.AbilityKindActivated
	activated.API = rules.APIPump

	t.Run("own ability with copy-activated logic", func(t *testing.T) {
		verdict := eval.Evaluate(activated, testCopyAbility("ai", ""), "ai", LogicAlwaysCopyActivatedAbilities)
		assert.Equal(t, DecisionWillAct, verdict.Decision)
	})

	t.Run("own ability without the logic", func(t *testing.T) {
		verdict := eval.Evaluate(activated, testCopyAbility("ai", ""), "ai", LogicAlwaysIfViable)
		assert.Equal(t, DecisionWillNotAct, verdict.Decision)
	})

	t.Run("opponent ability", func(t *testing.T) {
		theirs := activated
		theirs.Controller = "opponent"
		verdict := eval.Evaluate(theirs, testCopyAbility("ai", ""), "ai", LogicAlwaysCopyActivatedAbilities)
		assert.Equal(t, DecisionWillNotAct, verdict.Decision)
	})
}

func TestSpeculativeEvaluator_WillNotAct(t *testing.T) {
	eval := NewSpeculativeEvaluator(wontPlay(), nil, nil)

	verdict := eval.Evaluate(testSpell("bolt", "opponent", "{R}"), testCopyAbility("ai", ""), "ai", LogicNone)
	assert.Equal(t, DecisionWillNotAct, verdict.Decision)
}

func TestCardDenylist(t *testing.T) {
	d, err := ParseCardDenylist([]byte("cards:\n  - Mindslaver\n  - \"Chain of Acid\"\ncard_ids:\n  - card-42\n"))
	require.NoError(t, err)

	assert.Equal(t, 3, d.Len())
	assert.True(t, d.IsTooComplex("", "mindslaver"))
	assert.True(t, d.IsTooComplex("card-42", "Grizzly Bears"))
	assert.False(t, d.IsTooComplex("card-1", "Grizzly Bears"))
	assert.False(t, d.IsTooComplex("", ""))

	var nilList *CardDenylist
	assert.False(t, nilList.IsTooComplex("card-42", "Mindslaver"))

	_, err = ParseCardDenylist([]byte("cards: [unterminated"))
	assert.Error(t, err)
}
