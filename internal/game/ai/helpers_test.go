package ai

import (
	"github.com/magefree/mage-casting/internal/game/mana"
	"github.com/magefree/mage-casting/internal/game/rules"
	"github.com/magefree/mage-casting/internal/game/targeting"
)

func testSpell(id, controller, cost string) rules.Ability {
	return rules.Ability{
		ID:         id,
		HostCardID: "card-" + id,
		HostName:   "Lightning Bolt",
		Controller: controller,
		Kind:       rules.AbilityKindSpell,
		API:        rules.APIDealDamage,
		Cost:       mana.MustParseCost(cost),
		Params:     map[string]string{},
		Targets:    []string{"opponent"},
	}
}

func testCopyAbility(controller, logic string) *rules.Ability {
	params := map[string]string{}
	if logic != "" {
		params[rules.ParamAILogic] = logic
	}
	return &rules.Ability{
		ID:         "twincast-sa",
		HostCardID: "twincast",
		HostName:   "Twincast",
		Controller: controller,
		Kind:       rules.AbilityKindSpell,
		API:        rules.APICopySpellAbility,
		Cost:       mana.MustParseCost("{U}{U}"),
		Params:     params,
		TargetReq: &targeting.TargetRequirement{
			Type:       targeting.TargetTypeSpellOrAbility,
			MinTargets: 1,
			MaxTargets: 1,
		},
	}
}

func stackWith(abilities ...rules.Ability) *rules.StackManager {
	stack := rules.NewStackManager()
	for _, a := range abilities {
		stack.PushAbility(a)
	}
	return stack
}

func willPlay() PlayEvaluator {
	return PlayEvaluatorFunc(func(rules.Ability, bool, bool) PlayDecision { return PlayWillPlay })
}

func wontPlay() PlayEvaluator {
	return PlayEvaluatorFunc(func(rules.Ability, bool, bool) PlayDecision { return PlayNotWorthIt })
}
