package ai

import (
	"github.com/magefree/mage-casting/internal/game/rules"
	"go.uber.org/zap"
)

// Decision is the SpeculativeEvaluator's verdict on copying a stack object.
type Decision int

const (
	// DecisionReject means the object has a shape or property the AI will not copy.
	DecisionReject Decision = iota
	DecisionWillNotAct
	DecisionWillAct
)

func (d Decision) String() string {
	switch d {
	case DecisionWillAct:
		return "WILL_ACT"
	case DecisionWillNotAct:
		return "WILL_NOT_ACT"
	default:
		return "REJECT"
	}
}

// Verdict is a Decision plus the reason behind it.
type Verdict struct {
	Decision Decision
	Reason   string
}

// PlayDecision is the answer of an external play evaluator.
type PlayDecision int

const (
	PlayWillPlay PlayDecision = iota
	PlayCantPlay
	PlayCantAfford
	PlayTargetingFailed
	PlayNotWorthIt
)

// PlayEvaluator judges whether the AI wants to cast an ability it gets for free.
type PlayEvaluator interface {
	CanPlayFromEffect(spell rules.Ability, simulateMana, simulateTargets bool) PlayDecision
}

// PlayEvaluatorFunc adapts a function to PlayEvaluator.
type PlayEvaluatorFunc func(spell rules.Ability, simulateMana, simulateTargets bool) PlayDecision

// CanPlayFromEffect implements PlayEvaluator.
func (f PlayEvaluatorFunc) CanPlayFromEffect(spell rules.Ability, simulateMana, simulateTargets bool) PlayDecision {
	return f(spell, simulateMana, simulateTargets)
}

// ComplexityClassifier flags cards the AI cannot reason about.
type ComplexityClassifier interface {
	IsTooComplex(cardID, cardName string) bool
}

// SpeculativeEvaluator checks a detached copy of the stack top without ever
// touching the stack object itself.
type SpeculativeEvaluator struct {
	play       PlayEvaluator
	classifier ComplexityClassifier
	logger     *zap.Logger
}

// NewSpeculativeEvaluator creates an evaluator. classifier may be nil.
func NewSpeculativeEvaluator(play PlayEvaluator, classifier ComplexityClassifier, logger *zap.Logger) *SpeculativeEvaluator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SpeculativeEvaluator{play: play, classifier: classifier, logger: logger}
}

// Evaluate decides whether candidate should copy top on behalf of player.
// top is a snapshot; only its speculative copy is handed to the play evaluator.
func (e *SpeculativeEvaluator) Evaluate(top rules.Ability, candidate *rules.Ability, player string, logic OverrideLogic) Verdict {
	switch {
	case top.IsWrapper() || (top.Kind != rules.AbilityKindSpell && top.Kind != rules.AbilityKindActivated):
		return e.verdict(top, DecisionReject, "unsupported stack object "+top.Kind.String())
	case top.API == rules.APICopySpellAbility:
		return e.verdict(top, DecisionReject, "stack top is a copy ability")
	case top.HasParam(rules.ParamConditionManaSpent):
		return e.verdict(top, DecisionReject, "mana spent is not copied")
	case e.classifier != nil && e.classifier.IsTooComplex(top.HostCardID, top.HostName):
		return e.verdict(top, DecisionReject, "card is too complex")
	}

	copied := top.SpeculativeCopy(player)

	if !top.CanBeTargetedBy(candidate) {
		return e.verdict(top, DecisionReject, "stack top cannot be targeted")
	}

	decision := PlayCantPlay
	switch {
	case top.Kind == rules.AbilityKindSpell:
		if e.play != nil {
			decision = e.play.CanPlayFromEffect(*copied, true, true)
		}
	case top.Kind == rules.AbilityKindActivated && top.Controller == player && logic.rule().copyActivated:
		decision = PlayWillPlay
	}

	if decision == PlayWillPlay {
		return e.verdict(top, DecisionWillAct, "copy is worth playing")
	}
	return e.verdict(top, DecisionWillNotAct, "copy is not worth playing")
}

func (e *SpeculativeEvaluator) verdict(top rules.Ability, d Decision, reason string) Verdict {
	e.logger.Debug("speculative copy evaluated",
		zap.String("stack_id", top.ID),
		zap.String("host", top.HostName),
		zap.Stringer("decision", d),
		zap.String("reason", reason),
	)
	return Verdict{Decision: d, Reason: reason}
}
