package ai

import (
	"fmt"
	"strings"

	"github.com/magefree/mage-casting/internal/game/mana"
	"github.com/magefree/mage-casting/internal/game/rules"
	"go.uber.org/zap"
)

// PolicyState is a step of the copy decision.
type PolicyState string

const (
	StateIdle             PolicyState = "IDLE"
	StateGateCheck        PolicyState = "GATE_CHECK"
	StateFilterCheck      PolicyState = "FILTER_CHECK"
	StateSpeculativeCheck PolicyState = "SPECULATIVE_CHECK"
	StateCommit           PolicyState = "COMMIT"
	StateReject           PolicyState = "REJECT"
)

// CopyConfig holds the AI profile values the copy decision reads.
type CopyConfig struct {
	// ChanceToCopyOwnSpell is the percent chance to copy a stack object that is not an opponent's.
	ChanceToCopyOwnSpell int
	// AlwaysCopyIfCMCDiff forces a copy when the stack top costs at least this much more.
	AlwaysCopyIfCMCDiff int
}

// DefaultCopyConfig returns the stock AI profile.
func DefaultCopyConfig() CopyConfig {
	return CopyConfig{ChanceToCopyOwnSpell: 30, AlwaysCopyIfCMCDiff: 2}
}

// StackView is the read-only part of the stack the policy needs.
type StackView interface {
	PeekAbility() (rules.Ability, bool)
}

// OpponentFunc reports whether a is an opponent of b.
type OpponentFunc func(a, b string) bool

// DifferentPlayers treats every other player as an opponent.
func DifferentPlayers(a, b string) bool { return a != b }

// Outcome is the result of one copy decision.
type Outcome struct {
	Accepted bool
	Target   *rules.AbilityRef
	Chance   int
	Path     []PolicyState
	Reason   string
}

// Final returns the terminal state.
func (o Outcome) Final() PolicyState {
	if len(o.Path) == 0 {
		return StateIdle
	}
	return o.Path[len(o.Path)-1]
}

// CopyDecisionPolicy decides whether a copy ability should target the stack top.
type CopyDecisionPolicy struct {
	cfg       CopyConfig
	evaluator *SpeculativeEvaluator
	memory    *AbilityMemory
	gate      Percenter
	opponents OpponentFunc
	bus       *rules.EventBus
	logger    *zap.Logger
}

// NewCopyDecisionPolicy wires a policy. A nil gate is seeded from the clock.
func NewCopyDecisionPolicy(cfg CopyConfig, evaluator *SpeculativeEvaluator, memory *AbilityMemory, gate Percenter, logger *zap.Logger) *CopyDecisionPolicy {
	if logger == nil {
		logger = zap.NewNop()
	}
	if gate == nil {
		gate = NewRandomGate(0)
	}
	if memory == nil {
		memory = NewAbilityMemory()
	}
	if evaluator == nil {
		evaluator = NewSpeculativeEvaluator(nil, nil, logger)
	}
	return &CopyDecisionPolicy{
		cfg:       cfg,
		evaluator: evaluator,
		memory:    memory,
		gate:      gate,
		opponents: DifferentPlayers,
		logger:    logger,
	}
}

// SetOpponents replaces the opponent relation.
func (p *CopyDecisionPolicy) SetOpponents(fn OpponentFunc) {
	if fn == nil {
		fn = DifferentPlayers
	}
	p.opponents = fn
}

// SetEventBus makes the policy announce every decision as EventAIDecision.
func (p *CopyDecisionPolicy) SetEventBus(bus *rules.EventBus) {
	p.bus = bus
}

// Memory returns the memory the policy records commits in.
func (p *CopyDecisionPolicy) Memory() *AbilityMemory {
	return p.memory
}

type decision struct {
	out Outcome
}

func (d *decision) enter(s PolicyState) {
	d.out.Path = append(d.out.Path, s)
}

func (d *decision) finish(accepted bool, reason string) Outcome {
	if accepted {
		d.enter(StateCommit)
	} else {
		d.enter(StateReject)
	}
	d.out.Accepted = accepted
	d.out.Reason = reason
	return d.out
}

// Decide runs the copy decision for candidate on behalf of player. On commit
// the stack top is added to candidate's targets and the host card is
// remembered for the turn. The stack itself is never modified.
func (p *CopyDecisionPolicy) Decide(stack StackView, candidate *rules.Ability, player string) Outcome {
	out := p.decide(stack, candidate, player)
	p.report(candidate, player, out)
	return out
}

func (p *CopyDecisionPolicy) decide(stack StackView, candidate *rules.Ability, player string) Outcome {
	d := &decision{}
	d.enter(StateIdle)

	top, ok := stack.PeekAbility()
	if !ok {
		if candidate.IsMandatory() {
			return d.finish(true, "stack is empty, activation is mandatory")
		}
		return d.finish(false, "stack is empty")
	}

	logic := ParseOverrideLogic(candidate.Param(rules.ParamAILogic))
	rule := logic.rule()

	d.enter(StateGateCheck)
	chance := p.cfg.ChanceToCopyOwnSpell
	if atLeast, known := mana.CMCAtLeast(top.Cost, candidate.Cost, p.cfg.AlwaysCopyIfCMCDiff); known && atLeast {
		chance = 100
	}
	if p.opponents(top.Controller, player) {
		chance = 100
	}
	d.out.Chance = chance
	if !p.gate.PercentTrue(chance) && !rule.bypassGate {
		return d.finish(false, fmt.Sprintf("random gate failed at %d%%", chance))
	}

	d.enter(StateFilterCheck)
	if rule.oncePerTurn && p.memory.Contains(player, candidate.HostCardID, MemoryActivatedThisTurn) {
		return d.finish(false, "already copied with this card this turn")
	}
	if candidate.TargetReq == nil {
		return p.fallback(d, candidate, logic, "ability does not target")
	}
	if ParseTargetFilter(candidate.Param(rules.ParamAITargets)) == TargetFilterOnlyOwned && top.Controller != player {
		return d.finish(false, "only copies its own objects")
	}

	d.enter(StateSpeculativeCheck)
	verdict := p.evaluator.Evaluate(top, candidate, player, logic)
	if verdict.Decision != DecisionWillAct {
		return p.fallback(d, candidate, logic, verdict.Reason)
	}

	candidate.AddTarget(top.ID)
	p.memory.Remember(player, candidate.HostCardID, MemoryActivatedThisTurn)
	ref := top.Ref()
	d.out.Target = &ref
	return d.finish(true, verdict.Reason)
}

// fallback accepts without a target only when skipping is not allowed.
func (p *CopyDecisionPolicy) fallback(d *decision, candidate *rules.Ability, logic OverrideLogic, reason string) Outcome {
	switch {
	case candidate.IsMandatory():
		return d.finish(true, reason+"; activation is mandatory")
	case logic.rule().acceptOnFailure:
		return d.finish(true, reason+"; logic is "+logic.String())
	}
	return d.finish(false, reason)
}

func (p *CopyDecisionPolicy) report(candidate *rules.Ability, player string, out Outcome) {
	fields := []zap.Field{
		zap.String("player", player),
		zap.String("ability_id", candidate.ID),
		zap.String("host", candidate.HostName),
		zap.Bool("accepted", out.Accepted),
		zap.String("final_state", string(out.Final())),
		zap.String("reason", out.Reason),
	}
	if out.Target != nil {
		fields = append(fields, zap.String("target_id", out.Target.ID))
	}
	p.logger.Debug("copy decision", fields...)

	if p.bus == nil {
		return
	}
	evt := rules.NewEventWithFlag(rules.EventAIDecision, candidate.ID, candidate.HostCardID, player, out.Accepted)
	evt.Amount = out.Chance
	evt.Data = string(out.Final())
	evt.Description = out.Reason
	path := make([]string, len(out.Path))
	for i, s := range out.Path {
		path[i] = string(s)
	}
	evt.Metadata["path"] = strings.Join(path, ">")
	if out.Target != nil {
		evt.Metadata["target_id"] = out.Target.ID
	}
	p.bus.Publish(evt)
}

// DecideTrigger decides a copy granted by a trigger with no cost to pay.
func (p *CopyDecisionPolicy) DecideTrigger(candidate *rules.Ability, mandatory bool) bool {
	return mandatory || ParseOverrideLogic(candidate.Param(rules.ParamAILogic)) == LogicAlways
}

// DecideDrawback decides a copy that rides along with another ability.
func (p *CopyDecisionPolicy) DecideDrawback(stack StackView, candidate *rules.Ability, player string) bool {
	return p.Decide(stack, candidate, player).Accepted || candidate.IsMandatory()
}

// ChooseSingle picks which ability to copy when several are offered.
func (p *CopyDecisionPolicy) ChooseSingle(options []rules.Ability) (rules.Ability, bool) {
	if len(options) == 0 {
		return rules.Ability{}, false
	}
	return options[0], true
}

// ConfirmAction answers optional "do you want to copy" prompts.
func (p *CopyDecisionPolicy) ConfirmAction() bool {
	return true
}
