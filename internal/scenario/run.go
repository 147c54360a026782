package scenario

import (
	"context"
	"fmt"

	"github.com/magefree/mage-casting/internal/config"
	"github.com/magefree/mage-casting/internal/game/ai"
	"github.com/magefree/mage-casting/internal/game/payment"
	"github.com/magefree/mage-casting/internal/game/rules"
	"go.uber.org/zap"
)

// Report is what a scenario run produced.
type Report struct {
	Name    string         `yaml:"name"`
	Payment *PaymentReport `yaml:"payment,omitempty"`
	Copy    *CopyReport    `yaml:"copy,omitempty"`
}

// PaymentReport summarises a negotiation.
type PaymentReport struct {
	Mode        string             `yaml:"mode"`
	Prompt      string             `yaml:"prompt"`
	Order       string             `yaml:"order"`
	Commitments []CommitmentReport `yaml:"commitments"`
	Rejections  []string           `yaml:"rejections,omitempty"`
	Remaining   string             `yaml:"remaining"`
	Paid        bool               `yaml:"paid"`
	Aborted     bool               `yaml:"aborted"`
	Step        string             `yaml:"step"`
	Events      int                `yaml:"events"`
}

// CommitmentReport is one tapped source.
type CommitmentReport struct {
	SourceID string `yaml:"source"`
	Shard    string `yaml:"shard"`
}

// CopyReport summarises a copy decision.
type CopyReport struct {
	Accepted bool     `yaml:"accepted"`
	Target   string   `yaml:"target,omitempty"`
	Chance   int      `yaml:"chance"`
	Path     []string `yaml:"path"`
	Reason   string   `yaml:"reason"`
	Resolved string   `yaml:"resolved,omitempty"` // candidate that resolved onto its target
	Stack    int      `yaml:"stack"`              // objects left on the stack afterwards
	Copies   int      `yaml:"copies"`             // COPIED_STACKOBJECT events seen
}

// Run plays sc against cfg.
func Run(ctx context.Context, cfg *config.Config, sc *Scenario, logger *zap.Logger) (*Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg = config.Default()
	}
	logger = logger.With(zap.String("scenario", sc.Name))
	bus := rules.NewEventBus()
	report := &Report{Name: sc.Name}

	if sc.Payment != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pr, err := runPayment(cfg, sc.Payment, bus, logger)
		if err != nil {
			return nil, fmt.Errorf("payment: %w", err)
		}
		report.Payment = pr
	}

	if sc.Copy != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cr, err := runCopy(cfg, sc.Copy, bus, logger)
		if err != nil {
			return nil, fmt.Errorf("copy: %w", err)
		}
		report.Copy = cr
	}

	return report, nil
}

func runPayment(cfg *config.Config, setup *PaymentSetup, bus *rules.EventBus, logger *zap.Logger) (*PaymentReport, error) {
	pcfg, err := setup.config()
	if err != nil {
		return nil, err
	}
	sel, err := payment.NewSelector(pcfg, logger)
	if err != nil {
		return nil, err
	}

	events := 0
	for _, t := range []rules.EventType{rules.EventConvoked, rules.EventImprovised, rules.EventPaymentAborted} {
		bus.SubscribeTyped(t, func(rules.Event) { events++ })
	}

	window := payment.NewWindow(bus, logger)
	if err := window.Begin(sel); err != nil {
		return nil, err
	}

	order := cfg.Payment.RankOrder(sel.Mode())
	report := &PaymentReport{
		Mode:   sel.Mode().String(),
		Prompt: sel.Prompt(),
		Order:  string(order),
	}

	for _, id := range setup.Toggles {
		if _, err := sel.Toggle(id); err != nil {
			report.Rejections = append(report.Rejections, fmt.Sprintf("%s: %s", id, payment.ReasonOf(err)))
			logger.Info("toggle rejected", zap.String("source_id", id), zap.Error(err))
		}
	}
	if setup.Auto {
		sel.AutoComplete(payment.Rank(sel.Sources(), payment.ByValue, order))
	}
	for _, c := range sel.Selected() {
		report.Commitments = append(report.Commitments, CommitmentReport{SourceID: c.Source.ID, Shard: c.Shard.String()})
	}

	if setup.Abort {
		if err := window.Abort(pcfg.SpellID); err != nil {
			return nil, err
		}
		report.Aborted = true
	} else if _, err := window.Finish(pcfg.SpellID); err != nil {
		return nil, err
	}

	report.Remaining = sel.RemainingCost().String()
	report.Paid = sel.IsPaid()
	report.Step = string(window.Step())
	report.Events = events
	return report, nil
}

func runCopy(cfg *config.Config, setup *CopySetup, bus *rules.EventBus, logger *zap.Logger) (*CopyReport, error) {
	stack := rules.NewStackManager()
	for _, as := range setup.Stack {
		a, err := as.ability()
		if err != nil {
			return nil, err
		}
		stack.PushAbility(a)
	}
	candidate, err := setup.Candidate.ability()
	if err != nil {
		return nil, err
	}

	classifier := ai.NewCardDenylist(setup.Denylist...)
	if cfg.AI.DenylistPath != "" {
		loaded, err := ai.LoadCardDenylist(cfg.AI.DenylistPath)
		if err != nil {
			return nil, err
		}
		loaded.Add(setup.Denylist...)
		classifier = loaded
	}

	var gate ai.Percenter
	if setup.Roll != nil {
		gate = ai.FixedRoll(*setup.Roll)
	} else {
		g := ai.NewRandomGate(cfg.AI.Seed)
		logger.Debug("copy gate seeded", zap.Int64("seed", g.Seed()))
		gate = g
	}

	answer := playDecision(setup.Play)
	play := ai.PlayEvaluatorFunc(func(rules.Ability, bool, bool) ai.PlayDecision { return answer })

	player := setup.Player
	if player == "" {
		player = candidate.Controller
	}
	pctx := ai.NewPlayerContext(player, ai.ContextOptions{
		Copy:       cfg.AI.CopyConfig(),
		Play:       play,
		Classifier: classifier,
		Gate:       gate,
		Opponents:  opponentsOf(setup.Opponents),
		Bus:        bus,
	}, logger)
	defer pctx.Close()

	for _, card := range setup.Remember {
		pctx.Memory.Remember(player, card, ai.MemoryActivatedThisTurn)
	}

	out := pctx.DecideCopy(stack, &candidate)
	report := &CopyReport{
		Accepted: out.Accepted,
		Chance:   out.Chance,
		Reason:   out.Reason,
	}
	for _, s := range out.Path {
		report.Path = append(report.Path, string(s))
	}
	if out.Target != nil {
		report.Target = out.Target.ID
	}
	copies := bus.SubscribeTyped(rules.EventCopiedStackItem, func(rules.Event) { report.Copies++ })
	defer bus.Unsubscribe(copies)
	if out.Accepted && out.Target != nil {
		resolved, err := castAndResolve(stack, candidate, bus)
		if err != nil {
			return nil, err
		}
		report.Resolved = resolved
	}
	report.Stack = stack.Len()
	return report, nil
}

// castAndResolve puts the committed candidate on the stack, resolves it at once
// and announces the copy of its target.
func castAndResolve(stack *rules.StackManager, candidate rules.Ability, bus *rules.EventBus) (string, error) {
	stack.PushAbility(candidate)
	item, err := stack.Pop()
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", candidate.ID, err)
	}
	for _, target := range item.Ability.Targets {
		bus.Publish(rules.NewEvent(rules.EventCopiedStackItem, target, item.ID(), item.Ability.Controller))
	}
	return item.ID(), nil
}

func playDecision(s string) ai.PlayDecision {
	switch s {
	case "", "will_play":
		return ai.PlayWillPlay
	case "cant_afford":
		return ai.PlayCantAfford
	case "targeting_failed":
		return ai.PlayTargetingFailed
	case "not_worth_it":
		return ai.PlayNotWorthIt
	default:
		return ai.PlayCantPlay
	}
}

func opponentsOf(players []string) ai.OpponentFunc {
	if len(players) == 0 {
		return ai.DifferentPlayers
	}
	set := make(map[string]struct{}, len(players))
	for _, p := range players {
		set[p] = struct{}{}
	}
	return func(a, _ string) bool {
		_, ok := set[a]
		return ok
	}
}
