package ai

import (
	"github.com/magefree/mage-casting/internal/game/rules"
	"go.uber.org/zap"
)

// PlayerContext is the per-player AI state. It owns the player's memory,
// which lives for one turn.
type PlayerContext struct {
	PlayerID string
	Memory   *AbilityMemory
	Policy   *CopyDecisionPolicy
}

// ContextOptions are the collaborators a PlayerContext is built from.
type ContextOptions struct {
	Copy       CopyConfig
	Play       PlayEvaluator
	Classifier ComplexityClassifier
	Gate       Percenter
	Opponents  OpponentFunc
	Bus        *rules.EventBus // turn boundaries in, decisions out; may be nil
}

// NewPlayerContext creates the AI context for playerID.
func NewPlayerContext(playerID string, opts ContextOptions, logger *zap.Logger) *PlayerContext {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("ai_player", playerID))

	memory := NewAbilityMemory()
	evaluator := NewSpeculativeEvaluator(opts.Play, opts.Classifier, logger)
	policy := NewCopyDecisionPolicy(opts.Copy, evaluator, memory, opts.Gate, logger)
	policy.SetOpponents(opts.Opponents)

	if opts.Bus != nil {
		memory.Attach(opts.Bus)
		policy.SetEventBus(opts.Bus)
	}

	return &PlayerContext{PlayerID: playerID, Memory: memory, Policy: policy}
}

// DecideCopy runs the copy decision for this player.
func (c *PlayerContext) DecideCopy(stack StackView, candidate *rules.Ability) Outcome {
	return c.Policy.Decide(stack, candidate, c.PlayerID)
}

// Close stops listening for turn boundaries.
func (c *PlayerContext) Close() {
	c.Memory.Detach()
}
