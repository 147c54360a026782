package payment

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/magefree/mage-casting/internal/game/mana"
	"go.uber.org/zap"
)

// Config describes one convoke or improvise negotiation.
type Config struct {
	SpellID     string
	Controller  string
	Description string // stack description shown above the prompt, optional
	Cost        *mana.ManaCost
	XValue      int
	Mode        Mode
	Sources     []Source
	Chooser     ColorChooser
}

// Selector lets a player toggle untapped permanents on and off toward a cost.
// Every call either fully applies or leaves the ledger untouched.
type Selector struct {
	id          string
	spellID     string
	controller  string
	description string
	mode        Mode
	cost        *mana.ManaCost
	ledger      *mana.CostLedger
	order       []string
	eligible    map[string]Source
	selection   []Commitment
	chooser     ColorChooser
	logger      *zap.Logger
}

// NewSelector opens a negotiation over cfg.Sources.
func NewSelector(cfg Config, logger *zap.Logger) (*Selector, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	chooser := cfg.Chooser
	if chooser == nil {
		chooser = FirstColorChooser{}
	}

	s := &Selector{
		id:          uuid.NewString(),
		spellID:     cfg.SpellID,
		controller:  cfg.Controller,
		description: cfg.Description,
		mode:        cfg.Mode,
		cost:        cfg.Cost.Copy(),
		ledger:      mana.NewCostLedger(cfg.Cost, cfg.XValue),
		eligible:    make(map[string]Source, len(cfg.Sources)),
		chooser:     chooser,
		logger:      logger,
	}
	for _, src := range cfg.Sources {
		if src.ID == "" {
			return nil, fmt.Errorf("source %q has no ID", src.Name)
		}
		if _, dup := s.eligible[src.ID]; dup {
			return nil, fmt.Errorf("duplicate source %s", src.ID)
		}
		src.Committed = false
		s.eligible[src.ID] = src
		s.order = append(s.order, src.ID)
	}

	s.logger.Debug("payment negotiation opened",
		zap.String("negotiation_id", s.id),
		zap.String("spell_id", s.spellID),
		zap.Stringer("mode", s.mode),
		zap.String("cost", s.ledger.String()),
		zap.Int("sources", len(s.order)),
	)
	return s, nil
}

// ID returns the negotiation ID.
func (s *Selector) ID() string { return s.id }

// SpellID returns the spell being paid for.
func (s *Selector) SpellID() string { return s.spellID }

// Controller returns the paying player.
func (s *Selector) Controller() string { return s.controller }

// Mode returns the negotiation mode.
func (s *Selector) Mode() Mode { return s.mode }

// Toggle selects the source, or deselects it if already selected. It returns
// whether the source is selected afterwards. Rejections leave state unchanged.
func (s *Selector) Toggle(sourceID string) (bool, error) {
	return s.toggle(sourceID, s.chooser)
}

func (s *Selector) toggle(sourceID string, chooser ColorChooser) (bool, error) {
	src, ok := s.eligible[sourceID]
	if !ok {
		return false, fmt.Errorf("%w: %s is not an untapped %s you may tap for %s",
			ErrNotEligible, sourceID, s.mode.CardType(), s.mode)
	}

	if idx := s.indexOf(sourceID); idx >= 0 {
		c := s.selection[idx]
		s.ledger.Refund(c.Shard, 1)
		s.selection = append(s.selection[:idx], s.selection[idx+1:]...)
		s.logger.Debug("payment source deselected",
			zap.String("spell_id", s.spellID),
			zap.String("source_id", sourceID),
			zap.Stringer("shard", c.Shard),
			zap.Int("outstanding", s.ledger.Outstanding()),
		)
		return false, nil
	}

	mask, err := s.maskFor(src, chooser)
	if err != nil {
		return false, err
	}

	shard, ok := s.ledger.PayShard(mask)
	if !ok {
		return false, fmt.Errorf("%w: the colors provided by %s cannot be used to pay the mana cost of %s",
			ErrNoMatchingCost, src, s.ledger)
	}
	s.selection = append(s.selection, Commitment{Source: src, Color: mask, Shard: shard})

	s.logger.Debug("payment source selected",
		zap.String("spell_id", s.spellID),
		zap.String("source_id", sourceID),
		zap.Stringer("mask", mask),
		zap.Stringer("shard", shard),
		zap.Int("outstanding", s.ledger.Outstanding()),
	)
	return true, nil
}

// maskFor works out which colors src offers. Improvise only ever pays generic.
// A multicolored creature is narrowed to the colors still unpaid; only a real
// ambiguity reaches the chooser.
func (s *Selector) maskFor(src Source, chooser ColorChooser) (mana.ColorSet, error) {
	if s.mode == ModeImprovise {
		return mana.ColorlessBit, nil
	}

	colors := src.Colors.Chromatic()
	if colors.IsMulticolor() {
		colors = colors.Intersect(s.ledger.UnpaidColors())
	}
	if !colors.IsMulticolor() {
		return colors, nil
	}

	prompt := fmt.Sprintf("%s %s for which color?", s.mode, src)
	choice, err := chooser.ChooseColor(prompt, src, colors)
	if err != nil {
		return mana.ColorNone, fmt.Errorf("%w: %v", ErrColorNotChosen, err)
	}
	if choice.Chromatic() != choice || choice.IsMulticolor() || !colors.Contains(choice) {
		return mana.ColorNone, fmt.Errorf("%w: %s is not one of %s", ErrColorNotChosen, choice, colors)
	}
	return choice, nil
}

// AutoComplete walks ranked best-first and selects whatever still helps,
// stopping once the cost is paid. Sources that are ineligible, already selected
// or rejected are skipped. Ambiguous colors resolve to the first unpaid color
// in WUBRG order without prompting.
func (s *Selector) AutoComplete(ranked []Source) []Commitment {
	for _, src := range ranked {
		if s.ledger.IsPaid() {
			break
		}
		if s.IsSelected(src.ID) {
			continue
		}
		if _, err := s.toggle(src.ID, FirstColorChooser{}); err != nil {
			s.logger.Debug("auto payment skipped source",
				zap.String("spell_id", s.spellID),
				zap.String("source_id", src.ID),
				zap.String("reason", string(ReasonOf(err))),
			)
		}
	}

	s.logger.Debug("auto payment finished",
		zap.String("spell_id", s.spellID),
		zap.Int("selected", len(s.selection)),
		zap.String("remaining", s.ledger.String()),
	)
	return s.Selected()
}

// Cancel refunds every commitment and clears the selection.
func (s *Selector) Cancel() {
	for i := len(s.selection) - 1; i >= 0; i-- {
		s.ledger.Refund(s.selection[i].Shard, 1)
	}
	s.selection = nil
	s.logger.Debug("payment negotiation cancelled",
		zap.String("spell_id", s.spellID),
		zap.String("cost", s.ledger.String()),
	)
}

func (s *Selector) indexOf(sourceID string) int {
	for i, c := range s.selection {
		if c.Source.ID == sourceID {
			return i
		}
	}
	return -1
}

// IsSelected reports whether sourceID is committed.
func (s *Selector) IsSelected(sourceID string) bool {
	return s.indexOf(sourceID) >= 0
}

// RemainingCost returns the unpaid part of the cost.
func (s *Selector) RemainingCost() *mana.ManaCost {
	return s.ledger.ToManaCost()
}

// Remaining returns the unpaid shard counts.
func (s *Selector) Remaining() map[mana.Shard]int {
	return s.ledger.Remaining()
}

// Cost returns the full cost being negotiated.
func (s *Selector) Cost() *mana.ManaCost {
	return s.cost.Copy()
}

// Outstanding returns the number of unpaid shards.
func (s *Selector) Outstanding() int {
	return s.ledger.Outstanding()
}

// IsPaid reports whether the selection covers the whole cost.
func (s *Selector) IsPaid() bool {
	return s.ledger.IsPaid()
}

// CommittedMap returns source ID to shard paid.
func (s *Selector) CommittedMap() map[string]mana.Shard {
	out := make(map[string]mana.Shard, len(s.selection))
	for _, c := range s.selection {
		out[c.Source.ID] = c.Shard
	}
	return out
}

// Selected returns commitments in the order they were made.
func (s *Selector) Selected() []Commitment {
	out := make([]Commitment, len(s.selection))
	copy(out, s.selection)
	for i := range out {
		out[i].Source.Committed = true
	}
	return out
}

// Sources returns the offered sources in their original order.
func (s *Selector) Sources() []Source {
	out := make([]Source, 0, len(s.order))
	for _, id := range s.order {
		src := s.eligible[id]
		src.Committed = s.IsSelected(id)
		out = append(out, src)
	}
	return out
}

// MaxSelections is the most sources that can ever be committed at once.
func (s *Selector) MaxSelections() int {
	return min(s.ledger.Total(), len(s.order))
}

// Prompt is the message shown to a human player.
func (s *Selector) Prompt() string {
	var sb strings.Builder
	if s.description != "" {
		sb.WriteString(s.description)
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "Choose %s to tap for %s.\nRemaining mana cost is %s",
		s.mode.CardType(), s.mode, s.ledger)
	return sb.String()
}

// ActivateAction describes what clicking sourceID does, or "" if it is not offered.
func (s *Selector) ActivateAction(sourceID string) string {
	if _, ok := s.eligible[sourceID]; !ok {
		return ""
	}
	return fmt.Sprintf("tap %s for %s", s.mode.CardType(), s.mode)
}
