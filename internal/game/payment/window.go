package payment

import (
	"fmt"

	"github.com/magefree/mage-casting/internal/game/mana"
	"github.com/magefree/mage-casting/internal/game/rules"
	"go.uber.org/zap"
)

// PaymentStep is where a spell is in paying its costs.
type PaymentStep string

const (
	// PaymentStepBefore allows special actions such as convoke before normal mana.
	PaymentStepBefore PaymentStep = "BEFORE"
	// PaymentStepNormal allows normal mana ability activation.
	PaymentStepNormal PaymentStep = "NORMAL"
	// PaymentStepAfter follows a completed special payment; mana abilities are blocked.
	PaymentStepAfter PaymentStep = "AFTER"
)

// Window holds the one negotiation allowed at a time and reports its outcome
// on the event bus.
type Window struct {
	bus     *rules.EventBus
	logger  *zap.Logger
	active  *Selector
	step    PaymentStep
	history []string
}

// NewWindow creates a payment window. bus may be nil.
func NewWindow(bus *rules.EventBus, logger *zap.Logger) *Window {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Window{
		bus:     bus,
		logger:  logger,
		step:    PaymentStepNormal,
		history: make([]string, 0, 16),
	}
}

// Begin opens the window for sel.
func (w *Window) Begin(sel *Selector) error {
	if w.active != nil {
		return fmt.Errorf("%w for %s", ErrPaymentInProgress, w.active.SpellID())
	}
	w.active = sel
	w.step = PaymentStepBefore
	w.logger.Debug("payment window opened",
		zap.String("spell_id", sel.SpellID()),
		zap.Stringer("mode", sel.Mode()),
	)
	return nil
}

// Active returns the open negotiation, or nil.
func (w *Window) Active() *Selector {
	return w.active
}

// Step returns the current payment step.
func (w *Window) Step() PaymentStep {
	return w.step
}

// CanActivateManaAbilities reports whether normal mana may still be produced.
func (w *Window) CanActivateManaAbilities() bool {
	return w.step != PaymentStepAfter
}

func (w *Window) checkActive(spellID string) error {
	if w.active == nil {
		return ErrNoPayment
	}
	if w.active.SpellID() != spellID {
		return fmt.Errorf("payment mismatch: expected %s, got %s", w.active.SpellID(), spellID)
	}
	return nil
}

// Finish closes the window, taps every committed source and returns what each paid.
// The step moves to AFTER when the whole cost was covered and to NORMAL otherwise.
func (w *Window) Finish(spellID string) (map[string]mana.Shard, error) {
	if err := w.checkActive(spellID); err != nil {
		return nil, err
	}
	sel := w.active

	eventType := rules.EventConvoked
	if sel.Mode() == ModeImprovise {
		eventType = rules.EventImprovised
	}
	for _, c := range sel.Selected() {
		evt := rules.NewEvent(eventType, spellID, c.Source.ID, sel.Controller())
		evt.Data = c.Shard.String()
		evt.Description = fmt.Sprintf("%s tapped for %s", c.Source, sel.Mode())
		w.publish(evt)
	}

	if sel.IsPaid() {
		w.step = PaymentStepAfter
	} else {
		w.step = PaymentStepNormal
	}
	committed := sel.CommittedMap()
	w.history = append(w.history, spellID)
	w.active = nil

	w.logger.Debug("payment window closed",
		zap.String("spell_id", spellID),
		zap.Int("committed", len(committed)),
		zap.String("step", string(w.step)),
	)
	return committed, nil
}

// Abort cancels the negotiation. Nothing is tapped.
func (w *Window) Abort(spellID string) error {
	if err := w.checkActive(spellID); err != nil {
		return err
	}
	sel := w.active
	sel.Cancel()
	w.active = nil
	w.step = PaymentStepNormal

	evt := rules.NewEvent(rules.EventPaymentAborted, spellID, spellID, sel.Controller())
	evt.Data = sel.Mode().String()
	w.publish(evt)

	w.logger.Debug("payment window aborted", zap.String("spell_id", spellID))
	return nil
}

// History returns the IDs of spells whose payment finished, oldest first.
func (w *Window) History() []string {
	out := make([]string, len(w.history))
	copy(out, w.history)
	return out
}

// Reset clears all payment state.
func (w *Window) Reset() {
	w.active = nil
	w.step = PaymentStepNormal
	w.history = w.history[:0]
}

func (w *Window) publish(evt rules.Event) {
	if w.bus != nil {
		w.bus.Publish(evt)
	}
}
