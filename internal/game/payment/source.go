package payment

import (
	"errors"
	"fmt"

	"github.com/magefree/mage-casting/internal/game/mana"
)

// Mode selects which alternative payment mechanic is being negotiated.
type Mode int

const (
	// ModeConvoke taps creatures; each pays {1} or one mana of its color.
	ModeConvoke Mode = iota
	// ModeImprovise taps artifacts; each pays {1}.
	ModeImprovise
)

func (m Mode) String() string {
	if m == ModeImprovise {
		return "Improvise"
	}
	return "Convoke"
}

// CardType is the permanent type tapped in this mode.
func (m Mode) CardType() string {
	if m == ModeImprovise {
		return "artifact"
	}
	return "creature"
}

// ParseMode parses "convoke" or "improvise".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "convoke", "Convoke", "CONVOKE", "":
		return ModeConvoke, nil
	case "improvise", "Improvise", "IMPROVISE":
		return ModeImprovise, nil
	}
	return ModeConvoke, fmt.Errorf("unknown payment mode %q", s)
}

// Source is an untapped permanent offered toward the cost.
type Source struct {
	ID     string
	Name   string
	Colors mana.ColorSet // empty means colorless
	Value  int           // caller-defined worth, used for ranking
	// Committed is filled in by Selector.Sources.
	Committed bool
}

func (s Source) String() string {
	if s.Name != "" {
		return s.Name
	}
	return s.ID
}

// Commitment records the exact shard a source paid.
type Commitment struct {
	Source Source
	Color  mana.ColorSet // mask used when paying
	Shard  mana.Shard
}

// RejectReason explains why a toggle was refused.
type RejectReason string

const (
	ReasonNone           RejectReason = ""
	ReasonNotEligible    RejectReason = "NOT_ELIGIBLE"
	ReasonNoMatchingCost RejectReason = "NO_MATCHING_COST"
	ReasonColorNotChosen RejectReason = "COLOR_NOT_CHOSEN"
)

var (
	// ErrNotEligible is returned for sources outside the offered set.
	ErrNotEligible = errors.New("source not eligible")
	// ErrNoMatchingCost is returned when no unpaid shard accepts the source's mana.
	ErrNoMatchingCost = errors.New("no matching cost")
	// ErrColorNotChosen is returned when disambiguation failed or returned an invalid color.
	ErrColorNotChosen = errors.New("color not chosen")
	// ErrPaymentInProgress is returned when a second negotiation is opened.
	ErrPaymentInProgress = errors.New("payment already in progress")
	// ErrNoPayment is returned when closing a window with nothing open.
	ErrNoPayment = errors.New("no payment in progress")
)

// ReasonOf maps a toggle error to its RejectReason.
func ReasonOf(err error) RejectReason {
	switch {
	case err == nil:
		return ReasonNone
	case errors.Is(err, ErrNotEligible):
		return ReasonNotEligible
	case errors.Is(err, ErrNoMatchingCost):
		return ReasonNoMatchingCost
	case errors.Is(err, ErrColorNotChosen):
		return ReasonColorNotChosen
	}
	return ReasonNone
}
