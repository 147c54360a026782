package targeting

import (
	"fmt"
	"regexp"
	"strings"
)

// TargetType represents the type of target a spell or ability can have.
type TargetType string

const (
	// TargetTypeCreature targets creatures
	TargetTypeCreature TargetType = "CREATURE"
	// TargetTypePlayer targets players
	TargetTypePlayer TargetType = "PLAYER"
	// TargetTypePermanent targets permanents (creatures, artifacts, enchantments, etc.)
	TargetTypePermanent TargetType = "PERMANENT"
	// TargetTypeSpell targets spells on the stack
	TargetTypeSpell TargetType = "SPELL"
	// TargetTypeActivatedAbility targets activated abilities on the stack
	TargetTypeActivatedAbility TargetType = "ACTIVATED_ABILITY"
	// TargetTypeTriggeredAbility targets triggered abilities on the stack
	TargetTypeTriggeredAbility TargetType = "TRIGGERED_ABILITY"
	// TargetTypeAbility targets activated or triggered abilities on the stack
	TargetTypeAbility TargetType = "ABILITY"
	// TargetTypeSpellOrAbility targets any object on the stack
	TargetTypeSpellOrAbility TargetType = "SPELL_OR_ABILITY"
)

// TargetController restricts targets by who controls them.
type TargetController string

const (
	ControllerAny      TargetController = ""
	ControllerYou      TargetController = "YOU"
	ControllerOpponent TargetController = "OPPONENT"
)

// TargetRequirement defines what targets a spell or ability requires.
type TargetRequirement struct {
	// Type specifies what kind of target is required
	Type TargetType
	// Controller restricts whose objects may be chosen
	Controller TargetController
	// MinTargets is the minimum number of targets required (usually 1)
	MinTargets int
	// MaxTargets is the maximum number of targets allowed (usually 1, but can be "up to X")
	MaxTargets int
	// Optional indicates if targets are optional (e.g., "up to X targets")
	Optional bool
	// Description is a human-readable description of the target requirement
	Description string
}

// IsStackTarget reports whether the requirement chooses objects on the stack.
func (tr TargetRequirement) IsStackTarget() bool {
	switch tr.Type {
	case TargetTypeSpell, TargetTypeActivatedAbility, TargetTypeTriggeredAbility,
		TargetTypeAbility, TargetTypeSpellOrAbility:
		return true
	default:
		return false
	}
}

// AllowsStackObject checks whether a stack object of objectType controlled by
// objectController can be chosen by a source controlled by sourceController.
func (tr TargetRequirement) AllowsStackObject(objectType TargetType, objectController, sourceController string) bool {
	if !tr.allowsType(objectType) {
		return false
	}
	switch tr.Controller {
	case ControllerYou:
		return objectController == sourceController
	case ControllerOpponent:
		return objectController != sourceController
	default:
		return true
	}
}

func (tr TargetRequirement) allowsType(objectType TargetType) bool {
	switch tr.Type {
	case TargetTypeSpellOrAbility:
		return objectType == TargetTypeSpell || objectType == TargetTypeActivatedAbility ||
			objectType == TargetTypeTriggeredAbility
	case TargetTypeAbility:
		return objectType == TargetTypeActivatedAbility || objectType == TargetTypeTriggeredAbility
	default:
		return tr.Type == objectType
	}
}

// TargetSelection represents a player's target selection for a spell or ability.
type TargetSelection struct {
	// Targets is a list of target IDs (can be card IDs, player IDs or stack object IDs)
	Targets []string
	// Requirement is the requirement this selection satisfies
	Requirement TargetRequirement
}

// Validate checks if the target selection is valid.
func (ts *TargetSelection) Validate() error {
	if ts == nil {
		return fmt.Errorf("target selection is nil")
	}
	count := len(ts.Targets)
	if count < ts.Requirement.MinTargets {
		return fmt.Errorf("not enough targets: need at least %d, got %d", ts.Requirement.MinTargets, count)
	}
	if count > ts.Requirement.MaxTargets {
		return fmt.Errorf("too many targets: need at most %d, got %d", ts.Requirement.MaxTargets, count)
	}
	return nil
}

var targetPatterns = []struct {
	pattern *regexp.Regexp
	kind    TargetType
}{
	{regexp.MustCompile(`target spell or ability`), TargetTypeSpellOrAbility},
	{regexp.MustCompile(`target activated or triggered ability`), TargetTypeAbility},
	{regexp.MustCompile(`target activated ability`), TargetTypeActivatedAbility},
	{regexp.MustCompile(`target triggered ability`), TargetTypeTriggeredAbility},
	{regexp.MustCompile(`target (?:[a-z]+ or [a-z]+ |[a-z]+ )?spell`), TargetTypeSpell},
	{regexp.MustCompile(`target creature`), TargetTypeCreature},
	{regexp.MustCompile(`target player`), TargetTypePlayer},
	{regexp.MustCompile(`target permanent`), TargetTypePermanent},
}

// ParseTargetRequirements parses target requirements from a card's rules text.
// This is a heuristic parser; the first stack-object phrase wins so that
// "target spell or ability" is not also read as "target spell".
func ParseTargetRequirements(rulesText string) []TargetRequirement {
	text := strings.ToLower(rulesText)
	requirements := []TargetRequirement{}
	stackMatched := false

	for _, tp := range targetPatterns {
		loc := tp.pattern.FindStringIndex(text)
		if loc == nil {
			continue
		}
		req := TargetRequirement{
			Type:        tp.kind,
			MinTargets:  1,
			MaxTargets:  1,
			Description: text[loc[0]:loc[1]],
		}
		if req.IsStackTarget() {
			if stackMatched {
				continue
			}
			stackMatched = true
		}
		rest := text[loc[1]:]
		switch {
		case strings.HasPrefix(rest, " you control"):
			req.Controller = ControllerYou
		case strings.HasPrefix(rest, " an opponent controls"), strings.HasPrefix(rest, " you don't control"):
			req.Controller = ControllerOpponent
		}
		requirements = append(requirements, req)
	}

	if strings.Contains(text, "up to") {
		for i := range requirements {
			requirements[i].Optional = true
			requirements[i].MinTargets = 0
		}
	}

	return requirements
}
