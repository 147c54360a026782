package ai

import "strings"

// OverrideLogic is the closed set of AI hints a copy ability may carry in its
// AILogic parameter.
type OverrideLogic int

const (
	LogicNone OverrideLogic = iota
	// LogicAlways activates even when nothing worth copying was found.
	LogicAlways
	// LogicAlwaysIfViable skips the random gate but still needs a viable target.
	LogicAlwaysIfViable
	// LogicOnceIfViable is LogicAlwaysIfViable limited to once per turn per card.
	LogicOnceIfViable
	// LogicAlwaysCopyActivatedAbilities also copies the player's own activated abilities.
	LogicAlwaysCopyActivatedAbilities
	// LogicOther is any hint this policy does not act on.
	LogicOther
)

var logicNames = map[OverrideLogic]string{
	LogicNone:                         "",
	LogicAlways:                       "Always",
	LogicAlwaysIfViable:               "AlwaysIfViable",
	LogicOnceIfViable:                 "OnceIfViable",
	LogicAlwaysCopyActivatedAbilities: "AlwaysCopyActivatedAbilities",
	LogicOther:                        "Other",
}

func (l OverrideLogic) String() string {
	return logicNames[l]
}

// ParseOverrideLogic maps an AILogic value to its OverrideLogic. Matching is exact.
func ParseOverrideLogic(s string) OverrideLogic {
	s = strings.TrimSpace(s)
	for logic, name := range logicNames {
		if logic != LogicOther && name == s {
			return logic
		}
	}
	return LogicOther
}

// logicRule is what one OverrideLogic changes in the copy decision.
type logicRule struct {
	bypassGate      bool // random gate failure does not reject
	oncePerTurn     bool // reject if the host card already acted this turn
	copyActivated   bool // own activated abilities are always worth copying
	acceptOnFailure bool // accept even without a target
}

var logicRules = map[OverrideLogic]logicRule{
	LogicNone:                         {},
	LogicOther:                        {},
	LogicAlways:                       {acceptOnFailure: true},
	LogicAlwaysIfViable:               {bypassGate: true},
	LogicOnceIfViable:                 {bypassGate: true, oncePerTurn: true},
	LogicAlwaysCopyActivatedAbilities: {bypassGate: true, copyActivated: true},
}

func (l OverrideLogic) rule() logicRule {
	return logicRules[l]
}

// TargetFilter restricts which stack objects the AI is willing to target.
type TargetFilter int

const (
	TargetFilterAny TargetFilter = iota
	// TargetFilterOnlyOwned only copies objects the deciding player activated.
	TargetFilterOnlyOwned
)

// ParseTargetFilter maps an AITgts value to its TargetFilter.
func ParseTargetFilter(s string) TargetFilter {
	if strings.TrimSpace(s) == "OnlyOwned" {
		return TargetFilterOnlyOwned
	}
	return TargetFilterAny
}
