package rules

import (
	"github.com/google/uuid"
	"github.com/magefree/mage-casting/internal/game/mana"
	"github.com/magefree/mage-casting/internal/game/targeting"
)

// AbilityKind is the closed set of shapes a stack object can take.
type AbilityKind int

const (
	AbilityKindSpell AbilityKind = iota
	AbilityKindActivated
	AbilityKindTriggered
	// AbilityKindWrapper is a triggered ability wrapped for delayed or optional handling.
	AbilityKindWrapper
)

var abilityKindNames = map[AbilityKind]string{
	AbilityKindSpell:     "SPELL",
	AbilityKindActivated: "ACTIVATED",
	AbilityKindTriggered: "TRIGGERED",
	AbilityKindWrapper:   "WRAPPER",
}

func (k AbilityKind) String() string {
	if name, ok := abilityKindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseAbilityKind maps a kind name back to its value.
func ParseAbilityKind(name string) (AbilityKind, bool) {
	for kind, n := range abilityKindNames {
		if n == name {
			return kind, true
		}
	}
	return AbilityKindSpell, false
}

// TargetType returns the targeting category of a stack object of this kind.
func (k AbilityKind) TargetType() targeting.TargetType {
	switch k {
	case AbilityKindSpell:
		return targeting.TargetTypeSpell
	case AbilityKindActivated:
		return targeting.TargetTypeActivatedAbility
	default:
		return targeting.TargetTypeTriggeredAbility
	}
}

// APIType names the effect an ability performs.
type APIType string

const (
	APICopySpellAbility APIType = "CopySpellAbility"
	APIDealDamage       APIType = "DealDamage"
	APIDraw             APIType = "Draw"
	APICounter          APIType = "Counter"
	APIPump             APIType = "Pump"
)

// Well-known ability parameters.
const (
	ParamAILogic            = "AILogic"
	ParamAITargets          = "AITgts"
	ParamConditionManaSpent = "ConditionManaSpent"
	ParamCantBeTargeted     = "CantBeTargeted"
)

// Ability is a spell or ability as seen by the casting pipeline.
type Ability struct {
	ID         string
	HostCardID string
	HostName   string
	Controller string // activating player
	Kind       AbilityKind
	API        APIType
	Cost       *mana.ManaCost // nil when no mana cost is determinable
	Params     map[string]string
	Targets    []string
	TargetReq  *targeting.TargetRequirement
	Mandatory  bool
	Copied     bool
}

// AbilityRef identifies a stack object without holding on to it.
type AbilityRef struct {
	ID         string
	HostCardID string
	Controller string
}

// Ref returns a reference to the ability.
func (a *Ability) Ref() AbilityRef {
	return AbilityRef{ID: a.ID, HostCardID: a.HostCardID, Controller: a.Controller}
}

// IsMandatory reports whether the ability must be activated if possible.
func (a *Ability) IsMandatory() bool {
	return a.Mandatory
}

// IsWrapper reports whether the ability is a wrapped trigger.
func (a *Ability) IsWrapper() bool {
	return a.Kind == AbilityKindWrapper
}

// HasParam reports whether key is set.
func (a *Ability) HasParam(key string) bool {
	_, ok := a.Params[key]
	return ok
}

// Param returns the value of key, or "".
func (a *Ability) Param(key string) string {
	return a.Params[key]
}

// ParamOrDefault returns the value of key, or def when unset.
func (a *Ability) ParamOrDefault(key, def string) string {
	if v, ok := a.Params[key]; ok {
		return v
	}
	return def
}

// AddTarget records a chosen target.
func (a *Ability) AddTarget(id string) {
	a.Targets = append(a.Targets, id)
}

// ResetTargets clears all chosen targets.
func (a *Ability) ResetTargets() {
	a.Targets = nil
}

// Clone returns a deep copy sharing no mutable state with a.
func (a *Ability) Clone() Ability {
	cpy := *a
	cpy.Cost = a.Cost.Copy()
	if a.Params != nil {
		cpy.Params = make(map[string]string, len(a.Params))
		for k, v := range a.Params {
			cpy.Params[k] = v
		}
	}
	if a.Targets != nil {
		cpy.Targets = append([]string(nil), a.Targets...)
	}
	if a.TargetReq != nil {
		req := *a.TargetReq
		cpy.TargetReq = &req
	}
	return cpy
}

// SpeculativeCopy returns a detached copy controlled by forPlayer with its
// targets cleared. The copy has a fresh ID and is never placed on the stack.
func (a *Ability) SpeculativeCopy(forPlayer string) *Ability {
	cpy := a.Clone()
	cpy.ID = uuid.NewString()
	cpy.Controller = forPlayer
	cpy.Copied = true
	cpy.ResetTargets()
	return &cpy
}

// CanBeTargetedBy reports whether source's target requirement allows choosing a.
func (a *Ability) CanBeTargetedBy(source *Ability) bool {
	if source == nil || source.TargetReq == nil {
		return false
	}
	if a.HasParam(ParamCantBeTargeted) {
		return false
	}
	return source.TargetReq.AllowsStackObject(a.Kind.TargetType(), a.Controller, source.Controller)
}
