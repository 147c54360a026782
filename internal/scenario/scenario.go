package scenario

import (
	"fmt"
	"os"

	"github.com/magefree/mage-casting/internal/game/mana"
	"github.com/magefree/mage-casting/internal/game/payment"
	"github.com/magefree/mage-casting/internal/game/rules"
	"github.com/magefree/mage-casting/internal/game/targeting"
	"gopkg.in/yaml.v3"
)

// Scenario is one scripted casting situation.
type Scenario struct {
	Name    string        `yaml:"name"`
	Payment *PaymentSetup `yaml:"payment,omitempty"`
	Copy    *CopySetup    `yaml:"copy,omitempty"`
}

// PaymentSetup describes a convoke or improvise negotiation.
type PaymentSetup struct {
	SpellID     string            `yaml:"spell_id"`
	Controller  string            `yaml:"controller"`
	Description string            `yaml:"description"`
	Cost        string            `yaml:"cost"`
	X           int               `yaml:"x"`
	Mode        string            `yaml:"mode"`
	Sources     []SourceSetup     `yaml:"sources"`
	Choices     map[string]string `yaml:"choices"` // source ID to color letters, "" for generic
	Toggles     []string          `yaml:"toggles"`
	Auto        bool              `yaml:"auto"`
	Abort       bool              `yaml:"abort"`
}

// SourceSetup is one untapped permanent.
type SourceSetup struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Colors string `yaml:"colors"`
	Value  int    `yaml:"value"`
}

// CopySetup describes a copy decision.
type CopySetup struct {
	Player    string         `yaml:"player"`
	Stack     []AbilitySetup `yaml:"stack"` // bottom first
	Candidate AbilitySetup   `yaml:"candidate"`
	Roll      *int           `yaml:"roll,omitempty"` // forced gate roll in [0,100)
	Play      string         `yaml:"play"`           // answer of the play evaluator for spells
	Remember  []string       `yaml:"remember"`       // host cards already used this turn
	Denylist  []string       `yaml:"denylist"`       // card names too complex to copy
	Opponents []string       `yaml:"opponents"`      // empty means every other player
}

// AbilitySetup is a spell or ability.
type AbilitySetup struct {
	ID         string            `yaml:"id"`
	HostCardID string            `yaml:"host_card_id"`
	HostName   string            `yaml:"host_name"`
	Controller string            `yaml:"controller"`
	Kind       string            `yaml:"kind"`
	API        string            `yaml:"api"`
	Cost       string            `yaml:"cost"`
	Params     map[string]string `yaml:"params"`
	Targets    []string          `yaml:"targets"`
	Text       string            `yaml:"text"` // rules text the target requirement is read from
	Mandatory  bool              `yaml:"mandatory"`
}

// Load reads a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return Parse(data)
}

// Parse decodes a scenario and checks that it can be run.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario YAML: %w", err)
	}
	if sc.Payment == nil && sc.Copy == nil {
		return nil, fmt.Errorf("scenario %q has neither payment nor copy section", sc.Name)
	}
	if sc.Copy != nil && sc.Copy.Roll != nil && (*sc.Copy.Roll < 0 || *sc.Copy.Roll >= 100) {
		return nil, fmt.Errorf("scenario %q: roll %d outside [0,100)", sc.Name, *sc.Copy.Roll)
	}
	return &sc, nil
}

func (p *PaymentSetup) config() (payment.Config, error) {
	cost, err := mana.ParseCost(p.Cost)
	if err != nil {
		return payment.Config{}, fmt.Errorf("payment cost: %w", err)
	}
	mode, err := payment.ParseMode(p.Mode)
	if err != nil {
		return payment.Config{}, err
	}
	sources := make([]payment.Source, 0, len(p.Sources))
	for _, s := range p.Sources {
		sources = append(sources, payment.Source{
			ID:     s.ID,
			Name:   s.Name,
			Colors: mana.ParseColors(s.Colors).Chromatic(),
			Value:  s.Value,
		})
	}
	choices := make(payment.ScriptedChooser, len(p.Choices))
	for id, letters := range p.Choices {
		choices[id] = mana.ParseColors(letters)
	}
	spellID := p.SpellID
	if spellID == "" {
		spellID = "spell"
	}
	return payment.Config{
		SpellID:     spellID,
		Controller:  p.Controller,
		Description: p.Description,
		Cost:        cost,
		XValue:      p.X,
		Mode:        mode,
		Sources:     sources,
		Chooser:     choices,
	}, nil
}

func (a AbilitySetup) ability() (rules.Ability, error) {
	kind := rules.AbilityKindSpell
	if a.Kind != "" {
		k, ok := rules.ParseAbilityKind(a.Kind)
		if !ok {
			return rules.Ability{}, fmt.Errorf("ability %s: unknown kind %q", a.ID, a.Kind)
		}
		kind = k
	}
	var cost *mana.ManaCost
	if a.Cost != "" {
		c, err := mana.ParseCost(a.Cost)
		if err != nil {
			return rules.Ability{}, fmt.Errorf("ability %s: %w", a.ID, err)
		}
		cost = c
	}
	params := make(map[string]string, len(a.Params))
	for k, v := range a.Params {
		params[k] = v
	}
	ability := rules.Ability{
		ID:         a.ID,
		HostCardID: a.HostCardID,
		HostName:   a.HostName,
		Controller: a.Controller,
		Kind:       kind,
		API:        rules.APIType(a.API),
		Cost:       cost,
		Params:     params,
		Targets:    append([]string(nil), a.Targets...),
		Mandatory:  a.Mandatory,
	}
	if ability.HostCardID == "" {
		ability.HostCardID = a.ID
	}
	for _, req := range targeting.ParseTargetRequirements(a.Text) {
		if req.IsStackTarget() {
			r := req
			ability.TargetReq = &r
			break
		}
	}
	return ability, nil
}
