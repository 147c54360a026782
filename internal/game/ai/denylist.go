package ai

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// CardDenylist lists cards the AI should never try to copy.
type CardDenylist struct {
	Cards   []string `yaml:"cards"`    // card names, case-insensitive
	CardIDs []string `yaml:"card_ids"` // exact card IDs

	names map[string]struct{}
	ids   map[string]struct{}
}

// NewCardDenylist builds a denylist from card names.
func NewCardDenylist(names ...string) *CardDenylist {
	d := &CardDenylist{Cards: names}
	d.index()
	return d
}

// LoadCardDenylist reads a YAML denylist file.
func LoadCardDenylist(path string) (*CardDenylist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read denylist: %w", err)
	}
	return ParseCardDenylist(data)
}

// ParseCardDenylist decodes a YAML denylist.
func ParseCardDenylist(data []byte) (*CardDenylist, error) {
	var d CardDenylist
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse denylist: %w", err)
	}
	d.index()
	return &d, nil
}

func (d *CardDenylist) index() {
	d.names = make(map[string]struct{}, len(d.Cards))
	for _, name := range d.Cards {
		d.names[strings.ToLower(strings.TrimSpace(name))] = struct{}{}
	}
	d.ids = make(map[string]struct{}, len(d.CardIDs))
	for _, id := range d.CardIDs {
		d.ids[id] = struct{}{}
	}
}

// Add denylists more card names.
func (d *CardDenylist) Add(names ...string) {
	d.Cards = append(d.Cards, names...)
	d.index()
}

// IsTooComplex implements ComplexityClassifier.
func (d *CardDenylist) IsTooComplex(cardID, cardName string) bool {
	if d == nil {
		return false
	}
	if _, ok := d.ids[cardID]; ok && cardID != "" {
		return true
	}
	_, ok := d.names[strings.ToLower(strings.TrimSpace(cardName))]
	return ok && cardName != ""
}

// Len returns the number of denylisted entries.
func (d *CardDenylist) Len() int {
	if d == nil {
		return 0
	}
	return len(d.names) + len(d.ids)
}
