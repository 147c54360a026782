package mana

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var symbolPattern = regexp.MustCompile(`\{([^}]+)\}`)

// ManaCost represents a parsed mana cost.
type ManaCost struct {
	Generic   int
	White     int
	Blue      int
	Black     int
	Red       int
	Green     int
	Colorless int
	XCount    int // number of {X} symbols (e.g., 2 for {X}{X}{R})
	Hybrid    []HybridCost
}

// HybridCost represents a hybrid mana cost (e.g., {W/U}, {2/B}).
type HybridCost struct {
	Options [][]ManaType // Each option is a list of mana types that can pay for it
}

// Colors returns the colors that can pay this hybrid symbol.
func (h HybridCost) Colors() ColorSet {
	var cs ColorSet
	for _, option := range h.Options {
		cs |= ColorSetOf(option...).Chromatic()
	}
	return cs
}

// String renders the symbol as {W/U} or {2/B}.
func (h HybridCost) String() string {
	halves := make([]string, 0, len(h.Options))
	for _, option := range h.Options {
		if len(option) == 0 {
			continue
		}
		if option[0] == ManaGeneric {
			halves = append(halves, "2")
			continue
		}
		halves = append(halves, ColorSetOf(option[0]).String())
	}
	return "{" + strings.Join(halves, "/") + "}"
}

// Shard returns the ledger tag of the symbol.
func (h HybridCost) Shard() Shard {
	s := Shard(h.Colors())
	if h.hasGenericOption() {
		s |= shardTwoGeneric
	}
	return s
}

// hasGenericOption reports whether the symbol is a monocolored hybrid such as {2/B}.
func (h HybridCost) hasGenericOption() bool {
	for _, option := range h.Options {
		for _, mt := range option {
			if mt == ManaGeneric {
				return true
			}
		}
	}
	return false
}

// ParseCost parses a mana cost string (e.g., "{1}{G}", "{2}{R}{R}", "{X}{R}", "{W/U}").
func ParseCost(costStr string) (*ManaCost, error) {
	if costStr == "" {
		return &ManaCost{}, nil
	}

	cost := &ManaCost{}
	for _, match := range symbolPattern.FindAllStringSubmatch(costStr, -1) {
		if len(match) < 2 {
			continue
		}
		symbol := strings.ToUpper(strings.TrimSpace(match[1]))

		switch symbol {
		case "X":
			cost.XCount++
		case "W":
			cost.White++
		case "U":
			cost.Blue++
		case "B":
			cost.Black++
		case "R":
			cost.Red++
		case "G":
			cost.Green++
		case "C":
			cost.Colorless++
		default:
			if num, err := strconv.Atoi(symbol); err == nil {
				if num < 0 {
					return nil, fmt.Errorf("invalid mana symbol: {%s}", symbol)
				}
				cost.Generic += num
			} else if strings.Contains(symbol, "/") {
				hybrid := parseHybridCost(symbol)
				if hybrid == nil {
					return nil, fmt.Errorf("invalid hybrid mana symbol: {%s}", symbol)
				}
				cost.Hybrid = append(cost.Hybrid, *hybrid)
			} else {
				return nil, fmt.Errorf("unknown mana symbol: {%s}", symbol)
			}
		}
	}

	return cost, nil
}

// MustParseCost is ParseCost for literals known to be valid.
func MustParseCost(costStr string) *ManaCost {
	cost, err := ParseCost(costStr)
	if err != nil {
		panic(err)
	}
	return cost
}

// parseHybridCost parses a hybrid mana symbol like "W/U" or "2/B".
func parseHybridCost(symbol string) *HybridCost {
	parts := strings.Split(symbol, "/")
	if len(parts) != 2 {
		return nil
	}

	leftTypes := parseManaTypes(strings.TrimSpace(parts[0]))
	rightTypes := parseManaTypes(strings.TrimSpace(parts[1]))
	if len(leftTypes) == 0 || len(rightTypes) == 0 {
		return nil
	}

	hybrid := &HybridCost{Options: [][]ManaType{leftTypes, rightTypes}}
	if hybrid.Colors() == ColorNone {
		return nil
	}
	return hybrid
}

// parseManaTypes parses a mana type string (e.g., "W", "2", "B").
func parseManaTypes(s string) []ManaType {
	switch s {
	case "W":
		return []ManaType{ManaWhite}
	case "U":
		return []ManaType{ManaBlue}
	case "B":
		return []ManaType{ManaBlack}
	case "R":
		return []ManaType{ManaRed}
	case "G":
		return []ManaType{ManaGreen}
	case "C":
		return []ManaType{ManaColorless}
	}
	if num, err := strconv.Atoi(s); err == nil && num > 0 {
		return []ManaType{ManaGeneric}
	}
	return nil
}

// String returns a string representation of the mana cost.
func (mc *ManaCost) String() string {
	if mc == nil {
		return ""
	}
	var parts []string

	for i := 0; i < mc.XCount; i++ {
		parts = append(parts, "{X}")
	}
	if mc.Generic > 0 {
		parts = append(parts, fmt.Sprintf("{%d}", mc.Generic))
	}
	for _, shard := range mc.Shards()[mc.Generic : mc.Generic+mc.pipCount()] {
		parts = append(parts, shard.String())
	}
	for _, hybrid := range mc.Hybrid {
		parts = append(parts, hybrid.String())
	}
	if len(parts) == 0 {
		return "{0}"
	}
	return strings.Join(parts, "")
}

// CMC returns the converted mana cost. X counts as zero; {2/B} counts as two.
func (mc *ManaCost) CMC() int {
	if mc == nil {
		return 0
	}
	total := mc.Generic + mc.White + mc.Blue + mc.Black + mc.Red + mc.Green + mc.Colorless
	for _, hybrid := range mc.Hybrid {
		if hybrid.hasGenericOption() {
			total += 2
		} else {
			total++
		}
	}
	return total
}

func (mc *ManaCost) pipCount() int {
	return mc.White + mc.Blue + mc.Black + mc.Red + mc.Green + mc.Colorless
}

// Shards expands the cost into its ordered shard multiset: generic, WUBRG, {C}, hybrids.
func (mc *ManaCost) Shards() []Shard {
	if mc == nil {
		return nil
	}
	shards := make([]Shard, 0, mc.Generic+len(mc.Hybrid)+8)
	add := func(s Shard, n int) {
		for i := 0; i < n; i++ {
			shards = append(shards, s)
		}
	}
	add(ShardGeneric, mc.Generic)
	add(ShardWhite, mc.White)
	add(ShardBlue, mc.Blue)
	add(ShardBlack, mc.Black)
	add(ShardRed, mc.Red)
	add(ShardGreen, mc.Green)
	add(ShardColorless, mc.Colorless)
	for _, hybrid := range mc.Hybrid {
		shards = append(shards, hybrid.Shard())
	}
	return shards
}

// Copy returns a deep copy of the cost.
func (mc *ManaCost) Copy() *ManaCost {
	if mc == nil {
		return nil
	}
	cpy := *mc
	if mc.Hybrid != nil {
		cpy.Hybrid = make([]HybridCost, len(mc.Hybrid))
		for i, h := range mc.Hybrid {
			options := make([][]ManaType, len(h.Options))
			for j, option := range h.Options {
				options[j] = append([]ManaType(nil), option...)
			}
			cpy.Hybrid[i] = HybridCost{Options: options}
		}
	}
	return &cpy
}

// CMCAtLeast reports whether a's converted cost is at least b's plus offset.
// The second result is false when either cost is not determinable.
func CMCAtLeast(a, b *ManaCost, offset int) (bool, bool) {
	if a == nil || b == nil {
		return false, false
	}
	return a.CMC() >= b.CMC()+offset, true
}
