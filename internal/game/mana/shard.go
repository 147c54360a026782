package mana

import (
	"fmt"
	"strings"
)

// Shard is one unit of a mana cost, identified only by its tag.
// The low bits hold the colors that may pay it; no color bits means generic.
type Shard uint8

// shardTwoGeneric marks monocolored hybrid symbols such as {2/B}.
const shardTwoGeneric Shard = 1 << 6

const (
	ShardGeneric   Shard = 0
	ShardWhite           = Shard(ColorWhite)
	ShardBlue            = Shard(ColorBlue)
	ShardBlack           = Shard(ColorBlack)
	ShardRed             = Shard(ColorRed)
	ShardGreen           = Shard(ColorGreen)
	ShardColorless       = Shard(ColorlessBit) // the {C} symbol
)

// HybridShard returns the tag of a two-color hybrid symbol.
func HybridShard(a, b ColorSet) Shard {
	return Shard((a | b).Chromatic())
}

// Colors returns the WUBRG colors able to pay the shard.
func (s Shard) Colors() ColorSet {
	return ColorSet(s).Chromatic()
}

// IsGeneric reports whether any mana can pay the shard.
func (s Shard) IsGeneric() bool {
	return s == ShardGeneric
}

// IsHybrid reports whether the shard is a hybrid symbol.
func (s Shard) IsHybrid() bool {
	return s&shardTwoGeneric != 0 || s.Colors().IsMulticolor()
}

func (s Shard) String() string {
	switch {
	case s == ShardGeneric:
		return "{1}"
	case s == ShardColorless:
		return "{C}"
	case s&shardTwoGeneric != 0:
		return fmt.Sprintf("{2/%s}", s.Colors())
	case s.Colors().IsMulticolor():
		colors := s.Colors().Colors()
		symbols := make([]string, len(colors))
		for i, c := range colors {
			symbols[i] = c.String()
		}
		return "{" + strings.Join(symbols, "/") + "}"
	default:
		return "{" + s.Colors().String() + "}"
	}
}

// ParseShard parses a single symbol such as "{R}", "{1}" or "{W/U}".
func ParseShard(symbol string) (Shard, error) {
	cost, err := ParseCost(symbol)
	if err != nil {
		return ShardGeneric, err
	}
	shards := cost.Shards()
	if len(shards) != 1 {
		return ShardGeneric, fmt.Errorf("expected exactly one mana symbol, got %q", symbol)
	}
	return shards[0], nil
}
