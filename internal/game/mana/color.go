package mana

import "strings"

// ManaType represents a type of mana.
type ManaType string

const (
	ManaWhite     ManaType = "WHITE"
	ManaBlue      ManaType = "BLUE"
	ManaBlack     ManaType = "BLACK"
	ManaRed       ManaType = "RED"
	ManaGreen     ManaType = "GREEN"
	ManaColorless ManaType = "COLORLESS"
	ManaGeneric   ManaType = "GENERIC" // Generic mana can be paid with any type
)

// ColorSet is a bitmask of mana colors.
type ColorSet uint8

const (
	ColorWhite ColorSet = 1 << iota
	ColorBlue
	ColorBlack
	ColorRed
	ColorGreen
	// ColorlessBit is only used as a payment mask (improvise); it never matches a colored shard.
	ColorlessBit

	ColorNone ColorSet = 0
	AllColors          = ColorWhite | ColorBlue | ColorBlack | ColorRed | ColorGreen
)

// wubrg is the canonical color order used wherever iteration must be deterministic.
var wubrg = []ColorSet{ColorWhite, ColorBlue, ColorBlack, ColorRed, ColorGreen}

var wubrgc = []ColorSet{ColorWhite, ColorBlue, ColorBlack, ColorRed, ColorGreen, ColorlessBit}

var colorSymbols = map[ColorSet]string{
	ColorWhite:   "W",
	ColorBlue:    "U",
	ColorBlack:   "B",
	ColorRed:     "R",
	ColorGreen:   "G",
	ColorlessBit: "C",
}

var colorTypes = map[ColorSet]ManaType{
	ColorWhite:   ManaWhite,
	ColorBlue:    ManaBlue,
	ColorBlack:   ManaBlack,
	ColorRed:     ManaRed,
	ColorGreen:   ManaGreen,
	ColorlessBit: ManaColorless,
}

// ColorSetOf builds a set from mana types. Generic is ignored.
func ColorSetOf(types ...ManaType) ColorSet {
	var cs ColorSet
	for _, mt := range types {
		cs |= colorOf(mt)
	}
	return cs
}

// ParseColors parses a WUBRG(C) letter string such as "RG" or "wu".
func ParseColors(s string) ColorSet {
	var cs ColorSet
	for _, r := range strings.ToUpper(s) {
		for bit, sym := range colorSymbols {
			if string(r) == sym {
				cs |= bit
			}
		}
	}
	return cs
}

func colorOf(mt ManaType) ColorSet {
	for bit, t := range colorTypes {
		if t == mt {
			return bit
		}
	}
	return ColorNone
}

// Contains reports whether every color of other is in cs.
func (cs ColorSet) Contains(other ColorSet) bool {
	return cs&other == other
}

// Intersect returns the colors present in both sets.
func (cs ColorSet) Intersect(other ColorSet) ColorSet {
	return cs & other
}

// Chromatic strips the colorless bit.
func (cs ColorSet) Chromatic() ColorSet {
	return cs & AllColors
}

// Count returns the number of WUBRG colors in the set.
func (cs ColorSet) Count() int {
	n := 0
	for _, c := range wubrg {
		if cs&c != 0 {
			n++
		}
	}
	return n
}

// IsMulticolor reports whether the set has more than one color.
func (cs ColorSet) IsMulticolor() bool {
	return cs.Count() > 1
}

// Colors returns the individual WUBRG colors of the set in canonical order.
func (cs ColorSet) Colors() []ColorSet {
	out := make([]ColorSet, 0, 5)
	for _, c := range wubrg {
		if cs&c != 0 {
			out = append(out, c)
		}
	}
	return out
}

// ManaTypes returns the mana types of the set.
func (cs ColorSet) ManaTypes() []ManaType {
	out := make([]ManaType, 0, 6)
	for _, c := range wubrgc {
		if cs&c != 0 {
			out = append(out, colorTypes[c])
		}
	}
	return out
}

// String renders the set as WUBRG letters, "C" for the colorless bit.
func (cs ColorSet) String() string {
	if cs == ColorNone {
		return "colorless"
	}
	var sb strings.Builder
	for _, c := range wubrgc {
		if cs&c != 0 {
			sb.WriteString(colorSymbols[c])
		}
	}
	return sb.String()
}
