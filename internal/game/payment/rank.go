package payment

import (
	"fmt"
	"sort"
	"strings"
)

// RankOrder controls the order AutoComplete walks the sources in.
type RankOrder string

const (
	// RankAsGiven keeps the battlefield order.
	RankAsGiven RankOrder = "as_given"
	// RankAscending taps the least valuable sources first.
	RankAscending RankOrder = "ascending"
	// RankDescending taps the most valuable sources first.
	RankDescending RankOrder = "descending"
)

// ParseRankOrder parses a configured order; empty means as given.
func ParseRankOrder(s string) (RankOrder, error) {
	switch RankOrder(strings.ToLower(strings.TrimSpace(s))) {
	case "", RankAsGiven:
		return RankAsGiven, nil
	case RankAscending:
		return RankAscending, nil
	case RankDescending:
		return RankDescending, nil
	}
	return RankAsGiven, fmt.Errorf("unknown rank order %q", s)
}

// DefaultRankOrder is the order a mode ranks in when nothing is configured.
// Convoke has always tapped the highest evaluated creatures first while
// improvise takes artifacts in battlefield order.
func DefaultRankOrder(mode Mode) RankOrder {
	if mode == ModeImprovise {
		return RankAsGiven
	}
	return RankDescending
}

// Valuation scores a source; higher is more valuable.
type Valuation func(Source) int

// ByValue scores a source by its Value field.
func ByValue(s Source) int { return s.Value }

// Rank returns a copy of sources ordered for AutoComplete. Ties keep their
// original order.
func Rank(sources []Source, valuation Valuation, order RankOrder) []Source {
	out := make([]Source, len(sources))
	copy(out, sources)
	if valuation == nil {
		valuation = ByValue
	}

	switch order {
	case RankAscending:
		sort.SliceStable(out, func(i, j int) bool { return valuation(out[i]) < valuation(out[j]) })
	case RankDescending:
		sort.SliceStable(out, func(i, j int) bool { return valuation(out[i]) > valuation(out[j]) })
	}
	return out
}
