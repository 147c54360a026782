package mana

import (
	"testing"
)

func TestParseCost(t *testing.T) {
	tests := []struct {
		input    string
		expected *ManaCost
		err      bool
	}{
		{"", &ManaCost{}, false},
		{"{1}", &ManaCost{Generic: 1}, false},
		{"{G}", &ManaCost{Green: 1}, false},
		{"{1}{G}", &ManaCost{Generic: 1, Green: 1}, false},
		{"{2}{R}{R}", &ManaCost{Generic: 2, Red: 2}, false},
		{"{X}{R}", &ManaCost{XCount: 1, Red: 1}, false},
		{"{X}{X}{R}", &ManaCost{XCount: 2, Red: 1}, false},
		{"{W}{U}{B}{R}{G}", &ManaCost{White: 1, Blue: 1, Black: 1, Red: 1, Green: 1}, false},
		{"{C}", &ManaCost{Colorless: 1}, false},
		{"{Q}", nil, true},
		{"{W/Q}", nil, true},
		{"{-1}", nil, true},
		{"{-20}{R}", nil, true},
		{"{W/-2}", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := ParseCost(tt.input)
			if tt.err {
				if err == nil {
					t.Errorf("Expected error for %s, got nil", tt.input)
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error for %s: %v", tt.input, err)
				return
			}
			if result.Generic != tt.expected.Generic {
				t.Errorf("Generic: expected %d, got %d", tt.expected.Generic, result.Generic)
			}
			if result.White != tt.expected.White {
				t.Errorf("White: expected %d, got %d", tt.expected.White, result.White)
			}
			if result.Blue != tt.expected.Blue {
				t.Errorf("Blue: expected %d, got %d", tt.expected.Blue, result.Blue)
			}
			if result.Black != tt.expected.Black {
				t.Errorf("Black: expected %d, got %d", tt.expected.Black, result.Black)
			}
			if result.Red != tt.expected.Red {
				t.Errorf("Red: expected %d, got %d", tt.expected.Red, result.Red)
			}
			if result.Green != tt.expected.Green {
				t.Errorf("Green: expected %d, got %d", tt.expected.Green, result.Green)
			}
			if result.Colorless != tt.expected.Colorless {
				t.Errorf("Colorless: expected %d, got %d", tt.expected.Colorless, result.Colorless)
			}
			if result.XCount != tt.expected.XCount {
				t.Errorf("XCount: expected %d, got %d", tt.expected.XCount, result.XCount)
			}
		})
	}
}

func TestParseCost_Hybrid(t *testing.T) {
	cost, err := ParseCost("{1}{W/U}{2/B}")
	if err != nil {
		t.Fatalf("Failed to parse cost: %v", err)
	}
	if len(cost.Hybrid) != 2 {
		t.Fatalf("Expected 2 hybrid symbols, got %d", len(cost.Hybrid))
	}
	if cost.Hybrid[0].Colors() != ColorWhite|ColorBlue {
		t.Errorf("Expected W/U colors, got %s", cost.Hybrid[0].Colors())
	}
	if got := cost.String(); got != "{1}{W/U}{2/B}" {
		t.Errorf("String: expected {1}{W/U}{2/B}, got %s", got)
	}
	if got := cost.CMC(); got != 4 {
		t.Errorf("CMC: expected 4, got %d", got)
	}
}

func TestManaCost_String(t *testing.T) {
	tests := map[string]string{
		"":                "{0}",
		"{3}{G}{G}":       "{3}{G}{G}",
		"{X}{R}":          "{X}{R}",
		"{X}{X}{R}":       "{X}{X}{R}",
		"{2}{W}{U}{C}":    "{2}{W}{U}{C}",
		"{G}{1}{G}":       "{1}{G}{G}",
		"{W}{U}{B}{R}{G}": "{W}{U}{B}{R}{G}",
	}
	for input, expected := range tests {
		cost := MustParseCost(input)
		if got := cost.String(); got != expected {
			t.Errorf("String(%q): expected %s, got %s", input, expected, got)
		}
	}
}

func TestManaCost_CMC(t *testing.T) {
	tests := []struct {
		cost string
		cmc  int
	}{
		{"", 0},
		{"{X}{R}", 1},
		{"{X}{X}{R}", 1},
		{"{2}{R}", 3},
		{"{3}{G}{G}", 5},
		{"{C}{C}", 2},
		{"{2/W}", 2},
	}
	for _, tt := range tests {
		if got := MustParseCost(tt.cost).CMC(); got != tt.cmc {
			t.Errorf("CMC(%s): expected %d, got %d", tt.cost, tt.cmc, got)
		}
	}
}

func TestCMCAtLeast(t *testing.T) {
	big := MustParseCost("{4}{U}{U}")
	small := MustParseCost("{1}{U}")

	ok, determinable := CMCAtLeast(big, small, 3)
	if !determinable || !ok {
		t.Errorf("Expected 6 >= 2+3, got ok=%v determinable=%v", ok, determinable)
	}
	ok, _ = CMCAtLeast(big, small, 5)
	if ok {
		t.Error("Expected 6 >= 2+5 to be false")
	}
	if _, determinable := CMCAtLeast(nil, small, 0); determinable {
		t.Error("Expected nil cost to be non-determinable")
	}
}

func TestManaCost_Copy(t *testing.T) {
	cost := MustParseCost("{1}{W/U}")
	cpy := cost.Copy()
	cpy.Hybrid[0].Options[0][0] = ManaBlack
	cpy.Generic = 7

	if cost.Generic != 1 {
		t.Errorf("Copy shares Generic with original")
	}
	if cost.Hybrid[0].Options[0][0] != ManaWhite {
		t.Errorf("Copy shares hybrid options with original")
	}
}
