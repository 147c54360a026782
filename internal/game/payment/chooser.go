package payment

import (
	"errors"

	"github.com/magefree/mage-casting/internal/game/mana"
)

// ColorChooser resolves which color a multicolored source pays with.
// Returning mana.ColorNone pays toward generic instead.
type ColorChooser interface {
	ChooseColor(prompt string, source Source, options mana.ColorSet) (mana.ColorSet, error)
}

// ColorChooserFunc adapts a function to ColorChooser.
type ColorChooserFunc func(prompt string, source Source, options mana.ColorSet) (mana.ColorSet, error)

// ChooseColor implements ColorChooser.
func (f ColorChooserFunc) ChooseColor(prompt string, source Source, options mana.ColorSet) (mana.ColorSet, error) {
	return f(prompt, source, options)
}

// FirstColorChooser picks the first option in WUBRG order without prompting.
type FirstColorChooser struct{}

// ChooseColor implements ColorChooser.
func (FirstColorChooser) ChooseColor(_ string, _ Source, options mana.ColorSet) (mana.ColorSet, error) {
	colors := options.Colors()
	if len(colors) == 0 {
		return mana.ColorNone, errors.New("no color options")
	}
	return colors[0], nil
}

// ScriptedChooser answers from a per-source table; used by scenarios and tests.
type ScriptedChooser map[string]mana.ColorSet

// ChooseColor implements ColorChooser.
func (sc ScriptedChooser) ChooseColor(_ string, source Source, options mana.ColorSet) (mana.ColorSet, error) {
	if choice, ok := sc[source.ID]; ok {
		return choice, nil
	}
	return FirstColorChooser{}.ChooseColor("", source, options)
}
