package game

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrUnknownVariant = errors.New("unknown variant")
	ErrInvalidVariant = errors.New("invalid variant")
)

// Variant holds the tunables that distinguish one flavour of the game from
// another. Everything else about a round is shared.
type Variant struct {
	Name            string
	Target          float64    // Target line offset from the top of the field
	Step            float64    // Marker advance per tick
	OvershootMargin float64    // Distance past the target that ends the round as a miss
	Thresholds      Thresholds // Scoring bands
}

// Preset variants.
var (
	Classic = Variant{
		Name:            "classic",
		Target:          300,
		Step:            2,
		OvershootMargin: 100,
		Thresholds:      StandardThresholds,
	}
	Swift = Variant{
		Name:            "swift",
		Target:          300,
		Step:            3,
		OvershootMargin: 100,
		Thresholds:      StandardThresholds,
	}
	Lenient = Variant{
		Name:            "lenient",
		Target:          300,
		Step:            2,
		OvershootMargin: 100,
		Thresholds:      WideThresholds,
	}
)

// DefaultVariant is used when no variant is configured.
const DefaultVariant = "classic"

var presets = map[string]Variant{
	Classic.Name: Classic,
	Swift.Name:   Swift,
	Lenient.Name: Lenient,
}

// Limit is the position at which a falling marker counts as overshot.
func (v Variant) Limit() float64 {
	return v.Target + v.OvershootMargin
}

// TicksToTarget is the number of ticks the marker needs to reach the target.
func (v Variant) TicksToTarget() int {
	if v.Step <= 0 {
		return 0
	}
	n := int(v.Target / v.Step)
	if float64(n)*v.Step < v.Target {
		n++
	}
	return n
}

// Validate reports whether the variant can drive a round.
func (v Variant) Validate() error {
	if v.Step <= 0 {
		return fmt.Errorf("%w %q: step must be positive, got %v", ErrInvalidVariant, v.Name, v.Step)
	}
	if v.OvershootMargin <= 0 {
		return fmt.Errorf("%w %q: overshoot margin must be positive, got %v", ErrInvalidVariant, v.Name, v.OvershootMargin)
	}
	if v.Target < 0 {
		return fmt.Errorf("%w %q: target must not be negative, got %v", ErrInvalidVariant, v.Name, v.Target)
	}
	if err := v.Thresholds.Validate(); err != nil {
		return fmt.Errorf("%w %q: %w", ErrInvalidVariant, v.Name, err)
	}
	return nil
}

// LookupVariant returns the preset with the given name (case-insensitive).
// An empty name selects DefaultVariant.
func LookupVariant(name string) (Variant, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = DefaultVariant
	}
	v, ok := presets[key]
	if !ok {
		return Variant{}, fmt.Errorf("%w %q (available: %s)", ErrUnknownVariant, name, strings.Join(VariantNames(), ", "))
	}
	return v, nil
}

// Variants returns all presets sorted by name.
func Variants() []Variant {
	out := make([]Variant, 0, len(presets))
	for _, v := range presets {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// VariantNames returns the preset names sorted.
func VariantNames() []string {
	vs := Variants()
	names := make([]string, len(vs))
	for i, v := range vs {
		names[i] = v.Name
	}
	return names
}
