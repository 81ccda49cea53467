package game

import (
	"fmt"
	"math"
)

// Points awarded per tier.
const (
	PointsPerfect = 100
	PointsGreat   = 75
	PointsGood    = 50
	PointsClose   = 25
	PointsMiss    = 0
)

// Tier labels.
const (
	LabelPerfect = "Perfect!"
	LabelGreat   = "Great!"
	LabelGood    = "Good!"
	LabelClose   = "Close!"
	LabelMiss    = "Miss!"
)

// Thresholds are the inclusive upper distance bounds of each scoring tier.
// Anything farther than Close is a miss.
type Thresholds struct {
	Perfect float64
	Great   float64
	Good    float64
	Close   float64
}

// Threshold sets observed in the game's variants.
var (
	StandardThresholds = Thresholds{Perfect: 5, Great: 15, Good: 30, Close: 50}
	WideThresholds     = Thresholds{Perfect: 10, Great: 25, Good: 40, Close: 60}
)

// Tier is one row of the scoring table.
type Tier struct {
	MaxDistance float64 // Inclusive; +Inf for the miss tier
	Points      int
	Label       string
}

// Tiers returns the scoring table in evaluation order, ending with the miss tier.
func (t Thresholds) Tiers() []Tier {
	return []Tier{
		{MaxDistance: t.Perfect, Points: PointsPerfect, Label: LabelPerfect},
		{MaxDistance: t.Great, Points: PointsGreat, Label: LabelGreat},
		{MaxDistance: t.Good, Points: PointsGood, Label: LabelGood},
		{MaxDistance: t.Close, Points: PointsClose, Label: LabelClose},
		{MaxDistance: math.Inf(1), Points: PointsMiss, Label: LabelMiss},
	}
}

// Score maps a distance to target onto points and a label.
// The first tier whose bound is >= distance wins. NaN is a miss.
func (t Thresholds) Score(distance float64) (points int, label string) {
	if math.IsNaN(distance) {
		return PointsMiss, LabelMiss
	}
	distance = math.Abs(distance)
	switch {
	case distance <= t.Perfect:
		return PointsPerfect, LabelPerfect
	case distance <= t.Great:
		return PointsGreat, LabelGreat
	case distance <= t.Good:
		return PointsGood, LabelGood
	case distance <= t.Close:
		return PointsClose, LabelClose
	default:
		return PointsMiss, LabelMiss
	}
}

// Validate checks that the bounds are non-negative and non-decreasing.
func (t Thresholds) Validate() error {
	bounds := []float64{t.Perfect, t.Great, t.Good, t.Close}
	prev := 0.0
	for i, b := range bounds {
		if math.IsNaN(b) || b < 0 {
			return fmt.Errorf("threshold %d is invalid: %v", i, b)
		}
		if b < prev {
			return fmt.Errorf("threshold %d (%v) is below previous bound %v", i, b, prev)
		}
		prev = b
	}
	return nil
}

// Distance returns how far the marker is from the target line.
func Distance(position, target float64) float64 {
	return math.Abs(position - target)
}
