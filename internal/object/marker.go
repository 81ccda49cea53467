package object

import "github.com/tomz197/linedrop/internal/draw"

// Marker is the falling bar the player tries to stop on the target.
type Marker struct {
	Position float64 // Offset along the fall axis
	Width    float64 // Logical width, centered horizontally
}

// Update is a no-op; the marker is rebuilt from the round snapshot each frame.
func (m Marker) Update(UpdateContext) (bool, error) {
	return false, nil
}

// Draw renders the marker as a two-pixel-thick horizontal bar.
func (m Marker) Draw(ctx DrawContext) error {
	y := ctx.Field.Y(m.Position)
	left := (ctx.Field.Width - m.Width) / 2
	right := left + m.Width
	ctx.Canvas.DrawLine(draw.Point{X: left, Y: y}, draw.Point{X: right, Y: y}, draw.PenMarker)
	// Second row one sub-pixel lower so thin terminals still show a bar.
	step := ctx.Canvas.LogicalHeight() / float64(ctx.Canvas.TerminalHeight()*2)
	ctx.Canvas.DrawLine(draw.Point{X: left, Y: y + step}, draw.Point{X: right, Y: y + step}, draw.PenMarker)
	return nil
}

// TargetLine is the dotted line the marker should stop on.
type TargetLine struct {
	Gap int // Terminal columns between dots
}

// Update is a no-op for the static target line.
func (t TargetLine) Update(UpdateContext) (bool, error) {
	return false, nil
}

// Draw renders the target as a dotted horizontal line across the field.
func (t TargetLine) Draw(ctx DrawContext) error {
	ctx.Canvas.DrawDashed(ctx.Field.Y(ctx.Field.Target), t.Gap, draw.PenTarget)
	return nil
}

// LimitLine marks where an unstopped marker counts as a miss.
type LimitLine struct{}

// Update is a no-op for the static limit line.
func (LimitLine) Update(UpdateContext) (bool, error) {
	return false, nil
}

// Draw renders the limit as a sparse dim line.
func (LimitLine) Draw(ctx DrawContext) error {
	ctx.Canvas.DrawDashed(ctx.Field.Y(ctx.Field.Limit)-1, 6, draw.PenGuide)
	return nil
}
