package object

// Text is a simple drawable text object.
// Coordinates are 1-based canvas positions.
type Text struct {
	X     int
	Y     int
	Value string
	Style string // Optional ANSI style, e.g. draw.ColorBold
}

// Draw writes the text at its position and marks the cells it covers so the
// canvas repaints them on the next frame.
func (t Text) Draw(ctx DrawContext) error {
	if t.Value == "" {
		return nil
	}
	x := t.X
	y := t.Y
	if x < 1 {
		x = 1
	}
	if y < 1 {
		y = 1
	}
	ctx.Writer.WriteStyledAt(x, y, t.Style, t.Value)
	ctx.Canvas.MarkTextDirty(x, y, len([]rune(t.Value)))
	return nil
}

// Update is a no-op for static text.
func (t Text) Update(ctx UpdateContext) (bool, error) {
	return false, nil
}

// Centered returns a Text horizontally centered on centerX.
func Centered(centerX, y int, value string) Text {
	return Text{X: centerX - len([]rune(value))/2, Y: y, Value: value}
}
