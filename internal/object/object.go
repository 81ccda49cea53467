// Package object holds the drawable pieces of the playfield.
package object

import (
	"time"

	"github.com/tomz197/linedrop/internal/draw"
)

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Delta time.Duration
}

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Canvas *draw.Canvas      // High-resolution canvas (2x vertical)
	Writer *draw.ChunkWriter // Text overlay output
	Field  Field             // Logical playfield
}

// Field describes the logical playfield. Y grows downward from the top
// margin; a marker at position p is drawn at TopMargin + p.
type Field struct {
	Width     float64
	TopMargin float64
	Target    float64
	Limit     float64
}

// Height is the logical height needed to show the whole fall.
func (f Field) Height() float64 {
	return f.TopMargin + f.Limit
}

// Y maps a marker position to a logical y coordinate.
func (f Field) Y(position float64) float64 {
	return f.TopMargin + position
}

// Object is a drawable and updatable playfield entity.
type Object interface {
	// Update updates the object state. Returns true if the object should be removed.
	Update(ctx UpdateContext) (remove bool, err error)

	// Draw draws the object. Use ctx.Canvas for shapes, ctx.Writer for text.
	Draw(ctx DrawContext) error
}

// Releasable is implemented by pooled objects that can be returned to a pool.
type Releasable interface {
	// Release returns the object to its pool for reuse.
	Release()
}

// ReleaseObject releases an object back to its pool if it implements Releasable.
func ReleaseObject(obj Object) {
	if r, ok := obj.(Releasable); ok {
		r.Release()
	}
}

// UpdateAll updates objects in place, dropping and releasing the ones that
// ask to be removed.
func UpdateAll(objects []Object, ctx UpdateContext) ([]Object, error) {
	kept := objects[:0]
	for _, obj := range objects {
		remove, err := obj.Update(ctx)
		if err != nil {
			return kept, err
		}
		if remove {
			ReleaseObject(obj)
			continue
		}
		kept = append(kept, obj)
	}
	clear(objects[len(kept):])
	return kept, nil
}
