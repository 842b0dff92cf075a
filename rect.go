package starview

import "github.com/go-gl/mathgl/mgl32"

// Rect is an axis-aligned rectangle in the render target's virtual
// coordinate space (origin top-left, Y down).
type Rect struct {
	Pos  mgl32.Vec2
	Size mgl32.Vec2
}

// Aspect returns the width/height ratio. Zero when the rect has no height.
func (r Rect) Aspect() float32 {
	if r.Size.Y() == 0 {
		return 0
	}
	return r.Size.X() / r.Size.Y()
}

// Empty reports whether the rect has zero width. A zero-width rect shows
// up for one frame when a layout resize hides the main screen; drawing
// into it is skipped entirely.
func (r Rect) Empty() bool {
	return r.Size.X() == 0
}

// Contains reports whether p lies inside the rect. Used by hosts for HUD
// hit zones computed from projected points.
func (r Rect) Contains(p mgl32.Vec2) bool {
	return p.X() >= r.Pos.X() && p.X() < r.Pos.X()+r.Size.X() &&
		p.Y() >= r.Pos.Y() && p.Y() < r.Pos.Y()+r.Size.Y()
}
