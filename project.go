package starview

import "github.com/go-gl/mathgl/mgl32"

// Transforms is the frame-scoped view/projection pair together with the
// viewport rect it was built for. It exists only for the duration of one
// draw call; Viewport rebuilds it every frame from the current camera and
// rect, and hands it to hosts that need hit-testing for HUD elements.
type Transforms struct {
	Projection mgl32.Mat4
	View       mgl32.Mat4
	Rect       Rect
}

// NewTransforms derives the frame transforms for a camera and viewport rect.
func NewTransforms(cam Camera, rect Rect) Transforms {
	return Transforms{
		Projection: cam.Projection(rect.Aspect()),
		View:       cam.View(),
		Rect:       rect,
	}
}

// WorldToScreen maps a world-space point to virtual screen coordinates
// inside the viewport rect.
//
// The Z component of the result is the camera-space depth (positive = in
// front of the camera), not the normalized device Z. Callers use it to
// cull points behind the camera (Z < 0) or beyond a draw-distance cutoff,
// and to compute distance fades.
//
// WorldToScreen has no side effects and is valid outside of drawing; the
// HUD and host UI hit zones both go through it.
func (t Transforms) WorldToScreen(world mgl32.Vec3) mgl32.Vec3 {
	viewPos := t.View.Mul4x1(world.Vec4(1))
	pos := t.Projection.Mul4x1(viewPos)

	// Perspective division.
	pos = pos.Mul(1 / pos.W())

	// Map [-1,1] clip coordinates to [0,1], flipping Y: clip Y grows
	// upward, screen Y grows downward.
	x := pos.X()*0.5 + 0.5
	y := pos.Y()*0.5 + 0.5

	return mgl32.Vec3{
		t.Rect.Pos.X() + t.Rect.Size.X()*x,
		t.Rect.Pos.Y() + t.Rect.Size.Y()*(1-y),
		-viewPos.Z(),
	}
}
