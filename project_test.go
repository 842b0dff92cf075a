package starview

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func testRect() Rect {
	return Rect{Size: mgl32.Vec2{800, 600}}
}

func TestWorldToScreenCenter(t *testing.T) {
	// A point dead ahead of the camera projects to the middle of the
	// viewport with its view depth preserved.
	tr := NewTransforms(Camera{}, testRect())

	got := tr.WorldToScreen(mgl32.Vec3{1000, 0, 0})
	if !approxEq(got.X(), 400, 0.5) || !approxEq(got.Y(), 300, 0.5) {
		t.Errorf("screen position = (%v, %v), want (400, 300)", got.X(), got.Y())
	}
	if !approxEq(got.Z(), 1000, 0.5) {
		t.Errorf("depth = %v, want 1000", got.Z())
	}
}

func TestWorldToScreenOffsets(t *testing.T) {
	tr := NewTransforms(Camera{}, testRect())

	// World +Y is to the camera's right at yaw 0.
	right := tr.WorldToScreen(mgl32.Vec3{1000, 100, 0})
	if right.X() <= 400 {
		t.Errorf("point to the right projected at x=%v, want > 400", right.X())
	}
	if !approxEq(right.Y(), 300, 0.5) {
		t.Errorf("point to the right projected at y=%v, want 300", right.Y())
	}

	// World +Z is up, which is a smaller screen Y.
	above := tr.WorldToScreen(mgl32.Vec3{1000, 0, 100})
	if above.Y() >= 300 {
		t.Errorf("point above projected at y=%v, want < 300", above.Y())
	}
}

func TestWorldToScreenBehindCamera(t *testing.T) {
	tr := NewTransforms(Camera{}, testRect())

	got := tr.WorldToScreen(mgl32.Vec3{-1000, 0, 0})
	if got.Z() >= 0 {
		t.Errorf("depth behind camera = %v, want negative", got.Z())
	}
}

func TestWorldToScreenRectOffset(t *testing.T) {
	// The same world point in an offset rect lands at the rect's
	// center, not the surface's.
	rect := Rect{Pos: mgl32.Vec2{100, 50}, Size: mgl32.Vec2{400, 300}}
	tr := NewTransforms(Camera{}, rect)

	got := tr.WorldToScreen(mgl32.Vec3{1000, 0, 0})
	if !approxEq(got.X(), 300, 0.5) || !approxEq(got.Y(), 200, 0.5) {
		t.Errorf("screen position = (%v, %v), want (300, 200)", got.X(), got.Y())
	}
}

func TestWorldToScreenFollowsCamera(t *testing.T) {
	cam := Camera{Position: mgl32.Vec3{500, 500, 0}}
	tr := NewTransforms(cam, testRect())

	// Dead ahead relative to the moved camera.
	got := tr.WorldToScreen(mgl32.Vec3{1500, 500, 0})
	if !approxEq(got.X(), 400, 0.5) || !approxEq(got.Y(), 300, 0.5) {
		t.Errorf("screen position = (%v, %v), want (400, 300)", got.X(), got.Y())
	}
	if !approxEq(got.Z(), 1000, 0.5) {
		t.Errorf("depth = %v, want 1000", got.Z())
	}
}

func TestRectEmpty(t *testing.T) {
	tests := []struct {
		name string
		rect Rect
		want bool
	}{
		{"zero width", Rect{Size: mgl32.Vec2{0, 600}}, true},
		{"normal", Rect{Size: mgl32.Vec2{800, 600}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rect.Empty(); got != tt.want {
				t.Errorf("Empty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectAspect(t *testing.T) {
	r := Rect{Size: mgl32.Vec2{800, 600}}
	if got := r.Aspect(); !approxEq(got, 800.0/600.0, 1e-6) {
		t.Errorf("Aspect() = %v, want %v", got, 800.0/600.0)
	}
}
