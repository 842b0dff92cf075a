package starview

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// rotateVec2 rotates v by deg degrees counter-clockwise.
func rotateVec2(v mgl32.Vec2, deg float32) mgl32.Vec2 {
	s, c := math.Sincos(float64(mgl32.DegToRad(deg)))
	sin, cos := float32(s), float32(c)
	return mgl32.Vec2{v.X()*cos - v.Y()*sin, v.X()*sin + v.Y()*cos}
}

// vec2FromAngle is the unit vector at deg degrees, with 0 along +X.
func vec2FromAngle(deg float32) mgl32.Vec2 {
	s, c := math.Sincos(float64(mgl32.DegToRad(deg)))
	return mgl32.Vec2{float32(c), float32(s)}
}

func abs32(f float32) float32 {
	return float32(math.Abs(float64(f)))
}

func clamp01(f float32) float32 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}
