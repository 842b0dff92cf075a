package starview

import (
	"image/color"
	"strconv"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// callsignDrawDistance is the depth at which labels have faded to
	// nothing; anything farther is skipped outright.
	callsignDrawDistance = 10000.0
	callsignBaseSize     = 20.0

	// headingRadius pushes the compass labels far enough out that they
	// sit at the horizon regardless of ship position.
	headingRadius   = 2500.0
	headingTextSize = 30.0
	headingStep     = 30

	hudAlpha = 128
)

// drawCallsigns queues one name label per labeled entity, anchored
// above the entity by its bounding radius. Labels shrink and fade
// linearly with view depth and vanish past callsignDrawDistance. The
// player's own label is never drawn.
func (v *Viewport) drawCallsigns(t Transforms, target RenderTarget, player EntityID, hasPlayer bool) {
	for id, ce := range v.scene.Callsigns() {
		if hasPlayer && id == player {
			continue
		}
		radius := ce.Radius
		if radius <= 0 {
			radius = DefaultBoundingRadius
		}
		sp := t.WorldToScreen(mgl32.Vec3{ce.Position.X(), ce.Position.Y(), radius})
		depth := sp.Z()
		if depth < 0 || depth > callsignDrawDistance {
			continue
		}
		fade := 1 - depth/callsignDrawDistance
		target.DrawText(
			mgl32.Vec2{sp.X(), sp.Y()},
			ce.Callsign,
			AlignCenter,
			callsignBaseSize*fade,
			v.cfg.hudFont,
			color.RGBA{R: 255, G: 255, B: 255, A: uint8(hudAlpha * fade)},
		)
	}
}

// drawHeadings queues the compass ring: one label every headingStep
// degrees on a fixed-radius circle around the ship, at constant size
// and alpha. Labels behind the camera are dropped; heading 0 is the
// +Y world axis.
func (v *Viewport) drawHeadings(t Transforms, target RenderTarget, ship Ship) {
	for angle := 0; angle < 360; angle += headingStep {
		dir := vec2FromAngle(float32(angle) - 90)
		world := ship.Transform.Position.Add(dir.Mul(headingRadius))
		sp := t.WorldToScreen(mgl32.Vec3{world.X(), world.Y(), 0})
		if sp.Z() <= 0 {
			continue
		}
		target.DrawText(
			mgl32.Vec2{sp.X(), sp.Y()},
			strconv.Itoa(angle),
			AlignCenter,
			headingTextSize,
			v.cfg.hudFont,
			color.RGBA{R: 255, G: 255, B: 255, A: hudAlpha},
		)
	}
}
