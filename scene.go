package starview

import (
	"iter"

	"github.com/go-gl/mathgl/mgl32"
)

// EntityID identifies a game object owned by the host. The viewport
// never creates or destroys entities; it only reads them through the
// Scene interface each frame.
type EntityID uint64

// DefaultBoundingRadius substitutes for entities that report no
// physical size, in world units.
const DefaultBoundingRadius = 300.0

// Transform is a position on the game plane plus a rotation in
// degrees. Rotation 0 points along +X; positive angles turn
// counter-clockwise when viewed from above.
type Transform struct {
	Position mgl32.Vec2
	Rotation float32
}

// WorldPoint maps a point given in the entity's local frame to world
// coordinates.
func (t Transform) WorldPoint(local mgl32.Vec2) mgl32.Vec2 {
	return t.Position.Add(rotateVec2(local, t.Rotation))
}

// Zone is a region of space with an optional skybox override. The
// outline is a closed polygon in world coordinates; the final edge
// back to the first vertex is implied.
type Zone struct {
	Outline []mgl32.Vec2
	Skybox  string
	// SkyboxFade is the distance band, in world units, over which the
	// zone skybox blends in from the zone edge. Zero or negative means
	// a hard switch at the boundary.
	SkyboxFade float32
}

// EmitterPoint is one engine nozzle on a ship model: a mounting
// offset in the ship's local frame, an exhaust color, and a size
// scale.
type EmitterPoint struct {
	Offset mgl32.Vec3
	Color  mgl32.Vec3
	Scale  float32
}

// EngineEmitter carries a ship's nozzle list plus the spawn
// bookkeeping the viewport stamps through the pointer held by the
// scene. LastSpawn is in clock seconds.
type EngineEmitter struct {
	Points    []EmitterPoint
	LastSpawn float64
}

// EmitterEntity is the per-frame view of a ship that can emit engine
// exhaust. Impulse is the actual engine throttle in [-1, 1].
type EmitterEntity struct {
	Transform Transform
	Impulse   float32
	Emitter   *EngineEmitter
}

// CallsignEntity is the per-frame view of an object with an overhead
// name label. Radius is the object's bounding radius; zero or
// negative falls back to DefaultBoundingRadius.
type CallsignEntity struct {
	Callsign string
	Position mgl32.Vec2
	Radius   float32
}

// Target describes the object the player ship has locked. Radius
// follows the same fallback rule as CallsignEntity.
type Target struct {
	Position     mgl32.Vec2
	HasTransform bool
	Radius       float32
}

// Ship is the per-frame view of the player's vessel.
type Ship struct {
	ID           EntityID
	Transform    Transform
	HasTransform bool
	Velocity     mgl32.Vec2
	HasPhysics   bool
	// Target is nil when the ship has no lock.
	Target *Target
}

// Scene is the read side of the host's entity store. Iteration order
// must be stable within a single frame; Zones resolves overlaps by
// first match.
//
// All methods are called from the render goroutine only, between the
// start and end of a single Draw call, so implementations may return
// views into per-frame snapshots.
type Scene interface {
	// Zones yields every zone entity, in priority order.
	Zones() iter.Seq[Zone]

	// Emitters yields every ship with an engine emitter component.
	Emitters() iter.Seq2[EntityID, EmitterEntity]

	// Callsigns yields every entity with an overhead name label.
	Callsigns() iter.Seq2[EntityID, CallsignEntity]

	// Player reports the player's ship, if one exists.
	Player() (Ship, bool)
}
