package starview

import (
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// engineEmitInterval throttles exhaust spawning per ship. Particles
	// live long enough that ten bursts a second reads as a continuous
	// trail.
	engineEmitInterval = 0.1
	engineParticleLife = 5.0
)

// spawnEngineParticles emits one exhaust burst per ship whose engines
// are firing and whose previous burst is old enough. The spawn stamp
// is written back through the emitter pointer so the cadence survives
// across frames.
func (v *Viewport) spawnEngineParticles(now float64) {
	if v.hooks.Particles == nil {
		return
	}
	for _, e := range v.scene.Emitters() {
		if e.Emitter == nil || e.Impulse == 0 {
			continue
		}
		if now-e.Emitter.LastSpawn <= engineEmitInterval {
			continue
		}
		throttle := abs32(e.Impulse)
		for _, pt := range e.Emitter.Points {
			ground := e.Transform.WorldPoint(mgl32.Vec2{pt.Offset.X(), pt.Offset.Y()})
			pos := mgl32.Vec3{ground.X(), ground.Y(), pt.Offset.Z()}
			v.hooks.Particles.Spawn(pos, pos, pt.Color, pt.Color, pt.Scale*throttle, 0, engineParticleLife)
		}
		e.Emitter.LastSpawn = now
	}
}
