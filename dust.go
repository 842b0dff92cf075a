package starview

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultDustCount is the number of dust streaks kept alive around
// the ship when the space-dust layer is enabled.
const DefaultDustCount = 1024

// Dust lives in a spherical shell around its center: close enough to
// read as motion, far enough not to streak across the whole screen.
const (
	dustMinDist = 100.0
	dustMaxDist = 500.0
)

// dustField is a fixed-size arena of line-segment particles. Each
// particle is two consecutive vertices sharing one position; the
// vertex shader separates them along the ship's velocity to form a
// streak. Positions only leave the CPU when a tick actually moved
// something, so a stationary ship costs no uploads.
type dustField struct {
	// positions holds 2*count entries, pairs kept coincident.
	positions []mgl32.Vec3
	rng       *rand.Rand
}

func newDustField(count int) *dustField {
	if count <= 0 {
		count = DefaultDustCount
	}
	return &dustField{
		positions: make([]mgl32.Vec3, 2*count),
		rng:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// update respawns every particle that drifted out of the shell around
// center and reports whether any position changed. A fresh field
// respawns everything on its first tick.
func (f *dustField) update(center mgl32.Vec3) bool {
	changed := false
	for n := 0; n < len(f.positions); n += 2 {
		delta := f.positions[n].Sub(center)
		d2 := delta.Dot(delta)
		if d2 < dustMinDist*dustMinDist || d2 > dustMaxDist*dustMaxDist {
			p := center.Add(f.shellOffset())
			f.positions[n] = p
			f.positions[n+1] = p
			changed = true
		}
	}
	return changed
}

// shellOffset draws a uniform offset from the habitable shell.
// Plain per-axis draws land outside the shell roughly half the time,
// so reject and redraw rather than hand back a particle that the next
// tick would immediately recycle.
func (f *dustField) shellOffset() mgl32.Vec3 {
	for {
		v := mgl32.Vec3{
			f.rng.Float32()*2*dustMaxDist - dustMaxDist,
			f.rng.Float32()*2*dustMaxDist - dustMaxDist,
			f.rng.Float32()*2*dustMaxDist - dustMaxDist,
		}
		d2 := v.Dot(v)
		if d2 >= dustMinDist*dustMinDist && d2 <= dustMaxDist*dustMaxDist {
			return v
		}
	}
}
