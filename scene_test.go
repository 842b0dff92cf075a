package starview

import (
	"image/color"
	"iter"
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/wgpu/hal"
)

// fakeScene is a fixed-content Scene for tests.
type fakeScene struct {
	zones     []Zone
	emitters  map[EntityID]*EmitterEntity
	callsigns map[EntityID]CallsignEntity
	player    *Ship
}

func (s *fakeScene) Zones() iter.Seq[Zone] { return slices.Values(s.zones) }

func (s *fakeScene) Emitters() iter.Seq2[EntityID, EmitterEntity] {
	return func(yield func(EntityID, EmitterEntity) bool) {
		for id, e := range s.emitters {
			if !yield(id, *e) {
				return
			}
		}
	}
}

func (s *fakeScene) Callsigns() iter.Seq2[EntityID, CallsignEntity] {
	return func(yield func(EntityID, CallsignEntity) bool) {
		for id, c := range s.callsigns {
			if !yield(id, c) {
				return
			}
		}
	}
}

func (s *fakeScene) Player() (Ship, bool) {
	if s.player == nil {
		return Ship{}, false
	}
	return *s.player, true
}

// spawnCall records one ParticleEngine.Spawn invocation.
type spawnCall struct {
	start, end           mgl32.Vec3
	startColor, endColor mgl32.Vec3
	scale                float32
	startTime, lifetime  float32
}

type fakeParticles struct {
	spawns []spawnCall
}

func (p *fakeParticles) Spawn(start, end, startColor, endColor mgl32.Vec3, scale, startTime, lifetime float32) {
	p.spawns = append(p.spawns, spawnCall{start, end, startColor, endColor, scale, startTime, lifetime})
}

func (p *fakeParticles) Render(_ hal.RenderPassEncoder, _, _ mgl32.Mat4) {}

// textCall records one RenderTarget.DrawText invocation.
type textCall struct {
	pos   mgl32.Vec2
	text  string
	align Alignment
	size  float32
	font  string
	col   color.RGBA
}

// fakeTarget is a RenderTarget that records text calls and maps
// virtual coordinates 1:1 to pixels.
type fakeTarget struct {
	width, height int
	finished      int
	texts         []textCall
}

func (t *fakeTarget) Finish() { t.finished++ }

func (t *fakeTarget) VirtualToPixel(p mgl32.Vec2) mgl32.Vec2 { return p }

func (t *fakeTarget) PhysicalSize() (int, int) { return t.width, t.height }

func (t *fakeTarget) DrawText(pos mgl32.Vec2, text string, align Alignment, size float32, font string, col color.RGBA) {
	t.texts = append(t.texts, textCall{pos, text, align, size, font, col})
}

func (t *fakeTarget) findText(text string) (textCall, bool) {
	for _, c := range t.texts {
		if c.text == text {
			return c, true
		}
	}
	return textCall{}, false
}

func approxEq(a, b, tol float32) bool {
	return math.Abs(float64(a-b)) <= float64(tol)
}

func approxVec3(a, b mgl32.Vec3, tol float32) bool {
	return approxEq(a.X(), b.X(), tol) && approxEq(a.Y(), b.Y(), tol) && approxEq(a.Z(), b.Z(), tol)
}
