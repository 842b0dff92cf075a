package starview

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/wgpu/hal"
)

// countingDustPipeline records pipeline calls without touching a
// device.
type countingDustPipeline struct {
	uploads int
	records int
	lastLen int
}

func (p *countingDustPipeline) UploadPositions(positions []mgl32.Vec3) error {
	p.uploads++
	p.lastLen = len(positions)
	return nil
}

func (p *countingDustPipeline) Record(_ hal.RenderPassEncoder, _, _ mgl32.Mat4, _ mgl32.Vec2) error {
	p.records++
	return nil
}

func (p *countingDustPipeline) Destroy() {}

func TestDustFieldShellInvariant(t *testing.T) {
	f := newDustField(64)
	center := mgl32.Vec3{1000, -2000, 50}

	if !f.update(center) {
		t.Fatal("first update should respawn the zeroed field")
	}

	for i, p := range f.positions {
		d := p.Sub(center).Len()
		if d < dustMinDist || d > dustMaxDist {
			t.Fatalf("particle %d at distance %v, want within [%v, %v]", i, d, float32(dustMinDist), float32(dustMaxDist))
		}
	}
}

func TestDustFieldPairsCoincide(t *testing.T) {
	f := newDustField(32)
	f.update(mgl32.Vec3{})

	for n := 0; n < len(f.positions); n += 2 {
		if f.positions[n] != f.positions[n+1] {
			t.Fatalf("pair %d split: %v vs %v", n/2, f.positions[n], f.positions[n+1])
		}
	}
}

func TestDustFieldStableWhenInsideShell(t *testing.T) {
	f := newDustField(64)
	center := mgl32.Vec3{}
	f.update(center)

	// Every particle is now inside the shell, so a second tick with
	// the same center changes nothing and reports no upload needed.
	before := append([]mgl32.Vec3(nil), f.positions...)
	if f.update(center) {
		t.Error("second update reported changes for a settled field")
	}
	for i := range before {
		if f.positions[i] != before[i] {
			t.Fatalf("particle %d moved without leaving the shell", i)
		}
	}
}

func TestDustFieldRespawnsAfterCenterJump(t *testing.T) {
	f := newDustField(64)
	f.update(mgl32.Vec3{})

	// Jumping the center far away puts every particle out of range.
	center := mgl32.Vec3{100000, 0, 0}
	if !f.update(center) {
		t.Fatal("update should respawn after a large center jump")
	}
	for i, p := range f.positions {
		d := p.Sub(center).Len()
		if d < dustMinDist || d > dustMaxDist {
			t.Fatalf("particle %d at distance %v from new center", i, d)
		}
	}
}

func TestRecordDustUploadsOnlyWhenChanged(t *testing.T) {
	pipeline := &countingDustPipeline{}
	v := &Viewport{
		scene:     &fakeScene{},
		cfg:       defaultOptions(),
		spacedust: pipeline,
		dust:      newDustField(32),
	}
	v.cfg.dustCount = 32

	cam := Camera{}
	tr := NewTransforms(cam, testRect())
	ship := Ship{
		Transform:    Transform{Position: mgl32.Vec2{500, 500}},
		HasTransform: true,
	}

	// The zeroed field is entirely out of shell, so the first tick
	// respawns everything and pushes the positions to the GPU.
	if err := v.recordDust(nil, tr, ship, cam); err != nil {
		t.Fatalf("recordDust: %v", err)
	}
	if pipeline.uploads != 1 {
		t.Fatalf("uploads = %d, want 1 after first tick", pipeline.uploads)
	}
	if pipeline.lastLen != 2*32 {
		t.Errorf("uploaded %d positions, want %d", pipeline.lastLen, 2*32)
	}

	// A settled field with an unmoved ship draws without re-uploading.
	if err := v.recordDust(nil, tr, ship, cam); err != nil {
		t.Fatalf("recordDust: %v", err)
	}
	if pipeline.uploads != 1 {
		t.Errorf("uploads = %d, want still 1 for a settled field", pipeline.uploads)
	}
	if pipeline.records != 2 {
		t.Errorf("records = %d, want 2 (every tick draws)", pipeline.records)
	}

	// Jumping the ship re-dirties the field and costs one more upload.
	ship.Transform.Position = mgl32.Vec2{100000, 0}
	if err := v.recordDust(nil, tr, ship, cam); err != nil {
		t.Fatalf("recordDust: %v", err)
	}
	if pipeline.uploads != 2 {
		t.Errorf("uploads = %d, want 2 after the ship jumped", pipeline.uploads)
	}
}

func TestNewDustFieldCountFallback(t *testing.T) {
	f := newDustField(0)
	if got := len(f.positions); got != 2*DefaultDustCount {
		t.Errorf("len(positions) = %d, want %d", got, 2*DefaultDustCount)
	}
}
