package starview

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func emitterViewport(scene *fakeScene, particles *fakeParticles) *Viewport {
	return &Viewport{
		scene: scene,
		hooks: Hooks{Particles: particles},
		cfg:   defaultOptions(),
	}
}

func singleEmitterScene(impulse float32, lastSpawn float64) (*fakeScene, *EngineEmitter) {
	em := &EngineEmitter{
		Points: []EmitterPoint{
			{Offset: mgl32.Vec3{-10, 0, 2}, Color: mgl32.Vec3{1, 0.5, 0}, Scale: 4},
		},
		LastSpawn: lastSpawn,
	}
	scene := &fakeScene{
		emitters: map[EntityID]*EmitterEntity{
			1: {
				Transform: Transform{Position: mgl32.Vec2{100, 200}},
				Impulse:   impulse,
				Emitter:   em,
			},
		},
	}
	return scene, em
}

func TestSpawnEngineParticles(t *testing.T) {
	scene, em := singleEmitterScene(0.5, 0)
	particles := &fakeParticles{}
	v := emitterViewport(scene, particles)

	v.spawnEngineParticles(1.0)

	if len(particles.spawns) != 1 {
		t.Fatalf("spawned %d particles, want 1", len(particles.spawns))
	}
	sp := particles.spawns[0]
	want := mgl32.Vec3{90, 200, 2}
	if !approxVec3(sp.start, want, 1e-3) || !approxVec3(sp.end, want, 1e-3) {
		t.Errorf("spawn at %v..%v, want both %v", sp.start, sp.end, want)
	}
	if !approxEq(sp.scale, 2, 1e-6) {
		t.Errorf("scale = %v, want point scale 4 * |impulse| 0.5 = 2", sp.scale)
	}
	if sp.lifetime != engineParticleLife {
		t.Errorf("lifetime = %v, want %v", sp.lifetime, float32(engineParticleLife))
	}
	if em.LastSpawn != 1.0 {
		t.Errorf("LastSpawn = %v, want stamped to 1.0", em.LastSpawn)
	}
}

func TestSpawnEngineParticlesRotatesOffsets(t *testing.T) {
	scene, _ := singleEmitterScene(1, 0)
	for _, e := range scene.emitters {
		e.Transform.Rotation = 90
	}
	particles := &fakeParticles{}
	v := emitterViewport(scene, particles)

	v.spawnEngineParticles(1.0)

	if len(particles.spawns) != 1 {
		t.Fatalf("spawned %d particles, want 1", len(particles.spawns))
	}
	// Offset (-10, 0) rotated 90 degrees is (0, -10).
	want := mgl32.Vec3{100, 190, 2}
	if !approxVec3(particles.spawns[0].start, want, 1e-3) {
		t.Errorf("spawn at %v, want %v", particles.spawns[0].start, want)
	}
}

func TestSpawnEngineParticlesThrottling(t *testing.T) {
	tests := []struct {
		name      string
		impulse   float32
		lastSpawn float64
		now       float64
		want      int
	}{
		{"idle engines emit nothing", 0, 0, 1.0, 0},
		{"recent burst suppresses", 1, 0.95, 1.0, 0},
		{"interval elapsed emits", 1, 0.85, 1.0, 1},
		{"reverse thrust emits", -1, 0, 1.0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene, _ := singleEmitterScene(tt.impulse, tt.lastSpawn)
			particles := &fakeParticles{}
			v := emitterViewport(scene, particles)

			v.spawnEngineParticles(tt.now)

			if len(particles.spawns) != tt.want {
				t.Errorf("spawned %d particles, want %d", len(particles.spawns), tt.want)
			}
		})
	}
}

func TestSpawnEngineParticlesNoEngine(t *testing.T) {
	scene := &fakeScene{
		emitters: map[EntityID]*EmitterEntity{
			1: {Impulse: 1, Emitter: nil},
		},
	}
	particles := &fakeParticles{}
	v := emitterViewport(scene, particles)

	v.spawnEngineParticles(1.0)

	if len(particles.spawns) != 0 {
		t.Errorf("spawned %d particles for a ship without an emitter", len(particles.spawns))
	}
}
