package starview

import (
	"iter"
	"slices"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func zoneSeq(zs ...Zone) iter.Seq[Zone] { return slices.Values(zs) }

// squareZone is a 1000x1000 zone with its corner at the origin.
func squareZone(skybox string, fade float32) Zone {
	return Zone{
		Outline: []mgl32.Vec2{
			{0, 0}, {1000, 0}, {1000, 1000}, {0, 1000},
		},
		Skybox:     skybox,
		SkyboxFade: fade,
	}
}

func TestSelectEnvironmentNoZones(t *testing.T) {
	env := selectEnvironment(zoneSeq(), "", mgl32.Vec2{0, 0})
	if env.global != "skybox/default" {
		t.Errorf("global = %q, want skybox/default", env.global)
	}
	if env.local != env.global {
		t.Errorf("local = %q, want same as global", env.local)
	}
	if env.blend != 0 {
		t.Errorf("blend = %v, want 0", env.blend)
	}
}

func TestSelectEnvironmentDefaultName(t *testing.T) {
	env := selectEnvironment(zoneSeq(), "nebula", mgl32.Vec2{0, 0})
	if env.global != "skybox/nebula" {
		t.Errorf("global = %q, want skybox/nebula", env.global)
	}
}

func TestSelectEnvironmentInsideZone(t *testing.T) {
	tests := []struct {
		name      string
		zone      Zone
		ground    mgl32.Vec2
		wantLocal string
		wantBlend float32
	}{
		{
			name:      "hard switch",
			zone:      squareZone("storm", 0),
			ground:    mgl32.Vec2{500, 500},
			wantLocal: "skybox/storm",
			wantBlend: 1,
		},
		{
			name:      "fade at half distance",
			zone:      squareZone("storm", 1000),
			ground:    mgl32.Vec2{500, 500},
			wantLocal: "skybox/storm",
			wantBlend: 0.5,
		},
		{
			name:      "fade saturates deep inside",
			zone:      squareZone("storm", 200),
			ground:    mgl32.Vec2{500, 500},
			wantLocal: "skybox/storm",
			wantBlend: 1,
		},
		{
			name:      "fade near the edge",
			zone:      squareZone("storm", 1000),
			ground:    mgl32.Vec2{100, 500},
			wantLocal: "skybox/storm",
			wantBlend: 0.1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := selectEnvironment(zoneSeq(tt.zone), "", tt.ground)
			if env.local != tt.wantLocal {
				t.Errorf("local = %q, want %q", env.local, tt.wantLocal)
			}
			if !approxEq(env.blend, tt.wantBlend, 1e-4) {
				t.Errorf("blend = %v, want %v", env.blend, tt.wantBlend)
			}
		})
	}
}

func TestSelectEnvironmentOutsideZone(t *testing.T) {
	env := selectEnvironment(zoneSeq(squareZone("storm", 0)), "", mgl32.Vec2{-500, -500})
	if env.local != "skybox/default" {
		t.Errorf("local = %q, want skybox/default", env.local)
	}
	if env.blend != 0 {
		t.Errorf("blend = %v, want 0", env.blend)
	}
}

func TestSelectEnvironmentFirstMatchWins(t *testing.T) {
	first := squareZone("first", 0)
	second := squareZone("second", 0)
	env := selectEnvironment(zoneSeq(first, second), "", mgl32.Vec2{500, 500})
	if env.local != "skybox/first" {
		t.Errorf("local = %q, want skybox/first", env.local)
	}
}

func TestSelectEnvironmentSkipsUnusableZones(t *testing.T) {
	noSkybox := squareZone("", 0)
	degenerate := Zone{Outline: []mgl32.Vec2{{0, 0}, {1000, 1000}}, Skybox: "line"}
	real := squareZone("storm", 0)

	env := selectEnvironment(zoneSeq(noSkybox, degenerate, real), "", mgl32.Vec2{500, 500})
	if env.local != "skybox/storm" {
		t.Errorf("local = %q, want skybox/storm", env.local)
	}
}
