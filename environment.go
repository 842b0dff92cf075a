package starview

import (
	"iter"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/peterstace/simplefeatures/geom"
)

// skyboxPrefix namespaces environment sets in the resource cache so
// they cannot collide with ordinary textures.
const skyboxPrefix = "skybox/"

// environment is the per-frame skybox decision: which two cubemaps to
// bind and how far to blend from the global set toward the local one.
type environment struct {
	global string
	local  string
	// blend is 0 for pure global, 1 for pure local.
	blend float32
}

// selectEnvironment resolves the camera's ground position against the
// zone list. The first zone containing the point wins; zones without
// a skybox never match. Outside every zone both slots carry the
// global set with blend 0, which draws identically to a single-box
// sky.
func selectEnvironment(zones iter.Seq[Zone], defaultSkybox string, ground mgl32.Vec2) environment {
	if defaultSkybox == "" {
		defaultSkybox = "default"
	}
	env := environment{global: skyboxPrefix + defaultSkybox}

	pt, ok := groundPoint(ground)
	if !ok {
		env.local = env.global
		return env
	}
	for z := range zones {
		if z.Skybox == "" {
			continue
		}
		poly, ok := zonePolygon(z.Outline)
		if !ok {
			continue
		}
		if !geom.Intersects(pt.AsGeometry(), poly.AsGeometry()) {
			continue
		}
		env.local = skyboxPrefix + z.Skybox
		if z.SkyboxFade <= 0 {
			env.blend = 1
		} else {
			dist, ok := geom.Distance(pt.AsGeometry(), poly.Boundary().AsGeometry())
			if !ok {
				env.blend = 1
			} else {
				env.blend = clamp01(float32(dist) / z.SkyboxFade)
			}
		}
		return env
	}

	env.local = env.global
	env.blend = 0
	return env
}

// zonePolygon builds a polygon from a zone outline, closing the ring
// back to the first vertex. Degenerate outlines, self-intersecting
// rings and other shapes the geometry library rejects report ok=false
// and are treated as never containing the camera.
func zonePolygon(outline []mgl32.Vec2) (geom.Polygon, bool) {
	if len(outline) < 3 {
		return geom.Polygon{}, false
	}
	coords := make([]float64, 0, (len(outline)+1)*2)
	for _, p := range outline {
		coords = append(coords, float64(p.X()), float64(p.Y()))
	}
	coords = append(coords, float64(outline[0].X()), float64(outline[0].Y()))
	ring, err := geom.NewLineString(geom.NewSequence(coords, geom.DimXY))
	if err != nil {
		return geom.Polygon{}, false
	}
	poly, err := geom.NewPolygon([]geom.LineString{ring})
	if err != nil {
		return geom.Polygon{}, false
	}
	return poly, true
}

func groundPoint(p mgl32.Vec2) (geom.Point, bool) {
	pt, err := geom.NewPoint(geom.Coordinates{
		XY: geom.XY{X: float64(p.X()), Y: float64(p.Y())},
	})
	return pt, err == nil
}
