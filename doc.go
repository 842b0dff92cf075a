// Package starview renders the real-time 3D viewport of a multiplayer
// bridge-simulator game on the GoGPU stack.
//
// # Overview
//
// starview draws one frame of the main screen: a blended starbox backdrop,
// the foreground scene (ships, engine-trail particles, space dust, the
// targeting reticle) and the HUD overlays (callsigns, heading ring). It owns
// the GPU resources backing those passes and the camera/projection math that
// both rendering and UI hit-testing share.
//
// # Quick Start
//
//	import "github.com/gogpu/starview"
//
//	vp, err := starview.New(provider, scene, hooks,
//	    starview.WithSpaceDust(true),
//	    starview.WithCallsigns(true),
//	)
//	if err != nil {
//	    return err
//	}
//	defer vp.Destroy()
//
//	// Once per frame, on the render thread:
//	err = vp.Draw(starview.Frame{
//	    Color:  colorView,
//	    Depth:  depthView,
//	    Rect:   rect,
//	    Camera: cam,
//	    Target: target,
//	})
//
// # Collaborators
//
// The entity/component store, the generic 3D entity renderer, the particle
// engine, texture loading and 2D text drawing all live in the host
// application and are consumed through the interfaces in this package
// (Scene, EntityRenderer, ParticleEngine, RenderTarget, CubemapSource,
// TextureSource). starview never mutates scene data apart from the engine
// emitters' spawn timestamps.
//
// # Coordinate System
//
// The game world is a 2D plane with altitude: X/Y across the plane, Z up.
// The camera view matrix converts this convention to the renderer's
// Y-up one; see Camera for the exact composition order.
//
// # Concurrency
//
// The entire draw path is single-threaded and frame-driven. All resource
// loading happens synchronously on first use. A Viewport must only be used
// from the rendering goroutine.
package starview
