package starview

import (
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/wgpu/hal"
)

// GameInfo exposes host-wide settings the viewport reads but does not
// own.
type GameInfo interface {
	// DefaultSkybox names the environment used outside every zone.
	// Empty selects the built-in "default" set.
	DefaultSkybox() string
}

// Clock supplies frame time for engine exhaust throttling. Elapsed is
// seconds since an arbitrary epoch and must be monotonic.
type Clock interface {
	Elapsed() float64
}

// Listener receives the audio reference point once per frame, before
// any drawing happens. Position is on the game plane; yaw is in
// degrees.
type Listener interface {
	SetListenerPosition(pos mgl32.Vec2, yaw float32)
}

// EntityRenderer draws the host's 3D objects into an open render
// pass. The viewport has already bound the pass to the frame's color
// and depth targets and restricted it to the viewport rectangle.
type EntityRenderer interface {
	Render3D(rp hal.RenderPassEncoder, aspect, fovY float32)
}

// ParticleEngine owns transient effect particles. Spawn registers a
// line-shaped particle that interpolates between its endpoints and
// colors over its lifetime; Render draws every live particle into the
// open pass.
type ParticleEngine interface {
	Spawn(start, end, startColor, endColor mgl32.Vec3, scale, startTime, lifetime float32)
	Render(rp hal.RenderPassEncoder, projection, view mgl32.Mat4)
}

// UniformPublisher mirrors the per-frame matrices into a shader
// registry shared with renderers outside this package, so host
// pipelines see the same camera the viewport drew with.
type UniformPublisher interface {
	PublishViewProjection(projection, view mgl32.Mat4)
}

// CubemapSource decodes the six faces of a named environment set.
// Face order is +X, -X, +Y, -Y, +Z, -Z. Faces need not share
// dimensions; the viewport rescales them to a common edge before
// upload.
type CubemapSource interface {
	LoadFaces(name string) ([6]image.Image, error)
}

// TextureSource resolves named 2D textures already resident on the
// device. The viewport uses it for the target reticle only.
type TextureSource interface {
	Texture(name string) (hal.TextureView, error)
}

// Alignment anchors text relative to its position.
type Alignment int

const (
	AlignCenter Alignment = iota
	AlignTopLeft
	AlignTopCenter
	AlignBottomCenter
)

// RenderTarget is the host's 2D layer. The viewport flushes it before
// 3D drawing and queues HUD text on it afterwards; coordinates are in
// the host's virtual space.
type RenderTarget interface {
	// Finish flushes all 2D drawing queued so far, so the 3D scene
	// composites over a complete backdrop.
	Finish()

	// VirtualToPixel maps a virtual-space point to physical pixels.
	VirtualToPixel(p mgl32.Vec2) mgl32.Vec2

	// PhysicalSize reports the output surface size in pixels.
	PhysicalSize() (width, height int)

	DrawText(pos mgl32.Vec2, text string, align Alignment, size float32, font string, col color.RGBA)
}

// Hooks bundles the host collaborators a Viewport draws with. Scene
// and a CubemapSource are required; every other field may be nil, in
// which case the matching pass is skipped.
type Hooks struct {
	Cubemaps CubemapSource

	Info      GameInfo
	Clock     Clock
	Listener  Listener
	Renderer  EntityRenderer
	Particles ParticleEngine
	Uniforms  UniformPublisher
	Textures  TextureSource
}
