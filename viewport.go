package starview

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/starview/internal/gpu"
)

// depthFormat is the depth/stencil format every pipeline targets. The
// host's frame must supply a depth view in this format.
const depthFormat = gputypes.TextureFormatDepth24PlusStencil8

// reticleTextureName is looked up through Hooks.Textures for the
// target marker quad.
const reticleTextureName = "redicule2.png"

// Frame carries everything a single Draw call renders into and with.
// The color and depth views belong to the host and must stay alive
// until Draw returns.
type Frame struct {
	// Color is the render target view, in the surface format the
	// viewport was created against.
	Color hal.TextureView

	// Depth is a Depth24PlusStencil8 view matching Color's size. Its
	// depth contents are cleared to 1 at the start of the pass.
	Depth hal.TextureView

	// Rect is the viewport rectangle in the host's virtual
	// coordinates. A zero-width rect skips the frame entirely.
	Rect Rect

	Camera Camera

	// Target is the host 2D layer used for pixel mapping and HUD text.
	Target RenderTarget
}

// dustPipeline is the GPU side of the dust field. *gpu.Spacedust is
// the only production implementation.
type dustPipeline interface {
	UploadPositions(positions []mgl32.Vec3) error
	Record(rp hal.RenderPassEncoder, projection, view mgl32.Mat4, velocity mgl32.Vec2) error
	Destroy()
}

// Viewport renders the 3D bridge view: environment cube, host
// entities, effect particles, space dust, target reticle, and the HUD
// text layer. Create one with New and drive it once per frame from
// the render goroutine.
type Viewport struct {
	device hal.Device
	queue  hal.Queue
	scene  Scene
	hooks  Hooks
	cfg    options

	starbox   *gpu.Starbox
	spacedust dustPipeline
	billboard *gpu.Billboard
	cubemaps  *gpu.CubemapCache
	dust      *dustField

	// start anchors the fallback clock when no Clock hook is given.
	start time.Time
}

// New creates a viewport drawing the given scene with GPU resources
// from the host's device provider. The provider must expose low-level
// HAL handles; gogpu's application context does.
func New(provider gpucontext.DeviceProvider, scene Scene, hooks Hooks, opts ...Option) (*Viewport, error) {
	if provider == nil {
		return nil, ErrNoDevice
	}
	if scene == nil {
		return nil, ErrNilScene
	}
	if hooks.Cubemaps == nil {
		return nil, ErrNilCubemapSource
	}

	device, queue, err := halFromProvider(provider)
	if err != nil {
		return nil, err
	}

	colorFormat := provider.SurfaceFormat()
	if colorFormat == gputypes.TextureFormatUndefined {
		colorFormat = gputypes.TextureFormatBGRA8Unorm
	}

	cfg := defaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	v := &Viewport{
		device: device,
		queue:  queue,
		scene:  scene,
		hooks:  hooks,
		cfg:    cfg,
		start:  time.Now(),
	}

	v.starbox, err = gpu.NewStarbox(device, queue, colorFormat, depthFormat)
	if err != nil {
		return nil, err
	}
	v.spacedust, err = gpu.NewSpacedust(device, queue, colorFormat, depthFormat, cfg.dustCount)
	if err != nil {
		v.Destroy()
		return nil, err
	}
	v.billboard, err = gpu.NewBillboard(device, queue, colorFormat, depthFormat)
	if err != nil {
		v.Destroy()
		return nil, err
	}
	v.dust = newDustField(cfg.dustCount)
	v.cubemaps = gpu.NewCubemapCache(v.loadCubemap)

	Logger().Info("viewport created",
		"color_format", colorFormat,
		"dust_count", cfg.dustCount)
	return v, nil
}

// halFromProvider digs the low-level device and queue out of a device
// provider that exposes them.
func halFromProvider(provider gpucontext.DeviceProvider) (hal.Device, hal.Queue, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, nil, fmt.Errorf("%w: provider does not expose HAL types", ErrNoDevice)
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoDevice)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoDevice)
	}
	return device, queue, nil
}

// loadCubemap feeds the GPU cache from the host's cubemap source.
// A set that fails to decode falls back to the default environment so
// a bad zone skybox never blanks the sky.
func (v *Viewport) loadCubemap(name string) (*gpu.Cubemap, error) {
	faces, err := v.hooks.Cubemaps.LoadFaces(name)
	if err != nil {
		fallback := skyboxPrefix + "default"
		if name == fallback {
			return nil, err
		}
		Logger().Warn("cubemap load failed, using default", "name", name, "error", err)
		if faces, err = v.hooks.Cubemaps.LoadFaces(fallback); err != nil {
			return nil, err
		}
	}
	return gpu.CreateCubemap(v.device, v.queue, name, faces)
}

// SetShowCallsigns toggles the overhead name labels at runtime.
func (v *Viewport) SetShowCallsigns(on bool) { v.cfg.showCallsigns = on }

// SetShowHeadings toggles the compass heading ring at runtime.
func (v *Viewport) SetShowHeadings(on bool) { v.cfg.showHeadings = on }

// SetShowSpaceDust toggles the dust streaks at runtime.
func (v *Viewport) SetShowSpaceDust(on bool) { v.cfg.showDust = on }

// now is the frame clock in seconds.
func (v *Viewport) now() float64 {
	if v.hooks.Clock != nil {
		return v.hooks.Clock.Elapsed()
	}
	return time.Since(v.start).Seconds()
}

// Draw renders one frame. It flushes the host 2D layer, encodes the
// full 3D pass, submits it, waits for completion, and queues the HUD
// text back onto the 2D layer.
//
// A frame with an empty rect is skipped: the host's layout can
// produce a zero-width viewport for one frame around window resizes,
// and an empty pass is not worth encoding.
func (v *Viewport) Draw(f Frame) error {
	if f.Rect.Empty() {
		return nil
	}
	if f.Target == nil {
		return fmt.Errorf("starview: frame has no render target")
	}

	f.Target.Finish()

	ship, hasShip := v.scene.Player()
	if v.hooks.Listener != nil {
		if hasShip && ship.HasTransform {
			v.hooks.Listener.SetListenerPosition(ship.Transform.Position, ship.Transform.Rotation)
		} else {
			v.hooks.Listener.SetListenerPosition(f.Camera.GroundPosition(), f.Camera.Yaw)
		}
	}

	t := NewTransforms(f.Camera, f.Rect)

	defaultSkybox := ""
	if v.hooks.Info != nil {
		defaultSkybox = v.hooks.Info.DefaultSkybox()
	}
	env := selectEnvironment(v.scene.Zones(), defaultSkybox, f.Camera.GroundPosition())
	global, err := v.cubemaps.Get(env.global)
	if err != nil {
		return err
	}
	local := global
	if env.local != env.global {
		if local, err = v.cubemaps.Get(env.local); err != nil {
			return err
		}
	}

	encoder, err := v.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "starview_encoder",
	})
	if err != nil {
		return fmt.Errorf("starview: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("starview_frame"); err != nil {
		return fmt.Errorf("starview: begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "starview_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:    f.Color,
			LoadOp:  gputypes.LoadOpLoad,
			StoreOp: gputypes.StoreOpStore,
		}},
		DepthStencilAttachment: &hal.RenderPassDepthStencilAttachment{
			View:              f.Depth,
			DepthLoadOp:       gputypes.LoadOpClear,
			DepthStoreOp:      gputypes.StoreOpDiscard,
			DepthClearValue:   1.0,
			StencilLoadOp:     gputypes.LoadOpClear,
			StencilStoreOp:    gputypes.StoreOpDiscard,
			StencilClearValue: 0,
		},
	})

	// Restrict drawing to the viewport rectangle in physical pixels.
	p0 := f.Target.VirtualToPixel(f.Rect.Pos)
	p1 := f.Target.VirtualToPixel(f.Rect.Pos.Add(f.Rect.Size))
	pw, ph := f.Target.PhysicalSize()
	rp.SetViewport(p0.X(), p0.Y(), p1.X()-p0.X(), p1.Y()-p0.Y(), 0, 1)

	if err := v.starbox.Record(rp, t.Projection, t.View, env.blend, global, local); err != nil {
		rp.End()
		encoder.DiscardEncoding()
		return err
	}

	v.spawnEngineParticles(v.now())

	if v.hooks.Uniforms != nil {
		v.hooks.Uniforms.PublishViewProjection(t.Projection, t.View)
	}
	if v.hooks.Renderer != nil {
		v.hooks.Renderer.Render3D(rp, f.Rect.Aspect(), f.Camera.fov())
	}

	if v.hooks.Particles != nil {
		v.hooks.Particles.Render(rp, t.Projection, t.View)
	}

	if v.cfg.showDust && hasShip {
		if err := v.recordDust(rp, t, ship, f.Camera); err != nil {
			rp.End()
			encoder.DiscardEncoding()
			return err
		}
	}

	if hasShip && ship.Target != nil && ship.Target.HasTransform {
		if err := v.recordReticle(rp, t, *ship.Target); err != nil {
			rp.End()
			encoder.DiscardEncoding()
			return err
		}
	}

	// Hand the full surface back to the host's 2D layer.
	rp.SetViewport(0, 0, float32(pw), float32(ph), 0, 1)
	rp.End()

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("starview: end encoding: %w", err)
	}
	defer v.device.FreeCommandBuffer(cmdBuf)

	if _, err := v.queue.Submit([]hal.CommandBuffer{cmdBuf}); err != nil {
		return fmt.Errorf("starview: submit: %w", err)
	}
	// The HAL tracks submission fences internally; draining the device
	// keeps bind group churn safe before the next frame rebuilds one.
	if err := v.device.WaitIdle(); err != nil {
		return fmt.Errorf("starview: wait for GPU: %w", err)
	}

	if v.cfg.showCallsigns {
		v.drawCallsigns(t, f.Target, ship.ID, hasShip)
	}
	if v.cfg.showHeadings && hasShip {
		v.drawHeadings(t, f.Target, ship)
	}
	return nil
}

// recordDust ticks the dust field around the ship and encodes the
// streak draw. Positions are only re-uploaded on ticks that moved a
// particle.
func (v *Viewport) recordDust(rp hal.RenderPassEncoder, t Transforms, ship Ship, cam Camera) error {
	center := cam.Position
	velocity := mgl32.Vec2{}
	if ship.HasTransform {
		center = mgl32.Vec3{ship.Transform.Position.X(), ship.Transform.Position.Y(), 0}
	}
	if ship.HasPhysics {
		velocity = ship.Velocity.Mul(1.0 / 100.0)
	}

	if v.dust.update(center) {
		Logger().Debug("dust positions uploaded", "count", v.cfg.dustCount)
		if err := v.spacedust.UploadPositions(v.dust.positions); err != nil {
			return err
		}
	}
	return v.spacedust.Record(rp, t.Projection, t.View, velocity)
}

// recordReticle encodes the lock marker over the targeted object. The
// marker scales with the target's physical size and ignores the depth
// buffer so it stays visible through geometry.
func (v *Viewport) recordReticle(rp hal.RenderPassEncoder, t Transforms, target Target) error {
	if v.hooks.Textures == nil {
		return nil
	}
	tex, err := v.hooks.Textures.Texture(reticleTextureName)
	if err != nil {
		Logger().Warn("reticle texture unavailable", "name", reticleTextureName, "error", err)
		return nil
	}

	radius := target.Radius
	if radius <= 0 {
		radius = DefaultBoundingRadius
	}
	modelview := t.View.Mul4(mgl32.Translate3D(target.Position.X(), target.Position.Y(), 0))
	// Alpha carries the quad half-size, not opacity.
	color := mgl32.Vec4{0.5, 0.5, 0.5, radius * 2.5}
	return v.billboard.Record(rp, t.Projection, modelview, color, tex)
}

// Destroy releases every GPU resource owned by the viewport. The
// viewport must not be used afterwards.
func (v *Viewport) Destroy() {
	if v.cubemaps != nil {
		v.cubemaps.Destroy(v.device)
		v.cubemaps = nil
	}
	if v.billboard != nil {
		v.billboard.Destroy()
		v.billboard = nil
	}
	if v.spacedust != nil {
		v.spacedust.Destroy()
		v.spacedust = nil
	}
	if v.starbox != nil {
		v.starbox.Destroy()
		v.starbox = nil
	}
}
