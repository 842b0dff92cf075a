package gpu

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Uniform layout: projection + view matrices, velocity vec2, pad.
const spacedustUniformSize = 2*64 + 4*4

// Spacedust draws the dust field as a line list. One vertex buffer
// holds two regions: the positions (rewritten whenever the field
// changes) followed by the per-vertex signs (written once). The signs
// just tell the shader which end of each streak a vertex is.
type Spacedust struct {
	device hal.Device
	queue  hal.Queue
	count  int

	shader     hal.ShaderModule
	layout     hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.RenderPipeline
	vertBuf    hal.Buffer
	uniformBuf hal.Buffer
	bindGroup  hal.BindGroup
}

// NewSpacedust creates the dust pipeline for a fixed particle count.
func NewSpacedust(device hal.Device, queue hal.Queue, colorFormat, depthFormat gputypes.TextureFormat, count int) (*Spacedust, error) {
	if count <= 0 {
		return nil, fmt.Errorf("gpu: spacedust count must be positive, got %d", count)
	}
	d := &Spacedust{device: device, queue: queue, count: count}
	if err := d.create(colorFormat, depthFormat); err != nil {
		d.Destroy()
		return nil, err
	}
	return d, nil
}

// vertexCount is the total line-list vertex count: two per particle.
func (d *Spacedust) vertexCount() int { return 2 * d.count }

// signsOffset is the byte offset of the sign region in the vertex
// buffer.
func (d *Spacedust) signsOffset() uint64 { return uint64(d.vertexCount()) * 12 }

func (d *Spacedust) create(colorFormat, depthFormat gputypes.TextureFormat) error {
	shader, err := createShaderModule(d.device, "spacedust_shader", spacedustShaderSource)
	if err != nil {
		return err
	}
	d.shader = shader

	layout, err := d.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "spacedust_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("gpu: create spacedust bind layout: %w", err)
	}
	d.layout = layout

	pipeLayout, err := d.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "spacedust_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{d.layout},
	})
	if err != nil {
		return fmt.Errorf("gpu: create spacedust pipeline layout: %w", err)
	}
	d.pipeLayout = pipeLayout

	pipeline, err := d.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "spacedust_pipeline",
		Layout: d.pipeLayout,
		Vertex: hal.VertexState{
			Module:     d.shader,
			EntryPoint: "vs_main",
			Buffers: []gputypes.VertexBufferLayout{
				{
					ArrayStride: 12,
					StepMode:    gputypes.VertexStepModeVertex,
					Attributes: []gputypes.VertexAttribute{
						{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
					},
				},
				{
					ArrayStride: 4,
					StepMode:    gputypes.VertexStepModeVertex,
					Attributes: []gputypes.VertexAttribute{
						{Format: gputypes.VertexFormatFloat32, Offset: 0, ShaderLocation: 1},
					},
				},
			},
		},
		Fragment: &hal.FragmentState{
			Module:     d.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    colorFormat,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		DepthStencil: &hal.DepthStencilState{
			Format:            depthFormat,
			DepthWriteEnabled: true,
			DepthCompare:      gputypes.CompareFunctionLess,
			StencilFront:      stencilIgnore(),
			StencilBack:       stencilIgnore(),
			StencilReadMask:   0x00,
			StencilWriteMask:  0x00,
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyLineList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("gpu: create spacedust pipeline: %w", err)
	}
	d.pipeline = pipeline

	// Positions first (dynamic), signs second (static -1/+1 pairs).
	data := make([]byte, 0, d.vertexCount()*12+d.vertexCount()*4)
	data = append(data, make([]byte, d.vertexCount()*12)...)
	for n := 0; n < d.vertexCount(); n += 2 {
		data = appendFloats(data, -1, 1)
	}
	vertBuf, err := createBufferInit(d.device, d.queue, "spacedust_vertices",
		gputypes.BufferUsageVertex, data)
	if err != nil {
		return err
	}
	d.vertBuf = vertBuf

	uniformBuf, err := createUniformBuffer(d.device, "spacedust_uniforms", spacedustUniformSize)
	if err != nil {
		return err
	}
	d.uniformBuf = uniformBuf

	bg, err := d.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "spacedust_bind",
		Layout: d.layout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: d.uniformBuf.NativeHandle(), Offset: 0, Size: spacedustUniformSize,
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("gpu: create spacedust bind group: %w", err)
	}
	d.bindGroup = bg

	return nil
}

// UploadPositions rewrites the position region of the vertex buffer.
// Callers only invoke this when the field actually changed; the sign
// region is never touched after creation.
func (d *Spacedust) UploadPositions(positions []mgl32.Vec3) error {
	if len(positions) != d.vertexCount() {
		return fmt.Errorf("gpu: spacedust expects %d positions, got %d", d.vertexCount(), len(positions))
	}
	if err := d.queue.WriteBuffer(d.vertBuf, 0, packVec3s(positions)); err != nil {
		return fmt.Errorf("gpu: write spacedust positions: %w", err)
	}
	return nil
}

// Record writes this frame's uniforms and encodes the line draw into
// the open pass.
func (d *Spacedust) Record(rp hal.RenderPassEncoder, projection, view mgl32.Mat4, velocity mgl32.Vec2) error {
	data := make([]byte, 0, spacedustUniformSize)
	data = appendMat4(data, projection)
	data = appendMat4(data, view)
	data = appendFloats(data, velocity.X(), velocity.Y(), 0, 0)
	if err := d.queue.WriteBuffer(d.uniformBuf, 0, data); err != nil {
		return fmt.Errorf("gpu: write spacedust uniforms: %w", err)
	}

	rp.SetPipeline(d.pipeline)
	rp.SetBindGroup(0, d.bindGroup, nil)
	rp.SetVertexBuffer(0, d.vertBuf, 0)
	rp.SetVertexBuffer(1, d.vertBuf, d.signsOffset())
	rp.Draw(uint32(d.vertexCount()), 1, 0, 0)
	return nil
}

// Destroy releases every GPU resource held by the pipeline. Safe to
// call multiple times.
func (d *Spacedust) Destroy() {
	if d.device == nil {
		return
	}
	if d.bindGroup != nil {
		d.device.DestroyBindGroup(d.bindGroup)
		d.bindGroup = nil
	}
	if d.uniformBuf != nil {
		d.device.DestroyBuffer(d.uniformBuf)
		d.uniformBuf = nil
	}
	if d.vertBuf != nil {
		d.device.DestroyBuffer(d.vertBuf)
		d.vertBuf = nil
	}
	if d.pipeline != nil {
		d.device.DestroyRenderPipeline(d.pipeline)
		d.pipeline = nil
	}
	if d.pipeLayout != nil {
		d.device.DestroyPipelineLayout(d.pipeLayout)
		d.pipeLayout = nil
	}
	if d.layout != nil {
		d.device.DestroyBindGroupLayout(d.layout)
		d.layout = nil
	}
	if d.shader != nil {
		d.device.DestroyShaderModule(d.shader)
		d.shader = nil
	}
}
