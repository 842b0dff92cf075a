package gpu

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Uniform layout: projection + modelview matrices, color vec4.
const billboardUniformSize = 2*64 + 16

// Quad corners with texture coordinates, stride 16: corner vec2 then
// uv vec2. The corners are expanded in view space by the shader.
var billboardVertices = []float32{
	-1, -1, 0, 1,
	1, -1, 1, 1,
	1, 1, 1, 0,
	-1, 1, 0, 0,
}

var billboardIndices = []uint16{0, 2, 1, 0, 3, 2}

// Billboard draws a single camera-facing textured quad. The viewport
// uses it for the target reticle, drawn last in the 3D pass with the
// depth test off so the marker is never hidden by geometry.
type Billboard struct {
	device hal.Device
	queue  hal.Queue

	shader     hal.ShaderModule
	layout     hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.RenderPipeline
	sampler    hal.Sampler
	vertBuf    hal.Buffer
	idxBuf     hal.Buffer
	uniformBuf hal.Buffer

	bindGroup hal.BindGroup
	bindTex   hal.TextureView
}

// NewBillboard creates the billboard pipeline targeting the given
// color and depth formats.
func NewBillboard(device hal.Device, queue hal.Queue, colorFormat, depthFormat gputypes.TextureFormat) (*Billboard, error) {
	b := &Billboard{device: device, queue: queue}
	if err := b.create(colorFormat, depthFormat); err != nil {
		b.Destroy()
		return nil, err
	}
	return b, nil
}

func (b *Billboard) create(colorFormat, depthFormat gputypes.TextureFormat) error {
	shader, err := createShaderModule(b.device, "billboard_shader", billboardShaderSource)
	if err != nil {
		return err
	}
	b.shader = shader

	layout, err := b.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "billboard_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    2,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("gpu: create billboard bind layout: %w", err)
	}
	b.layout = layout

	pipeLayout, err := b.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "billboard_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{b.layout},
	})
	if err != nil {
		return fmt.Errorf("gpu: create billboard pipeline layout: %w", err)
	}
	b.pipeLayout = pipeLayout

	sampler, err := b.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "billboard_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeLinear,
	})
	if err != nil {
		return fmt.Errorf("gpu: create billboard sampler: %w", err)
	}
	b.sampler = sampler

	premulBlend := gputypes.BlendStatePremultiplied()
	pipeline, err := b.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "billboard_pipeline",
		Layout: b.pipeLayout,
		Vertex: hal.VertexState{
			Module:     b.shader,
			EntryPoint: "vs_main",
			Buffers: []gputypes.VertexBufferLayout{
				{
					ArrayStride: 16,
					StepMode:    gputypes.VertexStepModeVertex,
					Attributes: []gputypes.VertexAttribute{
						{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
						{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},
					},
				},
			},
		},
		Fragment: &hal.FragmentState{
			Module:     b.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    colorFormat,
					Blend:     &premulBlend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		DepthStencil: &hal.DepthStencilState{
			Format:            depthFormat,
			DepthWriteEnabled: false,
			DepthCompare:      gputypes.CompareFunctionAlways,
			StencilFront:      stencilIgnore(),
			StencilBack:       stencilIgnore(),
			StencilReadMask:   0x00,
			StencilWriteMask:  0x00,
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("gpu: create billboard pipeline: %w", err)
	}
	b.pipeline = pipeline

	vertBuf, err := createBufferInit(b.device, b.queue, "billboard_vertices",
		gputypes.BufferUsageVertex, appendFloats(nil, billboardVertices...))
	if err != nil {
		return err
	}
	b.vertBuf = vertBuf

	idxBuf, err := createBufferInit(b.device, b.queue, "billboard_indices",
		gputypes.BufferUsageIndex, appendUint16s(nil, billboardIndices...))
	if err != nil {
		return err
	}
	b.idxBuf = idxBuf

	uniformBuf, err := createUniformBuffer(b.device, "billboard_uniforms", billboardUniformSize)
	if err != nil {
		return err
	}
	b.uniformBuf = uniformBuf

	return nil
}

// Record writes this frame's uniforms and encodes the quad draw into
// the open pass. The color's alpha channel carries the quad half-size
// in world units.
func (b *Billboard) Record(rp hal.RenderPassEncoder, projection, modelview mgl32.Mat4, color mgl32.Vec4, texture hal.TextureView) error {
	data := make([]byte, 0, billboardUniformSize)
	data = appendMat4(data, projection)
	data = appendMat4(data, modelview)
	data = appendFloats(data, color.X(), color.Y(), color.Z(), color.W())
	if err := b.queue.WriteBuffer(b.uniformBuf, 0, data); err != nil {
		return fmt.Errorf("gpu: write billboard uniforms: %w", err)
	}

	if err := b.ensureBindGroup(texture); err != nil {
		return err
	}

	rp.SetPipeline(b.pipeline)
	rp.SetBindGroup(0, b.bindGroup, nil)
	rp.SetVertexBuffer(0, b.vertBuf, 0)
	rp.SetIndexBuffer(b.idxBuf, gputypes.IndexFormatUint16, 0)
	rp.DrawIndexed(uint32(len(billboardIndices)), 1, 0, 0, 0)
	return nil
}

func (b *Billboard) ensureBindGroup(texture hal.TextureView) error {
	if b.bindGroup != nil && b.bindTex == texture {
		return nil
	}
	if b.bindGroup != nil {
		b.device.DestroyBindGroup(b.bindGroup)
		b.bindGroup = nil
	}
	bg, err := b.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "billboard_bind",
		Layout: b.layout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: b.uniformBuf.NativeHandle(), Offset: 0, Size: billboardUniformSize,
			}},
			{Binding: 1, Resource: gputypes.TextureViewBinding{TextureView: texture.NativeHandle()}},
			{Binding: 2, Resource: gputypes.SamplerBinding{Sampler: b.sampler.NativeHandle()}},
		},
	})
	if err != nil {
		return fmt.Errorf("gpu: create billboard bind group: %w", err)
	}
	b.bindGroup = bg
	b.bindTex = texture
	return nil
}

// Destroy releases every GPU resource held by the pipeline. Safe to
// call multiple times.
func (b *Billboard) Destroy() {
	if b.device == nil {
		return
	}
	if b.bindGroup != nil {
		b.device.DestroyBindGroup(b.bindGroup)
		b.bindGroup = nil
	}
	if b.uniformBuf != nil {
		b.device.DestroyBuffer(b.uniformBuf)
		b.uniformBuf = nil
	}
	if b.idxBuf != nil {
		b.device.DestroyBuffer(b.idxBuf)
		b.idxBuf = nil
	}
	if b.vertBuf != nil {
		b.device.DestroyBuffer(b.vertBuf)
		b.vertBuf = nil
	}
	if b.pipeline != nil {
		b.device.DestroyRenderPipeline(b.pipeline)
		b.pipeline = nil
	}
	if b.sampler != nil {
		b.device.DestroySampler(b.sampler)
		b.sampler = nil
	}
	if b.pipeLayout != nil {
		b.device.DestroyPipelineLayout(b.pipeLayout)
		b.pipeLayout = nil
	}
	if b.layout != nil {
		b.device.DestroyBindGroupLayout(b.layout)
		b.layout = nil
	}
	if b.shader != nil {
		b.device.DestroyShaderModule(b.shader)
		b.shader = nil
	}
}
