package gpu

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// starboxScale sizes the unit cube in world units. The box is drawn
// around the camera without depth writes, so the exact value only has
// to sit comfortably inside the far plane.
const starboxScale = 100.0

// Uniform layout: projection + view matrices, blend factor, scale,
// two pad floats for 16-byte alignment.
const starboxUniformSize = 2*64 + 4*4

// Cube corners, left face then right face:
//
//	   .2------6
//	 .' |    .'|
//	3---+--7'  |
//	|   |  |   |
//	|  .0--+---4
//	|.'    | .'
//	1------5'
var starboxVertices = []float32{
	-1, -1, -1, // 0
	-1, -1, 1, // 1
	-1, 1, -1, // 2
	-1, 1, 1, // 3
	1, -1, -1, // 4
	1, -1, 1, // 5
	1, 1, -1, // 6
	1, 1, 1, // 7
}

var starboxIndices = []uint16{
	2, 6, 4, 4, 0, 2, // back
	3, 2, 0, 0, 1, 3, // left
	6, 7, 5, 5, 4, 6, // right
	7, 3, 1, 1, 5, 7, // front
	6, 2, 3, 3, 7, 6, // top
	0, 4, 5, 5, 1, 0, // bottom
}

// Starbox draws the blended environment cube. It renders first in the
// frame with depth writes off, so everything else composites over it.
type Starbox struct {
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

	// bindGroup is rebuilt when the bound cubemap pair changes. The
	// previous group is destroyed lazily on the next rebuild, after
	// the frame that used it has been waited on.
	bindGroup hal.BindGroup
	bindKey   [2]*Cubemap
}

// NewStarbox creates the environment pipeline targeting the given
// color and depth formats.
func NewStarbox(device hal.Device, queue hal.Queue, colorFormat, depthFormat gputypes.TextureFormat) (*Starbox, error) {
	s := &Starbox{device: device, queue: queue}
	if err := s.create(colorFormat, depthFormat); err != nil {
		s.Destroy()
		return nil, err
	}
	return s, nil
}

func (s *Starbox) create(colorFormat, depthFormat gputypes.TextureFormat) error {
	shader, err := createShaderModule(s.device, "starbox_shader", starboxShaderSource)
	if err != nil {
		return err
	}
	s.shader = shader

	layout, err := s.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "starbox_bind_layout",
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
					ViewDimension: gputypes.TextureViewDimensionCube,
				},
			},
			{
				Binding:    2,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimensionCube,
				},
			},
			{
				Binding:    3,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("gpu: create starbox bind layout: %w", err)
	}
	s.layout = layout

	pipeLayout, err := s.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "starbox_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{s.layout},
	})
	if err != nil {
		return fmt.Errorf("gpu: create starbox pipeline layout: %w", err)
	}
	s.pipeLayout = pipeLayout

	sampler, err := s.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "starbox_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeLinear,
	})
	if err != nil {
		return fmt.Errorf("gpu: create starbox sampler: %w", err)
	}
	s.sampler = sampler

	pipeline, err := s.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "starbox_pipeline",
		Layout: s.pipeLayout,
		Vertex: hal.VertexState{
			Module:     s.shader,
			EntryPoint: "vs_main",
			Buffers: []gputypes.VertexBufferLayout{
				{
					ArrayStride: 12,
					StepMode:    gputypes.VertexStepModeVertex,
					Attributes: []gputypes.VertexAttribute{
						{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
					},
				},
			},
		},
		Fragment: &hal.FragmentState{
			Module:     s.shader,
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
		return fmt.Errorf("gpu: create starbox pipeline: %w", err)
	}
	s.pipeline = pipeline

	vertBuf, err := createBufferInit(s.device, s.queue, "starbox_vertices",
		gputypes.BufferUsageVertex, appendFloats(nil, starboxVertices...))
	if err != nil {
		return err
	}
	s.vertBuf = vertBuf

	idxBuf, err := createBufferInit(s.device, s.queue, "starbox_indices",
		gputypes.BufferUsageIndex, appendUint16s(nil, starboxIndices...))
	if err != nil {
		return err
	}
	s.idxBuf = idxBuf

	uniformBuf, err := createUniformBuffer(s.device, "starbox_uniforms", starboxUniformSize)
	if err != nil {
		return err
	}
	s.uniformBuf = uniformBuf

	return nil
}

// Record writes this frame's uniforms and encodes the cube draw into
// the open pass. blend is 0 for the pure global box, 1 for the pure
// zone-local box.
func (s *Starbox) Record(rp hal.RenderPassEncoder, projection, view mgl32.Mat4, blend float32, global, local *Cubemap) error {
	data := make([]byte, 0, starboxUniformSize)
	data = appendMat4(data, projection)
	data = appendMat4(data, view)
	data = appendFloats(data, blend, starboxScale, 0, 0)
	if err := s.queue.WriteBuffer(s.uniformBuf, 0, data); err != nil {
		return fmt.Errorf("gpu: write starbox uniforms: %w", err)
	}

	if err := s.ensureBindGroup(global, local); err != nil {
		return err
	}

	rp.SetPipeline(s.pipeline)
	rp.SetBindGroup(0, s.bindGroup, nil)
	rp.SetVertexBuffer(0, s.vertBuf, 0)
	rp.SetIndexBuffer(s.idxBuf, gputypes.IndexFormatUint16, 0)
	rp.DrawIndexed(uint32(len(starboxIndices)), 1, 0, 0, 0)
	return nil
}

func (s *Starbox) ensureBindGroup(global, local *Cubemap) error {
	key := [2]*Cubemap{global, local}
	if s.bindGroup != nil && s.bindKey == key {
		return nil
	}
	if s.bindGroup != nil {
		s.device.DestroyBindGroup(s.bindGroup)
		s.bindGroup = nil
	}
	bg, err := s.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "starbox_bind",
		Layout: s.layout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: s.uniformBuf.NativeHandle(), Offset: 0, Size: starboxUniformSize,
			}},
			{Binding: 1, Resource: gputypes.TextureViewBinding{TextureView: global.View().NativeHandle()}},
			{Binding: 2, Resource: gputypes.TextureViewBinding{TextureView: local.View().NativeHandle()}},
			{Binding: 3, Resource: gputypes.SamplerBinding{Sampler: s.sampler.NativeHandle()}},
		},
	})
	if err != nil {
		return fmt.Errorf("gpu: create starbox bind group: %w", err)
	}
	s.bindGroup = bg
	s.bindKey = key
	return nil
}

// Destroy releases every GPU resource held by the pipeline. Safe to
// call multiple times.
func (s *Starbox) Destroy() {
	if s.device == nil {
		return
	}
	if s.bindGroup != nil {
		s.device.DestroyBindGroup(s.bindGroup)
		s.bindGroup = nil
	}
	if s.uniformBuf != nil {
		s.device.DestroyBuffer(s.uniformBuf)
		s.uniformBuf = nil
	}
	if s.idxBuf != nil {
		s.device.DestroyBuffer(s.idxBuf)
		s.idxBuf = nil
	}
	if s.vertBuf != nil {
		s.device.DestroyBuffer(s.vertBuf)
		s.vertBuf = nil
	}
	if s.pipeline != nil {
		s.device.DestroyRenderPipeline(s.pipeline)
		s.pipeline = nil
	}
	if s.sampler != nil {
		s.device.DestroySampler(s.sampler)
		s.sampler = nil
	}
	if s.pipeLayout != nil {
		s.device.DestroyPipelineLayout(s.pipeLayout)
		s.pipeLayout = nil
	}
	if s.layout != nil {
		s.device.DestroyBindGroupLayout(s.layout)
		s.layout = nil
	}
	if s.shader != nil {
		s.device.DestroyShaderModule(s.shader)
		s.shader = nil
	}
}

// stencilIgnore is the pass-through stencil face state used by every
// pipeline here: none of them interact with the stencil buffer.
func stencilIgnore() hal.StencilFaceState {
	return hal.StencilFaceState{
		Compare:     gputypes.CompareFunctionAlways,
		FailOp:      hal.StencilOperationKeep,
		DepthFailOp: hal.StencilOperationKeep,
		PassOp:      hal.StencilOperationKeep,
	}
}
