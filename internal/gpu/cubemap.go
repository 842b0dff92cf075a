package gpu

import (
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	xdraw "golang.org/x/image/draw"
)

const cubemapFaces = 6

// Cubemap is a six-layer square texture with a cube view, ready to
// bind to a texture_cube sampler slot.
type Cubemap struct {
	name    string
	edge    uint32
	texture hal.Texture
	view    hal.TextureView
}

// Name reports the cache key this cubemap was loaded under.
func (c *Cubemap) Name() string { return c.name }

// Edge reports the face edge length in pixels.
func (c *Cubemap) Edge() uint32 { return c.edge }

// View returns the cube texture view for binding.
func (c *Cubemap) View() hal.TextureView { return c.view }

// Destroy releases the GPU texture and view. Safe to call twice.
func (c *Cubemap) Destroy(device hal.Device) {
	if c.view != nil {
		device.DestroyTextureView(c.view)
		c.view = nil
	}
	if c.texture != nil {
		device.DestroyTexture(c.texture)
		c.texture = nil
	}
}

// CreateCubemap uploads six decoded face images as one cube texture.
// Face order is +X, -X, +Y, -Y, +Z, -Z. Faces of mismatched size are
// rescaled to the largest edge so the array layers line up.
func CreateCubemap(device hal.Device, queue hal.Queue, name string, faces [cubemapFaces]image.Image) (*Cubemap, error) {
	edge := faceEdge(faces)
	if edge == 0 {
		return nil, fmt.Errorf("gpu: cubemap %s: empty faces", name)
	}

	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "cubemap_" + name,
		Size:          hal.Extent3D{Width: edge, Height: edge, DepthOrArrayLayers: cubemapFaces},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create cubemap texture %s: %w", name, err)
	}

	for layer, face := range faces {
		rgba := faceRGBA(face, edge)
		err := queue.WriteTexture(
			&hal.ImageCopyTexture{
				Texture:  tex,
				MipLevel: 0,
				Origin:   hal.Origin3D{X: 0, Y: 0, Z: uint32(layer)},
				Aspect:   gputypes.TextureAspectAll,
			},
			rgba.Pix,
			&hal.ImageDataLayout{
				Offset:       0,
				BytesPerRow:  edge * 4,
				RowsPerImage: edge,
			},
			&hal.Extent3D{Width: edge, Height: edge, DepthOrArrayLayers: 1},
		)
		if err != nil {
			device.DestroyTexture(tex)
			return nil, fmt.Errorf("gpu: write cubemap face %d of %s: %w", layer, name, err)
		}
	}

	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:           "cubemap_" + name + "_view",
		Format:          gputypes.TextureFormatRGBA8Unorm,
		Dimension:       gputypes.TextureViewDimensionCube,
		Aspect:          gputypes.TextureAspectAll,
		MipLevelCount:   1,
		ArrayLayerCount: cubemapFaces,
	})
	if err != nil {
		device.DestroyTexture(tex)
		return nil, fmt.Errorf("gpu: create cubemap view %s: %w", name, err)
	}

	slogger().Debug("cubemap uploaded", "name", name, "edge", edge)
	return &Cubemap{name: name, edge: edge, texture: tex, view: view}, nil
}

// faceEdge picks the common edge length: the largest dimension across
// all faces.
func faceEdge(faces [cubemapFaces]image.Image) uint32 {
	edge := 0
	for _, f := range faces {
		if f == nil {
			continue
		}
		b := f.Bounds()
		if b.Dx() > edge {
			edge = b.Dx()
		}
		if b.Dy() > edge {
			edge = b.Dy()
		}
	}
	return uint32(edge)
}

// faceRGBA converts a face to tightly packed RGBA at the given edge,
// rescaling when the source dimensions differ.
func faceRGBA(src image.Image, edge uint32) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, int(edge), int(edge)))
	if src == nil {
		return dst
	}
	b := src.Bounds()
	if uint32(b.Dx()) == edge && uint32(b.Dy()) == edge {
		xdraw.Draw(dst, dst.Bounds(), src, b.Min, xdraw.Src)
		return dst
	}
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	return dst
}
