package gpu

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Uniform and vertex data cross to the GPU as little-endian 32-bit
// words; mgl32 matrices are already column-major, matching WGSL.

func appendFloat32(dst []byte, v float32) []byte {
	return binary.LittleEndian.AppendUint32(dst, math.Float32bits(v))
}

func appendFloats(dst []byte, vs ...float32) []byte {
	for _, v := range vs {
		dst = appendFloat32(dst, v)
	}
	return dst
}

func appendMat4(dst []byte, m mgl32.Mat4) []byte {
	for _, v := range m {
		dst = appendFloat32(dst, v)
	}
	return dst
}

func appendUint16s(dst []byte, vs ...uint16) []byte {
	for _, v := range vs {
		dst = binary.LittleEndian.AppendUint16(dst, v)
	}
	return dst
}

// packVec3s lays out vectors tightly, 12 bytes each.
func packVec3s(vs []mgl32.Vec3) []byte {
	dst := make([]byte, 0, len(vs)*12)
	for _, v := range vs {
		dst = appendFloats(dst, v.X(), v.Y(), v.Z())
	}
	return dst
}
