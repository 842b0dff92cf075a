package starview

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Clip planes of the viewport projection, in world units.
const (
	// CameraNear is the near clip plane distance.
	CameraNear = 1.0

	// CameraFar is the far clip plane distance. Nothing beyond this
	// distance is drawn; the starbox is drawn depth-write-off so it
	// reads as infinitely far regardless.
	CameraFar = 25000.0
)

// DefaultFOV is the vertical field of view used when the camera (or the
// game configuration) does not specify one, in degrees.
const DefaultFOV = 60.0

// Camera is the viewport camera state: position in world space, yaw and
// pitch in degrees, and the vertical field of view in degrees.
//
// Camera is plain data mutated by the host's input handling; starview only
// reads it. It is sampled as-is every frame with no smoothing. The valid
// FOV range is (0, 180) exclusive: the projection is singular at 180.
type Camera struct {
	Position mgl32.Vec3

	// Yaw is the heading in degrees about the world Z (up) axis.
	// Yaw 0 faces the world +X direction.
	Yaw float32

	// Pitch tilts the view in degrees about the lateral axis.
	Pitch float32

	// FOV is the vertical field of view in degrees. Zero or negative
	// values fall back to DefaultFOV.
	FOV float32
}

// fov returns the effective field of view in degrees.
func (c Camera) fov() float32 {
	if c.FOV <= 0 {
		return DefaultFOV
	}
	return c.FOV
}

// Projection returns the perspective projection for the given viewport
// aspect ratio. It is derived fresh from the FOV and aspect every frame,
// never cached across resizes.
//
// The matrix is right-handed and maps depth to [0,1] (near plane to 0,
// far plane to 1), matching the WebGPU clip-space convention.
func (c Camera) Projection(aspect float32) mgl32.Mat4 {
	return perspectiveRH01(mgl32.DegToRad(c.fov()), aspect, CameraNear, CameraFar)
}

// View returns the world-to-view transform.
//
// The composition order is load-bearing; reordering breaks the coordinate
// convention. In vector-application order:
//  1. translate by the negated camera position,
//  2. rotate about Z by -(yaw+90) degrees (the 90 aligns the world's
//     "rotation 0 faces +X" convention with the renderer's forward axis),
//  3. rotate about X by -pitch degrees,
//  4. mirror Z to restore handedness,
//  5. rotate 90 degrees about X so the world's Z-up becomes the
//     renderer's Y-up.
func (c Camera) View() mgl32.Mat4 {
	view := mgl32.HomogRotate3DX(mgl32.DegToRad(90))
	view = view.Mul4(mgl32.Scale3D(1, 1, -1))
	view = view.Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(-c.Pitch)))
	view = view.Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(-(c.Yaw + 90))))
	view = view.Mul4(mgl32.Translate3D(-c.Position.X(), -c.Position.Y(), -c.Position.Z()))
	return view
}

// GroundPosition returns the camera position projected onto the Z=0 game
// plane, which is what zone containment tests run against.
func (c Camera) GroundPosition() mgl32.Vec2 {
	return mgl32.Vec2{c.Position.X(), c.Position.Y()}
}

// perspectiveRH01 builds a right-handed perspective projection with depth
// mapped to [0,1]. mgl32.Perspective targets the OpenGL [-1,1] depth range,
// which would waste half the depth buffer's precision under WebGPU, so the
// zero-to-one variant is built here directly.
func perspectiveRH01(fovy, aspect, near, far float32) mgl32.Mat4 {
	f := float32(1.0 / math.Tan(float64(fovy)/2.0))
	// Column-major.
	return mgl32.Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, far / (near - far), -1,
		0, 0, -(far * near) / (far - near), 0,
	}
}
