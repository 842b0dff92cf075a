package starview

import "errors"

var (
	// ErrNoDevice indicates the device provider exposes no usable
	// low-level GPU handles.
	ErrNoDevice = errors.New("starview: device provider has no HAL device")

	// ErrNilScene indicates New was called without a scene.
	ErrNilScene = errors.New("starview: scene must not be nil")

	// ErrNilCubemapSource indicates New was called without a cubemap
	// source; the environment pass cannot run without one.
	ErrNilCubemapSource = errors.New("starview: hooks.Cubemaps must not be nil")
)
