// Package gpu holds the viewport's render pipelines and GPU resource
// management: the starbox environment pipeline, the space-dust line
// pipeline, the target reticle billboard, and the cubemap cache.
//
// Everything in this package works directly against gogpu/wgpu/hal
// primitives handed down from the host's device provider. Pipelines
// are created once at viewport construction; per-frame work is limited
// to uniform writes, bind group churn, and draw recording into a pass
// owned by the caller.
package gpu
