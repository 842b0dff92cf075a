package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// copyBufferAlignment is the required size alignment for buffers that
// receive queue writes.
const copyBufferAlignment uint64 = 4

func alignBufferSize(n uint64) uint64 {
	return (n + copyBufferAlignment - 1) &^ (copyBufferAlignment - 1)
}

// createBufferInit creates a buffer sized for data and uploads the
// initial contents through the queue. CopyDst is added to the usage so
// later writes stay legal.
func createBufferInit(device hal.Device, queue hal.Queue, label string, usage gputypes.BufferUsage, data []byte) (hal.Buffer, error) {
	buf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  alignBufferSize(uint64(len(data))),
		Usage: usage | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create buffer %s: %w", label, err)
	}
	if len(data) > 0 {
		if err := queue.WriteBuffer(buf, 0, data); err != nil {
			device.DestroyBuffer(buf)
			return nil, fmt.Errorf("gpu: write buffer %s: %w", label, err)
		}
	}
	return buf, nil
}

// createUniformBuffer creates an empty uniform buffer of the given
// size, written every frame.
func createUniformBuffer(device hal.Device, label string, size uint64) (hal.Buffer, error) {
	buf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  alignBufferSize(size),
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create uniform buffer %s: %w", label, err)
	}
	return buf, nil
}
