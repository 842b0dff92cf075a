package gpu

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

//go:embed shaders/starbox.wgsl
var starboxShaderSource string

//go:embed shaders/spacedust.wgsl
var spacedustShaderSource string

//go:embed shaders/billboard.wgsl
var billboardShaderSource string

// createShaderModule builds a shader module from WGSL source. Backends
// that only accept SPIR-V get a naga-compiled fallback.
func createShaderModule(device hal.Device, label, source string) (hal.ShaderModule, error) {
	if source == "" {
		return nil, fmt.Errorf("gpu: shader %s: empty source", label)
	}
	module, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  label,
		Source: hal.ShaderSource{WGSL: source},
	})
	if err == nil {
		return module, nil
	}
	slogger().Debug("WGSL shader module rejected, retrying as SPIR-V", "shader", label, "error", err)

	spirv, cerr := compileToSPIRV(source)
	if cerr != nil {
		return nil, fmt.Errorf("gpu: compile shader %s: %w", label, cerr)
	}
	module, serr := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  label,
		Source: hal.ShaderSource{SPIRV: spirv},
	})
	if serr != nil {
		return nil, fmt.Errorf("gpu: create shader module %s: %w", label, serr)
	}
	return module, nil
}

// compileToSPIRV compiles WGSL to little-endian 32-bit SPIR-V words.
func compileToSPIRV(wgslSource string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgslSource)
	if err != nil {
		return nil, err
	}
	spirvCode := make([]uint32, len(spirvBytes)/4)
	for i := range spirvCode {
		spirvCode[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return spirvCode, nil
}
