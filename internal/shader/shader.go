// Package shader checks, on the host, that a probe compute shader can be
// translated into each backend's native shading language.
//
// Translation runs entirely on the CPU through naga. No adapter is touched
// and nothing is submitted to a device.
package shader

import (
	"errors"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/glsl"
	"github.com/gogpu/naga/hlsl"
	"github.com/gogpu/naga/ir"
	"github.com/gogpu/naga/msl"
	"github.com/gogpu/naga/spirv"
)

// Language is a target shading language.
type Language uint8

const (
	SPIRV Language = iota + 1
	MSL
	HLSL
	GLSL
)

func (l Language) String() string {
	switch l {
	case SPIRV:
		return "SPIR-V"
	case MSL:
		return "MSL"
	case HLSL:
		return "HLSL"
	case GLSL:
		return "GLSL"
	default:
		return "unknown"
	}
}

// ErrUnknownLanguage is returned for a Language outside the known set.
var ErrUnknownLanguage = errors.New("shader: unknown target language")

// spirvMagic is the first word of every SPIR-V module.
const spirvMagic = 0x07230203

// probeSource exercises a storage buffer binding and a builtin, which every
// compute-capable backend must express.
const probeSource = `
@group(0) @binding(0) var<storage, read_write> data: array<u32>;

@compute @workgroup_size(64)
fn main(@builtin(global_invocation_id) id: vec3<u32>) {
    data[id.x] = data[id.x] * 2u;
}
`

// Result describes a successful translation.
type Result struct {
	Language Language
	Version  string
	Size     int
}

// Translate compiles the probe shader to lang.
func Translate(lang Language) (Result, error) {
	module, err := lower(probeSource)
	if err != nil {
		return Result{}, err
	}

	switch lang {
	case SPIRV:
		opts := spirv.Options{Version: spirv.Version1_3}
		code, err := naga.GenerateSPIRV(module, opts)
		if err != nil {
			return Result{}, err
		}
		if len(code) < 4 || le32(code) != spirvMagic {
			return Result{}, errors.New("shader: SPIR-V output has no magic number")
		}
		return Result{
			Language: lang,
			Version:  fmt.Sprintf("%d.%d", opts.Version.Major, opts.Version.Minor),
			Size:     len(code),
		}, nil

	case MSL:
		opts := msl.DefaultOptions()
		src, _, err := msl.Compile(module, opts)
		if err != nil {
			return Result{}, fmt.Errorf("shader: MSL: %w", err)
		}
		return Result{Language: lang, Version: opts.LangVersion.String(), Size: len(src)}, nil

	case HLSL:
		opts := hlsl.DefaultOptions()
		src, _, err := hlsl.Compile(module, opts)
		if err != nil {
			return Result{}, fmt.Errorf("shader: HLSL: %w", err)
		}
		return Result{Language: lang, Version: opts.ShaderModel.String(), Size: len(src)}, nil

	case GLSL:
		opts := glsl.DefaultOptions()
		opts.LangVersion = glsl.Version430
		src, _, err := glsl.Compile(module, opts)
		if err != nil {
			return Result{}, fmt.Errorf("shader: GLSL: %w", err)
		}
		return Result{Language: lang, Version: opts.LangVersion.String(), Size: len(src)}, nil
	}
	return Result{}, fmt.Errorf("%w: %d", ErrUnknownLanguage, lang)
}

func lower(source string) (*ir.Module, error) {
	ast, err := naga.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("shader: parse: %w", err)
	}
	module, err := naga.LowerWithSource(ast, source)
	if err != nil {
		return nil, fmt.Errorf("shader: lower: %w", err)
	}
	errs, err := naga.Validate(module)
	if err != nil {
		return nil, fmt.Errorf("shader: validate: %w", err)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("shader: validate: %w", errs[0])
	}
	return module, nil
}

// le32 reads the first little-endian word of b.
func le32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
