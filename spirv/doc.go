// Package spirv provides a low-level SPIR-V module builder.
//
// It allocates SSA ids, declares types, constants, and variables,
// emits instructions into the module's ordered sections, and
// serializes the result to the SPIR-V binary format:
//
//	builder := spirv.NewModuleBuilder(spirv.Version1_3)
//	builder.AddCapability(spirv.CapabilityShader)
//	builder.SetMemoryModel(spirv.AddressingModelLogical, spirv.MemoryModelGLSL450)
//
//	floatType := builder.AddTypeFloat(32)
//	vec4Type := builder.AddTypeVector(floatType, 4)
//
//	binary := builder.Build()
//
// # SPIR-V structure
//
// A SPIR-V module is a header followed by ordered sections:
//   - Header (magic, version, generator, bound, schema)
//   - Capabilities
//   - Extensions
//   - Extended instruction imports (GLSL.std.450, ...)
//   - Memory model
//   - Entry points
//   - Execution modes
//   - Debug strings and names
//   - Annotations (decorations)
//   - Types, constants, global variables
//   - Function definitions
//
// ModuleBuilder enforces this ordering: each Add* method appends to the
// section it belongs in regardless of call order, so callers never need
// to track section boundaries themselves.
//
// This package knows nothing about GCN, the register file, or the typed
// value layer built on top of it — those live in the gcn, value,
// regfile and translator packages. This package only supplies the
// primitives those layers are built from.
package spirv
