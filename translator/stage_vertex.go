package translator

import (
	"context"

	"github.com/gogpu/gcnspv/gcn"
	"github.com/gogpu/gcnspv/spirv"
)

// perVertex built-in member indices, matching the gl_PerVertex block
// layout: Position must come first, the two distance arrays follow.
const (
	perVertexPosition    = 0
	perVertexCullDistance = 1
	perVertexClipDistance = 2
)

// emitVsInit declares the vertex stage's fixed capabilities and
// interface, synthesizes its fetch shader, and opens vsMain (the
// stage's own entry function, distinct from the SPIR-V entry point
// wrapper opened later by emitVsFinalize).
func (t *Translator) emitVsInit(ctx context.Context) {
	t.Module.AddCapability(spirv.CapabilityDrawParameters)
	t.Module.AddExtension("SPV_KHR_shader_draw_parameters")

	t.emitDclVertexInput()
	t.emitDclVertexOutput()
	t.emitDclUniformBuffer()
	t.emitEmuFetchShader(ctx)

	t.vs.mainFunctionID = t.Module.AllocID()
	t.Module.AddName(t.vs.mainFunctionID, "vsMain")

	t.emitFunctionBegin(t.vs.mainFunctionID, t.voidType(), t.voidFunctionType())
	t.emitFunctionLabel()

	if t.vs.fetchFunctionID != 0 {
		t.Module.AddFunctionCallVoid(t.voidType(), t.vs.fetchFunctionID)
	}
}

// emitVsFinalize opens the SPIR-V entry point wrapper, calls into
// vsMain, and closes the function — the only finalize-time
// responsibility for the vertex stage, since all interface
// declarations already happened during init.
func (t *Translator) emitVsFinalize(ctx context.Context) {
	t.emitMainFunctionBegin()
	t.Module.AddFunctionCallVoid(t.voidType(), t.vs.mainFunctionID)
	t.emitFunctionEnd()
}

// emitDclVertexInput declares one Input-storage-class variable per
// vertex attribute, decorated with its semantic index as Location (so
// the host-side pipeline's vertex-attribute bindings must match by
// semantic index, not by name).
func (t *Translator) emitDclVertexInput() {
	for _, semantic := range t.shaderInput.VertexInputs {
		vt := gcn.VectorType{Type: gcn.ScalarF32, Count: semantic.Type.Count}
		typeID := t.Values.TypeID(vt)
		ptrType := t.Module.AddTypePointer(spirv.StorageClassInput, typeID)
		varID := t.Module.AddGlobalVariable(ptrType, spirv.StorageClassInput)

		t.Module.AddName(varID, debugName("inParam", semantic.Location))
		t.Module.AddDecorate(varID, spirv.DecorationLocation, semantic.Location)

		t.vs.inputs[semantic.Location] = gcn.Pointer{ID: varID, StorageClass: uint32(spirv.StorageClassInput), Type: vt}
		t.entryPointInterfaces = append(t.entryPointInterfaces, varID)
	}
}

// emitDclVertexOutput declares the gl_PerVertex output block (Position
// plus reserved, undecorated ClipDistance/CullDistance members — v1
// never writes them, but the block shape matches the fixed-function
// interface every downstream stage expects) plus one Output variable
// per non-position export parameter the analysis pass found.
func (t *Translator) emitDclVertexOutput() {
	perVertexStruct := t.perVertexBlockType()
	perVertexPtr := t.Module.AddTypePointer(spirv.StorageClassOutput, perVertexStruct)
	perVertexOut := t.Module.AddGlobalVariable(perVertexPtr, spirv.StorageClassOutput)

	t.entryPointInterfaces = append(t.entryPointInterfaces, perVertexOut)
	t.Module.AddName(perVertexOut, "vsVertexOut")
	t.vs.positionOutput = gcn.Pointer{ID: perVertexOut, StorageClass: uint32(spirv.StorageClassOutput)}

	outLocation := uint32(0)
	for _, param := range t.analysis.ExpParams {
		if param.Target == gcn.ExportTargetPosition {
			continue // already handled by the per-vertex block above
		}

		vt := gcn.VectorType{Type: gcn.ScalarF32, Count: param.ComponentCount}
		typeID := t.Values.TypeID(vt)
		ptrType := t.Module.AddTypePointer(spirv.StorageClassOutput, typeID)
		varID := t.Module.AddGlobalVariable(ptrType, spirv.StorageClassOutput)

		t.Module.AddName(varID, debugName("outParam", outLocation))
		t.Module.AddDecorate(varID, spirv.DecorationLocation, outLocation)

		t.vs.paramOutputs[outLocation] = gcn.Pointer{ID: varID, StorageClass: uint32(spirv.StorageClassOutput), Type: vt}
		t.entryPointInterfaces = append(t.entryPointInterfaces, varID)
		outLocation++
	}
}

// perVertexBlockType declares the gl_PerVertex struct type:
//
//	out gl_PerVertex {
//	    vec4  gl_Position;
//	    float gl_CullDistance[1];
//	    float gl_ClipDistance[1];
//	};
//
// Only gl_Position gets a BuiltIn decoration; the two distance members
// are reserved members kept at the right offsets for future use, left
// undecorated exactly as the original leaves them commented out — a
// shader that never writes clip/cull distances has no SPIR-V reason to
// claim the corresponding built-in role.
func (t *Translator) perVertexBlockType() uint32 {
	f32 := t.Values.TypeID(gcn.VectorType{Type: gcn.ScalarF32, Count: 1})
	vec4 := t.Values.TypeID(gcn.VectorType{Type: gcn.ScalarF32, Count: 4})
	u32 := t.Values.TypeID(gcn.VectorType{Type: gcn.ScalarU32, Count: 1})

	arrayLen := t.Module.AddConstant(u32, 1)
	distArray := t.Module.AddTypeArray(f32, arrayLen)
	t.Module.AddDecorate(distArray, spirv.DecorationArrayStride, 4)

	structID := t.Module.AddTypeStruct(vec4, distArray, distArray)
	t.Module.AddDecorate(structID, spirv.DecorationBlock)
	t.Module.AddMemberDecorate(structID, 0, spirv.DecorationBuiltIn, uint32(spirv.BuiltInPosition))

	t.Module.AddMemberName(structID, 0, "gl_Position")
	t.Module.AddMemberName(structID, perVertexCullDistance, "gl_CullDistance")
	t.Module.AddMemberName(structID, perVertexClipDistance, "gl_ClipDistance")

	return structID
}

// emitEmuFetchShader synthesizes the "fetch shader": GCN vertex
// shaders expect their input attributes to already be sitting in
// VGPRs by the time vsMain runs (the real hardware's fetch shader
// stage does this via V# buffer descriptors before invoking the
// user's shader). Since this translator has no separate fetch-shader
// instruction stream to translate, it emits one directly: for each
// vertex input, copy its Input-storage-class value into the VGPR the
// shader's instruction stream expects to read it from.
func (t *Translator) emitEmuFetchShader(ctx context.Context) {
	if len(t.shaderInput.VertexInputs) == 0 {
		return
	}

	t.vs.fetchFunctionID = t.Module.AllocID()
	t.emitFunctionBegin(t.vs.fetchFunctionID, t.voidType(), t.voidFunctionType())
	t.emitFunctionLabel()
	t.Module.AddName(t.vs.fetchFunctionID, "vsFetch")

	f32 := t.Values.TypeID(gcn.VectorType{Type: gcn.ScalarF32, Count: 1})
	f32PrivatePtr := t.Module.AddTypePointer(spirv.StorageClassPrivate, f32)
	f32InputPtr := t.Module.AddTypePointer(spirv.StorageClassInput, f32)
	u32 := t.Values.TypeID(gcn.VectorType{Type: gcn.ScalarU32, Count: 1})

	for _, semantic := range t.shaderInput.VertexInputs {
		inputVar := t.vs.inputs[semantic.Location]

		for i := uint32(0); i < semantic.Type.Count; i++ {
			vgprIndex := semantic.StartingVgpr + i
			vgprVar := t.Module.AddGlobalVariable(f32PrivatePtr, spirv.StorageClassPrivate)
			t.Module.AddName(vgprVar, debugName("v", vgprIndex))

			indexConst := t.Module.AddConstant(u32, i)
			elementPtr := t.Module.AddAccessChain(f32InputPtr, inputVar.ID, indexConst)
			loaded := t.Module.AddLoad(f32, elementPtr)
			t.Module.AddStore(vgprVar, loaded)

			t.Regs.BindVgpr(vgprIndex, gcn.Pointer{ID: vgprVar, StorageClass: uint32(spirv.StorageClassPrivate), Type: gcn.VectorType{Type: gcn.ScalarF32, Count: 1}})
		}
	}

	t.emitFunctionEnd()
}
