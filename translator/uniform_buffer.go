package translator

import (
	"github.com/gogpu/gcnspv/gcn"
	"github.com/gogpu/gcnspv/spirv"
)

// emitDclUniformBuffer declares one uniform buffer per V# resource
// binding. A PSSL shader can address any dword of a bound buffer
// (including sub-ranges of a single declared variable, such as the
// upper-left 3x3 of a mat4x4), which rules out declaring a
// member-accurate struct: there's no way to know the buffer's true
// layout ahead of time, and even if it were known, the shader could
// still access it through an arbitrary byte offset an AccessChain
// can't express against typed members. Instead every bound buffer is
// declared as a single dword array sized from its stride, addressed
// by dynamic index — the same tradeoff the original makes in favor of
// UBO over SSBO for the performance win, accepting the loss of
// variable-length arrays.
func (t *Translator) emitDclUniformBuffer() {
	f32 := t.Values.TypeID(gcn.VectorType{Type: gcn.ScalarF32, Count: 1})
	u32 := t.Values.TypeID(gcn.VectorType{Type: gcn.ScalarU32, Count: 1})

	for index, res := range t.shaderInput.Resources {
		if res.Stride == 0 {
			continue // T#/S# resources: no uniform buffer to declare
		}

		elementCount := res.Stride / 4
		lengthConst := t.Module.AddConstant(u32, elementCount)
		arrayType := t.Module.AddTypeArray(f32, lengthConst)
		t.Module.AddDecorate(arrayType, spirv.DecorationArrayStride, 4)

		structType := t.Module.AddTypeStruct(arrayType)
		t.Module.AddDecorate(structType, spirv.DecorationBlock)
		t.Module.AddMemberDecorate(structType, 0, spirv.DecorationOffset, 0)
		t.Module.AddName(structType, "UniformBufferObject")
		t.Module.AddMemberName(structType, 0, "data")

		ptrType := t.Module.AddTypePointer(spirv.StorageClassUniform, structType)
		varID := t.Module.AddGlobalVariable(ptrType, spirv.StorageClassUniform)

		t.Module.AddDecorate(varID, spirv.DecorationDescriptorSet, res.Set)
		t.Module.AddDecorate(varID, spirv.DecorationBinding, res.Binding)
		t.Module.AddName(varID, debugName("ubo", uint32(index)))

		t.entryPointInterfaces = append(t.entryPointInterfaces, varID)
		if t.firstUboVariable == 0 {
			t.firstUboVariable = varID
		}
	}
}
