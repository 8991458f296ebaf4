package translator

import (
	"context"

	"tlog.app/go/tlog"

	"github.com/gogpu/gcnspv/gcn"
	"github.com/gogpu/gcnspv/spirv"
)

// emitScalarMemory handles s_load/s_buffer_load instructions that read
// through the uniform buffer declared by emitDclUniformBuffer. v1
// covers the simple constant-offset case; dynamic (register-indexed)
// offsets are a FIXME, logged and skipped rather than guessed at.
func (t *Translator) emitScalarMemory(ctx context.Context, ins gcn.Instruction) {
	switch ins.Op {
	case "s_buffer_load_dword":
		t.loadUniformDword(ctx, ins)
	default:
		tlog.SpanFromContext(ctx).Printw("unhandled scalar memory op, no SPIR-V emitted", "op", ins.Op)
	}
}

// emitVectorMemory handles buffer_load/buffer_store through a V#
// resource. v1 does not model texture sampling (T#/S#) memory
// traffic; those arrive as a FIXME until a later pass adds the
// OpImageSampleImplicitLod path the spirv package already declares
// opcodes for.
func (t *Translator) emitVectorMemory(ctx context.Context, ins gcn.Instruction) {
	switch ins.Op {
	case "buffer_load_dword":
		t.loadUniformDword(ctx, ins)
	default:
		tlog.SpanFromContext(ctx).Printw("unhandled vector memory op, no SPIR-V emitted", "op", ins.Op)
	}
}

// loadUniformDword loads one dword from the translator's single
// uniform buffer binding at a literal offset, the common shape shared
// by s_buffer_load_dword and buffer_load_dword in v1.
func (t *Translator) loadUniformDword(ctx context.Context, ins gcn.Instruction) {
	if len(t.shaderInput.Resources) == 0 {
		tlog.SpanFromContext(ctx).Printw("uniform load with no bound resource", "op", ins.Op)
		return
	}

	offsetOperand := ins.Src[len(ins.Src)-1]
	var literal uint32
	if offsetOperand.Kind == gcn.OperandKindLiteralConst {
		literal = ins.Literal
	}
	offset := t.Regs.LoadScalarOperand(ctx, offsetOperand, literal)

	f32 := t.Values.TypeID(gcn.VectorType{Type: gcn.ScalarF32, Count: 1})
	f32UniformPtr := t.uniformFloatPointerType()

	memberZero := t.constU32(0)
	elementPtr := t.Module.AddAccessChain(f32UniformPtr, t.uboVariableID(), memberZero, offset.ID)
	loaded := t.Module.AddLoad(f32, elementPtr)

	t.storeScalarDst(ctx, ins, 0, gcn.Value{ID: loaded, Type: gcn.VectorType{Type: gcn.ScalarF32, Count: 1}})
}

func (t *Translator) constU32(v uint32) uint32 {
	u32 := t.Values.TypeID(gcn.VectorType{Type: gcn.ScalarU32, Count: 1})
	return t.Module.AddConstant(u32, v)
}

// uboVariableID returns the first uniform buffer variable declared by
// emitDclUniformBuffer; uniformFloatPointerType declares its float
// element pointer type on first call. v1 supports exactly one bound
// uniform buffer; a shader binding more than one resource addresses
// only the first through the scalar/vector memory path.
func (t *Translator) uniformFloatPointerType() uint32 {
	if t.uniformFloatPtr == 0 {
		f32 := t.Values.TypeID(gcn.VectorType{Type: gcn.ScalarF32, Count: 1})
		t.uniformFloatPtr = t.Module.AddTypePointer(spirv.StorageClassUniform, f32)
	}
	return t.uniformFloatPtr
}

func (t *Translator) uboVariableID() uint32 {
	return t.firstUboVariable
}
