package translator

import (
	"context"

	"tlog.app/go/tlog"

	"github.com/gogpu/gcnspv/gcn"
	"github.com/gogpu/gcnspv/spirv"
)

// emitVectorALU handles v_* arithmetic and logic instructions on the
// VGPR bank. Unlike SALU ops, every VALU destination write goes
// through the register file's writeMask-aware store so a partial
// write (e.g. v_mov_b32 with a sub-component mask) merges instead of
// clobbering.
func (t *Translator) emitVectorALU(ctx context.Context, ins gcn.Instruction) {
	switch ins.Op {
	case "v_mov_b32":
		src := t.loadVectorOperand(ctx, ins, 0)
		t.storeVectorDst(ins, 0, src)

	case "v_add_f32":
		t.binaryVector(ctx, ins, spirv.OpFAdd)
	case "v_sub_f32":
		t.binaryVector(ctx, ins, spirv.OpFSub)
	case "v_mul_f32":
		t.binaryVector(ctx, ins, spirv.OpFMul)
	case "v_max_f32":
		t.extInstBinaryVector(ctx, ins, spirv.ExtGLSLFMax)
	case "v_add_i32", "v_add_u32":
		t.binaryVector(ctx, ins, spirv.OpIAdd)
	case "v_sub_i32", "v_sub_u32":
		t.binaryVector(ctx, ins, spirv.OpISub)
	case "v_mul_i32", "v_mul_lo_u32":
		t.binaryVector(ctx, ins, spirv.OpIMul)

	case "v_and_b32":
		t.binaryVector(ctx, ins, spirv.OpBitwiseAnd)
	case "v_or_b32":
		t.binaryVector(ctx, ins, spirv.OpBitwiseOr)
	case "v_xor_b32":
		t.binaryVector(ctx, ins, spirv.OpBitwiseXor)

	case "v_cvt_f32_i32":
		t.unaryVector(ctx, ins, spirv.OpConvertSToF)
	case "v_cvt_f32_u32":
		t.unaryVector(ctx, ins, spirv.OpConvertUToF)
	case "v_cvt_i32_f32":
		t.unaryVector(ctx, ins, spirv.OpConvertFToS)

	default:
		tlog.SpanFromContext(ctx).Printw("unhandled vector ALU op", "op", ins.Op)
	}
}

func (t *Translator) loadVectorOperand(ctx context.Context, ins gcn.Instruction, i int) gcn.Value {
	src := ins.Src[i]
	if src.Kind == gcn.OperandKindRegister {
		return t.Regs.LoadVectorOperand(src.Index)
	}
	var literal uint32
	if src.Kind == gcn.OperandKindLiteralConst {
		literal = ins.Literal
	}
	return t.Regs.LoadScalarOperand(ctx, src, literal)
}

func (t *Translator) storeVectorDst(ins gcn.Instruction, i int, v gcn.Value) {
	mask := ins.Mask
	if mask == 0 {
		mask = gcn.FirstN(int(v.Type.Count))
	}
	t.Regs.StoreVectorOperand(ins.Dst[i].Index, v, mask)
}

func (t *Translator) binaryVector(ctx context.Context, ins gcn.Instruction, opcode spirv.OpCode) {
	left := t.loadVectorOperand(ctx, ins, 0)
	right := t.loadVectorOperand(ctx, ins, 1)
	typeID := t.Values.TypeID(left.Type)
	id := t.Module.AddBinaryOp(opcode, typeID, left.ID, right.ID)
	t.storeVectorDst(ins, 0, gcn.Value{ID: id, Type: left.Type})
}

func (t *Translator) unaryVector(ctx context.Context, ins gcn.Instruction, opcode spirv.OpCode) {
	src := t.loadVectorOperand(ctx, ins, 0)
	typeID := t.Values.TypeID(src.Type)
	id := t.Module.AddUnaryOp(opcode, typeID, src.ID)
	t.storeVectorDst(ins, 0, gcn.Value{ID: id, Type: src.Type})
}

func (t *Translator) extInstBinaryVector(ctx context.Context, ins gcn.Instruction, inst spirv.ExtGLSLInstruction) {
	left := t.loadVectorOperand(ctx, ins, 0)
	right := t.loadVectorOperand(ctx, ins, 1)
	typeID := t.Values.TypeID(left.Type)
	id := t.Module.AddExtInst(typeID, t.Values.ExtGLSLImport(), inst, left.ID, right.ID)
	t.storeVectorDst(ins, 0, gcn.Value{ID: id, Type: left.Type})
}
