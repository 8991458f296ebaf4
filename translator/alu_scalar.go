package translator

import (
	"context"

	"tlog.app/go/tlog"

	"github.com/gogpu/gcnspv/gcn"
	"github.com/gogpu/gcnspv/spirv"
)

// emitScalarALU handles s_* arithmetic, logic, comparison, and move
// instructions operating on the SGPR bank. Every SALU opcode except
// the s_cmp_* compares produces exactly one scalar result, written to
// Dst[0]; the compares write no destination.
func (t *Translator) emitScalarALU(ctx context.Context, ins gcn.Instruction) {
	switch ins.Op {
	case "s_mov_b32":
		src := t.loadScalarOperand(ctx, ins, 0)
		t.storeScalarDst(ctx, ins, 0, src)

	case "s_add_i32", "s_add_u32":
		t.binaryScalar(ctx, ins, spirv.OpIAdd)
	case "s_sub_i32", "s_sub_u32":
		t.binaryScalar(ctx, ins, spirv.OpISub)
	case "s_mul_i32":
		t.binaryScalar(ctx, ins, spirv.OpIMul)

	case "s_and_b32":
		t.binaryScalar(ctx, ins, spirv.OpBitwiseAnd)
	case "s_or_b32":
		t.binaryScalar(ctx, ins, spirv.OpBitwiseOr)
	case "s_xor_b32":
		t.binaryScalar(ctx, ins, spirv.OpBitwiseXor)
	case "s_not_b32":
		t.unaryScalar(ctx, ins, spirv.OpNot)

	case "s_lshl_b32":
		t.binaryScalar(ctx, ins, spirv.OpShiftLeftLogical)
	case "s_lshr_b32":
		t.binaryScalar(ctx, ins, spirv.OpShiftRightLogical)
	case "s_ashr_i32":
		t.binaryScalar(ctx, ins, spirv.OpShiftRightArith)

	case "s_cmp_eq_i32", "s_cmp_eq_u32":
		t.compareScalar(ctx, ins, spirv.OpIEqual)
	case "s_cmp_lg_i32", "s_cmp_lg_u32":
		t.compareScalar(ctx, ins, spirv.OpINotEqual)
	case "s_cmp_gt_i32":
		t.compareScalar(ctx, ins, spirv.OpSGreaterThan)
	case "s_cmp_lt_i32":
		t.compareScalar(ctx, ins, spirv.OpSLessThan)

	default:
		tlog.SpanFromContext(ctx).Printw("unhandled scalar ALU op", "op", ins.Op)
	}
}

func (t *Translator) loadScalarOperand(ctx context.Context, ins gcn.Instruction, i int) gcn.Value {
	src := ins.Src[i]
	var literal uint32
	if src.Kind == gcn.OperandKindLiteralConst {
		literal = ins.Literal
	}
	return t.Regs.LoadScalarOperand(ctx, src, literal)
}

func (t *Translator) storeScalarDst(ctx context.Context, ins gcn.Instruction, i int, v gcn.Value) {
	t.Regs.StoreScalarOperand(ctx, ins.Dst[i], v)
}

func (t *Translator) binaryScalar(ctx context.Context, ins gcn.Instruction, opcode spirv.OpCode) {
	left := t.loadScalarOperand(ctx, ins, 0)
	right := t.loadScalarOperand(ctx, ins, 1)
	typeID := t.Values.TypeID(left.Type)
	id := t.Module.AddBinaryOp(opcode, typeID, left.ID, right.ID)
	t.storeScalarDst(ctx, ins, 0, gcn.Value{ID: id, Type: left.Type})
}

func (t *Translator) unaryScalar(ctx context.Context, ins gcn.Instruction, opcode spirv.OpCode) {
	src := t.loadScalarOperand(ctx, ins, 0)
	typeID := t.Values.TypeID(src.Type)
	id := t.Module.AddUnaryOp(opcode, typeID, src.ID)
	t.storeScalarDst(ctx, ins, 0, gcn.Value{ID: id, Type: src.Type})
}

func (t *Translator) compareScalar(ctx context.Context, ins gcn.Instruction, opcode spirv.OpCode) {
	left := t.loadScalarOperand(ctx, ins, 0)
	right := t.loadScalarOperand(ctx, ins, 1)
	boolType := t.Values.TypeID(gcn.VectorType{Type: gcn.ScalarBool, Count: 1})
	id := t.Module.AddBinaryOp(opcode, boolType, left.ID, right.ID)
	// The comparison result belongs in SCC, but SCC has no tracked
	// state (regfile tracks only VCC/M0), so the SSA bool is produced
	// and not stored anywhere.
	_ = id
}
