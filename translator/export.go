package translator

import (
	"context"
	"strconv"
	"strings"

	"tlog.app/go/tlog"

	"github.com/gogpu/gcnspv/gcn"
	"github.com/gogpu/gcnspv/spirv"
)

// emitExport handles the GCN exp instruction: it writes up to four
// VGPRs (selected by Mask) to one of the fixed-function output slots
// declared by emitDclVertexOutput — gl_Position for "exp pos0", or the
// matching param Output variable for "exp paramN". MRT/Z targets
// belong to the pixel shader stage, which is a stub in v1, so they are
// logged as a FIXME rather than guessed at.
func (t *Translator) emitExport(ctx context.Context, ins gcn.Instruction) {
	exported, ok := t.gatherExportValue(ctx, ins)
	if !ok {
		return
	}

	if ins.Op == "exp pos0" {
		f32v4 := t.Values.TypeID(gcn.VectorType{Type: gcn.ScalarF32, Count: 4})
		positionPtrType := t.Module.AddTypePointer(spirv.StorageClassOutput, f32v4)
		memberZero := t.constU32(0)
		positionMember := t.Module.AddAccessChain(positionPtrType, t.vs.positionOutput.ID, memberZero)
		t.Module.AddStore(positionMember, t.padToVec4(exported).ID)
		return
	}

	index, ok := paramIndexFromOp(ins.Op)
	if !ok {
		tlog.SpanFromContext(ctx).Printw("unhandled export target, no SPIR-V emitted", "op", ins.Op)
		return
	}

	ptr, ok := t.vs.paramOutputs[index]
	if !ok {
		tlog.SpanFromContext(ctx).Printw("export to undeclared param output", "op", ins.Op, "index", index)
		return
	}
	t.Module.AddStore(ptr.ID, exported.ID)
}

// gatherExportValue loads the VGPR(s) selected by ins.Mask and, if
// more than one lane is selected, composes them into a vector.
func (t *Translator) gatherExportValue(ctx context.Context, ins gcn.Instruction) (gcn.Value, bool) {
	count := ins.Mask.PopCount()
	if count == 0 {
		count = len(ins.Src)
	}

	componentIDs := make([]uint32, 0, count)
	for i := 0; i < len(ins.Src) && i < count; i++ {
		v := t.loadVectorOperand(ctx, ins, i)
		componentIDs = append(componentIDs, v.ID)
	}
	if len(componentIDs) == 0 {
		return gcn.Value{}, false
	}
	if len(componentIDs) == 1 {
		return gcn.Value{ID: componentIDs[0], Type: gcn.VectorType{Type: gcn.ScalarF32, Count: 1}}, true
	}

	vt := gcn.VectorType{Type: gcn.ScalarF32, Count: uint32(len(componentIDs))}
	typeID := t.Values.TypeID(vt)
	id := t.Module.AddCompositeConstruct(typeID, componentIDs...)
	return gcn.Value{ID: id, Type: vt}, true
}

// padToVec4 extends v to a 4-component float vector for the
// fixed-size gl_Position member, filling any lanes the export mask
// left unwritten with 0.0 rather than storing a narrower value into a
// vec4-typed pointer (which SPIR-V rejects as a type mismatch).
func (t *Translator) padToVec4(v gcn.Value) gcn.Value {
	if v.Type.Count == 4 {
		return v
	}

	f32 := t.Values.TypeID(gcn.VectorType{Type: gcn.ScalarF32, Count: 1})
	zero := t.Module.AddConstant(f32, 0)

	components := make([]uint32, 0, 4)
	if v.Type.Count == 1 {
		components = append(components, v.ID)
	} else {
		for i := uint32(0); i < v.Type.Count; i++ {
			components = append(components, t.Module.AddCompositeExtract(f32, v.ID, i))
		}
	}
	for uint32(len(components)) < 4 {
		components = append(components, zero)
	}

	vec4 := t.Values.TypeID(gcn.VectorType{Type: gcn.ScalarF32, Count: 4})
	id := t.Module.AddCompositeConstruct(vec4, components...)
	return gcn.Value{ID: id, Type: gcn.VectorType{Type: gcn.ScalarF32, Count: 4}}
}

// paramIndexFromOp extracts N from an "exp paramN" mnemonic.
func paramIndexFromOp(op string) (uint32, bool) {
	const prefix = "exp param"
	if !strings.HasPrefix(op, prefix) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(op, prefix))
	if err != nil {
		return 0, false
	}
	return uint32(n), true
}
