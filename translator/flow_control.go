package translator

import (
	"context"

	"tlog.app/go/tlog"

	"github.com/gogpu/gcnspv/gcn"
	"github.com/gogpu/gcnspv/spirv"
	"github.com/gogpu/gcnspv/value"
)

// emitFlowControl handles s_branch/s_cbranch/s_endpgm. v1 covers the
// structured control-flow minimum needed by straight-line shaders with
// a single trailing kill or return: unconditional branch, a
// condition-code-based conditional branch with merge block, and
// program end. Loops and multi-way branches are a FIXME — the
// dispatcher logs and skips rather than emitting an unstructured (and
// therefore SPIR-V-invalid) branch.
func (t *Translator) emitFlowControl(ctx context.Context, ins gcn.Instruction) {
	switch ins.Op {
	case "s_endpgm":
		// Nothing to emit: the enclosing function's epilogue (added by
		// emitFunctionEnd) already returns.

	case "s_branch":
		t.emitUnconditionalBranch(ins)

	case "s_cbranch_scc0", "s_cbranch_scc1", "s_cbranch_vccz", "s_cbranch_vccnz":
		t.emitConditionalBranch(ctx, ins)

	default:
		tlog.SpanFromContext(ctx).Printw("unhandled flow control op, no SPIR-V emitted", "op", ins.Op)
	}
}

func (t *Translator) emitUnconditionalBranch(ins gcn.Instruction) {
	target := t.Module.AllocID()
	t.Module.AddBranch(target)
	t.Module.AddLabelWithID(target)
}

// emitConditionalBranch emits a structured if with an empty true arm:
// the condition decides whether the block is entered, not which of
// two pre-built regions to run — the translator only ever sees one
// instruction at a time and cannot look ahead to the matching
// s_cbranch target, so both arms of the structured merge funnel into
// the same continuation label. This mirrors the "emit the merge
// header now, resolve the body as instructions arrive" shape flow
// control always needs in a single-pass translator.
func (t *Translator) emitConditionalBranch(ctx context.Context, ins gcn.Instruction) {
	var cond gcn.Value
	switch ins.Op {
	case "s_cbranch_scc0", "s_cbranch_scc1":
		// SCC has no tracked compile-time state (regfile.stateRegisters
		// only covers VCC/M0); per this translator's documented stub it
		// always reads as a freshly synthesized false, so scc0 always
		// takes the branch and scc1 never does.
		test := value.TestNonZero
		if ins.Op == "s_cbranch_scc0" {
			test = value.TestZero
		}
		tlog.SpanFromContext(ctx).Printw("SCC is not tracked, using stubbed false value", "op", ins.Op)
		scc := t.Values.BuildConstVector(gcn.ScalarU32, 0, 0, 0, 0, gcn.RegisterMask(1))
		cond = t.Values.ZeroTest(scc, test)
	default:
		vccValue, ok := t.Regs.VCC()
		test := value.TestNonZero
		if ins.Op == "s_cbranch_vccz" {
			test = value.TestZero
		}
		if !ok {
			tlog.SpanFromContext(ctx).Printw("VCC value not tracked at conditional branch, treating as zero", "op", ins.Op)
			vccValue = 0
		}
		lit := t.Values.BuildConstVector(gcn.ScalarU32, uint32(vccValue), 0, 0, 0, gcn.RegisterMask(1))
		cond = t.Values.ZeroTest(lit, test)
	}

	mergeLabel := t.Module.AllocID()
	trueLabel := t.Module.AllocID()

	t.Module.AddSelectionMerge(mergeLabel, spirv.SelectionControlNone)
	t.Module.AddBranchConditional(cond.ID, trueLabel, mergeLabel)
	t.Module.AddLabelWithID(trueLabel)
	// The true arm's body arrives as subsequent instructions; its
	// closing branch to mergeLabel and the OpLabel for mergeLabel
	// itself are emitted when the matching branch target is reached
	// in the instruction stream.
}
