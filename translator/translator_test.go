package translator

import (
	"context"
	"encoding/binary"
	"testing"

	"github.com/gogpu/gcnspv/gcn"
	"github.com/gogpu/gcnspv/spirv"
)

func simpleVertexInput() gcn.ShaderInput {
	return gcn.ShaderInput{
		VertexInputs: []gcn.VertexInputSemantic{
			{Location: 0, Type: gcn.VectorType{Type: gcn.ScalarF32, Count: 3}},
		},
		Resources: []gcn.ResourceBuffer{
			{Set: 0, Binding: 0, Stride: 64},
		},
	}
}

func newVertexTranslator() *Translator {
	ctx := context.Background()
	programInfo := gcn.ProgramInfo{ShaderType: gcn.ShaderTypeVertex, Key: "test.vs"}
	analysis := gcn.AnalysisInfo{
		ExpParams: []gcn.ExpParam{
			{Target: gcn.ExportTargetPosition, ComponentCount: 4},
			{Target: gcn.ExportTargetParam, ComponentCount: 4},
		},
	}
	return New(ctx, programInfo, analysis, simpleVertexInput())
}

func TestNewVertexTranslatorDeclaresFetchShader(t *testing.T) {
	tr := newVertexTranslator()
	if tr.vs.fetchFunctionID == 0 {
		t.Fatal("expected a synthesized fetch function for a shader with vertex inputs")
	}
	if tr.vs.mainFunctionID == 0 {
		t.Fatal("expected vsMain to be allocated")
	}
}

func TestNewVertexTranslatorDeclaresPositionAndParamOutputs(t *testing.T) {
	tr := newVertexTranslator()
	if tr.vs.positionOutput.ID == 0 {
		t.Fatal("expected gl_PerVertex block to be declared")
	}
	if _, ok := tr.vs.paramOutputs[0]; !ok {
		t.Fatal("expected one param output at location 0")
	}
}

func TestFinalizeProducesValidSpirvHeader(t *testing.T) {
	ctx := context.Background()
	tr := newVertexTranslator()

	module, err := tr.Finalize(ctx)
	if err != nil {
		t.Fatalf("Finalize returned error: %v", err)
	}
	if len(module) < 20 {
		t.Fatalf("module too short: %d bytes", len(module))
	}
	magic := binary.LittleEndian.Uint32(module[0:4])
	if magic != spirv.MagicNumber {
		t.Fatalf("magic = %#x, want %#x", magic, spirv.MagicNumber)
	}
}

func TestProcessScalarMovRoundTrips(t *testing.T) {
	ctx := context.Background()
	tr := newVertexTranslator()

	movLiteral := gcn.Instruction{
		Category: gcn.CategoryScalarALU,
		Op:       "s_mov_b32",
		Dst:      []gcn.Operand{{Kind: gcn.OperandKindRegister, Index: 0}},
		Src:      []gcn.Operand{{Kind: gcn.OperandKindLiteralConst}},
		Literal:  42,
	}
	tr.Process(ctx, movLiteral)

	v := tr.Regs.LoadSgpr(0)
	if v.ID == 0 {
		t.Fatal("expected s0 to be written by s_mov_b32")
	}
}

func TestEmuFetchShaderBindsNonContiguousStartingVgpr(t *testing.T) {
	ctx := context.Background()
	shaderInput := gcn.ShaderInput{
		VertexInputs: []gcn.VertexInputSemantic{
			{Location: 0, Type: gcn.VectorType{Type: gcn.ScalarF32, Count: 2}, StartingVgpr: 5},
			{Location: 1, Type: gcn.VectorType{Type: gcn.ScalarF32, Count: 1}, StartingVgpr: 10},
		},
	}
	programInfo := gcn.ProgramInfo{ShaderType: gcn.ShaderTypeVertex, Key: "test.vs"}
	tr := New(ctx, programInfo, gcn.AnalysisInfo{}, shaderInput)

	for _, vgpr := range []uint32{5, 6, 10} {
		if v := tr.Regs.LoadVgpr(vgpr); v.ID == 0 {
			t.Fatalf("expected v%d to be bound by the fetch shader", vgpr)
		}
	}

	for _, vgpr := range []uint32{0, 7, 9} {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("expected v%d to be unbound (no fetch-shader gap filling)", vgpr)
				}
			}()
			tr.Regs.LoadVgpr(vgpr)
		}()
	}
}

func TestProcessVectorAddWritesDestination(t *testing.T) {
	ctx := context.Background()
	tr := newVertexTranslator()

	tr.Process(ctx, gcn.Instruction{
		Category: gcn.CategoryVectorALU,
		Op:       "v_mov_b32",
		Dst:      []gcn.Operand{{Kind: gcn.OperandKindRegister, Index: 1}},
		Src:      []gcn.Operand{{Kind: gcn.OperandKindLiteralConst}},
		Literal:  1,
		Mask:     gcn.RegisterMask(1),
	})
	tr.Process(ctx, gcn.Instruction{
		Category: gcn.CategoryVectorALU,
		Op:       "v_add_f32",
		Dst:      []gcn.Operand{{Kind: gcn.OperandKindRegister, Index: 2}},
		Src: []gcn.Operand{
			{Kind: gcn.OperandKindRegister, Index: 1},
			{Kind: gcn.OperandKindRegister, Index: 1},
		},
		Mask: gcn.RegisterMask(1),
	})

	v := tr.Regs.LoadVgpr(2)
	if v.ID == 0 {
		t.Fatal("expected v2 to be written by v_add_f32")
	}
}

func TestProcessUnknownCategoryLogsAndContinues(t *testing.T) {
	ctx := context.Background()
	tr := newVertexTranslator()

	tr.Process(ctx, gcn.Instruction{Category: gcn.CategoryUnknown, Op: "weird_op"})
	// Reaching here without a panic is the assertion: an unrecognized
	// category must never abort translation.
}

func TestProcessExportPositionStoresIntoPerVertexBlock(t *testing.T) {
	ctx := context.Background()
	tr := newVertexTranslator()

	for i := uint32(0); i < 4; i++ {
		tr.Process(ctx, gcn.Instruction{
			Category: gcn.CategoryVectorALU,
			Op:       "v_mov_b32",
			Dst:      []gcn.Operand{{Kind: gcn.OperandKindRegister, Index: 10 + i}},
			Src:      []gcn.Operand{{Kind: gcn.OperandKindLiteralConst}},
			Literal:  0,
			Mask:     gcn.RegisterMask(1),
		})
	}

	tr.Process(ctx, gcn.Instruction{
		Category: gcn.CategoryExport,
		Op:       "exp pos0",
		Src: []gcn.Operand{
			{Kind: gcn.OperandKindRegister, Index: 10},
			{Kind: gcn.OperandKindRegister, Index: 11},
			{Kind: gcn.OperandKindRegister, Index: 12},
			{Kind: gcn.OperandKindRegister, Index: 13},
		},
		Mask: gcn.FirstN(4),
	})

	if _, err := tr.Finalize(ctx); err != nil {
		t.Fatalf("Finalize returned error: %v", err)
	}
}

// TestProcessExportPositionPadsPartialMaskToVec4 confirms a partial
// export mask (only x/y written) still stores a full vec4 into
// gl_Position, padding the missing lanes rather than storing a
// narrower value into the vec4-typed pointer.
func TestProcessExportPositionPadsPartialMaskToVec4(t *testing.T) {
	ctx := context.Background()
	tr := newVertexTranslator()

	for i := uint32(0); i < 2; i++ {
		tr.Process(ctx, gcn.Instruction{
			Category: gcn.CategoryVectorALU,
			Op:       "v_mov_b32",
			Dst:      []gcn.Operand{{Kind: gcn.OperandKindRegister, Index: 10 + i}},
			Src:      []gcn.Operand{{Kind: gcn.OperandKindLiteralConst}},
			Literal:  0,
			Mask:     gcn.RegisterMask(1),
		})
	}

	tr.Process(ctx, gcn.Instruction{
		Category: gcn.CategoryExport,
		Op:       "exp pos0",
		Src: []gcn.Operand{
			{Kind: gcn.OperandKindRegister, Index: 10},
			{Kind: gcn.OperandKindRegister, Index: 11},
		},
		Mask: gcn.FirstN(2),
	})

	module, err := tr.Finalize(ctx)
	if err != nil {
		t.Fatalf("Finalize returned error: %v", err)
	}
	if countOpcode(module, spirv.OpStore) == 0 {
		t.Fatal("expected at least one OpStore for the padded gl_Position write")
	}
}

// countOpcode counts how many instructions in a finalized SPIR-V
// module carry the given opcode.
func countOpcode(module []byte, want spirv.OpCode) int {
	count := 0
	for offset := 20; offset+4 <= len(module); {
		word := binary.LittleEndian.Uint32(module[offset:])
		wordCount := int(word >> 16)
		if wordCount == 0 {
			break
		}
		if spirv.OpCode(word&0xFFFF) == want {
			count++
		}
		offset += wordCount * 4
	}
	return count
}

// TestProcessScc0UsesEqualityAgainstStubbedSCC confirms s_cbranch_scc0
// (branch if SCC==0) uses an equality test against the stubbed SCC
// value, matching "SCC always reads false" — so scc0 always takes the
// branch.
func TestProcessScc0UsesEqualityAgainstStubbedSCC(t *testing.T) {
	ctx := context.Background()
	tr := newVertexTranslator()

	tr.Process(ctx, gcn.Instruction{Category: gcn.CategoryFlowControl, Op: "s_cbranch_scc0"})

	module, err := tr.Finalize(ctx)
	if err != nil {
		t.Fatalf("Finalize returned error: %v", err)
	}
	if countOpcode(module, spirv.OpIEqual) == 0 {
		t.Fatal("expected s_cbranch_scc0 to emit an OpIEqual test against the stubbed SCC value")
	}
	if countOpcode(module, spirv.OpINotEqual) != 0 {
		t.Fatal("s_cbranch_scc0 should not emit an OpINotEqual test")
	}
}

// TestProcessScc1UsesInequalityAgainstStubbedSCC confirms s_cbranch_scc1
// (branch if SCC==1) uses an inequality test against the stubbed SCC
// value, so the branch is never taken.
func TestProcessScc1UsesInequalityAgainstStubbedSCC(t *testing.T) {
	ctx := context.Background()
	tr := newVertexTranslator()

	tr.Process(ctx, gcn.Instruction{Category: gcn.CategoryFlowControl, Op: "s_cbranch_scc1"})

	module, err := tr.Finalize(ctx)
	if err != nil {
		t.Fatalf("Finalize returned error: %v", err)
	}
	if countOpcode(module, spirv.OpINotEqual) == 0 {
		t.Fatal("expected s_cbranch_scc1 to emit an OpINotEqual test against the stubbed SCC value")
	}
	if countOpcode(module, spirv.OpIEqual) != 0 {
		t.Fatal("s_cbranch_scc1 should not emit an OpIEqual test")
	}
}

// TestProcessVccBranchWithUntrackedVCCFallsBackToZero confirms that
// branching on VCC before it's ever been constant-tracked treats it as
// zero (rather than reading regfile's stale/zero-value internal
// state as if it were current) and still produces a valid module.
func TestProcessVccBranchWithUntrackedVCCFallsBackToZero(t *testing.T) {
	ctx := context.Background()
	tr := newVertexTranslator()

	tr.Process(ctx, gcn.Instruction{Category: gcn.CategoryFlowControl, Op: "s_cbranch_vccz"})

	module, err := tr.Finalize(ctx)
	if err != nil {
		t.Fatalf("Finalize returned error: %v", err)
	}
	if countOpcode(module, spirv.OpIEqual) == 0 {
		t.Fatal("expected s_cbranch_vccz with untracked VCC to test equality against zero")
	}
}

func TestExecutionModelMatchesShaderType(t *testing.T) {
	cases := []struct {
		st   gcn.ShaderType
		want spirv.ExecutionModel
	}{
		{gcn.ShaderTypeVertex, spirv.ExecutionModelVertex},
		{gcn.ShaderTypePixel, spirv.ExecutionModelFragment},
		{gcn.ShaderTypeCompute, spirv.ExecutionModelGLCompute},
	}
	for _, c := range cases {
		tr := &Translator{programInfo: gcn.ProgramInfo{ShaderType: c.st}}
		if got := tr.executionModel(); got != c.want {
			t.Errorf("executionModel(%v) = %v, want %v", c.st, got, c.want)
		}
	}
}
