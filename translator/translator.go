// Package translator drives single-pass translation of a GCN
// instruction stream into a SPIR-V module: Translator.New sets up the
// target stage's fixed-function interface, Process dispatches one
// decoded instruction at a time by category, and Finalize closes out
// the stage and serializes the module.
//
// Translation is deliberately single-pass and stateful, mirroring
// GCNCompiler: there is no intermediate IR, no optimization pass, and
// no cross-instruction analysis beyond what AnalysisInfo precomputes.
package translator

import (
	"context"
	"fmt"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/gogpu/gcnspv/gcn"
	"github.com/gogpu/gcnspv/regfile"
	"github.com/gogpu/gcnspv/spirv"
	"github.com/gogpu/gcnspv/value"
)

// vertexStageState holds the vertex-stage-specific bookkeeping built
// up across emitVsInit/emitEmuFetchShader/emitVsFinalize.
type vertexStageState struct {
	mainFunctionID  uint32
	fetchFunctionID uint32
	inputs          map[uint32]gcn.Pointer // keyed by semantic index
	positionOutput  gcn.Pointer            // the gl_PerVertex block; always present
	paramOutputs    map[uint32]gcn.Pointer // keyed by interpolant location
}

// Translator holds everything needed to translate one shader: the
// module under construction, the typed value layer and register file
// built on top of it, and the per-stage state accumulated by stage
// setup and finalize.
type Translator struct {
	Module *spirv.ModuleBuilder
	Values *value.Context
	Regs   *regfile.RegisterFile

	programInfo gcn.ProgramInfo
	analysis    gcn.AnalysisInfo
	shaderInput gcn.ShaderInput

	entryPointID         uint32
	entryPointInterfaces []uint32
	insideFunction       bool

	voidTypeID uint32
	voidFnType uint32

	vs vertexStageState

	typeCache map[typeCacheKey]uint32

	uniformFloatPtr  uint32
	firstUboVariable uint32
}

type typeCacheKey struct {
	kind    string
	a, b, c uint32
}

// New creates a translator for one shader and runs its stage setup
// (capabilities, interface declarations, fetch-shader synthesis for
// vertex shaders), mirroring GCNCompiler's constructor plus emitInit.
func New(ctx context.Context, programInfo gcn.ProgramInfo, analysis gcn.AnalysisInfo, shaderInput gcn.ShaderInput) *Translator {
	module := spirv.NewModuleBuilder(spirv.Version1_3)

	t := &Translator{
		Module:      module,
		Values:      value.NewContext(module),
		programInfo: programInfo,
		analysis:    analysis,
		shaderInput: shaderInput,
		typeCache:   make(map[typeCacheKey]uint32),
		vs: vertexStageState{
			inputs:       make(map[uint32]gcn.Pointer),
			paramOutputs: make(map[uint32]gcn.Pointer),
		},
	}
	t.Regs = regfile.New(module, t.Values)

	t.entryPointID = module.AllocID()

	debugStringID := module.AddDebugString(programInfo.Key)
	module.SetDebugSource(debugStringID)
	module.SetMemoryModel(spirv.AddressingModelLogical, spirv.MemoryModelGLSL450)

	t.emitInit(ctx)

	return t
}

func (t *Translator) emitInit(ctx context.Context) {
	t.Module.AddCapability(spirv.CapabilityShader)
	t.Module.AddCapability(spirv.CapabilityImageQuery)

	switch t.programInfo.ShaderType {
	case gcn.ShaderTypeVertex:
		t.emitVsInit(ctx)
	case gcn.ShaderTypeHull:
		t.emitHsInit()
	case gcn.ShaderTypeDomain:
		t.emitDsInit()
	case gcn.ShaderTypeGeometry:
		t.emitGsInit()
	case gcn.ShaderTypePixel:
		t.emitPsInit()
	case gcn.ShaderTypeCompute:
		t.emitCsInit()
	}
}

// voidType returns the cached id of OpTypeVoid.
func (t *Translator) voidType() uint32 {
	if t.voidTypeID == 0 {
		t.voidTypeID = t.Module.AddTypeVoid()
	}
	return t.voidTypeID
}

// voidFunctionType returns the cached id of the void() function type
// shared by vsMain, vsFetch, and the entry-point wrapper.
func (t *Translator) voidFunctionType() uint32 {
	if t.voidFnType == 0 {
		t.voidFnType = t.Module.AddTypeFunction(t.voidType())
	}
	return t.voidFnType
}

// emitFunctionBegin closes whatever function is currently open (if
// any) and opens a new one.
func (t *Translator) emitFunctionBegin(funcID, returnType, funcType uint32) {
	t.emitFunctionEnd()
	t.Module.AddFunction(funcType, returnType, spirv.FunctionControlNone)
	t.insideFunction = true
}

// emitFunctionEnd closes the currently open function, if one is open.
func (t *Translator) emitFunctionEnd() {
	if t.insideFunction {
		t.Module.AddReturn()
		t.Module.AddFunctionEnd()
	}
	t.insideFunction = false
}

// emitMainFunctionBegin opens the module's single SPIR-V entry-point
// function (always named "main" at the SPIR-V level, regardless of
// the stage's own internal function names).
func (t *Translator) emitMainFunctionBegin() {
	t.emitFunctionBegin(t.entryPointID, t.voidType(), t.voidFunctionType())
	t.emitFunctionLabel()
}

func (t *Translator) emitFunctionLabel() uint32 {
	return t.Module.AddLabel()
}

// Process dispatches one decoded GCN instruction to its category
// handler, mirroring processInstruction's switch one-for-one including
// its CategoryUnknown fallthrough: an instruction whose category could
// not be determined is a FIXME — logged and skipped, never a fatal
// error, since translation must keep making forward progress through
// the rest of the stream.
func (t *Translator) Process(ctx context.Context, ins gcn.Instruction) {
	switch ins.Category {
	case gcn.CategoryScalarALU:
		t.emitScalarALU(ctx, ins)
	case gcn.CategoryScalarMemory:
		t.emitScalarMemory(ctx, ins)
	case gcn.CategoryVectorALU:
		t.emitVectorALU(ctx, ins)
	case gcn.CategoryVectorMemory:
		t.emitVectorMemory(ctx, ins)
	case gcn.CategoryFlowControl:
		t.emitFlowControl(ctx, ins)
	case gcn.CategoryDataShare:
		t.emitDataShare(ctx, ins)
	case gcn.CategoryVectorInterpolation:
		t.emitVectorInterpolation(ctx, ins)
	case gcn.CategoryExport:
		t.emitExport(ctx, ins)
	case gcn.CategoryDebugProfile:
		t.emitDebugProfile(ctx, ins)
	case gcn.CategoryUnknown:
		tlog.SpanFromContext(ctx).Printw("instruction category not initialized", "op", ins.Op)
	default:
	}
}

// Finalize closes out the stage (emitting its finalize path) and
// declares the SPIR-V entry point now that every interface id the
// function touches has been collected, then serializes the module to
// its binary form.
func (t *Translator) Finalize(ctx context.Context) ([]byte, error) {
	switch t.programInfo.ShaderType {
	case gcn.ShaderTypeVertex:
		t.emitVsFinalize(ctx)
	case gcn.ShaderTypeHull:
		t.emitHsFinalize()
	case gcn.ShaderTypeDomain:
		t.emitDsFinalize()
	case gcn.ShaderTypeGeometry:
		t.emitGsFinalize()
	case gcn.ShaderTypePixel:
		t.emitPsFinalize()
	case gcn.ShaderTypeCompute:
		t.emitCsFinalize()
	default:
		return nil, errors.New("unknown shader type %v", t.programInfo.ShaderType)
	}

	t.Module.AddEntryPoint(t.executionModel(), t.entryPointID, "main", t.entryPointInterfaces)
	t.Module.AddName(t.entryPointID, "main")

	return t.Module.Build(), nil
}

func (t *Translator) executionModel() spirv.ExecutionModel {
	switch t.programInfo.ShaderType {
	case gcn.ShaderTypeVertex:
		return spirv.ExecutionModelVertex
	case gcn.ShaderTypeHull:
		return spirv.ExecutionModelTessellationControl
	case gcn.ShaderTypeDomain:
		return spirv.ExecutionModelTessellationEvaluation
	case gcn.ShaderTypeGeometry:
		return spirv.ExecutionModelGeometry
	case gcn.ShaderTypePixel:
		return spirv.ExecutionModelFragment
	case gcn.ShaderTypeCompute:
		return spirv.ExecutionModelGLCompute
	default:
		return spirv.ExecutionModelVertex
	}
}

func debugName(prefix string, index uint32) string {
	return fmt.Sprintf("%s%d", prefix, index)
}
