package gcn

// InstructionCategory mirrors the PSSL instruction decoder's
// Instruction::InstructionCategory enum. Translator.Process dispatches
// on this value alone, one category handler per case, matching
// processInstruction's switch one-for-one including its
// CategoryUnknown/FIXME fallthrough.
type InstructionCategory uint8

const (
	CategoryScalarALU InstructionCategory = iota
	CategoryScalarMemory
	CategoryVectorALU
	CategoryVectorMemory
	CategoryFlowControl
	CategoryDataShare
	CategoryVectorInterpolation
	CategoryExport
	CategoryDebugProfile
	CategoryUnknown
)

// Operand is one decoded instruction operand: either a register
// reference (scalar or vector bank, by index), a stateful register
// (VCC/M0/EXEC/SCC), or an inline/literal constant.
type Operand struct {
	Kind  OperandKind
	Code  uint32 // raw GCN operand code, used to resolve Kind-specific fields
	Index uint32 // register index, valid when Kind is OperandKindRegister
}

// OperandKind classifies a decoded Operand.
type OperandKind uint8

const (
	OperandKindRegister OperandKind = iota
	OperandKindVCCLo
	OperandKindVCCHi
	OperandKindM0
	OperandKindExecLo
	OperandKindExecHi
	OperandKindVCCZ
	OperandKindExecZ
	OperandKindSCC
	OperandKindLdsDirect
	OperandKindInlineInt
	OperandKindInlineFloat
	OperandKindLiteralConst
)

// DecodeOperand classifies a raw GCN operand code against the
// encoding ranges in gcn.go. category distinguishes the SGPR bank
// (RegisterCategoryScalar) from the VGPR bank (RegisterCategoryVector)
// for OperandKindRegister results.
func DecodeOperand(code uint32, category RegisterCategory) Operand {
	switch {
	case code < NumSgpr && category == RegisterCategoryScalar:
		return Operand{Kind: OperandKindRegister, Code: code, Index: code}
	case code >= VgprBase && category == RegisterCategoryVector:
		return Operand{Kind: OperandKindRegister, Code: code, Index: code - VgprBase}
	case code == OperandVccLo:
		return Operand{Kind: OperandKindVCCLo, Code: code}
	case code == OperandVccHi:
		return Operand{Kind: OperandKindVCCHi, Code: code}
	case code == OperandM0:
		return Operand{Kind: OperandKindM0, Code: code}
	case code == OperandExecLo:
		return Operand{Kind: OperandKindExecLo, Code: code}
	case code == OperandExecHi:
		return Operand{Kind: OperandKindExecHi, Code: code}
	case code == OperandVccZ:
		return Operand{Kind: OperandKindVCCZ, Code: code}
	case code == OperandExecZ:
		return Operand{Kind: OperandKindExecZ, Code: code}
	case code == OperandSCC:
		return Operand{Kind: OperandKindSCC, Code: code}
	case code == OperandLdsDirect:
		return Operand{Kind: OperandKindLdsDirect, Code: code}
	case code == OperandLiteralConst:
		return Operand{Kind: OperandKindLiteralConst, Code: code}
	case code >= OperandConstIntZero && code <= OperandConstIntNegMax:
		return Operand{Kind: OperandKindInlineInt, Code: code}
	case code >= OperandConstFloatPos0_5 && code <= OperandConstFloatNeg4_0:
		return Operand{Kind: OperandKindInlineFloat, Code: code}
	default:
		return Operand{Kind: OperandKindRegister, Code: code, Index: code}
	}
}

// Instruction is one decoded GCN instruction handed to the translator.
// Op names the specific opcode within its Category (e.g. "v_add_f32",
// "s_branch"); the instruction dispatcher switches on it within each
// category handler, mirroring the original decoder's per-opcode
// switches inside emitScalarALU/emitVectorALU/etc.
type Instruction struct {
	Category InstructionCategory
	Op       string
	Dst      []Operand
	Src      []Operand
	Literal  uint32 // the trailing literal constant dword, when Src contains OperandKindLiteralConst
	Mask     RegisterMask
}

// ShaderType mirrors PsslProgramInfo::ShaderType: the five stage
// kinds plus compute.
type ShaderType uint8

const (
	ShaderTypeVertex ShaderType = iota
	ShaderTypeHull
	ShaderTypeDomain
	ShaderTypeGeometry
	ShaderTypePixel
	ShaderTypeCompute
)

// ProgramInfo carries the per-shader metadata the translator needs up
// front: its stage (selecting which stage setup/finalize path runs)
// and a debug key used for the OpSource debug string, mirroring
// PsslProgramInfo.
type ProgramInfo struct {
	ShaderType ShaderType
	Key        string
}

// VertexInputSemantic describes one fetch-shader vertex attribute: the
// input location it's bound at, the VectorType the fetch shader loads
// into a VGPR, and the VGPR the first component lands in. StartingVgpr
// mirrors GcnVertexInputSemantic's vgpr field: the fetch shader copies
// component i into VGPR StartingVgpr+i, independent of the order
// semantics are declared in or of any other semantic's allocation.
type VertexInputSemantic struct {
	Location     uint32
	Type         VectorType
	StartingVgpr uint32
}

// ResourceBuffer describes one V#/T#/S# resource binding: its
// descriptor set/binding slot and, for V# buffers, the per-element
// stride in bytes; the uniform buffer's dword array has Stride/4
// elements.
type ResourceBuffer struct {
	Set     uint32
	Binding uint32
	Stride  uint32 // in bytes; 0 for T#/S# resources
}

// ShaderInput mirrors GcnShaderInput: the fixed-function input
// description the translator needs before it can declare the stage's
// interface variables, independent of the instruction stream itself.
type ShaderInput struct {
	VertexInputs []VertexInputSemantic
	Resources    []ResourceBuffer
}

// ExportTarget mirrors the EXP_TGT encoding of the GCN export
// instruction: which fixed-function sink an exported vector is routed
// to (the rasterizer position, a parameter interpolant, a render
// target, ...).
type ExportTarget uint32

const (
	ExportTargetPosition ExportTarget = iota
	ExportTargetParam
	ExportTargetMRT
	ExportTargetZ
)

// ExpParam describes one export instruction the analysis pre-pass
// found in the vertex shader's instruction stream: which target it
// writes and how many components it carries. Stage setup uses this to
// declare one Output variable per non-position export before any
// instruction is actually processed, since SPIR-V requires interface
// variables to be declared ahead of use.
type ExpParam struct {
	Target         ExportTarget
	ComponentCount uint32
}

// AnalysisInfo mirrors GcnAnalysisInfo: results of a pre-pass over the
// instruction stream that the stage setup needs before emitting any
// instructions.
type AnalysisInfo struct {
	ExpParams []ExpParam
}
