// Package spirv provides a low-level SPIR-V module builder.
//
// It allocates SSA ids, defines types/constants, declares variables,
// emits instructions into ordered module sections, and serializes the
// result to the SPIR-V binary format. It knows nothing about GCN, the
// register file, or the typed value layer above it — those live in the
// gcn, value, regfile and translator packages. This package only
// provides the primitives those layers are built on: AllocID, AddType*,
// AddGlobalVariable/AddLocalVariable, AddLoad/AddStore, decorations, capabilities, functions,
// and the final Build().
package spirv

// Version represents a SPIR-V version.
type Version struct {
	Major uint8
	Minor uint8
}

// Common SPIR-V versions.
var (
	Version1_0 = Version{1, 0}
	Version1_3 = Version{1, 3}
	Version1_4 = Version{1, 4}
	Version1_5 = Version{1, 5}
)

// SPIR-V magic number and header constants.
const (
	MagicNumber = 0x07230203
	GeneratorID = 0x00000000 // Unregistered generator
)

// OpCode represents a SPIR-V opcode.
type OpCode uint16

// Opcodes used by this translator. Not an exhaustive copy of the SPIR-V
// spec — only what the stage setup, typed value layer, register file and
// instruction dispatcher actually emit.
const (
	OpNop                OpCode = 0
	OpSource             OpCode = 3
	OpName               OpCode = 5
	OpMemberName         OpCode = 6
	OpString             OpCode = 7
	OpExtension          OpCode = 10
	OpExtInstImport      OpCode = 11
	OpExtInst            OpCode = 12
	OpMemoryModel        OpCode = 14
	OpEntryPoint         OpCode = 15
	OpExecutionMode      OpCode = 16
	OpCapability         OpCode = 17
	OpTypeVoid           OpCode = 19
	OpTypeBool           OpCode = 20
	OpTypeInt            OpCode = 21
	OpTypeFloat          OpCode = 22
	OpTypeVector         OpCode = 23
	OpTypeMatrix         OpCode = 24
	OpTypeImage          OpCode = 25
	OpTypeSampledImage   OpCode = 27
	OpTypeArray          OpCode = 28
	OpTypeRuntimeArray   OpCode = 29
	OpTypeStruct         OpCode = 30
	OpTypePointer        OpCode = 32
	OpTypeFunction       OpCode = 33
	OpConstantTrue       OpCode = 41
	OpConstantFalse      OpCode = 42
	OpConstant           OpCode = 43
	OpConstantComposite  OpCode = 44
	OpFunction           OpCode = 54
	OpFunctionParameter  OpCode = 55
	OpFunctionEnd        OpCode = 56
	OpFunctionCall       OpCode = 57
	OpVariable           OpCode = 59
	OpLoad               OpCode = 61
	OpStore              OpCode = 62
	OpAccessChain        OpCode = 65
	OpDecorate           OpCode = 71
	OpMemberDecorate     OpCode = 72
	OpVectorShuffle      OpCode = 79
	OpCompositeConstruct OpCode = 80
	OpCompositeExtract   OpCode = 81
	OpCompositeInsert    OpCode = 82
	OpSampledImage       OpCode = 86
	OpImageSampleImplicitLod OpCode = 87
	OpConvertFToS        OpCode = 110
	OpConvertSToF        OpCode = 111
	OpConvertUToF        OpCode = 112
	OpBitcast            OpCode = 124
	OpSNegate            OpCode = 126
	OpFNegate            OpCode = 127
	OpIAdd               OpCode = 128
	OpFAdd               OpCode = 129
	OpISub               OpCode = 130
	OpFSub               OpCode = 131
	OpIMul               OpCode = 132
	OpFMul               OpCode = 133
	OpUDiv               OpCode = 134
	OpSDiv               OpCode = 135
	OpFDiv               OpCode = 136
	OpUMod               OpCode = 137
	OpSRem               OpCode = 138
	OpFRem               OpCode = 140
	OpFMod               OpCode = 141
	OpLogicalAnd         OpCode = 167
	OpLogicalOr          OpCode = 166
	OpBitwiseOr          OpCode = 197
	OpBitwiseXor         OpCode = 198
	OpBitwiseAnd         OpCode = 199
	OpNot                OpCode = 200
	OpShiftLeftLogical   OpCode = 196
	OpShiftRightLogical  OpCode = 194
	OpShiftRightArith    OpCode = 195
	OpIEqual             OpCode = 170
	OpINotEqual          OpCode = 171
	OpUGreaterThan       OpCode = 172
	OpSGreaterThan       OpCode = 173
	OpUGreaterThanEqual  OpCode = 174
	OpSGreaterThanEqual  OpCode = 175
	OpULessThan          OpCode = 176
	OpSLessThan          OpCode = 177
	OpULessThanEqual     OpCode = 178
	OpSLessThanEqual     OpCode = 179
	OpFOrdEqual          OpCode = 180
	OpFUnordNotEqual     OpCode = 183
	OpFOrdLessThan       OpCode = 184
	OpFOrdGreaterThan    OpCode = 186
	OpFOrdLessThanEqual  OpCode = 188
	OpFOrdGreaterThanEqual OpCode = 190
	OpSelect             OpCode = 169
	OpLabel              OpCode = 248
	OpBranch             OpCode = 249
	OpBranchConditional  OpCode = 250
	OpLoopMerge          OpCode = 246
	OpSelectionMerge      OpCode = 247
	OpReturn             OpCode = 253
	OpReturnValue        OpCode = 254
	OpKill               OpCode = 252
)

// ExtGLSLInstruction identifies an instruction in the GLSL.std.450
// extended instruction set, imported once per module and referenced by
// OpExtInst. FAbs/SAbs have no native opcode; they are always emitted
// through this extended set.
type ExtGLSLInstruction uint32

const (
	ExtGLSLRound    ExtGLSLInstruction = 1
	ExtGLSLFAbs     ExtGLSLInstruction = 4
	ExtGLSLSAbs     ExtGLSLInstruction = 5
	ExtGLSLFSign    ExtGLSLInstruction = 6
	ExtGLSLFMin     ExtGLSLInstruction = 37
	ExtGLSLUMin     ExtGLSLInstruction = 38
	ExtGLSLSMin     ExtGLSLInstruction = 39
	ExtGLSLFMax     ExtGLSLInstruction = 40
	ExtGLSLUMax     ExtGLSLInstruction = 41
	ExtGLSLSMax     ExtGLSLInstruction = 42
)

// Capability represents a SPIR-V capability.
type Capability uint32

const (
	CapabilityShader         Capability = 1
	CapabilityFloat64        Capability = 10
	CapabilityInt64          Capability = 11
	CapabilityImageQuery     Capability = 50
	CapabilityDrawParameters Capability = 4427
)

// Decoration represents a SPIR-V decoration.
type Decoration uint32

const (
	DecorationBlock         Decoration = 2
	DecorationColMajor      Decoration = 5
	DecorationArrayStride   Decoration = 6
	DecorationMatrixStride  Decoration = 7
	DecorationBuiltIn       Decoration = 11
	DecorationLocation      Decoration = 30
	DecorationBinding       Decoration = 33
	DecorationDescriptorSet Decoration = 34
	DecorationOffset        Decoration = 35
)

// BuiltIn identifies a SPIR-V built-in variable/member, used as the
// operand of a BuiltIn decoration.
type BuiltIn uint32

const (
	BuiltInPosition    BuiltIn = 0
	BuiltInClipDistance BuiltIn = 3
	BuiltInCullDistance BuiltIn = 4
	BuiltInVertexIndex BuiltIn = 42
	BuiltInInstanceIndex BuiltIn = 43
	BuiltInFragCoord   BuiltIn = 15
)

// StorageClass represents a SPIR-V storage class.
type StorageClass uint32

const (
	StorageClassUniformConstant StorageClass = 0
	StorageClassInput           StorageClass = 1
	StorageClassUniform         StorageClass = 2
	StorageClassOutput          StorageClass = 3
	StorageClassWorkgroup       StorageClass = 4
	StorageClassPrivate         StorageClass = 6
	StorageClassFunction        StorageClass = 7
	StorageClassPushConstant    StorageClass = 9
	StorageClassStorageBuffer   StorageClass = 12
)

// ExecutionModel represents a SPIR-V shader execution model.
type ExecutionModel uint32

const (
	ExecutionModelVertex                 ExecutionModel = 0
	ExecutionModelTessellationControl    ExecutionModel = 1
	ExecutionModelTessellationEvaluation ExecutionModel = 2
	ExecutionModelGeometry               ExecutionModel = 3
	ExecutionModelFragment               ExecutionModel = 4
	ExecutionModelGLCompute              ExecutionModel = 5
)

// ExecutionMode represents a SPIR-V execution mode.
type ExecutionMode uint32

const (
	ExecutionModeOriginUpperLeft ExecutionMode = 7
	ExecutionModeLocalSize       ExecutionMode = 17
)

// AddressingModel represents a SPIR-V addressing model.
type AddressingModel uint32

const (
	AddressingModelLogical AddressingModel = 0
)

// MemoryModel represents a SPIR-V memory model.
type MemoryModel uint32

const (
	MemoryModelGLSL450 MemoryModel = 1
)

// FunctionControl represents SPIR-V function control flags.
type FunctionControl uint32

const (
	FunctionControlNone FunctionControl = 0
)

// SelectionControl represents SPIR-V selection-merge control flags.
type SelectionControl uint32

const (
	SelectionControlNone SelectionControl = 0
)

// LoopControl represents SPIR-V loop-merge control flags.
type LoopControl uint32

const (
	LoopControlNone LoopControl = 0
)

// Dim represents a SPIR-V image dimensionality, used by the T# stub
// image type declaration.
type Dim uint32

const (
	Dim2D   Dim = 1
	DimCube Dim = 3
)
