package spirv

import (
	"encoding/binary"
	"math"
)

// Instruction represents a single SPIR-V instruction.
type Instruction struct {
	Opcode OpCode
	Words  []uint32 // result type id, result id, operands, in that order
}

// InstructionBuilder accumulates the operand words of one instruction.
type InstructionBuilder struct {
	words []uint32
}

// NewInstructionBuilder creates a new instruction builder.
func NewInstructionBuilder() *InstructionBuilder {
	return &InstructionBuilder{words: make([]uint32, 0, 8)}
}

// AddWord appends one operand word.
func (b *InstructionBuilder) AddWord(word uint32) {
	b.words = append(b.words, word)
}

// AddString appends a null-terminated, word-padded UTF-8 string.
func (b *InstructionBuilder) AddString(s string) {
	bytes := []byte(s)
	if len(bytes) == 0 || bytes[len(bytes)-1] != 0 {
		bytes = append(bytes, 0)
	}
	for len(bytes)%4 != 0 {
		bytes = append(bytes, 0)
	}
	for i := 0; i < len(bytes); i += 4 {
		word := uint32(bytes[i]) |
			uint32(bytes[i+1])<<8 |
			uint32(bytes[i+2])<<16 |
			uint32(bytes[i+3])<<24
		b.words = append(b.words, word)
	}
}

// Build finalizes the instruction with the given opcode.
func (b *InstructionBuilder) Build(opcode OpCode) Instruction {
	return Instruction{Opcode: opcode, Words: b.words}
}

// Encode serializes the instruction to its binary word sequence.
func (i Instruction) Encode() []uint32 {
	wordCount := uint32(len(i.Words) + 1) // +1 for the opcode/wordcount word
	result := make([]uint32, 0, wordCount)
	result = append(result, (wordCount<<16)|uint32(i.Opcode))
	result = append(result, i.Words...)
	return result
}

// ModuleBuilder builds a complete SPIR-V module: it allocates ids,
// accumulates instructions into the module's ordered sections, and
// serializes the result to a binary blob. It is the sole owner of id
// allocation and section ordering — callers never write sections
// directly.
type ModuleBuilder struct {
	version   Version
	generator uint32
	schema    uint32

	capabilities   []Instruction
	extensions     []Instruction
	extInstImports []Instruction
	memoryModel    *Instruction
	entryPoints    []Instruction
	executionModes []Instruction
	debugStrings   []Instruction
	debugNames     []Instruction
	annotations    []Instruction
	types          []Instruction
	globalVars     []Instruction
	functions      []Instruction

	nextID uint32
}

// NewModuleBuilder creates a new, empty module builder targeting the
// given SPIR-V version. Id 0 is reserved by the SPIR-V spec, so
// allocation starts at 1.
func NewModuleBuilder(version Version) *ModuleBuilder {
	return &ModuleBuilder{
		version: version,
		nextID:  1,
	}
}

// AllocID allocates a fresh, module-unique SSA id.
func (b *ModuleBuilder) AllocID() uint32 {
	id := b.nextID
	b.nextID++
	return id
}

// AddCapability declares a capability required by the module.
func (b *ModuleBuilder) AddCapability(capability Capability) {
	ib := NewInstructionBuilder()
	ib.AddWord(uint32(capability))
	b.capabilities = append(b.capabilities, ib.Build(OpCapability))
}

// AddExtension declares an optional SPIR-V extension by name.
func (b *ModuleBuilder) AddExtension(name string) {
	ib := NewInstructionBuilder()
	ib.AddString(name)
	b.extensions = append(b.extensions, ib.Build(OpExtension))
}

// AddExtInstImport imports an extended instruction set (e.g.
// "GLSL.std.450") and returns the id later passed to AddExtInst.
func (b *ModuleBuilder) AddExtInstImport(name string) uint32 {
	id := b.AllocID()
	ib := NewInstructionBuilder()
	ib.AddWord(id)
	ib.AddString(name)
	b.extInstImports = append(b.extInstImports, ib.Build(OpExtInstImport))
	return id
}

// SetMemoryModel sets the module's addressing and memory model. Called
// once per module.
func (b *ModuleBuilder) SetMemoryModel(addressing AddressingModel, memory MemoryModel) {
	ib := NewInstructionBuilder()
	ib.AddWord(uint32(addressing))
	ib.AddWord(uint32(memory))
	inst := ib.Build(OpMemoryModel)
	b.memoryModel = &inst
}

// AddEntryPoint registers an entry point function with its execution
// model, name, and interface id list (every Input/Output variable the
// function statically touches).
func (b *ModuleBuilder) AddEntryPoint(execModel ExecutionModel, funcID uint32, name string, interfaces []uint32) {
	ib := NewInstructionBuilder()
	ib.AddWord(uint32(execModel))
	ib.AddWord(funcID)
	ib.AddString(name)
	for _, iface := range interfaces {
		ib.AddWord(iface)
	}
	b.entryPoints = append(b.entryPoints, ib.Build(OpEntryPoint))
}

// AddExecutionMode attaches an execution mode to an entry point.
func (b *ModuleBuilder) AddExecutionMode(entryPoint uint32, mode ExecutionMode, params ...uint32) {
	ib := NewInstructionBuilder()
	ib.AddWord(entryPoint)
	ib.AddWord(uint32(mode))
	for _, p := range params {
		ib.AddWord(p)
	}
	b.executionModes = append(b.executionModes, ib.Build(OpExecutionMode))
}

// AddDebugString interns a debug string (e.g. a source filename or
// content-addressed key) and returns its id.
func (b *ModuleBuilder) AddDebugString(text string) uint32 {
	id := b.AllocID()
	ib := NewInstructionBuilder()
	ib.AddWord(id)
	ib.AddString(text)
	b.debugStrings = append(b.debugStrings, ib.Build(OpString))
	return id
}

// SetDebugSource attaches an OpSource for renderdoc/debug-tool display.
func (b *ModuleBuilder) SetDebugSource(file uint32) {
	ib := NewInstructionBuilder()
	ib.AddWord(0) // SourceLanguageUnknown
	ib.AddWord(0)
	ib.AddWord(file)
	b.debugStrings = append(b.debugStrings, ib.Build(OpSource))
}

// AddName attaches a debug name to an id. Names have no semantic effect
// on the module; they exist purely for tools like renderdoc.
func (b *ModuleBuilder) AddName(id uint32, name string) {
	ib := NewInstructionBuilder()
	ib.AddWord(id)
	ib.AddString(name)
	b.debugNames = append(b.debugNames, ib.Build(OpName))
}

// AddMemberName attaches a debug name to a struct member.
func (b *ModuleBuilder) AddMemberName(structID, member uint32, name string) {
	ib := NewInstructionBuilder()
	ib.AddWord(structID)
	ib.AddWord(member)
	ib.AddString(name)
	b.debugNames = append(b.debugNames, ib.Build(OpMemberName))
}

// AddDecorate attaches a decoration to an id.
func (b *ModuleBuilder) AddDecorate(id uint32, decoration Decoration, params ...uint32) {
	ib := NewInstructionBuilder()
	ib.AddWord(id)
	ib.AddWord(uint32(decoration))
	for _, p := range params {
		ib.AddWord(p)
	}
	b.annotations = append(b.annotations, ib.Build(OpDecorate))
}

// AddMemberDecorate attaches a decoration to a struct member.
func (b *ModuleBuilder) AddMemberDecorate(structID, member uint32, decoration Decoration, params ...uint32) {
	ib := NewInstructionBuilder()
	ib.AddWord(structID)
	ib.AddWord(member)
	ib.AddWord(uint32(decoration))
	for _, p := range params {
		ib.AddWord(p)
	}
	b.annotations = append(b.annotations, ib.Build(OpMemberDecorate))
}

// AddTypeVoid declares OpTypeVoid.
func (b *ModuleBuilder) AddTypeVoid() uint32 {
	id := b.AllocID()
	ib := NewInstructionBuilder()
	ib.AddWord(id)
	b.types = append(b.types, ib.Build(OpTypeVoid))
	return id
}

// AddTypeBool declares OpTypeBool.
func (b *ModuleBuilder) AddTypeBool() uint32 {
	id := b.AllocID()
	ib := NewInstructionBuilder()
	ib.AddWord(id)
	b.types = append(b.types, ib.Build(OpTypeBool))
	return id
}

// AddTypeFloat declares OpTypeFloat of the given bit width.
func (b *ModuleBuilder) AddTypeFloat(width uint32) uint32 {
	id := b.AllocID()
	ib := NewInstructionBuilder()
	ib.AddWord(id)
	ib.AddWord(width)
	b.types = append(b.types, ib.Build(OpTypeFloat))
	return id
}

// AddTypeInt declares OpTypeInt of the given bit width and signedness.
func (b *ModuleBuilder) AddTypeInt(width uint32, signed bool) uint32 {
	id := b.AllocID()
	ib := NewInstructionBuilder()
	ib.AddWord(id)
	ib.AddWord(width)
	if signed {
		ib.AddWord(1)
	} else {
		ib.AddWord(0)
	}
	b.types = append(b.types, ib.Build(OpTypeInt))
	return id
}

// AddTypeVector declares OpTypeVector.
func (b *ModuleBuilder) AddTypeVector(componentType, count uint32) uint32 {
	id := b.AllocID()
	ib := NewInstructionBuilder()
	ib.AddWord(id)
	ib.AddWord(componentType)
	ib.AddWord(count)
	b.types = append(b.types, ib.Build(OpTypeVector))
	return id
}

// AddTypeArray declares OpTypeArray with a constant-id length.
func (b *ModuleBuilder) AddTypeArray(elementType, lengthConstID uint32) uint32 {
	id := b.AllocID()
	ib := NewInstructionBuilder()
	ib.AddWord(id)
	ib.AddWord(elementType)
	ib.AddWord(lengthConstID)
	b.types = append(b.types, ib.Build(OpTypeArray))
	return id
}

// AddTypePointer declares OpTypePointer.
func (b *ModuleBuilder) AddTypePointer(storageClass StorageClass, baseType uint32) uint32 {
	id := b.AllocID()
	ib := NewInstructionBuilder()
	ib.AddWord(id)
	ib.AddWord(uint32(storageClass))
	ib.AddWord(baseType)
	b.types = append(b.types, ib.Build(OpTypePointer))
	return id
}

// AddTypeFunction declares OpTypeFunction.
func (b *ModuleBuilder) AddTypeFunction(returnType uint32, paramTypes ...uint32) uint32 {
	id := b.AllocID()
	ib := NewInstructionBuilder()
	ib.AddWord(id)
	ib.AddWord(returnType)
	for _, p := range paramTypes {
		ib.AddWord(p)
	}
	b.types = append(b.types, ib.Build(OpTypeFunction))
	return id
}

// AddTypeStruct declares OpTypeStruct with the given member types.
func (b *ModuleBuilder) AddTypeStruct(memberTypes ...uint32) uint32 {
	id := b.AllocID()
	ib := NewInstructionBuilder()
	ib.AddWord(id)
	for _, m := range memberTypes {
		ib.AddWord(m)
	}
	b.types = append(b.types, ib.Build(OpTypeStruct))
	return id
}

// AddTypeImage declares a stub OpTypeImage for a T# resource; v1 never
// samples it, but the type must exist for a binding to be declared.
func (b *ModuleBuilder) AddTypeImage(sampledType uint32, dim Dim) uint32 {
	id := b.AllocID()
	ib := NewInstructionBuilder()
	ib.AddWord(id)
	ib.AddWord(sampledType)
	ib.AddWord(uint32(dim))
	ib.AddWord(0) // depth: no
	ib.AddWord(0) // arrayed: no
	ib.AddWord(0) // multisampled: no
	ib.AddWord(1) // sampled: known at compile time
	ib.AddWord(0) // format: Unknown
	b.types = append(b.types, ib.Build(OpTypeImage))
	return id
}

// AddConstant declares OpConstant from raw literal words (1 word for a
// 32-bit scalar, 2 for a 64-bit one).
func (b *ModuleBuilder) AddConstant(typeID uint32, values ...uint32) uint32 {
	id := b.AllocID()
	ib := NewInstructionBuilder()
	ib.AddWord(typeID)
	ib.AddWord(id)
	for _, v := range values {
		ib.AddWord(v)
	}
	b.types = append(b.types, ib.Build(OpConstant))
	return id
}

// AddConstantFloat32 declares a 32-bit float constant.
func (b *ModuleBuilder) AddConstantFloat32(typeID uint32, value float32) uint32 {
	return b.AddConstant(typeID, math.Float32bits(value))
}

// AddConstantFloat64 declares a 64-bit float constant (two words, low
// bits first per the SPIR-V spec's little-endian word packing).
func (b *ModuleBuilder) AddConstantFloat64(typeID uint32, value float64) uint32 {
	bits := math.Float64bits(value)
	return b.AddConstant(typeID, uint32(bits&0xFFFFFFFF), uint32(bits>>32))
}

// AddConstantComposite declares OpConstantComposite.
func (b *ModuleBuilder) AddConstantComposite(typeID uint32, constituents ...uint32) uint32 {
	id := b.AllocID()
	ib := NewInstructionBuilder()
	ib.AddWord(typeID)
	ib.AddWord(id)
	for _, c := range constituents {
		ib.AddWord(c)
	}
	b.types = append(b.types, ib.Build(OpConstantComposite))
	return id
}

// AddGlobalVariable declares OpVariable in the module's global section
// (Input/Output/Uniform/UniformConstant/Private storage classes).
func (b *ModuleBuilder) AddGlobalVariable(pointerType uint32, storageClass StorageClass) uint32 {
	id := b.AllocID()
	ib := NewInstructionBuilder()
	ib.AddWord(pointerType)
	ib.AddWord(id)
	ib.AddWord(uint32(storageClass))
	b.globalVars = append(b.globalVars, ib.Build(OpVariable))
	return id
}

// AddLocalVariable declares OpVariable inside a function body (Function
// storage class only, per the SPIR-V spec — must be the first
// instructions of the entry block, which the caller is responsible for).
func (b *ModuleBuilder) AddLocalVariable(pointerType uint32) uint32 {
	id := b.AllocID()
	ib := NewInstructionBuilder()
	ib.AddWord(pointerType)
	ib.AddWord(id)
	ib.AddWord(uint32(StorageClassFunction))
	b.functions = append(b.functions, ib.Build(OpVariable))
	return id
}

// AddFunction opens a function definition (OpFunction) and returns its
// id.
func (b *ModuleBuilder) AddFunction(funcType, returnType uint32, control FunctionControl) uint32 {
	id := b.AllocID()
	ib := NewInstructionBuilder()
	ib.AddWord(returnType)
	ib.AddWord(id)
	ib.AddWord(uint32(control))
	ib.AddWord(funcType)
	b.functions = append(b.functions, ib.Build(OpFunction))
	return id
}

// AddFunctionEnd closes the current function definition.
func (b *ModuleBuilder) AddFunctionEnd() {
	ib := NewInstructionBuilder()
	b.functions = append(b.functions, ib.Build(OpFunctionEnd))
}

// AddLabel starts a new basic block.
func (b *ModuleBuilder) AddLabel() uint32 {
	id := b.AllocID()
	b.AddLabelWithID(id)
	return id
}

// AddLabelWithID starts a new basic block using an id forward-declared
// earlier — the shape structured control flow needs, since a merge or
// target label's id must be known before the branch that references
// it is emitted, but the label instruction itself comes later.
func (b *ModuleBuilder) AddLabelWithID(id uint32) {
	ib := NewInstructionBuilder()
	ib.AddWord(id)
	b.functions = append(b.functions, ib.Build(OpLabel))
}

// AddReturn emits OpReturn.
func (b *ModuleBuilder) AddReturn() {
	ib := NewInstructionBuilder()
	b.functions = append(b.functions, ib.Build(OpReturn))
}

// AddFunctionCallVoid emits a call to a void() function, discarding the
// (void) result id — this is the only call shape the stage scaffolding
// needs (vsMain calling vsFetch, main calling vsMain, ...).
func (b *ModuleBuilder) AddFunctionCallVoid(voidType, funcID uint32) {
	resultID := b.AllocID()
	ib := NewInstructionBuilder()
	ib.AddWord(voidType)
	ib.AddWord(resultID)
	ib.AddWord(funcID)
	b.functions = append(b.functions, ib.Build(OpFunctionCall))
}

// AddBinaryOp emits a generic two-operand instruction (arithmetic,
// comparison, bitwise). Kept generic and opcode-parameterized, as in
// the teacher's builder, so the typed value layer and the ALU emitters
// share one code path instead of one method per opcode.
func (b *ModuleBuilder) AddBinaryOp(opcode OpCode, resultType, left, right uint32) uint32 {
	resultID := b.AllocID()
	ib := NewInstructionBuilder()
	ib.AddWord(resultType)
	ib.AddWord(resultID)
	ib.AddWord(left)
	ib.AddWord(right)
	b.functions = append(b.functions, ib.Build(opcode))
	return resultID
}

// AddUnaryOp emits a generic single-operand instruction (bitcast,
// negate, convert).
func (b *ModuleBuilder) AddUnaryOp(opcode OpCode, resultType, operand uint32) uint32 {
	resultID := b.AllocID()
	ib := NewInstructionBuilder()
	ib.AddWord(resultType)
	ib.AddWord(resultID)
	ib.AddWord(operand)
	b.functions = append(b.functions, ib.Build(opcode))
	return resultID
}

// AddLoad emits OpLoad.
func (b *ModuleBuilder) AddLoad(resultType, pointer uint32) uint32 {
	resultID := b.AllocID()
	ib := NewInstructionBuilder()
	ib.AddWord(resultType)
	ib.AddWord(resultID)
	ib.AddWord(pointer)
	b.functions = append(b.functions, ib.Build(OpLoad))
	return resultID
}

// AddStore emits OpStore.
func (b *ModuleBuilder) AddStore(pointer, value uint32) {
	ib := NewInstructionBuilder()
	ib.AddWord(pointer)
	ib.AddWord(value)
	b.functions = append(b.functions, ib.Build(OpStore))
}

// AddAccessChain emits OpAccessChain.
func (b *ModuleBuilder) AddAccessChain(resultType, base uint32, indices ...uint32) uint32 {
	resultID := b.AllocID()
	ib := NewInstructionBuilder()
	ib.AddWord(resultType)
	ib.AddWord(resultID)
	ib.AddWord(base)
	for _, idx := range indices {
		ib.AddWord(idx)
	}
	b.functions = append(b.functions, ib.Build(OpAccessChain))
	return resultID
}

// AddCompositeConstruct emits OpCompositeConstruct.
func (b *ModuleBuilder) AddCompositeConstruct(resultType uint32, constituents ...uint32) uint32 {
	resultID := b.AllocID()
	ib := NewInstructionBuilder()
	ib.AddWord(resultType)
	ib.AddWord(resultID)
	for _, c := range constituents {
		ib.AddWord(c)
	}
	b.functions = append(b.functions, ib.Build(OpCompositeConstruct))
	return resultID
}

// AddCompositeExtract emits OpCompositeExtract.
func (b *ModuleBuilder) AddCompositeExtract(resultType, composite uint32, indices ...uint32) uint32 {
	resultID := b.AllocID()
	ib := NewInstructionBuilder()
	ib.AddWord(resultType)
	ib.AddWord(resultID)
	ib.AddWord(composite)
	for _, idx := range indices {
		ib.AddWord(idx)
	}
	b.functions = append(b.functions, ib.Build(OpCompositeExtract))
	return resultID
}

// AddCompositeInsert emits OpCompositeInsert.
func (b *ModuleBuilder) AddCompositeInsert(resultType, object, composite uint32, indices ...uint32) uint32 {
	resultID := b.AllocID()
	ib := NewInstructionBuilder()
	ib.AddWord(resultType)
	ib.AddWord(resultID)
	ib.AddWord(object)
	ib.AddWord(composite)
	for _, idx := range indices {
		ib.AddWord(idx)
	}
	b.functions = append(b.functions, ib.Build(OpCompositeInsert))
	return resultID
}

// AddVectorShuffle emits OpVectorShuffle.
func (b *ModuleBuilder) AddVectorShuffle(resultType, vec1, vec2 uint32, components []uint32) uint32 {
	resultID := b.AllocID()
	ib := NewInstructionBuilder()
	ib.AddWord(resultType)
	ib.AddWord(resultID)
	ib.AddWord(vec1)
	ib.AddWord(vec2)
	for _, c := range components {
		ib.AddWord(c)
	}
	b.functions = append(b.functions, ib.Build(OpVectorShuffle))
	return resultID
}

// AddSelect emits OpSelect.
func (b *ModuleBuilder) AddSelect(resultType, condition, accept, reject uint32) uint32 {
	resultID := b.AllocID()
	ib := NewInstructionBuilder()
	ib.AddWord(resultType)
	ib.AddWord(resultID)
	ib.AddWord(condition)
	ib.AddWord(accept)
	ib.AddWord(reject)
	b.functions = append(b.functions, ib.Build(OpSelect))
	return resultID
}

// AddSelectionMerge emits OpSelectionMerge, which must immediately
// precede the OpBranchConditional of a structured if.
func (b *ModuleBuilder) AddSelectionMerge(mergeLabel uint32, control SelectionControl) {
	ib := NewInstructionBuilder()
	ib.AddWord(mergeLabel)
	ib.AddWord(uint32(control))
	b.functions = append(b.functions, ib.Build(OpSelectionMerge))
}

// AddLoopMerge emits OpLoopMerge, which must immediately precede the
// branch terminating a structured loop header block.
func (b *ModuleBuilder) AddLoopMerge(mergeLabel, continueLabel uint32, control LoopControl) {
	ib := NewInstructionBuilder()
	ib.AddWord(mergeLabel)
	ib.AddWord(continueLabel)
	ib.AddWord(uint32(control))
	b.functions = append(b.functions, ib.Build(OpLoopMerge))
}

// AddBranch emits an unconditional OpBranch.
func (b *ModuleBuilder) AddBranch(target uint32) {
	ib := NewInstructionBuilder()
	ib.AddWord(target)
	b.functions = append(b.functions, ib.Build(OpBranch))
}

// AddBranchConditional emits OpBranchConditional.
func (b *ModuleBuilder) AddBranchConditional(condition, trueLabel, falseLabel uint32) {
	ib := NewInstructionBuilder()
	ib.AddWord(condition)
	ib.AddWord(trueLabel)
	ib.AddWord(falseLabel)
	b.functions = append(b.functions, ib.Build(OpBranchConditional))
}

// AddKill emits OpKill (fragment shader discard).
func (b *ModuleBuilder) AddKill() {
	ib := NewInstructionBuilder()
	b.functions = append(b.functions, ib.Build(OpKill))
}

// AddExtInst emits a call into an imported extended instruction set
// (GLSL.std.450's FAbs/SAbs, in this translator's case).
func (b *ModuleBuilder) AddExtInst(resultType, extSet uint32, instruction ExtGLSLInstruction, operands ...uint32) uint32 {
	resultID := b.AllocID()
	ib := NewInstructionBuilder()
	ib.AddWord(resultType)
	ib.AddWord(resultID)
	ib.AddWord(extSet)
	ib.AddWord(uint32(instruction))
	for _, op := range operands {
		ib.AddWord(op)
	}
	b.functions = append(b.functions, ib.Build(OpExtInst))
	return resultID
}

// Build serializes the module to its final binary form. The bound
// (one past the highest allocated id) is computed from nextID, so
// Build must run after every AllocID-performing call has completed.
func (b *ModuleBuilder) Build() []byte {
	bound := b.nextID

	totalWords := 5
	totalWords += countWords(b.capabilities)
	totalWords += countWords(b.extensions)
	totalWords += countWords(b.extInstImports)
	if b.memoryModel != nil {
		totalWords += len(b.memoryModel.Encode())
	}
	totalWords += countWords(b.entryPoints)
	totalWords += countWords(b.executionModes)
	totalWords += countWords(b.debugStrings)
	totalWords += countWords(b.debugNames)
	totalWords += countWords(b.annotations)
	totalWords += countWords(b.types)
	totalWords += countWords(b.globalVars)
	totalWords += countWords(b.functions)

	buffer := make([]byte, totalWords*4)
	offset := 0

	binary.LittleEndian.PutUint32(buffer[offset:], MagicNumber)
	offset += 4
	binary.LittleEndian.PutUint32(buffer[offset:], versionToWord(b.version))
	offset += 4
	binary.LittleEndian.PutUint32(buffer[offset:], b.generator)
	offset += 4
	binary.LittleEndian.PutUint32(buffer[offset:], bound)
	offset += 4
	binary.LittleEndian.PutUint32(buffer[offset:], b.schema)
	offset += 4

	offset = writeInstructions(buffer, offset, b.capabilities)
	offset = writeInstructions(buffer, offset, b.extensions)
	offset = writeInstructions(buffer, offset, b.extInstImports)
	if b.memoryModel != nil {
		offset = writeInstruction(buffer, offset, *b.memoryModel)
	}
	offset = writeInstructions(buffer, offset, b.entryPoints)
	offset = writeInstructions(buffer, offset, b.executionModes)
	offset = writeInstructions(buffer, offset, b.debugStrings)
	offset = writeInstructions(buffer, offset, b.debugNames)
	offset = writeInstructions(buffer, offset, b.annotations)
	offset = writeInstructions(buffer, offset, b.types)
	offset = writeInstructions(buffer, offset, b.globalVars)
	_ = writeInstructions(buffer, offset, b.functions)

	return buffer
}

func countWords(instructions []Instruction) int {
	count := 0
	for _, inst := range instructions {
		count += len(inst.Encode())
	}
	return count
}

func writeInstructions(buffer []byte, offset int, instructions []Instruction) int {
	for _, inst := range instructions {
		offset = writeInstruction(buffer, offset, inst)
	}
	return offset
}

func writeInstruction(buffer []byte, offset int, inst Instruction) int {
	for _, word := range inst.Encode() {
		binary.LittleEndian.PutUint32(buffer[offset:], word)
		offset += 4
	}
	return offset
}

func versionToWord(v Version) uint32 {
	return (uint32(v.Major) << 16) | (uint32(v.Minor) << 8)
}
