package spirv

import (
	"encoding/binary"
	"testing"
)

func TestModuleBuilderEmptyModuleHeader(t *testing.T) {
	b := NewModuleBuilder(Version1_3)
	b.SetMemoryModel(AddressingModelLogical, MemoryModelGLSL450)

	out := b.Build()
	if len(out) < 20 {
		t.Fatalf("module too short: %d bytes", len(out))
	}

	magic := binary.LittleEndian.Uint32(out[0:4])
	if magic != MagicNumber {
		t.Errorf("magic = %#x, want %#x", magic, MagicNumber)
	}

	version := binary.LittleEndian.Uint32(out[4:8])
	if want := versionToWord(Version1_3); version != want {
		t.Errorf("version word = %#x, want %#x", version, want)
	}

	bound := binary.LittleEndian.Uint32(out[12:16])
	if bound != 1 {
		t.Errorf("bound = %d, want 1 (no ids allocated)", bound)
	}
}

func TestModuleBuilderAllocIDIsSequentialAndBumpsBound(t *testing.T) {
	b := NewModuleBuilder(Version1_3)

	a := b.AllocID()
	c := b.AllocID()
	if c != a+1 {
		t.Fatalf("ids not sequential: %d then %d", a, c)
	}

	out := b.Build()
	bound := binary.LittleEndian.Uint32(out[12:16])
	if bound != c+1 {
		t.Errorf("bound = %d, want %d", bound, c+1)
	}
}

func TestModuleBuilderAddTypesDeduplicateNothing(t *testing.T) {
	b := NewModuleBuilder(Version1_3)
	voidType := b.AddTypeVoid()
	floatType := b.AddTypeFloat(32)
	vecType := b.AddTypeVector(floatType, 4)

	if voidType == floatType || floatType == vecType {
		t.Fatal("expected distinct type ids")
	}

	out := b.Build()
	if len(out) == 0 {
		t.Fatal("expected non-empty module")
	}
}

func TestModuleBuilderFunctionDefinitionShape(t *testing.T) {
	b := NewModuleBuilder(Version1_3)
	voidType := b.AddTypeVoid()
	fnType := b.AddTypeFunction(voidType)

	fn := b.AddFunction(fnType, voidType, FunctionControlNone)
	b.AddLabel()
	b.AddReturn()
	b.AddFunctionEnd()

	b.AddEntryPoint(ExecutionModelVertex, fn, "main", nil)
	b.SetMemoryModel(AddressingModelLogical, MemoryModelGLSL450)

	out := b.Build()
	if len(out) < 20 {
		t.Fatal("expected a non-trivial module body")
	}
}

func TestInstructionBuilderAddStringPadsToWordBoundary(t *testing.T) {
	ib := NewInstructionBuilder()
	ib.AddString("main")
	inst := ib.Build(OpName)

	// "main" + nul = 5 bytes, padded to 8 bytes = 2 words.
	if len(inst.Words) != 2 {
		t.Fatalf("got %d words, want 2", len(inst.Words))
	}
}

func TestInstructionEncodeWordCount(t *testing.T) {
	ib := NewInstructionBuilder()
	ib.AddWord(1)
	ib.AddWord(2)
	inst := ib.Build(OpIAdd)

	encoded := inst.Encode()
	if len(encoded) != 3 {
		t.Fatalf("got %d words, want 3 (opcode word + 2 operands)", len(encoded))
	}

	wordCount := encoded[0] >> 16
	if int(wordCount) != len(encoded) {
		t.Errorf("header word count = %d, actual words = %d", wordCount, len(encoded))
	}

	opcode := encoded[0] & 0xFFFF
	if OpCode(opcode) != OpIAdd {
		t.Errorf("opcode = %d, want %d", opcode, OpIAdd)
	}
}
