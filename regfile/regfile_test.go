package regfile

import (
	"context"
	"testing"

	"github.com/gogpu/gcnspv/gcn"
	"github.com/gogpu/gcnspv/spirv"
	"github.com/gogpu/gcnspv/value"
)

func newTestRegisterFile() *RegisterFile {
	module := spirv.NewModuleBuilder(spirv.Version1_3)
	values := value.NewContext(module)
	return New(module, values)
}

func TestLoadUnwrittenRegisterPanics(t *testing.T) {
	r := newTestRegisterFile()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic loading an unwritten register")
		}
	}()
	r.LoadSgpr(3)
}

func TestStoreThenLoadRoundTrips(t *testing.T) {
	r := newTestRegisterFile()
	src := r.values.BuildConstVector(gcn.ScalarF32, 0x3f800000, 0, 0, 0, gcn.RegisterMask(1))
	r.StoreSgpr(0, src, gcn.RegisterMask(1))

	loaded := r.LoadSgpr(0)
	if loaded.Type.Type != gcn.ScalarF32 || loaded.Type.Count != 1 {
		t.Fatalf("unexpected loaded type: %+v", loaded.Type)
	}
}

func TestStoreDeclaresOnceAndReusesPointer(t *testing.T) {
	r := newTestRegisterFile()
	src1 := r.values.BuildConstVector(gcn.ScalarU32, 1, 0, 0, 0, gcn.RegisterMask(1))
	r.StoreVgpr(5, src1, gcn.RegisterMask(1))
	ptr1 := r.vgprs[5]

	src2 := r.values.BuildConstVector(gcn.ScalarU32, 2, 0, 0, 0, gcn.RegisterMask(1))
	r.StoreVgpr(5, src2, gcn.RegisterMask(1))
	ptr2 := r.vgprs[5]

	if ptr1.ID != ptr2.ID {
		t.Fatal("expected the register pointer to remain stable across stores")
	}
}

func TestLoadScalarOperandInlineIntDecodesValue(t *testing.T) {
	r := newTestRegisterFile()
	operand := gcn.DecodeOperand(gcn.OperandConstIntPosMin, gcn.RegisterCategoryScalar)
	v := r.LoadScalarOperand(context.Background(), operand, 0)
	if v.Type.Type != gcn.ScalarI32 {
		t.Fatalf("expected signed int constant, got %+v", v.Type)
	}
}

func TestLoadScalarOperandLiteralConstTracksConstTable(t *testing.T) {
	r := newTestRegisterFile()
	operand := gcn.DecodeOperand(gcn.OperandLiteralConst, gcn.RegisterCategoryScalar)
	v := r.LoadScalarOperand(context.Background(), operand, 0x42)

	if _, ok := r.constTable[v.ID]; !ok {
		t.Fatal("expected literal constant to be recorded in the const table")
	}
}

func TestStoreVCCFromConstantTracksState(t *testing.T) {
	r := newTestRegisterFile()
	operand := gcn.DecodeOperand(gcn.OperandLiteralConst, gcn.RegisterCategoryScalar)
	v := r.LoadScalarOperand(context.Background(), operand, 7)

	r.StoreVCC(v, false)
	got, ok := r.VCC()
	if !ok || got != 7 {
		t.Fatalf("expected tracked VCC value 7, got %d ok=%v", got, ok)
	}
}

func TestStoreVCCFromRegisterClearsState(t *testing.T) {
	r := newTestRegisterFile()
	literalOperand := gcn.DecodeOperand(gcn.OperandLiteralConst, gcn.RegisterCategoryScalar)
	v := r.LoadScalarOperand(context.Background(), literalOperand, 7)
	r.StoreVCC(v, false)

	nonConst := gcn.Value{ID: 99999, Type: gcn.VectorType{Type: gcn.ScalarU32, Count: 1}}
	r.StoreVCC(nonConst, false)

	if _, ok := r.VCC(); ok {
		t.Fatal("expected VCC state to be cleared by a non-constant store")
	}
}

func TestStoreVCCMergesLoAndHiHalves(t *testing.T) {
	r := newTestRegisterFile()
	operand := gcn.DecodeOperand(gcn.OperandLiteralConst, gcn.RegisterCategoryScalar)

	lo := r.LoadScalarOperand(context.Background(), operand, 0x1)
	r.StoreVCC(lo, false)

	hi := r.LoadScalarOperand(context.Background(), operand, 0x2)
	r.StoreVCC(hi, true)

	got, ok := r.VCC()
	want := uint64(0x2)<<32 | 0x1
	if !ok || got != want {
		t.Fatalf("expected merged VCC %#x, got %#x ok=%v", want, got, ok)
	}
}

func TestStoreVCCFromRegisterClearsStaleValue(t *testing.T) {
	r := newTestRegisterFile()
	literalOperand := gcn.DecodeOperand(gcn.OperandLiteralConst, gcn.RegisterCategoryScalar)
	v := r.LoadScalarOperand(context.Background(), literalOperand, 7)
	r.StoreVCC(v, false)

	nonConst := gcn.Value{ID: 99999, Type: gcn.VectorType{Type: gcn.ScalarU32, Count: 1}}
	r.StoreVCC(nonConst, false)

	if got, ok := r.VCC(); ok || got != 0 {
		t.Fatalf("expected VCC to read back zero and untracked after a non-constant store, got %d ok=%v", got, ok)
	}
}

func TestStoreScalarOperandRoutesM0(t *testing.T) {
	r := newTestRegisterFile()
	literalOperand := gcn.DecodeOperand(gcn.OperandLiteralConst, gcn.RegisterCategoryScalar)
	v := r.LoadScalarOperand(context.Background(), literalOperand, 11)

	m0Operand := gcn.DecodeOperand(gcn.OperandM0, gcn.RegisterCategoryScalar)
	r.StoreScalarOperand(context.Background(), m0Operand, v)

	got, ok := r.M0()
	if !ok || got != 11 {
		t.Fatalf("expected tracked M0 value 11, got %d ok=%v", got, ok)
	}
}
