package value

import (
	"context"
	"math"
	"testing"

	"github.com/gogpu/gcnspv/gcn"
	"github.com/gogpu/gcnspv/spirv"
)

func newTestContext() *Context {
	module := spirv.NewModuleBuilder(spirv.Version1_3)
	return NewContext(module)
}

func TestTypeIDCachesVectorTypes(t *testing.T) {
	c := newTestContext()
	vt := gcn.VectorType{Type: gcn.ScalarF32, Count: 4}

	a := c.TypeID(vt)
	b := c.TypeID(vt)
	if a != b {
		t.Fatalf("expected cached type id, got %d then %d", a, b)
	}
}

func TestTypeIDScalarCollapsesToBaseType(t *testing.T) {
	c := newTestContext()
	scalar := c.TypeID(gcn.VectorType{Type: gcn.ScalarF32, Count: 1})
	vec := c.TypeID(gcn.VectorType{Type: gcn.ScalarF32, Count: 4})
	if scalar == vec {
		t.Fatal("scalar and vec4 type ids should differ")
	}
}

func TestBuildConstVectorRespectsMask(t *testing.T) {
	c := newTestContext()
	bits := math.Float32bits
	result := c.BuildConstVector(gcn.ScalarF32, bits(1), bits(2), bits(3), bits(4), gcn.RegisterMask(0b0101))

	if result.Type.Count != 2 {
		t.Fatalf("expected 2 components selected by mask, got %d", result.Type.Count)
	}
}

func TestBuildConstVectorSingleComponentIsScalar(t *testing.T) {
	c := newTestContext()
	result := c.BuildConstVector(gcn.ScalarU32, 7, 0, 0, 0, gcn.RegisterMask(0b0001))
	if result.Type.Count != 1 {
		t.Fatalf("expected scalar result, got count %d", result.Type.Count)
	}
}

func TestSwizzleIdentityReturnsInputUnchanged(t *testing.T) {
	c := newTestContext()
	typeID := c.TypeID(gcn.VectorType{Type: gcn.ScalarF32, Count: 4})
	srcID := c.Module.AddLoad(typeID, c.Module.AllocID())
	v := gcn.Value{ID: srcID, Type: gcn.VectorType{Type: gcn.ScalarF32, Count: 4}}

	result := c.Swizzle(v, gcn.IdentitySwizzle, gcn.RegisterMask(0b1111))
	if result.ID != v.ID {
		t.Fatalf("identity swizzle should not emit a new instruction, got id %d want %d", result.ID, v.ID)
	}
}

func TestSwizzleScalarSourceExtends(t *testing.T) {
	c := newTestContext()
	typeID := c.TypeID(gcn.VectorType{Type: gcn.ScalarF32, Count: 1})
	srcID := c.Module.AddLoad(typeID, c.Module.AllocID())
	v := gcn.Value{ID: srcID, Type: gcn.VectorType{Type: gcn.ScalarF32, Count: 1}}

	result := c.Swizzle(v, gcn.IdentitySwizzle, gcn.RegisterMask(0b0011))
	if result.Type.Count != 2 {
		t.Fatalf("expected extension to 2 lanes, got %d", result.Type.Count)
	}
}

func TestExtendSizeOneIsNoop(t *testing.T) {
	c := newTestContext()
	v := gcn.Value{ID: 5, Type: gcn.VectorType{Type: gcn.ScalarU32, Count: 1}}
	result := c.Extend(v, 1)
	if result.ID != v.ID {
		t.Fatal("Extend(v, 1) should return v unchanged")
	}
}

func TestConcatSumsComponentCounts(t *testing.T) {
	c := newTestContext()
	a := gcn.Value{ID: 1, Type: gcn.VectorType{Type: gcn.ScalarF32, Count: 2}}
	b := gcn.Value{ID: 2, Type: gcn.VectorType{Type: gcn.ScalarF32, Count: 2}}

	result := c.Concat(a, b)
	if result.Type.Count != 4 {
		t.Fatalf("expected 4 components, got %d", result.Type.Count)
	}
}

func TestBitcastSameTypeIsNoop(t *testing.T) {
	c := newTestContext()
	v := gcn.Value{ID: 3, Type: gcn.VectorType{Type: gcn.ScalarF32, Count: 4}}
	result := c.Bitcast(v, v.Type, gcn.ScalarF32)
	if result.ID != v.ID {
		t.Fatal("bitcasting to the same type should be a no-op")
	}
}

func TestBitcastNarrowToWideHalvesComponentCount(t *testing.T) {
	c := newTestContext()
	v := gcn.Value{ID: 9, Type: gcn.VectorType{Type: gcn.ScalarU32, Count: 2}}
	result := c.Bitcast(v, v.Type, gcn.ScalarF64)
	if result.Type.Count != 1 {
		t.Fatalf("expected 2 dwords to bitcast to 1 double, got count %d", result.Type.Count)
	}
}

func TestBitcastUnreconcilableWidthPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic bitcasting an odd dword count to a 64-bit type")
		}
	}()

	c := newTestContext()
	v := gcn.Value{ID: 9, Type: gcn.VectorType{Type: gcn.ScalarU32, Count: 3}}
	c.Bitcast(v, v.Type, gcn.ScalarF64)
}

func TestZeroTestProducesBoolScalar(t *testing.T) {
	c := newTestContext()
	v := gcn.Value{ID: 11, Type: gcn.VectorType{Type: gcn.ScalarU32, Count: 1}}
	result := c.ZeroTest(v, TestZero)
	if result.Type.Type != gcn.ScalarBool || result.Type.Count != 1 {
		t.Fatalf("expected bool scalar result, got %+v", result.Type)
	}
}

func TestAbsUnsupportedTypePassesThrough(t *testing.T) {
	c := newTestContext()
	v := gcn.Value{ID: 13, Type: gcn.VectorType{Type: gcn.ScalarBool, Count: 1}}
	result := c.Abs(context.Background(), v)
	if result.ID != v.ID {
		t.Fatal("Abs on an unsupported type should pass the value through unchanged")
	}
}
