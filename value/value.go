// Package value implements the typed SSA value layer that reconciles
// GCN's untyped dword register bank with SPIR-V's strictly typed SSA
// graph. Every operation here takes and returns a gcn.Value carrying
// its own VectorType, so the register file and instruction dispatcher
// never have to re-derive a type from a bare SPIR-V id.
package value

import (
	"context"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/gogpu/gcnspv/gcn"
	"github.com/gogpu/gcnspv/spirv"
)

// Context owns the module builder and the lazily-populated type-id
// cache every operation in this package consults. One Context is
// shared by the whole translation of a shader.
type Context struct {
	Module  *spirv.ModuleBuilder
	typeIDs map[gcn.VectorType]uint32
	extGLSL uint32 // GLSL.std.450 import id; 0 until first needed
}

// NewContext creates a value layer bound to module.
func NewContext(module *spirv.ModuleBuilder) *Context {
	return &Context{
		Module:  module,
		typeIDs: make(map[gcn.VectorType]uint32),
	}
}

func scalarBitWidth(t gcn.ScalarType) uint32 {
	switch t {
	case gcn.ScalarU64, gcn.ScalarI64, gcn.ScalarF64:
		return 64
	default:
		return 32
	}
}

// isWideType reports whether t occupies two dwords per scalar (GCN
// packs a 64-bit value into a pair of 32-bit registers; SPIR-V sees it
// as a single 64-bit scalar, so Bitcast must halve or double the
// component count when crossing the width boundary).
func isWideType(t gcn.ScalarType) bool {
	return t == gcn.ScalarU64 || t == gcn.ScalarI64 || t == gcn.ScalarF64
}

// scalarTypeID declares (or returns the cached id for) the SPIR-V
// scalar type backing st.
func (c *Context) scalarTypeID(st gcn.ScalarType) uint32 {
	key := gcn.VectorType{Type: st, Count: 1}
	if id, ok := c.typeIDs[key]; ok {
		return id
	}

	var id uint32
	switch st {
	case gcn.ScalarBool:
		id = c.Module.AddTypeBool()
	case gcn.ScalarU32:
		id = c.Module.AddTypeInt(32, false)
	case gcn.ScalarI32:
		id = c.Module.AddTypeInt(32, true)
	case gcn.ScalarF32:
		id = c.Module.AddTypeFloat(32)
	case gcn.ScalarU64:
		id = c.Module.AddTypeInt(64, false)
	case gcn.ScalarI64:
		id = c.Module.AddTypeInt(64, true)
	case gcn.ScalarF64:
		id = c.Module.AddTypeFloat(64)
	default:
		id = c.Module.AddTypeInt(32, false)
	}
	c.typeIDs[key] = id
	return id
}

// TypeID declares (or returns the cached id for) the SPIR-V type
// backing vt, building a vector type over its scalar base when
// vt.Count > 1.
func (c *Context) TypeID(vt gcn.VectorType) uint32 {
	if id, ok := c.typeIDs[vt]; ok {
		return id
	}

	scalarID := c.scalarTypeID(vt.Type)
	if vt.Count <= 1 {
		c.typeIDs[vt] = scalarID
		return scalarID
	}

	id := c.Module.AddTypeVector(scalarID, vt.Count)
	c.typeIDs[vt] = id
	return id
}

// ExtGLSLImport returns the module's GLSL.std.450 extended
// instruction set import id, declaring it on first use.
func (c *Context) ExtGLSLImport() uint32 {
	return c.extGLSLImport()
}

func (c *Context) extGLSLImport() uint32 {
	if c.extGLSL == 0 {
		c.extGLSL = c.Module.AddExtInstImport("GLSL.std.450")
	}
	return c.extGLSL
}

// BuildConstVector builds a constant vector/scalar of 32-bit
// components, generalizing the original's four near-duplicate
// emitBuildConstVecf32/u32/i32 helpers (f64 has its own width and
// pairing rules — see BuildConstVector64) into one function
// parameterized on scalar type. x/y/z/w carry the already-encoded bit
// pattern for each component (float32 values via math.Float32bits,
// integers as their raw uint32 representation); only the components
// selected by mask are actually materialized.
func (c *Context) BuildConstVector(st gcn.ScalarType, x, y, z, w uint32, mask gcn.RegisterMask) gcn.Value {
	scalarID := c.scalarTypeID(st)
	raw := [4]uint32{x, y, z, w}

	var ids [4]uint32
	count := uint32(0)
	for i := 0; i < 4; i++ {
		if mask&(1<<uint(i)) != 0 {
			ids[count] = c.Module.AddConstant(scalarID, raw[i])
			count++
		}
	}

	resultType := gcn.VectorType{Type: st, Count: count}
	if count <= 1 {
		return gcn.Value{ID: ids[0], Type: resultType}
	}

	typeID := c.TypeID(resultType)
	id := c.Module.AddConstantComposite(typeID, ids[:count]...)
	return gcn.Value{ID: id, Type: resultType}
}

// BuildConstVector64 builds a constant vector of 64-bit float
// components. GCN only ever pairs 64-bit values as (xy, zw); asking
// for fewer than both halves of a pair is not representable and the
// mask is expected to select whole pairs.
func (c *Context) BuildConstVector64(xy, zw float64, mask gcn.RegisterMask) gcn.Value {
	scalarID := c.scalarTypeID(gcn.ScalarF64)

	var ids [2]uint32
	count := uint32(0)
	if mask&0x3 == 0x3 {
		ids[count] = c.Module.AddConstantFloat64(scalarID, xy)
		count++
	}
	if mask&0xC == 0xC {
		ids[count] = c.Module.AddConstantFloat64(scalarID, zw)
		count++
	}

	resultType := gcn.VectorType{Type: gcn.ScalarF64, Count: count}
	if count <= 1 {
		return gcn.Value{ID: ids[0], Type: resultType}
	}

	typeID := c.TypeID(resultType)
	id := c.Module.AddConstantComposite(typeID, ids[:count]...)
	return gcn.Value{ID: id, Type: resultType}
}

// Bitcast reinterprets srcValue's bits as dstType, adjusting the
// component count across a 32/64-bit width change the way the
// original GCN compiler's register reinterpretation does: widening a
// source to a narrower destination type doubles the component count,
// narrowing to a wider one halves it. Per the original compiler's
// "widths do not reconcile" assertion, a pair of types whose total
// dword count doesn't evenly divide into the destination's lane width
// is a malformed instruction stream, not a recoverable condition — it
// panics with ErrUnsupportedBitcastWidth.
func (c *Context) Bitcast(srcValue gcn.Value, srcType gcn.VectorType, dstType gcn.ScalarType) gcn.Value {
	if srcType.Type == dstType {
		return srcValue
	}

	dwords := srcType.Count
	if isWideType(srcType.Type) {
		dwords *= 2
	}

	count := dwords
	if isWideType(dstType) {
		if dwords%2 != 0 {
			panic(errors.Wrap(ErrUnsupportedBitcastWidth, "%v (%d dwords) -> %v", srcType, dwords, dstType))
		}
		count = dwords / 2
	}
	if count == 0 {
		panic(errors.Wrap(ErrUnsupportedBitcastWidth, "%v -> %v", srcType, dstType))
	}

	result := gcn.VectorType{Type: dstType, Count: count}
	typeID := c.TypeID(result)
	id := c.Module.AddUnaryOp(spirv.OpBitcast, typeID, srcValue.ID)
	return gcn.Value{ID: id, Type: result}
}

// Swizzle selects, per component, which source lane writeMask keeps
// permuted through swz. A scalar source is extended (not swizzled) to
// fill the mask's population count; a full identity swizzle under the
// mask returns the input unchanged without emitting an instruction; a
// single resulting component uses OpCompositeExtract, multiple use
// OpVectorShuffle.
func (c *Context) Swizzle(v gcn.Value, swz gcn.RegisterSwizzle, writeMask gcn.RegisterMask) gcn.Value {
	if v.Type.Count == 1 {
		return c.Extend(v, uint32(writeMask.PopCount()))
	}

	var indices [4]uint32
	dstIndex := uint32(0)
	for i := 0; i < 4; i++ {
		if writeMask&(1<<uint(i)) != 0 {
			indices[dstIndex] = uint32(swz[i])
			dstIndex++
		}
	}

	isIdentity := dstIndex == v.Type.Count
	for i := uint32(0); i < dstIndex && isIdentity; i++ {
		isIdentity = indices[i] == i
	}
	if isIdentity {
		return v
	}

	result := gcn.VectorType{Type: v.Type.Type, Count: dstIndex}
	typeID := c.TypeID(result)

	var id uint32
	if dstIndex == 1 {
		id = c.Module.AddCompositeExtract(typeID, v.ID, indices[0])
	} else {
		id = c.Module.AddVectorShuffle(typeID, v.ID, v.ID, indices[:dstIndex])
	}
	return gcn.Value{ID: id, Type: result}
}

// Extract is Swizzle with an identity component order, used to select
// a sub-mask of an existing value's lanes without reordering them.
func (c *Context) Extract(v gcn.Value, mask gcn.RegisterMask) gcn.Value {
	return c.Swizzle(v, gcn.IdentitySwizzle, mask)
}

// Insert writes srcValue's lanes into dstValue at the positions
// selected by srcMask, leaving the rest of dstValue unchanged.
func (c *Context) Insert(dstValue, srcValue gcn.Value, srcMask gcn.RegisterMask) gcn.Value {
	result := dstValue.Type
	typeID := c.TypeID(result)

	switch {
	case srcMask.PopCount() == 0:
		return dstValue

	case dstValue.Type.Count == 1:
		if srcMask&1 != 0 {
			return gcn.Value{ID: srcValue.ID, Type: result}
		}
		return dstValue

	case srcValue.Type.Count == 1:
		component := uint32(srcMask.FirstSet())
		id := c.Module.AddCompositeInsert(typeID, srcValue.ID, dstValue.ID, component)
		return gcn.Value{ID: id, Type: result}

	default:
		var components [4]uint32
		srcComponent := dstValue.Type.Count
		for i := uint32(0); i < dstValue.Type.Count; i++ {
			if srcMask&(1<<i) != 0 {
				components[i] = srcComponent
				srcComponent++
			} else {
				components[i] = i
			}
		}
		id := c.Module.AddVectorShuffle(typeID, dstValue.ID, srcValue.ID, components[:dstValue.Type.Count])
		return gcn.Value{ID: id, Type: result}
	}
}

// Concat appends value2's lanes after value1's, producing one wider
// vector of the same scalar type.
func (c *Context) Concat(value1, value2 gcn.Value) gcn.Value {
	result := gcn.VectorType{Type: value1.Type.Type, Count: value1.Type.Count + value2.Type.Count}
	typeID := c.TypeID(result)
	id := c.Module.AddCompositeConstruct(typeID, value1.ID, value2.ID)
	return gcn.Value{ID: id, Type: result}
}

// Extend replicates a scalar value across size lanes. size == 1 is a
// no-op.
func (c *Context) Extend(v gcn.Value, size uint32) gcn.Value {
	if size <= 1 {
		return v
	}

	result := gcn.VectorType{Type: v.Type.Type, Count: size}
	typeID := c.TypeID(result)

	ids := make([]uint32, size)
	for i := range ids {
		ids[i] = v.ID
	}
	id := c.Module.AddCompositeConstruct(typeID, ids...)
	return gcn.Value{ID: id, Type: result}
}

// Abs takes the absolute value of a float or signed-int operand. GCN's
// |src| modifier covers only these two types; any other type is a
// Warning-severity condition, logged and passed through unchanged.
func (c *Context) Abs(ctx context.Context, v gcn.Value) gcn.Value {
	typeID := c.TypeID(v.Type)

	switch v.Type.Type {
	case gcn.ScalarF32, gcn.ScalarF64:
		id := c.Module.AddExtInst(typeID, c.extGLSLImport(), spirv.ExtGLSLFAbs, v.ID)
		return gcn.Value{ID: id, Type: v.Type}
	case gcn.ScalarI32, gcn.ScalarI64:
		id := c.Module.AddExtInst(typeID, c.extGLSLImport(), spirv.ExtGLSLSAbs, v.ID)
		return gcn.Value{ID: id, Type: v.Type}
	default:
		tlog.SpanFromContext(ctx).Printw("cannot take absolute value of type", "type", v.Type.Type)
		return v
	}
}

// Negate negates a float or signed-int operand.
func (c *Context) Negate(ctx context.Context, v gcn.Value) gcn.Value {
	typeID := c.TypeID(v.Type)

	switch v.Type.Type {
	case gcn.ScalarF32, gcn.ScalarF64:
		id := c.Module.AddUnaryOp(spirv.OpFNegate, typeID, v.ID)
		return gcn.Value{ID: id, Type: v.Type}
	case gcn.ScalarI32, gcn.ScalarI64:
		id := c.Module.AddUnaryOp(spirv.OpSNegate, typeID, v.ID)
		return gcn.Value{ID: id, Type: v.Type}
	default:
		tlog.SpanFromContext(ctx).Printw("cannot negate type", "type", v.Type.Type)
		return v
	}
}

// ZeroTestKind is the sentinel type used by ZeroTest to select between
// testing for zero (used by SCC "all lanes zero" conditions) and
// testing for non-zero (used by branch-if-nonzero conditions).
type ZeroTestKind uint8

const (
	TestZero ZeroTestKind = iota
	TestNonZero
)

// ZeroTest produces a bool comparing v against the zero value of its
// type, used by flow control's SCC/VCC conditional branches.
func (c *Context) ZeroTest(v gcn.Value, test ZeroTestKind) gcn.Value {
	resultType := gcn.VectorType{Type: gcn.ScalarBool, Count: 1}
	boolTypeID := c.TypeID(resultType)

	scalarID := c.scalarTypeID(v.Type.Type)
	zeroID := c.Module.AddConstant(scalarID, 0)

	opcode := spirv.OpIEqual
	if test == TestNonZero {
		opcode = spirv.OpINotEqual
	}
	id := c.Module.AddBinaryOp(opcode, boolTypeID, v.ID, zeroID)
	return gcn.Value{ID: id, Type: resultType}
}

// MaskBits ANDs every lane of v against the same 32-bit mask constant,
// used to implement bitfield-extract-style instructions.
func (c *Context) MaskBits(v gcn.Value, mask uint32) gcn.Value {
	maskVector := c.BuildConstVector(gcn.ScalarU32, mask, mask, mask, mask, gcn.FirstN(int(v.Type.Count)))
	typeID := c.TypeID(v.Type)
	id := c.Module.AddBinaryOp(spirv.OpBitwiseAnd, typeID, v.ID, maskVector.ID)
	return gcn.Value{ID: id, Type: v.Type}
}

// ErrUnsupportedBitcastWidth is the value Bitcast panics with (wrapped
// with the offending types) when a bitcast is requested
// between component counts that cannot be reconciled by the 32/64-bit
// doubling rule (e.g. bitcasting a 3-component vector to a 64-bit
// type) — a fatal condition in the original compiler, since it implies
// a malformed instruction stream.
var ErrUnsupportedBitcastWidth = errors.New("bitcast produces a non-integer component count")
