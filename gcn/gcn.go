// Package gcn models the GCN instruction stream: its operand encoding,
// scalar and vector types, register masks and swizzles, and the
// per-instruction metadata the translator consumes one instruction at
// a time. It has no knowledge of SPIR-V; the value and regfile
// packages bridge this model onto the typed SSA graph built with the
// spirv package.
package gcn

// ScalarType is the element type of a GCN register interpretation. GCN
// registers are untyped dwords; a ScalarType records how the current
// instruction interprets the bits it reads or writes.
type ScalarType uint8

const (
	ScalarUnknown ScalarType = iota
	ScalarBool
	ScalarU32
	ScalarI32
	ScalarF32
	ScalarU64
	ScalarI64
	ScalarF64
)

// VectorType pairs a ScalarType with a component count. A plain scalar
// is VectorType{Type: t, Count: 1}.
type VectorType struct {
	Type  ScalarType
	Count uint32
}

// Value is an SSA value produced by the typed value layer: a SPIR-V
// result id together with the GCN-level type the translator believes
// it holds. The translator threads Values between instructions instead
// of re-deriving types from raw SPIR-V ids.
type Value struct {
	ID   uint32
	Type VectorType
}

// Pointer is an SSA pointer to a register file slot: a SPIR-V pointer
// id, the storage class it was declared in, and the VectorType stored
// behind it.
type Pointer struct {
	ID           uint32
	StorageClass uint32 // spirv.StorageClass, duplicated here to avoid an import cycle
	Type         VectorType
}

// RegisterCategory distinguishes scalar (SGPR) from vector (VGPR)
// register banks. Every operand decode and register file lookup is
// keyed on (RegisterCategory, index).
type RegisterCategory uint8

const (
	RegisterCategoryScalar RegisterCategory = iota
	RegisterCategoryVector
)

// GCN operand encoding. These constants mirror the PSSL instruction
// decoder's SRC/SDST operand field ranges: indices below NumSgpr select
// an SGPR, the stateful-register codes select VCC/M0/EXEC/SCC, the
// inline-constant ranges select a compile-time-known literal, and
// indices at or above VgprBase select a VGPR.
const (
	NumSgpr = 104 // s0..s103

	OperandVccLo = 106
	OperandVccHi = 107
	OperandM0    = 124
	OperandExecLo = 126
	OperandExecHi = 127

	// Inline signed integer constants: 128 encodes 0, 129..192 encode
	// 1..64, 193..208 encode -1..-16.
	OperandConstIntZero    = 128
	OperandConstIntPosMin  = 129
	OperandConstIntPosMax  = 192
	OperandConstIntNegMin  = 193
	OperandConstIntNegMax  = 208

	// Inline float constants: one operand code per magnitude/sign pair.
	OperandConstFloatPos0_5 = 240
	OperandConstFloatNeg0_5 = 241
	OperandConstFloatPos1_0 = 242
	OperandConstFloatNeg1_0 = 243
	OperandConstFloatPos2_0 = 244
	OperandConstFloatNeg2_0 = 245
	OperandConstFloatPos4_0 = 246
	OperandConstFloatNeg4_0 = 247

	OperandVccZ        = 251
	OperandExecZ       = 252
	OperandSCC         = 253
	OperandLdsDirect   = 254
	OperandLiteralConst = 255

	VgprBase = 256 // v0..v255, offset by VgprBase in the unified operand space
)

// DecodeInlineInt reports whether code is an inline signed integer
// constant operand and, if so, its value.
func DecodeInlineInt(code uint32) (value int32, ok bool) {
	switch {
	case code == OperandConstIntZero:
		return 0, true
	case code >= OperandConstIntPosMin && code <= OperandConstIntPosMax:
		return int32(code-OperandConstIntPosMin) + 1, true
	case code >= OperandConstIntNegMin && code <= OperandConstIntNegMax:
		return -(int32(code-OperandConstIntNegMin) + 1), true
	default:
		return 0, false
	}
}

// DecodeInlineFloat reports whether code is an inline float constant
// operand and, if so, its value.
func DecodeInlineFloat(code uint32) (value float32, ok bool) {
	switch code {
	case OperandConstFloatPos0_5:
		return 0.5, true
	case OperandConstFloatNeg0_5:
		return -0.5, true
	case OperandConstFloatPos1_0:
		return 1.0, true
	case OperandConstFloatNeg1_0:
		return -1.0, true
	case OperandConstFloatPos2_0:
		return 2.0, true
	case OperandConstFloatNeg2_0:
		return -2.0, true
	case OperandConstFloatPos4_0:
		return 4.0, true
	case OperandConstFloatNeg4_0:
		return -4.0, true
	default:
		return 0, false
	}
}

// RegisterMask is a 4-bit component mask (x/y/z/w), used by export and
// vector-memory operand decode.
type RegisterMask uint8

// PopCount returns the number of set components in the mask.
func (m RegisterMask) PopCount() int {
	count := 0
	for i := 0; i < 4; i++ {
		if m&(1<<uint(i)) != 0 {
			count++
		}
	}
	return count
}

// FirstSet returns the index of the lowest set component, or -1 if the
// mask is empty.
func (m RegisterMask) FirstSet() int {
	for i := 0; i < 4; i++ {
		if m&(1<<uint(i)) != 0 {
			return i
		}
	}
	return -1
}

// FirstN returns a mask with only the first n components (from bit 0)
// set, used to build the identity mask for an n-component fetch.
func FirstN(n int) RegisterMask {
	var m RegisterMask
	for i := 0; i < n && i < 4; i++ {
		m |= 1 << uint(i)
	}
	return m
}

// RegisterSwizzle selects, per destination component, which source
// component to read (a "dst[i] = src[swz[i]]" permutation), used by
// the typed value layer's Swizzle operation.
type RegisterSwizzle [4]uint8

// IdentitySwizzle is the no-op swizzle x.x y.y z.z w.w.
var IdentitySwizzle = RegisterSwizzle{0, 1, 2, 3}
