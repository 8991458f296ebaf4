// Package regfile implements the virtual register file: SGPR/VGPR
// banks realized as lazily-declared SPIR-V variables, plus the
// compile-time state tracked for VCC and M0 (EXEC and SCC have no
// tracked state).
//
// Registers are declared on first write (their type is not known until
// then) in the Private storage class. Private rather than Function
// matters here: the vertex stage's fetch shader (vsFetch) and its main
// body (vsMain) are separate SPIR-V functions, and Function-storage
// locals do not persist across a function call — an SGPR or VGPR
// written by the fetch shader must still be readable once vsMain
// starts running.
package regfile

import (
	"context"
	"fmt"
	"math"

	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/gogpu/gcnspv/gcn"
	"github.com/gogpu/gcnspv/spirv"
	"github.com/gogpu/gcnspv/value"
)

// literalConstant records the scalar type and decoded value of an SSA
// id known, at compile time, to be a constant — keyed by SPIR-V result
// id. It backs the VCC/M0 state-register bookkeeping, mirroring the
// original's m_constValueTable.
type literalConstant struct {
	Type  gcn.ScalarType
	Value uint32
}

// stateRegisters mirrors m_stateRegs: the compile-time-known state of
// GCN's special scalar registers. Only constant writes are tracked;
// an SSA write resets the corresponding field to "unknown" (ok=false)
// since the hardware value can no longer be predicted host-side.
type stateRegisters struct {
	vcc   uint64
	vccOK bool
	m0    uint32
	m0OK  bool
}

// RegisterFile owns the SGPR and VGPR banks plus GCN's special scalar
// registers (VCC/M0/EXEC/SCC) for one shader translation.
type RegisterFile struct {
	module *spirv.ModuleBuilder
	values *value.Context

	sgprs map[uint32]gcn.Pointer
	vgprs map[uint32]gcn.Pointer

	state      stateRegisters
	constTable map[uint32]literalConstant
}

// New creates an empty register file bound to module/values. Banks are
// populated lazily as instructions reference registers.
func New(module *spirv.ModuleBuilder, values *value.Context) *RegisterFile {
	return &RegisterFile{
		module:     module,
		values:     values,
		sgprs:      make(map[uint32]gcn.Pointer),
		vgprs:      make(map[uint32]gcn.Pointer),
		constTable: make(map[uint32]literalConstant),
	}
}

func (r *RegisterFile) declare(bank map[uint32]gcn.Pointer, index uint32, vt gcn.VectorType, namePrefix string) gcn.Pointer {
	if ptr, ok := bank[index]; ok {
		return ptr
	}

	typeID := r.values.TypeID(vt)
	ptrTypeID := r.module.AddTypePointer(spirv.StorageClassPrivate, typeID)
	varID := r.module.AddGlobalVariable(ptrTypeID, spirv.StorageClassPrivate)
	r.module.AddName(varID, fmt.Sprintf("%s%d", namePrefix, index))

	ptr := gcn.Pointer{ID: varID, StorageClass: uint32(spirv.StorageClassPrivate), Type: vt}
	bank[index] = ptr
	return ptr
}

// BindVgpr registers an already-declared pointer as VGPR index,
// without emitting a store. Used by the fetch shader, which declares
// and initializes its VGPR variables directly rather than going
// through StoreVgpr's declare-on-first-write path.
func (r *RegisterFile) BindVgpr(index uint32, ptr gcn.Pointer) {
	r.vgprs[index] = ptr
}

// BindSgpr registers an already-declared pointer as SGPR index. See
// BindVgpr.
func (r *RegisterFile) BindSgpr(index uint32, ptr gcn.Pointer) {
	r.sgprs[index] = ptr
}

// LoadSgpr loads the current value of SGPR index. Per the fatal
// "load of an unwritten register" assertion in the original compiler,
// reading a register that has never been written is a translation bug
// in the caller, not a recoverable condition — it panics.
func (r *RegisterFile) LoadSgpr(index uint32) gcn.Value {
	return r.load(r.sgprs, index, "s")
}

// LoadVgpr loads the current value of VGPR index.
func (r *RegisterFile) LoadVgpr(index uint32) gcn.Value {
	return r.load(r.vgprs, index, "v")
}

func (r *RegisterFile) load(bank map[uint32]gcn.Pointer, index uint32, kind string) gcn.Value {
	ptr, ok := bank[index]
	if !ok {
		panic(errors.Wrap(ErrUnwrittenRegister, "%s%d", kind, index))
	}
	typeID := r.values.TypeID(ptr.Type)
	id := r.module.AddLoad(typeID, ptr.ID)
	return gcn.Value{ID: id, Type: ptr.Type}
}

// StoreSgpr stores src into SGPR dstIdx, declaring the register on
// first write. writeMask selects which lanes of a multi-component
// register are overwritten; a partial mask triggers a load-modify-
// store sequence.
func (r *RegisterFile) StoreSgpr(dstIdx uint32, src gcn.Value, writeMask gcn.RegisterMask) {
	r.store(r.sgprs, dstIdx, src, writeMask, "s")
}

// StoreVgpr stores src into VGPR dstIdx.
func (r *RegisterFile) StoreVgpr(dstIdx uint32, src gcn.Value, writeMask gcn.RegisterMask) {
	r.store(r.vgprs, dstIdx, src, writeMask, "v")
}

func (r *RegisterFile) store(bank map[uint32]gcn.Pointer, dstIdx uint32, src gcn.Value, writeMask gcn.RegisterMask, kind string) {
	popCount := writeMask.PopCount()
	count := uint32(popCount)
	if count == 0 {
		count = src.Type.Count
	}

	ptr, declared := bank[dstIdx]
	if !declared {
		vt := gcn.VectorType{Type: src.Type.Type, Count: count}
		ptr = r.declare(bank, dstIdx, vt, kind)
	}

	stored := src
	if src.Type.Type != ptr.Type.Type {
		stored = r.values.Bitcast(stored, stored.Type, ptr.Type.Type)
	}
	if src.Type.Count == 1 && popCount > 1 {
		stored = r.values.Extend(stored, uint32(popCount))
	}

	if int(ptr.Type.Count) == popCount || popCount == 0 {
		r.module.AddStore(ptr.ID, stored.ID)
		return
	}

	typeID := r.values.TypeID(ptr.Type)
	current := gcn.Value{ID: r.module.AddLoad(typeID, ptr.ID), Type: ptr.Type}
	merged := r.values.Insert(current, stored, writeMask)
	r.module.AddStore(ptr.ID, merged.ID)
}

// LoadScalarOperand decodes a 9-bit SRC/SSRC operand into a value: an
// SGPR read, an inline integer/float constant, or a literal constant
// trailing the instruction word. Stateful-register sources (VCC/M0/
// EXEC/SCC lo/hi, VCCZ/EXECZ/SCC) are host-side-only in v1 — reading
// them is a Warning-severity condition (logged, zero passed through),
// matching the original's empty switch arms for those cases pending
// SSA promotion of the special registers.
func (r *RegisterFile) LoadScalarOperand(ctx context.Context, operand gcn.Operand, literal uint32) gcn.Value {
	switch operand.Kind {
	case gcn.OperandKindRegister:
		return r.LoadSgpr(operand.Index)

	case gcn.OperandKindInlineInt:
		n, _ := gcn.DecodeInlineInt(operand.Code)
		return r.values.BuildConstVector(gcn.ScalarI32, uint32(n), 0, 0, 0, gcn.RegisterMask(1))

	case gcn.OperandKindInlineFloat:
		f, _ := gcn.DecodeInlineFloat(operand.Code)
		bits := math.Float32bits(f)
		return r.values.BuildConstVector(gcn.ScalarF32, bits, 0, 0, 0, gcn.RegisterMask(1))

	case gcn.OperandKindLiteralConst:
		v := r.values.BuildConstVector(gcn.ScalarU32, literal, 0, 0, 0, gcn.RegisterMask(1))
		r.constTable[v.ID] = literalConstant{Type: gcn.ScalarU32, Value: literal}
		return v

	case gcn.OperandKindVCCLo, gcn.OperandKindVCCHi, gcn.OperandKindM0,
		gcn.OperandKindExecLo, gcn.OperandKindExecHi,
		gcn.OperandKindVCCZ, gcn.OperandKindExecZ, gcn.OperandKindSCC,
		gcn.OperandKindLdsDirect:
		tlog.SpanFromContext(ctx).Printw("reading special register as SSA value is not yet supported",
			"operand_kind", operand.Kind)
		return r.values.BuildConstVector(gcn.ScalarU32, 0, 0, 0, 0, gcn.RegisterMask(1))

	default:
		tlog.SpanFromContext(ctx).Printw("unrecognized scalar operand kind", "kind", operand.Kind)
		return r.values.BuildConstVector(gcn.ScalarU32, 0, 0, 0, 0, gcn.RegisterMask(1))
	}
}

// LoadVectorOperand decodes an 8-bit VSRC/VDST operand: always a VGPR
// read. LoadScalarOperand's register case reads an SGPR, so VGPR
// sources go through this entry point instead. It exists for
// instructions whose operand field is wide enough only to select a
// VGPR, never a scalar-space source.
func (r *RegisterFile) LoadVectorOperand(index uint32) gcn.Value {
	return r.LoadVgpr(index)
}

// StoreScalarOperand decodes a 7-bit SDST operand and stores src into
// its destination: an SGPR write, or one of VCC/M0 (tracked host-side
// only, via StoreVCC/StoreM0). EXEC lo/hi writes are not yet
// supported and are logged as a Warning, matching the original's empty
// switch arms.
func (r *RegisterFile) StoreScalarOperand(ctx context.Context, operand gcn.Operand, src gcn.Value) {
	switch operand.Kind {
	case gcn.OperandKindRegister:
		r.StoreSgpr(operand.Index, src, gcn.RegisterMask(1))
	case gcn.OperandKindVCCLo:
		r.StoreVCC(src, false)
	case gcn.OperandKindVCCHi:
		r.StoreVCC(src, true)
	case gcn.OperandKindM0:
		r.StoreM0(src)
	case gcn.OperandKindExecLo, gcn.OperandKindExecHi:
		tlog.SpanFromContext(ctx).Printw("EXEC write not yet supported", "operand_kind", operand.Kind)
	default:
		tlog.SpanFromContext(ctx).Printw("unrecognized scalar destination operand", "kind", operand.Kind)
	}
}

// StoreVectorOperand decodes an 8-bit VDST operand and writes src into
// the selected VGPR.
func (r *RegisterFile) StoreVectorOperand(dstIdx uint32, src gcn.Value, writeMask gcn.RegisterMask) {
	r.StoreVgpr(dstIdx, src, writeMask)
}

// StoreVCC records a write to VCC_LO (isVccHi false) or VCC_HI
// (isVccHi true) from srcReg, merging into the half of the tracked
// 64-bit value the write targets rather than replacing it outright —
// VCC_LO and VCC_HI are written by separate scalar instructions, so a
// vccz/vccnz test after both halves have been written needs to see
// both. Only compile-time-known constant writes are tracked; a
// register source clears the stored state since it can no longer be
// predicted without running the shader. VCC is never promoted to an
// SSA value.
func (r *RegisterFile) StoreVCC(srcReg gcn.Value, isVccHi bool) {
	literal, known := r.constTable[srcReg.ID]
	if !known {
		r.state.vcc = 0
		r.state.vccOK = false
		return
	}

	if isVccHi {
		r.state.vcc = (r.state.vcc & 0xFFFFFFFF) | uint64(literal.Value)<<32
	} else {
		r.state.vcc = (r.state.vcc &^ 0xFFFFFFFF) | uint64(literal.Value)
	}
	r.state.vccOK = true
}

// StoreM0 records a write to M0 from m0ValueReg, under the same
// constant-only tracking rule as StoreVCC.
func (r *RegisterFile) StoreM0(m0ValueReg gcn.Value) {
	literal, known := r.constTable[m0ValueReg.ID]
	if !known {
		r.state.m0 = 0
		r.state.m0OK = false
		return
	}

	r.state.m0 = literal.Value
	r.state.m0OK = true
}

// VCC returns the last compile-time-known value written to VCC and
// whether one is currently tracked.
func (r *RegisterFile) VCC() (value uint64, ok bool) {
	return r.state.vcc, r.state.vccOK
}

// M0 returns the last compile-time-known value written to M0 and
// whether one is currently tracked.
func (r *RegisterFile) M0() (value uint32, ok bool) {
	return r.state.m0, r.state.m0OK
}

// ErrUnwrittenRegister is the error identifying a load of an
// unwritten register for callers that would rather recover the panic
// from load() than let it propagate.
var ErrUnwrittenRegister = errors.New("load of unwritten register")
