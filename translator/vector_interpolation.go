package translator

import (
	"context"

	"tlog.app/go/tlog"

	"github.com/gogpu/gcnspv/gcn"
)

// emitVectorInterpolation handles v_interp_p1/p2_f32, the pixel
// shader's barycentric-interpolant reads. Pixel shader stage setup is
// a stub in v1 (see stage_stub.go), so there is no interpolant input
// variable yet for these to read from — logged as a FIXME, same as
// data share.
func (t *Translator) emitVectorInterpolation(ctx context.Context, ins gcn.Instruction) {
	tlog.SpanFromContext(ctx).Printw("vector interpolation not yet supported, no SPIR-V emitted", "op", ins.Op)
}
