package translator

import (
	"context"

	"tlog.app/go/tlog"

	"github.com/gogpu/gcnspv/gcn"
)

// emitDataShare handles ds_*/LDS and GDS traffic. Local/group data
// share has no v1 representation — no Workgroup-storage-class
// variables are declared for LDS — so every data-share instruction is
// a FIXME: logged and
// skipped, matching the original decoder's unimplemented-category
// behavior rather than guessing at a memory model.
func (t *Translator) emitDataShare(ctx context.Context, ins gcn.Instruction) {
	tlog.SpanFromContext(ctx).Printw("data share instruction not yet supported, no SPIR-V emitted", "op", ins.Op)
}
