package slhdsa

import "github.com/cespare/xxhash"

// tracingAdapter wraps a HashAdapter and records the set of distinct
// 32-byte ADRS values observed across every call it forwards (prfMsg,
// hMsg and chain are forwarded without recording). Tests use it to count
// the distinct addresses a signing run or tree computation touches; it is
// never used on the production signing path.
type tracingAdapter struct {
	HashAdapter
	seen map[uint64]struct{}
}

func newTracingAdapter(inner HashAdapter) *tracingAdapter {
	return &tracingAdapter{HashAdapter: inner, seen: make(map[uint64]struct{})}
}

func (t *tracingAdapter) record(ctx *SigningContext) {
	t.seen[xxhash.Sum64(ctx.adrs.bytes())] = struct{}{}
}

func (t *tracingAdapter) distinctAdrsCount() int { return len(t.seen) }

func (t *tracingAdapter) prf(ctx *SigningContext, pad *scratchPad, out []byte) {
	t.record(ctx)
	t.HashAdapter.prf(ctx, pad, out)
}

func (t *tracingAdapter) prfMsg(ctx *SigningContext, pad *scratchPad, optRand, msg []byte, out []byte) {
	t.HashAdapter.prfMsg(ctx, pad, optRand, msg, out)
}

func (t *tracingAdapter) hMsg(ctx *SigningContext, pad *scratchPad, r, msg []byte, out []byte) {
	t.HashAdapter.hMsg(ctx, pad, r, msg, out)
}

func (t *tracingAdapter) f(ctx *SigningContext, pad *scratchPad, m1 []byte, out []byte) {
	t.record(ctx)
	t.HashAdapter.f(ctx, pad, m1, out)
}

func (t *tracingAdapter) h(ctx *SigningContext, pad *scratchPad, m1, m2 []byte, out []byte) {
	t.record(ctx)
	t.HashAdapter.h(ctx, pad, m1, m2, out)
}

func (t *tracingAdapter) tl(ctx *SigningContext, pad *scratchPad, m []byte, out []byte) {
	t.record(ctx)
	t.HashAdapter.tl(ctx, pad, m, out)
}

func (t *tracingAdapter) chain(ctx *SigningContext, pad *scratchPad, x []byte, i, s uint32, out []byte) {
	t.HashAdapter.chain(ctx, pad, x, i, s, out)
}

func (t *tracingAdapter) wotsChain(ctx *SigningContext, pad *scratchPad, s uint32, out []byte) {
	t.record(ctx)
	t.HashAdapter.wotsChain(ctx, pad, s, out)
}

func (t *tracingAdapter) forsHash(ctx *SigningContext, pad *scratchPad, s uint32, out []byte) {
	t.record(ctx)
	t.HashAdapter.forsHash(ctx, pad, s, out)
}
