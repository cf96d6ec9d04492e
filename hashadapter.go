package slhdsa

// HashAdapter bundles every ADRS-bound hash call an SLH-DSA operation
// needs, for one hash family (SHA2 or SHAKE). A SigningContext binds
// exactly one HashAdapter, selected by its ParameterSet.Family.
//
// Every method reads its ADRS from ctx.adrs (mutated in place by the
// caller before each call, per FIPS 205's "ADRS" convention) and writes
// its n-byte output (M bytes for hMsg) into out. Implementations must not retain out, x,
// m1, m2 or m beyond the call.
type HashAdapter interface {
	// mkCtx binds ctx's key material, precomputing whatever per-key
	// state the family benefits from (SHA2: the SHA-256/512 midstate
	// after absorbing PK.seed; SHAKE: nothing, see shakeadapter.go).
	mkCtx(ctx *SigningContext) error

	// prf computes PRF(PK.seed, SK.seed, ADRS).
	prf(ctx *SigningContext, pad *scratchPad, out []byte)

	// prfMsg computes PRFmsg(SK.prf, optRand, M).
	prfMsg(ctx *SigningContext, pad *scratchPad, optRand, msg []byte, out []byte)

	// hMsg computes Hmsg(R, PK.seed, PK.root, M).
	hMsg(ctx *SigningContext, pad *scratchPad, r, msg []byte, out []byte)

	// f computes F(PK.seed, ADRS, M1).
	f(ctx *SigningContext, pad *scratchPad, m1 []byte, out []byte)

	// h computes H(PK.seed, ADRS, M2) over the concatenation m1||m2.
	h(ctx *SigningContext, pad *scratchPad, m1, m2 []byte, out []byte)

	// tl computes T_l(PK.seed, ADRS, M) over a multiple-of-n-byte M.
	tl(ctx *SigningContext, pad *scratchPad, m []byte, out []byte)

	// chain computes chain(X, i, s, PK.seed, ADRS): s repeated calls of
	// F starting at hash address i, writing the result into out. A
	// chain of length s==0 is specified (FIPS 205 Algorithm 4) to
	// return X unchanged; this implementation copies X into out without
	// touching ctx.adrs, so callers must not rely on the hash-address
	// word surviving an s==0 call (see DESIGN.md).
	chain(ctx *SigningContext, pad *scratchPad, x []byte, i, s uint32, out []byte)

	// wotsChain computes the fused "PRF secret key, then chain s times"
	// step used by wots_PKgen (xmssNode's leaves) and wots_sign;
	// wots_PKFromSig uses chain instead. ctx.adrs must
	// already carry the WOTS key pair and chain addresses; wotsChain
	// retargets the type between WOTS_PRF and WOTS_HASH itself.
	wotsChain(ctx *SigningContext, pad *scratchPad, s uint32, out []byte)

	// forsHash computes the fused "PRF secret key, then F once if s==1"
	// step used by fors_SKgen/fors_node. ctx.adrs must already carry the
	// FORS tree index; forsHash retargets the type between FORS_PRF and
	// FORS_TREE itself.
	forsHash(ctx *SigningContext, pad *scratchPad, s uint32, out []byte)
}
