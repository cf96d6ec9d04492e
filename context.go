package slhdsa

// SigningContext bundles one SLH-DSA operation's bound parameter set, key
// material and hash adapter. It is built fresh for every Keygen/Sign/Verify
// call (never reused across calls, never shared between goroutines) so
// that ADRS state from one operation can never leak into another.
type SigningContext struct {
	params *ParameterSet
	hash   HashAdapter

	skSeed []byte // n bytes, nil for a verify-only context
	skPrf  []byte // n bytes, nil for a verify-only context
	pkSeed []byte // n bytes
	pkRoot []byte // n bytes

	adrs address
}

// newSigningContextFromSk builds a context bound to a full private key,
// skSeed||skPrf||pkSeed||pkRoot, each p.N bytes.
func newSigningContextFromSk(p *ParameterSet, sk []byte) (*SigningContext, Error) {
	if len(sk) != p.SkSize() {
		return nil, errorf("private key has wrong size: got %d, want %d", len(sk), p.SkSize())
	}
	n := int(p.N)
	ctx := &SigningContext{
		params: p,
		skSeed: sk[0:n],
		skPrf:  sk[n : 2*n],
		pkSeed: sk[2*n : 3*n],
		pkRoot: sk[3*n : 4*n],
	}
	if err := ctx.bindHash(); err != nil {
		return nil, err
	}
	return ctx, nil
}

// newSigningContextFromPk builds a verify-only context bound to a public
// key, pkSeed||pkRoot, each p.N bytes.
func newSigningContextFromPk(p *ParameterSet, pk []byte) (*SigningContext, Error) {
	if len(pk) != p.PkSize() {
		return nil, errorf("public key has wrong size: got %d, want %d", len(pk), p.PkSize())
	}
	n := int(p.N)
	ctx := &SigningContext{
		params: p,
		pkSeed: pk[0:n],
		pkRoot: pk[n : 2*n],
	}
	if err := ctx.bindHash(); err != nil {
		return nil, err
	}
	return ctx, nil
}

func (ctx *SigningContext) bindHash() Error {
	switch ctx.params.Family {
	case SHA2:
		ctx.hash = newSha2Adapter()
	case SHAKE:
		ctx.hash = newShakeAdapter()
	default:
		return errorf("unknown hash family %d", ctx.params.Family)
	}
	if err := ctx.hash.mkCtx(ctx); err != nil {
		return wrapErrorf(err, "mk_ctx failed")
	}
	return nil
}
