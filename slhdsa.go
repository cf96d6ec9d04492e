// Package slhdsa implements the core of SLH-DSA (FIPS 205), a stateless
// hash-based digital signature scheme: key generation, signing and
// verification for all twelve standardized parameter sets, over both the
// SHA2 and SHAKE hash families.
package slhdsa

// RandBytes supplies cryptographically secure random bytes for key
// generation and (non-deterministic) signing. It must fill out entirely
// and return nil on success; any non-nil error aborts the calling
// operation, wrapped by badRandomness.
type RandBytes func(out []byte) error

// AlgID returns the FIPS 205 standard identifier for p, e.g.
// "SLH-DSA-SHA2-128s".
func (p *ParameterSet) AlgID() string { return p.Name }

// Keygen generates a new SLH-DSA key pair for the parameter set p, using
// rbg for all randomness (FIPS 205 Algorithm 18/21 slh_keygen).
//
// The returned sk is SK.seed||SK.prf||PK.seed||PK.root (p.SkSize() bytes)
// and pk is PK.seed||PK.root (p.PkSize() bytes).
func Keygen(p *ParameterSet, rbg RandBytes) (pk, sk []byte, err Error) {
	n := int(p.N)
	sk = make([]byte, p.SkSize())
	if rerr := rbg(sk[:3*n]); rerr != nil {
		return nil, nil, badRandomness(rerr)
	}

	pk = make([]byte, p.PkSize())
	copy(pk[:n], sk[2*n:3*n]) // PK.seed

	ctx, cerr := newSigningContextFromSk(p, sk)
	if cerr != nil {
		return nil, nil, cerr
	}

	pad := newScratchPad()
	ctx.adrs.zero()
	ctx.adrs.setLayerAddress(p.D - 1)
	pkRoot := make([]byte, n)
	xmssNode(ctx, pad, pkRoot, 0, p.Hp)

	copy(sk[3*n:4*n], pkRoot)
	copy(pk[n:2*n], pkRoot)
	return pk, sk, nil
}

// splitDigest recovers the FORS digest, hypertree's tree index and leaf
// index from a randomized message digest (FIPS 205's split_digest,
// shared by slh_sign and slh_verify).
func splitDigest(p *ParameterSet, digest []byte) (iTree uint64, iLeaf uint32) {
	mdSize := (p.K*p.A + 7) / 8
	iTreeSize := (p.H - p.Hp + 7) / 8
	iLeafSize := (p.Hp + 7) / 8

	iTree = toInt(digest[mdSize : mdSize+iTreeSize])
	iLeaf = uint32(toInt(digest[mdSize+iTreeSize : mdSize+iTreeSize+iLeafSize]))

	if p.H-p.Hp != 64 {
		iTree &= (uint64(1) << (p.H - p.Hp)) - 1
	}
	iLeaf &= (uint32(1) << p.Hp) - 1
	return
}

// slhDoSign writes SIG_FORS||SIG_HT for the randomized digest into sig
// (len(sig) == p.SigSize()-p.N), sharing the FORS-then-hypertree core
// between Sign and internal tests that drive a SigningContext directly
// (FIPS 205's slh_do_sign).
func slhDoSign(ctx *SigningContext, pad *scratchPad, sig []byte, digest []byte) {
	p := ctx.params
	n := int(p.N)
	mdSize := int((p.K*p.A + 7) / 8)
	forsSigSize := int(p.K) * (int(p.A) + 1) * n

	iTree, iLeaf := splitDigest(p, digest)

	ctx.adrs.zero()
	ctx.adrs.setTreeAddress(iTree)
	ctx.adrs.setTypeAndClearNotKp(AdrsForsTree)
	ctx.adrs.setKeyPairAddress(iLeaf)

	forsSign(ctx, pad, sig[:forsSigSize], digest[:mdSize])

	pkFors := make([]byte, n)
	forsPkFromSig(ctx, pad, pkFors, sig[:forsSigSize], digest[:mdSize])

	htSign(ctx, pad, sig[forsSigSize:], pkFors, iTree, iLeaf)
}

// Sign produces an SLH-DSA signature of m under sk (FIPS 205 Algorithm
// 19/22 slh_sign). When deterministic is false, rbg supplies the
// optional per-signature randomizer; when true, PK.seed stands in for it
// instead, matching the reference implementation's SLH_DETERMINISTIC
// build option and reproducing the same signature for the same (sk, m)
// pair every time.
func Sign(p *ParameterSet, sk, m []byte, deterministic bool, rbg RandBytes) (sig []byte, err Error) {
	ctx, cerr := newSigningContextFromSk(p, sk)
	if cerr != nil {
		return nil, cerr
	}
	n := int(p.N)
	pad := newScratchPad()

	sig = make([]byte, p.SigSize())
	r := sig[:n]

	optRand := make([]byte, n)
	if deterministic {
		copy(optRand, ctx.pkSeed)
	} else if rerr := rbg(optRand); rerr != nil {
		return nil, badRandomness(rerr)
	}
	ctx.hash.prfMsg(ctx, pad, optRand, m, r)

	digest := make([]byte, p.M)
	ctx.hash.hMsg(ctx, pad, r, m, digest)

	slhDoSign(ctx, pad, sig[n:], digest)
	log.Logf("slhdsa: signed %d-byte message with %s", len(m), p.Name)
	return sig, nil
}

// Verify reports whether sig is a valid SLH-DSA signature of m under pk
// (FIPS 205 Algorithm 20/23 slh_verify). A length mismatch is reported as
// an Error rather than a false verdict, since it can never correspond to
// a signature this package itself would have produced.
func Verify(p *ParameterSet, pk, m, sig []byte) (bool, Error) {
	if len(sig) != p.SigSize() {
		return false, errorf("signature has wrong size: got %d, want %d", len(sig), p.SigSize())
	}
	ctx, cerr := newSigningContextFromPk(p, pk)
	if cerr != nil {
		return false, cerr
	}
	n := int(p.N)
	pad := newScratchPad()

	r := sig[:n]
	digest := make([]byte, p.M)
	ctx.hash.hMsg(ctx, pad, r, m, digest)

	mdSize := int((p.K*p.A + 7) / 8)
	forsSigSize := int(p.K) * (int(p.A) + 1) * n
	sigFors := sig[n : n+forsSigSize]
	sigHt := sig[n+forsSigSize:]

	iTree, iLeaf := splitDigest(p, digest)
	ctx.adrs.zero()
	ctx.adrs.setTreeAddress(iTree)
	ctx.adrs.setTypeAndClearNotKp(AdrsForsTree)
	ctx.adrs.setKeyPairAddress(iLeaf)

	pkFors := make([]byte, n)
	forsPkFromSig(ctx, pad, pkFors, sigFors, digest[:mdSize])

	ok := htVerify(ctx, pad, pkFors, sigHt, iTree, iLeaf)
	log.Logf("slhdsa: verified %d-byte message with %s: %v", len(m), p.Name, ok)
	return ok, nil
}
