package slhdsa

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/require"
)

// deterministicRbg is a slhdsa.RandBytes fed by SHA-256 over a counter, used where the test needs reproducible "random" bytes without
// pulling in crypto/rand.
func deterministicRbg(seed byte) RandBytes {
	ctr := uint64(0)
	return func(out []byte) error {
		for i := range out {
			ctr++
			h := sha256.Sum256([]byte{seed, byte(ctr), byte(ctr >> 8), byte(ctr >> 16)})
			out[i] = h[0]
		}
		return nil
	}
}

// P1: every message signed under a freshly generated key verifies.
func TestSignVerifyRoundTrip(t *testing.T) {
	for _, name := range AllParameterSetNames() {
		name := name
		t.Run(name, func(t *testing.T) {
			p := ParamsFromName(name)
			require.NotNil(t, p)

			pk, sk, err := Keygen(p, deterministicRbg(1))
			require.Nil(t, err)
			require.Len(t, pk, p.PkSize())
			require.Len(t, sk, p.SkSize())

			m := []byte("the quick brown fox jumps over the lazy dog")
			sig, err := Sign(p, sk, m, true, nil)
			require.Nil(t, err)
			require.Len(t, sig, p.SigSize())

			ok, verr := Verify(p, pk, m, sig)
			require.Nil(t, verr)
			require.True(t, ok, "%s: genuine signature failed to verify", name)
		})
	}
}

// P2: a signature must not verify against a different message, a
// different public key, or with a single flipped bit.
func TestVerifyRejectsForgeries(t *testing.T) {
	p := ParamsFromName("SLH-DSA-SHAKE-128f")
	pk, sk, err := Keygen(p, deterministicRbg(2))
	require.Nil(t, err)

	m := []byte("payload one")
	sig, err := Sign(p, sk, m, true, nil)
	require.Nil(t, err)

	ok, verr := Verify(p, pk, []byte("payload two"), sig)
	require.Nil(t, verr)
	require.False(t, ok, "signature verified under a different message")

	otherPk, _, err := Keygen(p, deterministicRbg(3))
	require.Nil(t, err)
	ok, verr = Verify(p, otherPk, m, sig)
	require.Nil(t, verr)
	require.False(t, ok, "signature verified under a different public key")

	tampered := append([]byte(nil), sig...)
	tampered[len(tampered)/2] ^= 0x01
	ok, verr = Verify(p, pk, m, tampered)
	require.Nil(t, verr)
	require.False(t, ok, "a single flipped signature bit still verified")
}

// P3: Keygen/Sign produce exactly the sizes ParameterSet advertises.
func TestKeygenSignSizeInvariants(t *testing.T) {
	for _, name := range AllParameterSetNames() {
		p := ParamsFromName(name)
		pk, sk, err := Keygen(p, deterministicRbg(4))
		require.Nil(t, err)
		require.Len(t, pk, p.PkSize(), name)
		require.Len(t, sk, p.SkSize(), name)

		sig, err := Sign(p, sk, []byte("x"), true, nil)
		require.Nil(t, err)
		require.Len(t, sig, p.SigSize(), name)
	}
}

// P4: deterministic signing of the same (sk, m) twice yields the same
// signature; non-deterministic signing with different rbg output does not.
func TestSignDeterminism(t *testing.T) {
	p := ParamsFromName("SLH-DSA-SHA2-128s")
	_, sk, err := Keygen(p, deterministicRbg(5))
	require.Nil(t, err)
	m := []byte("repeatable")

	sig1, err := Sign(p, sk, m, true, nil)
	require.Nil(t, err)
	sig2, err := Sign(p, sk, m, true, nil)
	require.Nil(t, err)
	require.Equal(t, sig1, sig2, "deterministic signing was not repeatable")

	sigA, err := Sign(p, sk, m, false, deterministicRbg(6))
	require.Nil(t, err)
	sigB, err := Sign(p, sk, m, false, deterministicRbg(7))
	require.Nil(t, err)
	require.NotEqual(t, sigA, sigB, "non-deterministic signing with different randomizers collided")
}

// P5: keys generated from two different rbg streams are distinct.
func TestKeygenProducesDistinctKeys(t *testing.T) {
	p := ParamsFromName("SLH-DSA-SHA2-192s")
	pk1, _, err := Keygen(p, deterministicRbg(8))
	require.Nil(t, err)
	pk2, _, err := Keygen(p, deterministicRbg(9))
	require.Nil(t, err)
	require.NotEqual(t, pk1, pk2)
}

// S4: Verify reports an Error, not a false verdict, for a signature of
// the wrong length.
func TestVerifyWrongLengthIsError(t *testing.T) {
	p := ParamsFromName("SLH-DSA-SHA2-128s")
	pk, _, err := Keygen(p, deterministicRbg(10))
	require.Nil(t, err)

	_, verr := Verify(p, pk, []byte("m"), make([]byte, p.SigSize()-1))
	require.NotNil(t, verr, "expected an Error for a short signature")
}

// S5: Sign/Keygen propagate a failing RandBytes as a badRandomness-wrapped
// Error rather than panicking or silently using zero bytes.
func TestBadRandomnessPropagates(t *testing.T) {
	p := ParamsFromName("SLH-DSA-SHA2-128s")
	failing := func(out []byte) error { return errorf("disk on fire") }

	_, _, err := Keygen(p, failing)
	require.NotNil(t, err)

	_, sk, kerr := Keygen(p, deterministicRbg(11))
	require.Nil(t, kerr)
	_, serr := Sign(p, sk, []byte("m"), false, failing)
	require.NotNil(t, serr)
}

// S6: Verify on a hand-corrupted public key's root byte rejects every
// signature that was valid under the original key.
func TestCorruptedPublicKeyRootRejects(t *testing.T) {
	p := ParamsFromName("SLH-DSA-SHA2-128s")
	pk, sk, err := Keygen(p, deterministicRbg(12))
	require.Nil(t, err)

	m := []byte("m")
	sig, err := Sign(p, sk, m, true, nil)
	require.Nil(t, err)

	corrupted := append([]byte(nil), pk...)
	corrupted[len(corrupted)-1] ^= 0xff

	ok, verr := Verify(p, corrupted, m, sig)
	require.Nil(t, verr)
	require.False(t, ok)
}

// a full sign run through the tracing adapter touches more than one
// distinct ADRS, since domain separation across WOTS+/XMSS/FORS/hypertree
// relies on varying the address.
func TestSignUsesDistinctAddresses(t *testing.T) {
	p := ParamsFromName("SLH-DSA-SHA2-128f")
	_, sk, err := Keygen(p, deterministicRbg(13))
	require.Nil(t, err)

	ctx, cerr := newSigningContextFromSk(p, sk)
	require.Nil(t, cerr)
	trace := newTracingAdapter(ctx.hash)
	ctx.hash = trace
	pad := newScratchPad()

	n := int(p.N)
	sig := make([]byte, p.SigSize())
	r := sig[:n]
	optRand := make([]byte, n)
	copy(optRand, ctx.pkSeed)
	ctx.hash.prfMsg(ctx, pad, optRand, []byte("trace me"), r)

	digest := make([]byte, p.M)
	ctx.hash.hMsg(ctx, pad, r, []byte("trace me"), digest)
	slhDoSign(ctx, pad, sig[n:], digest)

	require.Greater(t, trace.distinctAdrsCount(), 1)
}
