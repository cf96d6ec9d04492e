package slhdsa

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"encoding"
	"hash"
)

// sha2Adapter is the SHA2-family HashAdapter (FIPS 205 §10.2, §10.3).
//
// F, PRF and chain are always built on SHA-256, even at n=24/32: their
// inputs are always exactly n bytes plus a fixed-size ADRS prefix, so the
// extra block SHA-512 would cost buys nothing. PRFmsg, Hmsg, H and T_l
// switch to SHA-512 once n>16, since their inputs can be wider. This mirrors
// slh_sha2.c's parameter tables, where h_f/prf/chain are always the
// sha256_* functions and h_msg/h_h/h_t switch with n.
//
// sha256State/sha512State are the SHA-256/512 state after absorbing
// PK.seed padded to the block size (64/128 bytes); every ADRS-bound call
// clones this state (via the digest's encoding.BinaryMarshaler) instead
// of re-absorbing PK.seed on every call. The reference implementation
// goes further and mutates the raw compression state word-by-word inside
// chain(); crypto/sha256 does not expose its compression function, so
// this adapter pays one extra full hash.Sum per chain step instead.
type sha2Adapter struct {
	n           int
	sha256State hash.Hash
	sha512State hash.Hash // nil when n==16
}

func newSha2Adapter() *sha2Adapter { return &sha2Adapter{} }

func (a *sha2Adapter) mkCtx(ctx *SigningContext) error {
	n := int(ctx.params.N)
	a.n = n

	h := sha256.New()
	h.Write(ctx.pkSeed)
	h.Write(make([]byte, 64-n))
	a.sha256State = h

	if n > 16 {
		h512 := sha512.New()
		h512.Write(ctx.pkSeed)
		h512.Write(make([]byte, 128-n))
		a.sha512State = h512
	}
	return nil
}

func cloneSha256(src hash.Hash) hash.Hash {
	state, err := src.(encoding.BinaryMarshaler).MarshalBinary()
	if err != nil {
		panic("slhdsa: sha256 state clone: " + err.Error())
	}
	dst := sha256.New()
	if err := dst.(encoding.BinaryUnmarshaler).UnmarshalBinary(state); err != nil {
		panic("slhdsa: sha256 state clone: " + err.Error())
	}
	return dst
}

func cloneSha512(src hash.Hash) hash.Hash {
	state, err := src.(encoding.BinaryMarshaler).MarshalBinary()
	if err != nil {
		panic("slhdsa: sha512 state clone: " + err.Error())
	}
	dst := sha512.New()
	if err := dst.(encoding.BinaryUnmarshaler).UnmarshalBinary(state); err != nil {
		panic("slhdsa: sha512 state clone: " + err.Error())
	}
	return dst
}

// tlSha256 computes Trunc_n(SHA-256(PK.seed || pad || ADRSc || m)).
func (a *sha2Adapter) tlSha256(ctx *SigningContext, m []byte, out []byte) {
	h := cloneSha256(a.sha256State)
	h.Write(ctx.adrs.compressedBytes())
	h.Write(m)
	sum := h.Sum(nil)
	copy(out, sum[:a.n])
}

// tlSha512 computes Trunc_n(SHA-512(PK.seed || pad || ADRSc || m)).
func (a *sha2Adapter) tlSha512(ctx *SigningContext, m []byte, out []byte) {
	h := cloneSha512(a.sha512State)
	h.Write(ctx.adrs.compressedBytes())
	h.Write(m)
	sum := h.Sum(nil)
	copy(out, sum[:a.n])
}

func (a *sha2Adapter) prf(ctx *SigningContext, pad *scratchPad, out []byte) {
	h := cloneSha256(a.sha256State)
	h.Write(ctx.adrs.compressedBytes())
	h.Write(ctx.skSeed)
	sum := h.Sum(nil)
	copy(out, sum[:a.n])
}

func (a *sha2Adapter) prfMsg(ctx *SigningContext, pad *scratchPad, optRand, msg []byte, out []byte) {
	var mac hash.Hash
	if a.n == 16 {
		mac = hmac.New(sha256.New, ctx.skPrf)
	} else {
		mac = hmac.New(sha512.New, ctx.skPrf)
	}
	mac.Write(optRand)
	mac.Write(msg)
	sum := mac.Sum(nil)
	copy(out, sum[:a.n])
}

// mgf1 is MGF1 built from repeated calls of newHash over an incrementing
// 4-byte big-endian counter appended to seed, per slh_sha2.c's h_msg.
func mgf1(newHash func() hash.Hash, blockSize int, seed []byte, out []byte) {
	ctr := make([]byte, 4)
	for i := 0; i < len(out); i += blockSize {
		toByteInto(uint64(i/blockSize), ctr)
		h := newHash()
		h.Write(seed)
		h.Write(ctr)
		sum := h.Sum(nil)
		n := blockSize
		if len(out)-i < n {
			n = len(out) - i
		}
		copy(out[i:i+n], sum[:n])
	}
}

func (a *sha2Adapter) hMsg(ctx *SigningContext, pad *scratchPad, r, msg []byte, out []byte) {
	n := a.n
	seed := make([]byte, 2*n, 2*n+64)
	copy(seed, r)
	copy(seed[n:], ctx.pkSeed)
	if n == 16 {
		h := sha256.New()
		h.Write(r)
		h.Write(ctx.pkSeed)
		h.Write(ctx.pkRoot)
		h.Write(msg)
		seed = h.Sum(seed)
		mgf1(sha256.New, sha256.Size, seed, out)
	} else {
		h := sha512.New()
		h.Write(r)
		h.Write(ctx.pkSeed)
		h.Write(ctx.pkRoot)
		h.Write(msg)
		seed = h.Sum(seed)
		mgf1(sha512.New, sha512.Size, seed, out)
	}
}

func (a *sha2Adapter) f(ctx *SigningContext, pad *scratchPad, m1 []byte, out []byte) {
	a.tlSha256(ctx, m1, out)
}

func (a *sha2Adapter) h(ctx *SigningContext, pad *scratchPad, m1, m2 []byte, out []byte) {
	n := a.n
	m := pad.bytes(2 * n)[:2*n]
	copy(m[:n], m1)
	copy(m[n:], m2)
	if n == 16 {
		a.tlSha256(ctx, m, out)
	} else {
		a.tlSha512(ctx, m, out)
	}
}

func (a *sha2Adapter) tl(ctx *SigningContext, pad *scratchPad, m []byte, out []byte) {
	if a.n == 16 {
		a.tlSha256(ctx, m, out)
	} else {
		a.tlSha512(ctx, m, out)
	}
}

func (a *sha2Adapter) chain(ctx *SigningContext, pad *scratchPad, x []byte, i, s uint32, out []byte) {
	n := a.n
	if s == 0 {
		copy(out, x)
		return
	}
	buf := pad.bytes(2 * n)[:2*n]
	cur, nxt := buf[:n], buf[n:]
	copy(cur, x)
	for j := uint32(0); j < s; j++ {
		ctx.adrs.setHashAddress(i + j)
		a.f(ctx, pad, cur, nxt)
		cur, nxt = nxt, cur
	}
	copy(out, cur)
}

func (a *sha2Adapter) wotsChain(ctx *SigningContext, pad *scratchPad, s uint32, out []byte) {
	ctx.adrs.setType(AdrsWotsPrf)
	ctx.adrs.setHashAddress(0)
	a.prf(ctx, pad, out)

	ctx.adrs.setType(AdrsWotsHash)
	a.chain(ctx, pad, out, 0, s, out)
}

func (a *sha2Adapter) forsHash(ctx *SigningContext, pad *scratchPad, s uint32, out []byte) {
	ctx.adrs.setType(AdrsForsPrf)
	ctx.adrs.setTreeHeight(0)
	a.prf(ctx, pad, out)

	if s == 1 {
		ctx.adrs.setType(AdrsForsTree)
		a.f(ctx, pad, out, out)
	}
}
