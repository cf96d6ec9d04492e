package slhdsa

// forsNode computes the root of the Merkle subtree of FORS secret-key
// values covering the 2**z leaves starting at leaf index i<<z (FIPS 205
// Algorithm 14), using the same explicit stack/pointer iterative shape
// as xmssNode.
func forsNode(ctx *SigningContext, pad *scratchPad, out []byte, i, z uint32) {
	n := int(ctx.params.N)
	a := int(ctx.params.A)

	h := make([]byte, a*n)
	hSlot := func(idx int) []byte { return h[idx*n : (idx+1)*n] }
	p := -1

	i <<= z
	for j := uint32(0); j < (uint32(1) << z); j++ {
		ctx.adrs.setTreeIndex(i)

		var h0 []byte
		if p >= 0 {
			h0 = hSlot(p)
		} else {
			h0 = out
		}
		p++
		ctx.hash.forsHash(ctx, pad, 1, h0)

		for k := 0; (j>>uint(k))&1 == 1; k++ {
			ctx.adrs.setTreeHeight(uint32(k + 1))
			ctx.adrs.setTreeIndex(i >> uint(k+1))
			p--
			var dst []byte
			if p >= 1 {
				dst = hSlot(p - 1)
			} else {
				dst = out
			}
			ctx.hash.h(ctx, pad, dst, hSlot(p), dst)
		}
		i++
	}
}

// forsSign writes a FORS signature of the a*k-bit digest md into sf:
// k consecutive (secret value, a-node authentication path) pairs (FIPS
// 205 Algorithm 15). ctx.adrs must already carry the FORS_TREE type and
// key pair (tree) address.
func forsSign(ctx *SigningContext, pad *scratchPad, sf []byte, md []byte) {
	prm := ctx.params
	n := int(prm.N)
	a := prm.A
	k := int(prm.K)

	vi := make([]uint32, k)
	base2bInto(vi, md, a)

	for i := 0; i < k; i++ {
		ctx.adrs.setTreeIndex(uint32(i)<<a + vi[i])
		ctx.hash.forsHash(ctx, pad, 0, sf[:n])
		sf = sf[n:]

		for j := uint32(0); j < a; j++ {
			s := (vi[i] >> j) ^ 1
			forsNode(ctx, pad, sf[:n], (uint32(i)<<(a-j))+s, j)
			sf = sf[n:]
		}
	}
}

// forsPkFromSig recovers the FORS public key implied by sf and md into
// pk (FIPS 205 Algorithm 16). ctx.adrs must already carry the FORS_TREE
// type and key pair (tree) address; it is left positioned at FORS_ROOTS
// on return.
func forsPkFromSig(ctx *SigningContext, pad *scratchPad, pk []byte, sf []byte, md []byte) {
	prm := ctx.params
	n := int(prm.N)
	a := prm.A
	k := int(prm.K)

	vi := make([]uint32, k)
	base2bInto(vi, md, a)

	roots := make([]byte, k*n)
	for i := 0; i < k; i++ {
		ctx.adrs.setTreeHeight(0)
		idx := uint32(i)<<a + vi[i]
		ctx.adrs.setTreeIndex(idx)

		node := roots[i*n : (i+1)*n]
		ctx.hash.f(ctx, pad, sf[:n], node)
		sf = sf[n:]

		for j := uint32(0); j < a; j++ {
			ctx.adrs.setTreeHeight(j + 1)
			ctx.adrs.setTreeIndex(idx >> (j + 1))

			sibling := sf[:n]
			if (vi[i]>>j)&1 == 0 {
				ctx.hash.h(ctx, pad, node, sibling, node)
			} else {
				ctx.hash.h(ctx, pad, sibling, node, node)
			}
			sf = sf[n:]
		}
	}

	ctx.adrs.setTypeAndClearNotKp(AdrsForsRoots)
	ctx.hash.tl(ctx, pad, roots, pk)
}

// base2bInto fills out with the base-2**b digits of x, most significant
// first (FIPS 205 Algorithm 3), generalizing base16Into to FORS's
// parameter a instead of the fixed WOTS+ b=4.
func base2bInto(out []uint32, x []byte, b uint32) {
	l, t, j := uint32(0), uint32(0), 0
	mask := (uint32(1) << b) - 1
	for i := range out {
		for l < b {
			t = (t << 8) | uint32(x[j])
			j++
			l += 8
		}
		l -= b
		out[i] = (t >> l) & mask
	}
}
