package slhdsa

// xmssNode computes the root of the Merkle subtree of WOTS+ public keys
// covering the 2**z leaves starting at leaf index i<<z (FIPS 205
// Algorithm 9). It is iterative rather than recursive: instead of the
// reference implementation's raw signed counter indexing a fixed-size C
// array, this keeps an explicit stack (h) of at most Hp pending subtree
// roots and a plain stack pointer p, with p==-1 meaning "nothing pending
// yet, write straight to out" exactly as the reference does.
func xmssNode(ctx *SigningContext, pad *scratchPad, out []byte, i, z uint32) {
	prm := ctx.params
	n := int(prm.N)
	wlen := int(prm.Len())

	h := make([]byte, int(prm.Hp)*n)
	hSlot := func(idx int) []byte { return h[idx*n : (idx+1)*n] }
	p := -1

	tmp := make([]byte, wlen*n)
	i <<= z
	for j := uint32(0); j < (uint32(1) << z); j++ {
		ctx.adrs.setKeyPairAddress(i)

		for k := 0; k < wlen; k++ {
			ctx.adrs.setChainAddress(uint32(k))
			ctx.hash.wotsChain(ctx, pad, prm.W()-1, tmp[k*n:(k+1)*n])
		}
		ctx.adrs.setTypeAndClearNotKp(AdrsWotsPk)

		var h0 []byte
		if p >= 0 {
			h0 = hSlot(p)
		} else {
			h0 = out
		}
		p++
		ctx.hash.tl(ctx, pad, tmp, h0)

		for k := 0; (j>>uint(k))&1 == 1; k++ {
			ctx.adrs.setTypeAndClear(AdrsTree)
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

// xmssSign writes an XMSS signature of m at leaf idx into sx: a WOTS+
// signature (Len*N bytes) followed by an Hp*N-byte authentication path
// (FIPS 205 Algorithm 10). ctx.adrs is left positioned at the WOTS_HASH
// leaf on return.
func xmssSign(ctx *SigningContext, pad *scratchPad, sx []byte, m []byte, idx uint32) {
	prm := ctx.params
	n := int(prm.N)
	wotsSigSize := int(prm.Len()) * n

	auth := sx[wotsSigSize:]
	for j := uint32(0); j < prm.Hp; j++ {
		k := (idx >> j) ^ 1
		xmssNode(ctx, pad, auth[int(j)*n:int(j+1)*n], k, j)
	}

	ctx.adrs.setTypeAndClearNotKp(AdrsWotsHash)
	ctx.adrs.setKeyPairAddress(idx)
	wotsSign(ctx, pad, sx[:wotsSigSize], m)
}

// xmssPkFromSig recovers the XMSS root implied by sig and m at leaf idx
// into root (FIPS 205 Algorithm 11). ctx.adrs is left positioned at the
// TREE type on return.
func xmssPkFromSig(ctx *SigningContext, pad *scratchPad, root []byte, idx uint32, sig []byte, m []byte) {
	prm := ctx.params
	n := int(prm.N)
	wotsSigSize := int(prm.Len()) * n

	ctx.adrs.setTypeAndClearNotKp(AdrsWotsHash)
	ctx.adrs.setKeyPairAddress(idx)
	wotsPkFromSig(ctx, pad, root, sig[:wotsSigSize], m)

	ctx.adrs.setTypeAndClear(AdrsTree)
	auth := sig[wotsSigSize:]
	for k := uint32(0); k < prm.Hp; k++ {
		ctx.adrs.setTreeHeight(k + 1)
		ctx.adrs.setTreeIndex(idx >> (k + 1))

		sibling := auth[int(k)*n : int(k+1)*n]
		if (idx>>k)&1 == 0 {
			ctx.hash.h(ctx, pad, root, sibling, root)
		} else {
			ctx.hash.h(ctx, pad, sibling, root, root)
		}
	}
}
