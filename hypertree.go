package slhdsa

import "github.com/templexxx/xor"

// htSign writes a hypertree signature of m at (iTree, iLeaf) into sh: D
// consecutive XMSS signatures, layer 0 first (FIPS 205 Algorithm 12).
// m is overwritten in place with each layer's recovered XMSS root, which
// becomes the message the next layer signs.
func htSign(ctx *SigningContext, pad *scratchPad, sh []byte, m []byte, iTree uint64, iLeaf uint32) {
	prm := ctx.params
	n := int(prm.N)
	xmssSigSize := (int(prm.Len()) + int(prm.Hp)) * n

	ctx.adrs.zero()
	ctx.adrs.setTreeAddress(iTree)
	xmssSign(ctx, pad, sh, m, iLeaf)

	for j := uint32(1); j < prm.D; j++ {
		xmssPkFromSig(ctx, pad, m, iLeaf, sh, m)
		sh = sh[xmssSigSize:]

		iLeaf = uint32(iTree & ((uint64(1) << prm.Hp) - 1))
		iTree >>= prm.Hp
		ctx.adrs.setLayerAddress(j)
		ctx.adrs.setTreeAddress(iTree)
		xmssSign(ctx, pad, sh, m, iLeaf)
	}
}

// htVerify recomputes the hypertree root implied by sigHt and m at
// (iTree, iLeaf) and reports whether it equals ctx.pkRoot (FIPS 205
// Algorithm 13). The final comparison accumulates the byte-wise
// difference via templexxx/xor rather than branching on the first
// differing byte, so a forged signature's rejection takes the same
// number of XOR operations regardless of where the mismatch falls.
func htVerify(ctx *SigningContext, pad *scratchPad, m []byte, sigHt []byte, iTree uint64, iLeaf uint32) bool {
	prm := ctx.params
	n := int(prm.N)
	xmssSigSize := (int(prm.Len()) + int(prm.Hp)) * n

	node := make([]byte, n)

	ctx.adrs.zero()
	ctx.adrs.setTreeAddress(iTree)
	xmssPkFromSig(ctx, pad, node, iLeaf, sigHt, m)

	for j := uint32(1); j < prm.D; j++ {
		iLeaf = uint32(iTree & ((uint64(1) << prm.Hp) - 1))
		iTree >>= prm.Hp
		ctx.adrs.setLayerAddress(j)
		ctx.adrs.setTreeAddress(iTree)
		sigHt = sigHt[xmssSigSize:]
		xmssPkFromSig(ctx, pad, node, iLeaf, sigHt, node)
	}

	diff := make([]byte, n)
	xor.BytesSameLen(diff, node, ctx.pkRoot)
	var acc byte
	for _, b := range diff {
		acc |= b
	}
	return acc == 0
}
