package slhdsa

// base16Into fills out with the base-16 (4-bit) digits of x, most
// significant digit first — FIPS 205 Algorithm 3 (base_2b) specialized
// to b=4, the only b this module ever needs (LgW is fixed at 4).
func base16Into(out []uint32, x []byte) {
	l, t, j := 0, 0, 0
	for i := range out {
		for l < 4 {
			t = (t << 8) | int(x[j])
			j++
			l += 8
		}
		l -= 4
		out[i] = uint32(t>>uint(l)) & 0xF
	}
}

// wotsCsum computes the WOTS+ base-16 message digits followed by the
// base-16 digits of their checksum, shared by wotsSign and
// wotsPkFromSig (FIPS 205's wots_sign/wots_PKFromSig both start this
// way).
func wotsCsum(p *ParameterSet, m []byte) []uint32 {
	len1, len2 := p.Len1(), p.Len2()
	vm := make([]uint32, len1+len2)
	base16Into(vm[:len1], m)

	w := p.W()
	csum := uint32(0)
	for _, v := range vm[:len1] {
		csum += (w - 1) - v
	}
	csum <<= (8 - (len2*p.LgW)&7) & 7

	csumBytes := (len2*p.LgW + 7) / 8
	buf := make([]byte, csumBytes)
	toByteInto(uint64(csum), buf)
	base16Into(vm[len1:], buf)
	return vm
}

// wotsSign writes a WOTS+ signature of m into sig (p.Len()*p.N bytes).
// ctx.adrs must already carry the WOTS_HASH type and key pair address.
func wotsSign(ctx *SigningContext, pad *scratchPad, sig []byte, m []byte) {
	n := int(ctx.params.N)
	vm := wotsCsum(ctx.params, m)
	for i, v := range vm {
		ctx.adrs.setChainAddress(uint32(i))
		ctx.hash.wotsChain(ctx, pad, v, sig[i*n:(i+1)*n])
	}
}

// wotsPkFromSig recovers the WOTS+ public key implied by sig and m into
// pk (p.N bytes). ctx.adrs must already carry the WOTS_HASH type and key
// pair address; it is left positioned at WOTS_PK on return.
func wotsPkFromSig(ctx *SigningContext, pad *scratchPad, pk []byte, sig []byte, m []byte) {
	p := ctx.params
	n := int(p.N)
	w := p.W()
	vm := wotsCsum(p, m)

	tmp := make([]byte, len(vm)*n)
	for i, v := range vm {
		ctx.adrs.setChainAddress(uint32(i))
		ctx.hash.chain(ctx, pad, sig[i*n:(i+1)*n], v, (w-1)-v, tmp[i*n:(i+1)*n])
	}

	ctx.adrs.setTypeAndClearNotKp(AdrsWotsPk)
	ctx.hash.tl(ctx, pad, tmp, pk)
}
