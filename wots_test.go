package slhdsa

import "testing"

func TestBase16IntoRoundTrip(t *testing.T) {
	x := []byte{0x12, 0x34, 0xab, 0xcd}
	out := make([]uint32, len(x)*2)
	base16Into(out, x)
	want := []uint32{0x1, 0x2, 0x3, 0x4, 0xa, 0xb, 0xc, 0xd}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("digit %d = %#x, want %#x", i, out[i], want[i])
		}
	}
}

func TestWotsCsumLength(t *testing.T) {
	for _, name := range AllParameterSetNames() {
		p := ParamsFromName(name)
		m := make([]byte, p.N)
		vm := wotsCsum(p, m)
		if uint32(len(vm)) != p.Len() {
			t.Fatalf("%s: wotsCsum returned %d digits, want %d", name, len(vm), p.Len())
		}
		for _, v := range vm {
			if v >= p.W() {
				t.Fatalf("%s: digit %d out of range for w=%d", name, v, p.W())
			}
		}
	}
}

func TestWotsSignPkFromSigAgree(t *testing.T) {
	for _, name := range []string{"SLH-DSA-SHA2-128s", "SLH-DSA-SHAKE-128f"} {
		p := ParamsFromName(name)
		sk := make([]byte, p.SkSize())
		for i := range sk {
			sk[i] = byte(i*7 + 1)
		}
		// the public key's root isn't known yet; it is irrelevant to this
		// test, which only checks wotsSign/wotsPkFromSig agree with each
		// other for some arbitrary message and key pair address.
		ctx, err := newSigningContextFromSk(p, sk)
		if err != nil {
			t.Fatalf("%s: newSigningContextFromSk: %v", name, err)
		}
		pad := newScratchPad()

		m := make([]byte, p.N)
		for i := range m {
			m[i] = byte(i * 13)
		}

		ctx.adrs.zero()
		ctx.adrs.setTypeAndClearNotKp(AdrsWotsHash)
		ctx.adrs.setKeyPairAddress(3)

		sig := make([]byte, int(p.Len())*int(p.N))
		wotsSign(ctx, pad, sig, m)

		ctx.adrs.zero()
		ctx.adrs.setTypeAndClearNotKp(AdrsWotsHash)
		ctx.adrs.setKeyPairAddress(3)

		pk1 := make([]byte, p.N)
		wotsPkFromSig(ctx, pad, pk1, sig, m)

		// Recomputing from the same signature and message must yield the
		// same public key every time.
		ctx.adrs.zero()
		ctx.adrs.setTypeAndClearNotKp(AdrsWotsHash)
		ctx.adrs.setKeyPairAddress(3)
		pk2 := make([]byte, p.N)
		wotsPkFromSig(ctx, pad, pk2, sig, m)

		for i := range pk1 {
			if pk1[i] != pk2[i] {
				t.Fatalf("%s: wotsPkFromSig is not deterministic", name)
			}
		}

		// The recovered key must equal the WOTS+ public key computed
		// directly, as the height-0 XMSS subtree at key pair address 3.
		ctx.adrs.zero()
		leaf := make([]byte, p.N)
		xmssNode(ctx, pad, leaf, 3, 0)
		for i := range pk1 {
			if pk1[i] != leaf[i] {
				t.Fatalf("%s: wotsPkFromSig did not recover the WOTS+ public key", name)
			}
		}
	}
}
