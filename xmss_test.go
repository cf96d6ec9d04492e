package slhdsa

import "testing"

func TestXmssSignVerifyRecoversTreeRoot(t *testing.T) {
	for _, name := range []string{"SLH-DSA-SHA2-128f", "SLH-DSA-SHAKE-192s"} {
		ctx, pad := newTestCtx(t, name)
		p := ctx.params
		n := int(p.N)

		ctx.adrs.zero()
		ctx.adrs.setTreeAddress(0)
		wantRoot := make([]byte, n)
		xmssNode(ctx, pad, wantRoot, 0, p.Hp)

		m := make([]byte, n)
		for i := range m {
			m[i] = byte(i * 5)
		}

		var idx uint32 = 3
		ctx.adrs.zero()
		ctx.adrs.setTreeAddress(0)
		sigSize := (int(p.Len()) + int(p.Hp)) * n
		sig := make([]byte, sigSize)
		xmssSign(ctx, pad, sig, m, idx)

		gotRoot := make([]byte, n)
		ctx.adrs.zero()
		ctx.adrs.setTreeAddress(0)
		xmssPkFromSig(ctx, pad, gotRoot, idx, sig, m)

		for i := range wantRoot {
			if wantRoot[i] != gotRoot[i] {
				t.Fatalf("%s: xmssPkFromSig did not recover the tree root computed by xmssNode", name)
			}
		}
	}
}

func TestXmssSignWrongLeafIndexDiffers(t *testing.T) {
	ctx, pad := newTestCtx(t, "SLH-DSA-SHA2-128s")
	p := ctx.params
	n := int(p.N)

	m := make([]byte, n)
	for i := range m {
		m[i] = byte(i)
	}
	sigSize := (int(p.Len()) + int(p.Hp)) * n

	ctx.adrs.zero()
	ctx.adrs.setTreeAddress(0)
	sig := make([]byte, sigSize)
	xmssSign(ctx, pad, sig, m, 1)

	gotRoot := make([]byte, n)
	ctx.adrs.zero()
	ctx.adrs.setTreeAddress(0)
	xmssPkFromSig(ctx, pad, gotRoot, 1, sig, m)

	tamperedRoot := make([]byte, n)
	ctx.adrs.zero()
	ctx.adrs.setTreeAddress(0)
	xmssPkFromSig(ctx, pad, tamperedRoot, 2, sig, m)

	same := true
	for i := range gotRoot {
		if gotRoot[i] != tamperedRoot[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("recovering the root with the wrong leaf index should not agree with the correct one")
	}
}
