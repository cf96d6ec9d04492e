package katgen

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestGeneratorDeterministic(t *testing.T) {
	g1 := NewGenerator([]byte("seed-a"))
	g2 := NewGenerator([]byte("seed-a"))

	a := make([]byte, 64)
	b := make([]byte, 64)
	if err := g1.RandBytes(a); err != nil {
		t.Fatal(err)
	}
	if err := g2.RandBytes(b); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("two generators with the same seed diverged")
	}
}

func TestGeneratorIndependentOfChunking(t *testing.T) {
	g1 := NewGenerator([]byte("seed-b"))
	g2 := NewGenerator([]byte("seed-b"))

	whole := make([]byte, 32)
	if err := g1.RandBytes(whole); err != nil {
		t.Fatal(err)
	}

	half1 := make([]byte, 16)
	half2 := make([]byte, 16)
	if err := g2.RandBytes(half1); err != nil {
		t.Fatal(err)
	}
	if err := g2.RandBytes(half2); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(whole, append(half1, half2...)) {
		t.Error("stream is not chunk-boundary-independent")
	}
}

func TestGeneratorReset(t *testing.T) {
	g := NewGenerator([]byte("seed-c"))
	first := make([]byte, 16)
	if err := g.RandBytes(first); err != nil {
		t.Fatal(err)
	}
	g.Reset()
	second := make([]byte, 16)
	if err := g.RandBytes(second); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Error("Reset did not rewind the stream")
	}
}

func TestVectorFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vectors.bin")
	want := make([]byte, 256)
	g := NewGenerator([]byte("seed-d"))
	if err := g.RandBytes(want); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, want, 0600); err != nil {
		t.Fatal(err)
	}

	vf, err := OpenVectorFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer vf.Close()

	got := make([]byte, len(want))
	if err := vf.RandBytes(got); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, want) {
		t.Error("vector file round-trip mismatch")
	}

	if err := vf.RandBytes(make([]byte, 1)); err == nil {
		t.Error("expected an error once the vector file is exhausted")
	}
}
