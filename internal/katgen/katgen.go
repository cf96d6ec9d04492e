// Package katgen stands in for the external, deterministic
// known-answer-test byte generator and the memory-mapped hardware
// accelerator named as out-of-scope collaborators: a Generator expands
// a seed into an arbitrarily long, reproducible byte stream for feeding
// slhdsa.Keygen/Sign in tests, and a VectorFile memory-maps a
// precomputed stream instead of holding it fully in memory. Neither is
// used on the signing or verification path.
package katgen

import (
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
	"golang.org/x/crypto/sha3"
)

// Generator is a slhdsa.RandBytes source that deterministically expands
// a seed via SHAKE256. Two Generators built from the same seed produce
// identical byte streams; this makes test failures reproducible without
// needing the caller to thread a fixed []byte buffer through every
// call site that wants randomness.
type Generator struct {
	seed  []byte
	shake sha3.ShakeHash
}

// NewGenerator returns a Generator whose output stream is determined
// entirely by seed.
func NewGenerator(seed []byte) *Generator {
	g := &Generator{seed: append([]byte(nil), seed...)}
	g.reset()
	return g
}

func (g *Generator) reset() {
	g.shake = sha3.NewShake256()
	g.shake.Write(g.seed)
}

// Reset rewinds the stream back to its first byte.
func (g *Generator) Reset() { g.reset() }

// RandBytes fills out with the next len(out) bytes of the stream. It
// satisfies slhdsa.RandBytes and always returns nil.
func (g *Generator) RandBytes(out []byte) error {
	if _, err := g.shake.Read(out); err != nil {
		return fmt.Errorf("katgen: squeezing %d bytes: %w", len(out), err)
	}
	return nil
}

// VectorFile memory-maps a precomputed byte stream (e.g. a large
// concatenation of known-answer seeds) read-only, so tests can draw
// from gigabyte-scale vector files without reading them fully into
// process memory.
type VectorFile struct {
	f   *os.File
	mm  mmap.MMap
	pos int64
}

// OpenVectorFile memory-maps the file at path for reading.
func OpenVectorFile(path string) (*VectorFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("katgen: opening %s: %w", path, err)
	}
	mm, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("katgen: mapping %s: %w", path, err)
	}
	return &VectorFile{f: f, mm: mm}, nil
}

// RandBytes fills out with the next len(out) bytes read sequentially
// from the mapped file, satisfying slhdsa.RandBytes. It returns an
// error once the file is exhausted rather than wrapping around.
func (v *VectorFile) RandBytes(out []byte) error {
	if v.pos+int64(len(out)) > int64(len(v.mm)) {
		return fmt.Errorf("katgen: vector file exhausted after %d bytes", v.pos)
	}
	n := copy(out, v.mm[v.pos:])
	v.pos += int64(n)
	return nil
}

// Close unmaps the file and releases the underlying descriptor.
func (v *VectorFile) Close() error {
	if err := v.mm.Unmap(); err != nil {
		return fmt.Errorf("katgen: unmapping: %w", err)
	}
	return v.f.Close()
}
