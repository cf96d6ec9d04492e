// Package keyfile stores an SLH-DSA secret key on disk: a single
// advisory-locked file holding the algorithm name, the raw secret key
// bytes, and a trailing checksum that detects truncation or bit rot.
//
// SLH-DSA is stateless, so unlike the teacher container this package is
// adapted from, there is no signature sequence number and no cache of
// precomputed subtrees to maintain: opening a key is just locking the
// file, reading it whole, and checking the checksum.
package keyfile

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bwesterb/byteswriter"
	"github.com/cespare/xxhash"
	"github.com/hashicorp/go-multierror"
	"github.com/nightlyone/lockfile"

	"github.com/go-slhdsa/slhdsa"
)

// magic identifies the file format. Its last byte is a format version,
// which allows the layout to change without silently misparsing an older
// file.
var magic = [8]byte{'s', 'l', 'h', 'd', 's', 'a', 'k', 1}

const nameFieldSize = 32

// Container is a secret key file together with the advisory lock held on
// it for the lifetime of the Container. It is not safe for concurrent
// use from multiple goroutines.
type Container struct {
	path   string
	flock  lockfile.Lockfile
	file   *os.File
	closed bool
}

// Create makes a new key file at path holding sk, a secret key for
// parameter set p. The file and a path+".lock" lock file are created;
// Create fails if either already exists or is locked.
func Create(path string, p *slhdsa.ParameterSet, sk []byte) (*Container, error) {
	if len(sk) != p.SkSize() {
		return nil, fmt.Errorf("keyfile: secret key has wrong size for %s: got %d, want %d",
			p.Name, len(sk), p.SkSize())
	}
	if len(p.Name) >= nameFieldSize {
		return nil, fmt.Errorf("keyfile: parameter set name %q too long", p.Name)
	}

	ctr, err := lockAndOpen(path, os.O_RDWR|os.O_CREATE|os.O_EXCL)
	if err != nil {
		return nil, err
	}
	if err := ctr.writeLocked(p, sk); err != nil {
		ctr.Close()
		return nil, err
	}
	return ctr, nil
}

// Open locks and reads an existing key file written by Create, returning
// its parameter set and secret key alongside the open Container.
func Open(path string) (ctr *Container, p *slhdsa.ParameterSet, sk []byte, err error) {
	ctr, err = lockAndOpen(path, os.O_RDWR)
	if err != nil {
		return nil, nil, nil, err
	}

	buf, err := io.ReadAll(ctr.file)
	if err != nil {
		ctr.Close()
		return nil, nil, nil, fmt.Errorf("keyfile: reading %s: %w", ctr.path, err)
	}

	p, sk, err = decode(buf)
	if err != nil {
		ctr.Close()
		return nil, nil, nil, err
	}
	return ctr, p, sk, nil
}

func lockAndOpen(path string, flag int) (*Container, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("keyfile: %w", err)
	}

	fl, err := lockfile.New(absPath + ".lock")
	if err != nil {
		return nil, fmt.Errorf("keyfile: creating lockfile for %s: %w", absPath, err)
	}
	if err := fl.TryLock(); err != nil {
		return nil, fmt.Errorf("keyfile: %s is locked: %w", absPath, err)
	}

	f, err := os.OpenFile(absPath, flag, 0600)
	if err != nil {
		fl.Unlock()
		return nil, fmt.Errorf("keyfile: opening %s: %w", absPath, err)
	}

	return &Container{path: absPath, flock: fl, file: f}, nil
}

// writeLocked serializes p and sk into the backing file: magic, a
// zero-padded name field, a length-prefixed secret key, and an xxhash64
// checksum of everything before it. byteswriter.NewWriter lets
// binary.Write target the fixed in-memory buffer directly instead of a
// growable one, since the record's size is known up front.
func (ctr *Container) writeLocked(p *slhdsa.ParameterSet, sk []byte) error {
	recordSize := len(magic) + nameFieldSize + 2 + len(sk)
	buf := make([]byte, recordSize+8)

	w := byteswriter.NewWriter(buf)
	if _, err := w.Write(magic[:]); err != nil {
		return fmt.Errorf("keyfile: encoding header: %w", err)
	}
	var nameField [nameFieldSize]byte
	copy(nameField[:], p.Name)
	if _, err := w.Write(nameField[:]); err != nil {
		return fmt.Errorf("keyfile: encoding header: %w", err)
	}
	if err := binary.Write(w, binary.BigEndian, uint16(len(sk))); err != nil {
		return fmt.Errorf("keyfile: encoding header: %w", err)
	}
	if _, err := w.Write(sk); err != nil {
		return fmt.Errorf("keyfile: encoding secret key: %w", err)
	}

	checksum := xxhash.Sum64(buf[:recordSize])
	binary.BigEndian.PutUint64(buf[recordSize:], checksum)

	if _, err := ctr.file.WriteAt(buf, 0); err != nil {
		return fmt.Errorf("keyfile: writing %s: %w", ctr.path, err)
	}
	if err := ctr.file.Truncate(int64(len(buf))); err != nil {
		return fmt.Errorf("keyfile: truncating %s: %w", ctr.path, err)
	}
	return ctr.file.Sync()
}

func decode(buf []byte) (*slhdsa.ParameterSet, []byte, error) {
	minSize := len(magic) + nameFieldSize + 2 + 8
	if len(buf) < minSize {
		return nil, nil, fmt.Errorf("keyfile: file too short to be a key file")
	}

	body, trailer := buf[:len(buf)-8], buf[len(buf)-8:]
	if xxhash.Sum64(body) != binary.BigEndian.Uint64(trailer) {
		return nil, nil, fmt.Errorf("keyfile: checksum mismatch, file is corrupt")
	}

	off := 0
	if [8]byte(body[off:off+8]) != magic {
		return nil, nil, fmt.Errorf("keyfile: bad magic, not a key file")
	}
	off += 8

	nameField := body[off : off+nameFieldSize]
	off += nameFieldSize
	name := string(trimZero(nameField))

	skLen := int(binary.BigEndian.Uint16(body[off : off+2]))
	off += 2

	if off+skLen != len(body) {
		return nil, nil, fmt.Errorf("keyfile: secret key length field does not match file size")
	}
	sk := make([]byte, skLen)
	copy(sk, body[off:])

	p, perr := slhdsa.ParamsFromName2(name)
	if perr != nil {
		return nil, nil, fmt.Errorf("keyfile: %w", perr)
	}
	if skLen != p.SkSize() {
		return nil, nil, fmt.Errorf("keyfile: secret key has wrong size for %s: got %d, want %d",
			p.Name, skLen, p.SkSize())
	}
	return p, sk, nil
}

func trimZero(b []byte) []byte {
	for i, c := range b {
		if c == 0 {
			return b[:i]
		}
	}
	return b
}

// Path returns the absolute path of the key file.
func (ctr *Container) Path() string { return ctr.path }

// Close releases the file handle and the advisory lock. It is safe to
// call more than once.
func (ctr *Container) Close() error {
	if ctr.closed {
		return nil
	}
	ctr.closed = true

	var err error
	if ctr.file != nil {
		if err2 := ctr.file.Close(); err2 != nil {
			err = multierror.Append(err, fmt.Errorf("keyfile: closing %s: %w", ctr.path, err2))
		}
	}
	if err2 := ctr.flock.Unlock(); err2 != nil {
		err = multierror.Append(err, fmt.Errorf("keyfile: releasing lock on %s: %w", ctr.path, err2))
	}
	return err
}
