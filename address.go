package slhdsa

// ADRS type field values, FIPS 205 §4.2.
const (
	AdrsWotsHash  uint32 = 0
	AdrsWotsPk    uint32 = 1
	AdrsTree      uint32 = 2
	AdrsForsTree  uint32 = 3
	AdrsForsRoots uint32 = 4
	AdrsWotsPrf   uint32 = 5
	AdrsForsPrf   uint32 = 6
)

// address is the 32-byte FIPS 205 ADRS: layer address (word 0), tree
// address (words 1-3, of which only the low 8 bytes, words 2-3, are ever
// nonzero at these parameter sizes), type (word 4), and three
// type-dependent words (5-7) whose meaning is given by the named setters
// below rather than by the field layout itself.
type address [8]uint32

func (addr *address) zero() { *addr = address{} }

func (addr *address) setLayerAddress(layer uint32) {
	addr[0] = layer
}

func (addr *address) setTreeAddress(tree uint64) {
	addr[1] = 0
	addr[2] = uint32(tree >> 32)
	addr[3] = uint32(tree)
}

func (addr *address) setType(typ uint32) {
	addr[4] = typ
}

// setTypeAndClear sets the type and zeroes all three type-dependent words,
// used when retargeting ADRS at a type with no key pair address (TREE).
func (addr *address) setTypeAndClear(typ uint32) {
	addr[4] = typ
	addr[5], addr[6], addr[7] = 0, 0, 0
}

// setTypeAndClearNotKp sets the type and zeroes words 6-7, preserving
// word 5 (the key pair address) across the transition.
func (addr *address) setTypeAndClearNotKp(typ uint32) {
	addr[4] = typ
	addr[6], addr[7] = 0, 0
}

func (addr *address) setKeyPairAddress(kp uint32) { addr[5] = kp }

// setChainAddress and setHashAddress are the WOTS_HASH/WOTS_PRF reading of
// words 6 and 7.
func (addr *address) setChainAddress(chain uint32) { addr[6] = chain }
func (addr *address) setHashAddress(hash uint32)   { addr[7] = hash }

// setTreeHeight and setTreeIndex are the TREE/FORS_TREE/FORS_PRF reading
// of the same two words.
func (addr *address) setTreeHeight(height uint32) { addr[6] = height }
func (addr *address) setTreeIndex(index uint32)   { addr[7] = index }

// bytes returns the 32-byte big-endian serialization of addr.
func (addr *address) bytes() []byte {
	buf := make([]byte, 32)
	addr.writeInto(buf)
	return buf
}

func (addr *address) writeInto(buf []byte) {
	for i := 0; i < 8; i++ {
		toByteInto(uint64(addr[i]), buf[i*4:(i+1)*4])
	}
}

// compressedBytes returns the 22-byte ADRSc used by the SHA2 family:
// layer address compressed to 1 byte, tree address compressed to its low
// 8 bytes, type compressed to 1 byte, followed by the three
// type-dependent words verbatim (12 bytes) — 1+8+1+12 = 22.
func (addr *address) compressedBytes() []byte {
	buf := make([]byte, 22)
	addr.writeCompressedInto(buf)
	return buf
}

func (addr *address) writeCompressedInto(buf []byte) {
	buf[0] = byte(addr[0])
	toByteInto(uint64(addr[2])<<32|uint64(addr[3]), buf[1:9])
	buf[9] = byte(addr[4])
	toByteInto(uint64(addr[5]), buf[10:14])
	toByteInto(uint64(addr[6]), buf[14:18])
	toByteInto(uint64(addr[7]), buf[18:22])
}
