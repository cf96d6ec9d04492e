//go:generate enumer -type HashFamily

package slhdsa

// HashFamily selects the tweakable-hash instantiation a ParameterSet uses.
type HashFamily uint8

const (
	// SHA2 instantiates every hash call with SHA-256 (n==16) or a mix of
	// SHA-256/SHA-512 (n==24, n==32), per FIPS 205 §10.2/§10.3.
	SHA2 HashFamily = iota

	// SHAKE instantiates every hash call with a single SHAKE256 call.
	SHAKE
)

// ParameterSet fixes the sizes and hash family of one SLH-DSA instance.
// Values are immutable and shared; obtain one via ParamsFromName.
type ParameterSet struct {
	Name   string // e.g. "SLH-DSA-SHA2-128s"
	Family HashFamily

	N   uint32 // security parameter / hash output length in bytes
	H   uint32 // total hypertree height
	D   uint32 // number of hypertree layers
	Hp  uint32 // height of each XMSS layer (H/D)
	A   uint32 // FORS: height of each of the k trees (2**A leaves each)
	K   uint32 // FORS: number of trees
	LgW uint32 // WOTS+ chain index bits; fixed at 4 (w=16) by FIPS 205
	M   uint32 // digest length in bytes, split into md/idx_tree/idx_leaf
}

func (p ParameterSet) String() string { return p.Name }

// W is the WOTS+ Winternitz parameter, 2**LgW.
func (p *ParameterSet) W() uint32 { return 1 << p.LgW }

// Len1 is the number of base-w digits needed to encode an n-byte message.
func (p *ParameterSet) Len1() uint32 {
	return (8*p.N + p.LgW - 1) / p.LgW
}

// Len2 is the number of base-w digits needed to encode the WOTS+ checksum
// of a Len1-digit message. FIPS 205 Appendix B: when lg_w=4 and 9<=n<=136
// (true of every registered parameter set here), len2 is always 3.
func (p *ParameterSet) Len2() uint32 { return 3 }

// Len is the total WOTS+ chain count: Len1 + Len2.
func (p *ParameterSet) Len() uint32 { return p.Len1() + p.Len2() }

// PkSize is the encoded public key length: PK.seed || PK.root.
func (p *ParameterSet) PkSize() int { return int(2 * p.N) }

// SkSize is the encoded private key length: SK.seed||SK.prf||PK.seed||PK.root.
func (p *ParameterSet) SkSize() int { return int(4 * p.N) }

// SigSize is the encoded signature length: R || SIG_FORS || SIG_HT.
func (p *ParameterSet) SigSize() int {
	forsSigSize := p.K * (p.A + 1) * p.N
	xmssSigSize := (p.Len() + p.Hp) * p.N
	htSigSize := p.D * xmssSigSize
	return int(p.N + forsSigSize + htSigSize)
}

// Entry in the registry of named SLH-DSA algorithms.
type regEntry struct {
	name   string
	params ParameterSet
}

var registry = []regEntry{
	{"SLH-DSA-SHA2-128s", ParameterSet{Name: "SLH-DSA-SHA2-128s", Family: SHA2,
		N: 16, H: 63, D: 7, Hp: 9, A: 12, K: 14, LgW: 4, M: 30}},
	{"SLH-DSA-SHA2-128f", ParameterSet{Name: "SLH-DSA-SHA2-128f", Family: SHA2,
		N: 16, H: 66, D: 22, Hp: 3, A: 6, K: 33, LgW: 4, M: 34}},
	{"SLH-DSA-SHA2-192s", ParameterSet{Name: "SLH-DSA-SHA2-192s", Family: SHA2,
		N: 24, H: 63, D: 7, Hp: 9, A: 14, K: 17, LgW: 4, M: 39}},
	{"SLH-DSA-SHA2-192f", ParameterSet{Name: "SLH-DSA-SHA2-192f", Family: SHA2,
		N: 24, H: 66, D: 22, Hp: 3, A: 8, K: 33, LgW: 4, M: 42}},
	{"SLH-DSA-SHA2-256s", ParameterSet{Name: "SLH-DSA-SHA2-256s", Family: SHA2,
		N: 32, H: 64, D: 8, Hp: 8, A: 14, K: 22, LgW: 4, M: 47}},
	{"SLH-DSA-SHA2-256f", ParameterSet{Name: "SLH-DSA-SHA2-256f", Family: SHA2,
		N: 32, H: 68, D: 17, Hp: 4, A: 9, K: 35, LgW: 4, M: 49}},

	{"SLH-DSA-SHAKE-128s", ParameterSet{Name: "SLH-DSA-SHAKE-128s", Family: SHAKE,
		N: 16, H: 63, D: 7, Hp: 9, A: 12, K: 14, LgW: 4, M: 30}},
	{"SLH-DSA-SHAKE-128f", ParameterSet{Name: "SLH-DSA-SHAKE-128f", Family: SHAKE,
		N: 16, H: 66, D: 22, Hp: 3, A: 6, K: 33, LgW: 4, M: 34}},
	{"SLH-DSA-SHAKE-192s", ParameterSet{Name: "SLH-DSA-SHAKE-192s", Family: SHAKE,
		N: 24, H: 63, D: 7, Hp: 9, A: 14, K: 17, LgW: 4, M: 39}},
	{"SLH-DSA-SHAKE-192f", ParameterSet{Name: "SLH-DSA-SHAKE-192f", Family: SHAKE,
		N: 24, H: 66, D: 22, Hp: 3, A: 8, K: 33, LgW: 4, M: 42}},
	{"SLH-DSA-SHAKE-256s", ParameterSet{Name: "SLH-DSA-SHAKE-256s", Family: SHAKE,
		N: 32, H: 64, D: 8, Hp: 8, A: 14, K: 22, LgW: 4, M: 47}},
	{"SLH-DSA-SHAKE-256f", ParameterSet{Name: "SLH-DSA-SHAKE-256f", Family: SHAKE,
		N: 32, H: 68, D: 17, Hp: 4, A: 9, K: 35, LgW: 4, M: 49}},
}

var registryNameLut map[string]*ParameterSet

func init() {
	registryNameLut = make(map[string]*ParameterSet, len(registry))
	for i := range registry {
		registryNameLut[registry[i].name] = &registry[i].params
	}
}

// ParamsFromName returns the named parameter set, or nil if unknown.
func ParamsFromName(name string) *ParameterSet {
	return registryNameLut[name]
}

// ParamsFromName2 is ParamsFromName, returning an Error instead of nil.
func ParamsFromName2(name string) (*ParameterSet, Error) {
	p := ParamsFromName(name)
	if p == nil {
		return nil, errorf("no such parameter set: %s", name)
	}
	return p, nil
}

// AllParameterSetNames lists every registered parameter set name, in the
// order FIPS 205 introduces them (SHA2 then SHAKE, ascending security).
func AllParameterSetNames() []string {
	names := make([]string, len(registry))
	for i, entry := range registry {
		names[i] = entry.name
	}
	return names
}
