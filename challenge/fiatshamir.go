package challenge

import (
	"encoding/binary"

	"github.com/multiformats/go-multihash"
	"github.com/privacybydesign/sigma/algebra"
	"github.com/privacybydesign/sigma/cbor"
	"github.com/privacybydesign/sigma/internal/common"
)

// Hash selects the hash function of a Fiat-Shamir generator.
type Hash = common.HashAlgorithm

const (
	SHA256 = common.SHA256
	BLAKE3 = common.BLAKE3
)

// Extra bits hashed beyond the size of the challenge space, so that reducing the hash modulo q
// is statistically close to uniform.
const statisticalSlack = 128

type config struct {
	hash    Hash
	context []byte
}

// Option configures a Fiat-Shamir generator.
type Option func(*config)

// WithHash selects the transcript hash. The default is SHA256.
func WithHash(h Hash) Option {
	return func(c *config) { c.hash = h }
}

// WithContext binds all challenges to label, separating the proofs of different protocols.
func WithContext(label []byte) Option {
	return func(c *config) { c.context = append([]byte(nil), label...) }
}

// oracle hashes transcripts into ZMod(q).
type oracle struct {
	space  *algebra.ZMod
	hash   Hash
	prefix [][]byte
	bitlen uint
}

func newOracle(space *algebra.ZMod, opts []Option) *oracle {
	cfg := config{hash: SHA256}
	for _, opt := range opts {
		opt(&cfg)
	}
	mh, err := multihash.Sum(cfg.context, multihash.SHA2_256, -1)
	if err != nil {
		panic(err)
	}
	q := space.Modulus()
	return &oracle{
		space:  space,
		hash:   cfg.hash,
		prefix: [][]byte{[]byte(cfg.hash.String()), mh, q.Bytes()},
		bitlen: uint(q.BitLen()) + statisticalSlack,
	}
}

// derive returns the index-th value for the given inputs. The transcript is a deterministic CBOR
// array, so distinct input sequences never share an encoding.
func (o *oracle) derive(index uint64, inputs []algebra.Element) *algebra.ZModElement {
	var idx [8]byte
	binary.BigEndian.PutUint64(idx[:], index)
	parts := make([][]byte, 0, len(o.prefix)+1+len(inputs))
	parts = append(parts, o.prefix...)
	parts = append(parts, idx[:])
	for _, in := range inputs {
		parts = append(parts, in.Bytes())
	}
	n := common.GetHashNumber(o.hash, cbor.MustMarshal(parts), o.bitlen)
	return o.space.Reduce(n)
}

// FiatShamir replaces the verifier of a Sigma protocol by a hash of the public input and the
// commitment.
type FiatShamir struct {
	oracle *oracle
}

// NewFiatShamir returns a Sigma challenge generator with challenges in space.
func NewFiatShamir(space *algebra.ZMod, opts ...Option) *FiatShamir {
	return &FiatShamir{oracle: newOracle(space, opts)}
}

func (f *FiatShamir) ChallengeSpace() *algebra.ZMod { return f.oracle.space }

func (f *FiatShamir) Generate(public, commitment algebra.Element) *algebra.ZModElement {
	return f.oracle.derive(0, []algebra.Element{public, commitment})
}

// FiatShamirMulti derives k independent values in ZMod(q) from a hash of its inputs.
type FiatShamirMulti struct {
	oracle *oracle
	space  *algebra.ProductSpace
}

// NewFiatShamirMulti returns a generator of k values in space. It panics if k < 1.
func NewFiatShamirMulti(space *algebra.ZMod, k int, opts ...Option) *FiatShamirMulti {
	return &FiatShamirMulti{
		oracle: newOracle(space, opts),
		space:  algebra.NewPowerSpace(space, k),
	}
}

func (f *FiatShamirMulti) ChallengeSpace() *algebra.ProductSpace { return f.space }

func (f *FiatShamirMulti) Generate(inputs ...algebra.Element) *algebra.Tuple {
	k := f.space.Arity()
	elems := make([]algebra.Element, k)
	for i := range elems {
		// Index 0 is reserved for Sigma challenges.
		elems[i] = f.oracle.derive(uint64(i+1), inputs)
	}
	t, err := f.space.Element(elems...)
	if err != nil {
		panic(err)
	}
	return t
}

var (
	_ SigmaGenerator = (*FiatShamir)(nil)
	_ SigmaGenerator = (*Interactive)(nil)
	_ SigmaGenerator = (*Fixed)(nil)
	_ MultiGenerator = (*FiatShamirMulti)(nil)
)
