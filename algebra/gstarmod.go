package algebra

import (
	"context"
	"fmt"
	"io"

	"github.com/bwesterb/go-exptable"
	"github.com/go-errors/errors"
	"github.com/privacybydesign/sigma/big"
	"github.com/privacybydesign/sigma/internal/common"
	"github.com/privacybydesign/sigma/safeprime"
)

// Window size of the precomputed generator table.
const expTableWindow = 7

var (
	bigOne  = big.NewInt(1)
	bigFour = big.NewInt(4)
)

// GStarMod is the subgroup of prime order q of the multiplicative group Z_p^*, generated by g.
type GStarMod struct {
	p, q, g *big.Int
	safe    bool // p = 2q+1, so the subgroup consists of the quadratic residues
	byteLen int

	gTable exptable.Table
	pMod   common.FastMod
}

// GStarModElement is an element of a GStarMod group, an integer in [1, p).
type GStarModElement struct {
	space *GStarMod
	v     *big.Int
}

// NewGStarMod returns the subgroup of order q of Z_p^*. Both p and q must be prime, q must divide
// p-1 and g must be an element of order q.
func NewGStarMod(p, q, g *big.Int) (*GStarMod, error) {
	if p == nil || q == nil || g == nil {
		return nil, ErrInvalidGroupParameters
	}
	if !p.ProbablyPrime(40) {
		return nil, errors.WrapPrefix(ErrInvalidGroupParameters, "modulus is not prime", 0)
	}
	if !q.ProbablyPrime(40) {
		return nil, errors.WrapPrefix(ErrInvalidGroupParameters, "order is not prime", 0)
	}
	pm1 := new(big.Int).Sub(p, bigOne)
	if new(big.Int).Mod(pm1, q).Sign() != 0 {
		return nil, errors.WrapPrefix(ErrInvalidGroupParameters, "order does not divide p-1", 0)
	}
	if g.Cmp(bigOne) <= 0 || g.Cmp(p) >= 0 {
		return nil, errors.WrapPrefix(ErrInvalidGroupParameters, "generator out of range", 0)
	}
	if new(big.Int).Exp(g, q, p).Cmp(bigOne) != 0 {
		return nil, errors.WrapPrefix(ErrInvalidGroupParameters, "generator does not have order q", 0)
	}

	group := &GStarMod{
		p:       new(big.Int).Set(p),
		q:       new(big.Int).Set(q),
		g:       new(big.Int).Set(g),
		byteLen: (p.BitLen() + 7) / 8,
	}
	group.safe = new(big.Int).Rsh(p, 1).Cmp(q) == 0
	group.gTable.Compute(group.g.Go(), group.p.Go(), expTableWindow)
	group.pMod.Set(group.p)
	return group, nil
}

// NewGStarModSafePrime returns the quadratic residues modulo the safe prime p, generated by 4.
func NewGStarModSafePrime(p *big.Int) (*GStarMod, error) {
	if p == nil || !safeprime.ProbablySafePrime(p, 40) {
		return nil, errors.WrapPrefix(ErrInvalidGroupParameters, "modulus is not a safe prime", 0)
	}
	return NewGStarMod(p, new(big.Int).Rsh(p, 1), bigFour)
}

// GenerateGStarModSafePrime generates a fresh safe prime of the given bit size and returns its
// group of quadratic residues.
func GenerateGStarModSafePrime(ctx context.Context, rnd io.Reader, bits int) (*GStarMod, error) {
	p, err := safeprime.Generate(ctx, rnd, bits)
	if err != nil {
		return nil, err
	}
	return NewGStarModSafePrime(p)
}

// Modulus returns p.
func (z *GStarMod) Modulus() *big.Int { return new(big.Int).Set(z.p) }

// Generator returns g.
func (z *GStarMod) Generator() *GStarModElement {
	return &GStarModElement{space: z, v: new(big.Int).Set(z.g)}
}

// Element returns v as a member of the group, checking that it lies in the subgroup.
func (z *GStarMod) Element(v *big.Int) (*GStarModElement, error) {
	if v == nil || v.Cmp(bigOne) < 0 || v.Cmp(z.p) >= 0 {
		return nil, errors.WrapPrefix(ErrNotAMember, fmt.Sprintf("%v out of range for %v", v, z), 0)
	}
	var member bool
	if z.safe {
		member = common.LegendreSymbol(v, z.p) == 1
	} else {
		member = new(big.Int).Exp(v, z.q, z.p).Cmp(bigOne) == 0
	}
	if !member {
		return nil, errors.WrapPrefix(ErrNotAMember, fmt.Sprintf("%v not in subgroup of %v", v, z), 0)
	}
	return &GStarModElement{space: z, v: new(big.Int).Set(v)}, nil
}

func (z *GStarMod) Contains(e Element) bool {
	x, ok := e.(*GStarModElement)
	return ok && x != nil && z.Equal(x.space)
}

func (z *GStarMod) RandomElement(rnd io.Reader) (Element, error) {
	r, err := big.RandInt(rnd, z.q)
	if err != nil {
		return nil, errors.WrapPrefix(err, "failed to sample GStarMod element", 0)
	}
	return &GStarModElement{space: z, v: z.exp(z.g, r)}, nil
}

func (z *GStarMod) Order() *big.Int        { return new(big.Int).Set(z.q) }
func (z *GStarMod) MinimalOrder() *big.Int { return new(big.Int).Set(z.q) }
func (z *GStarMod) Identity() Element      { return &GStarModElement{space: z, v: big.NewInt(1)} }

func (z *GStarMod) Equal(other Space) bool {
	o, ok := other.(*GStarMod)
	if !ok || o == nil {
		return false
	}
	return o == z || (o.p.Cmp(z.p) == 0 && o.q.Cmp(z.q) == 0 && o.g.Cmp(z.g) == 0)
}

func (z *GStarMod) String() string {
	return fmt.Sprintf("GStarMod(p=%v, q=%v)", z.p, z.q)
}

func (z *GStarMod) cast(e Element) *GStarModElement {
	mustContain(z, e)
	return e.(*GStarModElement)
}

// exp computes base^k mod p for any integer k, using the precomputed table when base is g.
func (z *GStarMod) exp(base, k *big.Int) *big.Int {
	e := new(big.Int).Mod(k, z.q)
	ret := new(big.Int)
	if e.Sign() == 0 {
		return ret.SetInt64(1)
	}
	if base.Cmp(z.g) == 0 {
		z.gTable.Exp(ret.Go(), e.Go())
		return ret
	}
	return ret.Exp(base, e, z.p)
}

// Value returns the integer representative of x.
func (x *GStarModElement) Value() *big.Int {
	return new(big.Int).Set(x.v)
}

func (x *GStarModElement) Space() Space {
	return x.space
}

func (x *GStarModElement) Apply(other Element) Element {
	o := x.space.cast(other)
	return &GStarModElement{space: x.space, v: x.space.pMod.MulMod(new(big.Int), x.v, o.v)}
}

func (x *GStarModElement) SelfApply(amount *big.Int) Element {
	return &GStarModElement{space: x.space, v: x.space.exp(x.v, amount)}
}

func (x *GStarModElement) Invert() Element {
	inv, ok := common.ModInverse(x.v, x.space.p)
	if !ok {
		// Every element of a group modulo a prime is invertible.
		panic(errors.Errorf("algebra: %v has no inverse modulo %v", x.v, x.space.p))
	}
	return &GStarModElement{space: x.space, v: inv}
}

func (x *GStarModElement) Equivalent(other Element) bool {
	o, ok := other.(*GStarModElement)
	return ok && o != nil && x.space.Equal(o.space) && x.v.Cmp(o.v) == 0
}

func (x *GStarModElement) Bytes() []byte {
	return x.v.FillBytes(make([]byte, x.space.byteLen))
}

func (x *GStarModElement) String() string {
	return x.v.String()
}
