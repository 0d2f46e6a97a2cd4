package algebra

import (
	"crypto/elliptic"
	"fmt"
	"io"

	"github.com/go-errors/errors"
	"github.com/privacybydesign/sigma/big"
	"go.dedis.ch/kyber/v3"
	"go.dedis.ch/kyber/v3/group/nist"
)

// ECGroup is the group of points of an elliptic curve of prime order, written additively by
// kyber but exposed through Apply like every other space.
type ECGroup struct {
	group kyber.Group
	n     *big.Int
}

// ECElement is a point of an ECGroup.
type ECElement struct {
	space *ECGroup
	p     kyber.Point
}

// NewP256 returns the NIST P-256 curve group.
func NewP256() *ECGroup {
	return &ECGroup{
		group: nist.NewBlakeSHA256P256(),
		n:     new(big.Int).Set(big.Convert(elliptic.P256().Params().N)),
	}
}

// Generator returns the standard base point.
func (c *ECGroup) Generator() *ECElement {
	return &ECElement{space: c, p: c.group.Point().Base()}
}

// Element decodes a marshaled point.
func (c *ECGroup) Element(data []byte) (*ECElement, error) {
	p := c.group.Point()
	if err := p.UnmarshalBinary(data); err != nil {
		return nil, errors.WrapPrefix(ErrNotAMember, err.Error(), 0)
	}
	return &ECElement{space: c, p: p}, nil
}

// scalar converts k, reduced modulo the group order, into a kyber scalar.
func (c *ECGroup) scalar(k *big.Int) kyber.Scalar {
	r := new(big.Int).Mod(k, c.n)
	return c.group.Scalar().SetBytes(r.Bytes())
}

func (c *ECGroup) Contains(e Element) bool {
	x, ok := e.(*ECElement)
	return ok && x != nil && c.Equal(x.space)
}

func (c *ECGroup) RandomElement(rnd io.Reader) (Element, error) {
	r, err := big.RandInt(rnd, c.n)
	if err != nil {
		return nil, errors.WrapPrefix(err, "failed to sample curve point", 0)
	}
	return &ECElement{space: c, p: c.group.Point().Mul(c.scalar(r), nil)}, nil
}

func (c *ECGroup) Order() *big.Int        { return new(big.Int).Set(c.n) }
func (c *ECGroup) MinimalOrder() *big.Int { return new(big.Int).Set(c.n) }
func (c *ECGroup) Identity() Element      { return &ECElement{space: c, p: c.group.Point().Null()} }

func (c *ECGroup) Equal(other Space) bool {
	o, ok := other.(*ECGroup)
	return ok && o != nil && (o == c || o.group.String() == c.group.String())
}

func (c *ECGroup) String() string {
	return fmt.Sprintf("ECGroup(%s)", c.group.String())
}

func (c *ECGroup) cast(e Element) *ECElement {
	mustContain(c, e)
	return e.(*ECElement)
}

func (x *ECElement) Space() Space {
	return x.space
}

func (x *ECElement) Apply(other Element) Element {
	o := x.space.cast(other)
	return &ECElement{space: x.space, p: x.space.group.Point().Add(x.p, o.p)}
}

func (x *ECElement) SelfApply(amount *big.Int) Element {
	return &ECElement{space: x.space, p: x.space.group.Point().Mul(x.space.scalar(amount), x.p)}
}

func (x *ECElement) Invert() Element {
	return x.SelfApply(big.NewInt(-1))
}

func (x *ECElement) Equivalent(other Element) bool {
	o, ok := other.(*ECElement)
	return ok && o != nil && x.space.Equal(o.space) && x.p.Equal(o.p)
}

func (x *ECElement) Bytes() []byte {
	data, err := x.p.MarshalBinary()
	if err != nil {
		panic(errors.Errorf("algebra: failed to marshal point: %v", err))
	}
	return data
}

func (x *ECElement) String() string {
	return x.p.String()
}
