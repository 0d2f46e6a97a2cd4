package algebra

import (
	"fmt"
	"io"

	"github.com/go-errors/errors"
	"github.com/privacybydesign/sigma/big"
)

// ZMod is the additive group of integers modulo n.
type ZMod struct {
	n       *big.Int
	byteLen int
}

// ZModElement is an integer in [0, n).
type ZModElement struct {
	space *ZMod
	v     *big.Int
}

// NewZMod returns the integers modulo n. It panics if n is not positive.
func NewZMod(n *big.Int) *ZMod {
	if n == nil || n.Sign() <= 0 {
		panic(errors.Errorf("algebra: ZMod modulus must be positive, got %v", n))
	}
	return &ZMod{
		n:       new(big.Int).Set(n),
		byteLen: (n.BitLen() + 7) / 8,
	}
}

// Modulus returns n.
func (z *ZMod) Modulus() *big.Int {
	return new(big.Int).Set(z.n)
}

// Element returns v as an element of z, if 0 <= v < n.
func (z *ZMod) Element(v *big.Int) (*ZModElement, error) {
	if v == nil || v.Sign() < 0 || v.Cmp(z.n) >= 0 {
		return nil, errors.WrapPrefix(ErrNotAMember, fmt.Sprintf("%v not in %v", v, z), 0)
	}
	return &ZModElement{space: z, v: new(big.Int).Set(v)}, nil
}

// Reduce returns v mod n. Negative values are reduced to [0, n) as well.
func (z *ZMod) Reduce(v *big.Int) *ZModElement {
	return &ZModElement{space: z, v: new(big.Int).Mod(v, z.n)}
}

func (z *ZMod) Contains(e Element) bool {
	x, ok := e.(*ZModElement)
	return ok && x != nil && z.Equal(x.space)
}

func (z *ZMod) RandomElement(rnd io.Reader) (Element, error) {
	v, err := big.RandInt(rnd, z.n)
	if err != nil {
		return nil, errors.WrapPrefix(err, "failed to sample ZMod element", 0)
	}
	return &ZModElement{space: z, v: v}, nil
}

func (z *ZMod) Order() *big.Int        { return z.Modulus() }
func (z *ZMod) MinimalOrder() *big.Int { return z.Modulus() }
func (z *ZMod) Identity() Element      { return &ZModElement{space: z, v: big.NewInt(0)} }

func (z *ZMod) Equal(other Space) bool {
	o, ok := other.(*ZMod)
	return ok && o != nil && (o == z || o.n.Cmp(z.n) == 0)
}

func (z *ZMod) String() string {
	return fmt.Sprintf("ZMod(%v)", z.n)
}

func (z *ZMod) cast(e Element) *ZModElement {
	mustContain(z, e)
	return e.(*ZModElement)
}

// Value returns the integer representative of x, in [0, n).
func (x *ZModElement) Value() *big.Int {
	return new(big.Int).Set(x.v)
}

func (x *ZModElement) Space() Space {
	return x.space
}

func (x *ZModElement) Apply(other Element) Element {
	o := x.space.cast(other)
	return x.space.Reduce(new(big.Int).Add(x.v, o.v))
}

func (x *ZModElement) SelfApply(amount *big.Int) Element {
	return x.space.Reduce(new(big.Int).Mul(x.v, amount))
}

func (x *ZModElement) Invert() Element {
	return x.space.Reduce(new(big.Int).Neg(x.v))
}

func (x *ZModElement) Equivalent(other Element) bool {
	o, ok := other.(*ZModElement)
	return ok && o != nil && x.space.Equal(o.space) && x.v.Cmp(o.v) == 0
}

func (x *ZModElement) Bytes() []byte {
	return x.v.FillBytes(make([]byte, x.space.byteLen))
}

func (x *ZModElement) String() string {
	return x.v.String()
}
