package algebra

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/go-errors/errors"
	"github.com/privacybydesign/sigma/big"
	"github.com/privacybydesign/sigma/cbor"
)

// ProductSpace is the direct product of one or more spaces; its elements are Tuples.
type ProductSpace struct {
	spaces []Space

	orderOnce   sync.Once
	order       *big.Int
	minimalOnce sync.Once
	minimal     *big.Int
}

// Tuple is an element of a ProductSpace.
type Tuple struct {
	space *ProductSpace
	elems []Element
}

// NewProductSpace returns the product of the given spaces. It panics if none are given.
func NewProductSpace(spaces ...Space) *ProductSpace {
	if len(spaces) == 0 {
		panic("algebra: product space needs at least one component")
	}
	for i, s := range spaces {
		if s == nil {
			panic(fmt.Sprintf("algebra: product space component %d is nil", i))
		}
	}
	return &ProductSpace{spaces: append([]Space(nil), spaces...)}
}

// NewPowerSpace returns the k-fold product of s with itself.
func NewPowerSpace(s Space, k int) *ProductSpace {
	spaces := make([]Space, k)
	for i := range spaces {
		spaces[i] = s
	}
	return NewProductSpace(spaces...)
}

func (ps *ProductSpace) Arity() int          { return len(ps.spaces) }
func (ps *ProductSpace) At(i int) Space      { return ps.spaces[i] }
func (ps *ProductSpace) Components() []Space { return append([]Space(nil), ps.spaces...) }

// Element combines the given elements into a tuple, checking each against its component space.
func (ps *ProductSpace) Element(elems ...Element) (*Tuple, error) {
	if len(elems) != len(ps.spaces) {
		return nil, errors.WrapPrefix(ErrArity, fmt.Sprintf("%d elements for %v", len(elems), ps), 0)
	}
	for i, e := range elems {
		if e == nil || !ps.spaces[i].Contains(e) {
			return nil, errors.WrapPrefix(ErrNotAMember, fmt.Sprintf("component %d of %v", i, ps), 0)
		}
	}
	return &Tuple{space: ps, elems: append([]Element(nil), elems...)}, nil
}

// tuple builds a Tuple from elements already known to be members.
func (ps *ProductSpace) tuple(elems []Element) *Tuple {
	return &Tuple{space: ps, elems: elems}
}

func (ps *ProductSpace) Contains(e Element) bool {
	t, ok := e.(*Tuple)
	if !ok || t == nil || len(t.elems) != len(ps.spaces) {
		return false
	}
	for i, s := range ps.spaces {
		if !s.Contains(t.elems[i]) {
			return false
		}
	}
	return true
}

func (ps *ProductSpace) RandomElement(rnd io.Reader) (Element, error) {
	elems := make([]Element, len(ps.spaces))
	for i, s := range ps.spaces {
		e, err := s.RandomElement(rnd)
		if err != nil {
			return nil, err
		}
		elems[i] = e
	}
	return ps.tuple(elems), nil
}

// Order returns the product of the component orders, or nil if one of them is unknown.
func (ps *ProductSpace) Order() *big.Int {
	ps.orderOnce.Do(func() {
		order := big.NewInt(1)
		for _, s := range ps.spaces {
			o := s.Order()
			if o == nil {
				return
			}
			order.Mul(order, o)
		}
		ps.order = order
	})
	return big.Copy(ps.order)
}

// MinimalOrder returns the smallest minimal order of the components.
func (ps *ProductSpace) MinimalOrder() *big.Int {
	ps.minimalOnce.Do(func() {
		minimal := ps.spaces[0].MinimalOrder()
		for _, s := range ps.spaces[1:] {
			minimal = big.Min(minimal, s.MinimalOrder())
		}
		ps.minimal = minimal
	})
	return big.Copy(ps.minimal)
}

func (ps *ProductSpace) Identity() Element {
	elems := make([]Element, len(ps.spaces))
	for i, s := range ps.spaces {
		elems[i] = s.Identity()
	}
	return ps.tuple(elems)
}

func (ps *ProductSpace) Equal(other Space) bool {
	o, ok := other.(*ProductSpace)
	if !ok || o == nil || len(o.spaces) != len(ps.spaces) {
		return false
	}
	if o == ps {
		return true
	}
	for i, s := range ps.spaces {
		if !s.Equal(o.spaces[i]) {
			return false
		}
	}
	return true
}

func (ps *ProductSpace) String() string {
	names := make([]string, len(ps.spaces))
	for i, s := range ps.spaces {
		names[i] = s.String()
	}
	return "Product(" + strings.Join(names, ", ") + ")"
}

func (ps *ProductSpace) cast(e Element) *Tuple {
	mustContain(ps, e)
	return e.(*Tuple)
}

func (t *Tuple) Arity() int          { return len(t.elems) }
func (t *Tuple) At(i int) Element    { return t.elems[i] }
func (t *Tuple) Elements() []Element { return append([]Element(nil), t.elems...) }

func (t *Tuple) Space() Space {
	return t.space
}

func (t *Tuple) Apply(other Element) Element {
	o := t.space.cast(other)
	elems := make([]Element, len(t.elems))
	for i, e := range t.elems {
		elems[i] = e.Apply(o.elems[i])
	}
	return t.space.tuple(elems)
}

func (t *Tuple) SelfApply(amount *big.Int) Element {
	elems := make([]Element, len(t.elems))
	for i, e := range t.elems {
		elems[i] = e.SelfApply(amount)
	}
	return t.space.tuple(elems)
}

func (t *Tuple) Invert() Element {
	elems := make([]Element, len(t.elems))
	for i, e := range t.elems {
		elems[i] = e.Invert()
	}
	return t.space.tuple(elems)
}

func (t *Tuple) Equivalent(other Element) bool {
	o, ok := other.(*Tuple)
	if !ok || o == nil || len(o.elems) != len(t.elems) {
		return false
	}
	for i, e := range t.elems {
		if !e.Equivalent(o.elems[i]) {
			return false
		}
	}
	return true
}

// Bytes encodes the tuple as a CBOR array of the encodings of its components.
func (t *Tuple) Bytes() []byte {
	parts := make([][]byte, len(t.elems))
	for i, e := range t.elems {
		parts[i] = e.Bytes()
	}
	return cbor.MustMarshal(parts)
}

func (t *Tuple) String() string {
	strs := make([]string, len(t.elems))
	for i, e := range t.elems {
		strs[i] = e.String()
	}
	return "(" + strings.Join(strs, ", ") + ")"
}
