package algebra

import (
	"fmt"
	"io"

	"github.com/go-errors/errors"
	"github.com/privacybydesign/sigma/big"
)

var (
	ErrNotAMember             = errors.New("value is not an element of the space")
	ErrInvalidGroupParameters = errors.New("invalid group parameters")
	ErrIncompatibleFunctions  = errors.New("functions cannot be combined")
	ErrArity                  = errors.New("wrong number of components")
	ErrUnknownOrder           = errors.New("space order is unknown")
)

// Space is a finite set closed under Apply.
type Space interface {
	// Contains reports whether e is an element of this space.
	Contains(e Element) bool
	// RandomElement returns a uniformly random element, reading its randomness from rnd.
	RandomElement(rnd io.Reader) (Element, error)
	// Order returns the number of elements, or nil if it is unknown.
	Order() *big.Int
	// MinimalOrder returns a lower bound for the order. It is never nil.
	MinimalOrder() *big.Int
	// Identity returns the neutral element of Apply.
	Identity() Element
	// Equal reports whether other is the same space, possibly a distinct instance.
	Equal(other Space) bool
	fmt.Stringer
}

// Element is an immutable member of exactly one Space.
type Element interface {
	Space() Space
	// Apply combines the receiver with other, which must belong to the same space.
	Apply(other Element) Element
	// SelfApply applies the receiver to itself amount times. Negative amounts apply the inverse.
	SelfApply(amount *big.Int) Element
	Invert() Element
	Equivalent(other Element) bool
	// Bytes returns the canonical encoding of the element within its space.
	Bytes() []byte
	fmt.Stringer
}

func mustContain(s Space, e Element) {
	if e == nil || !s.Contains(e) {
		panic(errors.Errorf("algebra: %v is not an element of %v", e, s))
	}
}
