// Package challenge derives the challenges of Sigma protocols, either from a Fiat-Shamir hash of
// the transcript or from an external verifier.
package challenge

import (
	"github.com/privacybydesign/sigma/algebra"
	"github.com/privacybydesign/sigma/big"
)

// SigmaGenerator derives the challenge of a Sigma protocol from its public input and commitment.
type SigmaGenerator interface {
	ChallengeSpace() *algebra.ZMod
	Generate(public, commitment algebra.Element) *algebra.ZModElement
}

// MultiGenerator derives a tuple of values in a power of ZMod from arbitrary inputs.
type MultiGenerator interface {
	ChallengeSpace() *algebra.ProductSpace
	Generate(inputs ...algebra.Element) *algebra.Tuple
}

// Interactive obtains challenges from an external verifier.
type Interactive struct {
	space    *algebra.ZMod
	verifier func(public, commitment algebra.Element) *big.Int
}

// NewInteractive returns a generator that asks verifier for each challenge. Its answers are
// reduced into space.
func NewInteractive(space *algebra.ZMod, verifier func(public, commitment algebra.Element) *big.Int) *Interactive {
	return &Interactive{space: space, verifier: verifier}
}

func (i *Interactive) ChallengeSpace() *algebra.ZMod { return i.space }

func (i *Interactive) Generate(public, commitment algebra.Element) *algebra.ZModElement {
	return i.space.Reduce(i.verifier(public, commitment))
}

// Fixed always returns the same challenge. It serves test vectors and the replay of recorded
// interactive runs; a fixed challenge gives no soundness.
type Fixed struct {
	e *algebra.ZModElement
}

func NewFixed(space *algebra.ZMod, e *big.Int) *Fixed {
	return &Fixed{e: space.Reduce(e)}
}

func (f *Fixed) ChallengeSpace() *algebra.ZMod { return f.e.Space().(*algebra.ZMod) }

func (f *Fixed) Generate(_, _ algebra.Element) *algebra.ZModElement { return f.e }
