package sigma

import (
	"fmt"
	"io"

	"github.com/go-errors/errors"
	"github.com/privacybydesign/sigma/algebra"
	"github.com/privacybydesign/sigma/challenge"
	"github.com/privacybydesign/sigma/internal/common"
)

// ProofSystem generates and verifies non-interactive proofs about a private input, relative to a
// public input.
type ProofSystem interface {
	PrivateInputSpace() algebra.Space
	PublicInputSpace() algebra.Space
	ProofSpace() *ProofSpace

	// Generate proves knowledge of private with respect to public, drawing all randomness from
	// rnd. It fails if either input lies outside its space or if rnd is nil.
	Generate(private, public algebra.Element, rnd io.Reader) (*Proof, error)
	// Verify reports whether proof is valid for public. An invalid proof is not an error; an
	// error is returned only if proof or public lie outside their spaces.
	Verify(proof *Proof, public algebra.Element) (bool, error)
}

// SigmaProofSystem is a ProofSystem whose proofs are commitment, challenge, response triples.
type SigmaProofSystem interface {
	ProofSystem
	CommitmentSpace() algebra.Space
	ChallengeSpace() algebra.Space
	ResponseSpace() algebra.Space
}

// Proof is the transcript of a Sigma protocol. Proofs are plain data: verification never
// modifies them.
type Proof struct {
	Commitment algebra.Element
	Challenge  algebra.Element
	Response   algebra.Element
}

// ProofSpace holds the spaces that the three parts of a proof must belong to.
type ProofSpace struct {
	Commitment algebra.Space
	Challenge  algebra.Space
	Response   algebra.Space
}

// Contains reports whether every part of p is present and lies in its space.
func (s *ProofSpace) Contains(p *Proof) bool {
	return p != nil &&
		p.Commitment != nil && s.Commitment.Contains(p.Commitment) &&
		p.Challenge != nil && s.Challenge.Contains(p.Challenge) &&
		p.Response != nil && s.Response.Contains(p.Response)
}

func (p *Proof) String() string {
	return fmt.Sprintf("Proof{%v, %v, %v}", p.Commitment, p.Challenge, p.Response)
}

// Generate calls ps.Generate with the process-wide default randomness source.
func Generate(ps ProofSystem, private, public algebra.Element) (*Proof, error) {
	return ps.Generate(private, public, common.Reader())
}

func checkGenerateInputs(ps ProofSystem, private, public algebra.Element, rnd io.Reader) error {
	if private == nil || !ps.PrivateInputSpace().Contains(private) {
		return ErrInvalidPrivateInput
	}
	if public == nil || !ps.PublicInputSpace().Contains(public) {
		return ErrInvalidPublicInput
	}
	if rnd == nil {
		return ErrMissingRandomness
	}
	return nil
}

func checkVerifyInputs(ps ProofSystem, proof *Proof, public algebra.Element) error {
	if !ps.ProofSpace().Contains(proof) {
		return ErrInvalidProof
	}
	if public == nil || !ps.PublicInputSpace().Contains(public) {
		return ErrInvalidPublicInput
	}
	return nil
}

// checkChallengeSpace returns ZMod(minimal order of domain) if cg produces challenges in it.
func checkChallengeSpace(cg challenge.SigmaGenerator, domain algebra.Space) (*algebra.ZMod, error) {
	want := algebra.NewZMod(domain.MinimalOrder())
	if cg == nil {
		return nil, errors.WrapPrefix(ErrChallengeSpaceMismatch, "no challenge generator given", 0)
	}
	if got := cg.ChallengeSpace(); got == nil || !got.Equal(want) {
		return nil, errors.WrapPrefix(ErrChallengeSpaceMismatch, fmt.Sprintf("got %v, want %v", got, want), 0)
	}
	return want, nil
}

// respond computes the response r * x^e.
func respond(r, x algebra.Element, e *algebra.ZModElement) algebra.Element {
	return r.Apply(x.SelfApply(e.Value()))
}

// preimageHolds checks the verification equation f(s) = c * y^e.
func preimageHolds(f algebra.Function, c algebra.Element, e *algebra.ZModElement, s, y algebra.Element) bool {
	left := f.Apply(s)
	right := c.Apply(y.SelfApply(e.Value()))
	return left.Equivalent(right)
}
