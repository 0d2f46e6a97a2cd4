package sigma

import (
	"fmt"
	"io"
	"sync"

	"github.com/go-errors/errors"
	"github.com/privacybydesign/sigma/algebra"
	"github.com/privacybydesign/sigma/challenge"
)

// PreimageProofSystem proves knowledge of x with f(x) = y for a public homomorphism f and public
// y, using the Schnorr protocol: commitment f(r) for a random r, response r * x^e.
type PreimageProofSystem struct {
	cg             challenge.SigmaGenerator
	f              algebra.Function
	challengeSpace *algebra.ZMod

	once       sync.Once
	proofSpace *ProofSpace
}

// NewPreimageProofSystem returns the preimage proof system of f. The challenge space of cg must be
// ZMod(q), q the minimal order of the domain of f.
func NewPreimageProofSystem(cg challenge.SigmaGenerator, f algebra.Function) (*PreimageProofSystem, error) {
	if f == nil {
		return nil, errors.WrapPrefix(ErrInvalidFunction, "no proof function given", 0)
	}
	zq, err := checkChallengeSpace(cg, f.Domain())
	if err != nil {
		return nil, err
	}
	return &PreimageProofSystem{cg: cg, f: f, challengeSpace: zq}, nil
}

// Function returns the proof function f.
func (ps *PreimageProofSystem) Function() algebra.Function { return ps.f }

func (ps *PreimageProofSystem) PrivateInputSpace() algebra.Space { return ps.f.Domain() }
func (ps *PreimageProofSystem) PublicInputSpace() algebra.Space  { return ps.f.Codomain() }
func (ps *PreimageProofSystem) CommitmentSpace() algebra.Space   { return ps.f.Codomain() }
func (ps *PreimageProofSystem) ChallengeSpace() algebra.Space    { return ps.challengeSpace }
func (ps *PreimageProofSystem) ResponseSpace() algebra.Space     { return ps.f.Domain() }

func (ps *PreimageProofSystem) ProofSpace() *ProofSpace {
	ps.once.Do(func() {
		ps.proofSpace = &ProofSpace{
			Commitment: ps.CommitmentSpace(),
			Challenge:  ps.ChallengeSpace(),
			Response:   ps.ResponseSpace(),
		}
	})
	return ps.proofSpace
}

func (ps *PreimageProofSystem) Generate(private, public algebra.Element, rnd io.Reader) (*Proof, error) {
	if err := checkGenerateInputs(ps, private, public, rnd); err != nil {
		return nil, err
	}

	r, err := ps.f.Domain().RandomElement(rnd)
	if err != nil {
		return nil, errors.WrapPrefix(err, "failed to draw nonce", 0)
	}
	commitment := ps.f.Apply(r)
	e := ps.cg.Generate(public, commitment)

	Logger.Trace("generated preimage proof")
	return &Proof{
		Commitment: commitment,
		Challenge:  e,
		Response:   respond(r, private, e),
	}, nil
}

func (ps *PreimageProofSystem) Verify(proof *Proof, public algebra.Element) (bool, error) {
	if err := checkVerifyInputs(ps, proof, public); err != nil {
		return false, err
	}

	e := ps.cg.Generate(public, proof.Commitment)
	if !e.Equivalent(proof.Challenge) {
		Logger.Debug("preimage proof rejected: challenge does not match commitment")
		return false, nil
	}
	if !preimageHolds(ps.f, proof.Commitment, e, proof.Response, public) {
		Logger.Debug("preimage proof rejected: verification equation does not hold")
		return false, nil
	}
	return true, nil
}

// BatchVerify verifies many proofs of ps at once. Instead of checking f(s_i) = c_i * y_i^e_i for
// every i, it checks the single equation
//
//	f(prod s_i^w_i) = prod (c_i * y_i^e_i)^w_i
//
// for weights w_i in ZMod(q) derived from a hash of all proofs and public inputs. Every challenge
// is still recomputed individually. A false result means at least one proof is invalid.
func (ps *PreimageProofSystem) BatchVerify(proofs []*Proof, publics []algebra.Element) (bool, error) {
	if len(proofs) != len(publics) {
		return false, errors.WrapPrefix(ErrInputCount, fmt.Sprintf("%d proofs, %d public inputs", len(proofs), len(publics)), 0)
	}
	if len(proofs) == 0 {
		return true, nil
	}

	challenges := make([]*algebra.ZModElement, len(proofs))
	inputs := make([]algebra.Element, 0, 4*len(proofs))
	for i, proof := range proofs {
		if err := checkVerifyInputs(ps, proof, publics[i]); err != nil {
			return false, errors.WrapPrefix(err, fmt.Sprintf("proof %d", i), 0)
		}
		e := ps.cg.Generate(publics[i], proof.Commitment)
		if !e.Equivalent(proof.Challenge) {
			Logger.Debugf("batch rejected: challenge of proof %d does not match its commitment", i)
			return false, nil
		}
		challenges[i] = e
		inputs = append(inputs, publics[i], proof.Commitment, proof.Challenge, proof.Response)
	}

	weights := challenge.NewFiatShamirMulti(ps.challengeSpace, len(proofs),
		challenge.WithContext([]byte("sigma batch verification"))).Generate(inputs...)

	sum := ps.f.Domain().Identity()
	right := ps.f.Codomain().Identity()
	for i, proof := range proofs {
		w := weights.At(i).(*algebra.ZModElement).Value()
		sum = sum.Apply(proof.Response.SelfApply(w))
		term := proof.Commitment.Apply(publics[i].SelfApply(challenges[i].Value()))
		right = right.Apply(term.SelfApply(w))
	}
	if !ps.f.Apply(sum).Equivalent(right) {
		Logger.Debug("batch rejected: combined verification equation does not hold")
		return false, nil
	}
	return true, nil
}

var _ SigmaProofSystem = (*PreimageProofSystem)(nil)
