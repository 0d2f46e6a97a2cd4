package sigma

import (
	"fmt"
	"io"
	"sync"

	"github.com/go-errors/errors"
	"github.com/privacybydesign/sigma/algebra"
	"github.com/privacybydesign/sigma/big"
	"github.com/privacybydesign/sigma/challenge"
)

// OrProofSystem proves knowledge of a preimage under one of k functions f_1, ..., f_k sharing a
// domain, without revealing which one (Cramer, Damgard and Schoenmakers). The prover runs the
// Schnorr protocol for the branch it has a witness for and simulates the other branches; the
// individual challenges must add up to the Fiat-Shamir challenge of all commitments.
//
// The private input is the pair (x, i) with x in the common domain and i in ZMod(k), the public
// input the tuple (y_1, ..., y_k). A proof consists of tuples of k commitments, k challenges and
// k responses.
type OrProofSystem struct {
	cg        challenge.SigmaGenerator
	functions []algebra.Function
	domain    algebra.Space
	zq        *algebra.ZMod

	once       sync.Once
	private    *algebra.ProductSpace
	public     *algebra.ProductSpace
	proofSpace *ProofSpace
}

// NewOrProofSystem returns the OR composition of the preimage proofs of functions, which must all
// have the same domain.
func NewOrProofSystem(cg challenge.SigmaGenerator, functions ...algebra.Function) (*OrProofSystem, error) {
	if len(functions) == 0 {
		return nil, errors.WrapPrefix(ErrEmptyMemberSet, "OR proof needs at least one branch", 0)
	}
	for i, f := range functions {
		if f == nil {
			return nil, errors.WrapPrefix(ErrInvalidFunction, fmt.Sprintf("branch %d has no function", i), 0)
		}
	}
	domain := functions[0].Domain()
	for i, f := range functions[1:] {
		if !f.Domain().Equal(domain) {
			return nil, errors.WrapPrefix(ErrInvalidFunction,
				fmt.Sprintf("domain %v of branch %d differs from %v", f.Domain(), i+1, domain), 0)
		}
	}
	zq, err := checkChallengeSpace(cg, domain)
	if err != nil {
		return nil, err
	}
	return &OrProofSystem{
		cg:        cg,
		functions: append([]algebra.Function(nil), functions...),
		domain:    domain,
		zq:        zq,
	}, nil
}

func (ps *OrProofSystem) spaces() *OrProofSystem {
	ps.once.Do(func() {
		k := len(ps.functions)
		codomains := make([]algebra.Space, k)
		for i, f := range ps.functions {
			codomains[i] = f.Codomain()
		}
		ps.private = algebra.NewProductSpace(ps.domain, algebra.NewZMod(big.NewInt(int64(k))))
		ps.public = algebra.NewProductSpace(codomains...)
		ps.proofSpace = &ProofSpace{
			Commitment: algebra.NewProductSpace(codomains...),
			Challenge:  algebra.NewPowerSpace(ps.zq, k),
			Response:   algebra.NewPowerSpace(ps.domain, k),
		}
	})
	return ps
}

// Branches returns k, the number of functions composed.
func (ps *OrProofSystem) Branches() int { return len(ps.functions) }

func (ps *OrProofSystem) PrivateInputSpace() algebra.Space { return ps.spaces().private }
func (ps *OrProofSystem) PublicInputSpace() algebra.Space  { return ps.spaces().public }
func (ps *OrProofSystem) ProofSpace() *ProofSpace          { return ps.spaces().proofSpace }
func (ps *OrProofSystem) CommitmentSpace() algebra.Space   { return ps.spaces().proofSpace.Commitment }
func (ps *OrProofSystem) ChallengeSpace() algebra.Space    { return ps.spaces().proofSpace.Challenge }
func (ps *OrProofSystem) ResponseSpace() algebra.Space     { return ps.spaces().proofSpace.Response }

// CreatePrivateInput returns the private input (secret, index) for a witness of branch index.
func (ps *OrProofSystem) CreatePrivateInput(secret algebra.Element, index int) (*algebra.Tuple, error) {
	if index < 0 || index >= len(ps.functions) {
		return nil, errors.WrapPrefix(ErrInvalidPrivateInput, fmt.Sprintf("branch %d out of range", index), 0)
	}
	private := ps.spaces().private
	t, err := private.Element(secret, private.At(1).(*algebra.ZMod).Reduce(big.NewInt(int64(index))))
	if err != nil {
		return nil, errors.WrapPrefix(ErrInvalidPrivateInput, err.Error(), 0)
	}
	return t, nil
}

func (ps *OrProofSystem) Generate(private, public algebra.Element, rnd io.Reader) (*Proof, error) {
	if err := checkGenerateInputs(ps, private, public, rnd); err != nil {
		return nil, err
	}
	return ps.generate(private.(*algebra.Tuple), public.(*algebra.Tuple), public, rnd)
}

func (ps *OrProofSystem) Verify(proof *Proof, public algebra.Element) (bool, error) {
	if err := checkVerifyInputs(ps, proof, public); err != nil {
		return false, err
	}
	return ps.verify(proof, public.(*algebra.Tuple), public), nil
}

// generate expects validated inputs. The common challenge e is derived from bound and the
// commitments; bound is the public input of the calling proof system.
//
// Randomness is drawn for every branch in order, the same amount whichever branch is real: a
// response s_j and a challenge e_j. For the real branch i the response becomes the nonce and the
// challenge is replaced by e - sum_{j != i} e_j.
func (ps *OrProofSystem) generate(private, public *algebra.Tuple, bound algebra.Element, rnd io.Reader) (*Proof, error) {
	secret := private.At(0)
	index := int(private.At(1).(*algebra.ZModElement).Value().Int64())

	k := len(ps.functions)
	commitments := make([]algebra.Element, k)
	challenges := make([]algebra.Element, k)
	responses := make([]algebra.Element, k)
	for j := 0; j < k; j++ {
		s, err := ps.domain.RandomElement(rnd)
		if err != nil {
			return nil, errors.WrapPrefix(err, fmt.Sprintf("failed to draw response of branch %d", j), 0)
		}
		e, err := ps.zq.RandomElement(rnd)
		if err != nil {
			return nil, errors.WrapPrefix(err, fmt.Sprintf("failed to draw challenge of branch %d", j), 0)
		}
		responses[j], challenges[j] = s, e
	}

	for j, f := range ps.functions {
		if j == index {
			commitments[j] = f.Apply(responses[j])
			continue
		}
		// c_j = f_j(s_j) * y_j^-e_j satisfies the verification equation for (e_j, s_j).
		e := challenges[j].(*algebra.ZModElement)
		commitments[j] = f.Apply(responses[j]).Apply(public.At(j).SelfApply(e.Value()).Invert())
	}

	proofSpace := ps.spaces().proofSpace
	commitment, err := proofSpace.Commitment.(*algebra.ProductSpace).Element(commitments...)
	if err != nil {
		return nil, errors.WrapPrefix(ErrInvalidFunction, err.Error(), 0)
	}

	var ei algebra.Element = ps.cg.Generate(bound, commitment)
	for j, ej := range challenges {
		if j != index {
			ei = ei.Apply(ej.Invert())
		}
	}
	nonce := responses[index]
	challenges[index] = ei
	responses[index] = respond(nonce, secret, ei.(*algebra.ZModElement))

	challengeTuple, err := proofSpace.Challenge.(*algebra.ProductSpace).Element(challenges...)
	if err != nil {
		return nil, err
	}
	responseTuple, err := proofSpace.Response.(*algebra.ProductSpace).Element(responses...)
	if err != nil {
		return nil, err
	}

	Logger.Tracef("generated OR proof with %d branches", k)
	return &Proof{Commitment: commitment, Challenge: challengeTuple, Response: responseTuple}, nil
}

// verify expects a proof and public input already checked against their spaces.
func (ps *OrProofSystem) verify(proof *Proof, public *algebra.Tuple, bound algebra.Element) bool {
	commitments := proof.Commitment.(*algebra.Tuple)
	challenges := proof.Challenge.(*algebra.Tuple)
	responses := proof.Response.(*algebra.Tuple)

	e := ps.cg.Generate(bound, proof.Commitment)
	sum := ps.zq.Identity()
	for j := range ps.functions {
		sum = sum.Apply(challenges.At(j))
	}
	if !sum.Equivalent(e) {
		Logger.Debug("OR proof rejected: challenges do not add up to the common challenge")
		return false
	}

	for j, f := range ps.functions {
		ej := challenges.At(j).(*algebra.ZModElement)
		if !preimageHolds(f, commitments.At(j), ej, responses.At(j), public.At(j)) {
			Logger.Debugf("OR proof rejected: verification equation of branch %d does not hold", j)
			return false
		}
	}
	return true
}

var _ SigmaProofSystem = (*OrProofSystem)(nil)
