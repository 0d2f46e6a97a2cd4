package sigma

import (
	"fmt"
	"io"

	"github.com/go-errors/errors"
	"github.com/privacybydesign/sigma/algebra"
	"github.com/privacybydesign/sigma/challenge"
)

// MemberSet is a finite, ordered set of distinct public candidate values.
type MemberSet struct {
	space   algebra.Space
	members []algebra.Element
}

// NewMemberSet returns the set of the given members, which must be distinct elements of space.
func NewMemberSet(space algebra.Space, members ...algebra.Element) (*MemberSet, error) {
	if len(members) == 0 {
		return nil, ErrEmptyMemberSet
	}
	for i, m := range members {
		if m == nil || !space.Contains(m) {
			return nil, errors.WrapPrefix(algebra.ErrNotAMember, fmt.Sprintf("member %d is not in %v", i, space), 0)
		}
		for j := 0; j < i; j++ {
			if members[j].Equivalent(m) {
				return nil, errors.WrapPrefix(ErrDuplicateMember, fmt.Sprintf("members %d and %d", j, i), 0)
			}
		}
	}
	return &MemberSet{space: space, members: append([]algebra.Element(nil), members...)}, nil
}

func (s *MemberSet) Space() algebra.Space     { return s.space }
func (s *MemberSet) Len() int                 { return len(s.members) }
func (s *MemberSet) At(i int) algebra.Element { return s.members[i] }

// IndexOf returns the position of m in the set.
func (s *MemberSet) IndexOf(m algebra.Element) (int, bool) {
	for i, member := range s.members {
		if member.Equivalent(m) {
			return i, true
		}
	}
	return -1, false
}

// ValidityProofSystem proves that the value hidden in a public input, such as an ElGamal
// ciphertext or a commitment, is one of the members of a public MemberSet, without revealing
// which.
//
// For a proof function f and a function delta from (member, public input) pairs into the
// codomain of f, the statement for member m_j is that the prover knows x with
// f(x) = delta(m_j, y). For an ElGamal ciphertext y = (a, b) of m under public key pk, with
// f(r) = (g^r, pk^r) and delta(m, (a, b)) = (a, b/m), the randomness r is a witness exactly for
// the branch of the encrypted member.
type ValidityProofSystem struct {
	or      *OrProofSystem
	members *MemberSet
	deltas  []algebra.Function
	public  algebra.Space
}

// NewValidityProofSystem returns the validity proof system for f, delta and members. The domain of
// delta must be the product of the member space and the public input space; its codomain must
// equal the codomain of f.
func NewValidityProofSystem(cg challenge.SigmaGenerator, f, delta algebra.Function, members *MemberSet) (*ValidityProofSystem, error) {
	if members == nil || members.Len() == 0 {
		return nil, ErrEmptyMemberSet
	}
	if f == nil || delta == nil {
		return nil, errors.WrapPrefix(ErrInvalidFunction, "no proof or delta function given", 0)
	}
	dom, ok := delta.Domain().(*algebra.ProductSpace)
	if !ok || dom.Arity() != 2 || !dom.At(0).Equal(members.Space()) {
		return nil, errors.WrapPrefix(ErrInvalidFunction, "delta must map (member, public input) pairs", 0)
	}
	if !delta.Codomain().Equal(f.Codomain()) {
		return nil, errors.WrapPrefix(ErrInvalidFunction,
			fmt.Sprintf("delta maps into %v instead of %v", delta.Codomain(), f.Codomain()), 0)
	}

	k := members.Len()
	deltas := make([]algebra.Function, k)
	functions := make([]algebra.Function, k)
	for j := 0; j < k; j++ {
		d, err := algebra.PartiallyApply(delta, members.At(j), 0)
		if err != nil {
			return nil, errors.WrapPrefix(err, fmt.Sprintf("cannot fix member %d", j), 0)
		}
		deltas[j] = d
		functions[j] = f
	}
	or, err := NewOrProofSystem(cg, functions...)
	if err != nil {
		return nil, err
	}
	return &ValidityProofSystem{or: or, members: members, deltas: deltas, public: dom.At(1)}, nil
}

// Members returns the candidate set.
func (ps *ValidityProofSystem) Members() *MemberSet { return ps.members }

// CreatePrivateInput returns the private input for a prover whose public input hides member,
// with witness secret.
func (ps *ValidityProofSystem) CreatePrivateInput(secret, member algebra.Element) (*algebra.Tuple, error) {
	index, ok := ps.members.IndexOf(member)
	if !ok {
		return nil, errors.WrapPrefix(ErrMemberNotFound, fmt.Sprintf("%v", member), 0)
	}
	return ps.or.CreatePrivateInput(secret, index)
}

func (ps *ValidityProofSystem) PrivateInputSpace() algebra.Space { return ps.or.PrivateInputSpace() }
func (ps *ValidityProofSystem) PublicInputSpace() algebra.Space  { return ps.public }
func (ps *ValidityProofSystem) ProofSpace() *ProofSpace          { return ps.or.ProofSpace() }
func (ps *ValidityProofSystem) CommitmentSpace() algebra.Space   { return ps.or.CommitmentSpace() }
func (ps *ValidityProofSystem) ChallengeSpace() algebra.Space    { return ps.or.ChallengeSpace() }
func (ps *ValidityProofSystem) ResponseSpace() algebra.Space     { return ps.or.ResponseSpace() }

// branchInputs maps the public input y to (delta(m_1, y), ..., delta(m_k, y)).
func (ps *ValidityProofSystem) branchInputs(public algebra.Element) (*algebra.Tuple, error) {
	ys := make([]algebra.Element, len(ps.deltas))
	for j, d := range ps.deltas {
		ys[j] = d.Apply(public)
	}
	t, err := ps.or.PublicInputSpace().(*algebra.ProductSpace).Element(ys...)
	if err != nil {
		return nil, errors.WrapPrefix(ErrInvalidFunction, err.Error(), 0)
	}
	return t, nil
}

func (ps *ValidityProofSystem) Generate(private, public algebra.Element, rnd io.Reader) (*Proof, error) {
	if err := checkGenerateInputs(ps, private, public, rnd); err != nil {
		return nil, err
	}
	ys, err := ps.branchInputs(public)
	if err != nil {
		return nil, err
	}
	return ps.or.generate(private.(*algebra.Tuple), ys, public, rnd)
}

func (ps *ValidityProofSystem) Verify(proof *Proof, public algebra.Element) (bool, error) {
	if err := checkVerifyInputs(ps, proof, public); err != nil {
		return false, err
	}
	ys, err := ps.branchInputs(public)
	if err != nil {
		return false, err
	}
	return ps.or.verify(proof, ys, public), nil
}

var _ SigmaProofSystem = (*ValidityProofSystem)(nil)
