package sigma

import (
	"crypto/rand"
	"testing"

	"github.com/go-errors/errors"
	"github.com/privacybydesign/sigma/algebra"
	"github.com/privacybydesign/sigma/big"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// elGamal holds a key pair and the functions for proving that a ciphertext encrypts one of a
// set of messages.
type elGamal struct {
	group       algebra.Space
	g, pk       algebra.Element
	ciphertexts *algebra.ProductSpace
	randomness  algebra.Space
	f           algebra.Function // r -> (g^r, pk^r)
	delta       algebra.Function // (m, (a, b)) -> (a, b/m)
}

func newElGamal(t *testing.T, group algebra.Space, g algebra.Element, sk int64) *elGamal {
	pk := g.SelfApply(big.NewInt(sk))
	f, err := algebra.NewSharedDomainFunction(generatorFunction(t, g), generatorFunction(t, pk))
	require.NoError(t, err)

	ciphertexts := algebra.NewPowerSpace(group, 2)
	delta := algebra.NewFunc(algebra.NewProductSpace(group, ciphertexts), ciphertexts, func(x algebra.Element) algebra.Element {
		tp := x.(*algebra.Tuple)
		m, c := tp.At(0), tp.At(1).(*algebra.Tuple)
		out, err := ciphertexts.Element(c.At(0), c.At(1).Apply(m.Invert()))
		if err != nil {
			panic(err)
		}
		return out
	})
	return &elGamal{
		group:       group,
		g:           g,
		pk:          pk,
		ciphertexts: ciphertexts,
		randomness:  f.Domain(),
		f:           f,
		delta:       delta,
	}
}

// encrypt returns (g^r, m * pk^r) for fresh r, and r.
func (eg *elGamal) encrypt(t *testing.T, m algebra.Element) (*algebra.Tuple, algebra.Element) {
	r := randomElement(t, eg.randomness)
	rv := r.(*algebra.ZModElement).Value()
	c, err := eg.ciphertexts.Element(eg.g.SelfApply(rv), m.Apply(eg.pk.SelfApply(rv)))
	require.NoError(t, err)
	return c, r
}

// votes returns the members g, g^2, ..., g^k.
func (eg *elGamal) votes(t *testing.T, k int) *MemberSet {
	members := make([]algebra.Element, k)
	for i := range members {
		members[i] = eg.g.SelfApply(big.NewInt(int64(i + 1)))
	}
	set, err := NewMemberSet(eg.group, members...)
	require.NoError(t, err)
	return set
}

func validitySystem(t *testing.T, eg *elGamal, members *MemberSet) *ValidityProofSystem {
	ps, err := NewValidityProofSystem(fiatShamirFor(eg.f), eg.f, eg.delta, members)
	require.NoError(t, err)
	return ps
}

func elGamalGroups(t *testing.T) map[string]*elGamal {
	toy := toyGroup(t)
	curve := algebra.NewP256()
	return map[string]*elGamal{
		"toy":  newElGamal(t, toy, toy.Generator(), 3),
		"p256": newElGamal(t, curve, curve.Generator(), 1234567),
	}
}

func TestValidityProof(t *testing.T) {
	for name, eg := range elGamalGroups(t) {
		t.Run(name, func(t *testing.T) {
			members := eg.votes(t, 3)
			ps := validitySystem(t, eg, members)
			assert.True(t, ps.PublicInputSpace().Equal(eg.ciphertexts))

			for i := 0; i < members.Len(); i++ {
				c, r := eg.encrypt(t, members.At(i))
				private, err := ps.CreatePrivateInput(r, members.At(i))
				require.NoError(t, err)

				proof, err := ps.Generate(private, c, rand.Reader)
				require.NoError(t, err)
				assert.True(t, ps.ProofSpace().Contains(proof))

				ok, err := ps.Verify(proof, c)
				require.NoError(t, err)
				assert.True(t, ok, "proof for member %d rejected", i)
			}
		})
	}
}

func TestValidityProofNonMember(t *testing.T) {
	eg := elGamalGroups(t)["p256"]
	members := eg.votes(t, 3)
	ps := validitySystem(t, eg, members)

	outsider := eg.g.SelfApply(big.NewInt(4))
	c, r := eg.encrypt(t, outsider)
	_, err := ps.CreatePrivateInput(r, outsider)
	assert.True(t, errors.Is(err, ErrMemberNotFound))

	// claiming any member fails for a ciphertext of a non-member
	for i := 0; i < members.Len(); i++ {
		private, err := ps.CreatePrivateInput(r, members.At(i))
		require.NoError(t, err)
		proof, err := ps.Generate(private, c, rand.Reader)
		require.NoError(t, err)
		ok, err := ps.Verify(proof, c)
		require.NoError(t, err)
		assert.False(t, ok, "non-member accepted as member %d", i)
	}
}

func TestValidityProofBoundToCiphertext(t *testing.T) {
	eg := elGamalGroups(t)["p256"]
	members := eg.votes(t, 2)
	ps := validitySystem(t, eg, members)

	c1, r1 := eg.encrypt(t, members.At(0))
	c2, r2 := eg.encrypt(t, members.At(1))
	private1, err := ps.CreatePrivateInput(r1, members.At(0))
	require.NoError(t, err)
	private2, err := ps.CreatePrivateInput(r2, members.At(1))
	require.NoError(t, err)
	proof1, err := ps.Generate(private1, c1, rand.Reader)
	require.NoError(t, err)
	proof2, err := ps.Generate(private2, c2, rand.Reader)
	require.NoError(t, err)

	for _, tc := range []struct {
		proof  *Proof
		public *algebra.Tuple
		valid  bool
	}{
		{proof1, c1, true},
		{proof2, c2, true},
		{proof1, c2, false},
		{proof2, c1, false},
	} {
		ok, err := ps.Verify(tc.proof, tc.public)
		require.NoError(t, err)
		assert.Equal(t, tc.valid, ok)
	}
}

func TestValidityProofInvalidInputs(t *testing.T) {
	eg := elGamalGroups(t)["toy"]
	ps := validitySystem(t, eg, eg.votes(t, 3))
	c, r := eg.encrypt(t, eg.g)
	private, err := ps.CreatePrivateInput(r, eg.g)
	require.NoError(t, err)

	_, err = ps.Generate(private, c.At(0), rand.Reader)
	assert.True(t, errors.Is(err, ErrInvalidPublicInput))
	_, err = ps.Generate(r, c, rand.Reader)
	assert.True(t, errors.Is(err, ErrInvalidPrivateInput))
	_, err = ps.Verify(&Proof{}, c)
	assert.True(t, errors.Is(err, ErrInvalidProof))
}

func TestNewValidityProofSystem(t *testing.T) {
	eg := elGamalGroups(t)["toy"]
	members := eg.votes(t, 3)
	cg := fiatShamirFor(eg.f)

	_, err := NewValidityProofSystem(cg, eg.f, eg.delta, nil)
	assert.True(t, errors.Is(err, ErrEmptyMemberSet))
	_, err = NewValidityProofSystem(cg, eg.f, nil, members)
	assert.True(t, errors.Is(err, ErrInvalidFunction))
	// delta must take (member, public input) pairs
	_, err = NewValidityProofSystem(cg, eg.f, eg.f, members)
	assert.True(t, errors.Is(err, ErrInvalidFunction))

	// delta must map into the codomain of f
	narrow := algebra.NewFunc(eg.delta.Domain(), eg.group, func(x algebra.Element) algebra.Element {
		return x.(*algebra.Tuple).At(0)
	})
	_, err = NewValidityProofSystem(cg, eg.f, narrow, members)
	assert.True(t, errors.Is(err, ErrInvalidFunction))

	curve := algebra.NewP256()
	_, err = NewValidityProofSystem(cg, eg.f, eg.delta, mustMemberSet(t, curve, curve.Generator()))
	assert.True(t, errors.Is(err, ErrInvalidFunction))

	ps, err := NewValidityProofSystem(cg, eg.f, eg.delta, members)
	require.NoError(t, err)
	assert.Same(t, members, ps.Members())
	assert.True(t, ps.ChallengeSpace().Equal(algebra.NewPowerSpace(algebra.NewZMod(big.NewInt(11)), 3)))
}

func mustMemberSet(t *testing.T, space algebra.Space, members ...algebra.Element) *MemberSet {
	set, err := NewMemberSet(space, members...)
	require.NoError(t, err)
	return set
}

func TestMemberSet(t *testing.T) {
	group := toyGroup(t)
	g := group.Generator()

	_, err := NewMemberSet(group)
	assert.True(t, errors.Is(err, ErrEmptyMemberSet))
	_, err = NewMemberSet(group, g, g.SelfApply(big.NewInt(2)), g.SelfApply(big.NewInt(12)))
	assert.True(t, errors.Is(err, ErrDuplicateMember))
	_, err = NewMemberSet(group, g, algebra.NewZMod(big.NewInt(11)).Identity())
	assert.True(t, errors.Is(err, algebra.ErrNotAMember))
	_, err = NewMemberSet(group, nil)
	assert.True(t, errors.Is(err, algebra.ErrNotAMember))

	members := []algebra.Element{g, group.Identity(), g.Invert()}
	set := mustMemberSet(t, group, members...)
	members[0] = group.Identity()
	assert.Equal(t, 3, set.Len())
	assert.True(t, set.At(0).Equivalent(g))
	assert.True(t, set.Space().Equal(group))

	i, ok := set.IndexOf(g.SelfApply(big.NewInt(10)))
	assert.True(t, ok)
	assert.Equal(t, 2, i)
	_, ok = set.IndexOf(g.SelfApply(big.NewInt(5)))
	assert.False(t, ok)
}
