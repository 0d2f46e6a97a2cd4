package algebra

import (
	"testing"

	"github.com/go-errors/errors"
	"github.com/privacybydesign/sigma/big"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratorFunctionHomomorphic(t *testing.T) {
	group := toyGroup(t)
	f, err := NewGeneratorFunction(group.Generator())
	require.NoError(t, err)
	z := f.Domain().(*ZMod)
	assert.Equal(t, int64(11), z.Modulus().Int64())

	for a := int64(0); a < 11; a++ {
		for b := int64(0); b < 11; b++ {
			x, y := z.Reduce(big.NewInt(a)), z.Reduce(big.NewInt(b))
			require.True(t, f.Apply(x.Apply(y)).Equivalent(f.Apply(x).Apply(f.Apply(y))))
		}
	}
	assert.Equal(t, int64(9), f.Apply(z.Reduce(big.NewInt(5))).(*GStarModElement).Value().Int64())
	assert.Panics(t, func() { f.Apply(NewZMod(big.NewInt(5)).Identity()) })
}

func TestProductAndSharedDomainFunctions(t *testing.T) {
	group := toyGroup(t)
	g := group.Generator()
	h := g.SelfApply(big.NewInt(3))
	fg, err := NewGeneratorFunction(g)
	require.NoError(t, err)
	fh, err := NewGeneratorFunction(h)
	require.NoError(t, err)
	z := fg.Domain().(*ZMod)

	pf := NewProductFunction(fg, fh)
	x, err := pf.Domain().(*ProductSpace).Element(z.Reduce(big.NewInt(2)), z.Reduce(big.NewInt(4)))
	require.NoError(t, err)
	out := pf.Apply(x).(*Tuple)
	assert.True(t, out.At(0).Equivalent(g.SelfApply(big.NewInt(2))))
	assert.True(t, out.At(1).Equivalent(g.SelfApply(big.NewInt(12))))

	sf, err := NewSharedDomainFunction(fg, fh)
	require.NoError(t, err)
	out = sf.Apply(z.Reduce(big.NewInt(2))).(*Tuple)
	assert.True(t, out.At(0).Equivalent(g.SelfApply(big.NewInt(2))))
	assert.True(t, out.At(1).Equivalent(g.SelfApply(big.NewInt(6))))

	fc, err := NewGeneratorFunction(NewP256().Generator())
	require.NoError(t, err)
	_, err = NewSharedDomainFunction(fg, fc)
	assert.True(t, errors.Is(err, ErrIncompatibleFunctions))
	_, err = NewSharedDomainFunction()
	assert.True(t, errors.Is(err, ErrArity))
}

func TestCompositeAndProjection(t *testing.T) {
	group := toyGroup(t)
	z := NewZMod(big.NewInt(11))
	ps := NewProductSpace(z, z)

	proj, err := NewProjection(ps, 1)
	require.NoError(t, err)
	fg, err := NewGeneratorFunction(group.Generator())
	require.NoError(t, err)

	comp, err := NewCompositeFunction(proj, fg)
	require.NoError(t, err)
	assert.True(t, comp.Domain().Equal(ps))
	assert.True(t, comp.Codomain().Equal(group))

	x, err := ps.Element(z.Reduce(big.NewInt(7)), z.Reduce(big.NewInt(5)))
	require.NoError(t, err)
	assert.Equal(t, int64(9), comp.Apply(x).(*GStarModElement).Value().Int64())

	_, err = NewCompositeFunction(fg, proj)
	assert.True(t, errors.Is(err, ErrIncompatibleFunctions))
	_, err = NewProjection(ps, 2)
	assert.True(t, errors.Is(err, ErrArity))
}

func TestPartiallyApply(t *testing.T) {
	group := toyGroup(t)
	pair := NewPowerSpace(group, 2)
	full := NewProductSpace(group, pair)

	// (m, (a, b)) -> (a, b/m)
	delta := NewFunc(full, pair, func(x Element) Element {
		tp := x.(*Tuple)
		ab := tp.At(1).(*Tuple)
		out, _ := pair.Element(ab.At(0), ab.At(1).Apply(tp.At(0).Invert()))
		return out
	})

	g := group.Generator()
	m := g.SelfApply(big.NewInt(3))
	dm, err := PartiallyApply(delta, m, 0)
	require.NoError(t, err)
	// The single remaining component is the pair space itself, not a one-element product.
	assert.True(t, dm.Domain().Equal(pair))

	a, b := g.SelfApply(big.NewInt(4)), g.SelfApply(big.NewInt(7))
	ab, err := pair.Element(a, b)
	require.NoError(t, err)
	out := dm.Apply(ab).(*Tuple)
	assert.True(t, out.At(0).Equivalent(a))
	assert.True(t, out.At(1).Equivalent(g.SelfApply(big.NewInt(4))))

	_, err = PartiallyApply(delta, NewZMod(big.NewInt(11)).Identity(), 0)
	assert.True(t, errors.Is(err, ErrNotAMember))
	identity := NewFunc(group, group, func(e Element) Element { return e })
	_, err = PartiallyApply(identity, a, 0)
	assert.True(t, errors.Is(err, ErrArity))
	_, err = PartiallyApply(delta, m, 2)
	assert.True(t, errors.Is(err, ErrArity))
}

func TestPartiallyApplyMiddle(t *testing.T) {
	z := NewZMod(big.NewInt(11))
	ps := NewPowerSpace(z, 3)
	// (x, y, w) -> x + 2y + 3w
	f := NewFunc(ps, z, func(e Element) Element {
		tp := e.(*Tuple)
		return tp.At(0).Apply(tp.At(1).SelfApply(big.NewInt(2))).Apply(tp.At(2).SelfApply(big.NewInt(3)))
	})
	pf, err := PartiallyApply(f, z.Reduce(big.NewInt(1)), 1)
	require.NoError(t, err)
	rest := pf.Domain().(*ProductSpace)
	require.Equal(t, 2, rest.Arity())

	x, err := rest.Element(z.Reduce(big.NewInt(4)), z.Reduce(big.NewInt(5)))
	require.NoError(t, err)
	// 4 + 2 + 15 = 21 = 10 mod 11
	assert.Equal(t, int64(10), pf.Apply(x).(*ZModElement).Value().Int64())
}
