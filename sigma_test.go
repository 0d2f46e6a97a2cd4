package sigma

import (
	"bytes"
	"crypto/rand"
	"io"
	"testing"

	"github.com/privacybydesign/sigma/algebra"
	"github.com/privacybydesign/sigma/big"
	"github.com/privacybydesign/sigma/challenge"
	"github.com/stretchr/testify/require"
)

// toyGroup is the subgroup of order 11 of Z_23^*, generated by 2.
func toyGroup(t *testing.T) *algebra.GStarMod {
	group, err := algebra.NewGStarMod(big.NewInt(23), big.NewInt(11), big.NewInt(2))
	require.NoError(t, err)
	return group
}

func safePrimeGroup(t *testing.T) *algebra.GStarMod {
	group, err := algebra.NewGStarModSafePrime(big.NewInt(2039))
	require.NoError(t, err)
	return group
}

// testGroup is a group and its generator, for running the same test over several groups.
type testGroup struct {
	name      string
	space     algebra.Space
	generator algebra.Element
}

func testGroups(t *testing.T) []testGroup {
	toy := toyGroup(t)
	safe := safePrimeGroup(t)
	curve := algebra.NewP256()
	return []testGroup{
		{"toy", toy, toy.Generator()},
		{"safeprime", safe, safe.Generator()},
		{"p256", curve, curve.Generator()},
	}
}

func generatorFunction(t *testing.T, g algebra.Element) algebra.Function {
	f, err := algebra.NewGeneratorFunction(g)
	require.NoError(t, err)
	return f
}

// fiatShamirFor returns a Fiat-Shamir generator with the challenge space required for f.
func fiatShamirFor(f algebra.Function, opts ...challenge.Option) *challenge.FiatShamir {
	return challenge.NewFiatShamir(algebra.NewZMod(f.Domain().MinimalOrder()), opts...)
}

func randomElement(t *testing.T, s algebra.Space) algebra.Element {
	e, err := s.RandomElement(rand.Reader)
	require.NoError(t, err)
	return e
}

func zmodValue(e algebra.Element) int64 {
	return e.(*algebra.ZModElement).Value().Int64()
}

// byteReader returns a reader yielding exactly the given bytes. For a space of order below 16,
// each byte below the order is read as one random element of that value.
func byteReader(b ...byte) io.Reader {
	return bytes.NewReader(b)
}

// countingReader counts the bytes read from r.
type countingReader struct {
	r io.Reader
	n int
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += n
	return n, err
}
