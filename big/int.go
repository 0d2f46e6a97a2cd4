// Package big contains a mostly API-compatible "math/big".Int used for all group orders,
// exponents and residues in this module.
package big

import (
	cryptorand "crypto/rand"
	"fmt"
	"io"
	"math/big"
	mathrand "math/rand"

	"github.com/go-errors/errors"
)

// Int is an API-compatible "math/big".Int.
type Int big.Int

// ErrNonPositiveBound is returned by RandInt when asked to sample below a bound that is not
// positive.
var ErrNonPositiveBound = errors.New("random bound must be positive")

// RandInt wraps "crypto/rand".Int:
// returns a uniform random value in [0, max) read from rnd.
func RandInt(rnd io.Reader, max *Int) (*Int, error) {
	if max == nil || max.Sign() <= 0 {
		return nil, ErrNonPositiveBound
	}
	i, err := cryptorand.Int(rnd, max.Go())
	if err != nil {
		return nil, err
	}
	return Convert(i), nil
}

// Convert from a "math/big".Int
func Convert(x *big.Int) *Int {
	return (*Int)(x)
}

// Go converts to a "math/big".Int
func (i *Int) Go() *big.Int {
	return (*big.Int)(i)
}

// Copy returns a fresh Int holding the same value, or nil for nil.
func Copy(x *Int) *Int {
	if x == nil {
		return nil
	}
	return new(Int).Set(x)
}

// Min returns the smaller of x and y (not a copy).
func Min(x, y *Int) *Int {
	if x.Cmp(y) <= 0 {
		return x
	}
	return y
}

// "math/big".Int API
// We are liberal with using the conversion functions above; these are inlined by the compiler.

func NewInt(x int64) *Int  { return Convert(big.NewInt(x)) }
func Jacobi(x, y *Int) int { return big.Jacobi(x.Go(), y.Go()) }

func (i *Int) Format(s fmt.State, ch rune)          { i.Go().Format(s, ch) }
func (i *Int) Bit(j int) uint                       { return i.Go().Bit(j) }
func (i *Int) Bytes() []byte                        { return i.Go().Bytes() }
func (i *Int) FillBytes(buf []byte) []byte          { return i.Go().FillBytes(buf) }
func (i *Int) BitLen() int                          { return i.Go().BitLen() }
func (i *Int) Int64() int64                         { return i.Go().Int64() }
func (i *Int) Uint64() uint64                       { return i.Go().Uint64() }
func (i *Int) IsInt64() bool                        { return i.Go().IsInt64() }
func (i *Int) Sign() int                            { return i.Go().Sign() }
func (i *Int) Cmp(y *Int) int                       { return i.Go().Cmp(y.Go()) }
func (i *Int) ProbablyPrime(n int) bool             { return i.Go().ProbablyPrime(n) }
func (i *Int) String() string                       { return i.Go().String() }
func (i *Int) Text(base int) string                 { return i.Go().Text(base) }
func (i *Int) SetInt64(x int64) *Int                { return Convert(i.Go().SetInt64(x)) }
func (i *Int) SetUint64(x uint64) *Int              { return Convert(i.Go().SetUint64(x)) }
func (i *Int) Set(x *Int) *Int                      { return Convert(i.Go().Set(x.Go())) }
func (i *Int) Abs(x *Int) *Int                      { return Convert(i.Go().Abs(x.Go())) }
func (i *Int) Neg(x *Int) *Int                      { return Convert(i.Go().Neg(x.Go())) }
func (i *Int) Add(x, y *Int) *Int                   { return Convert(i.Go().Add(x.Go(), y.Go())) }
func (i *Int) Sub(x, y *Int) *Int                   { return Convert(i.Go().Sub(x.Go(), y.Go())) }
func (i *Int) Mul(x, y *Int) *Int                   { return Convert(i.Go().Mul(x.Go(), y.Go())) }
func (i *Int) Quo(x, y *Int) *Int                   { return Convert(i.Go().Quo(x.Go(), y.Go())) }
func (i *Int) Rem(x, y *Int) *Int                   { return Convert(i.Go().Rem(x.Go(), y.Go())) }
func (i *Int) Div(x, y *Int) *Int                   { return Convert(i.Go().Div(x.Go(), y.Go())) }
func (i *Int) Mod(x, y *Int) *Int                   { return Convert(i.Go().Mod(x.Go(), y.Go())) }
func (i *Int) SetBytes(buf []byte) *Int             { return Convert(i.Go().SetBytes(buf)) }
func (i *Int) Lsh(x *Int, n uint) *Int              { return Convert(i.Go().Lsh(x.Go(), n)) }
func (i *Int) Rsh(x *Int, n uint) *Int              { return Convert(i.Go().Rsh(x.Go(), n)) }
func (i *Int) And(x, y *Int) *Int                   { return Convert(i.Go().And(x.Go(), y.Go())) }
func (i *Int) Exp(x, y, m *Int) *Int                { return Convert(i.Go().Exp(x.Go(), y.Go(), m.Go())) }
func (i *Int) ModInverse(g, n *Int) *Int            { return Convert(i.Go().ModInverse(g.Go(), n.Go())) }
func (i *Int) GCD(x, y, a, b *Int) *Int             { return Convert(i.Go().GCD(x.Go(), y.Go(), a.Go(), b.Go())) }
func (i *Int) Rand(rnd *mathrand.Rand, n *Int) *Int { return Convert(i.Go().Rand(rnd, n.Go())) }
func (i *Int) SetString(s string, base int) (*Int, bool) {
	z, b := i.Go().SetString(s, base)
	return Convert(z), b
}
func (i *Int) QuoRem(x, y, r *Int) (*Int, *Int) {
	z, w := i.Go().QuoRem(x.Go(), y.Go(), r.Go())
	return Convert(z), Convert(w)
}
