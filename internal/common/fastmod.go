package common

import (
	"github.com/privacybydesign/sigma/big"
)

// FastMod reduces modulo a fixed p. When p = 2^b - c for a small c, reduction folds the high
// bits down instead of dividing; for other moduli it falls back to big.Int.Mod.
type FastMod struct {
	enabled bool
	p       big.Int
	c       big.Int
	b       uint
	mask    big.Int // (1 << b) - 1
}

// NewFastMod returns a FastMod for the positive modulus p.
func NewFastMod(p *big.Int) *FastMod {
	var m FastMod
	m.Set(p)
	return &m
}

func (m *FastMod) Set(p *big.Int) {
	var tmp, one big.Int
	one.SetUint64(1)
	m.p.Set(p)
	m.b = uint(p.BitLen())
	tmp.SetUint64(1)
	tmp.Lsh(&tmp, m.b)
	m.c.Sub(&tmp, &m.p)
	if m.c.BitLen() < 60 {
		m.enabled = true
		m.mask.Sub(&tmp, &one)
	} else {
		m.enabled = false
	}
}

// Modulus returns a copy of p.
func (m *FastMod) Modulus() *big.Int {
	return new(big.Int).Set(&m.p)
}

// Mod sets ret to x mod p, in [0, p), and returns it.
func (m *FastMod) Mod(ret, x *big.Int) *big.Int {
	if !m.enabled || x.Sign() == -1 {
		return ret.Mod(x, &m.p)
	}

	if x.Cmp(&m.p) < 0 {
		return ret.Set(x)
	}

	cur := x

	var tmp, carry big.Int
	retSet := false
	for {
		carry.Rsh(cur, m.b)
		if carry.Sign() == 0 {
			break
		}
		retSet = true
		ret.And(cur, &m.mask)
		tmp.Mul(&carry, &m.c)
		ret.Add(ret, &tmp)
		cur = ret
	}

	if !retSet {
		if x.Cmp(&m.p) < 0 {
			return ret.Set(x)
		}
		return ret.Sub(x, &m.p)
	}

	if ret.Cmp(&m.p) >= 0 {
		ret.Sub(ret, &m.p)
	}

	return ret
}

// MulMod sets ret to x*y mod p and returns it.
func (m *FastMod) MulMod(ret, x, y *big.Int) *big.Int {
	var tmp big.Int
	tmp.Mul(x, y)
	return m.Mod(ret, &tmp)
}
