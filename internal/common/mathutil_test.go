package common

import (
	"testing"

	"github.com/privacybydesign/sigma/big"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModInverse(t *testing.T) {
	x, ok := ModInverse(big.NewInt(3), big.NewInt(11))
	require.True(t, ok)
	assert.Equal(t, int64(4), x.Int64())

	x, ok = ModInverse(big.NewInt(-3), big.NewInt(11))
	require.True(t, ok)
	assert.Equal(t, int64(7), x.Int64())

	_, ok = ModInverse(big.NewInt(6), big.NewInt(9))
	assert.False(t, ok)
}

func TestModPow(t *testing.T) {
	x, err := ModPow(big.NewInt(2), big.NewInt(-1), big.NewInt(23))
	require.NoError(t, err)
	assert.Equal(t, int64(12), x.Int64())

	x, err = ModPow(big.NewInt(2), big.NewInt(11), big.NewInt(23))
	require.NoError(t, err)
	assert.Equal(t, int64(1), x.Int64())

	_, err = ModPow(big.NewInt(3), big.NewInt(-1), big.NewInt(9))
	assert.ErrorIs(t, err, ErrNoModInverse)
}

func TestLegendreSymbol(t *testing.T) {
	p := big.NewInt(23)
	squares := map[int64]bool{}
	for i := int64(1); i < 23; i++ {
		squares[i*i%23] = true
	}
	for a := int64(1); a < 23; a++ {
		want := -1
		if squares[a] {
			want = 1
		}
		assert.Equal(t, want, LegendreSymbol(big.NewInt(a), p), "a = %d", a)
	}
	assert.Equal(t, 0, LegendreSymbol(big.NewInt(46), p))
}
