package safeprime

import (
	"context"
	"crypto/rand"
	"testing"

	"github.com/privacybydesign/sigma/big"

	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	for _, bits := range []int{8, 64, 256} {
		x, err := Generate(context.Background(), rand.Reader, bits)

		require.NoError(t, err)
		require.NotNil(t, x)
		require.Equal(t, bits, x.BitLen())
		require.True(t, x.ProbablyPrime(100), "Generated number was not prime")

		y := new(big.Int).Sub(x, big.NewInt(1))
		y.Div(y, big.NewInt(2))

		require.True(t, y.ProbablyPrime(100), "Generated number was not a safe prime")
	}
}

func TestGenerateTooSmall(t *testing.T) {
	_, err := Generate(context.Background(), rand.Reader, 2)
	require.ErrorIs(t, err, ErrBitsizeTooSmall)
}

func TestGenerateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Generate(ctx, rand.Reader, 4096)
	require.ErrorIs(t, err, context.Canceled)
}

func TestProbablySafePrime(t *testing.T) {
	require.True(t, ProbablySafePrime(big.NewInt(23), 20))
	require.True(t, ProbablySafePrime(big.NewInt(47), 20))
	require.False(t, ProbablySafePrime(big.NewInt(29), 20))
	require.False(t, ProbablySafePrime(big.NewInt(2), 20))
}
