package common

import (
	"crypto/sha256"
	"encoding/binary"
	"hash"

	"github.com/privacybydesign/sigma/big"
	"github.com/zeebo/blake3"
)

// HashAlgorithm selects the hash function that Fiat-Shamir transcripts are fed into.
type HashAlgorithm int

const (
	SHA256 HashAlgorithm = iota
	BLAKE3
)

// New returns a fresh hash.Hash of the selected algorithm.
func (a HashAlgorithm) New() hash.Hash {
	switch a {
	case BLAKE3:
		return blake3.New()
	default:
		return sha256.New()
	}
}

func (a HashAlgorithm) String() string {
	switch a {
	case BLAKE3:
		return "blake3"
	default:
		return "sha256"
	}
}

// GetHashNumber hashes a transcript into a non-negative integer of at least bitlen bits.
// Blocks H(counter || transcript) for counter = 0, 1, ... are concatenated, block i
// occupying the bits from i*blocksize upwards.
func GetHashNumber(alg HashAlgorithm, transcript []byte, bitlen uint) *big.Int {
	var counter [8]byte
	res := big.NewInt(0)
	cur := new(big.Int)
	k := uint(0)
	for i := uint64(0); k < bitlen; i++ {
		h := alg.New()
		binary.BigEndian.PutUint64(counter[:], i)
		h.Write(counter[:])
		h.Write(transcript)
		sum := h.Sum(nil)

		cur.SetBytes(sum)
		cur.Lsh(cur, k)
		res.Add(res, cur)
		k += uint(8 * len(sum))
	}
	return res
}
