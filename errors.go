package sigma

import (
	"github.com/go-errors/errors"
)

var (
	ErrInvalidPrivateInput    = errors.New("private input is not an element of the private input space")
	ErrInvalidPublicInput     = errors.New("public input is not an element of the public input space")
	ErrInvalidProof           = errors.New("proof is not an element of the proof space")
	ErrMissingRandomness      = errors.New("no randomness source given")
	ErrChallengeSpaceMismatch = errors.New("challenge space does not match the minimal order of the domain")
	ErrMemberNotFound         = errors.New("value is not in the member set")
	ErrEmptyMemberSet         = errors.New("member set is empty")
	ErrDuplicateMember        = errors.New("member set contains a value twice")
	ErrInvalidFunction        = errors.New("proof functions cannot be combined")
	ErrInputCount             = errors.New("number of proofs and public inputs differ")
)
