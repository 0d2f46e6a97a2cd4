package sigma

import (
	"context"
	"fmt"
	"runtime"

	"github.com/go-errors/errors"
	"github.com/privacybydesign/sigma/algebra"
	"golang.org/x/sync/errgroup"
)

var errRejected = errors.New("proof rejected")

// VerifyAll verifies proofs[i] against publics[i] for all i in parallel, stopping at the first
// invalid proof. It returns false without error if a proof is invalid, and ctx's error if ctx is
// done before all proofs are checked.
func VerifyAll(ctx context.Context, ps ProofSystem, proofs []*Proof, publics []algebra.Element) (bool, error) {
	if len(proofs) != len(publics) {
		return false, errors.WrapPrefix(ErrInputCount, fmt.Sprintf("%d proofs, %d public inputs", len(proofs), len(publics)), 0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range proofs {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			ok, err := ps.Verify(proofs[i], publics[i])
			if err != nil {
				return errors.WrapPrefix(err, fmt.Sprintf("proof %d", i), 0)
			}
			if !ok {
				Logger.Debugf("proof %d rejected", i)
				return errRejected
			}
			return nil
		})
	}

	switch err := g.Wait(); {
	case err == errRejected:
		return false, nil
	case err != nil:
		return false, err
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return true, nil
}
