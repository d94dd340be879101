package pvss

import (
	"go.dedis.ch/kyber/v4"
	"go.dedis.ch/kyber/v4/pairing"

	"github.com/dedis/scrape-pvss/errs"
	"github.com/dedis/scrape-pvss/polycheck"
)

// Reconstruct recovers the epoch's G1 secret-in-the-exponent from at least
// t+1 decrypted shares by Lagrange interpolation, then pairs it with the
// epoch generator gr to produce the GT beacon value.
func Reconstruct(suite pairing.Suite, t, n int, decs []*DecryptedShare, gr kyber.Point) (kyber.Point, error) {
	if len(decs) < t+1 {
		return nil, errs.ErrInsufficientEvaluations
	}

	evals := make([]kyber.Point, len(decs))
	indices := make([]int, len(decs))
	for i, d := range decs {
		evals[i] = d.Dec
		indices[i] = int(d.Origin)
	}

	s, err := polycheck.LagrangeGeneralG1(suite.G1(), evals, indices, t, n)
	if err != nil {
		return nil, err
	}
	return suite.Pair(s, gr), nil
}

// ReconstructGT recovers the beacon value directly in GT by pairing each
// decrypted share with the epoch generator first, then interpolating
// exponents in GT. This lets a subcommittee reconstruct the beacon without
// any single party ever learning the G1 preimage.
func ReconstructGT(suite pairing.Suite, t, n int, decs []*DecryptedShare, gr kyber.Point) (kyber.Point, error) {
	if len(decs) < t+1 {
		return nil, errs.ErrInsufficientEvaluations
	}

	evals := make([]kyber.Point, len(decs))
	indices := make([]int, len(decs))
	for i, d := range decs {
		evals[i] = suite.Pair(d.Dec, gr)
		indices[i] = int(d.Origin)
	}

	return polycheck.LagrangeGeneralGT(suite.GT(), evals, indices, t, n)
}
