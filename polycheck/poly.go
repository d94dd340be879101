// Package polycheck implements the SCRAPE dual-code degree test and the
// three Lagrange-interpolation-in-the-exponent variants used throughout the
// PVSS core (over G1, G2, and GT). Interpolation itself is delegated to
// go.dedis.ch/kyber/v4/share.RecoverCommit, which performs exactly this
// recovery against any kyber.Group — GT included, since kyber treats the
// group operation as Add regardless of additive/multiplicative notation.
// The dual-code check has no library equivalent in the dependency graph and
// is implemented directly against kyber's Group/Scalar/Point primitives.
package polycheck

import (
	"crypto/cipher"

	"go.dedis.ch/kyber/v4"
	"go.dedis.ch/kyber/v4/share"
	"go.dedis.ch/kyber/v4/util/random"

	"github.com/dedis/scrape-pvss/errs"
)

// EnsureDegree verifies that comms, a vector of n points in group, commits
// to a polynomial of degree at most t. It samples a random dual codeword of
// degree n-t-2 and checks that its inner product with comms vanishes. When
// n == t+1 every vector commits to some polynomial of degree at most t (the
// dual code is trivial), so the check accepts without sampling.
func EnsureDegree(group kyber.Group, comms []kyber.Point, t int, stream cipher.Stream) error {
	n := len(comms)
	if n < t+1 {
		return errs.ErrInsufficientEvaluations
	}
	if stream == nil {
		stream = random.New()
	}

	deg := n - t - 2
	if deg < 0 {
		return nil
	}
	f := share.NewPriPoly(group, deg+1, nil, stream)

	v := group.Point().Null()
	for i := 1; i <= n; i++ {
		xi := group.Scalar().SetInt64(int64(i))

		// f.Eval(i-1) evaluates f at x = i, matching kyber's Eval(k) = f(k+1)
		// convention used throughout this module.
		cperp := group.Scalar().Set(f.Eval(i - 1).V)

		for j := 1; j <= n; j++ {
			if i == j {
				continue
			}
			xj := group.Scalar().SetInt64(int64(j))
			diff := group.Scalar().Sub(xi, xj)
			cperp = group.Scalar().Mul(cperp, group.Scalar().Inv(diff))
		}

		term := group.Point().Mul(cperp, comms[i-1])
		v = group.Point().Add(v, term)
	}

	if !v.Equal(group.Point().Null()) {
		return errs.ErrDualCode
	}
	return nil
}

// LagrangeSimpleG2 interpolates evals (points fixed at 1, ..., t+1) to
// recover the value of the committed polynomial at x=0, in G2.
func LagrangeSimpleG2(group kyber.Group, evals []kyber.Point, t int) (kyber.Point, error) {
	if len(evals) < t+1 {
		return nil, errs.ErrInsufficientEvaluations
	}
	n := len(evals)
	shares := make([]*share.PubShare, t+1)
	for j := 0; j <= t; j++ {
		shares[j] = &share.PubShare{I: j, V: evals[j]}
	}
	return share.RecoverCommit(group, shares, t+1, n)
}

// lagrangeGeneral recovers the value at x=0 of the polynomial committed to
// by evals, evaluated at the caller-chosen points represented as zero-based
// indices (index i stands for evaluation point i+1, matching the
// convention used everywhere else in this module for participant origins).
func lagrangeGeneral(group kyber.Group, evals []kyber.Point, indices []int, t, n int) (kyber.Point, error) {
	if len(evals) < t+1 {
		return nil, errs.ErrInsufficientEvaluations
	}
	if len(evals) != len(indices) {
		return nil, errs.ErrDifferentPointsEvals
	}
	shares := make([]*share.PubShare, len(evals))
	for i := range evals {
		shares[i] = &share.PubShare{I: indices[i], V: evals[i]}
	}
	return share.RecoverCommit(group, shares, t+1, n)
}

// LagrangeGeneralG1 interpolates caller-chosen points/evaluations in G1.
func LagrangeGeneralG1(group kyber.Group, evals []kyber.Point, indices []int, t, n int) (kyber.Point, error) {
	return lagrangeGeneral(group, evals, indices, t, n)
}

// LagrangeGeneralG2 interpolates caller-chosen points/evaluations in G2.
func LagrangeGeneralG2(group kyber.Group, evals []kyber.Point, indices []int, t, n int) (kyber.Point, error) {
	return lagrangeGeneral(group, evals, indices, t, n)
}

// LagrangeGeneralGT interpolates caller-chosen points/evaluations in GT. GT
// is just another kyber.Group to RecoverCommit, so no multiplicative-vs-
// additive special-casing is needed here.
func LagrangeGeneralGT(group kyber.Group, evals []kyber.Point, indices []int, t, n int) (kyber.Point, error) {
	return lagrangeGeneral(group, evals, indices, t, n)
}
