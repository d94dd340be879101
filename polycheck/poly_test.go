package polycheck_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/kyber/v4"
	"go.dedis.ch/kyber/v4/pairing/bls12381/kilic"
	"go.dedis.ch/kyber/v4/share"
	"go.dedis.ch/kyber/v4/util/random"

	"github.com/dedis/scrape-pvss/polycheck"
)

func TestEnsureDegreeAcceptsLowDegree(t *testing.T) {
	suite := kilic.NewSuiteBLS12381()
	g2 := suite.G2()
	stream := random.New()

	const n, degree = 6, 2
	p := share.NewPriPoly(g2, degree+1, nil, stream)
	pub := p.Commit(g2.Point().Base())

	vec := make([]kyber.Point, n)
	for j := 0; j < n; j++ {
		vec[j] = pub.Eval(j).V
	}

	require.NoError(t, polycheck.EnsureDegree(g2, vec, degree, stream))
}

func TestEnsureDegreeRejectsHighDegree(t *testing.T) {
	suite := kilic.NewSuiteBLS12381()
	g2 := suite.G2()
	stream := random.New()

	const n, degree, actualDegree = 6, 2, 4
	p := share.NewPriPoly(g2, actualDegree+1, nil, stream)
	pub := p.Commit(g2.Point().Base())

	vec := make([]kyber.Point, n)
	for j := 0; j < n; j++ {
		vec[j] = pub.Eval(j).V
	}

	require.Error(t, polycheck.EnsureDegree(g2, vec, degree, stream))
}

func TestLagrangeSimpleG2RecoversFreeTerm(t *testing.T) {
	suite := kilic.NewSuiteBLS12381()
	g2 := suite.G2()
	stream := random.New()

	const degree = 3
	p := share.NewPriPoly(g2, degree+1, nil, stream)
	secret := p.Secret()
	pub := p.Commit(g2.Point().Base())

	n := degree + 3
	vec := make([]kyber.Point, n)
	for j := 0; j < n; j++ {
		vec[j] = pub.Eval(j).V
	}

	got, err := polycheck.LagrangeSimpleG2(g2, vec, degree)
	require.NoError(t, err)

	want := g2.Point().Mul(secret, g2.Point().Base())
	require.True(t, want.Equal(got))
}
