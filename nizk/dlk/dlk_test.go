package dlk_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/kyber/v4/pairing/bls12381/kilic"
	"go.dedis.ch/kyber/v4/util/random"

	"github.com/dedis/scrape-pvss/nizk/dlk"
)

func TestProveVerify(t *testing.T) {
	suite := kilic.NewSuiteBLS12381()
	g2 := suite.G2()
	stream := random.New()

	g := g2.Point().Base()
	w := g2.Scalar().Pick(stream)
	y := g2.Point().Mul(w, g)

	proof, err := dlk.Prove(g2, g, y, w, stream)
	require.NoError(t, err)
	require.NoError(t, dlk.Verify(g2, g, y, proof))
}

func TestVerifyRejectsTamperedResponse(t *testing.T) {
	suite := kilic.NewSuiteBLS12381()
	g2 := suite.G2()
	stream := random.New()

	g := g2.Point().Base()
	w := g2.Scalar().Pick(stream)
	y := g2.Point().Mul(w, g)

	proof, err := dlk.Prove(g2, g, y, w, stream)
	require.NoError(t, err)

	proof.Z = g2.Scalar().Pick(stream)
	require.Error(t, dlk.Verify(g2, g, y, proof))
}

func TestVerifyRejectsWrongStatement(t *testing.T) {
	suite := kilic.NewSuiteBLS12381()
	g2 := suite.G2()
	stream := random.New()

	g := g2.Point().Base()
	w := g2.Scalar().Pick(stream)
	y := g2.Point().Mul(w, g)

	proof, err := dlk.Prove(g2, g, y, w, stream)
	require.NoError(t, err)

	otherY := g2.Point().Mul(g2.Scalar().Pick(stream), g)
	require.Error(t, dlk.Verify(g2, g, otherY, proof))
}

func TestMarshalUnmarshalBinaryRoundTrip(t *testing.T) {
	suite := kilic.NewSuiteBLS12381()
	g2 := suite.G2()
	stream := random.New()

	g := g2.Point().Base()
	w := g2.Scalar().Pick(stream)
	y := g2.Point().Mul(w, g)

	proof, err := dlk.Prove(g2, g, y, w, stream)
	require.NoError(t, err)

	data, err := proof.MarshalBinary()
	require.NoError(t, err)

	var got dlk.Proof
	require.NoError(t, got.UnmarshalBinary(g2, data))
	require.NoError(t, dlk.Verify(g2, g, y, &got))
}
