package dleq_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/kyber/v4/pairing/bls12381/kilic"
	"go.dedis.ch/kyber/v4/util/random"

	"github.com/dedis/scrape-pvss/nizk/dleq"
)

func TestProveVerify(t *testing.T) {
	suite := kilic.NewSuiteBLS12381()
	g1, g2 := suite.G1(), suite.G2()
	stream := random.New()

	base1 := g1.Point().Base()
	base2 := g2.Point().Base()
	w := g1.Scalar().Pick(stream)
	y1 := g1.Point().Mul(w, base1)
	y2 := g2.Point().Mul(w, base2)

	proof, err := dleq.Prove(g1, g2, base1, y1, base2, y2, w, stream)
	require.NoError(t, err)
	require.NoError(t, dleq.Verify(g1, g2, base1, y1, base2, y2, proof))
}

func TestVerifyRejectsUnequalLogs(t *testing.T) {
	suite := kilic.NewSuiteBLS12381()
	g1, g2 := suite.G1(), suite.G2()
	stream := random.New()

	base1 := g1.Point().Base()
	base2 := g2.Point().Base()
	w := g1.Scalar().Pick(stream)
	wOther := g1.Scalar().Pick(stream)
	y1 := g1.Point().Mul(w, base1)
	y2 := g2.Point().Mul(wOther, base2) // different exponent on the G2 side

	proof, err := dleq.Prove(g1, g2, base1, y1, base2, y2, w, stream)
	require.NoError(t, err)
	require.Error(t, dleq.Verify(g1, g2, base1, y1, base2, y2, proof))
}

func TestVerifyRejectsTamperedChallenge(t *testing.T) {
	suite := kilic.NewSuiteBLS12381()
	g1, g2 := suite.G1(), suite.G2()
	stream := random.New()

	base1 := g1.Point().Base()
	base2 := g2.Point().Base()
	w := g1.Scalar().Pick(stream)
	y1 := g1.Point().Mul(w, base1)
	y2 := g2.Point().Mul(w, base2)

	proof, err := dleq.Prove(g1, g2, base1, y1, base2, y2, w, stream)
	require.NoError(t, err)

	proof.C = g1.Scalar().Pick(stream)
	require.Error(t, dleq.Verify(g1, g2, base1, y1, base2, y2, proof))
}

func TestMarshalUnmarshalBinaryRoundTrip(t *testing.T) {
	suite := kilic.NewSuiteBLS12381()
	g1, g2 := suite.G1(), suite.G2()
	stream := random.New()

	base1 := g1.Point().Base()
	base2 := g2.Point().Base()
	w := g1.Scalar().Pick(stream)
	y1 := g1.Point().Mul(w, base1)
	y2 := g2.Point().Mul(w, base2)

	proof, err := dleq.Prove(g1, g2, base1, y1, base2, y2, w, stream)
	require.NoError(t, err)

	data, err := proof.MarshalBinary()
	require.NoError(t, err)

	var got dleq.Proof
	require.NoError(t, got.UnmarshalBinary(g1, g2, data))
	require.NoError(t, dleq.Verify(g1, g2, base1, y1, base2, y2, &got))
}
