package schnorrg1_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/kyber/v4"
	"go.dedis.ch/kyber/v4/pairing/bls12381/kilic"
	"go.dedis.ch/kyber/v4/util/random"

	"github.com/dedis/scrape-pvss/sign/schnorrg1"
)

func TestSignVerify(t *testing.T) {
	suite := kilic.NewSuiteBLS12381()
	stream := random.New()
	scheme := schnorrg1.New(suite.G1(), suite.G1().Point().Base())

	kp, err := scheme.GenerateKeyPair(stream)
	require.NoError(t, err)

	msg := []byte("deal for round 7")
	sig, err := scheme.Sign(kp.SK, msg, stream)
	require.NoError(t, err)

	require.NoError(t, scheme.Verify(kp.PK, msg, sig))
}

func TestVerifyRejectsWrongMessage(t *testing.T) {
	suite := kilic.NewSuiteBLS12381()
	stream := random.New()
	scheme := schnorrg1.New(suite.G1(), suite.G1().Point().Base())

	kp, err := scheme.GenerateKeyPair(stream)
	require.NoError(t, err)

	sig, err := scheme.Sign(kp.SK, []byte("original"), stream)
	require.NoError(t, err)

	require.Error(t, scheme.Verify(kp.PK, []byte("tampered"), sig))
}

func TestBatchVerifyAcceptsValidBatchAndRejectsOneBadSignature(t *testing.T) {
	suite := kilic.NewSuiteBLS12381()
	stream := random.New()
	scheme := schnorrg1.New(suite.G1(), suite.G1().Point().Base())

	const batchSize = 5
	pks := make([]kyber.Point, batchSize)
	msgs := make([][]byte, batchSize)
	sigs := make([]*schnorrg1.Signature, batchSize)

	for i := 0; i < batchSize; i++ {
		kp, err := scheme.GenerateKeyPair(stream)
		require.NoError(t, err)
		pks[i] = kp.PK
		msgs[i] = []byte{byte(i)}

		sig, err := scheme.Sign(kp.SK, msgs[i], stream)
		require.NoError(t, err)
		sigs[i] = sig
	}

	require.NoError(t, scheme.BatchVerify(pks, msgs, sigs, stream))

	sigs[2].R = suite.G1().Scalar().Pick(stream)
	require.Error(t, scheme.BatchVerify(pks, msgs, sigs, stream))
}
