package aggregator_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/kyber/v4"
	"go.dedis.ch/kyber/v4/pairing/bls12381/kilic"
	"go.dedis.ch/kyber/v4/util/random"

	"github.com/dedis/scrape-pvss/aggregator"
	"github.com/dedis/scrape-pvss/config"
	"github.com/dedis/scrape-pvss/participant"
	"github.com/dedis/scrape-pvss/pvss"
	"github.com/dedis/scrape-pvss/sign/attestation"
	"github.com/dedis/scrape-pvss/srs"
)

const (
	aggT = 1
	aggN = 4
)

// fixture bundles a freshly built Aggregator with the private material
// (encryption and attestation secret keys) needed to issue shares in tests.
type fixture struct {
	agg          *aggregator.Aggregator
	cfg          *config.Config
	encSKs       []kyber.Scalar
	attestKPs    []*attestation.KeyPair
	participants map[uint32]*participant.Participant
}

func buildFixture(t *testing.T) *fixture {
	suite := kilic.NewSuiteBLS12381()
	stream := random.New()

	s, err := srs.Setup(suite, stream)
	require.NoError(t, err)
	cfg, err := config.New(s, aggT, aggN)
	require.NoError(t, err)

	encSKs := make([]kyber.Scalar, aggN)
	attestKPs := make([]*attestation.KeyPair, aggN)
	participants := make(map[uint32]*participant.Participant, aggN)
	for i := 0; i < aggN; i++ {
		encSKs[i] = suite.G1().Scalar().Pick(stream)
		pk := suite.G1().Point().Mul(encSKs[i], nil)

		attKP, err := attestation.GenerateKeyPair()
		require.NoError(t, err)
		attestKPs[i] = attKP

		participants[uint32(i)] = participant.New(uint32(i), pk, attKP.PublicKey)
	}

	return &fixture{
		agg:          aggregator.New(suite, cfg, participants),
		cfg:          cfg,
		encSKs:       encSKs,
		attestKPs:    attestKPs,
		participants: participants,
	}
}

func TestReceiveShareThenAggregationVerify(t *testing.T) {
	suite := kilic.NewSuiteBLS12381()
	stream := random.New()
	f := buildFixture(t)

	keys := make([]kyber.Point, aggN)
	for i := 0; i < aggN; i++ {
		keys[i] = f.participants[uint32(i)].EncryptionKey
	}

	core, secret, err := pvss.GenerateCore(suite, aggT, f.cfg.SRS.G2, keys, stream)
	require.NoError(t, err)

	signed, err := pvss.Sign(suite.G2(), f.cfg.SRS.G2, secret, f.attestKPs[0].PrivateKey, stream)
	require.NoError(t, err)

	s := &pvss.Share{ParticipantID: 0, Core: core, SignedProof: signed}

	require.NoError(t, f.agg.ReceiveShare(s, stream))
	require.NoError(t, f.agg.AggregationVerify(f.agg.Tx, stream))
	require.Equal(t, uint64(1), f.agg.Tx.Contributions[0].Weight)
}

func TestReceiveShareRejectsWrongAttestationSignature(t *testing.T) {
	suite := kilic.NewSuiteBLS12381()
	stream := random.New()
	f := buildFixture(t)

	keys := make([]kyber.Point, aggN)
	for i := 0; i < aggN; i++ {
		keys[i] = f.participants[uint32(i)].EncryptionKey
	}

	core, secret, err := pvss.GenerateCore(suite, aggT, f.cfg.SRS.G2, keys, stream)
	require.NoError(t, err)

	// Sign with participant 1's key while claiming to be participant 0.
	signed, err := pvss.Sign(suite.G2(), f.cfg.SRS.G2, secret, f.attestKPs[1].PrivateKey, stream)
	require.NoError(t, err)

	s := &pvss.Share{ParticipantID: 0, Core: core, SignedProof: signed}
	require.Error(t, f.agg.ReceiveShare(s, stream))
}

func TestCoreVerifyRejectsMismatchedGS(t *testing.T) {
	suite := kilic.NewSuiteBLS12381()
	stream := random.New()
	f := buildFixture(t)

	keys := make([]kyber.Point, aggN)
	for i := 0; i < aggN; i++ {
		keys[i] = f.participants[uint32(i)].EncryptionKey
	}

	core, _, err := pvss.GenerateCore(suite, aggT, f.cfg.SRS.G2, keys, stream)
	require.NoError(t, err)

	wrongGS := suite.G2().Point().Pick(stream)
	require.Error(t, f.agg.CoreVerify(core, wrongGS, stream))
}
