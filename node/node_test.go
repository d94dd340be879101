package node_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/kyber/v4/pairing/bls12381/kilic"
	"go.dedis.ch/kyber/v4/util/random"

	"github.com/dedis/scrape-pvss/config"
	"github.com/dedis/scrape-pvss/dealer"
	"github.com/dedis/scrape-pvss/node"
	"github.com/dedis/scrape-pvss/participant"
	"github.com/dedis/scrape-pvss/pvss"
	"github.com/dedis/scrape-pvss/sign/attestation"
	"github.com/dedis/scrape-pvss/srs"
)

const (
	roundT = 2
	roundN = 5
)

func buildNodes(t *testing.T) []*node.Node {
	suite := kilic.NewSuiteBLS12381()
	stream := random.New()

	s, err := srs.Setup(suite, stream)
	require.NoError(t, err)

	cfg, err := config.New(s, roundT, roundN)
	require.NoError(t, err)

	dealers := make([]*dealer.Dealer, roundN)
	participants := make(map[uint32]*participant.Participant, roundN)
	for i := 0; i < roundN; i++ {
		attKP, err := attestation.GenerateKeyPair()
		require.NoError(t, err)

		d, err := dealer.New(suite.G1(), uint32(i), attKP, stream)
		require.NoError(t, err)
		dealers[i] = d
		participants[uint32(i)] = d.Participant
	}

	nodes := make([]*node.Node, roundN)
	for i := 0; i < roundN; i++ {
		nodes[i] = node.New(suite, cfg, dealers[i], participants)
	}
	return nodes
}

func TestRoundSharesVerifyAndAggregate(t *testing.T) {
	nodes := buildNodes(t)

	shares := make([]*pvss.Share, roundN)
	for i, n := range nodes {
		s, err := n.Share(nil)
		require.NoError(t, err)
		shares[i] = s
	}

	// Every node receives every other node's share (including its own, the
	// natural broadcast pattern) and folds it into its local transcript.
	for _, receiver := range nodes {
		for _, s := range shares {
			require.NoError(t, receiver.ReceiveShare(s, nil))
		}
	}

	for _, n := range nodes {
		require.Equal(t, uint64(1), n.Aggregator.Tx.Contributions[shares[0].ParticipantID].Weight)
		require.NoError(t, n.Aggregator.AggregationVerify(n.Aggregator.Tx, nil))
	}
}

func TestReconstructRecoversBeaconAcrossNodes(t *testing.T) {
	nodes := buildNodes(t)

	shares := make([]*pvss.Share, roundN)
	for i, n := range nodes {
		s, err := n.Share(nil)
		require.NoError(t, err)
		shares[i] = s
	}

	for _, receiver := range nodes {
		for _, s := range shares {
			require.NoError(t, receiver.ReceiveShare(s, nil))
		}
	}

	suite := kilic.NewSuiteBLS12381()
	gr := suite.G2().Point().Base()

	decs := make([]*pvss.DecryptedShare, 0, roundT+1)
	for i := 0; i <= roundT; i++ {
		n := nodes[i]
		dec, err := pvss.Decrypt(suite, n.Aggregator.Tx.Core, uint32(i), nodes[i].Dealer.EncryptionSK)
		require.NoError(t, err)
		decs = append(decs, dec)
	}

	beacon, err := nodes[0].Reconstruct(decs, gr)
	require.NoError(t, err)
	require.NotNil(t, beacon)
}

// TestReceiveAggregatedSharePropagatesSubcommitteeTranscript exercises the
// subcommittee flow: one node aggregates the shares of the first t+1
// dealers, then gossips the resulting AggregatedShare to another node that
// has not received any of those shares directly, which must fold it in the
// same as if it had received each Share directly.
func TestReceiveAggregatedSharePropagatesSubcommitteeTranscript(t *testing.T) {
	nodes := buildNodes(t)

	shares := make([]*pvss.Share, roundN)
	for i, n := range nodes {
		s, err := n.Share(nil)
		require.NoError(t, err)
		shares[i] = s
	}

	subcommittee := shares[:roundT+1]

	aggregator := nodes[len(nodes)-1]
	for _, s := range subcommittee {
		require.NoError(t, aggregator.ReceiveShare(s, nil))
	}

	outsider := nodes[0]
	require.NoError(t, outsider.ReceiveAggregatedShare(aggregator.Aggregator.Tx, nil))

	for _, s := range subcommittee {
		require.Equal(t, uint64(1), outsider.Aggregator.Tx.Contributions[s.ParticipantID].Weight)
	}
	require.NoError(t, outsider.Aggregator.AggregationVerify(outsider.Aggregator.Tx, nil))

	suite := kilic.NewSuiteBLS12381()
	gr := suite.G2().Point().Base()

	decs := make([]*pvss.DecryptedShare, 0, roundT+1)
	for i := 0; i <= roundT; i++ {
		dec, err := pvss.Decrypt(suite, outsider.Aggregator.Tx.Core, uint32(i), nodes[i].Dealer.EncryptionSK)
		require.NoError(t, err)
		decs = append(decs, dec)
	}

	beacon, err := outsider.Reconstruct(decs, gr)
	require.NoError(t, err)
	require.NotNil(t, beacon)
}
