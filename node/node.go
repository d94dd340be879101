// Package node composes a Dealer and an Aggregator into the single unit a
// deployment actually runs: something that both issues its own share and
// verifies/aggregates everyone else's.
package node

import (
	"crypto/cipher"

	"go.dedis.ch/kyber/v4"
	"go.dedis.ch/kyber/v4/pairing"
	"go.dedis.ch/kyber/v4/util/random"

	"github.com/dedis/scrape-pvss/aggregator"
	"github.com/dedis/scrape-pvss/config"
	"github.com/dedis/scrape-pvss/dealer"
	"github.com/dedis/scrape-pvss/errs"
	"github.com/dedis/scrape-pvss/participant"
	"github.com/dedis/scrape-pvss/pvss"
)

// Logger is the observability hook a caller may attach at the boundary
// between the pure cryptographic core and its own logging stack. The core
// itself never logs; event is a short machine-readable name ("share",
// "receive_share", "receive_aggregated_share", "reconstruct") and fields
// carries whatever context is relevant (participant ids, error values).
type Logger func(event string, fields map[string]any)

// Node is one deployment member acting as both dealer and aggregator in a
// PVSS round.
type Node struct {
	Suite      pairing.Suite
	Dealer     *dealer.Dealer
	Aggregator *aggregator.Aggregator
	Logger     Logger
}

// New builds a Node over the given config and participant roster, with d
// as this node's own dealer identity (d.ID must be a key in participants).
// The logger hook defaults to a no-op; attach one with Node.Logger = ... to
// observe share issuance and reception.
func New(suite pairing.Suite, cfg *config.Config, d *dealer.Dealer, participants map[uint32]*participant.Participant) *Node {
	return &Node{
		Suite:      suite,
		Dealer:     d,
		Aggregator: aggregator.New(suite, cfg, participants),
		Logger:     func(string, map[string]any) {},
	}
}

func (n *Node) log(event string, fields map[string]any) {
	if n.Logger != nil {
		n.Logger(event, fields)
	}
}

// Share generates this node's PVSS share for the round: a fresh degree-t
// core over the roster's encryption keys, its decomposition proof, and the
// attestation signature over that proof's digest.
func (n *Node) Share(stream cipher.Stream) (*pvss.Share, error) {
	if stream == nil {
		stream = random.New()
	}

	cfg := n.Aggregator.Config
	keys := make([]kyber.Point, len(n.Aggregator.Participants))
	for i := range keys {
		p, ok := n.Aggregator.Participants[uint32(i)]
		if !ok {
			return nil, &errs.InvalidParticipantID{ID: uint32(i)}
		}
		keys[i] = p.EncryptionKey
	}

	core, secret, err := pvss.GenerateCore(n.Suite, cfg.T, cfg.SRS.G2, keys, stream)
	if err != nil {
		return nil, err
	}

	signed, err := pvss.Sign(n.Suite.G2(), cfg.SRS.G2, secret, n.Dealer.AttestationSK, stream)
	if err != nil {
		return nil, err
	}

	n.log("share", map[string]any{"participant_id": n.Dealer.ID})

	return &pvss.Share{
		ParticipantID: n.Dealer.ID,
		Core:          core,
		SignedProof:   signed,
	}, nil
}

// ReceiveShare verifies and folds a Share from another dealer into this
// node's aggregated transcript.
func (n *Node) ReceiveShare(s *pvss.Share, stream cipher.Stream) error {
	if err := n.Aggregator.ReceiveShare(s, stream); err != nil {
		n.log("receive_share", map[string]any{"participant_id": s.ParticipantID, "error": err.Error()})
		return err
	}
	n.log("receive_share", map[string]any{"participant_id": s.ParticipantID})
	return nil
}

// ReceiveAggregatedShare verifies and folds an already-aggregated share
// into this node's running transcript.
func (n *Node) ReceiveAggregatedShare(agg *pvss.AggregatedShare, stream cipher.Stream) error {
	if err := n.Aggregator.ReceiveAggregatedShare(agg, stream); err != nil {
		n.log("receive_aggregated_share", map[string]any{"error": err.Error()})
		return err
	}
	n.log("receive_aggregated_share", map[string]any{"contributions": len(agg.Contributions)})
	return nil
}

// Reconstruct recovers the epoch beacon value from at least t+1 decrypted
// shares and the epoch generator gr.
func (n *Node) Reconstruct(decs []*pvss.DecryptedShare, gr kyber.Point) (kyber.Point, error) {
	cfg := n.Aggregator.Config
	beacon, err := pvss.Reconstruct(n.Suite, cfg.T, len(n.Aggregator.Participants), decs, gr)
	if err != nil {
		n.log("reconstruct", map[string]any{"decrypted_shares": len(decs), "error": err.Error()})
		return nil, err
	}
	n.log("reconstruct", map[string]any{"decrypted_shares": len(decs)})
	return beacon, nil
}
