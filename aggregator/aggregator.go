// Package aggregator implements the verifying/combining side of the
// protocol: checking individual shares and aggregated transcripts against a
// deployment's configuration and participant roster, then folding verified
// contributions into a running aggregated transcript using weighted (not
// boolean) contribution bookkeeping and a compact n+1-pairing batched
// encryption-correctness check.
package aggregator

import (
	"crypto/cipher"

	"go.dedis.ch/kyber/v4"
	"go.dedis.ch/kyber/v4/pairing"
	"go.dedis.ch/kyber/v4/util/random"

	"github.com/dedis/scrape-pvss/config"
	"github.com/dedis/scrape-pvss/errs"
	"github.com/dedis/scrape-pvss/participant"
	"github.com/dedis/scrape-pvss/polycheck"
	"github.com/dedis/scrape-pvss/pvss"
	"github.com/dedis/scrape-pvss/sign/attestation"
)

// Aggregator receives PVSS shares and aggregated shares from a fixed
// roster of participants, verifies them against the deployment config, and
// folds them into a running aggregated transcript.
type Aggregator struct {
	Suite        pairing.Suite
	Config       *config.Config
	Participants map[uint32]*participant.Participant
	Tx           *pvss.AggregatedShare
}

// New builds an empty Aggregator over the given roster, with an initially
// empty aggregated transcript.
func New(suite pairing.Suite, cfg *config.Config, participants map[uint32]*participant.Participant) *Aggregator {
	n := len(participants)
	return &Aggregator{
		Suite:        suite,
		Config:       cfg,
		Participants: participants,
		Tx:           pvss.Empty(suite, cfg.T, n),
	}
}

// CoreVerify checks that core is well-formed and that its decomposition
// proof's gs matches the interpolation of its commitment vector. It does
// not check encryption correctness, which requires an issuer identity and
// is therefore performed in ShareVerify instead.
func (a *Aggregator) CoreVerify(core *pvss.Core, decompGS kyber.Point, stream cipher.Stream) error {
	n := len(a.Participants)
	if len(core.Encs) != n || len(core.Comms) != n {
		return &errs.MismatchedCommitsEncryptionsParticipantsError{
			Encs: len(core.Encs), Comms: len(core.Comms), Participants: n,
		}
	}

	if err := polycheck.EnsureDegree(a.Suite.G2(), core.Comms, a.Config.T, stream); err != nil {
		return err
	}

	point, err := polycheck.LagrangeSimpleG2(a.Suite.G2(), core.Comms, a.Config.T)
	if err != nil {
		return err
	}
	if !point.Equal(decompGS) {
		return errs.ErrGSCheck
	}
	return nil
}

// ShareVerify verifies a single dealer's Share: encryption correctness for
// its own slot, the core's degree/decomposition consistency, and the
// attestation signature over the decomposition proof's digest.
func (a *Aggregator) ShareVerify(s *pvss.Share, stream cipher.Stream) error {
	p, ok := a.Participants[s.ParticipantID]
	if !ok {
		return &errs.InvalidParticipantID{ID: s.ParticipantID}
	}
	if int(s.ParticipantID) >= len(s.Core.Comms) || int(s.ParticipantID) >= len(s.Core.Encs) {
		return &errs.MismatchedCommitsEncryptionsParticipantsError{
			Encs: len(s.Core.Encs), Comms: len(s.Core.Comms), Participants: len(a.Participants),
		}
	}

	// e(pk_i, comms[i]) = e(encs[i], g2)
	lhs := a.Suite.Pair(p.EncryptionKey, s.Core.Comms[s.ParticipantID])
	rhs := a.Suite.Pair(s.Core.Encs[s.ParticipantID], a.Config.SRS.G2)
	if !lhs.Equal(rhs) {
		return errs.ErrEncryptionCorrectness
	}

	if err := a.CoreVerify(s.Core, s.SignedProof.DecompProof.GS, stream); err != nil {
		return err
	}

	if err := s.SignedProof.Verify(a.Suite.G2(), a.Config.SRS.G2, p.AttestationKey); err != nil {
		return err
	}

	return nil
}

// batchedEncryptionCheck verifies e(-ε, g2) · ∏ e(r_i·pk_i, comms[i]) = 1_GT
// for ε = Σ r_i·encs[i], the compact n+1-pairing form of the n-way
// encryption-correctness check.
func (a *Aggregator) batchedEncryptionCheck(comms, encs []kyber.Point, stream cipher.Stream) error {
	if stream == nil {
		stream = random.New()
	}
	n := len(comms)

	eps := a.Suite.G1().Point().Null()
	rs := make([]kyber.Scalar, n)
	for i := 0; i < n; i++ {
		rs[i] = a.Suite.G1().Scalar().Pick(stream)
		eps = a.Suite.G1().Point().Add(eps, a.Suite.G1().Point().Mul(rs[i], encs[i]))
	}

	prod := a.Suite.GT().Point().Null()
	negEps := a.Suite.G1().Point().Neg(eps)
	prod = a.Suite.GT().Point().Add(prod, a.Suite.Pair(negEps, a.Config.SRS.G2))

	for i := 0; i < n; i++ {
		p, ok := a.Participants[uint32(i)]
		if !ok {
			return &errs.InvalidParticipantID{ID: uint32(i)}
		}
		term := a.Suite.Pair(a.Suite.G1().Point().Mul(rs[i], p.EncryptionKey), comms[i])
		prod = a.Suite.GT().Point().Add(prod, term)
	}

	if !prod.Equal(a.Suite.GT().Point().Null()) {
		return errs.ErrEncryptionCorrectness
	}
	return nil
}

// AggregationVerify checks an AggregatedShare in full: size, degree check,
// the batched encryption-correctness equation, that the weighted sum of
// each contribution's gs matches the interpolation of the aggregate's
// commitments, and a batch verification of every contributing signature.
func (a *Aggregator) AggregationVerify(agg *pvss.AggregatedShare, stream cipher.Stream) error {
	n := len(a.Participants)
	if len(agg.Core.Encs) != n || len(agg.Core.Comms) != n {
		return &errs.MismatchedCommitsEncryptionsParticipantsError{
			Encs: len(agg.Core.Encs), Comms: len(agg.Core.Comms), Participants: n,
		}
	}

	if err := polycheck.EnsureDegree(a.Suite.G2(), agg.Core.Comms, agg.T, stream); err != nil {
		return err
	}

	if err := a.batchedEncryptionCheck(agg.Core.Comms, agg.Core.Encs, stream); err != nil {
		return err
	}

	point, err := polycheck.LagrangeSimpleG2(a.Suite.G2(), agg.Core.Comms, agg.T)
	if err != nil {
		return err
	}

	gsTotal := a.Suite.G2().Point().Null()

	ids := make([]uint32, 0, len(agg.Contributions))
	for id := range agg.Contributions {
		ids = append(ids, id)
	}

	vks := make([][attestation.PublicKeySize]byte, len(ids))
	digests := make([][]byte, len(ids))
	sigs := make([][attestation.SignatureSize]byte, len(ids))

	// Every contributing signature is over its own decomposition proof's
	// digest, unlike the original's single shared-digest hack. The NIZK
	// verify and the weighted gs sum are necessarily per-contribution, but
	// the EdDSA signatures are independent of each other and get folded
	// into one batch verification below instead of n separate calls.
	for idx, id := range ids {
		c := agg.Contributions[id]
		if err := c.SignedProof.DecompProof.Verify(a.Suite.G2(), a.Config.SRS.G2); err != nil {
			return errs.ErrDecompProofVerification
		}
		weighted := a.Suite.G2().Point().Mul(a.Suite.G2().Scalar().SetInt64(int64(c.Weight)), c.SignedProof.DecompProof.GS)
		gsTotal = a.Suite.G2().Point().Add(gsTotal, weighted)

		p, ok := a.Participants[id]
		if !ok {
			return &errs.InvalidParticipantID{ID: id}
		}

		digestBytes, err := c.SignedProof.DecompProof.Digest()
		if err != nil {
			return err
		}
		vks[idx] = p.AttestationKey
		digests[idx] = append([]byte(nil), digestBytes[:]...)
		sigs[idx] = c.SignedProof.Signature
	}

	if len(ids) > 0 {
		if err := attestation.VerifyBatch(vks, digests, sigs); err != nil {
			return err
		}
	}

	if !gsTotal.Equal(point) {
		return errs.ErrAggregationReconstructionMismatch
	}

	return nil
}

// ReceiveShare verifies s and, on success, folds it into the aggregator's
// running transcript.
func (a *Aggregator) ReceiveShare(s *pvss.Share, stream cipher.Stream) error {
	if err := a.ShareVerify(s, stream); err != nil {
		return err
	}
	merged, err := pvss.Aggregate(a.Suite, a.Tx, pvss.FromShare(a.Config.T, len(a.Participants), s))
	if err != nil {
		return err
	}
	a.Tx = merged
	return nil
}

// ReceiveAggregatedShare verifies agg and, on success, folds it into the
// aggregator's running transcript.
func (a *Aggregator) ReceiveAggregatedShare(agg *pvss.AggregatedShare, stream cipher.Stream) error {
	if err := a.AggregationVerify(agg, stream); err != nil {
		return err
	}
	merged, err := pvss.Aggregate(a.Suite, a.Tx, agg)
	if err != nil {
		return err
	}
	a.Tx = merged
	return nil
}
