package pvss

import (
	"crypto/cipher"
	"encoding/binary"
	"sort"

	"go.dedis.ch/kyber/v4"
	"go.dedis.ch/kyber/v4/pairing"
	"go.dedis.ch/kyber/v4/util/random"

	"github.com/dedis/scrape-pvss/decomp"
	"github.com/dedis/scrape-pvss/errs"
	"github.com/dedis/scrape-pvss/sign/attestation"
)

// SignedProof is a decomposition proof together with the dealer's
// attestation signature over its digest, the unit the aggregator verifies
// and gossips before ever looking at the (much larger) core vectors.
type SignedProof struct {
	DecompProof *decomp.Proof
	Signature   [attestation.SignatureSize]byte
}

// Sign produces a SignedProof: the dealer's decomposition proof of s,
// signed with its attestation key.
func Sign(g2Group kyber.Group, g2 kyber.Point, s kyber.Scalar, attestationSK [attestation.PrivateKeySize]byte, stream cipher.Stream) (*SignedProof, error) {
	if stream == nil {
		stream = random.New()
	}
	p, err := decomp.Generate(g2Group, g2, s, stream)
	if err != nil {
		return nil, err
	}
	digest, err := p.Digest()
	if err != nil {
		return nil, err
	}
	sig := attestation.Sign(attestationSK, digest[:])
	return &SignedProof{DecompProof: p, Signature: sig}, nil
}

// Verify checks the decomposition proof and the attestation signature over
// its digest.
func (sp *SignedProof) Verify(g2Group kyber.Group, g2 kyber.Point, attestationVK [attestation.PublicKeySize]byte) error {
	if err := sp.DecompProof.Verify(g2Group, g2); err != nil {
		return errs.ErrDecompProofVerification
	}
	digest, err := sp.DecompProof.Digest()
	if err != nil {
		return err
	}
	if err := attestation.Verify(attestationVK, digest[:], sp.Signature); err != nil {
		return err
	}
	return nil
}

// MarshalBinary encodes the signed proof as decomp-proof || signature.
func (sp *SignedProof) MarshalBinary() ([]byte, error) {
	piBytes, err := sp.DecompProof.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return append(piBytes, sp.Signature[:]...), nil
}

// UnmarshalBinary decodes a signed proof previously produced by
// MarshalBinary against g2Group.
func (sp *SignedProof) UnmarshalBinary(g2Group kyber.Group, data []byte) error {
	piLen := decomp.Size(g2Group)
	if len(data) != piLen+attestation.SignatureSize {
		return errs.Fatalf("pvss: signed proof: want %d bytes, got %d", piLen+attestation.SignatureSize, len(data))
	}

	var p decomp.Proof
	if err := p.UnmarshalBinary(g2Group, data[:piLen]); err != nil {
		return err
	}
	sp.DecompProof = &p
	copy(sp.Signature[:], data[piLen:])
	return nil
}

// Share is a single dealer's contribution: its core (comms/encs vectors)
// together with the signed proof of its decomposition.
type Share struct {
	ParticipantID uint32
	Core          *Core
	SignedProof   *SignedProof
}

// MarshalBinary encodes the share as participant_id (4 bytes) ||
// len(core) (4 bytes) || core || signed proof. The core is length-prefixed
// because it is the only variable-length component; the signed proof's
// size follows deterministically from the suite.
func (s *Share) MarshalBinary() ([]byte, error) {
	coreBytes, err := s.Core.MarshalBinary()
	if err != nil {
		return nil, err
	}
	spBytes, err := s.SignedProof.MarshalBinary()
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, 8+len(coreBytes)+len(spBytes))
	out = append(out, byte(s.ParticipantID>>24), byte(s.ParticipantID>>16), byte(s.ParticipantID>>8), byte(s.ParticipantID))
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(coreBytes)))
	out = append(out, lenBuf[:]...)
	out = append(out, coreBytes...)
	out = append(out, spBytes...)
	return out, nil
}

// UnmarshalBinary decodes a share previously produced by MarshalBinary
// against the given pairing suite.
func (s *Share) UnmarshalBinary(suite pairing.Suite, data []byte) error {
	if len(data) < 8 {
		return errs.Fatalf("pvss: share: truncated header")
	}
	s.ParticipantID = uint32(data[0])<<24 | uint32(data[1])<<16 | uint32(data[2])<<8 | uint32(data[3])
	data = data[4:]

	coreLen := binary.BigEndian.Uint32(data[:4])
	data = data[4:]
	if uint32(len(data)) < coreLen {
		return errs.Fatalf("pvss: share: truncated core")
	}

	var c Core
	if err := c.UnmarshalBinary(suite, data[:coreLen]); err != nil {
		return err
	}
	s.Core = &c
	data = data[coreLen:]

	var sp SignedProof
	if err := sp.UnmarshalBinary(suite.G2(), data); err != nil {
		return err
	}
	s.SignedProof = &sp
	return nil
}

// contribution records one issuer's signed proof and the number of times
// it has been folded into an AggregatedShare's core (re-aggregating the
// same share adds its core again and increments the weight to match).
type contribution struct {
	SignedProof *SignedProof
	Weight      uint64
}

// AggregatedShare is the homomorphic sum of zero or more Shares: a single
// core together with a weighted map of which issuers contributed to it.
// The weight map is what lets AggregationVerify check
// Σ_id weight(id)·gs_id == interpolation(comms) even after the same
// contribution is folded in more than once, without desynchronizing the
// core from the contributions map the way a boolean seen-set would.
type AggregatedShare struct {
	T, N          int
	Core          *Core
	Contributions map[uint32]*contribution
}

// Empty returns an aggregated share with no contributions yet: an all-null
// core of length n under threshold t, the identity element for Aggregate.
func Empty(suite pairing.Suite, t, n int) *AggregatedShare {
	comms := make([]kyber.Point, n)
	encs := make([]kyber.Point, n)
	for j := 0; j < n; j++ {
		comms[j] = suite.G2().Point().Null()
		encs[j] = suite.G1().Point().Null()
	}
	return &AggregatedShare{
		T:             t,
		N:             n,
		Core:          &Core{Comms: comms, Encs: encs},
		Contributions: map[uint32]*contribution{},
	}
}

// FromShare wraps a single dealer Share as a one-issuer AggregatedShare.
func FromShare(t, n int, s *Share) *AggregatedShare {
	return &AggregatedShare{
		T: t,
		N: n,
		Core: &Core{
			Comms: s.Core.Comms,
			Encs:  s.Core.Encs,
		},
		Contributions: map[uint32]*contribution{
			s.ParticipantID: {SignedProof: s.SignedProof, Weight: 1},
		},
	}
}

// Aggregate homomorphically merges b into a, producing a new
// AggregatedShare. Both inputs must share the same (t, n); contributions
// from the same issuer are required to carry an identical gs (a
// disagreement means two different polynomials claim the same issuer,
// which is a protocol violation) and their weights add.
func Aggregate(suite pairing.Suite, a, b *AggregatedShare) (*AggregatedShare, error) {
	if a.T != b.T || a.N != b.N {
		return nil, &errs.TranscriptDifferentConfig{T1: a.T, N1: a.N, T2: b.T, N2: b.N}
	}

	core, err := Add(suite, a.Core, b.Core)
	if err != nil {
		return nil, err
	}

	contributions := make(map[uint32]*contribution, len(a.Contributions)+len(b.Contributions))
	for id, c := range a.Contributions {
		contributions[id] = &contribution{SignedProof: c.SignedProof, Weight: c.Weight}
	}
	for id, c := range b.Contributions {
		if existing, ok := contributions[id]; ok {
			if !existing.SignedProof.DecompProof.GS.Equal(c.SignedProof.DecompProof.GS) {
				return nil, errs.ErrTranscriptDifferentCommitments
			}
			existing.Weight += c.Weight
			continue
		}
		contributions[id] = &contribution{SignedProof: c.SignedProof, Weight: c.Weight}
	}

	return &AggregatedShare{T: a.T, N: a.N, Core: core, Contributions: contributions}, nil
}

// MarshalBinary encodes the aggregated share canonically as t (8 bytes) ||
// n (8 bytes) || len(core) (4 bytes) || core || (count:u64) || entries
// sorted by issuer id ascending, each id (4 bytes) || signed proof ||
// weight (8 bytes). The ascending order makes the encoding deterministic
// regardless of the map's iteration order or the history of Aggregate
// calls that produced it.
func (a *AggregatedShare) MarshalBinary() ([]byte, error) {
	coreBytes, err := a.Core.MarshalBinary()
	if err != nil {
		return nil, err
	}

	ids := make([]uint32, 0, len(a.Contributions))
	for id := range a.Contributions {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]byte, 16, 16+4+len(coreBytes)+8)
	binary.BigEndian.PutUint64(out[0:8], uint64(a.T))
	binary.BigEndian.PutUint64(out[8:16], uint64(a.N))

	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(coreBytes)))
	out = append(out, lenBuf[:]...)
	out = append(out, coreBytes...)

	var countBuf [8]byte
	binary.BigEndian.PutUint64(countBuf[:], uint64(len(ids)))
	out = append(out, countBuf[:]...)

	for _, id := range ids {
		c := a.Contributions[id]
		spBytes, err := c.SignedProof.MarshalBinary()
		if err != nil {
			return nil, err
		}
		var idBuf [4]byte
		binary.BigEndian.PutUint32(idBuf[:], id)
		out = append(out, idBuf[:]...)
		out = append(out, spBytes...)
		var weightBuf [8]byte
		binary.BigEndian.PutUint64(weightBuf[:], c.Weight)
		out = append(out, weightBuf[:]...)
	}

	return out, nil
}

// UnmarshalBinary decodes an aggregated share previously produced by
// MarshalBinary against the given pairing suite. It rejects a contribution
// list that is not strictly ascending by id, since such an encoding could
// not have come from MarshalBinary.
func (a *AggregatedShare) UnmarshalBinary(suite pairing.Suite, data []byte) error {
	if len(data) < 20 {
		return errs.Fatalf("pvss: aggregated share: truncated header")
	}
	a.T = int(binary.BigEndian.Uint64(data[0:8]))
	a.N = int(binary.BigEndian.Uint64(data[8:16]))
	coreLen := binary.BigEndian.Uint32(data[16:20])
	data = data[20:]

	if uint32(len(data)) < coreLen {
		return errs.Fatalf("pvss: aggregated share: truncated core")
	}
	var c Core
	if err := c.UnmarshalBinary(suite, data[:coreLen]); err != nil {
		return err
	}
	a.Core = &c
	data = data[coreLen:]

	if len(data) < 8 {
		return errs.Fatalf("pvss: aggregated share: truncated contribution count")
	}
	count := binary.BigEndian.Uint64(data[:8])
	data = data[8:]

	spSize := decomp.Size(suite.G2()) + attestation.SignatureSize
	entrySize := 4 + spSize + 8

	contributions := make(map[uint32]*contribution, count)
	var lastID uint32
	for i := uint64(0); i < count; i++ {
		if uint64(len(data)) < uint64(entrySize) {
			return errs.Fatalf("pvss: aggregated share: truncated contribution %d", i)
		}

		id := binary.BigEndian.Uint32(data[:4])
		if i > 0 && id <= lastID {
			return errs.Fatalf("pvss: aggregated share: contribution ids not strictly ascending")
		}
		lastID = id
		data = data[4:]

		var sp SignedProof
		if err := sp.UnmarshalBinary(suite.G2(), data[:spSize]); err != nil {
			return err
		}
		data = data[spSize:]

		weight := binary.BigEndian.Uint64(data[:8])
		data = data[8:]

		contributions[id] = &contribution{SignedProof: &sp, Weight: weight}
	}
	if len(data) != 0 {
		return errs.Fatalf("pvss: aggregated share: %d trailing bytes", len(data))
	}

	a.Contributions = contributions
	return nil
}
