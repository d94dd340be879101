// Package participant defines the public identity of one PVSS node: its
// index in the deployment, its encryption public key in G1, and its
// attestation verification key.
package participant

import (
	"go.dedis.ch/kyber/v4"

	"github.com/dedis/scrape-pvss/errs"
)

// State is an inert, caller-facing classification of a participant's
// standing in a round. The core never reads or writes it; it exists purely
// as a shared vocabulary for a caller layering peer reputation or audit
// logging on top of the core (see DESIGN.md, Open Question 1).
type State int

const (
	StateDealer State = iota
	StateDealerShared
	StateVerified
)

func (s State) String() string {
	switch s {
	case StateDealer:
		return "dealer"
	case StateDealerShared:
		return "dealer-shared"
	case StateVerified:
		return "verified"
	default:
		return "unknown"
	}
}

// AttestationKeySize is the length in bytes of an Edwards25519 verification key.
const AttestationKeySize = 32

// Participant is one node's public identity within a deployment. Unique by
// ID, which is also its evaluation point (ID+1) in the sharing polynomial.
type Participant struct {
	ID             uint32
	EncryptionKey  kyber.Point // pk_i in G1
	AttestationKey [AttestationKeySize]byte
	State          State
}

// New constructs a Participant. The State starts at StateDealer and is
// never advanced by this package.
func New(id uint32, encKey kyber.Point, attKey [AttestationKeySize]byte) *Participant {
	return &Participant{
		ID:             id,
		EncryptionKey:  encKey,
		AttestationKey: attKey,
		State:          StateDealer,
	}
}

// MarshalBinary encodes the participant as id (4 bytes, big-endian) ||
// encryption key (compressed affine) || attestation key (32 bytes).
func (p *Participant) MarshalBinary() ([]byte, error) {
	encBytes, err := p.EncryptionKey.MarshalBinary()
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, 4+len(encBytes)+AttestationKeySize)
	out = append(out, byte(p.ID>>24), byte(p.ID>>16), byte(p.ID>>8), byte(p.ID))
	out = append(out, encBytes...)
	out = append(out, p.AttestationKey[:]...)
	return out, nil
}

// UnmarshalBinary decodes a participant previously produced by
// MarshalBinary. group determines the encryption key's point size (G1).
func (p *Participant) UnmarshalBinary(group kyber.Group, data []byte) error {
	encLen := group.PointLen()
	if len(data) != 4+encLen+AttestationKeySize {
		return errs.Fatalf("participant: want %d bytes, got %d", 4+encLen+AttestationKeySize, len(data))
	}

	p.ID = uint32(data[0])<<24 | uint32(data[1])<<16 | uint32(data[2])<<8 | uint32(data[3])
	data = data[4:]

	p.EncryptionKey = group.Point()
	if err := p.EncryptionKey.UnmarshalBinary(data[:encLen]); err != nil {
		return err
	}
	data = data[encLen:]

	copy(p.AttestationKey[:], data[:AttestationKeySize])
	p.State = StateDealer
	return nil
}
