// Package dealer models the issuing side of a PVSS round: a node's secret
// encryption key, its attestation signing key, and its public participant
// identity.
package dealer

import (
	"crypto/cipher"

	"go.dedis.ch/kyber/v4"
	"go.dedis.ch/kyber/v4/util/random"

	"github.com/dedis/scrape-pvss/participant"
	"github.com/dedis/scrape-pvss/sign/attestation"
)

// Dealer is one node's private issuing state: its encryption secret key,
// its attestation signing key, and its public Participant identity
// (embedded so a Dealer satisfies anything expecting a Participant).
type Dealer struct {
	*participant.Participant

	EncryptionSK  kyber.Scalar
	AttestationSK [attestation.PrivateKeySize]byte
}

// New builds a Dealer with a freshly sampled encryption key pair over
// group (conventionally the deployment's G1), and the given attestation
// key pair.
func New(group kyber.Group, id uint32, attestationKP *attestation.KeyPair, stream cipher.Stream) (*Dealer, error) {
	if stream == nil {
		stream = random.New()
	}

	sk := group.Scalar().Pick(stream)
	pk := group.Point().Mul(sk, nil)

	p := participant.New(id, pk, attestationKP.PublicKey)

	return &Dealer{
		Participant:   p,
		EncryptionSK:  sk,
		AttestationSK: attestationKP.PrivateKey,
	}, nil
}

// Zero overwrites the dealer's encryption secret key and attestation signing
// key in place so they do not linger in memory beyond the scope that needs
// them.
func (d *Dealer) Zero() {
	if d.EncryptionSK != nil {
		d.EncryptionSK.Zero()
	}
	for i := range d.AttestationSK {
		d.AttestationSK[i] = 0
	}
}
