// Package schnorrg1 is the default EncryptionSignatureScheme collaborator:
// a Schnorr-like signature scheme over G1, domain-separated with persona
// "SCHSIGNA".
package schnorrg1

import (
	"crypto/cipher"

	"go.dedis.ch/kyber/v4"
	"go.dedis.ch/kyber/v4/util/random"
	"golang.org/x/crypto/sha3"

	"github.com/dedis/scrape-pvss/errs"
)

// Persona is the domain-separation tag mixed into every challenge hash.
var Persona = []byte("SCHSIGNA")

// KeyPair is a Schnorr key pair over G1.
type KeyPair struct {
	SK kyber.Scalar
	PK kyber.Point
}

// Signature is a Schnorr signature: a commitment to the nonce and a
// response scalar.
type Signature struct {
	VG kyber.Point
	R  kyber.Scalar
}

// Scheme is the Schnorr scheme instantiated over a fixed group and
// generator (conventionally G1 and its canonical SRS generator).
type Scheme struct {
	Group kyber.Group
	G     kyber.Point
}

// New builds a Scheme over group with generator g.
func New(group kyber.Group, g kyber.Point) *Scheme {
	return &Scheme{Group: group, G: g}
}

// GenerateKeyPair samples a fresh key pair.
func (s *Scheme) GenerateKeyPair(stream cipher.Stream) (*KeyPair, error) {
	if stream == nil {
		stream = random.New()
	}
	sk := s.Group.Scalar().Pick(stream)
	pk := s.Group.Point().Mul(sk, s.G)
	return &KeyPair{SK: sk, PK: pk}, nil
}

// Sign produces a Schnorr signature on msg under sk.
func (s *Scheme) Sign(sk kyber.Scalar, msg []byte, stream cipher.Stream) (*Signature, error) {
	if stream == nil {
		stream = random.New()
	}

	v := s.Group.Scalar().Pick(stream)
	vG := s.Group.Point().Mul(v, s.G)

	c, err := s.challenge(msg, vG)
	if err != nil {
		return nil, err
	}

	r := s.Group.Scalar().Sub(v, s.Group.Scalar().Mul(sk, c))
	return &Signature{VG: vG, R: r}, nil
}

// Verify checks sig on msg against pk.
func (s *Scheme) Verify(pk kyber.Point, msg []byte, sig *Signature) error {
	c, err := s.challenge(msg, sig.VG)
	if err != nil {
		return err
	}

	check := s.Group.Point().Add(
		s.Group.Point().Mul(sig.R, s.G),
		s.Group.Point().Mul(c, pk),
	)
	if !check.Equal(sig.VG) {
		return errs.ErrSchnorrInvalidSignature
	}
	return nil
}

// BatchVerify verifies a batch of (pk, msg, sig) triples with a single
// randomized linear combination, following the original's MSM-style
// accumulator: accept iff Σ alpha^i · (g·r_i + pk_i·c_i − vG_i) = 0.
func (s *Scheme) BatchVerify(pks []kyber.Point, msgs [][]byte, sigs []*Signature, stream cipher.Stream) error {
	if len(pks) != len(msgs) || len(pks) != len(sigs) {
		return errs.Fatalf("schnorrg1: batch_verify: mismatched slice lengths %d/%d/%d", len(pks), len(msgs), len(sigs))
	}
	if stream == nil {
		stream = random.New()
	}

	alpha := s.Group.Scalar().Pick(stream)
	current := s.Group.Scalar().One()

	acc := s.Group.Point().Null()
	for i := range pks {
		c, err := s.challenge(msgs[i], sigs[i].VG)
		if err != nil {
			return err
		}

		term := s.Group.Point().Add(
			s.Group.Point().Mul(sigs[i].R, s.G),
			s.Group.Point().Mul(c, pks[i]),
		)
		term = s.Group.Point().Sub(term, sigs[i].VG)
		term = s.Group.Point().Mul(current, term)

		acc = s.Group.Point().Add(acc, term)
		current = s.Group.Scalar().Mul(current, alpha)
	}

	if !acc.Equal(s.Group.Point().Null()) {
		return errs.ErrSchnorrInvalidSignatureBatch
	}
	return nil
}

func (s *Scheme) challenge(msg []byte, vG kyber.Point) (kyber.Scalar, error) {
	gBytes, err := s.G.MarshalBinary()
	if err != nil {
		return nil, err
	}
	vGBytes, err := vG.MarshalBinary()
	if err != nil {
		return nil, err
	}

	h := sha3.NewShake256()
	h.Write(Persona)
	h.Write(msg)
	h.Write(gBytes)
	h.Write(vGBytes)

	digest := make([]byte, 64)
	if _, err := h.Read(digest); err != nil {
		return nil, err
	}
	return s.Group.Scalar().SetBytes(digest), nil
}
