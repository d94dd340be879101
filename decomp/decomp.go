// Package decomp implements the decomposition proof: a DLK proof that the
// dealer knows the free term s of its sharing polynomial, together with the
// public commitment gs = g2·s it decomposes.
package decomp

import (
	"crypto/cipher"

	"go.dedis.ch/kyber/v4"
	"golang.org/x/crypto/sha3"

	"github.com/dedis/scrape-pvss/errs"
	"github.com/dedis/scrape-pvss/nizk/dlk"
)

// Size returns the byte length of a full decomposition proof (π || gs)
// under g2Group: the DLK proof's R || c || z followed by the gs point.
func Size(g2Group kyber.Group) int {
	return g2Group.PointLen() + 2*g2Group.ScalarLen() + g2Group.PointLen()
}

// DigestSize is the length in bytes of a decomposition proof's digest, used
// as the message signed by the attestation scheme.
const DigestSize = 32

// Proof couples a DLK proof over G2 with the public value gs it decomposes.
type Proof struct {
	PI dlk.Proof
	GS kyber.Point
}

// Generate produces a decomposition proof that the prover knows s such that
// gs = g2·s.
func Generate(g2Group kyber.Group, g2 kyber.Point, s kyber.Scalar, stream cipher.Stream) (*Proof, error) {
	gs := g2Group.Point().Mul(s, g2)
	pi, err := dlk.Prove(g2Group, g2, gs, s, stream)
	if err != nil {
		return nil, err
	}
	return &Proof{PI: *pi, GS: gs}, nil
}

// Verify checks the decomposition proof against generator g2.
func (p *Proof) Verify(g2Group kyber.Group, g2 kyber.Point) error {
	return dlk.Verify(g2Group, g2, p.GS, &p.PI)
}

// Digest returns the 32-byte SHAKE256 digest of (π, gs), used as the
// message the attestation signature scheme signs.
func (p *Proof) Digest() ([DigestSize]byte, error) {
	var out [DigestSize]byte

	piBytes, err := p.PI.MarshalBinary()
	if err != nil {
		return out, err
	}
	gsBytes, err := p.GS.MarshalBinary()
	if err != nil {
		return out, err
	}

	h := sha3.NewShake256()
	h.Write(piBytes)
	h.Write(gsBytes)
	if _, err := h.Read(out[:]); err != nil {
		return out, err
	}
	return out, nil
}

// MarshalBinary encodes the decomposition proof as π || gs.
func (p *Proof) MarshalBinary() ([]byte, error) {
	piBytes, err := p.PI.MarshalBinary()
	if err != nil {
		return nil, err
	}
	gsBytes, err := p.GS.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return append(piBytes, gsBytes...), nil
}

// UnmarshalBinary decodes a decomposition proof previously produced by
// MarshalBinary. g2Group determines both π's and gs's point/scalar sizes.
func (p *Proof) UnmarshalBinary(g2Group kyber.Group, data []byte) error {
	if len(data) != Size(g2Group) {
		return errs.Fatalf("decomp: proof: want %d bytes, got %d", Size(g2Group), len(data))
	}
	piLen := g2Group.PointLen() + 2*g2Group.ScalarLen()

	var pi dlk.Proof
	if err := pi.UnmarshalBinary(g2Group, data[:piLen]); err != nil {
		return err
	}
	p.PI = pi

	p.GS = g2Group.Point()
	return p.GS.UnmarshalBinary(data[piLen:])
}
