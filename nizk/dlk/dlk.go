// Package dlk implements a Fiat-Shamir "knowledge of discrete log" Sigma
// protocol: prove knowledge of w such that Y = g·w, without revealing w.
package dlk

import (
	"crypto/cipher"

	"go.dedis.ch/kyber/v4"
	"go.dedis.ch/kyber/v4/util/random"
	"golang.org/x/crypto/sha3"

	"github.com/dedis/scrape-pvss/errs"
)

// Persona is the domain-separation tag mixed into every DLK challenge hash.
var Persona = []byte("DLKNIZK")

// Proof is a non-interactive proof of knowledge of the discrete log w of Y
// with respect to generator g: (R, c, z) with R = g·r, c = H(...), z = r - w·c.
type Proof struct {
	R kyber.Point
	C kyber.Scalar
	Z kyber.Scalar
}

// Prove produces a DLK proof that the prover knows w such that y = g·w.
func Prove(group kyber.Group, g, y kyber.Point, w kyber.Scalar, stream cipher.Stream) (*Proof, error) {
	if stream == nil {
		stream = random.New()
	}

	r := group.Scalar().Pick(stream)
	R := group.Point().Mul(r, g)

	c, err := challenge(group, g, y, R)
	if err != nil {
		return nil, err
	}

	z := group.Scalar().Sub(r, group.Scalar().Mul(w, c))

	return &Proof{R: R, C: c, Z: z}, nil
}

// Verify checks a DLK proof against the statement y = g·w.
func Verify(group kyber.Group, g, y kyber.Point, proof *Proof) error {
	c, err := challenge(group, g, y, proof.R)
	if err != nil {
		return err
	}
	if !c.Equal(proof.C) {
		return errs.ErrDLKVerify
	}

	lhs := group.Point().Add(group.Point().Mul(proof.Z, g), group.Point().Mul(proof.C, y))
	if !lhs.Equal(proof.R) {
		return errs.ErrDLKVerify
	}
	return nil
}

// challenge computes c = H(persona || g || y || R), reduced into the
// scalar field via SetBytes.
func challenge(group kyber.Group, g, y, R kyber.Point) (kyber.Scalar, error) {
	h := sha3.NewShake256()
	h.Write(Persona)
	for _, p := range []kyber.Point{g, y, R} {
		b, err := p.MarshalBinary()
		if err != nil {
			return nil, err
		}
		h.Write(b)
	}

	digest := make([]byte, 64)
	if _, err := h.Read(digest); err != nil {
		return nil, err
	}

	return group.Scalar().SetBytes(digest), nil
}

// MarshalBinary encodes the proof as R || c || z, each using the group's
// own compressed-affine/scalar encoding.
func (p *Proof) MarshalBinary() ([]byte, error) {
	var out []byte
	for _, m := range []kyber.Marshaling{p.R, p.C, p.Z} {
		b, err := m.MarshalBinary()
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	return out, nil
}

// UnmarshalBinary decodes a proof previously produced by MarshalBinary. The
// group is required to know the point/scalar sizes and to construct R, C, Z.
func (p *Proof) UnmarshalBinary(group kyber.Group, data []byte) error {
	pointLen, scalarLen := group.PointLen(), group.ScalarLen()
	if len(data) != pointLen+2*scalarLen {
		return errs.Fatalf("dlk: proof: want %d bytes, got %d", pointLen+2*scalarLen, len(data))
	}

	p.R = group.Point()
	if err := p.R.UnmarshalBinary(data[:pointLen]); err != nil {
		return err
	}
	data = data[pointLen:]

	p.C = group.Scalar()
	if err := p.C.UnmarshalBinary(data[:scalarLen]); err != nil {
		return err
	}
	data = data[scalarLen:]

	p.Z = group.Scalar()
	return p.Z.UnmarshalBinary(data[:scalarLen])
}
