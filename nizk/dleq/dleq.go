// Package dleq implements a Fiat-Shamir "equality of discrete logs" Sigma
// protocol across two groups C1, C2 that share a scalar field: prove that
// Y1 = g1·w and Y2 = g2·w for the same w.
package dleq

import (
	"crypto/cipher"

	"go.dedis.ch/kyber/v4"
	"go.dedis.ch/kyber/v4/util/random"
	"golang.org/x/crypto/sha3"

	"github.com/dedis/scrape-pvss/errs"
)

// Persona is the domain-separation tag mixed into every DLEQ challenge hash.
var Persona = []byte("DLEQNIZK")

// Proof is a non-interactive proof that the same scalar w is the discrete
// log of Y1 w.r.t. g1 and of Y2 w.r.t. g2.
type Proof struct {
	R1 kyber.Point
	R2 kyber.Point
	C  kyber.Scalar
	Z  kyber.Scalar
}

// Prove produces a DLEQ proof for the statement (y1 = g1·w, y2 = g2·w).
// group1/group2 determine the point arithmetic of each side; both must
// share the same scalar field as w.
func Prove(group1, group2 kyber.Group, g1, y1, g2, y2 kyber.Point, w kyber.Scalar, stream cipher.Stream) (*Proof, error) {
	if stream == nil {
		stream = random.New()
	}

	r := group1.Scalar().Pick(stream)
	R1 := group1.Point().Mul(r, g1)
	R2 := group2.Point().Mul(r, g2)

	c, err := challenge(group1, g1, y1, g2, y2, R1, R2)
	if err != nil {
		return nil, err
	}

	z := group1.Scalar().Sub(r, group1.Scalar().Mul(w, c))

	return &Proof{R1: R1, R2: R2, C: c, Z: z}, nil
}

// Verify checks a DLEQ proof against (y1 = g1·w, y2 = g2·w).
func Verify(group1, group2 kyber.Group, g1, y1, g2, y2 kyber.Point, proof *Proof) error {
	c, err := challenge(group1, g1, y1, g2, y2, proof.R1, proof.R2)
	if err != nil {
		return err
	}
	if !c.Equal(proof.C) {
		return errs.ErrDLEQVerify
	}

	lhs1 := group1.Point().Add(group1.Point().Mul(proof.Z, g1), group1.Point().Mul(proof.C, y1))
	if !lhs1.Equal(proof.R1) {
		return errs.ErrDLEQVerify
	}

	lhs2 := group2.Point().Add(group2.Point().Mul(proof.Z, g2), group2.Point().Mul(proof.C, y2))
	if !lhs2.Equal(proof.R2) {
		return errs.ErrDLEQVerify
	}

	return nil
}

// MarshalBinary encodes the proof as R1 || R2 || c || z.
func (p *Proof) MarshalBinary() ([]byte, error) {
	var out []byte
	for _, m := range []kyber.Marshaling{p.R1, p.R2, p.C, p.Z} {
		b, err := m.MarshalBinary()
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	return out, nil
}

// UnmarshalBinary decodes a proof previously produced by MarshalBinary.
// group1/group2 determine R1's and R2's point sizes respectively; the
// scalars are sized against group1's scalar field, which is shared with
// group2 by construction.
func (p *Proof) UnmarshalBinary(group1, group2 kyber.Group, data []byte) error {
	point1Len, point2Len, scalarLen := group1.PointLen(), group2.PointLen(), group1.ScalarLen()
	want := point1Len + point2Len + 2*scalarLen
	if len(data) != want {
		return errs.Fatalf("dleq: proof: want %d bytes, got %d", want, len(data))
	}

	p.R1 = group1.Point()
	if err := p.R1.UnmarshalBinary(data[:point1Len]); err != nil {
		return err
	}
	data = data[point1Len:]

	p.R2 = group2.Point()
	if err := p.R2.UnmarshalBinary(data[:point2Len]); err != nil {
		return err
	}
	data = data[point2Len:]

	p.C = group1.Scalar()
	if err := p.C.UnmarshalBinary(data[:scalarLen]); err != nil {
		return err
	}
	data = data[scalarLen:]

	p.Z = group1.Scalar()
	return p.Z.UnmarshalBinary(data[:scalarLen])
}

// challenge hashes the full transcript and reduces it into a scalar via
// group's own field. The scalar field is shared between group1 and group2
// by construction (both live under the same pairing curve), so either
// group's Scalar() is equally valid for the reduction.
func challenge(group kyber.Group, g1, y1, g2, y2, R1, R2 kyber.Point) (kyber.Scalar, error) {
	h := sha3.NewShake256()
	h.Write(Persona)
	for _, p := range []kyber.Point{g1, y1, g2, y2, R1, R2} {
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
