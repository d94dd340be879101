// Package pvss implements the core PVSS data types: the bare commitment/
// encryption vector pair, its homomorphic combination, signed proofs,
// shares, aggregated shares, and reconstruction.
package pvss

import (
	"go.dedis.ch/kyber/v4"
	"go.dedis.ch/kyber/v4/pairing"
	"go.dedis.ch/kyber/v4/share"
	"go.dedis.ch/kyber/v4/util/random"

	"crypto/cipher"
	"encoding/binary"

	"github.com/dedis/scrape-pvss/errs"
)

// Core is the bare ⟨commitment vector, encryption vector⟩ pair: for each of
// the n participants, a commitment to their evaluation (in G2) and an
// encryption of it under their public key (in G1).
type Core struct {
	Comms []kyber.Point // G2, length n
	Encs  []kyber.Point // G1, length n
}

// GenerateCore samples a degree-t polynomial and produces the commitment
// and encryption vectors for n participants with the given encryption
// public keys (indexed by participant id), committing against the
// deployment's own SRS generator g2 rather than the curve's implicit base
// point. It returns the core along with the polynomial's free term
// s = p(0), needed by the decomposition proof.
func GenerateCore(suite pairing.Suite, t int, g2 kyber.Point, encryptionKeys []kyber.Point, stream cipher.Stream) (core *Core, secret kyber.Scalar, err error) {
	if stream == nil {
		stream = random.New()
	}
	n := len(encryptionKeys)

	p := share.NewPriPoly(suite.G2(), t+1, nil, stream)
	secret = p.Secret()

	comms := make([]kyber.Point, n)
	encs := make([]kyber.Point, n)
	for j := 0; j < n; j++ {
		eval := p.Eval(j).V // p(j+1), matches spec's evals[j] = p(j+1)
		comms[j] = suite.G2().Point().Mul(eval, g2)
		encs[j] = suite.G1().Point().Mul(eval, encryptionKeys[j])
	}

	return &Core{Comms: comms, Encs: encs}, secret, nil
}

// Add returns the component-wise group-operation sum of two cores of equal
// length, the homomorphic combination used by aggregation.
func Add(suite pairing.Suite, a, b *Core) (*Core, error) {
	if len(a.Comms) != len(b.Comms) || len(a.Encs) != len(b.Encs) {
		return nil, errs.Fatalf("pvss: cannot add cores of different length")
	}
	n := len(a.Comms)
	comms := make([]kyber.Point, n)
	encs := make([]kyber.Point, n)
	for j := 0; j < n; j++ {
		comms[j] = suite.G2().Point().Add(a.Comms[j], b.Comms[j])
		encs[j] = suite.G1().Point().Add(a.Encs[j], b.Encs[j])
	}
	return &Core{Comms: comms, Encs: encs}, nil
}

// MarshalBinary encodes the core canonically as (count:u32) || comms
// (each a compressed-affine G2 point) || (count:u32) || encs (each a
// compressed-affine G1 point).
func (c *Core) MarshalBinary() ([]byte, error) {
	var out []byte

	var countBuf [4]byte
	binary.BigEndian.PutUint32(countBuf[:], uint32(len(c.Comms)))
	out = append(out, countBuf[:]...)
	for _, p := range c.Comms {
		b, err := p.MarshalBinary()
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}

	binary.BigEndian.PutUint32(countBuf[:], uint32(len(c.Encs)))
	out = append(out, countBuf[:]...)
	for _, p := range c.Encs {
		b, err := p.MarshalBinary()
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}

	return out, nil
}

// UnmarshalBinary decodes a core previously produced by MarshalBinary
// against the given pairing suite.
func (c *Core) UnmarshalBinary(suite pairing.Suite, data []byte) error {
	comms, rest, err := decodePointVector(suite.G2(), data)
	if err != nil {
		return err
	}
	encs, rest, err := decodePointVector(suite.G1(), rest)
	if err != nil {
		return err
	}
	if len(rest) != 0 {
		return errs.Fatalf("pvss: core: %d trailing bytes after decode", len(rest))
	}
	c.Comms, c.Encs = comms, encs
	return nil
}

func decodePointVector(group kyber.Group, data []byte) ([]kyber.Point, []byte, error) {
	if len(data) < 4 {
		return nil, nil, errs.Fatalf("pvss: truncated vector count")
	}
	n := int(binary.BigEndian.Uint32(data[:4]))
	data = data[4:]

	pointLen := group.PointLen()
	out := make([]kyber.Point, n)
	for i := 0; i < n; i++ {
		if len(data) < pointLen {
			return nil, nil, errs.Fatalf("pvss: truncated point %d", i)
		}
		out[i] = group.Point()
		if err := out[i].UnmarshalBinary(data[:pointLen]); err != nil {
			return nil, nil, err
		}
		data = data[pointLen:]
	}
	return out, data, nil
}

// DecryptedShare is one participant's decryption of its own position in a
// core: dec = encs[origin] · sk_origin^{-1}.
type DecryptedShare struct {
	Dec    kyber.Point // G1
	Origin uint32
}

// Decrypt computes the DecryptedShare for participant origin, given its
// encryption secret key.
func Decrypt(suite pairing.Suite, core *Core, origin uint32, sk kyber.Scalar) (*DecryptedShare, error) {
	if int(origin) >= len(core.Encs) {
		return nil, errs.Fatalf("pvss: origin %d out of range for core of length %d", origin, len(core.Encs))
	}
	inv := suite.G1().Scalar().Inv(sk)
	dec := suite.G1().Point().Mul(inv, core.Encs[origin])
	return &DecryptedShare{Dec: dec, Origin: origin}, nil
}
