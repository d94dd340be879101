// Package srs holds the structured reference string shared by an entire
// deployment: three uniformly random group generators, fixed once and
// never mutated afterwards.
package srs

import (
	"crypto/cipher"
	"io"

	"go.dedis.ch/kyber/v4"
	"go.dedis.ch/kyber/v4/pairing"
	"go.dedis.ch/kyber/v4/util/random"
)

// SRS is the structured reference string: g1 generates G1, g2 and g2Prime
// generate G2. All three are public and immutable once generated.
type SRS struct {
	G1      kyber.Point
	G2      kyber.Point
	G2Prime kyber.Point
}

// Setup samples a fresh SRS for the given pairing suite. When stream is nil
// a fresh crypto/rand-backed stream is used, matching the per-call CSPRNG
// pattern the rest of this module follows.
func Setup(suite pairing.Suite, stream cipher.Stream) (*SRS, error) {
	if stream == nil {
		stream = random.New()
	}
	return &SRS{
		G1:      suite.G1().Point().Pick(stream),
		G2:      suite.G2().Point().Pick(stream),
		G2Prime: suite.G2().Point().Pick(stream),
	}, nil
}

// MarshalBinary encodes the SRS as the concatenation of the three
// compressed-affine group elements, g1 || g2 || g2'.
func (s *SRS) MarshalBinary() ([]byte, error) {
	var out []byte
	for _, p := range []kyber.Point{s.G1, s.G2, s.G2Prime} {
		b, err := p.MarshalBinary()
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	return out, nil
}

// UnmarshalBinary decodes an SRS previously produced by MarshalBinary. The
// suite is required to know the point sizes and group membership of each
// slot (G1 vs G2).
func (s *SRS) UnmarshalBinary(suite pairing.Suite, data []byte) error {
	g1Len := suite.G1().PointLen()
	g2Len := suite.G2().PointLen()
	if len(data) != g1Len+2*g2Len {
		return io.ErrUnexpectedEOF
	}

	s.G1 = suite.G1().Point()
	if err := s.G1.UnmarshalBinary(data[:g1Len]); err != nil {
		return err
	}
	data = data[g1Len:]

	s.G2 = suite.G2().Point()
	if err := s.G2.UnmarshalBinary(data[:g2Len]); err != nil {
		return err
	}
	data = data[g2Len:]

	s.G2Prime = suite.G2().Point()
	return s.G2Prime.UnmarshalBinary(data[:g2Len])
}
