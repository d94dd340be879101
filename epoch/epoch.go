// Package epoch derives the per-round G2 generator g_r used by
// reconstruction: the hash-to-G2 image of an application label and epoch
// counter, resolving the module's open hash-to-group question with
// gnark-crypto's BLS12-381 hash-to-curve implementation (the pack's only
// library exposing a standards-track hash_to_field + map-to-curve pipeline
// for this curve; see DESIGN.md, Open Question 2).
package epoch

import (
	"encoding/binary"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"

	"go.dedis.ch/kyber/v4"
	"go.dedis.ch/kyber/v4/pairing"
)

// DomainSeparationTag is mixed into every hash-to-curve call as the dst
// parameter, scoping this module's epoch generators away from any other
// protocol's use of BLS12-381 hash-to-curve.
var DomainSeparationTag = []byte("SCRAPE-PVSS-EPOCH-G2-V1")

// Generator derives the epoch generator g_r for the given application
// label and epoch counter: g_r = HashToG2(label || counter, dst), decoded
// into the pairing suite's own G2 point representation.
func Generator(suite pairing.Suite, label []byte, counter uint64) (kyber.Point, error) {
	msg := make([]byte, len(label)+8)
	copy(msg, label)
	binary.BigEndian.PutUint64(msg[len(label):], counter)

	g2Affine, err := bls12381.HashToG2(msg, DomainSeparationTag)
	if err != nil {
		return nil, err
	}

	compressed := g2Affine.Bytes()

	point := suite.G2().Point()
	if err := point.UnmarshalBinary(compressed[:]); err != nil {
		return nil, err
	}
	return point, nil
}
