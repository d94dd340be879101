// Package attestation is the AttestationSignatureScheme collaborator: EdDSA
// over Edwards25519, backed by github.com/cloudflare/circl/sign/ed25519,
// including its batch-verification entry point.
package attestation

import (
	"crypto/rand"

	circled25519 "github.com/cloudflare/circl/sign/ed25519"

	"github.com/dedis/scrape-pvss/errs"
)

const (
	// PublicKeySize is the length in bytes of an attestation verification key.
	PublicKeySize = circled25519.PublicKeySize
	// PrivateKeySize is the length in bytes of an attestation signing key.
	PrivateKeySize = circled25519.PrivateKeySize
	// SignatureSize is the length in bytes of an attestation signature.
	SignatureSize = circled25519.SignatureSize
)

// KeyPair is an Edwards25519 attestation key pair.
type KeyPair struct {
	PublicKey  [PublicKeySize]byte
	PrivateKey [PrivateKeySize]byte
}

// GenerateKeyPair samples a fresh Edwards25519 key pair.
func GenerateKeyPair() (*KeyPair, error) {
	pub, priv, err := circled25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}
	kp := &KeyPair{}
	copy(kp.PublicKey[:], pub)
	copy(kp.PrivateKey[:], priv)
	return kp, nil
}

// Sign signs msg (conventionally a decomposition proof's SHAKE256 digest)
// with sk, returning a 64-byte signature.
func Sign(sk [PrivateKeySize]byte, msg []byte) [SignatureSize]byte {
	var out [SignatureSize]byte
	sig := circled25519.Sign(circled25519.PrivateKey(sk[:]), msg)
	copy(out[:], sig)
	return out
}

// Verify checks a single attestation signature.
func Verify(vk [PublicKeySize]byte, msg []byte, sig [SignatureSize]byte) error {
	if !circled25519.Verify(circled25519.PublicKey(vk[:]), msg, sig[:]) {
		return errs.ErrEdDSAInvalidSignature
	}
	return nil
}

// VerifyBatch verifies a batch of (vk, digest, sig) triples, using circl's
// batch verifier. Each entry carries its own digest since aggregated-share
// contributions each sign a different decomposition proof.
func VerifyBatch(vks [][PublicKeySize]byte, digests [][]byte, sigs [][SignatureSize]byte) error {
	if len(vks) != len(sigs) || len(vks) != len(digests) {
		return errs.Fatalf("attestation: verify_batch: mismatched slice lengths %d/%d/%d", len(vks), len(digests), len(sigs))
	}

	keys := make([]circled25519.PublicKey, len(vks))
	sigList := make([][]byte, len(vks))
	for i := range vks {
		keys[i] = circled25519.PublicKey(vks[i][:])
		sigList[i] = sigs[i][:]
	}

	ok := circled25519.VerifyBatch(keys, digests, sigList)
	if !ok {
		return errs.ErrEdDSAInvalidSignatureBatch
	}
	return nil
}
