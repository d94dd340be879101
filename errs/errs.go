// Package errs defines the flat error taxonomy shared by every verification
// and aggregation routine in the PVSS core. Every exported error is a
// distinct, comparable value or type so callers can discriminate with
// errors.Is / errors.As instead of string matching.
package errs

import "fmt"

// Sentinel errors for the zero-argument taxonomy entries.
var (
	ErrDualCode                       = fmt.Errorf("pvss: commitments do not decode to a degree-bounded polynomial")
	ErrGSCheck                        = fmt.Errorf("pvss: gs does not match interpolation of commitments")
	ErrEncryptionCorrectness          = fmt.Errorf("pvss: pairing equation for encryption correctness failed")
	ErrNIZKProofDoesNotVerify         = fmt.Errorf("pvss: NIZK proof does not verify")
	ErrDecompProofVerification        = fmt.Errorf("pvss: decomposition proof verification failed")
	ErrEdDSAInvalidSignature          = fmt.Errorf("pvss: EdDSA signature does not verify")
	ErrEdDSAInvalidSignatureBatch     = fmt.Errorf("pvss: batch EdDSA signature verification failed")
	ErrInvalidSignedProof             = fmt.Errorf("pvss: signed proof is invalid")
	ErrTranscriptDifferentCommitments = fmt.Errorf("pvss: two contributions for the same id carry different gs")
	ErrAggregationReconstructionMismatch = fmt.Errorf("pvss: weighted sum of gs does not match interpolation")
	ErrInsufficientEvaluations        = fmt.Errorf("pvss: fewer than t+1 evaluations supplied")
	ErrDifferentPointsEvals           = fmt.Errorf("pvss: points and evaluations have different lengths")
	ErrDLKVerify                      = fmt.Errorf("nizk: DLK proof does not verify")
	ErrDLEQVerify                     = fmt.Errorf("nizk: DLEQ proof does not verify")
	ErrSchnorrInvalidSignature        = fmt.Errorf("schnorrg1: signature does not verify")
	ErrSchnorrInvalidSignatureBatch   = fmt.Errorf("schnorrg1: batch signature verification failed")
)

// InvalidParticipantID reports an issuer id unknown to the aggregator's config.
type InvalidParticipantID struct {
	ID uint32
}

func (e *InvalidParticipantID) Error() string {
	return fmt.Sprintf("pvss: unknown participant id %d", e.ID)
}

// MismatchedCommitsEncryptionsParticipantsError reports a vector-length
// disagreement between the commitment/encryption vectors and the
// configured participant count.
type MismatchedCommitsEncryptionsParticipantsError struct {
	Encs, Comms, Participants int
}

func (e *MismatchedCommitsEncryptionsParticipantsError) Error() string {
	return fmt.Sprintf("pvss: encs=%d comms=%d participants=%d, expected all equal",
		e.Encs, e.Comms, e.Participants)
}

// TranscriptDifferentConfig reports an attempted merge of two aggregated
// shares that were built under different (t, n) parameters.
type TranscriptDifferentConfig struct {
	T1, T2, N1, N2 int
}

func (e *TranscriptDifferentConfig) Error() string {
	return fmt.Sprintf("pvss: cannot merge transcripts with (t=%d,n=%d) and (t=%d,n=%d)",
		e.T1, e.N1, e.T2, e.N2)
}

// Fatal errors: not part of the recoverable taxonomy. They report
// serialization failures (truncated, over-long or non-canonical encodings,
// including ones received from peers) and violated internal invariants
// (mismatched vector or slice lengths, etc).
type FatalError struct {
	Msg string
}

func (e *FatalError) Error() string { return "pvss: fatal: " + e.Msg }

func Fatalf(format string, args ...any) error {
	return &FatalError{Msg: fmt.Sprintf(format, args...)}
}
