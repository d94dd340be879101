// Package wire implements the outer gossip framing every PVSS message
// travels in: a fixed-width length header (go.dedis.ch/fixbuf) followed by
// a protobuf-encoded envelope (go.dedis.ch/protobuf) carrying the routing
// fields plus the message's already-canonical payload as an opaque byte
// string. This package never inspects or reinterprets that payload — it is
// produced and consumed entirely by the caller's own MarshalBinary /
// UnmarshalBinary methods.
package wire

import (
	"fmt"
	"io"

	"go.dedis.ch/fixbuf"
	"go.dedis.ch/protobuf"
)

// Kind discriminates the payload carried by a GossipEnvelope.
type Kind uint8

const (
	KindShare Kind = iota
	KindAggregatedShare
)

func (k Kind) String() string {
	switch k {
	case KindShare:
		return "share"
	case KindAggregatedShare:
		return "aggregated-share"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// envelope is the protobuf-encoded body of a GossipEnvelope: the routing
// fields alongside the opaque canonical payload.
type envelope struct {
	Kind          uint32
	Epoch         uint64
	ParticipantID uint32
	Payload       []byte
}

// lenHeader is the fixed-width portion of a GossipEnvelope: just enough to
// size the variable-length protobuf body that follows without decoding it.
type lenHeader struct {
	BodyLen uint32
}

// EncodeEnvelope writes a GossipEnvelope wrapping payload — the
// already-canonically-encoded bytes of a Share or AggregatedShare, produced
// by its own MarshalBinary — to w, framed by a fixbuf-encoded length
// header.
func EncodeEnvelope(w io.Writer, kind Kind, epoch uint64, participantID uint32, payload []byte) error {
	env := envelope{
		Kind:          uint32(kind),
		Epoch:         epoch,
		ParticipantID: participantID,
		Payload:       payload,
	}

	body, err := protobuf.Encode(&env)
	if err != nil {
		return fmt.Errorf("wire: encoding envelope: %w", err)
	}

	hdr := lenHeader{BodyLen: uint32(len(body))}
	if err := fixbuf.Write(w, &hdr); err != nil {
		return fmt.Errorf("wire: encoding header: %w", err)
	}

	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("wire: writing envelope: %w", err)
	}
	return nil
}

// DecodeEnvelope reads a GossipEnvelope from r, returning its kind, epoch,
// sender participant id, and the opaque canonical payload bytes it wrapped.
// The caller decodes payload itself, against whichever type KindShare or
// KindAggregatedShare indicates.
func DecodeEnvelope(r io.Reader) (Kind, uint64, uint32, []byte, error) {
	var hdr lenHeader
	if err := fixbuf.Read(r, nil, &hdr); err != nil {
		return 0, 0, 0, nil, fmt.Errorf("wire: decoding header: %w", err)
	}

	body := make([]byte, hdr.BodyLen)
	if _, err := io.ReadFull(r, body); err != nil {
		return 0, 0, 0, nil, fmt.Errorf("wire: reading envelope: %w", err)
	}

	var env envelope
	if err := protobuf.Decode(body, &env); err != nil {
		return 0, 0, 0, nil, fmt.Errorf("wire: decoding envelope: %w", err)
	}

	return Kind(env.Kind), env.Epoch, env.ParticipantID, env.Payload, nil
}
