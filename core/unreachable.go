package core

import (
	"encoding/binary"
	"fmt"
)

// unusedLen is the 4-byte word following the header of error messages.
const unusedLen = 4

// DestinationUnreachableV4 reports an undeliverable datagram.
// https://www.rfc-editor.org/rfc/rfc792.html page 4
//
// Payload holds the offending IP header plus the first 64 bits of its data and is kept
// opaque; see DecodeQuote.
type DestinationUnreachableV4 struct {
	header

	Reason DestinationUnreachableCodeV4
	// Unused is zero except for codes that reuse it, such as the next-hop MTU of
	// FragmentationNeededAndDFSet (RFC 1191).
	Unused  uint32
	Payload []byte
}

// NewDestinationUnreachableV4 builds a message quoting payload, which is copied.
func NewDestinationUnreachableV4(reason DestinationUnreachableCodeV4, payload []byte) *DestinationUnreachableV4 {
	return &DestinationUnreachableV4{Reason: reason, Payload: opaque(payload)}
}

func (p *DestinationUnreachableV4) Type() Type      { return TypeV4DestinationUnreachable }
func (p *DestinationUnreachableV4) Code() uint8     { return uint8(p.Reason) }
func (p *DestinationUnreachableV4) Len() int        { return headerLen + unusedLen + len(p.Payload) }
func (p *DestinationUnreachableV4) Marshal() []byte { return p.MarshalOrder(binary.BigEndian) }

func (p *DestinationUnreachableV4) MarshalOrder(order binary.ByteOrder) []byte {
	b := newBuffer(p.Type(), p.Code(), unusedLen+len(p.Payload))
	order.PutUint32(b[headerLen:], p.Unused)
	copy(b[headerLen+unusedLen:], p.Payload)
	return finishV4(p, b, order)
}

func (p *DestinationUnreachableV4) String() string {
	return fmt.Sprintf("DestinationUnreachableV4(code=%s, checksum=%#04x, payload=%d bytes)",
		p.Reason, p.checksum, len(p.Payload))
}

// DestinationUnreachableV6 reports an undeliverable IPv6 packet.
// https://www.rfc-editor.org/rfc/rfc4443#section-3.1
type DestinationUnreachableV6 struct {
	header
	Addresses

	Reason  DestinationUnreachableCodeV6
	Unused  uint32
	Payload []byte
}

// NewDestinationUnreachableV6 builds a message quoting payload, which is copied.
func NewDestinationUnreachableV6(a Addresses, reason DestinationUnreachableCodeV6, payload []byte) *DestinationUnreachableV6 {
	return &DestinationUnreachableV6{Addresses: a, Reason: reason, Payload: opaque(payload)}
}

func (p *DestinationUnreachableV6) Type() Type      { return TypeV6DestinationUnreachable }
func (p *DestinationUnreachableV6) Code() uint8     { return uint8(p.Reason) }
func (p *DestinationUnreachableV6) Len() int        { return headerLen + unusedLen + len(p.Payload) }
func (p *DestinationUnreachableV6) Marshal() []byte { return p.MarshalOrder(binary.BigEndian) }

func (p *DestinationUnreachableV6) MarshalOrder(order binary.ByteOrder) []byte {
	b := newBuffer(p.Type(), p.Code(), unusedLen+len(p.Payload))
	order.PutUint32(b[headerLen:], p.Unused)
	copy(b[headerLen+unusedLen:], p.Payload)
	return finishV6(p, p.Addresses, b, order)
}

func (p *DestinationUnreachableV6) String() string {
	return fmt.Sprintf("DestinationUnreachableV6(code=%s, checksum=%#04x, payload=%d bytes)",
		p.Reason, p.checksum, len(p.Payload))
}

func parseDestinationUnreachableV4(h header, body []byte, order binary.ByteOrder) (*DestinationUnreachableV4, error) {
	reason, err := DestinationUnreachableCodeV4FromValue(h.code)
	if err != nil {
		return nil, err
	}
	if err := requireBody(body, unusedLen, "destination unreachable unused field"); err != nil {
		return nil, err
	}
	return &DestinationUnreachableV4{
		header:  header{checksum: h.checksum},
		Reason:  reason,
		Unused:  order.Uint32(body[:unusedLen]),
		Payload: opaque(body[unusedLen:]),
	}, nil
}

func parseDestinationUnreachableV6(h header, a Addresses, body []byte, order binary.ByteOrder) (*DestinationUnreachableV6, error) {
	reason, err := DestinationUnreachableCodeV6FromValue(h.code)
	if err != nil {
		return nil, err
	}
	if err := requireBody(body, unusedLen, "destination unreachable unused field"); err != nil {
		return nil, err
	}
	return &DestinationUnreachableV6{
		header:    header{checksum: h.checksum},
		Addresses: a,
		Reason:    reason,
		Unused:    order.Uint32(body[:unusedLen]),
		Payload:   opaque(body[unusedLen:]),
	}, nil
}
