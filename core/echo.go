package core

import (
	"encoding/binary"
	"fmt"
)

// echoLen is identifier (2) + sequence (2).
const echoLen = 4

// EchoV4 is an ICMPv4 Echo Request or Echo Reply.
// https://www.rfc-editor.org/rfc/rfc792.html page 14
type EchoV4 struct {
	header

	Identifier uint16
	Sequence   uint16
	Reply      bool
	Payload    []byte
}

// NewEchoV4 builds an echo message. payload is copied.
func NewEchoV4(id, seq uint16, reply bool, payload []byte) *EchoV4 {
	return &EchoV4{Identifier: id, Sequence: seq, Reply: reply, Payload: opaque(payload)}
}

func (p *EchoV4) Type() Type {
	if p.Reply {
		return TypeV4EchoReply
	}
	return TypeV4EchoRequest
}

func (p *EchoV4) Len() int        { return headerLen + echoLen + len(p.Payload) }
func (p *EchoV4) Marshal() []byte { return p.MarshalOrder(binary.BigEndian) }

func (p *EchoV4) MarshalOrder(order binary.ByteOrder) []byte {
	b := newBuffer(p.Type(), p.code, echoLen+len(p.Payload))
	putEcho(b[headerLen:], p.Identifier, p.Sequence, p.Payload, order)
	return finishV4(p, b, order)
}

func (p *EchoV4) String() string {
	return fmt.Sprintf("EchoV4(type=%s, checksum=%#04x, id=%d, seq=%d, payload=%d bytes)",
		p.Type(), p.checksum, p.Identifier, p.Sequence, len(p.Payload))
}

// EchoV6 is an ICMPv6 Echo Request or Echo Reply.
// https://www.rfc-editor.org/rfc/rfc4443#section-4.1
type EchoV6 struct {
	header
	Addresses

	Identifier uint16
	Sequence   uint16
	Reply      bool
	Payload    []byte
}

// NewEchoV6 builds an echo message travelling between the given addresses. payload is
// copied.
func NewEchoV6(a Addresses, id, seq uint16, reply bool, payload []byte) *EchoV6 {
	return &EchoV6{Addresses: a, Identifier: id, Sequence: seq, Reply: reply, Payload: opaque(payload)}
}

func (p *EchoV6) Type() Type {
	if p.Reply {
		return TypeV6EchoReply
	}
	return TypeV6EchoRequest
}

func (p *EchoV6) Len() int        { return headerLen + echoLen + len(p.Payload) }
func (p *EchoV6) Marshal() []byte { return p.MarshalOrder(binary.BigEndian) }

func (p *EchoV6) MarshalOrder(order binary.ByteOrder) []byte {
	b := newBuffer(p.Type(), p.code, echoLen+len(p.Payload))
	putEcho(b[headerLen:], p.Identifier, p.Sequence, p.Payload, order)
	return finishV6(p, p.Addresses, b, order)
}

func (p *EchoV6) String() string {
	return fmt.Sprintf("EchoV6(type=%s, checksum=%#04x, id=%d, seq=%d, payload=%d bytes)",
		p.Type(), p.checksum, p.Identifier, p.Sequence, len(p.Payload))
}

func putEcho(b []byte, id, seq uint16, payload []byte, order binary.ByteOrder) {
	order.PutUint16(b[0:2], id)
	order.PutUint16(b[2:4], seq)
	copy(b[echoLen:], payload)
}

func parseEchoV4(h header, reply bool, body []byte, order binary.ByteOrder) (*EchoV4, error) {
	if err := requireBody(body, echoLen, "echo identifier and sequence"); err != nil {
		return nil, err
	}
	return &EchoV4{
		header:     h,
		Identifier: order.Uint16(body[0:2]),
		Sequence:   order.Uint16(body[2:4]),
		Reply:      reply,
		Payload:    opaque(body[echoLen:]),
	}, nil
}

func parseEchoV6(h header, a Addresses, reply bool, body []byte, order binary.ByteOrder) (*EchoV6, error) {
	if err := requireBody(body, echoLen, "echo identifier and sequence"); err != nil {
		return nil, err
	}
	return &EchoV6{
		header:     h,
		Addresses:  a,
		Identifier: order.Uint16(body[0:2]),
		Sequence:   order.Uint16(body[2:4]),
		Reply:      reply,
		Payload:    opaque(body[echoLen:]),
	}, nil
}
