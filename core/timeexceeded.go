package core

import (
	"encoding/binary"
	"fmt"
)

// TimeExceededV4 reports a datagram discarded because its TTL reached zero or its
// fragments could not be reassembled in time. Everything after the 4-byte header,
// including the unused word, is kept in Payload.
type TimeExceededV4 struct {
	header

	Reason  TimeExceededCode
	Payload []byte
}

// NewTimeExceededV4 builds a message carrying payload, which is copied.
func NewTimeExceededV4(reason TimeExceededCode, payload []byte) *TimeExceededV4 {
	return &TimeExceededV4{Reason: reason, Payload: opaque(payload)}
}

func (p *TimeExceededV4) Type() Type      { return TypeV4TimeExceeded }
func (p *TimeExceededV4) Code() uint8     { return uint8(p.Reason) }
func (p *TimeExceededV4) Len() int        { return headerLen + len(p.Payload) }
func (p *TimeExceededV4) Marshal() []byte { return p.MarshalOrder(binary.BigEndian) }

func (p *TimeExceededV4) MarshalOrder(order binary.ByteOrder) []byte {
	b := newBuffer(p.Type(), p.Code(), len(p.Payload))
	copy(b[headerLen:], p.Payload)
	return finishV4(p, b, order)
}

func (p *TimeExceededV4) String() string {
	return fmt.Sprintf("TimeExceededV4(code=%s, checksum=%#04x, payload=%d bytes)", p.Reason, p.checksum, len(p.Payload))
}

// TimeExceededV6 is the ICMPv6 counterpart of TimeExceededV4.
// https://www.rfc-editor.org/rfc/rfc4443#section-3.3
type TimeExceededV6 struct {
	header
	Addresses

	Reason  TimeExceededCode
	Payload []byte
}

// NewTimeExceededV6 builds a message carrying payload, which is copied.
func NewTimeExceededV6(a Addresses, reason TimeExceededCode, payload []byte) *TimeExceededV6 {
	return &TimeExceededV6{Addresses: a, Reason: reason, Payload: opaque(payload)}
}

func (p *TimeExceededV6) Type() Type      { return TypeV6TimeExceeded }
func (p *TimeExceededV6) Code() uint8     { return uint8(p.Reason) }
func (p *TimeExceededV6) Len() int        { return headerLen + len(p.Payload) }
func (p *TimeExceededV6) Marshal() []byte { return p.MarshalOrder(binary.BigEndian) }

func (p *TimeExceededV6) MarshalOrder(order binary.ByteOrder) []byte {
	b := newBuffer(p.Type(), p.Code(), len(p.Payload))
	copy(b[headerLen:], p.Payload)
	return finishV6(p, p.Addresses, b, order)
}

func (p *TimeExceededV6) String() string {
	return fmt.Sprintf("TimeExceededV6(code=%s, checksum=%#04x, payload=%d bytes)", p.Reason, p.checksum, len(p.Payload))
}

func parseTimeExceededV4(h header, body []byte) (*TimeExceededV4, error) {
	reason, err := TimeExceededCodeFromValue(h.code)
	if err != nil {
		return nil, err
	}
	return &TimeExceededV4{header: header{checksum: h.checksum}, Reason: reason, Payload: opaque(body)}, nil
}

func parseTimeExceededV6(h header, a Addresses, body []byte) (*TimeExceededV6, error) {
	reason, err := TimeExceededCodeFromValue(h.code)
	if err != nil {
		return nil, err
	}
	return &TimeExceededV6{header: header{checksum: h.checksum}, Addresses: a, Reason: reason, Payload: opaque(body)}, nil
}
