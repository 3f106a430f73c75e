package core

import (
	"encoding/binary"
	"fmt"
	"net/netip"
)

const (
	// headerLen is type (1) + code (1) + checksum (2).
	headerLen = 4

	// pseudoHeaderLen is source (16) + destination (16) + length (4) + zero (3) + next header (1).
	pseudoHeaderLen = 40

	icmpProtocol   = 1
	icmpv6Protocol = 58
)

// NoLimit makes the parsers consume the whole buffer.
const NoLimit = -1

// Header is an ICMP message of one of the supported variants. The set of implementations
// is closed; use a type switch to reach variant fields.
type Header interface {
	// Type is the registered message type.
	Type() Type
	// Code is the raw code byte.
	Code() uint8
	// Checksum is the checksum read from the wire, or the one computed by the last Marshal.
	Checksum() uint16
	// Len is the exact length of the serialized message.
	Len() int
	// Marshal serializes the message in network byte order and stores the computed checksum.
	Marshal() []byte
	// MarshalOrder is Marshal with the multi-byte fields laid out in order.
	MarshalOrder(order binary.ByteOrder) []byte

	setChecksum(uint16)
}

// header carries the fields common to every variant.
type header struct {
	code     uint8
	checksum uint16
}

func (h *header) Code() uint8            { return h.code }
func (h *header) Checksum() uint16       { return h.checksum }
func (h *header) setChecksum(sum uint16) { h.checksum = sum }

// Addresses are the IPv6 source and destination an ICMPv6 message travels between. They
// are never serialized; they only feed the pseudo-header checksum.
type Addresses struct {
	Src netip.Addr
	Dst netip.Addr
}

// PseudoHeader returns the IPv6 pseudo-header for an upper-layer packet of n bytes.
// https://www.rfc-editor.org/rfc/rfc8200#section-8.1
func (a Addresses) PseudoHeader(n int) []byte {
	b := make([]byte, pseudoHeaderLen)
	src, dst := a.Src.As16(), a.Dst.As16()
	copy(b[0:16], src[:])
	copy(b[16:32], dst[:])
	binary.BigEndian.PutUint32(b[32:36], uint32(n))
	b[39] = icmpv6Protocol
	return b
}

// ComputeChecksum returns the checksum h would be sent with. Unlike Marshal it leaves the
// stored checksum untouched.
func ComputeChecksum(h Header) uint16 {
	old := h.Checksum()
	b := h.Marshal()
	h.setChecksum(old)
	return binary.BigEndian.Uint16(b[checksumOffset:])
}

// VerifyV6 reports whether b, an ICMPv6 message sent from src to dst, carries a valid
// checksum.
func VerifyV6(b []byte, src, dst netip.Addr) bool {
	return verifyWithPseudoHeader(Addresses{Src: src, Dst: dst}.PseudoHeader(len(b)), b)
}

// newBuffer allocates a message of headerLen+bodyLen bytes with type and code set.
func newBuffer(t Type, code uint8, bodyLen int) []byte {
	b := make([]byte, headerLen+bodyLen)
	b[0] = t.Value()
	b[1] = code
	return b
}

// finishV4 computes the checksum directly over the message.
func finishV4(h Header, b []byte, order binary.ByteOrder) []byte {
	sum := ComputeForSend(b)
	order.PutUint16(b[checksumOffset:], sum)
	h.setChecksum(sum)
	return b
}

// finishV6 computes the checksum over the pseudo-header followed by the message. Only the
// message is returned.
func finishV6(h Header, a Addresses, b []byte, order binary.ByteOrder) []byte {
	sum := checksumWithPseudoHeader(a.PseudoHeader(len(b)), b)
	order.PutUint16(b[checksumOffset:], sum)
	h.setChecksum(sum)
	return b
}

// clip applies the caller supplied ceiling so bytes of an enclosing packet are never read
// as ICMP payload.
func clip(b []byte, limit int) []byte {
	if limit >= 0 && limit < len(b) {
		return b[:limit]
	}
	return b
}

// opaque copies the trailing bytes of a message. Empty input yields nil so parsed and
// constructed packets compare equal.
func opaque(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	return append([]byte(nil), b...)
}

// Parse decodes an ICMP message of the given version. ICMPv6 messages are decoded with
// unspecified addresses; use ParseV6 when the checksum must be recomputed.
func Parse(b []byte, v Version, limit int) (Header, error) {
	switch v {
	case V4:
		return ParseV4(b, limit)
	case V6:
		return ParseV6(b, netip.IPv6Unspecified(), netip.IPv6Unspecified(), limit)
	}
	return nil, fmt.Errorf("%w: protocol version %d", ErrUnsupportedType, int(v))
}

// ParseV4 decodes an ICMPv4 message in network byte order. At most limit bytes of b are
// considered part of the message.
func ParseV4(b []byte, limit int) (Header, error) {
	return ParseV4Order(b, limit, binary.BigEndian)
}

// ParseV4Order is ParseV4 for messages laid out in order.
func ParseV4Order(b []byte, limit int, order binary.ByteOrder) (Header, error) {
	b = clip(b, limit)
	if len(b) < headerLen {
		return nil, fmt.Errorf("%w: need %d bytes for an ICMPv4 header, have %d", ErrBufferTooSmall, headerLen, len(b))
	}

	t, err := TypeV4FromValue(b[0])
	if err != nil {
		return nil, err
	}
	h := header{code: b[1], checksum: order.Uint16(b[checksumOffset:])}
	body := b[headerLen:]

	switch t {
	case TypeV4EchoRequest, TypeV4EchoReply:
		return parseEchoV4(h, t == TypeV4EchoReply, body, order)
	case TypeV4DestinationUnreachable:
		return parseDestinationUnreachableV4(h, body, order)
	case TypeV4TimeExceeded:
		return parseTimeExceededV4(h, body)
	}
	return nil, fmt.Errorf("%w: no parser for ICMPv4 %s", ErrUnsupportedType, t)
}

// ParseV6 decodes an ICMPv6 message sent from src to dst, in network byte order. At most
// limit bytes of b are considered part of the message.
func ParseV6(b []byte, src, dst netip.Addr, limit int) (Header, error) {
	return ParseV6Order(b, src, dst, limit, binary.BigEndian)
}

// ParseV6Order is ParseV6 for messages laid out in order.
func ParseV6Order(b []byte, src, dst netip.Addr, limit int, order binary.ByteOrder) (Header, error) {
	b = clip(b, limit)
	if len(b) < headerLen {
		return nil, fmt.Errorf("%w: need %d bytes for an ICMPv6 header, have %d", ErrBufferTooSmall, headerLen, len(b))
	}

	t, err := TypeV6FromValue(b[0])
	if err != nil {
		return nil, err
	}
	h := header{code: b[1], checksum: order.Uint16(b[checksumOffset:])}
	a := Addresses{Src: src, Dst: dst}
	body := b[headerLen:]

	switch t {
	case TypeV6EchoRequest, TypeV6EchoReply:
		return parseEchoV6(h, a, t == TypeV6EchoReply, body, order)
	case TypeV6DestinationUnreachable:
		return parseDestinationUnreachableV6(h, a, body, order)
	case TypeV6TimeExceeded:
		return parseTimeExceededV6(h, a, body)
	case TypeV6RouterSolicitation:
		return parseRouterSolicitation(h, a, body, order)
	case TypeV6RouterAdvertisement:
		return parseRouterAdvertisement(h, a, body, order)
	case TypeV6MulticastListenerDiscoveryV2:
		return parseMulticastListenerReportV2(h, a, body, order)
	}
	return nil, fmt.Errorf("%w: no parser for ICMPv6 %s", ErrUnsupportedType, t)
}

// requireBody fails with ErrBufferTooSmall when a fixed field does not fit.
func requireBody(body []byte, n int, what string) error {
	if len(body) < n {
		return fmt.Errorf("%w: need %d bytes for %s, have %d", ErrBufferTooSmall, n, what, len(body))
	}
	return nil
}
