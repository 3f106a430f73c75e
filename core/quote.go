package core

import (
	"fmt"
	"net/netip"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

// Quote describes the datagram an ICMP error message was generated for, decoded from the
// IP header and leading data bytes the error carries.
type Quote struct {
	Src      netip.Addr
	Dst      netip.Addr
	Protocol uint8

	// Echo is set when the quoted datagram is an echo message; Identifier and Sequence
	// are only meaningful then.
	Echo       bool
	Identifier uint16
	Sequence   uint16
}

// DecodeQuote decodes the payload of a Destination Unreachable or Time Exceeded message.
func DecodeQuote(payload []byte, v Version) (*Quote, error) {
	if v == V6 {
		return decodeQuoteV6(payload)
	}
	return decodeQuoteV4(payload)
}

// QuoteOf decodes the quoted datagram of h, failing for variants that carry none.
func QuoteOf(h Header) (*Quote, error) {
	switch p := h.(type) {
	case *DestinationUnreachableV4:
		return DecodeQuote(p.Payload, V4)
	case *DestinationUnreachableV6:
		return DecodeQuote(p.Payload, V6)
	case *TimeExceededV4:
		// the unused word precedes the quoted header
		if len(p.Payload) < unusedLen {
			return nil, fmt.Errorf("%w: time exceeded without unused word", ErrBufferTooSmall)
		}
		return DecodeQuote(p.Payload[unusedLen:], V4)
	case *TimeExceededV6:
		if len(p.Payload) < unusedLen {
			return nil, fmt.Errorf("%w: time exceeded without unused word", ErrBufferTooSmall)
		}
		return DecodeQuote(p.Payload[unusedLen:], V6)
	}
	return nil, fmt.Errorf("%w: %s carries no quoted datagram", ErrUnsupportedType, h.Type())
}

func decodeQuoteV4(payload []byte) (*Quote, error) {
	packet := gopacket.NewPacket(payload, layers.LayerTypeIPv4, gopacket.Default)
	ip, ok := packet.Layer(layers.LayerTypeIPv4).(*layers.IPv4)
	if !ok || ip.SrcIP == nil {
		return nil, fmt.Errorf("%w: quoted IPv4 header: %s", ErrParse, layerError(packet))
	}

	q := &Quote{
		Src:      addrFromIP(ip.SrcIP),
		Dst:      addrFromIP(ip.DstIP),
		Protocol: uint8(ip.Protocol),
	}
	if icmp, ok := packet.Layer(layers.LayerTypeICMPv4).(*layers.ICMPv4); ok {
		switch icmp.TypeCode.Type() {
		case layers.ICMPv4TypeEchoRequest, layers.ICMPv4TypeEchoReply:
			q.Echo = true
			q.Identifier = icmp.Id
			q.Sequence = icmp.Seq
		}
	}
	return q, nil
}

func decodeQuoteV6(payload []byte) (*Quote, error) {
	packet := gopacket.NewPacket(payload, layers.LayerTypeIPv6, gopacket.Default)
	ip, ok := packet.Layer(layers.LayerTypeIPv6).(*layers.IPv6)
	if !ok || ip.SrcIP == nil {
		return nil, fmt.Errorf("%w: quoted IPv6 header: %s", ErrParse, layerError(packet))
	}

	q := &Quote{
		Src:      addrFromIP(ip.SrcIP),
		Dst:      addrFromIP(ip.DstIP),
		Protocol: uint8(ip.NextHeader),
	}
	if echo, ok := packet.Layer(layers.LayerTypeICMPv6Echo).(*layers.ICMPv6Echo); ok {
		q.Echo = true
		q.Identifier = echo.Identifier
		q.Sequence = echo.SeqNumber
	}
	return q, nil
}

func layerError(packet gopacket.Packet) string {
	if e := packet.ErrorLayer(); e != nil {
		return e.Error().Error()
	}
	return "layer not found"
}

// dump renders an ICMP message as a gopacket layer dump for trace logging.
func dump(b []byte, v Version) string {
	t := layers.LayerTypeICMPv4
	if v == V6 {
		t = layers.LayerTypeICMPv6
	}
	return gopacket.NewPacket(b, t, gopacket.Default).Dump()
}
