package core

import (
	"encoding/binary"
	"fmt"
)

const (
	// reservedLen is the reserved word of a Router Solicitation.
	reservedLen = 4

	// routerAdvertisementLen is cur hop limit (1) + flags (1) + router lifetime (2) +
	// reachable time (4) + retrans timer (4).
	routerAdvertisementLen = 12

	flagManaged = 0b1000_0000
	flagOther   = 0b0100_0000
)

// RouterSolicitation asks routers to send Router Advertisements. Options are kept opaque.
// https://www.rfc-editor.org/rfc/rfc4861.html#section-4.1
type RouterSolicitation struct {
	header
	Addresses

	Reserved uint32
	Options  []byte
}

// NewRouterSolicitation builds a solicitation carrying options, which are copied.
func NewRouterSolicitation(a Addresses, options []byte) *RouterSolicitation {
	return &RouterSolicitation{Addresses: a, Options: opaque(options)}
}

func (p *RouterSolicitation) Type() Type      { return TypeV6RouterSolicitation }
func (p *RouterSolicitation) Len() int        { return headerLen + reservedLen + len(p.Options) }
func (p *RouterSolicitation) Marshal() []byte { return p.MarshalOrder(binary.BigEndian) }

func (p *RouterSolicitation) MarshalOrder(order binary.ByteOrder) []byte {
	b := newBuffer(p.Type(), p.code, reservedLen+len(p.Options))
	order.PutUint32(b[headerLen:], p.Reserved)
	copy(b[headerLen+reservedLen:], p.Options)
	return finishV6(p, p.Addresses, b, order)
}

func (p *RouterSolicitation) String() string {
	return fmt.Sprintf("RouterSolicitation(checksum=%#04x, options=%d bytes)", p.checksum, len(p.Options))
}

// RouterAdvertisement is sent by routers periodically or in response to a solicitation.
// Options are kept opaque.
// https://www.rfc-editor.org/rfc/rfc4861.html#section-4.2
//
//	| Cur Hop Limit |M|O|  Reserved |       Router Lifetime         |
//	|                         Reachable Time                        |
//	|                          Retrans Timer                        |
//	|   Options ...
type RouterAdvertisement struct {
	header
	Addresses

	CurHopLimit uint8
	Managed     bool
	Other       bool
	// ReservedFlags holds the six low bits of the flags byte.
	ReservedFlags  uint8
	RouterLifetime uint16
	ReachableTime  uint32
	RetransTimer   uint32
	Options        []byte
}

func (p *RouterAdvertisement) Type() Type      { return TypeV6RouterAdvertisement }
func (p *RouterAdvertisement) Len() int        { return headerLen + routerAdvertisementLen + len(p.Options) }
func (p *RouterAdvertisement) Marshal() []byte { return p.MarshalOrder(binary.BigEndian) }

func (p *RouterAdvertisement) MarshalOrder(order binary.ByteOrder) []byte {
	b := newBuffer(p.Type(), p.code, routerAdvertisementLen+len(p.Options))
	body := b[headerLen:]
	body[0] = p.CurHopLimit
	body[1] = p.flags()
	order.PutUint16(body[2:4], p.RouterLifetime)
	order.PutUint32(body[4:8], p.ReachableTime)
	order.PutUint32(body[8:12], p.RetransTimer)
	copy(body[routerAdvertisementLen:], p.Options)
	return finishV6(p, p.Addresses, b, order)
}

func (p *RouterAdvertisement) flags() uint8 {
	f := p.ReservedFlags &^ (flagManaged | flagOther)
	if p.Managed {
		f |= flagManaged
	}
	if p.Other {
		f |= flagOther
	}
	return f
}

func (p *RouterAdvertisement) String() string {
	return fmt.Sprintf("RouterAdvertisement(checksum=%#04x, hop_limit=%d, M=%t, O=%t, lifetime=%d, reachable=%d, retrans=%d, options=%d bytes)",
		p.checksum, p.CurHopLimit, p.Managed, p.Other, p.RouterLifetime, p.ReachableTime, p.RetransTimer, len(p.Options))
}

func parseRouterSolicitation(h header, a Addresses, body []byte, order binary.ByteOrder) (*RouterSolicitation, error) {
	if err := requireBody(body, reservedLen, "router solicitation reserved field"); err != nil {
		return nil, err
	}
	return &RouterSolicitation{
		header:    h,
		Addresses: a,
		Reserved:  order.Uint32(body[:reservedLen]),
		Options:   opaque(body[reservedLen:]),
	}, nil
}

func parseRouterAdvertisement(h header, a Addresses, body []byte, order binary.ByteOrder) (*RouterAdvertisement, error) {
	if err := requireBody(body, routerAdvertisementLen, "router advertisement fields"); err != nil {
		return nil, err
	}
	flags := body[1]
	return &RouterAdvertisement{
		header:         h,
		Addresses:      a,
		CurHopLimit:    body[0],
		Managed:        flags&flagManaged != 0,
		Other:          flags&flagOther != 0,
		ReservedFlags:  flags &^ (flagManaged | flagOther),
		RouterLifetime: order.Uint16(body[2:4]),
		ReachableTime:  order.Uint32(body[4:8]),
		RetransTimer:   order.Uint32(body[8:12]),
		Options:        opaque(body[routerAdvertisementLen:]),
	}, nil
}
