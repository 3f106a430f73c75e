package core

import (
	"encoding/binary"
	"fmt"
)

// mldReportLen is reserved (2) + number of multicast address records (2).
const mldReportLen = 4

// MulticastListenerReportV2 is an MLDv2 report. The code byte is reserved. The multicast
// address records are kept opaque.
// https://datatracker.ietf.org/doc/html/rfc3810#section-5.2
type MulticastListenerReportV2 struct {
	header
	Addresses

	Reserved    uint16
	RecordCount uint16
	Records     []byte
}

// NewMulticastListenerReportV2 builds a report; records are copied.
func NewMulticastListenerReportV2(a Addresses, count uint16, records []byte) *MulticastListenerReportV2 {
	return &MulticastListenerReportV2{Addresses: a, RecordCount: count, Records: opaque(records)}
}

func (p *MulticastListenerReportV2) Type() Type      { return TypeV6MulticastListenerDiscoveryV2 }
func (p *MulticastListenerReportV2) Len() int        { return headerLen + mldReportLen + len(p.Records) }
func (p *MulticastListenerReportV2) Marshal() []byte { return p.MarshalOrder(binary.BigEndian) }

func (p *MulticastListenerReportV2) MarshalOrder(order binary.ByteOrder) []byte {
	b := newBuffer(p.Type(), p.code, mldReportLen+len(p.Records))
	order.PutUint16(b[headerLen:], p.Reserved)
	order.PutUint16(b[headerLen+2:], p.RecordCount)
	copy(b[headerLen+mldReportLen:], p.Records)
	return finishV6(p, p.Addresses, b, order)
}

func (p *MulticastListenerReportV2) String() string {
	return fmt.Sprintf("MulticastListenerReportV2(checksum=%#04x, records=%d, data=%d bytes)",
		p.checksum, p.RecordCount, len(p.Records))
}

func parseMulticastListenerReportV2(h header, a Addresses, body []byte, order binary.ByteOrder) (*MulticastListenerReportV2, error) {
	if err := requireBody(body, mldReportLen, "MLDv2 report fields"); err != nil {
		return nil, err
	}
	return &MulticastListenerReportV2{
		header:      h,
		Addresses:   a,
		Reserved:    order.Uint16(body[0:2]),
		RecordCount: order.Uint16(body[2:4]),
		Records:     opaque(body[mldReportLen:]),
	}, nil
}
