package core

import (
	"fmt"
	"net/netip"
	"time"
)

// PingResult is the outcome of one echo round trip: either Success or Failed.
type PingResult interface {
	// Peer is the address that was pinged. It is invalid when the host never resolved.
	Peer() netip.Addr

	isPingResult()
}

// Success is an echo reply matching the request's sequence number.
type Success struct {
	Sequence   int
	PacketSize int
	RTT        time.Duration
	Address    netip.Addr
}

func (s Success) Peer() netip.Addr { return s.Address }
func (Success) isPingResult()      {}

// Milliseconds returns the round trip time in whole milliseconds.
func (s Success) Milliseconds() int64 {
	return s.RTT.Milliseconds()
}

func (s Success) String() string {
	return fmt.Sprintf("%d bytes from %s: icmp_seq=%d time=%s", s.PacketSize, s.Address, s.Sequence, s.RTT)
}

// Failed is a ping that produced no matching echo reply.
type Failed struct {
	// Message is the human readable cause; for socket failures it is the platform error text.
	Message string
	Address netip.Addr
	// Sequence is the sequence number of the request, zero when none was sent.
	Sequence int
	// Err wraps one of ErrSocket, ErrSequenceMismatch, ErrUnexpectedResponseType,
	// ErrDNSResolveTimeout or ErrDNSResolveFailure.
	Err error
	// Detail describes the ICMP error message received instead of a reply, if any.
	Detail string
}

func (f Failed) Peer() netip.Addr { return f.Address }
func (Failed) isPingResult()      {}

func (f Failed) Error() string {
	if f.Detail != "" {
		return f.Message + ": " + f.Detail
	}
	return f.Message
}

func (f Failed) Unwrap() error { return f.Err }
