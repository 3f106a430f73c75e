package core

import (
	"net/netip"
	"time"
)

// ICMPPort is the nominal port passed to SocketPort send and receive calls. ICMP has no
// ports on the wire; implementations must ignore it.
const ICMPPort = 7

const (
	// tosLowDelay is IPTOS_LOWDELAY.
	tosLowDelay = 0x10
	// tclassExpedited is the EF code point (DSCP 46) shifted into the traffic class byte.
	tclassExpedited = 46 << 2
)

// SocketOption names an integer socket option by its level and name.
type SocketOption struct {
	Level int
	Name  int
}

// Socket is a handle returned by a SocketPort. It is owned by a single Session and must
// not be shared between concurrent pings.
type Socket interface {
	Close() error
}

// SocketPort is the set of socket primitives the ping engine is built on. Every error
// returned is treated as a SocketError.
type SocketPort interface {
	// OpenV4 opens an ICMPv4 socket.
	OpenV4() (Socket, error)
	// OpenV6 opens an ICMPv6 socket.
	OpenV6() (Socket, error)
	// SetIntOption sets an integer socket option.
	SetIntOption(s Socket, opt SocketOption, value int) error
	// SetReceiveTimeout bounds every subsequent ReceiveFrom call.
	SetReceiveTimeout(s Socket, d time.Duration) error
	// SendTo sends b to addr and returns the number of bytes written.
	SendTo(s Socket, b []byte, flags int, addr netip.Addr, port int) (int, error)
	// ReceiveFrom reads one ICMP message sent by addr into b, without any IP header.
	ReceiveFrom(s Socket, b []byte, flags int, addr netip.Addr, port int) (int, error)
}

// openFor opens a socket of the family addr belongs to.
func openFor(port SocketPort, addr netip.Addr) (Socket, error) {
	if isIPv4(addr) {
		return port.OpenV4()
	}
	return port.OpenV6()
}

// serviceClass returns the low delay option and value for the family of addr.
func serviceClass(addr netip.Addr) (SocketOption, int) {
	if isIPv4(addr) {
		return OptionIPv4TOS, tosLowDelay
	}
	return OptionIPv6TrafficClass, tclassExpedited
}
