package core

import (
	"errors"
	"fmt"
	"net"
	"net/netip"
	"time"

	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"
)

const (
	icmpPrivilegedNetwork     = "ip4:icmp"
	icmpv6PrivilegedNetwork   = "ip6:ipv6-icmp"
	icmpUnprivilegedNetwork   = "udp4"
	icmpv6UnprivilegedNetwork = "udp6"
)

// NetPort is the SocketPort backed by golang.org/x/net/icmp. Unprivileged ports use
// datagram-oriented ICMP endpoints, where the kernel owns the echo identifier.
// Privileged ports use raw sockets, which see every ICMP message reaching the host.
type NetPort struct {
	// IsPrivileged selects raw sockets.
	IsPrivileged bool
}

// NewNetPort returns a NetPort.
func NewNetPort(privileged bool) *NetPort {
	return &NetPort{IsPrivileged: privileged}
}

// netSocket is the Socket handed out by NetPort.
type netSocket struct {
	conn    *icmp.PacketConn
	version Version
	timeout time.Duration
}

func (s *netSocket) Close() error {
	return s.conn.Close()
}

func (p *NetPort) OpenV4() (Socket, error) {
	network := icmpUnprivilegedNetwork
	if p.IsPrivileged {
		network = icmpPrivilegedNetwork
	}
	return p.open(network, "0.0.0.0", V4)
}

func (p *NetPort) OpenV6() (Socket, error) {
	network := icmpv6UnprivilegedNetwork
	if p.IsPrivileged {
		network = icmpv6PrivilegedNetwork
	}
	return p.open(network, "::", V6)
}

func (p *NetPort) open(network, address string, v Version) (Socket, error) {
	conn, err := icmp.ListenPacket(network, address)
	if err != nil {
		return nil, fmt.Errorf("could not listen on %s: %w", network, err)
	}
	return &netSocket{conn: conn, version: v}, nil
}

// SetIntOption supports the TOS and TTL options of IPv4 sockets and the traffic class
// and hop limit options of IPv6 sockets.
func (p *NetPort) SetIntOption(s Socket, opt SocketOption, value int) error {
	sock, err := asNetSocket(s)
	if err != nil {
		return err
	}

	if sock.version == V4 {
		conn := sock.conn.IPv4PacketConn()
		switch opt {
		case OptionIPv4TOS:
			return conn.SetTOS(value)
		case OptionIPv4TTL:
			return conn.SetTTL(value)
		}
	} else {
		conn := sock.conn.IPv6PacketConn()
		switch opt {
		case OptionIPv6TrafficClass:
			return conn.SetTrafficClass(value)
		case OptionIPv6HopLimit:
			return conn.SetHopLimit(value)
		}
	}
	return fmt.Errorf("unsupported socket option level=%d name=%d for %s", opt.Level, opt.Name, sock.version)
}

func (p *NetPort) SetReceiveTimeout(s Socket, d time.Duration) error {
	sock, err := asNetSocket(s)
	if err != nil {
		return err
	}
	if d < 0 {
		return fmt.Errorf("negative receive timeout %s", d)
	}
	sock.timeout = d
	return nil
}

func (p *NetPort) SendTo(s Socket, b []byte, flags int, addr netip.Addr, port int) (int, error) {
	sock, err := asNetSocket(s)
	if err != nil {
		return 0, err
	}
	return sock.conn.WriteTo(b, p.destination(addr))
}

// ReceiveFrom waits until a message from addr arrives or the receive timeout expires.
// Messages from other peers and unsolicited messages seen by raw sockets are dropped.
func (p *NetPort) ReceiveFrom(s Socket, b []byte, flags int, addr netip.Addr, port int) (int, error) {
	sock, err := asNetSocket(s)
	if err != nil {
		return 0, err
	}

	// a zero timeout blocks until a message arrives
	var deadline time.Time
	if sock.timeout > 0 {
		deadline = time.Now().Add(sock.timeout)
	}
	if err := sock.conn.SetReadDeadline(deadline); err != nil {
		return 0, err
	}

	for {
		n, peer, err := sock.conn.ReadFrom(b)
		if err != nil {
			return 0, err
		}

		n = stripIPv4Header(b, n, sock.version)
		if n < headerLen || !samePeer(peer, addr) || unsolicited(b[0], sock.version) {
			continue
		}
		return n, nil
	}
}

func (p *NetPort) destination(addr netip.Addr) net.Addr {
	ip := net.IP(addr.AsSlice())
	if p.IsPrivileged {
		return &net.IPAddr{IP: ip, Zone: addr.Zone()}
	}
	// The provided dst must be net.UDPAddr when conn is a non-privileged
	// datagram-oriented ICMP endpoint.
	return &net.UDPAddr{IP: ip, Zone: addr.Zone()}
}

func asNetSocket(s Socket) (*netSocket, error) {
	sock, ok := s.(*netSocket)
	if !ok || sock == nil {
		return nil, errors.New("socket was not opened by this port")
	}
	return sock, nil
}

// stripIPv4Header drops the IPv4 header some platforms deliver ahead of ICMPv4 messages.
// No registered ICMPv4 type has 4 in its high nibble, so the version nibble is enough to
// tell them apart.
func stripIPv4Header(b []byte, n int, v Version) int {
	if v != V4 || n < ipv4.HeaderLen || b[0]>>4 != 4 {
		return n
	}
	h, err := ipv4.ParseHeader(b[:n])
	if err != nil || h.Len > n {
		return n
	}
	copy(b, b[h.Len:n])
	return n - h.Len
}

func samePeer(peer net.Addr, addr netip.Addr) bool {
	var ip net.IP
	switch a := peer.(type) {
	case *net.IPAddr:
		ip = a.IP
	case *net.UDPAddr:
		ip = a.IP
	default:
		return true
	}
	return addrFromIP(ip) == addr.Unmap().WithZone("")
}

// unsolicited reports whether a message of type t can never answer an echo request:
// outgoing echo requests and the neighbor discovery and multicast listener traffic raw
// ICMPv6 sockets receive.
func unsolicited(t uint8, v Version) bool {
	if v == V4 {
		return t == uint8(TypeV4EchoRequest)
	}
	return t == uint8(TypeV6EchoRequest) || (t >= 130 && t <= 143)
}
