//go:build linux || darwin || freebsd || netbsd || openbsd

package core

import "golang.org/x/sys/unix"

var (
	// OptionIPv4TOS is IP_TOS.
	OptionIPv4TOS = SocketOption{Level: unix.IPPROTO_IP, Name: unix.IP_TOS}
	// OptionIPv4TTL is IP_TTL.
	OptionIPv4TTL = SocketOption{Level: unix.IPPROTO_IP, Name: unix.IP_TTL}
	// OptionIPv6TrafficClass is IPV6_TCLASS.
	OptionIPv6TrafficClass = SocketOption{Level: unix.IPPROTO_IPV6, Name: unix.IPV6_TCLASS}
	// OptionIPv6HopLimit is IPV6_UNICAST_HOPS.
	OptionIPv6HopLimit = SocketOption{Level: unix.IPPROTO_IPV6, Name: unix.IPV6_UNICAST_HOPS}
)
