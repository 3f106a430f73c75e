//go:build windows

package core

import "golang.org/x/sys/windows"

var (
	// OptionIPv4TOS is IP_TOS.
	OptionIPv4TOS = SocketOption{Level: windows.IPPROTO_IP, Name: windows.IP_TOS}
	// OptionIPv4TTL is IP_TTL.
	OptionIPv4TTL = SocketOption{Level: windows.IPPROTO_IP, Name: windows.IP_TTL}
	// OptionIPv6TrafficClass is IPV6_TCLASS.
	OptionIPv6TrafficClass = SocketOption{Level: windows.IPPROTO_IPV6, Name: 39}
	// OptionIPv6HopLimit is IPV6_UNICAST_HOPS.
	OptionIPv6HopLimit = SocketOption{Level: windows.IPPROTO_IPV6, Name: windows.IPV6_UNICAST_HOPS}
)
