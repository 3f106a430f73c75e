package core

import (
	"net"
	"net/netip"
)

func isIPv4(addr netip.Addr) bool {
	return addr.Unmap().Is4()
}

// addrFromIP converts a net.IP, folding IPv4-mapped addresses to plain IPv4.
func addrFromIP(ip net.IP) netip.Addr {
	addr, ok := netip.AddrFromSlice(ip)
	if !ok {
		return netip.Addr{}
	}
	return addr.Unmap()
}

// versionOf returns the ICMP version used to reach addr.
func versionOf(addr netip.Addr) Version {
	if isIPv4(addr) {
		return V4
	}
	return V6
}
