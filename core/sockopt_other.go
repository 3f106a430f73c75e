//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd && !windows

package core

// Values follow the BSD socket headers.
var (
	OptionIPv4TOS          = SocketOption{Level: 0, Name: 3}
	OptionIPv4TTL          = SocketOption{Level: 0, Name: 4}
	OptionIPv6TrafficClass = SocketOption{Level: 41, Name: 36}
	OptionIPv6HopLimit     = SocketOption{Level: 41, Name: 4}
)
