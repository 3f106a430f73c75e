package core

import (
	"net"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsIPv4TrueOnIPv4(t *testing.T) {
	assert.True(t, isIPv4(netip.MustParseAddr("8.8.8.8")))
}

func TestIsIPv4TrueOnIPv6ThatCanBeTransformed(t *testing.T) {
	assert.True(t, isIPv4(netip.MustParseAddr("::ffff:192.168.0.1")))
}

func TestIsIPv4FalseOnIPv6(t *testing.T) {
	assert.False(t, isIPv4(netip.MustParseAddr("2606:4700::6811:af55")))
}

func TestAddrFromIP(t *testing.T) {
	assert.Equal(t, netip.MustParseAddr("192.168.0.1"), addrFromIP(net.IPv4(192, 168, 0, 1)))
	assert.False(t, addrFromIP(nil).IsValid())
}

func TestVersionOf(t *testing.T) {
	assert.Equal(t, V4, versionOf(netip.MustParseAddr("127.0.0.1")))
	assert.Equal(t, V6, versionOf(netip.MustParseAddr("::1")))
}
