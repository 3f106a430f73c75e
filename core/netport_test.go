package core

import (
	"context"
	"net"
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/ipv4"
)

// loopbackPort returns a NetPort, skipping the test when the OS refuses ICMP sockets.
func loopbackPort(t *testing.T) *NetPort {
	t.Helper()
	port := NewNetPort(false)
	s, err := port.OpenV4()
	if err != nil {
		t.Skipf("cannot open an ICMP socket: %s", err)
	}
	s.Close()
	return port
}

// TestPingLocalhost pings the loopback interface through the operating system
func TestPingLocalhost(t *testing.T) {
	p := newTestPinger(loopbackPort(t))

	res, err := p.PingHost(context.Background(), "localhost", time.Second, time.Second, 0, 0, nil)
	require.NoError(t, err)

	s, ok := res.(Success)
	require.True(t, ok, "expected Success, got %#v", res)
	assert.Equal(t, headerLen+echoLen, s.PacketSize)
	assert.GreaterOrEqual(t, s.Milliseconds(), int64(0))
	assert.Equal(t, 0, s.Sequence)
}

// TestPingUnroutableTimesOut verifies a 1ms timeout is honored
func TestPingUnroutableTimesOut(t *testing.T) {
	p := newTestPinger(loopbackPort(t))

	start := time.Now()
	res := p.PingAddress(netip.MustParseAddr("192.0.2.1"), time.Millisecond, 0, 0, nil)

	assert.IsType(t, Failed{}, res)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestNetPortRejectsForeignSocket(t *testing.T) {
	port := NewNetPort(false)
	assert.Error(t, port.SetReceiveTimeout(&fakeSocket{}, time.Second))
	_, err := port.SendTo(&fakeSocket{}, nil, 0, testAddr4, ICMPPort)
	assert.Error(t, err)
}

func TestStripIPv4Header(t *testing.T) {
	echo := NewEchoV4(1, 2, true, nil).Marshal()
	h := &ipv4.Header{
		Version:  4,
		Len:      ipv4.HeaderLen,
		TotalLen: ipv4.HeaderLen + len(echo),
		TTL:      64,
		Protocol: 1,
		Src:      net.IPv4(127, 0, 0, 1),
		Dst:      net.IPv4(127, 0, 0, 1),
	}
	hb, err := h.Marshal()
	require.NoError(t, err)

	b := append(hb, echo...)
	n := stripIPv4Header(b, len(b), V4)
	assert.Equal(t, echo, b[:n])

	assert.Equal(t, len(echo), stripIPv4Header(echo, len(echo), V4))
	assert.Equal(t, len(echo), stripIPv4Header(echo, len(echo), V6))
}

// TestStripIPv4HeaderLongerThanRead verifies a header claiming more bytes than were
// read leaves the buffer alone
func TestStripIPv4HeaderLongerThanRead(t *testing.T) {
	echo := NewEchoV4(1, 2, true, nil).Marshal()
	h := &ipv4.Header{
		Version:  4,
		Len:      ipv4.HeaderLen,
		TotalLen: ipv4.HeaderLen + len(echo),
		TTL:      64,
		Protocol: 1,
		Src:      net.IPv4(127, 0, 0, 1),
		Dst:      net.IPv4(127, 0, 0, 1),
	}
	hb, err := h.Marshal()
	require.NoError(t, err)

	b := append(hb, echo...)
	b[0] = 4<<4 | 15
	orig := append([]byte(nil), b...)

	assert.Equal(t, len(b), stripIPv4Header(b, len(b), V4))
	assert.Equal(t, orig, b)
}

func TestUnsolicited(t *testing.T) {
	assert.True(t, unsolicited(8, V4))
	assert.False(t, unsolicited(0, V4))
	assert.True(t, unsolicited(128, V6))
	assert.True(t, unsolicited(135, V6))
	assert.False(t, unsolicited(129, V6))
	assert.False(t, unsolicited(1, V6))
}
