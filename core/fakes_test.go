package core

import (
	"context"
	"errors"
	"net/netip"
	"sync"
	"time"
)

// fakeSocket records whether it was closed.
type fakeSocket struct {
	mu     sync.Mutex
	closed bool
}

func (s *fakeSocket) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *fakeSocket) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// fakePort answers every request with the bytes built by reply, advancing clock by rtt.
type fakePort struct {
	mu sync.Mutex

	openErr    error
	optErr     error
	timeoutErr error
	sendErr    error
	recvErr    error

	reply     func(req []byte) []byte
	clock     *fakeClock
	rtt       time.Duration
	sendDelay time.Duration

	sockets []*fakeSocket
	options map[SocketOption]int
	timeout time.Duration
	sent    [][]byte
	dst     []netip.Addr
}

func newFakePort(reply func(req []byte) []byte) *fakePort {
	return &fakePort{reply: reply, options: map[SocketOption]int{}}
}

func (p *fakePort) OpenV4() (Socket, error) { return p.open() }
func (p *fakePort) OpenV6() (Socket, error) { return p.open() }

func (p *fakePort) open() (Socket, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.openErr != nil {
		return nil, p.openErr
	}
	s := &fakeSocket{}
	p.sockets = append(p.sockets, s)
	return s, nil
}

func (p *fakePort) SetIntOption(s Socket, opt SocketOption, value int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.optErr != nil {
		return p.optErr
	}
	p.options[opt] = value
	return nil
}

func (p *fakePort) SetReceiveTimeout(s Socket, d time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.timeoutErr != nil {
		return p.timeoutErr
	}
	p.timeout = d
	return nil
}

func (p *fakePort) SendTo(s Socket, b []byte, flags int, addr netip.Addr, port int) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.sendErr != nil {
		return 0, p.sendErr
	}
	if p.clock != nil {
		p.clock.Advance(p.sendDelay)
	}
	p.sent = append(p.sent, append([]byte(nil), b...))
	p.dst = append(p.dst, addr)
	return len(b), nil
}

func (p *fakePort) ReceiveFrom(s Socket, b []byte, flags int, addr netip.Addr, port int) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.recvErr != nil {
		return 0, p.recvErr
	}
	if len(p.sent) == 0 {
		return 0, errors.New("nothing sent")
	}
	if p.clock != nil {
		p.clock.Advance(p.rtt)
	}
	return copy(b, p.reply(p.sent[len(p.sent)-1])), nil
}

func (p *fakePort) lastSocket() *fakeSocket {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.sockets) == 0 {
		return nil
	}
	return p.sockets[len(p.sockets)-1]
}

// echoReply answers an ICMPv4 or ICMPv6 echo request with the matching reply.
func echoReply(req []byte) []byte {
	return echoReplyWithSequence(req, -1)
}

// echoReplyWithSequence answers with seq instead of the request's sequence number,
// unless seq is negative.
func echoReplyWithSequence(req []byte, seq int) []byte {
	if h, err := ParseV4(req, NoLimit); err == nil {
		e := h.(*EchoV4)
		if seq >= 0 {
			e.Sequence = uint16(seq)
		}
		return NewEchoV4(e.Identifier, e.Sequence, true, e.Payload).Marshal()
	}
	h, err := ParseV6(req, netip.IPv6Unspecified(), netip.IPv6Unspecified(), NoLimit)
	if err != nil {
		panic(err)
	}
	e := h.(*EchoV6)
	if seq >= 0 {
		e.Sequence = uint16(seq)
	}
	return NewEchoV6(e.Addresses, e.Identifier, e.Sequence, true, e.Payload).Marshal()
}

// fakeClock only moves when advanced or slept on.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	sleeps []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
	return nil
}

func (c *fakeClock) slept() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.sleeps...)
}

// fakeResolver returns addrs, or err, or blocks until the lookup context is done.
type fakeResolver struct {
	addrs []netip.Addr
	err   error
	block bool
	calls int
}

func (r *fakeResolver) LookupNetIP(ctx context.Context, network, host string) ([]netip.Addr, error) {
	r.calls++
	if r.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return r.addrs, r.err
}
