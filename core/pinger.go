package core

import (
	"context"
	"fmt"
	"net"
	"net/netip"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// maxMessageLen bounds the replies a session can receive.
const maxMessageLen = 1 << 16

// Pinger sends echo requests through a SocketPort. It holds no per-ping state, so
// concurrent pings to different addresses are safe.
type Pinger struct {
	port     SocketPort
	logger   *log.Logger
	resolver Resolver
	clock    Clock
	metrics  *Metrics
}

// PingerOption configures a Pinger.
type PingerOption func(*Pinger)

// WithResolver replaces net.DefaultResolver.
func WithResolver(r Resolver) PingerOption {
	return func(p *Pinger) { p.resolver = r }
}

// WithClock replaces the wall clock used for round trip times and stream pacing.
func WithClock(c Clock) PingerOption {
	return func(p *Pinger) { p.clock = c }
}

// WithMetrics records every ping result in m.
func WithMetrics(m *Metrics) PingerOption {
	return func(p *Pinger) { p.metrics = m }
}

// NewPinger creates a Pinger using port for every socket operation.
func NewPinger(port SocketPort, logger *log.Logger, opts ...PingerOption) *Pinger {
	p := &Pinger{
		port:     port,
		logger:   logger,
		resolver: net.DefaultResolver,
		clock:    realClock{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// PingHost resolves host and pings it once. The error is only set when resolution fails,
// in which case it wraps ErrDNSResolveTimeout or ErrDNSResolveFailure.
func (p *Pinger) PingHost(ctx context.Context, host string, resolveTimeout, timeout time.Duration,
	id, seq uint16, payload []byte) (PingResult, error) {
	addr, err := p.Resolve(ctx, host, resolveTimeout)
	if err != nil {
		return nil, err
	}
	return p.PingAddress(addr, timeout, id, seq, payload), nil
}

// PingAddress pings addr once on a fresh socket. Socket and protocol failures are
// reported as Failed.
func (p *Pinger) PingAddress(addr netip.Addr, timeout time.Duration, id, seq uint16, payload []byte) PingResult {
	s, err := p.open(addr, timeout, p.logger.WithField("address", addr))
	if err != nil {
		res := Failed{Message: err.Error(), Address: addr, Err: fmt.Errorf("%w: %w", ErrSocket, err)}
		p.metrics.Observe(res)
		return res
	}
	defer s.Close()

	return s.Ping(id, seq, payload)
}

// Open prepares a socket to addr whose receives wait at most timeout. The session can
// then ping addr repeatedly without the operating system assigning a new identifier.
func (p *Pinger) Open(addr netip.Addr, timeout time.Duration) (*Session, error) {
	s, err := p.open(addr, timeout, p.logger.WithField("address", addr))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSocket, err)
	}
	return s, nil
}

// open returns the port's errors unwrapped so their text can be reported as is.
func (p *Pinger) open(addr netip.Addr, timeout time.Duration, logger *log.Entry) (*Session, error) {
	addr = addr.Unmap()

	sock, err := openFor(p.port, addr)
	if err != nil {
		return nil, err
	}

	opt, value := serviceClass(addr)
	if err := p.port.SetIntOption(sock, opt, value); err != nil {
		logger.Warnf("Could not set type of service %#02x: %s", value, err)
	}

	if err := p.port.SetReceiveTimeout(sock, timeout); err != nil {
		sock.Close()
		return nil, err
	}

	logger.Debugf("Opened %s socket with timeout %s", versionOf(addr), timeout)

	return &Session{
		pinger:  p,
		socket:  sock,
		addr:    addr,
		version: versionOf(addr),
		logger:  logger,
		buf:     make([]byte, maxMessageLen),
	}, nil
}

// Session is a socket prepared for pinging one address. Ping calls must not overlap.
type Session struct {
	pinger  *Pinger
	socket  Socket
	addr    netip.Addr
	version Version
	logger  *log.Entry

	// buf receives replies; it is reused by every Ping.
	buf []byte

	closeOnce sync.Once
	closeErr  error
}

// Address returns the pinged address.
func (s *Session) Address() netip.Addr {
	return s.addr
}

// Close releases the socket. It is safe to call concurrently with Ping, which then
// returns promptly with a Failed result.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.socket.Close()
	})
	return s.closeErr
}

// Ping sends one echo request and waits for the reply matching seq.
func (s *Session) Ping(id, seq uint16, payload []byte) PingResult {
	res := s.ping(id, seq, payload)
	s.pinger.metrics.Observe(res)
	return res
}

func (s *Session) ping(id, seq uint16, payload []byte) PingResult {
	port, clock := s.pinger.port, s.pinger.clock

	req := s.request(id, seq, payload)
	b := req.Marshal()
	s.trace("Sending", b)

	if _, err := port.SendTo(s.socket, b, 0, s.addr, ICMPPort); err != nil {
		return s.socketFailure("send", seq, err)
	}
	start := clock.Now()

	n, err := port.ReceiveFrom(s.socket, s.buf, 0, s.addr, ICMPPort)
	rtt := clock.Now().Sub(start)
	if err != nil {
		return s.socketFailure("receive", seq, err)
	}
	s.trace("Received", s.buf[:n])

	reply, err := s.parse(s.buf[:n])
	if err != nil {
		return s.failure("Unknown ICMP response type", seq, fmt.Errorf("%w: %w", ErrUnexpectedResponseType, err), "")
	}

	replySeq, isReply, isEcho := echoFields(reply)
	if !isEcho {
		return s.failure("Unknown ICMP response type", seq,
			fmt.Errorf("%w: %s", ErrUnexpectedResponseType, reply.Type()), s.describe(reply))
	}
	if replySeq != seq {
		return s.failure("Sequence number mismatch", seq,
			fmt.Errorf("%w: sent %d, received %d", ErrSequenceMismatch, seq, replySeq), "")
	}
	if !isReply {
		return s.failure("Unknown ICMP response type", seq,
			fmt.Errorf("%w: %s", ErrUnexpectedResponseType, reply.Type()), "")
	}

	s.logger.Debugf("Received echo reply icmp_seq=%d in %s", seq, rtt)
	return Success{
		Sequence:   int(replySeq),
		PacketSize: reply.Len(),
		RTT:        rtt,
		Address:    s.addr,
	}
}

func (s *Session) request(id, seq uint16, payload []byte) Header {
	if s.version == V4 {
		return NewEchoV4(id, seq, false, payload)
	}
	// the kernel fills in the source address and checksum of ICMPv6 sockets
	return NewEchoV6(Addresses{Src: netip.IPv6Unspecified(), Dst: s.addr}, id, seq, false, payload)
}

func (s *Session) parse(b []byte) (Header, error) {
	if s.version == V4 {
		return ParseV4(b, len(b))
	}
	return ParseV6(b, s.addr, netip.IPv6Unspecified(), len(b))
}

// describe names an ICMP error message and the request it quotes.
func (s *Session) describe(h Header) string {
	detail := fmt.Sprintf("%s (code %d)", h.Type(), h.Code())
	q, err := QuoteOf(h)
	if err != nil {
		return detail
	}
	if q.Echo {
		return fmt.Sprintf("%s for icmp_seq=%d to %s", detail, q.Sequence, q.Dst)
	}
	return fmt.Sprintf("%s for a datagram to %s", detail, q.Dst)
}

func (s *Session) socketFailure(op string, seq uint16, err error) Failed {
	s.logger.Debugf("Socket %s failed for icmp_seq=%d: %s", op, seq, err)
	return Failed{
		Message:  err.Error(),
		Address:  s.addr,
		Sequence: int(seq),
		Err:      fmt.Errorf("%w: %s: %w", ErrSocket, op, err),
	}
}

func (s *Session) failure(msg string, seq uint16, err error, detail string) Failed {
	s.logger.Debugf("%s for icmp_seq=%d: %s", msg, seq, err)
	return Failed{Message: msg, Address: s.addr, Sequence: int(seq), Err: err, Detail: detail}
}

func (s *Session) trace(what string, b []byte) {
	if s.logger.Logger.IsLevelEnabled(log.TraceLevel) {
		s.logger.Tracef("%s %d bytes\n%s", what, len(b), dump(b, s.version))
	}
}

// echoFields extracts the sequence number of an echo message.
func echoFields(h Header) (seq uint16, reply, ok bool) {
	switch e := h.(type) {
	case *EchoV4:
		return e.Sequence, e.Reply, true
	case *EchoV6:
		return e.Sequence, e.Reply, true
	}
	return 0, false, false
}
