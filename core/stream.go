package core

import (
	"context"
	"fmt"
	"net/netip"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// StreamOptions configures a ping stream.
type StreamOptions struct {
	// Timeout bounds the wait for each reply.
	Timeout time.Duration
	// Interval is the time between the starts of consecutive pings.
	Interval time.Duration
	// Identifier is the echo identifier; the kernel may replace it.
	Identifier uint16
	// StartSequence is the sequence number of the first ping. Later pings increment it,
	// wrapping from 65535 to 0.
	StartSequence uint16
	Payload       []byte
	// Count is the number of pings to send; zero or less pings until ctx is done.
	Count int
}

// Stream pings addr once per tick on a single socket and delivers the results in
// sequence order. The channel is closed after Count results, or when ctx is done; the
// socket is closed then too, abandoning a pending receive.
func (p *Pinger) Stream(ctx context.Context, addr netip.Addr, opts StreamOptions) <-chan PingResult {
	out := make(chan PingResult, 1)
	go func() {
		defer close(out)
		p.stream(ctx, addr, opts, p.streamLogger(addr), out)
	}()
	return out
}

// StreamHost resolves host and streams pings to it. A resolution failure is delivered as
// a single Failed result wrapping ErrDNSResolveTimeout or ErrDNSResolveFailure.
func (p *Pinger) StreamHost(ctx context.Context, host string, resolveTimeout time.Duration,
	opts StreamOptions) <-chan PingResult {
	out := make(chan PingResult, 1)
	go func() {
		defer close(out)

		addr, err := p.Resolve(ctx, host, resolveTimeout)
		if err != nil {
			p.logger.WithField("host", host).Warnf("Could not resolve host: %s", err)
			res := Failed{Message: err.Error(), Err: err}
			p.metrics.Observe(res)
			emit(ctx, out, res)
			return
		}
		p.stream(ctx, addr, opts, p.streamLogger(addr).WithField("host", host), out)
	}()
	return out
}

func (p *Pinger) streamLogger(addr netip.Addr) *log.Entry {
	return p.logger.WithFields(log.Fields{
		"session": uuid.NewString(),
		"address": addr,
	})
}

func (p *Pinger) stream(ctx context.Context, addr netip.Addr, opts StreamOptions, logger *log.Entry,
	out chan<- PingResult) {
	s, err := p.open(addr, opts.Timeout, logger)
	if err != nil {
		logger.Warnf("Could not open socket: %s", err)
		res := Failed{Message: err.Error(), Address: addr, Err: fmt.Errorf("%w: %w", ErrSocket, err)}
		p.metrics.Observe(res)
		emit(ctx, out, res)
		return
	}
	defer s.Close()

	stop := context.AfterFunc(ctx, func() {
		logger.Debug("Stream cancelled, closing socket")
		s.Close()
	})
	defer stop()

	logger.Infof("Starting stream, interval %s, timeout %s, count %d", opts.Interval, opts.Timeout, opts.Count)

	seq := opts.StartSequence
	for i := 0; opts.Count <= 0 || i < opts.Count; i++ {
		if ctx.Err() != nil {
			return
		}

		res := s.Ping(opts.Identifier, seq, opts.Payload)
		if ctx.Err() != nil {
			// the receive was interrupted by the cancellation
			return
		}
		if !emit(ctx, out, res) {
			return
		}
		seq++

		if opts.Count > 0 && i == opts.Count-1 {
			break
		}
		if err := p.clock.Sleep(ctx, pause(opts.Interval, res)); err != nil {
			return
		}
	}

	logger.Info("Stream finished")
}

// pause is the time to wait before the next tick: what remains of interval after a
// successful round trip, or all of it after a failure.
func pause(interval time.Duration, res PingResult) time.Duration {
	s, ok := res.(Success)
	if !ok {
		return interval
	}
	return max(interval-s.RTT, 0)
}

func emit(ctx context.Context, out chan<- PingResult, res PingResult) bool {
	select {
	case out <- res:
		return true
	case <-ctx.Done():
		return false
	}
}
