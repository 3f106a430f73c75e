package core

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collect drains a stream, failing the test if it stays open for more than a second.
func collect(t *testing.T, ch <-chan PingResult) []PingResult {
	t.Helper()
	var results []PingResult
	timeout := time.After(time.Second)
	for {
		select {
		case res, ok := <-ch:
			if !ok {
				return results
			}
			results = append(results, res)
		case <-timeout:
			t.Fatal("stream did not close in time")
			return nil
		}
	}
}

// TestStreamPacing verifies the sleep after a success is the interval minus the round trip
func TestStreamPacing(t *testing.T) {
	clock := newFakeClock()
	port := newFakePort(echoReply)
	port.clock, port.rtt = clock, 200*time.Millisecond
	p := newTestPinger(port, WithClock(clock))

	results := collect(t, p.Stream(context.Background(), testAddr4, StreamOptions{
		Timeout:  time.Second,
		Interval: time.Second,
		Count:    3,
	}))

	require.Len(t, results, 3)
	for i, res := range results {
		assert.Equal(t, i, res.(Success).Sequence)
	}
	assert.Equal(t, []time.Duration{800 * time.Millisecond, 800 * time.Millisecond}, clock.slept())
	assert.Len(t, port.sockets, 1)
	assert.True(t, port.lastSocket().isClosed())
}

// TestStreamPacingAfterFailure verifies the full interval is slept after a failure
func TestStreamPacingAfterFailure(t *testing.T) {
	clock := newFakeClock()
	port := newFakePort(func(req []byte) []byte { return echoReplyWithSequence(req, 999) })
	port.clock, port.rtt = clock, 200*time.Millisecond
	p := newTestPinger(port, WithClock(clock))

	results := collect(t, p.Stream(context.Background(), testAddr4, StreamOptions{
		Timeout:  time.Second,
		Interval: time.Second,
		Count:    2,
	}))

	require.Len(t, results, 2)
	assert.IsType(t, Failed{}, results[0])
	assert.Equal(t, []time.Duration{time.Second}, clock.slept())
}

func TestStreamSlowReplyDoesNotSleep(t *testing.T) {
	clock := newFakeClock()
	port := newFakePort(echoReply)
	port.clock, port.rtt = clock, 1500*time.Millisecond
	p := newTestPinger(port, WithClock(clock))

	collect(t, p.Stream(context.Background(), testAddr4, StreamOptions{Interval: time.Second, Count: 2}))

	assert.Equal(t, []time.Duration{0}, clock.slept())
}

// TestStreamSequenceWraps verifies the sequence number wraps at the field width
func TestStreamSequenceWraps(t *testing.T) {
	clock := newFakeClock()
	p := newTestPinger(newFakePort(echoReply), WithClock(clock))

	results := collect(t, p.Stream(context.Background(), testAddr4, StreamOptions{
		Interval:      time.Second,
		StartSequence: 65534,
		Count:         3,
	}))

	require.Len(t, results, 3)
	assert.Equal(t, 65534, results[0].(Success).Sequence)
	assert.Equal(t, 65535, results[1].(Success).Sequence)
	assert.Equal(t, 0, results[2].(Success).Sequence)
}

// TestStreamCancel verifies cancellation closes the channel and the socket
func TestStreamCancel(t *testing.T) {
	clock := newFakeClock()
	port := newFakePort(echoReply)
	p := newTestPinger(port, WithClock(clock))

	ctx, cancel := context.WithCancel(context.Background())
	ch := p.Stream(ctx, testAddr4, StreamOptions{Interval: time.Second})

	last := -1
	for i := 0; i < 5; i++ {
		res := <-ch
		seq := res.(Success).Sequence
		assert.Greater(t, seq, last)
		last = seq
	}
	cancel()

	collect(t, ch)
	assert.True(t, port.lastSocket().isClosed())
}

func TestStreamRealClockCancel(t *testing.T) {
	p := newTestPinger(newFakePort(echoReply))

	ctx, cancel := context.WithCancel(context.Background())
	ch := p.Stream(ctx, testAddr4, StreamOptions{Interval: time.Hour})

	assert.IsType(t, Success{}, <-ch)
	cancel()

	start := time.Now()
	assert.Empty(t, collect(t, ch))
	assert.Less(t, time.Since(start), time.Second)
}

func TestStreamOpenFailure(t *testing.T) {
	port := newFakePort(echoReply)
	port.openErr = errors.New("socket: operation not permitted")
	p := newTestPinger(port)

	results := collect(t, p.Stream(context.Background(), testAddr4, StreamOptions{Interval: time.Second}))

	require.Len(t, results, 1)
	f := results[0].(Failed)
	assert.Equal(t, "socket: operation not permitted", f.Message)
	assert.ErrorIs(t, f, ErrSocket)
}

func TestStreamHost(t *testing.T) {
	clock := newFakeClock()
	p := newTestPinger(newFakePort(echoReply), WithClock(clock), WithResolver(&fakeResolver{}))

	results := collect(t, p.StreamHost(context.Background(), "192.0.2.10", time.Second,
		StreamOptions{Interval: time.Second, Count: 2}))

	require.Len(t, results, 2)
	assert.Equal(t, testAddr4, results[1].Peer())
}

// TestStreamHostResolveFailure verifies a resolution failure is a single Failed result
func TestStreamHostResolveFailure(t *testing.T) {
	notFound := &net.DNSError{Err: "no such host", Name: "missing.test", IsNotFound: true}
	p := newTestPinger(newFakePort(echoReply), WithResolver(&fakeResolver{err: notFound}))

	results := collect(t, p.StreamHost(context.Background(), "missing.test", time.Second,
		StreamOptions{Interval: time.Second}))

	require.Len(t, results, 1)
	f := results[0].(Failed)
	assert.ErrorIs(t, f, ErrDNSResolveFailure)
	assert.False(t, f.Peer().IsValid())
}

func TestPause(t *testing.T) {
	assert.Equal(t, 700*time.Millisecond, pause(time.Second, Success{RTT: 300 * time.Millisecond}))
	assert.Equal(t, time.Duration(0), pause(time.Second, Success{RTT: 2 * time.Second}))
	assert.Equal(t, time.Second, pause(time.Second, Failed{}))
}
