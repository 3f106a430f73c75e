package core

import (
	"math"
	"net/netip"
	"time"
)

// Statistics aggregates the results of a ping stream. It is a value: Add returns the
// updated statistics and leaves the receiver untouched.
type Statistics struct {
	// Sent is the number of results added.
	Sent int
	// Received is the number of Success results added.
	Received int

	// Min, Max and Last are round trip times of Success results.
	Min  time.Duration
	Max  time.Duration
	Last time.Duration

	// Address is the peer of the latest result.
	Address netip.Addr
	// LastError is the message of the latest Failed result.
	LastError string

	// sum and sqSum accumulate round trip times in nanoseconds.
	sum   float64
	sqSum float64
}

// Add folds res into the statistics.
func (s Statistics) Add(res PingResult) Statistics {
	s.Sent++
	if addr := res.Peer(); addr.IsValid() {
		s.Address = addr
	}

	switch r := res.(type) {
	case Success:
		if s.Received == 0 || r.RTT < s.Min {
			s.Min = r.RTT
		}
		s.Max = max(s.Max, r.RTT)
		s.Last = r.RTT
		s.Received++

		ns := float64(r.RTT)
		s.sum += ns
		s.sqSum += ns * ns
	case Failed:
		s.LastError = r.Error()
	}
	return s
}

// Lost returns the number of Failed results added.
func (s Statistics) Lost() int {
	return s.Sent - s.Received
}

// PacketLoss returns the ratio of failed pings, between 0 and 1.
func (s Statistics) PacketLoss() float64 {
	if s.Sent == 0 {
		return 0
	}
	return 1 - float64(s.Received)/float64(s.Sent)
}

// Avg returns the mean round trip time.
func (s Statistics) Avg() time.Duration {
	if s.Received == 0 {
		return 0
	}
	return time.Duration(s.sum / float64(s.Received))
}

// MDev returns the standard deviation of the round trip times.
func (s Statistics) MDev() time.Duration {
	if s.Received == 0 {
		return 0
	}
	avg := s.sum / float64(s.Received)
	variance := s.sqSum/float64(s.Received) - avg*avg
	if variance <= 0 {
		return 0
	}
	return time.Duration(math.Sqrt(variance))
}
