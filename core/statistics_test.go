package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatisticsEmpty(t *testing.T) {
	var s Statistics
	assert.Zero(t, s.PacketLoss())
	assert.Zero(t, s.Avg())
	assert.Zero(t, s.MDev())
	assert.Zero(t, s.Lost())
}

// TestStatisticsAdd verifies the reducer folds successes and failures
func TestStatisticsAdd(t *testing.T) {
	var s Statistics
	s = s.Add(Success{RTT: 10 * time.Millisecond, Address: testAddr4})
	s = s.Add(Failed{Message: "Sequence number mismatch", Address: testAddr4})
	s = s.Add(Success{RTT: 30 * time.Millisecond, Address: testAddr4})
	s = s.Add(Success{RTT: 20 * time.Millisecond, Address: testAddr4})

	assert.Equal(t, 4, s.Sent)
	assert.Equal(t, 3, s.Received)
	assert.Equal(t, 1, s.Lost())
	assert.InDelta(t, 0.25, s.PacketLoss(), 1e-9)

	assert.Equal(t, 10*time.Millisecond, s.Min)
	assert.Equal(t, 30*time.Millisecond, s.Max)
	assert.Equal(t, 20*time.Millisecond, s.Last)
	assert.Equal(t, 20*time.Millisecond, s.Avg())
	// sqrt((100+900+400)/3 - 400) ms
	assert.InDelta(t, float64(8164965), float64(s.MDev()), 1000)

	assert.Equal(t, "Sequence number mismatch", s.LastError)
	assert.Equal(t, testAddr4, s.Address)
}

func TestStatisticsIsValue(t *testing.T) {
	var s Statistics
	next := s.Add(Success{RTT: time.Millisecond})

	assert.Zero(t, s.Sent)
	assert.Equal(t, 1, next.Sent)
}

func TestStatisticsKeepsAddressOnDNSFailure(t *testing.T) {
	s := Statistics{}.Add(Success{Address: testAddr4}).Add(Failed{Message: "dns"})
	assert.Equal(t, testAddr4, s.Address)
}
