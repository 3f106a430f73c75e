package core

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestChecksumOddLength verifies that an odd trailing byte is summed as if padded with zero
func TestChecksumOddLength(t *testing.T) {
	b := []byte{0x00, 0x01, 0x02}
	assert.Equal(t, uint16(0xFDFE), Checksum(b))
	assert.Equal(t, Checksum([]byte{0x00, 0x01, 0x02, 0x00}), Checksum(b))
	assert.Len(t, b, 3)
}

func TestChecksumEmpty(t *testing.T) {
	assert.Equal(t, uint16(0xFFFF), Checksum(nil))
	assert.Equal(t, uint16(0xFFFF), Checksum([]byte{}))
}

// TestChecksumFoldsCarries verifies end-around carry folding, RFC 1071 section 3
func TestChecksumFoldsCarries(t *testing.T) {
	b := []byte{0x00, 0x01, 0xf2, 0x03, 0xf4, 0xf5, 0xf6, 0xf7}
	// 0x0001 + 0xf203 + 0xf4f5 + 0xf6f7 = 0x2ddf0, folded 0xddf2
	assert.Equal(t, ^uint16(0xddf2), Checksum(b))
}

// TestComputeForSendIgnoresChecksumField verifies the value in bytes 2..3 does not matter
func TestComputeForSendIgnoresChecksumField(t *testing.T) {
	b := []byte{8, 0, 0, 0, 0x12, 0x34, 0x00, 0x01, 0xaa}
	sum := ComputeForSend(b)

	b[2], b[3] = 0xde, 0xad
	assert.Equal(t, sum, ComputeForSend(b))

	b[2], b[3] = 0, 0
	assert.Equal(t, Checksum(b), sum)
}

// TestVerifySelfVerification verifies that a packet carrying its checksum sums to zero
func TestVerifySelfVerification(t *testing.T) {
	b := []byte{8, 0, 0, 0, 0x12, 0x34, 0x00, 0x01, 'p', 'i', 'n', 'g', '!'}
	binary.BigEndian.PutUint16(b[2:], ComputeForSend(b))

	assert.Equal(t, uint16(0), Checksum(b))
	assert.True(t, Verify(b))

	b[len(b)-1] ^= 0xff
	assert.False(t, Verify(b))
}

func TestComputeForSendShortBuffer(t *testing.T) {
	assert.Equal(t, Checksum([]byte{8, 0}), ComputeForSend([]byte{8, 0}))
}
