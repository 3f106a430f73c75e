package core

// checksumOffset is the position of the checksum field inside every ICMP header.
const checksumOffset = 2

// Checksum returns the RFC 1071 16-bit one's complement checksum of b.
// An odd trailing byte is summed as if it were followed by a zero byte; b itself is not
// modified. The checksum of an empty buffer is 0xFFFF.
func Checksum(b []byte) uint16 {
	return fold(sum(0, b))
}

// ComputeForSend returns the checksum to place in the header of an outgoing packet: the
// checksum field at bytes 2..3 is treated as zero regardless of its current content.
func ComputeForSend(b []byte) uint16 {
	if len(b) < checksumOffset+2 {
		return Checksum(b)
	}
	return fold(sum(sum(0, b[:checksumOffset]), b[checksumOffset+2:]))
}

// Verify reports whether b carries a valid checksum. The checksum field is summed as-is,
// so a correct packet folds to zero.
func Verify(b []byte) bool {
	return Checksum(b) == 0
}

// checksumWithPseudoHeader computes the checksum of an ICMPv6 message: the 40-byte
// pseudo-header followed by the message with its checksum field treated as zero.
func checksumWithPseudoHeader(pseudo, b []byte) uint16 {
	s := sum(0, pseudo)
	if len(b) < checksumOffset+2 {
		return fold(sum(s, b))
	}
	return fold(sum(sum(s, b[:checksumOffset]), b[checksumOffset+2:]))
}

// verifyWithPseudoHeader is the receive-side counterpart of checksumWithPseudoHeader.
func verifyWithPseudoHeader(pseudo, b []byte) bool {
	return fold(sum(sum(0, pseudo), b)) == 0
}

// sum adds the big-endian 16-bit words of b to acc. Every segment but the last one summed
// into the same accumulator must have an even length.
func sum(acc uint64, b []byte) uint64 {
	n := len(b) &^ 1
	for i := 0; i < n; i += 2 {
		acc += uint64(b[i])<<8 | uint64(b[i+1])
	}
	if len(b)%2 == 1 {
		acc += uint64(b[len(b)-1]) << 8
	}
	return acc
}

// fold folds the carries back into the low 16 bits and complements the result.
func fold(acc uint64) uint16 {
	for acc>>16 != 0 {
		acc = (acc & 0xffff) + (acc >> 16)
	}
	return ^uint16(acc)
}
