package core

import (
	"errors"
	"fmt"
)

// ErrParse is wrapped by every error returned while decoding an ICMP message. Callers
// that only need to discard malformed packets can test for it with errors.Is.
var ErrParse = errors.New("icmp parse error")

var (
	// ErrBufferTooSmall is returned when a buffer ends before a required field.
	ErrBufferTooSmall = fmt.Errorf("%w: buffer too small", ErrParse)
	// ErrUnsupportedType is returned for types outside the registry or without a parser.
	ErrUnsupportedType = fmt.Errorf("%w: unsupported type", ErrParse)
	// ErrUnsupportedCode is returned for codes outside the registry of their type.
	ErrUnsupportedCode = fmt.Errorf("%w: unsupported code", ErrParse)
)

var (
	// ErrDNSResolveTimeout is returned when host resolution exceeds its timeout.
	ErrDNSResolveTimeout = errors.New("dns resolution timed out")
	// ErrDNSResolveFailure is returned when a host cannot be resolved.
	ErrDNSResolveFailure = errors.New("dns resolution failed")
	// ErrSocket wraps every failure reported by a SocketPort.
	ErrSocket = errors.New("socket error")
	// ErrSequenceMismatch is reported when a reply carries another sequence number.
	ErrSequenceMismatch = errors.New("sequence number mismatch")
	// ErrUnexpectedResponseType is reported when a reply is not an echo reply.
	ErrUnexpectedResponseType = errors.New("unexpected ICMP response type")
)
