package core

import "fmt"

// DestinationUnreachableCodeV4 is the code of an ICMPv4 Destination Unreachable message.
// https://www.iana.org/assignments/icmp-parameters/icmp-parameters.xhtml#icmp-parameters-codes-3
type DestinationUnreachableCodeV4 uint8

const (
	NetworkUnreachable DestinationUnreachableCodeV4 = iota
	HostUnreachable
	ProtocolUnreachable
	PortUnreachable
	FragmentationNeededAndDFSet
	SourceRouteFailed
	DestinationNetworkUnknown
	DestinationHostUnknown
	SourceHostIsolated
	NetworkAdministrativelyProhibited
	HostAdministrativelyProhibited
	NetworkUnreachableForTOS
	HostUnreachableForTOS
	CommunicationAdministrativelyProhibited
	HostPrecedenceViolation
	PrecedenceCutoffInEffect
)

var destinationUnreachableV4Names = [...]string{
	"NetworkUnreachable",
	"HostUnreachable",
	"ProtocolUnreachable",
	"PortUnreachable",
	"FragmentationNeededAndDFSet",
	"SourceRouteFailed",
	"DestinationNetworkUnknown",
	"DestinationHostUnknown",
	"SourceHostIsolated",
	"NetworkAdministrativelyProhibited",
	"HostAdministrativelyProhibited",
	"NetworkUnreachableForTOS",
	"HostUnreachableForTOS",
	"CommunicationAdministrativelyProhibited",
	"HostPrecedenceViolation",
	"PrecedenceCutoffInEffect",
}

// DestinationUnreachableCodeV4FromValue resolves a numeric code, failing with
// ErrUnsupportedCode for values outside the registry.
func DestinationUnreachableCodeV4FromValue(v uint8) (DestinationUnreachableCodeV4, error) {
	if int(v) >= len(destinationUnreachableV4Names) {
		return 0, fmt.Errorf("%w: ICMPv4 destination unreachable code %d", ErrUnsupportedCode, v)
	}
	return DestinationUnreachableCodeV4(v), nil
}

func (c DestinationUnreachableCodeV4) String() string {
	if int(c) < len(destinationUnreachableV4Names) {
		return destinationUnreachableV4Names[c]
	}
	return fmt.Sprintf("DestinationUnreachableCodeV4(%d)", uint8(c))
}

// DestinationUnreachableCodeV6 is the code of an ICMPv6 Destination Unreachable message.
// https://www.iana.org/assignments/icmpv6-parameters/icmpv6-parameters.xhtml#icmpv6-parameters-codes-2
type DestinationUnreachableCodeV6 uint8

const (
	NoRouteToDestination DestinationUnreachableCodeV6 = iota
	AdministrativelyProhibited
	BeyondScopeOfSourceAddress
	AddressUnreachable
	PortUnreachableV6
	SourceAddressFailedPolicy
	RejectRouteToDestination
	ErrorInSourceRoutingHeader
	HeadersTooLong
)

var destinationUnreachableV6Names = [...]string{
	"NoRouteToDestination",
	"AdministrativelyProhibited",
	"BeyondScopeOfSourceAddress",
	"AddressUnreachable",
	"PortUnreachable",
	"SourceAddressFailedPolicy",
	"RejectRouteToDestination",
	"ErrorInSourceRoutingHeader",
	"HeadersTooLong",
}

// DestinationUnreachableCodeV6FromValue resolves a numeric code, failing with
// ErrUnsupportedCode for values outside the registry.
func DestinationUnreachableCodeV6FromValue(v uint8) (DestinationUnreachableCodeV6, error) {
	if int(v) >= len(destinationUnreachableV6Names) {
		return 0, fmt.Errorf("%w: ICMPv6 destination unreachable code %d", ErrUnsupportedCode, v)
	}
	return DestinationUnreachableCodeV6(v), nil
}

func (c DestinationUnreachableCodeV6) String() string {
	if int(c) < len(destinationUnreachableV6Names) {
		return destinationUnreachableV6Names[c]
	}
	return fmt.Sprintf("DestinationUnreachableCodeV6(%d)", uint8(c))
}

// TimeExceededCode is the code of a Time Exceeded message. Both protocol versions share
// the same two values.
type TimeExceededCode uint8

const (
	// TTLExceeded is "time to live exceeded in transit" for ICMPv4 and "hop limit
	// exceeded in transit" for ICMPv6.
	TTLExceeded TimeExceededCode = iota
	FragmentReassemblyTimeExceeded
)

// TimeExceededCodeFromValue resolves a numeric code, failing with ErrUnsupportedCode for
// values outside the registry.
func TimeExceededCodeFromValue(v uint8) (TimeExceededCode, error) {
	if v > uint8(FragmentReassemblyTimeExceeded) {
		return 0, fmt.Errorf("%w: time exceeded code %d", ErrUnsupportedCode, v)
	}
	return TimeExceededCode(v), nil
}

func (c TimeExceededCode) String() string {
	switch c {
	case TTLExceeded:
		return "TTLExceeded"
	case FragmentReassemblyTimeExceeded:
		return "FragmentReassemblyTimeExceeded"
	}
	return fmt.Sprintf("TimeExceededCode(%d)", uint8(c))
}
