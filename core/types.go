package core

import (
	"fmt"
)

// Version is the ICMP protocol version a packet belongs to.
type Version int

const (
	// V4 is ICMP for IPv4 (IP protocol number 1).
	V4 Version = 4
	// V6 is ICMPv6 (IP protocol number 58).
	V6 Version = 6
)

// Protocol returns the IANA IP protocol number of the version.
func (v Version) Protocol() int {
	if v == V6 {
		return icmpv6Protocol
	}
	return icmpProtocol
}

func (v Version) String() string {
	switch v {
	case V4:
		return "ICMPv4"
	case V6:
		return "ICMPv6"
	}
	return fmt.Sprintf("Version(%d)", int(v))
}

// Type is an IANA assigned ICMP message type of either protocol version.
type Type interface {
	// Value is the numeric value carried on the wire.
	Value() uint8
	// Version is the protocol version the type is registered for.
	Version() Version
	String() string
}

// TypeV4 is an ICMPv4 message type.
// https://www.iana.org/assignments/icmp-parameters/icmp-parameters.xhtml
type TypeV4 uint8

// ICMPv4 message types.
const (
	TypeV4EchoReply                 TypeV4 = 0
	TypeV4DestinationUnreachable    TypeV4 = 3
	TypeV4SourceQuench              TypeV4 = 4
	TypeV4Redirect                  TypeV4 = 5
	TypeV4AlternateHostAddress      TypeV4 = 6
	TypeV4EchoRequest               TypeV4 = 8
	TypeV4RouterAdvertisement       TypeV4 = 9
	TypeV4RouterSolicitation        TypeV4 = 10
	TypeV4TimeExceeded              TypeV4 = 11
	TypeV4ParameterProblem          TypeV4 = 12
	TypeV4TimestampRequest          TypeV4 = 13
	TypeV4TimestampReply            TypeV4 = 14
	TypeV4InformationRequest        TypeV4 = 15
	TypeV4InformationReply          TypeV4 = 16
	TypeV4AddressMaskRequest        TypeV4 = 17
	TypeV4AddressMaskReply          TypeV4 = 18
	TypeV4Traceroute                TypeV4 = 30
	TypeV4DatagramConversionError   TypeV4 = 31
	TypeV4MobileHostRedirect        TypeV4 = 32
	TypeV4WhereAreYou               TypeV4 = 33
	TypeV4IAmHere                   TypeV4 = 34
	TypeV4MobileRegistrationRequest TypeV4 = 35
	TypeV4MobileRegistrationReply   TypeV4 = 36
	TypeV4DomainNameRequest         TypeV4 = 37
	TypeV4DomainNameReply           TypeV4 = 38
	TypeV4Skip                      TypeV4 = 39
	TypeV4Photuris                  TypeV4 = 40
	TypeV4ExtendedEchoRequest       TypeV4 = 42
	TypeV4ExtendedEchoReply         TypeV4 = 43
)

var typeV4Names = map[TypeV4]string{
	TypeV4EchoReply:                 "EchoReply",
	TypeV4DestinationUnreachable:    "DestinationUnreachable",
	TypeV4SourceQuench:              "SourceQuench",
	TypeV4Redirect:                  "Redirect",
	TypeV4AlternateHostAddress:      "AlternateHostAddress",
	TypeV4EchoRequest:               "EchoRequest",
	TypeV4RouterAdvertisement:       "RouterAdvertisement",
	TypeV4RouterSolicitation:        "RouterSolicitation",
	TypeV4TimeExceeded:              "TimeExceeded",
	TypeV4ParameterProblem:          "ParameterProblem",
	TypeV4TimestampRequest:          "TimestampRequest",
	TypeV4TimestampReply:            "TimestampReply",
	TypeV4InformationRequest:        "InformationRequest",
	TypeV4InformationReply:          "InformationReply",
	TypeV4AddressMaskRequest:        "AddressMaskRequest",
	TypeV4AddressMaskReply:          "AddressMaskReply",
	TypeV4Traceroute:                "Traceroute",
	TypeV4DatagramConversionError:   "DatagramConversionError",
	TypeV4MobileHostRedirect:        "MobileHostRedirect",
	TypeV4WhereAreYou:               "WhereAreYou",
	TypeV4IAmHere:                   "IAmHere",
	TypeV4MobileRegistrationRequest: "MobileRegistrationRequest",
	TypeV4MobileRegistrationReply:   "MobileRegistrationReply",
	TypeV4DomainNameRequest:         "DomainNameRequest",
	TypeV4DomainNameReply:           "DomainNameReply",
	TypeV4Skip:                      "Skip",
	TypeV4Photuris:                  "Photuris",
	TypeV4ExtendedEchoRequest:       "ExtendedEchoRequest",
	TypeV4ExtendedEchoReply:         "ExtendedEchoReply",
}

// TypeV4FromValue resolves a numeric ICMPv4 type against the registry.
func TypeV4FromValue(v uint8) (TypeV4, error) {
	t := TypeV4(v)
	if _, ok := typeV4Names[t]; !ok {
		return 0, fmt.Errorf("%w: ICMPv4 type %d", ErrUnsupportedType, v)
	}
	return t, nil
}

func (t TypeV4) Value() uint8     { return uint8(t) }
func (t TypeV4) Version() Version { return V4 }

func (t TypeV4) String() string {
	if name, ok := typeV4Names[t]; ok {
		return name
	}
	return fmt.Sprintf("TypeV4(%d)", uint8(t))
}

// TypeV6 is an ICMPv6 message type.
// https://www.iana.org/assignments/icmpv6-parameters/icmpv6-parameters.xhtml
type TypeV6 uint8

// ICMPv6 message types.
const (
	TypeV6Reserved                              TypeV6 = 0
	TypeV6DestinationUnreachable                TypeV6 = 1
	TypeV6PacketTooBig                          TypeV6 = 2
	TypeV6TimeExceeded                          TypeV6 = 3
	TypeV6ParameterProblem                      TypeV6 = 4
	TypeV6EchoRequest                           TypeV6 = 128
	TypeV6EchoReply                             TypeV6 = 129
	TypeV6MulticastListenerQuery                TypeV6 = 130
	TypeV6MulticastListenerReport               TypeV6 = 131
	TypeV6MulticastListenerDone                 TypeV6 = 132
	TypeV6RouterSolicitation                    TypeV6 = 133
	TypeV6RouterAdvertisement                   TypeV6 = 134
	TypeV6NeighborSolicitation                  TypeV6 = 135
	TypeV6NeighborAdvertisement                 TypeV6 = 136
	TypeV6Redirect                              TypeV6 = 137
	TypeV6RouterRenumbering                     TypeV6 = 138
	TypeV6NodeInformationQuery                  TypeV6 = 139
	TypeV6NodeInformationResponse               TypeV6 = 140
	TypeV6InverseNeighborDiscoverySolicitation  TypeV6 = 141
	TypeV6InverseNeighborDiscoveryAdvertisement TypeV6 = 142
	TypeV6MulticastListenerDiscoveryV2          TypeV6 = 143
	TypeV6HomeAgentAddressDiscoveryRequest      TypeV6 = 144
	TypeV6HomeAgentAddressDiscoveryReply        TypeV6 = 145
	TypeV6MobilePrefixSolicitation              TypeV6 = 146
	TypeV6MobilePrefixAdvertisement             TypeV6 = 147
	TypeV6CertificationPathSolicitation         TypeV6 = 148
	TypeV6CertificationPathAdvertisement        TypeV6 = 149
	TypeV6ExperimentalMobilityProtocols         TypeV6 = 150
	TypeV6MulticastRouterAdvertisement          TypeV6 = 151
	TypeV6MulticastRouterSolicitation           TypeV6 = 152
	TypeV6MulticastRouterTermination            TypeV6 = 153
	TypeV6FMIPv6Messages                        TypeV6 = 154
	TypeV6RPLControlMessage                     TypeV6 = 155
	TypeV6ILNPv6LocatorUpdateMessage            TypeV6 = 156
	TypeV6DuplicateAddressRequest               TypeV6 = 157
	TypeV6DuplicateAddressConfirmation          TypeV6 = 158
	TypeV6MPLControlMessage                     TypeV6 = 159
	TypeV6ExtendedEchoRequest                   TypeV6 = 160
	TypeV6ExtendedEchoReply                     TypeV6 = 161
)

var typeV6Names = map[TypeV6]string{
	TypeV6Reserved:                              "Reserved",
	TypeV6DestinationUnreachable:                "DestinationUnreachable",
	TypeV6PacketTooBig:                          "PacketTooBig",
	TypeV6TimeExceeded:                          "TimeExceeded",
	TypeV6ParameterProblem:                      "ParameterProblem",
	TypeV6EchoRequest:                           "EchoRequestV6",
	TypeV6EchoReply:                             "EchoReplyV6",
	TypeV6MulticastListenerQuery:                "MulticastListenerQuery",
	TypeV6MulticastListenerReport:               "MulticastListenerReport",
	TypeV6MulticastListenerDone:                 "MulticastListenerDone",
	TypeV6RouterSolicitation:                    "RouterSolicitation",
	TypeV6RouterAdvertisement:                   "RouterAdvertisement",
	TypeV6NeighborSolicitation:                  "NeighborSolicitation",
	TypeV6NeighborAdvertisement:                 "NeighborAdvertisement",
	TypeV6Redirect:                              "Redirect",
	TypeV6RouterRenumbering:                     "RouterRenumbering",
	TypeV6NodeInformationQuery:                  "NodeInformationQuery",
	TypeV6NodeInformationResponse:               "NodeInformationResponse",
	TypeV6InverseNeighborDiscoverySolicitation:  "InverseNeighborDiscoverySolicitation",
	TypeV6InverseNeighborDiscoveryAdvertisement: "InverseNeighborDiscoveryAdvertisement",
	TypeV6MulticastListenerDiscoveryV2:          "MulticastListenerDiscoveryV2",
	TypeV6HomeAgentAddressDiscoveryRequest:      "HomeAgentAddressDiscoveryRequest",
	TypeV6HomeAgentAddressDiscoveryReply:        "HomeAgentAddressDiscoveryReply",
	TypeV6MobilePrefixSolicitation:              "MobilePrefixSolicitation",
	TypeV6MobilePrefixAdvertisement:             "MobilePrefixAdvertisement",
	TypeV6CertificationPathSolicitation:         "CertificationPathSolicitation",
	TypeV6CertificationPathAdvertisement:        "CertificationPathAdvertisement",
	TypeV6ExperimentalMobilityProtocols:         "ExperimentalMobilityProtocols",
	TypeV6MulticastRouterAdvertisement:          "MulticastRouterAdvertisement",
	TypeV6MulticastRouterSolicitation:           "MulticastRouterSolicitation",
	TypeV6MulticastRouterTermination:            "MulticastRouterTermination",
	TypeV6FMIPv6Messages:                        "FMIPv6Messages",
	TypeV6RPLControlMessage:                     "RPLControlMessage",
	TypeV6ILNPv6LocatorUpdateMessage:            "ILNPv6LocatorUpdateMessage",
	TypeV6DuplicateAddressRequest:               "DuplicateAddressRequest",
	TypeV6DuplicateAddressConfirmation:          "DuplicateAddressConfirmation",
	TypeV6MPLControlMessage:                     "MPLControlMessage",
	TypeV6ExtendedEchoRequest:                   "ExtendedEchoRequest",
	TypeV6ExtendedEchoReply:                     "ExtendedEchoReply",
}

// TypeV6FromValue resolves a numeric ICMPv6 type against the registry.
func TypeV6FromValue(v uint8) (TypeV6, error) {
	t := TypeV6(v)
	if _, ok := typeV6Names[t]; !ok {
		return 0, fmt.Errorf("%w: ICMPv6 type %d", ErrUnsupportedType, v)
	}
	return t, nil
}

func (t TypeV6) Value() uint8     { return uint8(t) }
func (t TypeV6) Version() Version { return V6 }

func (t TypeV6) String() string {
	if name, ok := typeV6Names[t]; ok {
		return name
	}
	return fmt.Sprintf("TypeV6(%d)", uint8(t))
}
