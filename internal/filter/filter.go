/**
 * Filter Predicate.
 *
 * Pure, allocation-free decision of whether a parsed flow's protocol
 * tags match the user's configured filters. Mirrors the role played by
 * Filters::matches in the original sniffnet capture loop (see
 * original_source/src/secondary_threads/parse_packets.rs): every
 * enabled dimension must agree, and a disabled ("any") dimension
 * always matches.
 *
 * Author: KleaSCM
 * Email: KleaSCM@gmail.com
 */

package filter

import (
	"github.com/quietwire/netcore/internal/config"
	"github.com/quietwire/netcore/internal/netmodel"
)

// Matches reports whether tags satisfies every enabled dimension of f.
func Matches(tags netmodel.ProtocolTags, f config.UserFilters) bool {
	if !matchesIPVersion(tags.Network, f.IPVersion) {
		return false
	}
	if !matchesTransport(tags.Transport, f.Transport) {
		return false
	}
	if !matchesApplication(tags.Application, f.Application) {
		return false
	}
	return true
}

func matchesIPVersion(got netmodel.IPVersion, want config.IPVersionFilter) bool {
	switch want {
	case config.IPVersionV4Only:
		return got == netmodel.IPv4
	case config.IPVersionV6Only:
		return got == netmodel.IPv6
	default:
		return true
	}
}

func matchesTransport(got netmodel.TransportProto, want config.TransportFilter) bool {
	switch want {
	case config.TransportTCPOnly:
		return got == netmodel.TransportTCP
	case config.TransportUDPOnly:
		return got == netmodel.TransportUDP
	default:
		return true
	}
}

func matchesApplication(got netmodel.AppTag, want config.ApplicationFilter) bool {
	if want.Any {
		return true
	}
	return got == want.Specific
}
