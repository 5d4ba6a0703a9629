/**
 * Configuration Definitions.
 *
 * Defines the ingestion contract for the capture/classification core:
 * capture parameters, GeoIP database paths, resolver tuning, user
 * filters, and the local device descriptor used for direction
 * inference. Parsing these from flags, environment variables, or a
 * config file is an external concern and lives outside this module.
 *
 * Author: KleaSCM
 * Email: KleaSCM@gmail.com
 */

package config

import (
	"time"

	"github.com/quietwire/netcore/internal/netmodel"
)

// CaptureConfig configures the frame source adapter (C1).
type CaptureConfig struct {
	Interface   string
	SnapLen     int32
	Promiscuous bool
	Timeout     time.Duration
	BufferSize  int    // kernel buffer size in MB
	BPFFilter   string // Berkeley Packet Filter expression
}

// GeoIPConfig points at the MaxMind databases used to enrich resolved
// hosts. Either path may be empty, in which case that enrichment
// degrades to "unknown" per spec.
type GeoIPConfig struct {
	CityDBPath string
	ASNDBPath  string
}

// ResolverConfig tunes the bounded resolver worker pool (C6).
type ResolverConfig struct {
	DNSTimeout    time.Duration
	MaxConcurrent int64
	CachePath     string // sqlite path for the persisted resolution cache; empty disables it
}

// IPVersionFilter enumerates the recognized values of the ip_version
// filter dimension.
type IPVersionFilter int

const (
	IPVersionAny IPVersionFilter = iota
	IPVersionV4Only
	IPVersionV6Only
)

// TransportFilter enumerates the recognized values of the transport
// filter dimension.
type TransportFilter int

const (
	TransportAny TransportFilter = iota
	TransportTCPOnly
	TransportUDPOnly
)

// ApplicationFilter selects either "any" application, or one specific
// tag from the enumerated AppTag set.
type ApplicationFilter struct {
	Any      bool
	Specific netmodel.AppTag // valid only when Any is false
}

// UserFilters is the user-facing filter configuration. Each
// unspecified dimension means "any" and always matches.
type UserFilters struct {
	IPVersion   IPVersionFilter
	Transport   TransportFilter
	Application ApplicationFilter
}

// LocalDevice is the set of addresses considered "local" for the
// purpose of direction inference.
type LocalDevice struct {
	IPv4Addrs []string
	IPv6Addrs []string
	MAC       string
}
