/**
 * Configuration Defaults.
 *
 * Provides sane default values so the core can run out-of-the-box
 * without extensive setup.
 *
 * Author: KleaSCM
 * Email: KleaSCM@gmail.com
 */

package config

import "time"

// DefaultCaptureConfig returns a sensible default capture configuration
// for the named interface: promiscuous mode, max Ethernet snaplen, no
// BPF filter, and the 150ms read tick spec.md's Frame Source Adapter
// contract calls for so generation-advance is observed promptly even
// on an idle link.
func DefaultCaptureConfig(interfaceName string) *CaptureConfig {
	return &CaptureConfig{
		Interface:   interfaceName,
		SnapLen:     65536,
		Promiscuous: true,
		Timeout:     150 * time.Millisecond,
		BufferSize:  32,
		BPFFilter:   "",
	}
}

// DefaultGeoIPConfig returns the conventional on-disk GeoLite2 paths.
func DefaultGeoIPConfig() *GeoIPConfig {
	return &GeoIPConfig{
		CityDBPath: "data/geoip/GeoLite2-City.mmdb",
		ASNDBPath:  "data/geoip/GeoLite2-ASN.mmdb",
	}
}

// DefaultResolverConfig applies the spec's suggested 2s DNS timeout and
// a resolver fan-out bound generous enough that ordinary address churn
// never queues.
func DefaultResolverConfig() *ResolverConfig {
	return &ResolverConfig{
		DNSTimeout:    2 * time.Second,
		MaxConcurrent: 64,
		CachePath:     "",
	}
}

// DefaultUserFilters matches everything: every dimension is "any".
func DefaultUserFilters() UserFilters {
	return UserFilters{
		IPVersion:   IPVersionAny,
		Transport:   TransportAny,
		Application: ApplicationFilter{Any: true},
	}
}
