/**
 * GeoIP / ASN Lookup.
 *
 * Adapted from the teacher's enricher.GeoIPService: opens the City and
 * ASN MaxMind readers and exposes immutable, concurrency-safe lookups.
 * The teacher's RWMutex around the readers is dropped here because
 * geoip2.Reader's own MMDB-backed reads are already safe for
 * concurrent use once opened; the teacher's lock only ever protected
 * Close() racing a Lookup(), which this core avoids by closing readers
 * exclusively during shutdown after all resolver workers have
 * returned.
 *
 * Author: KleaSCM
 * Email: KleaSCM@gmail.com
 */

package resolver

import (
	"fmt"
	"net"

	"github.com/oschwald/geoip2-golang"
)

// GeoReaders bundles the two MaxMind readers the resolver worker
// consults. Either may be nil, in which case the corresponding lookup
// degrades to "unknown".
type GeoReaders struct {
	City *geoip2.Reader
	ASN  *geoip2.Reader
}

// OpenGeoReaders opens the databases at the given paths. An empty path
// leaves that reader nil rather than erroring, matching the optional
// enrichment behavior spec.md describes for missing GeoIP data.
func OpenGeoReaders(cityPath, asnPath string) (*GeoReaders, error) {
	g := &GeoReaders{}

	if cityPath != "" {
		db, err := geoip2.Open(cityPath)
		if err != nil {
			return nil, fmt.Errorf("resolver: failed to open city db: %w", err)
		}
		g.City = db
	}

	if asnPath != "" {
		db, err := geoip2.Open(asnPath)
		if err != nil {
			if g.City != nil {
				g.City.Close()
			}
			return nil, fmt.Errorf("resolver: failed to open asn db: %w", err)
		}
		g.ASN = db
	}

	return g, nil
}

// Close releases both readers. Safe to call with either or both nil.
func (g *GeoReaders) Close() {
	if g == nil {
		return
	}
	if g.City != nil {
		g.City.Close()
	}
	if g.ASN != nil {
		g.ASN.Close()
	}
}

const unknown = "unknown"

// CountryCode returns the ISO country code for addr, or "unknown" if
// the reader is absent or the address misses.
func (g *GeoReaders) CountryCode(addr string) string {
	if g == nil || g.City == nil {
		return unknown
	}
	ip := net.ParseIP(addr)
	if ip == nil {
		return unknown
	}
	record, err := g.City.Country(ip)
	if err != nil || record.Country.IsoCode == "" {
		return unknown
	}
	return record.Country.IsoCode
}

// ASNString returns the "AS<number>" string for addr, or "unknown" if
// the reader is absent or the address misses.
func (g *GeoReaders) ASNString(addr string) string {
	if g == nil || g.ASN == nil {
		return unknown
	}
	ip := net.ParseIP(addr)
	if ip == nil {
		return unknown
	}
	record, err := g.ASN.ASN(ip)
	if err != nil || record.AutonomousSystemNumber == 0 {
		return unknown
	}
	return fmt.Sprintf("AS%d", record.AutonomousSystemNumber)
}
