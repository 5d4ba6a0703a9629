/**
 * Resolver Worker (C6).
 *
 * One-shot task: resolve a single remote address's rDNS and geo/ASN,
 * then promote it into the shared traffic model if its generation is
 * still current. Grounded on the teacher's DNSResolver/GeoIPService
 * call sequence (dns_lookup.go, geoip.go), recomposed into the single
 * resolve-then-promote-with-generation-check contract this core needs
 * instead of the teacher's fire-and-forget cache-populating goroutine.
 *
 * Author: KleaSCM
 * Email: KleaSCM@gmail.com
 */

package resolver

import (
	"context"
	"time"

	"github.com/quietwire/netcore/internal/generation"
	"github.com/quietwire/netcore/internal/netmodel"
)

// Model is the subset of *traffic.Model the resolver worker needs.
// Declared as an interface here so resolver does not import traffic
// (which would create an import cycle, since traffic has no reason to
// know about resolver).
type Model interface {
	PromoteResolution(addr, rawRDNS string, host netmodel.Host)
}

// Resolve performs the blocking rDNS + geo/ASN lookups for addr and
// promotes the result into model, unless gen no longer matches
// controller's current generation — in which case the result is
// discarded silently, per spec: in-flight lookups always run to
// completion but a stale result is never written back. dnsTimeout
// bounds the rDNS lookup per spec.md section 4.6 step 1 / section 5.
func Resolve(ctx context.Context, addr string, gen uint64, controller *generation.Controller, geo *GeoReaders, model Model, dnsTimeout time.Duration) {
	rdns := ReverseLookup(ctx, addr, dnsTimeout)
	country := geo.CountryCode(addr)
	asn := geo.ASNString(addr)

	if !controller.Matches(gen) {
		return
	}

	model.PromoteResolution(addr, rdns, netmodel.Host{
		Domain:      rdns,
		CountryCode: country,
		ASN:         asn,
	})
}
