/**
 * Reverse DNS Lookup.
 *
 * Adapted from the teacher's enricher.DNSResolver: same bounded-timeout
 * net.Resolver.LookupAddr call, but stripped of its process-wide cache
 * and fire-and-forget LookupIP variant — this core has exactly one
 * caller per address per generation (enforced upstream by
 * addresses_waiting_resolution), so there is nothing to deduplicate
 * here.
 *
 * Author: KleaSCM
 * Email: KleaSCM@gmail.com
 */

package resolver

import (
	"context"
	"net"
	"strings"
	"time"
)

// ReverseLookup resolves addr to a hostname, bounded by timeout. On
// timeout, failure, or no records, it returns addr itself as the
// domain, per spec: rDNS never fails observably.
func ReverseLookup(ctx context.Context, addr string, timeout time.Duration) string {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var r net.Resolver
	names, err := r.LookupAddr(ctx, addr)
	if err != nil || len(names) == 0 {
		return addr
	}
	return strings.TrimSuffix(names[0], ".")
}
