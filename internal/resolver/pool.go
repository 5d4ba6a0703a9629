/**
 * Bounded Resolver Fan-Out.
 *
 * Caps the number of concurrently live resolver tasks. The capture
 * worker spawns one task per distinct remote address seen
 * (FirstSight), so unbounded fan-out is already ruled out in steady
 * state by spec.md's invariant that at most one resolver runs per
 * address per generation — this pool exists for the burst case (many
 * new addresses in a short window) where bounding concurrent DNS/MMDB
 * work protects the process from file-descriptor and goroutine
 * exhaustion. Grounded on golang.org/x/sync/semaphore usage patterns
 * seen in the retrieved corpus's proxy and pcap-sidecar examples.
 *
 * Author: KleaSCM
 * Email: KleaSCM@gmail.com
 */

package resolver

import (
	"context"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/quietwire/netcore/internal/generation"
)

// Pool bounds concurrent resolver tasks and lets the capture worker
// fire-and-forget a Spawn call per newly sighted address.
type Pool struct {
	sem        *semaphore.Weighted
	geo        *GeoReaders
	model      Model
	dnsTimeout time.Duration
}

// NewPool constructs a Pool that permits at most maxConcurrent
// in-flight resolver tasks at once, each bounding its rDNS lookup by
// dnsTimeout (ResolverConfig.DNSTimeout).
func NewPool(maxConcurrent int64, dnsTimeout time.Duration, geo *GeoReaders, model Model) *Pool {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	return &Pool{sem: semaphore.NewWeighted(maxConcurrent), geo: geo, model: model, dnsTimeout: dnsTimeout}
}

// Spawn starts a resolver task for addr in its own goroutine, blocking
// only long enough to acquire a pool slot. gen is the generation
// captured by the caller at spawn time; the task re-checks it against
// controller before writing back, per spec.md's C6 contract.
func (p *Pool) Spawn(addr string, gen uint64, controller *generation.Controller) {
	ctx := context.Background()
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return
	}
	go func() {
		defer p.sem.Release(1)
		Resolve(ctx, addr, gen, controller, p.geo, p.model, p.dnsTimeout)
	}()
}
