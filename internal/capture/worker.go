/**
 * Capture Worker (C5).
 *
 * One long-lived loop per capture generation: pull a frame, analyze
 * it, filter it, mutate the shared traffic model, and spawn a resolver
 * on first sight of a new remote address. Grounded directly on
 * original_source's parse_packets() (original_source's
 * secondary_threads/parse_packets.rs) — same per-packet sequence
 * (record raw totals unconditionally, then on filter match: upsert
 * flow, account matched bytes, note the remote address, update
 * app-protocol counters, maybe spawn a resolver) — rewritten around
 * this core's frame.Source/traffic.Model/resolver.Pool boundaries
 * instead of a single monolithic InfoTraffic mutex.
 *
 * Author: KleaSCM
 * Email: KleaSCM@gmail.com
 */

package capture

import (
	"errors"
	"log"
	"time"

	"github.com/quietwire/netcore/internal/config"
	"github.com/quietwire/netcore/internal/filter"
	"github.com/quietwire/netcore/internal/frame"
	"github.com/quietwire/netcore/internal/generation"
	"github.com/quietwire/netcore/internal/headeranalyzer"
	"github.com/quietwire/netcore/internal/netmodel"
	"github.com/quietwire/netcore/internal/resolver"
	"github.com/quietwire/netcore/internal/resolvercache"
	"github.com/quietwire/netcore/internal/traffic"
)

// spawner is the subset of *resolver.Pool the worker needs, declared
// as an interface so tests can substitute a recording stub instead of
// spawning real DNS/GeoIP lookups.
type spawner interface {
	Spawn(addr string, gen uint64, ctrl *generation.Controller)
}

// Worker is the per-generation capture loop.
type Worker struct {
	source  frame.Source
	model   *traffic.Model
	local   *config.LocalDevice
	filters config.UserFilters
	pool    spawner
	cache   *resolvercache.Cache // nil disables the persisted cache
	ctrl    *generation.Controller
	gen     uint64
}

// NewWorker constructs a Worker bound to gen, the generation active at
// construction time. The worker exits as soon as it observes a
// mismatch between gen and ctrl's current value. cache may be nil, in
// which case every FirstSight address is resolved fresh.
func NewWorker(source frame.Source, model *traffic.Model, local *config.LocalDevice, filters config.UserFilters, pool *resolver.Pool, cache *resolvercache.Cache, ctrl *generation.Controller) *Worker {
	return &Worker{
		source:  source,
		model:   model,
		local:   local,
		filters: filters,
		pool:    pool,
		cache:   cache,
		ctrl:    ctrl,
		gen:     ctrl.Current(),
	}
}

// Run blocks, pulling and processing frames until a fatal capture
// error occurs or the generation advances out from under it.
func (w *Worker) Run() {
	for {
		if !w.ctrl.Matches(w.gen) {
			return
		}

		frameBytes, err := w.source.NextFrame()
		if err != nil {
			if errors.Is(err, frame.ErrFatal) {
				log.Printf("capture worker: fatal capture error, ending generation %d: %v", w.gen, err)
				return
			}
			// Transient: re-check the generation and keep waiting.
			continue
		}

		if !w.ctrl.Matches(w.gen) {
			return
		}

		w.processFrame(frameBytes)
	}
}

func (w *Worker) processFrame(frameBytes []byte) {
	ep, tags, byteCount, macs, ok := headeranalyzer.Analyze(frameBytes)
	dropped := w.source.CaptureStats().Dropped

	if !ok {
		// Parse failures still count toward the raw totals: the frame
		// was observed on the wire even if it carries nothing this core
		// can classify.
		w.model.RecordAny(uint64(byteCount), dropped)
		return
	}

	if !filter.Matches(tags, w.filters) {
		w.model.RecordAny(uint64(byteCount), dropped)
		return
	}

	// A single locked mutation covers flow upsert, raw/per-direction/
	// per-app accounting, and the address note, so a concurrent
	// Snapshot never sees a half-applied packet.
	key, _, state, _ := w.model.RecordMatchedPacket(ep, w.local, macs, uint64(byteCount), tags.Application, time.Now(), dropped)
	if state != netmodel.FirstSight {
		return
	}

	if w.cache != nil {
		if rdns, host, found, err := w.cache.Lookup(key.RemoteAddr); err == nil && found {
			w.model.PromoteResolution(key.RemoteAddr, rdns, host)
			return
		}
	}

	w.pool.Spawn(key.RemoteAddr, w.gen, w.ctrl)
}
