/**
 * Capture Engine.
 *
 * Wires the frame source, traffic model, resolver pool, and generation
 * controller into a restartable capture session, and owns the
 * lifecycle (Reconfigure/Stop/Close) the presentation layer drives.
 * Adapted from the teacher's capture.Engine (NewEngine/Start/Stop/Stats
 * lifecycle shape), with every enrichment/correlation/analyzer
 * dependency it wired in replaced by this core's C1–C7 components.
 *
 * Author: KleaSCM
 * Email: KleaSCM@gmail.com
 */

package capture

import (
	"fmt"
	"log"
	"sync"

	"github.com/quietwire/netcore/internal/config"
	"github.com/quietwire/netcore/internal/frame"
	"github.com/quietwire/netcore/internal/generation"
	"github.com/quietwire/netcore/internal/resolver"
	"github.com/quietwire/netcore/internal/resolvercache"
	"github.com/quietwire/netcore/internal/traffic"
)

// Engine owns one capture generation at a time: a frame source, the
// shared traffic model, and the resolver pool feeding it. Calling
// Reconfigure tears down the current generation and starts a fresh
// one without the caller needing to track workers directly.
type Engine struct {
	mu         sync.Mutex
	ctrl       *generation.Controller
	geo        *resolver.GeoReaders
	cache      *resolvercache.Cache
	capture    config.CaptureConfig
	local      *config.LocalDevice
	resolverCf config.ResolverConfig

	currentSource frame.Source
	currentModel  *traffic.Model
}

// New constructs an Engine with a fresh generation controller and
// opens the configured GeoIP readers. The capture itself does not
// start until Reconfigure is called.
func New(geoCfg config.GeoIPConfig) (*Engine, error) {
	geo, err := resolver.OpenGeoReaders(geoCfg.CityDBPath, geoCfg.ASNDBPath)
	if err != nil {
		return nil, fmt.Errorf("capture: failed to open geoip readers: %w", err)
	}
	return &Engine{
		ctrl: generation.New(),
		geo:  geo,
	}, nil
}

// Reconfigure stops any running capture generation and starts a new
// one against captureCfg/local/filters/resolverCfg. The previous
// generation's worker and any in-flight resolver tasks observe the
// generation advance and exit or discard their results on their own;
// Reconfigure does not wait for them.
func (e *Engine) Reconfigure(captureCfg config.CaptureConfig, local *config.LocalDevice, filters config.UserFilters, resolverCfg config.ResolverConfig) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.currentSource != nil {
		e.currentSource.Close()
	}

	if e.cache == nil && resolverCfg.CachePath != "" {
		cache, err := resolvercache.Open(resolverCfg.CachePath)
		if err != nil {
			return fmt.Errorf("capture: failed to open resolution cache: %w", err)
		}
		e.cache = cache
	}

	gen := e.ctrl.Advance()

	source, err := frame.Open(captureCfg)
	if err != nil {
		return fmt.Errorf("capture: failed to open frame source: %w", err)
	}

	model := traffic.New()
	pool := resolver.NewPool(resolverCfg.MaxConcurrent, resolverCfg.DNSTimeout, e.geo, &cachingModel{model: model, cache: e.cache})

	e.currentSource = source
	e.currentModel = model
	e.capture = captureCfg
	e.local = local
	e.resolverCf = resolverCfg

	worker := NewWorker(source, model, local, filters, pool, e.cache, e.ctrl)
	go func() {
		log.Printf("capture: starting generation %d on interface %s", gen, captureCfg.Interface)
		worker.Run()
	}()

	return nil
}

// Model returns the traffic model backing the current generation, for
// read-only snapshotting by the presentation layer.
func (e *Engine) Model() *traffic.Model {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.currentModel
}

// GenerationToken returns the engine's generation controller, exposed
// read-only to the presentation layer per spec.md's external
// interfaces section.
func (e *Engine) GenerationToken() *generation.Controller {
	return e.ctrl
}

// Stop ends the current capture generation and releases its frame
// source. The engine's GeoIP readers remain open; call Close to
// release those too.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.ctrl.Advance()
	if e.currentSource != nil {
		e.currentSource.Close()
		e.currentSource = nil
	}
}

// Close stops the current generation and releases the GeoIP readers
// and resolution cache.
func (e *Engine) Close() {
	e.Stop()
	e.geo.Close()
	if e.cache != nil {
		e.cache.Close()
	}
}
