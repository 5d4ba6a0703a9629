/**
 * Read-Only Model API.
 *
 * Exposes the capture engine's traffic model and generation token to a
 * presentation layer, per spec.md's external-interfaces contract:
 * readers acquire the model's lock only for the instant Snapshot takes
 * and never hold it across I/O. Kept deliberately thin compared to the
 * teacher's own pkg/api/handlers.go, which wired this package to HTTP
 * directly; that binding is an outer concern this core does not own.
 *
 * Author: KleaSCM
 * Email: KleaSCM@gmail.com
 */

package api

import (
	"github.com/quietwire/netcore/internal/capture"
	"github.com/quietwire/netcore/internal/traffic"
)

// Reader is a read-only view over a running capture engine, safe to
// hand to a presentation layer without exposing Reconfigure/Stop.
type Reader struct {
	engine *capture.Engine
}

// NewReader wraps engine for read-only consumption.
func NewReader(engine *capture.Engine) *Reader {
	return &Reader{engine: engine}
}

// Snapshot returns a point-in-time copy of the current generation's
// traffic model. Returns the zero Snapshot if no generation has been
// started yet.
func (r *Reader) Snapshot() traffic.Snapshot {
	model := r.engine.Model()
	if model == nil {
		return traffic.Snapshot{}
	}
	return model.Snapshot()
}

// GenerationToken returns the engine's current generation number, the
// other half of spec.md's read-only output contract.
func (r *Reader) GenerationToken() uint64 {
	return r.engine.GenerationToken().Current()
}
