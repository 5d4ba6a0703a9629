/**
 * Generation Controller.
 *
 * A shared monotonic token that invalidates in-flight capture and
 * resolver workers on reconfiguration. Advancing it logically cancels
 * every worker spawned under the previous value; they cooperatively
 * check the token before each frame and before writing back results,
 * mirroring the `current_capture_id` mutex-guarded counter in the
 * original sniffnet capture loop (original_source's parse_packets.rs),
 * expressed here with an atomic integer instead since nothing else
 * needs to be held under that lock.
 *
 * Author: KleaSCM
 * Email: KleaSCM@gmail.com
 */

package generation

import "sync/atomic"

// Controller is a monotonic generation token, safe for concurrent use.
type Controller struct {
	value atomic.Uint64
}

// New returns a controller starting at generation 1. Generation 0 is
// reserved so a zero-value Controller (and any worker that captured it
// without observing a real Current()) is never mistaken for a live
// generation.
func New() *Controller {
	c := &Controller{}
	c.value.Store(1)
	return c
}

// Current returns the controller's present generation.
func (c *Controller) Current() uint64 {
	return c.value.Load()
}

// Advance increments the generation and returns the new value. Every
// worker that captured an older value will observe the mismatch on its
// next generation check and exit without mutating shared state.
func (c *Controller) Advance() uint64 {
	return c.value.Add(1)
}

// Matches reports whether gen is still the controller's current
// generation. Workers call this before consuming a frame and before
// writing back resolver results.
func (c *Controller) Matches(gen uint64) bool {
	return c.value.Load() == gen
}
