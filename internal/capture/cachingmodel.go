/**
 * Cache-Writing Model Adapter.
 *
 * Wraps the traffic model so a freshly resolved Host is persisted into
 * the resolution cache the same moment it is promoted into memory.
 * Implements resolver.Model so resolver.Pool does not need to know the
 * cache exists at all.
 *
 * Author: KleaSCM
 * Email: KleaSCM@gmail.com
 */

package capture

import (
	"log"

	"github.com/quietwire/netcore/internal/netmodel"
	"github.com/quietwire/netcore/internal/resolvercache"
	"github.com/quietwire/netcore/internal/traffic"
)

type cachingModel struct {
	model *traffic.Model
	cache *resolvercache.Cache // nil disables persistence
}

func (c *cachingModel) PromoteResolution(addr, rawRDNS string, host netmodel.Host) {
	c.model.PromoteResolution(addr, rawRDNS, host)
	if c.cache == nil {
		return
	}
	if err := c.cache.Store(addr, rawRDNS, host); err != nil {
		log.Printf("capture: failed to persist resolution for %s: %v", addr, err)
	}
}
