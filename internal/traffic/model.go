/**
 * Traffic Model.
 *
 * The shared aggregated state C5 and C6 mutate under a single coarse
 * lock: flows, per-application counters, resolved/waiting-resolution
 * host bookkeeping, and aggregate totals. Per-packet work is dominated
 * by parsing outside the lock; the critical section here is short map
 * updates, so a single mutex (rather than the teacher's RWMutex-guarded
 * FlowTable in internal/correlator) is deliberate — see DESIGN.md.
 *
 * Author: KleaSCM
 * Email: KleaSCM@gmail.com
 */

package traffic

import (
	"sync"
	"time"

	"github.com/quietwire/netcore/internal/config"
	"github.com/quietwire/netcore/internal/netmodel"
)

// ResolvedEntry pairs the raw rDNS answer with the Host it resolved to,
// exposed read-only via Snapshot.
type ResolvedEntry struct {
	RawRDNS string
	Host    netmodel.Host
}

type resolvedEntry = ResolvedEntry

// Model is the shared, lock-guarded aggregate described by spec.md
// section 4.4 (C4). A fresh Model is constructed per capture
// generation; it holds no reference back to the generation that
// created it.
type Model struct {
	mu sync.Mutex

	flows        map[netmodel.ConnectionKey]*netmodel.FlowInfo
	appProtocols map[netmodel.AppTag]netmodel.DataInfo
	hosts        map[netmodel.Host]*netmodel.HostStats

	addressesResolved          map[string]resolvedEntry
	addressesWaitingResolution map[string]netmodel.DataInfo

	allPackets     uint64
	allBytes       uint64
	droppedPackets uint64
	directionTotals map[netmodel.Direction]*netmodel.DirCounter
}

// New constructs an empty TrafficModel.
func New() *Model {
	return &Model{
		flows:                      make(map[netmodel.ConnectionKey]*netmodel.FlowInfo),
		appProtocols:               make(map[netmodel.AppTag]netmodel.DataInfo),
		hosts:                      make(map[netmodel.Host]*netmodel.HostStats),
		addressesResolved:          make(map[string]resolvedEntry),
		addressesWaitingResolution: make(map[string]netmodel.DataInfo),
		directionTotals:            make(map[netmodel.Direction]*netmodel.DirCounter),
	}
}

// RecordAny increments the global packet/byte counters and refreshes
// the dropped-packet snapshot, regardless of whether the packet passed
// the user's filters. This is the one update every observed frame
// contributes, even malformed ones (invariant 2/3 in spec.md section 3:
// all_packets/all_bytes count every frame on the wire).
func (m *Model) RecordAny(bytes uint64, droppedSnapshot uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recordAnyLocked(bytes, droppedSnapshot)
}

func (m *Model) recordAnyLocked(bytes uint64, droppedSnapshot uint64) {
	m.allPackets++
	m.allBytes += bytes
	// dropped_packets is a snapshot from the frame source, not an
	// accumulator: it only ever moves forward within a generation
	// because the frame source's own counter is monotonic non-decreasing.
	if droppedSnapshot > m.droppedPackets {
		m.droppedPackets = droppedSnapshot
	}
}

// resolveConnection decides which side of ep is "local" and classifies
// Direction, consulting the capture device's known addresses. It runs
// for every packet (the key is needed for the lookup), but the
// Direction it returns is stored only when the flow is first inserted
// (upsertFlowLocked); later packets reuse the stored value, which is
// what makes Direction "decided once, at first sight".
func resolveConnection(ep netmodel.Endpoints, local *config.LocalDevice) (netmodel.ConnectionKey, netmodel.Direction) {
	aIsLocal := local.IsLocalAddr(ep.AddrA)
	bIsLocal := local.IsLocalAddr(ep.AddrB)

	switch {
	case aIsLocal && bIsLocal:
		return netmodel.ConnectionKey{
			LocalAddr: ep.AddrA, LocalPort: ep.PortA,
			RemoteAddr: ep.AddrB, RemotePort: ep.PortB,
			TransportProto: ep.TransportProto,
		}, netmodel.DirectionLoopback

	case aIsLocal:
		dir := netmodel.DirectionOutgoing
		if config.IsMulticast(ep.AddrB) {
			dir = netmodel.DirectionMulticast
		} else if config.IsBroadcast(ep.AddrB) {
			dir = netmodel.DirectionBroadcast
		} else if config.IsLoopback(ep.AddrB) {
			dir = netmodel.DirectionLoopback
		}
		return netmodel.ConnectionKey{
			LocalAddr: ep.AddrA, LocalPort: ep.PortA,
			RemoteAddr: ep.AddrB, RemotePort: ep.PortB,
			TransportProto: ep.TransportProto,
		}, dir

	case bIsLocal:
		return netmodel.ConnectionKey{
			LocalAddr: ep.AddrB, LocalPort: ep.PortB,
			RemoteAddr: ep.AddrA, RemotePort: ep.PortA,
			TransportProto: ep.TransportProto,
		}, netmodel.DirectionIncoming

	default:
		// Neither side is recognized as local: a promiscuously captured
		// third-party conversation, or no local device descriptor was
		// supplied. Keep the as-observed order and fall back to the
		// address-class checks alone.
		dir := netmodel.DirectionUnknown
		switch {
		case config.IsLoopback(ep.AddrA) || config.IsLoopback(ep.AddrB):
			dir = netmodel.DirectionLoopback
		case config.IsMulticast(ep.AddrB):
			dir = netmodel.DirectionMulticast
		case config.IsBroadcast(ep.AddrB):
			dir = netmodel.DirectionBroadcast
		}
		return netmodel.ConnectionKey{
			LocalAddr: ep.AddrA, LocalPort: ep.PortA,
			RemoteAddr: ep.AddrB, RemotePort: ep.PortB,
			TransportProto: ep.TransportProto,
		}, dir
	}
}

// UpsertFlow inserts or merges a flow for ep, computing Direction on
// first insert only, and returns a snapshot of the updated FlowInfo
// together with the (possibly freshly computed, possibly stored)
// Direction so the caller can account for the packet without a second
// lookup.
func (m *Model) UpsertFlow(ep netmodel.Endpoints, local *config.LocalDevice, macs netmodel.MACPair, bytes uint64, app netmodel.AppTag, now time.Time) (netmodel.ConnectionKey, netmodel.FlowInfo, netmodel.Direction) {
	key, dir := resolveConnection(ep, local)

	m.mu.Lock()
	defer m.mu.Unlock()

	flow := m.upsertFlowLocked(key, dir, macs, bytes, app, now)
	return key, *flow, flow.Direction
}

func (m *Model) upsertFlowLocked(key netmodel.ConnectionKey, dir netmodel.Direction, macs netmodel.MACPair, bytes uint64, app netmodel.AppTag, now time.Time) *netmodel.FlowInfo {
	flow, exists := m.flows[key]
	if !exists {
		flow = &netmodel.FlowInfo{
			FirstSeen:   now.UnixNano(),
			Direction:   dir,
			SrcMAC:      macs.SrcMAC,
			DstMAC:      macs.DstMAC,
			Application: app,
		}
		m.flows[key] = flow
	}

	flow.LastSeen = now.UnixNano()
	flow.Bytes += bytes
	flow.Packets++
	return flow
}

// AccountMatched updates the per-direction aggregate totals for a
// packet that passed the user's filters.
func (m *Model) AccountMatched(bytes uint64, direction netmodel.Direction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accountMatchedLocked(bytes, direction)
}

func (m *Model) accountMatchedLocked(bytes uint64, direction netmodel.Direction) {
	counter, ok := m.directionTotals[direction]
	if !ok {
		counter = &netmodel.DirCounter{}
		m.directionTotals[direction] = counter
	}
	counter.Add(bytes)
}

// UpdateAppProtocol folds a matched packet's bytes into its
// application-tag aggregate.
func (m *Model) UpdateAppProtocol(app netmodel.AppTag, bytes uint64, direction netmodel.Direction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateAppProtocolLocked(app, bytes, direction)
}

func (m *Model) updateAppProtocolLocked(app netmodel.AppTag, bytes uint64, direction netmodel.Direction) {
	di := m.appProtocols[app]
	di.Add(bytes, direction)
	m.appProtocols[app] = di
}

// NoteAddress records that a matched packet's remote address was
// observed, returning which resolution state it is in. On FirstSight
// the address is atomically inserted into addresses_waiting_resolution
// so any other packet for the same address before the resolver
// completes lands in AlreadyWaiting instead, guaranteeing at most one
// resolver task is ever spawned per address per generation.
func (m *Model) NoteAddress(addr string, bytes uint64, direction netmodel.Direction) (netmodel.ResolutionState, netmodel.Host) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.noteAddressLocked(addr, bytes, direction)
}

func (m *Model) noteAddressLocked(addr string, bytes uint64, direction netmodel.Direction) (netmodel.ResolutionState, netmodel.Host) {
	if entry, ok := m.addressesResolved[addr]; ok {
		hs, ok := m.hosts[entry.Host]
		if !ok {
			hs = &netmodel.HostStats{}
			m.hosts[entry.Host] = hs
		}
		hs.Data.Add(bytes, direction)
		return netmodel.AlreadyResolved, entry.Host
	}

	if waiting, ok := m.addressesWaitingResolution[addr]; ok {
		waiting.Add(bytes, direction)
		m.addressesWaitingResolution[addr] = waiting
		return netmodel.AlreadyWaiting, netmodel.Host{}
	}

	m.addressesWaitingResolution[addr] = netmodel.NewDataInfoWithFirstPacket(bytes, direction)
	return netmodel.FirstSight, netmodel.Host{}
}

// RecordMatchedPacket performs the entire per-packet update for a frame
// that passed the user's filters as a single critical section: it
// upserts the flow, folds in the raw/per-direction/per-application
// counters, and notes the remote address for resolution, all under one
// lock acquisition. spec.md section 4.5 step 5 / section 5 require this
// update be atomic with respect to a concurrent Snapshot — taking the
// lock once here, instead of once per sub-update, is what prevents a
// reader from ever observing a half-applied packet.
func (m *Model) RecordMatchedPacket(ep netmodel.Endpoints, local *config.LocalDevice, macs netmodel.MACPair, bytes uint64, app netmodel.AppTag, now time.Time, droppedSnapshot uint64) (netmodel.ConnectionKey, netmodel.Direction, netmodel.ResolutionState, netmodel.Host) {
	key, dir := resolveConnection(ep, local)

	m.mu.Lock()
	defer m.mu.Unlock()

	flow := m.upsertFlowLocked(key, dir, macs, bytes, app, now)
	m.recordAnyLocked(bytes, droppedSnapshot)
	m.accountMatchedLocked(bytes, flow.Direction)
	m.updateAppProtocolLocked(app, bytes, flow.Direction)
	state, host := m.noteAddressLocked(key.RemoteAddr, bytes, flow.Direction)

	return key, flow.Direction, state, host
}

// PromoteResolution is called by the resolver worker (C6) once a
// lookup completes. It removes addr from addresses_waiting_resolution,
// records it as resolved, and folds the accumulated waiting DataInfo
// into hosts[host], incrementing flow_count. A no-op if addr is no
// longer waiting (e.g. a concurrent generation advance already reset
// the model before this call landed).
func (m *Model) PromoteResolution(addr, rawRDNS string, host netmodel.Host) {
	m.mu.Lock()
	defer m.mu.Unlock()

	waiting, ok := m.addressesWaitingResolution[addr]
	if !ok {
		return
	}
	delete(m.addressesWaitingResolution, addr)
	m.addressesResolved[addr] = resolvedEntry{RawRDNS: rawRDNS, Host: host}

	hs, ok := m.hosts[host]
	if !ok {
		hs = &netmodel.HostStats{}
		m.hosts[host] = hs
	}
	hs.Data.Merge(waiting)
	hs.FlowCount++
}

// Snapshot is a point-in-time, deep copy of the model's state, safe
// for a reader to inspect without holding the model's lock. This is
// the read-only output spec.md's external-interfaces section
// describes: the presentation layer acquires the lock only for the
// instant Snapshot takes to copy the maps, never across its own I/O.
type Snapshot struct {
	Flows                      map[netmodel.ConnectionKey]netmodel.FlowInfo
	AppProtocols               map[netmodel.AppTag]netmodel.DataInfo
	Hosts                      map[netmodel.Host]netmodel.HostStats
	AddressesResolved          map[string]ResolvedEntry
	AddressesWaitingResolution map[string]netmodel.DataInfo
	DirectionTotals            map[netmodel.Direction]netmodel.DirCounter
	AllPackets                 uint64
	AllBytes                   uint64
	DroppedPackets             uint64
}

// Snapshot copies out the model's entire state under the lock.
func (m *Model) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := Snapshot{
		Flows:                      make(map[netmodel.ConnectionKey]netmodel.FlowInfo, len(m.flows)),
		AppProtocols:               make(map[netmodel.AppTag]netmodel.DataInfo, len(m.appProtocols)),
		Hosts:                      make(map[netmodel.Host]netmodel.HostStats, len(m.hosts)),
		AddressesResolved:          make(map[string]ResolvedEntry, len(m.addressesResolved)),
		AddressesWaitingResolution: make(map[string]netmodel.DataInfo, len(m.addressesWaitingResolution)),
		DirectionTotals:            make(map[netmodel.Direction]netmodel.DirCounter, len(m.directionTotals)),
		AllPackets:                 m.allPackets,
		AllBytes:                   m.allBytes,
		DroppedPackets:             m.droppedPackets,
	}
	for k, v := range m.flows {
		s.Flows[k] = *v
	}
	for k, v := range m.appProtocols {
		s.AppProtocols[k] = v
	}
	for k, v := range m.hosts {
		s.Hosts[k] = *v
	}
	for k, v := range m.addressesResolved {
		s.AddressesResolved[k] = v
	}
	for k, v := range m.addressesWaitingResolution {
		s.AddressesWaitingResolution[k] = v
	}
	for k, v := range m.directionTotals {
		s.DirectionTotals[k] = *v
	}
	return s
}
