/**
 * Core Data Model.
 *
 * Defines the immutable connection key, protocol tags, and mutable
 * aggregate records shared by the header analyzer, filter predicate,
 * traffic model, and resolver worker.
 *
 * Author: KleaSCM
 * Email: KleaSCM@gmail.com
 */

package netmodel

import "fmt"

// TransportProto enumerates the transport-layer protocols this core
// classifies traffic by.
type TransportProto int

const (
	TransportUnknown TransportProto = iota
	TransportTCP
	TransportUDP
	TransportICMP
)

func (p TransportProto) String() string {
	switch p {
	case TransportTCP:
		return "tcp"
	case TransportUDP:
		return "udp"
	case TransportICMP:
		return "icmp"
	default:
		return "unknown"
	}
}

// IPVersion distinguishes IPv4 from IPv6 frames.
type IPVersion int

const (
	IPVersionUnknown IPVersion = iota
	IPv4
	IPv6
)

func (v IPVersion) String() string {
	switch v {
	case IPv4:
		return "ipv4"
	case IPv6:
		return "ipv6"
	default:
		return "unknown"
	}
}

// AppTag is the fixed enumeration of application-layer protocols the
// header analyzer infers from the transport port pair.
type AppTag int

const (
	AppUnknown AppTag = iota
	AppHTTP
	AppHTTPS
	AppDNS
	AppSSH
	AppFTP
	AppSMTP
	AppIMAP
	AppPOP3
	AppRDP
	AppVNC
	AppTelnet
	AppSIP
	AppNTP
	AppDHCP
)

func (a AppTag) String() string {
	switch a {
	case AppHTTP:
		return "http"
	case AppHTTPS:
		return "https"
	case AppDNS:
		return "dns"
	case AppSSH:
		return "ssh"
	case AppFTP:
		return "ftp"
	case AppSMTP:
		return "smtp"
	case AppIMAP:
		return "imap"
	case AppPOP3:
		return "pop3"
	case AppRDP:
		return "rdp"
	case AppVNC:
		return "vnc"
	case AppTelnet:
		return "telnet"
	case AppSIP:
		return "sip"
	case AppNTP:
		return "ntp"
	case AppDHCP:
		return "dhcp"
	default:
		return "unknown"
	}
}

// LinkTag is the link-layer classification, kept separate from
// TransportProto so a malformed or unrecognized EtherType can be
// recorded distinctly from "no transport header observed".
type LinkTag int

const (
	LinkUnknown LinkTag = iota
	LinkEthernet
)

// ProtocolTags bundles the per-layer classification of a single frame.
// Each field defaults to its "unknown" variant.
type ProtocolTags struct {
	Link        LinkTag
	Network     IPVersion
	Transport   TransportProto
	Application AppTag
}

// ConnectionKey is the immutable 5-tuple identifying a connection, with
// local/remote sides resolved against the capture device's known
// addresses. Equality and hashing (as a Go map key) are derived from
// every field; it is never mutated once constructed.
type ConnectionKey struct {
	LocalAddr      string
	LocalPort      uint16
	RemoteAddr     string
	RemotePort     uint16
	TransportProto TransportProto
}

func (k ConnectionKey) String() string {
	return fmt.Sprintf("%s:%d <-> %s:%d [%s]", k.LocalAddr, k.LocalPort, k.RemoteAddr, k.RemotePort, k.TransportProto)
}

// Endpoints is the raw, order-as-parsed pair of addresses/ports the
// header analyzer observes on the wire (field A is whatever appeared
// as the IP/transport source, field B the destination). The analyzer
// has no notion of "local" vs "remote" — that resolution happens
// afterward, against the capture device's known local addresses,
// which is where ConnectionKey and Direction are actually decided.
type Endpoints struct {
	AddrA          string
	PortA          uint16
	AddrB          string
	PortB          uint16
	TransportProto TransportProto
}

// Direction classifies a packet relative to the local device. It is
// decided once, at first sight of a flow, from the local device's
// address set, and is never re-derived on later packets of the same
// flow.
type Direction int

const (
	DirectionUnknown Direction = iota
	DirectionOutgoing
	DirectionIncoming
	DirectionMulticast
	DirectionBroadcast
	DirectionLoopback
)

func (d Direction) String() string {
	switch d {
	case DirectionOutgoing:
		return "outgoing"
	case DirectionIncoming:
		return "incoming"
	case DirectionMulticast:
		return "multicast"
	case DirectionBroadcast:
		return "broadcast"
	case DirectionLoopback:
		return "loopback"
	default:
		return "unknown"
	}
}

// DataInfo is a compact, direction-aware byte/packet counter.
type DataInfo struct {
	IncomingBytes   uint64
	OutgoingBytes   uint64
	IncomingPackets uint64
	OutgoingPackets uint64
}

// NewDataInfoWithFirstPacket builds a DataInfo seeded with a single
// packet of the given size and direction.
func NewDataInfoWithFirstPacket(bytes uint64, dir Direction) DataInfo {
	d := DataInfo{}
	d.Add(bytes, dir)
	return d
}

// Add folds one packet's worth of bytes into the counter according to
// direction. Directions other than incoming/outgoing (multicast,
// broadcast, loopback, unknown) are counted as outgoing, mirroring the
// convention that anything not clearly inbound is attributed to the
// local device's send side.
func (d *DataInfo) Add(bytes uint64, dir Direction) {
	switch dir {
	case DirectionIncoming:
		d.IncomingBytes += bytes
		d.IncomingPackets++
	default:
		d.OutgoingBytes += bytes
		d.OutgoingPackets++
	}
}

// TotalBytes returns the sum of incoming and outgoing bytes.
func (d DataInfo) TotalBytes() uint64 {
	return d.IncomingBytes + d.OutgoingBytes
}

// TotalPackets returns the sum of incoming and outgoing packets.
func (d DataInfo) TotalPackets() uint64 {
	return d.IncomingPackets + d.OutgoingPackets
}

// Merge folds another DataInfo's counters into d, used when an
// address's accumulated waiting-resolution counters are folded into
// its resolved Host's totals.
func (d *DataInfo) Merge(other DataInfo) {
	d.IncomingBytes += other.IncomingBytes
	d.OutgoingBytes += other.OutgoingBytes
	d.IncomingPackets += other.IncomingPackets
	d.OutgoingPackets += other.OutgoingPackets
}

// DirCounter is a simple byte/packet counter for a single Direction
// bucket, used for the TrafficModel's per-direction aggregate totals.
type DirCounter struct {
	Bytes   uint64
	Packets uint64
}

// Add folds one packet's worth of bytes into the counter.
func (c *DirCounter) Add(bytes uint64) {
	c.Bytes += bytes
	c.Packets++
}

// Host is a resolved remote-address identity.
type Host struct {
	Domain      string
	CountryCode string
	ASN         string
}

// HostStats pairs a resolved Host with the folded traffic counters and
// the number of distinct flows that have contributed to it.
type HostStats struct {
	Data      DataInfo
	FlowCount int
}

// MACPair carries the canonical lowercase colon-separated source and
// destination MAC strings observed on a frame.
type MACPair struct {
	SrcMAC string
	DstMAC string
}

// FlowInfo is the mutable per-ConnectionKey aggregate. Direction is
// decided once, at first sight, and stored here rather than
// re-derived from later packets.
type FlowInfo struct {
	Bytes       uint64
	Packets     uint64
	FirstSeen   int64 // unix nanoseconds
	LastSeen    int64
	Direction   Direction
	SrcMAC      string
	DstMAC      string
	Application AppTag
}

// ResolutionState is the outcome of NoteAddress: whether this is the
// first sighting of a remote address, one already waiting on a
// resolver, or one already resolved to a Host.
type ResolutionState int

const (
	FirstSight ResolutionState = iota
	AlreadyWaiting
	AlreadyResolved
)
