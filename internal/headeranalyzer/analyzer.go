/**
 * Header Analyzer.
 *
 * Pure decoder: frame bytes in, connection key + protocol tags + byte
 * count + MAC pair out. Returns ok=false when headers are malformed or
 * the frame carries no recognizable L3/L4 (unknown EtherType,
 * truncated IP header, unsupported transport). Adapted from the
 * teacher's per-layer parser files (ethernet.go, ip.go, transport.go),
 * collapsed into the single pure function spec.md's C2 contract
 * describes, operating directly on raw frame bytes rather than on an
 * already-decoded gopacket.Packet handed in by a caller.
 *
 * Author: KleaSCM
 * Email: KleaSCM@gmail.com
 */

package headeranalyzer

import (
	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/quietwire/netcore/internal/appid"
	"github.com/quietwire/netcore/internal/netmodel"
)

// Analyze decodes a single captured frame. ok is false when the frame
// carries no recognizable L3/L4 headers (ARP, malformed Ethernet,
// truncated IP, or a transport other than TCP/UDP/ICMP). The returned
// Endpoints are in as-parsed order; resolving them into a canonical
// ConnectionKey against the local device happens downstream.
func Analyze(frameBytes []byte) (ep netmodel.Endpoints, tags netmodel.ProtocolTags, byteCount int, macs netmodel.MACPair, ok bool) {
	packet := gopacket.NewPacket(frameBytes, layers.LayerTypeEthernet, gopacket.NoCopy)
	byteCount = len(frameBytes)

	ethLayer := packet.Layer(layers.LayerTypeEthernet)
	if ethLayer == nil {
		return ep, tags, byteCount, macs, false
	}
	eth, isEth := ethLayer.(*layers.Ethernet)
	if !isEth {
		return ep, tags, byteCount, macs, false
	}
	tags.Link = netmodel.LinkEthernet
	macs = netmodel.MACPair{
		SrcMAC: eth.SrcMAC.String(),
		DstMAC: eth.DstMAC.String(),
	}

	var srcIP, dstIP string
	if ip4 := packet.Layer(layers.LayerTypeIPv4); ip4 != nil {
		v4, isV4 := ip4.(*layers.IPv4)
		if !isV4 {
			return ep, tags, byteCount, macs, false
		}
		tags.Network = netmodel.IPv4
		srcIP, dstIP = v4.SrcIP.String(), v4.DstIP.String()
	} else if ip6 := packet.Layer(layers.LayerTypeIPv6); ip6 != nil {
		v6, isV6 := ip6.(*layers.IPv6)
		if !isV6 {
			return ep, tags, byteCount, macs, false
		}
		tags.Network = netmodel.IPv6
		srcIP, dstIP = v6.SrcIP.String(), v6.DstIP.String()
	} else {
		// No recognizable L3 header (e.g. ARP, or truncated/unknown EtherType).
		return ep, tags, byteCount, macs, false
	}

	var srcPort, dstPort uint16
	switch {
	case packet.Layer(layers.LayerTypeTCP) != nil:
		tcp := packet.Layer(layers.LayerTypeTCP).(*layers.TCP)
		tags.Transport = netmodel.TransportTCP
		srcPort, dstPort = uint16(tcp.SrcPort), uint16(tcp.DstPort)
	case packet.Layer(layers.LayerTypeUDP) != nil:
		udp := packet.Layer(layers.LayerTypeUDP).(*layers.UDP)
		tags.Transport = netmodel.TransportUDP
		srcPort, dstPort = uint16(udp.SrcPort), uint16(udp.DstPort)
	case packet.Layer(layers.LayerTypeICMPv4) != nil, packet.Layer(layers.LayerTypeICMPv6) != nil:
		tags.Transport = netmodel.TransportICMP
	default:
		// L3 decoded but no recognizable transport header.
		return ep, tags, byteCount, macs, false
	}

	tags.Application = appid.Identify(srcPort, dstPort)

	ep = netmodel.Endpoints{
		AddrA:          srcIP,
		PortA:          srcPort,
		AddrB:          dstIP,
		PortB:          dstPort,
		TransportProto: tags.Transport,
	}

	return ep, tags, byteCount, macs, true
}
