/**
 * Header Analyzer Tests.
 *
 * Verifies correct decoding of constructed Ethernet/IPv4/TCP frames and
 * rejection of malformed/unrecognized ones.
 *
 * Author: KleaSCM
 * Email: KleaSCM@gmail.com
 */

package headeranalyzer

import (
	"net"
	"testing"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/quietwire/netcore/internal/netmodel"
)

func buildTCPFrame(t *testing.T, srcPort, dstPort layers.TCPPort) []byte {
	t.Helper()

	eth := &layers.Ethernet{
		SrcMAC:       net.HardwareAddr{0x00, 0x11, 0x22, 0x33, 0x44, 0x55},
		DstMAC:       net.HardwareAddr{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF},
		EthernetType: layers.EthernetTypeIPv4,
	}
	ip := &layers.IPv4{
		Version:  4,
		IHL:      5,
		TTL:      64,
		Protocol: layers.IPProtocolTCP,
		SrcIP:    net.ParseIP("192.168.1.10").To4(),
		DstIP:    net.ParseIP("93.184.216.34").To4(),
	}
	tcp := &layers.TCP{SrcPort: srcPort, DstPort: dstPort, SYN: true}
	tcp.SetNetworkLayerForChecksum(ip)

	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{ComputeChecksums: true, FixLengths: true}
	if err := gopacket.SerializeLayers(buf, opts, eth, ip, tcp); err != nil {
		t.Fatalf("failed to serialize test frame: %v", err)
	}
	return buf.Bytes()
}

func TestAnalyzeTCPFrame(t *testing.T) {
	frame := buildTCPFrame(t, 54321, 443)

	ep, tags, byteCount, macs, ok := Analyze(frame)
	if !ok {
		t.Fatal("expected frame to be recognized")
	}

	if tags.Network != netmodel.IPv4 {
		t.Errorf("expected IPv4, got %v", tags.Network)
	}
	if tags.Transport != netmodel.TransportTCP {
		t.Errorf("expected TCP, got %v", tags.Transport)
	}
	if tags.Application != netmodel.AppHTTPS {
		t.Errorf("expected HTTPS (port 443), got %v", tags.Application)
	}
	if ep.AddrA != "192.168.1.10" || ep.AddrB != "93.184.216.34" {
		t.Errorf("unexpected endpoints: %+v", ep)
	}
	if ep.PortA != 54321 || ep.PortB != 443 {
		t.Errorf("unexpected ports: %+v", ep)
	}
	if byteCount != len(frame) {
		t.Errorf("expected byteCount %d, got %d", len(frame), byteCount)
	}
	if macs.SrcMAC == "" || macs.DstMAC == "" {
		t.Errorf("expected non-empty MAC pair, got %+v", macs)
	}
}

func TestAnalyzeMalformedFrame(t *testing.T) {
	garbage := make([]byte, 64)
	for i := range garbage {
		garbage[i] = 0xFF
	}

	_, _, byteCount, _, ok := Analyze(garbage)
	if ok {
		t.Fatal("expected malformed frame to be rejected")
	}
	if byteCount != 64 {
		t.Errorf("expected byteCount to still report 64, got %d", byteCount)
	}
}

func TestAnalyzeARPIsUnrecognized(t *testing.T) {
	eth := &layers.Ethernet{
		SrcMAC:       net.HardwareAddr{0x00, 0x11, 0x22, 0x33, 0x44, 0x55},
		DstMAC:       net.HardwareAddr{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF},
		EthernetType: layers.EthernetTypeARP,
	}
	arp := &layers.ARP{
		AddrType:          layers.LinkTypeEthernet,
		Protocol:          layers.EthernetTypeIPv4,
		HwAddressSize:     6,
		ProtAddressSize:   4,
		Operation:         layers.ARPRequest,
		SourceHwAddress:   []byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x55},
		SourceProtAddress: net.ParseIP("192.168.1.10").To4(),
		DstHwAddress:      []byte{0, 0, 0, 0, 0, 0},
		DstProtAddress:    net.ParseIP("192.168.1.1").To4(),
	}

	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{}
	if err := gopacket.SerializeLayers(buf, opts, eth, arp); err != nil {
		t.Fatalf("failed to serialize ARP frame: %v", err)
	}

	_, _, _, _, ok := Analyze(buf.Bytes())
	if ok {
		t.Fatal("expected ARP frame to be unrecognized (no L3/L4 of interest)")
	}
}
