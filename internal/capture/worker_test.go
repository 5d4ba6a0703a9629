/**
 * Capture Worker Tests.
 *
 * Implements the end-to-end scenarios S1, S2, S3, S4, S6 against a
 * stubbed frame source and a recording resolver spawner, with no real
 * network or pcap handle involved.
 *
 * Author: KleaSCM
 * Email: KleaSCM@gmail.com
 */

package capture

import (
	"net"
	"testing"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"

	"github.com/quietwire/netcore/internal/config"
	"github.com/quietwire/netcore/internal/frame"
	"github.com/quietwire/netcore/internal/generation"
	"github.com/quietwire/netcore/internal/traffic"
)

type queueSource struct {
	frames [][]byte
	idx    int
	drops  uint64
}

func (q *queueSource) NextFrame() ([]byte, error) {
	if q.idx >= len(q.frames) {
		return nil, frame.ErrFatal
	}
	f := q.frames[q.idx]
	q.idx++
	return f, nil
}

func (q *queueSource) CaptureStats() frame.Stats { return frame.Stats{Dropped: q.drops} }
func (q *queueSource) Close() error              { return nil }

type recordingSpawner struct {
	calls []string
}

func (r *recordingSpawner) Spawn(addr string, gen uint64, ctrl *generation.Controller) {
	r.calls = append(r.calls, addr)
}

func buildTCPFrame(t *testing.T, srcIP, dstIP string, srcPort, dstPort layers.TCPPort, payloadLen int) []byte {
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
		SrcIP:    net.ParseIP(srcIP).To4(),
		DstIP:    net.ParseIP(dstIP).To4(),
	}
	tcp := &layers.TCP{SrcPort: srcPort, DstPort: dstPort, SYN: true}
	tcp.SetNetworkLayerForChecksum(ip)

	payload := gopacket.Payload(make([]byte, payloadLen))

	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{ComputeChecksums: true, FixLengths: true}
	if err := gopacket.SerializeLayers(buf, opts, eth, ip, tcp, payload); err != nil {
		t.Fatalf("failed to serialize test frame: %v", err)
	}
	return buf.Bytes()
}

func newTestWorker(source frame.Source, pool spawner, filters config.UserFilters) (*Worker, *traffic.Model) {
	model := traffic.New()
	ctrl := generation.New()
	local := &config.LocalDevice{IPv4Addrs: []string{"192.168.1.10"}}
	w := &Worker{
		source:  source,
		model:   model,
		local:   local,
		filters: filters,
		pool:    pool,
		ctrl:    ctrl,
		gen:     ctrl.Current(),
	}
	return w, model
}

// S1: single TCP packet, outgoing, filter = any.
func TestWorkerS1SinglePacketSpawnsResolver(t *testing.T) {
	const payload = 1500 - 14 - 20 - 20 // ethernet + ip + tcp headers subtracted so total frame is 1500
	f := buildTCPFrame(t, "192.168.1.10", "93.184.216.34", 54321, 443, payload)

	src := &queueSource{frames: [][]byte{f}}
	spy := &recordingSpawner{}
	w, model := newTestWorker(src, spy, config.DefaultUserFilters())

	w.processFrame(f)

	if len(spy.calls) != 1 || spy.calls[0] != "93.184.216.34" {
		t.Fatalf("expected exactly one resolver spawn for 93.184.216.34, got %+v", spy.calls)
	}
	snap := model.Snapshot()
	if snap.AllPackets != 1 || snap.AllBytes != 1500 {
		t.Fatalf("expected all_packets=1 all_bytes=1500, got %d/%d", snap.AllPackets, snap.AllBytes)
	}
	if len(snap.Flows) != 1 {
		t.Fatalf("expected exactly one flow, got %d", len(snap.Flows))
	}
	if _, waiting := snap.AddressesWaitingResolution["93.184.216.34"]; !waiting {
		t.Fatal("expected 93.184.216.34 in waiting_resolution")
	}
}

// S2: two packets to the same remote before resolver completes; exactly
// one resolver task spawned, waiting bytes accumulate.
func TestWorkerS2AccumulatesWhileWaiting(t *testing.T) {
	f1 := buildTCPFrame(t, "192.168.1.10", "93.184.216.34", 54321, 443, 500-14-20-20)
	f2 := buildTCPFrame(t, "192.168.1.10", "93.184.216.34", 54321, 443, 700-14-20-20)

	spy := &recordingSpawner{}
	w, model := newTestWorker(&queueSource{}, spy, config.DefaultUserFilters())

	w.processFrame(f1)
	w.processFrame(f2)

	if len(spy.calls) != 1 {
		t.Fatalf("expected exactly one resolver spawn across both packets, got %d", len(spy.calls))
	}
	waiting := model.Snapshot().AddressesWaitingResolution["93.184.216.34"]
	if waiting.TotalBytes() != 1200 {
		t.Fatalf("expected 1200 waiting bytes, got %d", waiting.TotalBytes())
	}
}

// S3: packet filtered out (filter requires UDP, packet is TCP).
func TestWorkerS3FilteredPacketOnlyCountsRaw(t *testing.T) {
	f := buildTCPFrame(t, "192.168.1.10", "93.184.216.34", 54321, 443, 100)

	udpOnly := config.UserFilters{
		IPVersion:   config.IPVersionAny,
		Transport:   config.TransportUDPOnly,
		Application: config.ApplicationFilter{Any: true},
	}
	spy := &recordingSpawner{}
	w, model := newTestWorker(&queueSource{}, spy, udpOnly)

	w.processFrame(f)

	snap := model.Snapshot()
	if snap.AllPackets != 1 {
		t.Fatalf("expected all_packets=1, got %d", snap.AllPackets)
	}
	if len(snap.Flows) != 0 {
		t.Fatal("expected no flows for a filtered-out packet")
	}
	if len(snap.AppProtocols) != 0 {
		t.Fatal("expected no app_protocols entries for a filtered-out packet")
	}
	if len(snap.AddressesWaitingResolution) != 0 {
		t.Fatal("expected no waiting_resolution entries for a filtered-out packet")
	}
	if len(spy.calls) != 0 {
		t.Fatal("expected no resolver spawned for a filtered-out packet")
	}
}

// S4: generation advances between packet N and N+1; the worker must
// observe the mismatch and stop mutating the model.
func TestWorkerS4StopsOnGenerationAdvance(t *testing.T) {
	f1 := buildTCPFrame(t, "192.168.1.10", "93.184.216.34", 54321, 443, 100)
	f2 := buildTCPFrame(t, "192.168.1.10", "1.2.3.4", 55555, 80, 100)

	spy := &recordingSpawner{}
	src := &queueSource{frames: [][]byte{f1, f2}}
	w, model := newTestWorker(src, spy, config.DefaultUserFilters())

	frameN, err := src.NextFrame()
	if err != nil {
		t.Fatalf("unexpected error reading first frame: %v", err)
	}
	w.processFrame(frameN)

	w.ctrl.Advance() // simulate reconfiguration between packet N and N+1

	if w.ctrl.Matches(w.gen) {
		t.Fatal("expected generation mismatch after Advance")
	}
	// Run must exit on its first generation check without reading or
	// processing packet N+1.
	w.Run()
	if src.idx != 1 {
		t.Fatalf("expected packet N+1 to stay unread after the generation advance, got %d frames read", src.idx)
	}
	snap := model.Snapshot()
	if len(snap.Flows) != 1 {
		t.Fatalf("expected exactly the first packet's flow to be present, got %d flows", len(snap.Flows))
	}
}

// S6: malformed Ethernet frame of 64 bytes.
func TestWorkerS6MalformedFrameOnlyCountsRaw(t *testing.T) {
	garbage := make([]byte, 64)
	for i := range garbage {
		garbage[i] = 0xFF
	}

	spy := &recordingSpawner{}
	w, model := newTestWorker(&queueSource{}, spy, config.DefaultUserFilters())

	w.processFrame(garbage)

	snap := model.Snapshot()
	if snap.AllPackets != 1 || snap.AllBytes != 64 {
		t.Fatalf("expected all_packets=1, all_bytes=64, got %d/%d", snap.AllPackets, snap.AllBytes)
	}
	if len(snap.Flows) != 0 || len(snap.AppProtocols) != 0 || len(snap.AddressesWaitingResolution) != 0 {
		t.Fatal("expected no other model state touched by a malformed frame")
	}
}
