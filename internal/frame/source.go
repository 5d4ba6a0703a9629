/**
 * Frame Source Adapter.
 *
 * Hides the capture library behind a blocking next-frame contract: the
 * capture worker never touches gopacket/pcap types directly. Adapted
 * from the teacher's capture.Engine handle setup (inactive handle,
 * snaplen/promisc/timeout/buffer-size configuration, BPF filter) and
 * capture.FindInterface, trimmed of the CLI interface-picker and every
 * enrichment/correlation dependency the engine used to wire in.
 *
 * Author: KleaSCM
 * Email: KleaSCM@gmail.com
 */

package frame

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/pcap"

	"github.com/quietwire/netcore/internal/config"
)

// ErrFatal wraps a capture error that ends the current generation's
// worker outright (handle closed, interface vanished).
var ErrFatal = errors.New("frame source: fatal")

// ErrTransient wraps a capture error that is retried indefinitely (a
// read timeout, an interrupted syscall).
var ErrTransient = errors.New("frame source: transient")

// Stats is the drop-counter snapshot a Source exposes, readable at any
// time without blocking the capture loop.
type Stats struct {
	Dropped uint64
}

// Source is the blocking iterator contract the capture worker (C5)
// consumes. NextFrame never returns both a nil byte slice and a nil
// error: callers can assume exactly one of (frame, err) is meaningful.
type Source interface {
	NextFrame() ([]byte, error)
	CaptureStats() Stats
	Close() error
}

// PcapSource is a Source backed by a live gopacket/pcap capture handle.
type PcapSource struct {
	handle *pcap.Handle
	source *gopacket.PacketSource
	packets chan gopacket.Packet
}

// Open validates the named interface and activates a capture handle
// configured per cfg, mirroring the teacher's inactive-handle
// configure-then-activate sequence.
func Open(cfg config.CaptureConfig) (*PcapSource, error) {
	if err := validateInterface(cfg.Interface); err != nil {
		return nil, fmt.Errorf("frame source: %w", err)
	}

	inactive, err := pcap.NewInactiveHandle(cfg.Interface)
	if err != nil {
		return nil, fmt.Errorf("frame source: failed to create inactive handle: %w", err)
	}
	defer inactive.CleanUp()

	if err := inactive.SetSnapLen(int(cfg.SnapLen)); err != nil {
		return nil, fmt.Errorf("frame source: failed to set snaplen: %w", err)
	}
	if err := inactive.SetPromisc(cfg.Promiscuous); err != nil {
		return nil, fmt.Errorf("frame source: failed to set promiscuous mode: %w", err)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 150 * time.Millisecond
	}
	if err := inactive.SetTimeout(timeout); err != nil {
		return nil, fmt.Errorf("frame source: failed to set timeout: %w", err)
	}
	if cfg.BufferSize > 0 {
		if err := inactive.SetBufferSize(cfg.BufferSize * 1024 * 1024); err != nil {
			return nil, fmt.Errorf("frame source: failed to set buffer size: %w", err)
		}
	}

	handle, err := inactive.Activate()
	if err != nil {
		return nil, fmt.Errorf("frame source: failed to activate handle: %w", err)
	}

	if cfg.BPFFilter != "" {
		if err := handle.SetBPFFilter(cfg.BPFFilter); err != nil {
			handle.Close()
			return nil, fmt.Errorf("frame source: failed to set BPF filter: %w", err)
		}
	}

	src := gopacket.NewPacketSource(handle, handle.LinkType())
	return &PcapSource{handle: handle, source: src, packets: src.Packets()}, nil
}

// NextFrame blocks until a frame arrives or the read times out. A
// capture timeout (the periodic tick set by SetTimeout) surfaces as
// ErrTransient so the caller can re-check the generation token
// promptly even on an idle link.
func (s *PcapSource) NextFrame() ([]byte, error) {
	packet, ok := <-s.packets
	if !ok {
		return nil, fmt.Errorf("%w: capture channel closed", ErrFatal)
	}
	if packet == nil {
		return nil, fmt.Errorf("%w: capture read timeout", ErrTransient)
	}
	// Frames gopacket failed to decode are still handed back: they were
	// on the wire and count toward the raw totals downstream.
	return packet.Data(), nil
}

// CaptureStats reports the dropped-packet count pcap has observed so
// far, safe to call concurrently with NextFrame.
func (s *PcapSource) CaptureStats() Stats {
	if s.handle == nil {
		return Stats{}
	}
	stats, err := s.handle.Stats()
	if err != nil {
		return Stats{}
	}
	return Stats{Dropped: uint64(stats.PacketsDropped)}
}

// Close releases the underlying capture handle.
func (s *PcapSource) Close() error {
	if s.handle != nil {
		s.handle.Close()
	}
	return nil
}

func validateInterface(name string) error {
	devices, err := pcap.FindAllDevs()
	if err != nil {
		return fmt.Errorf("failed to enumerate capture devices: %w", err)
	}
	for _, d := range devices {
		if d.Name == name {
			return nil
		}
	}
	return fmt.Errorf("interface %q not found among capture devices", name)
}
