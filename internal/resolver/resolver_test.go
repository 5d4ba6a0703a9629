package resolver

import (
	"context"
	"testing"
	"time"

	"github.com/quietwire/netcore/internal/generation"
	"github.com/quietwire/netcore/internal/netmodel"
)

const testDNSTimeout = 2 * time.Second

type stubModel struct {
	promoted []netmodel.Host
	addr     string
}

func (s *stubModel) PromoteResolution(addr, rawRDNS string, host netmodel.Host) {
	s.addr = addr
	s.promoted = append(s.promoted, host)
}

func TestResolveDiscardsStaleGeneration(t *testing.T) {
	ctrl := generation.New()
	gen := ctrl.Current()
	ctrl.Advance() // invalidate gen before the resolver writes back

	m := &stubModel{}
	Resolve(context.Background(), "127.0.0.1", gen, ctrl, nil, m, testDNSTimeout)

	if len(m.promoted) != 0 {
		t.Fatalf("expected no promotion for a stale generation, got %+v", m.promoted)
	}
}

func TestResolvePromotesOnCurrentGeneration(t *testing.T) {
	ctrl := generation.New()
	gen := ctrl.Current()

	m := &stubModel{}
	Resolve(context.Background(), "127.0.0.1", gen, ctrl, nil, m, testDNSTimeout)

	if len(m.promoted) != 1 {
		t.Fatalf("expected exactly one promotion, got %d", len(m.promoted))
	}
	if m.promoted[0].CountryCode != "unknown" || m.promoted[0].ASN != "unknown" {
		t.Fatalf("expected unknown geo/asn with nil readers, got %+v", m.promoted[0])
	}
}
