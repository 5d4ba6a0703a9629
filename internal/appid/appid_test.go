package appid

import (
	"testing"

	"github.com/quietwire/netcore/internal/netmodel"
)

func TestIdentifyPrefersLowerWellKnownPort(t *testing.T) {
	// Ephemeral client port 54321 talking to server port 443.
	if got := Identify(54321, 443); got != netmodel.AppHTTPS {
		t.Fatalf("expected HTTPS, got %v", got)
	}

	// Two well-known ports: DNS (53) vs HTTPS (443) -> lower port wins.
	if got := Identify(443, 53); got != netmodel.AppDNS {
		t.Fatalf("expected DNS (lower port), got %v", got)
	}
}

func TestIdentifyUnknown(t *testing.T) {
	if got := Identify(51000, 51001); got != netmodel.AppUnknown {
		t.Fatalf("expected unknown, got %v", got)
	}
}
