package filter

import (
	"testing"

	"github.com/quietwire/netcore/internal/config"
	"github.com/quietwire/netcore/internal/netmodel"
)

func TestMatchesAnyFilterAcceptsEverything(t *testing.T) {
	tags := netmodel.ProtocolTags{Network: netmodel.IPv4, Transport: netmodel.TransportTCP, Application: netmodel.AppHTTPS}
	if !Matches(tags, config.DefaultUserFilters()) {
		t.Fatal("expected default (any/any/any) filters to match everything")
	}
}

func TestMatchesTransportDimension(t *testing.T) {
	f := config.DefaultUserFilters()
	f.Transport = config.TransportUDPOnly

	tcp := netmodel.ProtocolTags{Network: netmodel.IPv4, Transport: netmodel.TransportTCP}
	udp := netmodel.ProtocolTags{Network: netmodel.IPv4, Transport: netmodel.TransportUDP}

	if Matches(tcp, f) {
		t.Fatal("TCP packet should not match a UDP-only filter")
	}
	if !Matches(udp, f) {
		t.Fatal("UDP packet should match a UDP-only filter")
	}
}

func TestMatchesRequiresAllEnabledDimensions(t *testing.T) {
	f := config.UserFilters{
		IPVersion:   config.IPVersionV4Only,
		Transport:   config.TransportTCPOnly,
		Application: config.ApplicationFilter{Any: false, Specific: netmodel.AppHTTPS},
	}

	matching := netmodel.ProtocolTags{Network: netmodel.IPv4, Transport: netmodel.TransportTCP, Application: netmodel.AppHTTPS}
	if !Matches(matching, f) {
		t.Fatal("expected full match across all three dimensions")
	}

	wrongApp := matching
	wrongApp.Application = netmodel.AppDNS
	if Matches(wrongApp, f) {
		t.Fatal("expected mismatch on application dimension to fail overall")
	}
}
