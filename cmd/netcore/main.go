/**
 * netcore Entry Point.
 *
 * Bootstraps the capture engine against a single interface and prints
 * periodic traffic summaries. Grounded on the teacher's cmd/netscope
 * main.go bootstrap sequence (root-privilege check, then wire storage
 * and start capture) with the interactive CLI menu dropped — this core
 * exposes a read-only model via pkg/api instead of owning a
 * presentation layer.
 *
 * Author: KleaSCM
 * Email: KleaSCM@gmail.com
 */

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/quietwire/netcore/internal/config"
	"github.com/quietwire/netcore/internal/capture"
	"github.com/quietwire/netcore/pkg/api"
)

func main() {
	iface := flag.String("interface", "", "capture interface name (required)")
	cityDB := flag.String("geoip-city", "", "path to GeoLite2-City.mmdb (optional)")
	asnDB := flag.String("geoip-asn", "", "path to GeoLite2-ASN.mmdb (optional)")
	cachePath := flag.String("resolver-cache", "", "path to the persisted resolution cache (optional)")
	flag.Parse()

	if !isRoot() {
		log.Println("warning: netcore typically requires root/administrator privileges for packet capture")
	}
	if *iface == "" {
		log.Fatal("missing required -interface flag")
	}

	local, err := config.BuildLocalDevice(*iface)
	if err != nil {
		log.Fatalf("failed to describe local device: %v", err)
	}

	engine, err := capture.New(config.GeoIPConfig{CityDBPath: *cityDB, ASNDBPath: *asnDB})
	if err != nil {
		log.Fatalf("failed to initialize capture engine: %v", err)
	}
	defer engine.Close()

	resolverCfg := config.DefaultResolverConfig()
	resolverCfg.CachePath = *cachePath

	captureCfg := config.DefaultCaptureConfig(*iface)
	if err := engine.Reconfigure(*captureCfg, local, config.DefaultUserFilters(), *resolverCfg); err != nil {
		log.Fatalf("failed to start capture: %v", err)
	}

	reader := api.NewReader(engine)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	log.Printf("netcore capturing on %s (generation %d)", *iface, reader.GenerationToken())

	for {
		select {
		case <-stop:
			log.Println("shutting down")
			return
		case <-ticker.C:
			snap := reader.Snapshot()
			fmt.Printf("packets=%d bytes=%d flows=%d hosts=%d waiting=%d dropped=%d\n",
				snap.AllPackets, snap.AllBytes, len(snap.Flows), len(snap.Hosts),
				len(snap.AddressesWaitingResolution), snap.DroppedPackets)
		}
	}
}

func isRoot() bool {
	return os.Geteuid() == 0
}
