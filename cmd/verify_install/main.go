/**
 * Installation Verification Tool.
 *
 * Verifies that the necessary libraries and drivers (like Npcap) are
 * installed and that the application has the required permissions to
 * access network interfaces, then builds netcore's own default
 * CaptureConfig for each of the first five visible interfaces (any
 * further ones are summarized as "... and more") so an operator can confirm
 * what internal/frame.Open would actually be handed before running
 * netcore for real.
 *
 * Author: KleaSCM
 * Email: KleaSCM@gmail.com
 */

package main

import (
	"fmt"
	"log"

	"github.com/google/gopacket/pcap"

	"github.com/quietwire/netcore/internal/config"
)

// Checks for library availability, lists up to five visible interfaces,
// and prints the netcore CaptureConfig each of those would be opened with.
func main() {
	fmt.Println("Verifying Npcap installation...")

	// Check version (loads the DLL)
	version := pcap.Version()
	fmt.Printf("Pcap Version: %s\n", version)

	// Try to list devices
	devs, err := pcap.FindAllDevs()
	if err != nil {
		log.Fatalf("❌ Error finding devices: %v\nPossible causes:\n - Npcap is not installed\n - Missing Administrator privileges\n", err)
	}

	fmt.Printf("✅ Success! Found %d network devices.\n", len(devs))
	for i, d := range devs {
		if i >= 5 {
			fmt.Println("... and more")
			break
		}
		cfg := config.DefaultCaptureConfig(d.Name)
		fmt.Printf(" - %s (%s): snaplen=%d promiscuous=%t timeout=%s buffer=%dMB\n",
			d.Name, d.Description, cfg.SnapLen, cfg.Promiscuous, cfg.Timeout, cfg.BufferSize)
	}
}
