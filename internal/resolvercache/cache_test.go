/**
 * Resolution Cache Tests.
 *
 * Author: KleaSCM
 * Email: KleaSCM@gmail.com
 */

package resolvercache

import (
	"os"
	"testing"

	"github.com/quietwire/netcore/internal/netmodel"
)

func TestCacheStoreAndLookup(t *testing.T) {
	dbPath := "test_resolvercache.db"
	defer os.Remove(dbPath)

	cache, err := Open(dbPath)
	if err != nil {
		t.Fatalf("failed to open cache: %v", err)
	}
	defer cache.Close()

	host := netmodel.Host{Domain: "example.com", CountryCode: "US", ASN: "AS15133"}
	if err := cache.Store("93.184.216.34", "example.com.", host); err != nil {
		t.Fatalf("failed to store resolution: %v", err)
	}

	rdns, got, found, err := cache.Lookup("93.184.216.34")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if !found {
		t.Fatal("expected cached entry to be found")
	}
	if rdns != "example.com." || got != host {
		t.Fatalf("unexpected cached entry: rdns=%q host=%+v", rdns, got)
	}
}

func TestCacheLookupMiss(t *testing.T) {
	dbPath := "test_resolvercache_miss.db"
	defer os.Remove(dbPath)

	cache, err := Open(dbPath)
	if err != nil {
		t.Fatalf("failed to open cache: %v", err)
	}
	defer cache.Close()

	_, _, found, err := cache.Lookup("10.0.0.1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Fatal("expected no entry for an address never stored")
	}
}

func TestCacheStoreUpdatesExisting(t *testing.T) {
	dbPath := "test_resolvercache_update.db"
	defer os.Remove(dbPath)

	cache, err := Open(dbPath)
	if err != nil {
		t.Fatalf("failed to open cache: %v", err)
	}
	defer cache.Close()

	first := netmodel.Host{Domain: "old.example.com", CountryCode: "US", ASN: "AS1"}
	cache.Store("1.2.3.4", "old.example.com.", first)

	second := netmodel.Host{Domain: "new.example.com", CountryCode: "DE", ASN: "AS2"}
	if err := cache.Store("1.2.3.4", "new.example.com.", second); err != nil {
		t.Fatalf("failed to update resolution: %v", err)
	}

	_, got, found, err := cache.Lookup("1.2.3.4")
	if err != nil || !found {
		t.Fatalf("expected updated entry to be found, err=%v", err)
	}
	if got != second {
		t.Fatalf("expected updated host, got %+v", got)
	}
}
