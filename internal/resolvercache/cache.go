/**
 * Persisted Resolution Cache.
 *
 * A small SQLite-backed cache of previously resolved addresses,
 * adapted from the teacher's storage.SQLiteStorage (same
 * sql.Open/Ping/Migrate sequence and ON CONFLICT upsert pattern), cut
 * down to the one table this core needs. This is not the
 * flow/packet-history persistence the capture/classification core
 * rules out: it holds only the outcome of C6 (rDNS + geo/ASN per
 * address), so a restart doesn't repeat a slow lookup for an address
 * already seen in a prior run.
 *
 * Author: KleaSCM
 * Email: KleaSCM@gmail.com
 */

package resolvercache

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/quietwire/netcore/internal/netmodel"
)

// Cache wraps a SQLite-backed table of previously resolved hosts.
type Cache struct {
	db *sql.DB
}

// Open creates or opens the cache database at path and applies its
// schema.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("resolvercache: failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("resolvercache: failed to ping database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("resolvercache: failed to apply schema: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close releases the underlying database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Lookup returns a previously cached resolution for addr, if any.
func (c *Cache) Lookup(addr string) (rawRDNS string, host netmodel.Host, found bool, err error) {
	row := c.db.QueryRow(
		`SELECT raw_rdns, domain, country_code, asn FROM resolved_addresses WHERE addr = ?`,
		addr,
	)
	err = row.Scan(&rawRDNS, &host.Domain, &host.CountryCode, &host.ASN)
	if err == sql.ErrNoRows {
		return "", netmodel.Host{}, false, nil
	}
	if err != nil {
		return "", netmodel.Host{}, false, fmt.Errorf("resolvercache: lookup failed: %w", err)
	}
	return rawRDNS, host, true, nil
}

// Store upserts a resolution for addr.
func (c *Cache) Store(addr, rawRDNS string, host netmodel.Host) error {
	_, err := c.db.Exec(`
		INSERT INTO resolved_addresses (addr, raw_rdns, domain, country_code, asn, resolved_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(addr) DO UPDATE SET
			raw_rdns = excluded.raw_rdns,
			domain = excluded.domain,
			country_code = excluded.country_code,
			asn = excluded.asn,
			resolved_at = excluded.resolved_at;
	`, addr, rawRDNS, host.Domain, host.CountryCode, host.ASN, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("resolvercache: store failed: %w", err)
	}
	return nil
}
