/**
 * Resolution Cache Schema.
 *
 * Adapted from the teacher's storage.Schema DDL-as-a-constant style,
 * reduced to the single table this cache needs: a resolved-address
 * cache, not the full devices/flows/wifi schema that backed the
 * teacher's historical UI views.
 *
 * Author: KleaSCM
 * Email: KleaSCM@gmail.com
 */

package resolvercache

const schema = `
CREATE TABLE IF NOT EXISTS resolved_addresses (
    addr TEXT PRIMARY KEY,
    raw_rdns TEXT NOT NULL,
    domain TEXT NOT NULL,
    country_code TEXT NOT NULL,
    asn TEXT NOT NULL,
    resolved_at TIMESTAMP NOT NULL
);
`
