// Package snapshot mirrors every item of every collection into a plain
// Postgres table (raw GeoJSON text, no spatial column types), reusing the connection-pool/prepared-statement/batched-transaction
// shape the teacher used for bulk point loading, now driven by the
// collection store instead of random city data.
package snapshot

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/kass/spatio/internal/geom"
	"github.com/kass/spatio/internal/store"
)

const batchSize = 10000

// Export opens dsn, ensures the geo_items table exists, and bulk-inserts
// every item from every collection in the store. It returns the total
// number of rows written.
func Export(s *store.Store, dsn string) (int, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return 0, fmt.Errorf("connect: %w", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := initSchema(db); err != nil {
		return 0, fmt.Errorf("init schema: %w", err)
	}

	total := 0
	for _, collection := range s.CollectionNames() {
		n, err := exportCollection(db, s, collection)
		if err != nil {
			return total, fmt.Errorf("collection %q: %w", collection, err)
		}
		total += n
	}
	return total, nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS geo_items (
			collection TEXT NOT NULL,
			id TEXT NOT NULL,
			geojson TEXT NOT NULL,
			PRIMARY KEY (collection, id)
		)
	`)
	return err
}

// exportCollection mirrors every item of collection in batched
// transactions, truncating any prior snapshot of the same collection first
// so SNAPSHOT is idempotent per collection.
func exportCollection(db *sql.DB, s *store.Store, collection string) (int, error) {
	if _, err := db.Exec(`DELETE FROM geo_items WHERE collection = $1`, collection); err != nil {
		return 0, err
	}

	ids := collectionItemIDs(s, collection)
	total := 0
	for start := 0; start < len(ids); start += batchSize {
		end := start + batchSize
		if end > len(ids) {
			end = len(ids)
		}
		n, err := exportBatch(db, s, collection, ids[start:end])
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

func exportBatch(db *sql.DB, s *store.Store, collection string, ids []string) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO geo_items (collection, id, geojson) VALUES ($1, $2, $3)
		ON CONFLICT (collection, id) DO UPDATE SET geojson = EXCLUDED.geojson`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	n := 0
	for _, id := range ids {
		item, ok := s.Get(collection, id)
		if !ok {
			continue
		}
		if _, err := stmt.Exec(collection, id, item.GeoJSON); err != nil {
			return n, err
		}
		n++
	}

	if err := tx.Commit(); err != nil {
		return n, err
	}
	return n, nil
}

// collectionItemIDs enumerates every id currently in collection via a
// whole-plane intersection query — the store has no dedicated id-listing
// call, and a snapshot export is already an O(n) full scan.
func collectionItemIDs(s *store.Store, collection string) []string {
	wholePlane, err := wholePlaneGeometry()
	if err != nil {
		return nil
	}
	items, err := s.Intersects(collection, wholePlane, 0)
	if err != nil {
		return nil
	}
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}

func wholePlaneGeometry() (geom.Geometry, error) {
	return geom.ParseGeoJSON(`{"type":"Polygon","coordinates":[[[-180,-90],[180,-90],[180,90],[-180,90],[-180,-90]]]}`)
}
