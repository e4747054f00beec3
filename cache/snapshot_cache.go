package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	model "art-critique-service/models"

	"github.com/cockroachdb/pebble"
)

// SnapshotCache pebble-backed cache of canister list results. Snapshots are
// replaced wholesale on every successful re-fetch (last-fetch-wins, no merge)
// and read back when the canister is unreachable, so gallery views degrade
// instead of erroring.
type SnapshotCache struct {
	collections map[string]*pebble.DB
}

// ErrNoSnapshot no snapshot has been written yet
var ErrNoSnapshot = errors.New("no cached snapshot")

// Collection names and their key-value formats
const (
	collectionGallery = "gallery_feed"    // key: snapshot, value: JSON([]Artwork)
	collectionMarket  = "market_listings" // key: snapshot, value: JSON([]Artwork)
)

const (
	keySnapshot  = "snapshot"
	keyFetchedAt = "fetched_at" // value: RFC3339
)

// NewSnapshotCache open the cache under dataDir, one pebble store per collection
func NewSnapshotCache(dataDir string) (*SnapshotCache, error) {
	if err := os.MkdirAll(dataDir, 0777); err != nil {
		return nil, fmt.Errorf("failed to create cache directory %s: %w", dataDir, err)
	}

	collectionNames := []string{
		collectionGallery,
		collectionMarket,
	}

	collections := make(map[string]*pebble.DB)
	for _, name := range collectionNames {
		collectionPath := filepath.Join(dataDir, "snapshot_db", name)

		db, err := pebble.Open(collectionPath, &pebble.Options{})
		if err != nil {
			for _, openedDB := range collections {
				openedDB.Close()
			}
			return nil, fmt.Errorf("failed to open cache collection %s: %w", name, err)
		}
		collections[name] = db
	}

	log.Printf("Snapshot cache ready: %s", dataDir)

	return &SnapshotCache{collections: collections}, nil
}

// ReplaceGallery replace the gallery feed snapshot
func (c *SnapshotCache) ReplaceGallery(artworks []*model.Artwork) error {
	return c.replace(collectionGallery, artworks)
}

// Gallery read the gallery feed snapshot
func (c *SnapshotCache) Gallery() ([]*model.Artwork, time.Time, error) {
	return c.read(collectionGallery)
}

// ReplaceMarket replace the marketplace listings snapshot
func (c *SnapshotCache) ReplaceMarket(artworks []*model.Artwork) error {
	return c.replace(collectionMarket, artworks)
}

// Market read the marketplace listings snapshot
func (c *SnapshotCache) Market() ([]*model.Artwork, time.Time, error) {
	return c.read(collectionMarket)
}

func (c *SnapshotCache) replace(collection string, artworks []*model.Artwork) error {
	db, ok := c.collections[collection]
	if !ok {
		return fmt.Errorf("unknown cache collection: %s", collection)
	}

	value, err := json.Marshal(artworks)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	batch := db.NewBatch()
	defer batch.Close()

	if err := batch.Set([]byte(keySnapshot), value, nil); err != nil {
		return err
	}
	if err := batch.Set([]byte(keyFetchedAt), []byte(time.Now().Format(time.RFC3339)), nil); err != nil {
		return err
	}

	return db.Apply(batch, pebble.Sync)
}

func (c *SnapshotCache) read(collection string) ([]*model.Artwork, time.Time, error) {
	db, ok := c.collections[collection]
	if !ok {
		return nil, time.Time{}, fmt.Errorf("unknown cache collection: %s", collection)
	}

	value, closer, err := db.Get([]byte(keySnapshot))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, time.Time{}, ErrNoSnapshot
		}
		return nil, time.Time{}, err
	}
	artworks := make([]*model.Artwork, 0)
	unmarshalErr := json.Unmarshal(value, &artworks)
	closer.Close()
	if unmarshalErr != nil {
		return nil, time.Time{}, fmt.Errorf("failed to unmarshal snapshot: %w", unmarshalErr)
	}

	fetchedAt := time.Time{}
	if tsValue, tsCloser, err := db.Get([]byte(keyFetchedAt)); err == nil {
		if ts, parseErr := time.Parse(time.RFC3339, string(tsValue)); parseErr == nil {
			fetchedAt = ts
		}
		tsCloser.Close()
	}

	return artworks, fetchedAt, nil
}

// Close close all collections
func (c *SnapshotCache) Close() error {
	var firstErr error
	for name, db := range c.collections {
		if err := db.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to close cache collection %s: %w", name, err)
		}
	}
	return firstErr
}
