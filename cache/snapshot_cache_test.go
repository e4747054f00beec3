package cache

import (
	"testing"
	"time"

	model "art-critique-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *SnapshotCache {
	t.Helper()
	c, err := NewSnapshotCache(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestEmptyCacheReturnsNoSnapshot(t *testing.T) {
	c := newTestCache(t)

	_, _, err := c.Gallery()
	assert.ErrorIs(t, err, ErrNoSnapshot)

	_, _, err = c.Market()
	assert.ErrorIs(t, err, ErrNoSnapshot)
}

func TestGallerySnapshotRoundTrip(t *testing.T) {
	c := newTestCache(t)

	artworks := []*model.Artwork{
		{ArtworkID: "art-1", Author: "alice", Title: "Dawn", BountyBalance: 250_000_000},
		{ArtworkID: "art-2", Author: "bob", Title: "Dusk", Tags: []string{"oil", "night"}},
	}
	require.NoError(t, c.ReplaceGallery(artworks))

	got, fetchedAt, err := c.Gallery()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "art-1", got[0].ArtworkID)
	assert.Equal(t, int64(250_000_000), got[0].BountyBalance)
	assert.Equal(t, []string{"oil", "night"}, got[1].Tags)
	assert.WithinDuration(t, time.Now(), fetchedAt, 5*time.Second)
}

func TestReplaceIsWholesale(t *testing.T) {
	c := newTestCache(t)

	require.NoError(t, c.ReplaceGallery([]*model.Artwork{
		{ArtworkID: "art-1"},
		{ArtworkID: "art-2"},
	}))

	// A later fetch with fewer rows fully replaces the earlier snapshot
	require.NoError(t, c.ReplaceGallery([]*model.Artwork{
		{ArtworkID: "art-3"},
	}))

	got, _, err := c.Gallery()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "art-3", got[0].ArtworkID)
}

func TestCollectionsAreIndependent(t *testing.T) {
	c := newTestCache(t)

	require.NoError(t, c.ReplaceGallery([]*model.Artwork{{ArtworkID: "art-1"}}))

	// Market collection untouched by gallery writes
	_, _, err := c.Market()
	assert.ErrorIs(t, err, ErrNoSnapshot)

	require.NoError(t, c.ReplaceMarket([]*model.Artwork{{ArtworkID: "art-9", NftForSale: true}}))

	market, _, err := c.Market()
	require.NoError(t, err)
	require.Len(t, market, 1)
	assert.True(t, market[0].NftForSale)

	gallery, _, err := c.Gallery()
	require.NoError(t, err)
	require.Len(t, gallery, 1)
	assert.Equal(t, "art-1", gallery[0].ArtworkID)
}

func TestEmptySnapshotIsValid(t *testing.T) {
	c := newTestCache(t)

	require.NoError(t, c.ReplaceMarket([]*model.Artwork{}))

	got, _, err := c.Market()
	require.NoError(t, err)
	assert.Empty(t, got)
}
