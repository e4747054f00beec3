package dao

import (
	"art-critique-service/database"
	model "art-critique-service/models"
)

// ProfileDAO profile store DAO
type ProfileDAO struct {
	db database.Database
}

// NewProfileDAO create profile DAO instance
func NewProfileDAO() *ProfileDAO {
	return &ProfileDAO{
		db: database.DB,
	}
}

// NewProfileDAOWithDB create profile DAO with an explicit database (tests)
func NewProfileDAOWithDB(db database.Database) *ProfileDAO {
	return &ProfileDAO{db: db}
}

// Get get profile by principal, lazily creating it on first read
func (d *ProfileDAO) Get(principal string) (*model.Profile, error) {
	if d.db == nil {
		return nil, database.ErrDatabaseNotInitialized
	}
	return d.db.GetOrCreateProfile(principal)
}

// Upsert create or update profile
func (d *ProfileDAO) Upsert(profile *model.Profile) error {
	if d.db == nil {
		return database.ErrDatabaseNotInitialized
	}
	return d.db.UpsertProfile(profile)
}

// AddLike add an artwork id to the liked list
func (d *ProfileDAO) AddLike(principal, artworkID string) error {
	if d.db == nil {
		return database.ErrDatabaseNotInitialized
	}
	return d.db.AddLikedArtwork(principal, artworkID)
}

// RemoveLike remove an artwork id from the liked list
func (d *ProfileDAO) RemoveLike(principal, artworkID string) error {
	if d.db == nil {
		return database.ErrDatabaseNotInitialized
	}
	return d.db.RemoveLikedArtwork(principal, artworkID)
}

// AddPurchase add an NFT id to the purchased list
func (d *ProfileDAO) AddPurchase(principal, nftID string) error {
	if d.db == nil {
		return database.ErrDatabaseNotInitialized
	}
	return d.db.AddPurchasedNft(principal, nftID)
}
