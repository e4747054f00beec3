package database

import (
	model "art-critique-service/models"
)

// Database interface for the remote profile store.
// Liked/purchased list mutations are atomic remote procedures: each runs in a
// single transaction and is idempotent, so the JSON-array columns keep set
// semantics.
type Database interface {
	// Profile operations
	GetProfile(principal string) (*model.Profile, error)
	GetOrCreateProfile(principal string) (*model.Profile, error)
	UpsertProfile(profile *model.Profile) error

	// Liked-artwork list operations
	AddLikedArtwork(principal, artworkID string) error
	RemoveLikedArtwork(principal, artworkID string) error

	// Purchased-NFT list operations
	AddPurchasedNft(principal, nftID string) error

	// General operations
	Close() error
}

// DBType database type
type DBType string

const (
	DBTypeMySQL  DBType = "mysql"
	DBTypeSQLite DBType = "sqlite"
)

// Global database instance
var DB Database

// currentDBType stores the current database type
var currentDBType DBType

// InitDatabase initialize database with specified type
func InitDatabase(dbType DBType, config interface{}) error {
	var err error

	switch dbType {
	case DBTypeMySQL, DBTypeSQLite:
		DB, err = NewGormDatabase(dbType, config)
		currentDBType = dbType
	default:
		return ErrUnsupportedDBType
	}

	return err
}
