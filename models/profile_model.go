package models

import "time"

// Profile user profile row in the remote profile store, keyed by the
// wallet-derived principal. Liked/purchased lists are stored as JSON arrays
// but kept with set semantics by the store adapter.
type Profile struct {
	Principal string `gorm:"primaryKey;size:64" json:"principal"`

	Name string `gorm:"size:128" json:"name"`
	Bio  string `gorm:"size:2048" json:"bio"`

	LikedArtworks []string `gorm:"serializer:json" json:"liked_artworks"`
	PurchasedNfts []string `gorm:"serializer:json" json:"purchased_nfts"`

	// Aggregate counts
	ArtworkCount  int64 `json:"artwork_count"`
	CritiqueCount int64 `json:"critique_count"`
	UpvoteCount   int64 `json:"upvote_count"`
	Rank          int64 `json:"rank"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName gorm table name
func (Profile) TableName() string {
	return "profiles"
}

// HasLiked report whether the artwork id is in the liked list
func (p *Profile) HasLiked(artworkID string) bool {
	for _, id := range p.LikedArtworks {
		if id == artworkID {
			return true
		}
	}
	return false
}

// HasPurchased report whether the NFT id is in the purchased list
func (p *Profile) HasPurchased(nftID string) bool {
	for _, id := range p.PurchasedNfts {
		if id == nftID {
			return true
		}
	}
	return false
}
