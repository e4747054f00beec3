package respond

import (
	"time"

	"art-critique-service/common"
	model "art-critique-service/models"
	"art-critique-service/service/critique_service"
	"art-critique-service/service/gallery_service"
)

// ArtworkResponse artwork response structure. Monetary fields carry both the
// canister integer (smallest units) and the display-unit string.
type ArtworkResponse struct {
	ArtworkID   string   `json:"artwork_id" example:"art_9f2c1a"`
	Author      string   `json:"author" example:"PJq2vX4kT..."`
	Title       string   `json:"title" example:"Night Harbor"`
	Description string   `json:"description" example:"Oil on canvas study"`
	AssetCID    string   `json:"asset_cid" example:"QmYwAPJzv5CZsnA..."`
	AssetURL    string   `json:"asset_url" example:"https://gateway.pinning.example.io/ipfs/QmYwAPJzv5CZsnA..."`
	Tags        []string `json:"tags"`
	License     string   `json:"license" example:"CC-BY-4.0"`
	MediaKind   string   `json:"media_kind" example:"image"`
	MimeType    string   `json:"mime_type" example:"image/png"`
	TextExcerpt string   `json:"text_excerpt,omitempty"`

	Bounty        int64  `json:"bounty_balance" example:"250000000"`
	BountyDisplay string `json:"bounty_display" example:"2.5"`

	NftForSale   bool   `json:"nft_for_sale"`
	NftPrice     int64  `json:"nft_price" example:"100000000"`
	PriceDisplay string `json:"price_display" example:"1"`
	NftBuyer     string `json:"nft_buyer,omitempty"`
	Sold         bool   `json:"sold"`

	Timestamp int64 `json:"timestamp" example:"1699999999"`
}

// ToArtworkResponse convert artwork to response, assetURL pre-built by the caller
func ToArtworkResponse(artwork *model.Artwork, assetURL string) ArtworkResponse {
	return ArtworkResponse{
		ArtworkID:     artwork.ArtworkID,
		Author:        artwork.Author,
		Title:         artwork.Title,
		Description:   artwork.Description,
		AssetCID:      artwork.AssetCID,
		AssetURL:      assetURL,
		Tags:          artwork.Tags,
		License:       artwork.License,
		MediaKind:     artwork.MediaKind,
		MimeType:      artwork.MimeType,
		TextExcerpt:   artwork.TextExcerpt,
		Bounty:        artwork.BountyBalance,
		BountyDisplay: common.FormatDisplayAmount(artwork.BountyBalance),
		NftForSale:    artwork.NftForSale,
		NftPrice:      artwork.NftPrice,
		PriceDisplay:  common.FormatDisplayAmount(artwork.NftPrice),
		NftBuyer:      artwork.NftBuyer,
		Sold:          artwork.Sold(),
		Timestamp:     artwork.Timestamp,
	}
}

// CritiqueResponse critique response structure
type CritiqueResponse struct {
	CritiqueID string `json:"critique_id" example:"crit_4d11"`
	ArtworkID  string `json:"artwork_id" example:"art_9f2c1a"`
	Critic     string `json:"critic" example:"PMv81nQydR..."`
	Body       string `json:"body" example:"The light handling on the left edge is superb."`
	Upvotes    int64  `json:"upvotes" example:"12"`
	Rewarded   bool   `json:"rewarded"`
	Timestamp  int64  `json:"timestamp" example:"1699999999"`
}

// ToCritiqueResponse convert critique to response
func ToCritiqueResponse(critique *model.Critique) CritiqueResponse {
	return CritiqueResponse{
		CritiqueID: critique.CritiqueID,
		ArtworkID:  critique.ArtworkID,
		Critic:     critique.Critic,
		Body:       critique.Body,
		Upvotes:    critique.Upvotes,
		Rewarded:   critique.Rewarded,
		Timestamp:  critique.Timestamp,
	}
}

// ArtworkListResponse artwork list response structure
type ArtworkListResponse struct {
	Artworks   []ArtworkResponse `json:"artworks"`
	NextCursor int64             `json:"next_cursor" example:"20"`
	HasMore    bool              `json:"has_more"`
	FromCache  bool              `json:"from_cache"`
}

// ToArtworkListResponse convert a feed page to response
func ToArtworkListResponse(result *gallery_service.FeedResult, assetURL func(cid string) string) ArtworkListResponse {
	artworks := make([]ArtworkResponse, 0, len(result.Artworks))
	for _, artwork := range result.Artworks {
		artworks = append(artworks, ToArtworkResponse(artwork, assetURL(artwork.AssetCID)))
	}
	return ArtworkListResponse{
		Artworks:   artworks,
		NextCursor: result.NextCursor,
		HasMore:    result.NextCursor > 0 && !result.FromCache,
		FromCache:  result.FromCache,
	}
}

// ArtworkDetailResponse artwork detail response structure
type ArtworkDetailResponse struct {
	Artwork       ArtworkResponse    `json:"artwork"`
	Critiques     []CritiqueResponse `json:"critiques"`
	EscrowBalance int64              `json:"escrow_balance" example:"250000000"`
	EscrowDisplay string             `json:"escrow_display" example:"2.5"`
	Liked         bool               `json:"liked"`
}

// ToArtworkDetailResponse convert detail view data to response
func ToArtworkDetailResponse(detail *gallery_service.Detail) ArtworkDetailResponse {
	critiques := make([]CritiqueResponse, 0, len(detail.Critiques))
	for _, critique := range detail.Critiques {
		critiques = append(critiques, ToCritiqueResponse(critique))
	}
	return ArtworkDetailResponse{
		Artwork:       ToArtworkResponse(detail.Artwork, detail.AssetURL),
		Critiques:     critiques,
		EscrowBalance: detail.EscrowBalance,
		EscrowDisplay: common.FormatDisplayAmount(detail.EscrowBalance),
		Liked:         detail.Liked,
	}
}

// ProfileResponse profile response structure
type ProfileResponse struct {
	Principal     string    `json:"principal" example:"PJq2vX4kT..."`
	Name          string    `json:"name" example:"ada"`
	Bio           string    `json:"bio" example:"charcoal and pixels"`
	LikedArtworks []string  `json:"liked_artworks"`
	PurchasedNfts []string  `json:"purchased_nfts"`
	ArtworkCount  int64     `json:"artwork_count" example:"4"`
	CritiqueCount int64     `json:"critique_count" example:"17"`
	UpvoteCount   int64     `json:"upvote_count" example:"102"`
	Rank          int64     `json:"rank" example:"8"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ToProfileResponse convert profile to response
func ToProfileResponse(profile *model.Profile) ProfileResponse {
	return ProfileResponse{
		Principal:     profile.Principal,
		Name:          profile.Name,
		Bio:           profile.Bio,
		LikedArtworks: profile.LikedArtworks,
		PurchasedNfts: profile.PurchasedNfts,
		ArtworkCount:  profile.ArtworkCount,
		CritiqueCount: profile.CritiqueCount,
		UpvoteCount:   profile.UpvoteCount,
		Rank:          profile.Rank,
		CreatedAt:     profile.CreatedAt,
		UpdatedAt:     profile.UpdatedAt,
	}
}

// StudioResponse studio view response structure
type StudioResponse struct {
	Profile    ProfileResponse   `json:"profile"`
	Artworks   []ArtworkResponse `json:"artworks"`
	NextCursor int64             `json:"next_cursor" example:"20"`
}

// ToStudioResponse convert studio view data to response
func ToStudioResponse(view *gallery_service.StudioView, assetURL func(cid string) string) StudioResponse {
	artworks := make([]ArtworkResponse, 0, len(view.Artworks))
	for _, artwork := range view.Artworks {
		artworks = append(artworks, ToArtworkResponse(artwork, assetURL(artwork.AssetCID)))
	}
	return StudioResponse{
		Profile:    ToProfileResponse(view.Profile),
		Artworks:   artworks,
		NextCursor: view.NextCursor,
	}
}

// RewardResponse reward outcome response structure
type RewardResponse struct {
	Path          string           `json:"path" example:"escrow"`
	Amount        int64            `json:"amount" example:"250000000"`
	AmountDisplay string           `json:"amount_display" example:"2.5"`
	Critique      CritiqueResponse `json:"critique"`
	EscrowBalance int64            `json:"escrow_balance" example:"0"`
	EscrowDisplay string           `json:"escrow_display" example:"0"`
}

// ToRewardResponse convert reward outcome to response
func ToRewardResponse(outcome *critique_service.RewardOutcome) RewardResponse {
	return RewardResponse{
		Path:          outcome.Path,
		Amount:        outcome.Amount,
		AmountDisplay: common.FormatDisplayAmount(outcome.Amount),
		Critique:      ToCritiqueResponse(outcome.Critique),
		EscrowBalance: outcome.EscrowBalance,
		EscrowDisplay: common.FormatDisplayAmount(outcome.EscrowBalance),
	}
}

// PurchaseResponse purchase outcome response structure
type PurchaseResponse struct {
	Artwork         ArtworkResponse `json:"artwork"`
	Price           int64           `json:"price" example:"100000000"`
	PriceDisplay    string          `json:"price_display" example:"1"`
	ProfileRecorded bool            `json:"profile_recorded"`
}

// ToPurchaseResponse convert purchase outcome to response
func ToPurchaseResponse(outcome *critique_service.PurchaseOutcome, assetURL string) PurchaseResponse {
	return PurchaseResponse{
		Artwork:         ToArtworkResponse(outcome.Artwork, assetURL),
		Price:           outcome.Price,
		PriceDisplay:    common.FormatDisplayAmount(outcome.Price),
		ProfileRecorded: outcome.ProfileRecorded,
	}
}

// SessionResponse session response structure
type SessionResponse struct {
	Token     string    `json:"token" example:"0b4f9c58-..."`
	Principal string    `json:"principal" example:"PJq2vX4kT..."`
	Connected bool      `json:"connected"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ToSessionResponse convert session to response
func ToSessionResponse(session *model.Session) SessionResponse {
	return SessionResponse{
		Token:     session.Token,
		Principal: session.Principal,
		Connected: session.Connected,
		ExpiresAt: session.ExpiresAt,
	}
}

// ChallengeResponse connect challenge response structure
type ChallengeResponse struct {
	Nonce     string    `json:"nonce" example:"7c7f4ac2-..."`
	ExpiresAt time.Time `json:"expires_at"`
}
