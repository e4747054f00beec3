package models

// Artwork artwork record held by the remote artwork canister.
// The gateway only ever holds cached copies; the canister is authoritative.
type Artwork struct {
	// Identity
	ArtworkID string `json:"artwork_id"` // Canister-assigned identifier
	Author    string `json:"author"`     // Author principal
	Contact   string `json:"contact"`    // Author contact string

	// Content
	Title       string   `json:"title"`        // Artwork title
	Description string   `json:"description"`  // Artwork description
	AssetCID    string   `json:"asset_cid"`    // Content identifier of the pinned asset
	Tags        []string `json:"tags"`         // Tag list
	License     string   `json:"license"`      // License string
	MediaKind   string   `json:"media_kind"`   // Media kind: image/audio/video/text
	MimeType    string   `json:"mime_type"`    // Asset MIME type
	TextExcerpt string   `json:"text_excerpt"` // Optional excerpt for text works

	// Bounty escrow (smallest token units)
	BountyBalance int64 `json:"bounty_balance"`

	// NFT sale state (smallest token units; buyer empty until sold)
	NftForSale bool   `json:"nft_for_sale"`
	NftPrice   int64  `json:"nft_price"`
	NftBuyer   string `json:"nft_buyer"`

	// Timestamps (unix seconds, canister clock)
	Timestamp int64 `json:"timestamp"`
}

// Sold report whether the NFT ownership field has been set
func (a *Artwork) Sold() bool {
	return a.NftBuyer != ""
}

// Critique critique record held by the remote artwork canister
type Critique struct {
	CritiqueID string `json:"critique_id"` // Canister-assigned identifier
	ArtworkID  string `json:"artwork_id"`  // Parent artwork identifier
	Critic     string `json:"critic"`      // Critic principal
	Body       string `json:"body"`        // Critique text
	Upvotes    int64  `json:"upvotes"`     // Upvote count
	Rewarded   bool   `json:"rewarded"`    // Flipped exactly once, canister-enforced
	Timestamp  int64  `json:"timestamp"`   // Unix seconds
}
