package canister

import (
	model "art-critique-service/models"

	"github.com/tidwall/gjson"
)

// CreateArtworkParams parameters for the createartwork call
type CreateArtworkParams struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	AssetCID    string   `json:"asset_cid"`
	Author      string   `json:"author"`
	Contact     string   `json:"contact"`
	Tags        []string `json:"tags"`
	Bounty      int64    `json:"bounty"` // smallest units
	License     string   `json:"license"`
	MediaKind   string   `json:"media_kind"`
	MimeType    string   `json:"mime_type"`
	TextExcerpt string   `json:"text_excerpt,omitempty"`
	NftForSale  bool     `json:"nft_for_sale"`
	NftPrice    int64    `json:"nft_price"` // smallest units
}

// NewArtwork build an artwork model from an RPC result object
func NewArtwork(result gjson.Result) *model.Artwork {
	art := &model.Artwork{
		ArtworkID:     result.Get("artwork_id").String(),
		Author:        result.Get("author").String(),
		Contact:       result.Get("contact").String(),
		Title:         result.Get("title").String(),
		Description:   result.Get("description").String(),
		AssetCID:      result.Get("asset_cid").String(),
		License:       result.Get("license").String(),
		MediaKind:     result.Get("media_kind").String(),
		MimeType:      result.Get("mime_type").String(),
		TextExcerpt:   result.Get("text_excerpt").String(),
		BountyBalance: result.Get("bounty_balance").Int(),
		NftForSale:    result.Get("nft_for_sale").Bool(),
		NftPrice:      result.Get("nft_price").Int(),
		NftBuyer:      result.Get("nft_buyer").String(),
		Timestamp:     result.Get("timestamp").Int(),
	}

	tags := make([]string, 0)
	for _, tag := range result.Get("tags").Array() {
		tags = append(tags, tag.String())
	}
	art.Tags = tags

	return art
}

// NewCritique build a critique model from an RPC result object
func NewCritique(result gjson.Result) *model.Critique {
	return &model.Critique{
		CritiqueID: result.Get("critique_id").String(),
		ArtworkID:  result.Get("artwork_id").String(),
		Critic:     result.Get("critic").String(),
		Body:       result.Get("body").String(),
		Upvotes:    result.Get("upvotes").Int(),
		Rewarded:   result.Get("rewarded").Bool(),
		Timestamp:  result.Get("timestamp").Int(),
	}
}
