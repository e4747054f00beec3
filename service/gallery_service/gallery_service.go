package gallery_service

import (
	"errors"
	"fmt"
	"io"
	"log"

	"art-critique-service/cache"
	"art-critique-service/canister"
	"art-critique-service/common"
	"art-critique-service/database"
	model "art-critique-service/models"
	"art-critique-service/models/dao"
	"art-critique-service/pinning"
)

// GalleryService read-side view assembly: feed, detail, studio, marketplace.
// List reads refresh the snapshot cache wholesale; when the canister is
// unreachable the last snapshot is served instead so gallery views degrade
// rather than error.
type GalleryService struct {
	store      canister.Store
	cache      *cache.SnapshotCache
	pin        *pinning.Client
	profileDAO *dao.ProfileDAO
}

// NewGalleryService create gallery service instance
func NewGalleryService(store canister.Store, snapshots *cache.SnapshotCache, pin *pinning.Client, profileDAO *dao.ProfileDAO) *GalleryService {
	return &GalleryService{
		store:      store,
		cache:      snapshots,
		pin:        pin,
		profileDAO: profileDAO,
	}
}

// FeedResult gallery feed page
type FeedResult struct {
	Artworks   []*model.Artwork
	NextCursor int64
	FromCache  bool // served from the snapshot cache because the canister was unreachable
}

// Feed list artworks for the gallery feed, newest first
func (s *GalleryService) Feed(cursor, size int64) (*FeedResult, error) {
	artworks, nextCursor, err := s.store.ListArtworks(cursor, size)
	if err != nil {
		// Only the first page has a cached counterpart
		if cursor == 0 && s.cache != nil {
			if cached, _, cacheErr := s.cache.Gallery(); cacheErr == nil {
				log.Printf("[gallery] canister unreachable, serving cached feed: %v", err)
				return &FeedResult{Artworks: cached, NextCursor: 0, FromCache: true}, nil
			}
		}
		return nil, err
	}

	if cursor == 0 && s.cache != nil {
		if cacheErr := s.cache.ReplaceGallery(artworks); cacheErr != nil {
			log.Printf("[gallery] failed to refresh feed snapshot: %v", cacheErr)
		}
	}

	return &FeedResult{Artworks: artworks, NextCursor: nextCursor}, nil
}

// Market list artworks currently for sale
func (s *GalleryService) Market(cursor, size int64) (*FeedResult, error) {
	artworks, nextCursor, err := s.store.ListArtworks(cursor, size)
	if err != nil {
		if cursor == 0 && s.cache != nil {
			if cached, _, cacheErr := s.cache.Market(); cacheErr == nil {
				log.Printf("[gallery] canister unreachable, serving cached market: %v", err)
				return &FeedResult{Artworks: cached, NextCursor: 0, FromCache: true}, nil
			}
		}
		return nil, err
	}

	listings := make([]*model.Artwork, 0, len(artworks))
	for _, artwork := range artworks {
		if artwork.NftForSale && !artwork.Sold() {
			listings = append(listings, artwork)
		}
	}

	if cursor == 0 && s.cache != nil {
		if cacheErr := s.cache.ReplaceMarket(listings); cacheErr != nil {
			log.Printf("[gallery] failed to refresh market snapshot: %v", cacheErr)
		}
	}

	return &FeedResult{Artworks: listings, NextCursor: nextCursor}, nil
}

// Detail artwork detail view data
type Detail struct {
	Artwork       *model.Artwork
	Critiques     []*model.Critique
	EscrowBalance int64
	AssetURL      string
	Liked         bool // viewer-specific, false for anonymous reads
}

// ArtworkDetail assemble the artwork detail view: artwork, critiques, escrow
// balance, and the viewer's liked flag when a viewer principal is given
func (s *GalleryService) ArtworkDetail(artworkID, viewer string) (*Detail, error) {
	artwork, err := s.store.GetArtwork(artworkID)
	if err != nil {
		return nil, err
	}

	critiques, err := s.store.GetCritiques(artworkID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch critiques: %w", err)
	}

	balance, err := s.store.GetBountyBalance(artworkID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch escrow balance: %w", err)
	}

	detail := &Detail{
		Artwork:       artwork,
		Critiques:     critiques,
		EscrowBalance: balance,
		AssetURL:      s.pin.GatewayURL(artwork.AssetCID),
	}

	if viewer != "" {
		profile, err := s.profileDAO.Get(viewer)
		if err == nil {
			detail.Liked = profile.HasLiked(artworkID)
		}
	}

	return detail, nil
}

// StudioView studio/profile area view data
type StudioView struct {
	Profile    *model.Profile
	Artworks   []*model.Artwork
	NextCursor int64
}

// Studio assemble the studio view: the identity's profile row (lazily created
// on first read) plus their own artworks
func (s *GalleryService) Studio(principal string, cursor, size int64) (*StudioView, error) {
	profile, err := s.profileDAO.Get(principal)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}

	artworks, nextCursor, err := s.store.ListArtworksByOwner(principal, cursor, size)
	if err != nil {
		return nil, err
	}

	return &StudioView{
		Profile:    profile,
		Artworks:   artworks,
		NextCursor: nextCursor,
	}, nil
}

// UploadRequest inputs for the artwork upload flow
type UploadRequest struct {
	Title         string
	Description   string
	Contact       string
	Tags          []string
	License       string
	MediaKind     string
	MimeType      string
	TextExcerpt   string
	BountyDisplay string // optional escrow pre-fund, display units
	ForSale       bool
	PriceDisplay  string // required when ForSale

	FileName string
	File     io.Reader
}

// UploadResult result of a completed upload
type UploadResult struct {
	ArtworkID string `json:"artwork_id"`
	AssetCID  string `json:"asset_cid"`
	AssetURL  string `json:"asset_url"`
}

// Upload pin the asset, then create the artwork record. A failed create does
// not unpin the asset; the pin is content-addressed and harmless to keep.
func (s *GalleryService) Upload(session *model.Session, req UploadRequest) (*UploadResult, error) {
	if session == nil || !session.Connected {
		return nil, errors.New("wallet session not connected")
	}
	if req.Title == "" {
		return nil, errors.New("title is required")
	}
	if req.File == nil {
		return nil, errors.New("file is required")
	}

	var (
		bounty int64
		price  int64
		err    error
	)
	if req.BountyDisplay != "" {
		bounty, err = common.ParseDisplayAmount(req.BountyDisplay)
		if err != nil {
			return nil, fmt.Errorf("bounty: %w", err)
		}
	}
	if req.ForSale {
		price, err = common.ParseDisplayAmount(req.PriceDisplay)
		if err != nil {
			return nil, fmt.Errorf("price: %w", err)
		}
	}

	cid, err := s.pin.PinFile(req.FileName, req.File, map[string]string{
		"title":  req.Title,
		"author": session.Principal,
	})
	if err != nil {
		return nil, err
	}

	artworkID, err := s.store.CreateArtwork(canister.CreateArtworkParams{
		Title:       req.Title,
		Description: req.Description,
		AssetCID:    cid,
		Author:      session.Principal,
		Contact:     req.Contact,
		Tags:        req.Tags,
		Bounty:      bounty,
		License:     req.License,
		MediaKind:   req.MediaKind,
		MimeType:    req.MimeType,
		TextExcerpt: req.TextExcerpt,
		NftForSale:  req.ForSale,
		NftPrice:    price,
	})
	if err != nil {
		return nil, err
	}

	return &UploadResult{
		ArtworkID: artworkID,
		AssetCID:  cid,
		AssetURL:  s.pin.GatewayURL(cid),
	}, nil
}

// UpdateProfile upsert the identity's own profile row
func (s *GalleryService) UpdateProfile(session *model.Session, name, bio string) (*model.Profile, error) {
	if session == nil || !session.Connected {
		return nil, errors.New("wallet session not connected")
	}

	profile, err := s.profileDAO.Get(session.Principal)
	if err != nil {
		if !errors.Is(err, database.ErrNotFound) {
			return nil, fmt.Errorf("failed to fetch profile: %w", err)
		}
		profile = &model.Profile{Principal: session.Principal}
	}

	profile.Name = name
	profile.Bio = bio
	if err := s.profileDAO.Upsert(profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return s.profileDAO.Get(session.Principal)
}
