package critique_service

import (
	"fmt"

	"art-critique-service/canister"
	model "art-critique-service/models"
	"art-critique-service/models/dao"
	"art-critique-service/wallet"
)

// PurchaseService drives the NFT purchase workflow. The primary ownership
// write is strict; the profile-list write that follows is best-effort and can
// never fail the purchase or roll the primary back.
type PurchaseService struct {
	store      canister.Store
	profileDAO *dao.ProfileDAO
	approvals  *wallet.ApprovalRegistry
	inflight   *inflightGuard
}

// NewPurchaseService create purchase service instance
func NewPurchaseService(store canister.Store, profileDAO *dao.ProfileDAO, approvals *wallet.ApprovalRegistry) *PurchaseService {
	return &PurchaseService{
		store:      store,
		profileDAO: profileDAO,
		approvals:  approvals,
		inflight:   newInflightGuard(),
	}
}

// PurchaseRequest inputs for one purchase operation
type PurchaseRequest struct {
	ArtworkID string
	Session   *model.Session

	// Wallet payment approval over the sale price to the author
	ApprovalNonce     string
	ApprovalSignature string
}

// PurchaseOutcome result of a completed purchase
type PurchaseOutcome struct {
	Artwork         *model.Artwork `json:"artwork"` // re-fetched, buyer field authoritative
	Price           int64          `json:"price"`
	ProfileRecorded bool           `json:"profile_recorded"` // false when the best-effort write failed
}

// Purchase run the purchase workflow as a sequential pipeline:
// validate payment (fatal) -> set NFT buyer (fatal, primary) -> record in the
// buyer's purchased list (best-effort, secondary).
func (s *PurchaseService) Purchase(req PurchaseRequest) (*PurchaseOutcome, error) {
	target := "purchase:" + req.ArtworkID
	if !s.inflight.begin(target) {
		return nil, ErrOperationInFlight
	}
	defer s.inflight.end(target)

	// validating
	if req.Session == nil || !req.Session.Connected {
		return nil, ErrNotConnected
	}

	artwork, err := s.store.GetArtwork(req.ArtworkID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch artwork: %w", err)
	}

	// Advisory guards; the canister enforces the buyer field authoritatively
	if !artwork.NftForSale {
		return nil, ErrNotForSale
	}
	if artwork.Sold() {
		return nil, ErrAlreadySold
	}
	if artwork.Author == req.Session.Principal {
		return nil, ErrOwnArtwork
	}

	buyer := req.Session.Principal
	outcome := &PurchaseOutcome{Price: artwork.NftPrice, ProfileRecorded: true}

	// awaiting-remote-write
	steps := []Step{
		{
			Name:   "validate-payment",
			Policy: PolicyFatal,
			Run: func() error {
				if req.ApprovalSignature == "" {
					return ErrApprovalRequired
				}
				err := wallet.VerifyTransferApproval(
					req.Session.PubKeyHex,
					buyer,
					artwork.Author,
					artwork.NftPrice,
					req.ApprovalNonce,
					req.ApprovalSignature,
				)
				if err != nil {
					return err
				}
				// Spend the nonce only after the signature checks out
				return s.approvals.Consume(req.ApprovalNonce)
			},
		},
		{
			// Primary write. An already-recorded buyer is a canister
			// rejection and must surface as purchase failure.
			Name:   "set-nft-buyer",
			Policy: PolicyFatal,
			Run: func() error {
				return s.store.SetNftBuyer(req.ArtworkID, buyer)
			},
		},
		{
			// Secondary write. Ownership has already transferred, so a
			// failure here is logged but the purchase still succeeds.
			Name:   "record-purchase",
			Policy: PolicyBestEffort,
			Run: func() error {
				err := s.profileDAO.AddPurchase(buyer, req.ArtworkID)
				if err != nil {
					outcome.ProfileRecorded = false
				}
				return err
			},
		},
	}

	if err := runSteps("purchase", steps); err != nil {
		return nil, err
	}

	// idle-with-refresh
	if refreshed, err := s.store.GetArtwork(req.ArtworkID); err == nil {
		outcome.Artwork = refreshed
	} else {
		outcome.Artwork = artwork
	}

	return outcome, nil
}
