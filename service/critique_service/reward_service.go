package critique_service

import (
	"fmt"

	"art-critique-service/canister"
	"art-critique-service/common"
	model "art-critique-service/models"
	"art-critique-service/wallet"
)

// Transfer path chosen by the reward decision rule
const (
	PathEscrow = "escrow"
	PathDirect = "direct"
)

// RewardService drives the critique reward workflow: pick a transfer path,
// run it, then re-fetch canister state so the caller renders authoritative
// data instead of local mutations.
type RewardService struct {
	store     canister.Store
	approvals *wallet.ApprovalRegistry
	inflight  *inflightGuard
}

// NewRewardService create reward service instance
func NewRewardService(store canister.Store, approvals *wallet.ApprovalRegistry) *RewardService {
	return &RewardService{
		store:     store,
		approvals: approvals,
		inflight:  newInflightGuard(),
	}
}

// RewardRequest inputs for one reward operation
type RewardRequest struct {
	ArtworkID     string
	CritiqueID    string
	AmountDisplay string // display units, e.g. "2.5"
	Session       *model.Session

	// Wallet approval for the direct path. Ignored when escrow covers the
	// amount; required otherwise.
	ApprovalNonce     string
	ApprovalSignature string
}

// RewardOutcome result of a completed reward operation
type RewardOutcome struct {
	Path          string          `json:"path"` // escrow or direct
	Amount        int64           `json:"amount"`
	Critique      *model.Critique `json:"critique"`       // re-fetched, rewarded flag authoritative
	EscrowBalance int64           `json:"escrow_balance"` // re-fetched when the escrow path was used
}

// Reward run the reward workflow. Decision rule: when the escrowed bounty
// balance covers the amount, a single escrow transfer call debits escrow and
// credits the critic atomically canister-side; otherwise the amount moves
// wallet-to-wallet, which needs the rewarding user's signed approval.
func (s *RewardService) Reward(req RewardRequest) (*RewardOutcome, error) {
	target := "reward:" + req.ArtworkID + ":" + req.CritiqueID
	if !s.inflight.begin(target) {
		return nil, ErrOperationInFlight
	}
	defer s.inflight.end(target)

	// validating
	if req.Session == nil || !req.Session.Connected {
		return nil, ErrNotConnected
	}
	amount, err := common.ParseDisplayAmount(req.AmountDisplay)
	if err != nil {
		return nil, err
	}

	artwork, err := s.store.GetArtwork(req.ArtworkID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch artwork: %w", err)
	}
	// Advisory guard; the canister enforces this authoritatively
	if artwork.Author != req.Session.Principal {
		return nil, ErrNotAuthor
	}

	critique, err := s.findCritique(req.ArtworkID, req.CritiqueID)
	if err != nil {
		return nil, err
	}
	if critique.Rewarded {
		return nil, ErrAlreadyRewarded
	}

	// awaiting-remote-write
	balance, err := s.store.GetBountyBalance(req.ArtworkID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch escrow balance: %w", err)
	}

	outcome := &RewardOutcome{Amount: amount}

	if balance > 0 && amount <= balance {
		outcome.Path = PathEscrow
		if err := s.store.TransferBounty(req.ArtworkID, critique.Critic, amount); err != nil {
			return nil, err
		}
	} else {
		outcome.Path = PathDirect
		if req.ApprovalSignature == "" {
			return nil, ErrApprovalRequired
		}
		err := wallet.VerifyTransferApproval(
			req.Session.PubKeyHex,
			req.Session.Principal,
			critique.Critic,
			amount,
			req.ApprovalNonce,
			req.ApprovalSignature,
		)
		if err != nil {
			return nil, err
		}
		// Spend the nonce only after the signature checks out
		if err := s.approvals.Consume(req.ApprovalNonce); err != nil {
			return nil, err
		}
		if err := s.store.DirectTransfer(req.Session.Principal, critique.Critic, amount, req.ApprovalSignature); err != nil {
			return nil, err
		}
	}

	// idle-with-refresh: the canister owns the rewarded flag and the balance,
	// so both are re-fetched rather than mutated locally
	refreshed, err := s.findCritique(req.ArtworkID, req.CritiqueID)
	if err == nil {
		outcome.Critique = refreshed
	} else {
		outcome.Critique = critique
	}

	if outcome.Path == PathEscrow {
		if remaining, err := s.store.GetBountyBalance(req.ArtworkID); err == nil {
			outcome.EscrowBalance = remaining
		}
	} else {
		outcome.EscrowBalance = balance
	}

	return outcome, nil
}

func (s *RewardService) findCritique(artworkID, critiqueID string) (*model.Critique, error) {
	critiques, err := s.store.GetCritiques(artworkID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch critiques: %w", err)
	}
	for _, critique := range critiques {
		if critique.CritiqueID == critiqueID {
			return critique, nil
		}
	}
	return nil, ErrCritiqueNotFound
}
