package critique_service

import (
	"testing"

	"art-critique-service/common"
	model "art-critique-service/models"
	"art-critique-service/wallet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rewardFixture(t *testing.T, escrowBalance int64) (*RewardService, *fakeStore, *model.Session, rewardSigner) {
	t.Helper()
	session, privKey := testSession(t)

	store := newFakeStore()
	store.artworks["art-1"] = &model.Artwork{
		ArtworkID: "art-1",
		Author:    session.Principal,
		Title:     "Dawn",
	}
	store.critiques["art-1"] = []*model.Critique{
		{CritiqueID: "crit-1", ArtworkID: "art-1", Critic: "critic-principal", Body: "more contrast"},
	}
	store.balances["art-1"] = escrowBalance

	sign := func(to string, amount int64, nonce string) string {
		return wallet.SignTransferApproval(privKey, session.Principal, to, amount, nonce)
	}
	return NewRewardService(store, wallet.NewApprovalRegistry()), store, session, sign
}

type rewardSigner func(to string, amount int64, nonce string) string

func TestRewardEscrowPath(t *testing.T) {
	svc, store, session, _ := rewardFixture(t, 500_000_000)

	outcome, err := svc.Reward(RewardRequest{
		ArtworkID:     "art-1",
		CritiqueID:    "crit-1",
		AmountDisplay: "2.5",
		Session:       session,
	})
	require.NoError(t, err)

	assert.Equal(t, PathEscrow, outcome.Path)
	assert.Equal(t, int64(250_000_000), outcome.Amount)
	assert.Equal(t, int64(250_000_000), outcome.EscrowBalance)
	assert.Equal(t, 1, store.escrowCalls)
	assert.Equal(t, 0, store.directCalls)

	// Rewarded flag comes from the re-fetch, not a local mutation
	require.NotNil(t, outcome.Critique)
	assert.True(t, outcome.Critique.Rewarded)
}

func TestRewardEscrowPathExactBalance(t *testing.T) {
	svc, store, session, _ := rewardFixture(t, 250_000_000)

	outcome, err := svc.Reward(RewardRequest{
		ArtworkID:     "art-1",
		CritiqueID:    "crit-1",
		AmountDisplay: "2.5",
		Session:       session,
	})
	require.NoError(t, err)

	assert.Equal(t, PathEscrow, outcome.Path)
	assert.Equal(t, int64(0), outcome.EscrowBalance)
	assert.Equal(t, 1, store.escrowCalls)
}

func TestRewardDirectPathWhenEscrowShort(t *testing.T) {
	svc, store, session, sign := rewardFixture(t, 100_000_000)

	outcome, err := svc.Reward(RewardRequest{
		ArtworkID:         "art-1",
		CritiqueID:        "crit-1",
		AmountDisplay:     "2.5",
		Session:           session,
		ApprovalNonce:     "nonce-1",
		ApprovalSignature: sign("critic-principal", 250_000_000, "nonce-1"),
	})
	require.NoError(t, err)

	assert.Equal(t, PathDirect, outcome.Path)
	assert.Equal(t, 0, store.escrowCalls)
	assert.Equal(t, 1, store.directCalls)

	// Escrow untouched on the direct path
	assert.Equal(t, int64(100_000_000), outcome.EscrowBalance)
	assert.True(t, outcome.Critique.Rewarded)
}

func TestRewardDirectPathWhenEscrowEmpty(t *testing.T) {
	svc, store, session, sign := rewardFixture(t, 0)

	outcome, err := svc.Reward(RewardRequest{
		ArtworkID:         "art-1",
		CritiqueID:        "crit-1",
		AmountDisplay:     "1",
		Session:           session,
		ApprovalNonce:     "nonce-1",
		ApprovalSignature: sign("critic-principal", 100_000_000, "nonce-1"),
	})
	require.NoError(t, err)
	assert.Equal(t, PathDirect, outcome.Path)
	assert.Equal(t, 1, store.directCalls)
}

func TestRewardDirectPathRejectsReplayedApproval(t *testing.T) {
	svc, store, session, sign := rewardFixture(t, 0)

	// Second critique by the same critic: the same to/amount signature
	// verifies for it, only the nonce registry blocks the reuse
	store.critiques["art-1"] = append(store.critiques["art-1"],
		&model.Critique{CritiqueID: "crit-2", ArtworkID: "art-1", Critic: "critic-principal", Body: "soften the edges"})

	signature := sign("critic-principal", 100_000_000, "nonce-1")

	_, err := svc.Reward(RewardRequest{
		ArtworkID:         "art-1",
		CritiqueID:        "crit-1",
		AmountDisplay:     "1",
		Session:           session,
		ApprovalNonce:     "nonce-1",
		ApprovalSignature: signature,
	})
	require.NoError(t, err)

	_, err = svc.Reward(RewardRequest{
		ArtworkID:         "art-1",
		CritiqueID:        "crit-2",
		AmountDisplay:     "1",
		Session:           session,
		ApprovalNonce:     "nonce-1",
		ApprovalSignature: signature,
	})
	assert.ErrorIs(t, err, wallet.ErrApprovalReplayed)
	assert.Equal(t, 1, store.directCalls)
}

func TestRewardDirectPathRequiresApproval(t *testing.T) {
	svc, store, session, _ := rewardFixture(t, 0)

	_, err := svc.Reward(RewardRequest{
		ArtworkID:     "art-1",
		CritiqueID:    "crit-1",
		AmountDisplay: "1",
		Session:       session,
	})
	assert.ErrorIs(t, err, ErrApprovalRequired)
	assert.Equal(t, 0, store.directCalls)
}

func TestRewardDirectPathRejectsTamperedApproval(t *testing.T) {
	svc, store, session, sign := rewardFixture(t, 0)

	// Approval signed over a different amount
	_, err := svc.Reward(RewardRequest{
		ArtworkID:         "art-1",
		CritiqueID:        "crit-1",
		AmountDisplay:     "2",
		Session:           session,
		ApprovalNonce:     "nonce-1",
		ApprovalSignature: sign("critic-principal", 100_000_000, "nonce-1"),
	})
	assert.ErrorIs(t, err, wallet.ErrInvalidSignature)
	assert.Equal(t, 0, store.directCalls)
}

func TestRewardRejectsNonAuthor(t *testing.T) {
	svc, _, _, _ := rewardFixture(t, 500_000_000)
	stranger, _ := testSession(t)

	_, err := svc.Reward(RewardRequest{
		ArtworkID:     "art-1",
		CritiqueID:    "crit-1",
		AmountDisplay: "1",
		Session:       stranger,
	})
	assert.ErrorIs(t, err, ErrNotAuthor)
}

func TestRewardRejectsAlreadyRewarded(t *testing.T) {
	svc, store, session, _ := rewardFixture(t, 500_000_000)
	store.critiques["art-1"][0].Rewarded = true

	_, err := svc.Reward(RewardRequest{
		ArtworkID:     "art-1",
		CritiqueID:    "crit-1",
		AmountDisplay: "1",
		Session:       session,
	})
	assert.ErrorIs(t, err, ErrAlreadyRewarded)
	assert.Equal(t, 0, store.escrowCalls)
	assert.Equal(t, 0, store.directCalls)
}

func TestRewardRejectsUnknownCritique(t *testing.T) {
	svc, _, session, _ := rewardFixture(t, 500_000_000)

	_, err := svc.Reward(RewardRequest{
		ArtworkID:     "art-1",
		CritiqueID:    "crit-missing",
		AmountDisplay: "1",
		Session:       session,
	})
	assert.ErrorIs(t, err, ErrCritiqueNotFound)
}

func TestRewardRequiresSession(t *testing.T) {
	svc, _, _, _ := rewardFixture(t, 500_000_000)

	_, err := svc.Reward(RewardRequest{
		ArtworkID:     "art-1",
		CritiqueID:    "crit-1",
		AmountDisplay: "1",
	})
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestRewardRejectsInvalidAmount(t *testing.T) {
	svc, _, session, _ := rewardFixture(t, 500_000_000)

	_, err := svc.Reward(RewardRequest{
		ArtworkID:     "art-1",
		CritiqueID:    "crit-1",
		AmountDisplay: "abc",
		Session:       session,
	})
	assert.ErrorIs(t, err, common.ErrInvalidAmount)

	_, err = svc.Reward(RewardRequest{
		ArtworkID:     "art-1",
		CritiqueID:    "crit-1",
		AmountDisplay: "0",
		Session:       session,
	})
	assert.ErrorIs(t, err, common.ErrNonPositiveAmount)
}

func TestRewardRefusesWhileInFlight(t *testing.T) {
	svc, store, session, _ := rewardFixture(t, 500_000_000)

	entered := make(chan struct{}, 1)
	release := make(chan struct{})
	store.onGetArtwork = func() {
		select {
		case entered <- struct{}{}:
		default:
		}
		<-release
	}

	done := make(chan error, 1)
	go func() {
		_, err := svc.Reward(RewardRequest{
			ArtworkID:     "art-1",
			CritiqueID:    "crit-1",
			AmountDisplay: "1",
			Session:       session,
		})
		done <- err
	}()

	<-entered

	// Same target while the first is still running
	_, err := svc.Reward(RewardRequest{
		ArtworkID:     "art-1",
		CritiqueID:    "crit-1",
		AmountDisplay: "1",
		Session:       session,
	})
	assert.ErrorIs(t, err, ErrOperationInFlight)

	close(release)
	require.NoError(t, <-done)
}
