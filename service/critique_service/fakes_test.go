package critique_service

import (
	"encoding/hex"
	"sync"
	"testing"
	"time"

	"art-critique-service/canister"
	"art-critique-service/database"
	model "art-critique-service/models"
	"art-critique-service/wallet"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/stretchr/testify/require"
)

// fakeStore in-memory stand-in for the artwork canister. Transfer calls mutate
// state the way the canister would so the post-operation re-fetch is observable.
type fakeStore struct {
	mu        sync.Mutex
	artworks  map[string]*model.Artwork
	critiques map[string][]*model.Critique
	balances  map[string]int64

	escrowCalls int
	directCalls int
	buyerCalls  int

	setBuyerErr error

	// Called on entry to GetArtwork when set, for holding an operation open
	onGetArtwork func()
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		artworks:  make(map[string]*model.Artwork),
		critiques: make(map[string][]*model.Critique),
		balances:  make(map[string]int64),
	}
}

func (f *fakeStore) CreateArtwork(params canister.CreateArtworkParams) (string, error) {
	return "art-new", nil
}

func (f *fakeStore) ListArtworks(cursor, size int64) ([]*model.Artwork, int64, error) {
	return nil, 0, nil
}

func (f *fakeStore) ListArtworksByOwner(owner string, cursor, size int64) ([]*model.Artwork, int64, error) {
	return nil, 0, nil
}

func (f *fakeStore) GetArtwork(artworkID string) (*model.Artwork, error) {
	if hook := f.onGetArtwork; hook != nil {
		hook()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	art, ok := f.artworks[artworkID]
	if !ok {
		return nil, &canister.RemoteError{Code: canister.CodeArtworkNotFound, Reason: "artwork not found"}
	}
	copied := *art
	return &copied, nil
}

func (f *fakeStore) GetCritiques(artworkID string) ([]*model.Critique, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*model.Critique, 0, len(f.critiques[artworkID]))
	for _, c := range f.critiques[artworkID] {
		copied := *c
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeStore) PostCritique(artworkID, critic, body string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	critique := &model.Critique{
		CritiqueID: "crit-new",
		ArtworkID:  artworkID,
		Critic:     critic,
		Body:       body,
	}
	f.critiques[artworkID] = append(f.critiques[artworkID], critique)
	return critique.CritiqueID, nil
}

func (f *fakeStore) UpvoteCritique(artworkID, critiqueID, voter string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.critiques[artworkID] {
		if c.CritiqueID == critiqueID {
			c.Upvotes++
			return nil
		}
	}
	return &canister.RemoteError{Code: canister.CodeArtworkNotFound, Reason: "critique not found"}
}

func (f *fakeStore) GetBountyBalance(artworkID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.balances[artworkID], nil
}

func (f *fakeStore) TransferBounty(artworkID, critic string, amount int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.escrowCalls++
	if f.balances[artworkID] < amount {
		return &canister.RemoteError{Code: canister.CodeInsufficientEscrow, Reason: "escrow balance too low"}
	}
	f.balances[artworkID] -= amount
	f.markRewarded(artworkID, critic)
	return nil
}

func (f *fakeStore) DirectTransfer(from, to string, amount int64, authorization string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.directCalls++
	for artworkID := range f.critiques {
		f.markRewarded(artworkID, to)
	}
	return nil
}

func (f *fakeStore) SetNftBuyer(artworkID, buyer string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.buyerCalls++
	if f.setBuyerErr != nil {
		return f.setBuyerErr
	}
	art, ok := f.artworks[artworkID]
	if !ok {
		return &canister.RemoteError{Code: canister.CodeArtworkNotFound, Reason: "artwork not found"}
	}
	if art.NftBuyer != "" {
		return &canister.RemoteError{Code: canister.CodeAlreadySold, Reason: "nft already sold"}
	}
	art.NftBuyer = buyer
	return nil
}

func (f *fakeStore) markRewarded(artworkID, critic string) {
	// One transfer rewards one critique
	for _, c := range f.critiques[artworkID] {
		if c.Critic == critic && !c.Rewarded {
			c.Rewarded = true
			return
		}
	}
}

// fakeDB in-memory profile store with a failure toggle for the purchase list
type fakeDB struct {
	mu          sync.Mutex
	profiles    map[string]*model.Profile
	purchaseErr error
}

func newFakeDB() *fakeDB {
	return &fakeDB{profiles: make(map[string]*model.Profile)}
}

func (f *fakeDB) get(principal string) *model.Profile {
	p, ok := f.profiles[principal]
	if !ok {
		p = &model.Profile{
			Principal:     principal,
			LikedArtworks: []string{},
			PurchasedNfts: []string{},
		}
		f.profiles[principal] = p
	}
	return p
}

func (f *fakeDB) GetProfile(principal string) (*model.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[principal]
	if !ok {
		return nil, database.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakeDB) GetOrCreateProfile(principal string) (*model.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *f.get(principal)
	return &copied, nil
}

func (f *fakeDB) UpsertProfile(profile *model.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *profile
	f.profiles[profile.Principal] = &copied
	return nil
}

func (f *fakeDB) AddLikedArtwork(principal, artworkID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.get(principal)
	if !p.HasLiked(artworkID) {
		p.LikedArtworks = append(p.LikedArtworks, artworkID)
	}
	return nil
}

func (f *fakeDB) RemoveLikedArtwork(principal, artworkID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.get(principal)
	kept := p.LikedArtworks[:0]
	for _, id := range p.LikedArtworks {
		if id != artworkID {
			kept = append(kept, id)
		}
	}
	p.LikedArtworks = kept
	return nil
}

func (f *fakeDB) AddPurchasedNft(principal, nftID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.purchaseErr != nil {
		return f.purchaseErr
	}
	p := f.get(principal)
	if !p.HasPurchased(nftID) {
		p.PurchasedNfts = append(p.PurchasedNfts, nftID)
	}
	return nil
}

func (f *fakeDB) Close() error { return nil }

// testSession open wallet session backed by a fresh key so transfer approvals
// can be produced with the matching private key
func testSession(t *testing.T) (*model.Session, *btcec.PrivateKey) {
	t.Helper()
	privKey, err := btcec.NewPrivateKey()
	require.NoError(t, err)

	now := time.Now()
	return &model.Session{
		Token:     "test-token",
		Principal: wallet.PrincipalFromPubKey(privKey.PubKey()),
		PubKeyHex: hex.EncodeToString(privKey.PubKey().SerializeCompressed()),
		Connected: true,
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}, privKey
}
