package canister

import (
	"errors"
	"time"

	"art-critique-service/conf"
	model "art-critique-service/models"

	"github.com/tidwall/gjson"
)

// Store operations exposed by the remote artwork canister
type Store interface {
	CreateArtwork(params CreateArtworkParams) (string, error)
	ListArtworks(cursor, size int64) ([]*model.Artwork, int64, error)
	ListArtworksByOwner(owner string, cursor, size int64) ([]*model.Artwork, int64, error)
	GetArtwork(artworkID string) (*model.Artwork, error)
	GetCritiques(artworkID string) ([]*model.Critique, error)
	PostCritique(artworkID, critic, body string) (string, error)
	UpvoteCritique(artworkID, critiqueID, voter string) error
	GetBountyBalance(artworkID string) (int64, error)
	TransferBounty(artworkID, critic string, amount int64) error
	DirectTransfer(from, to string, amount int64, authorization string) error
	SetNftBuyer(artworkID, buyer string) error
}

// ArtworkStore canister-backed Store implementation
type ArtworkStore struct {
	client *Client
}

var myArtworkStore *ArtworkStore

// NewArtworkStore create (or reuse) the canister-backed artwork store
func NewArtworkStore() *ArtworkStore {
	if myArtworkStore != nil {
		return myArtworkStore
	}

	accessToken := BasicAuth(conf.Cfg.Canister.RpcUser, conf.Cfg.Canister.RpcPass)
	timeout := time.Duration(conf.Cfg.Canister.TimeoutSeconds) * time.Second
	myArtworkStore = &ArtworkStore{
		client: NewClientNode(conf.Cfg.Canister.Url, accessToken, timeout),
	}

	return myArtworkStore
}

// NewArtworkStoreWithClient create an artwork store over an explicit client (tests)
func NewArtworkStoreWithClient(client *Client) *ArtworkStore {
	return &ArtworkStore{client: client}
}

// CreateArtwork create an artwork record and return its canister id
func (s *ArtworkStore) CreateArtwork(params CreateArtworkParams) (string, error) {
	result, err := s.client.Call("createartwork", []interface{}{params})
	if err != nil {
		return "", err
	}

	artworkID := result.Get("artwork_id").String()
	if artworkID == "" {
		return "", errors.New("canister returned empty artwork id")
	}
	return artworkID, nil
}

// ListArtworks list artworks, newest first, cursor paginated
func (s *ArtworkStore) ListArtworks(cursor, size int64) ([]*model.Artwork, int64, error) {
	result, err := s.client.Call("listartworks", []interface{}{cursor, size})
	if err != nil {
		return nil, 0, err
	}

	artworks := make([]*model.Artwork, 0)
	for _, item := range result.Get("artworks").Array() {
		artworks = append(artworks, NewArtwork(item))
	}
	return artworks, result.Get("next_cursor").Int(), nil
}

// ListArtworksByOwner list artworks owned by the given principal
func (s *ArtworkStore) ListArtworksByOwner(owner string, cursor, size int64) ([]*model.Artwork, int64, error) {
	result, err := s.client.Call("listartworksbyowner", []interface{}{owner, cursor, size})
	if err != nil {
		return nil, 0, err
	}

	artworks := make([]*model.Artwork, 0)
	for _, item := range result.Get("artworks").Array() {
		artworks = append(artworks, NewArtwork(item))
	}
	return artworks, result.Get("next_cursor").Int(), nil
}

// GetArtwork fetch a single artwork by id
func (s *ArtworkStore) GetArtwork(artworkID string) (*model.Artwork, error) {
	result, err := s.client.Call("getartwork", []interface{}{artworkID})
	if err != nil {
		return nil, err
	}
	if !result.Exists() || result.Type == gjson.Null {
		return nil, &RemoteError{Code: CodeArtworkNotFound, Reason: "artwork not found"}
	}
	return NewArtwork(*result), nil
}

// GetCritiques fetch critiques for an artwork
func (s *ArtworkStore) GetCritiques(artworkID string) ([]*model.Critique, error) {
	result, err := s.client.Call("getcritiques", []interface{}{artworkID})
	if err != nil {
		return nil, err
	}

	critiques := make([]*model.Critique, 0)
	for _, item := range result.Array() {
		critiques = append(critiques, NewCritique(item))
	}
	return critiques, nil
}

// PostCritique create a critique and return its id
func (s *ArtworkStore) PostCritique(artworkID, critic, body string) (string, error) {
	result, err := s.client.Call("postcritique", []interface{}{artworkID, critic, body})
	if err != nil {
		return "", err
	}
	return result.Get("critique_id").String(), nil
}

// UpvoteCritique increment the upvote count of a critique
func (s *ArtworkStore) UpvoteCritique(artworkID, critiqueID, voter string) error {
	_, err := s.client.Call("upvotecritique", []interface{}{artworkID, critiqueID, voter})
	return err
}

// GetBountyBalance fetch the escrowed bounty balance in smallest units
func (s *ArtworkStore) GetBountyBalance(artworkID string) (int64, error) {
	result, err := s.client.Call("getbountybalance", []interface{}{artworkID})
	if err != nil {
		return 0, err
	}
	return result.Get("balance").Int(), nil
}

// TransferBounty transfer escrowed bounty to a critic. The canister debits
// escrow and credits the critic atomically.
func (s *ArtworkStore) TransferBounty(artworkID, critic string, amount int64) error {
	_, err := s.client.Call("transferbounty", []interface{}{artworkID, critic, amount})
	return err
}

// DirectTransfer wallet-to-wallet token transfer, gated on a signed
// authorization produced by the sender's wallet
func (s *ArtworkStore) DirectTransfer(from, to string, amount int64, authorization string) error {
	_, err := s.client.Call("transferdirect", []interface{}{from, to, amount, authorization})
	return err
}

// SetNftBuyer set the NFT buyer field for an artwork. The canister rejects
// the call when a buyer is already recorded.
func (s *ArtworkStore) SetNftBuyer(artworkID, buyer string) error {
	_, err := s.client.Call("setnftbuyer", []interface{}{artworkID, buyer})
	return err
}
