package canister

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rpcServer fake canister answering one JSON-RPC method per response body
func rpcServer(t *testing.T, handler func(method string, params []interface{}) string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var req RPCRequest
		require.NoError(t, json.Unmarshal(raw, &req))
		assert.Equal(t, "1.0", req.Jsonrpc)

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, handler(req.Method, req.Params))
	}))
}

func testStore(t *testing.T, handler func(method string, params []interface{}) string) *ArtworkStore {
	srv := rpcServer(t, handler)
	t.Cleanup(srv.Close)
	return NewArtworkStoreWithClient(NewClientNode(srv.URL, "", time.Second))
}

func TestListArtworks(t *testing.T) {
	store := testStore(t, func(method string, params []interface{}) string {
		assert.Equal(t, "listartworks", method)
		return `{"result":{"artworks":[
			{"artwork_id":"art-1","author":"alice","title":"Dawn","asset_cid":"QmA","bounty_balance":250000000,"nft_for_sale":true,"nft_price":100000000,"timestamp":1700000000},
			{"artwork_id":"art-2","author":"bob","title":"Dusk","asset_cid":"QmB","timestamp":1700000001}
		],"next_cursor":2},"error":null}`
	})

	artworks, next, err := store.ListArtworks(0, 20)
	require.NoError(t, err)
	require.Len(t, artworks, 2)
	assert.Equal(t, int64(2), next)

	assert.Equal(t, "art-1", artworks[0].ArtworkID)
	assert.Equal(t, "alice", artworks[0].Author)
	assert.Equal(t, int64(250000000), artworks[0].BountyBalance)
	assert.True(t, artworks[0].NftForSale)
	assert.Equal(t, int64(100000000), artworks[0].NftPrice)
	assert.False(t, artworks[1].NftForSale)
}

func TestGetArtworkNullResult(t *testing.T) {
	store := testStore(t, func(method string, params []interface{}) string {
		return `{"result":null,"error":null}`
	})

	_, err := store.GetArtwork("missing")
	var remote *RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, CodeArtworkNotFound, remote.Code)
}

func TestRemoteErrorPropagatesReasonVerbatim(t *testing.T) {
	store := testStore(t, func(method string, params []interface{}) string {
		return `{"result":null,"error":{"code":-201,"message":"NFT already sold to someone else"}}`
	})

	err := store.SetNftBuyer("art-1", "buyer")
	require.Error(t, err)

	var remote *RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, CodeAlreadySold, remote.Code)
	assert.Equal(t, "NFT already sold to someone else", remote.Error())
	assert.True(t, IsAlreadySold(err))
}

func TestGetBountyBalance(t *testing.T) {
	store := testStore(t, func(method string, params []interface{}) string {
		assert.Equal(t, "getbountybalance", method)
		require.Len(t, params, 1)
		assert.Equal(t, "art-1", params[0])
		return `{"result":{"balance":750000000},"error":null}`
	})

	balance, err := store.GetBountyBalance("art-1")
	require.NoError(t, err)
	assert.Equal(t, int64(750000000), balance)
}

func TestPostCritique(t *testing.T) {
	store := testStore(t, func(method string, params []interface{}) string {
		assert.Equal(t, "postcritique", method)
		require.Len(t, params, 3)
		return `{"result":{"critique_id":"crit-42"},"error":null}`
	})

	id, err := store.PostCritique("art-1", "critic", "strong contrast")
	require.NoError(t, err)
	assert.Equal(t, "crit-42", id)
}

func TestGetCritiques(t *testing.T) {
	store := testStore(t, func(method string, params []interface{}) string {
		return `{"result":[
			{"critique_id":"crit-1","artwork_id":"art-1","critic":"carol","body":"needs depth","upvotes":3,"rewarded":true,"timestamp":1700000002},
			{"critique_id":"crit-2","artwork_id":"art-1","critic":"dave","body":"love it","upvotes":0,"rewarded":false,"timestamp":1700000003}
		],"error":null}`
	})

	critiques, err := store.GetCritiques("art-1")
	require.NoError(t, err)
	require.Len(t, critiques, 2)
	assert.Equal(t, "crit-1", critiques[0].CritiqueID)
	assert.Equal(t, int64(3), critiques[0].Upvotes)
	assert.True(t, critiques[0].Rewarded)
	assert.False(t, critiques[1].Rewarded)
}

func TestCreateArtworkEmptyIDRejected(t *testing.T) {
	store := testStore(t, func(method string, params []interface{}) string {
		return `{"result":{},"error":null}`
	})

	_, err := store.CreateArtwork(CreateArtworkParams{Title: "Untitled"})
	assert.Error(t, err)
}

func TestCallRejectsNonOKWithoutErrorField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message":"authentication required"}`)
	}))
	t.Cleanup(srv.Close)

	store := NewArtworkStoreWithClient(NewClientNode(srv.URL, "", time.Second))

	// Transfer calls must fail, never report an empty success
	err := store.TransferBounty("art-1", "critic", 100)
	require.Error(t, err)
	assert.False(t, IsRemoteRejection(err))

	err = store.SetNftBuyer("art-1", "buyer")
	require.Error(t, err)

	err = store.DirectTransfer("from", "to", 100, "auth")
	require.Error(t, err)
}

func TestCallStructuredErrorOnNonOKStatus(t *testing.T) {
	// Error field takes precedence over the status code
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"result":null,"error":{"code":-202,"message":"escrow balance too low"}}`)
	}))
	t.Cleanup(srv.Close)

	store := NewArtworkStoreWithClient(NewClientNode(srv.URL, "", time.Second))

	err := store.TransferBounty("art-1", "critic", 100)
	var remote *RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, CodeInsufficientEscrow, remote.Code)
	assert.Equal(t, "escrow balance too low", remote.Error())
}

func TestCallInvalidResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, "<html>bad gateway</html>")
	}))
	t.Cleanup(srv.Close)

	store := NewArtworkStoreWithClient(NewClientNode(srv.URL, "", time.Second))
	_, _, err := store.ListArtworks(0, 20)
	assert.Error(t, err)
	assert.False(t, IsRemoteRejection(err))
}

func TestCallUnreachable(t *testing.T) {
	store := NewArtworkStoreWithClient(NewClientNode("http://127.0.0.1:1", "", 200*time.Millisecond))
	_, _, err := store.ListArtworks(0, 20)
	assert.Error(t, err)
}
