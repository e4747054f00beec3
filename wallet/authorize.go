package wallet

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
)

// ErrApprovalReplayed transfer approval nonce was already spent
var ErrApprovalReplayed = errors.New("transfer approval already used")

// ApprovalRegistry records spent transfer-approval nonces so an intercepted
// approval signature cannot authorize a second identical transfer.
type ApprovalRegistry struct {
	mu   sync.Mutex
	used map[string]struct{}
}

// NewApprovalRegistry create an empty approval registry
func NewApprovalRegistry() *ApprovalRegistry {
	return &ApprovalRegistry{
		used: make(map[string]struct{}),
	}
}

// Consume mark a nonce as spent. Returns ErrApprovalReplayed if it was
// already consumed.
func (r *ApprovalRegistry) Consume(nonce string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.used[nonce]; ok {
		return ErrApprovalReplayed
	}
	r.used[nonce] = struct{}{}
	return nil
}

// Direct wallet-to-wallet transfers need explicit approval from the sending
// wallet. The approval is a DER signature over the transfer digest, produced
// by the wallet and verified here before the transfer call leaves the gateway.

// transferDigest digest the wallet signs to approve a direct transfer
func transferDigest(from, to string, amount int64, nonce string) []byte {
	msg := fmt.Sprintf("art-critique-transfer:%s:%s:%d:%s", from, to, amount, nonce)
	digest := sha256.Sum256([]byte(msg))
	return digest[:]
}

// VerifyTransferApproval check a wallet's transfer approval signature.
// from must match the principal derived from the supplied public key.
func VerifyTransferApproval(pubKeyHex, from, to string, amount int64, nonce, signatureHex string) error {
	pubKey, err := parsePubKey(pubKeyHex)
	if err != nil {
		return err
	}
	if PrincipalFromPubKey(pubKey) != from {
		return ErrInvalidSignature
	}
	return verifySignature(pubKey, transferDigest(from, to, amount, nonce), signatureHex)
}

// SignTransferApproval produce a transfer approval signature. Wallet-side
// counterpart of VerifyTransferApproval, used by callers standing in for the
// wallet extension.
func SignTransferApproval(privKey *btcec.PrivateKey, from, to string, amount int64, nonce string) string {
	signature := ecdsa.Sign(privKey, transferDigest(from, to, amount, nonce))
	return hex.EncodeToString(signature.Serialize())
}

// SignChallenge sign a connect challenge (wallet-side helper)
func SignChallenge(privKey *btcec.PrivateKey, nonce string) string {
	signature := ecdsa.Sign(privKey, challengeMessage(nonce))
	return hex.EncodeToString(signature.Serialize())
}
