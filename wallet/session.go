package wallet

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	model "art-critique-service/models"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcutil"
	"github.com/btcsuite/btcutil/base58"
	"github.com/google/uuid"
)

// Principal version byte for base58check encoding
const principalVersion = 0x37

var (
	// ErrChallengeUnknown challenge nonce unknown or already consumed
	ErrChallengeUnknown = errors.New("unknown connect challenge")

	// ErrChallengeExpired challenge past its validity window
	ErrChallengeExpired = errors.New("connect challenge expired")

	// ErrInvalidSignature signature does not verify against the public key
	ErrInvalidSignature = errors.New("invalid wallet signature")

	// ErrNotConnected no session for the supplied token
	ErrNotConnected = errors.New("wallet not connected")
)

// SessionContext tracks wallet sessions for the gateway. It replaces the
// ambient browser-injected wallet object with explicit connect/disconnect and
// a current-identity lookup.
type SessionContext struct {
	mu           sync.Mutex
	challenges   map[string]time.Time      // nonce -> expiry
	sessions     map[string]*model.Session // token -> session
	challengeTTL time.Duration
	sessionTTL   time.Duration
}

// NewSessionContext create a session context
func NewSessionContext(challengeTTL, sessionTTL time.Duration) *SessionContext {
	return &SessionContext{
		challenges:   make(map[string]time.Time),
		sessions:     make(map[string]*model.Session),
		challengeTTL: challengeTTL,
		sessionTTL:   sessionTTL,
	}
}

// IssueChallenge create a one-time connect challenge nonce
func (sc *SessionContext) IssueChallenge() (string, time.Time) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	nonce := uuid.New().String()
	expires := time.Now().Add(sc.challengeTTL)
	sc.challenges[nonce] = expires
	return nonce, expires
}

// challengeMessage message the wallet signs to prove key ownership
func challengeMessage(nonce string) []byte {
	digest := sha256.Sum256([]byte("art-critique-connect:" + nonce))
	return digest[:]
}

// Connect verify a signed challenge and open a session. The nonce is consumed
// whether or not verification succeeds.
func (sc *SessionContext) Connect(nonce, pubKeyHex, signatureHex string) (*model.Session, error) {
	sc.mu.Lock()
	expires, ok := sc.challenges[nonce]
	delete(sc.challenges, nonce)
	sc.mu.Unlock()

	if !ok {
		return nil, ErrChallengeUnknown
	}
	if time.Now().After(expires) {
		return nil, ErrChallengeExpired
	}

	pubKey, err := parsePubKey(pubKeyHex)
	if err != nil {
		return nil, err
	}

	if err := verifySignature(pubKey, challengeMessage(nonce), signatureHex); err != nil {
		return nil, err
	}

	now := time.Now()
	session := &model.Session{
		Token:     uuid.New().String(),
		Principal: PrincipalFromPubKey(pubKey),
		PubKeyHex: pubKeyHex,
		Connected: true,
		CreatedAt: now,
		ExpiresAt: now.Add(sc.sessionTTL),
	}

	sc.mu.Lock()
	sc.sessions[session.Token] = session
	sc.mu.Unlock()

	return session, nil
}

// Session look up a session by token
func (sc *SessionContext) Session(token string) (*model.Session, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	session, ok := sc.sessions[token]
	if !ok {
		return nil, ErrNotConnected
	}
	if session.Expired(time.Now()) {
		delete(sc.sessions, token)
		return nil, ErrNotConnected
	}
	return session, nil
}

// ActiveSessions count the sessions that have not expired
func (sc *SessionContext) ActiveSessions() int {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	now := time.Now()
	count := 0
	for token, session := range sc.sessions {
		if session.Expired(now) {
			delete(sc.sessions, token)
			continue
		}
		count++
	}
	return count
}

// Disconnect drop the session for the token. Unknown tokens are a no-op.
func (sc *SessionContext) Disconnect(token string) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	delete(sc.sessions, token)
}

// PrincipalFromPubKey derive the principal string from a public key:
// base58check over Hash160 of the compressed key
func PrincipalFromPubKey(pubKey *btcec.PublicKey) string {
	return base58.CheckEncode(btcutil.Hash160(pubKey.SerializeCompressed()), principalVersion)
}

func parsePubKey(pubKeyHex string) (*btcec.PublicKey, error) {
	raw, err := hex.DecodeString(pubKeyHex)
	if err != nil {
		return nil, ErrInvalidSignature
	}
	pubKey, err := btcec.ParsePubKey(raw)
	if err != nil {
		return nil, ErrInvalidSignature
	}
	return pubKey, nil
}

func verifySignature(pubKey *btcec.PublicKey, digest []byte, signatureHex string) error {
	raw, err := hex.DecodeString(signatureHex)
	if err != nil {
		return ErrInvalidSignature
	}
	signature, err := ecdsa.ParseDERSignature(raw)
	if err != nil {
		return ErrInvalidSignature
	}
	if !signature.Verify(digest, pubKey) {
		return ErrInvalidSignature
	}
	return nil
}
