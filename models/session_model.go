package models

import "time"

// Session wallet session state. Lives in gateway memory only; reset on
// disconnect. Nothing survives a restart beyond what the wallet itself keeps.
type Session struct {
	Token     string    `json:"token"`      // Opaque session token
	Principal string    `json:"principal"`  // Wallet-derived principal
	PubKeyHex string    `json:"pubkey_hex"` // Compressed secp256k1 public key
	Connected bool      `json:"connected"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired report whether the session is past its validity window
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
