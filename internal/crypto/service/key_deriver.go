package service

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
)

// addressLabel is the fixed message HMAC'd under a key to derive the
// address that key's chain node is stored under on the server. Using a
// fixed label (rather than the keyword or any positional counter) keeps the
// derivation a pure function of the key alone.
const addressLabel = "address"

// KeyDeriverService implements KeyDeriver using crypto/rand for key
// generation and HMAC-SHA256 for address derivation.
type KeyDeriverService struct{}

// NewKeyDeriver creates a new KeyDeriverService instance.
func NewKeyDeriver() *KeyDeriverService {
	return &KeyDeriverService{}
}

// GenerateKey returns a new cryptographically random 32-byte key.
//
// Every chain node and blob is encrypted under a key produced by this
// method, never under one derived from the keyword or from an earlier key
// in the chain. That independence is what gives the index forward privacy:
// compromising today's chain head reveals nothing about the key that will
// protect tomorrow's update.
func (d *KeyDeriverService) GenerateKey() ([]byte, error) {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}
	return key, nil
}

// DeriveAddress computes HMAC-SHA256(key, "address"), the location a chain
// node encrypted under key is stored at on the server.
func (d *KeyDeriverService) DeriveAddress(key []byte) ([]byte, error) {
	mac := hmac.New(sha256.New, key)
	if _, err := mac.Write([]byte(addressLabel)); err != nil {
		return nil, fmt.Errorf("failed to derive address: %w", err)
	}
	return mac.Sum(nil), nil
}
