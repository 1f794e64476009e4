// Package service provides cryptographic service interfaces and implementations
// used throughout the forward-private index and blob subsystems.
//
// # Services Overview
//
// AEADManagerService: Factory for creating AEAD cipher instances. Supports
// AES-256-GCM and ChaCha20-Poly1305, selected once per deployment via
// config.CryptoAlgorithm.
//
// AESGCMCipher: Implements AEAD using AES-256-GCM with hardware acceleration support.
//
// ChaCha20Poly1305Cipher: Implements AEAD using ChaCha20-Poly1305 for platforms
// without AES hardware acceleration.
//
// KeyDeriver: Generates the fresh, independent keys every chain node and blob
// is encrypted under, and derives the HMAC address a key points to. Forward
// privacy depends on these keys never being derived from the keyword or from
// any earlier key in the chain.
//
// # Usage Example
//
//	aeadManager := NewAEADManager()
//	keyDeriver := NewKeyDeriver()
//
//	key, err := keyDeriver.GenerateKey()
//	if err != nil {
//	    return err
//	}
//	address, err := keyDeriver.DeriveAddress(key)
//	if err != nil {
//	    return err
//	}
//
//	cipher, err := aeadManager.CreateCipher(key, domain.AESGCM)
//	if err != nil {
//	    return err
//	}
//	ciphertext, nonce, err := cipher.Encrypt(plaintext, nil)
//
// # Thread Safety
//
// All service implementations are stateless and thread-safe. Multiple goroutines
// can safely use the same service instances for concurrent operations.
package service

import (
	cryptoDomain "github.com/dsse/forwardpriv/internal/crypto/domain"
)

// AEAD defines the interface for Authenticated Encryption with Associated Data.
//
// AEAD encryption provides both confidentiality and authenticity guarantees,
// protecting against unauthorized access and tampering. Implementations ensure
// that any modification to the ciphertext or AAD will be detected during decryption.
//
// Security requirements:
//   - Nonces must be unique for each encryption with the same key
//   - Keys should be at least 256 bits for strong security
//   - The same AAD used during encryption must be provided during decryption
//
// Implementations: AESGCMCipher, ChaCha20Poly1305Cipher
type AEAD interface {
	// Encrypt encrypts plaintext with optional additional authenticated data (AAD).
	//
	// A unique nonce is automatically generated for each encryption operation.
	// The nonce must be stored alongside the ciphertext for later decryption.
	//
	// Returns:
	//   - ciphertext: The encrypted data including authentication tag
	//   - nonce: The randomly generated nonce used for this encryption
	//   - err: Any error encountered during encryption or nonce generation
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt decrypts ciphertext using the provided nonce and AAD.
	//
	// This method verifies the authentication tag before returning plaintext,
	// ensuring the ciphertext hasn't been tampered with. If authentication
	// fails, no plaintext is returned.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)
}

// AEADManager defines the interface for creating AEAD cipher instances.
//
// This interface acts as a factory for creating authenticated encryption cipher
// instances, abstracting away which concrete algorithm is in use.
//
// The manager supports two algorithms:
//   - AESGCM: AES-256-GCM (best on hardware with AES-NI acceleration)
//   - ChaCha20: ChaCha20-Poly1305 (best on mobile/embedded systems)
//
// Implementation: AEADManagerService
type AEADManager interface {
	// CreateCipher creates an AEAD cipher instance for the specified algorithm.
	//
	// The key must be exactly 32 bytes (256 bits) for both supported algorithms.
	//
	// Returns:
	//   - An AEAD cipher instance ready for encryption/decryption operations
	//   - ErrInvalidKeySize if key is not 32 bytes
	//   - ErrUnsupportedAlgorithm if algorithm is not supported
	CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error)
}

// KeyDeriver generates the fresh symmetric keys that protect index chain
// nodes and blob payloads, and derives the address a given key points to.
//
// Every call to GenerateKey must return a value that is statistically
// independent of the keyword being updated and of any key generated before
// it: this is what makes the resulting chain forward-private. An address is
// derived from the key that names it, via an HMAC keyed on that key.
//
// Implementation: KeyDeriverService
type KeyDeriver interface {
	// GenerateKey returns a new cryptographically random 32-byte key,
	// independent of any previously generated key.
	GenerateKey() ([]byte, error)

	// DeriveAddress computes the address a key points to: HMAC-SHA256(key,
	// "address"). Two different keys produce addresses that are
	// computationally unlinkable to an observer that does not hold either key.
	DeriveAddress(key []byte) ([]byte, error)
}
