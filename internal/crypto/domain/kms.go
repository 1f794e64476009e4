package domain

import "context"

// KMSKeeper wraps and unwraps key material through an external key
// management service. *gocloud.dev/secrets.Keeper implements this
// directly: Encrypt/Decrypt round-trip through whichever provider the
// keeper's URI selected (hashivault://, base64key://, gcpkms://, ...).
//
// Unlike a cipher built from AEADManager, a KMSKeeper never sees the data
// it protects as a key the caller can use directly: the wrapped bytes are
// meaningless without a second call back to the same KMS.
type KMSKeeper interface {
	// Encrypt wraps plaintext key material, returning opaque ciphertext
	// safe to persist.
	Encrypt(ctx context.Context, plaintext []byte) (ciphertext []byte, err error)

	// Decrypt unwraps ciphertext previously produced by Encrypt.
	Decrypt(ctx context.Context, ciphertext []byte) (plaintext []byte, err error)

	// Close releases resources held by the keeper.
	Close() error
}
