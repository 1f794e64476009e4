// Package domain defines core cryptographic primitives shared by the index
// and blob subsystems: the AEAD algorithm enum and the error values raised
// when encryption or decryption cannot proceed.
package domain

import (
	"github.com/dsse/forwardpriv/internal/errors"
)

// Cryptographic operation errors.
var (
	// ErrUnsupportedAlgorithm indicates the requested encryption algorithm is not supported.
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrInvalidKeySize indicates the cryptographic key size is invalid (must be 32 bytes).
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrDecryptionFailed indicates decryption failed due to wrong key, wrong
	// address, or corrupted/tampered ciphertext. Callers that walk a chain
	// treat this the same as ErrNotFound: stop and return what was
	// recovered so far.
	ErrDecryptionFailed = errors.Wrap(errors.ErrAuth, "decryption failed")
)
