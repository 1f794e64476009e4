// Package search implements the server-side chain-walk that answers a
// keyword search token with the ordered list of file descriptors reachable
// from a chain head.
package search

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"log/slog"

	cryptoDomain "github.com/dsse/forwardpriv/internal/crypto/domain"
	cryptoService "github.com/dsse/forwardpriv/internal/crypto/service"
	indexDomain "github.com/dsse/forwardpriv/internal/index/domain"
	indexUseCase "github.com/dsse/forwardpriv/internal/index/usecase"
)

// Token is a search request: the key and address of a chain's current head.
type Token struct {
	StartKey     []byte
	StartAddress []byte
}

// Engine walks a keyword's encrypted chain from a head token, decrypting
// each node to recover the file descriptors it announces.
//
// It is purely functional over the index store's state as observed at each
// Get call: a concurrent Put appending a new head cannot appear in the
// result, since the token references the prior head, not the live one.
type Engine struct {
	indexUseCase indexUseCase.IndexUseCase
	aeadManager  cryptoService.AEADManager
	algorithm    cryptoDomain.Algorithm
	maxChain     int
	logger       *slog.Logger
}

// NewEngine creates a new search Engine. maxChain bounds the number of
// nodes walked in one search — a defensive guard against a cyclic chain in
// the index store, so a walk following old_address links never loops
// forever on corrupted or adversarial data.
func NewEngine(
	idx indexUseCase.IndexUseCase,
	aeadManager cryptoService.AEADManager,
	algorithm cryptoDomain.Algorithm,
	maxChain int,
	logger *slog.Logger,
) *Engine {
	return &Engine{
		indexUseCase: idx,
		aeadManager:  aeadManager,
		algorithm:    algorithm,
		maxChain:     maxChain,
		logger:       logger,
	}
}

// Walk performs the chain-walk search: starting from token, it decrypts
// nodes and follows old_key/old_address backwards until
// the chain tail, a missing node, or a decryption/parse failure. Failures
// truncate the result and the walk never returns an error; reaching the
// maxChain bound also stops the walk and returns the nodes recovered so far.
func (e *Engine) Walk(ctx context.Context, token Token) []indexDomain.Descriptor {
	var results []indexDomain.Descriptor

	key, address := token.StartKey, token.StartAddress

	for i := 0; i < e.maxChain; i++ {
		entry, err := e.indexUseCase.GetNode(ctx, address)
		if err != nil {
			// Missing node: stop, report what was recovered so far.
			break
		}

		cipher, err := e.aeadManager.CreateCipher(key, e.algorithm)
		if err != nil {
			e.logger.Warn("search: failed to build cipher for chain node", slog.Any("error", err))
			break
		}

		plaintext, err := cipher.Decrypt(entry.Ciphertext, entry.Nonce, nil)
		if err != nil {
			e.logger.Warn("search: chain node failed authentication, truncating", slog.Any("error", err))
			break
		}

		var node indexDomain.PlaintextNode
		if err := json.Unmarshal(plaintext, &node); err != nil {
			e.logger.Warn("search: chain node failed to parse, truncating", slog.Any("error", err))
			break
		}

		results = append(results, indexDomain.Descriptor{
			FileID:       node.FileID,
			OriginalName: node.OriginalName,
			FileKey:      node.FileKey,
		})

		if node.IsTail() {
			break
		}

		key, err = hex.DecodeString(*node.OldKey)
		if err != nil {
			e.logger.Warn("search: chain node old_key is not valid hex, truncating", slog.Any("error", err))
			break
		}
		address, err = hex.DecodeString(*node.OldAddress)
		if err != nil {
			e.logger.Warn("search: chain node old_address is not valid hex, truncating", slog.Any("error", err))
			break
		}
	}

	return results
}
